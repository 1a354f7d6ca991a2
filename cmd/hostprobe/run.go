package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/hostprobe/pkg/cgroup"
	"github.com/vertti/hostprobe/pkg/dbprobe"
	"github.com/vertti/hostprobe/pkg/envinfo"
	"github.com/vertti/hostprobe/pkg/output"
	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/version"
)

// Host access, replaced in tests.
var (
	hostInfo envinfo.HostInfo  = &envinfo.RealHostInfo{}
	cgroupFS cgroup.FileSystem = &cgroup.RealFileSystem{}
)

// runAll prints the banner and every section in order.
func runAll(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if cfg.Banner && cfg.Output == "text" {
		output.PrintBanner(cmd.OutOrStdout())
	}

	return emit(cmd,
		environmentSection(ctx),
		cgroupSection(ctx),
		databaseSection(ctx),
	)
}

// emit writes the sections in the configured format and returns the error
// of the first failed section. The returned error causes exit code 1.
func emit(cmd *cobra.Command, sections ...report.Section) error {
	w := cmd.OutOrStdout()

	if cfg.Output == "json" {
		if err := output.WriteJSON(w, sections); err != nil {
			return err
		}
	} else {
		for _, s := range sections {
			output.PrintSection(w, s)
		}
	}

	for _, s := range sections {
		if s.Skipped() {
			log.Debugf("%s: skipped: %s", s.Name, s.Reason)
		}
		if s.Status == report.StatusFail {
			return fmt.Errorf("%s: %w", s.Name, s.Err)
		}
	}
	return nil
}

func environmentSection(ctx context.Context) report.Section {
	r := &envinfo.Reporter{Info: hostInfo}
	return r.Run(ctx)
}

func cgroupInspector() *cgroup.Inspector {
	total, err := cfg.TotalMemoryOverride()
	if err != nil || total == 0 {
		total = hostInfo.TotalAvailableMemory()
	}

	return &cgroup.Inspector{
		Platform:       hostInfo,
		FS:             cgroupFS,
		LimitPaths:     cfg.Cgroup.LimitPaths,
		UsagePaths:     cfg.Cgroup.UsagePaths,
		TotalAvailable: total,
	}
}

func cgroupSection(_ context.Context) report.Section {
	return cgroupInspector().Run()
}

func cgroupMemory() (cgroup.MemoryReport, bool) {
	return cgroupInspector().Inspect()
}

// databaseSection runs the smoke sequence, or skips when no connection
// string is configured.
func databaseSection(ctx context.Context) report.Section {
	s := report.New(dbprobe.SectionName)
	if !cfg.DatabaseEnabled() {
		return s.Skip("no database configured")
	}

	dialect, err := dbprobe.LookupDialect(cfg.Database.Driver)
	if err != nil {
		return s.Fail(err.Error(), err)
	}

	var constraint *version.Constraint
	if cfg.Database.ServerVersion != "" {
		constraint, err = version.ParseConstraint(cfg.Database.ServerVersion)
		if err != nil {
			return s.Fail(err.Error(), err)
		}
	}

	logConnection(dialect, cfg.Database.Connection)

	db, err := dbprobe.Open(dialect, cfg.Database.Connection)
	if err != nil {
		return s.Failf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	smoke := &dbprobe.Smoke{
		DB:            db,
		Dialect:       dialect,
		Table:         cfg.Database.Table,
		Column:        cfg.Database.Column,
		InsertValue:   cfg.Database.InsertValue,
		CreateTable:   cfg.Database.CreateTable,
		ServerVersion: constraint,
	}
	return smoke.Run(ctx)
}

func logConnection(d dbprobe.Dialect, conn string) {
	if d.Driver != dbprobe.Postgres.Driver {
		log.Debugf("db: opening %s database %s", d.Name, conn)
		return
	}
	cs, err := dbprobe.ParseConnString(conn)
	if err != nil {
		return
	}
	log.Debugf("db: connecting with %s", cs.Redacted())
	for _, key := range cs.Ignored {
		log.Debugf("db: ignoring connection string key %q", key)
	}
}
