package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vertti/hostprobe/pkg/config"
)

// stringOverride copies a string flag into the config when it was set.
type stringOverride struct {
	name  string
	value *string
	dst   *string
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()

	overrides := []stringOverride{
		{"output", &outputFlag, &c.Output},
		{"total-memory", &totalMemory, &c.Cgroup.TotalMemory},
		{"driver", &dbDriver, &c.Database.Driver},
		{"connection", &dbConnection, &c.Database.Connection},
		{"table", &dbTable, &c.Database.Table},
		{"column", &dbColumn, &c.Database.Column},
		{"value", &dbInsertValue, &c.Database.InsertValue},
		{"server-version", &dbServerVersion, &c.Database.ServerVersion},
		{"listen", &serveListen, &c.Serve.Listen},
	}
	for _, o := range overrides {
		if changed(flags, o.name) {
			*o.dst = *o.value
		}
	}

	if changed(flags, "create-table") {
		c.Database.CreateTable = dbCreateTable
	}
	if changed(flags, "timeout") {
		c.Database.Timeout = dbTimeout
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if noBanner {
		c.Banner = false
	}
}

func changed(flags *pflag.FlagSet, name string) bool {
	return flags.Lookup(name) != nil && flags.Changed(name)
}
