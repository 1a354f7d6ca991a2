// Package dbprobe runs a small insert, select and version sequence against
// a database to prove the connection works end to end.
package dbprobe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/version"
)

// SectionName is the name of the database section.
const SectionName = "database"

// ErrInvalidIdentifier is returned when a table or column name is not a
// plain SQL identifier.
var ErrInvalidIdentifier = errors.New("invalid SQL identifier")

var (
	tableRegex  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	columnRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Smoke inserts a row, reads the table back and asks for the server version.
type Smoke struct {
	DB            *sql.DB
	Dialect       Dialect
	Table         string              // e.g., "test.test"
	Column        string              // e.g., "column1"
	InsertValue   string              // value inserted by the first step
	CreateTable   bool                // create Table if it does not exist
	ServerVersion *version.Constraint // optional requirement on the server version
}

// Result holds what the sequence read back.
type Result struct {
	Rows     []string
	Versions []string
}

// Exec runs the sequence on a single dedicated connection. Every failure is
// returned wrapped with the step that failed.
func (s *Smoke) Exec(ctx context.Context) (Result, error) {
	var res Result

	if !tableRegex.MatchString(s.Table) {
		return res, fmt.Errorf("table %q: %w", s.Table, ErrInvalidIdentifier)
	}
	if !columnRegex.MatchString(s.Column) {
		return res, fmt.Errorf("column %q: %w", s.Column, ErrInvalidIdentifier)
	}

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return res, fmt.Errorf("open connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if s.CreateTable {
		q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s TEXT)", s.Table, s.Column)
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return res, fmt.Errorf("create table: %w", err)
		}
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.Table, s.Column, s.Dialect.Placeholder)
	if err := execOne(ctx, conn, insert, s.InsertValue); err != nil {
		return res, fmt.Errorf("insert: %w", err)
	}
	log.Debugf("db: inserted %q into %s", s.InsertValue, s.Table)

	res.Rows, err = queryStrings(ctx, conn, fmt.Sprintf("SELECT %s FROM %s", s.Column, s.Table))
	if err != nil {
		return res, fmt.Errorf("select: %w", err)
	}

	res.Versions, err = queryStrings(ctx, conn, s.Dialect.VersionQuery)
	if err != nil {
		return res, fmt.Errorf("version: %w", err)
	}

	return res, nil
}

// Run executes the sequence and renders it as a section.
func (s *Smoke) Run(ctx context.Context) report.Section {
	sec := report.New(SectionName)

	res, err := s.Exec(ctx)
	if err != nil {
		return sec.Fail(err.Error(), err)
	}

	for _, row := range res.Rows {
		sec.AddFact("row", row)
	}
	for _, v := range res.Versions {
		sec.AddFact("version", v)
	}

	if s.ServerVersion != nil {
		if len(res.Versions) == 0 {
			return sec.Failf("server returned no version")
		}
		v, err := version.Extract(res.Versions[0])
		if err != nil {
			return sec.Fail(err.Error(), err)
		}
		if err := s.ServerVersion.Check(v); err != nil {
			return sec.Fail(err.Error(), err)
		}
		sec.AddFactf("server version", "%s satisfies %s", v, s.ServerVersion)
	}

	return *sec
}

func execOne(ctx context.Context, conn *sql.Conn, query string, arg any) error {
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	_, err = stmt.ExecContext(ctx, arg)
	return err
}

func queryStrings(ctx context.Context, conn *sql.Conn, query string) ([]string, error) {
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stmt.Close() }()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			out = append(out, v.String)
		} else {
			out = append(out, "NULL")
		}
	}
	return out, rows.Err()
}
