package dbprobe

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"  // registers the "postgres" driver
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Dialect holds the driver specific details of the smoke sequence.
type Dialect struct {
	Name         string // name used in config and flags
	Driver       string // database/sql driver name
	Placeholder  string // placeholder for the single insert parameter
	VersionQuery string
}

var (
	Postgres = Dialect{
		Name:         "postgres",
		Driver:       "postgres",
		Placeholder:  "$1",
		VersionQuery: "SELECT version();",
	}
	SQLite = Dialect{
		Name:         "sqlite",
		Driver:       "sqlite",
		Placeholder:  "?",
		VersionQuery: "SELECT sqlite_version();",
	}
)

// Dialects lists the supported dialects by name.
var Dialects = map[string]Dialect{
	Postgres.Name: Postgres,
	SQLite.Name:   SQLite,
}

// LookupDialect returns the dialect with the given name.
func LookupDialect(name string) (Dialect, error) {
	d, ok := Dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Dialect{}, fmt.Errorf("unknown database driver %q (supported: postgres, sqlite)", name)
	}
	return d, nil
}

// DataSource turns a configured connection string into the driver's DSN.
// PostgreSQL accepts the "key=value;..." form; SQLite takes a file name.
func (d Dialect) DataSource(conn string) (string, error) {
	if d.Driver != Postgres.Driver {
		return conn, nil
	}
	cs, err := ParseConnString(conn)
	if err != nil {
		return "", err
	}
	return cs.DSN(), nil
}

// Open prepares a database handle. No connection is made until first use.
func Open(d Dialect, conn string) (*sql.DB, error) {
	dsn, err := d.DataSource(conn)
	if err != nil {
		return nil, err
	}
	return sql.Open(d.Driver, dsn)
}
