package dbprobe

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/version"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(SQLite, filepath.Join(t.TempDir(), "smoke.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTable(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("CREATE TABLE smoke (column1 TEXT)")
	require.NoError(t, err)
}

func TestSmoke_Exec(t *testing.T) {
	db := openSQLite(t)
	createTable(t, db)
	_, err := db.Exec("INSERT INTO smoke (column1) VALUES ('existing')")
	require.NoError(t, err)

	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1", InsertValue: "Hello world"}

	res, err := s.Exec(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"existing", "Hello world"}, res.Rows)
	require.Len(t, res.Versions, 1)
	assert.Regexp(t, `^3\.\d+\.\d+`, res.Versions[0])
}

func TestSmoke_ExecTwiceAppends(t *testing.T) {
	db := openSQLite(t)
	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1", InsertValue: "x", CreateTable: true}

	_, err := s.Exec(context.Background())
	require.NoError(t, err)
	res, err := s.Exec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "x"}, res.Rows)
}

func TestSmoke_NullRow(t *testing.T) {
	db := openSQLite(t)
	createTable(t, db)
	_, err := db.Exec("INSERT INTO smoke (column1) VALUES (NULL)")
	require.NoError(t, err)

	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1", InsertValue: "v"}
	res, err := s.Exec(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"NULL", "v"}, res.Rows)
}

func TestSmoke_Errors(t *testing.T) {
	tests := []struct {
		name    string
		smoke   Smoke
		setup   bool
		wantErr string
	}{
		{"missing table", Smoke{Table: "smoke", Column: "column1"}, false, "insert:"},
		{"missing column", Smoke{Table: "smoke", Column: "nope"}, true, "insert:"},
		{"bad version query", Smoke{Table: "smoke", Column: "column1", Dialect: Dialect{Driver: "sqlite", Placeholder: "?", VersionQuery: "SELECT version();"}}, true, "version:"},
		{"table injection", Smoke{Table: "smoke; DROP TABLE smoke", Column: "column1"}, true, "invalid SQL identifier"},
		{"column injection", Smoke{Table: "smoke", Column: "a) VALUES (1); --"}, true, "invalid SQL identifier"},
		{"qualified column rejected", Smoke{Table: "smoke", Column: "smoke.column1"}, true, "invalid SQL identifier"},
		{"empty table", Smoke{Column: "column1"}, true, "invalid SQL identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openSQLite(t)
			if tt.setup {
				createTable(t, db)
			}
			s := tt.smoke
			s.DB = db
			if s.Dialect.Driver == "" {
				s.Dialect = SQLite
			}

			_, err := s.Exec(context.Background())

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSmoke_InvalidIdentifierSendsNothing(t *testing.T) {
	db := openSQLite(t)
	createTable(t, db)

	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1 TEXT); DROP TABLE smoke; --", CreateTable: true}
	_, err := s.Exec(context.Background())
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM smoke").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSmoke_CancelledContext(t *testing.T) {
	db := openSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1"}
	_, err := s.Exec(ctx)

	assert.ErrorContains(t, err, "open connection")
}

func TestSmoke_Run(t *testing.T) {
	db := openSQLite(t)
	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1", InsertValue: "Hello world", CreateTable: true}

	sec := s.Run(context.Background())

	require.Equal(t, report.StatusOK, sec.Status, sec.Reason)
	assert.Equal(t, SectionName, sec.Name)
	row, _ := sec.Value("row")
	assert.Equal(t, "Hello world", row)
	v, ok := sec.Value("version")
	assert.True(t, ok)
	assert.NotEmpty(t, v)
}

func TestSmoke_RunFailure(t *testing.T) {
	db := openSQLite(t)
	s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1"}

	sec := s.Run(context.Background())

	assert.Equal(t, report.StatusFail, sec.Status)
	assert.True(t, strings.HasPrefix(sec.Reason, "insert:"), sec.Reason)
	assert.Error(t, sec.Err)
}

func TestSmoke_ServerVersionConstraint(t *testing.T) {
	tests := []struct {
		constraint string
		wantStatus report.Status
	}{
		{">= 3", report.StatusOK},
		{"< 3", report.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			c, err := version.ParseConstraint(tt.constraint)
			require.NoError(t, err)

			db := openSQLite(t)
			s := &Smoke{DB: db, Dialect: SQLite, Table: "smoke", Column: "column1", InsertValue: "v", CreateTable: true, ServerVersion: c}

			sec := s.Run(context.Background())

			assert.Equal(t, tt.wantStatus, sec.Status, sec.Reason)
			if tt.wantStatus == report.StatusOK {
				got, ok := sec.Value("server version")
				assert.True(t, ok)
				assert.Contains(t, got, "satisfies >= 3")
			} else {
				assert.Contains(t, sec.Reason, "does not satisfy")
			}
		})
	}
}
