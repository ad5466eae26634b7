package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SQLiteSchema creates the tables used by rendered test queries.
var SQLiteSchema = []string{
	`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT, deleted_at TIMESTAMP)`,
	`CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL REFERENCES users (id), total REAL NOT NULL, deleted_at TIMESTAMP)`,
	`INSERT INTO users (id, name, email) VALUES (1, 'alice', 'alice@example.com'), (2, 'bob', NULL)`,
	`INSERT INTO users (id, name, email, deleted_at) VALUES (3, 'carol', 'carol@example.com', '2024-01-01 00:00:00')`,
	`INSERT INTO orders (id, user_id, total) VALUES (1, 1, 50), (2, 1, 150), (3, 2, 250)`,
}

// OpenSQLite opens an in-memory SQLite database loaded with SQLiteSchema.
// The database is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range SQLiteSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return db
}

// AssertPrepares fails unless SQLite accepts query. Preparing checks syntax
// and resolves every table and column without running the statement.
func AssertPrepares(t testing.TB, db *sql.DB, query string) {
	t.Helper()
	stmt, err := db.Prepare(query)
	require.NoError(t, err, query)
	_ = stmt.Close()
}

// QueryInts runs query and collects the first column of every row.
func QueryInts(t testing.TB, db *sql.DB, query string, args ...any) []int64 {
	t.Helper()
	rows, err := db.Query(query, args...)
	require.NoError(t, err, query)
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		require.NoError(t, rows.Scan(&v))
		out = append(out, v)
	}
	require.NoError(t, rows.Err())
	return out
}
