// Package sqlite implements repository.UserRepository on top of SQLite.
//
// WHY SQLITE FOR AN IN-PROCESS DIRECTORY?
// The default DSN is ":memory:", so nothing outlives the process, the same as
// the memory backend. What SQLite adds is a second, independent
// implementation of the same contract: both backends run the same test
// suite (see repositorytest), which keeps the contract honest.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// modernc.org/sqlite is a pure Go translation of SQLite, so no C compiler is
// needed and cross-compilation just works.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sakif/userdir/internal/repository"
)

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn     *sql.DB
	maxUsers int
	now      func() time.Time
}

// New opens the database at dsn, runs migrations and returns a repository
// holding at most maxUsers users (repository.DefaultMaxUsers if ≤ 0).
//
// dsn examples:
//   - ":memory:"         → in-memory database, gone on Close
//   - "data/userdir.db"  → file-based database
func New(dsn string, maxUsers int) (*DB, error) {
	if maxUsers <= 0 {
		maxUsers = repository.DefaultMaxUsers
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every new connection to ":memory:" gets its own empty database, so the
	// pool must never grow past one connection. One connection also
	// serializes writers, which is what Create relies on for its
	// count-then-insert check.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn, maxUsers: maxUsers, now: time.Now}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// status is stored by name ("Active", "Pending"...) so the table reads the
// same as the console output, and a bad value fails loudly on read instead of
// decoding to some other status.
//
// The ID counter lives in its own single-row table rather than relying on
// AUTOINCREMENT: Save may write any ID, and that must not move the counter.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY,
			name          TEXT    NOT NULL,
			email         TEXT    NOT NULL,
			age           INTEGER,
			status        TEXT    NOT NULL DEFAULT 'Active',
			theme         TEXT    NOT NULL DEFAULT 'light',
			notifications INTEGER NOT NULL DEFAULT 1,
			language      TEXT    NOT NULL DEFAULT 'en',
			created_at    INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_sequence (
			id      INTEGER PRIMARY KEY CHECK (id = 1),
			next_id INTEGER NOT NULL
		);
		INSERT OR IGNORE INTO user_sequence (id, next_id) VALUES (1, 1);
	`)
	if err != nil {
		return fmt.Errorf("creating user_sequence table: %w", err)
	}

	return nil
}
