// Package sqlstore implements store.Store on top of SQLite, the same
// single-file database the service has always used.
package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

type SQLStore struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dataSourceName and
// bootstraps the schema. Use ":memory:" for tests.
func New(dataSourceName string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	// One writer at a time keeps per-room sequence assignment simple; SQLite
	// serializes writes anyway, this just avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db}
	if err := s.createTables(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) createTables() error {
	// Simplified for brevity, ideally use migrations
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rooms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		creator_id INTEGER NOT NULL REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id INTEGER NOT NULL REFERENCES rooms(id),
		sender_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		seq INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (room_id, seq)
	);
	`

	_, err := s.db.Exec(query)
	return err
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
