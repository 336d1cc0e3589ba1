package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// schema mirrors the original bot's tables. Options are stored as a single
// delimiter-joined column; question IDs are rowid-assigned.
const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
	quiz_id     TEXT PRIMARY KEY,
	owner_id    INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT,
	folder      TEXT NOT NULL DEFAULT 'Default',
	shuffle_q   INTEGER NOT NULL DEFAULT 1,
	shuffle_a   INTEGER NOT NULL DEFAULT 1,
	timer       INTEGER NOT NULL DEFAULT 15
);

CREATE TABLE IF NOT EXISTS questions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	quiz_id       TEXT NOT NULL,
	question      TEXT NOT NULL,
	image_file_id TEXT,
	options       TEXT NOT NULL,
	correct       INTEGER NOT NULL,
	explanation   TEXT
);

CREATE TABLE IF NOT EXISTS folders (
	owner_id INTEGER NOT NULL,
	name     TEXT NOT NULL,
	UNIQUE(owner_id, name)
);

CREATE TABLE IF NOT EXISTS leaderboard (
	quiz_id  TEXT NOT NULL,
	user_id  INTEGER NOT NULL,
	username TEXT NOT NULL,
	score    INTEGER NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (quiz_id, user_id)
);
`

// NewSQLXSqliteDB opens (creating if needed) the sqlite database at path and
// bootstraps the schema.
func NewSQLXSqliteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// from concurrent goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return db, nil
}
