package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		-- Store the genre list as JSON text
		favorite_genres_json TEXT NOT NULL DEFAULT '[]',
		-- Unix seconds
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shelf_entries (
		user_id TEXT NOT NULL REFERENCES users(id),
		book_id TEXT NOT NULL,
		status TEXT NOT NULL,
		-- Unix seconds; doubles as "added at" and "status changed at"
		timestamp INTEGER NOT NULL,
		PRIMARY KEY (user_id, book_id)
	);

	CREATE TABLE IF NOT EXISTS challenge_goals (
		user_id TEXT NOT NULL REFERENCES users(id),
		year TEXT NOT NULL,
		goal INTEGER NOT NULL CHECK (goal > 0),
		PRIMARY KEY (user_id, year)
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		user_id TEXT,
		created_at INTEGER NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
