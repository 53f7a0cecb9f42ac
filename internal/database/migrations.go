package database

import "database/sql"

// migration is a single schema change applied inside a transaction.
type migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

func latestVersion() int {
	latest := 0
	for _, m := range migrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}

var migrations = []migration{
	{
		Version:     1,
		Description: "initial schema: kv_store, scripts, scans",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS kv_store (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at TEXT DEFAULT (datetime('now'))
				);

				CREATE TABLE IF NOT EXISTS scripts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					mode TEXT NOT NULL,
					word_count INTEGER NOT NULL,
					body_markdown TEXT NOT NULL,
					created_at TEXT DEFAULT (datetime('now'))
				);

				CREATE TABLE IF NOT EXISTS scans (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					scan_timestamp TEXT NOT NULL,
					story_count INTEGER NOT NULL,
					fallback_used INTEGER NOT NULL DEFAULT 0,
					stories_json TEXT NOT NULL,
					created_at TEXT DEFAULT (datetime('now'))
				);
			`)
			return err
		},
	},
}
