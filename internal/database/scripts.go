package database

import "database/sql"

// Script is an archived finished script.
type Script struct {
	ID           int64
	Title        string
	Mode         string
	WordCount    int
	BodyMarkdown string
	CreatedAt    string
}

// InsertScript archives a completed script.
func (db *DB) InsertScript(title, mode string, wordCount int, bodyMarkdown string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO scripts (title, mode, word_count, body_markdown) VALUES (?, ?, ?, ?)",
		title, mode, wordCount, bodyMarkdown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetScript returns one archived script, or nil if absent.
func (db *DB) GetScript(id int64) (*Script, error) {
	row := db.conn.QueryRow(
		"SELECT id, title, mode, word_count, body_markdown, created_at FROM scripts WHERE id = ?", id,
	)
	var s Script
	if err := row.Scan(&s.ID, &s.Title, &s.Mode, &s.WordCount, &s.BodyMarkdown, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetAllScripts returns archived scripts, newest first.
func (db *DB) GetAllScripts() ([]Script, error) {
	rows, err := db.conn.Query(
		"SELECT id, title, mode, word_count, body_markdown, created_at FROM scripts ORDER BY id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scripts []Script
	for rows.Next() {
		var s Script
		if err := rows.Scan(&s.ID, &s.Title, &s.Mode, &s.WordCount, &s.BodyMarkdown, &s.CreatedAt); err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, rows.Err()
}
