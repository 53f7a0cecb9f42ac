package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gfpd/contentengine/internal/workflow"
)

// InsertScan records a radar scan result. The full story cards are stored as
// JSON so later phases can look candidates up by ID.
func (db *DB) InsertScan(scan *workflow.RadarScanResponse) (int64, error) {
	stories, err := json.Marshal(scan.Stories)
	if err != nil {
		return 0, fmt.Errorf("serializing scan stories: %w", err)
	}

	fallback := 0
	if scan.FallbackUsed {
		fallback = 1
	}

	result, err := db.conn.Exec(
		"INSERT INTO scans (scan_timestamp, story_count, fallback_used, stories_json) VALUES (?, ?, ?, ?)",
		scan.ScanTimestamp, len(scan.Stories), fallback, string(stories),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestScan returns the most recent radar scan, or nil if none exists.
func (db *DB) GetLatestScan() (*workflow.RadarScanResponse, error) {
	row := db.conn.QueryRow(
		"SELECT scan_timestamp, fallback_used, stories_json FROM scans ORDER BY id DESC LIMIT 1",
	)

	var (
		scan     workflow.RadarScanResponse
		fallback int
		stories  string
	)
	if err := row.Scan(&scan.ScanTimestamp, &fallback, &stories); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(stories), &scan.Stories); err != nil {
		return nil, fmt.Errorf("parsing stored scan: %w", err)
	}
	scan.FallbackUsed = fallback != 0
	return &scan, nil
}
