package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gfpd/contentengine/internal/workflow"
)

// Storage keys, one blob each: the workflow state and the mode preference
// are persisted independently.
const (
	stateKey = "gfpd-workflow-state"
	modeKey  = "gfpd-settings"
)

// SetValue inserts or replaces a raw value in the kv store.
func (db *DB) SetValue(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	return err
}

// GetValue returns a raw value from the kv store, or ok=false if absent.
func (db *DB) GetValue(key string) (value string, ok bool, err error) {
	row := db.conn.QueryRow("SELECT value FROM kv_store WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// DeleteValue removes a key from the kv store.
func (db *DB) DeleteValue(key string) error {
	_, err := db.conn.Exec("DELETE FROM kv_store WHERE key = ?", key)
	return err
}

// SaveState serializes the workflow state into its storage key.
func (db *DB) SaveState(s *workflow.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializing workflow state: %w", err)
	}
	if err := db.SetValue(stateKey, string(data)); err != nil {
		return fmt.Errorf("saving workflow state: %w", err)
	}
	return nil
}

// LoadState rehydrates the workflow state. Missing, corrupt, or
// unrecognized-version storage falls back to the initial state without error.
func (db *DB) LoadState() *workflow.State {
	raw, ok, err := db.GetValue(stateKey)
	if err != nil || !ok {
		return workflow.NewState()
	}

	s := &workflow.State{}
	if err := json.Unmarshal([]byte(raw), s); err != nil {
		log.Printf("corrupt workflow state, starting fresh: %v", err)
		return workflow.NewState()
	}
	if s.SchemaVersion != workflow.SchemaVersion || s.CurrentPhase == "" {
		log.Printf("unrecognized workflow state (schema %d), starting fresh", s.SchemaVersion)
		return workflow.NewState()
	}
	return s
}

// ClearState removes the persisted workflow state.
func (db *DB) ClearState() error {
	return db.DeleteValue(stateKey)
}

type modeSettings struct {
	Mode workflow.Mode `json:"mode"`
}

// SaveMode persists the content-mode preference under its own key.
func (db *DB) SaveMode(m workflow.Mode) error {
	data, err := json.Marshal(modeSettings{Mode: m})
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}
	return db.SetValue(modeKey, string(data))
}

// LoadMode returns the persisted mode preference, or fallback when no valid
// preference is stored.
func (db *DB) LoadMode(fallback workflow.Mode) workflow.Mode {
	raw, ok, err := db.GetValue(modeKey)
	if err != nil || !ok {
		return fallback
	}
	var s modeSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil || !s.Mode.Valid() {
		return fallback
	}
	return s.Mode
}
