// Package storage provides SQLite-based persistence for game saves.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSave is returned when a save slot does not exist.
var ErrNoSave = errors.New("storage: no such save")

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// Save is a snapshot of a game in progress, keyed by slot name. Saving to an
// occupied slot overwrites it.
type Save struct {
	ID          string
	Slot        string
	Region      string
	X, Y        float64
	GameTime    float64
	PlayerState map[string]any
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			slot TEXT NOT NULL UNIQUE,
			region TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			game_time REAL NOT NULL DEFAULT 0,
			player_state TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saves_slot ON saves(slot);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes a save into its slot, replacing any previous save there.
func (s *Store) SaveGame(save Save) error {
	if save.Slot == "" {
		return fmt.Errorf("storage: save slot is required")
	}

	state, err := json.Marshal(save.PlayerState)
	if err != nil {
		return fmt.Errorf("storage: cannot encode player state: %w", err)
	}

	id := save.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (id, slot, region, x, y, game_time, player_state)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			region = excluded.region,
			x = excluded.x,
			y = excluded.y,
			game_time = excluded.game_time,
			player_state = excluded.player_state,
			created_at = CURRENT_TIMESTAMP`,
		id, save.Slot, save.Region, save.X, save.Y, save.GameTime, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}

	return nil
}

// LoadGame retrieves the save in the given slot. Returns ErrNoSave if the
// slot is empty.
func (s *Store) LoadGame(slot string) (Save, error) {
	var save Save
	var state string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, slot, region, x, y, game_time, player_state, created_at
		 FROM saves
		 WHERE slot = ?`,
		slot,
	).Scan(&save.ID, &save.Slot, &save.Region, &save.X, &save.Y, &save.GameTime, &state, &createdAt)

	if err == sql.ErrNoRows {
		return Save{}, fmt.Errorf("%w: slot %q", ErrNoSave, slot)
	}
	if err != nil {
		return Save{}, fmt.Errorf("storage: cannot query save: %w", err)
	}

	if err := json.Unmarshal([]byte(state), &save.PlayerState); err != nil {
		return Save{}, fmt.Errorf("storage: cannot decode player state: %w", err)
	}

	save.CreatedAt = parseTimestamp(createdAt)

	return save, nil
}

// ListSaves retrieves every save, most recent first.
func (s *Store) ListSaves() ([]Save, error) {
	rows, err := s.db.Query(
		`SELECT id, slot, region, x, y, game_time, player_state, created_at
		 FROM saves
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		var save Save
		var state string
		var createdAt any
		if err := rows.Scan(&save.ID, &save.Slot, &save.Region, &save.X, &save.Y, &save.GameTime, &state, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(state), &save.PlayerState); err != nil {
			return nil, fmt.Errorf("storage: cannot decode player state: %w", err)
		}

		save.CreatedAt = parseTimestamp(createdAt)
		saves = append(saves, save)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes the save in the given slot, if any.
func (s *Store) DeleteSave(slot string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string representations the
// driver may return for DATETIME columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
