package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	save := Save{
		Slot:     "slot1",
		Region:   "cave",
		X:        100.5,
		Y:        -20,
		GameTime: 42.25,
		PlayerState: map[string]any{
			"gold":      float64(7),
			"has_sword": true,
		},
	}
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	got, err := store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	if got.ID == "" {
		t.Error("Expected a generated ID")
	}
	if got.Slot != "slot1" || got.Region != "cave" {
		t.Errorf("Expected slot1/cave, got %s/%s", got.Slot, got.Region)
	}
	if got.X != 100.5 || got.Y != -20 {
		t.Errorf("Expected position (100.5, -20), got (%v, %v)", got.X, got.Y)
	}
	if got.GameTime != 42.25 {
		t.Errorf("Expected game time 42.25, got %v", got.GameTime)
	}
	if got.PlayerState["gold"] != float64(7) || got.PlayerState["has_sword"] != true {
		t.Errorf("Unexpected player state: %v", got.PlayerState)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected a created timestamp")
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGame(Save{Slot: "slot1", Region: "village", X: 1, Y: 1}); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if err := store.SaveGame(Save{Slot: "slot1", Region: "cave", X: 2, Y: 2}); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	got, err := store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if got.Region != "cave" || got.X != 2 {
		t.Errorf("Expected the second save, got %+v", got)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves failed: %v", err)
	}
	if len(saves) != 1 {
		t.Errorf("Expected 1 save after overwrite, got %d", len(saves))
	}
}

func TestSaveRequiresSlot(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGame(Save{Region: "cave"}); err == nil {
		t.Error("Expected error for empty slot")
	}
}

func TestLoadMissingSlot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame("nope")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("Expected ErrNoSave, got %v", err)
	}
}

func TestListSaves(t *testing.T) {
	store := openTestStore(t)

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves failed: %v", err)
	}
	if len(saves) != 0 {
		t.Errorf("Expected no saves in a fresh store, got %d", len(saves))
	}

	for _, slot := range []string{"a", "b", "c"} {
		if err := store.SaveGame(Save{Slot: slot, Region: "village"}); err != nil {
			t.Fatalf("SaveGame failed: %v", err)
		}
	}

	saves, err = store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves failed: %v", err)
	}
	if len(saves) != 3 {
		t.Errorf("Expected 3 saves, got %d", len(saves))
	}
}

func TestDeleteSave(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGame(Save{Slot: "slot1", Region: "village"}); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if err := store.DeleteSave("slot1"); err != nil {
		t.Fatalf("DeleteSave failed: %v", err)
	}
	if _, err := store.LoadGame("slot1"); !errors.Is(err, ErrNoSave) {
		t.Errorf("Expected ErrNoSave after delete, got %v", err)
	}

	// Deleting an empty slot is not an error.
	if err := store.DeleteSave("nope"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.SaveGame(Save{Slot: "slot1", Region: "village"}); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store.Close()

	got, err := store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame after reopen failed: %v", err)
	}
	if got.Region != "village" {
		t.Errorf("Expected region 'village', got '%s'", got.Region)
	}
}

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if got := parseTimestamp(now); !got.Equal(now) {
		t.Errorf("Expected %v, got %v", now, got)
	}
	if got := parseTimestamp("2024-05-01 12:30:00"); !got.Equal(now) {
		t.Errorf("Expected %v, got %v", now, got)
	}
	if got := parseTimestamp("garbage"); !got.IsZero() {
		t.Errorf("Expected zero time, got %v", got)
	}
	if got := parseTimestamp(nil); !got.IsZero() {
		t.Errorf("Expected zero time for nil, got %v", got)
	}
}
