package scripts

import (
	"fmt"
	"testing"
)

func TestTransitionRegion(t *testing.T) {
	api := newFakeAPI()

	err := TransitionRegion(api, map[string]any{"region": "cave", "start_location": "Entrance"})
	if err != nil {
		t.Fatalf("TransitionRegion failed: %v", err)
	}
	if len(api.regions) != 1 || api.regions[0] != "cave/Entrance" {
		t.Errorf("Expected transition to cave/Entrance, got %v", api.regions)
	}
}

func TestTransitionRegionDefaultsStart(t *testing.T) {
	api := newFakeAPI()

	if err := TransitionRegion(api, map[string]any{"region": "cave"}); err != nil {
		t.Fatalf("TransitionRegion failed: %v", err)
	}
	if api.regions[0] != "cave/Start" {
		t.Errorf("Expected default start location 'Start', got %v", api.regions[0])
	}
}

func TestTransitionRegionRequiresRegion(t *testing.T) {
	if err := TransitionRegion(newFakeAPI(), map[string]any{}); err == nil {
		t.Error("Expected error for missing region argument")
	}
}

func TestSaveLoadHandlersDefaultSlot(t *testing.T) {
	api := newFakeAPI()

	if err := SaveGameHandler(api, map[string]any{}); err != nil {
		t.Fatalf("SaveGameHandler failed: %v", err)
	}
	if err := LoadGameHandler(api, map[string]any{"slot": "slot2"}); err != nil {
		t.Fatalf("LoadGameHandler failed: %v", err)
	}

	if len(api.saved) != 1 || api.saved[0] != "default" {
		t.Errorf("Expected save to 'default', got %v", api.saved)
	}
	if len(api.loaded) != 1 || api.loaded[0] != "slot2" {
		t.Errorf("Expected load from 'slot2', got %v", api.loaded)
	}
}

// alwaysSpawn makes the per-tick spawn probability certain.
const alwaysSpawn = 1000.0

func TestSpawnerSpawnsUpToPopulation(t *testing.T) {
	api := newFakeAPI()
	s := NewSpawner(SpawnerConfig{
		SpriteSpec:        "slime",
		Name:              "nest",
		NumSpawns:         2,
		SpawnRatePerSec:   alwaysSpawn,
		SpawnCooldownSecs: 5,
	})
	s.SetAPI(api)
	s.OnStart(&fakeOwner{name: "nest", x: 10, y: 20})

	// First spawn is held back by the initial cooldown until gameTime
	// passes zero.
	s.OnTick(1, 1)
	if len(api.created) != 1 {
		t.Fatalf("Expected 1 spawn, got %d", len(api.created))
	}
	if api.created[0] != "nest_spawn1" {
		t.Errorf("Expected name 'nest_spawn1', got '%s'", api.created[0])
	}

	// Within the cooldown nothing spawns.
	s.OnTick(3, 1)
	if len(api.created) != 1 {
		t.Errorf("Expected cooldown to block spawning, got %d spawns", len(api.created))
	}

	s.OnTick(7, 1)
	if len(api.created) != 2 {
		t.Fatalf("Expected 2 spawns after cooldown, got %d", len(api.created))
	}
	if api.created[1] != "nest_spawn2" {
		t.Errorf("Expected name 'nest_spawn2', got '%s'", api.created[1])
	}

	// Population cap reached.
	s.OnTick(20, 1)
	if len(api.created) != 2 {
		t.Errorf("Expected population cap of 2, got %d spawns", len(api.created))
	}
}

func TestSpawnerDefaults(t *testing.T) {
	s := NewSpawner(SpawnerConfig{SpriteSpec: "slime", Name: "nest"})

	if s.cfg.NumSpawns != DefaultNumSpawns {
		t.Errorf("Expected default NumSpawns %d, got %d", DefaultNumSpawns, s.cfg.NumSpawns)
	}
	if s.cfg.SpawnRatePerSec != DefaultSpawnRatePerSec {
		t.Errorf("Expected default SpawnRatePerSec %v, got %v", DefaultSpawnRatePerSec, s.cfg.SpawnRatePerSec)
	}
	if s.cfg.SpawnCooldownSecs != DefaultSpawnCooldownSecs {
		t.Errorf("Expected default SpawnCooldownSecs %v, got %v", DefaultSpawnCooldownSecs, s.cfg.SpawnCooldownSecs)
	}
}

func TestSpawnerReportsCreateErrors(t *testing.T) {
	api := newFakeAPI()
	api.createdErr = fmt.Errorf("no such spec")

	var gotErr error
	s := NewSpawner(SpawnerConfig{
		SpriteSpec:        "missing",
		Name:              "nest",
		SpawnRatePerSec:   alwaysSpawn,
		SpawnCooldownSecs: 1,
	})
	s.OnError = func(err error) { gotErr = err }
	s.SetAPI(api)
	s.OnStart(&fakeOwner{})

	s.OnTick(2, 1)

	if gotErr == nil {
		t.Fatal("Expected CreateSprite error to be reported")
	}
	if s.spawned != 0 {
		t.Errorf("Expected failed spawn to not count, got %d", s.spawned)
	}
}
