package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/spec"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render/rendertest"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/storage"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/world/maploader"
)

var errTest = errors.New("test failure")

// fakeGUI records the callbacks routed to it.
type fakeGUI struct {
	draws         int
	keyPresses    []render.Key
	keyReleases   []render.Key
	mouseMotions  int
	mouseReleases int
}

func (g *fakeGUI) Draw(screen render.Image) { g.draws++ }

func (g *fakeGUI) OnKeyPress(key render.Key, mods render.Modifiers) {
	g.keyPresses = append(g.keyPresses, key)
}

func (g *fakeGUI) OnKeyRelease(key render.Key, mods render.Modifiers) {
	g.keyReleases = append(g.keyReleases, key)
}

func (g *fakeGUI) OnMouseMotion(x, y, dx, dy int) { g.mouseMotions++ }

func (g *fakeGUI) OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers) {
	g.mouseReleases++
}

// memSaves is an in-memory SaveStore.
type memSaves struct {
	slots map[string]storage.Save
}

func newMemSaves() *memSaves { return &memSaves{slots: map[string]storage.Save{}} }

func (m *memSaves) SaveGame(save storage.Save) error {
	m.slots[save.Slot] = save
	return nil
}

func (m *memSaves) LoadGame(slot string) (storage.Save, error) {
	save, ok := m.slots[slot]
	if !ok {
		return storage.Save{}, fmt.Errorf("%w: slot %q", storage.ErrNoSave, slot)
	}
	return save, nil
}

const coreAtlasJSON = `{
	"name": "test",
	"image_path": "atlas.png",
	"tile_width": 32,
	"tile_height": 32,
	"tiles": [
		{ "name": "grass", "atlas_x": 0, "atlas_y": 0, "properties": { "walkable": true } }
	]
}`

// writeGameSpec writes a minimal two-region game to disk.
func writeGameSpec(t *testing.T) *spec.GameSpec {
	t.Helper()

	dir := t.TempDir()
	atlasPath := filepath.Join(dir, "atlas.json")
	if err := os.WriteFile(atlasPath, []byte(coreAtlasJSON), 0o644); err != nil {
		t.Fatalf("Failed to write atlas: %v", err)
	}

	row := []string{"grass", "grass", "grass", "grass", "grass"}
	writeMap := func(name string) string {
		data := maploader.MapData{
			Name:      name,
			Width:     5,
			Height:    5,
			TileSize:  32,
			AtlasPath: atlasPath,
			Tiles:     [][]string{row, row, row, row, row},
			KeyPoints: []maploader.KeyPointData{{Name: "Start", X: 80, Y: 80}},
		}
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("Failed to marshal map: %v", err)
		}
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatalf("Failed to write map: %v", err)
		}
		return path
	}

	return &spec.GameSpec{
		Name: "test",
		World: spec.WorldSpec{
			InitialRegion: "village",
			Regions: []spec.RegionSpec{
				{Name: "village", MapFile: writeMap("village")},
				{Name: "cave", MapFile: writeMap("cave")},
			},
		},
		Player: spec.SpriteSpec{Name: "player", Width: 32, Height: 32},
		Sprites: map[string]spec.SpriteSpec{
			"slime": {Name: "slime", Width: 32, Height: 32},
		},
	}
}

// newTestCore builds a core over a temp game spec with a fake start screen.
func newTestCore(t *testing.T, mutate func(*Config)) (*Core, *fakeGUI) {
	t.Helper()

	startGUI := &fakeGUI{}
	cfg := Config{
		Spec:       writeGameSpec(t),
		Renderer:   rendertest.NewRenderer(),
		Loader:     rendertest.NewLoader(),
		InitialGUI: func(api scripts.GameAPI) scripts.GUI { return startGUI },
	}
	if mutate != nil {
		mutate(&cfg)
	}

	core, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	core.Setup()
	return core, startGUI
}

func TestNewValidatesConfig(t *testing.T) {
	gameSpec := writeGameSpec(t)
	renderer := rendertest.NewRenderer()
	initialGUI := func(api scripts.GameAPI) scripts.GUI { return &fakeGUI{} }

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing spec", Config{Renderer: renderer, InitialGUI: initialGUI}},
		{"missing renderer", Config{Spec: gameSpec, InitialGUI: initialGUI}},
		{"missing initial GUI", Config{Spec: gameSpec, Renderer: renderer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestCallbacksBeforeSetupAreFatal(t *testing.T) {
	core, err := New(Config{
		Spec:       writeGameSpec(t),
		Renderer:   rendertest.NewRenderer(),
		Loader:     rendertest.NewLoader(),
		InitialGUI: func(api scripts.GameAPI) scripts.GUI { return &fakeGUI{} },
	})
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}

	core.OnKeyPress(render.KeyEnter, 0)
	if !errors.Is(core.Err(), ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", core.Err())
	}
}

func TestWorldCallsBeforeStartReturnNotInitialized(t *testing.T) {
	core, _ := newTestCore(t, func(cfg *Config) { cfg.Saves = newMemSaves() })

	checks := map[string]error{
		"ChangeRegion":   core.ChangeRegion("cave", "Start"),
		"CreateSprite":   core.CreateSprite("slime", "s1", 0, 0, nil),
		"SetPlayerState": core.SetPlayerState(map[string]any{}),
		"SaveGame":       core.SaveGame("slot1"),
	}
	if _, err := core.KeyPoints(""); err != nil {
		checks["KeyPoints"] = err
	} else {
		t.Error("Expected KeyPoints to fail before start")
	}
	if _, err := core.PlayerState(); err != nil {
		checks["PlayerState"] = err
	} else {
		t.Error("Expected PlayerState to fail before start")
	}

	for op, err := range checks {
		if !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%s: expected ErrNotInitialized, got %v", op, err)
		}
	}
}

func TestStartGameCreatesWorldOnce(t *testing.T) {
	core, _ := newTestCore(t, nil)

	if core.World() != nil {
		t.Fatal("Expected no world before StartGame")
	}

	core.StartGame()
	world := core.World()
	if world == nil {
		t.Fatal("Expected world after StartGame")
	}
	if core.Err() != nil {
		t.Fatalf("StartGame failed: %v", core.Err())
	}

	// Walk into the world a little, detour through a menu, and resume.
	if err := core.SetPlayerState(map[string]any{"gold": 3}); err != nil {
		t.Fatalf("SetPlayerState failed: %v", err)
	}
	core.ShowGUI(&fakeGUI{})
	core.StartGame()

	if core.World() != world {
		t.Error("Expected StartGame to reuse the existing world")
	}
	state, err := core.PlayerState()
	if err != nil {
		t.Fatalf("PlayerState failed: %v", err)
	}
	if state["gold"] != 3 {
		t.Errorf("Expected player state to survive the menu detour, got %v", state)
	}
}

func TestCallbacksRouteToActiveState(t *testing.T) {
	core, startGUI := newTestCore(t, nil)
	screen := rendertest.NewImage(ScreenWidth, ScreenHeight)

	// GUI state first.
	core.OnKeyPress(render.KeyEnter, 0)
	core.OnMouseMotion(10, 10, 1, 1)
	core.OnMouseRelease(10, 10, render.MouseButtonLeft, 0)
	core.OnDraw(screen)

	if len(startGUI.keyPresses) != 1 || startGUI.keyPresses[0] != render.KeyEnter {
		t.Errorf("Expected Enter routed to GUI, got %v", startGUI.keyPresses)
	}
	if startGUI.mouseMotions != 1 || startGUI.mouseReleases != 1 {
		t.Errorf("Expected mouse events routed to GUI, got %d motions, %d releases",
			startGUI.mouseMotions, startGUI.mouseReleases)
	}
	if startGUI.draws != 1 {
		t.Errorf("Expected 1 GUI draw, got %d", startGUI.draws)
	}

	// While a GUI is up the world does not advance.
	core.StartGame()
	core.ShowGUI(startGUI)
	before := core.World().GameTime()
	core.OnUpdate(1.0 / 60)
	if core.World().GameTime() != before {
		t.Error("Expected world frozen while GUI is shown")
	}

	// Back in the game, updates reach the world and input stops reaching
	// the GUI.
	core.StartGame()
	core.OnUpdate(1.0 / 60)
	if core.World().GameTime() == before {
		t.Error("Expected world to advance in the in-game state")
	}

	core.OnKeyPress(render.KeyW, 0)
	if len(startGUI.keyPresses) != 1 {
		t.Errorf("Expected no further GUI key presses, got %v", startGUI.keyPresses)
	}
}

func TestChangeRegion(t *testing.T) {
	core, _ := newTestCore(t, nil)
	core.StartGame()

	if err := core.ChangeRegion("cave", "Start"); err != nil {
		t.Fatalf("ChangeRegion failed: %v", err)
	}
	if core.World().ActiveRegion() != "cave" {
		t.Errorf("Expected active region 'cave', got '%s'", core.World().ActiveRegion())
	}

	if err := core.ChangeRegion("moon", "Start"); err == nil {
		t.Error("Expected error for unknown region")
	}
}

func TestCreateSpriteChecksSpecName(t *testing.T) {
	core, _ := newTestCore(t, nil)
	core.StartGame()

	if err := core.CreateSprite("slime", "s1", 40, 40, nil); err != nil {
		t.Errorf("CreateSprite failed: %v", err)
	}
	if err := core.CreateSprite("dragon", "d1", 40, 40, nil); err == nil {
		t.Error("Expected error for unknown sprite spec")
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	saves := newMemSaves()
	core, _ := newTestCore(t, func(cfg *Config) { cfg.Saves = saves })

	core.StartGame()
	if err := core.ChangeRegion("cave", "Start"); err != nil {
		t.Fatalf("ChangeRegion failed: %v", err)
	}
	core.World().Player().SetLocation(100, 120)
	if err := core.SetPlayerState(map[string]any{"gold": 7}); err != nil {
		t.Fatalf("SetPlayerState failed: %v", err)
	}

	if err := core.SaveGame("slot1"); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	save := saves.slots["slot1"]
	if save.Region != "cave" || save.X != 100 || save.Y != 120 {
		t.Errorf("Expected save in cave at (100, 120), got %+v", save)
	}

	// Wander off, then load.
	if err := core.ChangeRegion("village", "Start"); err != nil {
		t.Fatalf("ChangeRegion failed: %v", err)
	}
	if err := core.LoadGame("slot1"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	if core.World().ActiveRegion() != "cave" {
		t.Errorf("Expected load to restore region 'cave', got '%s'", core.World().ActiveRegion())
	}
	x, y := core.World().Player().Location()
	if x != 100 || y != 120 {
		t.Errorf("Expected player restored to (100, 120), got (%v, %v)", x, y)
	}
	state, _ := core.PlayerState()
	if state["gold"] != 7 {
		t.Errorf("Expected restored gold 7, got %v", state["gold"])
	}

	if err := core.LoadGame("empty"); !errors.Is(err, storage.ErrNoSave) {
		t.Errorf("Expected ErrNoSave for empty slot, got %v", err)
	}
}

func TestLoadGameRestoresTheClock(t *testing.T) {
	saves := newMemSaves()
	core, _ := newTestCore(t, func(cfg *Config) { cfg.Saves = saves })

	core.StartGame()
	for i := 0; i < 120; i++ {
		core.OnUpdate(1.0 / 60)
	}
	saved := core.World().GameTime()
	if saved < 1.9 {
		t.Fatalf("Expected about 2 seconds on the clock, got %v", saved)
	}
	if err := core.SaveGame("slot1"); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	// A fresh core, as after restarting the program.
	fresh, _ := newTestCore(t, func(cfg *Config) { cfg.Saves = saves })
	if err := fresh.LoadGame("slot1"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if got := fresh.World().GameTime(); got != saved {
		t.Errorf("Expected game time %v restored, got %v", saved, got)
	}

	// Loading into a running world rewinds its clock too.
	for i := 0; i < 60; i++ {
		core.OnUpdate(1.0 / 60)
	}
	if err := core.LoadGame("slot1"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if got := core.World().GameTime(); got != saved {
		t.Errorf("Expected game time rewound to %v, got %v", saved, got)
	}
}

func TestLoadGameStartsTheWorld(t *testing.T) {
	saves := newMemSaves()
	saves.slots["slot1"] = storage.Save{
		Slot: "slot1", Region: "cave", X: 80, Y: 80,
		PlayerState: map[string]any{"gold": 1},
	}
	core, _ := newTestCore(t, func(cfg *Config) { cfg.Saves = saves })

	if err := core.LoadGame("slot1"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if core.World() == nil {
		t.Fatal("Expected LoadGame to create the world")
	}
	if core.World().ActiveRegion() != "cave" {
		t.Errorf("Expected region 'cave', got '%s'", core.World().ActiveRegion())
	}
}

func TestSaveGameWithoutStore(t *testing.T) {
	core, _ := newTestCore(t, nil)
	core.StartGame()

	if err := core.SaveGame("slot1"); err == nil {
		t.Error("Expected error when no save store is configured")
	}
	if err := core.LoadGame("slot1"); err == nil {
		t.Error("Expected error when no save store is configured")
	}
}
