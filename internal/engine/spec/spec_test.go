package spec

import (
	"os"
	"strings"
	"testing"
)

func validSpec() *GameSpec {
	return &GameSpec{
		Name: "test",
		World: WorldSpec{
			InitialRegion: "village",
			Regions: []RegionSpec{
				{Name: "village", MapFile: "maps/village.json"},
				{Name: "cave", MapFile: "maps/cave.json"},
			},
		},
		Player: SpriteSpec{Name: "player", Width: 32, Height: 32},
		Sprites: map[string]SpriteSpec{
			"slime": {Name: "slime", Width: 32, Height: 32},
		},
	}
}

func TestValidateAcceptsValidSpec(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Errorf("Expected valid spec, got error: %v", err)
	}
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameSpec)
		wantErr string
	}{
		{
			name:    "no regions",
			mutate:  func(gs *GameSpec) { gs.World.Regions = nil },
			wantErr: "no regions",
		},
		{
			name:    "missing initial region",
			mutate:  func(gs *GameSpec) { gs.World.InitialRegion = "" },
			wantErr: "initial_region is required",
		},
		{
			name:    "unknown initial region",
			mutate:  func(gs *GameSpec) { gs.World.InitialRegion = "moon" },
			wantErr: "not a defined region",
		},
		{
			name:    "region without map file",
			mutate:  func(gs *GameSpec) { gs.World.Regions[1].MapFile = "" },
			wantErr: "no map_file",
		},
		{
			name: "duplicate region name",
			mutate: func(gs *GameSpec) {
				gs.World.Regions[1] = RegionSpec{Name: "village", MapFile: "maps/other.json"}
			},
			wantErr: "duplicate region name",
		},
		{
			name:    "player with zero size",
			mutate:  func(gs *GameSpec) { gs.Player.Width = 0 },
			wantErr: "invalid dimensions",
		},
		{
			name: "sprite with negative size",
			mutate: func(gs *GameSpec) {
				gs.Sprites["slime"] = SpriteSpec{Name: "slime", Width: 32, Height: -1}
			},
			wantErr: "invalid dimensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := validSpec()
			tt.mutate(gs)

			err := gs.Validate()
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	jsonData := `{
		"name": "test game",
		"world": {
			"initial_region": "village",
			"regions": [
				{ "name": "village", "map_file": "maps/village.json" }
			]
		},
		"player": { "name": "player", "image_path": "player.png", "width": 32, "height": 48 },
		"sprites": {
			"slime": { "name": "slime", "image_path": "slime.png", "width": 16, "height": 16 }
		}
	}`

	f, err := os.CreateTemp(t.TempDir(), "spec-*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := f.WriteString(jsonData); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	f.Close()

	gs, err := Load(f.Name())
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}

	if gs.Name != "test game" {
		t.Errorf("Expected name 'test game', got '%s'", gs.Name)
	}
	if gs.World.InitialRegion != "village" {
		t.Errorf("Expected initial region 'village', got '%s'", gs.World.InitialRegion)
	}
	if gs.Player.Height != 48 {
		t.Errorf("Expected player height 48, got %d", gs.Player.Height)
	}

	if _, ok := gs.Region("village"); !ok {
		t.Error("Expected region 'village' to be defined")
	}
	if _, ok := gs.Region("moon"); ok {
		t.Error("Did not expect region 'moon' to be defined")
	}

	slime, ok := gs.Sprite("slime")
	if !ok {
		t.Fatal("Expected sprite 'slime' to be defined")
	}
	if slime.Width != 16 {
		t.Errorf("Expected slime width 16, got %d", slime.Width)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
