// Package spec defines the JSON game specification: the world's regions,
// the sprite catalog, and the player's sprite.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

// SpriteSpec describes one kind of sprite: the image it renders with and its
// footprint in the world.
type SpriteSpec struct {
	Name      string `json:"name"`
	ImagePath string `json:"image_path"` // Path to the sprite's image file
	Width     int    `json:"width"`      // Footprint width in pixels
	Height    int    `json:"height"`     // Footprint height in pixels
}

// RegionSpec describes one region of the world.
type RegionSpec struct {
	Name    string `json:"name"`
	MapFile string `json:"map_file"` // Path to the region's map JSON
}

// WorldSpec describes the world: its regions and where the game begins.
type WorldSpec struct {
	InitialRegion string       `json:"initial_region"`
	Regions       []RegionSpec `json:"regions"`
}

// GameSpec is the root of a game's data: the world layout, the sprite
// catalog, and the player's sprite spec.
type GameSpec struct {
	Name    string                `json:"name"`
	World   WorldSpec             `json:"world"`
	Sprites map[string]SpriteSpec `json:"sprites"`
	Player  SpriteSpec            `json:"player"`
}

// Load reads and validates a game spec from a JSON file.
func Load(path string) (*GameSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game spec %s: %w", path, err)
	}

	var gs GameSpec
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to parse game spec %s: %w", path, err)
	}

	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game spec %s: %w", path, err)
	}

	return &gs, nil
}

// Validate checks the spec's internal consistency.
func (gs *GameSpec) Validate() error {
	if len(gs.World.Regions) == 0 {
		return fmt.Errorf("no regions defined")
	}

	if gs.World.InitialRegion == "" {
		return fmt.Errorf("initial_region is required")
	}

	if _, ok := gs.Region(gs.World.InitialRegion); !ok {
		return fmt.Errorf("initial_region %q is not a defined region", gs.World.InitialRegion)
	}

	seen := make(map[string]bool, len(gs.World.Regions))
	for _, region := range gs.World.Regions {
		if region.Name == "" {
			return fmt.Errorf("region with empty name")
		}
		if region.MapFile == "" {
			return fmt.Errorf("region %q has no map_file", region.Name)
		}
		if seen[region.Name] {
			return fmt.Errorf("duplicate region name %q", region.Name)
		}
		seen[region.Name] = true
	}

	if gs.Player.Width <= 0 || gs.Player.Height <= 0 {
		return fmt.Errorf("player sprite has invalid dimensions: %dx%d", gs.Player.Width, gs.Player.Height)
	}

	for name, sprite := range gs.Sprites {
		if sprite.Width <= 0 || sprite.Height <= 0 {
			return fmt.Errorf("sprite %q has invalid dimensions: %dx%d", name, sprite.Width, sprite.Height)
		}
	}

	return nil
}

// Region returns the region spec with the given name.
func (gs *GameSpec) Region(name string) (RegionSpec, bool) {
	for _, region := range gs.World.Regions {
		if region.Name == name {
			return region, true
		}
	}
	return RegionSpec{}, false
}

// Sprite returns the sprite spec with the given name.
func (gs *GameSpec) Sprite(name string) (SpriteSpec, bool) {
	s, ok := gs.Sprites[name]
	return s, ok
}
