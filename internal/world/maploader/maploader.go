// Package maploader loads region maps from JSON: a grid of atlas tile names
// plus the object layers the world model consumes (key points, scripted
// objects, NPCs).
package maploader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/world/atlas"
)

// KeyPointData defines a named location in a region. The initial region must
// define one named "Start".
type KeyPointData struct {
	Name       string         `json:"name"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ObjectData defines a scripted object: a rectangular zone with properties
// that can bind scripts or named handlers.
type ObjectData struct {
	Name       string         `json:"name"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NPCData defines a creature placed in a region, drawn from the sprite
// catalog and optionally scripted.
type NPCData struct {
	Name       string         `json:"name"`
	Spec       string         `json:"spec"` // Sprite spec name in the game spec
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties,omitempty"`
}

// MapData represents the loaded map configuration
type MapData struct {
	Name      string         `json:"name"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	TileSize  int            `json:"tile_size"`
	AtlasPath string         `json:"atlas"`
	Tiles     [][]string     `json:"tiles"` // 2D array of tile names [y][x]
	KeyPoints []KeyPointData `json:"key_points,omitempty"`
	Objects   []ObjectData   `json:"objects,omitempty"`
	NPCs      []NPCData      `json:"npcs,omitempty"`
}

// Map represents a loaded map with its atlas
type Map struct {
	Data  *MapData
	Atlas *atlas.Atlas
}

// LoadMap loads a map from a JSON file and its associated atlas
func LoadMap(mapPath string, loader render.ResourceLoader) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}

	atlasObj, err := atlas.LoadAtlas(mapData.AtlasPath, loader)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas %s: %w", mapData.AtlasPath, err)
	}

	return &Map{
		Data:  &mapData,
		Atlas: atlasObj,
	}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", data.TileSize)
	}

	if data.AtlasPath == "" {
		return fmt.Errorf("atlas path is required")
	}

	if len(data.Tiles) != data.Height {
		return fmt.Errorf("tiles array height mismatch: expected %d, got %d", data.Height, len(data.Tiles))
	}

	for y, row := range data.Tiles {
		if len(row) != data.Width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
	}

	for i, point := range data.KeyPoints {
		if point.Name == "" {
			return fmt.Errorf("key point %d has no name", i)
		}
	}

	for i, obj := range data.Objects {
		if obj.Name == "" {
			return fmt.Errorf("scripted object %d has no name", i)
		}
		if obj.Properties == nil {
			return fmt.Errorf("scripted object %q has no properties", obj.Name)
		}
	}

	for i, npc := range data.NPCs {
		if npc.Name == "" {
			return fmt.Errorf("NPC %d has no name", i)
		}
		if npc.Spec == "" {
			return fmt.Errorf("NPC %q has no spec", npc.Name)
		}
	}

	return nil
}

// GetTileAt returns the tile name at the given grid coordinates
func (m *Map) GetTileAt(x, y int) (string, error) {
	if x < 0 || x >= m.Data.Width || y < 0 || y >= m.Data.Height {
		return "", fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	return m.Data.Tiles[y][x], nil
}

// GetTileDefAt returns the tile definition at the given grid coordinates
func (m *Map) GetTileDefAt(x, y int) (*atlas.TileDefinition, error) {
	tileName, err := m.GetTileAt(x, y)
	if err != nil {
		return nil, err
	}

	tile, ok := m.Atlas.GetTile(tileName)
	if !ok {
		return nil, fmt.Errorf("tile not found in atlas: %s", tileName)
	}

	return tile, nil
}

// IsWalkable returns whether the tile at the given coordinates is walkable.
// Empty tiles are walkable; tiles outside the map are not.
func (m *Map) IsWalkable(x, y int) bool {
	tileName, err := m.GetTileAt(x, y)
	if err != nil {
		return false
	}
	if tileName == "" {
		return true
	}
	tile, ok := m.Atlas.GetTile(tileName)
	if !ok {
		return false
	}
	return tile.GetTilePropertyBool("walkable", true)
}

// KeyPoint returns the key point with the given name.
func (m *Map) KeyPoint(name string) (KeyPointData, bool) {
	for _, point := range m.Data.KeyPoints {
		if point.Name == name {
			return point, true
		}
	}
	return KeyPointData{}, false
}

// PixelWidth returns the width of the map in pixels.
func (m *Map) PixelWidth() float64 {
	return float64(m.Data.Width * m.Data.TileSize)
}

// PixelHeight returns the height of the map in pixels.
func (m *Map) PixelHeight() float64 {
	return float64(m.Data.Height * m.Data.TileSize)
}
