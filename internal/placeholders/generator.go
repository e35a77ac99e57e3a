// Package placeholders generates simple placeholder art for the shipped
// sample game: an overworld tile atlas and sprite images, so the game runs
// before any real art exists.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 32

// Palette defines colors for the overworld theme.
var Palette = struct {
	Grass     color.RGBA
	GrassDark color.RGBA
	Water     color.RGBA
	WaterDeep color.RGBA
	Wall      color.RGBA
	WallShade color.RGBA
	Path      color.RGBA
	CaveFloor color.RGBA
	CaveWall  color.RGBA
	Player    color.RGBA
	Slime     color.RGBA
	Villager  color.RGBA
	Outline   color.RGBA
}{
	Grass:     color.RGBA{90, 150, 70, 255},
	GrassDark: color.RGBA{75, 130, 60, 255},
	Water:     color.RGBA{60, 110, 180, 255},
	WaterDeep: color.RGBA{45, 85, 150, 255},
	Wall:      color.RGBA{130, 125, 115, 255},
	WallShade: color.RGBA{100, 95, 90, 255},
	Path:      color.RGBA{170, 150, 110, 255},
	CaveFloor: color.RGBA{70, 65, 60, 255},
	CaveWall:  color.RGBA{40, 38, 35, 255},

	Player:   color.RGBA{0, 255, 100, 255},
	Slime:    color.RGBA{150, 70, 200, 255},
	Villager: color.RGBA{230, 180, 80, 255},

	Outline: color.RGBA{20, 20, 20, 255},
}

// CreateSolidTile creates a tile filled with a single color.
func CreateSolidTile(fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	return img
}

// CreatePatternedTile creates a tile with a simple pattern over a base color.
func CreatePatternedTile(base, pattern color.RGBA, kind string) *image.RGBA {
	img := CreateSolidTile(base)

	switch kind {
	case "dots":
		quarter := TileSize / 4
		threeQuarter := 3 * TileSize / 4
		dots := []image.Point{{quarter, quarter}, {threeQuarter, quarter}, {quarter, threeQuarter}, {threeQuarter, threeQuarter}}
		for _, p := range dots {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					img.Set(p.X+dx, p.Y+dy, pattern)
				}
			}
		}
	case "waves":
		for y := 4; y < TileSize; y += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, y+(x/4)%2, pattern)
			}
		}
	case "bricks":
		for y := 0; y < TileSize; y += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, y, pattern)
			}
			offset := 0
			if (y/8)%2 == 1 {
				offset = 8
			}
			for x := offset; x < TileSize; x += 16 {
				for dy := 0; dy < 8; dy++ {
					img.Set(x, y+dy, pattern)
				}
			}
		}
	}

	return img
}

// CreateCircle creates a circular sprite on a transparent background.
func CreateCircle(fill, outline color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	center := TileSize / 2
	radius := TileSize/2 - 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fill)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outline)
			}
		}
	}

	return img
}

// CreateAtlas lays tiles out on a grid, left to right, top to bottom.
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * TileSize
		y := (i / columns) * TileSize
		draw.Draw(atlas, image.Rect(x, y, x+TileSize, y+TileSize), tile, image.Point{}, draw.Src)
	}

	return atlas
}

// SavePNG writes an image to a PNG file, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// GenerateAssets writes the sample game's placeholder art under dir.
//
// The overworld atlas holds, in order: grass, grass_dark, water, wall, path,
// cave_floor, cave_wall. The order must match the atlas JSON definitions.
func GenerateAssets(dir string) error {
	atlasTiles := []*image.RGBA{
		CreatePatternedTile(Palette.Grass, Palette.GrassDark, "dots"),
		CreateSolidTile(Palette.GrassDark),
		CreatePatternedTile(Palette.Water, Palette.WaterDeep, "waves"),
		CreatePatternedTile(Palette.Wall, Palette.WallShade, "bricks"),
		CreateSolidTile(Palette.Path),
		CreateSolidTile(Palette.CaveFloor),
		CreatePatternedTile(Palette.CaveWall, Palette.WallShade, "bricks"),
	}

	outputs := map[string]image.Image{
		"images/overworld.png": CreateAtlas(atlasTiles, len(atlasTiles)),
		"images/player.png":    CreateCircle(Palette.Player, Palette.Outline),
		"images/slime.png":     CreateCircle(Palette.Slime, Palette.Outline),
		"images/villager.png":  CreateCircle(Palette.Villager, Palette.Outline),
	}

	for name, img := range outputs {
		path := filepath.Join(dir, name)
		if err := SavePNG(img, path); err != nil {
			return fmt.Errorf("placeholders: writing %s: %w", path, err)
		}
	}

	return nil
}
