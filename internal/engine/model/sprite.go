package model

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/spec"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// Sprite is a visual entity placed in the world at a location. Positions are
// the sprite's center in region pixels; velocities are pixels per update.
type Sprite struct {
	name string
	spec spec.SpriteSpec

	// Image may be nil when running headless; the view falls back to a
	// placeholder shape.
	image render.Image

	x, y             float64
	vx, vy           float64
	facingX, facingY float64
}

// NewSprite creates a sprite from its spec, facing south.
func NewSprite(s spec.SpriteSpec, name string, x, y float64, image render.Image) *Sprite {
	return &Sprite{
		name:    name,
		spec:    s,
		image:   image,
		x:       x,
		y:       y,
		facingY: 1,
	}
}

// Name returns the sprite's unique name.
func (s *Sprite) Name() string { return s.name }

// Location returns the sprite's center.
func (s *Sprite) Location() (x, y float64) { return s.x, s.y }

// SetLocation moves the sprite's center.
func (s *Sprite) SetLocation(x, y float64) {
	s.x = x
	s.y = y
}

// Velocity returns the sprite's velocity in pixels per update.
func (s *Sprite) Velocity() (vx, vy float64) { return s.vx, s.vy }

// SetVelocity sets the sprite's velocity in pixels per update.
func (s *Sprite) SetVelocity(vx, vy float64) {
	s.vx = vx
	s.vy = vy
}

// Facing returns the direction the sprite is facing.
func (s *Sprite) Facing() (fx, fy float64) { return s.facingX, s.facingY }

// SetFacing sets the direction the sprite is facing.
func (s *Sprite) SetFacing(fx, fy float64) {
	s.facingX = fx
	s.facingY = fy
}

// Spec returns the sprite's spec.
func (s *Sprite) Spec() spec.SpriteSpec { return s.spec }

// Image returns the sprite's image, which may be nil.
func (s *Sprite) Image() render.Image { return s.image }

// Bounds returns the sprite's axis-aligned bounding box.
func (s *Sprite) Bounds() Rect {
	w := float64(s.spec.Width)
	h := float64(s.spec.Height)
	return Rect{
		X:      s.x - w/2,
		Y:      s.y - h/2,
		Width:  w,
		Height: h,
	}
}

// advance applies the sprite's velocity for one update.
func (s *Sprite) advance() {
	s.x += s.vx
	s.y += s.vy
}

// Zone is a rectangular trigger area defined by a map's object layer. It
// owns a script but has no image.
type Zone struct {
	name       string
	rect       Rect
	properties map[string]any
}

// NewZone creates a zone from a map object.
func NewZone(name string, rect Rect, properties map[string]any) *Zone {
	return &Zone{
		name:       name,
		rect:       rect,
		properties: properties,
	}
}

// Name returns the zone's name.
func (z *Zone) Name() string { return z.name }

// Location returns the zone's center.
func (z *Zone) Location() (x, y float64) {
	return z.rect.X + z.rect.Width/2, z.rect.Y + z.rect.Height/2
}

// Bounds returns the zone's rectangle.
func (z *Zone) Bounds() Rect { return z.rect }

// Properties returns the zone's map properties.
func (z *Zone) Properties() map[string]any { return z.properties }

// Rect is an axis-aligned rectangle in region pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Contains reports whether the point (x, y) lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
