// Package render abstracts the underlying graphics and input engine so that
// game logic, the world model, and the GUI system never touch the windowing
// library directly. The concrete backend lives in render/ebiten; tests use
// in-memory fakes.
package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn
// from.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	SubImage(r image.Rectangle) Image

	Fill(clr color.Color)
	Clear()

	DrawImage(src Image, opts *DrawImageOptions)
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)

	// Reset resets the matrix to identity.
	Reset()
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// Key identifies a keyboard key in a backend-independent way.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyShift
	KeyControl
	KeyAlt
)

// Keys lists every key the input layer watches. The engine loop iterates it
// to turn polled key state into press/release callbacks.
var Keys = []Key{
	KeyW, KeyA, KeyS, KeyD, KeyE,
	KeyUp, KeyDown, KeyLeft, KeyRight,
	KeySpace, KeyEnter, KeyEscape,
	KeyShift, KeyControl, KeyAlt,
}

// Modifiers is a bitmask of modifier keys held during an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// MouseButtons lists every button the input layer watches.
var MouseButtons = []MouseButton{
	MouseButtonLeft,
	MouseButtonRight,
	MouseButtonMiddle,
}

// InputManager handles polled input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	IsKeyJustReleased(key Key) bool
	CursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool
}

// ResourceLoader loads external assets such as images.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game is the per-frame surface the engine drives.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// Engine owns the window and the main loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	RunGame(game Game) error
}
