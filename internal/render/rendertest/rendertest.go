// Package rendertest provides in-memory fakes for the render interfaces so
// engine, world, and GUI code can be tested without a graphics context.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

func init() {
	// Tests run without a graphics backend, so the matrix constructor has
	// to come from here.
	render.NewGeoM = func() render.GeoM { return &FakeGeoM{} }
}

// FakeRenderer implements render.Renderer and records the text it draws.
type FakeRenderer struct {
	TextDrawn []string
}

// NewRenderer creates a fake renderer.
func NewRenderer() *FakeRenderer { return &FakeRenderer{} }

func (r *FakeRenderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

func (r *FakeRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {}

func (r *FakeRenderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
}

func (r *FakeRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {}

func (r *FakeRenderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.TextDrawn = append(r.TextDrawn, text)
}

func (r *FakeRenderer) MeasureText(text string, scale float64) (width, height int) {
	return int(float64(len(text)*6) * scale), int(13 * scale)
}

// FakeImage implements render.Image with nothing behind it but a size.
type FakeImage struct {
	W, H       int
	FillCalls  int
	DrawCalls  int
	LastFilled color.Color
}

// NewImage creates a fake image of the given size.
func NewImage(width, height int) *FakeImage {
	return &FakeImage{W: width, H: height}
}

func (i *FakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }

func (i *FakeImage) Size() (width, height int) { return i.W, i.H }

func (i *FakeImage) SubImage(r image.Rectangle) render.Image {
	return NewImage(r.Dx(), r.Dy())
}

func (i *FakeImage) Fill(clr color.Color) {
	i.FillCalls++
	i.LastFilled = clr
}

func (i *FakeImage) Clear() {}

func (i *FakeImage) DrawImage(src render.Image, opts *render.DrawImageOptions) { i.DrawCalls++ }

// FakeGeoM implements render.GeoM and records the accumulated translation.
type FakeGeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *FakeGeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *FakeGeoM) Scale(sx, sy float64) { g.SX = sx; g.SY = sy }

func (g *FakeGeoM) Reset() { *g = FakeGeoM{} }

// FakeLoader implements render.ResourceLoader. Every path loads as a 32x32
// image unless listed in Missing.
type FakeLoader struct {
	Loaded  []string
	Missing map[string]bool
}

// NewLoader creates a fake resource loader.
func NewLoader() *FakeLoader {
	return &FakeLoader{Missing: map[string]bool{}}
}

func (l *FakeLoader) LoadImage(path string) (render.Image, error) {
	if l.Missing[path] {
		return nil, fmt.Errorf("no such image: %s", path)
	}
	l.Loaded = append(l.Loaded, path)
	return NewImage(32, 32), nil
}

// FakeInput implements render.InputManager with settable state.
type FakeInput struct {
	Pressed      map[render.Key]bool
	JustPressed  map[render.Key]bool
	JustReleased map[render.Key]bool

	CursorX, CursorY int

	ButtonPressed      map[render.MouseButton]bool
	ButtonJustReleased map[render.MouseButton]bool
}

// NewInput creates a fake input manager with no input active.
func NewInput() *FakeInput {
	return &FakeInput{
		Pressed:            map[render.Key]bool{},
		JustPressed:        map[render.Key]bool{},
		JustReleased:       map[render.Key]bool{},
		ButtonPressed:      map[render.MouseButton]bool{},
		ButtonJustReleased: map[render.MouseButton]bool{},
	}
}

// Reset clears the one-frame event state, as a backend would between ticks.
func (f *FakeInput) Reset() {
	f.JustPressed = map[render.Key]bool{}
	f.JustReleased = map[render.Key]bool{}
	f.ButtonJustReleased = map[render.MouseButton]bool{}
}

func (f *FakeInput) IsKeyPressed(key render.Key) bool { return f.Pressed[key] }

func (f *FakeInput) IsKeyJustPressed(key render.Key) bool { return f.JustPressed[key] }

func (f *FakeInput) IsKeyJustReleased(key render.Key) bool { return f.JustReleased[key] }

func (f *FakeInput) CursorPosition() (x, y int) { return f.CursorX, f.CursorY }

func (f *FakeInput) IsMouseButtonPressed(button render.MouseButton) bool {
	return f.ButtonPressed[button]
}

func (f *FakeInput) IsMouseButtonJustReleased(button render.MouseButton) bool {
	return f.ButtonJustReleased[button]
}
