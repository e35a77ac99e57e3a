package gui

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// LabelSpec is a piece of static text on a screen. Coordinates are the text
// center when Centered, the top-left corner otherwise.
type LabelSpec struct {
	Text     string  `json:"text"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Scale    float64 `json:"scale,omitempty"`
	Color    string  `json:"color,omitempty"`
	Centered bool    `json:"centered,omitempty"`
}

// ButtonSpec is a clickable rectangle that dispatches a registered handler.
type ButtonSpec struct {
	Text   string         `json:"text"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Action string         `json:"action"`
	Args   map[string]any `json:"args,omitempty"`
}

// KeyBindingSpec dispatches a registered handler when a key is pressed.
type KeyBindingSpec struct {
	Key    string         `json:"key"`
	Action string         `json:"action"`
	Args   map[string]any `json:"args,omitempty"`
}

// GUISpec is the JSON definition of one menu screen.
type GUISpec struct {
	Name        string           `json:"name"`
	Background  string           `json:"background,omitempty"`
	Labels      []LabelSpec      `json:"labels,omitempty"`
	Buttons     []ButtonSpec     `json:"buttons,omitempty"`
	KeyBindings []KeyBindingSpec `json:"key_bindings,omitempty"`
}

// LoadGUISpec reads a screen definition from a JSON file.
func LoadGUISpec(path string) (*GUISpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gui: failed to read %s: %w", path, err)
	}

	var spec GUISpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("gui: failed to parse %s: %w", path, err)
	}

	for i, b := range spec.Buttons {
		if b.Action == "" {
			return nil, fmt.Errorf("gui: %s: button %d has no action", path, i)
		}
		if _, ok := scripts.LookupHandler(b.Action); !ok {
			return nil, fmt.Errorf("gui: %s: button %d references unknown action %q", path, i, b.Action)
		}
	}
	for i, kb := range spec.KeyBindings {
		if keyFromName(kb.Key) == render.KeyNone {
			return nil, fmt.Errorf("gui: %s: key binding %d has unknown key %q", path, i, kb.Key)
		}
		if _, ok := scripts.LookupHandler(kb.Action); !ok {
			return nil, fmt.Errorf("gui: %s: key binding %d references unknown action %q", path, i, kb.Action)
		}
	}

	return &spec, nil
}

var (
	defaultBackground  = color.RGBA{R: 0x1d, G: 0x24, B: 0x30, A: 0xff}
	defaultTextColor   = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	buttonFillColor    = color.RGBA{R: 0x3a, G: 0x4a, B: 0x6b, A: 0xff}
	buttonHoverColor   = color.RGBA{R: 0x50, G: 0x64, B: 0x8c, A: 0xff}
	buttonOutlineColor = color.RGBA{R: 0x9a, G: 0xa8, B: 0xc4, A: 0xff}
)

// SpecGUI renders a GUISpec and routes its buttons and key bindings to the
// handler registry.
type SpecGUI struct {
	api      scripts.GameAPI
	renderer render.Renderer
	spec     *GUISpec
	logger   *log.Logger

	hovered int // index into spec.Buttons, -1 when none
}

// NewSpecGUI builds a screen from its definition.
func NewSpecGUI(api scripts.GameAPI, renderer render.Renderer, spec *GUISpec, logger *log.Logger) *SpecGUI {
	if logger == nil {
		logger = log.Default().WithPrefix("gui")
	}
	return &SpecGUI{
		api:      api,
		renderer: renderer,
		spec:     spec,
		logger:   logger,
		hovered:  -1,
	}
}

// Draw renders the background, labels, and buttons.
func (g *SpecGUI) Draw(screen render.Image) {
	screen.Fill(parseColor(g.spec.Background, defaultBackground))

	for _, label := range g.spec.Labels {
		scale := label.Scale
		if scale <= 0 {
			scale = 1
		}
		x, y := label.X, label.Y
		if label.Centered {
			w, h := g.renderer.MeasureText(label.Text, scale)
			x -= w / 2
			y -= h / 2
		}
		g.renderer.DrawText(screen, label.Text, x, y, parseColor(label.Color, defaultTextColor), scale)
	}

	for i, button := range g.spec.Buttons {
		fill := buttonFillColor
		if i == g.hovered {
			fill = buttonHoverColor
		}
		g.renderer.FillRect(screen, float32(button.X), float32(button.Y), float32(button.Width), float32(button.Height), fill)
		g.renderer.StrokeRect(screen, float32(button.X), float32(button.Y), float32(button.Width), float32(button.Height), 2, buttonOutlineColor)

		w, h := g.renderer.MeasureText(button.Text, 1)
		textX := int(button.X+button.Width/2) - w/2
		textY := int(button.Y+button.Height/2) - h/2
		g.renderer.DrawText(screen, button.Text, textX, textY, defaultTextColor, 1)
	}
}

// OnMouseMotion tracks which button the cursor is over.
func (g *SpecGUI) OnMouseMotion(x, y, dx, dy int) {
	g.hovered = g.buttonAt(x, y)
}

// OnMouseRelease activates the button under the cursor.
func (g *SpecGUI) OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers) {
	if button != render.MouseButtonLeft {
		return
	}
	i := g.buttonAt(x, y)
	if i < 0 {
		return
	}
	b := g.spec.Buttons[i]
	g.dispatch(b.Action, b.Args)
}

// OnKeyPress dispatches a matching key binding.
func (g *SpecGUI) OnKeyPress(key render.Key, mods render.Modifiers) {
	for _, kb := range g.spec.KeyBindings {
		if keyFromName(kb.Key) == key {
			g.dispatch(kb.Action, kb.Args)
			return
		}
	}
}

// OnKeyRelease is ignored by screens.
func (g *SpecGUI) OnKeyRelease(key render.Key, mods render.Modifiers) {}

func (g *SpecGUI) buttonAt(x, y int) int {
	fx, fy := float64(x), float64(y)
	for i, b := range g.spec.Buttons {
		if fx >= b.X && fx < b.X+b.Width && fy >= b.Y && fy < b.Y+b.Height {
			return i
		}
	}
	return -1
}

func (g *SpecGUI) dispatch(action string, args map[string]any) {
	h, ok := scripts.LookupHandler(action)
	if !ok {
		g.logger.Error("unknown GUI action", "action", action)
		return
	}
	if err := h(g.api, args); err != nil {
		g.logger.Error("GUI action failed", "action", action, "error", err)
	}
}

// parseColor parses a "#rrggbb" color, falling back when missing or
// malformed.
func parseColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// keyFromName maps a key binding name to a key.
func keyFromName(name string) render.Key {
	switch strings.ToLower(name) {
	case "enter":
		return render.KeyEnter
	case "escape":
		return render.KeyEscape
	case "space":
		return render.KeySpace
	case "w":
		return render.KeyW
	case "a":
		return render.KeyA
	case "s":
		return render.KeyS
	case "d":
		return render.KeyD
	case "e":
		return render.KeyE
	case "up":
		return render.KeyUp
	case "down":
		return render.KeyDown
	case "left":
		return render.KeyLeft
	case "right":
		return render.KeyRight
	}
	return render.KeyNone
}
