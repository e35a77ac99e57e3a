// Package gui implements the menu side of the game: the GUI engine state and
// a widget system driven by JSON screen definitions.
package gui

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// GuiState is the engine state active while a menu screen is shown. The
// world, if any, is frozen underneath it. The state itself is a thin shell;
// the current GUI decides what is drawn and what input does.
type GuiState struct {
	renderer render.Renderer
	gui      scripts.GUI
}

// NewGuiState creates the GUI state with no screen. The engine must call
// SetGUI before activating it.
func NewGuiState(renderer render.Renderer) *GuiState {
	return &GuiState{renderer: renderer}
}

// SetGUI replaces the current screen.
func (s *GuiState) SetGUI(g scripts.GUI) { s.gui = g }

// GUI returns the current screen.
func (s *GuiState) GUI() scripts.GUI { return s.gui }

// Activate runs when the engine switches to this state.
func (s *GuiState) Activate() {}

// OnDraw renders the current screen.
func (s *GuiState) OnDraw(screen render.Image) {
	if s.gui != nil {
		s.gui.Draw(screen)
	}
}

// OnUpdate runs every frame. Menus have no simulation to advance.
func (s *GuiState) OnUpdate(deltaTime float64) {}

// OnKeyPress forwards the key press to the current screen.
func (s *GuiState) OnKeyPress(key render.Key, mods render.Modifiers) {
	if s.gui != nil {
		s.gui.OnKeyPress(key, mods)
	}
}

// OnKeyRelease forwards the key release to the current screen.
func (s *GuiState) OnKeyRelease(key render.Key, mods render.Modifiers) {
	if s.gui != nil {
		s.gui.OnKeyRelease(key, mods)
	}
}

// OnMouseMotion forwards cursor movement to the current screen.
func (s *GuiState) OnMouseMotion(x, y, dx, dy int) {
	if s.gui != nil {
		s.gui.OnMouseMotion(x, y, dx, dy)
	}
}

// OnMouseRelease forwards a mouse button release to the current screen.
func (s *GuiState) OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers) {
	if s.gui != nil {
		s.gui.OnMouseRelease(x, y, button, mods)
	}
}
