// Package ingame implements the playing side of the game: a view that draws
// the world through a clamped camera, and a controller that turns input into
// player movement and actions.
package ingame

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/model"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// Config configures the in-game state.
type Config struct {
	Renderer     render.Renderer
	ScreenWidth  int
	ScreenHeight int

	// MenuGUI builds the menu screen shown when the player presses Escape.
	// Nil disables the in-game menu.
	MenuGUI func() scripts.GUI
}

// InGameState is the engine state active while the player is in the world.
// It is built once, the first time the game starts, and reused afterwards.
type InGameState struct {
	view       *View
	controller *Controller
}

// New creates the in-game state around an existing world.
func New(api scripts.GameAPI, world *model.World, cfg Config) *InGameState {
	return &InGameState{
		view:       NewView(world, cfg.Renderer, cfg.ScreenWidth, cfg.ScreenHeight),
		controller: NewController(api, world, cfg.MenuGUI),
	}
}

// Activate runs when the engine switches to this state.
func (s *InGameState) Activate() {
	// Input may have changed while a menu was up; stop any stale movement.
	s.controller.stopPlayer()
}

// OnDraw renders the world.
func (s *InGameState) OnDraw(screen render.Image) { s.view.OnDraw(screen) }

// OnUpdate advances the world.
func (s *InGameState) OnUpdate(deltaTime float64) { s.controller.OnUpdate(deltaTime) }

// OnKeyPress forwards the key press to the controller.
func (s *InGameState) OnKeyPress(key render.Key, mods render.Modifiers) {
	s.controller.OnKeyPress(key, mods)
}

// OnKeyRelease forwards the key release to the controller.
func (s *InGameState) OnKeyRelease(key render.Key, mods render.Modifiers) {
	s.controller.OnKeyRelease(key, mods)
}

// OnMouseMotion is ignored while in the world.
func (s *InGameState) OnMouseMotion(x, y, dx, dy int) {}

// OnMouseRelease is ignored while in the world.
func (s *InGameState) OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers) {
}
