package engine

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// State is one side of the engine's state switch: either the menu screens or
// the running world. The core routes every engine callback to whichever
// state is active.
type State interface {
	// Activate runs when the engine switches to this state.
	Activate()

	// OnDraw renders one frame.
	OnDraw(screen render.Image)

	// OnUpdate advances the state by one frame.
	OnUpdate(deltaTime float64)

	OnKeyPress(key render.Key, mods render.Modifiers)
	OnKeyRelease(key render.Key, mods render.Modifiers)
	OnMouseMotion(x, y, dx, dy int)
	OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers)
}
