package ingame

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/model"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// Controller turns key events into player movement and actions. Movement is
// four-directional on WASD or the arrow keys; E activates whatever the
// player faces, Space hits it, and Escape opens the menu.
type Controller struct {
	api     scripts.GameAPI
	world   *model.World
	menuGUI func() scripts.GUI
}

// NewController creates the in-game input controller.
func NewController(api scripts.GameAPI, world *model.World, menuGUI func() scripts.GUI) *Controller {
	return &Controller{api: api, world: world, menuGUI: menuGUI}
}

// OnUpdate advances the world.
func (c *Controller) OnUpdate(deltaTime float64) {
	c.world.OnUpdate(deltaTime)
}

// OnKeyPress handles movement and action keys.
func (c *Controller) OnKeyPress(key render.Key, mods render.Modifiers) {
	switch key {
	case render.KeyW, render.KeyUp:
		c.setSpeed(nil, axis(-1))
		c.world.SetPlayerFacing(0, -1)
	case render.KeyS, render.KeyDown:
		c.setSpeed(nil, axis(1))
		c.world.SetPlayerFacing(0, 1)
	case render.KeyA, render.KeyLeft:
		c.setSpeed(axis(-1), nil)
		c.world.SetPlayerFacing(-1, 0)
	case render.KeyD, render.KeyRight:
		c.setSpeed(axis(1), nil)
		c.world.SetPlayerFacing(1, 0)
	case render.KeyE:
		c.world.Activate()
	case render.KeySpace:
		c.world.Hit()
	case render.KeyEscape:
		if c.menuGUI != nil {
			c.api.ShowGUI(c.menuGUI())
		}
	}
}

// OnKeyRelease stops movement on the released key's axis, but only if the
// player is still moving in that key's direction; releasing an opposing key
// must not cancel movement the other key started.
func (c *Controller) OnKeyRelease(key render.Key, mods render.Modifiers) {
	vx, vy := c.world.Player().Velocity()

	switch key {
	case render.KeyW, render.KeyUp:
		if vy < 0 {
			c.setSpeed(nil, axis(0))
		}
	case render.KeyS, render.KeyDown:
		if vy > 0 {
			c.setSpeed(nil, axis(0))
		}
	case render.KeyA, render.KeyLeft:
		if vx < 0 {
			c.setSpeed(axis(0), nil)
		}
	case render.KeyD, render.KeyRight:
		if vx > 0 {
			c.setSpeed(axis(0), nil)
		}
	}
}

func (c *Controller) setSpeed(vx, vy *float64) {
	c.world.SetPlayerSpeed(vx, vy)
}

func (c *Controller) stopPlayer() {
	c.setSpeed(axis(0), axis(0))
}

func axis(v float64) *float64 { return &v }
