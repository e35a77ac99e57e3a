package ingame

import (
	"image/color"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/model"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

var voidColor = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}

// View draws the world centered on the player, with the camera clamped to
// the region's bounds so the void beyond the map edge stays off screen.
type View struct {
	world        *model.World
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
}

// NewView creates a view over the world.
func NewView(world *model.World, renderer render.Renderer, screenWidth, screenHeight int) *View {
	return &View{
		world:        world,
		renderer:     renderer,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Camera returns the top-left world coordinate of the visible area.
func (v *View) Camera() (x, y float64) {
	px, py := v.world.Player().Location()

	camX := px - float64(v.screenWidth)/2
	camY := py - float64(v.screenHeight)/2

	m := v.world.ActiveMap()
	if m == nil {
		return camX, camY
	}

	camX = clamp(camX, 0, m.PixelWidth()-float64(v.screenWidth))
	camY = clamp(camY, 0, m.PixelHeight()-float64(v.screenHeight))
	return camX, camY
}

// OnDraw renders the visible slice of the world.
func (v *View) OnDraw(screen render.Image) {
	screen.Fill(voidColor)
	camX, camY := v.Camera()
	v.world.Draw(screen, v.renderer, camX, camY)
}

// clamp limits x to [lo, hi]. When the region is smaller than the screen,
// hi falls below lo and the camera pins to the region's origin.
func clamp(x, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
