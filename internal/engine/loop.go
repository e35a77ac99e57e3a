package engine

import (
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// secondsPerTick is the fixed simulation step. The backend drives Update at
// 60 ticks per second.
const secondsPerTick = 1.0 / 60.0

// loop adapts the backend's polled per-frame model to the core's event
// callbacks: each tick it diffs key and button state into press/release
// events, turns cursor movement into motion events, and then advances the
// active state.
type loop struct {
	core  *Core
	input render.InputManager

	cursorX, cursorY int
	cursorSeen       bool
}

func newLoop(core *Core, input render.InputManager) *loop {
	return &loop{core: core, input: input}
}

// Update synthesizes input events and advances the game by one tick.
func (l *loop) Update() error {
	if err := l.core.Err(); err != nil {
		return err
	}

	mods := l.modifiers()

	for _, key := range render.Keys {
		if l.input.IsKeyJustPressed(key) {
			l.core.OnKeyPress(key, mods)
		}
		if l.input.IsKeyJustReleased(key) {
			l.core.OnKeyRelease(key, mods)
		}
	}

	x, y := l.input.CursorPosition()
	if l.cursorSeen && (x != l.cursorX || y != l.cursorY) {
		l.core.OnMouseMotion(x, y, x-l.cursorX, y-l.cursorY)
	}
	l.cursorX, l.cursorY = x, y
	l.cursorSeen = true

	for _, button := range render.MouseButtons {
		if l.input.IsMouseButtonJustReleased(button) {
			l.core.OnMouseRelease(x, y, button, mods)
		}
	}

	l.core.OnUpdate(secondsPerTick)

	return l.core.Err()
}

// Draw renders the active state.
func (l *loop) Draw(screen render.Image) {
	l.core.OnDraw(screen)
}

// Layout fixes the logical screen size regardless of the window size.
func (l *loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func (l *loop) modifiers() render.Modifiers {
	var mods render.Modifiers
	if l.input.IsKeyPressed(render.KeyShift) {
		mods |= render.ModShift
	}
	if l.input.IsKeyPressed(render.KeyControl) {
		mods |= render.ModControl
	}
	if l.input.IsKeyPressed(render.KeyAlt) {
		mods |= render.ModAlt
	}
	return mods
}
