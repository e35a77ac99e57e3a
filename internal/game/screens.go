package game

import (
	"github.com/charmbracelet/log"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/gui"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

const (
	startScreenPath = "assets/gui/start-screen.json"
	menuScreenPath  = "assets/gui/menu.json"
)

// StartScreen builds the screen shown on startup. The on-disk definition is
// preferred; a built-in one covers a missing or broken file.
func StartScreen(renderer render.Renderer, logger *log.Logger) engine.GUIFactory {
	return screenFactory(renderer, logger, startScreenPath, defaultStartScreen)
}

// MenuScreen builds the pause menu shown when the player presses Escape.
func MenuScreen(renderer render.Renderer, logger *log.Logger) engine.GUIFactory {
	return screenFactory(renderer, logger, menuScreenPath, defaultMenuScreen)
}

func screenFactory(renderer render.Renderer, logger *log.Logger, path string, fallback func() *gui.GUISpec) engine.GUIFactory {
	return func(api scripts.GameAPI) scripts.GUI {
		guiSpec, err := gui.LoadGUISpec(path)
		if err != nil {
			logger.Warn("falling back to built-in screen", "path", path, "error", err)
			guiSpec = fallback()
		}
		return gui.NewSpecGUI(api, renderer, guiSpec, logger.WithPrefix("gui"))
	}
}

func defaultStartScreen() *gui.GUISpec {
	return &gui.GUISpec{
		Name: "start",
		Labels: []gui.LabelSpec{
			{Text: "OSSU Game Project", X: engine.ScreenWidth / 2, Y: 220, Scale: 3, Centered: true},
			{Text: "Press Enter to start", X: engine.ScreenWidth / 2, Y: 300, Centered: true},
		},
		Buttons: []gui.ButtonSpec{
			{Text: "New Game", X: 400, Y: 370, Width: 200, Height: 40, Action: "start_game"},
			{Text: "Load Game", X: 400, Y: 430, Width: 200, Height: 40, Action: "load_game"},
		},
		KeyBindings: []gui.KeyBindingSpec{
			{Key: "enter", Action: "start_game"},
		},
	}
}

func defaultMenuScreen() *gui.GUISpec {
	return &gui.GUISpec{
		Name: "menu",
		Labels: []gui.LabelSpec{
			{Text: "Paused", X: engine.ScreenWidth / 2, Y: 200, Scale: 2, Centered: true},
		},
		Buttons: []gui.ButtonSpec{
			{Text: "Resume", X: 400, Y: 280, Width: 200, Height: 40, Action: "resume_game"},
			{Text: "Save Game", X: 400, Y: 340, Width: 200, Height: 40, Action: "save_game"},
			{Text: "Load Game", X: 400, Y: 400, Width: 200, Height: 40, Action: "load_game"},
		},
		KeyBindings: []gui.KeyBindingSpec{
			{Key: "escape", Action: "resume_game"},
		},
	}
}
