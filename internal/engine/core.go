// Package engine implements the game shell: a two-state switch between the
// menu screens and the running world, routing engine callbacks to whichever
// is active and exposing the GameAPI that scripts and GUIs program against.
package engine

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/gui"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/ingame"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/model"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/spec"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/storage"
)

const (
	// ScreenWidth is the width of the game window in pixels.
	ScreenWidth = 1000

	// ScreenHeight is the height of the game window in pixels.
	ScreenHeight = 650

	// ScreenTitle is the game window's title.
	ScreenTitle = "OSSU Game Project"
)

// ErrNotInitialized is returned by world-dependent calls made before the
// game has been started.
var ErrNotInitialized = errors.New("engine: game not initialized")

// SaveStore persists game saves. Satisfied by storage.Store.
type SaveStore interface {
	SaveGame(save storage.Save) error
	LoadGame(slot string) (storage.Save, error)
}

// GUIFactory builds a menu screen against the engine's API.
type GUIFactory func(api scripts.GameAPI) scripts.GUI

// Config configures the engine core.
type Config struct {
	Spec *spec.GameSpec

	Renderer render.Renderer
	Engine   render.Engine
	Input    render.InputManager
	Loader   render.ResourceLoader

	// InitialGUI builds the screen shown on startup.
	InitialGUI GUIFactory

	// MenuGUI builds the screen shown when the player opens the in-game
	// menu. Nil disables it.
	MenuGUI GUIFactory

	// Saves persists save slots. Nil disables saving and loading.
	Saves SaveStore

	// MovementSpeed overrides the player's speed in pixels per update.
	MovementSpeed float64

	// InitialPlayerState seeds the player's state document.
	InitialPlayerState map[string]any

	// Logger defaults to the package default logger.
	Logger *log.Logger
}

// Core owns the game: the state switch, the world, and the window. It
// implements scripts.GameAPI.
//
// The world is created lazily the first time the game starts; the GUI state
// exists from the beginning; the in-game state is built once, alongside the
// world, and reused for the rest of the run.
type Core struct {
	cfg    Config
	logger *log.Logger

	guiState    *gui.GuiState
	ingameState *ingame.InGameState
	world       *model.World

	active State

	// err is the first fatal error; the engine loop returns it and stops.
	err error
}

// New creates the engine core. Call Setup before Run.
func New(cfg Config) (*Core, error) {
	if cfg.Spec == nil {
		return nil, fmt.Errorf("engine: game spec is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("engine: renderer is required")
	}
	if cfg.InitialGUI == nil {
		return nil, fmt.Errorf("engine: initial GUI is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("engine")
	}

	return &Core{
		cfg:      cfg,
		logger:   logger,
		guiState: gui.NewGuiState(cfg.Renderer),
	}, nil
}

// Setup installs the initial screen and activates the GUI state.
func (c *Core) Setup() {
	c.ShowGUI(c.cfg.InitialGUI(c))
}

// Run opens the window and drives the engine loop until the game exits.
func (c *Core) Run() error {
	if c.cfg.Engine == nil {
		return fmt.Errorf("engine: no windowing engine configured")
	}
	if c.cfg.Input == nil {
		return fmt.Errorf("engine: no input manager configured")
	}

	c.cfg.Engine.SetWindowSize(ScreenWidth, ScreenHeight)
	c.cfg.Engine.SetWindowTitle(ScreenTitle)

	return c.cfg.Engine.RunGame(newLoop(c, c.cfg.Input))
}

// setActive switches the state and notifies it.
func (c *Core) setActive(s State) {
	c.active = s
	s.Activate()
}

// fail records the first fatal error; the engine loop stops on it.
func (c *Core) fail(err error) {
	if c.err == nil {
		c.err = err
	}
	c.logger.Error("fatal error", "error", err)
}

// Err returns the fatal error, if any.
func (c *Core) Err() error { return c.err }

// ensureWorld lazily creates the world and the in-game state.
func (c *Core) ensureWorld() error {
	if c.world == nil {
		world, err := model.New(c, model.Config{
			Spec:               c.cfg.Spec,
			InitialPlayerState: c.cfg.InitialPlayerState,
			Loader:             c.cfg.Loader,
			MovementSpeed:      c.cfg.MovementSpeed,
			Logger:             c.logger.WithPrefix("world"),
		})
		if err != nil {
			return err
		}
		c.world = world
	}

	if c.ingameState == nil {
		var menuGUI func() scripts.GUI
		if c.cfg.MenuGUI != nil {
			menuGUI = func() scripts.GUI { return c.cfg.MenuGUI(c) }
		}
		c.ingameState = ingame.New(c, c.world, ingame.Config{
			Renderer:     c.cfg.Renderer,
			ScreenWidth:  ScreenWidth,
			ScreenHeight: ScreenHeight,
			MenuGUI:      menuGUI,
		})
	}

	return nil
}

// StartGame switches to the in-game state, creating the world on the first
// call. Subsequent calls resume the existing world.
func (c *Core) StartGame() {
	if err := c.ensureWorld(); err != nil {
		c.fail(fmt.Errorf("engine: starting game: %w", err))
		return
	}
	c.setActive(c.ingameState)
}

// ShowGUI switches to the GUI state and displays the given screen. The
// world, if any, keeps its state and resumes when the game restarts.
func (c *Core) ShowGUI(g scripts.GUI) {
	c.guiState.SetGUI(g)
	c.setActive(c.guiState)
}

// ChangeRegion moves the game to a different region, placing the player at
// the named key point.
func (c *Core) ChangeRegion(name, startLocation string) error {
	if c.world == nil {
		return ErrNotInitialized
	}
	return c.world.LoadRegion(name, startLocation)
}

// CreateSprite places a new sprite in the active region. The spec name must
// exist in the game spec's sprite catalog.
func (c *Core) CreateSprite(specName, name string, x, y float64, script scripts.Script) error {
	if c.world == nil {
		return ErrNotInitialized
	}
	spriteSpec, ok := c.cfg.Spec.Sprite(specName)
	if !ok {
		return fmt.Errorf("engine: unknown sprite spec %q", specName)
	}
	return c.world.CreateSprite(spriteSpec, name, x, y, script)
}

// KeyPoints returns the active region's key points whose names contain
// name. An empty name returns all of them.
func (c *Core) KeyPoints(name string) ([]scripts.KeyPoint, error) {
	if c.world == nil {
		return nil, ErrNotInitialized
	}
	return c.world.KeyPoints(name), nil
}

// PlayerState returns the player's state document.
func (c *Core) PlayerState() (map[string]any, error) {
	if c.world == nil {
		return nil, ErrNotInitialized
	}
	return c.world.PlayerState(), nil
}

// SetPlayerState replaces the player's state document.
func (c *Core) SetPlayerState(state map[string]any) error {
	if c.world == nil {
		return ErrNotInitialized
	}
	c.world.SetPlayerState(state)
	return nil
}

// SaveGame persists the player's position, region, and state under a slot.
func (c *Core) SaveGame(slot string) error {
	if c.world == nil {
		return ErrNotInitialized
	}
	if c.cfg.Saves == nil {
		return fmt.Errorf("engine: no save store configured")
	}

	x, y := c.world.Player().Location()
	return c.cfg.Saves.SaveGame(storage.Save{
		Slot:        slot,
		Region:      c.world.ActiveRegion(),
		X:           x,
		Y:           y,
		GameTime:    c.world.GameTime(),
		PlayerState: c.world.PlayerState(),
	})
}

// LoadGame restores a previously saved slot and switches to the in-game
// state. The world is created first if the game has not been started.
func (c *Core) LoadGame(slot string) error {
	if c.cfg.Saves == nil {
		return fmt.Errorf("engine: no save store configured")
	}

	save, err := c.cfg.Saves.LoadGame(slot)
	if err != nil {
		return err
	}

	if err := c.ensureWorld(); err != nil {
		return fmt.Errorf("engine: loading game: %w", err)
	}

	if err := c.world.LoadRegion(save.Region, model.StartKeyPoint); err != nil {
		return err
	}
	c.world.Player().SetLocation(save.X, save.Y)
	c.world.SetPlayerState(save.PlayerState)
	c.world.SetGameTime(save.GameTime)

	c.setActive(c.ingameState)
	return nil
}

// World returns the world, or nil before the game has started.
func (c *Core) World() *model.World { return c.world }

// ready reports whether a state is active. Callbacks before Setup are a
// lifecycle ordering bug; the first one becomes the fatal error.
func (c *Core) ready() bool {
	if c.active == nil {
		c.fail(fmt.Errorf("%w: callback before Setup", ErrNotInitialized))
		return false
	}
	return true
}

// OnDraw renders one frame through the active state.
func (c *Core) OnDraw(screen render.Image) {
	if c.ready() {
		c.active.OnDraw(screen)
	}
}

// OnUpdate advances the active state by one frame.
func (c *Core) OnUpdate(deltaTime float64) {
	if c.ready() {
		c.active.OnUpdate(deltaTime)
	}
}

// OnKeyPress routes a key press to the active state.
func (c *Core) OnKeyPress(key render.Key, mods render.Modifiers) {
	if c.ready() {
		c.active.OnKeyPress(key, mods)
	}
}

// OnKeyRelease routes a key release to the active state.
func (c *Core) OnKeyRelease(key render.Key, mods render.Modifiers) {
	if c.ready() {
		c.active.OnKeyRelease(key, mods)
	}
}

// OnMouseMotion routes cursor movement to the active state.
func (c *Core) OnMouseMotion(x, y, dx, dy int) {
	if c.ready() {
		c.active.OnMouseMotion(x, y, dx, dy)
	}
}

// OnMouseRelease routes a mouse button release to the active state.
func (c *Core) OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers) {
	if c.ready() {
		c.active.OnMouseRelease(x, y, button, mods)
	}
}

var _ scripts.GameAPI = (*Core)(nil)
