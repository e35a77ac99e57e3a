// Package game wires the engine to the shipped content: the game spec on
// disk, the start and pause screens, and the save database.
package game

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/config"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/spec"
	ebitenrender "github.com/Soheil-Rasouli/ossu-game-project-1/internal/render/ebiten"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/storage"
)

// Run loads the configuration and runs the game until the window closes.
// A non-empty specPath overrides the configured game spec.
func Run(cfgPath, specPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if specPath != "" {
		cfg.GameSpec = specPath
	}

	logger := NewLogger(cfg.LogLevel)

	gameSpec, err := spec.Load(cfg.GameSpec)
	if err != nil {
		return fmt.Errorf("loading game spec: %w", err)
	}

	var saves engine.SaveStore
	if cfg.SaveDB != "" {
		store, err := storage.Open(cfg.SaveDB)
		if err != nil {
			logger.Warn("could not open save database, saving disabled", "error", err)
		} else {
			defer store.Close()
			saves = store
		}
	}

	renderer := ebitenrender.NewRenderer()

	core, err := engine.New(engine.Config{
		Spec:          gameSpec,
		Renderer:      renderer,
		Engine:        ebitenrender.NewEngine(),
		Input:         ebitenrender.NewInputManager(),
		Loader:        ebitenrender.NewResourceLoader(),
		InitialGUI:    StartScreen(renderer, logger),
		MenuGUI:       MenuScreen(renderer, logger),
		Saves:         saves,
		MovementSpeed: cfg.MovementSpeed,
		Logger:        logger.WithPrefix("engine"),
	})
	if err != nil {
		return err
	}

	core.Setup()

	logger.Info("starting game", "spec", cfg.GameSpec)
	return core.Run()
}

// NewLogger builds the game's logger at the given level.
func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ossu-game",
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
