// Package config provides YAML-based configuration loading for the game
// shell.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config contains the game shell's settings.
type Config struct {
	// GameSpec is the path to the game definition JSON.
	GameSpec string `yaml:"game_spec"`

	// SaveDB is the path to the SQLite save database.
	SaveDB string `yaml:"save_db"`

	// MovementSpeed overrides the player's speed in pixels per update.
	// Zero keeps the engine default.
	MovementSpeed float64 `yaml:"movement_speed"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GameSpec: "assets/game.json",
		SaveDB:   "~/.ossu-game/saves.db",
		LogLevel: "info",
	}
}

// Load reads the configuration.
// Search order: customPath -> ~/.ossu-game/config.yaml -> ./config.yaml -> defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.validate()
	}

	if userPath := userConfigPath("config.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", userPath, err)
			}
			return cfg, cfg.validate()
		}
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config config.yaml: %w", err)
		}
		return cfg, cfg.validate()
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.GameSpec == "" {
		return fmt.Errorf("config: game_spec is required")
	}
	if c.MovementSpeed < 0 {
		return fmt.Errorf("config: movement_speed must not be negative")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ossu-game", filename)
}
