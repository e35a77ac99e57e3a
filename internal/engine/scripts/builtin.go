package scripts

import (
	"fmt"
	"math/rand"
)

// Built-in handlers available to map objects and GUI buttons by name.
func init() {
	RegisterHandler("transition_region", TransitionRegion)
	RegisterHandler("start_game", ResumeGame)
	RegisterHandler("resume_game", ResumeGame)
	RegisterHandler("save_game", SaveGameHandler)
	RegisterHandler("load_game", LoadGameHandler)
}

// TransitionRegion moves the game to a different region. Args:
//
//	region: the name of the region to transition to.
//	start_location: the key point in the target region where the player
//	appears when the transition is complete.
func TransitionRegion(api GameAPI, args map[string]any) error {
	region, _ := args["region"].(string)
	start, _ := args["start_location"].(string)
	if region == "" {
		return fmt.Errorf("transition_region: missing region argument")
	}
	if start == "" {
		start = "Start"
	}
	return api.ChangeRegion(region, start)
}

// ResumeGame starts or resumes the game.
func ResumeGame(api GameAPI, args map[string]any) error {
	api.StartGame()
	return nil
}

// SaveGameHandler persists the game under the slot named by args["slot"]
// ("default" when absent).
func SaveGameHandler(api GameAPI, args map[string]any) error {
	slot, _ := args["slot"].(string)
	if slot == "" {
		slot = "default"
	}
	return api.SaveGame(slot)
}

// LoadGameHandler restores the slot named by args["slot"] ("default" when
// absent).
func LoadGameHandler(api GameAPI, args map[string]any) error {
	slot, _ := args["slot"].(string)
	if slot == "" {
		slot = "default"
	}
	return api.LoadGame(slot)
}

const (
	// DefaultNumSpawns is the maximum number of live spawns a spawner keeps.
	DefaultNumSpawns = 1

	// DefaultSpawnRatePerSec is the chance per second of spawning when there
	// is room.
	DefaultSpawnRatePerSec = 0.20

	// DefaultSpawnCooldownSecs is the minimum time between spawns.
	DefaultSpawnCooldownSecs = 10.0
)

// SpawnerConfig configures a Spawner script.
type SpawnerConfig struct {
	// SpriteSpec is the name of the sprite spec within the game spec.
	SpriteSpec string

	// Name is the spawner's name. Must be unique within its region; spawned
	// sprites are named Name_spawnN.
	Name string

	// NewScript builds the script attached to each spawned sprite. Nil
	// spawns scriptless sprites.
	NewScript func() Script

	NumSpawns         int
	SpawnRatePerSec   float64
	SpawnCooldownSecs float64

	// Rand is the probability source. Defaults to math/rand's global source.
	Rand *rand.Rand
}

// Spawner occasionally creates sprites at its owner's location, up to a
// configured population, with a cooldown between spawns.
type Spawner struct {
	BaseScript

	cfg       SpawnerConfig
	x, y      float64
	lastSpawn float64
	spawned   int
	idCounter int

	// OnError receives CreateSprite failures.
	OnError func(err error)
}

// NewSpawner creates a spawner script. Zero config fields fall back to the
// package defaults.
func NewSpawner(cfg SpawnerConfig) *Spawner {
	if cfg.NumSpawns <= 0 {
		cfg.NumSpawns = DefaultNumSpawns
	}
	if cfg.SpawnRatePerSec <= 0 {
		cfg.SpawnRatePerSec = DefaultSpawnRatePerSec
	}
	if cfg.SpawnCooldownSecs <= 0 {
		cfg.SpawnCooldownSecs = DefaultSpawnCooldownSecs
	}
	return &Spawner{
		cfg:       cfg,
		lastSpawn: -cfg.SpawnCooldownSecs,
	}
}

// OnStart records the spawn location.
func (s *Spawner) OnStart(owner ScriptOwner) {
	s.x, s.y = owner.Location()
}

func (s *Spawner) canSpawn(now float64) bool {
	return s.spawned < s.cfg.NumSpawns && s.lastSpawn+s.cfg.SpawnCooldownSecs < now
}

// OnTick occasionally spawns a sprite. The per-second probability is
// extrapolated to the frame delta.
func (s *Spawner) OnTick(gameTime, deltaTime float64) {
	probability := s.cfg.SpawnRatePerSec * deltaTime
	if probability > 1.0 {
		probability = 1.0
	}

	if s.canSpawn(gameTime) && s.random() < probability {
		s.spawn(gameTime)
	}
}

func (s *Spawner) random() float64 {
	if s.cfg.Rand != nil {
		return s.cfg.Rand.Float64()
	}
	return rand.Float64()
}

func (s *Spawner) spawn(now float64) {
	s.idCounter++

	var script Script
	if s.cfg.NewScript != nil {
		script = s.cfg.NewScript()
	}

	name := fmt.Sprintf("%s_spawn%d", s.cfg.Name, s.idCounter)
	if err := s.API().CreateSprite(s.cfg.SpriteSpec, name, s.x, s.y, script); err != nil {
		if s.OnError != nil {
			s.OnError(err)
		}
		return
	}

	s.spawned++
	s.lastSpawn = now
}
