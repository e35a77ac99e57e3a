// Package model implements the world: regions, the player, sprites,
// scripted objects, and the update cycle that drives them. There is exactly
// one world per game, created the first time the game starts.
package model

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/scripts"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/engine/spec"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/world/maploader"
)

const (
	// DefaultMovementSpeed is the player's speed in pixels per update.
	DefaultMovementSpeed = 5.0

	// HitboxDistance is the distance in pixels from the player's center used
	// for testing activations and hits.
	HitboxDistance = 32.0

	// StartKeyPoint is the key point every initial region must define.
	StartKeyPoint = "Start"
)

// errNoScript is returned when object properties name no script.
var errNoScript = errors.New("object has no script")

// placeholderColor fills in for sprites whose image failed to load.
var placeholderColor = color.RGBA{R: 0xcc, G: 0x44, B: 0x88, A: 0xff}

// RegionState stores the state a region keeps while the player is elsewhere.
type RegionState struct {
	// ObjectStates maps scripted object names to their script state.
	ObjectStates map[string]map[string]any
}

// scriptedObject ties a world object to a script.
type scriptedObject struct {
	name   string
	owner  scripts.ScriptOwner
	sprite *Sprite // nil for zones
	zone   *Zone   // nil for sprites
	script scripts.Script
	solid  bool
}

func (o *scriptedObject) bounds() Rect {
	if o.sprite != nil {
		return o.sprite.Bounds()
	}
	return o.zone.Bounds()
}

// Config configures a World.
type Config struct {
	Spec               *spec.GameSpec
	InitialPlayerState map[string]any
	Loader             render.ResourceLoader

	// MovementSpeed overrides the player's speed in pixels per update.
	// Zero means DefaultMovementSpeed.
	MovementSpeed float64

	// Logger defaults to the package default logger.
	Logger *log.Logger
}

// World manages the state of the game world: the player, the active region,
// and every sprite and scripted object in it. All methods must be called
// from the engine loop; the world is not safe for concurrent use.
type World struct {
	api      api
	gameSpec *spec.GameSpec
	loader   render.ResourceLoader
	logger   *log.Logger

	player        *Sprite
	playerState   map[string]any
	movementSpeed float64

	maps          map[string]*maploader.Map
	activeRegion  string
	regionStates  map[string]*RegionState
	regionsLoaded map[string]bool

	objects map[string]*scriptedObject

	// Sprites created while an update is in flight are queued and committed
	// after the tick.
	inUpdate bool
	toAdd    map[string]*scriptedObject

	secPassed float64
}

// api is the subset of scripts.GameAPI the world hands to the scripts it
// owns. It is satisfied by the engine core.
type api = scripts.GameAPI

// New creates the world: loads every region's map, creates the player
// sprite, and loads the initial region with the player at "Start".
func New(gameAPI api, cfg Config) (*World, error) {
	if cfg.Spec == nil {
		return nil, fmt.Errorf("world: game spec is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("world")
	}

	speed := cfg.MovementSpeed
	if speed <= 0 {
		speed = DefaultMovementSpeed
	}

	playerState := cfg.InitialPlayerState
	if playerState == nil {
		playerState = map[string]any{}
	}

	w := &World{
		api:           gameAPI,
		gameSpec:      cfg.Spec,
		loader:        cfg.Loader,
		logger:        logger,
		playerState:   playerState,
		movementSpeed: speed,
		maps:          map[string]*maploader.Map{},
		regionStates:  map[string]*RegionState{},
		regionsLoaded: map[string]bool{},
		objects:       map[string]*scriptedObject{},
		toAdd:         map[string]*scriptedObject{},
	}

	for _, region := range cfg.Spec.World.Regions {
		m, err := maploader.LoadMap(region.MapFile, cfg.Loader)
		if err != nil {
			return nil, fmt.Errorf("world: region %q: %w", region.Name, err)
		}
		w.maps[region.Name] = m
	}

	w.player = NewSprite(cfg.Spec.Player, "player", 0, 0, w.loadImage(cfg.Spec.Player.ImagePath))

	if err := w.LoadRegion(cfg.Spec.World.InitialRegion, StartKeyPoint); err != nil {
		return nil, err
	}

	return w, nil
}

// loadImage loads a sprite image, tolerating failures: a world without
// images still runs (headless tests, missing art).
func (w *World) loadImage(path string) render.Image {
	if path == "" || w.loader == nil {
		return nil
	}
	img, err := w.loader.LoadImage(path)
	if err != nil {
		w.logger.Warn("failed to load sprite image", "path", path, "error", err)
		return nil
	}
	return img
}

// LoadRegion switches the active region, placing the player at the named key
// point. Script state of the region being left is snapshotted and restored
// when the player returns; OnStart hooks fire only on a region's first load.
func (w *World) LoadRegion(name, startLocation string) error {
	m, ok := w.maps[name]
	if !ok {
		return fmt.Errorf("world: unknown region %q", name)
	}

	start, ok := m.KeyPoint(startLocation)
	if !ok {
		return fmt.Errorf("world: region %q has no key point %q", name, startLocation)
	}

	if w.activeRegion != "" {
		w.snapshotRegionState()
	}

	w.activeRegion = name

	regionState, ok := w.regionStates[name]
	if !ok {
		regionState = &RegionState{ObjectStates: map[string]map[string]any{}}
		w.regionStates[name] = regionState
	}

	isFirstLoad := !w.regionsLoaded[name]
	w.regionsLoaded[name] = true

	if err := w.loadObjects(m, regionState, isFirstLoad); err != nil {
		return err
	}

	w.player.SetLocation(start.X, start.Y)
	w.player.SetVelocity(0, 0)

	return nil
}

func (w *World) snapshotRegionState() {
	states := map[string]map[string]any{}
	for name, obj := range w.objects {
		if obj.script != nil {
			states[name] = obj.script.State()
		}
	}
	w.regionStates[w.activeRegion] = &RegionState{ObjectStates: states}
}

func (w *World) loadObjects(m *maploader.Map, regionState *RegionState, isFirstLoad bool) error {
	w.objects = map[string]*scriptedObject{}

	for _, data := range m.Data.Objects {
		zone := NewZone(data.Name, Rect{
			X:      data.X,
			Y:      data.Y,
			Width:  data.Width,
			Height: data.Height,
		}, data.Properties)

		script, err := w.scriptFromProperties(data.Properties)
		if errors.Is(err, errNoScript) {
			script = w.objectScript(data.Name, data.Properties)
		} else if err != nil {
			return fmt.Errorf("world: object %q: %w", data.Name, err)
		}

		w.bindScript(script, data.Name, zone, regionState, isFirstLoad)

		w.objects[data.Name] = &scriptedObject{
			name:   data.Name,
			owner:  zone,
			zone:   zone,
			script: script,
			solid:  boolProp(data.Properties, "solid"),
		}
	}

	for _, data := range m.Data.NPCs {
		spriteSpec, ok := w.gameSpec.Sprite(data.Spec)
		if !ok {
			return fmt.Errorf("world: NPC %q references unknown sprite spec %q", data.Name, data.Spec)
		}

		script, err := w.scriptFromProperties(data.Properties)
		if errors.Is(err, errNoScript) {
			script = nil
		} else if err != nil {
			return fmt.Errorf("world: NPC %q: %w", data.Name, err)
		}

		obj, err := w.createSprite(spriteSpec, data.Name, data.X, data.Y, script, regionState, isFirstLoad)
		if err != nil {
			return err
		}
		obj.solid = boolProp(data.Properties, "solid")
	}

	return nil
}

// scriptFromProperties resolves the "script" property to a Lua script.
// Objects without one get errNoScript.
func (w *World) scriptFromProperties(properties map[string]any) (scripts.Script, error) {
	path, _ := properties["script"].(string)
	if path == "" {
		return nil, errNoScript
	}

	script, err := scripts.NewLuaScript(path)
	if err != nil {
		return nil, err
	}
	script.OnError = w.scriptError
	return script, nil
}

// objectScript builds the property-driven fallback script for a zone.
func (w *World) objectScript(name string, properties map[string]any) *scripts.ObjectScript {
	script := scripts.NewObjectScript(w.api, properties)
	script.OnError = func(hook string, err error) {
		w.logger.Error("object script failed", "object", name, "hook", hook, "error", err)
	}
	return script
}

func (w *World) scriptError(hook string, err error) {
	w.logger.Error("lua script failed", "hook", hook, "error", err)
}

func (w *World) bindScript(script scripts.Script, name string, owner scripts.ScriptOwner, regionState *RegionState, isFirstLoad bool) {
	if script == nil {
		return
	}
	script.SetAPI(w.api)
	script.SetOwner(owner)
	if state, ok := regionState.ObjectStates[name]; ok {
		script.SetState(state)
	}
	if isFirstLoad {
		script.OnStart(owner)
	}
}

// CreateSprite places a new sprite in the active region. Sprites created
// during an update are committed after the tick completes.
func (w *World) CreateSprite(spriteSpec spec.SpriteSpec, name string, x, y float64, script scripts.Script) error {
	if _, exists := w.objects[name]; exists {
		return fmt.Errorf("world: sprite %q already exists", name)
	}
	regionState := w.regionStates[w.activeRegion]
	_, err := w.createSprite(spriteSpec, name, x, y, script, regionState, true)
	return err
}

func (w *World) createSprite(spriteSpec spec.SpriteSpec, name string, x, y float64, script scripts.Script, regionState *RegionState, isFirstLoad bool) (*scriptedObject, error) {
	sprite := NewSprite(spriteSpec, name, x, y, w.loadImage(spriteSpec.ImagePath))

	w.bindScript(script, name, sprite, regionState, isFirstLoad)

	obj := &scriptedObject{
		name:   name,
		owner:  sprite,
		sprite: sprite,
		script: script,
	}

	if w.inUpdate {
		w.toAdd[name] = obj
	} else {
		w.objects[name] = obj
	}

	return obj, nil
}

// SetPlayerSpeed sets the player's velocity per axis, scaled by the movement
// speed. A nil axis leaves that axis unchanged.
func (w *World) SetPlayerSpeed(vx, vy *float64) {
	cvx, cvy := w.player.Velocity()
	if vx != nil {
		cvx = *vx * w.movementSpeed
	}
	if vy != nil {
		cvy = *vy * w.movementSpeed
	}
	w.player.SetVelocity(cvx, cvy)
}

// SetPlayerFacing sets the direction the player is facing.
func (w *World) SetPlayerFacing(fx, fy float64) {
	w.player.SetFacing(fx, fy)
}

// Player returns the player sprite.
func (w *World) Player() *Sprite { return w.player }

// PlayerState returns the player's state document.
func (w *World) PlayerState() map[string]any { return w.playerState }

// SetPlayerState replaces the player's state document.
func (w *World) SetPlayerState(state map[string]any) {
	if state == nil {
		state = map[string]any{}
	}
	w.playerState = state
}

// ActiveRegion returns the name of the active region.
func (w *World) ActiveRegion() string { return w.activeRegion }

// GameTime returns the in-game time in seconds.
func (w *World) GameTime() float64 { return w.secPassed }

// SetGameTime resets the game clock, as when restoring a save.
func (w *World) SetGameTime(seconds float64) { w.secPassed = seconds }

// ActiveMap returns the active region's map.
func (w *World) ActiveMap() *maploader.Map {
	return w.maps[w.activeRegion]
}

// OnUpdate advances the world by one frame: moves the player with collision
// checks, ticks every script, applies sprite velocities, commits deferred
// sprites, and dispatches player collisions.
func (w *World) OnUpdate(deltaTime float64) {
	w.inUpdate = true

	w.movePlayer()

	for _, obj := range w.objects {
		if obj.script != nil {
			obj.script.OnTick(w.secPassed, deltaTime)
		}
		if obj.sprite != nil {
			obj.sprite.advance()
		}
	}

	for name, obj := range w.toAdd {
		w.objects[name] = obj
	}
	w.toAdd = map[string]*scriptedObject{}

	w.handleCollisions()

	w.secPassed += deltaTime
	w.inUpdate = false
}

// movePlayer applies the player's velocity, clamping at region bounds and
// stopping against walls and solid objects. The axes are checked separately
// so that sliding along a wall works.
func (w *World) movePlayer() {
	m := w.ActiveMap()
	if m == nil {
		return
	}

	x, y := w.player.Location()
	vx, vy := w.player.Velocity()

	newX := x + vx
	newY := y + vy

	if (newX <= 0 && vx < 0) || (newX >= m.PixelWidth() && vx > 0) {
		vx = 0
	}
	if (newY <= 0 && vy < 0) || (newY >= m.PixelHeight() && vy > 0) {
		vy = 0
	}

	if vx != 0 && w.blocked(m, x+vx, y) {
		vx = 0
	}
	if vy != 0 && w.blocked(m, x, y+vy) {
		vy = 0
	}

	w.player.SetLocation(x+vx, y+vy)
}

// blocked reports whether the point is inside a wall tile or a solid object.
func (w *World) blocked(m *maploader.Map, x, y float64) bool {
	tileX := int(math.Floor(x / float64(m.Data.TileSize)))
	tileY := int(math.Floor(y / float64(m.Data.TileSize)))
	if !m.IsWalkable(tileX, tileY) {
		return true
	}

	for _, obj := range w.objects {
		if obj.solid && obj.bounds().Contains(x, y) {
			return true
		}
	}
	return false
}

func (w *World) handleCollisions() {
	playerBounds := w.player.Bounds()
	for _, obj := range w.objects {
		if obj.script == nil {
			continue
		}
		if playerBounds.Overlaps(obj.bounds()) {
			obj.script.OnCollide(obj.owner, w.player)
		}
	}
}

// objectsInFrontOfPlayer returns the scripted objects overlapping a hitbox
// projected in front of the player along its facing.
func (w *World) objectsInFrontOfPlayer() []*scriptedObject {
	fx, fy := w.player.Facing()
	length := math.Hypot(fx, fy)
	if length == 0 {
		return nil
	}

	px, py := w.player.Location()
	centerX := px + fx/length*HitboxDistance
	centerY := py + fy/length*HitboxDistance

	hitbox := Rect{
		X:      centerX - HitboxDistance,
		Y:      centerY - HitboxDistance,
		Width:  2 * HitboxDistance,
		Height: 2 * HitboxDistance,
	}

	var hit []*scriptedObject
	for _, obj := range w.objects {
		if obj.bounds().Overlaps(hitbox) {
			hit = append(hit, obj)
		}
	}
	return hit
}

// Activate activates whatever is in front of the player.
func (w *World) Activate() {
	for _, obj := range w.objectsInFrontOfPlayer() {
		if obj.script != nil {
			obj.script.OnActivate(obj.owner, w.player)
		}
	}
}

// Hit hits whatever is in front of the player.
func (w *World) Hit() {
	for _, obj := range w.objectsInFrontOfPlayer() {
		if obj.script != nil {
			obj.script.OnHit(obj.owner, w.player)
		}
	}
}

// KeyPoints returns the active region's key points whose names contain
// name. An empty name returns all of them.
func (w *World) KeyPoints(name string) []scripts.KeyPoint {
	m := w.ActiveMap()
	if m == nil {
		return nil
	}

	var points []scripts.KeyPoint
	for _, point := range m.Data.KeyPoints {
		if name != "" && !strings.Contains(point.Name, name) {
			continue
		}
		points = append(points, scripts.KeyPoint{
			Name:       point.Name,
			X:          point.X,
			Y:          point.Y,
			Properties: point.Properties,
		})
	}
	return points
}

// Draw renders the active region and everything in it, offset by the camera.
func (w *World) Draw(screen render.Image, renderer render.Renderer, camX, camY float64) {
	m := w.ActiveMap()
	if m == nil {
		return
	}

	tileSize := m.Data.TileSize
	for y := 0; y < m.Data.Height; y++ {
		for x := 0; x < m.Data.Width; x++ {
			tileName, err := m.GetTileAt(x, y)
			if err != nil || tileName == "" {
				continue
			}
			screenX := float64(x*tileSize) - camX
			screenY := float64(y*tileSize) - camY
			if err := m.Atlas.DrawTile(screen, tileName, screenX, screenY); err != nil {
				continue
			}
		}
	}

	for _, obj := range w.objects {
		if obj.sprite != nil {
			drawSprite(screen, renderer, obj.sprite, camX, camY)
		}
	}

	drawSprite(screen, renderer, w.player, camX, camY)
}

func drawSprite(screen render.Image, renderer render.Renderer, s *Sprite, camX, camY float64) {
	x, y := s.Location()
	b := s.Bounds()

	if img := s.Image(); img != nil {
		opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
		opts.GeoM.Translate(b.X-camX, b.Y-camY)
		screen.DrawImage(img, opts)
		return
	}

	// Placeholder for sprites without art.
	radius := float32(b.Width / 2)
	renderer.FillCircle(screen, float32(x-camX), float32(y-camY), radius, placeholderColor)
}

func boolProp(properties map[string]any, key string) bool {
	v, _ := properties[key].(bool)
	return v
}
