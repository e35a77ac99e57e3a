// Package scripts defines the surface that game content programs against:
// the GameAPI exposed by the engine core, the Script hooks attached to world
// objects, and the GUI contract for menu screens.
package scripts

import (
	"fmt"
	"strings"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/render"
)

// KeyPoint is a named location in a region. Key points mark player start
// positions, transition targets, and other places scripts care about.
type KeyPoint struct {
	Name       string
	X, Y       float64
	Properties map[string]any
}

// GUI is a screen (menu, dialog) displayed while the game is in the GUI
// state. The world does not update while a GUI is shown.
type GUI interface {
	Draw(screen render.Image)
	OnKeyPress(key render.Key, mods render.Modifiers)
	OnKeyRelease(key render.Key, mods render.Modifiers)
	OnMouseMotion(x, y, dx, dy int)
	OnMouseRelease(x, y int, button render.MouseButton, mods render.Modifiers)
}

// GameAPI is the engine surface available to scripts and GUIs. The engine
// core implements it. World-dependent calls return the core's
// not-initialized error until the game has been started.
type GameAPI interface {
	// StartGame switches to the in-game state, creating the world on the
	// first call.
	StartGame()

	// ShowGUI switches to the GUI state and displays the given GUI.
	ShowGUI(g GUI)

	// ChangeRegion moves the game to a different region, placing the player
	// at the named key point.
	ChangeRegion(name, startLocation string) error

	// CreateSprite places a new sprite in the active region.
	CreateSprite(specName, name string, x, y float64, script Script) error

	// KeyPoints returns the key points of the active region whose names
	// contain name. An empty name returns all of them.
	KeyPoints(name string) ([]KeyPoint, error)

	// PlayerState returns the player's state document.
	PlayerState() (map[string]any, error)

	// SetPlayerState replaces the player's state document.
	SetPlayerState(state map[string]any) error

	// SaveGame persists the player state and position under a named slot.
	SaveGame(slot string) error

	// LoadGame restores a previously saved slot.
	LoadGame(slot string) error
}

// ScriptOwner is the world object a script is attached to.
type ScriptOwner interface {
	Name() string
	Location() (x, y float64)
}

// Script attaches behavior to a world object. Hooks are invoked by the world
// during its update cycle; all of them run on the engine loop.
type Script interface {
	// SetAPI hands the script its handle to the engine.
	SetAPI(api GameAPI)

	// SetOwner binds the script to the object that carries it.
	SetOwner(owner ScriptOwner)

	// OnStart fires the first time the script's region is loaded.
	OnStart(owner ScriptOwner)

	// OnTick fires every world update.
	OnTick(gameTime, deltaTime float64)

	// OnCollide fires when the player collides with the owner.
	OnCollide(owner ScriptOwner, player ScriptOwner)

	// OnActivate fires when the player activates the owner.
	OnActivate(owner ScriptOwner, player ScriptOwner)

	// OnHit fires when the player hits the owner.
	OnHit(owner ScriptOwner, player ScriptOwner)

	// State returns the script's serializable state. It is snapshotted when
	// the player leaves the region and restored on return.
	State() map[string]any

	// SetState restores a previously snapshotted state.
	SetState(state map[string]any)
}

// BaseScript provides no-op defaults for every Script hook. Concrete scripts
// embed it and override what they need.
type BaseScript struct {
	api   GameAPI
	owner ScriptOwner
	state map[string]any
}

// SetAPI stores the engine handle.
func (b *BaseScript) SetAPI(api GameAPI) { b.api = api }

// API returns the engine handle.
func (b *BaseScript) API() GameAPI { return b.api }

// SetOwner stores the owning object.
func (b *BaseScript) SetOwner(owner ScriptOwner) { b.owner = owner }

// Owner returns the owning object.
func (b *BaseScript) Owner() ScriptOwner { return b.owner }

func (b *BaseScript) OnStart(owner ScriptOwner) {}

func (b *BaseScript) OnTick(gameTime, deltaTime float64) {}

func (b *BaseScript) OnCollide(owner, player ScriptOwner) {}

func (b *BaseScript) OnActivate(owner, player ScriptOwner) {}

func (b *BaseScript) OnHit(owner, player ScriptOwner) {}

// State returns the script's state map.
func (b *BaseScript) State() map[string]any {
	if b.state == nil {
		b.state = map[string]any{}
	}
	return b.state
}

// SetState replaces the script's state map.
func (b *BaseScript) SetState(state map[string]any) { b.state = state }

// Handler is a named entry point that map objects can reference from their
// properties (e.g. on_activate: "transition_region").
type Handler func(api GameAPI, args map[string]any) error

// handlers is the registry of named entry points available to map objects
// and GUI buttons.
var handlers = map[string]Handler{}

// RegisterHandler adds a named handler to the registry. Registration of a
// duplicate name is a programming error.
func RegisterHandler(name string, h Handler) {
	if _, ok := handlers[name]; ok {
		panic(fmt.Sprintf("scripts: handler %q registered twice", name))
	}
	handlers[name] = h
}

// LookupHandler resolves a handler by name.
func LookupHandler(name string) (Handler, bool) {
	h, ok := handlers[name]
	return h, ok
}

// ExtractArgs collects the keys of properties that start with prefix,
// stripping the prefix. Map objects use prefixed properties to pass
// arguments to their handlers (e.g. on_activate_region: "village").
func ExtractArgs(prefix string, properties map[string]any) map[string]any {
	args := map[string]any{}
	for key, value := range properties {
		if strings.HasPrefix(key, prefix) {
			args[strings.TrimPrefix(key, prefix)] = value
		}
	}
	return args
}

// ObjectScript wires map-object properties to registered handlers. Each hook
// that the object's properties name is dispatched through the registry with
// its extracted arguments; hooks without a handler are no-ops.
type ObjectScript struct {
	BaseScript

	onStart        string
	onStartArgs    map[string]any
	onTick         string
	onTickArgs     map[string]any
	onCollide      string
	onCollideArgs  map[string]any
	onActivate     string
	onActivateArgs map[string]any
	onHit          string
	onHitArgs      map[string]any

	// OnError receives handler failures. Defaults to a no-op; the world
	// installs a logging hook.
	OnError func(hook string, err error)
}

// NewObjectScript builds an ObjectScript from a map object's properties.
func NewObjectScript(api GameAPI, properties map[string]any) *ObjectScript {
	s := &ObjectScript{
		onStart:        stringProp(properties, "on_start"),
		onStartArgs:    ExtractArgs("on_start_", properties),
		onTick:         stringProp(properties, "on_tick"),
		onTickArgs:     ExtractArgs("on_tick_", properties),
		onCollide:      stringProp(properties, "on_collide"),
		onCollideArgs:  ExtractArgs("on_collide_", properties),
		onActivate:     stringProp(properties, "on_activate"),
		onActivateArgs: ExtractArgs("on_activate_", properties),
		onHit:          stringProp(properties, "on_hit"),
		onHitArgs:      ExtractArgs("on_hit_", properties),
	}
	s.SetAPI(api)
	return s
}

func stringProp(properties map[string]any, key string) string {
	v, _ := properties[key].(string)
	return v
}

func (s *ObjectScript) dispatch(hook, name string, args map[string]any) {
	if name == "" {
		return
	}
	h, ok := LookupHandler(name)
	if !ok {
		s.fail(hook, fmt.Errorf("unknown handler %q", name))
		return
	}
	if err := h(s.API(), args); err != nil {
		s.fail(hook, err)
	}
}

func (s *ObjectScript) fail(hook string, err error) {
	if s.OnError != nil {
		s.OnError(hook, err)
	}
}

func (s *ObjectScript) OnStart(owner ScriptOwner) {
	s.dispatch("on_start", s.onStart, s.onStartArgs)
}

func (s *ObjectScript) OnTick(gameTime, deltaTime float64) {
	s.dispatch("on_tick", s.onTick, s.onTickArgs)
}

func (s *ObjectScript) OnCollide(owner, player ScriptOwner) {
	s.dispatch("on_collide", s.onCollide, s.onCollideArgs)
}

func (s *ObjectScript) OnActivate(owner, player ScriptOwner) {
	s.dispatch("on_activate", s.onActivate, s.onActivateArgs)
}

func (s *ObjectScript) OnHit(owner, player ScriptOwner) {
	s.dispatch("on_hit", s.onHit, s.onHitArgs)
}
