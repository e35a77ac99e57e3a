package scripts

import (
	"fmt"

	"github.com/Shopify/go-lua"
)

// Lua hook names looked up as globals in a script chunk.
const (
	luaOnStart    = "on_start"
	luaOnTick     = "on_tick"
	luaOnCollide  = "on_collide"
	luaOnActivate = "on_activate"
	luaOnHit      = "on_hit"
)

// LuaScript runs a Lua chunk as a Script. The chunk defines any of the hook
// functions (on_start, on_tick, on_collide, on_activate, on_hit) as globals
// and talks back to the engine through the "game" table.
//
// The game table exposes:
//
//	game.start_game()
//	game.change_region(region, start_location)
//	game.create_sprite(spec, name, x, y)
//	game.key_point_location(name) -> x, y
//	game.player_get(key) / game.player_set(key, value)
//	game.state_get(key) / game.state_set(key, value)
//	game.save_game(slot) / game.load_game(slot)
type LuaScript struct {
	state *lua.State
	path  string

	api   GameAPI
	owner ScriptOwner
	doc   map[string]any

	// OnError receives hook and API failures. Defaults to a no-op; the
	// world installs a logging hook.
	OnError func(hook string, err error)
}

// NewLuaScript loads and runs the chunk at path, leaving its hook functions
// defined as globals.
func NewLuaScript(path string) (*LuaScript, error) {
	s := &LuaScript{
		state: lua.NewState(),
		path:  path,
		doc:   map[string]any{},
	}
	lua.OpenLibraries(s.state)
	s.registerGameTable()

	if err := lua.LoadFile(s.state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua script %s: %w", path, err)
	}
	if err := s.state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run lua script %s: %w", path, err)
	}
	return s, nil
}

// SetAPI stores the engine handle.
func (s *LuaScript) SetAPI(api GameAPI) { s.api = api }

// SetOwner binds the script to its owner.
func (s *LuaScript) SetOwner(owner ScriptOwner) { s.owner = owner }

// State returns the script's state document.
func (s *LuaScript) State() map[string]any { return s.doc }

// SetState replaces the script's state document.
func (s *LuaScript) SetState(state map[string]any) {
	if state == nil {
		state = map[string]any{}
	}
	s.doc = state
}

// OnStart invokes the chunk's on_start(x, y), if defined.
func (s *LuaScript) OnStart(owner ScriptOwner) {
	x, y := owner.Location()
	s.call(luaOnStart, x, y)
}

// OnTick invokes the chunk's on_tick(game_time, delta_time), if defined.
func (s *LuaScript) OnTick(gameTime, deltaTime float64) {
	s.call(luaOnTick, gameTime, deltaTime)
}

// OnCollide invokes the chunk's on_collide(player_x, player_y), if defined.
func (s *LuaScript) OnCollide(owner, player ScriptOwner) {
	x, y := player.Location()
	s.call(luaOnCollide, x, y)
}

// OnActivate invokes the chunk's on_activate(player_x, player_y), if defined.
func (s *LuaScript) OnActivate(owner, player ScriptOwner) {
	x, y := player.Location()
	s.call(luaOnActivate, x, y)
}

// OnHit invokes the chunk's on_hit(player_x, player_y), if defined.
func (s *LuaScript) OnHit(owner, player ScriptOwner) {
	x, y := player.Location()
	s.call(luaOnHit, x, y)
}

// call invokes a global hook function with float arguments. Undefined hooks
// are skipped.
func (s *LuaScript) call(hook string, args ...float64) {
	s.state.Global(hook)
	if s.state.TypeOf(-1) != lua.TypeFunction {
		s.state.Pop(1)
		return
	}
	for _, a := range args {
		s.state.PushNumber(a)
	}
	if err := s.state.ProtectedCall(len(args), 0, 0); err != nil {
		s.fail(hook, err)
	}
}

func (s *LuaScript) fail(hook string, err error) {
	if s.OnError != nil {
		s.OnError(hook, err)
	}
}

func (s *LuaScript) registerGameTable() {
	funcs := []lua.RegistryFunction{
		{Name: "start_game", Function: s.luaStartGame},
		{Name: "change_region", Function: s.luaChangeRegion},
		{Name: "create_sprite", Function: s.luaCreateSprite},
		{Name: "key_point_location", Function: s.luaKeyPointLocation},
		{Name: "player_get", Function: s.luaPlayerGet},
		{Name: "player_set", Function: s.luaPlayerSet},
		{Name: "state_get", Function: s.luaStateGet},
		{Name: "state_set", Function: s.luaStateSet},
		{Name: "save_game", Function: s.luaSaveGame},
		{Name: "load_game", Function: s.luaLoadGame},
	}

	s.state.NewTable()
	lua.SetFunctions(s.state, funcs, 0)
	s.state.SetGlobal("game")
}

func (s *LuaScript) luaStartGame(l *lua.State) int {
	s.api.StartGame()
	return 0
}

func (s *LuaScript) luaChangeRegion(l *lua.State) int {
	region := lua.CheckString(l, 1)
	start := lua.CheckString(l, 2)
	if err := s.api.ChangeRegion(region, start); err != nil {
		s.fail("change_region", err)
	}
	return 0
}

func (s *LuaScript) luaCreateSprite(l *lua.State) int {
	spec := lua.CheckString(l, 1)
	name := lua.CheckString(l, 2)
	x := lua.CheckNumber(l, 3)
	y := lua.CheckNumber(l, 4)
	if err := s.api.CreateSprite(spec, name, x, y, nil); err != nil {
		s.fail("create_sprite", err)
	}
	return 0
}

func (s *LuaScript) luaKeyPointLocation(l *lua.State) int {
	name := lua.CheckString(l, 1)
	points, err := s.api.KeyPoints(name)
	if err != nil || len(points) == 0 {
		if err != nil {
			s.fail("key_point_location", err)
		}
		l.PushNil()
		l.PushNil()
		return 2
	}
	l.PushNumber(points[0].X)
	l.PushNumber(points[0].Y)
	return 2
}

func (s *LuaScript) luaPlayerGet(l *lua.State) int {
	key := lua.CheckString(l, 1)
	state, err := s.api.PlayerState()
	if err != nil {
		s.fail("player_get", err)
		l.PushNil()
		return 1
	}
	pushValue(l, state[key])
	return 1
}

func (s *LuaScript) luaPlayerSet(l *lua.State) int {
	key := lua.CheckString(l, 1)
	value := toValue(l, 2)
	state, err := s.api.PlayerState()
	if err != nil {
		s.fail("player_set", err)
		return 0
	}
	state[key] = value
	if err := s.api.SetPlayerState(state); err != nil {
		s.fail("player_set", err)
	}
	return 0
}

func (s *LuaScript) luaStateGet(l *lua.State) int {
	key := lua.CheckString(l, 1)
	pushValue(l, s.doc[key])
	return 1
}

func (s *LuaScript) luaStateSet(l *lua.State) int {
	key := lua.CheckString(l, 1)
	s.doc[key] = toValue(l, 2)
	return 0
}

func (s *LuaScript) luaSaveGame(l *lua.State) int {
	slot := lua.CheckString(l, 1)
	if err := s.api.SaveGame(slot); err != nil {
		s.fail("save_game", err)
	}
	return 0
}

func (s *LuaScript) luaLoadGame(l *lua.State) int {
	slot := lua.CheckString(l, 1)
	if err := s.api.LoadGame(slot); err != nil {
		s.fail("load_game", err)
	}
	return 0
}

// pushValue pushes a Go value onto the Lua stack. Only the scalar types that
// survive a round trip through the state document are supported.
func pushValue(l *lua.State, v any) {
	switch value := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(value)
	case float64:
		l.PushNumber(value)
	case int:
		l.PushNumber(float64(value))
	case string:
		l.PushString(value)
	default:
		l.PushNil()
	}
}

// toValue converts the Lua value at index to a Go scalar.
func toValue(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n
	case lua.TypeString:
		str, _ := l.ToString(index)
		return str
	default:
		return nil
	}
}
