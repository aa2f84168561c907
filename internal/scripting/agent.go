package scripting

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// Hook names a script must define to drive a game.
const (
	hookDecideAvoid = "decide_avoid_room"
	hookChooseCard  = "choose_card"
)

// ScriptAgent drives a game from a user-supplied Lua script. The script
// defines two global functions:
//
//	decide_avoid_room(state) -> boolean
//	choose_card(state, available) -> index [, method]
//
// state is a table mirroring the game snapshot; available is an array of
// unfaced room slots, each carrying the "index" FaceCard expects. method is
// one of "auto", "barehanded", "weapon" and defaults to "auto".
//
// Lua runtime errors are logged and answered with a safe default, so a
// buggy script degrades instead of crashing the game.
type ScriptAgent struct {
	state     *lua.LState
	cancel    context.CancelFunc
	instLimit int
	logger    *zap.Logger
}

// NewScriptAgent loads path into a fresh sandboxed VM.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a ready agent, or an error if the script fails to load.
// The caller must call Close when done.
func NewScriptAgent(path string, instLimit int, logger *zap.Logger) (*ScriptAgent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	L, cancel := NewSandboxedState(instLimit)
	if err := L.DoFile(path); err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: loading agent script %q: %w", path, err)
	}
	return &ScriptAgent{state: L, cancel: cancel, instLimit: instLimit, logger: logger}, nil
}

// Close releases the Lua VM.
func (a *ScriptAgent) Close() {
	a.cancel()
	a.state.Close()
}

// DecideAvoidRoom calls decide_avoid_room in the script. Defaults to false
// when the hook is missing or errors.
func (a *ScriptAgent) DecideAvoidRoom(state engine.State) bool {
	ret := a.call(hookDecideAvoid, stateTable(a.state, state))
	return lua.LVAsBool(ret)
}

// ChooseCard calls choose_card in the script. Defaults to the first
// available slot with method auto when the hook is missing, errors, or
// returns an index that is not available.
func (a *ScriptAgent) ChooseCard(state engine.State, available []engine.RoomCard) (int, engine.Method) {
	L := a.state

	slots := L.NewTable()
	for _, rc := range available {
		slots.Append(roomCardTable(L, rc))
	}

	ret := a.call(hookChooseCard, stateTable(L, state), slots)

	index := -1
	method := engine.MethodAuto
	switch v := ret.(type) {
	case lua.LNumber:
		index = int(v)
	case *lua.LTable:
		index = int(lua.LVAsNumber(v.RawGetString("index")))
		if m, err := engine.ParseMethod(lua.LVAsString(v.RawGetString("method"))); err == nil {
			method = m
		}
	}

	for _, rc := range available {
		if rc.Index == index {
			return index, method
		}
	}
	a.logger.Warn("script chose unavailable card, using first available",
		zap.Int("index", index))
	return available[0].Index, engine.MethodAuto
}

// call invokes the named global hook with a fresh opcode budget and returns
// its first return value, or LNil on any failure.
func (a *ScriptAgent) call(hook string, args ...lua.LValue) lua.LValue {
	L := a.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		a.logger.Warn("script hook not defined", zap.String("hook", hook))
		return lua.LNil
	}

	a.cancel()
	ctx, cancel := newCountingContext(a.effectiveLimit())
	a.cancel = cancel
	L.SetContext(ctx)

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		a.logger.Warn("script hook failed", zap.String("hook", hook), zap.Error(err))
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

func (a *ScriptAgent) effectiveLimit() int {
	if a.instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return a.instLimit
}

// stateTable converts a game snapshot to a Lua table.
func stateTable(L *lua.LState, st engine.State) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("turn", lua.LNumber(st.Turn))
	t.RawSetString("phase", lua.LString(st.PhaseName))
	t.RawSetString("deck_count", lua.LNumber(st.DeckCount))
	t.RawSetString("discard_count", lua.LNumber(st.DiscardCount))
	t.RawSetString("can_avoid", lua.LBool(st.CanAvoid))
	t.RawSetString("game_over", lua.LBool(st.GameOver))

	player := L.NewTable()
	player.RawSetString("health", lua.LNumber(st.Player.Health))
	player.RawSetString("max_health", lua.LNumber(st.Player.MaxHealth))
	if w := st.Player.Weapon; w != nil {
		weapon := L.NewTable()
		weapon.RawSetString("value", lua.LNumber(w.Card.Value))
		weapon.RawSetString("used", lua.LBool(w.Used))
		weapon.RawSetString("last_kill", lua.LNumber(w.LastKill))
		player.RawSetString("weapon", weapon)
	}
	t.RawSetString("player", player)

	if st.Room != nil {
		room := L.NewTable()
		for _, rc := range st.Room.Cards {
			room.Append(roomCardTable(L, rc))
		}
		t.RawSetString("room", room)
	}
	return t
}

// roomCardTable converts one room slot to a Lua table.
func roomCardTable(L *lua.LState, rc engine.RoomCard) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("index", lua.LNumber(rc.Index))
	t.RawSetString("name", lua.LString(rc.Card.Name))
	t.RawSetString("kind", lua.LString(rc.Card.Kind.String()))
	t.RawSetString("value", lua.LNumber(rc.Card.Value))
	t.RawSetString("faced", lua.LBool(rc.Faced))
	return t
}
