package engine

import (
	"fmt"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
)

// Method selects how a faced monster is fought. It is a closed enumeration
// validated at the engine boundary.
type Method int

const (
	// MethodAuto lets the engine pick: weapon when equipped and permitted,
	// barehanded otherwise. The only meaningful method for non-monsters.
	MethodAuto Method = iota
	// MethodBarehanded takes the monster's full value as damage.
	MethodBarehanded
	// MethodWeapon fights with the equipped weapon; invalid when unarmed or
	// when the weapon's kill chain forbids the monster.
	MethodWeapon
)

// String returns the method's wire label.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodBarehanded:
		return "barehanded"
	case MethodWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// valid reports whether m is a member of the enumeration.
func (m Method) valid() bool {
	return m == MethodAuto || m == MethodBarehanded || m == MethodWeapon
}

// ParseMethod maps a method string from an external boundary (UI input,
// Lua scripts, LLM replies) to a Method.
//
// Postcondition: Returns a valid Method or a non-nil error.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "auto", "":
		return MethodAuto, nil
	case "barehanded":
		return MethodBarehanded, nil
	case "weapon":
		return MethodWeapon, nil
	default:
		return 0, fmt.Errorf("engine: unknown method %q", s)
	}
}

// Result describes the observable outcome of one engine operation.
type Result struct {
	// Message is a human-readable description of what happened.
	Message string
	// Faced is the card resolved by a FaceCard call, nil otherwise.
	Faced *card.Card
	// Method is the resolved fight method for a faced monster.
	Method Method
	// DamageTaken is the health lost by this action.
	DamageTaken int
	// HealthGained is the health restored by this action.
	HealthGained int
	// RoomComplete is true when this action completed the room.
	RoomComplete bool
	// GameOver / Victory report a terminal transition caused by this action.
	GameOver bool
	Victory  bool
}
