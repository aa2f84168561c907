// Package agent defines the decision contract for automated players and
// ships two implementations: a rule-based heuristic and a Claude-backed one.
package agent

import "github.com/cory-johannsen/scoundrel/internal/game/engine"

// Agent decides how an automated player acts. Implementations read the
// published state snapshot; they never mutate game state directly — the
// driver turns decisions into engine calls.
type Agent interface {
	// DecideAvoidRoom reports whether to avoid the freshly drawn room.
	// Only consulted when the state allows avoiding.
	DecideAvoidRoom(state engine.State) bool

	// ChooseCard picks which card to face next and how. available holds the
	// unfaced room slots; the returned index is the chosen slot's room
	// Index, as expected by Engine.FaceCard.
	//
	// Precondition: available is non-empty.
	ChooseCard(state engine.State, available []engine.RoomCard) (int, engine.Method)
}
