// Package event defines the structured events the engine emits for each
// action and the sinks that persist them.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a game event.
type Kind string

const (
	GameStarted Kind = "game_started"
	RoomDrawn   Kind = "room_drawn"
	RoomAvoided Kind = "room_avoided"
	CardFaced   Kind = "card_faced"
	GameOver    Kind = "game_over"
)

// Event is one structured game event. Data carries event-specific fields
// (card identities and values, damage, resulting health); State optionally
// carries a full game-state snapshot for replay.
type Event struct {
	ID        string         `json:"id"`
	GameID    string         `json:"game_id"`
	Kind      Kind           `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Turn      int            `json:"turn"`
	Data      map[string]any `json:"data,omitempty"`
	State     any            `json:"state,omitempty"`
}

// New creates an event with a fresh ID and the current timestamp.
func New(gameID string, kind Kind, turn int, data map[string]any) Event {
	return Event{
		ID:        uuid.New().String(),
		GameID:    gameID,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
		Turn:      turn,
		Data:      data,
	}
}

// WithState returns a copy of the event carrying a state snapshot.
func (e Event) WithState(state any) Event {
	e.State = state
	return e
}
