package engine

import "github.com/cory-johannsen/scoundrel/internal/game/card"

// WeaponState is a snapshot of the equipped weapon.
type WeaponState struct {
	Card card.Card `json:"card"`
	// Kills holds the slain monster values in kill order.
	Kills []int `json:"kills"`
	// LastKill is the current restriction threshold; meaningful only when Used.
	LastKill int  `json:"last_kill"`
	Used     bool `json:"used"`
}

// PlayerState is a snapshot of the player.
type PlayerState struct {
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	// Weapon is nil when unarmed.
	Weapon *WeaponState `json:"weapon"`
}

// RoomCard is one card slot of the current room.
type RoomCard struct {
	// Index is the card's position in the room, the index FaceCard expects.
	Index int       `json:"index"`
	Card  card.Card `json:"card"`
	Faced bool      `json:"faced"`
}

// RoomState is a snapshot of the current room.
type RoomState struct {
	Cards []RoomCard `json:"cards"`
}

// Unfaced returns the room slots that have not been faced.
func (r *RoomState) Unfaced() []RoomCard {
	var out []RoomCard
	for _, rc := range r.Cards {
		if !rc.Faced {
			out = append(out, rc)
		}
	}
	return out
}

// State is an immutable snapshot of a game, the only view external
// consumers (UI, agents, event sinks) get. Deck contents are deliberately
// absent: drivers see counts, not order.
type State struct {
	GameID       string      `json:"game_id"`
	Turn         int         `json:"turn"`
	Phase        Phase       `json:"-"`
	PhaseName    string      `json:"phase"`
	Player       PlayerState `json:"player"`
	DeckCount    int         `json:"deck_count"`
	DiscardCount int         `json:"discard_count"`
	// Room is nil before the first draw, after an avoid, and after game over
	// cleanup.
	Room     *RoomState `json:"room"`
	CanAvoid bool       `json:"can_avoid"`
	GameOver bool       `json:"game_over"`
	Victory  bool       `json:"victory"`
	Score    int        `json:"score"`
	// Reason is empty until the game ends.
	Reason Reason `json:"reason,omitempty"`
}

// Snapshot builds the current State.
//
// Postcondition: The returned value shares no mutable data with the engine.
func (e *Engine) Snapshot() State {
	st := State{
		GameID:       e.id,
		Turn:         e.turn,
		Phase:        e.phase,
		PhaseName:    e.phase.String(),
		DeckCount:    e.deck.Remaining(),
		DiscardCount: len(e.discard),
		CanAvoid:     e.canAvoid(),
		GameOver:     e.gameOver,
		Victory:      e.victory,
		Score:        e.score,
		Reason:       e.reason,
	}

	st.Player = PlayerState{
		Health:    e.player.Health(),
		MaxHealth: e.player.MaxHealth(),
	}
	if w := e.player.Weapon(); w != nil {
		ws := &WeaponState{Card: w.Card(), Kills: w.Kills(), Used: w.Used()}
		if last, ok := w.LastKill(); ok {
			ws.LastKill = last
		}
		st.Player.Weapon = ws
	}

	if e.room != nil {
		rs := &RoomState{}
		for i, c := range e.room.Cards() {
			rs.Cards = append(rs.Cards, RoomCard{Index: i, Card: c, Faced: e.room.Faced(i)})
		}
		st.Room = rs
	}

	return st
}
