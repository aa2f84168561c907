// Package room implements the 4-card room being resolved in the current turn.
package room

import (
	"fmt"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
)

// Size is the number of cards in a full room.
const Size = 4

// FacesPerRoom is the number of cards that must be faced to complete a room;
// the remaining card carries over into the next room's draw.
const FacesPerRoom = Size - 1

// Room holds the active cards of the current turn and tracks which have
// been faced. Faced state is tracked by position, so duplicate cards from
// pools with count > 1 are handled correctly.
//
// Invariant: FacedCount() + len(Unfaced()) == Len().
type Room struct {
	cards []card.Card
	faced []bool
}

// New returns an empty room.
func New() *Room {
	return &Room{}
}

// Add appends a card to the room.
//
// Precondition: the room must not already hold Size cards.
func (r *Room) Add(c card.Card) error {
	if len(r.cards) >= Size {
		return fmt.Errorf("room: already holds %d cards", Size)
	}
	r.cards = append(r.cards, c)
	r.faced = append(r.faced, false)
	return nil
}

// Len returns the number of cards in the room, faced or not.
func (r *Room) Len() int { return len(r.cards) }

// IsFull reports whether the room holds Size cards.
func (r *Room) IsFull() bool { return len(r.cards) == Size }

// IsComplete reports whether FacesPerRoom cards of a full room have been
// faced, leaving exactly one card to carry over.
func (r *Room) IsComplete() bool {
	return len(r.cards) == Size && r.FacedCount() == FacesPerRoom
}

// FacedCount returns the number of faced cards.
func (r *Room) FacedCount() int {
	n := 0
	for _, f := range r.faced {
		if f {
			n++
		}
	}
	return n
}

// Peek returns the card at index without facing it.
//
// Postcondition: Returns an error for an out-of-range index or an
// already-faced card; the room is unchanged either way.
func (r *Room) Peek(index int) (card.Card, error) {
	if index < 0 || index >= len(r.cards) {
		return card.Card{}, fmt.Errorf("room: card index %d out of range [0, %d)", index, len(r.cards))
	}
	if r.faced[index] {
		return card.Card{}, fmt.Errorf("room: card at index %d already faced", index)
	}
	return r.cards[index], nil
}

// Face marks the card at index as faced and returns it.
//
// Precondition: index addresses an unfaced card and the room is not complete.
// Postcondition: On error the room is unchanged.
func (r *Room) Face(index int) (card.Card, error) {
	if r.FacedCount() >= FacesPerRoom {
		return card.Card{}, fmt.Errorf("room: cannot face more than %d cards per room", FacesPerRoom)
	}
	c, err := r.Peek(index)
	if err != nil {
		return card.Card{}, err
	}
	r.faced[index] = true
	return c, nil
}

// Faced reports whether the card at index has been faced.
//
// Precondition: 0 <= index < Len().
func (r *Room) Faced(index int) bool { return r.faced[index] }

// Cards returns a copy of all room cards in position order.
func (r *Room) Cards() []card.Card {
	out := make([]card.Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Unfaced returns the cards not yet faced, in position order.
func (r *Room) Unfaced() []card.Card {
	var out []card.Card
	for i, c := range r.cards {
		if !r.faced[i] {
			out = append(out, c)
		}
	}
	return out
}

// UnfacedIndices returns the positions of the cards not yet faced.
func (r *Room) UnfacedIndices() []int {
	var out []int
	for i := range r.cards {
		if !r.faced[i] {
			out = append(out, i)
		}
	}
	return out
}

// Carry returns the single unfaced card of a complete room.
// ok is false while the room is not complete.
func (r *Room) Carry() (card.Card, bool) {
	if !r.IsComplete() {
		return card.Card{}, false
	}
	for i, c := range r.cards {
		if !r.faced[i] {
			return c, true
		}
	}
	return card.Card{}, false
}
