// Package deck implements the ordered dungeon deck: draws come off the
// front, avoided rooms return to the back.
package deck

import (
	"errors"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
	"github.com/cory-johannsen/scoundrel/internal/game/rng"
)

// ErrInsufficientCards is returned by Draw when fewer cards remain than
// requested. The engine treats it as the deck-exhausted terminal condition;
// it is never surfaced to callers of the engine.
var ErrInsufficientCards = errors.New("deck: insufficient cards")

// Deck is the ordered dungeon deck for one game.
//
// Invariant: cards leave only through Draw and enter only through New and
// AddToBottom, so the total across deck, room, and discard is conserved.
type Deck struct {
	cards []card.Card
}

// New builds a deck from the given cards, preserving their order.
// The slice is copied; the caller keeps ownership of its argument.
func New(cards []card.Card) *Deck {
	d := &Deck{cards: make([]card.Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle permutes the deck in place using src (Fisher-Yates).
//
// This is the only place randomness enters the engine; a seeded src makes
// the whole game reproducible.
//
// Precondition: src must be non-nil.
func (d *Deck) Shuffle(src rng.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns up to n cards from the front of the deck.
// When fewer than n remain, every remaining card is returned together with
// ErrInsufficientCards.
//
// Precondition: n >= 0.
// Postcondition: len(result) == min(n, previous Remaining()).
func (d *Deck) Draw(n int) ([]card.Card, error) {
	if n <= len(d.cards) {
		drawn := make([]card.Card, n)
		copy(drawn, d.cards[:n])
		d.cards = d.cards[n:]
		return drawn, nil
	}
	drawn := make([]card.Card, len(d.cards))
	copy(drawn, d.cards)
	d.cards = d.cards[:0]
	return drawn, ErrInsufficientCards
}

// AddToBottom appends cards to the back of the deck, preserving their
// relative order. Used when a room is avoided.
func (d *Deck) AddToBottom(cards []card.Card) {
	d.cards = append(d.cards, cards...)
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int { return len(d.cards) }

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Cards returns a copy of the remaining cards in draw order.
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}
