// Package dungeon defines the configurable card pool a Scoundrel deck is
// built from, with YAML loading and validation.
package dungeon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
)

// MinCards is the smallest pool size a game can be started from.
const MinCards = 20

// CardDefinition describes one entry in the dungeon card pool. A definition
// with Count > 1 expands into that many identical cards.
type CardDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Value       int    `yaml:"value"`
	Count       int    `yaml:"count"`
	Description string `yaml:"description,omitempty"`
}

// Kind maps the definition's type string to a card.Kind.
func (d CardDefinition) Kind() (card.Kind, error) {
	return card.ParseKind(d.Type)
}

// Pool is a dungeon card pool: the multiset of cards the deck is built from,
// not the shuffled deck used during play.
type Pool struct {
	Version string
	Cards   []CardDefinition
}

// TotalCards returns the pool size with counts expanded.
func (p *Pool) TotalCards() int {
	total := 0
	for _, d := range p.Cards {
		total += d.Count
	}
	return total
}

// ByKind returns the definitions of the given kind.
func (p *Pool) ByKind(k card.Kind) []CardDefinition {
	var out []CardDefinition
	for _, d := range p.Cards {
		if got, err := d.Kind(); err == nil && got == k {
			out = append(out, d)
		}
	}
	return out
}

// ByID returns the definition with the given ID.
func (p *Pool) ByID(id string) (CardDefinition, bool) {
	for _, d := range p.Cards {
		if d.ID == id {
			return d, true
		}
	}
	return CardDefinition{}, false
}

// Validate checks all pool invariants: known card types, unique IDs,
// positive values and counts, and the minimum pool size.
//
// Postcondition: Returns nil for a valid pool, or an error describing all violations.
func (p *Pool) Validate() error {
	var errs []string

	seen := make(map[string]bool, len(p.Cards))
	for _, d := range p.Cards {
		if d.ID == "" {
			errs = append(errs, "card id must not be empty")
			continue
		}
		if seen[d.ID] {
			errs = append(errs, fmt.Sprintf("duplicate card id %q", d.ID))
		}
		seen[d.ID] = true

		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("card %q: name must not be empty", d.ID))
		}
		if _, err := d.Kind(); err != nil {
			errs = append(errs, fmt.Sprintf("card %q: %v", d.ID, err))
		}
		if d.Value <= 0 {
			errs = append(errs, fmt.Sprintf("card %q: value must be > 0, got %d", d.ID, d.Value))
		}
		if d.Count <= 0 {
			errs = append(errs, fmt.Sprintf("card %q: count must be > 0, got %d", d.ID, d.Count))
		}
	}

	if len(p.Cards) == 0 {
		errs = append(errs, "pool has no cards")
	} else if total := p.TotalCards(); total < MinCards {
		errs = append(errs, fmt.Sprintf("pool has too few cards: %d (minimum %d)", total, MinCards))
	}

	if len(errs) > 0 {
		return errors.New("dungeon: " + strings.Join(errs, "; "))
	}
	return nil
}

// Build expands the pool into the ordered card list the deck starts from,
// one card per count, in definition order.
//
// Precondition: the pool should have passed Validate; unknown types expand
// to nothing.
// Postcondition: len(result) == TotalCards() for a valid pool.
func (p *Pool) Build() []card.Card {
	out := make([]card.Card, 0, p.TotalCards())
	for _, d := range p.Cards {
		kind, err := d.Kind()
		if err != nil {
			continue
		}
		for i := 0; i < d.Count; i++ {
			out = append(out, card.Card{ID: d.ID, Name: d.Name, Kind: kind, Value: d.Value})
		}
	}
	return out
}
