// Package player holds the adventurer state for one game: health and the
// equipped weapon with its kill chain.
package player

import (
	"fmt"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
)

// Weapon tracks the equipped weapon card and the values of the monsters
// defeated with it, in kill order.
//
// Invariant: once a weapon has killed, it can only be used against monsters
// whose value is <= the value of its most recent kill.
type Weapon struct {
	card  card.Card
	kills []int
}

// NewWeapon wraps a weapon card as an equipped weapon with an empty kill chain.
//
// Precondition: c.Kind must be card.Weapon.
// Postcondition: Returns a weapon with no kills, or an error for non-weapon cards.
func NewWeapon(c card.Card) (*Weapon, error) {
	if c.Kind != card.Weapon {
		return nil, fmt.Errorf("player: card %q is not a weapon", c.Name)
	}
	return &Weapon{card: c}, nil
}

// Card returns the weapon card this weapon was built from.
func (w *Weapon) Card() card.Card { return w.card }

// Damage returns the weapon's damage rating.
func (w *Weapon) Damage() int { return w.card.Value }

// Kills returns a copy of the slain monster values in kill order.
func (w *Weapon) Kills() []int {
	out := make([]int, len(w.kills))
	copy(out, w.kills)
	return out
}

// LastKill returns the value of the most recent kill.
// ok is false when the weapon is unused.
func (w *Weapon) LastKill() (value int, ok bool) {
	if len(w.kills) == 0 {
		return 0, false
	}
	return w.kills[len(w.kills)-1], true
}

// Used reports whether the weapon has killed at least one monster.
func (w *Weapon) Used() bool { return len(w.kills) > 0 }

// CanKill reports whether the weapon may be used against monster.
// An unused weapon can kill anything; a used weapon only monsters with
// value <= the last kill.
//
// Precondition: monster.Kind must be card.Monster.
func (w *Weapon) CanKill(monster card.Card) bool {
	last, ok := w.LastKill()
	if !ok {
		return true
	}
	return monster.Value <= last
}

// Attack resolves a weapon fight against monster and returns the damage the
// player takes: max(0, monster.Value - Damage()). The monster's value is
// appended to the kill chain even when the damage is zero, moving the
// restriction threshold to this kill.
//
// Precondition: monster.Kind must be card.Monster.
// Postcondition: Returns the damage taken, or an error (kill chain unchanged)
// when CanKill(monster) is false.
func (w *Weapon) Attack(monster card.Card) (int, error) {
	if !w.CanKill(monster) {
		last, _ := w.LastKill()
		return 0, fmt.Errorf("player: weapon %q cannot kill %q (last kill: %d)",
			w.card.Name, monster.Name, last)
	}
	damage := monster.Value - w.card.Value
	if damage < 0 {
		damage = 0
	}
	w.kills = append(w.kills, monster.Value)
	return damage, nil
}

// String returns a short status label, e.g. "7 of Diamonds (last kill: 5)".
func (w *Weapon) String() string {
	if last, ok := w.LastKill(); ok {
		return fmt.Sprintf("%s (last kill: %d)", w.card.Name, last)
	}
	return fmt.Sprintf("%s (unused)", w.card.Name)
}
