// Package card defines the immutable card value type used throughout the
// Scoundrel engine.
package card

import "fmt"

// Kind distinguishes the three card types in Scoundrel.
type Kind int

const (
	Monster Kind = iota
	Weapon
	Potion
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case Monster:
		return "monster"
	case Weapon:
		return "weapon"
	case Potion:
		return "potion"
	default:
		return "unknown"
	}
}

// ParseKind maps a card type string from a dungeon file to a Kind.
// Both "health_potion" (classic dungeon schema) and "potion" are accepted.
//
// Postcondition: Returns a valid Kind or a non-nil error for unknown strings.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "monster":
		return Monster, nil
	case "weapon":
		return Weapon, nil
	case "health_potion", "potion":
		return Potion, nil
	default:
		return 0, fmt.Errorf("card: unknown card type %q", s)
	}
}

// Card is a single dungeon card. Cards are immutable once created;
// every field is set at construction and never mutated.
type Card struct {
	// ID is the dungeon-pool definition ID this card was built from.
	ID string
	// Name is the display name, e.g. "Ace of Spades".
	Name string
	// Kind is the card type.
	Kind Kind
	// Value is the card's numeric strength (damage, weapon rating, or heal amount).
	Value int
}

// String returns the card's display name.
func (c Card) String() string { return c.Name }

// IsMonster reports whether the card is a monster.
func (c Card) IsMonster() bool { return c.Kind == Monster }

// IsWeapon reports whether the card is a weapon.
func (c Card) IsWeapon() bool { return c.Kind == Weapon }

// IsPotion reports whether the card is a health potion.
func (c Card) IsPotion() bool { return c.Kind == Potion }
