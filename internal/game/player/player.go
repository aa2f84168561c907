package player

import "fmt"

// DefaultMaxHealth is the classic Scoundrel health cap.
const DefaultMaxHealth = 20

// Player is the adventurer state for one game.
//
// Invariant: 0 <= Health() <= MaxHealth() at all times.
type Player struct {
	health    int
	maxHealth int
	weapon    *Weapon
	// potionsUsed counts potions that were allowed to heal this turn.
	potionsUsed int
}

// New creates a player at full health with no weapon.
//
// Precondition: maxHealth > 0.
func New(maxHealth int) *Player {
	if maxHealth <= 0 {
		panic(fmt.Sprintf("player: maxHealth must be > 0, got %d", maxHealth))
	}
	return &Player{health: maxHealth, maxHealth: maxHealth}
}

// Health returns the current health.
func (p *Player) Health() int { return p.health }

// MaxHealth returns the health cap.
func (p *Player) MaxHealth() int { return p.maxHealth }

// Weapon returns the equipped weapon, or nil when unarmed.
func (p *Player) Weapon() *Weapon { return p.weapon }

// Armed reports whether a weapon is equipped.
func (p *Player) Armed() bool { return p.weapon != nil }

// Alive reports whether health is above zero.
func (p *Player) Alive() bool { return p.health > 0 }

// TakeDamage reduces health by damage, flooring at zero.
//
// Precondition: damage >= 0.
// Postcondition: Health() >= 0.
func (p *Player) TakeDamage(damage int) {
	p.health -= damage
	if p.health < 0 {
		p.health = 0
	}
}

// Heal raises health by up to amount, capping at MaxHealth, and returns the
// amount actually healed.
//
// Precondition: amount >= 0.
// Postcondition: Health() <= MaxHealth(); return value == Health() - previous Health().
func (p *Player) Heal(amount int) int {
	before := p.health
	p.health += amount
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
	return p.health - before
}

// Equip replaces the current weapon and returns the previous one (nil when
// unarmed). The new weapon's kill chain starts empty.
func (p *Player) Equip(w *Weapon) *Weapon {
	old := p.weapon
	p.weapon = w
	return old
}

// PotionsUsed returns the number of potions that healed this turn.
func (p *Player) PotionsUsed() int { return p.potionsUsed }

// RecordPotion increments the per-turn potion counter.
func (p *Player) RecordPotion() { p.potionsUsed++ }

// ResetTurn clears per-turn state. Called when a new room is drawn.
func (p *Player) ResetTurn() { p.potionsUsed = 0 }

// String returns a short status line, e.g. "HP 14/20, armed with 7 of Diamonds (unused)".
func (p *Player) String() string {
	if p.weapon == nil {
		return fmt.Sprintf("HP %d/%d, unarmed", p.health, p.maxHealth)
	}
	return fmt.Sprintf("HP %d/%d, armed with %s", p.health, p.maxHealth, p.weapon)
}
