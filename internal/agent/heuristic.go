package agent

import "github.com/cory-johannsen/scoundrel/internal/game/engine"

// Heuristic is a rule-based agent: it avoids rooms when badly hurt, drinks
// potions when injured, keeps a weapon equipped, and otherwise fights the
// cheapest monster it can.
type Heuristic struct {
	// AvoidBelow avoids rooms when health is at or below this value.
	AvoidBelow int
	// PotionBelow prioritizes potions when health is below this value.
	PotionBelow int
}

// NewHeuristic returns a Heuristic with the default thresholds.
func NewHeuristic() *Heuristic {
	return &Heuristic{AvoidBelow: 8, PotionBelow: 15}
}

// DecideAvoidRoom avoids when health is critically low.
func (h *Heuristic) DecideAvoidRoom(state engine.State) bool {
	return state.Player.Health <= h.AvoidBelow
}

// ChooseCard picks, in order of preference: a potion when injured, a weapon
// when unarmed, the weakest monster the equipped weapon can kill, the
// weakest monster overall, then whatever is first.
func (h *Heuristic) ChooseCard(state engine.State, available []engine.RoomCard) (int, engine.Method) {
	if state.Player.Health < h.PotionBelow {
		for _, rc := range available {
			if rc.Card.IsPotion() {
				return rc.Index, engine.MethodAuto
			}
		}
	}

	if state.Player.Weapon == nil {
		for _, rc := range available {
			if rc.Card.IsWeapon() {
				return rc.Index, engine.MethodAuto
			}
		}
	}

	if w := state.Player.Weapon; w != nil {
		best := -1
		for i, rc := range available {
			if !rc.Card.IsMonster() {
				continue
			}
			if w.Used && rc.Card.Value > w.LastKill {
				continue
			}
			if best == -1 || rc.Card.Value < available[best].Card.Value {
				best = i
			}
		}
		if best >= 0 {
			return available[best].Index, engine.MethodWeapon
		}
	}

	best := -1
	for i, rc := range available {
		if !rc.Card.IsMonster() {
			continue
		}
		if best == -1 || rc.Card.Value < available[best].Card.Value {
			best = i
		}
	}
	if best >= 0 {
		return available[best].Index, engine.MethodBarehanded
	}

	return available[0].Index, engine.MethodAuto
}
