package dungeon

import "fmt"

// Classic deck composition: 26 monsters (clubs and spades 2-14),
// 9 weapons (diamonds 2-10), 9 potions (hearts 2-10). 44 cards total.
const (
	monsterMin = 2
	monsterMax = 14
	weaponMin  = 2
	weaponMax  = 10
	potionMin  = 2
	potionMax  = 10
)

// faceNames maps high card values to their court names.
var faceNames = map[int]string{
	11: "Jack",
	12: "Queen",
	13: "King",
	14: "Ace",
}

// valueName returns the display name of a card value, e.g. "7" or "Queen".
func valueName(value int) string {
	if name, ok := faceNames[value]; ok {
		return name
	}
	return fmt.Sprintf("%d", value)
}

// DefaultPool returns the classic 44-card Scoundrel pool built from a
// standard deck: clubs and spades as monsters, diamonds as weapons,
// hearts as health potions.
//
// Postcondition: The returned pool passes Validate and TotalCards() == 44.
func DefaultPool() *Pool {
	var defs []CardDefinition

	suit := func(name, typ string, min, max int) {
		for v := min; v <= max; v++ {
			defs = append(defs, CardDefinition{
				ID:    fmt.Sprintf("%s-%d", name, v),
				Name:  fmt.Sprintf("%s of %s", valueName(v), titleSuit(name)),
				Type:  typ,
				Value: v,
				Count: 1,
			})
		}
	}

	suit("clubs", "monster", monsterMin, monsterMax)
	suit("spades", "monster", monsterMin, monsterMax)
	suit("diamonds", "weapon", weaponMin, weaponMax)
	suit("hearts", "health_potion", potionMin, potionMax)

	return &Pool{Version: "1.0", Cards: defs}
}

// titleSuit capitalizes a suit id for display names.
func titleSuit(s string) string {
	switch s {
	case "clubs":
		return "Clubs"
	case "spades":
		return "Spades"
	case "diamonds":
		return "Diamonds"
	case "hearts":
		return "Hearts"
	default:
		return s
	}
}
