package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/scoundrel/internal/dungeon"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// liveCards counts every card the game can still account for: the deck,
// the unfaced room cards (carry included), and the discard pile.
func liveCards(st engine.State) int {
	n := st.DeckCount + st.DiscardCount
	if st.Room != nil {
		n += len(st.Room.Unfaced())
	}
	return n
}

// TestProperty_CardConservation drives random games on the classic pool and
// checks that no card is ever lost or duplicated, health stays in bounds,
// and terminal values freeze once set.
func TestProperty_CardConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		eng, err := engine.New(dungeon.DefaultPool(), engine.WithSeed(seed))
		require.NoError(rt, err)
		_, err = eng.Start()
		require.NoError(rt, err)

		total := eng.TotalCards()
		steps := rapid.IntRange(1, 200).Draw(rt, "steps")

		for i := 0; i < steps && !eng.GameOver(); i++ {
			st := eng.Snapshot()
			switch st.Phase {
			case engine.PhaseDrawRoom, engine.PhaseTurnComplete:
				_, err := eng.DrawRoom()
				require.NoError(rt, err)
			case engine.PhaseDecideAvoid, engine.PhaseFaceCards:
				if st.Phase == engine.PhaseDecideAvoid && st.CanAvoid && rapid.Bool().Draw(rt, "avoid") {
					_, err := eng.AvoidRoom()
					require.NoError(rt, err)
					break
				}
				unfaced := st.Room.Unfaced()
				require.NotEmpty(rt, unfaced)
				pick := unfaced[rapid.IntRange(0, len(unfaced)-1).Draw(rt, "pick")]
				_, err := eng.FaceCard(pick.Index, engine.MethodAuto)
				require.NoError(rt, err)
			}

			after := eng.Snapshot()
			require.Equal(rt, total, liveCards(after), "card conservation violated at step %d", i)
			require.GreaterOrEqual(rt, after.Player.Health, 0)
			require.LessOrEqual(rt, after.Player.Health, after.Player.MaxHealth)
		}

		if eng.GameOver() {
			score, victory := eng.Score(), eng.Victory()
			_, err := eng.DrawRoom()
			assert.ErrorIs(rt, err, engine.ErrInvalidAction)
			assert.Equal(rt, score, eng.Score())
			assert.Equal(rt, victory, eng.Victory())
			if victory {
				assert.GreaterOrEqual(rt, score, 0)
			} else {
				assert.LessOrEqual(rt, score, 0)
			}
		}
	})
}

// TestProperty_WeaponRestrictionMonotone: once a weapon's last kill is K,
// any weapon fight against a monster above K is rejected until re-equip.
func TestProperty_WeaponRestrictionMonotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		eng, err := engine.New(dungeon.DefaultPool(), engine.WithSeed(seed))
		require.NoError(rt, err)
		_, err = eng.Start()
		require.NoError(rt, err)

		steps := rapid.IntRange(1, 150).Draw(rt, "steps")
		for i := 0; i < steps && !eng.GameOver(); i++ {
			st := eng.Snapshot()
			switch st.Phase {
			case engine.PhaseDrawRoom, engine.PhaseTurnComplete:
				_, err := eng.DrawRoom()
				require.NoError(rt, err)
			default:
				unfaced := st.Room.Unfaced()
				pick := unfaced[rapid.IntRange(0, len(unfaced)-1).Draw(rt, "pick")]

				w := st.Player.Weapon
				if pick.Card.IsMonster() && w != nil && w.Used && pick.Card.Value > w.LastKill {
					_, err := eng.FaceCard(pick.Index, engine.MethodWeapon)
					require.ErrorIs(rt, err, engine.ErrInvalidAction,
						"monster %d must be rejected above last kill %d", pick.Card.Value, w.LastKill)
				}
				_, err := eng.FaceCard(pick.Index, engine.MethodAuto)
				require.NoError(rt, err)
			}
		}
	})
}

// TestProperty_SeededDeterminism: identical seeds and action scripts yield
// identical state trajectories.
func TestProperty_SeededDeterminism(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		script := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 120).Draw(rt, "script")

		run := func() []engine.State {
			eng, err := engine.New(dungeon.DefaultPool(), engine.WithSeed(seed))
			require.NoError(rt, err)
			_, err = eng.Start()
			require.NoError(rt, err)

			var trace []engine.State
			for _, move := range script {
				if eng.GameOver() {
					break
				}
				st := eng.Snapshot()
				switch st.Phase {
				case engine.PhaseDrawRoom, engine.PhaseTurnComplete:
					_, _ = eng.DrawRoom()
				default:
					if st.Phase == engine.PhaseDecideAvoid && st.CanAvoid && move == 3 {
						_, _ = eng.AvoidRoom()
						break
					}
					unfaced := st.Room.Unfaced()
					pick := unfaced[move%len(unfaced)]
					_, _ = eng.FaceCard(pick.Index, engine.MethodAuto)
				}
				snap := eng.Snapshot()
				snap.GameID = "" // the only field allowed to differ
				trace = append(trace, snap)
			}
			return trace
		}

		assert.Equal(rt, run(), run())
	})
}
