package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/scoundrel/internal/dungeon"
	"github.com/cory-johannsen/scoundrel/internal/game/card"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// identitySource makes Shuffle a no-op, so the deck keeps the pool's
// definition order and scenario tests control exactly what each room holds.
type identitySource struct{}

func (identitySource) Intn(n int) int { return n - 1 }

func mdef(id string, value int) dungeon.CardDefinition {
	return dungeon.CardDefinition{ID: id, Name: fmt.Sprintf("Monster %d", value), Type: "monster", Value: value, Count: 1}
}

func wdef(id string, value int) dungeon.CardDefinition {
	return dungeon.CardDefinition{ID: id, Name: fmt.Sprintf("Weapon %d", value), Type: "weapon", Value: value, Count: 1}
}

func pdef(id string, value int) dungeon.CardDefinition {
	return dungeon.CardDefinition{ID: id, Name: fmt.Sprintf("Potion %d", value), Type: "health_potion", Value: value, Count: 1}
}

// poolWithLead builds a pool whose deck starts with lead (under the identity
// shuffle) and is padded with value-2 monsters up to the minimum pool size.
func poolWithLead(lead ...dungeon.CardDefinition) *dungeon.Pool {
	defs := append([]dungeon.CardDefinition{}, lead...)
	for i := 0; len(defs) < dungeon.MinCards; i++ {
		defs = append(defs, mdef(fmt.Sprintf("filler-%d", i), 2))
	}
	return &dungeon.Pool{Version: "1.0", Cards: defs}
}

func newScenarioEngine(t *testing.T, pool *dungeon.Pool, opts ...engine.Option) *engine.Engine {
	t.Helper()
	opts = append(opts, engine.WithSource(identitySource{}))
	eng, err := engine.New(pool, opts...)
	require.NoError(t, err)
	_, err = eng.Start()
	require.NoError(t, err)
	return eng
}

func TestNew_RejectsInvalidPool(t *testing.T) {
	_, err := engine.New(nil)
	require.ErrorIs(t, err, engine.ErrInvalidDungeonConfig)

	_, err = engine.New(&dungeon.Pool{})
	require.ErrorIs(t, err, engine.ErrInvalidDungeonConfig)

	small := &dungeon.Pool{Cards: []dungeon.CardDefinition{mdef("only", 5)}}
	_, err = engine.New(small)
	require.ErrorIs(t, err, engine.ErrInvalidDungeonConfig)
}

func TestStart_OnlyOnce(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.Start()
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestFaceCard_BeforeDrawIsInvalid(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.FaceCard(0, engine.MethodAuto)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

// The spec's walk-through scenario: equip a weapon, kill under it, drink a
// potion at full health, carry the big monster forward.
func TestScenario_WeaponPotionCarry(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		mdef("m5", 5), wdef("w7", 7), pdef("p4", 4), mdef("m11", 11),
	))

	_, err := eng.DrawRoom()
	require.NoError(t, err)

	// Face Weapon 7: equipped, no kills.
	res, err := eng.FaceCard(1, engine.MethodAuto)
	require.NoError(t, err)
	require.NotNil(t, res.Faced)
	assert.True(t, res.Faced.IsWeapon())

	st := eng.Snapshot()
	require.NotNil(t, st.Player.Weapon)
	assert.Equal(t, 7, st.Player.Weapon.Card.Value)
	assert.Empty(t, st.Player.Weapon.Kills)

	// Face Monster 5 with the weapon: no damage, kill recorded.
	res, err = eng.FaceCard(0, engine.MethodWeapon)
	require.NoError(t, err)
	assert.Equal(t, 0, res.DamageTaken)

	st = eng.Snapshot()
	assert.Equal(t, []int{5}, st.Player.Weapon.Kills)
	assert.Equal(t, 5, st.Player.Weapon.LastKill)
	assert.Equal(t, 20, st.Player.Health)

	// Face Potion 4 at full health: no overheal.
	res, err = eng.FaceCard(2, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, 0, res.HealthGained)
	assert.True(t, res.RoomComplete)
	assert.Equal(t, 20, eng.Snapshot().Player.Health)

	// Monster 11 carries into the next room as its first card.
	_, err = eng.DrawRoom()
	require.NoError(t, err)
	st = eng.Snapshot()
	require.NotNil(t, st.Room)
	require.Len(t, st.Room.Cards, 4)
	assert.Equal(t, 11, st.Room.Cards[0].Card.Value)
	assert.True(t, st.Room.Cards[0].Card.IsMonster())
}

func TestScenario_WeaponRestrictionRejected(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		mdef("m5", 5), wdef("w7", 7), pdef("p4", 4), mdef("m11", 11),
	))
	_, err := eng.DrawRoom()
	require.NoError(t, err)
	for _, i := range []int{1, 0, 2} {
		_, err = eng.FaceCard(i, engine.MethodAuto)
		require.NoError(t, err)
	}
	_, err = eng.DrawRoom()
	require.NoError(t, err)

	// Weapon has last_kill=5; Monster 11 via weapon is illegal.
	before := eng.Snapshot()
	_, err = eng.FaceCard(0, engine.MethodWeapon)
	require.ErrorIs(t, err, engine.ErrInvalidAction)

	after := eng.Snapshot()
	assert.Equal(t, before.Player, after.Player, "rejected action must not change state")
	assert.Equal(t, before.DiscardCount, after.DiscardCount)

	// Auto degrades to barehanded when the weapon is restricted.
	res, err := eng.FaceCard(0, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, engine.MethodBarehanded, res.Method)
	assert.Equal(t, 11, res.DamageTaken)
	assert.Equal(t, 9, eng.Snapshot().Player.Health)
}

func TestFaceCard_WeaponMethodWithoutWeapon(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.FaceCard(0, engine.MethodWeapon)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestFaceCard_AlreadyFaced(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.FaceCard(0, engine.MethodAuto)
	require.NoError(t, err)
	_, err = eng.FaceCard(0, engine.MethodAuto)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestFaceCard_IndexOutOfRange(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.FaceCard(7, engine.MethodAuto)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
	_, err = eng.FaceCard(-1, engine.MethodAuto)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestAvoid_NoDoubleAvoid(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.AvoidRoom()
	require.NoError(t, err)

	_, err = eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.AvoidRoom()
	require.ErrorIs(t, err, engine.ErrInvalidAction)

	// Facing a card lifts the restriction for the room after this one.
	_, err = eng.FaceCard(0, engine.MethodAuto)
	require.NoError(t, err)
	for _, i := range []int{1, 2} {
		_, err = eng.FaceCard(i, engine.MethodAuto)
		require.NoError(t, err)
	}
	_, err = eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.AvoidRoom()
	require.NoError(t, err)
}

func TestAvoid_ReturnsCardsToBottomInOrder(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		mdef("a", 3), mdef("b", 4), mdef("c", 5), mdef("d", 6),
	))
	_, err := eng.DrawRoom()
	require.NoError(t, err)
	deckBefore := eng.Snapshot().DeckCount

	_, err = eng.AvoidRoom()
	require.NoError(t, err)
	assert.Equal(t, deckBefore+4, eng.Snapshot().DeckCount)
	assert.Nil(t, eng.Snapshot().Room)
}

func TestAvoid_AfterFacingIsInvalid(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead())
	_, err := eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.FaceCard(0, engine.MethodAuto)
	require.NoError(t, err)

	_, err = eng.AvoidRoom()
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

// All-potion dungeon: the deck empties with the player untouched.
func TestScenario_Victory(t *testing.T) {
	defs := make([]dungeon.CardDefinition, 0, dungeon.MinCards)
	for i := 0; i < dungeon.MinCards; i++ {
		defs = append(defs, pdef(fmt.Sprintf("p%d", i), 2))
	}
	eng := newScenarioEngine(t, &dungeon.Pool{Cards: defs})

	for !eng.GameOver() {
		_, err := eng.DrawRoom()
		require.NoError(t, err)
		if eng.GameOver() {
			break
		}
		st := eng.Snapshot()
		for _, rc := range st.Room.Unfaced() {
			if eng.Snapshot().Phase == engine.PhaseTurnComplete {
				break
			}
			_, err := eng.FaceCard(rc.Index, engine.MethodAuto)
			require.NoError(t, err)
		}
	}

	assert.True(t, eng.Victory())
	assert.Equal(t, 20, eng.Score(), "victory scores the final health")
	st := eng.Snapshot()
	assert.Equal(t, engine.ReasonVictory, st.Reason)
	assert.Equal(t, engine.PhaseGameOver, st.Phase)
}

func TestScenario_DeathScoresRemainingMonsters(t *testing.T) {
	// All monsters: one 14 up front, nineteen 2s behind it. 52 total damage.
	eng := newScenarioEngine(t, poolWithLead(mdef("m14", 14)),
		engine.WithRules(engine.Rules{MaxHealth: 10}))

	_, err := eng.DrawRoom()
	require.NoError(t, err)

	res, err := eng.FaceCard(0, engine.MethodBarehanded)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.False(t, res.Victory)

	// Remaining: 16 deck monsters (32) + 3 unfaced room monsters (6).
	assert.Equal(t, -38, eng.Score())
	assert.Equal(t, engine.ReasonDeath, eng.Snapshot().Reason)

	// No further actions are accepted after death.
	_, err = eng.FaceCard(1, engine.MethodAuto)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
	_, err = eng.DrawRoom()
	require.ErrorIs(t, err, engine.ErrInvalidAction)
	_, err = eng.Quit()
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestScenario_QuitScoresLikeDeath(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(mdef("m14", 14)))
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	res, err := eng.Quit()
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.False(t, res.Victory)

	// Every monster is still out there: 14 + 19*2 = 52.
	assert.Equal(t, -52, eng.Score())
	assert.Equal(t, engine.ReasonQuit, eng.Snapshot().Reason)
	assert.True(t, eng.Snapshot().Player.Health > 0, "quit loses regardless of health")
}

func TestScoring_Idempotent(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(mdef("m14", 14)),
		engine.WithRules(engine.Rules{MaxHealth: 10}))
	_, err := eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.FaceCard(0, engine.MethodBarehanded)
	require.NoError(t, err)

	score, victory := eng.Score(), eng.Victory()
	for i := 0; i < 3; i++ {
		_, _ = eng.DrawRoom()
		_, _ = eng.Quit()
		assert.Equal(t, score, eng.Score())
		assert.Equal(t, victory, eng.Victory())
	}
}

func TestPotionCap_SecondPotionHealsNothing(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		mdef("m6", 6), pdef("pa", 5), pdef("pb", 5), mdef("mx", 2),
	), engine.WithRules(engine.Rules{MaxHealth: 20, MaxPotionsPerTurn: 1}))

	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.FaceCard(0, engine.MethodBarehanded) // down to 14
	require.NoError(t, err)

	res, err := eng.FaceCard(1, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, 5, res.HealthGained)

	res, err = eng.FaceCard(2, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, 0, res.HealthGained, "capped potion is discarded without healing")
	assert.Equal(t, 19, eng.Snapshot().Player.Health)
}

func TestPotionNoCap_EveryPotionHeals(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		mdef("m6", 6), pdef("pa", 2), pdef("pb", 2), mdef("mx", 2),
	))

	_, err := eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.FaceCard(0, engine.MethodBarehanded) // 20 -> 14
	require.NoError(t, err)

	res, err := eng.FaceCard(1, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, 2, res.HealthGained)
	res, err = eng.FaceCard(2, engine.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, 2, res.HealthGained)
	assert.Equal(t, 18, eng.Snapshot().Player.Health)
}

func TestEquip_ReplacesWeaponAndResetsKills(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(
		wdef("w3", 3), mdef("m2", 2), wdef("w9", 9), mdef("mx", 4),
	))
	_, err := eng.DrawRoom()
	require.NoError(t, err)

	_, err = eng.FaceCard(0, engine.MethodAuto) // equip 3
	require.NoError(t, err)
	_, err = eng.FaceCard(1, engine.MethodWeapon) // kill 2
	require.NoError(t, err)
	require.Equal(t, []int{2}, eng.Snapshot().Player.Weapon.Kills)

	_, err = eng.FaceCard(2, engine.MethodAuto) // equip 9
	require.NoError(t, err)

	st := eng.Snapshot()
	assert.Equal(t, 9, st.Player.Weapon.Card.Value)
	assert.Empty(t, st.Player.Weapon.Kills, "new weapon starts with a fresh kill chain")
	assert.False(t, st.Player.Weapon.Used)
}

func TestSnapshot_IsolatedFromEngine(t *testing.T) {
	eng := newScenarioEngine(t, poolWithLead(wdef("w5", 5), mdef("m3", 3), mdef("m4", 4), mdef("m6", 6)))
	_, err := eng.DrawRoom()
	require.NoError(t, err)
	_, err = eng.FaceCard(0, engine.MethodAuto)
	require.NoError(t, err)
	_, err = eng.FaceCard(1, engine.MethodWeapon)
	require.NoError(t, err)

	st := eng.Snapshot()
	st.Player.Weapon.Kills[0] = 99
	st.Room.Cards[0].Card = card.Card{}

	fresh := eng.Snapshot()
	assert.Equal(t, []int{3}, fresh.Player.Weapon.Kills)
	assert.Equal(t, 5, fresh.Room.Cards[0].Card.Value)
}
