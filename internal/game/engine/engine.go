// Package engine implements the Scoundrel rules engine: the turn state
// machine, card resolution, combat, and win/loss scoring.
//
// An Engine owns the deck, room, player, and discard pile for exactly one
// game; all mutation goes through its operations. The engine is
// single-threaded by design: one driver (interactive loop or agent) issues
// one action at a time and reads the resulting snapshot.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/dungeon"
	"github.com/cory-johannsen/scoundrel/internal/game/card"
	"github.com/cory-johannsen/scoundrel/internal/game/deck"
	"github.com/cory-johannsen/scoundrel/internal/game/event"
	"github.com/cory-johannsen/scoundrel/internal/game/player"
	"github.com/cory-johannsen/scoundrel/internal/game/room"
	"github.com/cory-johannsen/scoundrel/internal/game/rng"
)

// Rules holds the tunable rule knobs of a game.
type Rules struct {
	// MaxHealth is the player's health cap.
	MaxHealth int
	// MaxPotionsPerTurn caps how many potions may heal per room-turn;
	// potions faced past the cap are discarded without healing.
	// 0 means no cap: every potion heals.
	MaxPotionsPerTurn int
}

// DefaultRules returns the default rule set: 20 max health, no potion cap.
func DefaultRules() Rules {
	return Rules{MaxHealth: player.DefaultMaxHealth}
}

type options struct {
	rules     Rules
	src       rng.Source
	logger    *zap.Logger
	sink      event.Sink
	snapshots bool
}

// Option configures an Engine at construction.
type Option func(*options)

// WithRules overrides the default rule set.
func WithRules(r Rules) Option {
	return func(o *options) { o.rules = r }
}

// WithSeed makes the shuffle deterministic for the given seed. Two games
// with the same seed and pool draw identical room sequences.
func WithSeed(seed int64) Option {
	return func(o *options) { o.src = rng.NewSeededSource(seed) }
}

// WithSource supplies a custom randomness source; overrides WithSeed.
func WithSource(src rng.Source) Option {
	return func(o *options) { o.src = src }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSink attaches an event sink receiving one event per action.
func WithSink(sink event.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithStateSnapshots makes every emitted event carry a full state snapshot,
// enabling replay from the event log.
func WithStateSnapshots() Option {
	return func(o *options) { o.snapshots = true }
}

// Engine runs one game of Scoundrel.
type Engine struct {
	id     string
	rules  Rules
	deck   *deck.Deck
	player *player.Player
	// room is nil before the first draw and after an avoid.
	room    *room.Room
	discard []card.Card
	phase   Phase
	turn    int
	// avoidedLast is true while the most recent room action was an avoid;
	// it blocks avoiding the next room and clears on the first face.
	avoidedLast bool
	gameOver    bool
	victory     bool
	score       int
	reason      Reason
	total       int

	logger    *zap.Logger
	sink      event.Sink
	snapshots bool
}

// New builds an engine for one game from a dungeon pool. The deck is built
// and shuffled once, here; no randomness enters the game afterwards.
//
// Precondition: pool must be a valid dungeon pool with at least
// dungeon.MinCards cards.
// Postcondition: Returns a ready engine in PhaseSetup, or an error wrapping
// ErrInvalidDungeonConfig with no game created.
func New(pool *dungeon.Pool, opts ...Option) (*Engine, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: pool is nil", ErrInvalidDungeonConfig)
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDungeonConfig, err)
	}

	o := options{
		rules:  DefaultRules(),
		src:    rng.NewCryptoSource(),
		logger: zap.NewNop(),
		sink:   event.NopSink{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rules.MaxHealth <= 0 {
		return nil, fmt.Errorf("%w: max health must be > 0, got %d", ErrInvalidDungeonConfig, o.rules.MaxHealth)
	}

	cards := pool.Build()
	d := deck.New(cards)
	d.Shuffle(o.src)

	return &Engine{
		id:        uuid.New().String(),
		rules:     o.rules,
		deck:      d,
		player:    player.New(o.rules.MaxHealth),
		phase:     PhaseSetup,
		total:     len(cards),
		logger:    o.logger,
		sink:      o.sink,
		snapshots: o.snapshots,
	}, nil
}

// ID returns the game's unique identifier.
func (e *Engine) ID() string { return e.id }

// TotalCards returns the number of cards the deck was built with.
func (e *Engine) TotalCards() int { return e.total }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.gameOver }

// Victory reports the game outcome; meaningful only after GameOver.
func (e *Engine) Victory() bool { return e.victory }

// Score returns the final score; meaningful only after GameOver. It is
// computed exactly once, at the terminal transition, and never changes.
func (e *Engine) Score() int { return e.score }

// Start moves the game from setup to the first draw.
//
// Precondition: the game must be in PhaseSetup.
func (e *Engine) Start() (Result, error) {
	if e.phase != PhaseSetup {
		return Result{}, fmt.Errorf("%w: game already started", ErrInvalidAction)
	}
	e.phase = PhaseDrawRoom
	e.emit(event.GameStarted, map[string]any{
		"total_cards": e.total,
		"max_health":  e.player.MaxHealth(),
	})
	return Result{Message: "Game started. Draw your first room."}, nil
}

// DrawRoom draws the next room: the carried card from a completed room plus
// new cards from the deck, refilling to four. A draw the deck cannot
// satisfy is the deck-exhausted victory, never an error to the caller.
//
// Precondition: phase must be PhaseDrawRoom or PhaseTurnComplete.
func (e *Engine) DrawRoom() (Result, error) {
	if e.gameOver {
		return Result{}, fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	if e.phase != PhaseDrawRoom && e.phase != PhaseTurnComplete {
		return Result{}, fmt.Errorf("%w: cannot draw a room in phase %s", ErrInvalidAction, e.phase)
	}

	r := room.New()
	carried := false
	if e.room != nil && e.room.IsComplete() {
		if c, ok := e.room.Carry(); ok {
			_ = r.Add(c)
			carried = true
		}
	}

	drawn, err := e.deck.Draw(room.Size - r.Len())
	for _, c := range drawn {
		_ = r.Add(c)
	}
	e.room = r

	if errors.Is(err, deck.ErrInsufficientCards) {
		// Deck exhausted: the dungeon is cleared.
		res := e.finish(true, ReasonVictory)
		res.Message = "Dungeon complete! You survived."
		return res, nil
	}

	e.turn++
	e.player.ResetTurn()
	e.phase = PhaseDecideAvoid

	names := make([]string, 0, room.Size)
	values := make([]int, 0, room.Size)
	for _, c := range r.Cards() {
		names = append(names, c.Name)
		values = append(values, c.Value)
	}
	e.emit(event.RoomDrawn, map[string]any{
		"cards":     names,
		"values":    values,
		"carried":   carried,
		"can_avoid": e.canAvoid(),
		"health":    e.player.Health(),
	})

	return Result{Message: fmt.Sprintf("Room %d drawn.", e.turn)}, nil
}

// AvoidRoom sends all four room cards to the bottom of the deck in their
// original order. Only available before any card of the room is faced, and
// never twice in a row.
func (e *Engine) AvoidRoom() (Result, error) {
	if e.gameOver {
		return Result{}, fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	if e.phase != PhaseDecideAvoid {
		return Result{}, fmt.Errorf("%w: cannot avoid in phase %s", ErrInvalidAction, e.phase)
	}
	if !e.canAvoid() {
		return Result{}, fmt.Errorf("%w: cannot avoid two rooms in a row", ErrInvalidAction)
	}
	if e.room == nil || !e.room.IsFull() {
		return Result{}, fmt.Errorf("%w: no complete room to avoid", ErrInvalidAction)
	}

	e.deck.AddToBottom(e.room.Cards())
	e.avoidedLast = true
	e.room = nil
	e.phase = PhaseDrawRoom

	e.emit(event.RoomAvoided, map[string]any{
		"health": e.player.Health(),
	})

	return Result{Message: "Room avoided. Cards placed at the bottom of the dungeon."}, nil
}

// FaceCard resolves the room card at index with the given method. Weapons
// are equipped, potions heal, monsters fight; the card moves to the discard
// pile. Health reaching zero ends the game immediately.
//
// Precondition: index addresses an unfaced room card; m must be a valid
// Method and legal for the card (weapon fights require an equipped,
// unrestricted weapon).
// Postcondition: On error the game state is unchanged.
func (e *Engine) FaceCard(index int, m Method) (Result, error) {
	if e.gameOver {
		return Result{}, fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	if e.phase != PhaseDecideAvoid && e.phase != PhaseFaceCards {
		return Result{}, fmt.Errorf("%w: cannot face a card in phase %s", ErrInvalidAction, e.phase)
	}
	if !m.valid() {
		return Result{}, fmt.Errorf("%w: unknown method %d", ErrInvalidAction, int(m))
	}
	if e.room == nil {
		return Result{}, fmt.Errorf("%w: no room available", ErrInvalidAction)
	}

	c, err := e.room.Peek(index)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}

	// Validate and resolve the method before mutating anything.
	resolved := MethodAuto
	if c.IsMonster() {
		resolved, err = e.resolveMethod(c, m)
		if err != nil {
			return Result{}, err
		}
	}

	if _, err := e.room.Face(index); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}

	// Facing a card commits to this room; the avoid window closes and the
	// no-double-avoid restriction lifts for the next room.
	if e.phase == PhaseDecideAvoid {
		e.phase = PhaseFaceCards
		e.avoidedLast = false
	}

	res := Result{Faced: &c, Method: resolved}
	switch c.Kind {
	case card.Weapon:
		e.resolveWeapon(c, &res)
	case card.Potion:
		e.resolvePotion(c, &res)
	case card.Monster:
		e.resolveMonster(c, resolved, &res)
	}
	e.discard = append(e.discard, c)

	e.emit(event.CardFaced, map[string]any{
		"card":   c.Name,
		"kind":   c.Kind.String(),
		"value":  c.Value,
		"method": resolved.String(),
		"damage": res.DamageTaken,
		"healed": res.HealthGained,
		"health": e.player.Health(),
	})

	// Death is checked immediately after resolution, before any further
	// action is accepted.
	if !e.player.Alive() {
		fin := e.finish(false, ReasonDeath)
		res.GameOver, res.Victory = fin.GameOver, fin.Victory
		res.Message += " You died."
		return res, nil
	}

	if e.room.IsComplete() {
		e.phase = PhaseTurnComplete
		res.RoomComplete = true
	}
	return res, nil
}

// Quit ends the game as a loss, scored exactly like a death.
func (e *Engine) Quit() (Result, error) {
	if e.gameOver {
		return Result{}, fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	res := e.finish(false, ReasonQuit)
	res.Message = "You fled the dungeon."
	return res, nil
}

// resolveMethod validates m against monster c and returns the concrete
// fight method.
func (e *Engine) resolveMethod(c card.Card, m Method) (Method, error) {
	w := e.player.Weapon()
	switch m {
	case MethodAuto:
		if w != nil && w.CanKill(c) {
			return MethodWeapon, nil
		}
		return MethodBarehanded, nil
	case MethodWeapon:
		if w == nil {
			return 0, fmt.Errorf("%w: no weapon equipped", ErrInvalidAction)
		}
		if !w.CanKill(c) {
			last, _ := w.LastKill()
			return 0, fmt.Errorf("%w: weapon %s cannot kill %s (last kill: %d)",
				ErrInvalidAction, w.Card().Name, c.Name, last)
		}
		return MethodWeapon, nil
	case MethodBarehanded:
		return MethodBarehanded, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %d", ErrInvalidAction, int(m))
	}
}

func (e *Engine) resolveWeapon(c card.Card, res *Result) {
	w, err := player.NewWeapon(c)
	if err != nil {
		// Unreachable: c.Kind is card.Weapon here.
		panic("engine: " + err.Error())
	}
	old := e.player.Equip(w)
	if old != nil {
		res.Message = fmt.Sprintf("Equipped %s, replacing %s.", c.Name, old.Card().Name)
	} else {
		res.Message = fmt.Sprintf("Equipped %s.", c.Name)
	}
}

func (e *Engine) resolvePotion(c card.Card, res *Result) {
	limit := e.rules.MaxPotionsPerTurn
	if limit > 0 && e.player.PotionsUsed() >= limit {
		res.Message = fmt.Sprintf("Discarded %s (potion limit reached this turn).", c.Name)
		return
	}
	res.HealthGained = e.player.Heal(c.Value)
	e.player.RecordPotion()
	res.Message = fmt.Sprintf("Drank %s (+%d HP).", c.Name, res.HealthGained)
}

func (e *Engine) resolveMonster(c card.Card, m Method, res *Result) {
	if m == MethodWeapon {
		dmg, err := e.player.Weapon().Attack(c)
		if err != nil {
			// Unreachable: resolveMethod already validated the kill chain.
			panic("engine: " + err.Error())
		}
		res.DamageTaken = dmg
		if dmg == 0 {
			res.Message = fmt.Sprintf("Slew %s with %s unharmed.", c.Name, e.player.Weapon().Card().Name)
		} else {
			res.Message = fmt.Sprintf("Fought %s with %s (-%d HP).", c.Name, e.player.Weapon().Card().Name, dmg)
		}
	} else {
		res.DamageTaken = c.Value
		res.Message = fmt.Sprintf("Fought %s barehanded (-%d HP).", c.Name, c.Value)
	}
	e.player.TakeDamage(res.DamageTaken)
}

// finish enters the terminal state and computes the final score exactly
// once: victories score the remaining health, losses score the negated sum
// of the monster values still in the deck and the unfaced room.
func (e *Engine) finish(victory bool, reason Reason) Result {
	e.gameOver = true
	e.victory = victory
	e.reason = reason
	e.phase = PhaseGameOver

	if victory {
		e.score = e.player.Health()
	} else {
		e.score = -e.remainingMonsterDamage()
	}

	e.emit(event.GameOver, map[string]any{
		"victory": victory,
		"score":   e.score,
		"reason":  string(reason),
		"health":  e.player.Health(),
	})
	e.logger.Info("game over",
		zap.String("game_id", e.id),
		zap.Bool("victory", victory),
		zap.Int("score", e.score),
		zap.String("reason", string(reason)),
	)

	return Result{
		Message:  fmt.Sprintf("Game over: %s. Score: %d.", reason, e.score),
		GameOver: true,
		Victory:  victory,
	}
}

// remainingMonsterDamage sums the values of every monster still threatening
// the player: the deck plus the unfaced room cards, carried card included.
func (e *Engine) remainingMonsterDamage() int {
	total := 0
	for _, c := range e.deck.Cards() {
		if c.IsMonster() {
			total += c.Value
		}
	}
	if e.room != nil {
		for _, c := range e.room.Unfaced() {
			if c.IsMonster() {
				total += c.Value
			}
		}
	}
	return total
}

// canAvoid reports whether the current room may be avoided.
func (e *Engine) canAvoid() bool { return !e.avoidedLast }

// emit records an event on the sink; sink failures are logged, never
// propagated to the action that produced them.
func (e *Engine) emit(kind event.Kind, data map[string]any) {
	ev := event.New(e.id, kind, e.turn, data)
	if e.snapshots {
		ev = ev.WithState(e.Snapshot())
	}
	if err := e.sink.Record(ev); err != nil {
		e.logger.Warn("recording event", zap.String("kind", string(kind)), zap.Error(err))
	}
}
