package engine

// Phase marks where a game is in its turn cycle.
type Phase int

const (
	// PhaseSetup is the state before Start is called.
	PhaseSetup Phase = iota
	// PhaseDrawRoom awaits the next room draw.
	PhaseDrawRoom
	// PhaseDecideAvoid is a freshly drawn room before any card is faced;
	// the avoid decision is only available here.
	PhaseDecideAvoid
	// PhaseFaceCards is a room with at least one card faced.
	PhaseFaceCards
	// PhaseTurnComplete is a room with three cards faced, awaiting the next draw.
	PhaseTurnComplete
	// PhaseGameOver is terminal.
	PhaseGameOver
)

// String returns the phase's wire label.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseDrawRoom:
		return "draw_room"
	case PhaseDecideAvoid:
		return "decide_avoid"
	case PhaseFaceCards:
		return "face_cards"
	case PhaseTurnComplete:
		return "turn_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the game.
func (p Phase) Terminal() bool { return p == PhaseGameOver }

// Reason explains why a game ended.
type Reason string

const (
	ReasonVictory Reason = "victory"
	ReasonDeath   Reason = "death"
	ReasonQuit    Reason = "quit"
)
