// Package runner drives a game engine from either an automated agent or
// interactive player input.
package runner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/agent"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
	"github.com/cory-johannsen/scoundrel/internal/ui"
)

// Runner plays one game to completion.
type Runner struct {
	eng      *engine.Engine
	renderer *ui.Renderer
	logger   *zap.Logger
}

// New creates a Runner for the given engine.
//
// Precondition: eng and renderer must be non-nil.
func New(eng *engine.Engine, renderer *ui.Renderer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{eng: eng, renderer: renderer, logger: logger}
}

// RunAgent plays the whole game with the given agent and returns the final
// state. Invalid agent decisions are logged and replaced with a safe default
// so a misbehaving agent cannot stall the game.
//
// Postcondition: The returned state is terminal.
func (r *Runner) RunAgent(a agent.Agent) (engine.State, error) {
	if _, err := r.eng.Start(); err != nil {
		return engine.State{}, err
	}

	for !r.eng.GameOver() {
		st := r.eng.Snapshot()
		switch st.Phase {
		case engine.PhaseDrawRoom, engine.PhaseTurnComplete:
			if _, err := r.eng.DrawRoom(); err != nil {
				return engine.State{}, fmt.Errorf("runner: drawing room: %w", err)
			}

		case engine.PhaseDecideAvoid:
			if st.CanAvoid && a.DecideAvoidRoom(st) {
				if _, err := r.eng.AvoidRoom(); err != nil {
					return engine.State{}, fmt.Errorf("runner: avoiding room: %w", err)
				}
				continue
			}
			r.faceAgentCard(a, st)

		case engine.PhaseFaceCards:
			r.faceAgentCard(a, st)

		default:
			return engine.State{}, fmt.Errorf("runner: unexpected phase %s", st.Phase)
		}
	}

	final := r.eng.Snapshot()
	r.logger.Info("game finished",
		zap.String("game_id", final.GameID),
		zap.Bool("victory", final.Victory),
		zap.Int("score", final.Score),
		zap.Int("turns", final.Turn),
	)
	return final, nil
}

// faceAgentCard asks the agent for a card and faces it. On an invalid
// decision the first available card is faced with method auto.
func (r *Runner) faceAgentCard(a agent.Agent, st engine.State) {
	available := st.Room.Unfaced()
	index, method := a.ChooseCard(st, available)
	if _, err := r.eng.FaceCard(index, method); err != nil {
		r.logger.Warn("agent chose an invalid action, facing first available card",
			zap.Int("index", index),
			zap.Stringer("method", method),
			zap.Error(err),
		)
		// Auto on any unfaced card is always legal.
		_, _ = r.eng.FaceCard(available[0].Index, engine.MethodAuto)
	}
}

// RunInteractive plays the whole game reading commands from input and
// rendering to the renderer.
//
// Postcondition: The returned state is terminal unless input ended early.
func (r *Runner) RunInteractive(input *ui.Input) (engine.State, error) {
	if _, err := r.eng.Start(); err != nil {
		return engine.State{}, err
	}

	for !r.eng.GameOver() {
		st := r.eng.Snapshot()
		switch st.Phase {
		case engine.PhaseDrawRoom, engine.PhaseTurnComplete:
			res, err := r.eng.DrawRoom()
			if err != nil {
				return engine.State{}, fmt.Errorf("runner: drawing room: %w", err)
			}
			if res.GameOver {
				break
			}
			r.renderer.State(r.eng.Snapshot())

		case engine.PhaseDecideAvoid, engine.PhaseFaceCards:
			cmd, err := input.Next()
			if err != nil {
				// Input ended mid-game; resign the run.
				if _, qerr := r.eng.Quit(); qerr != nil {
					return engine.State{}, qerr
				}
				break
			}
			r.apply(cmd)

		default:
			return engine.State{}, fmt.Errorf("runner: unexpected phase %s", st.Phase)
		}
	}

	final := r.eng.Snapshot()
	r.renderer.GameOver(final)
	return final, nil
}

func (r *Runner) apply(cmd ui.Command) {
	switch cmd.Kind {
	case ui.CommandHelp:
		r.renderer.Help()
	case ui.CommandQuit:
		if res, err := r.eng.Quit(); err != nil {
			r.renderer.Error(err)
		} else {
			r.renderer.Result(res)
		}
	case ui.CommandAvoid:
		if res, err := r.eng.AvoidRoom(); err != nil {
			r.renderer.Error(err)
		} else {
			r.renderer.Result(res)
			r.renderer.State(r.eng.Snapshot())
		}
	case ui.CommandFace:
		res, err := r.eng.FaceCard(cmd.Index, cmd.Method)
		if err != nil {
			r.renderer.Error(err)
			return
		}
		r.renderer.Result(res)
		if !res.GameOver && !res.RoomComplete {
			r.renderer.State(r.eng.Snapshot())
		}
	}
}
