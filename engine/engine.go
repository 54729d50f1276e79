package engine

import (
	"homeworlds/game"

	"github.com/rs/zerolog/log"
)

// Phase is the stage of the turn the interpreter is in.
type Phase int

const (
	AwaitingAction Phase = iota
	Applying
	TurnComplete
	PlayerEliminated
)

var phaseNames = map[Phase]string{
	AwaitingAction:   "awaiting action",
	Applying:         "applying",
	TurnComplete:     "turn complete",
	PlayerEliminated: "player eliminated",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown phase"
}

type Option func(in *Interpreter)

// WithAtomicTurns makes a rejected turn leave no trace: the result carries
// the input state instead of the state with the earlier actions applied.
func WithAtomicTurns() Option {
	return func(in *Interpreter) {
		in.atomic = true
	}
}

// Interpreter runs the action lists of turns against the validator and the
// executor and detects eliminated players between turns.
type Interpreter struct {
	phase  Phase
	atomic bool
	losers []game.PlayerID
}

func New(options ...Option) *Interpreter {
	in := &Interpreter{phase: AwaitingAction}
	for _, option := range options {
		option(in)
	}
	return in
}

func (in *Interpreter) Phase() Phase {
	return in.phase
}

// Losers returns the players found eliminated by the last call to Eliminated.
func (in *Interpreter) Losers() []game.PlayerID {
	return in.losers
}

// Result is the outcome of interpreting one turn.
type Result struct {
	Accepted bool
	Reason   string          // Why the turn was rejected
	State    *game.GameState // State after the turn
	Applied  int             // Actions reflected in State
}

// Interpret applies actions in order on behalf of the current player and
// stops at the first one the validator rejects. The input state is never
// modified.
func (in *Interpreter) Interpret(state *game.GameState, actions []game.Action) Result {
	if in.phase == PlayerEliminated {
		return Result{Reason: "game is over", State: state}
	}

	in.phase = Applying
	current := state
	for i, a := range actions {
		if err := current.Validate(a); err != nil {
			in.phase = AwaitingAction
			log.Debug().
				Int("player", int(state.CurrentPlayer)).
				Int("index", i).
				Err(err).
				Msg("action rejected")

			if in.atomic {
				return Result{Reason: err.Error(), State: state}
			}
			return Result{Reason: err.Error(), State: current, Applied: i}
		}
		current = current.Apply(a)
		log.Debug().
			Int("player", int(state.CurrentPlayer)).
			Stringer("action", a).
			Msg("action applied")
	}

	in.phase = TurnComplete
	return Result{Accepted: true, State: current, Applied: len(actions)}
}

// Eliminated runs loss detection over state. When a player is out the
// interpreter stops accepting turns.
func (in *Interpreter) Eliminated(state *game.GameState) []game.PlayerID {
	in.losers = game.Losers(state)
	if len(in.losers) > 0 {
		in.phase = PlayerEliminated
	}
	return in.losers
}
