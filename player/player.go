package player

import (
	"context"

	"homeworlds/game"
)

// TurnContext tells a turn-source which turn it is being asked for.
type TurnContext struct {
	Player  game.PlayerID
	Turn    int    // 1-based, counted over both players
	Attempt int    // 1 on the first try of a turn
	Error   string // Why the previous attempt of this turn was rejected
}

// Retry reports whether this request follows a rejected attempt.
func (tc TurnContext) Retry() bool {
	return tc.Attempt > 1
}

// TurnSource proposes the actions of a turn. The state it receives is a copy
// it may keep or modify. A returned error counts as a rejected attempt.
type TurnSource interface {
	TakeTurn(ctx context.Context, state *game.GameState, tc TurnContext) ([]game.Action, error)
}

// Func adapts an ordinary function to a TurnSource.
type Func func(ctx context.Context, state *game.GameState, tc TurnContext) ([]game.Action, error)

func (f Func) TakeTurn(ctx context.Context, state *game.GameState, tc TurnContext) ([]game.Action, error) {
	return f(ctx, state, tc)
}

// Pass returns a source that never does anything.
func Pass() TurnSource {
	return Func(func(context.Context, *game.GameState, TurnContext) ([]game.Action, error) {
		return nil, nil
	})
}
