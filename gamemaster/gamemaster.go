package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeworlds/config"
	"homeworlds/engine"
	"homeworlds/game"
	"homeworlds/history"
	"homeworlds/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(gm *GameMaster)

// WithFirstPlayer skips the random draw for the opening player.
func WithFirstPlayer(p game.PlayerID) Option {
	return func(gm *GameMaster) {
		gm.first = p
	}
}

// WithHistory sets the writer the history is dumped to at the end of Run,
// replacing the one configured by HistoryFile.
func WithHistory(w *history.Writer) Option {
	return func(gm *GameMaster) {
		gm.writer = w
	}
}

// Outcome summarizes a finished game.
type Outcome struct {
	FirstPlayer game.PlayerID
	Losers      []game.PlayerID // Empty when the turn limit was hit
	Turns       int
	State       *game.GameState
}

// GameMaster runs a game between turn-sources: it asks the current player
// for a turn, retries rejected turns, detects losers and records history.
// It is the only owner of the live state; sources see copies.
type GameMaster struct {
	cfg     config.Config
	sources map[game.PlayerID]player.TurnSource
	interp  *engine.Interpreter
	writer  *history.Writer
	first   game.PlayerID

	state *game.GameState
	turns int
	start time.Time
}

// New seats one player per source, with ids 1, 2, ... in order.
func New(cfg config.Config, sources []player.TurnSource, options ...Option) (*GameMaster, error) {
	if len(sources) < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", len(sources))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	players := make([]game.PlayerID, len(sources))
	seats := make(map[game.PlayerID]player.TurnSource, len(sources))
	for i, src := range sources {
		players[i] = game.PlayerID(i + 1)
		seats[players[i]] = src
	}

	var interpOptions []engine.Option
	if cfg.AtomicTurns {
		interpOptions = append(interpOptions, engine.WithAtomicTurns())
	}

	gm := &GameMaster{
		cfg:     cfg,
		sources: seats,
		interp:  engine.New(interpOptions...),
		state:   game.NewGameState(players...),
	}
	for _, option := range options {
		option(gm)
	}

	if gm.writer == nil && cfg.HistoryEnabled() {
		w, err := history.NewWriter(cfg.HistoryFile)
		if err != nil {
			return nil, err
		}
		gm.writer = w
	}

	if gm.first == game.Neutral {
		gm.first = drawFirstPlayer(players, cfg.Seed)
	} else if _, ok := seats[gm.first]; !ok {
		return nil, fmt.Errorf("first player %d is not seated", gm.first)
	}
	gm.state.CurrentPlayer = gm.first

	return gm, nil
}

func drawFirstPlayer(players []game.PlayerID, seed uint64) game.PlayerID {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	return players[rng.Intn(len(players))]
}

// State returns a copy of the live state.
func (gm *GameMaster) State() *game.GameState {
	return gm.state.Copy()
}

func (gm *GameMaster) Phase() engine.Phase {
	return gm.interp.Phase()
}

// Run plays turns until a player is eliminated, the turn limit is hit, a
// source fails for good or ctx is done. The history is written in every case.
func (gm *GameMaster) Run(ctx context.Context) (Outcome, error) {
	gm.start = time.Now()
	log.Info().
		Int("players", len(gm.state.Players)).
		Msgf("player %d is starting", gm.first)

	var runErr error
	for {
		done, err := gm.Step(ctx)
		if err != nil {
			runErr = err
			break
		}
		if done {
			break
		}
	}

	outcome := Outcome{
		FirstPlayer: gm.first,
		Losers:      gm.interp.Losers(),
		Turns:       gm.turns,
		State:       gm.state.Copy(),
	}

	if err := gm.writeHistory(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return outcome, runErr
}

// Step plays one turn of the current player. It reports whether the game is
// over.
func (gm *GameMaster) Step(ctx context.Context) (bool, error) {
	if gm.interp.Phase() == engine.PlayerEliminated {
		return true, nil
	}
	if gm.cfg.MaxTurns > 0 && gm.turns >= gm.cfg.MaxTurns {
		return true, nil
	}

	current := gm.state.CurrentPlayer
	record, err := gm.playTurn(ctx, current)
	if err != nil {
		gm.state.History = append(gm.state.History, game.TurnRecord{End: true})
		return true, err
	}
	gm.state.History = append(gm.state.History, record)
	gm.turns++

	// Setup turns are not checked for losers.
	if gm.turns > len(gm.state.Players) {
		if losers := gm.interp.Eliminated(gm.state); len(losers) > 0 {
			gm.state.History = append(gm.state.History, game.TurnRecord{End: true, Eliminated: losers})
			log.Info().
				Int("turns", gm.turns).
				Ints("losers", playerInts(losers)).
				Msg("game over")
			return true, nil
		}
	}

	if gm.cfg.MaxTurns > 0 && gm.turns >= gm.cfg.MaxTurns {
		gm.state.History = append(gm.state.History, game.TurnRecord{End: true})
		log.Info().Int("turns", gm.turns).Msg("turn limit reached")
		return true, nil
	}

	gm.state.CurrentPlayer = gm.state.NextPlayer()
	return false, nil
}

// playTurn asks p for actions until a turn is accepted or p runs out of
// attempts, in which case the turn is forfeited.
func (gm *GameMaster) playTurn(ctx context.Context, p game.PlayerID) (game.TurnRecord, error) {
	src := gm.sources[p]
	tc := player.TurnContext{Player: p, Turn: gm.turns + 1}

	for attempt := 1; gm.cfg.MaxRetries == 0 || attempt <= gm.cfg.MaxRetries; attempt++ {
		tc.Attempt = attempt

		actions, err := gm.ask(ctx, src, tc)
		if err != nil {
			if ctx.Err() != nil {
				return game.TurnRecord{}, fmt.Errorf("turn %d: %w", tc.Turn, ctx.Err())
			}
			if errors.Is(err, player.ErrScriptExhausted) {
				return game.TurnRecord{}, fmt.Errorf("player %d: %w", p, err)
			}
			tc.Error = err.Error()
			log.Warn().Int("player", int(p)).Int("attempt", attempt).Err(err).Msg("turn-source failed")
			continue
		}

		res := gm.interp.Interpret(gm.state, actions)
		gm.state = res.State
		if res.Accepted {
			log.Debug().
				Int("player", int(p)).
				Int("turn", tc.Turn).
				Int("actions", len(actions)).
				Msg("turn accepted")
			return game.TurnRecord{Player: p, Actions: actions}, nil
		}

		tc.Error = res.Reason
		log.Warn().
			Int("player", int(p)).
			Int("attempt", attempt).
			Str("reason", res.Reason).
			Msg("turn rejected")
	}

	log.Warn().Int("player", int(p)).Int("turn", tc.Turn).Msg("out of attempts, turn forfeited")
	return game.TurnRecord{Player: p, Forfeit: true}, nil
}

func (gm *GameMaster) ask(ctx context.Context, src player.TurnSource, tc player.TurnContext) ([]game.Action, error) {
	if gm.cfg.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gm.cfg.TurnTimeout)
		defer cancel()
	}
	return src.TakeTurn(ctx, gm.state.Copy(), tc)
}

func (gm *GameMaster) writeHistory() error {
	if gm.writer == nil {
		return nil
	}

	header := history.Header{
		Players:     playerInts(gm.state.Players),
		FirstPlayer: int(gm.first),
		StartTime:   gm.start.UTC(),
		EndTime:     time.Now().UTC(),
		Turns:       gm.turns,
	}
	if err := gm.writer.Write(header, gm.state.History); err != nil {
		log.Error().Err(err).Str("path", gm.writer.Path()).Msg("failed to write history")
		return fmt.Errorf("write history: %w", err)
	}
	log.Info().
		Str("game", gm.writer.GameID().String()).
		Str("path", gm.writer.Path()).
		Msg("history written")
	return nil
}

func playerInts(players []game.PlayerID) []int {
	ints := make([]int, len(players))
	for i, p := range players {
		ints[i] = int(p)
	}
	return ints
}
