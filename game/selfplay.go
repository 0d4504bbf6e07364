package game

import (
	"errors"
	"fmt"
	"log/slog"

	"chess-kernel/board"
	"chess-kernel/engine"
	"chess-kernel/movegen"
)

// ErrDisagreement reports that the cached and uncached searches chose
// different moves for the same position.
var ErrDisagreement = errors.New("game: cached and uncached search disagree")

// Outcome summarizes a finished self-play game.
type Outcome struct {
	Status Status
	Winner board.Color
	Plies  int
	Moves  []board.Move
	Final  *board.Board
	// Score is the last search score, from white's point of view.
	Score int64
}

// Observer is called after every move with the ply number (from 1), the move
// and the position after it.
type Observer func(ply int, m board.Move, res engine.Result, b *board.Board)

type selfPlayOptions struct {
	depth     int
	maxPlies  int
	ordering  movegen.Ordering
	cacheMB   int
	agreement bool
	zobrist   *board.Zobrist
	tables    *movegen.Tables
	recorder  *Recorder
	observer  Observer
	logger    *slog.Logger
}

var defaultSelfPlayOptions = selfPlayOptions{
	depth:    4,
	maxPlies: 200,
	ordering: movegen.MostValuableVictim,
}

// Option configures SelfPlay.
type Option func(*selfPlayOptions)

// WithDepth sets the search depth for both sides.
func WithDepth(depth int) Option {
	return func(o *selfPlayOptions) { o.depth = depth }
}

// WithMaxPlies ends the game with PlyLimit after n moves.
func WithMaxPlies(n int) Option {
	return func(o *selfPlayOptions) { o.maxPlies = n }
}

// WithOrdering sets the move ordering of the searches.
func WithOrdering(order movegen.Ordering) Option {
	return func(o *selfPlayOptions) { o.ordering = order }
}

// WithCache memoizes positions in the playing search, sizeMB megabytes.
func WithCache(sizeMB int) Option {
	return func(o *selfPlayOptions) { o.cacheMB = sizeMB }
}

// WithAgreementCheck searches every position twice, with and without the
// cache, and stops with ErrDisagreement when the moves differ.
func WithAgreementCheck(on bool) Option {
	return func(o *selfPlayOptions) { o.agreement = on }
}

// WithZobrist selects the hash keys of the cached search.
func WithZobrist(z *board.Zobrist) Option {
	return func(o *selfPlayOptions) { o.zobrist = z }
}

// WithTables shares attack tables between searches.
func WithTables(t *movegen.Tables) Option {
	return func(o *selfPlayOptions) { o.tables = t }
}

// WithRecorder records every move for PGN export.
func WithRecorder(r *Recorder) Option {
	return func(o *selfPlayOptions) { o.recorder = r }
}

// WithObserver is called after every move.
func WithObserver(fn Observer) Option {
	return func(o *selfPlayOptions) { o.observer = fn }
}

// WithLogger sets the logger used for game progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *selfPlayOptions) { o.logger = l }
}

// SelfPlay lets the engine play both sides from start until a king is
// taken, the side to move has no move, or the ply limit is reached. start is
// not modified.
func SelfPlay(start *board.Board, opts ...Option) (Outcome, error) {
	o := defaultSelfPlayOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default().With("package", "game")
	}
	if o.tables == nil {
		o.tables = movegen.Default()
	}

	pos := *start
	base := []engine.Option{
		engine.WithOrdering(o.ordering),
		engine.WithTables(o.tables),
		engine.WithZobrist(o.zobrist),
		engine.WithLogger(logger),
	}
	cacheMB := o.cacheMB
	if o.agreement && cacheMB <= 0 {
		cacheMB = engine.DefaultCacheMB
	}

	var player, uncached *engine.Search
	if cacheMB > 0 {
		player = engine.NewSearch(&pos, o.depth, append(base, engine.WithCache(cacheMB))...)
	} else {
		player = engine.NewSearch(&pos, o.depth, base...)
	}
	if o.agreement {
		uncached = engine.NewSearch(&pos, o.depth, base...)
	}

	g := movegen.NewGenerator(o.tables, movegen.ScanOrder)
	out := Outcome{Status: PlyLimit, Final: &pos}
	for out.Plies < o.maxPlies {
		if st := StatusOf(&pos, g); st != Ongoing {
			out.Status = st
			break
		}

		res, err := player.Run()
		if err != nil {
			return out, fmt.Errorf("game: ply %d: %w", out.Plies+1, err)
		}
		if uncached != nil {
			check, err := uncached.Run()
			if err != nil {
				return out, fmt.Errorf("game: ply %d: %w", out.Plies+1, err)
			}
			if check.Move != res.Move {
				logger.Error("search disagreement", "ply", out.Plies+1, "fen", pos.FEN(),
					"cached", res.Move.String(), "uncached", check.Move.String())
				return out, fmt.Errorf("%w at ply %d (%s): cached %s, uncached %s",
					ErrDisagreement, out.Plies+1, pos.FEN(), res.Move, check.Move)
			}
		}

		pos.ApplyMove(res.Move)
		out.Plies++
		out.Moves = append(out.Moves, res.Move)
		out.Score = res.Score
		logger.Debug("move played", "ply", out.Plies, "move", res.Move.String(), "score", res.Score)

		if o.recorder != nil && !o.recorder.Truncated() {
			if err := o.recorder.Record(res.Move); err != nil {
				logger.Info("pgn record stopped", "err", err)
			}
		}
		if o.observer != nil {
			o.observer(out.Plies, res.Move, res, &pos)
		}
	}
	if out.Status == PlyLimit {
		if st := StatusOf(&pos, g); st != Ongoing {
			out.Status = st
		}
	}
	if out.Status == KingCaptured {
		out.Winner = Winner(&pos)
	}

	logger.Info("game over", "status", out.Status.String(), "plies", out.Plies, "score", out.Score)
	return out, nil
}
