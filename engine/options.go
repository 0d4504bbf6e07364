package engine

import (
	"log/slog"

	"chess-kernel/board"
	"chess-kernel/movegen"
)

// DefaultCacheMB is the cache size WithCache(0) falls back to.
const DefaultCacheMB = 16

type config struct {
	ordering movegen.Ordering
	tables   *movegen.Tables
	zobrist  *board.Zobrist
	evaluate Evaluator
	cacheMB  int
	verify   bool
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		ordering: movegen.MostValuableVictim,
		zobrist:  board.DefaultZobrist,
		evaluate: Evaluate,
	}
}

// Option configures a Search.
type Option func(*config)

// WithOrdering sets the move ordering used at every node.
func WithOrdering(o movegen.Ordering) Option {
	return func(c *config) { c.ordering = o }
}

// WithTables shares prebuilt attack tables. The default is movegen.Default().
func WithTables(t *movegen.Tables) Option {
	return func(c *config) { c.tables = t }
}

// WithZobrist selects the keys used to hash positions for the cache.
func WithZobrist(z *board.Zobrist) Option {
	return func(c *config) {
		if z != nil {
			c.zobrist = z
		}
	}
}

// WithEvaluator replaces the leaf evaluation.
func WithEvaluator(e Evaluator) Option {
	return func(c *config) {
		if e != nil {
			c.evaluate = e
		}
	}
}

// WithCache enables position memoization with a table of about sizeMB
// megabytes. Zero selects DefaultCacheMB.
func WithCache(sizeMB int) Option {
	return func(c *config) {
		if sizeMB <= 0 {
			sizeMB = DefaultCacheMB
		}
		c.cacheMB = sizeMB
	}
}

// WithoutCache disables memoization.
func WithoutCache() Option {
	return func(c *config) { c.cacheMB = 0 }
}

// WithVerify checks board consistency after every applied move and panics
// with the *board.InconsistencyError on the first mismatch.
func WithVerify(on bool) Option {
	return func(c *config) { c.verify = on }
}

// WithLogger sets the logger for search summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
