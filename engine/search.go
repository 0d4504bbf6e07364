package engine

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"chess-kernel/board"
	"chess-kernel/movegen"
)

const (
	// Infinity bounds the root window.
	Infinity int64 = math.MaxInt64
	// MaxDepth is the deepest search NewSearch accepts.
	MaxDepth = 32
)

// ErrNoMoves is returned by Run when the side to move has no pseudo-legal move.
var ErrNoMoves = errors.New("engine: no moves at the root")

// Result is the outcome of one search.
type Result struct {
	Move  board.Move
	Score int64
	Depth int
	Stats Stats
}

// Search is a fixed-depth alpha-beta search over pseudo-legal moves. White
// nodes maximize the evaluation and black nodes minimize it. Only the root
// records a best move.
//
// A Search owns one generator and one child board per ply, so the tree walk
// does not allocate. It is not safe for concurrent use.
type Search struct {
	root   *board.Board
	depth  int
	cfg    config
	logger *slog.Logger

	tt     *TransTable
	gens   []*movegen.Generator
	boards []board.Board

	best  board.Move
	stats Stats
}

// NewSearch prepares a search of b to depth plies. Depth is clamped to
// [1, MaxDepth]. The board is read when Run is called, not copied here.
func NewSearch(b *board.Board, depth int, opts ...Option) *Search {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tables == nil {
		cfg.tables = movegen.Default()
	}
	depth = max(1, min(depth, MaxDepth))

	s := &Search{
		root:   b,
		depth:  depth,
		cfg:    cfg,
		logger: cfg.logger,
		gens:   make([]*movegen.Generator, depth+1),
		boards: make([]board.Board, depth+1),
	}
	if s.logger == nil {
		s.logger = slog.Default().With("package", "engine")
	}
	for i := range s.gens {
		s.gens[i] = movegen.NewGenerator(cfg.tables, cfg.ordering)
	}
	if cfg.cacheMB > 0 {
		s.tt = NewTransTable(cfg.cacheMB)
	}
	return s
}

// Depth returns the configured depth after clamping.
func (s *Search) Depth() int { return s.depth }

// Cached reports whether memoization is enabled.
func (s *Search) Cached() bool { return s.tt != nil }

// Run searches from scratch and returns the best move with its score.
// Repeated calls repeat the full search; the cache is emptied first.
func (s *Search) Run() (Result, error) {
	s.best = board.NoMove
	s.stats = Stats{}
	if s.tt != nil {
		s.tt.Clear()
	}

	start := time.Now()
	score := s.search(s.root, s.depth, -Infinity, Infinity)
	s.stats.Elapsed = time.Since(start)

	res := Result{Move: s.best, Score: score, Depth: s.depth, Stats: s.stats}
	if s.best.IsZero() {
		s.logger.Debug("search found no move", "fen", s.root.FEN(), "depth", s.depth)
		return res, ErrNoMoves
	}
	s.logger.Debug("search complete",
		"move", res.Move.String(),
		"score", res.Score,
		"depth", res.Depth,
		"cached", s.tt != nil,
		"stats", res.Stats,
	)
	return res, nil
}

// BestMove runs the search and returns only the move, board.NoMove when the
// side to move has none.
func (s *Search) BestMove() board.Move {
	res, _ := s.Run()
	return res.Move
}

// Stats returns the counters of the last Run.
func (s *Search) Stats() Stats { return s.stats }

func (s *Search) leaf(b *board.Board) int64 {
	s.stats.Leaves++
	return s.cfg.evaluate(b)
}

// search returns the value of b with depth plies left under the window
// (alpha, beta). Values outside the window are bounds.
func (s *Search) search(b *board.Board, depth int, alpha, beta int64) int64 {
	s.stats.Nodes++
	if depth == 0 {
		return s.leaf(b)
	}
	g := s.gens[depth]
	if g.Generate(b) == 0 {
		return s.leaf(b)
	}

	atRoot := depth == s.depth
	child := &s.boards[depth]

	if b.WhiteToMove() {
		best := -Infinity
		for ; !g.Exhausted(); g.Advance() {
			m := g.Current()
			s.descend(child, b, m)
			v := s.child(child, depth-1, alpha, beta)
			if v > best {
				best = v
				if atRoot {
					s.best = m
				}
			}
			alpha = max(alpha, best)
			if best >= beta {
				s.stats.BetaCutoffs++
				break
			}
		}
		return best
	}

	best := Infinity
	for ; !g.Exhausted(); g.Advance() {
		m := g.Current()
		s.descend(child, b, m)
		v := s.child(child, depth-1, alpha, beta)
		if v < best {
			best = v
			if atRoot {
				s.best = m
			}
		}
		beta = min(beta, best)
		if best <= alpha {
			s.stats.AlphaCutoffs++
			break
		}
	}
	return best
}

// descend copies parent into child and applies m.
func (s *Search) descend(child, parent *board.Board, m board.Move) {
	*child = *parent
	child.ApplyMove(m)
	if s.cfg.verify {
		if err := child.Verify(); err != nil {
			s.logger.Error("board inconsistent", "move", m.String(), "err", err)
			panic(err)
		}
	}
}

// child evaluates a non-root node, consulting the cache when enabled. Leaves
// are never cached.
func (s *Search) child(b *board.Board, depth int, alpha, beta int64) int64 {
	if s.tt == nil || depth == 0 {
		return s.search(b, depth, alpha, beta)
	}
	key := b.Hash(s.cfg.zobrist) ^ s.cfg.zobrist.DepthKey(depth)
	if v, ok := s.tt.Probe(key, depth, alpha, beta); ok {
		s.stats.CacheHits++
		return v
	}
	v := s.search(b, depth, alpha, beta)
	s.tt.Store(key, depth, v, BoundFor(v, alpha, beta))
	s.stats.CacheStores++
	return v
}
