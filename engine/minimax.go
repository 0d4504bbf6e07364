package engine

import (
	"chess-kernel/board"
	"chess-kernel/movegen"
)

// Minimax searches every node to depth without pruning or caching. It walks
// moves in the same order as Search and keeps the first strictly better
// move, so on any position both return the same move and score. It exists as
// a reference for checking Search and is exponentially slower.
func Minimax(b *board.Board, depth int, opts ...Option) (board.Move, int64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tables == nil {
		cfg.tables = movegen.Default()
	}
	depth = max(1, min(depth, MaxDepth))

	mm := &minimax{cfg: cfg, gens: make([]*movegen.Generator, depth+1), boards: make([]board.Board, depth+1)}
	for i := range mm.gens {
		mm.gens[i] = movegen.NewGenerator(cfg.tables, cfg.ordering)
	}

	g := mm.gens[depth]
	if g.Generate(b) == 0 {
		return board.NoMove, cfg.evaluate(b), ErrNoMoves
	}
	best := board.NoMove
	var bestScore int64
	child := &mm.boards[depth]
	for ; !g.Exhausted(); g.Advance() {
		m := g.Current()
		*child = *b
		child.ApplyMove(m)
		v := mm.value(child, depth-1)
		if best.IsZero() || (b.WhiteToMove() && v > bestScore) || (!b.WhiteToMove() && v < bestScore) {
			best, bestScore = m, v
		}
	}
	return best, bestScore, nil
}

type minimax struct {
	cfg    config
	gens   []*movegen.Generator
	boards []board.Board
}

func (mm *minimax) value(b *board.Board, depth int) int64 {
	if depth == 0 {
		return mm.cfg.evaluate(b)
	}
	g := mm.gens[depth]
	if g.Generate(b) == 0 {
		return mm.cfg.evaluate(b)
	}
	child := &mm.boards[depth]
	white := b.WhiteToMove()
	var best int64
	first := true
	for ; !g.Exhausted(); g.Advance() {
		*child = *b
		child.ApplyMove(g.Current())
		v := mm.value(child, depth-1)
		if first || (white && v > best) || (!white && v < best) {
			best, first = v, false
		}
	}
	return best
}
