package movegen

import "chess-kernel/board"

// Perft counts the leaf nodes of the pseudo-legal move tree of b to depth.
func Perft(t *Tables, b *board.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := newPerftCtx(t, depth)
	return pc.count(b, depth)
}

// perftCtx owns one generator and one child board per ply.
type perftCtx struct {
	gens   []*Generator
	boards []board.Board
}

func newPerftCtx(t *Tables, depth int) *perftCtx {
	pc := &perftCtx{gens: make([]*Generator, depth+1), boards: make([]board.Board, depth+1)}
	for i := range pc.gens {
		pc.gens[i] = NewGenerator(t, ScanOrder)
	}
	return pc
}

func (pc *perftCtx) count(b *board.Board, depth int) uint64 {
	g := pc.gens[depth]
	n := g.Generate(b)
	if depth == 1 {
		return uint64(n)
	}
	var nodes uint64
	child := &pc.boards[depth]
	for ; !g.Exhausted(); g.Advance() {
		*child = *b
		child.ApplyMove(g.Current())
		nodes += pc.count(child, depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(t *Tables, b *board.Board, depth int) map[board.Move]uint64 {
	result := make(map[board.Move]uint64)
	if depth <= 0 {
		return result
	}
	root := NewGenerator(t, ScanOrder)
	root.Generate(b)
	for _, m := range root.Moves() {
		child := *b
		child.ApplyMove(m)
		result[m] = Perft(t, &child, depth-1)
	}
	return result
}
