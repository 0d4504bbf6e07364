package game

import (
	"chess-kernel/board"
	"chess-kernel/movegen"
)

// Status describes whether a game can continue.
type Status int

const (
	Ongoing Status = iota
	// NoMoves: the side to move has no pseudo-legal move.
	NoMoves
	// KingCaptured: a king has been taken, which pseudo-legal play allows.
	KingCaptured
	// PlyLimit: a self-play game reached its configured length.
	PlyLimit
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case NoMoves:
		return "no moves"
	case KingCaptured:
		return "king captured"
	case PlyLimit:
		return "ply limit"
	}
	return "unknown"
}

// StatusOf classifies b. It regenerates moves with g; a nil g uses default tables.
func StatusOf(b *board.Board, g *movegen.Generator) Status {
	if b.Count(board.White, board.King) == 0 || b.Count(board.Black, board.King) == 0 {
		return KingCaptured
	}
	if g == nil {
		g = movegen.NewGenerator(nil, movegen.ScanOrder)
	}
	if g.Generate(b) == 0 {
		return NoMoves
	}
	return Ongoing
}

// Winner returns the side that still has a king after KingCaptured, NoColor otherwise.
func Winner(b *board.Board) board.Color {
	white := b.Count(board.White, board.King) > 0
	black := b.Count(board.Black, board.King) > 0
	switch {
	case white && !black:
		return board.White
	case black && !white:
		return board.Black
	}
	return board.NoColor
}
