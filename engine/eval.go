package engine

import "chess-kernel/board"

// PieceValues holds the material weight of each piece type.
var PieceValues = [7]int64{
	board.NoType: 0,
	board.Pawn:   1,
	board.Knight: 4,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  9,
	board.King:   1000,
}

// Evaluator scores a position from white's point of view.
type Evaluator func(b *board.Board) int64

// Evaluate is the material count: for each piece type, the number of white
// pieces minus the number of black pieces, times the type's value.
func Evaluate(b *board.Board) int64 {
	var score int64
	for pt := board.Pawn; pt <= board.King; pt++ {
		diff := b.Count(board.White, pt) - b.Count(board.Black, pt)
		score += int64(diff) * PieceValues[pt]
	}
	return score
}
