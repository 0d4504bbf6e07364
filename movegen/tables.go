package movegen

import (
	"sync"

	"chess-kernel/board"
)

// Offsets in the padded 0x88 layout.
var (
	rookDirections   = []int{16, 1, -16, -1}
	bishopDirections = []int{17, -15, -17, 15}
	kingSteps        = []int{16, 17, 1, -15, -16, -17, -1, 15}
	knightJumps      = []int{33, 31, 18, 14, -14, -18, -31, -33}
)

// Tables holds the precomputed move masks. A Tables value is read-only once
// NewTables returns and may be shared by any number of generators.
//
// Lookups are indexed by raw square and piece values without bounds checks
// beyond those of the Go runtime.
type Tables struct {
	// reach[from][piece]: destinations ignoring occupancy.
	reach [board.NumSquares][256]uint64
	// emptyRequired[from][to]: interior squares of the straight line from->to.
	emptyRequired [board.NumSquares][board.NumSquares]uint64
	// opponentRequired[from][piece]: destinations that need an enemy occupant.
	opponentRequired [board.NumSquares][256]uint64
}

// NewTables builds all three tables. The result depends on nothing but the
// board geometry, so repeated calls produce identical tables.
func NewTables() *Tables {
	t := &Tables{}
	for from := board.Square(0); from < board.NumSquares; from++ {
		origin := from.To0x88()
		t.buildRays(from, origin)
		for _, c := range board.Colors {
			t.buildSteps(from, origin, board.NewPiece(c, board.Knight), knightJumps)
			t.buildSteps(from, origin, board.NewPiece(c, board.King), kingSteps)
			t.buildPawn(from, origin, c)
		}
	}
	return t
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns a process-wide Tables built on first use.
func Default() *Tables {
	defaultOnce.Do(func() { defaultTables = NewTables() })
	return defaultTables
}

// Reach returns the squares piece p could move to from s on an empty board.
func (t *Tables) Reach(s board.Square, p board.Piece) uint64 { return t.reach[s][p] }

// EmptyRequired returns the squares strictly between from and to that must be
// vacant for the move to be unobstructed. It is 0 for moves with no interior.
func (t *Tables) EmptyRequired(from, to board.Square) uint64 { return t.emptyRequired[from][to] }

// OpponentRequired returns the destinations of p from s that are only legal
// as captures. It is non-zero for pawns only.
func (t *Tables) OpponentRequired(s board.Square, p board.Piece) uint64 {
	return t.opponentRequired[s][p]
}

// buildRays walks each slider direction from origin. Each step's interior
// mask is the previous step's interior plus the square just passed.
func (t *Tables) buildRays(from board.Square, origin board.Square0x88) {
	for _, slider := range []struct {
		pt   board.PieceType
		dirs []int
	}{{board.Rook, rookDirections}, {board.Bishop, bishopDirections}} {
		for _, dir := range slider.dirs {
			var between, ray uint64
			for to, ok := offset(origin, dir); ok; to, ok = offset(to, dir) {
				t.emptyRequired[from][to.Flat()] = between
				between |= to.Mask()
				ray |= to.Mask()
			}
			for _, c := range board.Colors {
				t.reach[from][board.NewPiece(c, slider.pt)] |= ray
				t.reach[from][board.NewPiece(c, board.Queen)] |= ray
			}
		}
	}
}

func (t *Tables) buildSteps(from board.Square, origin board.Square0x88, p board.Piece, steps []int) {
	for _, step := range steps {
		if to, ok := offset(origin, step); ok {
			t.reach[from][p] |= to.Mask()
		}
	}
}

// buildPawn adds single and double pushes and the two capture diagonals.
// Only the diagonals enter the opponent-required table.
func (t *Tables) buildPawn(from board.Square, origin board.Square0x88, c board.Color) {
	p := board.NewPiece(c, board.Pawn)
	forward, startRow := 16, 1
	if c == board.Black {
		forward, startRow = -16, 6
	}
	if to, ok := offset(origin, forward); ok {
		t.reach[from][p] |= to.Mask()
		if from.Row() == startRow {
			if to2, ok := offset(origin, 2*forward); ok {
				t.reach[from][p] |= to2.Mask()
			}
		}
	}
	for _, side := range []int{-1, 1} {
		if to, ok := offset(origin, forward+side); ok {
			t.reach[from][p] |= to.Mask()
			t.opponentRequired[from][p] |= to.Mask()
		}
	}
}

func offset(origin board.Square0x88, step int) (board.Square0x88, bool) {
	p := int(origin) + step
	if p < 0 || p > 0x7f || !board.Square0x88(p).Valid() {
		return 0, false
	}
	return board.Square0x88(p), true
}
