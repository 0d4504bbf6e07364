package board

// Move is a plain transition value. Captured holds the destination content
// before the move, Empty for a quiet move.
type Move struct {
	Piece    Piece
	Captured Piece
	From     Square
	To       Square
}

// NoMove is the zero Move; it never comes out of move generation.
var NoMove Move

// NewMove synthesizes the move from one square to another using the current
// occupancy of both squares.
func NewMove(b *Board, from, to Square) Move {
	return Move{Piece: b.PieceAt(from), Captured: b.PieceAt(to), From: from, To: to}
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.Captured.Color() != NoColor && m.Captured.Type() != NoType }

// IsZero reports whether m is NoMove.
func (m Move) IsZero() bool { return m == NoMove }

// String renders the move as "e2:e4".
func (m Move) String() string { return m.From.String() + ":" + m.To.String() }

// UCI renders the move in long algebraic form, e.g. "e2e4".
func (m Move) UCI() string { return m.From.String() + m.To.String() }
