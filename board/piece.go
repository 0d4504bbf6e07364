package board

// PieceType is the colorless kind of a piece, stored in the low 3 bits of a Piece.
type PieceType uint8

const (
	NoType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Color is the owner of a piece, stored in bits 3-4 of a Piece.
type Color uint8

const (
	NoColor Color = 0
	White   Color = 0b00001000
	Black   Color = 0b00010000
)

// Piece packs a PieceType and a Color into one byte.
//
// Empty marks a vacant square and OffBoard the padding squares of the 0x88
// array. Neither carries owner bits.
type Piece uint8

const (
	typeMask  Piece = 0b00000111
	colorMask Piece = 0b00011000

	Empty    Piece = 0b01000000
	OffBoard Piece = 0b10000000
)

const (
	WhitePawn   = Piece(White) | Piece(Pawn)
	WhiteKnight = Piece(White) | Piece(Knight)
	WhiteBishop = Piece(White) | Piece(Bishop)
	WhiteRook   = Piece(White) | Piece(Rook)
	WhiteQueen  = Piece(White) | Piece(Queen)
	WhiteKing   = Piece(White) | Piece(King)

	BlackPawn   = Piece(Black) | Piece(Pawn)
	BlackKnight = Piece(Black) | Piece(Knight)
	BlackBishop = Piece(Black) | Piece(Bishop)
	BlackRook   = Piece(Black) | Piece(Rook)
	BlackQueen  = Piece(Black) | Piece(Queen)
	BlackKing   = Piece(Black) | Piece(King)
)

// Colors lists both sides, white first.
var Colors = [2]Color{White, Black}

// NewPiece combines a color and a type.
func NewPiece(c Color, t PieceType) Piece { return Piece(c) | Piece(t) }

// Type returns the colorless type of p.
func (p Piece) Type() PieceType { return PieceType(p & typeMask) }

// Color returns the owner of p, NoColor for Empty and OffBoard.
func (p Piece) Color() Color { return Color(p & colorMask) }

// IsEmpty reports whether p marks a vacant square.
func (p Piece) IsEmpty() bool { return p&Empty != 0 }

// Char returns the FEN letter of p, or a blank for anything that is not a piece.
func (p Piece) Char() byte {
	if p.Type() == NoType || p.Color() == NoColor {
		return ' '
	}
	c := " PNBRQK"[p.Type()]
	if p.Color() == Black {
		c += 'a' - 'A'
	}
	return c
}

func (p Piece) String() string {
	switch {
	case p == OffBoard:
		return "offboard"
	case p.IsEmpty() || p.Type() == NoType:
		return "empty"
	}
	return p.Color().String() + " " + p.Type().String()
}

// Other returns the opposing color. NoColor stays NoColor.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}
