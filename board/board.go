package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard slots. Each color owns an aggregate slot followed by one slot per
// PieceType, so the slot for a piece is colorBase + type.
const (
	whiteBase    = 0
	blackBase    = 7
	occupiedSlot = 14
	emptySlot    = 15
	numSlots     = 16
)

// Board holds piece placement twice, as bitboards and as a piece array
// indexed by padded square, plus the side to move. The two forms are only
// changed together by Reset, FromPieces and ApplyMove.
//
// A Board is a plain value: copying it yields an independent position.
type Board struct {
	bitboards [numSlots]uint64
	pieces    [128]Piece
	toMove    Color
}

// Placement maps squares to the pieces standing on them.
type Placement map[Square]Piece

// New returns an empty board with white to move.
func New() *Board {
	b := &Board{}
	b.clear()
	return b
}

// NewStart returns a board set up in the standard starting position.
func NewStart() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// FromPieces builds a board from a placement. Entries that are not colored
// pieces are ignored.
func FromPieces(placement Placement, toMove Color) *Board {
	b := New()
	for sq, p := range placement {
		if sq >= NumSquares || p.Color() == NoColor || p.Type() == NoType || p.Type() > King {
			continue
		}
		b.put(sq, p)
	}
	b.toMove = toMove
	return b
}

func slot(c Color, t PieceType) int {
	if c == Black {
		return blackBase + int(t)
	}
	return whiteBase + int(t)
}

func (b *Board) clear() {
	b.bitboards = [numSlots]uint64{}
	b.bitboards[emptySlot] = ^uint64(0)
	for i := range b.pieces {
		if Square0x88(i).Valid() {
			b.pieces[i] = Empty
		} else {
			b.pieces[i] = OffBoard
		}
	}
	b.toMove = White
}

func (b *Board) put(sq Square, p Piece) {
	mask := sq.Mask()
	b.pieces[sq.To0x88()] = p
	b.bitboards[slot(p.Color(), NoType)] |= mask
	b.bitboards[slot(p.Color(), p.Type())] |= mask
	b.bitboards[occupiedSlot] |= mask
	b.bitboards[emptySlot] &^= mask
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Reset restores the standard starting arrangement with white to move.
func (b *Board) Reset() {
	b.clear()
	for col := 0; col < 8; col++ {
		b.put(SquareAt(0, col), NewPiece(White, backRank[col]))
		b.put(SquareAt(1, col), WhitePawn)
		b.put(SquareAt(6, col), BlackPawn)
		b.put(SquareAt(7, col), NewPiece(Black, backRank[col]))
	}
}

// ApplyMove moves m.Piece from m.From to m.To, removes m.Captured and passes
// the turn. The move is trusted: applying a move that does not match the
// board corrupts it.
func (b *Board) ApplyMove(m Move) {
	fromMask := m.From.Mask()
	toMask := m.To.Mask()

	if c := m.Captured.Color(); c != NoColor {
		b.bitboards[slot(c, NoType)] &^= toMask
		b.bitboards[slot(c, m.Captured.Type())] &^= toMask
	}

	c := m.Piece.Color()
	b.bitboards[slot(c, NoType)] ^= fromMask | toMask
	b.bitboards[slot(c, m.Piece.Type())] ^= fromMask | toMask
	b.bitboards[occupiedSlot] = b.bitboards[occupiedSlot]&^fromMask | toMask
	b.bitboards[emptySlot] = ^b.bitboards[occupiedSlot]

	b.pieces[m.To.To0x88()] = m.Piece
	b.pieces[m.From.To0x88()] = Empty
	b.toMove = b.toMove.Other()
}

// PieceAt returns the piece on s, Empty when vacant.
func (b *Board) PieceAt(s Square) Piece { return b.pieces[s.To0x88()] }

// PieceAt0x88 returns the content of a padded square, OffBoard for padding.
func (b *Board) PieceAt0x88(p Square0x88) Piece { return b.pieces[p&0x7f] }

// Bitboard returns the squares holding pieces of color c and type t. NoType
// selects every piece of color c.
func (b *Board) Bitboard(c Color, t PieceType) uint64 { return b.bitboards[slot(c, t)] }

// Pieces returns the squares occupied by color c.
func (b *Board) Pieces(c Color) uint64 { return b.bitboards[slot(c, NoType)] }

// Occupied returns every occupied square.
func (b *Board) Occupied() uint64 { return b.bitboards[occupiedSlot] }

// Vacant returns every empty square.
func (b *Board) Vacant() uint64 { return b.bitboards[emptySlot] }

// ToMove returns the side to move.
func (b *Board) ToMove() Color { return b.toMove }

// WhiteToMove reports whether white is to move.
func (b *Board) WhiteToMove() bool { return b.toMove == White }

// Count returns the number of pieces of color c and type t.
func (b *Board) Count(c Color, t PieceType) int { return bits.OnesCount64(b.Bitboard(c, t)) }

// Placement returns the occupied squares and their pieces.
func (b *Board) Placement() Placement {
	placement := make(Placement, 32)
	for occ := b.Occupied(); occ != 0; occ &= occ - 1 {
		sq := SquareOf(occ)
		placement[sq] = b.PieceAt(sq)
	}
	return placement
}

// InconsistencyError reports a square whose array entry disagrees with a bitboard.
type InconsistencyError struct {
	Square Square
	Check  string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("board: inconsistent square %s: %s", e.Square, e.Check)
}

// Verify checks, for every square, that the piece array agrees with the owner
// aggregate, the owner and type bitboard, and the occupied and empty
// bitboards. It returns the first disagreement as an *InconsistencyError.
func (b *Board) Verify() error {
	for i := range b.pieces {
		p := Square0x88(i)
		if !p.Valid() {
			if b.pieces[i] != OffBoard {
				return &InconsistencyError{Square: Square(NumSquares), Check: fmt.Sprintf("padding entry %d is %s", i, b.pieces[i])}
			}
			continue
		}
		sq := p.Flat()
		mask := sq.Mask()
		piece := b.pieces[i]
		present := piece.Color() != NoColor && piece.Type() != NoType

		if present != (b.bitboards[occupiedSlot]&mask != 0) {
			return &InconsistencyError{Square: sq, Check: "occupied bitboard"}
		}
		if present == (b.bitboards[emptySlot]&mask != 0) {
			return &InconsistencyError{Square: sq, Check: "empty bitboard"}
		}
		for _, c := range Colors {
			owned := present && piece.Color() == c
			if owned != (b.bitboards[slot(c, NoType)]&mask != 0) {
				return &InconsistencyError{Square: sq, Check: c.String() + " aggregate bitboard"}
			}
			for t := Pawn; t <= King; t++ {
				want := owned && piece.Type() == t
				if want != (b.bitboards[slot(c, t)]&mask != 0) {
					return &InconsistencyError{Square: sq, Check: NewPiece(c, t).String() + " bitboard"}
				}
			}
		}
	}
	return nil
}

const (
	files    = "     a   b   c   d   e   f   g   h\n"
	rowSplit = "   +---+---+---+---+---+---+---+---+\n"
)

// String renders the board as an 8x8 diagram with rank 8 on top. White
// pieces are uppercase, black lowercase.
func (b *Board) String() string {
	return render(func(sq Square) byte { return b.PieceAt(sq).Char() }) + b.toMove.String() + " to move\n"
}

// DrawMask renders the set bits of mask as an 8x8 diagram.
func DrawMask(mask uint64) string {
	return render(func(sq Square) byte {
		if mask&sq.Mask() != 0 {
			return 'x'
		}
		return ' '
	})
}

func render(cell func(Square) byte) string {
	var sb strings.Builder
	sb.WriteString(files)
	sb.WriteString(rowSplit)
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, " %d |", row+1)
		for col := 0; col < 8; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(cell(SquareAt(row, col)))
			sb.WriteString(" |")
		}
		fmt.Fprintf(&sb, " %d\n", row+1)
		sb.WriteString(rowSplit)
	}
	sb.WriteString(files)
	return sb.String()
}
