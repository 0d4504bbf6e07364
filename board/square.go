package board

import (
	"fmt"
	"math/bits"
)

// Square is a flat board index: a1 = 0, h1 = 7, a8 = 56, h8 = 63.
type Square uint8

// Square0x88 is the padded 16x8 index used for offset arithmetic. The low
// nibble holds the column and must stay below 8; any value with a 0x88 bit
// set lies off the board.
//
//	flat:  a1=0   h1=7    a2=8   ...  h8=63
//	0x88:  a1=0   h1=7    a2=16  ...  h8=119
type Square0x88 uint8

// NumSquares is the number of playable squares.
const NumSquares = 64

const (
	columnNames = "abcdefgh"
	rowNames    = "12345678"
)

// SquareAt returns the flat index for a row (rank, 0-7) and column (file, 0-7).
func SquareAt(row, col int) Square { return Square(8*row + col) }

// SquareOf returns the flat index of the lowest set bit of mask.
func SquareOf(mask uint64) Square { return Square(bits.TrailingZeros64(mask)) }

// Row returns the rank of s, 0 for the first rank.
func (s Square) Row() int { return int(s) / 8 }

// Col returns the file of s, 0 for the a-file.
func (s Square) Col() int { return int(s) % 8 }

// Mask returns the single-bit bitboard for s.
func (s Square) Mask() uint64 { return uint64(1) << s }

// To0x88 converts a flat index to its padded index.
func (s Square) To0x88() Square0x88 { return Square0x88(s + (s &^ 7)) }

// String renders s in algebraic notation, e.g. "e4".
func (s Square) String() string {
	if s >= NumSquares {
		return "invalid"
	}
	return string([]byte{columnNames[s.Col()], rowNames[s.Row()]})
}

// ParseSquare parses algebraic notation such as "e2".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 || text[0] < 'a' || text[0] > 'h' || text[1] < '1' || text[1] > '8' {
		return 0, fmt.Errorf("board: invalid square %q", text)
	}
	return SquareAt(int(text[1]-'1'), int(text[0]-'a')), nil
}

// Square0x88At returns the padded index for a row and column.
func Square0x88At(row, col int) Square0x88 { return Square0x88(16*row + col) }

// Valid reports whether p addresses a square on the board.
func (p Square0x88) Valid() bool { return p&0x88 == 0 }

// Flat converts a valid padded index back to its flat index.
func (p Square0x88) Flat() Square { return Square((p + (p & 7)) >> 1) }

// Row returns the rank of p.
func (p Square0x88) Row() int { return int(p) / 16 }

// Col returns the file of p.
func (p Square0x88) Col() int { return int(p) % 16 }

// Mask returns the single-bit bitboard for a valid p.
func (p Square0x88) Mask() uint64 { return p.Flat().Mask() }

// RowOf returns the rank of the lowest set bit of mask.
func RowOf(mask uint64) int { return SquareOf(mask).Row() }

// ColOf returns the file of the lowest set bit of mask.
func ColOf(mask uint64) int { return SquareOf(mask).Col() }

// Shift moves the lowest set bit of mask by rows and cols. It returns 0 when
// the result would leave the board.
func Shift(mask uint64, rows, cols int) uint64 {
	row := RowOf(mask) + rows
	col := ColOf(mask) + cols
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0
	}
	return SquareAt(row, col).Mask()
}

// MaskString renders the lowest set bit of mask in algebraic notation.
func MaskString(mask uint64) string {
	if mask == 0 {
		return "invalid"
	}
	return SquareOf(mask).String()
}
