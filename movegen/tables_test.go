package movegen_test

import (
	"math/bits"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chess-kernel/board"
	"chess-kernel/movegen"
)

func mustSquare(t testing.TB, name string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

func maskOf(t testing.TB, names ...string) uint64 {
	t.Helper()
	var m uint64
	for _, n := range names {
		m |= mustSquare(t, n).Mask()
	}
	return m
}

func TestReachCounts(t *testing.T) {
	tables := movegen.NewTables()
	cases := []struct {
		piece board.Piece
		from  string
		want  int
	}{
		{board.WhiteRook, "a1", 14},
		{board.BlackRook, "d4", 14},
		{board.WhiteBishop, "a1", 7},
		{board.WhiteBishop, "d4", 13},
		{board.BlackQueen, "d4", 27},
		{board.WhiteKnight, "a1", 2},
		{board.WhiteKnight, "d4", 8},
		{board.BlackKnight, "h8", 2},
		{board.WhiteKing, "a1", 3},
		{board.BlackKing, "e4", 8},
		{board.WhitePawn, "e2", 4}, // e3, e4, d3, f3
		{board.WhitePawn, "a3", 2}, // a4, b4
		{board.BlackPawn, "e7", 4},
		{board.BlackPawn, "h6", 2},
		{board.WhitePawn, "e8", 0},
	}
	for _, tc := range cases {
		got := bits.OnesCount64(tables.Reach(mustSquare(t, tc.from), tc.piece))
		if got != tc.want {
			t.Errorf("%s on %s reaches %d squares, want %d:\n%s", tc.piece, tc.from, got, tc.want,
				board.DrawMask(tables.Reach(mustSquare(t, tc.from), tc.piece)))
		}
	}
}

func TestSliderReachMatchesReference(t *testing.T) {
	tables := movegen.NewTables()
	for s := board.Square(0); s < board.NumSquares; s++ {
		rook := dragontoothmg.CalculateRookMoveBitboard(uint8(s), 0)
		bishop := dragontoothmg.CalculateBishopMoveBitboard(uint8(s), 0)
		if got := tables.Reach(s, board.WhiteRook); got != rook {
			t.Fatalf("rook reach from %s differs:\n%s\nwant\n%s", s, board.DrawMask(got), board.DrawMask(rook))
		}
		if got := tables.Reach(s, board.BlackBishop); got != bishop {
			t.Fatalf("bishop reach from %s differs:\n%s\nwant\n%s", s, board.DrawMask(got), board.DrawMask(bishop))
		}
		if got := tables.Reach(s, board.WhiteQueen); got != rook|bishop {
			t.Fatalf("queen reach from %s is not rook|bishop", s)
		}
	}
}

func TestEmptyRequired(t *testing.T) {
	tables := movegen.NewTables()
	cases := []struct {
		from, to string
		want     uint64
	}{
		{"a1", "a8", maskOf(t, "a2", "a3", "a4", "a5", "a6", "a7")},
		{"a1", "h8", maskOf(t, "b2", "c3", "d4", "e5", "f6", "g7")},
		{"h1", "a1", maskOf(t, "b1", "c1", "d1", "e1", "f1", "g1")},
		{"e2", "e4", maskOf(t, "e3")},
		{"d4", "d5", 0},
		{"b1", "c3", 0},
		{"a1", "b3", 0},
	}
	for _, tc := range cases {
		got := tables.EmptyRequired(mustSquare(t, tc.from), mustSquare(t, tc.to))
		if got != tc.want {
			t.Errorf("EmptyRequired(%s, %s):\n%s\nwant\n%s", tc.from, tc.to, board.DrawMask(got), board.DrawMask(tc.want))
		}
	}
}

func TestOpponentRequired(t *testing.T) {
	tables := movegen.NewTables()
	if got := tables.OpponentRequired(mustSquare(t, "e2"), board.WhitePawn); got != maskOf(t, "d3", "f3") {
		t.Fatalf("white pawn e2:\n%s", board.DrawMask(got))
	}
	if got := tables.OpponentRequired(mustSquare(t, "a7"), board.BlackPawn); got != maskOf(t, "b6") {
		t.Fatalf("black pawn a7:\n%s", board.DrawMask(got))
	}
	for _, p := range []board.Piece{board.WhiteKnight, board.BlackRook, board.WhiteQueen, board.BlackKing} {
		for s := board.Square(0); s < board.NumSquares; s++ {
			if tables.OpponentRequired(s, p) != 0 {
				t.Fatalf("%s on %s has opponent-required squares", p, s)
			}
		}
	}
}

func TestTablesDeterministic(t *testing.T) {
	a, b := movegen.NewTables(), movegen.NewTables()
	if *a != *b {
		t.Fatalf("two builds differ")
	}
	if movegen.Default() != movegen.Default() {
		t.Fatalf("Default should return one shared instance")
	}
}
