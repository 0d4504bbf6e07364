package movegen_test

import (
	"errors"
	"math/bits"
	"math/rand"
	"testing"

	"chess-kernel/board"
	"chess-kernel/movegen"
)

func mustFEN(t testing.TB, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func moveTexts(moves []board.Move) map[string]bool {
	out := make(map[string]bool, len(moves))
	for _, m := range moves {
		out[m.String()] = true
	}
	return out
}

func TestStartPositionMoves(t *testing.T) {
	b := board.NewStart()
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	if n := g.Generate(b); n != 20 {
		t.Fatalf("start position: expected 20 moves, got %d: %v", n, g.Moves())
	}
	pawns, knights := 0, 0
	for _, m := range g.Moves() {
		switch m.Piece {
		case board.WhitePawn:
			pawns++
			if m.From.Col() != m.To.Col() {
				t.Errorf("diagonal pawn move onto an empty square: %s", m)
			}
		case board.WhiteKnight:
			knights++
		default:
			t.Errorf("unexpected mover %s in %s", m.Piece, m)
		}
		if m.IsCapture() {
			t.Errorf("no captures exist in the start position, got %s", m)
		}
	}
	if pawns != 16 || knights != 4 {
		t.Fatalf("expected 16 pawn and 4 knight moves, got %d and %d", pawns, knights)
	}

	b.ApplyMove(board.NewMove(b, mustSquare(t, "e2"), mustSquare(t, "e4")))
	if n := g.Generate(b); n != 20 {
		t.Fatalf("black reply count: expected 20, got %d", n)
	}
	for _, m := range g.Moves() {
		if m.Piece.Color() != board.Black {
			t.Fatalf("generated %s for the wrong side", m)
		}
	}
}

func TestPawnRules(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{"blocked push, one capture", "4k3/8/8/8/8/3pn3/4P3/4K3 w - - 0 1", "e2", []string{"e2:d3"}},
		{"double push through blocker", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2", nil},
		{"double push onto blocker", "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", "e2", []string{"e2:e3"}},
		{"no straight capture", "4k3/8/8/4p3/4P3/8/8/4K3 w - - 0 1", "e4", nil},
		{"no diagonal onto empty", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4", []string{"e4:e5"}},
		{"no capture of own piece", "4k3/8/8/3N1n2/4P3/8/8/4K3 w - - 0 1", "e4", []string{"e4:e5", "e4:f5"}},
		{"black pawn from start rank", "4k3/3p4/4N3/8/8/8/8/4K3 b - - 0 1", "d7", []string{"d7:d6", "d7:d5", "d7:e6"}},
		{"pawn may take a king", "4k3/3P4/8/8/8/8/8/4K3 w - - 0 1", "d7", []string{"d7:d8", "d7:e8"}},
	}
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			g.Generate(b)
			from := mustSquare(t, tc.from)
			got := map[string]bool{}
			for _, m := range g.Moves() {
				if m.From == from {
					got[m.String()] = true
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for _, w := range tc.want {
				if !got[w] {
					t.Fatalf("missing %s in %v", w, got)
				}
			}
		})
	}
}

func TestSlidersBlocked(t *testing.T) {
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	g.Generate(board.NewStart())
	for _, m := range g.Moves() {
		switch m.Piece.Type() {
		case board.Bishop, board.Rook, board.Queen, board.King:
			t.Fatalf("%s should be blocked in the start position: %s", m.Piece, m)
		}
	}

	// Rook a1 sees up to the own pawn on a4 and the enemy knight on d1.
	b := mustFEN(t, "4k3/8/8/8/P7/8/8/R2n3K w - - 0 1")
	g.Generate(b)
	var rook []string
	for _, m := range g.Moves() {
		if m.Piece == board.WhiteRook {
			rook = append(rook, m.String())
		}
	}
	want := map[string]bool{}
	for _, s := range []string{"a1:b1", "a1:c1", "a1:d1", "a1:a2", "a1:a3"} {
		want[s] = true
	}
	if len(rook) != len(want) {
		t.Fatalf("rook moves %v, want %v", rook, want)
	}
	for _, m := range rook {
		if !want[m] {
			t.Fatalf("unexpected rook move %s", m)
		}
	}
}

func TestCoversCornerSquares(t *testing.T) {
	// Pieces on a1 and h8 must both generate.
	b := mustFEN(t, "7R/8/8/8/8/8/8/k6K w - - 0 1")
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	g.Generate(b)
	found := false
	for _, m := range g.Moves() {
		if m.From == mustSquare(t, "h8") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no moves generated from h8")
	}

	b = mustFEN(t, "K6k/8/8/8/8/8/8/r7 b - - 0 1")
	g.Generate(b)
	found = false
	for _, m := range g.Moves() {
		if m.From == mustSquare(t, "a1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no moves generated from a1")
	}
}

func TestSequence(t *testing.T) {
	b := board.NewStart()
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	n := g.Generate(b)
	if n != g.Count() {
		t.Fatalf("Generate returned %d, Count %d", n, g.Count())
	}

	var walked []board.Move
	for ; !g.Exhausted(); g.Advance() {
		walked = append(walked, g.Current())
	}
	if len(walked) != n {
		t.Fatalf("walked %d moves, generated %d", len(walked), n)
	}
	for i, m := range g.Moves() {
		if walked[i] != m {
			t.Fatalf("walk diverges at %d: %s vs %s", i, walked[i], m)
		}
		if i > 0 {
			prev := walked[i-1]
			if prev.From > m.From || (prev.From == m.From && prev.To >= m.To) {
				t.Fatalf("scan order violated: %s before %s", prev, m)
			}
		}
	}

	if g.Generate(b) != n || g.Exhausted() {
		t.Fatalf("regenerating should rewind the cursor")
	}
	if !g.Contains(board.NewMove(b, mustSquare(t, "g1"), mustSquare(t, "f3"))) {
		t.Fatalf("g1:f3 should be generated")
	}
	if g.Contains(board.NewMove(b, mustSquare(t, "e2"), mustSquare(t, "e5"))) {
		t.Fatalf("e2:e5 should not be generated")
	}

	empty := board.FromPieces(board.Placement{mustSquare(t, "e1"): board.WhiteKing}, board.Black)
	if g.Generate(empty) != 0 || !g.Exhausted() {
		t.Fatalf("a side without pieces has no moves")
	}
}

func TestOrdering(t *testing.T) {
	fen := "7k/8/8/1n1q4/2P5/8/8/3R3K w - - 0 1"
	b := mustFEN(t, fen)

	g := movegen.NewGenerator(nil, movegen.MostValuableVictim)
	g.Generate(b)
	moves := g.Moves()
	want := []string{"c4:d5", "d1:d5", "c4:b5"}
	for i, w := range want {
		if moves[i].String() != w {
			t.Fatalf("mvv-lva position %d: got %s, want %s (all %v)", i, moves[i], w, moves)
		}
	}
	for _, m := range moves[len(want):] {
		if m.IsCapture() {
			t.Fatalf("capture %s sorted behind quiet moves", m)
		}
	}

	g = movegen.NewGenerator(nil, movegen.CapturedAscending)
	g.Generate(b)
	moves = g.Moves()
	for i := 1; i < len(moves); i++ {
		if moves[i-1].Captured > moves[i].Captured {
			t.Fatalf("captured-ascending violated at %d: %s then %s", i, moves[i-1], moves[i])
		}
	}
	if moves[0].String() != "c4:b5" {
		t.Fatalf("the knight capture has the smallest captured byte, got %s first", moves[0])
	}

	scan := movegen.NewGenerator(nil, movegen.ScanOrder)
	if scan.Generate(b) != g.Count() {
		t.Fatalf("ordering must not change the move set")
	}
	all := moveTexts(scan.Moves())
	for _, m := range moves {
		if !all[m.String()] {
			t.Fatalf("ordered generator produced %s, scan did not", m)
		}
	}
}

func TestParseOrdering(t *testing.T) {
	for _, o := range []movegen.Ordering{movegen.ScanOrder, movegen.CapturedAscending, movegen.MostValuableVictim} {
		got, err := movegen.ParseOrdering(o.String())
		if err != nil || got != o {
			t.Fatalf("ParseOrdering(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := movegen.ParseOrdering("random"); err == nil {
		t.Fatalf("unknown ordering accepted")
	}
}

// Random pseudo-legal games keep both board representations in step.
func TestRandomPlayoutConsistency(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	g := movegen.NewGenerator(nil, movegen.ScanOrder)
	for game := 0; game < 20; game++ {
		b := board.NewStart()
		for ply := 0; ply < 200; ply++ {
			n := g.Generate(b)
			if n == 0 || b.Count(board.White, board.King) == 0 || b.Count(board.Black, board.King) == 0 {
				break
			}
			m := g.Moves()[rnd.Intn(n)]
			before := bits.OnesCount64(b.Occupied())
			moverBefore := b.Bitboard(m.Piece.Color(), m.Piece.Type())

			b.ApplyMove(m)
			if err := b.Verify(); err != nil {
				t.Fatalf("game %d ply %d after %s: %v\n%s", game, ply, m, err, b)
			}
			after := bits.OnesCount64(b.Occupied())
			if m.IsCapture() && after != before-1 || !m.IsCapture() && after != before {
				t.Fatalf("occupancy %d -> %d after %s", before, after, m)
			}
			moverAfter := b.Bitboard(m.Piece.Color(), m.Piece.Type())
			if moverBefore&^moverAfter != m.From.Mask() || moverAfter&^moverBefore != m.To.Mask() {
				t.Fatalf("mover bitboard changed beyond %s", m)
			}
		}
	}
}

func TestPerft(t *testing.T) {
	want := []uint64{1, 20, 400, 8902}
	for depth, n := range want {
		if got := movegen.Perft(nil, board.NewStart(), depth); got != n {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, n)
		}
	}

	div := movegen.PerftDivide(nil, board.NewStart(), 3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if len(div) != 20 || sum != 8902 {
		t.Fatalf("divide: %d root moves, %d nodes", len(div), sum)
	}
}

func TestCrossCheck(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 b - - 0 10",
		"4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		report, err := movegen.CrossCheck(nil, mustFEN(t, fen))
		if err != nil {
			t.Fatalf("CrossCheck(%q): %v", fen, err)
		}
		if !report.OK() {
			t.Fatalf("%q: legal moves not generated: %v", fen, report.Missing)
		}
		if report.Pseudo < report.Legal {
			t.Fatalf("%q: %d pseudo-legal < %d legal", fen, report.Pseudo, report.Legal)
		}
	}

	// A king left en prise shows up as an illegal pseudo-legal move.
	report, err := movegen.CrossCheck(nil, mustFEN(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1"))
	if err != nil {
		t.Fatalf("CrossCheck: %v", err)
	}
	if len(report.Illegal) == 0 {
		t.Fatalf("expected king moves into check to be flagged")
	}

	_, err = movegen.CrossCheck(nil, board.FromPieces(board.Placement{4: board.WhiteKing}, board.White))
	if !errors.Is(err, movegen.ErrNoKing) {
		t.Fatalf("expected ErrNoKing, got %v", err)
	}
}
