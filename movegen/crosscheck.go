package movegen

import (
	"errors"
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"chess-kernel/board"
)

// ErrNoKing is returned by CrossCheck when a side has no king; the reference
// generator cannot work without one.
var ErrNoKing = errors.New("movegen: cross-check needs one king per side")

// CrossCheckReport compares pseudo-legal generation with dragontoothmg's
// legal move generation for the same position.
type CrossCheckReport struct {
	Pseudo int
	Legal  int
	// Missing lists legal moves the generator did not produce.
	Missing []board.Move
	// Illegal lists produced moves the reference rejects, typically moves
	// that leave the own king attacked.
	Illegal []board.Move
}

// OK reports whether every legal move was generated.
func (r CrossCheckReport) OK() bool { return len(r.Missing) == 0 }

type fromTo struct{ from, to board.Square }

// CrossCheck generates moves for b and checks them against the reference.
// Castling and en passant never appear since exported positions carry
// neither right, and promotions collapse into one move per destination.
func CrossCheck(t *Tables, b *board.Board) (CrossCheckReport, error) {
	var report CrossCheckReport
	for _, c := range board.Colors {
		if b.Count(c, board.King) != 1 {
			return report, fmt.Errorf("%w: %s has %d", ErrNoKing, c, b.Count(c, board.King))
		}
	}

	ref := dragontoothmg.ParseFen(b.FEN())
	legal := make(map[fromTo]bool)
	for _, m := range ref.GenerateLegalMoves() {
		legal[fromTo{board.Square(m.From()), board.Square(m.To())}] = true
	}
	report.Legal = len(legal)

	g := NewGenerator(t, ScanOrder)
	report.Pseudo = g.Generate(b)
	produced := make(map[fromTo]bool, report.Pseudo)
	for _, m := range g.Moves() {
		key := fromTo{m.From, m.To}
		produced[key] = true
		if !legal[key] {
			report.Illegal = append(report.Illegal, m)
		}
	}

	for key := range legal {
		if !produced[key] {
			report.Missing = append(report.Missing, board.NewMove(b, key.from, key.to))
		}
	}
	slices.SortFunc(report.Missing, func(x, y board.Move) int {
		if x.From != y.From {
			return int(x.From) - int(y.From)
		}
		return int(x.To) - int(y.To)
	})
	return report, nil
}
