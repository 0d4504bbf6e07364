package movegen

import (
	"fmt"

	"golang.org/x/exp/slices"

	"chess-kernel/board"
)

// Ordering rearranges a freshly generated move list.
type Ordering int

const (
	// ScanOrder keeps generation order: origins ascending, then destinations ascending.
	ScanOrder Ordering = iota
	// CapturedAscending sorts by the raw byte of the captured piece. The byte
	// packs owner above type, so this is not a value ordering.
	CapturedAscending
	// MostValuableVictim puts captures first, best victim and cheapest
	// attacker leading; quiet moves keep scan order behind them.
	MostValuableVictim
)

var orderingNames = map[Ordering]string{
	ScanOrder:          "scan",
	CapturedAscending:  "captured",
	MostValuableVictim: "mvv-lva",
}

func (o Ordering) String() string {
	if name, ok := orderingNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Ordering(%d)", int(o))
}

// ParseOrdering accepts the names printed by Ordering.String.
func ParseOrdering(name string) (Ordering, error) {
	for o, n := range orderingNames {
		if n == name {
			return o, nil
		}
	}
	return ScanOrder, fmt.Errorf("movegen: unknown ordering %q", name)
}

// mvvLva[victim][attacker]; higher sorts first. A king victim outranks
// everything so king captures are searched before anything else.
var mvvLva = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 9},  // victim Pawn
	{0, 24, 23, 22, 21, 20, 19}, // victim Knight
	{0, 34, 33, 32, 31, 30, 29}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 39}, // victim Rook
	{0, 54, 53, 52, 51, 50, 49}, // victim Queen
	{0, 64, 63, 62, 61, 60, 59}, // victim King
}

// CaptureScore returns the MVV-LVA score of m, 0 for quiet moves.
func CaptureScore(m board.Move) int {
	if !m.IsCapture() {
		return 0
	}
	return mvvLva[m.Captured.Type()][m.Piece.Type()]
}

// Sort applies the ordering to moves in place.
func (o Ordering) Sort(moves []board.Move) {
	switch o {
	case CapturedAscending:
		slices.SortFunc(moves, func(a, b board.Move) int {
			return int(a.Captured) - int(b.Captured)
		})
	case MostValuableVictim:
		slices.SortStableFunc(moves, func(a, b board.Move) int {
			return CaptureScore(b) - CaptureScore(a)
		})
	}
}
