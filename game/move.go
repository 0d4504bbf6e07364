package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"chess-kernel/board"
	"chess-kernel/movegen"
)

var (
	// ErrMalformedMove reports input that is not of the form "e2:e4".
	ErrMalformedMove = errors.New("game: move must look like e2:e4")
	// ErrIllegalMove reports a well-formed move the generator does not produce.
	ErrIllegalMove = errors.New("game: move not allowed in this position")
)

var moveText = regexp.MustCompile(`^([a-h][1-8]):([a-h][1-8])$`)

// ParseMove reads "from:to" text, builds the move from the occupancy of b and
// accepts it only if g generates it for b. A nil g uses default tables.
func ParseMove(b *board.Board, g *movegen.Generator, text string) (board.Move, error) {
	parts := moveText.FindStringSubmatch(strings.TrimSpace(text))
	if parts == nil {
		return board.NoMove, fmt.Errorf("%w: %q", ErrMalformedMove, text)
	}
	from, err := board.ParseSquare(parts[1])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}
	to, err := board.ParseSquare(parts[2])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}

	if g == nil {
		g = movegen.NewGenerator(nil, movegen.ScanOrder)
	}
	g.Generate(b)
	m := board.NewMove(b, from, to)
	if !g.Contains(m) {
		return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return m, nil
}
