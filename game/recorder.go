package game

import (
	"errors"
	"fmt"

	"github.com/corentings/chess/v2"

	"chess-kernel/board"
)

// ErrNotRecordable is returned once a move breaks the rules the PGN layer
// enforces, such as leaving the own king in check or taking a king. The
// recorder keeps the moves before it and ignores everything after.
var ErrNotRecordable = errors.New("game: move cannot be written as PGN")

// Recorder mirrors a game into a corentings/chess game so it can be exported
// as PGN with standard algebraic notation.
type Recorder struct {
	game    *chess.Game
	plies   int
	stopped error
}

// NewRecorder starts a record at position start.
func NewRecorder(start *board.Board) (*Recorder, error) {
	if start.FEN() == board.NewStart().FEN() {
		return &Recorder{game: chess.NewGame()}, nil
	}
	fen := start.FEN()
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("game: recorder start %q: %w", fen, err)
	}
	r := &Recorder{game: chess.NewGame(opt)}
	r.game.AddTagPair("SetUp", "1")
	r.game.AddTagPair("FEN", fen)
	return r, nil
}

// SetTag adds a PGN tag pair.
func (r *Recorder) SetTag(key, value string) { r.game.AddTagPair(key, value) }

// Record appends m. After the first unrecordable move every call returns the
// same error.
func (r *Recorder) Record(m board.Move) error {
	if r.stopped != nil {
		return r.stopped
	}
	pos := r.game.Position()
	mv, err := chess.UCINotation{}.Decode(pos, m.UCI())
	if err != nil {
		r.stopped = fmt.Errorf("%w: ply %d %s: %v", ErrNotRecordable, r.plies+1, m, err)
		return r.stopped
	}
	san := chess.AlgebraicNotation{}.Encode(pos, mv)
	if err := r.game.PushMove(san, &chess.PushMoveOptions{ForceMainline: true}); err != nil {
		r.stopped = fmt.Errorf("%w: ply %d %s: %v", ErrNotRecordable, r.plies+1, m, err)
		return r.stopped
	}
	r.plies++
	return nil
}

// Plies returns the number of recorded moves.
func (r *Recorder) Plies() int { return r.plies }

// Truncated reports whether a move could not be recorded.
func (r *Recorder) Truncated() bool { return r.stopped != nil }

// PGN renders the recorded game.
func (r *Recorder) PGN() string { return r.game.String() }
