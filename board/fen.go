package board

import (
	"fmt"

	"github.com/corentings/chess/v2"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var toChessType = [...]chess.PieceType{
	NoType: chess.NoPieceType,
	Pawn:   chess.Pawn,
	Knight: chess.Knight,
	Bishop: chess.Bishop,
	Rook:   chess.Rook,
	Queen:  chess.Queen,
	King:   chess.King,
}

func fromChessType(t chess.PieceType) PieceType {
	for i, ct := range toChessType {
		if ct == t {
			return PieceType(i)
		}
	}
	return NoType
}

// ParseFEN reads piece placement and side to move from a FEN record.
// Castling rights, en passant and the move counters are accepted and ignored.
func ParseFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("board: parse fen %q: %w", fen, err)
	}
	pos := chess.NewGame(opt).Position()

	placement := make(Placement, 32)
	for sq, p := range pos.Board().SquareMap() {
		t := fromChessType(p.Type())
		if t == NoType {
			continue
		}
		c := White
		if p.Color() == chess.Black {
			c = Black
		}
		placement[Square(sq)] = NewPiece(c, t)
	}

	toMove := White
	if pos.Turn() == chess.Black {
		toMove = Black
	}
	return FromPieces(placement, toMove), nil
}

// FEN encodes the position. Castling and en passant fields are always "-".
func (b *Board) FEN() string {
	squares := make(map[chess.Square]chess.Piece, 32)
	for sq, p := range b.Placement() {
		c := chess.White
		if p.Color() == Black {
			c = chess.Black
		}
		squares[chess.Square(sq)] = chess.NewPiece(toChessType[p.Type()], c)
	}
	side := "w"
	if b.toMove == Black {
		side = "b"
	}
	return chess.NewBoard(squares).String() + " " + side + " - - 0 1"
}
