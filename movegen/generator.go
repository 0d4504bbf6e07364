package movegen

import "chess-kernel/board"

// MaxMoves bounds the generator buffer: every origin paired with every destination.
const MaxMoves = board.NumSquares * board.NumSquares

// Generator enumerates pseudo-legal moves into a fixed buffer and exposes
// them as a forward sequence. Generate restarts the sequence.
//
// Generators are not safe for concurrent use. Search keeps one per ply so a
// node never allocates.
type Generator struct {
	tables *Tables
	order  Ordering
	moves  [MaxMoves]board.Move
	count  int
	cursor int
}

// NewGenerator returns a generator backed by t. A nil t selects Default().
func NewGenerator(t *Tables, order Ordering) *Generator {
	if t == nil {
		t = Default()
	}
	return &Generator{tables: t, order: order}
}

// Generate fills the buffer with every pseudo-legal move for the side to move
// in b, applies the ordering and rewinds the cursor. It returns the number of
// moves; zero means the side to move has none.
//
// A move is produced when the origin holds a piece of the side to move, the
// destination is in its reach and not held by a friendly piece, no interior
// square is occupied, and the destination holds an enemy piece exactly when
// the table requires one. Pawn pushes also need a vacant destination.
func (g *Generator) Generate(b *board.Board) int {
	g.count, g.cursor = 0, 0

	side := b.ToMove()
	own := b.Pieces(side)
	opponents := b.Pieces(side.Other())
	occupied := b.Occupied()

	for origins := own; origins != 0; origins &= origins - 1 {
		from := board.SquareOf(origins)
		piece := b.PieceAt(from)
		reach := g.tables.reach[from][piece]
		needsOpponent := g.tables.opponentRequired[from][piece]

		targets := reach &^ own
		targets &^= needsOpponent &^ opponents
		if piece.Type() == board.Pawn {
			targets &^= (reach &^ needsOpponent) & occupied
		}

		for ; targets != 0; targets &= targets - 1 {
			to := board.SquareOf(targets)
			if g.tables.emptyRequired[from][to]&occupied != 0 {
				continue
			}
			g.moves[g.count] = board.Move{Piece: piece, Captured: b.PieceAt(to), From: from, To: to}
			g.count++
		}
	}

	g.order.Sort(g.moves[:g.count])
	return g.count
}

// Advance steps the cursor to the next move.
func (g *Generator) Advance() { g.cursor++ }

// Exhausted reports whether the cursor has passed the last move.
func (g *Generator) Exhausted() bool { return g.cursor >= g.count }

// Current returns the move under the cursor. It must not be called once
// Exhausted reports true.
func (g *Generator) Current() board.Move { return g.moves[g.cursor] }

// Count returns the number of moves produced by the last Generate.
func (g *Generator) Count() int { return g.count }

// Moves returns the generated moves. The slice aliases the internal buffer
// and is overwritten by the next Generate.
func (g *Generator) Moves() []board.Move { return g.moves[:g.count] }

// Contains reports whether m was produced by the last Generate.
func (g *Generator) Contains(m board.Move) bool {
	for _, candidate := range g.moves[:g.count] {
		if candidate == m {
			return true
		}
	}
	return false
}

// Ordering returns the ordering applied after generation.
func (g *Generator) Ordering() Ordering { return g.order }

// Tables returns the tables backing the generator.
func (g *Generator) Tables() *Tables { return g.tables }
