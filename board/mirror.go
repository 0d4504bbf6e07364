package board

// Mirror returns the color-mirrored position: ranks are flipped, every piece
// changes owner and the other side is to move.
func (b *Board) Mirror() *Board {
	placement := make(Placement, 32)
	for sq, p := range b.Placement() {
		placement[SquareAt(7-sq.Row(), sq.Col())] = NewPiece(p.Color().Other(), p.Type())
	}
	return FromPieces(placement, b.toMove.Other())
}
