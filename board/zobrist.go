package board

import "math/rand"

// DefaultSeed seeds DefaultZobrist. A fixed seed keeps hashes reproducible
// between runs.
const DefaultSeed int64 = 0xC0DE

// MaxDepthKeys bounds the depths that DepthKey can encode.
const MaxDepthKeys = 64

// Zobrist holds the random keys used to hash positions. It is immutable
// after NewZobrist and safe to share.
type Zobrist struct {
	pieces [NumSquares][13]uint64
	side   uint64
	depth  [MaxDepthKeys]uint64
}

// NewZobrist fills a key set from seed.
func NewZobrist(seed int64) *Zobrist {
	rnd := rand.New(rand.NewSource(seed))
	z := &Zobrist{}
	for sq := range z.pieces {
		for i := range z.pieces[sq] {
			z.pieces[sq][i] = rnd.Uint64()
		}
	}
	z.side = rnd.Uint64()
	for d := range z.depth {
		z.depth[d] = rnd.Uint64()
	}
	return z
}

// DefaultZobrist is the key set built from DefaultSeed.
var DefaultZobrist = NewZobrist(DefaultSeed)

// pieceIndex maps a colored piece to 1-6 for white and 7-12 for black.
func pieceIndex(p Piece) int {
	if p.Color() == Black {
		return 6 + int(p.Type())
	}
	return int(p.Type())
}

// PieceKey returns the key for piece p standing on s.
func (z *Zobrist) PieceKey(s Square, p Piece) uint64 { return z.pieces[s][pieceIndex(p)] }

// SideKey is folded into the hash when black is to move.
func (z *Zobrist) SideKey() uint64 { return z.side }

// DepthKey returns the key that distinguishes cache entries by remaining depth.
func (z *Zobrist) DepthKey(depth int) uint64 { return z.depth[depth%MaxDepthKeys] }

// Hash combines the keys of every occupied square and the side to move.
func (b *Board) Hash(z *Zobrist) uint64 {
	var key uint64
	for occ := b.Occupied(); occ != 0; occ &= occ - 1 {
		sq := SquareOf(occ)
		key ^= z.PieceKey(sq, b.PieceAt(sq))
	}
	if b.toMove == Black {
		key ^= z.side
	}
	return key
}
