package engine

import "unsafe"

// Bound says how a cached score relates to the true value of its position.
type Bound int8

const (
	// NoBound marks an unused slot.
	NoBound Bound = iota
	// UpperBound: the search failed low, the true value is at most Score.
	UpperBound
	// LowerBound: the search failed high, the true value is at least Score.
	LowerBound
	// ExactBound: Score is the true value.
	ExactBound
)

func (b Bound) String() string {
	switch b {
	case UpperBound:
		return "upper"
	case LowerBound:
		return "lower"
	case ExactBound:
		return "exact"
	}
	return "none"
}

const clusterSize = 4

// TTEntry is one cached search result. Key already folds in the depth.
type TTEntry struct {
	Key   uint64
	Score int64
	Depth int8
	Flag  Bound
}

// TransTable memoizes subtree scores. It belongs to one search at a time.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
}

// NewTransTable sizes a table to roughly sizeMB megabytes, at least one cluster.
func NewTransTable(sizeMB int) *TransTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	clusterCount := uint64(sizeMB) * 1024 * 1024 / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &TransTable{
		entries:      make([]TTEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

// Clear empties every slot without reallocating.
func (tt *TransTable) Clear() {
	clear(tt.entries)
}

// Len returns the number of slots.
func (tt *TransTable) Len() int { return len(tt.entries) }

// BoundFor classifies a score produced under the window (alpha, beta).
func BoundFor(score, alpha, beta int64) Bound {
	switch {
	case score <= alpha:
		return UpperBound
	case score >= beta:
		return LowerBound
	}
	return ExactBound
}

// Probe returns a cached score usable under the window (alpha, beta). Exact
// scores are always usable; bounds only when they already decide the window.
func (tt *TransTable) Probe(key uint64, depth int, alpha, beta int64) (int64, bool) {
	base := (key % tt.clusterCount) * clusterSize
	for i := uint64(0); i < clusterSize; i++ {
		e := &tt.entries[base+i]
		if e.Key != key || e.Flag == NoBound || int(e.Depth) != depth {
			continue
		}
		switch e.Flag {
		case ExactBound:
			return e.Score, true
		case LowerBound:
			if e.Score >= beta {
				return e.Score, true
			}
		case UpperBound:
			if e.Score <= alpha {
				return e.Score, true
			}
		}
		return 0, false
	}
	return 0, false
}

// Store records a score. It overwrites an entry with the same key first,
// then an empty slot, then the shallowest entry of the cluster.
func (tt *TransTable) Store(key uint64, depth int, score int64, flag Bound) {
	base := (key % tt.clusterCount) * clusterSize
	target := -1

	for i := uint64(0); i < clusterSize; i++ {
		if tt.entries[base+i].Key == key {
			target = int(base + i)
			break
		}
	}
	if target == -1 {
		for i := uint64(0); i < clusterSize; i++ {
			if tt.entries[base+i].Flag == NoBound {
				target = int(base + i)
				break
			}
		}
	}
	if target == -1 {
		target = int(base)
		for i := uint64(1); i < clusterSize; i++ {
			if tt.entries[base+i].Depth < tt.entries[target].Depth {
				target = int(base + i)
			}
		}
	}

	tt.entries[target] = TTEntry{Key: key, Score: score, Depth: int8(depth), Flag: flag}
}
