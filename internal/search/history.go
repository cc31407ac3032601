package search

import "github.com/brensch/shapeshifter/internal/geometry"

// History is the move-ordering-only history heuristic table: for each
// (cell, direction) pair it accumulates how often a move from that cell in
// that direction turned out to be the best move found at some search
// depth, weighted by depth so a move that wins deep in the tree counts for
// more than one that only helped order a shallow node. Never read for
// anything but ordering — it plays no part in a score.
type History struct {
	scores [][4]uint64
}

// NewHistory allocates a table sized to a board of n cells.
func NewHistory(cells int) *History {
	return &History{scores: make([][4]uint64, cells)}
}

// Bump credits (cell, dir) for having been the best move at the given
// search depth.
func (h *History) Bump(cell int, dir geometry.Direction, depth int) {
	if depth < 0 {
		depth = 0
	}
	h.scores[cell][dir] += uint64(depth) * uint64(depth)
}

// Score returns the accumulated weight for (cell, dir), used as the
// primary move-ordering key.
func (h *History) Score(cell int, dir geometry.Direction) uint64 {
	return h.scores[cell][dir]
}
