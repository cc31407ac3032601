package mcts

import (
	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
)

// nearLossMargin is how close to a known forced loss (eval.Min+turn) the
// primary search's score has to land before the fallback searcher is
// worth its cost.
const nearLossMargin = 6

// ShouldFallback reports whether the UCT fallback should run given the
// primary search's result for b: only when more than two snakes remain
// (so there is a genuine multi-agent decision to reconsider) and the
// primary score indicates a shallow forced loss.
func ShouldFallback(b *board.Board, primaryScore int64) bool {
	if b.AliveCount() <= 2 {
		return false
	}
	threshold := eval.Min + int64(b.Turn) + nearLossMargin
	return primaryScore < threshold
}
