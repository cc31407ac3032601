package search

import (
	"time"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/geometry"
)

// Decide runs iterative-deepening Best Node Search and returns the move it
// settled on for the deadline given, along with the deepest depth
// completed and the score of the chosen move from snake 0's perspective.
// Grounded on original_source/src/minimax/mod.rs's iterative-deepening
// driver and next_bns_guess. If even depth 1 cannot complete before the
// deadline, it falls back to the first ordered candidate move so a caller
// never receives an empty decision.
func (s *Searcher) Decide(b *board.Board, deadline time.Time) (move geometry.Direction, depthReached int, score int64) {
	candidates := s.orderedOurMoves(b)
	move = candidates[0]

	// A single legal move needs no search: there is nothing to choose
	// between (testable property 7: ≤1 unit of work, depth 0).
	if len(candidates) == 1 {
		return candidates[0], 0, eval.Eval(b, s.Weights)
	}

	for depth := 1; ; depth++ {
		m, sc, complete := s.bnsAtDepth(b, depth, deadline)
		if !complete {
			break
		}
		move, score, depthReached = m, sc, depth
		if expired(deadline) {
			break
		}
	}
	return move, depthReached, score
}

// nextGuess picks the null-window test value Best Node Search probes next:
// a fractional point between alpha and beta weighted by how many
// candidates remain: with r candidates the test sits (r-1)/r of the way
// from alpha to beta, so a wide field gets a test close to beta and two
// candidates get the midpoint.
func nextGuess(alpha, beta int64, remaining int) int64 {
	if remaining <= 1 {
		return beta
	}
	return alpha + (beta-alpha)*int64(remaining-1)/int64(remaining)
}

// bnsAtDepth runs one full Best Node Search pass at a fixed depth: each
// round, every still-live candidate move gets a null-window test against a
// shared guess; candidates that fail are eliminated, candidates that pass
// narrow the window, until one move remains.
func (s *Searcher) bnsAtDepth(b *board.Board, depth int, deadline time.Time) (geometry.Direction, int64, bool) {
	candidates := s.orderedOurMoves(b)
	if len(candidates) == 1 {
		score, complete := s.abMin(b, candidates[0], depth, 0, eval.Min, eval.Max, deadline)
		return candidates[0], score, complete
	}

	alpha, beta := eval.Min, eval.Max
	best := candidates[0]
	bestScore := eval.Min - 1

	for len(candidates) > 1 {
		if expired(deadline) {
			return best, bestScore, false
		}
		test := nextGuess(alpha, beta, len(candidates))

		var passed []geometry.Direction
		for _, m := range candidates {
			score, complete := s.abMin(b, m, depth, 0, test-1, test, deadline)
			if !complete {
				return best, bestScore, false
			}
			if score > bestScore {
				bestScore = score
				best = m
			}
			if score >= test {
				passed = append(passed, m)
			}
		}

		switch {
		case len(passed) == 0:
			beta = test
		default:
			candidates = passed
			alpha = test
		}
		if beta <= alpha+1 {
			break
		}
	}

	finalScore, complete := s.abMin(b, candidates[0], depth, 0, eval.Min, eval.Max, deadline)
	if !complete {
		return best, bestScore, false
	}
	return candidates[0], finalScore, true
}
