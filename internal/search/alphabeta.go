package search

import (
	"time"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/movegen"
	"github.com/brensch/shapeshifter/internal/ttable"
)

// Searcher runs paranoid alpha-beta search over a board.Board, driven by
// Best Node Search at the root (bns.go). Grounded on
// original_source/src/minimax/mod.rs's ab_max/ab_min and
// original_source/src/minimax/ttable.rs; the teacher's maxn.go informed the
// recursive joint-move shape this generalizes from an N-way utility vector
// to a single paranoid (all-enemies-vs-us) score.
type Searcher struct {
	TT      *ttable.Table
	History *History
	Weights eval.Weights

	nodes int64
}

// NewSearcher builds a Searcher around the given transposition table with a
// fresh history heuristic; callers typically keep one per in-flight game
// (see search.Registry) so history carries over between turns.
func NewSearcher(tt *ttable.Table, cells int, weights eval.Weights) *Searcher {
	return &Searcher{TT: tt, History: NewHistory(cells), Weights: weights}
}

// Nodes returns how many tree nodes the most recent search(es) visited,
// for telemetry.
func (s *Searcher) Nodes() int64 { return s.nodes }

func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}

// abMax chooses our (snake 0's) move at a fully-resolved board position.
// qUsed tracks how many quiescence-extension plies have already been
// spent along this line, so the cap in quiescenceCap is enforced
// end-to-end rather than per-node.
func (s *Searcher) abMax(b *board.Board, depth, qUsed int, alpha, beta int64, deadline time.Time) (score int64, bestMove geometry.Direction, complete bool) {
	s.nodes++
	if term, ok := eval.Terminal(b); ok {
		return term, geometry.Up, true
	}
	if expired(deadline) {
		return 0, geometry.Up, false
	}

	useTT := depth > 0
	var ttHash uint64
	if useTT {
		ttHash = b.Hash()
		if e, ok := s.TT.Probe(ttHash); ok && e.Depth >= depth {
			switch e.Bound {
			case ttable.BoundExact:
				return e.Score, directionFromBits(e.BestMoves, 0), true
			case ttable.BoundLower:
				if e.Score >= beta {
					return e.Score, directionFromBits(e.BestMoves, 0), true
				}
			case ttable.BoundUpper:
				if e.Score <= alpha {
					return e.Score, directionFromBits(e.BestMoves, 0), true
				}
			}
		}
	}

	if depth <= 0 {
		if qUsed < quiescenceCap(b.Mode) && !isStable(b) {
			depth = 1
			qUsed++
		} else {
			return eval.Eval(b, s.Weights), geometry.Up, true
		}
	}

	moves := s.orderedOurMoves(b)
	origAlpha := alpha
	best := eval.Min - 1
	bestMove = moves[0]

	for _, m := range moves {
		childScore, childComplete := s.abMin(b, m, depth, qUsed, alpha, beta, deadline)
		if !childComplete {
			return 0, bestMove, false
		}
		if childScore > best {
			best = childScore
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.History.Bump(b.Snakes[0].Head, m, depth)
			break
		}
	}

	if useTT {
		bound := ttable.BoundExact
		switch {
		case best <= origAlpha:
			bound = ttable.BoundUpper
		case best >= beta:
			bound = ttable.BoundLower
		}
		s.TT.Store(ttHash, ttable.Entry{Depth: depth, Score: best, BestMoves: bitsFromDirection(bestMove), Bound: bound})
	}

	return best, bestMove, true
}

// abMin chooses the enemies' joint move in response to our already-chosen
// move, then applies the full turn and recurses into abMax one ply
// shallower. Both players having exactly one option (a forced sequence)
// does not consume depth, matching original_source's forcing-sequence
// extension: there is no real branching to pay for.
func (s *Searcher) abMin(b *board.Board, ourMove geometry.Direction, depth, qUsed int, alpha, beta int64, deadline time.Time) (int64, bool) {
	if expired(deadline) {
		return 0, false
	}

	enemies := aliveEnemyIndices(b)
	combos := movegen.LimitedMoveCombinations(b, enemies)

	ourMoves := s.orderedOurMoves(b)
	forced := len(ourMoves) == 1 && len(combos) == 1
	nextDepth := depth - 1
	if forced {
		nextDepth = depth
	}

	worst := eval.Max + 1
	for _, combo := range combos {
		full := buildFullMoves(b, ourMove, enemies, combo)
		child := b.Clone()
		child.ApplyMoves(full)

		childScore, _, complete := s.abMax(child, nextDepth, qUsed, alpha, beta, deadline)
		if !complete {
			return 0, false
		}
		if childScore < worst {
			worst = childScore
		}
		if worst < beta {
			beta = worst
		}
		if alpha >= beta {
			break
		}
	}
	return worst, true
}

func aliveEnemyIndices(b *board.Board) []int {
	var idx []int
	for i := 1; i < len(b.Snakes); i++ {
		if b.Snakes[i].Alive() {
			idx = append(idx, i)
		}
	}
	return idx
}

// buildFullMoves assembles one direction per snake (dead snakes get a
// placeholder board.ApplyMoves ignores) from our chosen move and the
// enemy combo indexed the same as enemies.
func buildFullMoves(b *board.Board, ourMove geometry.Direction, enemies []int, combo movegen.Combination) []geometry.Direction {
	full := make([]geometry.Direction, len(b.Snakes))
	full[0] = ourMove
	for k, idx := range enemies {
		full[idx] = combo[k]
	}
	return full
}

// orderedOurMoves returns snake 0's legal moves, best-guess-first: history
// heuristic score first, then local mobility as a tiebreak.
func (s *Searcher) orderedOurMoves(b *board.Board) []geometry.Direction {
	moves := movegen.AllowedMoves(b, 0)
	head := b.Snakes[0].Head
	return movegen.OrderMoves(moves, func(d geometry.Direction) int64 {
		hist := int64(s.History.Score(head, d))
		mobility := int64(movegen.LocalMobility(b, 0, d))
		return hist*16 + mobility
	})
}

// bitsFromDirection/directionFromBits store just the best move (snake 0's
// slot) in the transposition table's 16-bit best-moves field; the
// remaining bits are reserved for recording enemy best replies in a future
// refinement and are currently left zero.
func bitsFromDirection(d geometry.Direction) uint16 {
	return uint16(d)
}

func directionFromBits(bits uint16, snakeSlot int) geometry.Direction {
	return geometry.Direction((bits >> uint(snakeSlot*2)) & 0x3)
}
