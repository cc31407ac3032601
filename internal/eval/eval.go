package eval

import "github.com/brensch/shapeshifter/internal/board"

// Min and Max bound the evaluation scale. Terminal scores sit just inside
// these bounds, offset by turn number, so search prefers a faster win and a
// slower loss among otherwise-equal terminal lines (spec.md §5's MIN+turn /
// MAX-turn terminal scoring, grounded on
// original_source/src/minimax/eval.rs's eval_terminal).
// The magnitude is kept well inside int16 range since internal/ttable
// packs scores into a 16-bit transposition table field.
const (
	Min int64 = -30_000
	Max int64 = 30_000
)

// horizonTurns is the turn count at which the game is considered fully
// "late"; before it, Eval linearly blends Early and Late PhaseWeights.
const horizonTurns = 150

// progression returns how far into the game b is, in [0, 1].
func progression(b *board.Board) float64 {
	f := float64(b.Turn) / float64(horizonTurns)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Terminal reports whether b is a finished game from snake 0's
// perspective, and if so, its score.
func Terminal(b *board.Board) (score int64, ok bool) {
	us := b.Snakes[0]
	enemiesAlive := 0
	for i := 1; i < len(b.Snakes); i++ {
		if b.Snakes[i].Alive() {
			enemiesAlive++
		}
	}
	if us.Alive() && enemiesAlive > 0 {
		return 0, false
	}
	if !us.Alive() && enemiesAlive > 0 {
		return Min + int64(b.Turn), true
	}
	if !us.Alive() && enemiesAlive == 0 {
		return 0, true
	}
	return Max - int64(b.Turn), true
}

// Eval scores board b from snake 0's perspective: a terminal score if the
// game has ended, otherwise the progression-blended weighted feature dot
// product (spec.md §5.2).
func Eval(b *board.Board, w Weights) int64 {
	if score, ok := Terminal(b); ok {
		return score
	}
	f := computeFeatures(b)
	p := progression(b)
	early := f.dot(w.Early)
	late := f.dot(w.Late)
	blended := early*(1-p) + late*p
	return clamp(int64(blended), Min+1, Max-1)
}

// clamp keeps non-terminal scores strictly inside [Min, Max] so they never
// collide with a terminal score's reserved range.
func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
