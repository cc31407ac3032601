// Package eval implements static position evaluation: flood-fill area
// control and the material features built on top of it, blended across the
// game's early/late phases, plus terminal scoring. Grounded on the
// teacher's GenerateVoronoiFlood (voronoi.go) — reimplemented as a
// bitset-shift wavefront instead of a point/queue BFS — and
// original_source/src/minimax/eval.rs's area_control and eval functions.
package eval

import (
	"github.com/brensch/shapeshifter/internal/bitset"
	"github.com/brensch/shapeshifter/internal/board"
)

// claim runs a simultaneous multi-source flood fill from every alive
// snake's head, one board cell per round, same as the teacher's
// GenerateVoronoiFlood: a cell that snake 0 and any enemy first reach on
// the same round belongs to no one and blocks further expansion; when only
// enemies tie, the longer snake claims it, and equal length keeps whichever
// snake holds the lower index.
func claim(b *board.Board, maxRounds int) []bitset.Set {
	n := b.Width * b.Height
	claimed := make([]bitset.Set, len(b.Snakes))
	frontier := make([]bitset.Set, len(b.Snakes))
	for i, sn := range b.Snakes {
		claimed[i] = bitset.New(n)
		if !sn.Alive() {
			frontier[i] = bitset.New(n)
			continue
		}
		claimed[i].Set(sn.Head)
		frontier[i] = bitset.WithBit(n, sn.Head)
	}

	assigned := bitset.New(n)
	for i := range b.Snakes {
		if b.Snakes[i].Alive() {
			assigned.Set(b.Snakes[i].Head)
		}
	}

	blocked := b.Bodies[0].Clone()

	anyFrontier := func() bool {
		for i := range b.Snakes {
			if b.Snakes[i].Alive() && frontier[i].Any() {
				return true
			}
		}
		return false
	}

	for round := 0; (maxRounds <= 0 || round < maxRounds) && anyFrontier(); round++ {
		candidates := make([]bitset.Set, len(b.Snakes))
		for i, sn := range b.Snakes {
			if !sn.Alive() {
				continue
			}
			nb := neighborsOf(b, frontier[i])
			candidates[i] = nb.AndNot(blocked).AndNot(assigned)
		}

		newlyAssigned := make([]bitset.Set, len(b.Snakes))
		for i := range b.Snakes {
			newlyAssigned[i] = bitset.New(n)
		}

		for cell := 0; cell < n; cell++ {
			winner := -1
			winnerLen := -1
			contenders := 0
			ours := false
			for i, sn := range b.Snakes {
				if !sn.Alive() {
					continue
				}
				if !candidates[i].Get(cell) {
					continue
				}
				contenders++
				if i == 0 {
					ours = true
				}
				if sn.Length > winnerLen {
					winner = i
					winnerLen = sn.Length
				}
			}
			if ours && contenders > 1 {
				assigned.Set(cell)
			} else if winner >= 0 {
				newlyAssigned[winner].Set(cell)
			}
		}

		progressed := false
		for i := range b.Snakes {
			if newlyAssigned[i].Any() {
				progressed = true
				claimed[i] = claimed[i].Or(newlyAssigned[i])
				assigned = assigned.Or(newlyAssigned[i])
			}
			frontier[i] = newlyAssigned[i]
		}
		if !progressed {
			break
		}
	}

	return claimed
}

// neighborsOf returns the set of cells orthogonally adjacent to any cell in
// s, honoring b's wrap setting via the precomputed edge masks — a bitset
// shift per direction instead of a per-cell loop.
func neighborsOf(b *board.Board, s bitset.Set) bitset.Set {
	w, h := b.Width, b.Height
	n := w * h
	geo := b.Geo

	up := s.AndNot(geo.Top).Shl(w)
	down := s.AndNot(geo.Bottom).Shr(w)
	right := s.And(geo.AllButRight).Shl(1)
	left := s.And(geo.AllButLeft).Shr(1)

	if b.Wrap {
		up = up.Or(s.And(geo.Top).Shr(w * (h - 1)))
		down = down.Or(s.And(geo.Bottom).Shl(w * (h - 1)))
		right = right.Or(s.And(geo.Right).Shr(w - 1))
		left = left.Or(s.And(geo.Left).Shl(w - 1))
	}

	result := up.Or(down).Or(right).Or(left)
	result.Mask(n)
	return result
}

// AreaControl returns, per snake index, the number of cells that snake's
// flood-fill wavefront claims across the whole board.
func AreaControl(b *board.Board) []int {
	claimed := claim(b, 0)
	counts := make([]int, len(claimed))
	for i, c := range claimed {
		counts[i] = c.CountOnes()
	}
	return counts
}

// NonHazardAreaControl is AreaControl restricted to cells outside the
// current hazard mask, the "non-hazard area difference" feature.
func NonHazardAreaControl(b *board.Board) []int {
	claimed := claim(b, 0)
	counts := make([]int, len(claimed))
	for i, c := range claimed {
		counts[i] = c.AndNot(b.HazardMask).CountOnes()
	}
	return counts
}

// FoodInArea returns, per snake, how many food cells fall inside that
// snake's claimed area — a proxy for contested food access.
func FoodInArea(b *board.Board) []int {
	claimed := claim(b, 0)
	counts := make([]int, len(claimed))
	for i, c := range claimed {
		counts[i] = c.And(b.Food).CountOnes()
	}
	return counts
}

// ReachWithin returns, per snake, how many cells it can claim within the
// given number of flood-fill rounds — a shallow "reach" metric distinct
// from full-board area control (spec.md's round-5 reach feature uses
// depth 5).
func ReachWithin(b *board.Board, depth int) []int {
	claimed := claim(b, depth)
	counts := make([]int, len(claimed))
	for i, c := range claimed {
		counts[i] = c.CountOnes()
	}
	return counts
}
