// Package movegen enumerates legal moves per snake and combines them into
// joint-move tuples for search, generalizing the teacher's
// generateAllMoves/generatePermutations (board.go) from a list-of-points
// board to the bit-packed board.Board, and adding the hazard-aware and
// history-ordered variants original_source/src/bitboard/move_gen.rs layers
// on top (allowed_moves, ordered_allowed_moves, limited_move_combinations).
package movegen

import (
	"sort"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/geometry"
)

// lowHealthThreshold is the health at or below which a snake prefers stepping
// around hazard cells even at the cost of a shorter path, mirroring the
// teacher's risk-averse low-health behavior.
const lowHealthThreshold = 35

// tailWillVacate reports whether snake i's tail cell will be cleared this
// turn by board.ApplyMoves's move-tails phase, which is exactly when a head
// move into that cell is legal.
func tailWillVacate(b *board.Board, i int) bool {
	sn := b.Snakes[i]
	return sn.CurledBodyParts == 0 && sn.Tail != sn.Head
}

func tailIndexAt(b *board.Board, cell int) (int, bool) {
	for i, sn := range b.Snakes {
		if sn.Alive() && sn.Tail == cell {
			return i, true
		}
	}
	return 0, false
}

// AllowedMoves returns the directions snake i may safely take this turn:
// on-board, not into a body segment that will still be occupied after the
// move (a vacating tail is fine), and — when the snake's health is low —
// preferring cells that are not currently hazardous. If every candidate
// would be fatal, it falls back to every on-board direction so callers
// always receive a non-empty candidate set.
func AllowedMoves(b *board.Board, i int) []geometry.Direction {
	sn := b.Snakes[i]

	var onBoard []geometry.Direction
	var safe []geometry.Direction
	for _, d := range geometry.All {
		dest, ok := b.Geo.Move(sn.Head, d)
		if !ok {
			continue
		}
		onBoard = append(onBoard, d)

		if b.Bodies[0].Get(dest) {
			if owner, ok := tailIndexAt(b, dest); ok && tailWillVacate(b, owner) {
				safe = append(safe, d)
			}
			continue
		}
		safe = append(safe, d)
	}

	if len(safe) == 0 {
		if len(onBoard) == 0 {
			return []geometry.Direction{geometry.Up}
		}
		return onBoard
	}

	if sn.Health <= lowHealthThreshold {
		var noHazard []geometry.Direction
		for _, d := range safe {
			dest, _ := b.Geo.Move(sn.Head, d)
			if b.HazardCount(dest) == 0 {
				noHazard = append(noHazard, d)
			}
		}
		if len(noHazard) > 0 {
			return noHazard
		}
	}

	return safe
}

// LocalMobility counts how many of the four neighbors of the cell reached
// by (i, d) are themselves free of any body occupancy, a cheap one-ply
// lookahead used to break ties when ordering moves toward open space.
func LocalMobility(b *board.Board, i int, d geometry.Direction) int {
	sn := b.Snakes[i]
	dest, ok := b.Geo.Move(sn.Head, d)
	if !ok {
		return 0
	}
	n := 0
	for _, d2 := range geometry.All {
		next, ok := b.Geo.Move(dest, d2)
		if ok && !b.Bodies[0].Get(next) {
			n++
		}
	}
	return n
}

// OrderMoves sorts moves by descending score, where higher-scored moves are
// tried first. Ties keep their relative input order (stable sort), so a
// caller that already sorted by one criterion can layer a second.
func OrderMoves(moves []geometry.Direction, score func(geometry.Direction) int64) []geometry.Direction {
	ordered := make([]geometry.Direction, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(a, bIdx int) bool {
		return score(ordered[a]) > score(ordered[bIdx])
	})
	return ordered
}

// Combination is one joint move: one direction per snake, indexed the same
// as board.Board.Snakes.
type Combination []geometry.Direction

// AllCombinations returns the full Cartesian product of each alive snake's
// allowed moves, generalizing the teacher's generatePermutations. Dead
// snakes get a placeholder direction that board.ApplyMoves ignores.
func AllCombinations(b *board.Board) []Combination {
	perSnake := make([][]geometry.Direction, len(b.Snakes))
	for i, sn := range b.Snakes {
		if !sn.Alive() {
			perSnake[i] = []geometry.Direction{geometry.Up}
			continue
		}
		perSnake[i] = AllowedMoves(b, i)
	}
	return cartesian(perSnake)
}

func cartesian(perSnake [][]geometry.Direction) []Combination {
	if len(perSnake) == 0 {
		return nil
	}
	result := []Combination{{}}
	for _, moves := range perSnake {
		next := make([]Combination, 0, len(result)*len(moves))
		for _, partial := range result {
			for _, m := range moves {
				c := make(Combination, len(partial), len(partial)+1)
				copy(c, partial)
				next = append(next, append(c, m))
			}
		}
		result = next
	}
	return result
}

// LimitedMoveCombinations returns at most 4 joint-move tuples for the given
// enemies (indices into b.Snakes, excluding the searching snake) such that
// every individual legal move of every enemy appears in at least one
// tuple, bounding paranoid search's branching factor while still exposing
// every enemy option to some line of play. The cap of 4 falls out of there
// being at most 4 cardinal directions: zipping each enemy's move list
// against a shared tuple index, cycling short lists, covers every move by
// the time the index reaches the longest list's length.
func LimitedMoveCombinations(b *board.Board, enemies []int) []Combination {
	if len(enemies) == 0 {
		return []Combination{{}}
	}
	perEnemy := make([][]geometry.Direction, len(enemies))
	maxLen := 0
	for k, idx := range enemies {
		if !b.Snakes[idx].Alive() {
			perEnemy[k] = []geometry.Direction{geometry.Up}
		} else {
			perEnemy[k] = AllowedMoves(b, idx)
		}
		if len(perEnemy[k]) > maxLen {
			maxLen = len(perEnemy[k])
		}
	}

	combos := make([]Combination, maxLen)
	for t := 0; t < maxLen; t++ {
		c := make(Combination, len(enemies))
		for k, moves := range perEnemy {
			c[k] = moves[t%len(moves)]
		}
		combos[t] = c
	}
	return combos
}
