// Package geometry precomputes the board-shape tables the engine needs for a
// given (width, height, wrap) tuple: edge masks and a per-cell move table.
// spec.md ties these to board "type identity" fixed at construction time;
// design note §9 allows a single runtime-parameterized table (option b) in
// place of per-shape monomorphized code, which is what this package does.
//
// Grounded on original_source/src/bitboard/constants.rs (border_mask,
// vertical_edge_mask, horizontal_edge_mask, precompute_moves,
// precompute_hazard_spiral).
package geometry

import "github.com/brensch/shapeshifter/internal/bitset"

// Direction is one of the four cardinal moves. The integer values match the
// 2-bit encoding the board's direction planes use (spec.md §3, Bodies[1..2]).
type Direction uint8

const (
	Up Direction = iota
	Down
	Right
	Left
)

// All enumerates the four directions in the canonical order used throughout
// move generation.
var All = [4]Direction{Up, Down, Right, Left}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "unset"
	}
}

// Tables holds every precomputed geometry fact for one (W, H, wrap) shape.
type Tables struct {
	Width, Height int
	Wrap          bool

	FullBoardMask bitset.Set
	Top           bitset.Set
	Bottom        bitset.Set
	Left          bitset.Set
	Right         bitset.Set
	AllButLeft    bitset.Set
	AllButRight   bitset.Set

	// MovesFrom[cell][dir] is the destination cell, or -1 if the move runs
	// off a non-wrapping board.
	MovesFrom [][4]int
}

// cache avoids recomputing tables for the handful of board shapes a process
// actually dispatches to.
var cache = map[key]*Tables{}

type key struct {
	w, h int
	wrap bool
}

// For returns the (possibly cached) geometry tables for a shape.
func For(width, height int, wrap bool) *Tables {
	k := key{width, height, wrap}
	if t, ok := cache[k]; ok {
		return t
	}
	t := build(width, height, wrap)
	cache[k] = t
	return t
}

func build(w, h int, wrap bool) *Tables {
	n := w * h
	t := &Tables{Width: w, Height: h, Wrap: wrap}

	t.FullBoardMask = bitset.New(n)
	for i := 0; i < n; i++ {
		t.FullBoardMask.Set(i)
	}

	t.Top = bitset.New(n)
	t.Bottom = bitset.New(n)
	for x := 0; x < w; x++ {
		t.Top.Set((h-1)*w + x)
		t.Bottom.Set(x)
	}

	t.Left = bitset.New(n)
	t.Right = bitset.New(n)
	t.AllButLeft = bitset.New(n)
	t.AllButRight = bitset.New(n)
	for y := 0; y < h; y++ {
		t.Left.Set(y * w)
		t.Right.Set(y*w + w - 1)
		for x := 1; x < w; x++ {
			t.AllButLeft.Set(y*w + x)
		}
		for x := 0; x < w-1; x++ {
			t.AllButRight.Set(y*w + x)
		}
	}

	t.MovesFrom = make([][4]int, n)
	for pos := 0; pos < n; pos++ {
		if wrap {
			t.MovesFrom[pos][Up] = (pos + w) % n
			if w > pos {
				t.MovesFrom[pos][Down] = w*(h-1) + pos
			} else {
				t.MovesFrom[pos][Down] = pos - w
			}
			if pos%w == w-1 {
				t.MovesFrom[pos][Right] = pos - (w - 1)
			} else {
				t.MovesFrom[pos][Right] = pos + 1
			}
			if pos%w == 0 {
				t.MovesFrom[pos][Left] = pos + (w - 1)
			} else {
				t.MovesFrom[pos][Left] = pos - 1
			}
			continue
		}
		if pos < w*(h-1) {
			t.MovesFrom[pos][Up] = pos + w
		} else {
			t.MovesFrom[pos][Up] = -1
		}
		if pos >= w {
			t.MovesFrom[pos][Down] = pos - w
		} else {
			t.MovesFrom[pos][Down] = -1
		}
		if pos%w < w-1 {
			t.MovesFrom[pos][Right] = pos + 1
		} else {
			t.MovesFrom[pos][Right] = -1
		}
		if pos%w > 0 {
			t.MovesFrom[pos][Left] = pos - 1
		} else {
			t.MovesFrom[pos][Left] = -1
		}
	}

	return t
}

// Move returns the destination cell for (cell, dir) and whether the move
// stays on the board.
func (t *Tables) Move(cell int, dir Direction) (int, bool) {
	dest := t.MovesFrom[cell][dir]
	return dest, dest >= 0
}

// HazardSpiralOffset is one (dx, dy) step of the 144-entry clockwise spiral
// hazard-expansion table used by the spiral-hazard gamemode (spec.md §4.3).
type HazardSpiralOffset struct{ DX, DY int }

// HazardSpiral is the fixed 144-entry clockwise spiral starting at the
// origin, copied verbatim from original_source/src/bitboard/constants.rs
// (precompute_hazard_spiral); it is a fixed lookup table, not something to
// recompute per board shape.
var HazardSpiral = [144]HazardSpiralOffset{
	{0, 0}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {-1, 2},
	{0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {2, -1}, {2, -2}, {1, -2}, {0, -2}, {-1, -2},
	{-2, -2}, {-2, -1}, {-2, 0}, {-2, 1}, {-2, 2}, {-2, 3}, {-1, 3}, {0, 3}, {1, 3}, {2, 3},
	{3, 3}, {3, 2}, {3, 1}, {3, 0}, {3, -1}, {3, -2}, {3, -3}, {2, -3}, {1, -3}, {0, -3},
	{-1, -3}, {-2, -3}, {-3, -3}, {-3, -2}, {-3, -1}, {-3, 0}, {-3, 1}, {-3, 2}, {-3, 3}, {-3, 4},
	{-2, 4}, {-1, 4}, {0, 4}, {1, 4}, {2, 4}, {3, 4}, {4, 4}, {4, 3}, {4, 2}, {4, 1},
	{4, 0}, {4, -1}, {4, -2}, {4, -3}, {4, -4}, {3, -4}, {2, -4}, {1, -4}, {0, -4}, {-1, -4},
	{-2, -4}, {-3, -4}, {-4, -4}, {-4, -3}, {-4, -2}, {-4, -1}, {-4, 0}, {-4, 1}, {-4, 2}, {-4, 3},
	{-4, 4}, {-4, 5}, {-3, 5}, {-2, 5}, {-1, 5}, {0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5},
	{5, 5}, {5, 4}, {5, 3}, {5, 2}, {5, 1}, {5, 0}, {5, -1}, {5, -2}, {5, -3}, {5, -4},
	{5, -5}, {4, -5}, {3, -5}, {2, -5}, {1, -5}, {0, -5}, {-1, -5}, {-2, -5}, {-3, -5}, {-4, -5},
	{-5, -5}, {-5, -4}, {-5, -3}, {-5, -2}, {-5, -1}, {-5, 0}, {-5, 1}, {-5, 2}, {-5, 3}, {-5, 4},
	{-5, 5}, {-5, 6}, {-4, 6}, {-3, 6}, {-2, 6}, {-1, 6}, {0, 6}, {1, 6}, {2, 6}, {3, 6},
	{4, 6}, {5, 6}, {6, 6}, {6, 5}, {6, 4}, {6, 3}, {6, 2}, {6, 1}, {6, 0}, {6, -1},
	{6, -2}, {6, -3}, {6, -4}, {6, -5},
}
