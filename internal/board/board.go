// Package board implements spec.md §3's bit-packed game state and §4.3's
// move-application rules — the game simulator. It is the Go analogue of
// original_source/src/bitboard/mod.rs and src/bitboard/rules.rs, using a
// single runtime-parameterized representation (design note §9, option b)
// instead of per-shape monomorphized types.
package board

import (
	"github.com/brensch/shapeshifter/internal/bitset"
	"github.com/brensch/shapeshifter/internal/geometry"
)

// Mode is the closed gamemode enumeration spec.md §3 names as part of the
// board's type identity.
type Mode int

const (
	ModeStandard Mode = iota
	ModeWrapped
	ModeConstrictor
	ModeSpiralHazards
	ModeSinkholeHazards
	ModeArcadeMaze
	ModeIslandsBridges
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeWrapped:
		return "wrapped"
	case ModeConstrictor:
		return "constrictor"
	case ModeSpiralHazards:
		return "spiral-hazards"
	case ModeSinkholeHazards:
		return "sinkhole-hazards"
	case ModeArcadeMaze:
		return "arcade-maze"
	case ModeIslandsBridges:
		return "islands-bridges"
	default:
		return "unknown"
	}
}

// Snake is one player's record (spec.md §3).
type Snake struct {
	Head            int
	Tail            int
	Length          int
	Health          int
	CurledBodyParts int
}

// Alive reports whether the snake still has a body on the board.
func (s Snake) Alive() bool { return s.Health > 0 }

// Board is the central game-state entity (spec.md §3).
type Board struct {
	Width, Height int
	Wrap          bool
	HazardStack   bool
	Geo           *geometry.Tables

	// Bodies[0] is occupancy; Bodies[1] and Bodies[2] together encode, per
	// body cell, the 2-bit direction toward the next segment closer to the
	// head (spec.md §3 invariant 2).
	Bodies [3]bitset.Set

	Snakes []Snake

	Food       bitset.Set
	HazardMask bitset.Set
	// Hazards holds a per-cell stack count and is only allocated when
	// HazardStack is true (spec.md §3).
	Hazards   []uint8
	HazardDmg int

	Turn int
	Mode Mode

	// Mode-specific appendage state (spec.md §4.3).
	SpiralCenter     int
	SpiralExpansions int
	SinkholeRings    int
	SinkholeInterval int
}

// New allocates an empty board of the given shape. Callers populate Snakes,
// Food, and HazardMask afterward (see FromGameState).
func New(width, height int, wrap, hazardStack bool, mode Mode) *Board {
	n := width * height
	b := &Board{
		Width:       width,
		Height:      height,
		Wrap:        wrap,
		HazardStack: hazardStack,
		Geo:         geometry.For(width, height, wrap),
		Mode:        mode,
	}
	b.Bodies[0] = bitset.New(n)
	b.Bodies[1] = bitset.New(n)
	b.Bodies[2] = bitset.New(n)
	b.Food = bitset.New(n)
	b.HazardMask = bitset.New(n)
	if hazardStack {
		b.Hazards = make([]uint8, n)
	}
	return b
}

// Clone returns a deep, independent copy. Search explores many branches from
// one parent and must never mutate a node still referenced by a sibling.
func (b *Board) Clone() *Board {
	c := &Board{
		Width:            b.Width,
		Height:           b.Height,
		Wrap:             b.Wrap,
		HazardStack:      b.HazardStack,
		Geo:              b.Geo,
		Turn:             b.Turn,
		Mode:             b.Mode,
		HazardDmg:        b.HazardDmg,
		SpiralCenter:     b.SpiralCenter,
		SpiralExpansions: b.SpiralExpansions,
		SinkholeRings:    b.SinkholeRings,
		SinkholeInterval: b.SinkholeInterval,
	}
	c.Bodies[0] = b.Bodies[0].Clone()
	c.Bodies[1] = b.Bodies[1].Clone()
	c.Bodies[2] = b.Bodies[2].Clone()
	c.Food = b.Food.Clone()
	c.HazardMask = b.HazardMask.Clone()
	if b.Hazards != nil {
		c.Hazards = make([]uint8, len(b.Hazards))
		copy(c.Hazards, b.Hazards)
	}
	c.Snakes = make([]Snake, len(b.Snakes))
	copy(c.Snakes, b.Snakes)
	return c
}

// HazardCount returns how many hazard layers sit on cell, honoring whichever
// of HazardMask/Hazards this board tracks (spec.md §3 invariant 5).
func (b *Board) HazardCount(cell int) int {
	if b.HazardStack {
		return int(b.Hazards[cell])
	}
	if b.HazardMask.Get(cell) {
		return 1
	}
	return 0
}

// AddHazard marks cell hazardous, incrementing its stack count when the
// board tracks stacking hazards.
func (b *Board) AddHazard(cell int) {
	b.HazardMask.Set(cell)
	if b.HazardStack {
		b.Hazards[cell]++
	}
}

// AliveCount returns the number of snakes with Health > 0.
func (b *Board) AliveCount() int {
	n := 0
	for _, s := range b.Snakes {
		if s.Alive() {
			n++
		}
	}
	return n
}

// IsTerminal reports whether the game has ended: at most one snake left
// alive (spec.md §8, property 4 and the MaxN/MCTS terminal check).
func (b *Board) IsTerminal() bool {
	return b.AliveCount() <= 1
}

func (b *Board) directionAt(cell int) geometry.Direction {
	bit0 := b.Bodies[1].Get(cell)
	bit1 := b.Bodies[2].Get(cell)
	v := 0
	if bit0 {
		v |= 1
	}
	if bit1 {
		v |= 2
	}
	return geometry.Direction(v)
}

func (b *Board) setDirectionAt(cell int, dir geometry.Direction) {
	v := uint8(dir)
	b.Bodies[1].Set2(cell, v&1 != 0)
	b.Bodies[2].Set2(cell, v&2 != 0)
}

// nextBodySegment follows the direction plane at pos one step toward the
// head (spec.md §3 invariant 2).
func (b *Board) nextBodySegment(pos int) int {
	dir := b.directionAt(pos)
	dest, _ := b.Geo.Move(pos, dir)
	return dest
}

// killSnake marks a snake dead and clears every body cell it occupied, so
// the board-wide invariant "bodies[0] is the union of all live snakes'
// segments" (spec.md §3 invariant 1) holds even for a snake killed
// mid-resolution.
func (b *Board) killSnake(i int) {
	sn := &b.Snakes[i]
	if !sn.Alive() {
		return
	}
	pos := sn.Tail
	head := sn.Head
	for {
		next := b.nextBodySegment(pos)
		b.Bodies[0].Clear(pos)
		b.Bodies[1].Clear(pos)
		b.Bodies[2].Clear(pos)
		if pos == head {
			break
		}
		pos = next
	}
	sn.Health = -1
}

// WalkLength returns the number of steps from a snake's tail to its head
// following the direction planes; for every live snake this equals
// Length-1-CurledBodyParts (spec.md §8 property 2).
func (b *Board) WalkLength(i int) int {
	sn := b.Snakes[i]
	if !sn.Alive() {
		return 0
	}
	steps := 0
	pos := sn.Tail
	for pos != sn.Head {
		pos = b.nextBodySegment(pos)
		steps++
	}
	return steps
}
