package board

import (
	"strings"

	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/protocol"
)

// modeFromRuleset dispatches on ruleset name and map tag the same way
// original_source/src/bitboard/rules.rs's attach_rules match expression
// does, choosing both a Mode and whether the board wraps.
func modeFromRuleset(rulesetName, mapName string) (mode Mode, wrap bool) {
	switch rulesetName {
	case "constrictor":
		return ModeConstrictor, false
	case "wrapped-constrictor":
		return ModeConstrictor, true
	case "wrapped":
		wrap = true
	}
	switch mapName {
	case "hz_spiral", "hz_spiral_bridges":
		return ModeSpiralHazards, wrap
	case "sinkholes":
		return ModeSinkholeHazards, wrap
	case "arcade_maze":
		return ModeArcadeMaze, wrap
	case "hz_islands_bridges":
		return ModeIslandsBridges, wrap
	}
	if wrap {
		return ModeWrapped, true
	}
	return ModeStandard, false
}

// cellOf converts wire (x, y) coordinates, (0,0) at bottom-left, to a
// row-major cell index.
func cellOf(width int, p protocol.Point) int {
	return p.Y*width + p.X
}

// FromGameState builds a Board from one turn's wire state. Its Snakes keep
// the order of state.Board.Snakes, except that "you" is always placed first so paranoid search (spec.md §5.3) can treat index 0
// as the maximizing player uniformly.
func FromGameState(state protocol.GameState) *Board {
	mode, wrap := modeFromRuleset(state.Game.Ruleset.Name, state.Game.Map)
	hazardStack := strings.Contains(state.Game.Map, "sinkhole") || mode == ModeSinkholeHazards

	b := New(state.Board.Width, state.Board.Height, wrap, hazardStack, mode)
	b.HazardDmg = state.Game.Ruleset.Settings.HazardDamagePerTurn
	if b.HazardDmg == 0 {
		b.HazardDmg = 14
	}
	b.Turn = state.Turn

	for _, p := range state.Board.Food {
		b.Food.Set(cellOf(b.Width, p))
	}
	for i, p := range state.Board.Hazards {
		cell := cellOf(b.Width, p)
		b.AddHazard(cell)
		if i == 0 {
			// The spiral/sinkhole gamemodes grow outward from the first
			// hazard cell the wire state reports (original_source's
			// rules.rs derives center the same way for hz_spiral).
			b.SpiralCenter = cell
		}
	}

	ordered := orderSnakesYouFirst(state)
	b.Snakes = make([]Snake, len(ordered))
	for i, wire := range ordered {
		b.Snakes[i] = snakeFromWire(b, wire)
	}

	return b
}

// orderSnakesYouFirst returns the wire snake list with state.You moved to
// index 0, preserving the relative order of the rest.
func orderSnakesYouFirst(state protocol.GameState) []protocol.Snake {
	out := make([]protocol.Snake, 0, len(state.Board.Snakes))
	out = append(out, state.You)
	for _, s := range state.Board.Snakes {
		if s.ID == state.You.ID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// snakeFromWire converts one wire snake into a Snake record, setting its
// body occupancy and direction planes on b, and deriving CurledBodyParts
// from consecutive duplicate trailing points (a snake that just ate reports
// its tail cell twice).
func snakeFromWire(b *Board, wire protocol.Snake) Snake {
	cells := make([]int, len(wire.Body))
	for i, p := range wire.Body {
		cells[i] = cellOf(b.Width, p)
	}

	curled := 0
	for i := len(cells) - 1; i > 0 && cells[i] == cells[i-1]; i-- {
		curled++
	}

	// cells is head-first; walk head -> tail writing the direction each
	// segment points toward the segment closer to the head (i.e. the
	// previous element in this head-first slice).
	seen := map[int]bool{}
	for i, c := range cells {
		if seen[c] {
			continue // duplicate curled tail cell, bits already written
		}
		seen[c] = true
		b.Bodies[0].Set(c)
		if i == 0 {
			continue // head's direction bits are written by moveHeads next turn
		}
		dir := directionBetween(b.Geo, c, cells[i-1])
		b.setDirectionAt(c, dir)
	}

	tail := cells[len(cells)-1]
	return Snake{
		Head:            cells[0],
		Tail:            tail,
		Length:          wire.Length,
		Health:          wire.Health,
		CurledBodyParts: curled,
	}
}

// directionBetween finds which of the four directions steps from `from` to
// `to` on b's geometry; the two cells are always orthogonally adjacent
// (possibly wrapping) because they are consecutive body segments.
func directionBetween(geo *geometry.Tables, from, to int) geometry.Direction {
	for _, d := range geometry.All {
		if dest, ok := geo.Move(from, d); ok && dest == to {
			return d
		}
	}
	return geometry.Up
}

// ToGameState renders a Board back into the board-literal wire format,
// losslessly modulo snake identity strings (spec.md §6), by walking each
// live snake's body from tail to head via its direction planes.
func ToGameState(b *Board, ids []string) protocol.GameState {
	gs := protocol.GameState{
		Turn: b.Turn,
		Board: protocol.Board{
			Height: b.Height,
			Width:  b.Width,
		},
	}
	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.Food.Get(cell) {
			gs.Board.Food = append(gs.Board.Food, pointOf(b.Width, cell))
		}
		if b.HazardMask.Get(cell) {
			gs.Board.Hazards = append(gs.Board.Hazards, pointOf(b.Width, cell))
		}
	}
	for i, sn := range b.Snakes {
		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		wire := protocol.Snake{
			ID:     id,
			Health: sn.Health,
			Length: sn.Length,
		}
		if sn.Alive() {
			wire.Head = pointOf(b.Width, sn.Head)
			body := walkBody(b, sn)
			wire.Body = body
			for k := 0; k < sn.CurledBodyParts; k++ {
				wire.Body = append(wire.Body, wire.Body[len(wire.Body)-1])
			}
		}
		gs.Board.Snakes = append(gs.Board.Snakes, wire)
		if i == 0 {
			gs.You = wire
		}
	}
	return gs
}

func walkBody(b *Board, sn Snake) []protocol.Point {
	var cells []int
	pos := sn.Head
	cells = append(cells, pos)
	for pos != sn.Tail {
		pos = tailwardStep(b, pos)
		cells = append(cells, pos)
	}
	pts := make([]protocol.Point, len(cells))
	for i, c := range cells {
		pts[i] = pointOf(b.Width, c)
	}
	return pts
}

// tailwardStep finds the body neighbor of pos whose direction bits point
// back at pos, i.e. one step toward the tail.
func tailwardStep(b *Board, pos int) int {
	for _, d := range geometry.All {
		dest, ok := b.Geo.Move(pos, d)
		if !ok || !b.Bodies[0].Get(dest) {
			continue
		}
		if b.nextBodySegment(dest) == pos {
			return dest
		}
	}
	return pos
}

func pointOf(width, cell int) protocol.Point {
	return protocol.Point{X: cell % width, Y: cell / width}
}
