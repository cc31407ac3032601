package board

import "github.com/brensch/shapeshifter/internal/geometry"

// ApplyMoves advances the board by one turn given one direction per snake,
// indexed the same as b.Snakes (spec.md §4.3). Dead snakes' entries are
// ignored. The phases mirror original_source/src/bitboard/rules.rs: move
// heads, move tails (skipped in constrictor mode), health/food/hazard
// damage, collisions, finalize head placement, with gamemode-specific
// appendages layered on last. Tail cells are vacated in the move-tails
// phase; there is no separate tail-finalization phase.
func (b *Board) ApplyMoves(moves []geometry.Direction) {
	b.Turn++

	newHeads := make([]int, len(b.Snakes))

	b.moveHeads(moves, newHeads)

	if b.Mode != ModeConstrictor {
		b.moveTails()
	}

	b.updateHealth(newHeads)

	b.performCollisions(newHeads)

	b.finishHeadMovement(newHeads)

	b.growAppendages()
}

// moveHeads computes each live snake's candidate new head cell, writing the
// direction bit at the current head (so it becomes a regular body segment
// pointing toward the new head) and killing any snake whose move runs off a
// non-wrapping board.
func (b *Board) moveHeads(moves []geometry.Direction, newHeads []int) {
	for i := range b.Snakes {
		sn := &b.Snakes[i]
		if !sn.Alive() {
			newHeads[i] = sn.Head
			continue
		}
		dir := moves[i]
		dest, ok := b.Geo.Move(sn.Head, dir)
		if !ok {
			b.killSnake(i)
			newHeads[i] = sn.Head
			continue
		}
		b.setDirectionAt(sn.Head, dir)
		newHeads[i] = dest
	}
}

// moveTails advances each live snake's tail one segment toward the head,
// unless CurledBodyParts holds it in place (still unwinding from a previous
// meal) or it is a single-segment snake (tail and head coincide). The
// vacated cell is cleared immediately, which is what lets another snake's
// head move into the same cell this same turn.
func (b *Board) moveTails() {
	for i := range b.Snakes {
		sn := &b.Snakes[i]
		if !sn.Alive() {
			continue
		}
		if sn.CurledBodyParts > 0 {
			sn.CurledBodyParts--
			continue
		}
		if sn.Tail == sn.Head {
			continue
		}
		next := b.nextBodySegment(sn.Tail)
		b.Bodies[0].Clear(sn.Tail)
		b.Bodies[1].Clear(sn.Tail)
		b.Bodies[2].Clear(sn.Tail)
		sn.Tail = next
	}
}

// updateHealth applies the per-turn health decrement, hazard damage, and
// food consumption (spec.md §4.3 phase C). Eating resets health to 100,
// grows Length immediately, and adds a CurledBodyParts credit so moveTails
// holds the tail in place for one future turn instead of retracting it.
func (b *Board) updateHealth(newHeads []int) {
	for i := range b.Snakes {
		sn := &b.Snakes[i]
		if !sn.Alive() {
			continue
		}
		sn.Health--
		if b.HazardCount(newHeads[i]) > 0 {
			sn.Health -= b.HazardDmg
		}
		if b.Food.Get(newHeads[i]) {
			sn.Health = 100
			sn.Length++
			sn.CurledBodyParts++
			b.Food.Clear(newHeads[i])
		}
		if sn.Health <= 0 {
			b.killSnake(i)
		}
	}
}

// performCollisions resolves head-to-head and head-to-body collisions
// simultaneously against the already-advanced board (spec.md §4.3 phase D,
// Open Question resolved: mutual head-to-head collisions kill both
// snakes). moveTails already cleared any vacated tail cell, so a body
// collision check here naturally excludes cells vacated this turn.
//
// Resolution is two-phase (mark, then sweep), mirroring
// original_source/src/bitboard/rules.rs's perform_collisions use of
// curled_bodyparts==100 as a removal marker: killing a snake clears its
// body bits and Alive(), so doing it inline mid-loop would let a later
// iteration see an already-vacated board and miss a collision (an
// equal-length head-to-head would only kill one side, and a body
// collision into a snake killed earlier in the same pass would vanish).
func (b *Board) performCollisions(newHeads []int) {
	dead := make([]bool, len(b.Snakes))

	for i := range b.Snakes {
		si := &b.Snakes[i]
		if !si.Alive() {
			continue
		}
		headI := newHeads[i]

		if b.Bodies[0].Get(headI) {
			dead[i] = true
			continue
		}

		for j := range b.Snakes {
			if j == i || !b.Snakes[j].Alive() {
				continue
			}
			if newHeads[j] != headI {
				continue
			}
			if b.Snakes[j].Length >= si.Length {
				dead[i] = true
				break
			}
		}
	}

	for i, d := range dead {
		if d {
			b.killSnake(i)
		}
	}
}

// finishHeadMovement adds each surviving snake's new head to the occupancy
// plane and updates its Head field (spec.md §4.3 phase E). Dead snakes never
// get a head bit added, preserving invariant 1.
func (b *Board) finishHeadMovement(newHeads []int) {
	for i := range b.Snakes {
		sn := &b.Snakes[i]
		if !sn.Alive() {
			continue
		}
		b.Bodies[0].Set(newHeads[i])
		sn.Head = newHeads[i]
	}
}

// growAppendages applies mode-specific post-move board mutation: the spiral
// and sinkhole gamemodes periodically expand hazard coverage outward from a
// fixed center (spec.md §4.3).
func (b *Board) growAppendages() {
	switch b.Mode {
	case ModeSpiralHazards:
		b.growSpiralHazards()
	case ModeSinkholeHazards:
		b.growSinkholeHazards()
	}
}

func (b *Board) growSpiralHazards() {
	const turnsPerStep = 3
	if b.Turn%turnsPerStep != 0 {
		return
	}
	if b.SpiralExpansions >= len(geometry.HazardSpiral) {
		return
	}
	cx, cy := b.SpiralCenter%b.Width, b.SpiralCenter/b.Width
	off := geometry.HazardSpiral[b.SpiralExpansions]
	x, y := cx+off.DX, cy+off.DY
	if x >= 0 && x < b.Width && y >= 0 && y < b.Height {
		b.AddHazard(y*b.Width + x)
	}
	b.SpiralExpansions++
}

func (b *Board) growSinkholeHazards() {
	const turnsPerRing = 20
	if b.SinkholeInterval <= 0 {
		b.SinkholeInterval = turnsPerRing
	}
	// Starts expanding on turn 1, not turn 0 (inc_sinkholes_hazards uses
	// start_turn=1 against the already-incremented board.turn).
	if (b.Turn-1)%b.SinkholeInterval != 0 {
		return
	}

	cx, cy := b.SpiralCenter%b.Width, b.SpiralCenter/b.Width
	ring := b.SinkholeRings
	if ring == 0 {
		b.AddHazard(cy*b.Width + cx)
		b.SinkholeRings++
		return
	}
	for x := cx - ring; x <= cx+ring; x++ {
		for y := cy - ring; y <= cy+ring; y++ {
			if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
				continue
			}
			onRing := abs(x-cx) == ring || abs(y-cy) == ring
			corner := abs(x-cx) == ring && abs(y-cy) == ring
			if !onRing || corner {
				continue // omit the four square corners for a rounded shape
			}
			b.AddHazard(y*b.Width + x)
		}
	}
	b.SinkholeRings++
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
