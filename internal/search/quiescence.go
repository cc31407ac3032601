package search

import (
	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/geometry"
)

// quiescenceCap bounds how many extra plies the leaf-stability check may
// extend a line by, per gamemode. Standard and islands-bridges boards
// reward looking past a nearby enemy head; arcade-maze's narrow corridors
// reward looking past a branch point; spiral/sinkhole hazard boards, where
// the hazard layer itself already destabilizes static eval, get a much
// shorter allowance. Grounded on original_source/src/minimax/mod.rs's
// per-gamemode quiescence tables.
func quiescenceCap(mode board.Mode) int {
	switch mode {
	case board.ModeStandard, board.ModeIslandsBridges:
		return 5
	case board.ModeArcadeMaze:
		return 20
	case board.ModeSpiralHazards, board.ModeSinkholeHazards, board.ModeWrapped:
		return 3
	default:
		return 0
	}
}

// isStable reports whether b's position is "quiet" enough to trust a
// static evaluation, per gamemode.
func isStable(b *board.Board) bool {
	switch b.Mode {
	case board.ModeStandard, board.ModeIslandsBridges:
		return noEnemyHeadWithin(b, 3)
	case board.ModeArcadeMaze:
		return totalMoveChoices(b) > 2
	case board.ModeSpiralHazards, board.ModeSinkholeHazards, board.ModeWrapped:
		return noCurledSegments(b) && noAdjacentFood(b)
	default:
		return true
	}
}

func noEnemyHeadWithin(b *board.Board, manhattan int) bool {
	us := b.Snakes[0]
	hx, hy := us.Head%b.Width, us.Head/b.Width
	for i := 1; i < len(b.Snakes); i++ {
		e := b.Snakes[i]
		if !e.Alive() {
			continue
		}
		ex, ey := e.Head%b.Width, e.Head/b.Width
		d := absInt(hx-ex) + absInt(hy-ey)
		if d <= manhattan {
			return false
		}
	}
	return true
}

func totalMoveChoices(b *board.Board) int {
	total := 0
	for _, sn := range b.Snakes {
		if !sn.Alive() {
			continue
		}
		for _, d := range geometry.All {
			if _, ok := b.Geo.Move(sn.Head, d); ok {
				total++
			}
		}
	}
	return total
}

func noCurledSegments(b *board.Board) bool {
	for _, sn := range b.Snakes {
		if sn.Alive() && sn.CurledBodyParts > 0 {
			return false
		}
	}
	return true
}

func noAdjacentFood(b *board.Board) bool {
	for _, sn := range b.Snakes {
		if !sn.Alive() {
			continue
		}
		for _, d := range geometry.All {
			if dest, ok := b.Geo.Move(sn.Head, d); ok && b.Food.Get(dest) {
				return false
			}
		}
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
