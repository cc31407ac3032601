package notify

import "github.com/brensch/shapeshifter/internal/board"

// DescribeOutcome classifies how a finished game ended for snake 0 (us),
// adapted from the teacher's outcome.go describeGameOutcome: that version
// inspected the wire-level game-end payload to name an exact collision
// cause (wall, enemy body, self, starvation); board.Board only records
// that a snake died, not why, so this reports the coarser win/draw/loss
// split the board state can actually support.
func DescribeOutcome(b *board.Board) (Outcome, string) {
	us := b.Snakes[0]

	aliveOthers := 0
	for i := 1; i < len(b.Snakes); i++ {
		if b.Snakes[i].Alive() {
			aliveOthers++
		}
	}

	switch {
	case !us.Alive() && aliveOthers == 0:
		return Draw, "all snakes died"
	case !us.Alive():
		return Loss, "we died"
	case aliveOthers == 0:
		return Win, "we won"
	default:
		return Draw, "game ended with multiple snakes alive"
	}
}
