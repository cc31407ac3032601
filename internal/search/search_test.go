package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/protocol"
	"github.com/brensch/shapeshifter/internal/ttable"
)

func duelState() protocol.GameState {
	us := protocol.Snake{ID: "us", Health: 100, Length: 3, Head: protocol.Point{X: 2, Y: 2},
		Body: []protocol.Point{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}}}
	enemy := protocol.Snake{ID: "enemy", Health: 100, Length: 3, Head: protocol.Point{X: 8, Y: 8},
		Body: []protocol.Point{{X: 8, Y: 8}, {X: 8, Y: 7}, {X: 8, Y: 6}}}
	return protocol.GameState{
		Game:  protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{Width: 11, Height: 11, Food: []protocol.Point{{X: 5, Y: 5}}, Snakes: []protocol.Snake{us, enemy}},
		You:   us,
	}
}

func newSearcher(b *board.Board) *Searcher {
	return NewSearcher(ttable.New(), b.Width*b.Height, eval.DefaultWeights())
}

func TestDecideReturnsLegalMove(t *testing.T) {
	b := board.FromGameState(duelState())
	s := newSearcher(b)
	move, depth, _ := s.Decide(b, time.Now().Add(200*time.Millisecond))
	assert.GreaterOrEqual(t, depth, 1)
	found := false
	for _, m := range movegenAllowed(b) {
		if m == move {
			found = true
		}
	}
	assert.True(t, found)
}

func movegenAllowed(b *board.Board) []geometry.Direction {
	s := NewSearcher(ttable.New(), b.Width*b.Height, eval.DefaultWeights())
	return s.orderedOurMoves(b)
}

func TestDecideRespectsImmediateDeadline(t *testing.T) {
	b := board.FromGameState(duelState())
	s := newSearcher(b)
	move, _, _ := s.Decide(b, time.Now().Add(-time.Second))
	assert.Contains(t, movegenAllowed(b), move)
}

func TestAbMaxTerminalShortCircuits(t *testing.T) {
	b := board.FromGameState(duelState())
	b.Snakes[1].Health = -1 // enemy already dead
	s := newSearcher(b)
	score, _, complete := s.abMax(b, 4, 0, eval.Min, eval.Max, time.Time{})
	assert.True(t, complete)
	assert.Equal(t, eval.Max-int64(b.Turn), score)
}

func TestHistoryAccumulatesAcrossDepths(t *testing.T) {
	b := board.FromGameState(duelState())
	s := newSearcher(b)
	s.Decide(b, time.Now().Add(100*time.Millisecond))
	total := uint64(0)
	for cell := 0; cell < b.Width*b.Height; cell++ {
		for _, d := range geometry.All {
			total += s.History.Score(cell, d)
		}
	}
	assert.Greater(t, total, uint64(0))
}

func cornerTrappedState() protocol.GameState {
	// Our snake fills column x=3 of a 4-wide board top to bottom: Up and
	// Right run off the board, Down is blocked by our own body, leaving
	// Left as the only legal move.
	us := protocol.Snake{ID: "us", Health: 100, Length: 5, Head: protocol.Point{X: 3, Y: 4},
		Body: []protocol.Point{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 3, Y: 0}}}
	enemy := protocol.Snake{ID: "enemy", Health: 100, Length: 1, Head: protocol.Point{X: 0, Y: 0},
		Body: []protocol.Point{{X: 0, Y: 0}}}
	return protocol.GameState{
		Game:  protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{Width: 4, Height: 5, Snakes: []protocol.Snake{us, enemy}},
		You:   us,
	}
}

func TestDecideShortCircuitsOnSingleLegalMove(t *testing.T) {
	b := board.FromGameState(cornerTrappedState())
	s := newSearcher(b)
	move, depth, _ := s.Decide(b, time.Now().Add(200*time.Millisecond))
	assert.Equal(t, geometry.Left, move)
	assert.Equal(t, 0, depth)
}

func TestNextGuessMonotonic(t *testing.T) {
	g := nextGuess(0, 100, 4)
	assert.GreaterOrEqual(t, g, int64(0))
	assert.LessOrEqual(t, g, int64(100))
	assert.LessOrEqual(t, nextGuess(0, 100, 2), g)
	assert.Equal(t, int64(100), nextGuess(0, 100, 1))
}
