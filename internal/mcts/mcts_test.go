package mcts

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/movegen"
	"github.com/brensch/shapeshifter/internal/protocol"
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

func fourSnakeState() protocol.GameState {
	mk := func(id string, x, y int) protocol.Snake {
		return protocol.Snake{ID: id, Health: 100, Length: 3, Head: protocol.Point{X: x, Y: y},
			Body: []protocol.Point{{X: x, Y: y}, {X: x, Y: y - 1}, {X: x, Y: y - 2}}}
	}
	us := mk("us", 2, 2)
	return protocol.GameState{
		Game: protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{Width: 11, Height: 11, Snakes: []protocol.Snake{
			us, mk("e1", 8, 8), mk("e2", 2, 8), mk("e3", 8, 2),
		}},
		You: us,
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	b := board.FromGameState(duelState())
	move, tree := Search(b, eval.DefaultWeights(), time.Now().Add(150*time.Millisecond), 2)
	assert.Contains(t, movegen.AllowedMoves(b, 0), move)
	assert.NotNil(t, tree)
}

func TestSearchRespectsImmediateDeadline(t *testing.T) {
	b := board.FromGameState(duelState())
	move, _ := Search(b, eval.DefaultWeights(), time.Now().Add(-time.Second), 1)
	assert.Contains(t, movegen.AllowedMoves(b, 0), move)
}

func TestBestMoveFalseOnUnvisitedRoot(t *testing.T) {
	b := board.FromGameState(duelState())
	tree := NewTree(b)
	_, ok := tree.BestMove()
	assert.False(t, ok)
}

func TestRolloutTerminatesWithBoundedOutcome(t *testing.T) {
	b := board.FromGameState(duelState())
	n := &node{kind: Max, board: b}
	rng := rand.New(rand.NewSource(1))
	outcome := rollout(n, eval.DefaultWeights(), rng)
	assert.Contains(t, []float64{-1, 0, 1}, outcome)
}

func TestBackpropagateCreditsMaxOnWinAndMinOnLoss(t *testing.T) {
	b := board.FromGameState(duelState())
	tree := NewTree(b)
	minIdx := tree.add(&node{kind: Min, parent: 0, board: b, ourMove: geometry.Up})
	maxIdx := tree.add(&node{kind: Max, parent: minIdx, board: b})

	backpropagate(tree, maxIdx, 1)
	root := tree.at(0)
	assert.Equal(t, int64(1), root.visits)
	assert.Equal(t, 1.0, root.wins) // win for us

	backpropagate(tree, maxIdx, -1)
	assert.Equal(t, int64(2), root.visits)
	assert.Equal(t, 1.0, root.wins) // unchanged: that outcome favored the enemy
	// The Min node banks the second outcome, a loss for us.
	assert.Equal(t, 1.0, tree.at(minIdx).wins)
}

func TestShouldFallbackRequiresMoreThanTwoAlive(t *testing.T) {
	b := board.FromGameState(duelState())
	assert.False(t, ShouldFallback(b, eval.Min))
}

func TestShouldFallbackTriggersNearForcedLoss(t *testing.T) {
	b := board.FromGameState(fourSnakeState())
	assert.True(t, ShouldFallback(b, eval.Min+int64(b.Turn)+2))
	assert.False(t, ShouldFallback(b, eval.Min+int64(b.Turn)+60))
}
