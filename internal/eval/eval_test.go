package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/protocol"
)

func twoSnakeState() protocol.GameState {
	us := protocol.Snake{ID: "us", Health: 100, Length: 3, Head: protocol.Point{X: 2, Y: 2},
		Body: []protocol.Point{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}}}
	enemy := protocol.Snake{ID: "enemy", Health: 100, Length: 3, Head: protocol.Point{X: 8, Y: 8},
		Body: []protocol.Point{{X: 8, Y: 8}, {X: 8, Y: 7}, {X: 8, Y: 6}}}
	return protocol.GameState{
		Game: protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{
			Width: 11, Height: 11,
			Food:   []protocol.Point{{X: 2, Y: 3}},
			Snakes: []protocol.Snake{us, enemy},
		},
		You: us,
	}
}

func TestAreaControlSplitsEvenBoardRoughlyInHalf(t *testing.T) {
	b := board.FromGameState(twoSnakeState())
	counts := AreaControl(b)
	assert.Len(t, counts, 2)
	total := counts[0] + counts[1]
	assert.Greater(t, total, 100) // most of an 11x11 board should be claimed
	// Symmetric starting positions on an open board: neither side should
	// dominate by a huge margin.
	diff := counts[0] - counts[1]
	if diff < 0 {
		diff = -diff
	}
	assert.Less(t, diff, 20)
}

func TestTerminalWeAreDead(t *testing.T) {
	b := board.FromGameState(twoSnakeState())
	b.Turn = 42
	b.Snakes[0].Health = -1
	score, ok := Terminal(b)
	assert.True(t, ok)
	assert.Equal(t, Min+42, score)
}

func TestTerminalMutualElimination(t *testing.T) {
	b := board.FromGameState(twoSnakeState())
	b.Snakes[0].Health = -1
	b.Snakes[1].Health = -1
	score, ok := Terminal(b)
	assert.True(t, ok)
	assert.Equal(t, int64(0), score)
}

func TestTerminalWeWin(t *testing.T) {
	b := board.FromGameState(twoSnakeState())
	b.Turn = 7
	b.Snakes[1].Health = -1
	score, ok := Terminal(b)
	assert.True(t, ok)
	assert.Equal(t, Max-7, score)
}

func TestEvalNonTerminalWithinBounds(t *testing.T) {
	b := board.FromGameState(twoSnakeState())
	score := Eval(b, DefaultWeights())
	assert.Greater(t, score, Min)
	assert.Less(t, score, Max)
}

func TestParseWeightsRoundTrip(t *testing.T) {
	s := "1;2;3;4;5;6;7;8;9;10;11;12;13;14;15;16;17;18"
	w, err := ParseWeights(s)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, w.Early.EnemiesAlive)
	assert.Equal(t, 9.0, w.Early.Bias)
	assert.Equal(t, 10.0, w.Late.EnemiesAlive)
	assert.Equal(t, 18.0, w.Late.Bias)
}

func TestParseWeightsRejectsWrongCount(t *testing.T) {
	_, err := ParseWeights("1;2;3")
	assert.Error(t, err)
}
