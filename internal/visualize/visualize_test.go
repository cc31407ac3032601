package visualize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/shapeshifter/internal/board"
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

func TestASCIIHasBorderAndHeads(t *testing.T) {
	b := board.FromGameState(duelState())
	out := ASCII(b)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, b.Height+2)
	assert.True(t, strings.HasPrefix(lines[0], "xxx"))
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "F")
}

func TestRenderGIFProducesValidOutput(t *testing.T) {
	b := board.FromGameState(duelState())
	var buf bytes.Buffer
	err := RenderGIF(&buf, []*board.Board{b, b}, 10)
	assert.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
	assert.Equal(t, "GIF8", string(buf.Bytes()[:4]))
}

func TestRenderGIFRejectsEmptyFrames(t *testing.T) {
	var buf bytes.Buffer
	err := RenderGIF(&buf, nil, 10)
	assert.Error(t, err)
}
