package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/protocol"
)

func threeLongSnake(id string, head, mid, tail protocol.Point) protocol.Snake {
	return protocol.Snake{
		ID:     id,
		Health: 100,
		Length: 3,
		Head:   head,
		Body:   []protocol.Point{head, mid, tail},
	}
}

func basicState() protocol.GameState {
	return protocol.GameState{
		Turn: 10,
		Game: protocol.Game{Ruleset: protocol.Ruleset{Name: "standard", Settings: protocol.Settings{HazardDamagePerTurn: 14}}},
		Board: protocol.Board{
			Width:  11,
			Height: 11,
			Food:   []protocol.Point{{X: 5, Y: 5}},
			Snakes: []protocol.Snake{
				threeLongSnake("s1", protocol.Point{X: 5, Y: 1}, protocol.Point{X: 5, Y: 0}, protocol.Point{X: 4, Y: 0}),
				threeLongSnake("s2", protocol.Point{X: 9, Y: 9}, protocol.Point{X: 9, Y: 8}, protocol.Point{X: 9, Y: 7}),
			},
		},
		You: threeLongSnake("s1", protocol.Point{X: 5, Y: 1}, protocol.Point{X: 5, Y: 0}, protocol.Point{X: 4, Y: 0}),
	}
}

func TestFromGameStateWalkLengthMatchesLength(t *testing.T) {
	b := FromGameState(basicState())
	for i, sn := range b.Snakes {
		assert.Equal(t, sn.Length-1-sn.CurledBodyParts, b.WalkLength(i), "snake %d", i)
	}
}

func TestFromGameStatePlacesYouFirst(t *testing.T) {
	state := basicState()
	state.You = state.Board.Snakes[1]
	b := FromGameState(state)
	assert.Equal(t, cellOf(b.Width, state.Board.Snakes[1].Head), b.Snakes[0].Head)
}

func TestApplyMovesIncrementsTurn(t *testing.T) {
	b := FromGameState(basicState())
	turn := b.Turn
	b.ApplyMoves([]geometry.Direction{geometry.Up, geometry.Up})
	assert.Equal(t, turn+1, b.Turn)
}

func TestApplyMovesDecrementsHealth(t *testing.T) {
	b := FromGameState(basicState())
	h0 := b.Snakes[0].Health
	b.ApplyMoves([]geometry.Direction{geometry.Up, geometry.Up})
	assert.Equal(t, h0-1, b.Snakes[0].Health)
}

func TestApplyMovesEatingGrowsAndResetsHealth(t *testing.T) {
	state := basicState()
	// Put the food directly above the head so a single Up move eats it.
	state.Board.Food = []protocol.Point{{X: 5, Y: 2}}
	b := FromGameState(state)
	lenBefore := b.Snakes[0].Length
	b.ApplyMoves([]geometry.Direction{geometry.Up, geometry.Up})
	assert.Equal(t, lenBefore+1, b.Snakes[0].Length)
	assert.Equal(t, 100, b.Snakes[0].Health)
	assert.False(t, b.Food.Get(2*b.Width+5))
}

func TestApplyMovesOffBoardKillsSnake(t *testing.T) {
	state := basicState()
	b := FromGameState(state)
	// Snake 0 heads up repeatedly until it runs off the top edge.
	for i := 0; i < 20 && b.Snakes[0].Alive(); i++ {
		b.ApplyMoves([]geometry.Direction{geometry.Up, geometry.Down})
	}
	assert.False(t, b.Snakes[0].Alive())
	assert.Equal(t, aliveBodyCells(b), b.Bodies[0].CountOnes())
}

func aliveBodyCells(b *Board) int {
	total := 0
	for i, sn := range b.Snakes {
		if sn.Alive() {
			total += b.WalkLength(i) + 1
		}
	}
	return total
}

func TestHeadToHeadEqualLengthKillsBoth(t *testing.T) {
	state := protocol.GameState{
		Game:  protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{Width: 11, Height: 11},
	}
	a := protocol.Snake{ID: "a", Health: 100, Length: 3, Body: []protocol.Point{{X: 4, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 5}}}
	c := protocol.Snake{ID: "c", Health: 100, Length: 3, Body: []protocol.Point{{X: 6, Y: 5}, {X: 7, Y: 5}, {X: 8, Y: 5}}}
	state.Board.Snakes = []protocol.Snake{a, c}
	state.You = a

	b := FromGameState(state)
	// Both snakes move toward (5,5) and collide head-to-head.
	b.ApplyMoves([]geometry.Direction{geometry.Right, geometry.Left})
	assert.False(t, b.Snakes[0].Alive())
	assert.False(t, b.Snakes[1].Alive())
}

func TestHeadToHeadLongerSurvives(t *testing.T) {
	state := protocol.GameState{
		Game:  protocol.Game{Ruleset: protocol.Ruleset{Name: "standard"}},
		Board: protocol.Board{Width: 11, Height: 11},
	}
	a := protocol.Snake{ID: "a", Health: 100, Length: 4, Body: []protocol.Point{{X: 4, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 5}, {X: 1, Y: 5}}}
	c := protocol.Snake{ID: "c", Health: 100, Length: 3, Body: []protocol.Point{{X: 6, Y: 5}, {X: 7, Y: 5}, {X: 8, Y: 5}}}
	state.Board.Snakes = []protocol.Snake{a, c}
	state.You = a

	b := FromGameState(state)
	b.ApplyMoves([]geometry.Direction{geometry.Right, geometry.Left})
	assert.True(t, b.Snakes[0].Alive())
	assert.False(t, b.Snakes[1].Alive())
}

func TestWrappedMoveCrossesEdge(t *testing.T) {
	state := basicState()
	state.Game.Ruleset.Name = "wrapped"
	state.Board.Snakes[0].Body = []protocol.Point{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}
	state.Board.Snakes[0].Head = protocol.Point{X: 0, Y: 5}
	state.You = state.Board.Snakes[0]
	b := FromGameState(state)
	assert.True(t, b.Wrap)
	b.ApplyMoves([]geometry.Direction{geometry.Left, geometry.Up})
	assert.Equal(t, 5*b.Width+b.Width-1, b.Snakes[0].Head)
}

func TestCloneIsIndependent(t *testing.T) {
	b := FromGameState(basicState())
	c := b.Clone()
	c.ApplyMoves([]geometry.Direction{geometry.Up, geometry.Up})
	assert.NotEqual(t, b.Turn, c.Turn)
	assert.NotEqual(t, b.Snakes[0].Health, c.Snakes[0].Health)
}

func TestRoundTripGameState(t *testing.T) {
	state := basicState()
	b := FromGameState(state)
	out := ToGameState(b, []string{"s1", "s2"})
	assert.Equal(t, state.Board.Width, out.Board.Width)
	assert.Equal(t, state.Board.Height, out.Board.Height)
	assert.Len(t, out.Board.Snakes, 2)
	assert.Equal(t, b.Snakes[0].Health, out.Board.Snakes[0].Health)
	assert.Len(t, out.Board.Snakes[0].Body, b.WalkLength(0)+1)
}

func TestSpiralCenterSetFromFirstHazard(t *testing.T) {
	state := basicState()
	state.Game.Map = "hz_spiral"
	state.Board.Hazards = []protocol.Point{{X: 5, Y: 5}}
	b := FromGameState(state)
	assert.Equal(t, 5*b.Width+5, b.SpiralCenter)
}

func TestSinkholeRingOmitsCorners(t *testing.T) {
	state := basicState()
	state.Game.Map = "sinkholes"
	state.Board.Hazards = []protocol.Point{{X: 5, Y: 5}}
	b := FromGameState(state)
	b.SinkholeRings = 1
	b.Turn = 21 // (21-1) % 20 == 0, the second expansion
	b.growSinkholeHazards()
	cx, cy := 5, 5
	assert.False(t, b.HazardMask.Get((cy-1)*b.Width+(cx-1)), "corner should be omitted")
	assert.False(t, b.HazardMask.Get((cy-1)*b.Width+(cx+1)), "corner should be omitted")
	assert.True(t, b.HazardMask.Get((cy-1)*b.Width+cx), "ring edge should be drawn")
}

func TestSinkholeExpandsEveryTwentyTurnsFromTurnOne(t *testing.T) {
	state := basicState()
	state.Game.Map = "sinkholes"
	state.Board.Hazards = []protocol.Point{{X: 5, Y: 5}}
	b := FromGameState(state)
	b.Turn = 0
	b.growSinkholeHazards()
	assert.Equal(t, 0, b.SinkholeRings, "turn 0 is not a trigger turn")

	b.Turn = 1
	b.growSinkholeHazards()
	assert.Equal(t, 1, b.SinkholeRings)
	assert.True(t, b.HazardMask.Get(5*b.Width+5))
}

func TestIsTerminal(t *testing.T) {
	b := FromGameState(basicState())
	assert.False(t, b.IsTerminal())
	b.killSnake(1)
	assert.True(t, b.IsTerminal())
}
