package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonWrappingEdgesAreNone(t *testing.T) {
	tb := For(11, 11, false)
	// top-left corner: index 10*11+0 = 110
	_, ok := tb.Move(10*11+0, Up)
	assert.False(t, ok)
	_, ok = tb.Move(10*11+0, Left)
	assert.False(t, ok)
	dest, ok := tb.Move(10*11+0, Right)
	assert.True(t, ok)
	assert.Equal(t, 10*11+1, dest)
}

func TestWrappingAlwaysSome(t *testing.T) {
	tb := For(11, 11, true)
	for cell := 0; cell < 11*11; cell++ {
		for _, d := range All {
			_, ok := tb.Move(cell, d)
			assert.True(t, ok)
		}
	}
}

func TestWrapLeftEdge(t *testing.T) {
	tb := For(11, 11, true)
	head := 5 * 11 // (0,5)
	dest, ok := tb.Move(head, Left)
	assert.True(t, ok)
	assert.Equal(t, 5*11+10, dest) // wraps to (10,5)
}

func TestEdgeMasks(t *testing.T) {
	tb := For(3, 3, false)
	assert.Equal(t, 3, tb.Top.CountOnes())
	assert.Equal(t, 3, tb.Bottom.CountOnes())
	assert.Equal(t, 3, tb.Left.CountOnes())
	assert.Equal(t, 3, tb.Right.CountOnes())
	assert.Equal(t, 6, tb.AllButLeft.CountOnes())
	assert.Equal(t, 6, tb.AllButRight.CountOnes())
}

func TestCachedTablesShared(t *testing.T) {
	a := For(7, 7, false)
	b := For(7, 7, false)
	assert.Same(t, a, b)
}
