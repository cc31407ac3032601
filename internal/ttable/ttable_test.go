package ttable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	tb := New()
	e := Entry{Depth: 12, Score: -500, BestMoves: 0b1011, Bound: BoundLower}
	tb.Store(42, e)

	got, ok := tb.Probe(42)
	assert.True(t, ok)
	assert.Equal(t, e, got)
}

func TestProbeMissOnUnwrittenSlot(t *testing.T) {
	tb := New()
	_, ok := tb.Probe(999)
	assert.False(t, ok)
}

func TestProbeDetectsWrongKey(t *testing.T) {
	tb := New()
	tb.Store(42, Entry{Depth: 1, Score: 10})
	// A different hash that happens to land on the same slot (size apart)
	// must not be served the first entry's data.
	_, ok := tb.Probe(42 + size)
	assert.False(t, ok)
}

func TestNegativeScoreRoundTrips(t *testing.T) {
	tb := New()
	e := Entry{Depth: 3, Score: -29_000, Bound: BoundUpper}
	tb.Store(7, e)
	got, ok := tb.Probe(7)
	assert.True(t, ok)
	assert.Equal(t, e.Score, got.Score)
	assert.Equal(t, e.Bound, got.Bound)
}

func TestRegistryPerGameIsolation(t *testing.T) {
	r := NewRegistry()
	a := r.Get("game-a")
	b := r.Get("game-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, r.Get("game-a"))

	a.Store(1, Entry{Depth: 5})
	_, ok := b.Probe(1)
	assert.False(t, ok)

	r.Drop("game-a")
	freshA := r.Get("game-a")
	assert.NotSame(t, a, freshA)
}
