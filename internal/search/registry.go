package search

import (
	"sync"

	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/ttable"
)

// Registry hands out one Searcher per game ID, so the history heuristic
// table (and the Searcher's node counter) persists turn to turn within a
// game the same way ttable.Registry keeps one transposition table per
// game. Grounded on the teacher's main.go gameStates map, which served
// the analogous purpose for its MCTS node cache.
type Registry struct {
	mu        sync.Mutex
	searchers map[string]*Searcher
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{searchers: make(map[string]*Searcher)}
}

// Get returns the Searcher for gameID, creating one backed by tt on first
// use. cells and weights are only consulted on that first call.
func (r *Registry) Get(gameID string, tt *ttable.Table, cells int, weights eval.Weights) *Searcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.searchers[gameID]
	if !ok {
		s = NewSearcher(tt, cells, weights)
		r.searchers[gameID] = s
	}
	return s
}

// Drop releases the Searcher for gameID, called once a game ends.
func (r *Registry) Drop(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.searchers, gameID)
}
