// Package mcts implements the UCT fallback searcher: a Monte-Carlo tree
// search over the same board.Board used by internal/search, invoked when
// the paranoid alpha-beta search reports a score close to a forced loss.
//
// Grounded on the teacher's mcts.go (Node/UCTer/selectNode/worker), but
// reshaped per the arena-of-integer-indices design: nodes live in a single
// slice owned by a Tree and are referenced by index rather than by pointer,
// so there are no parent/child reference cycles to reason about.
package mcts

import (
	"math"
	"sync"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/movegen"
)

// Kind distinguishes whose decision a node represents.
type Kind uint8

const (
	// Max nodes are ours: each child corresponds to one of our candidate moves.
	Max Kind = iota
	// Min nodes are the enemies' joint reply to the move that led here:
	// each child corresponds to one limited enemy move-combination.
	Min
)

// explorationConstant is UCB1's C, per the UCT fallback's exploration
// constant of approximately 1.5.
const explorationConstant = 1.5

// node is one arena entry. Visits/Wins are "for the player who chose to
// reach this node": at a Max node that's us, at a Min node that's the
// enemies acting jointly as a single paranoid adversary. That uniform
// convention lets selection apply the same UCB1 formula regardless of
// Kind: every node wants to maximize its own win rate.
type node struct {
	mu sync.Mutex

	kind   Kind
	board  *board.Board
	parent int // -1 for the root

	ourMove geometry.Direction // valid on Min nodes: the move that reached them

	children []int

	untriedMoves  []geometry.Direction  // Max nodes
	untriedCombos []movegen.Combination // Min nodes

	visits int64
	wins   float64
}

// Tree is an arena of nodes rooted at index 0. Each node's own mutex guards
// its bookkeeping (visits, wins, children, untried lists) and the tree's
// mutex guards the node slice; rollout simulation,
// the dominant cost per iteration, runs outside the lock so concurrent
// workers still overlap on the expensive part of the work.
type Tree struct {
	mu    sync.Mutex
	nodes []*node
}

// NewTree builds a tree rooted at b, a Max node (our decision) with one
// untried child slot per legal move.
func NewTree(b *board.Board) *Tree {
	t := &Tree{}
	root := &node{
		kind:         Max,
		board:        b,
		parent:       -1,
		untriedMoves: movegen.AllowedMoves(b, 0),
	}
	t.nodes = append(t.nodes, root)
	return t
}

func (t *Tree) at(i int) *node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[i]
}

func (t *Tree) add(n *node) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// Root returns the root node's index, always 0.
func (t *Tree) Root() int { return 0 }

// ucb1 scores n for selection from a parent with parentVisits visits.
// Unvisited children are always preferred (treated as +Inf) so every
// child gets at least one simulation before UCB1 starts comparing them.
func ucb1(n *node, parentVisits int64) float64 {
	n.mu.Lock()
	visits, wins := n.visits, n.wins
	n.mu.Unlock()
	if visits == 0 {
		return math.MaxFloat64
	}
	exploitation := wins / float64(visits)
	exploration := explorationConstant * math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
	return exploitation + exploration
}

// BestMove returns our move with the highest win rate at the root, the
// exploitation-only choice a finished (or deadline-cut) search commits to.
// It returns ok=false only if the root never received a single playout.
func (t *Tree) BestMove() (move geometry.Direction, ok bool) {
	root := t.at(0)
	root.mu.Lock()
	children := append([]int(nil), root.children...)
	root.mu.Unlock()

	best := -1.0
	chosen := -1
	for _, ci := range children {
		c := t.at(ci)
		c.mu.Lock()
		visits, wins := c.visits, c.wins
		c.mu.Unlock()
		if visits == 0 {
			continue
		}
		rate := wins / float64(visits)
		if rate > best {
			best = rate
			chosen = ci
		}
	}
	if chosen == -1 {
		return 0, false
	}
	c := t.at(chosen)
	c.mu.Lock()
	move = c.ourMove
	c.mu.Unlock()
	return move, true
}
