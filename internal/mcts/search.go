package mcts

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/eval"
	"github.com/brensch/shapeshifter/internal/geometry"
	"github.com/brensch/shapeshifter/internal/movegen"
)

// maxRolloutPlies bounds a single random playout so a cycle-free but very
// long-lived board (e.g. two snakes circling a large wrapped arena) cannot
// stall a worker past the deadline. A playout that hits the cap is scored
// by the sign of the static evaluator instead of a true terminal outcome.
const maxRolloutPlies = 300

// Search runs the UCT fallback until deadline and returns the move with
// the highest win rate at the root, along with the tree for inspection
// (telemetry, tests). Grounded on the teacher's MCTS worker pool in
// mcts.go, reshaped around the arena Tree and the paranoid Max/Min node
// split described for the fallback searcher.
func Search(b *board.Board, weights eval.Weights, deadline time.Time, workers int) (geometry.Direction, *Tree) {
	tree := NewTree(b)
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		seed := time.Now().UnixNano() ^ int64(w)*2654435761
		go func(rng *rand.Rand) {
			defer wg.Done()
			runWorker(ctx, tree, weights, rng)
		}(rand.New(rand.NewSource(seed)))
	}
	wg.Wait()

	move, ok := tree.BestMove()
	if !ok {
		move = movegen.AllowedMoves(b, 0)[0]
	}
	return move, tree
}

func runWorker(ctx context.Context, tree *Tree, weights eval.Weights, rng *rand.Rand) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		leaf := selectAndExpand(tree, rng)
		if leaf < 0 {
			return
		}
		outcome := rollout(tree.at(leaf), weights, rng)
		backpropagate(tree, leaf, outcome)
	}
}

// selectAndExpand walks the tree from the root using UCB1, expanding the
// first untried move/combination it encounters, and returns the index of
// the newly expanded node (or of the terminal leaf it bottomed out at).
func selectAndExpand(tree *Tree, rng *rand.Rand) int {
	idx := tree.Root()
	for {
		n := tree.at(idx)

		n.mu.Lock()
		if n.board.IsTerminal() {
			n.mu.Unlock()
			return idx
		}

		switch n.kind {
		case Max:
			if len(n.untriedMoves) > 0 {
				i := rng.Intn(len(n.untriedMoves))
				move := n.untriedMoves[i]
				n.untriedMoves[i] = n.untriedMoves[len(n.untriedMoves)-1]
				n.untriedMoves = n.untriedMoves[:len(n.untriedMoves)-1]
				parentBoard := n.board
				n.mu.Unlock()

				child := &node{kind: Min, board: parentBoard, parent: idx, ourMove: move}
				enemies := aliveEnemies(parentBoard)
				child.untriedCombos = movegen.LimitedMoveCombinations(parentBoard, enemies)
				ci := tree.add(child)

				n.mu.Lock()
				n.children = append(n.children, ci)
				n.mu.Unlock()
				return ci
			}
		case Min:
			if len(n.untriedCombos) > 0 {
				i := rng.Intn(len(n.untriedCombos))
				combo := n.untriedCombos[i]
				n.untriedCombos[i] = n.untriedCombos[len(n.untriedCombos)-1]
				n.untriedCombos = n.untriedCombos[:len(n.untriedCombos)-1]
				ourMove := n.ourMove
				parentBoard := n.board
				n.mu.Unlock()

				enemies := aliveEnemies(parentBoard)
				full := make([]geometry.Direction, len(parentBoard.Snakes))
				full[0] = ourMove
				for k, idx := range enemies {
					full[idx] = combo[k]
				}
				childBoard := parentBoard.Clone()
				childBoard.ApplyMoves(full)

				child := &node{kind: Max, board: childBoard, parent: idx}
				child.untriedMoves = movegen.AllowedMoves(childBoard, 0)
				ci := tree.add(child)

				n.mu.Lock()
				n.children = append(n.children, ci)
				n.mu.Unlock()
				return ci
			}
		}

		children := append([]int(nil), n.children...)
		visits := n.visits
		n.mu.Unlock()

		if len(children) == 0 {
			return idx
		}

		best := -1.0
		bestIdx := children[0]
		for _, ci := range children {
			score := ucb1(tree.at(ci), visits)
			if score > best {
				best = score
				bestIdx = ci
			}
		}
		idx = bestIdx
	}
}

func aliveEnemies(b *board.Board) []int {
	var idx []int
	for i := 1; i < len(b.Snakes); i++ {
		if b.Snakes[i].Alive() {
			idx = append(idx, i)
		}
	}
	return idx
}

// rollout plays uniformly random legal move combinations from n's board
// until the game resolves (or the ply cap is hit) and returns +1 if snake
// 0 won, -1 if it lost, 0 for a draw; an unresolved cap-out returns the
// sign of the static evaluation.
func rollout(n *node, weights eval.Weights, rng *rand.Rand) float64 {
	b := n.board.Clone()

	for ply := 0; ply < maxRolloutPlies; ply++ {
		if score, ok := eval.Terminal(b); ok {
			return signOf(score)
		}

		moves := make([]geometry.Direction, len(b.Snakes))
		for i, sn := range b.Snakes {
			if !sn.Alive() {
				continue
			}
			options := movegen.AllowedMoves(b, i)
			moves[i] = options[rng.Intn(len(options))]
		}
		b.ApplyMoves(moves)
	}

	if score, ok := eval.Terminal(b); ok {
		return signOf(score)
	}
	return signOf(eval.Eval(b, weights))
}

func signOf(score int64) float64 {
	switch {
	case score > 0:
		return 1
	case score < 0:
		return -1
	default:
		return 0
	}
}

// backpropagate credits outcome up the path from leaf to root: Max nodes
// (ours) bank a win when outcome favors us, Min nodes (the enemies acting
// jointly) bank a win when outcome favors them. Every node on the path
// gets a visit regardless of which side the outcome favored.
func backpropagate(tree *Tree, leaf int, outcome float64) {
	for idx := leaf; idx != -1; {
		n := tree.at(idx)
		n.mu.Lock()
		n.visits++
		switch n.kind {
		case Max:
			if outcome > 0 {
				n.wins++
			} else if outcome == 0 {
				n.wins += 0.5
			}
		case Min:
			if outcome < 0 {
				n.wins++
			} else if outcome == 0 {
				n.wins += 0.5
			}
		}
		parent := n.parent
		n.mu.Unlock()
		idx = parent
	}
}
