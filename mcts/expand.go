package mcts

import (
	"fmt"
	"sort"

	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/network"
)

// Expand runs create_children: it queries the network (random symmetry,
// no cache skip), filters to legal moves, normalises priors, allocates
// one child per surviving move (PASS sorted last), and publishes the
// child list. It returns the network's Black-perspective value for this
// node's own position. If another goroutine is already expanding this
// node, it returns ErrExpanding immediately rather than blocking.
func (n *Node) Expand(state *board.GameState, adapter *network.Adapter) (float32, error) {
	if !n.expandMu.TryLock() {
		return 0, ErrExpanding
	}
	defer n.expandMu.Unlock()

	scored, blackWinrate, err := adapter.GetScoredMoves(state, network.Random, 0, false)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEvalFailure, err)
	}

	legal := make([]network.ScoredMove, 0, len(scored))
	var sum float32
	for _, m := range scored {
		if !state.IsMoveLegal(state.ToMove, m.Vertex) {
			continue
		}
		legal = append(legal, m)
		sum += m.Prior
	}
	normalize(legal, sum)

	var pass network.ScoredMove
	havePass := false
	nonPass := make([]network.ScoredMove, 0, len(legal))
	for _, m := range legal {
		if m.Vertex == board.PASS {
			pass, havePass = m, true
			continue
		}
		nonPass = append(nonPass, m)
	}
	sort.Slice(nonPass, func(i, j int) bool { return nonPass[i].Prior > nonPass[j].Prior })

	childInitEval := 1 - blackWinrate
	children := make([]*Node, 0, len(nonPass)+1)
	for _, m := range nonPass {
		children = append(children, newNode(m.Vertex, m.Prior, childInitEval))
	}
	if havePass {
		children = append(children, newNode(board.PASS, pass.Prior, childInitEval))
	}

	n.children = children
	n.expanded.Store(true)
	return blackWinrate, nil
}

func normalize(moves []network.ScoredMove, sum float32) {
	if len(moves) == 0 {
		return
	}
	if sum > 0 {
		for i := range moves {
			moves[i].Prior /= sum
		}
		return
	}
	uniform := 1 / float32(len(moves))
	for i := range moves {
		moves[i].Prior = uniform
	}
}

// terminalEval computes the Black-perspective result for a finished
// position (both players passed): 1 if Black's Tromp-Taylor area score is
// positive, 0 if negative, 0.5 on an exact tie. Backup always stores a
// Black-perspective value regardless of which node is on the stack, so
// this is not relative to whoever is notionally "to move" at the leaf.
func terminalEval(state *board.GameState) float32 {
	score := state.FinalScore()
	switch {
	case score > 0:
		return 1
	case score < 0:
		return 0
	default:
		return 0.5
	}
}

// eliminateInvalidChildren marks !valid any child whose move would repeat
// an earlier position in state's history (root-only superko elimination,
// run once right after the root is expanded).
func eliminateInvalidChildren(n *Node, state *board.GameState) {
	for _, c := range n.Children() {
		v := c.Move()
		if v == board.PASS || v == board.RESIGN {
			continue
		}
		hash, ok := state.Board.FastTestMove(state.ToMove, v)
		if !ok {
			c.valid.Store(false)
			continue
		}
		for _, old := range state.KoHashHistory {
			if old == hash {
				c.valid.Store(false)
				break
			}
		}
	}
}
