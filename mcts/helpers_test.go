package mcts

import (
	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/cache"
	"github.com/alphabeth/zerogo/network"
)

func newTestState() *board.GameState {
	z := board.NewZobristTable(1)
	return board.NewGameState(z, 7.5)
}

// uniformEvaluator returns equal priors over every vertex (including PASS)
// and a fixed value, regardless of the position asked about.
func uniformEvaluator(value float32) network.Evaluator {
	return func(_ network.Planes) ([362]float32, float32, error) {
		var policy [362]float32
		for i := range policy {
			policy[i] = 1
		}
		return policy, value, nil
	}
}

func newTestAdapter(eval network.Evaluator) *network.Adapter {
	symTable := board.NewSymmetryTable()
	c := cache.New(64)
	return network.NewAdapter(eval, c, symTable, 1, 4)
}

func newTestEngine(cfg Config, eval network.Evaluator) *Engine {
	symTable := board.NewSymmetryTable()
	adapter := newTestAdapter(eval)
	e := NewEngine(cfg, adapter, symTable)
	e.Reset(newTestState())
	return e
}
