package network

import (
	"testing"

	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformEvaluator(calls *int) Evaluator {
	return func(_ Planes) ([362]float32, float32, error) {
		if calls != nil {
			*calls++
		}
		var policy [362]float32
		for i := range policy {
			policy[i] = 1.0 / 362.0
		}
		return policy, 0.5, nil
	}
}

func TestGetScoredMovesReturnsAllEmptyVerticesPlusPass(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	a := NewAdapter(uniformEvaluator(nil), c, symTable, 1, 0)
	state := newTestState()

	moves, winrate, err := a.GetScoredMoves(state, Direct, 0, false)
	require.NoError(t, err)
	assert.Equal(t, board.Squares+1, len(moves)) // empty board: every vertex plus PASS
	assert.InDelta(t, 0.75, winrate, 1e-6)        // (1 + 0.5) / 2
}

func TestGetScoredMovesCachesResult(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	calls := 0
	a := NewAdapter(uniformEvaluator(&calls), c, symTable, 1, 0)
	state := newTestState()

	_, _, err := a.GetScoredMoves(state, Direct, 0, false)
	require.NoError(t, err)
	_, _, err = a.GetScoredMoves(state, Direct, 0, false)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second call should hit the cache")
}

func TestGetScoredMovesSkipCacheBypassesAndDoesNotStore(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	calls := 0
	a := NewAdapter(uniformEvaluator(&calls), c, symTable, 1, 0)
	state := newTestState()

	_, _, err := a.GetScoredMoves(state, Direct, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(), "skipCache must not populate the cache")
	assert.Equal(t, 1, calls)
}

func TestGetScoredMovesExcludesOccupiedVertices(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	a := NewAdapter(uniformEvaluator(nil), c, symTable, 1, 0)
	state := newTestState()
	v := board.VertexAt(4, 4)
	require.NoError(t, state.PlayMove(board.Black, v))

	moves, _, err := a.GetScoredMoves(state, Direct, 0, true)
	require.NoError(t, err)
	for _, m := range moves {
		assert.NotEqual(t, v, m.Vertex)
	}
}

func TestGetScoredMovesNilEvaluatorErrors(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	a := NewAdapter(nil, c, symTable, 1, 0)
	state := newTestState()

	_, _, err := a.GetScoredMoves(state, Direct, 0, true)
	assert.Error(t, err)
}

func TestGetScoredMovesRespectsConcurrencySemaphore(t *testing.T) {
	symTable := board.NewSymmetryTable()
	c := cache.New(100)
	a := NewAdapter(uniformEvaluator(nil), c, symTable, 1, 1)
	assert.NotNil(t, a.sem)
	assert.Equal(t, 1, cap(a.sem))
}
