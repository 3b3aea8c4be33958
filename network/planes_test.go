package network

import (
	"testing"

	"github.com/alphabeth/zerogo/board"
	"github.com/stretchr/testify/assert"
)

func newTestState() *board.GameState {
	return board.NewGameState(board.NewZobristTable(7), 7.5)
}

func TestGatherFeaturesToMovePlanes(t *testing.T) {
	symTable := board.NewSymmetryTable()
	state := newTestState() // Black to move

	planes := GatherFeatures(state, 0, symTable)
	assert.Equal(t, float32(1), planes[2*board.HistoryPlanes][0][0])
	assert.Equal(t, float32(0), planes[2*board.HistoryPlanes+1][0][0])

	assert.NoError(t, state.PlayMove(board.Black, board.PASS)) // now White to move
	planes = GatherFeatures(state, 0, symTable)
	assert.Equal(t, float32(0), planes[2*board.HistoryPlanes][5][5])
	assert.Equal(t, float32(1), planes[2*board.HistoryPlanes+1][5][5])
}

func TestGatherFeaturesMarksCurrentStones(t *testing.T) {
	symTable := board.NewSymmetryTable()
	state := newTestState()

	v := board.VertexAt(3, 4)
	assert.NoError(t, state.PlayMove(board.Black, v))
	// It is now White to move; Black's stone belongs on the opponent planes.
	planes := GatherFeatures(state, 0, symTable)
	assert.Equal(t, float32(1), planes[board.HistoryPlanes][3][4])
	assert.Equal(t, float32(0), planes[0][3][4])
}

func TestGatherFeaturesAppliesSymmetry(t *testing.T) {
	symTable := board.NewSymmetryTable()
	state := newTestState()
	v := board.VertexAt(0, 0)
	assert.NoError(t, state.PlayMove(board.Black, v))

	// Symmetry 2 is a 180-degree rotation; the stone at (0,0) should land
	// at (18,18) in the rotated planes.
	planes := GatherFeatures(state, 2, symTable)
	assert.Equal(t, float32(1), planes[board.HistoryPlanes][18][18])
}

func TestGatherFeaturesMissingHistoryIsZero(t *testing.T) {
	symTable := board.NewSymmetryTable()
	state := newTestState()
	planes := GatherFeatures(state, 0, symTable)
	for k := 1; k < board.HistoryPlanes; k++ {
		for r := 0; r < board.Size; r++ {
			for c := 0; c < board.Size; c++ {
				assert.Equal(t, float32(0), planes[k][r][c])
			}
		}
	}
}
