// Package network hides the neural network behind a single function type
// and owns the eight-symmetry ensemble logic: packing history planes,
// applying a board symmetry, and un-rotating/normalising whatever the
// network returns.
package network

import "github.com/alphabeth/zerogo/board"

// InputPlanes is the number of feature planes fed to the network per
// move: 8 occupancy planes per side plus 2 to-move indicator planes.
const InputPlanes = 18

// Planes is the network's input tensor for one position: [plane][row][col].
type Planes [InputPlanes][board.Size][board.Size]float32

// GatherFeatures walks up to board.HistoryPlanes past boards via state,
// applying symTable's permutation sym to every vertex so that a rotated
// board produces rotated planes.
func GatherFeatures(state *board.GameState, sym int, symTable *board.SymmetryTable) Planes {
	var planes Planes

	self, opp := state.ToMove, board.Opponent(state.ToMove)
	for k := 0; k < board.HistoryPlanes; k++ {
		past := state.GetPastBoard(k)
		if past == nil {
			continue // missing history stays zero
		}
		for v := board.Vertex(0); v < board.Squares; v++ {
			c := past.Square(v)
			if c != self && c != opp {
				continue
			}
			sv := symTable.Apply(sym, v)
			row, col := sv.Row(), sv.Col()
			if c == self {
				planes[k][row][col] = 1
			} else {
				planes[k+board.HistoryPlanes][row][col] = 1
			}
		}
	}

	toMovePlane := 2 * board.HistoryPlanes
	var fill float32
	if state.ToMove == board.Black {
		fill = 1
	}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			planes[toMovePlane][row][col] = fill
			planes[toMovePlane+1][row][col] = 1 - fill
		}
	}
	return planes
}
