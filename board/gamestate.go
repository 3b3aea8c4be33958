package board

import "github.com/pkg/errors"

// HistoryPlanes is how many past board snapshots the network adapter's
// input planes need: 8 occupancy planes per side.
const HistoryPlanes = 8

// GameState wraps a Board with everything needed to detect positional
// superko and to answer "what did the board look like k moves ago".
type GameState struct {
	Board   *Board
	ToMove  Color
	MoveNum uint32
	Passes  uint8
	// KoMove is the single vertex made illegal by the simple-ko rule, or
	// PASS when there is none.
	KoMove Vertex
	Komi   float32

	// KoHashHistory holds one entry per position reached since game start
	// (pushed after every move and pass); it is never truncated, because
	// superko must compare against the whole game.
	KoHashHistory []uint64

	// boardHistory holds up to HistoryPlanes most-recent board snapshots,
	// most recent first, for the network adapter's history planes.
	boardHistory []*Board
}

// NewGameState builds a fresh game on an empty board, Black to move.
func NewGameState(z *ZobristTable, komi float32) *GameState {
	g := &GameState{
		Board:  NewBoard(z),
		ToMove: Black,
		KoMove: PASS,
		Komi:   komi,
	}
	g.KoHashHistory = []uint64{g.Board.KoHash()}
	g.boardHistory = []*Board{g.Board.Clone()}
	return g
}

var errResignNotAMove = errors.New("board: RESIGN cannot be applied to a GameState, it ends the game at the driver level")

// PlayMove applies a move (or PASS) to the game, advancing to-move, move
// number, pass count, ko-square, and history. RESIGN is not a board move;
// callers must handle it before reaching here.
func (g *GameState) PlayMove(color Color, v Vertex) error {
	switch v {
	case RESIGN:
		return errResignNotAMove
	case PASS:
		g.KoMove = PASS
		if g.Passes < 4 {
			g.Passes++
		}
	default:
		g.KoMove = g.Board.UpdateBoard(color, v)
		g.Passes = 0
	}
	g.ToMove = Opponent(color)
	g.MoveNum++
	g.KoHashHistory = append(g.KoHashHistory, g.Board.KoHash())
	g.pushBoardHistory()
	return nil
}

func (g *GameState) pushBoardHistory() {
	g.boardHistory = append([]*Board{g.Board.Clone()}, g.boardHistory...)
	if len(g.boardHistory) > HistoryPlanes {
		g.boardHistory = g.boardHistory[:HistoryPlanes]
	}
}

// IsMoveLegal reports whether color may play v: PASS/RESIGN are always
// legal; a stone move must not be the simple-ko square, must not be
// suicide, and the resulting position (computed by simulating the move)
// must not repeat any earlier position in this game.
func (g *GameState) IsMoveLegal(color Color, v Vertex) bool {
	if v == PASS || v == RESIGN {
		return true
	}
	if v == g.KoMove {
		return false
	}
	h, ok := g.Board.FastTestMove(color, v)
	if !ok {
		return false
	}
	for _, old := range g.KoHashHistory {
		if old == h {
			return false
		}
	}
	return true
}

// Superko reports whether the *current* position's hash already appeared
// earlier in this game's history.
func (g *GameState) Superko() bool {
	cur := g.Board.KoHash()
	for i := 0; i < len(g.KoHashHistory)-1; i++ {
		if g.KoHashHistory[i] == cur {
			return true
		}
	}
	return false
}

// FinalScore returns the Tromp-Taylor area score, Black-perspective,
// komi already applied.
func (g *GameState) FinalScore() float32 {
	return g.Board.AreaScore(g.Komi)
}

// Terminal reports whether the game has ended by two consecutive passes.
func (g *GameState) Terminal() bool { return g.Passes >= 2 }

// GetPastBoard returns the board state k moves ago (k=0 is the current
// board), or nil if the game doesn't have that much history yet — callers
// (the network adapter) treat missing history as all-zero planes.
func (g *GameState) GetPastBoard(k int) *Board {
	if k < 0 || k >= len(g.boardHistory) {
		return nil
	}
	return g.boardHistory[k]
}

// Clone returns an independent copy suitable for a worker's private
// descent; board snapshots in history are shared (they are never mutated
// once pushed) but the slices themselves are copied so appends don't alias.
func (g *GameState) Clone() *GameState {
	cp := &GameState{
		Board:   g.Board.Clone(),
		ToMove:  g.ToMove,
		MoveNum: g.MoveNum,
		Passes:  g.Passes,
		KoMove:  g.KoMove,
		Komi:    g.Komi,
	}
	cp.KoHashHistory = append([]uint64(nil), g.KoHashHistory...)
	cp.boardHistory = append([]*Board(nil), g.boardHistory...)
	return cp
}
