// Package zerogo is the top-level driver: it owns the Zobrist and
// symmetry tables, the evaluation cache, the network adapter, and one
// search tree, wiring them into the external interface a GTP-like front
// end would call (ClearBoard, Play, GenMove, FinalScore, SetTimeControl).
package zerogo

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/cache"
	"github.com/alphabeth/zerogo/mcts"
	"github.com/alphabeth/zerogo/network"
	"github.com/pkg/errors"
)

// defaultKomi is applied until SetKomi is called.
const defaultKomi = 7.5

// playoutsPerSecond is a conservative, single-evaluator-throughput
// estimate used to convert a wall-clock time budget into a playout count;
// there is no clock in the retrieved lineage to calibrate this against,
// so it is a deliberately simple, documented heuristic rather than one
// grounded in a specific source file.
const playoutsPerSecond = 800

var errNilEvaluator = errors.New("zerogo: eval must not be nil")

// GoEngine collapses game orchestration, search, and evaluation into one
// type: there is exactly one GameState, one search tree, and one
// Evaluator to play against.
type GoEngine struct {
	mu sync.Mutex

	zobrist  *board.ZobristTable
	symTable *board.SymmetryTable
	cache    *cache.Cache
	search   *mcts.Engine
	logger   *log.Logger

	komi  float32
	state *board.GameState

	resigned   bool
	resignedBy board.Color

	mainTime, byoTime     time.Duration
	byoStones, byoPeriods int
}

// NewGoEngine builds a GoEngine around eval and starts a fresh game on an
// empty board with the default komi.
func NewGoEngine(cfg Config, eval network.Evaluator) (*GoEngine, error) {
	if eval == nil {
		return nil, errNilEvaluator
	}

	zobrist := board.NewZobristTable(cfg.RNGSeed)
	symTable := board.NewSymmetryTable()
	c := cache.New(cache.SizeFor(cfg.MaxPlayouts))

	maxConcurrentEvals := cfg.MaxConcurrentEvals
	if maxConcurrentEvals <= 0 {
		maxConcurrentEvals = runtime.NumCPU()
	}
	adapter := network.NewAdapter(eval, c, symTable, int64(cfg.RNGSeed), maxConcurrentEvals)

	searchEngine := mcts.NewEngine(cfg.mctsConfig(), adapter, symTable)
	if cfg.Logger != nil {
		searchEngine.SetLogger(cfg.Logger)
	}

	e := &GoEngine{
		zobrist:  zobrist,
		symTable: symTable,
		cache:    c,
		search:   searchEngine,
		logger:   cfg.Logger,
		komi:     defaultKomi,
	}
	e.ClearBoard()
	return e, nil
}

func (e *GoEngine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// ClearBoard starts a fresh game on an empty board, keeping the current
// komi, cache, and configuration.
func (e *GoEngine) ClearBoard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = board.NewGameState(e.zobrist, e.komi)
	e.resigned = false
	e.search.Reset(e.state)
}

// SetKomi changes the komi applied by FinalScore and by the search tree's
// own terminal-position evaluation from this point on. The search tree is
// restarted at the current position so no evaluation under the old komi
// is reused.
func (e *GoEngine) SetKomi(komi float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.komi = komi
	if e.state != nil {
		e.state.Komi = komi
		e.search.Reset(e.state)
	}
}

// Play applies color's move (or PASS/RESIGN) to the game and advances the
// search tree's root to match, reusing the played child's subtree when
// the engine itself had already explored it.
func (e *GoEngine) Play(color board.Color, v board.Vertex) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resigned {
		return nil
	}
	if v == board.RESIGN {
		e.resigned = true
		e.resignedBy = color
		return nil
	}
	if v != board.PASS && !e.state.IsMoveLegal(color, v) {
		return fmt.Errorf("%w: vertex %d is not legal for %v", mcts.ErrIllegalMove, v, color)
	}
	if err := e.state.PlayMove(color, v); err != nil {
		return err
	}
	e.search.AdvanceRoot(v, e.state)
	return nil
}

// GenMove runs a search for color and plays the chosen move into the
// game (unless it is a resignation), returning the move. If any network
// evaluation failed during the search, the move is PASS.
func (e *GoEngine) GenMove(color board.Color) (board.Vertex, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resigned {
		return board.RESIGN, nil
	}

	if budget := e.playoutBudgetForThisMove(); budget > 0 {
		e.search.SetPlayoutBudget(budget)
	}

	move, err := e.search.Think()
	if err != nil {
		return board.PASS, err
	}
	if errs := e.search.LastEvalErrors(); errs != nil {
		e.logf("genmove: search reported evaluation errors, passing: %v", errs)
		move = board.PASS
	}

	if move == board.RESIGN {
		e.resigned = true
		e.resignedBy = color
		return board.RESIGN, nil
	}
	if err := e.state.PlayMove(color, move); err != nil {
		return board.PASS, err
	}
	e.search.AdvanceRoot(move, e.state)
	return move, nil
}

// GameOver reports whether the game has ended, either by resignation or
// by two consecutive passes.
func (e *GoEngine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resigned || e.state.Terminal()
}

// FinalScore returns the Tromp-Taylor area score (Black-perspective,
// komi applied) of the current position.
func (e *GoEngine) FinalScore() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.FinalScore()
}

// SetTimeControl records the clock every subsequent GenMove should budget
// against; a zero mainTime disables time-based playout adjustment, and
// GenMove keeps the playout limit already in effect (the configured
// MaxPlayouts unless an earlier time control replaced it).
func (e *GoEngine) SetTimeControl(mainTime, byoTime time.Duration, byoStones, byoPeriods int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mainTime = mainTime
	e.byoTime = byoTime
	e.byoStones = byoStones
	e.byoPeriods = byoPeriods
}

// playoutBudgetForThisMove converts the configured clock into a playout
// count for the upcoming search: the configured main time is spread over
// an estimate of the moves left in the game (Squares minus moves played,
// never fewer than the byo-yomi stone count). Time already spent is not
// tracked, and the byo-yomi period length is not used.
func (e *GoEngine) playoutBudgetForThisMove() int {
	if e.mainTime <= 0 {
		return 0
	}
	movesLeft := board.Squares - int(e.state.MoveNum)
	if movesLeft < e.byoStones {
		movesLeft = e.byoStones
	}
	if movesLeft <= 0 {
		movesLeft = 1
	}
	perMove := e.mainTime / time.Duration(movesLeft)
	playouts := int(perMove.Seconds() * playoutsPerSecond)
	if playouts < 1 {
		playouts = 1
	}
	return playouts
}
