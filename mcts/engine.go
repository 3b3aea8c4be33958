// Package mcts implements the PUCT tree search: lazily-expanded nodes
// with atomic statistics, a worker pool descending shared state, virtual
// loss for parallel exploration, and the post-search move selection
// (visit-proportional sampling, resignation, root-reuse across moves).
package mcts

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/network"
	"github.com/hashicorp/go-multierror"
)

// Engine owns one search tree and the shared resources (network adapter,
// symmetry table) every worker descends against. Concurrent Think calls
// do not overlap: Reset/AdvanceRoot/Think are all serialised by a single
// mutex, matching the driver's own single-search-at-a-time usage.
type Engine struct {
	cfg      Config
	adapter  *network.Adapter
	symTable *board.SymmetryTable
	logger   *log.Logger

	mu        sync.Mutex
	root      *Node
	rootState *board.GameState
	nodeCount atomic.Int64

	evalErrMu sync.Mutex
	evalErr   *multierror.Error

	rng *rand.Rand
}

// NewEngine builds an Engine. Call Reset before the first Think.
func NewEngine(cfg Config, adapter *network.Adapter, symTable *board.SymmetryTable) *Engine {
	cfg = cfg.resolved()
	return &Engine{
		cfg:      cfg,
		adapter:  adapter,
		symTable: symTable,
		rng:      rand.New(rand.NewSource(int64(cfg.RNGSeed))),
	}
}

// SetLogger installs an optional logger; a nil logger (the default) is a
// silent no-op, so tests can run without capturing anything.
func (e *Engine) SetLogger(l *log.Logger) { e.logger = l }

func (e *Engine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Reset drops the current tree and seeds a fresh root at state, used by
// the driver's ClearBoard.
func (e *Engine) Reset(state *board.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = newNode(board.PASS, 0, 0)
	e.rootState = state.Clone()
	e.nodeCount.Store(1)
}

// AdvanceRoot is called after every move actually played (by either
// color), so the tree stays in sync with the game even when the engine
// itself didn't choose the move. It reuses the subtree under move if the
// current root already has that child, otherwise it allocates a fresh,
// unexpanded root.
func (e *Engine) AdvanceRoot(move board.Vertex, newState *board.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var next *Node
	if e.root != nil {
		for _, c := range e.root.Children() {
			if c.Move() == move {
				next = c
				break
			}
		}
	}
	if next == nil {
		next = newNode(move, 0, 0)
	}
	e.root = next
	e.rootState = newState.Clone()
	e.nodeCount.Store(countNodes(e.root))
}

func countNodes(n *Node) int64 {
	if n == nil {
		return 0
	}
	var total int64 = 1
	for _, c := range n.Children() {
		total += countNodes(c)
	}
	return total
}

// Think runs a full parallel search from the current root and returns the
// chosen move (or RESIGN) per the post-search selection rule.
func (e *Engine) Think() (board.Vertex, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rootState == nil {
		return board.PASS, ErrNotReady
	}
	if e.rootState.Terminal() {
		return board.PASS, nil
	}
	if e.rootState.Superko() {
		return board.PASS, ErrSuperkoRoot
	}

	if err := e.prepareRoot(); err != nil {
		return board.PASS, err
	}

	e.evalErrMu.Lock()
	e.evalErr = nil
	e.evalErrMu.Unlock()

	var playouts atomic.Int64
	var running atomic.Bool
	running.Store(true)

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for running.Load() {
				_, ok := e.playSimulation(e.rootState)
				if ok {
					n := playouts.Add(1)
					if int(n) >= e.cfg.MaxPlayouts || int64(e.root.Visits()) >= int64(e.cfg.MaxVisits) {
						running.Store(false)
					}
				}
			}
		}()
	}
	wg.Wait()

	e.evalErrMu.Lock()
	evalErr := e.evalErr
	e.evalErrMu.Unlock()
	if evalErr != nil {
		e.logf("think: %d worker(s) hit eval errors: %v", len(evalErr.Errors), evalErr)
	}
	e.logf("think: move=%d playouts=%d root-visits=%d", e.rootState.MoveNum, playouts.Load(), e.root.Visits())
	return e.selectMove()
}

// LastEvalErrors returns the combined set of network evaluation errors
// every worker goroutine hit during the most recent Think call (nil if
// none did). Workers fall back to a leaf's stored InitEval on such an
// error rather than aborting, so Think still returns a move; the driver
// checks this afterwards and answers PASS when it is non-nil.
func (e *Engine) LastEvalErrors() error {
	e.evalErrMu.Lock()
	defer e.evalErrMu.Unlock()
	if e.evalErr == nil {
		return nil
	}
	return e.evalErr.ErrorOrNil()
}

func (e *Engine) recordEvalError(err error) {
	e.evalErrMu.Lock()
	defer e.evalErrMu.Unlock()
	e.evalErr = multierror.Append(e.evalErr, err)
}

// prepareRoot ensures the root is expanded, eliminates superko-repeating
// children, and (if enabled) mixes in Dirichlet exploration noise. Called
// once per Think, before any worker starts.
func (e *Engine) prepareRoot() error {
	if e.root == nil {
		e.root = newNode(board.PASS, 0, 0)
	}
	if !e.root.HasChildren() {
		if e.nodeCount.Load() >= int64(e.cfg.MaxTreeSize) {
			return ErrTreeFull
		}
		value, err := e.root.Expand(e.rootState, e.adapter)
		if err != nil {
			return err
		}
		e.root.backup(value)
		e.nodeCount.Add(int64(len(e.root.Children())))
	}
	eliminateInvalidChildren(e.root, e.rootState)
	if e.cfg.Noise {
		applyDirichletNoise(e.root, e.cfg.RNGSeed^uint64(e.rootState.MoveNum)+1)
	}
	return nil
}

// playSimulation runs one PUCT descent from the root against a private
// clone of rootState, expanding at most one leaf, and backs up the result
// (or, on a lost expansion race / no valid children, just undoes the
// virtual losses it added). It never mutates rootState.
func (e *Engine) playSimulation(rootState *board.GameState) (float32, bool) {
	cur := rootState.Clone()
	node := e.root
	stack := make([]*Node, 0, 96)

	for {
		node.addVirtualLoss()
		stack = append(stack, node)

		if !node.HasChildren() {
			if cur.Terminal() {
				result := terminalEval(cur)
				backupAll(stack, result)
				return result, true
			}
			if e.nodeCount.Load() >= int64(e.cfg.MaxTreeSize) {
				result := node.InitEval()
				backupAll(stack, result)
				return result, true
			}

			value, err := node.Expand(cur, e.adapter)
			if err != nil {
				if err == ErrExpanding {
					undoVirtualLoss(stack)
					return 0, false
				}
				e.recordEvalError(err)
				result := node.InitEval()
				backupAll(stack, result)
				return result, true
			}
			e.nodeCount.Add(int64(len(node.Children())))
			backupAll(stack, value)
			return value, true
		}

		child, trial, ok := e.selectChild(node, cur)
		if !ok {
			undoVirtualLoss(stack)
			return 0, false
		}
		node = child
		cur = trial
	}
}

// selectChild runs PUCT selection at node, retrying against the same
// node whenever the chosen child's move turns out to repeat an earlier
// position (marking that child invalid first) or PlayMove rejects it.
func (e *Engine) selectChild(node *Node, cur *board.GameState) (*Node, *board.GameState, bool) {
	for {
		child := node.Select(e.cfg.PUCT, e.cfg.FPUReduction, cur.ToMove)
		if child == nil {
			return nil, nil, false
		}
		trial := cur.Clone()
		if err := trial.PlayMove(cur.ToMove, child.Move()); err != nil {
			child.valid.Store(false)
			continue
		}
		if child.Move() != board.PASS && trial.Superko() {
			child.valid.Store(false)
			continue
		}
		return child, trial, true
	}
}

func backupAll(stack []*Node, result float32) {
	for _, n := range stack {
		n.backup(result)
		n.subVirtualLoss()
	}
}

func undoVirtualLoss(stack []*Node) {
	for _, n := range stack {
		n.subVirtualLoss()
	}
}

// selectMove implements the after-search rule: sort by (visits, eval),
// sample proportionally to visits during the opening, otherwise take the
// argmax, and resign if the chosen line is hopeless.
func (e *Engine) selectMove() (board.Vertex, error) {
	color := e.rootState.ToMove
	children := e.root.Children()

	valid := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.IsValid() {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return board.RESIGN, nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Visits() != valid[j].Visits() {
			return valid[i].Visits() > valid[j].Visits()
		}
		return valid[i].GetEval(color) > valid[j].GetEval(color)
	})

	best := valid[0]
	if e.shouldResign(best, color) {
		return board.RESIGN, nil
	}

	if int(e.rootState.MoveNum) < e.cfg.RandomCnt {
		return valid[e.sampleChildIndex(valid)].Move(), nil
	}
	return best.Move(), nil
}

func (e *Engine) shouldResign(best *Node, color board.Color) bool {
	enabled, threshold := e.cfg.resignThreshold()
	if !enabled {
		return false
	}
	minVisits := e.cfg.MaxPlayouts
	if minVisits > 500 {
		minVisits = 500
	}
	return best.GetEval(color) < threshold &&
		int(best.Visits()) >= minVisits &&
		int(e.rootState.MoveNum) > board.Squares/4
}

// sampleChildIndex draws an index proportional to visit count, matching
// self-play's opening exploration.
func (e *Engine) sampleChildIndex(children []*Node) int {
	var total float32
	for _, c := range children {
		total += float32(c.Visits())
	}
	if total <= 0 {
		return 0
	}
	r := e.rng.Float32() * total
	var accum float32
	for i, c := range children {
		accum += float32(c.Visits())
		if r < accum {
			return i
		}
	}
	return len(children) - 1
}

// SetPlayoutBudget overrides MaxPlayouts for every subsequent Think call,
// letting a caller translate a time budget into a playout count between
// moves without rebuilding the engine.
func (e *Engine) SetPlayoutBudget(maxPlayouts int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if maxPlayouts > 0 {
		e.cfg.MaxPlayouts = maxPlayouts
	}
}

// RootVisits exposes the current root's visit count, useful for driver-
// level logging and tests.
func (e *Engine) RootVisits() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root == nil {
		return 0
	}
	return e.root.Visits()
}
