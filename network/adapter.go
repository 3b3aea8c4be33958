package network

import (
	"math/rand"

	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/cache"
	"github.com/pkg/errors"
)

// Evaluator is the external collaborator boundary: given a packed input
// tensor it returns a 362-entry policy (361 vertices + PASS) and a value
// in [-1, 1] from Black's perspective. The core never looks inside it —
// a single-method boundary kept as a plain function type since there is
// exactly one operation to dispatch.
type Evaluator func(planes Planes) (policy [362]float32, value float32, err error)

// Ensemble selects how GetScoredMoves picks a board symmetry.
type Ensemble int

const (
	// Direct evaluates under exactly the caller-supplied symmetry.
	Direct Ensemble = iota
	// Random evaluates under a uniformly chosen symmetry, which is how
	// self-play decorrelates the network's systematic biases.
	Random
)

// ScoredMove pairs a prior probability with the vertex it was computed
// for (PASS included).
type ScoredMove struct {
	Vertex board.Vertex
	Prior  float32
}

var errNilEvaluator = errors.New("network: Adapter has no Evaluator configured")

// Adapter owns the cache lookup, symmetry ensemble, and a bounded
// concurrency gate on calls into eval: a buffered-channel semaphore, since
// a real network may be GPU- or batching-bound and callers need a knob to
// cap how many goroutines hit it at once.
type Adapter struct {
	eval      Evaluator
	cache     *cache.Cache
	symTable  *board.SymmetryTable
	rng       *rand.Rand
	sem       chan struct{} // nil when MaxConcurrentEvals <= 0 (unbounded)
}

// NewAdapter builds an Adapter. maxConcurrentEvals <= 0 means unbounded.
func NewAdapter(eval Evaluator, c *cache.Cache, symTable *board.SymmetryTable, rngSeed int64, maxConcurrentEvals int) *Adapter {
	a := &Adapter{
		eval:     eval,
		cache:    c,
		symTable: symTable,
		rng:      rand.New(rand.NewSource(rngSeed)),
	}
	if maxConcurrentEvals > 0 {
		a.sem = make(chan struct{}, maxConcurrentEvals)
	}
	return a
}

// GetScoredMoves runs a cache lookup, then on a miss picks a symmetry,
// gathers features, calls the network, un-rotates the policy, normalises
// the value, and stores the result before returning it.
func (a *Adapter) GetScoredMoves(state *board.GameState, ensemble Ensemble, sym int, skipCache bool) (moves []ScoredMove, winrate float32, err error) {
	if a.eval == nil {
		return nil, 0, errNilEvaluator
	}

	hash := state.Board.KoHash()
	if !skipCache {
		if res, ok := a.cache.Lookup(hash); ok {
			return unpack(res, state.Board), sigmoid(res.Value), nil
		}
	}

	chosen := sym
	if ensemble == Random {
		chosen = a.rng.Intn(board.NumSymmetries)
	}

	planes := GatherFeatures(state, chosen, a.symTable)

	if a.sem != nil {
		a.sem <- struct{}{}
		defer func() { <-a.sem }()
	}

	rawPolicy, rawValue, evalErr := a.eval(planes)
	if evalErr != nil {
		return nil, 0, errors.Wrap(evalErr, "network: evaluator call failed")
	}

	// Un-rotate: policy[chosen-frame vertex] belongs at its pre-symmetry
	// vertex, found via the inverse permutation. PASS (index 361) is
	// rotation-invariant and copied straight across.
	var unrotated [362]float32
	for v := board.Vertex(0); v < board.Squares; v++ {
		src := a.symTable.Apply(chosen, v)
		unrotated[v] = rawPolicy[src]
	}
	unrotated[board.Squares] = rawPolicy[board.Squares]

	res := cache.EvalResult{Policy: unrotated, Value: rawValue}
	if !skipCache {
		a.cache.Insert(hash, res)
	}

	return unpack(res, state.Board), sigmoid(rawValue), nil
}

// unpack filters a cached/just-computed result down to empty vertices
// (PASS always retained).
func unpack(res cache.EvalResult, b *board.Board) []ScoredMove {
	moves := make([]ScoredMove, 0, board.Squares/2)
	for v := board.Vertex(0); v < board.Squares; v++ {
		if b.Square(v) == board.Empty {
			moves = append(moves, ScoredMove{Vertex: v, Prior: res.Policy[v]})
		}
	}
	moves = append(moves, ScoredMove{Vertex: board.PASS, Prior: res.Policy[board.Squares]})
	return moves
}

// sigmoid maps the network's [-1,1] value to a [0,1] winrate.
func sigmoid(v float32) float32 {
	return (1 + v) / 2
}
