package mcts

import "github.com/pkg/errors"

// Sentinel errors returned by the search engine and its tree operations.
var (
	// ErrExpanding is returned by Node.Expand when another goroutine already
	// holds the node's expansion lock; the caller must abort its descent
	// (undoing virtual losses) rather than wait, per the engine's
	// non-blocking expansion-lock contract.
	ErrExpanding = errors.New("mcts: node is already being expanded by another worker")

	// ErrEvalFailure wraps a non-nil error surfaced by the configured
	// network.Evaluator during expansion.
	ErrEvalFailure = errors.New("mcts: network evaluation failed")

	// ErrIllegalMove is returned by a caller-facing Play operation when the
	// requested vertex is not legal in the current position (ko, suicide,
	// superko, or already occupied).
	ErrIllegalMove = errors.New("mcts: move is not legal in the current position")

	// ErrTreeFull is returned by Think when the tree has already reached
	// MaxTreeSize before the root itself could be expanded, so no search
	// is possible at all (as opposed to the in-search ceiling, which just
	// falls individual leaves back to their stored InitEval).
	ErrTreeFull = errors.New("mcts: search tree has reached its node ceiling")

	// ErrSuperkoRoot is returned by Think when the current root position
	// already repeats an earlier position in the game's history — a
	// defensive check, since a conforming driver's Play should never let
	// such a position become the root in the first place.
	ErrSuperkoRoot = errors.New("mcts: root position already repeats an earlier position in this game")

	// ErrNotReady is returned by Think when called before Reset has ever
	// established a root position.
	ErrNotReady = errors.New("mcts: engine has no root state, call Reset first")
)
