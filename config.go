package zerogo

import (
	"log"

	"github.com/alphabeth/zerogo/mcts"
)

// Config carries every tunable a caller can set before building a
// GoEngine: the search knobs named by the external interface, plus the
// network-adapter concurrency gate and an optional logger.
type Config struct {
	// Threads is the search worker-pool size, clamped to [1, NumCPU()].
	Threads int
	// MaxPlayouts stops a search after this many completed simulations.
	MaxPlayouts int
	// MaxVisits stops a search once the root's visit count reaches this.
	MaxVisits int
	// PUCT is the exploration constant in the PUCT selection formula.
	PUCT float32
	// FPUReduction scales the unvisited-child optimism reduction.
	FPUReduction float32
	// SoftmaxTemp is passed through to the Evaluator boundary.
	SoftmaxTemp float32
	// Noise enables root Dirichlet exploration noise.
	Noise bool
	// RandomCnt: opening moves below this move number sample
	// proportionally to visit count instead of taking the argmax.
	RandomCnt int
	// ResignPct: -1 is the default 10%, 0 disables resignation, anything
	// else in [1,100] is the literal resignation percentage.
	ResignPct int
	// RNGSeed seeds the Zobrist table, the network adapter's symmetry
	// draws, Dirichlet noise and proportional-sampling draws.
	RNGSeed uint64
	// MaxConcurrentEvals bounds how many Evaluator calls may be in flight
	// at once; 0 defaults to runtime.NumCPU().
	MaxConcurrentEvals int
	// Logger, if set, receives diagnostic output from both the search
	// engine and the driver. A nil Logger is a silent no-op.
	Logger *log.Logger
}

// DefaultConfig mirrors mcts.DefaultConfig for match play: no root noise,
// no opening randomisation, default resignation.
func DefaultConfig() Config {
	d := mcts.DefaultConfig()
	return Config{
		Threads:      d.Threads,
		MaxPlayouts:  d.MaxPlayouts,
		MaxVisits:    d.MaxVisits,
		PUCT:         d.PUCT,
		FPUReduction: d.FPUReduction,
		SoftmaxTemp:  d.SoftmaxTemp,
		Noise:        d.Noise,
		RandomCnt:    d.RandomCnt,
		ResignPct:    d.ResignPct,
	}
}

func (c Config) mctsConfig() mcts.Config {
	return mcts.Config{
		Threads:      c.Threads,
		MaxPlayouts:  c.MaxPlayouts,
		MaxVisits:    c.MaxVisits,
		PUCT:         c.PUCT,
		FPUReduction: c.FPUReduction,
		SoftmaxTemp:  c.SoftmaxTemp,
		Noise:        c.Noise,
		RandomCnt:    c.RandomCnt,
		ResignPct:    c.ResignPct,
		RNGSeed:      c.RNGSeed,
	}
}
