// Command selfplay wires a deterministic dummy Evaluator to a GoEngine
// and plays a few games to exercise GenMove/Play/FinalScore end to end,
// without a real network.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/alphabeth/zerogo"
	"github.com/alphabeth/zerogo/board"
	"github.com/alphabeth/zerogo/network"
)

var (
	games       = flag.Int("games", 1, "number of self-play games to run")
	playouts    = flag.Int("playouts", 64, "MCTS playouts per move")
	maxMoves    = flag.Int("max_moves", 2*board.Squares, "move limit per game; the game is then scored as it stands")
	seed        = flag.Uint64("seed", 1, "RNG seed for the dummy evaluator and the search")
	verboseMove = flag.Bool("v", false, "print every move as it is played")
)

// dummyEvaluator returns a uniform policy and a value nudged by a small
// random perturbation, so different games actually diverge without any
// real network in the loop.
func dummyEvaluator(rng *rand.Rand) network.Evaluator {
	return func(_ network.Planes) (policy [362]float32, value float32, err error) {
		for i := range policy {
			policy[i] = 1
		}
		value = 0.5 + (rng.Float32()-0.5)*0.1
		return policy, value, nil
	}
}

func main() {
	flag.Parse()
	logger := log.New(os.Stdout, "selfplay: ", log.Ltime)

	for g := 0; g < *games; g++ {
		if err := playOneGame(g, logger); err != nil {
			logger.Fatalf("game %d: %v", g, err)
		}
	}
}

func playOneGame(gameNum int, logger *log.Logger) error {
	rng := rand.New(rand.NewSource(int64(*seed) + int64(gameNum)))

	cfg := zerogo.DefaultConfig()
	cfg.Threads = 1
	cfg.MaxPlayouts = *playouts
	cfg.RNGSeed = *seed + uint64(gameNum)
	cfg.Logger = logger

	engine, err := zerogo.NewGoEngine(cfg, dummyEvaluator(rng))
	if err != nil {
		return err
	}
	engine.SetKomi(7.5)

	toMove := board.Black
	for move := 0; move < *maxMoves; move++ {
		v, err := engine.GenMove(toMove)
		if err != nil {
			return err
		}
		if *verboseMove {
			fmt.Printf("game %d move %d: %v plays %v\n", gameNum, move, toMove, v)
		}
		if v == board.RESIGN {
			logger.Printf("game %d: %v resigns at move %d", gameNum, toMove, move)
			break
		}
		toMove = board.Opponent(toMove)
		if engine.GameOver() {
			break
		}
	}

	score := engine.FinalScore()
	logger.Printf("game %d finished: black area score (komi applied) = %.1f", gameNum, score)
	return nil
}
