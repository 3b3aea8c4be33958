package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// dirichletAlpha is the concentration parameter for root exploration
// noise; dirichletWeight is how much of the mix comes from the noise
// sample versus the network's own prior.
const (
	dirichletAlpha  = 0.03
	dirichletWeight = 0.25
)

// applyDirichletNoise mixes an alpha=0.03 Dirichlet sample into every root
// child's prior at weight 0.25, run exactly once per search when enabled.
func applyDirichletNoise(root *Node, seed uint64) {
	children := root.Children()
	if len(children) == 0 {
		return
	}
	alpha := make([]float64, len(children))
	for i := range alpha {
		alpha[i] = dirichletAlpha
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(seed))
	noise := dist.Rand(nil)
	for i, c := range children {
		c.prior = (1-dirichletWeight)*c.prior + dirichletWeight*float32(noise[i])
	}
}
