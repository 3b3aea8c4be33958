package mcts

import (
	"testing"

	"github.com/alphabeth/zerogo/board"
	"github.com/stretchr/testify/assert"
)

func TestApplyDirichletNoiseKeepsPriorsSummingToOne(t *testing.T) {
	root := newNode(board.PASS, 0, 0)
	a := newNode(board.VertexAt(0, 0), 0.5, 0)
	b := newNode(board.VertexAt(0, 1), 0.3, 0)
	c := newNode(board.VertexAt(0, 2), 0.2, 0)
	root.children = []*Node{a, b, c}
	root.expanded.Store(true)

	applyDirichletNoise(root, 7)

	var sum float32
	for _, n := range root.children {
		sum += n.Prior()
	}
	assert.InDelta(t, float32(1), sum, 1e-3)
}

func TestApplyDirichletNoiseIsDeterministicForAFixedSeed(t *testing.T) {
	build := func() *Node {
		root := newNode(board.PASS, 0, 0)
		root.children = []*Node{
			newNode(board.VertexAt(0, 0), 0.5, 0),
			newNode(board.VertexAt(0, 1), 0.5, 0),
		}
		root.expanded.Store(true)
		return root
	}

	r1 := build()
	applyDirichletNoise(r1, 42)
	r2 := build()
	applyDirichletNoise(r2, 42)

	for i := range r1.children {
		assert.Equal(t, r1.children[i].Prior(), r2.children[i].Prior())
	}
}

func TestApplyDirichletNoiseOnChildlessRootIsNoOp(t *testing.T) {
	root := newNode(board.PASS, 0, 0)
	root.expanded.Store(true)
	assert.NotPanics(t, func() { applyDirichletNoise(root, 1) })
}
