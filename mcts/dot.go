package mcts

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
)

// WriteDOT renders the current tree (down to maxDepth levels below the
// root) as GraphViz DOT, for offline inspection of a search's shape —
// which lines got explored, where priors and visit counts diverged.
func (e *Engine) WriteDOT(w io.Writer, maxDepth int) error {
	e.mu.Lock()
	root := e.root
	e.mu.Unlock()

	g := gographviz.NewGraph()
	if err := g.SetName("tree"); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}
	if root == nil {
		_, err := io.WriteString(w, g.String())
		return err
	}

	var counter int
	var walk func(n *Node, id string, depth int) error
	walk = func(n *Node, id string, depth int) error {
		label := fmt.Sprintf(`"v=%d visits=%d prior=%.3f valid=%v"`,
			n.Move(), n.Visits(), n.Prior(), n.IsValid())
		if err := g.AddNode("tree", id, map[string]string{"label": label}); err != nil {
			return err
		}
		if depth >= maxDepth {
			return nil
		}
		for _, c := range n.Children() {
			counter++
			cid := fmt.Sprintf("n%d", counter)
			if err := walk(c, cid, depth+1); err != nil {
				return err
			}
			if err := g.AddEdge(id, cid, true, nil); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, "root", 0); err != nil {
		return err
	}

	_, err := io.WriteString(w, g.String())
	return err
}
