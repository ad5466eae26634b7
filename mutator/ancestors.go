package mutator

import (
	"golang.org/x/exp/slices"

	"github.com/bawdo/sqltree/nodes"
)

// Ancestors is the path from the root of the traversal down to, but not
// including, the node currently being decided. Index 0 is the root.
type Ancestors struct {
	items []nodes.Node
}

// Len returns the number of ancestors.
func (a *Ancestors) Len() int { return len(a.items) }

// At returns the i-th ancestor, 0 being the root.
func (a *Ancestors) At(i int) nodes.Node { return a.items[i] }

// Parent returns the nearest ancestor, or nil at the root.
func (a *Ancestors) Parent() nodes.Node {
	if len(a.items) == 0 {
		return nil
	}
	return a.items[len(a.items)-1]
}

// IndexOf returns the position of n by identity, or -1.
func (a *Ancestors) IndexOf(n nodes.Node) int {
	return slices.IndexFunc(a.items, func(x nodes.Node) bool { return x == n })
}

// Nearest returns the closest ancestor of the given kind.
func (a *Ancestors) Nearest(k nodes.Kind) (nodes.Node, bool) {
	for i := len(a.items) - 1; i >= 0; i-- {
		if a.items[i].Kind() == k {
			return a.items[i], true
		}
	}
	return nil, false
}

// All returns a copy of the path, root first.
func (a *Ancestors) All() []nodes.Node { return slices.Clone(a.items) }

func (a *Ancestors) push(n nodes.Node) { a.items = append(a.items, n) }

func (a *Ancestors) pop() {
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
}
