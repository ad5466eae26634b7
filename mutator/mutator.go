// Package mutator rewrites node trees. A Decider inspects every node together
// with its ancestors and returns an Outcome; the Mutator substitutes
// replacements, rebuilds only the nodes whose children changed and shares
// every untouched subtree with the input.
package mutator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bawdo/sqltree/nodes"
)

// DefaultMaxDepth bounds how many Continue substitutions may be nested on
// one path from the root. Plain tree depth is not limited.
const DefaultMaxDepth = 4096

// ErrMaxDepth is returned when Continue substitutions nest deeper than the
// configured limit, usually because a rule keeps re-matching its own output.
var ErrMaxDepth = errors.New("mutator: maximum depth exceeded")

type mode int

const (
	modeUnchanged mode = iota
	modeLeaf
	modeContinue
)

var modeNames = [...]string{modeUnchanged: "unchanged", modeLeaf: "leaf", modeContinue: "continue"}

// Outcome is the decision taken for one node.
type Outcome struct {
	mode mode
	node nodes.Node
}

// Leaf substitutes n verbatim; its children are not visited.
func Leaf(n nodes.Node) Outcome { return Outcome{mode: modeLeaf, node: n} }

// Continue substitutes n and then visits it as if it had been in the tree,
// so rules may apply again inside it.
func Continue(n nodes.Node) Outcome { return Outcome{mode: modeContinue, node: n} }

// Unchanged keeps the node and descends into its children.
func Unchanged() Outcome { return Outcome{} }

// Replacement returns the substituted node, or nil for Unchanged.
func (o Outcome) Replacement() nodes.Node { return o.node }

// IsUnchanged reports whether o keeps the node.
func (o Outcome) IsUnchanged() bool { return o.mode == modeUnchanged }

func (o Outcome) String() string { return modeNames[o.mode] }

// Decider chooses an Outcome for each node. The ancestors view is only valid
// for the duration of the call.
type Decider interface {
	Mutate(n nodes.Node, ancestors *Ancestors) Outcome
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(n nodes.Node, ancestors *Ancestors) Outcome

func (f DeciderFunc) Mutate(n nodes.Node, a *Ancestors) Outcome { return f(n, a) }

// NoOp keeps every node. Mutating with NoOp returns the input tree.
var NoOp Decider = DeciderFunc(func(nodes.Node, *Ancestors) Outcome { return Unchanged() })

// Option configures a Mutator.
type Option func(*Mutator)

// WithLogger logs every substitution at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mutator) { m.logger = l }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(m *Mutator) { m.maxDepth = depth }
}

// Mutator applies a Decider to whole trees. It holds no per-traversal state
// and may be shared between goroutines when its Decider is stateless.
type Mutator struct {
	decider  Decider
	logger   *slog.Logger
	maxDepth int
}

// New creates a Mutator. A nil decider behaves like NoOp.
func New(d Decider, opts ...Option) *Mutator {
	if d == nil {
		d = NoOp
	}
	m := &Mutator{
		decider:  d,
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Mutate rewrites root. Unchanged subtrees, and root itself when nothing
// changed, are returned by identity.
func (m *Mutator) Mutate(root nodes.Node) (nodes.Node, error) {
	if root == nil {
		return nil, nil
	}
	w := &walk{m: m}
	res, err := w.visit(root)
	if err != nil {
		return root, err
	}
	if res == nil {
		return root, &TypeError{Child: root, Expected: nodes.CategoryOf(root), Slot: "root"}
	}
	return res, nil
}

// Apply mutates root and checks that the result still has root's Go type.
func Apply[T nodes.Node](m *Mutator, root T) (T, error) {
	res, err := m.Mutate(root)
	if err != nil {
		return root, err
	}
	typed, ok := res.(T)
	if !ok {
		return root, &TypeError{Child: root, Replacement: res, Expected: nodes.CategoryOf(root), Slot: "root"}
	}
	return typed, nil
}

// TypeError reports a replacement that does not fit the slot it was placed
// in. Parent is nil when the slot is the root of the traversal.
type TypeError struct {
	Parent      nodes.Node
	Child       nodes.Node
	Replacement nodes.Node
	Expected    nodes.Category
	Slot        string
}

func (e *TypeError) Error() string {
	got := "nil"
	if e.Replacement != nil {
		got = fmt.Sprintf("%s (%s)", e.Replacement.Kind(), nodes.CategoryOf(e.Replacement))
	}
	where := e.Slot
	if e.Parent != nil {
		where = e.Parent.Kind().String() + "." + e.Slot
	}
	return fmt.Sprintf("mutator: cannot replace %s in %s with %s: expected %s",
		e.Child.Kind(), where, got, e.Expected)
}

// walk is the state of one traversal. cascade counts the Continue
// substitutions on the current path.
type walk struct {
	m       *Mutator
	anc     Ancestors
	cascade int
}

func (w *walk) visit(n nodes.Node) (nodes.Node, error) {
	out := w.m.decider.Mutate(n, &w.anc)
	switch out.mode {
	case modeLeaf:
		w.log(n, out)
		return out.node, nil
	case modeContinue:
		if out.node == nil {
			return nil, nil
		}
		if out.node != n {
			w.log(n, out)
			if w.cascade >= w.m.maxDepth {
				return n, fmt.Errorf("%w at %s (depth %d)", ErrMaxDepth, n.Kind(), w.cascade+1)
			}
			w.cascade++
			res, err := w.visit(out.node)
			w.cascade--
			return res, err
		}
	}

	w.anc.push(n)
	res, err := w.rebuild(n)
	w.anc.pop()
	return res, err
}

func (w *walk) log(n nodes.Node, out Outcome) {
	repl := "nil"
	if out.node != nil {
		repl = out.node.Kind().String()
	}
	w.m.logger.Debug("mutator: substituted node",
		"mode", out.String(),
		"kind", n.Kind().String(),
		"replacement", repl,
		"depth", w.anc.Len())
}
