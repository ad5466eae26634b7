// Package bindparams inlines parameter values as literals.
//
//	b := bindparams.New(map[string]any{"id": 7})
//	query.Use(b.Transformer())
//	// ... WHERE "users"."id" = @id  becomes  ... WHERE "users"."id" = 7
//
// Parameters with no value in the map are left in place. Parameters listed
// by raw SQL nodes are never inlined because the raw text still names them.
package bindparams

import (
	"golang.org/x/exp/slices"

	"github.com/bawdo/sqltree/mutator"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/visitors"
)

// Binder is a mutator.Decider that swaps parameters for literals.
type Binder struct {
	values map[string]any
}

var _ mutator.Decider = (*Binder)(nil)

// New creates a Binder over values, keyed by parameter name.
func New(values map[string]any) *Binder {
	return &Binder{values: values}
}

// Transformer returns b as a statement transformer.
func (b *Binder) Transformer(opts ...mutator.Option) plugins.Transformer {
	return plugins.FromDecider(b, opts...)
}

func (b *Binder) Mutate(n nodes.Node, ancestors *mutator.Ancestors) mutator.Outcome {
	p, ok := n.(*nodes.Parameter)
	if !ok {
		return mutator.Unchanged()
	}
	if isRaw(ancestors.Parent()) {
		return mutator.Unchanged()
	}
	v, ok := b.values[p.Name]
	if !ok {
		return mutator.Unchanged()
	}
	return mutator.Leaf(literal(v, p))
}

// Unbound returns the names of parameters that stay placeholders after
// binding root, in order of first appearance: those with no value and those
// listed by raw nodes.
func (b *Binder) Unbound(root nodes.Node) []string {
	var names []string
	add := func(name string) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	visitors.Inspect(root, func(n nodes.Node) bool {
		if ps, ok := rawParams(n); ok {
			for _, p := range ps {
				add(p.Name)
			}
			return false
		}
		if p, ok := n.(*nodes.Parameter); ok {
			if _, bound := b.values[p.Name]; !bound {
				add(p.Name)
			}
		}
		return true
	})
	return names
}

func literal(v any, p *nodes.Parameter) nodes.Expr {
	switch {
	case v == nil:
		return nodes.NewNull()
	case p.ValueType.IsKnown():
		return nodes.TypedLiteral(v, p.ValueType)
	default:
		return nodes.NewLiteral(v)
	}
}

func rawParams(n nodes.Node) ([]*nodes.Parameter, bool) {
	switch r := n.(type) {
	case *nodes.RawExpr:
		return r.Params, true
	case *nodes.RawCondition:
		return r.Params, true
	case *nodes.RawRecordSet:
		return r.Params, true
	case *nodes.RawQuery:
		return r.Params, true
	case *nodes.RawStatement:
		return r.Params, true
	}
	return nil, false
}

func isRaw(n nodes.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case nodes.KindRawExpr, nodes.KindRawCondition, nodes.KindRawRecordSet,
		nodes.KindRawQuery, nodes.KindRawStatement:
		return true
	}
	return false
}
