// Package plugins defines the Transformer interface for statement middleware.
package plugins

import (
	"fmt"

	"github.com/bawdo/sqltree/mutator"
	"github.com/bawdo/sqltree/nodes"
)

// Transformer rewrites a statement before it is rendered. Implementations
// must not modify their input; trees are immutable.
type Transformer interface {
	Transform(stmt nodes.Statement) (nodes.Statement, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(stmt nodes.Statement) (nodes.Statement, error)

func (f TransformerFunc) Transform(stmt nodes.Statement) (nodes.Statement, error) { return f(stmt) }

// BaseTransformer returns every statement unchanged.
type BaseTransformer struct{}

func (BaseTransformer) Transform(stmt nodes.Statement) (nodes.Statement, error) { return stmt, nil }

// FromDecider runs d over the whole statement with a mutator. A rewrite that
// would turn the statement into something that is not a statement fails with
// *mutator.TypeError.
func FromDecider(d mutator.Decider, opts ...mutator.Option) Transformer {
	return &deciderTransformer{m: mutator.New(d, opts...)}
}

type deciderTransformer struct {
	m *mutator.Mutator
}

func (t *deciderTransformer) Transform(stmt nodes.Statement) (nodes.Statement, error) {
	if stmt == nil {
		return nil, nil
	}
	return mutator.Apply(t.m, stmt)
}

// Chain applies transformers in order, feeding each the previous result.
func Chain(ts ...Transformer) Transformer {
	return TransformerFunc(func(stmt nodes.Statement) (nodes.Statement, error) {
		for i, t := range ts {
			out, err := t.Transform(stmt)
			if err != nil {
				return stmt, fmt.Errorf("plugins: transformer %d: %w", i, err)
			}
			stmt = out
		}
		return stmt, nil
	})
}
