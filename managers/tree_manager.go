package managers

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/render"
	"github.com/bawdo/sqltree/visitors"
)

// treeManager is the shared base for all manager types. It holds the
// transformer pipeline common to Select, Insert, Update, and Delete managers.
type treeManager struct {
	transformers []plugins.Transformer
}

// addTransformer appends a transformer plugin to the pipeline.
func (tm *treeManager) addTransformer(t plugins.Transformer) {
	tm.transformers = append(tm.transformers, t)
}

// Transformers returns the registered transformer pipeline.
func (tm *treeManager) Transformers() []plugins.Transformer {
	return tm.transformers
}

// transform runs the pipeline over a freshly built statement.
func (tm *treeManager) transform(stmt nodes.Statement) (nodes.Statement, error) {
	return plugins.Chain(tm.transformers...).Transform(stmt)
}

// toSQL transforms stmt and renders it with r, or with the ANSI renderer
// when r is nil.
func (tm *treeManager) toSQL(r *visitors.Renderer, stmt nodes.Statement) (render.Snapshot, error) {
	out, err := tm.transform(stmt)
	if err != nil {
		return render.Snapshot{}, err
	}
	if r == nil {
		r = visitors.NewRenderer()
	}
	return r.ToSQL(out)
}

// replaceTrait drops every trait of t's kind and appends t.
func replaceTrait(traits []nodes.Trait, t nodes.Trait) []nodes.Trait {
	return append(dropKind(traits, t.Kind()), t)
}

// dropKind removes every trait of kind k.
func dropKind(traits []nodes.Trait, k nodes.Kind) []nodes.Trait {
	out := traits[:0:0]
	for _, t := range traits {
		if t.Kind() != k {
			out = append(out, t)
		}
	}
	return out
}

// filterTraits wraps each condition in a Filter.
func filterTraits(conds []nodes.Condition) []nodes.Trait {
	traits := make([]nodes.Trait, 0, len(conds))
	for _, c := range conds {
		traits = append(traits, nodes.NewFilter(c))
	}
	return traits
}
