package managers

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/render"
	"github.com/bawdo/sqltree/visitors"
)

// DeleteManager provides a fluent API for building DELETE statements.
type DeleteManager struct {
	treeManager
	from    *nodes.Table
	using   *SelectManager
	filters []nodes.Condition
	traits  []nodes.Trait
}

// NewDeleteManager creates a new DeleteManager targeting the given table.
func NewDeleteManager(from *nodes.Table) *DeleteManager {
	return &DeleteManager{from: from}
}

// Using adds a DELETE ... USING source (PostgreSQL). Joins added to the
// returned manager become joins of the USING clause.
func (m *DeleteManager) Using(rs nodes.RecordSet) *SelectManager {
	m.using = NewSelectManager(rs)
	return m.using
}

// Where appends conditions to the WHERE clause.
func (m *DeleteManager) Where(conditions ...nodes.Condition) *DeleteManager {
	m.filters = append(m.filters, conditions...)
	return m
}

// Returning sets the RETURNING clause expressions.
func (m *DeleteManager) Returning(exprs ...nodes.Expr) *DeleteManager {
	m.traits = replaceTrait(m.traits, nodes.NewReturning(exprs...))
	return m
}

// Comment adds a statement comment.
func (m *DeleteManager) Comment(text string) *DeleteManager {
	m.traits = append(m.traits, nodes.NewComment(text))
	return m
}

// Use registers a transformer plugin.
func (m *DeleteManager) Use(t plugins.Transformer) *DeleteManager {
	m.addTransformer(t)
	return m
}

// Build lowers the manager's state onto a new Delete.
func (m *DeleteManager) Build() *nodes.Delete {
	del := nodes.NewDelete(m.from)
	if m.using != nil {
		del.Using = m.using.Build().Source
	}
	del.Traits = append(filterTraits(m.filters), m.traits...)
	return del
}

// Statement builds the delete and applies all registered transformers.
func (m *DeleteManager) Statement() (nodes.Statement, error) {
	return m.transform(m.Build())
}

// ToSQL applies transformers and renders the result with r.
func (m *DeleteManager) ToSQL(r *visitors.Renderer) (render.Snapshot, error) {
	return m.toSQL(r, m.Build())
}
