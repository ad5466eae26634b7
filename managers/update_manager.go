package managers

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/render"
	"github.com/bawdo/sqltree/visitors"
)

// UpdateManager provides a fluent API for building UPDATE statements.
type UpdateManager struct {
	treeManager
	table   *nodes.Table
	set     []*nodes.Assignment
	from    *SelectManager
	filters []nodes.Condition
	traits  []nodes.Trait
}

// NewUpdateManager creates a new UpdateManager targeting the given table.
func NewUpdateManager(table *nodes.Table) *UpdateManager {
	return &UpdateManager{table: table}
}

// Set adds a column assignment to the SET clause.
// val can be a raw Go value or an expression.
func (m *UpdateManager) Set(col *nodes.Column, val any) *UpdateManager {
	m.set = append(m.set, nodes.NewAssignment(col, nodes.Lit(val)))
	return m
}

// From adds an UPDATE ... FROM source (PostgreSQL, SQLite). Joins added to
// the returned manager become joins of the FROM clause; its filters join
// the WHERE clause.
func (m *UpdateManager) From(rs nodes.RecordSet) *SelectManager {
	m.from = NewSelectManager(rs)
	return m.from
}

// Where appends conditions to the WHERE clause.
func (m *UpdateManager) Where(conditions ...nodes.Condition) *UpdateManager {
	m.filters = append(m.filters, conditions...)
	return m
}

// Returning sets the RETURNING clause expressions.
func (m *UpdateManager) Returning(exprs ...nodes.Expr) *UpdateManager {
	m.traits = replaceTrait(m.traits, nodes.NewReturning(exprs...))
	return m
}

// Comment adds a statement comment.
func (m *UpdateManager) Comment(text string) *UpdateManager {
	m.traits = append(m.traits, nodes.NewComment(text))
	return m
}

// Use registers a transformer plugin.
func (m *UpdateManager) Use(t plugins.Transformer) *UpdateManager {
	m.addTransformer(t)
	return m
}

// Build lowers the manager's state onto a new Update.
func (m *UpdateManager) Build() *nodes.Update {
	upd := nodes.NewUpdate(m.table, append([]*nodes.Assignment(nil), m.set...)...)
	if m.from != nil {
		upd.From = m.from.Build().Source
	}
	upd.Traits = append(filterTraits(m.filters), m.traits...)
	return upd
}

// Statement builds the update and applies all registered transformers.
func (m *UpdateManager) Statement() (nodes.Statement, error) {
	return m.transform(m.Build())
}

// ToSQL applies transformers and renders the result with r.
func (m *UpdateManager) ToSQL(r *visitors.Renderer) (render.Snapshot, error) {
	return m.toSQL(r, m.Build())
}
