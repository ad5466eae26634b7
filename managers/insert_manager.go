package managers

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/render"
	"github.com/bawdo/sqltree/visitors"
)

// InsertManager provides a fluent API for building INSERT statements.
type InsertManager struct {
	treeManager
	into       *nodes.Table
	columns    []*nodes.Column
	rows       []*nodes.Tuple
	source     *SelectManager
	onConflict *nodes.OnConflict
	traits     []nodes.Trait
}

// NewInsertManager creates a new InsertManager targeting the given table.
func NewInsertManager(into *nodes.Table) *InsertManager {
	return &InsertManager{into: into}
}

// Columns sets the column list for the INSERT statement.
func (m *InsertManager) Columns(cols ...*nodes.Column) *InsertManager {
	m.columns = cols
	return m
}

// Values appends a row of values to the INSERT statement.
// Each call to Values adds one row. Raw Go values are wrapped with
// nodes.Lit; expressions are used as-is.
func (m *InsertManager) Values(vals ...any) *InsertManager {
	row := make([]nodes.Expr, len(vals))
	for i, v := range vals {
		row[i] = nodes.Lit(v)
	}
	m.rows = append(m.rows, nodes.NewTuple(row...))
	return m
}

// FromSelect sets a SELECT subquery as the source of rows.
// When set, Values are ignored.
func (m *InsertManager) FromSelect(sel *SelectManager) *InsertManager {
	m.source = sel
	return m
}

// Returning sets the RETURNING clause expressions.
func (m *InsertManager) Returning(exprs ...nodes.Expr) *InsertManager {
	m.traits = replaceTrait(m.traits, nodes.NewReturning(exprs...))
	return m
}

// Comment adds a statement comment.
func (m *InsertManager) Comment(text string) *InsertManager {
	m.traits = append(m.traits, nodes.NewComment(text))
	return m
}

// OnConflict begins an ON CONFLICT clause targeting the given columns.
// Returns an OnConflictContext for specifying the action.
func (m *InsertManager) OnConflict(cols ...*nodes.Column) *OnConflictContext {
	oc := &nodes.OnConflict{Columns: cols}
	m.onConflict = oc
	return &OnConflictContext{manager: m, node: oc}
}

// Use registers a transformer plugin.
func (m *InsertManager) Use(t plugins.Transformer) *InsertManager {
	m.addTransformer(t)
	return m
}

// Build lowers the manager's state onto a new Insert.
func (m *InsertManager) Build() *nodes.Insert {
	ins := nodes.NewInsert(m.into, append([]*nodes.Column(nil), m.columns...)...)
	if m.source != nil {
		ins.Query = m.source.Build()
	} else {
		ins.Rows = append([]*nodes.Tuple(nil), m.rows...)
	}
	if m.onConflict != nil {
		c := *m.onConflict
		ins.OnConflict = &c
	}
	ins.Traits = append([]nodes.Trait(nil), m.traits...)
	return ins
}

// Statement builds the insert and applies all registered transformers.
func (m *InsertManager) Statement() (nodes.Statement, error) {
	return m.transform(m.Build())
}

// ToSQL applies transformers and renders the result with r.
func (m *InsertManager) ToSQL(r *visitors.Renderer) (render.Snapshot, error) {
	return m.toSQL(r, m.Build())
}

// OnConflictContext guides ON CONFLICT clause construction.
type OnConflictContext struct {
	manager *InsertManager
	node    *nodes.OnConflict
}

// DoNothing sets the action to DO NOTHING and returns the InsertManager.
func (c *OnConflictContext) DoNothing() *InsertManager {
	c.node.DoNothing = true
	c.node.Set = nil
	return c.manager
}

// DoUpdate sets the action to DO UPDATE with the given assignments.
// Returns an OnConflictUpdateContext for an optional WHERE clause.
func (c *OnConflictContext) DoUpdate(assignments ...*nodes.Assignment) *OnConflictUpdateContext {
	c.node.DoNothing = false
	c.node.Set = assignments
	return &OnConflictUpdateContext{manager: c.manager, node: c.node}
}

// OnConflictUpdateContext allows adding a WHERE to DO UPDATE.
type OnConflictUpdateContext struct {
	manager *InsertManager
	node    *nodes.OnConflict
}

// Where adds conditions to the ON CONFLICT DO UPDATE clause.
func (c *OnConflictUpdateContext) Where(conditions ...nodes.Condition) *InsertManager {
	c.node.Where = nodes.AllOf(conditions...)
	return c.manager
}

// Done returns the InsertManager without a WHERE.
func (c *OnConflictUpdateContext) Done() *InsertManager {
	return c.manager
}
