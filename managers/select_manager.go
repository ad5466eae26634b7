// Package managers provides high-level fluent APIs for building statement
// trees. Managers are mutable builders; Build lowers their state onto the
// immutable node model, attaching clauses as traits in call order.
package managers

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
	"github.com/bawdo/sqltree/render"
	"github.com/bawdo/sqltree/visitors"
)

// SelectManager provides a fluent API for building SELECT queries.
// Transformer plugins run over the built query before SQL generation.
type SelectManager struct {
	treeManager
	from       nodes.RecordSet
	joins      []*nodes.Join
	filters    []nodes.Condition
	projection []nodes.Expr
	traits     []nodes.Trait
	skipLocked bool
}

// NewSelectManager creates a new SelectManager with the given record set as
// FROM. If from is nil, the FROM clause is left unset.
func NewSelectManager(from nodes.RecordSet) *SelectManager {
	return &SelectManager{from: from}
}

// Select sets the projection list, replacing any existing projections.
// No projections means *.
func (m *SelectManager) Select(projections ...nodes.Expr) *SelectManager {
	m.projection = projections
	return m
}

// Project is an alias for Select (Ruby Arel uses "project").
func (m *SelectManager) Project(projections ...nodes.Expr) *SelectManager {
	return m.Select(projections...)
}

// Distinct enables or disables the DISTINCT modifier on the SELECT clause.
func (m *SelectManager) Distinct(on ...bool) *SelectManager {
	if len(on) == 0 || on[0] {
		m.traits = replaceTrait(m.traits, nodes.NewDistinct())
		return m
	}
	m.traits = dropKind(m.traits, nodes.KindDistinct)
	return m
}

// DistinctOn sets the DISTINCT ON expressions (PostgreSQL).
func (m *SelectManager) DistinctOn(exprs ...nodes.Expr) *SelectManager {
	m.traits = replaceTrait(m.traits, nodes.NewDistinct(exprs...))
	return m
}

// Where appends one or more conditions to the WHERE clause.
// Multiple calls to Where are combined with AND.
func (m *SelectManager) Where(conditions ...nodes.Condition) *SelectManager {
	m.filters = append(m.filters, conditions...)
	return m
}

// From sets or changes the FROM source.
func (m *SelectManager) From(rs nodes.RecordSet) *SelectManager {
	m.from = rs
	return m
}

// Join adds a join to the query and returns a JoinContext for specifying
// the ON condition. The default join type is InnerJoin.
func (m *SelectManager) Join(rs nodes.RecordSet, joinTypes ...nodes.JoinType) *JoinContext {
	jt := nodes.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	join := nodes.NewJoin(jt, rs, nil)
	m.joins = append(m.joins, join)
	return &JoinContext{manager: m, join: join}
}

// OuterJoin is a convenience for Join with LeftJoin type.
func (m *SelectManager) OuterJoin(rs nodes.RecordSet) *JoinContext {
	return m.Join(rs, nodes.LeftJoin)
}

// LateralJoin adds a LATERAL join (PostgreSQL). Default join type is InnerJoin.
func (m *SelectManager) LateralJoin(rs nodes.RecordSet, joinTypes ...nodes.JoinType) *JoinContext {
	jc := m.Join(rs, joinTypes...)
	jc.join.Lateral = true
	return jc
}

// CrossJoin adds a cross join (no ON clause).
func (m *SelectManager) CrossJoin(rs nodes.RecordSet) *SelectManager {
	m.joins = append(m.joins, nodes.NewJoin(nodes.CrossJoin, rs, nil))
	return m
}

// Group appends one or more expressions to the GROUP BY clause.
func (m *SelectManager) Group(exprs ...nodes.Expr) *SelectManager {
	m.traits = append(m.traits, nodes.NewGroupBy(exprs...))
	return m
}

// Having appends one or more conditions to the HAVING clause.
// Multiple calls to Having are combined with AND.
func (m *SelectManager) Having(conditions ...nodes.Condition) *SelectManager {
	for _, c := range conditions {
		m.traits = append(m.traits, nodes.NewHaving(c))
	}
	return m
}

// Window appends one or more named window definitions to the WINDOW clause.
func (m *SelectManager) Window(defs ...*nodes.Window) *SelectManager {
	for _, d := range defs {
		m.traits = append(m.traits, d)
	}
	return m
}

// Order appends to the ORDER BY clause
// (e.g., nodes.NewAsc(table.Col("name"))).
func (m *SelectManager) Order(orderings ...*nodes.Ordering) *SelectManager {
	m.traits = append(m.traits, nodes.NewSort(orderings...))
	return m
}

// Limit sets the LIMIT value.
func (m *SelectManager) Limit(n int) *SelectManager {
	m.traits = replaceTrait(m.traits, nodes.NewLimit(nodes.NewLiteral(n)))
	return m
}

// Offset sets the OFFSET value.
func (m *SelectManager) Offset(n int) *SelectManager {
	m.traits = replaceTrait(m.traits, nodes.NewOffset(nodes.NewLiteral(n)))
	return m
}

// Take is an alias for Limit (Ruby Arel convention).
func (m *SelectManager) Take(n int) *SelectManager {
	return m.Limit(n)
}

func (m *SelectManager) lock(mode nodes.LockMode) *SelectManager {
	m.traits = replaceTrait(m.traits, nodes.NewLock(mode))
	return m
}

// ForUpdate sets the FOR UPDATE lock mode.
func (m *SelectManager) ForUpdate() *SelectManager { return m.lock(nodes.ForUpdate) }

// ForShare sets the FOR SHARE lock mode.
func (m *SelectManager) ForShare() *SelectManager { return m.lock(nodes.ForShare) }

// ForNoKeyUpdate sets the FOR NO KEY UPDATE lock mode.
func (m *SelectManager) ForNoKeyUpdate() *SelectManager { return m.lock(nodes.ForNoKeyUpdate) }

// ForKeyShare sets the FOR KEY SHARE lock mode.
func (m *SelectManager) ForKeyShare() *SelectManager { return m.lock(nodes.ForKeyShare) }

// SkipLocked adds SKIP LOCKED to the lock mode. It has no effect without one.
func (m *SelectManager) SkipLocked() *SelectManager {
	m.skipLocked = true
	return m
}

// Comment adds a query comment (rendered as /* ... */).
// Any occurrence of */ in the text is sanitized to prevent comment breakout.
func (m *SelectManager) Comment(text string) *SelectManager {
	m.traits = append(m.traits, nodes.NewComment(text))
	return m
}

// Hint adds an optimizer hint (rendered as /*+ ... */ after SELECT).
// Any occurrence of */ in the hint is sanitized to prevent comment breakout.
func (m *SelectManager) Hint(hint string) *SelectManager {
	m.traits = append(m.traits, nodes.NewHint(hint))
	return m
}

// With adds a Common Table Expression (WITH clause).
func (m *SelectManager) With(name string, query nodes.Query, columns ...string) *SelectManager {
	m.traits = append(m.traits, nodes.NewWith(nodes.NewCommonTableExpr(name, query, columns...)))
	return m
}

// WithRecursive adds a recursive Common Table Expression (WITH RECURSIVE clause).
func (m *SelectManager) WithRecursive(name string, query nodes.Query, columns ...string) *SelectManager {
	cte := nodes.NewCommonTableExpr(name, query, columns...)
	cte.Recursive = true
	m.traits = append(m.traits, nodes.NewWith(cte))
	return m
}

func (m *SelectManager) setOp(op nodes.SetOpType, other *SelectManager) *nodes.SetOperation {
	return nodes.NewSetOperation(op, m.Build(), other.Build())
}

// Union creates a UNION set operation between this query and another.
func (m *SelectManager) Union(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.Union, other)
}

// UnionAll creates a UNION ALL set operation between this query and another.
func (m *SelectManager) UnionAll(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.UnionAll, other)
}

// Intersect creates an INTERSECT set operation between this query and another.
func (m *SelectManager) Intersect(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.Intersect, other)
}

// IntersectAll creates an INTERSECT ALL set operation between this query and another.
func (m *SelectManager) IntersectAll(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.IntersectAll, other)
}

// Except creates an EXCEPT set operation between this query and another.
func (m *SelectManager) Except(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.Except, other)
}

// ExceptAll creates an EXCEPT ALL set operation between this query and another.
func (m *SelectManager) ExceptAll(other *SelectManager) *nodes.SetOperation {
	return m.setOp(nodes.ExceptAll, other)
}

// Use registers a transformer plugin to be applied before SQL generation.
func (m *SelectManager) Use(t plugins.Transformer) *SelectManager {
	m.addTransformer(t)
	return m
}

// As wraps the built query in a DerivedTable, enabling it to be used as a
// named subquery in FROM or JOIN clauses.
func (m *SelectManager) As(alias string, columns ...string) *nodes.DerivedTable {
	return nodes.NewDerivedTable(m.Build(), alias, columns...)
}

// Build lowers the manager's state onto a new Select. WHERE conditions
// become Filter traits of the data source, or of the Select itself when
// there is no FROM. Later changes to the manager do not affect the result.
func (m *SelectManager) Build() *nodes.Select {
	traits := make([]nodes.Trait, 0, len(m.traits))
	for _, t := range m.traits {
		if l, ok := t.(*nodes.Lock); ok && m.skipLocked {
			c := *l
			c.SkipLocked = true
			t = &c
		}
		traits = append(traits, t)
	}

	var source *nodes.DataSource
	if m.from != nil {
		source = nodes.NewDataSource(m.from)
		for _, j := range m.joins {
			c := *j
			source = source.WithJoin(&c)
		}
		source = source.WithTraits(filterTraits(m.filters)...)
	} else {
		traits = append(filterTraits(m.filters), traits...)
	}

	sel := nodes.NewSelect(source, append([]nodes.Expr(nil), m.projection...)...)
	sel.Traits = traits
	return sel
}

// Statement builds the query and applies all registered transformers.
func (m *SelectManager) Statement() (nodes.Statement, error) {
	return m.transform(m.Build())
}

// ToSQL applies all registered transformers and renders the result with r.
// A nil renderer uses the ANSI defaults.
func (m *SelectManager) ToSQL(r *visitors.Renderer) (render.Snapshot, error) {
	return m.toSQL(r, m.Build())
}
