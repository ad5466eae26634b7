package visitors

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/bawdo/sqltree/internal/quoting"
	"github.com/bawdo/sqltree/nodes"
)

// traitSet is a host node's trait list grouped by clause. Repeated filters,
// sorts, groupings, CTEs and windows accumulate in order; for LIMIT, OFFSET,
// DISTINCT and locks the last one wins.
type traitSet struct {
	filters   []nodes.Condition
	sorts     []*nodes.Ordering
	limit     *nodes.Limit
	offset    *nodes.Offset
	distinct  *nodes.Distinct
	groups    []*nodes.GroupBy
	havings   []nodes.Condition
	ctes      []*nodes.CommonTableExpr
	windows   []*nodes.Window
	partition []nodes.Expr
	frame     *nodes.Frame
	lock      *nodes.Lock
	returning []nodes.Expr
	comments  []string
	hints     []string
}

var (
	selectTraits = []nodes.Kind{
		nodes.KindFilter, nodes.KindSort, nodes.KindLimit, nodes.KindOffset,
		nodes.KindDistinct, nodes.KindGroupBy, nodes.KindHaving, nodes.KindWith,
		nodes.KindWindow, nodes.KindLock, nodes.KindComment, nodes.KindHint,
	}
	setOperationTraits = []nodes.Kind{
		nodes.KindSort, nodes.KindLimit, nodes.KindOffset, nodes.KindWith, nodes.KindComment,
	}
	windowSpecTraits = []nodes.Kind{nodes.KindPartitionBy, nodes.KindSort, nodes.KindFrame}
)

// collect groups traits by clause. A trait whose kind is not in allowed is
// reported as ErrMisplacedTrait and otherwise ignored.
func (r *Renderer) collect(traits []nodes.Trait, allowed ...nodes.Kind) *traitSet {
	ts := &traitSet{}
	for _, t := range traits {
		if t == nil {
			continue
		}
		if !slices.Contains(allowed, t.Kind()) {
			r.fail(fmt.Errorf("%w: %s", ErrMisplacedTrait, t.Kind()))
			continue
		}
		switch t := t.(type) {
		case *nodes.Filter:
			ts.filters = append(ts.filters, t.Cond)
		case *nodes.Sort:
			ts.sorts = append(ts.sorts, t.Items...)
		case *nodes.Limit:
			ts.limit = t
		case *nodes.Offset:
			ts.offset = t
		case *nodes.Distinct:
			ts.distinct = t
		case *nodes.GroupBy:
			ts.groups = append(ts.groups, t)
		case *nodes.Having:
			ts.havings = append(ts.havings, t.Cond)
		case *nodes.With:
			ts.ctes = append(ts.ctes, t.CTEs...)
		case *nodes.Window:
			ts.windows = append(ts.windows, t)
		case *nodes.PartitionBy:
			ts.partition = append(ts.partition, t.Items...)
		case *nodes.Frame:
			ts.frame = t
		case *nodes.Lock:
			ts.lock = t
		case *nodes.Returning:
			ts.returning = append(ts.returning, t.Items...)
		case *nodes.Comment:
			ts.comments = append(ts.comments, t.Text)
		case *nodes.Hint:
			ts.hints = append(ts.hints, t.Text)
		}
	}
	return ts
}

// lead writes the comments, the WITH clause and the statement verb followed
// by any hints. Comments are only written for the outermost statement.
func (r *Renderer) lead(ts *traitSet, verb string) {
	if r.ctx.ChildDepth() == 0 {
		for _, c := range ts.comments {
			r.write("/* ", quoting.EscapeComment(c), " */ ")
		}
	}
	if len(ts.ctes) > 0 {
		r.with(ts.ctes)
		if verb == "" {
			r.clause("")
			return
		}
		r.clause(verb)
	} else {
		r.write(verb)
	}
	if len(ts.hints) > 0 {
		r.write(" /*+")
		for _, h := range ts.hints {
			r.write(" ", quoting.EscapeComment(h))
		}
		r.write(" */")
	}
}

func (r *Renderer) with(ctes []*nodes.CommonTableExpr) {
	r.write("WITH ")
	for _, c := range ctes {
		if c.Recursive {
			r.write("RECURSIVE ")
			break
		}
	}
	renderList(r, ctes)
}

// source writes keyword, the primary record set and the joins of ds, and
// returns the data source's filters for the caller's WHERE clause.
func (r *Renderer) source(ds *nodes.DataSource, keyword string) []nodes.Condition {
	ts := r.collect(ds.Traits, nodes.KindFilter)
	r.clause(keyword)
	r.write(" ")
	r.node(ds.From)
	for _, j := range ds.Joins {
		r.clause("")
		r.node(j)
	}
	return ts.filters
}

func (r *Renderer) where(conds []nodes.Condition) {
	if len(conds) == 0 {
		return
	}
	r.clause("WHERE ")
	r.node(nodes.AllOf(conds...))
}

// tail writes ORDER BY, LIMIT, OFFSET and the row lock.
func (r *Renderer) tail(ts *traitSet) {
	if len(ts.sorts) > 0 {
		r.clause("ORDER BY ")
		renderList(r, ts.sorts)
	}
	if ts.limit != nil {
		r.clause("LIMIT ")
		r.node(ts.limit.Count)
	}
	if ts.offset != nil {
		r.clause("OFFSET ")
		r.node(ts.offset.Count)
	}
	if ts.lock != nil {
		r.clause("")
		r.node(ts.lock)
	}
}

func (r *Renderer) groupItems(g *nodes.GroupBy) {
	switch g.Mode {
	case nodes.GroupRollup:
		r.write("ROLLUP (")
		renderList(r, g.Items)
		r.write(")")
	case nodes.GroupCube:
		r.write("CUBE (")
		renderList(r, g.Items)
		r.write(")")
	default:
		renderList(r, g.Items)
	}
}

func (r *Renderer) windowSpec(traits []nodes.Trait) {
	ts := r.collect(traits, windowSpecTraits...)
	r.write("(")
	sep := ""
	if len(ts.partition) > 0 {
		r.write("PARTITION BY ")
		renderList(r, ts.partition)
		sep = " "
	}
	if len(ts.sorts) > 0 {
		r.write(sep, "ORDER BY ")
		renderList(r, ts.sorts)
		sep = " "
	}
	if ts.frame != nil {
		r.write(sep)
		r.node(ts.frame)
	}
	r.write(")")
}

func (r *Renderer) bound(b nodes.FrameBound) {
	switch b.Type {
	case nodes.CurrentRow:
		r.write("CURRENT ROW")
	case nodes.Preceding, nodes.Following:
		word := " PRECEDING"
		if b.Type == nodes.Following {
			word = " FOLLOWING"
		}
		if b.Offset == nil {
			r.write("UNBOUNDED", word)
			return
		}
		r.node(b.Offset)
		r.write(word)
	case nodes.UnboundedFollowing:
		r.write("UNBOUNDED FOLLOWING")
	default:
		r.write("UNBOUNDED PRECEDING")
	}
}

func (r *Renderer) alias(name string) {
	if name != "" {
		r.write(" AS ", r.quote(name))
	}
}

// --- Record sets ---

func (r *Renderer) VisitTable(n *nodes.Table) {
	r.write(r.qualified(n.Schema, n.Name))
	r.alias(n.Alias)
}

func (r *Renderer) VisitTableFunction(n *nodes.TableFunction) {
	validateSQLFunctionName(n.Name)
	r.write(n.Name, "(")
	renderList(r, n.Args)
	r.write(")")
	r.alias(n.Alias)
}

func (r *Renderer) VisitDerivedTable(n *nodes.DerivedTable) {
	r.subquery(n.Query)
	r.alias(n.Alias)
	if len(n.Columns) > 0 {
		r.write(" (")
		r.identList(n.Columns)
		r.write(")")
	}
}

func (r *Renderer) VisitValuesTable(n *nodes.ValuesTable) {
	r.write("(VALUES ")
	renderList(r, n.Rows)
	r.write(")")
	r.alias(n.Alias)
	if len(n.Columns) > 0 {
		r.write(" (")
		r.identList(n.Columns)
		r.write(")")
	}
}

func (r *Renderer) VisitRawRecordSet(n *nodes.RawRecordSet) {
	r.raw(n.SQL, n.Params)
	r.alias(n.Alias)
}

func (r *Renderer) VisitJoin(n *nodes.Join) {
	r.write(n.Type.String(), " ")
	if n.Lateral {
		r.write("LATERAL ")
	}
	r.node(n.Source)
	if n.On != nil {
		r.write(" ON ")
		r.node(n.On)
	}
}

// VisitDataSource writes FROM, the joins and WHERE.
func (r *Renderer) VisitDataSource(n *nodes.DataSource) {
	filters := r.source(n, "FROM")
	r.where(filters)
}

func (r *Renderer) VisitCommonTableExpr(n *nodes.CommonTableExpr) {
	r.write(r.quote(n.Name))
	if len(n.Columns) > 0 {
		r.write(" (")
		r.identList(n.Columns)
		r.write(")")
	}
	r.write(" AS ")
	r.subquery(n.Query)
}

// --- Queries ---

func (r *Renderer) VisitSelect(n *nodes.Select) {
	ts := r.collect(n.Traits, selectTraits...)
	r.lead(ts, "SELECT")
	if d := ts.distinct; d != nil {
		if len(d.On) > 0 {
			r.write(" DISTINCT ON (")
			renderList(r, d.On)
			r.write(")")
		} else {
			r.write(" DISTINCT")
		}
	}
	r.write(" ")
	if len(n.Projection) == 0 {
		r.write("*")
	} else {
		renderList(r, n.Projection)
	}

	var filters []nodes.Condition
	if n.Source != nil {
		filters = r.source(n.Source, "FROM")
	}
	r.where(append(filters, ts.filters...))

	if len(ts.groups) > 0 {
		r.clause("GROUP BY ")
		for i, g := range ts.groups {
			if i > 0 {
				r.write(", ")
			}
			r.groupItems(g)
		}
	}
	if len(ts.havings) > 0 {
		r.clause("HAVING ")
		r.node(nodes.AllOf(ts.havings...))
	}
	if len(ts.windows) > 0 {
		r.clause("WINDOW ")
		renderList(r, ts.windows)
	}
	r.tail(ts)
}

func (r *Renderer) VisitSetOperation(n *nodes.SetOperation) {
	ts := r.collect(n.Traits, setOperationTraits...)
	r.lead(ts, "")
	r.setOperand(n.Left)
	r.clause(n.Op.String())
	r.clause("")
	r.setOperand(n.Right)
	r.tail(ts)
}

// setOperand writes one side of a set operation. Nested set operations and
// queries with their own ORDER BY, LIMIT or OFFSET are parenthesised.
func (r *Renderer) setOperand(q nodes.Query) {
	if needsGrouping(q) {
		r.subquery(q)
		return
	}
	r.node(q)
}

func needsGrouping(q nodes.Query) bool {
	var traits []nodes.Trait
	switch q := q.(type) {
	case *nodes.SetOperation:
		return true
	case *nodes.Select:
		traits = q.Traits
	default:
		return false
	}
	for _, t := range traits {
		switch t.(type) {
		case *nodes.Sort, *nodes.Limit, *nodes.Offset, *nodes.With:
			return true
		}
	}
	return false
}

func (r *Renderer) VisitRawQuery(n *nodes.RawQuery) {
	r.raw(n.SQL, n.Params)
}

// --- Traits ---
//
// Inside a host node traits are merged into clauses; visiting a trait on its
// own writes the clause it stands for.

func (r *Renderer) VisitFilter(n *nodes.Filter) {
	r.write("WHERE ")
	r.node(n.Cond)
}

func (r *Renderer) VisitSort(n *nodes.Sort) {
	r.write("ORDER BY ")
	renderList(r, n.Items)
}

func (r *Renderer) VisitLimit(n *nodes.Limit) {
	r.write("LIMIT ")
	r.node(n.Count)
}

func (r *Renderer) VisitOffset(n *nodes.Offset) {
	r.write("OFFSET ")
	r.node(n.Count)
}

func (r *Renderer) VisitDistinct(n *nodes.Distinct) {
	r.write("DISTINCT")
	if len(n.On) > 0 {
		r.write(" ON (")
		renderList(r, n.On)
		r.write(")")
	}
}

func (r *Renderer) VisitGroupBy(n *nodes.GroupBy) {
	r.write("GROUP BY ")
	r.groupItems(n)
}

func (r *Renderer) VisitHaving(n *nodes.Having) {
	r.write("HAVING ")
	r.node(n.Cond)
}

func (r *Renderer) VisitWith(n *nodes.With) { r.with(n.CTEs) }

func (r *Renderer) VisitWindow(n *nodes.Window) {
	r.write(r.quote(n.Name), " AS ")
	r.windowSpec(n.Spec)
}

func (r *Renderer) VisitPartitionBy(n *nodes.PartitionBy) {
	r.write("PARTITION BY ")
	renderList(r, n.Items)
}

func (r *Renderer) VisitFrame(n *nodes.Frame) {
	r.write(n.Unit.String(), " ")
	if n.End == nil {
		r.bound(n.Start)
		return
	}
	r.write("BETWEEN ")
	r.bound(n.Start)
	r.write(" AND ")
	r.bound(*n.End)
}

func (r *Renderer) VisitLock(n *nodes.Lock) {
	r.write(n.Mode.String())
	switch {
	case n.SkipLocked:
		r.write(" SKIP LOCKED")
	case n.NoWait:
		r.write(" NOWAIT")
	}
}

func (r *Renderer) VisitReturning(n *nodes.Returning) {
	r.write("RETURNING ")
	renderList(r, n.Items)
}

func (r *Renderer) VisitComment(n *nodes.Comment) {
	r.write("/* ", quoting.EscapeComment(n.Text), " */")
}

func (r *Renderer) VisitHint(n *nodes.Hint) {
	r.write("/*+ ", quoting.EscapeComment(n.Text), " */")
}
