package visitors

import "github.com/bawdo/sqltree/nodes"

// BaseOption configures a Base at construction time.
type BaseOption func(*Base)

// WithEnter installs a hook called before a node's children are visited.
// Returning false skips the children (the leave hook still runs).
func WithEnter(fn func(nodes.Node) bool) BaseOption {
	return func(b *Base) { b.enter = fn }
}

// WithLeave installs a hook called after a node's children are visited.
func WithLeave(fn func(nodes.Node)) BaseOption {
	return func(b *Base) { b.leave = fn }
}

// Base implements nodes.Visitor with a depth-first walk over every child and
// every trait, in a fixed per-kind order. Leaf kinds do nothing.
//
// Visitors that only care about a few kinds embed *Base and set outer to
// themselves, so that recursion dispatches through the embedding type and
// its overrides are honoured everywhere in the tree:
//
//	type counter struct {
//		*visitors.Base
//		columns int
//	}
//
//	func newCounter() *counter {
//		c := &counter{}
//		c.Base = visitors.NewBase(c)
//		return c
//	}
//
//	func (c *counter) VisitColumn(n *nodes.Column) { c.columns++ }
type Base struct {
	// outer is the concrete visitor. All recursive Accept calls go through
	// outer so that overrides are respected.
	outer nodes.Visitor
	enter func(nodes.Node) bool
	leave func(nodes.Node)
}

var _ nodes.Visitor = (*Base)(nil)

// NewBase creates a Base dispatching through outer. A nil outer makes the
// Base dispatch through itself.
func NewBase(outer nodes.Visitor, opts ...BaseOption) *Base {
	b := &Base{outer: outer}
	if b.outer == nil {
		b.outer = b
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Inspect walks root depth-first in pre-order, calling fn for every node.
// Returning false from fn skips that node's children.
func Inspect(root nodes.Node, fn func(nodes.Node) bool) {
	if root == nil {
		return
	}
	root.Accept(NewBase(nil, WithEnter(fn)))
}

func (b *Base) pre(n nodes.Node) bool {
	if b.enter == nil {
		return true
	}
	return b.enter(n)
}

func (b *Base) post(n nodes.Node) {
	if b.leave != nil {
		b.leave(n)
	}
}

// leaf runs the hooks for a node without children.
func (b *Base) leaf(n nodes.Node) {
	b.pre(n)
	b.post(n)
}

// visit dispatches to a child; nil interfaces are skipped.
func (b *Base) visit(n nodes.Node) {
	if n != nil {
		n.Accept(b.outer)
	}
}

func visitAll[T nodes.Node](b *Base, items []T) {
	for _, it := range items {
		it.Accept(b.outer)
	}
}

// --- Expressions ---

func (b *Base) VisitLiteral(n *nodes.Literal)     { b.leaf(n) }
func (b *Base) VisitNull(n *nodes.Null)           { b.leaf(n) }
func (b *Base) VisitParameter(n *nodes.Parameter) { b.leaf(n) }
func (b *Base) VisitColumn(n *nodes.Column)       { b.leaf(n) }
func (b *Base) VisitStar(n *nodes.Star)           { b.leaf(n) }
func (b *Base) VisitDefault(n *nodes.Default)     { b.leaf(n) }

func (b *Base) VisitUnary(n *nodes.Unary) {
	if b.pre(n) {
		b.visit(n.Operand)
	}
	b.post(n)
}

func (b *Base) VisitBinary(n *nodes.Binary) {
	if b.pre(n) {
		b.visit(n.Left)
		b.visit(n.Right)
	}
	b.post(n)
}

func (b *Base) VisitFunction(n *nodes.Function) {
	if b.pre(n) {
		visitAll(b, n.Args)
	}
	b.post(n)
}

func (b *Base) VisitAggregate(n *nodes.Aggregate) {
	if b.pre(n) {
		visitAll(b, n.Args)
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitWindowFunction(n *nodes.WindowFunction) {
	if b.pre(n) {
		visitAll(b, n.Args)
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitCast(n *nodes.Cast) {
	if b.pre(n) {
		b.visit(n.Operand)
	}
	b.post(n)
}

func (b *Base) VisitCase(n *nodes.Case) {
	if b.pre(n) {
		b.visit(n.Operand)
		visitAll(b, n.Whens)
		b.visit(n.Else)
	}
	b.post(n)
}

func (b *Base) VisitCaseWhen(n *nodes.CaseWhen) {
	if b.pre(n) {
		b.visit(n.When)
		b.visit(n.Then)
	}
	b.post(n)
}

func (b *Base) VisitAlias(n *nodes.Alias) {
	if b.pre(n) {
		b.visit(n.Expr)
	}
	b.post(n)
}

func (b *Base) VisitScalarSubquery(n *nodes.ScalarSubquery) {
	if b.pre(n) {
		b.visit(n.Query)
	}
	b.post(n)
}

func (b *Base) VisitConditionExpr(n *nodes.ConditionExpr) {
	if b.pre(n) {
		b.visit(n.Cond)
	}
	b.post(n)
}

func (b *Base) VisitTuple(n *nodes.Tuple) {
	if b.pre(n) {
		visitAll(b, n.Items)
	}
	b.post(n)
}

func (b *Base) VisitRawExpr(n *nodes.RawExpr) {
	if b.pre(n) {
		visitAll(b, n.Params)
	}
	b.post(n)
}

func (b *Base) VisitOrdering(n *nodes.Ordering) {
	if b.pre(n) {
		b.visit(n.Expr)
	}
	b.post(n)
}

// --- Conditions ---

func (b *Base) VisitTrue(n *nodes.True)   { b.leaf(n) }
func (b *Base) VisitFalse(n *nodes.False) { b.leaf(n) }

func (b *Base) VisitComparison(n *nodes.Comparison) {
	if b.pre(n) {
		b.visit(n.Left)
		b.visit(n.Right)
	}
	b.post(n)
}

func (b *Base) VisitAnd(n *nodes.And) {
	if b.pre(n) {
		b.visit(n.Left)
		b.visit(n.Right)
	}
	b.post(n)
}

func (b *Base) VisitOr(n *nodes.Or) {
	if b.pre(n) {
		b.visit(n.Left)
		b.visit(n.Right)
	}
	b.post(n)
}

func (b *Base) VisitNot(n *nodes.Not) {
	if b.pre(n) {
		b.visit(n.Cond)
	}
	b.post(n)
}

func (b *Base) VisitIsNull(n *nodes.IsNull) {
	if b.pre(n) {
		b.visit(n.Expr)
	}
	b.post(n)
}

func (b *Base) VisitIn(n *nodes.In) {
	if b.pre(n) {
		b.visit(n.Expr)
		visitAll(b, n.Values)
	}
	b.post(n)
}

func (b *Base) VisitInQuery(n *nodes.InQuery) {
	if b.pre(n) {
		b.visit(n.Expr)
		b.visit(n.Query)
	}
	b.post(n)
}

func (b *Base) VisitBetween(n *nodes.Between) {
	if b.pre(n) {
		b.visit(n.Expr)
		b.visit(n.Low)
		b.visit(n.High)
	}
	b.post(n)
}

func (b *Base) VisitLike(n *nodes.Like) {
	if b.pre(n) {
		b.visit(n.Expr)
		b.visit(n.Pattern)
		b.visit(n.Escape)
	}
	b.post(n)
}

func (b *Base) VisitExists(n *nodes.Exists) {
	if b.pre(n) {
		b.visit(n.Query)
	}
	b.post(n)
}

func (b *Base) VisitExprCondition(n *nodes.ExprCondition) {
	if b.pre(n) {
		b.visit(n.Expr)
	}
	b.post(n)
}

func (b *Base) VisitRawCondition(n *nodes.RawCondition) {
	if b.pre(n) {
		visitAll(b, n.Params)
	}
	b.post(n)
}

// --- Record sets ---

func (b *Base) VisitTable(n *nodes.Table) { b.leaf(n) }

func (b *Base) VisitTableFunction(n *nodes.TableFunction) {
	if b.pre(n) {
		visitAll(b, n.Args)
	}
	b.post(n)
}

func (b *Base) VisitDerivedTable(n *nodes.DerivedTable) {
	if b.pre(n) {
		b.visit(n.Query)
	}
	b.post(n)
}

func (b *Base) VisitValuesTable(n *nodes.ValuesTable) {
	if b.pre(n) {
		visitAll(b, n.Rows)
	}
	b.post(n)
}

func (b *Base) VisitRawRecordSet(n *nodes.RawRecordSet) {
	if b.pre(n) {
		visitAll(b, n.Params)
	}
	b.post(n)
}

func (b *Base) VisitJoin(n *nodes.Join) {
	if b.pre(n) {
		b.visit(n.Source)
		b.visit(n.On)
	}
	b.post(n)
}

func (b *Base) VisitDataSource(n *nodes.DataSource) {
	if b.pre(n) {
		b.visit(n.From)
		visitAll(b, n.Joins)
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitCommonTableExpr(n *nodes.CommonTableExpr) {
	if b.pre(n) {
		b.visit(n.Query)
	}
	b.post(n)
}

// --- Queries ---

func (b *Base) VisitSelect(n *nodes.Select) {
	if b.pre(n) {
		if n.Source != nil {
			n.Source.Accept(b.outer)
		}
		visitAll(b, n.Projection)
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitSetOperation(n *nodes.SetOperation) {
	if b.pre(n) {
		b.visit(n.Left)
		b.visit(n.Right)
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitRawQuery(n *nodes.RawQuery) {
	if b.pre(n) {
		visitAll(b, n.Params)
	}
	b.post(n)
}

// --- Traits ---

func (b *Base) VisitLock(n *nodes.Lock)       { b.leaf(n) }
func (b *Base) VisitComment(n *nodes.Comment) { b.leaf(n) }
func (b *Base) VisitHint(n *nodes.Hint)       { b.leaf(n) }

func (b *Base) VisitFilter(n *nodes.Filter) {
	if b.pre(n) {
		b.visit(n.Cond)
	}
	b.post(n)
}

func (b *Base) VisitSort(n *nodes.Sort) {
	if b.pre(n) {
		visitAll(b, n.Items)
	}
	b.post(n)
}

func (b *Base) VisitLimit(n *nodes.Limit) {
	if b.pre(n) {
		b.visit(n.Count)
	}
	b.post(n)
}

func (b *Base) VisitOffset(n *nodes.Offset) {
	if b.pre(n) {
		b.visit(n.Count)
	}
	b.post(n)
}

func (b *Base) VisitDistinct(n *nodes.Distinct) {
	if b.pre(n) {
		visitAll(b, n.On)
	}
	b.post(n)
}

func (b *Base) VisitGroupBy(n *nodes.GroupBy) {
	if b.pre(n) {
		visitAll(b, n.Items)
	}
	b.post(n)
}

func (b *Base) VisitHaving(n *nodes.Having) {
	if b.pre(n) {
		b.visit(n.Cond)
	}
	b.post(n)
}

func (b *Base) VisitWith(n *nodes.With) {
	if b.pre(n) {
		visitAll(b, n.CTEs)
	}
	b.post(n)
}

func (b *Base) VisitWindow(n *nodes.Window) {
	if b.pre(n) {
		visitAll(b, n.Spec)
	}
	b.post(n)
}

func (b *Base) VisitPartitionBy(n *nodes.PartitionBy) {
	if b.pre(n) {
		visitAll(b, n.Items)
	}
	b.post(n)
}

func (b *Base) VisitFrame(n *nodes.Frame) {
	if b.pre(n) {
		b.visit(n.Start.Offset)
		if n.End != nil {
			b.visit(n.End.Offset)
		}
	}
	b.post(n)
}

func (b *Base) VisitReturning(n *nodes.Returning) {
	if b.pre(n) {
		visitAll(b, n.Items)
	}
	b.post(n)
}

// --- DML ---

func (b *Base) VisitInsert(n *nodes.Insert) {
	if b.pre(n) {
		n.Into.Accept(b.outer)
		visitAll(b, n.Columns)
		visitAll(b, n.Rows)
		b.visit(n.Query)
		if n.OnConflict != nil {
			n.OnConflict.Accept(b.outer)
		}
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitUpdate(n *nodes.Update) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
		visitAll(b, n.Set)
		if n.From != nil {
			n.From.Accept(b.outer)
		}
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitDelete(n *nodes.Delete) {
	if b.pre(n) {
		n.From.Accept(b.outer)
		if n.Using != nil {
			n.Using.Accept(b.outer)
		}
		visitAll(b, n.Traits)
	}
	b.post(n)
}

func (b *Base) VisitAssignment(n *nodes.Assignment) {
	if b.pre(n) {
		n.Column.Accept(b.outer)
		b.visit(n.Value)
	}
	b.post(n)
}

func (b *Base) VisitOnConflict(n *nodes.OnConflict) {
	if b.pre(n) {
		visitAll(b, n.Columns)
		visitAll(b, n.Set)
		b.visit(n.Where)
	}
	b.post(n)
}

// --- DDL ---

func (b *Base) VisitPrimaryKey(n *nodes.PrimaryKey)             { b.leaf(n) }
func (b *Base) VisitUniqueConstraint(n *nodes.UniqueConstraint) { b.leaf(n) }
func (b *Base) VisitDropIndex(n *nodes.DropIndex)               { b.leaf(n) }

func (b *Base) VisitCreateTable(n *nodes.CreateTable) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
		visitAll(b, n.Columns)
		visitAll(b, n.Constraints)
		b.visit(n.AsQuery)
	}
	b.post(n)
}

func (b *Base) VisitColumnDefinition(n *nodes.ColumnDefinition) {
	if b.pre(n) {
		b.visit(n.Default)
	}
	b.post(n)
}

func (b *Base) VisitForeignKey(n *nodes.ForeignKey) {
	if b.pre(n) {
		n.RefTable.Accept(b.outer)
	}
	b.post(n)
}

func (b *Base) VisitCheckConstraint(n *nodes.CheckConstraint) {
	if b.pre(n) {
		b.visit(n.Cond)
	}
	b.post(n)
}

func (b *Base) VisitDropTable(n *nodes.DropTable) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
	}
	b.post(n)
}

func (b *Base) VisitTruncateTable(n *nodes.TruncateTable) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
	}
	b.post(n)
}

func (b *Base) VisitCreateIndex(n *nodes.CreateIndex) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
		visitAll(b, n.Columns)
		b.visit(n.Where)
	}
	b.post(n)
}

func (b *Base) VisitCreateView(n *nodes.CreateView) {
	if b.pre(n) {
		n.View.Accept(b.outer)
		b.visit(n.Query)
	}
	b.post(n)
}

func (b *Base) VisitDropView(n *nodes.DropView) {
	if b.pre(n) {
		n.View.Accept(b.outer)
	}
	b.post(n)
}

func (b *Base) VisitAlterTableAddColumn(n *nodes.AlterTableAddColumn) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
		n.Column.Accept(b.outer)
	}
	b.post(n)
}

func (b *Base) VisitAlterTableDropColumn(n *nodes.AlterTableDropColumn) {
	if b.pre(n) {
		n.Table.Accept(b.outer)
	}
	b.post(n)
}

// --- Transaction control and misc ---

func (b *Base) VisitBegin(n *nodes.Begin)                       { b.leaf(n) }
func (b *Base) VisitCommit(n *nodes.Commit)                     { b.leaf(n) }
func (b *Base) VisitRollback(n *nodes.Rollback)                 { b.leaf(n) }
func (b *Base) VisitSavepoint(n *nodes.Savepoint)               { b.leaf(n) }
func (b *Base) VisitReleaseSavepoint(n *nodes.ReleaseSavepoint) { b.leaf(n) }

func (b *Base) VisitBatch(n *nodes.Batch) {
	if b.pre(n) {
		visitAll(b, n.Statements)
	}
	b.post(n)
}

func (b *Base) VisitRawStatement(n *nodes.RawStatement) {
	if b.pre(n) {
		visitAll(b, n.Params)
	}
	b.post(n)
}
