package mutator

import (
	"reflect"

	"github.com/bawdo/sqltree/nodes"
)

// Expected categories of child slots.
const (
	exprSlot      = nodes.CategoryExpression
	condSlot      = nodes.CategoryCondition
	querySlot     = nodes.CategoryQuery
	recordSetSlot = nodes.CategoryRecordSet
	traitSlot     = nodes.CategoryTrait
	stmtSlot      = nodes.CategoryStatement
	tableSlot     = nodes.CategoryTable
	columnSlot    = nodes.CategoryColumn
	paramSlot     = nodes.CategoryParameter
	tupleSlot     = nodes.CategoryTuple
	whenSlot      = nodes.CategoryExpression | nodes.CategoryCondition
)

// rebuilder collects the new children of one parent. The first error sticks
// and turns every later slot into a no-op.
type rebuilder struct {
	w       *walk
	parent  nodes.Node
	changed bool
	err     error
}

// keep reports whether the parent should be returned as is.
func (r *rebuilder) keep() bool { return r.err != nil || !r.changed }

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// one visits a single child slot. Absent optional children are skipped.
func one[T nodes.Node](r *rebuilder, slot string, want nodes.Category, child T) T {
	if r.err != nil || isNil(child) {
		return child
	}
	res, err := r.w.visit(child)
	if err != nil {
		r.err = err
		return child
	}
	if res == nodes.Node(child) {
		return child
	}
	typed, ok := res.(T)
	if !ok || isNil(res) || !nodes.CategoryOf(res).Has(want) {
		r.err = &TypeError{Parent: r.parent, Child: child, Replacement: res, Expected: want, Slot: slot}
		return child
	}
	r.changed = true
	return typed
}

// many visits a slice slot. The input slice is returned when no element
// changed; otherwise a fresh slice is built.
func many[T nodes.Node](r *rebuilder, slot string, want nodes.Category, items []T) []T {
	var out []T
	for i, it := range items {
		res := one(r, slot, want, it)
		if r.err != nil {
			return items
		}
		if out == nil && nodes.Node(res) != nodes.Node(it) {
			out = make([]T, i, len(items))
			copy(out, items[:i])
		}
		if out != nil {
			out = append(out, res)
		}
	}
	if out == nil {
		return items
	}
	return out
}

func bound(r *rebuilder, slot string, b nodes.FrameBound) nodes.FrameBound {
	b.Offset = one(r, slot, exprSlot, b.Offset)
	return b
}

// rebuild visits every child slot of n in the same order as visitors.Base
// and returns either n or a single new node of the same kind.
func (w *walk) rebuild(n nodes.Node) (nodes.Node, error) {
	r := &rebuilder{w: w, parent: n}
	switch n := n.(type) {
	case *nodes.Literal, *nodes.Null, *nodes.Parameter, *nodes.Column, *nodes.Star,
		*nodes.Default, *nodes.True, *nodes.False, *nodes.Table, *nodes.Lock,
		*nodes.Comment, *nodes.Hint, *nodes.PrimaryKey, *nodes.UniqueConstraint,
		*nodes.DropIndex, *nodes.Begin, *nodes.Commit, *nodes.Rollback,
		*nodes.Savepoint, *nodes.ReleaseSavepoint:
		return n, nil

	// --- Expressions ---

	case *nodes.Unary:
		operand := one(r, "Operand", exprSlot, n.Operand)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewUnary(n.Op, operand), nil

	case *nodes.Binary:
		left := one(r, "Left", exprSlot, n.Left)
		right := one(r, "Right", exprSlot, n.Right)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewBinary(n.Op, left, right), nil

	case *nodes.Function:
		args := many(r, "Args", exprSlot, n.Args)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Args = args
		return &c, nil

	case *nodes.Aggregate:
		args := many(r, "Args", exprSlot, n.Args)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Args, c.Traits = args, traits
		return &c, nil

	case *nodes.WindowFunction:
		args := many(r, "Args", exprSlot, n.Args)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Args, c.Traits = args, traits
		return &c, nil

	case *nodes.Cast:
		operand := one(r, "Operand", exprSlot, n.Operand)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Operand = operand
		return &c, nil

	case *nodes.Case:
		operand := one(r, "Operand", exprSlot, n.Operand)
		whens := many(r, "Whens", nodes.CategoryCaseWhen, n.Whens)
		els := one(r, "Else", exprSlot, n.Else)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewCase(operand, whens, els), nil

	case *nodes.CaseWhen:
		when := one(r, "When", whenSlot, n.When)
		then := one(r, "Then", exprSlot, n.Then)
		if r.keep() {
			return n, r.err
		}
		return &nodes.CaseWhen{When: when, Then: then}, nil

	case *nodes.Alias:
		e := one(r, "Expr", exprSlot, n.Expr)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewAlias(e, n.Name), nil

	case *nodes.ScalarSubquery:
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewScalarSubquery(q, n.ValueType), nil

	case *nodes.ConditionExpr:
		cond := one(r, "Cond", condSlot, n.Cond)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewConditionExpr(cond), nil

	case *nodes.Tuple:
		items := many(r, "Items", exprSlot, n.Items)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewTuple(items...), nil

	case *nodes.RawExpr:
		params := many(r, "Params", paramSlot, n.Params)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewRawExpr(n.SQL, n.ValueType, params...), nil

	case *nodes.Ordering:
		e := one(r, "Expr", exprSlot, n.Expr)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Expr = e
		return &c, nil

	// --- Conditions ---

	case *nodes.Comparison:
		left := one(r, "Left", exprSlot, n.Left)
		right := one(r, "Right", exprSlot, n.Right)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewComparison(n.Op, left, right), nil

	case *nodes.And:
		left := one(r, "Left", condSlot, n.Left)
		right := one(r, "Right", condSlot, n.Right)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewAnd(left, right), nil

	case *nodes.Or:
		left := one(r, "Left", condSlot, n.Left)
		right := one(r, "Right", condSlot, n.Right)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewOr(left, right), nil

	case *nodes.Not:
		cond := one(r, "Cond", condSlot, n.Cond)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewNot(cond), nil

	case *nodes.IsNull:
		e := one(r, "Expr", exprSlot, n.Expr)
		if r.keep() {
			return n, r.err
		}
		return &nodes.IsNull{Expr: e, Negated: n.Negated}, nil

	case *nodes.In:
		e := one(r, "Expr", exprSlot, n.Expr)
		values := many(r, "Values", exprSlot, n.Values)
		if r.keep() {
			return n, r.err
		}
		return &nodes.In{Expr: e, Values: values, Negated: n.Negated}, nil

	case *nodes.InQuery:
		e := one(r, "Expr", exprSlot, n.Expr)
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		return &nodes.InQuery{Expr: e, Query: q, Negated: n.Negated}, nil

	case *nodes.Between:
		e := one(r, "Expr", exprSlot, n.Expr)
		low := one(r, "Low", exprSlot, n.Low)
		high := one(r, "High", exprSlot, n.High)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Between{Expr: e, Low: low, High: high, Negated: n.Negated}, nil

	case *nodes.Like:
		e := one(r, "Expr", exprSlot, n.Expr)
		pattern := one(r, "Pattern", exprSlot, n.Pattern)
		escape := one(r, "Escape", exprSlot, n.Escape)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Expr, c.Pattern, c.Escape = e, pattern, escape
		return &c, nil

	case *nodes.Exists:
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Exists{Query: q, Negated: n.Negated}, nil

	case *nodes.ExprCondition:
		e := one(r, "Expr", exprSlot, n.Expr)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewExprCondition(e), nil

	case *nodes.RawCondition:
		params := many(r, "Params", paramSlot, n.Params)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewRawCondition(n.SQL, params...), nil

	// --- Record sets ---

	case *nodes.TableFunction:
		args := many(r, "Args", exprSlot, n.Args)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewTableFunction(n.Name, n.Alias, args...), nil

	case *nodes.DerivedTable:
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewDerivedTable(q, n.Alias, n.Columns...), nil

	case *nodes.ValuesTable:
		rows := many(r, "Rows", tupleSlot, n.Rows)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewValuesTable(n.Alias, n.Columns, rows...), nil

	case *nodes.RawRecordSet:
		params := many(r, "Params", paramSlot, n.Params)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewRawRecordSet(n.SQL, n.Alias, params...), nil

	case *nodes.Join:
		source := one(r, "Source", recordSetSlot, n.Source)
		on := one(r, "On", condSlot, n.On)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Source, c.On = source, on
		return &c, nil

	case *nodes.DataSource:
		from := one(r, "From", recordSetSlot, n.From)
		joins := many(r, "Joins", nodes.CategoryJoin, n.Joins)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.DataSource{From: from, Joins: joins, Traits: traits}, nil

	case *nodes.CommonTableExpr:
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Query = q
		return &c, nil

	// --- Queries ---

	case *nodes.Select:
		source := one(r, "Source", nodes.CategoryDataSource, n.Source)
		projection := many(r, "Projection", exprSlot, n.Projection)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Select{Source: source, Projection: projection, Traits: traits}, nil

	case *nodes.SetOperation:
		left := one(r, "Left", querySlot, n.Left)
		right := one(r, "Right", querySlot, n.Right)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.SetOperation{Op: n.Op, Left: left, Right: right, Traits: traits}, nil

	case *nodes.RawQuery:
		params := many(r, "Params", paramSlot, n.Params)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewRawQuery(n.SQL, params...), nil

	// --- Traits ---

	case *nodes.Filter:
		cond := one(r, "Cond", condSlot, n.Cond)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewFilter(cond), nil

	case *nodes.Sort:
		items := many(r, "Items", nodes.CategoryOrdering, n.Items)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewSort(items...), nil

	case *nodes.Limit:
		count := one(r, "Count", exprSlot, n.Count)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewLimit(count), nil

	case *nodes.Offset:
		count := one(r, "Count", exprSlot, n.Count)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewOffset(count), nil

	case *nodes.Distinct:
		on := many(r, "On", exprSlot, n.On)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewDistinct(on...), nil

	case *nodes.GroupBy:
		items := many(r, "Items", exprSlot, n.Items)
		if r.keep() {
			return n, r.err
		}
		return &nodes.GroupBy{Items: items, Mode: n.Mode}, nil

	case *nodes.Having:
		cond := one(r, "Cond", condSlot, n.Cond)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewHaving(cond), nil

	case *nodes.With:
		ctes := many(r, "CTEs", nodes.CategoryCommonTableExpr, n.CTEs)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewWith(ctes...), nil

	case *nodes.Window:
		spec := many(r, "Spec", traitSlot, n.Spec)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewWindow(n.Name, spec...), nil

	case *nodes.PartitionBy:
		items := many(r, "Items", exprSlot, n.Items)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewPartitionBy(items...), nil

	case *nodes.Frame:
		start := bound(r, "Start", n.Start)
		var end *nodes.FrameBound
		if n.End != nil {
			e := bound(r, "End", *n.End)
			end = &e
		}
		if r.keep() {
			return n, r.err
		}
		return &nodes.Frame{Unit: n.Unit, Start: start, End: end}, nil

	case *nodes.Returning:
		items := many(r, "Items", exprSlot, n.Items)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewReturning(items...), nil

	// --- DML ---

	case *nodes.Insert:
		into := one(r, "Into", tableSlot, n.Into)
		columns := many(r, "Columns", columnSlot, n.Columns)
		rows := many(r, "Rows", tupleSlot, n.Rows)
		q := one(r, "Query", querySlot, n.Query)
		onConflict := one(r, "OnConflict", nodes.CategoryOnConflict, n.OnConflict)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Insert{Into: into, Columns: columns, Rows: rows, Query: q, OnConflict: onConflict, Traits: traits}, nil

	case *nodes.Update:
		table := one(r, "Table", tableSlot, n.Table)
		set := many(r, "Set", nodes.CategoryAssignment, n.Set)
		from := one(r, "From", nodes.CategoryDataSource, n.From)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Update{Table: table, Set: set, From: from, Traits: traits}, nil

	case *nodes.Delete:
		from := one(r, "From", tableSlot, n.From)
		using := one(r, "Using", nodes.CategoryDataSource, n.Using)
		traits := many(r, "Traits", traitSlot, n.Traits)
		if r.keep() {
			return n, r.err
		}
		return &nodes.Delete{From: from, Using: using, Traits: traits}, nil

	case *nodes.Assignment:
		col := one(r, "Column", columnSlot, n.Column)
		value := one(r, "Value", exprSlot, n.Value)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewAssignment(col, value), nil

	case *nodes.OnConflict:
		columns := many(r, "Columns", columnSlot, n.Columns)
		set := many(r, "Set", nodes.CategoryAssignment, n.Set)
		where := one(r, "Where", condSlot, n.Where)
		if r.keep() {
			return n, r.err
		}
		return &nodes.OnConflict{Columns: columns, DoNothing: n.DoNothing, Set: set, Where: where}, nil

	// --- DDL ---

	case *nodes.CreateTable:
		table := one(r, "Table", tableSlot, n.Table)
		columns := many(r, "Columns", nodes.CategoryColumnDefinition, n.Columns)
		constraints := many(r, "Constraints", nodes.CategoryConstraint, n.Constraints)
		q := one(r, "AsQuery", querySlot, n.AsQuery)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Table, c.Columns, c.Constraints, c.AsQuery = table, columns, constraints, q
		return &c, nil

	case *nodes.ColumnDefinition:
		def := one(r, "Default", exprSlot, n.Default)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Default = def
		return &c, nil

	case *nodes.ForeignKey:
		ref := one(r, "RefTable", tableSlot, n.RefTable)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.RefTable = ref
		return &c, nil

	case *nodes.CheckConstraint:
		cond := one(r, "Cond", condSlot, n.Cond)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewCheckConstraint(n.Name, cond), nil

	case *nodes.DropTable:
		table := one(r, "Table", tableSlot, n.Table)
		if r.keep() {
			return n, r.err
		}
		return &nodes.DropTable{Table: table, IfExists: n.IfExists}, nil

	case *nodes.TruncateTable:
		table := one(r, "Table", tableSlot, n.Table)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewTruncateTable(table), nil

	case *nodes.CreateIndex:
		table := one(r, "Table", tableSlot, n.Table)
		columns := many(r, "Columns", exprSlot, n.Columns)
		where := one(r, "Where", condSlot, n.Where)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Table, c.Columns, c.Where = table, columns, where
		return &c, nil

	case *nodes.CreateView:
		view := one(r, "View", tableSlot, n.View)
		q := one(r, "Query", querySlot, n.Query)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.View, c.Query = view, q
		return &c, nil

	case *nodes.DropView:
		view := one(r, "View", tableSlot, n.View)
		if r.keep() {
			return n, r.err
		}
		return &nodes.DropView{View: view, IfExists: n.IfExists}, nil

	case *nodes.AlterTableAddColumn:
		table := one(r, "Table", tableSlot, n.Table)
		col := one(r, "Column", nodes.CategoryColumnDefinition, n.Column)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewAlterTableAddColumn(table, col), nil

	case *nodes.AlterTableDropColumn:
		table := one(r, "Table", tableSlot, n.Table)
		if r.keep() {
			return n, r.err
		}
		c := *n
		c.Table = table
		return &c, nil

	// --- Misc ---

	case *nodes.Batch:
		stmts := many(r, "Statements", stmtSlot, n.Statements)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewBatch(stmts...), nil

	case *nodes.RawStatement:
		params := many(r, "Params", paramSlot, n.Params)
		if r.keep() {
			return n, r.err
		}
		return nodes.NewRawStatement(n.SQL, params...), nil
	}
	return n, nil
}
