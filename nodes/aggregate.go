package nodes

import "github.com/bawdo/sqltree/exprtype"

// Aggregate is an aggregate function call: COUNT, SUM, AVG, MIN, MAX or any
// other name. Traits hold an optional FILTER (WHERE ...) clause and ordering.
type Aggregate struct {
	isExpr
	Name       string
	Args       []Expr // empty means *
	Distinct   bool
	ReturnType exprtype.Type
	Traits     []Trait
}

// NewAggregate creates an aggregate call with an explicit return type.
func NewAggregate(name string, ret exprtype.Type, args ...Expr) *Aggregate {
	return &Aggregate{Name: name, Args: args, ReturnType: ret}
}

// Count creates COUNT(args) or COUNT(*) when no arguments are given.
func Count(args ...Expr) *Aggregate { return NewAggregate("COUNT", exprtype.Of[int64](false), args...) }

// Sum creates SUM(e). The result is NULL over an empty input.
func Sum(e Expr) *Aggregate { return NewAggregate("SUM", e.Type().MakeNullable(), e) }

// Avg creates AVG(e).
func Avg(e Expr) *Aggregate { return NewAggregate("AVG", exprtype.Of[float64](true), e) }

// Min creates MIN(e).
func Min(e Expr) *Aggregate { return NewAggregate("MIN", e.Type().MakeNullable(), e) }

// Max creates MAX(e).
func Max(e Expr) *Aggregate { return NewAggregate("MAX", e.Type().MakeNullable(), e) }

// WithDistinct returns a copy of the aggregate that applies DISTINCT.
func (n *Aggregate) WithDistinct() *Aggregate {
	c := *n
	c.Distinct = true
	return &c
}

// WithTraits returns a copy with traits appended.
func (n *Aggregate) WithTraits(traits ...Trait) *Aggregate {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

// FilterWhere returns a copy with a FILTER (WHERE cond) clause.
func (n *Aggregate) FilterWhere(cond Condition) *Aggregate {
	return n.WithTraits(NewFilter(cond))
}

func (n *Aggregate) Kind() Kind          { return KindAggregate }
func (n *Aggregate) Accept(v Visitor)    { v.VisitAggregate(n) }
func (n *Aggregate) Type() exprtype.Type { return n.ReturnType }

// WindowFunction is a function evaluated OVER a window. The window is either
// a reference to a named WINDOW clause or an inline specification built from
// PartitionBy, Sort and Frame traits.
type WindowFunction struct {
	isExpr
	Name       string
	Args       []Expr
	ReturnType exprtype.Type
	WindowName string
	Traits     []Trait
}

// NewWindowFunction creates a window function call with an empty window.
func NewWindowFunction(name string, ret exprtype.Type, args ...Expr) *WindowFunction {
	return &WindowFunction{Name: name, Args: args, ReturnType: ret}
}

// RowNumber creates ROW_NUMBER().
func RowNumber() *WindowFunction { return NewWindowFunction("ROW_NUMBER", exprtype.Of[int64](false)) }

// Rank creates RANK().
func Rank() *WindowFunction { return NewWindowFunction("RANK", exprtype.Of[int64](false)) }

// DenseRank creates DENSE_RANK().
func DenseRank() *WindowFunction { return NewWindowFunction("DENSE_RANK", exprtype.Of[int64](false)) }

// Lag creates LAG(e, args...).
func Lag(e Expr, args ...Expr) *WindowFunction {
	return NewWindowFunction("LAG", e.Type().MakeNullable(), append([]Expr{e}, args...)...)
}

// Lead creates LEAD(e, args...).
func Lead(e Expr, args ...Expr) *WindowFunction {
	return NewWindowFunction("LEAD", e.Type().MakeNullable(), append([]Expr{e}, args...)...)
}

// Over returns a copy with an inline window built from traits.
func (n *WindowFunction) Over(traits ...Trait) *WindowFunction {
	c := *n
	c.WindowName = ""
	c.Traits = appendTrait(nil, traits...)
	return &c
}

// OverWindow returns a copy referencing a named window.
func (n *WindowFunction) OverWindow(name string) *WindowFunction {
	c := *n
	c.WindowName = name
	c.Traits = nil
	return &c
}

func (n *WindowFunction) Kind() Kind          { return KindWindowFunction }
func (n *WindowFunction) Accept(v Visitor)    { v.VisitWindowFunction(n) }
func (n *WindowFunction) Type() exprtype.Type { return n.ReturnType }
