package nodes

import (
	"fmt"
	"reflect"

	"github.com/bawdo/sqltree/exprtype"
)

// Literal wraps a Go value (string, number, bool, time, uuid, bytes).
type Literal struct {
	isExpr
	Value     any
	ValueType exprtype.Type
}

// NewLiteral creates a Literal whose type is inferred from the value.
func NewLiteral(v any) *Literal {
	return &Literal{Value: v, ValueType: exprtype.Create(reflect.TypeOf(v), false)}
}

// TypedLiteral creates a Literal with an explicit type.
func TypedLiteral(v any, t exprtype.Type) *Literal {
	return &Literal{Value: v, ValueType: t}
}

// Lit wraps a raw Go value as an expression. Expressions are returned as-is
// and nil becomes the NULL literal.
func Lit(v any) Expr {
	switch x := v.(type) {
	case nil:
		return NewNull()
	case Expr:
		return x
	}
	return NewLiteral(v)
}

func (n *Literal) Kind() Kind          { return KindLiteral }
func (n *Literal) Accept(v Visitor)    { v.VisitLiteral(n) }
func (n *Literal) Type() exprtype.Type { return n.ValueType }

// Null is the SQL NULL literal.
type Null struct{ isExpr }

func NewNull() *Null                { return &Null{} }
func (n *Null) Kind() Kind          { return KindNull }
func (n *Null) Accept(v Visitor)    { v.VisitNull(n) }
func (n *Null) Type() exprtype.Type { return exprtype.Null() }

// Parameter is a named bind parameter reference. The same name may be
// referenced several times in one tree.
type Parameter struct {
	isExpr
	Name      string
	ValueType exprtype.Type
	Index     int // positional index, or UnknownIndex
}

// NewParameter creates a named parameter with no positional index.
func NewParameter(name string, t exprtype.Type) *Parameter {
	return &Parameter{Name: name, ValueType: t, Index: UnknownIndex}
}

// NewIndexedParameter creates a named parameter bound to a position.
func NewIndexedParameter(name string, t exprtype.Type, index int) *Parameter {
	return &Parameter{Name: name, ValueType: t, Index: index}
}

func (n *Parameter) Kind() Kind          { return KindParameter }
func (n *Parameter) Accept(v Visitor)    { v.VisitParameter(n) }
func (n *Parameter) Type() exprtype.Type { return n.ValueType }

// Column is a column reference, optionally qualified by a table or alias name.
type Column struct {
	isExpr
	Qualifier string
	Name      string
	ValueType exprtype.Type
}

// NewColumn creates a column reference.
func NewColumn(qualifier, name string, t exprtype.Type) *Column {
	return &Column{Qualifier: qualifier, Name: name, ValueType: t}
}

func (n *Column) Kind() Kind          { return KindColumn }
func (n *Column) Accept(v Visitor)    { v.VisitColumn(n) }
func (n *Column) Type() exprtype.Type { return n.ValueType }

// Star is * or qualifier.*.
type Star struct {
	isExpr
	Qualifier string
}

func NewStar(qualifier string) *Star { return &Star{Qualifier: qualifier} }
func (n *Star) Kind() Kind           { return KindStar }
func (n *Star) Accept(v Visitor)     { v.VisitStar(n) }
func (n *Star) Type() exprtype.Type  { return exprtype.Type{} }

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpBitwiseNot
)

func (op UnaryOp) String() string {
	if op == OpBitwiseNot {
		return "~"
	}
	return "-"
}

// Unary is a prefix operator applied to an expression.
type Unary struct {
	isExpr
	Op      UnaryOp
	Operand Expr
}

func NewUnary(op UnaryOp, operand Expr) *Unary { return &Unary{Op: op, Operand: operand} }
func (n *Unary) Kind() Kind                    { return KindUnary }
func (n *Unary) Accept(v Visitor)              { v.VisitUnary(n) }
func (n *Unary) Type() exprtype.Type           { return n.Operand.Type() }

// BinaryOp identifies a binary math, bitwise, or concat operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpConcat
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
)

var binaryOpSymbols = [...]string{
	OpAdd:        "+",
	OpSubtract:   "-",
	OpMultiply:   "*",
	OpDivide:     "/",
	OpModulo:     "%",
	OpConcat:     "||",
	OpBitwiseAnd: "&",
	OpBitwiseOr:  "|",
	OpBitwiseXor: "^",
	OpShiftLeft:  "<<",
	OpShiftRight: ">>",
}

// String returns the operator symbol.
func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Binary is Left Op Right. Its type is the common type of both operands, or
// unknown when they are incompatible.
type Binary struct {
	isExpr
	Op          BinaryOp
	Left, Right Expr
	ValueType   exprtype.Type
}

// NewBinary creates a Binary node. Incompatible operand types do not fail
// construction; the node's type is left unknown instead.
func NewBinary(op BinaryOp, left, right Expr) *Binary {
	var t exprtype.Type
	if exprtype.HaveCommonType(left.Type(), right.Type()) {
		t, _ = exprtype.GetCommonType(left.Type(), right.Type())
	}
	return &Binary{Op: op, Left: left, Right: right, ValueType: t}
}

func Add(l, r Expr) *Binary      { return NewBinary(OpAdd, l, r) }
func Subtract(l, r Expr) *Binary { return NewBinary(OpSubtract, l, r) }
func Multiply(l, r Expr) *Binary { return NewBinary(OpMultiply, l, r) }
func Divide(l, r Expr) *Binary   { return NewBinary(OpDivide, l, r) }
func Concat(l, r Expr) *Binary   { return NewBinary(OpConcat, l, r) }

func (n *Binary) Kind() Kind          { return KindBinary }
func (n *Binary) Accept(v Visitor)    { v.VisitBinary(n) }
func (n *Binary) Type() exprtype.Type { return n.ValueType }

// Function is a scalar function call such as LOWER or COALESCE.
type Function struct {
	isExpr
	Name       string
	Args       []Expr
	ReturnType exprtype.Type
}

// NewFunction creates a function call with an explicit return type.
func NewFunction(name string, ret exprtype.Type, args ...Expr) *Function {
	return &Function{Name: name, Args: args, ReturnType: ret}
}

// Coalesce creates COALESCE(args...). The result is nullable only when every
// argument is.
func Coalesce(args ...Expr) *Function {
	types := make([]exprtype.Type, len(args))
	required := false
	for i, a := range args {
		types[i] = a.Type()
		if types[i].IsKnown() && !types[i].IsNull() && !types[i].IsNullable() {
			required = true
		}
	}
	t := exprtype.Unify(types...)
	if required {
		t = t.MakeRequired()
	}
	return NewFunction("COALESCE", t, args...)
}

// Lower creates LOWER(expr).
func Lower(e Expr) *Function { return NewFunction("LOWER", e.Type(), e) }

// Upper creates UPPER(expr).
func Upper(e Expr) *Function { return NewFunction("UPPER", e.Type(), e) }

func (n *Function) Kind() Kind          { return KindFunction }
func (n *Function) Accept(v Visitor)    { v.VisitFunction(n) }
func (n *Function) Type() exprtype.Type { return n.ReturnType }

// Cast is CAST(operand AS type).
type Cast struct {
	isExpr
	Operand  Expr
	Target   exprtype.Type
	TypeName string // SQL spelling; derived from Target when empty
}

// NewCast creates a Cast to the given type.
func NewCast(operand Expr, target exprtype.Type, typeName string) *Cast {
	return &Cast{Operand: operand, Target: target, TypeName: typeName}
}

func (n *Cast) Kind() Kind       { return KindCast }
func (n *Cast) Accept(v Visitor) { v.VisitCast(n) }

// Type is the target type, nullable when the operand is.
func (n *Cast) Type() exprtype.Type {
	if n.Operand.Type().IsNullable() || n.Operand.Type().IsNull() {
		return n.Target.MakeNullable()
	}
	return n.Target
}

// CaseWhen is one WHEN ... THEN ... arm. When is an expression for a simple
// CASE and a condition for a searched CASE.
type CaseWhen struct {
	When Node
	Then Expr
}

// NewCaseWhen creates a WHEN arm.
func NewCaseWhen(when Node, then Expr) *CaseWhen {
	if !CategoryOf(when).Has(CategoryExpression | CategoryCondition) {
		panic(fmt.Sprintf("sqltree: CASE WHEN operand must be an expression or condition, got %v", when))
	}
	return &CaseWhen{When: when, Then: then}
}

func (n *CaseWhen) Kind() Kind       { return KindCaseWhen }
func (n *CaseWhen) Accept(v Visitor) { v.VisitCaseWhen(n) }

// Case is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type Case struct {
	isExpr
	Operand   Expr // nil for a searched CASE
	Whens     []*CaseWhen
	Else      Expr // nil when omitted
	ValueType exprtype.Type
}

// NewCase creates a Case whose type unifies every THEN and the ELSE value.
// Without ELSE the result is nullable.
func NewCase(operand Expr, whens []*CaseWhen, els Expr) *Case {
	types := make([]exprtype.Type, 0, len(whens)+1)
	for _, w := range whens {
		types = append(types, w.Then.Type())
	}
	if els != nil {
		types = append(types, els.Type())
	}
	t := exprtype.Unify(types...)
	if els == nil {
		t = t.MakeNullable()
	}
	return &Case{Operand: operand, Whens: whens, Else: els, ValueType: t}
}

func (n *Case) Kind() Kind          { return KindCase }
func (n *Case) Accept(v Visitor)    { v.VisitCase(n) }
func (n *Case) Type() exprtype.Type { return n.ValueType }

// Alias is expr AS name.
type Alias struct {
	isExpr
	Expr Expr
	Name string
}

func NewAlias(e Expr, name string) *Alias { return &Alias{Expr: e, Name: name} }
func (n *Alias) Kind() Kind               { return KindAlias }
func (n *Alias) Accept(v Visitor)         { v.VisitAlias(n) }
func (n *Alias) Type() exprtype.Type      { return n.Expr.Type() }

// ScalarSubquery is a query used as a single value.
type ScalarSubquery struct {
	isExpr
	Query     Query
	ValueType exprtype.Type
}

func NewScalarSubquery(q Query, t exprtype.Type) *ScalarSubquery {
	return &ScalarSubquery{Query: q, ValueType: t}
}
func (n *ScalarSubquery) Kind() Kind          { return KindScalarSubquery }
func (n *ScalarSubquery) Accept(v Visitor)    { v.VisitScalarSubquery(n) }
func (n *ScalarSubquery) Type() exprtype.Type { return n.ValueType }

// ConditionExpr uses a condition as a boolean value, e.g. in a projection.
type ConditionExpr struct {
	isExpr
	Cond Condition
}

func NewConditionExpr(c Condition) *ConditionExpr { return &ConditionExpr{Cond: c} }
func (n *ConditionExpr) Kind() Kind               { return KindConditionExpr }
func (n *ConditionExpr) Accept(v Visitor)         { v.VisitConditionExpr(n) }
func (n *ConditionExpr) Type() exprtype.Type      { return exprtype.Of[bool](true) }

// Tuple is a parenthesized row of expressions.
type Tuple struct {
	isExpr
	Items []Expr
}

func NewTuple(items ...Expr) *Tuple  { return &Tuple{Items: items} }
func (n *Tuple) Kind() Kind          { return KindTuple }
func (n *Tuple) Accept(v Visitor)    { v.VisitTuple(n) }
func (n *Tuple) Type() exprtype.Type { return exprtype.Type{} }

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// NullsOrder controls NULLS FIRST/LAST positioning.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// Ordering is one ORDER BY item.
type Ordering struct {
	Expr      Expr
	Direction OrderDirection
	Nulls     NullsOrder
}

func NewAsc(e Expr) *Ordering  { return &Ordering{Expr: e, Direction: Asc} }
func NewDesc(e Expr) *Ordering { return &Ordering{Expr: e, Direction: Desc} }

func (n *Ordering) Kind() Kind       { return KindOrdering }
func (n *Ordering) Accept(v Visitor) { v.VisitOrdering(n) }

// Default is the DEFAULT keyword in VALUES rows and SET clauses.
type Default struct{ isExpr }

func NewDefault() *Default             { return &Default{} }
func (n *Default) Kind() Kind          { return KindDefault }
func (n *Default) Accept(v Visitor)    { v.VisitDefault(n) }
func (n *Default) Type() exprtype.Type { return exprtype.Type{} }
