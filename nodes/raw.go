package nodes

import "github.com/bawdo/sqltree/exprtype"

// Raw nodes embed preformatted SQL text. Params lists the parameters the text
// refers to so that renderers can register them; the text itself is written
// verbatim.

// RawExpr is a raw SQL expression.
type RawExpr struct {
	isExpr
	SQL       string
	Params    []*Parameter
	ValueType exprtype.Type
}

func NewRawExpr(sql string, t exprtype.Type, params ...*Parameter) *RawExpr {
	return &RawExpr{SQL: sql, Params: params, ValueType: t}
}
func (n *RawExpr) Kind() Kind          { return KindRawExpr }
func (n *RawExpr) Accept(v Visitor)    { v.VisitRawExpr(n) }
func (n *RawExpr) Type() exprtype.Type { return n.ValueType }

// RawCondition is a raw SQL predicate.
type RawCondition struct {
	isCondition
	SQL    string
	Params []*Parameter
}

func NewRawCondition(sql string, params ...*Parameter) *RawCondition {
	return &RawCondition{SQL: sql, Params: params}
}
func (n *RawCondition) Kind() Kind       { return KindRawCondition }
func (n *RawCondition) Accept(v Visitor) { v.VisitRawCondition(n) }

// RawRecordSet is raw SQL in FROM position, optionally aliased.
type RawRecordSet struct {
	isRecordSet
	SQL    string
	Params []*Parameter
	Alias  string
}

func NewRawRecordSet(sql, alias string, params ...*Parameter) *RawRecordSet {
	return &RawRecordSet{SQL: sql, Alias: alias, Params: params}
}
func (n *RawRecordSet) Kind() Kind       { return KindRawRecordSet }
func (n *RawRecordSet) Accept(v Visitor) { v.VisitRawRecordSet(n) }

// RawQuery is a raw SQL query usable wherever a query is expected.
type RawQuery struct {
	isQuery
	SQL    string
	Params []*Parameter
}

func NewRawQuery(sql string, params ...*Parameter) *RawQuery {
	return &RawQuery{SQL: sql, Params: params}
}
func (n *RawQuery) Kind() Kind       { return KindRawQuery }
func (n *RawQuery) Accept(v Visitor) { v.VisitRawQuery(n) }

// RawStatement is a raw SQL statement.
type RawStatement struct {
	isStatement
	SQL    string
	Params []*Parameter
}

func NewRawStatement(sql string, params ...*Parameter) *RawStatement {
	return &RawStatement{SQL: sql, Params: params}
}
func (n *RawStatement) Kind() Kind       { return KindRawStatement }
func (n *RawStatement) Accept(v Visitor) { v.VisitRawStatement(n) }
