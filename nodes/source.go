package nodes

import "github.com/bawdo/sqltree/exprtype"

// Table is a named table reference.
type Table struct {
	isRecordSet
	Schema string
	Name   string
	Alias  string
}

// NewTable creates a table reference.
func NewTable(name string) *Table { return &Table{Name: name} }

// NewSchemaTable creates a schema-qualified table reference.
func NewSchemaTable(schema, name string) *Table { return &Table{Schema: schema, Name: name} }

// As returns an aliased copy of the table.
func (n *Table) As(alias string) *Table {
	c := *n
	c.Alias = alias
	return &c
}

// Ref returns the name columns should be qualified with: the alias when set,
// otherwise the table name.
func (n *Table) Ref() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// Col returns an untyped column qualified by this table.
func (n *Table) Col(name string) *Column { return NewColumn(n.Ref(), name, exprtype.Type{}) }

// TypedCol returns a typed column qualified by this table.
func (n *Table) TypedCol(name string, t exprtype.Type) *Column { return NewColumn(n.Ref(), name, t) }

// Star returns ref.*.
func (n *Table) Star() *Star { return NewStar(n.Ref()) }

func (n *Table) Kind() Kind       { return KindTable }
func (n *Table) Accept(v Visitor) { v.VisitTable(n) }

// TableFunction is a set-returning function in FROM position.
type TableFunction struct {
	isRecordSet
	Name  string
	Args  []Expr
	Alias string
}

func NewTableFunction(name, alias string, args ...Expr) *TableFunction {
	return &TableFunction{Name: name, Args: args, Alias: alias}
}
func (n *TableFunction) Kind() Kind       { return KindTableFunction }
func (n *TableFunction) Accept(v Visitor) { v.VisitTableFunction(n) }

// DerivedTable is (query) AS alias [(columns)].
type DerivedTable struct {
	isRecordSet
	Query   Query
	Alias   string
	Columns []string
}

func NewDerivedTable(q Query, alias string, columns ...string) *DerivedTable {
	return &DerivedTable{Query: q, Alias: alias, Columns: columns}
}
func (n *DerivedTable) Col(name string) *Column { return NewColumn(n.Alias, name, exprtype.Type{}) }
func (n *DerivedTable) Kind() Kind              { return KindDerivedTable }
func (n *DerivedTable) Accept(v Visitor)        { v.VisitDerivedTable(n) }

// ValuesTable is (VALUES (...), (...)) AS alias [(columns)].
type ValuesTable struct {
	isRecordSet
	Rows    []*Tuple
	Alias   string
	Columns []string
}

func NewValuesTable(alias string, columns []string, rows ...*Tuple) *ValuesTable {
	return &ValuesTable{Rows: rows, Alias: alias, Columns: columns}
}
func (n *ValuesTable) Kind() Kind       { return KindValuesTable }
func (n *ValuesTable) Accept(v Visitor) { v.VisitValuesTable(n) }

// JoinType represents the type of SQL join.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

var joinKeywords = [...]string{
	InnerJoin: "INNER JOIN",
	LeftJoin:  "LEFT JOIN",
	RightJoin: "RIGHT JOIN",
	FullJoin:  "FULL JOIN",
	CrossJoin: "CROSS JOIN",
}

// String returns the SQL keyword for the join type.
func (jt JoinType) String() string { return joinKeywords[jt] }

// Join is one JOIN clause of a data source.
type Join struct {
	Type    JoinType
	Source  RecordSet
	On      Condition // nil for CROSS JOIN
	Lateral bool
}

func NewJoin(jt JoinType, source RecordSet, on Condition) *Join {
	return &Join{Type: jt, Source: source, On: on}
}
func (n *Join) Kind() Kind       { return KindJoin }
func (n *Join) Accept(v Visitor) { v.VisitJoin(n) }

// DataSource is the FROM part of a query: a record set, its joins and the
// filter traits (WHERE) applied to them.
type DataSource struct {
	From   RecordSet
	Joins  []*Join
	Traits []Trait
}

// NewDataSource creates a data source reading from rs.
func NewDataSource(rs RecordSet) *DataSource { return &DataSource{From: rs} }

// WithJoin returns a copy with j appended.
func (n *DataSource) WithJoin(j *Join) *DataSource {
	c := *n
	c.Joins = make([]*Join, 0, len(n.Joins)+1)
	c.Joins = append(append(c.Joins, n.Joins...), j)
	return &c
}

// WithTraits returns a copy with traits appended.
func (n *DataSource) WithTraits(traits ...Trait) *DataSource {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

// Where returns a copy filtered by cond.
func (n *DataSource) Where(cond Condition) *DataSource { return n.WithTraits(NewFilter(cond)) }

func (n *DataSource) Kind() Kind       { return KindDataSource }
func (n *DataSource) Accept(v Visitor) { v.VisitDataSource(n) }

// CommonTableExpr is one WITH entry: name [(columns)] AS (query).
type CommonTableExpr struct {
	Name      string
	Columns   []string
	Query     Query
	Recursive bool
}

func NewCommonTableExpr(name string, q Query, columns ...string) *CommonTableExpr {
	return &CommonTableExpr{Name: name, Query: q, Columns: columns}
}

// Table returns a table reference to the CTE.
func (n *CommonTableExpr) Table() *Table { return NewTable(n.Name) }

func (n *CommonTableExpr) Kind() Kind       { return KindCommonTableExpr }
func (n *CommonTableExpr) Accept(v Visitor) { v.VisitCommonTableExpr(n) }
