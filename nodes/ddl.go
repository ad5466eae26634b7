package nodes

import "github.com/bawdo/sqltree/exprtype"

// ColumnDefinition is one column of CREATE TABLE or ALTER TABLE ADD COLUMN.
// NOT NULL is derived from the type's nullability.
type ColumnDefinition struct {
	Name       string
	Type       exprtype.Type
	TypeName   string // SQL spelling; derived from Type when empty
	Default    Expr
	PrimaryKey bool
	Unique     bool
}

func NewColumnDefinition(name string, t exprtype.Type) *ColumnDefinition {
	return &ColumnDefinition{Name: name, Type: t}
}
func (n *ColumnDefinition) Kind() Kind       { return KindColumnDefinition }
func (n *ColumnDefinition) Accept(v Visitor) { v.VisitColumnDefinition(n) }

// PrimaryKey is [CONSTRAINT name] PRIMARY KEY (columns).
type PrimaryKey struct {
	isConstraint
	Name    string
	Columns []string
}

func NewPrimaryKey(columns ...string) *PrimaryKey { return &PrimaryKey{Columns: columns} }
func (n *PrimaryKey) Kind() Kind                  { return KindPrimaryKey }
func (n *PrimaryKey) Accept(v Visitor)            { v.VisitPrimaryKey(n) }

// UniqueConstraint is [CONSTRAINT name] UNIQUE (columns).
type UniqueConstraint struct {
	isConstraint
	Name    string
	Columns []string
}

func NewUniqueConstraint(columns ...string) *UniqueConstraint {
	return &UniqueConstraint{Columns: columns}
}
func (n *UniqueConstraint) Kind() Kind       { return KindUniqueConstraint }
func (n *UniqueConstraint) Accept(v Visitor) { v.VisitUniqueConstraint(n) }

// ReferentialAction is the ON DELETE behaviour of a foreign key.
type ReferentialAction int

const (
	NoAction ReferentialAction = iota
	Cascade
	SetNull
	Restrict
)

var referentialKeywords = [...]string{
	NoAction: "NO ACTION",
	Cascade:  "CASCADE",
	SetNull:  "SET NULL",
	Restrict: "RESTRICT",
}

func (a ReferentialAction) String() string { return referentialKeywords[a] }

// ForeignKey is [CONSTRAINT name] FOREIGN KEY (columns) REFERENCES table (columns).
type ForeignKey struct {
	isConstraint
	Name       string
	Columns    []string
	RefTable   *Table
	RefColumns []string
	OnDelete   ReferentialAction
}

func NewForeignKey(columns []string, ref *Table, refColumns ...string) *ForeignKey {
	return &ForeignKey{Columns: columns, RefTable: ref, RefColumns: refColumns}
}
func (n *ForeignKey) Kind() Kind       { return KindForeignKey }
func (n *ForeignKey) Accept(v Visitor) { v.VisitForeignKey(n) }

// CheckConstraint is [CONSTRAINT name] CHECK (cond).
type CheckConstraint struct {
	isConstraint
	Name string
	Cond Condition
}

func NewCheckConstraint(name string, c Condition) *CheckConstraint {
	return &CheckConstraint{Name: name, Cond: c}
}
func (n *CheckConstraint) Kind() Kind       { return KindCheckConstraint }
func (n *CheckConstraint) Accept(v Visitor) { v.VisitCheckConstraint(n) }

// CreateTable is CREATE [TEMPORARY] TABLE [IF NOT EXISTS] table (...) or
// CREATE TABLE ... AS query when AsQuery is set.
type CreateTable struct {
	isStatement
	Table       *Table
	Columns     []*ColumnDefinition
	Constraints []Constraint
	IfNotExists bool
	Temporary   bool
	AsQuery     Query
}

func NewCreateTable(table *Table, columns ...*ColumnDefinition) *CreateTable {
	return &CreateTable{Table: table, Columns: columns}
}
func (n *CreateTable) Kind() Kind       { return KindCreateTable }
func (n *CreateTable) Accept(v Visitor) { v.VisitCreateTable(n) }

// DropTable is DROP TABLE [IF EXISTS] table.
type DropTable struct {
	isStatement
	Table    *Table
	IfExists bool
}

func NewDropTable(table *Table) *DropTable { return &DropTable{Table: table} }
func (n *DropTable) Kind() Kind            { return KindDropTable }
func (n *DropTable) Accept(v Visitor)      { v.VisitDropTable(n) }

// TruncateTable empties a table. Dialects without TRUNCATE render DELETE FROM.
type TruncateTable struct {
	isStatement
	Table *Table
}

func NewTruncateTable(table *Table) *TruncateTable { return &TruncateTable{Table: table} }
func (n *TruncateTable) Kind() Kind                { return KindTruncateTable }
func (n *TruncateTable) Accept(v Visitor)          { v.VisitTruncateTable(n) }

// CreateIndex is CREATE [UNIQUE] INDEX [IF NOT EXISTS] name ON table (columns) [WHERE cond].
type CreateIndex struct {
	isStatement
	Name        string
	Table       *Table
	Columns     []Expr
	Unique      bool
	IfNotExists bool
	Where       Condition
}

func NewCreateIndex(name string, table *Table, columns ...Expr) *CreateIndex {
	return &CreateIndex{Name: name, Table: table, Columns: columns}
}
func (n *CreateIndex) Kind() Kind       { return KindCreateIndex }
func (n *CreateIndex) Accept(v Visitor) { v.VisitCreateIndex(n) }

// DropIndex is DROP INDEX [IF EXISTS] name.
type DropIndex struct {
	isStatement
	Name     string
	IfExists bool
}

func NewDropIndex(name string) *DropIndex { return &DropIndex{Name: name} }
func (n *DropIndex) Kind() Kind           { return KindDropIndex }
func (n *DropIndex) Accept(v Visitor)     { v.VisitDropIndex(n) }

// CreateView is CREATE [OR REPLACE] VIEW view [(columns)] AS query.
type CreateView struct {
	isStatement
	View      *Table
	Columns   []string
	Query     Query
	OrReplace bool
}

func NewCreateView(view *Table, q Query, columns ...string) *CreateView {
	return &CreateView{View: view, Query: q, Columns: columns}
}
func (n *CreateView) Kind() Kind       { return KindCreateView }
func (n *CreateView) Accept(v Visitor) { v.VisitCreateView(n) }

// DropView is DROP VIEW [IF EXISTS] view.
type DropView struct {
	isStatement
	View     *Table
	IfExists bool
}

func NewDropView(view *Table) *DropView { return &DropView{View: view} }
func (n *DropView) Kind() Kind          { return KindDropView }
func (n *DropView) Accept(v Visitor)    { v.VisitDropView(n) }

// AlterTableAddColumn is ALTER TABLE table ADD COLUMN definition.
type AlterTableAddColumn struct {
	isStatement
	Table  *Table
	Column *ColumnDefinition
}

func NewAlterTableAddColumn(table *Table, col *ColumnDefinition) *AlterTableAddColumn {
	return &AlterTableAddColumn{Table: table, Column: col}
}
func (n *AlterTableAddColumn) Kind() Kind       { return KindAlterTableAddColumn }
func (n *AlterTableAddColumn) Accept(v Visitor) { v.VisitAlterTableAddColumn(n) }

// AlterTableDropColumn is ALTER TABLE table DROP COLUMN [IF EXISTS] column.
type AlterTableDropColumn struct {
	isStatement
	Table    *Table
	Column   string
	IfExists bool
}

func NewAlterTableDropColumn(table *Table, column string) *AlterTableDropColumn {
	return &AlterTableDropColumn{Table: table, Column: column}
}
func (n *AlterTableDropColumn) Kind() Kind       { return KindAlterTableDropColumn }
func (n *AlterTableDropColumn) Accept(v Visitor) { v.VisitAlterTableDropColumn(n) }
