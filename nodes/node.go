// Package nodes defines the immutable SQL expression tree: expressions,
// conditions, record sets, queries, traits, DML, DDL and transaction control.
//
// Nodes are never modified after construction. Rewrites (see package mutator)
// build new nodes and share every subtree that did not change.
package nodes

import "github.com/bawdo/sqltree/exprtype"

// Node is the interface that all tree nodes implement.
type Node interface {
	Kind() Kind
	Accept(v Visitor)
}

// Expr is a node that yields a value.
type Expr interface {
	Node
	// Type reports the static type of the value; the zero Type means unknown.
	Type() exprtype.Type
	exprNode()
}

// Condition is a node that yields a boolean predicate.
type Condition interface {
	Node
	conditionNode()
}

// RecordSet is a node that can appear in a FROM or JOIN position.
type RecordSet interface {
	Node
	recordSetNode()
}

// Statement is a node that can be executed on its own.
type Statement interface {
	Node
	statementNode()
}

// Query is a statement that produces rows.
type Query interface {
	Statement
	queryNode()
}

// Trait is an ordered modifier attached to a data source, query or
// aggregate/window function.
type Trait interface {
	Node
	traitNode()
}

// Constraint is a table constraint inside CREATE TABLE.
type Constraint interface {
	Node
	constraintNode()
}

type isExpr struct{}

func (isExpr) exprNode() {}

type isCondition struct{}

func (isCondition) conditionNode() {}

type isRecordSet struct{}

func (isRecordSet) recordSetNode() {}

type isStatement struct{}

func (isStatement) statementNode() {}

type isQuery struct{ isStatement }

func (isQuery) queryNode() {}

type isTrait struct{}

func (isTrait) traitNode() {}

type isConstraint struct{}

func (isConstraint) constraintNode() {}

// UnknownIndex marks a parameter whose positional index is not known.
const UnknownIndex = -1

// Visitor has one method per node kind. See visitors.Base for the default
// depth-first traversal.
type Visitor interface {
	VisitLiteral(n *Literal)
	VisitNull(n *Null)
	VisitParameter(n *Parameter)
	VisitColumn(n *Column)
	VisitStar(n *Star)
	VisitUnary(n *Unary)
	VisitBinary(n *Binary)
	VisitFunction(n *Function)
	VisitAggregate(n *Aggregate)
	VisitWindowFunction(n *WindowFunction)
	VisitCast(n *Cast)
	VisitCase(n *Case)
	VisitCaseWhen(n *CaseWhen)
	VisitAlias(n *Alias)
	VisitScalarSubquery(n *ScalarSubquery)
	VisitConditionExpr(n *ConditionExpr)
	VisitTuple(n *Tuple)
	VisitRawExpr(n *RawExpr)
	VisitOrdering(n *Ordering)
	VisitDefault(n *Default)

	VisitTrue(n *True)
	VisitFalse(n *False)
	VisitComparison(n *Comparison)
	VisitAnd(n *And)
	VisitOr(n *Or)
	VisitNot(n *Not)
	VisitIsNull(n *IsNull)
	VisitIn(n *In)
	VisitInQuery(n *InQuery)
	VisitBetween(n *Between)
	VisitLike(n *Like)
	VisitExists(n *Exists)
	VisitExprCondition(n *ExprCondition)
	VisitRawCondition(n *RawCondition)

	VisitTable(n *Table)
	VisitTableFunction(n *TableFunction)
	VisitDerivedTable(n *DerivedTable)
	VisitValuesTable(n *ValuesTable)
	VisitRawRecordSet(n *RawRecordSet)
	VisitJoin(n *Join)
	VisitDataSource(n *DataSource)
	VisitCommonTableExpr(n *CommonTableExpr)

	VisitSelect(n *Select)
	VisitSetOperation(n *SetOperation)
	VisitRawQuery(n *RawQuery)

	VisitFilter(n *Filter)
	VisitSort(n *Sort)
	VisitLimit(n *Limit)
	VisitOffset(n *Offset)
	VisitDistinct(n *Distinct)
	VisitGroupBy(n *GroupBy)
	VisitHaving(n *Having)
	VisitWith(n *With)
	VisitWindow(n *Window)
	VisitPartitionBy(n *PartitionBy)
	VisitFrame(n *Frame)
	VisitLock(n *Lock)
	VisitReturning(n *Returning)
	VisitComment(n *Comment)
	VisitHint(n *Hint)

	VisitInsert(n *Insert)
	VisitUpdate(n *Update)
	VisitDelete(n *Delete)
	VisitAssignment(n *Assignment)
	VisitOnConflict(n *OnConflict)

	VisitCreateTable(n *CreateTable)
	VisitColumnDefinition(n *ColumnDefinition)
	VisitPrimaryKey(n *PrimaryKey)
	VisitUniqueConstraint(n *UniqueConstraint)
	VisitForeignKey(n *ForeignKey)
	VisitCheckConstraint(n *CheckConstraint)
	VisitDropTable(n *DropTable)
	VisitTruncateTable(n *TruncateTable)
	VisitCreateIndex(n *CreateIndex)
	VisitDropIndex(n *DropIndex)
	VisitCreateView(n *CreateView)
	VisitDropView(n *DropView)
	VisitAlterTableAddColumn(n *AlterTableAddColumn)
	VisitAlterTableDropColumn(n *AlterTableDropColumn)

	VisitBegin(n *Begin)
	VisitCommit(n *Commit)
	VisitRollback(n *Rollback)
	VisitSavepoint(n *Savepoint)
	VisitReleaseSavepoint(n *ReleaseSavepoint)

	VisitBatch(n *Batch)
	VisitRawStatement(n *RawStatement)
}

// appendTrait returns a fresh slice holding traits followed by more, leaving
// the original backing array untouched.
func appendTrait(traits []Trait, more ...Trait) []Trait {
	out := make([]Trait, 0, len(traits)+len(more))
	out = append(out, traits...)
	return append(out, more...)
}
