package nodes

import "strings"

// Kind is the discriminant carried by every node.
type Kind int

const (
	// expressions
	KindLiteral Kind = iota
	KindNull
	KindParameter
	KindColumn
	KindStar
	KindUnary
	KindBinary
	KindFunction
	KindAggregate
	KindWindowFunction
	KindCast
	KindCase
	KindCaseWhen
	KindAlias
	KindScalarSubquery
	KindConditionExpr
	KindTuple
	KindRawExpr
	KindOrdering
	KindDefault

	// conditions
	KindTrue
	KindFalse
	KindComparison
	KindAnd
	KindOr
	KindNot
	KindIsNull
	KindIn
	KindInQuery
	KindBetween
	KindLike
	KindExists
	KindExprCondition
	KindRawCondition

	// record sets and data sources
	KindTable
	KindTableFunction
	KindDerivedTable
	KindValuesTable
	KindRawRecordSet
	KindJoin
	KindDataSource
	KindCommonTableExpr

	// queries
	KindSelect
	KindSetOperation
	KindRawQuery

	// traits
	KindFilter
	KindSort
	KindLimit
	KindOffset
	KindDistinct
	KindGroupBy
	KindHaving
	KindWith
	KindWindow
	KindPartitionBy
	KindFrame
	KindLock
	KindReturning
	KindComment
	KindHint

	// DML
	KindInsert
	KindUpdate
	KindDelete
	KindAssignment
	KindOnConflict

	// DDL
	KindCreateTable
	KindColumnDefinition
	KindPrimaryKey
	KindUniqueConstraint
	KindForeignKey
	KindCheckConstraint
	KindDropTable
	KindTruncateTable
	KindCreateIndex
	KindDropIndex
	KindCreateView
	KindDropView
	KindAlterTableAddColumn
	KindAlterTableDropColumn

	// transaction control
	KindBegin
	KindCommit
	KindRollback
	KindSavepoint
	KindReleaseSavepoint

	// misc
	KindBatch
	KindRawStatement

	kindCount
)

var kindNames = [...]string{
	KindLiteral:              "Literal",
	KindNull:                 "Null",
	KindParameter:            "Parameter",
	KindColumn:               "Column",
	KindStar:                 "Star",
	KindUnary:                "Unary",
	KindBinary:               "Binary",
	KindFunction:             "Function",
	KindAggregate:            "Aggregate",
	KindWindowFunction:       "WindowFunction",
	KindCast:                 "Cast",
	KindCase:                 "Case",
	KindCaseWhen:             "CaseWhen",
	KindAlias:                "Alias",
	KindScalarSubquery:       "ScalarSubquery",
	KindConditionExpr:        "ConditionExpr",
	KindTuple:                "Tuple",
	KindRawExpr:              "RawExpr",
	KindOrdering:             "Ordering",
	KindDefault:              "Default",
	KindTrue:                 "True",
	KindFalse:                "False",
	KindComparison:           "Comparison",
	KindAnd:                  "And",
	KindOr:                   "Or",
	KindNot:                  "Not",
	KindIsNull:               "IsNull",
	KindIn:                   "In",
	KindInQuery:              "InQuery",
	KindBetween:              "Between",
	KindLike:                 "Like",
	KindExists:               "Exists",
	KindExprCondition:        "ExprCondition",
	KindRawCondition:         "RawCondition",
	KindTable:                "Table",
	KindTableFunction:        "TableFunction",
	KindDerivedTable:         "DerivedTable",
	KindValuesTable:          "ValuesTable",
	KindRawRecordSet:         "RawRecordSet",
	KindJoin:                 "Join",
	KindDataSource:           "DataSource",
	KindCommonTableExpr:      "CommonTableExpr",
	KindSelect:               "Select",
	KindSetOperation:         "SetOperation",
	KindRawQuery:             "RawQuery",
	KindFilter:               "Filter",
	KindSort:                 "Sort",
	KindLimit:                "Limit",
	KindOffset:               "Offset",
	KindDistinct:             "Distinct",
	KindGroupBy:              "GroupBy",
	KindHaving:               "Having",
	KindWith:                 "With",
	KindWindow:               "Window",
	KindPartitionBy:          "PartitionBy",
	KindFrame:                "Frame",
	KindLock:                 "Lock",
	KindReturning:            "Returning",
	KindComment:              "Comment",
	KindHint:                 "Hint",
	KindInsert:               "Insert",
	KindUpdate:               "Update",
	KindDelete:               "Delete",
	KindAssignment:           "Assignment",
	KindOnConflict:           "OnConflict",
	KindCreateTable:          "CreateTable",
	KindColumnDefinition:     "ColumnDefinition",
	KindPrimaryKey:           "PrimaryKey",
	KindUniqueConstraint:     "UniqueConstraint",
	KindForeignKey:           "ForeignKey",
	KindCheckConstraint:      "CheckConstraint",
	KindDropTable:            "DropTable",
	KindTruncateTable:        "TruncateTable",
	KindCreateIndex:          "CreateIndex",
	KindDropIndex:            "DropIndex",
	KindCreateView:           "CreateView",
	KindDropView:             "DropView",
	KindAlterTableAddColumn:  "AlterTableAddColumn",
	KindAlterTableDropColumn: "AlterTableDropColumn",
	KindBegin:                "Begin",
	KindCommit:               "Commit",
	KindRollback:             "Rollback",
	KindSavepoint:            "Savepoint",
	KindReleaseSavepoint:     "ReleaseSavepoint",
	KindBatch:                "Batch",
	KindRawStatement:         "RawStatement",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Category is a set of static node categories. Child slots declare the
// category they accept; a node satisfies a slot when its category shares a
// bit with the slot's.
type Category uint32

const (
	CategoryExpression Category = 1 << iota
	CategoryCondition
	CategoryRecordSet
	CategoryDataSource
	CategoryJoin
	CategoryQuery
	CategoryTrait
	CategoryStatement
	CategoryOrdering
	CategoryCommonTableExpr
	CategoryCaseWhen
	CategoryAssignment
	CategoryColumnDefinition
	CategoryConstraint
	CategoryOnConflict
	CategoryTable
	CategoryParameter
	CategoryColumn
	CategoryTuple
)

var categoryNames = []string{
	"expression", "condition", "record set", "data source", "join", "query",
	"trait", "statement", "ordering", "common table expression", "case when",
	"assignment", "column definition", "constraint", "on conflict", "table",
	"parameter", "column", "tuple",
}

// Has reports whether c shares at least one category with want.
func (c Category) Has(want Category) bool { return c&want != 0 }

func (c Category) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for i, name := range categoryNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

var kindCategories = [...]Category{
	KindLiteral:        CategoryExpression,
	KindNull:           CategoryExpression,
	KindParameter:      CategoryExpression | CategoryParameter,
	KindColumn:         CategoryExpression | CategoryColumn,
	KindStar:           CategoryExpression,
	KindUnary:          CategoryExpression,
	KindBinary:         CategoryExpression,
	KindFunction:       CategoryExpression,
	KindAggregate:      CategoryExpression,
	KindWindowFunction: CategoryExpression,
	KindCast:           CategoryExpression,
	KindCase:           CategoryExpression,
	KindCaseWhen:       CategoryCaseWhen,
	KindAlias:          CategoryExpression,
	KindScalarSubquery: CategoryExpression,
	KindConditionExpr:  CategoryExpression,
	KindTuple:          CategoryExpression | CategoryTuple,
	KindRawExpr:        CategoryExpression,
	KindOrdering:       CategoryOrdering,
	KindDefault:        CategoryExpression,

	KindTrue:          CategoryCondition,
	KindFalse:         CategoryCondition,
	KindComparison:    CategoryCondition,
	KindAnd:           CategoryCondition,
	KindOr:            CategoryCondition,
	KindNot:           CategoryCondition,
	KindIsNull:        CategoryCondition,
	KindIn:            CategoryCondition,
	KindInQuery:       CategoryCondition,
	KindBetween:       CategoryCondition,
	KindLike:          CategoryCondition,
	KindExists:        CategoryCondition,
	KindExprCondition: CategoryCondition,
	KindRawCondition:  CategoryCondition,

	KindTable:           CategoryRecordSet | CategoryTable,
	KindTableFunction:   CategoryRecordSet,
	KindDerivedTable:    CategoryRecordSet,
	KindValuesTable:     CategoryRecordSet,
	KindRawRecordSet:    CategoryRecordSet,
	KindJoin:            CategoryJoin,
	KindDataSource:      CategoryDataSource,
	KindCommonTableExpr: CategoryCommonTableExpr,

	KindSelect:       CategoryQuery | CategoryStatement,
	KindSetOperation: CategoryQuery | CategoryStatement,
	KindRawQuery:     CategoryQuery | CategoryStatement,

	KindFilter:      CategoryTrait,
	KindSort:        CategoryTrait,
	KindLimit:       CategoryTrait,
	KindOffset:      CategoryTrait,
	KindDistinct:    CategoryTrait,
	KindGroupBy:     CategoryTrait,
	KindHaving:      CategoryTrait,
	KindWith:        CategoryTrait,
	KindWindow:      CategoryTrait,
	KindPartitionBy: CategoryTrait,
	KindFrame:       CategoryTrait,
	KindLock:        CategoryTrait,
	KindReturning:   CategoryTrait,
	KindComment:     CategoryTrait,
	KindHint:        CategoryTrait,

	KindInsert:     CategoryStatement,
	KindUpdate:     CategoryStatement,
	KindDelete:     CategoryStatement,
	KindAssignment: CategoryAssignment,
	KindOnConflict: CategoryOnConflict,

	KindCreateTable:          CategoryStatement,
	KindColumnDefinition:     CategoryColumnDefinition,
	KindPrimaryKey:           CategoryConstraint,
	KindUniqueConstraint:     CategoryConstraint,
	KindForeignKey:           CategoryConstraint,
	KindCheckConstraint:      CategoryConstraint,
	KindDropTable:            CategoryStatement,
	KindTruncateTable:        CategoryStatement,
	KindCreateIndex:          CategoryStatement,
	KindDropIndex:            CategoryStatement,
	KindCreateView:           CategoryStatement,
	KindDropView:             CategoryStatement,
	KindAlterTableAddColumn:  CategoryStatement,
	KindAlterTableDropColumn: CategoryStatement,

	KindBegin:            CategoryStatement,
	KindCommit:           CategoryStatement,
	KindRollback:         CategoryStatement,
	KindSavepoint:        CategoryStatement,
	KindReleaseSavepoint: CategoryStatement,

	KindBatch:        CategoryStatement,
	KindRawStatement: CategoryStatement,
}

// Category returns the static category of nodes of kind k.
func (k Kind) Category() Category {
	if k < 0 || k >= kindCount {
		return 0
	}
	return kindCategories[k]
}

// CategoryOf returns the category of n, or 0 for a nil node.
func CategoryOf(n Node) Category {
	if n == nil {
		return 0
	}
	return n.Kind().Category()
}
