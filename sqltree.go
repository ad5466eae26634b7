// Package sqltree provides an immutable SQL statement tree for Go.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/sqltree/nodes (statement tree)
//   - github.com/bawdo/sqltree/exprtype (expression types)
//   - github.com/bawdo/sqltree/visitors (traversal and SQL generation)
//   - github.com/bawdo/sqltree/mutator (tree rewriting)
//   - github.com/bawdo/sqltree/managers (fluent builders)
//   - github.com/bawdo/sqltree/plugins (statement transformers)
package sqltree

import (
	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/managers"
	"github.com/bawdo/sqltree/mutator"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/visitors"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT queries.
type InsertManager = managers.InsertManager

// UpdateManager provides a fluent API for building UPDATE queries.
type UpdateManager = managers.UpdateManager

// DeleteManager provides a fluent API for building DELETE queries.
type DeleteManager = managers.DeleteManager

// --- Manager Constructors ---

// NewSelect creates a new SelectManager with the given record set as FROM.
func NewSelect(from nodes.RecordSet) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager for inserting into the given table.
func NewInsert(into *nodes.Table) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// NewUpdate creates a new UpdateManager for updating the given table.
func NewUpdate(table *nodes.Table) *managers.UpdateManager {
	return managers.NewUpdateManager(table)
}

// NewDelete creates a new DeleteManager for deleting from the given table.
func NewDelete(from *nodes.Table) *managers.DeleteManager {
	return managers.NewDeleteManager(from)
}

// --- Core Node Types ---

// Node is the interface all tree nodes implement.
type Node = nodes.Node

// Expr is a value-producing node.
type Expr = nodes.Expr

// Condition is a boolean predicate node.
type Condition = nodes.Condition

// Statement is a top-level executable node.
type Statement = nodes.Statement

// Table represents a SQL table reference.
type Table = nodes.Table

// Column represents a column reference (e.g., table.column).
type Column = nodes.Column

// Type is the nullability-aware type of an expression.
type Type = exprtype.Type

// --- Common Node Constructors ---

// NewTable creates a new table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal wraps a Go value as an expression. nil becomes NULL.
func Literal(value any) nodes.Expr {
	return nodes.Lit(value)
}

// Param creates a named parameter of type T.
func Param[T any](name string, nullable bool) *nodes.Parameter {
	return nodes.NewParameter(name, exprtype.Of[T](nullable))
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.Star {
	return nodes.NewStar("")
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate, or COUNT(*) without arguments.
func Count(args ...nodes.Expr) *nodes.Aggregate {
	return nodes.Count(args...)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Expr) *nodes.Aggregate {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Expr) *nodes.Aggregate {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Expr) *nodes.Aggregate {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Expr) *nodes.Aggregate {
	return nodes.Max(expr)
}

// --- Renderers ---

// Renderer generates SQL text and a parameter table from a tree.
type Renderer = visitors.Renderer

// NewRenderer creates an ANSI renderer with @name placeholders.
func NewRenderer(opts ...visitors.Option) *visitors.Renderer {
	return visitors.NewRenderer(opts...)
}

// NewPostgresRenderer creates a PostgreSQL renderer with $n placeholders.
func NewPostgresRenderer(opts ...visitors.Option) *visitors.Renderer {
	return visitors.NewPostgresRenderer(opts...)
}

// NewSQLiteRenderer creates a SQLite renderer with :name placeholders.
func NewSQLiteRenderer(opts ...visitors.Option) *visitors.Renderer {
	return visitors.NewSQLiteRenderer(opts...)
}

// --- Rewriting ---

// Rewrite runs d over root and returns the rewritten tree.
func Rewrite(root nodes.Node, d mutator.Decider, opts ...mutator.Option) (nodes.Node, error) {
	return mutator.New(d, opts...).Mutate(root)
}
