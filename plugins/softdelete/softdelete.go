// Package softdelete provides a rewrite that injects "column IS NULL" filters
// into every data source, hiding soft-deleted rows.
//
// By default it filters on "deleted_at" for every table referenced in FROM
// and JOIN position, including inside subqueries and CTEs. Both the column
// name and the set of tables can be customised via options.
//
// # Basic usage
//
//	sd := softdelete.New()
//	query := managers.NewSelectManager(table)
//	query.Use(sd.Transformer())
//	// SELECT * FROM "users" WHERE "users"."deleted_at" IS NULL
//
// # Custom column
//
//	sd := softdelete.New(softdelete.WithColumn("removed_at"))
//	// ... WHERE "users"."removed_at" IS NULL
//
// # Restrict to specific tables
//
//	sd := softdelete.New(softdelete.WithTables("users"))
//	// Only "users" gets the IS NULL condition; other joined tables are unchanged.
//
// # Per-table columns
//
//	sd := softdelete.New(
//	    softdelete.WithTableColumn("users", "deleted_at"),
//	    softdelete.WithTableColumn("posts", "removed_at"),
//	)
//	// users gets "deleted_at" IS NULL; posts gets "removed_at" IS NULL
//
// The rewrite is idempotent: a data source that already carries the filter
// for a table is left alone.
package softdelete

import (
	"time"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/mutator"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins"
)

// SoftDelete is a mutator.Decider that appends IS NULL filters for a
// soft-delete column on every referenced table (or a configured subset).
type SoftDelete struct {
	Column  string
	Columns map[string]string // per-table column overrides (table name → column name)
	tables  map[string]bool   // nil means apply to all tables
}

var _ mutator.Decider = (*SoftDelete)(nil)

// Option configures a SoftDelete.
type Option func(*SoftDelete)

// WithColumn sets the soft-delete column name. Default is "deleted_at".
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.Column = name }
}

// WithTables restricts the plugin to only the named tables.
// By default, the plugin applies to every table in the query.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		sd.tables = make(map[string]bool, len(names))
		for _, n := range names {
			sd.tables[n] = true
		}
	}
}

// WithTableColumn sets a per-table column override. The table is
// automatically added to the whitelist, restricting the plugin's scope.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.Columns == nil {
			sd.Columns = make(map[string]string)
		}
		sd.Columns[table] = column
		if sd.tables == nil {
			sd.tables = make(map[string]bool)
		}
		sd.tables[table] = true
	}
}

// New creates a SoftDelete with the given options.
func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{Column: "deleted_at"}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// Transformer returns sd as a statement transformer.
func (sd *SoftDelete) Transformer(opts ...mutator.Option) plugins.Transformer {
	return plugins.FromDecider(sd, opts...)
}

// Mutate replaces each data source missing a soft-delete filter with a copy
// carrying one. The copy is visited again, so sources nested in joined
// subqueries are rewritten too.
func (sd *SoftDelete) Mutate(n nodes.Node, _ *mutator.Ancestors) mutator.Outcome {
	ds, ok := n.(*nodes.DataSource)
	if !ok {
		return mutator.Unchanged()
	}
	var filters []nodes.Trait
	for _, ref := range plugins.SourceTables(ds) {
		if !sd.appliesTo(ref.Name) {
			continue
		}
		col := sd.columnFor(ref.Name)
		if hasFilter(ds, ref.Table.Ref(), col) {
			continue
		}
		filters = append(filters, nodes.NewFilter(nodes.NewIsNull(
			nodes.NewColumn(ref.Table.Ref(), col, exprtype.Of[time.Time](true)))))
	}
	if len(filters) == 0 {
		return mutator.Unchanged()
	}
	return mutator.Continue(ds.WithTraits(filters...))
}

// hasFilter reports whether ds already filters on qualifier.column IS NULL.
func hasFilter(ds *nodes.DataSource, qualifier, column string) bool {
	for _, t := range ds.Traits {
		f, ok := t.(*nodes.Filter)
		if !ok {
			continue
		}
		isNull, ok := f.Cond.(*nodes.IsNull)
		if !ok || isNull.Negated {
			continue
		}
		if c, ok := isNull.Expr.(*nodes.Column); ok && c.Qualifier == qualifier && c.Name == column {
			return true
		}
	}
	return false
}

func (sd *SoftDelete) appliesTo(tableName string) bool {
	if sd.tables == nil {
		return true
	}
	return sd.tables[tableName]
}

// columnFor returns the column name to use for the given table.
// It checks Columns for a per-table override, falling back to Column.
func (sd *SoftDelete) columnFor(tableName string) string {
	if sd.Columns != nil {
		if col, ok := sd.Columns[tableName]; ok {
			return col
		}
	}
	return sd.Column
}
