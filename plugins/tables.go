package plugins

import (
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/visitors"
)

// TableRef holds a table reference and its underlying name.
// Table is the node used to create column references (preserving aliases),
// and Name is the underlying table name (for matching/filtering).
type TableRef struct {
	Table *nodes.Table
	Name  string
}

// SourceTables returns the tables read by one data source: the FROM table
// and every JOIN target. Derived tables, table functions and raw sources
// are skipped.
func SourceTables(ds *nodes.DataSource) []TableRef {
	var refs []TableRef
	if t, ok := ds.From.(*nodes.Table); ok {
		refs = append(refs, TableRef{Table: t, Name: t.Name})
	}
	for _, j := range ds.Joins {
		if t, ok := j.Source.(*nodes.Table); ok {
			refs = append(refs, TableRef{Table: t, Name: t.Name})
		}
	}
	return refs
}

// CollectTables returns every table referenced by root in FROM, JOIN, USING
// or DML target position, in traversal order. Subqueries are included.
func CollectTables(root nodes.Node) []TableRef {
	var refs []TableRef
	add := func(t *nodes.Table) { refs = append(refs, TableRef{Table: t, Name: t.Name}) }
	visitors.Inspect(root, func(n nodes.Node) bool {
		switch n := n.(type) {
		case *nodes.DataSource:
			refs = append(refs, SourceTables(n)...)
		case *nodes.Insert:
			add(n.Into)
		case *nodes.Update:
			add(n.Table)
		case *nodes.Delete:
			add(n.From)
		}
		return true
	})
	return refs
}
