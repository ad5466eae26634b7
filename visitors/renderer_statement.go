package visitors

import (
	"fmt"

	"github.com/bawdo/sqltree/nodes"
)

var (
	insertTraits    = []nodes.Kind{nodes.KindWith, nodes.KindReturning, nodes.KindComment, nodes.KindHint}
	modifyingTraits = []nodes.Kind{nodes.KindWith, nodes.KindFilter, nodes.KindReturning, nodes.KindComment, nodes.KindHint}
)

// tableName writes a table reference without its alias.
func (r *Renderer) tableName(t *nodes.Table) { r.write(r.qualified(t.Schema, t.Name)) }

func (r *Renderer) columnNames(cols []*nodes.Column) {
	for i, c := range cols {
		if i > 0 {
			r.write(", ")
		}
		r.write(r.quote(c.Name))
	}
}

func (r *Renderer) returning(ts *traitSet) {
	if len(ts.returning) > 0 {
		r.clause("RETURNING ")
		renderList(r, ts.returning)
	}
}

// --- DML ---

func (r *Renderer) VisitInsert(n *nodes.Insert) {
	ts := r.collect(n.Traits, insertTraits...)
	r.lead(ts, "INSERT")
	r.write(" INTO ")
	r.node(n.Into)
	if len(n.Columns) > 0 {
		r.write(" (")
		r.columnNames(n.Columns)
		r.write(")")
	}
	switch {
	case n.Query != nil:
		r.clause("")
		r.node(n.Query)
	case len(n.Rows) > 0:
		r.clause("VALUES ")
		renderList(r, n.Rows)
	default:
		r.clause("DEFAULT VALUES")
	}
	if n.OnConflict != nil {
		r.clause("")
		r.node(n.OnConflict)
	}
	r.returning(ts)
}

func (r *Renderer) VisitUpdate(n *nodes.Update) {
	ts := r.collect(n.Traits, modifyingTraits...)
	r.lead(ts, "UPDATE")
	r.write(" ")
	r.node(n.Table)
	r.clause("SET ")
	renderList(r, n.Set)
	var filters []nodes.Condition
	if n.From != nil {
		filters = r.source(n.From, "FROM")
	}
	r.where(append(filters, ts.filters...))
	r.returning(ts)
}

func (r *Renderer) VisitDelete(n *nodes.Delete) {
	ts := r.collect(n.Traits, modifyingTraits...)
	r.lead(ts, "DELETE")
	r.write(" FROM ")
	r.node(n.From)
	var filters []nodes.Condition
	if n.Using != nil {
		filters = r.source(n.Using, "USING")
	}
	r.where(append(filters, ts.filters...))
	r.returning(ts)
}

func (r *Renderer) VisitAssignment(n *nodes.Assignment) {
	r.write(r.quote(n.Column.Name), " = ")
	r.node(n.Value)
}

func (r *Renderer) VisitOnConflict(n *nodes.OnConflict) {
	r.write("ON CONFLICT")
	if len(n.Columns) > 0 {
		r.write(" (")
		r.columnNames(n.Columns)
		r.write(")")
	}
	if n.DoNothing || len(n.Set) == 0 {
		r.write(" DO NOTHING")
		return
	}
	r.write(" DO UPDATE SET ")
	renderList(r, n.Set)
	if n.Where != nil {
		r.write(" WHERE ")
		r.node(n.Where)
	}
}

// --- DDL ---

func (r *Renderer) VisitCreateTable(n *nodes.CreateTable) {
	r.write("CREATE ")
	if n.Temporary {
		r.write("TEMPORARY ")
	}
	r.write("TABLE ")
	if n.IfNotExists {
		r.write("IF NOT EXISTS ")
	}
	r.tableName(n.Table)
	if n.AsQuery != nil {
		r.write(" AS")
		r.clause("")
		r.node(n.AsQuery)
		return
	}

	items := make([]nodes.Node, 0, len(n.Columns)+len(n.Constraints))
	for _, c := range n.Columns {
		items = append(items, c)
	}
	for _, c := range n.Constraints {
		items = append(items, c)
	}
	r.write(" (")
	release := r.ctx.Indented()
	for i, it := range items {
		if i > 0 {
			r.write(",")
		}
		if r.pretty {
			r.ctx.AppendIndent()
		} else if i > 0 {
			r.write(" ")
		}
		r.node(it)
	}
	release()
	if r.pretty {
		r.ctx.AppendIndent()
	}
	r.write(")")
}

func (r *Renderer) VisitColumnDefinition(n *nodes.ColumnDefinition) {
	name := n.TypeName
	if name == "" {
		var ok bool
		if name, ok = SQLTypeName(n.Type, r.dialect); !ok {
			r.fail(fmt.Errorf("%w: %s", ErrUnknownColumnType, n.Name))
		}
	}
	validateSQLTypeName(name)
	r.write(r.quote(n.Name))
	if name != "" {
		r.write(" ", name)
	}
	if n.Type.IsKnown() && !n.Type.IsNullable() {
		r.write(" NOT NULL")
	}
	if n.Default != nil {
		r.write(" DEFAULT ")
		r.node(n.Default)
	}
	if n.PrimaryKey {
		r.write(" PRIMARY KEY")
	}
	if n.Unique {
		r.write(" UNIQUE")
	}
}

func (r *Renderer) constraintName(name string) {
	if name != "" {
		r.write("CONSTRAINT ", r.quote(name), " ")
	}
}

func (r *Renderer) VisitPrimaryKey(n *nodes.PrimaryKey) {
	r.constraintName(n.Name)
	r.write("PRIMARY KEY (")
	r.identList(n.Columns)
	r.write(")")
}

func (r *Renderer) VisitUniqueConstraint(n *nodes.UniqueConstraint) {
	r.constraintName(n.Name)
	r.write("UNIQUE (")
	r.identList(n.Columns)
	r.write(")")
}

func (r *Renderer) VisitForeignKey(n *nodes.ForeignKey) {
	r.constraintName(n.Name)
	r.write("FOREIGN KEY (")
	r.identList(n.Columns)
	r.write(") REFERENCES ")
	r.tableName(n.RefTable)
	if len(n.RefColumns) > 0 {
		r.write(" (")
		r.identList(n.RefColumns)
		r.write(")")
	}
	if n.OnDelete != nodes.NoAction {
		r.write(" ON DELETE ", n.OnDelete.String())
	}
}

func (r *Renderer) VisitCheckConstraint(n *nodes.CheckConstraint) {
	r.constraintName(n.Name)
	r.write("CHECK (")
	r.node(n.Cond)
	r.write(")")
}

func (r *Renderer) VisitDropTable(n *nodes.DropTable) {
	r.write("DROP TABLE ")
	if n.IfExists {
		r.write("IF EXISTS ")
	}
	r.tableName(n.Table)
}

func (r *Renderer) VisitTruncateTable(n *nodes.TruncateTable) {
	r.write("TRUNCATE TABLE ")
	r.tableName(n.Table)
}

func (r *Renderer) VisitCreateIndex(n *nodes.CreateIndex) {
	r.write("CREATE ")
	if n.Unique {
		r.write("UNIQUE ")
	}
	r.write("INDEX ")
	if n.IfNotExists {
		r.write("IF NOT EXISTS ")
	}
	r.write(r.quote(n.Name), " ON ")
	r.tableName(n.Table)
	r.write(" (")
	renderList(r, n.Columns)
	r.write(")")
	if n.Where != nil {
		r.write(" WHERE ")
		r.node(n.Where)
	}
}

func (r *Renderer) VisitDropIndex(n *nodes.DropIndex) {
	r.write("DROP INDEX ")
	if n.IfExists {
		r.write("IF EXISTS ")
	}
	r.write(r.quote(n.Name))
}

func (r *Renderer) VisitCreateView(n *nodes.CreateView) {
	r.write("CREATE ")
	if n.OrReplace {
		r.write("OR REPLACE ")
	}
	r.write("VIEW ")
	r.tableName(n.View)
	if len(n.Columns) > 0 {
		r.write(" (")
		r.identList(n.Columns)
		r.write(")")
	}
	r.write(" AS")
	r.clause("")
	r.node(n.Query)
}

func (r *Renderer) VisitDropView(n *nodes.DropView) {
	r.write("DROP VIEW ")
	if n.IfExists {
		r.write("IF EXISTS ")
	}
	r.tableName(n.View)
}

func (r *Renderer) VisitAlterTableAddColumn(n *nodes.AlterTableAddColumn) {
	r.write("ALTER TABLE ")
	r.tableName(n.Table)
	r.write(" ADD COLUMN ")
	r.node(n.Column)
}

func (r *Renderer) VisitAlterTableDropColumn(n *nodes.AlterTableDropColumn) {
	r.write("ALTER TABLE ")
	r.tableName(n.Table)
	r.write(" DROP COLUMN ")
	if n.IfExists {
		r.write("IF EXISTS ")
	}
	r.write(r.quote(n.Column))
}

// --- Transactions ---

func (r *Renderer) VisitBegin(n *nodes.Begin) {
	r.write("BEGIN")
	if n.Isolation != nodes.IsolationDefault {
		r.write(" ISOLATION LEVEL ", n.Isolation.String())
	}
	if n.ReadOnly {
		r.write(" READ ONLY")
	}
}

func (r *Renderer) VisitCommit(*nodes.Commit) { r.write("COMMIT") }

func (r *Renderer) VisitRollback(n *nodes.Rollback) {
	r.write("ROLLBACK")
	if n.Savepoint != "" {
		r.write(" TO SAVEPOINT ", r.quote(n.Savepoint))
	}
}

func (r *Renderer) VisitSavepoint(n *nodes.Savepoint) {
	r.write("SAVEPOINT ", r.quote(n.Name))
}

func (r *Renderer) VisitReleaseSavepoint(n *nodes.ReleaseSavepoint) {
	r.write("RELEASE SAVEPOINT ", r.quote(n.Name))
}

// --- Misc ---

// VisitBatch writes the statements separated by ";" and a line break.
func (r *Renderer) VisitBatch(n *nodes.Batch) {
	for i, s := range n.Statements {
		if i > 0 {
			r.write(";\n")
		}
		r.node(s)
	}
}

func (r *Renderer) VisitRawStatement(n *nodes.RawStatement) {
	r.raw(n.SQL, n.Params)
}
