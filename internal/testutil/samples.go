package testutil

import (
	"github.com/google/uuid"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/nodes"
)

var (
	Int64    = exprtype.Of[int64](false)
	Float64  = exprtype.Of[float64](false)
	String   = exprtype.Of[string](false)
	NullText = exprtype.Of[string](true)
)

// Users and Orders are the tables used throughout the tests. The SQLite
// schema in SQLiteSchema matches them.
func Users() *nodes.Table  { return nodes.NewTable("users") }
func Orders() *nodes.Table { return nodes.NewTable("orders") }

// SampleUUID is a fixed UUID literal value.
var SampleUUID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Everything returns a batch whose statements contain at least one node of
// every kind.
func Everything() *nodes.Batch {
	u := Users().As("u")
	o := Orders().As("o")
	id := u.TypedCol("id", Int64)
	name := u.TypedCol("name", NullText)
	total := o.TypedCol("total", Float64)
	userID := o.TypedCol("user_id", Int64)
	minTotal := nodes.NewParameter("min_total", Float64)

	big := nodes.NewSelect(nodes.NewDataSource(o).Where(nodes.Gt(total, minTotal)), userID)
	cte := nodes.NewCommonTableExpr("big", big, "user_id")

	window := nodes.NewWindow("w",
		nodes.NewPartitionBy(name),
		nodes.NewSort(nodes.NewAsc(id)),
		nodes.NewFrame(nodes.FrameRows,
			nodes.FrameBound{Type: nodes.Preceding, Offset: nodes.NewLiteral(1)},
			nodes.FrameBound{Type: nodes.CurrentRow}),
	)

	source := nodes.NewDataSource(u).
		WithJoin(nodes.NewJoin(nodes.LeftJoin, o, nodes.Eq(userID, id))).
		WithJoin(nodes.NewJoin(nodes.CrossJoin, nodes.NewTableFunction("generate_series", "g", nodes.NewLiteral(1), nodes.NewLiteral(3)), nil)).
		WithJoin(nodes.NewJoin(nodes.InnerJoin, nodes.NewDerivedTable(nodes.NewRawQuery("SELECT 1 AS one"), "d"), nodes.NewTrue())).
		WithJoin(nodes.NewJoin(nodes.InnerJoin, nodes.NewValuesTable("v", []string{"k"}, nodes.NewTuple(nodes.NewLiteral(1))), nodes.NewNot(nodes.NewFalse()))).
		WithJoin(nodes.NewJoin(nodes.InnerJoin, nodes.NewRawRecordSet("(SELECT 2 AS two)", "r"), nodes.NewRawCondition("1 = 1"))).
		Where(nodes.AllOf(
			nodes.NewIsNotNull(name),
			nodes.NewOr(nodes.NewIn(id, nodes.NewLiteral(1), nodes.NewLiteral(2)), nodes.NewNotIn(id)),
			nodes.NewInQuery(id, nodes.NewSelect(nodes.NewDataSource(cte.Table()), nodes.NewColumn("big", "user_id", Int64))),
			nodes.NewBetween(total, nodes.NewLiteral(10.0), nodes.NewLiteral(99.5)),
			&nodes.Like{Expr: name, Pattern: nodes.NewLiteral(`a\_%`), Escape: nodes.NewLiteral(`\`)},
			nodes.NewExists(nodes.NewSelect(nil, nodes.NewLiteral(1))),
			nodes.NewExprCondition(nodes.NewRawExpr("TRUE", exprtype.Of[bool](false))),
			nodes.NewComparison(nodes.OpNotDistinctFrom, name, nodes.NewNull()),
		))

	projection := []nodes.Expr{
		id,
		nodes.NewStar("u"),
		nodes.NewUnary(nodes.OpNegate, id),
		nodes.NewAlias(nodes.Add(id, nodes.NewLiteral(int64(1))), "next_id"),
		nodes.Lower(name),
		nodes.Coalesce(name, nodes.NewLiteral("anon")),
		nodes.Count().FilterWhere(nodes.Gt(total, nodes.NewLiteral(0.0))),
		nodes.Sum(total).WithDistinct(),
		nodes.RowNumber().OverWindow("w"),
		nodes.Rank().Over(nodes.NewPartitionBy(userID), nodes.NewSort(nodes.NewDesc(total))),
		nodes.NewCast(total, exprtype.Of[int64](false), "BIGINT"),
		nodes.NewCase(nil, []*nodes.CaseWhen{nodes.NewCaseWhen(nodes.NewIsNull(name), nodes.NewLiteral("anon"))}, name),
		nodes.NewScalarSubquery(nodes.NewSelect(nil, nodes.NewLiteral(SampleUUID)), exprtype.Of[uuid.UUID](true)),
		nodes.NewConditionExpr(nodes.Gt(total, nodes.NewLiteral(100))),
	}

	sel := nodes.NewSelect(source, projection...).WithTraits(
		nodes.NewWith(cte),
		nodes.NewDistinct(),
		nodes.NewGroupBy(id, name),
		nodes.NewHaving(nodes.Gt(nodes.Count(), nodes.NewLiteral(1))),
		window,
		nodes.NewSort(nodes.NewDesc(id)),
		nodes.NewLimit(nodes.NewLiteral(10)),
		nodes.NewOffset(nodes.NewParameter("offset", Int64)),
		nodes.NewLock(nodes.ForUpdate),
		nodes.NewComment("everything"),
		nodes.NewHint("SeqScan(u)"),
	)

	union := nodes.NewSetOperation(nodes.UnionAll, sel, nodes.NewRawQuery("SELECT 2")).
		WithTraits(nodes.NewLimit(nodes.NewLiteral(5)))

	users := Users()
	insert := &nodes.Insert{
		Into:    users,
		Columns: []*nodes.Column{users.Col("id"), users.Col("name")},
		Rows:    []*nodes.Tuple{nodes.NewTuple(nodes.NewLiteral(1), nodes.NewDefault())},
		OnConflict: &nodes.OnConflict{
			Columns: []*nodes.Column{users.Col("id")},
			Set:     []*nodes.Assignment{nodes.NewAssignment(users.Col("name"), nodes.NewLiteral("x"))},
			Where:   nodes.NewIsNull(users.Col("deleted_at")),
		},
		Traits: []nodes.Trait{nodes.NewReturning(users.Col("id"))},
	}

	update := nodes.NewUpdate(users, nodes.NewAssignment(users.Col("name"), nodes.NewParameter("name", String))).
		WithTraits(nodes.NewFilter(nodes.Eq(users.Col("id"), nodes.NewParameter("id", Int64))))
	update.From = nodes.NewDataSource(Orders())

	del := nodes.NewDelete(users).WithTraits(
		nodes.NewFilter(nodes.Lt(users.Col("id"), nodes.NewLiteral(0))),
		nodes.NewReturning(nodes.NewStar("")),
	)
	del.Using = nodes.NewDataSource(Orders())

	create := &nodes.CreateTable{
		Table: nodes.NewTable("accounts"),
		Columns: []*nodes.ColumnDefinition{
			{Name: "id", Type: Int64, PrimaryKey: true},
			{Name: "owner_id", Type: Int64},
			{Name: "label", Type: NullText, Default: nodes.NewLiteral("none")},
		},
		Constraints: []nodes.Constraint{
			nodes.NewUniqueConstraint("label"),
			nodes.NewForeignKey([]string{"owner_id"}, Users(), "id"),
			nodes.NewCheckConstraint("positive_id", nodes.Gt(nodes.NewColumn("", "id", Int64), nodes.NewLiteral(0))),
		},
		IfNotExists: true,
	}
	createKeyed := nodes.NewCreateTable(nodes.NewTable("tags"), nodes.NewColumnDefinition("name", String))
	createKeyed.Constraints = []nodes.Constraint{nodes.NewPrimaryKey("name")}

	index := nodes.NewCreateIndex("accounts_label", nodes.NewTable("accounts"), nodes.NewColumn("", "label", NullText))
	index.Where = nodes.NewIsNotNull(nodes.NewColumn("", "label", NullText))

	return nodes.NewBatch(
		nodes.NewBegin(),
		nodes.NewSavepoint("sp"),
		union,
		insert,
		update,
		del,
		create,
		createKeyed,
		index,
		nodes.NewCreateView(nodes.NewTable("rich"), big),
		nodes.NewAlterTableAddColumn(nodes.NewTable("accounts"), nodes.NewColumnDefinition("note", NullText)),
		nodes.NewAlterTableDropColumn(nodes.NewTable("accounts"), "note"),
		nodes.NewDropView(nodes.NewTable("rich")),
		nodes.NewDropIndex("accounts_label"),
		nodes.NewTruncateTable(nodes.NewTable("tags")),
		nodes.NewDropTable(nodes.NewTable("tags")),
		nodes.NewReleaseSavepoint("sp"),
		nodes.NewRollbackTo("sp"),
		nodes.NewRawStatement("VACUUM"),
		nodes.NewCommit(),
	)
}
