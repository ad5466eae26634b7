package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/visitors"
)

// --- Kinds and categories ---

func TestAllKindsNamed(t *testing.T) {
	t.Parallel()
	kinds := nodes.AllKinds()
	assert.Len(t, kinds, 86)

	names := map[string]bool{}
	for i, k := range kinds {
		assert.Equal(t, nodes.Kind(i), k)
		name := k.String()
		assert.NotEmpty(t, name)
		assert.NotEqual(t, "Kind(?)", name)
		assert.False(t, names[name], "duplicate kind name %s", name)
		names[name] = true
		assert.NotZero(t, k.Category(), "kind %s has no category", name)
	}
	assert.Equal(t, "Kind(?)", nodes.Kind(-1).String())
	assert.Equal(t, "Kind(?)", nodes.Kind(len(kinds)).String())
	assert.Zero(t, nodes.Kind(len(kinds)).Category())
}

func TestCategories(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	cases := []struct {
		node nodes.Node
		want nodes.Category
	}{
		{users.Col("id"), nodes.CategoryExpression | nodes.CategoryColumn},
		{nodes.NewParameter("p", testutil.Int64), nodes.CategoryExpression | nodes.CategoryParameter},
		{nodes.NewTrue(), nodes.CategoryCondition},
		{users, nodes.CategoryRecordSet | nodes.CategoryTable},
		{nodes.NewSelect(nil), nodes.CategoryQuery | nodes.CategoryStatement},
		{nodes.NewLimit(nodes.Lit(1)), nodes.CategoryTrait},
		{nodes.NewDelete(users), nodes.CategoryStatement},
		{nodes.NewPrimaryKey("id"), nodes.CategoryConstraint},
		{nodes.NewCaseWhen(nodes.NewTrue(), nodes.Lit(1)), nodes.CategoryCaseWhen},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nodes.CategoryOf(tc.node), tc.node.Kind().String())
	}
	assert.Zero(t, nodes.CategoryOf(nil))
}

func TestCategoryHasAndString(t *testing.T) {
	t.Parallel()
	c := nodes.CategoryQuery | nodes.CategoryStatement
	assert.True(t, c.Has(nodes.CategoryStatement))
	assert.True(t, c.Has(nodes.CategoryExpression|nodes.CategoryQuery))
	assert.False(t, c.Has(nodes.CategoryTrait))
	assert.Equal(t, "query|statement", c.String())
	assert.Equal(t, "none", nodes.Category(0).String())
}

func TestEveryKindImplementsItsInterfaces(t *testing.T) {
	t.Parallel()
	var all []nodes.Node
	visitors.Inspect(testutil.Everything(), func(n nodes.Node) bool {
		all = append(all, n)
		return true
	})

	for _, n := range all {
		c := nodes.CategoryOf(n)
		if c.Has(nodes.CategoryExpression) {
			assert.Implements(t, (*nodes.Expr)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryCondition) {
			assert.Implements(t, (*nodes.Condition)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryRecordSet) {
			assert.Implements(t, (*nodes.RecordSet)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryQuery) {
			assert.Implements(t, (*nodes.Query)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryTrait) {
			assert.Implements(t, (*nodes.Trait)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryStatement) {
			assert.Implements(t, (*nodes.Statement)(nil), n, n.Kind().String())
		}
		if c.Has(nodes.CategoryConstraint) {
			assert.Implements(t, (*nodes.Constraint)(nil), n, n.Kind().String())
		}
	}
}

// --- Literals ---

func TestLit(t *testing.T) {
	t.Parallel()
	assert.Equal(t, nodes.KindNull, nodes.Lit(nil).Kind())
	col := testutil.Users().Col("id")
	assert.Same(t, col, nodes.Lit(col))

	l, ok := nodes.Lit("x").(*nodes.Literal)
	assert.True(t, ok)
	assert.Equal(t, exprtype.Of[string](false), l.Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.NewLiteral(&[]int64{1}[0]).Type())
	assert.Equal(t, testutil.NullText, nodes.TypedLiteral("x", testutil.NullText).Type())
	assert.True(t, nodes.NewNull().Type().IsNull())
}

// --- Type derivation ---

func TestBinaryType(t *testing.T) {
	t.Parallel()
	a := nodes.NewColumn("t", "a", testutil.Int64)
	b := nodes.NewColumn("t", "b", exprtype.Of[int64](true))
	s := nodes.NewColumn("t", "s", testutil.String)

	assert.Equal(t, testutil.Int64, nodes.Add(a, a).Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.Add(a, b).Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.Multiply(a, nodes.NewNull()).Type())
	assert.False(t, nodes.Add(a, s).Type().IsKnown(), "incompatible operands leave the type unknown")
	assert.Equal(t, testutil.Int64, nodes.NewUnary(nodes.OpNegate, a).Type())
}

func TestCoalesceType(t *testing.T) {
	t.Parallel()
	name := nodes.NewColumn("u", "name", testutil.NullText)
	assert.Equal(t, testutil.String, nodes.Coalesce(name, nodes.Lit("anon")).Type())
	assert.Equal(t, testutil.NullText, nodes.Coalesce(name, nodes.NewNull()).Type())
}

func TestCaseType(t *testing.T) {
	t.Parallel()
	when := []*nodes.CaseWhen{nodes.NewCaseWhen(nodes.NewTrue(), nodes.TypedLiteral(int64(1), testutil.Int64))}
	assert.Equal(t, testutil.Int64, nodes.NewCase(nil, when, nodes.TypedLiteral(int64(0), testutil.Int64)).Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.NewCase(nil, when, nil).Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.NewCase(nil, when, nodes.NewNull()).Type())
}

func TestCaseWhenRejectsOtherNodes(t *testing.T) {
	t.Parallel()
	testutil.AssertPanics(t, "CASE WHEN operand", func() {
		nodes.NewCaseWhen(testutil.Users(), nodes.Lit(1))
	})
}

func TestCastType(t *testing.T) {
	t.Parallel()
	required := nodes.NewColumn("t", "a", testutil.String)
	optional := nodes.NewColumn("t", "b", testutil.NullText)
	assert.Equal(t, testutil.Int64, nodes.NewCast(required, testutil.Int64, "").Type())
	assert.Equal(t, exprtype.Of[int64](true), nodes.NewCast(optional, testutil.Int64, "").Type())
}

func TestAggregateTypes(t *testing.T) {
	t.Parallel()
	total := nodes.NewColumn("o", "total", testutil.Float64)
	assert.Equal(t, testutil.Int64, nodes.Count().Type())
	assert.Equal(t, exprtype.Of[float64](true), nodes.Sum(total).Type())
	assert.Equal(t, exprtype.Of[float64](true), nodes.Avg(total).Type())
	assert.Equal(t, exprtype.Of[float64](true), nodes.Max(total).Type())
	assert.Equal(t, exprtype.Of[float64](true), nodes.Lag(total).Type())
	assert.Equal(t, testutil.Int64, nodes.RowNumber().Type())
}

// --- Copy on write ---

func TestWithTraitsDoesNotAlias(t *testing.T) {
	t.Parallel()
	base := nodes.NewSelect(nil, nodes.Lit(1)).WithTraits(nodes.NewLimit(nodes.Lit(1)))
	a := base.WithTraits(nodes.NewOffset(nodes.Lit(1)))
	b := base.WithTraits(nodes.NewComment("b"))

	assert.Len(t, base.Traits, 1)
	assert.Equal(t, nodes.KindOffset, a.Traits[1].Kind())
	assert.Equal(t, nodes.KindComment, b.Traits[1].Kind())
}

func TestDataSourceBuildersCopy(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	ds := nodes.NewDataSource(users)
	joined := ds.WithJoin(nodes.NewJoin(nodes.CrossJoin, testutil.Orders(), nil))
	filtered := joined.Where(nodes.NewTrue())

	assert.Empty(t, ds.Joins)
	assert.Len(t, joined.Joins, 1)
	assert.Empty(t, joined.Traits)
	assert.Len(t, filtered.Traits, 1)
}

func TestTableAlias(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	u := users.As("u")
	assert.Empty(t, users.Alias)
	assert.Equal(t, "users", users.Ref())
	assert.Equal(t, "u", u.Ref())
	assert.Equal(t, "u", u.Col("id").Qualifier)
	assert.Equal(t, "u", u.Star().Qualifier)
	assert.Equal(t, testutil.Int64, u.TypedCol("id", testutil.Int64).Type())
}

func TestWindowFunctionOver(t *testing.T) {
	t.Parallel()
	named := nodes.RowNumber().OverWindow("w")
	inline := named.Over(nodes.NewPartitionBy(nodes.Lit(1)))

	assert.Equal(t, "w", named.WindowName)
	assert.Empty(t, named.Traits)
	assert.Empty(t, inline.WindowName)
	assert.Len(t, inline.Traits, 1)
	assert.Empty(t, nodes.RowNumber().OverWindow("w").Over().Traits)
	assert.Empty(t, inline.OverWindow("x").Traits)
}

func TestAllOfAnyOf(t *testing.T) {
	t.Parallel()
	a, b, c := nodes.NewTrue(), nodes.NewFalse(), nodes.NewTrue()

	assert.Equal(t, nodes.KindTrue, nodes.AllOf().Kind())
	assert.Equal(t, nodes.KindFalse, nodes.AnyOf().Kind())
	assert.Same(t, a, nodes.AllOf(a))

	and, ok := nodes.AllOf(a, b, c).(*nodes.And)
	assert.True(t, ok)
	assert.Same(t, c, and.Right)
	inner, ok := and.Left.(*nodes.And)
	assert.True(t, ok)
	assert.Same(t, a, inner.Left)
	assert.Same(t, b, inner.Right)

	or, ok := nodes.AnyOf(a, b).(*nodes.Or)
	assert.True(t, ok)
	assert.Same(t, b, or.Right)
}

func TestOperatorSymbols(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "=", nodes.OpEq.String())
	assert.Equal(t, "IS NOT DISTINCT FROM", nodes.OpNotDistinctFrom.String())
	assert.Equal(t, "||", nodes.OpConcat.String())
	assert.Equal(t, "UNION ALL", nodes.UnionAll.String())
	assert.Equal(t, "LEFT JOIN", nodes.LeftJoin.String())
	assert.Equal(t, "CASCADE", nodes.Cascade.String())
}
