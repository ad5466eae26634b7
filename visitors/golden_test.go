package visitors

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/nodes"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGoldenPrettySelect(t *testing.T) {
	t.Parallel()
	u := testutil.Users().As("u")
	o := testutil.Orders().As("o")
	inner := nodes.NewSelect(nodes.NewDataSource(o).Where(nodes.Gt(o.Col("total"), nodes.Lit(100))), o.Col("user_id"))
	q := nodes.NewSelect(
		nodes.NewDataSource(u).Where(nodes.NewInQuery(u.Col("id"), inner)),
		u.Col("id"), u.Col("name"),
	).WithTraits(nodes.NewSort(nodes.NewAsc(u.Col("name"))))

	snap, err := NewRenderer(WithPretty()).ToSQL(q)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "pretty_select", []byte(snap.Text()))
}

func TestGoldenDotCluster(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	cond := nodes.Eq(users.Col("id"), nodes.Lit(1))
	q := nodes.NewSelect(nodes.NewDataSource(users).Where(cond), users.Col("name"))

	dv := NewDotVisitor()
	dv.AddCluster("softdelete", "#FF0000", cond)
	q.Accept(dv)
	newGoldie(t).Assert(t, "dot_cluster", []byte(dv.ToDot()))
}
