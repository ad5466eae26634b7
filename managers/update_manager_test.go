package managers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/visitors"
)

func TestUpdateSetAndWhere(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewUpdateManager(users).
		Set(users.Col("name"), "x").
		Set(users.Col("email"), nil).
		Where(nodes.Eq(users.Col("id"), nodes.Lit(1)))
	assert.Equal(t, `UPDATE "users" SET "name" = 'x', "email" = NULL WHERE "users"."id" = 1`, sqlOf(t, m))
}

func TestUpdateSetExpression(t *testing.T) {
	t.Parallel()
	orders := testutil.Orders()
	m := NewUpdateManager(orders).Set(orders.Col("total"), nodes.Multiply(orders.Col("total"), nodes.Lit(2)))
	assert.Equal(t, `UPDATE "orders" SET "total" = "orders"."total" * 2`, sqlOf(t, m))
}

func TestUpdateParameters(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewUpdateManager(users).
		Set(users.Col("name"), nodes.NewParameter("name", testutil.String)).
		Where(nodes.Eq(users.Col("id"), nodes.NewParameter("id", testutil.Int64)))
	snap, err := m.ToSQL(visitors.NewPostgresRenderer())
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "users"."id" = $2`, snap.Text())
	testutil.AssertParams(t, snap, "name", "id")
}

func TestUpdateFrom(t *testing.T) {
	t.Parallel()
	users, orders := testutil.Users(), testutil.Orders()
	m := NewUpdateManager(users).Set(users.Col("name"), "big spender")
	m.From(orders).Where(nodes.Eq(orders.Col("user_id"), users.Col("id")))
	m.Where(nodes.Gt(orders.Col("total"), nodes.Lit(200)))
	assert.Equal(t,
		`UPDATE "users" SET "name" = 'big spender' FROM "orders"`+
			` WHERE "orders"."user_id" = "users"."id" AND "orders"."total" > 200`,
		sqlOf(t, m))
}

func TestUpdateReturning(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewUpdateManager(users).Set(users.Col("name"), "x").Returning(users.Col("id")).Comment("rename")
	assert.Equal(t, `/* rename */ UPDATE "users" SET "name" = 'x' RETURNING "users"."id"`, sqlOf(t, m))
}
