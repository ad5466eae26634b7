package managers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/visitors"
)

// --- Values ---

func TestInsertValues(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users).
		Columns(users.Col("name"), users.Col("email")).
		Values("a", "a@example.com").
		Values("b", nil)
	assert.Equal(t,
		`INSERT INTO "users" ("name", "email") VALUES ('a', 'a@example.com'), ('b', NULL)`,
		sqlOf(t, m))
}

func TestInsertValuesAcceptExpressions(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users).
		Columns(users.Col("id"), users.Col("name")).
		Values(nodes.NewParameter("id", testutil.Int64), nodes.NewDefault())
	snap, err := m.ToSQL(visitors.NewPostgresRenderer())
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES ($1, DEFAULT)`, snap.Text())
	testutil.AssertParams(t, snap, "id")
}

func TestInsertDefaultValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `INSERT INTO "users" DEFAULT VALUES`, sqlOf(t, NewInsertManager(testutil.Users())))
}

// --- FromSelect ---

func TestInsertFromSelect(t *testing.T) {
	t.Parallel()
	users, orders := testutil.Users(), testutil.Orders()
	src := NewSelectManager(orders).Select(orders.Col("user_id"))
	m := NewInsertManager(users).Columns(users.Col("id")).Values(1).FromSelect(src)
	src.Where(nodes.Gt(orders.Col("total"), nodes.Lit(100)))
	assert.Equal(t,
		`INSERT INTO "users" ("id") SELECT "orders"."user_id" FROM "orders" WHERE "orders"."total" > 100`,
		sqlOf(t, m))
}

// --- Returning ---

func TestInsertReturning(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users).Columns(users.Col("name")).Values("a").
		Returning(users.Col("name")).
		Returning(users.Col("id"))
	assert.Equal(t, `INSERT INTO "users" ("name") VALUES ('a') RETURNING "users"."id"`, sqlOf(t, m))
}

// --- OnConflict ---

func TestInsertOnConflictDoNothing(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users).Columns(users.Col("id")).Values(1).
		OnConflict(users.Col("id")).DoNothing()
	assert.Equal(t, `INSERT INTO "users" ("id") VALUES (1) ON CONFLICT ("id") DO NOTHING`, sqlOf(t, m))
}

func TestInsertOnConflictDoUpdate(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	excluded := nodes.NewTable("excluded")
	m := NewInsertManager(users).Columns(users.Col("id"), users.Col("name")).Values(1, "a").
		OnConflict(users.Col("id")).
		DoUpdate(nodes.NewAssignment(users.Col("name"), excluded.Col("name"))).
		Where(nodes.NewIsNull(users.Col("deleted_at")))
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name") VALUES (1, 'a')`+
			` ON CONFLICT ("id") DO UPDATE SET "name" = "excluded"."name" WHERE "users"."deleted_at" IS NULL`,
		sqlOf(t, m))
}

func TestInsertOnConflictDoUpdateWithoutWhere(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users).Columns(users.Col("id"), users.Col("name")).Values(1, "a").
		OnConflict(users.Col("id")).
		DoUpdate(nodes.NewAssignment(users.Col("name"), nodes.Lit("b"))).
		Done()
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name") VALUES (1, 'a') ON CONFLICT ("id") DO UPDATE SET "name" = 'b'`,
		sqlOf(t, m))
}

func TestInsertBuildCopiesOnConflict(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	m := NewInsertManager(users)
	ctx := m.OnConflict(users.Col("id"))
	first := m.Build()
	ctx.DoNothing()
	assert.False(t, first.OnConflict.DoNothing)
	assert.True(t, m.Build().OnConflict.DoNothing)
}

// --- Comment ---

func TestInsertComment(t *testing.T) {
	t.Parallel()
	m := NewInsertManager(testutil.Users()).Comment("seed")
	assert.Equal(t, `/* seed */ INSERT INTO "users" DEFAULT VALUES`, sqlOf(t, m))
}
