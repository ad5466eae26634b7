package sqltree_test

import (
	"fmt"

	"github.com/bawdo/sqltree"
	"github.com/bawdo/sqltree/managers"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/plugins/softdelete"
	"github.com/bawdo/sqltree/visitors"
)

// Using subpackages directly.
func Example_subpackages() {
	users := nodes.NewTable("users")

	sm := managers.NewSelectManager(users)
	sm.Select(users.Col("id"), users.Col("name"))
	sm.Where(nodes.Eq(users.Col("active"), nodes.Lit(true)))

	snap, err := sm.ToSQL(visitors.NewPostgresRenderer())
	if err != nil {
		panic(err)
	}
	fmt.Println(snap.Text())
	// Output: SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."active" = TRUE
}

// Using the convenience package.
func ExampleNewSelect() {
	users := sqltree.NewTable("users")

	sm := sqltree.NewSelect(users)
	sm.Select(users.Col("id"), users.Col("name"))
	sm.Where(nodes.Eq(users.Col("active"), sqltree.Param[bool]("active", false)))

	snap, err := sm.ToSQL(sqltree.NewPostgresRenderer())
	if err != nil {
		panic(err)
	}
	fmt.Println(snap.Text())
	fmt.Println(snap.Parameters())
	// Output:
	// SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."active" = $1
	// [active bool]
}

// Mixing the convenience package with plugins.
func Example_softDelete() {
	users := sqltree.NewTable("users")
	posts := sqltree.NewTable("posts")

	sm := sqltree.NewSelect(users).
		Join(posts).On(nodes.Eq(posts.Col("user_id"), users.Col("id"))).
		Select(users.Col("name"), posts.Col("title")).
		Use(softdelete.New(softdelete.WithTableColumn("posts", "removed_at")).Transformer())

	snap, err := sm.ToSQL(sqltree.NewRenderer())
	if err != nil {
		panic(err)
	}
	fmt.Println(snap.Text())
	// Output: SELECT "users"."name", "posts"."title" FROM "users" INNER JOIN "posts" ON "posts"."user_id" = "users"."id" WHERE "posts"."removed_at" IS NULL
}
