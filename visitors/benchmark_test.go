package visitors

import (
	"testing"

	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/render"
)

// BenchmarkSimpleSelect benchmarks a basic single-table SELECT query.
func BenchmarkSimpleSelect(b *testing.B) {
	users := testutil.Users()
	q := nodes.NewSelect(
		nodes.NewDataSource(users).Where(nodes.Eq(users.Col("active"), nodes.Lit(true))),
		users.Col("id"), users.Col("name"), users.Col("email"),
	).WithTraits(nodes.NewSort(nodes.NewAsc(users.Col("name"))), nodes.NewLimit(nodes.Lit(10)))
	r := NewPostgresRenderer()

	b.ResetTimer()
	for b.Loop() {
		_, _ = r.ToSQL(q)
	}
}

// BenchmarkComplexJoinQuery benchmarks a multi-join query with grouping.
func BenchmarkComplexJoinQuery(b *testing.B) {
	users := nodes.NewTable("users")
	posts := nodes.NewTable("posts")
	comments := nodes.NewTable("comments")

	q := nodes.NewSelect(
		nodes.NewDataSource(users).
			WithJoin(nodes.NewJoin(nodes.InnerJoin, posts, nodes.Eq(users.Col("id"), posts.Col("user_id")))).
			WithJoin(nodes.NewJoin(nodes.LeftJoin, comments, nodes.Eq(posts.Col("id"), comments.Col("post_id")))).
			Where(nodes.Eq(users.Col("active"), nodes.Lit(true))).
			Where(nodes.Eq(posts.Col("published"), nodes.Lit(true))),
		users.Col("name"),
		nodes.NewAlias(nodes.Count(posts.Col("id")), "post_count"),
		nodes.NewAlias(nodes.Count(comments.Col("id")), "comment_count"),
	).WithTraits(
		nodes.NewGroupBy(users.Col("name")),
		nodes.NewHaving(nodes.Gt(nodes.Count(posts.Col("id")), nodes.Lit(5))),
		nodes.NewSort(nodes.NewAsc(users.Col("name"))),
		nodes.NewLimit(nodes.Lit(20)),
		nodes.NewOffset(nodes.Lit(10)),
	)
	r := NewPostgresRenderer()

	b.ResetTimer()
	for b.Loop() {
		_, _ = r.ToSQL(q)
	}
}

// BenchmarkParameterizedQuery benchmarks parameter collection and dedup.
func BenchmarkParameterizedQuery(b *testing.B) {
	users := testutil.Users()
	id := nodes.NewParameter("id", testutil.Int64)
	q := nodes.NewSelect(
		nodes.NewDataSource(users).Where(nodes.AnyOf(
			nodes.Eq(users.Col("id"), id),
			nodes.Eq(users.Col("parent_id"), id),
			nodes.Eq(users.Col("name"), nodes.NewParameter("name", testutil.String)),
		)),
		users.Star(),
	)
	r := NewPostgresRenderer()

	b.ResetTimer()
	for b.Loop() {
		_, _ = r.ToSQL(q)
	}
}

// BenchmarkEverythingReusedContext renders a statement batch touching every
// node kind into one reused context.
func BenchmarkEverythingReusedContext(b *testing.B) {
	batch := testutil.Everything()
	r := NewPostgresRenderer()
	ctx := render.NewContext()

	b.ResetTimer()
	for b.Loop() {
		ctx.Clear()
		_ = r.Render(ctx, batch)
	}
}

// BenchmarkDotVisitor benchmarks DOT generation for a statement batch.
func BenchmarkDotVisitor(b *testing.B) {
	batch := testutil.Everything()

	b.ResetTimer()
	for b.Loop() {
		_ = ToDot(batch)
	}
}
