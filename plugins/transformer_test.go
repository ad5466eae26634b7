package plugins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/internal/testutil"
	"github.com/bawdo/sqltree/mutator"
	"github.com/bawdo/sqltree/nodes"
)

// --- BaseTransformer ---

func TestBaseTransformerReturnsInput(t *testing.T) {
	t.Parallel()
	users := testutil.Users()
	stmts := []nodes.Statement{
		nodes.NewSelect(nodes.NewDataSource(users)),
		nodes.NewInsert(users),
		nodes.NewUpdate(users),
		nodes.NewDelete(users),
	}
	var bt BaseTransformer
	for _, s := range stmts {
		out, err := bt.Transform(s)
		require.NoError(t, err)
		testutil.AssertSame(t, s, out, s.Kind().String())
	}
}

func TestBaseTransformerNil(t *testing.T) {
	t.Parallel()
	out, err := BaseTransformer{}.Transform(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

// --- FromDecider ---

func limitTo(n int) mutator.Decider {
	return mutator.DeciderFunc(func(node nodes.Node, _ *mutator.Ancestors) mutator.Outcome {
		if _, ok := node.(*nodes.Limit); ok {
			return mutator.Leaf(nodes.NewLimit(nodes.Lit(n)))
		}
		return mutator.Unchanged()
	})
}

func TestFromDeciderRewritesStatement(t *testing.T) {
	t.Parallel()
	sel := nodes.NewSelect(nodes.NewDataSource(testutil.Users())).WithTraits(nodes.NewLimit(nodes.Lit(100)))
	out, err := FromDecider(limitTo(10)).Transform(sel)
	require.NoError(t, err)

	got, ok := out.(*nodes.Select)
	require.True(t, ok)
	assert.Equal(t, 10, got.Traits[0].(*nodes.Limit).Count.(*nodes.Literal).Value)
	assert.Equal(t, 100, sel.Traits[0].(*nodes.Limit).Count.(*nodes.Literal).Value, "input is not modified")
}

func TestFromDeciderRejectsNonStatementRoot(t *testing.T) {
	t.Parallel()
	toTrue := mutator.DeciderFunc(func(n nodes.Node, a *mutator.Ancestors) mutator.Outcome {
		if a.Len() == 0 {
			return mutator.Leaf(nodes.NewTrue())
		}
		return mutator.Unchanged()
	})
	_, err := FromDecider(toTrue).Transform(nodes.NewDelete(testutil.Users()))
	require.Error(t, err)
	var typeErr *mutator.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

// --- Chain ---

func TestChainRunsInOrder(t *testing.T) {
	t.Parallel()
	var order []string
	step := func(name string) Transformer {
		return TransformerFunc(func(s nodes.Statement) (nodes.Statement, error) {
			order = append(order, name)
			return s.(*nodes.Select).WithTraits(nodes.NewComment(name)), nil
		})
	}
	out, err := Chain(step("a"), BaseTransformer{}, step("b")).Transform(nodes.NewSelect(nil, nodes.Lit(1)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)

	sel := out.(*nodes.Select)
	require.Len(t, sel.Traits, 2)
	assert.Equal(t, "a", sel.Traits[0].(*nodes.Comment).Text)
	assert.Equal(t, "b", sel.Traits[1].(*nodes.Comment).Text)
}

func TestChainStopsAtFirstError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	called := false
	failing := TransformerFunc(func(s nodes.Statement) (nodes.Statement, error) { return nil, boom })
	after := TransformerFunc(func(s nodes.Statement) (nodes.Statement, error) {
		called = true
		return s, nil
	})
	in := nodes.NewSelect(nil, nodes.Lit(1))
	out, err := Chain(BaseTransformer{}, failing, after).Transform(in)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "plugins: transformer 1")
	assert.False(t, called)
	testutil.AssertSame(t, in, out)
}

func TestChainEmpty(t *testing.T) {
	t.Parallel()
	in := nodes.NewDelete(testutil.Users())
	out, err := Chain().Transform(in)
	require.NoError(t, err)
	testutil.AssertSame(t, in, out)
}
