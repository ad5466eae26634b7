// Package testutil provides shared test helpers for the sqltree project.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/render"
)

// SQLRenderer is satisfied by visitors.Renderer.
type SQLRenderer interface {
	ToSQL(n nodes.Node) (render.Snapshot, error)
}

// AssertSQL renders node and compares the text with expected.
func AssertSQL(t testing.TB, r SQLRenderer, node nodes.Node, expected string) render.Snapshot {
	t.Helper()
	snap, err := r.ToSQL(node)
	require.NoError(t, err)
	assert.Equal(t, expected, snap.Text())
	return snap
}

// AssertParams compares the names of the rendered parameters, in order.
func AssertParams(t testing.TB, snap render.Snapshot, names ...string) {
	t.Helper()
	got := make([]string, 0, len(snap.Parameters()))
	for _, p := range snap.Parameters() {
		got = append(got, p.Name)
	}
	if len(names) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, names, got)
}

// AssertSame fails unless got and want are the same node.
func AssertSame(t testing.TB, want, got nodes.Node, msgAndArgs ...any) {
	t.Helper()
	if want != got {
		assert.Fail(t, fmt.Sprintf("expected the same node: want %s %p, got %v", kindOf(want), want, got), msgAndArgs...)
	}
}

// AssertPanics fails unless fn panics with a message containing substr.
func AssertPanics(t testing.TB, substr string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		assert.Contains(t, r, substr)
	}()
	fn()
}

func kindOf(n nodes.Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
