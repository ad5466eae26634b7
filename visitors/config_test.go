package visitors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqltree/nodes"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	c, err := LoadConfig(strings.NewReader("dialect: postgres\nquote: backtick\npretty: true\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{Dialect: "postgres", Quote: "backtick", Pretty: true}, c)
}

func TestLoadConfigEmpty(t *testing.T) {
	t.Parallel()
	c, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, c)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(strings.NewReader("dialect: ansi\nindent: 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visitors: decoding config")
}

func TestConfigOptionsErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{Dialect: "oracle"}, `unknown dialect "oracle"`},
		{Config{Quote: "single"}, `unknown quote style "single"`},
		{Config{Placeholder: "question"}, `unknown placeholder style "question"`},
	}
	for _, tc := range cases {
		_, err := NewRendererFromConfig(tc.cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.want)
	}
}

func TestRendererFromConfig(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	sel := nodes.NewSelect(nodes.NewDataSource(users).Where(nodes.Eq(users.Col("id"), nodes.NewParameter("id", nodes.Lit(1).Type()))), users.Col("name"))

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"defaults", "", `SELECT "users"."name" FROM "users" WHERE "users"."id" = @id`},
		{"postgres", "dialect: postgres", `SELECT "users"."name" FROM "users" WHERE "users"."id" = $1`},
		{"sqlite", "dialect: sqlite", `SELECT "users"."name" FROM "users" WHERE "users"."id" = :id`},
		{"placeholder overrides dialect", "dialect: postgres\nplaceholder: colon", `SELECT "users"."name" FROM "users" WHERE "users"."id" = :id`},
		{"bare", "quote: none", `SELECT users.name FROM users WHERE users.id = @id`},
		{"backtick", "quote: backtick\nplaceholder: at", "SELECT `users`.`name` FROM `users` WHERE `users`.`id` = @id"},
		{"pretty", "pretty: true", "SELECT \"users\".\"name\"\nFROM \"users\"\nWHERE \"users\".\"id\" = @id"},
	}
	for _, tc := range cases {
		c, err := LoadConfig(strings.NewReader(tc.yaml))
		require.NoError(t, err, tc.name)
		r, err := NewRendererFromConfig(c)
		require.NoError(t, err, tc.name)
		snap, err := r.ToSQL(sel)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, snap.Text(), tc.name)
	}
}
