// Package quoting provides identifier quoting and literal escaping shared by
// the renderers.
package quoting

import (
	"fmt"
	"strings"
)

// Quoter turns an identifier into its SQL spelling.
type Quoter func(string) string

// DoubleQuote quotes a SQL identifier using double quotes (ANSI SQL,
// PostgreSQL, SQLite). Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks.
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Bare writes the identifier unquoted. Only plain identifiers (letters,
// digits, underscores, not starting with a digit) are accepted; anything else
// panics, since it could not be written safely without quotes.
func Bare(s string) string {
	if !IsPlainIdentifier(s) {
		panic(fmt.Sprintf("sqltree: identifier %q must be quoted", s))
	}
	return s
}

// IsPlainIdentifier reports whether s can be written without quotes.
func IsPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// EscapeString escapes a string literal body by doubling single quotes.
// Backslashes are ordinary characters in standard SQL string literals and
// are left as is.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeLikePattern escapes LIKE wildcard characters (%, _) in a string
// so they are matched literally. The backslash is used as the escape character.
func EscapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// EscapeComment neutralises comment terminators and openers inside comment
// text. Openers matter because PostgreSQL block comments nest.
func EscapeComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	s = strings.ReplaceAll(s, "/*", "/ *")
	return s
}
