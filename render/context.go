// Package render holds the mutable state threaded through one render pass:
// the output buffer, indentation and child-depth counters, and the table of
// named parameters referenced by the rendered text.
//
// A Context is single-owner. It must not be shared between concurrent render
// passes; Clear it to reuse the buffer for the next pass.
package render

import (
	"bytes"
	"strings"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/nodes"
)

// DefaultCapacity is the initial size of a Context's internal buffer.
const DefaultCapacity = 1024

// IndentUnit is the number of columns added by one IncreaseIndent.
const IndentUnit = 2

// Context accumulates rendered text and parameter references.
type Context struct {
	buf    *bytes.Buffer
	indent int // columns
	depth  int

	params []Parameter
	index  map[string]int // name -> position in params
}

// NewContext creates an empty context with its own buffer.
func NewContext() *Context {
	return NewContextWithBuffer(bytes.NewBuffer(make([]byte, 0, DefaultCapacity)))
}

// NewContextWithBuffer creates a context writing into buf. The buffer is
// borrowed: the caller keeps ownership and must not write to it while the
// context is in use.
func NewContextWithBuffer(buf *bytes.Buffer) *Context {
	return &Context{buf: buf, index: make(map[string]int)}
}

// Buffer returns the underlying buffer.
func (c *Context) Buffer() *bytes.Buffer { return c.buf }

// --- Indentation and depth ---

// Indent returns the current indentation in columns.
func (c *Context) Indent() int { return c.indent }

// IncreaseIndent adds one IndentUnit.
func (c *Context) IncreaseIndent() { c.indent += IndentUnit }

// DecreaseIndent removes one IndentUnit, stopping at zero.
func (c *Context) DecreaseIndent() {
	c.indent = max(c.indent-IndentUnit, 0)
}

// ChildDepth returns how many nested queries enclose the current position.
func (c *Context) ChildDepth() int { return c.depth }

// IncreaseChildDepth enters a nested query.
func (c *Context) IncreaseChildDepth() { c.depth++ }

// DecreaseChildDepth leaves a nested query, stopping at zero.
func (c *Context) DecreaseChildDepth() {
	c.depth = max(c.depth-1, 0)
}

// Indented increases the indent and returns the func that undoes it:
//
//	defer ctx.Indented()()
func (c *Context) Indented() func() {
	c.IncreaseIndent()
	return c.DecreaseIndent
}

// Nested increases both the indent and the child depth and returns the func
// that undoes both.
func (c *Context) Nested() func() {
	c.IncreaseIndent()
	c.IncreaseChildDepth()
	return func() {
		c.DecreaseChildDepth()
		c.DecreaseIndent()
	}
}

// AppendIndent writes a line break followed by the current indentation.
func (c *Context) AppendIndent() {
	c.buf.WriteByte('\n')
	c.buf.WriteString(strings.Repeat(" ", c.indent))
}

// AppendShortIndent writes a line break followed by one unit less than the
// current indentation.
func (c *Context) AppendShortIndent() {
	c.buf.WriteByte('\n')
	c.buf.WriteString(strings.Repeat(" ", max(c.indent-IndentUnit, 0)))
}

// --- Text ---

func (c *Context) WriteString(s string) (int, error) { return c.buf.WriteString(s) }
func (c *Context) WriteByte(b byte) error            { return c.buf.WriteByte(b) }
func (c *Context) Write(p []byte) (int, error)       { return c.buf.Write(p) }

// String returns the text rendered so far.
func (c *Context) String() string { return c.buf.String() }

// Len returns the number of bytes rendered so far.
func (c *Context) Len() int { return c.buf.Len() }

// --- Parameters ---

// AddParameter records a reference to the named parameter. The first
// reference inserts a descriptor; later references with a different type or
// index collapse that attribute to unknown.
func (c *Context) AddParameter(name string, t exprtype.Type, index int) {
	if i, ok := c.index[name]; ok {
		p := &c.params[i]
		if !p.Type.Equal(t) {
			p.Type = exprtype.Type{}
		}
		if p.Index != index {
			p.Index = nodes.UnknownIndex
		}
		return
	}
	c.index[name] = len(c.params)
	c.params = append(c.params, Parameter{Name: name, Type: t, Index: index})
}

// TryGetParameter returns the descriptor recorded for name.
func (c *Context) TryGetParameter(name string) (Parameter, bool) {
	i, ok := c.index[name]
	if !ok {
		return Parameter{}, false
	}
	return c.params[i], true
}

// ParameterPosition returns the 1-based position of name in first-reference
// order, registering nothing.
func (c *Context) ParameterPosition(name string) (int, bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// Parameters returns the descriptors in first-reference order.
func (c *Context) Parameters() []Parameter {
	out := make([]Parameter, len(c.params))
	copy(out, c.params)
	return out
}

// Clear resets the text, counters and parameters. The buffer keeps its
// capacity.
func (c *Context) Clear() {
	c.buf.Reset()
	c.indent = 0
	c.depth = 0
	c.params = c.params[:0]
	clear(c.index)
}

// ToSnapshot captures the current text and parameters.
func (c *Context) ToSnapshot() Snapshot {
	return Snapshot{text: c.buf.String(), params: c.Parameters()}
}
