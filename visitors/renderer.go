package visitors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/sqltree/internal/quoting"
	"github.com/bawdo/sqltree/nodes"
	"github.com/bawdo/sqltree/render"
)

// ErrMisplacedTrait is returned when a trait is attached to a node that has
// no clause for it, such as RETURNING on a SELECT.
var ErrMisplacedTrait = errors.New("sqltree: trait not allowed here")

// ErrRawPlaceholder is returned when raw text refers to $n and the node
// carries fewer than n parameters.
var ErrRawPlaceholder = errors.New("sqltree: raw placeholder has no parameter")

// ErrUnknownColumnType is returned when a column definition has neither a
// type name nor a known type.
var ErrUnknownColumnType = errors.New("sqltree: column type is unknown")

// PlaceholderStyle selects how parameter references are spelled.
type PlaceholderStyle int

const (
	// PlaceholderAt writes @name.
	PlaceholderAt PlaceholderStyle = iota
	// PlaceholderColon writes :name.
	PlaceholderColon
	// PlaceholderDollar writes $n, where n is the 1-based position of the
	// parameter in the render context.
	PlaceholderDollar
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithQuoting sets the identifier quoting function.
func WithQuoting(q quoting.Quoter) Option {
	return func(r *Renderer) { r.quote = q }
}

// WithPlaceholder sets the parameter placeholder style.
func WithPlaceholder(s PlaceholderStyle) Option {
	return func(r *Renderer) { r.placeholder = s }
}

// WithDialect sets the dialect used for type names in CAST and DDL.
func WithDialect(d Dialect) Option {
	return func(r *Renderer) { r.dialect = d }
}

// WithPretty renders each clause on its own line and indents subqueries.
func WithPretty() Option {
	return func(r *Renderer) { r.pretty = true }
}

// Renderer turns a tree into SQL text. It implements nodes.Visitor.
//
// Text goes to a render.Context, which also collects every parameter the
// tree references. A Renderer holds per-render state and must not be used
// from several goroutines at once.
type Renderer struct {
	// outer is the concrete visitor. All recursive Accept calls go through
	// outer so that overrides in embedding types are respected.
	outer nodes.Visitor

	quote       quoting.Quoter
	placeholder PlaceholderStyle
	dialect     Dialect
	pretty      bool

	ctx *render.Context
	err error
}

var _ nodes.Visitor = (*Renderer)(nil)

// NewRenderer creates a Renderer producing ANSI SQL with double-quoted
// identifiers and @name placeholders.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{quote: quoting.DoubleQuote, placeholder: PlaceholderAt, dialect: DialectANSI}
	r.outer = r
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewPostgresRenderer creates a Renderer for PostgreSQL: $n placeholders
// and PostgreSQL type names.
func NewPostgresRenderer(opts ...Option) *Renderer {
	return NewRenderer(append([]Option{WithPlaceholder(PlaceholderDollar), WithDialect(DialectPostgres)}, opts...)...)
}

// NewSQLiteRenderer creates a Renderer for SQLite: :name placeholders and
// SQLite type names.
func NewSQLiteRenderer(opts ...Option) *Renderer {
	return NewRenderer(append([]Option{WithPlaceholder(PlaceholderColon), WithDialect(DialectSQLite)}, opts...)...)
}

// ToSQL renders n into a fresh context and returns the result.
func (r *Renderer) ToSQL(n nodes.Node) (render.Snapshot, error) {
	ctx := render.NewContext()
	err := r.Render(ctx, n)
	return ctx.ToSnapshot(), err
}

// Render appends the SQL for n to ctx. The first structural problem found
// is returned; text written up to that point stays in ctx.
func (r *Renderer) Render(ctx *render.Context, n nodes.Node) error {
	r.ctx, r.err = ctx, nil
	defer func() { r.ctx = nil }()
	if n == nil {
		return nil
	}
	n.Accept(r.outer)
	return r.err
}

// ToSQL renders n with a Renderer built from opts.
func ToSQL(n nodes.Node, opts ...Option) (render.Snapshot, error) {
	return NewRenderer(opts...).ToSQL(n)
}

// --- Writing helpers ---

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Renderer) write(parts ...string) {
	for _, p := range parts {
		r.ctx.WriteString(p)
	}
}

func (r *Renderer) ident(name string) string { return r.quote(name) }

func (r *Renderer) qualified(qualifier, name string) string {
	if qualifier == "" {
		return r.quote(name)
	}
	return r.quote(qualifier) + "." + r.quote(name)
}

func (r *Renderer) identList(names []string) {
	for i, n := range names {
		if i > 0 {
			r.write(", ")
		}
		r.write(r.quote(n))
	}
}

// clause starts a new clause: a space, or a line break in pretty mode.
// Nothing separates a clause written at the very start of the text.
func (r *Renderer) clause(keyword string) {
	switch {
	case r.ctx.Len() == 0:
	case r.pretty:
		r.ctx.AppendIndent()
	default:
		r.write(" ")
	}
	r.write(keyword)
}

func (r *Renderer) node(n nodes.Node) { n.Accept(r.outer) }

func renderList[T nodes.Node](r *Renderer, items []T) {
	for i, it := range items {
		if i > 0 {
			r.write(", ")
		}
		it.Accept(r.outer)
	}
}

// subquery writes q in parentheses, one level deeper.
func (r *Renderer) subquery(q nodes.Query) {
	r.write("(")
	release := r.ctx.Nested()
	if r.pretty {
		r.ctx.AppendIndent()
	}
	q.Accept(r.outer)
	if r.pretty {
		r.ctx.AppendShortIndent()
	}
	release()
	r.write(")")
}

// operand writes an operator operand, parenthesised when it is itself an
// operator expression.
func (r *Renderer) operand(e nodes.Expr) {
	switch e.(type) {
	case *nodes.Binary, *nodes.Unary:
		r.write("(")
		e.Accept(r.outer)
		r.write(")")
	default:
		e.Accept(r.outer)
	}
}

// raw writes raw SQL and registers its parameters. With $n placeholders,
// $k in the text names the k-th parameter of the node and is renumbered to
// that parameter's position in the context.
func (r *Renderer) raw(sql string, ps []*nodes.Parameter) {
	for _, p := range ps {
		r.ctx.AddParameter(p.Name, p.ValueType, p.Index)
	}
	if r.placeholder != PlaceholderDollar || !strings.Contains(sql, "$") {
		r.write(sql)
		return
	}
	var b strings.Builder
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '$' && (i == 0 || !isIdentByte(sql[i-1])):
			j := i + 1
			for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
				j++
			}
			if j == i+1 {
				break
			}
			k, err := strconv.Atoi(sql[i+1 : j])
			if err != nil || k < 1 || k > len(ps) {
				r.fail(fmt.Errorf("%w: %s", ErrRawPlaceholder, sql[i:j]))
				break
			}
			pos, _ := r.ctx.ParameterPosition(ps[k-1].Name)
			b.WriteString("$" + strconv.Itoa(pos))
			i = j - 1
			continue
		}
		b.WriteByte(ch)
	}
	r.write(b.String())
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// --- Expressions ---

func (r *Renderer) VisitLiteral(n *nodes.Literal) { r.write(r.literal(n.Value)) }

func (r *Renderer) VisitNull(*nodes.Null) { r.write("NULL") }

func (r *Renderer) VisitParameter(n *nodes.Parameter) {
	if !quoting.IsPlainIdentifier(n.Name) {
		panic(fmt.Sprintf("sqltree: invalid parameter name %q", n.Name))
	}
	r.ctx.AddParameter(n.Name, n.ValueType, n.Index)
	switch r.placeholder {
	case PlaceholderDollar:
		pos, _ := r.ctx.ParameterPosition(n.Name)
		r.write("$", strconv.Itoa(pos))
	case PlaceholderColon:
		r.write(":", n.Name)
	default:
		r.write("@", n.Name)
	}
}

func (r *Renderer) VisitColumn(n *nodes.Column) { r.write(r.qualified(n.Qualifier, n.Name)) }

func (r *Renderer) VisitStar(n *nodes.Star) {
	if n.Qualifier != "" {
		r.write(r.quote(n.Qualifier), ".")
	}
	r.write("*")
}

func (r *Renderer) VisitUnary(n *nodes.Unary) {
	r.write(n.Op.String())
	r.operand(n.Operand)
}

func (r *Renderer) VisitBinary(n *nodes.Binary) {
	r.operand(n.Left)
	r.write(" ", n.Op.String(), " ")
	r.operand(n.Right)
}

func (r *Renderer) VisitFunction(n *nodes.Function) {
	validateSQLFunctionName(n.Name)
	r.write(n.Name, "(")
	renderList(r, n.Args)
	r.write(")")
}

func (r *Renderer) VisitAggregate(n *nodes.Aggregate) {
	validateSQLFunctionName(n.Name)
	ts := r.collect(n.Traits, nodes.KindFilter, nodes.KindSort)
	r.write(n.Name, "(")
	if n.Distinct {
		r.write("DISTINCT ")
	}
	if len(n.Args) == 0 {
		r.write("*")
	} else {
		renderList(r, n.Args)
	}
	if len(ts.sorts) > 0 {
		r.write(" ORDER BY ")
		renderList(r, ts.sorts)
	}
	r.write(")")
	if len(ts.filters) > 0 {
		r.write(" FILTER (WHERE ")
		r.node(nodes.AllOf(ts.filters...))
		r.write(")")
	}
}

func (r *Renderer) VisitWindowFunction(n *nodes.WindowFunction) {
	validateSQLFunctionName(n.Name)
	r.write(n.Name, "(")
	renderList(r, n.Args)
	r.write(") OVER ")
	if n.WindowName != "" {
		r.write(r.quote(n.WindowName))
		return
	}
	r.windowSpec(n.Traits)
}

func (r *Renderer) VisitCast(n *nodes.Cast) {
	name := n.TypeName
	if name == "" {
		var ok bool
		if name, ok = SQLTypeName(n.Target, r.dialect); !ok {
			r.fail(fmt.Errorf("sqltree: cannot cast to %s: %w", n.Target, ErrUnknownColumnType))
		}
	}
	validateSQLTypeName(name)
	r.write("CAST(")
	r.node(n.Operand)
	r.write(" AS ", name, ")")
}

func (r *Renderer) VisitCase(n *nodes.Case) {
	r.write("CASE")
	if n.Operand != nil {
		r.write(" ")
		r.node(n.Operand)
	}
	for _, w := range n.Whens {
		r.write(" ")
		r.node(w)
	}
	if n.Else != nil {
		r.write(" ELSE ")
		r.node(n.Else)
	}
	r.write(" END")
}

func (r *Renderer) VisitCaseWhen(n *nodes.CaseWhen) {
	r.write("WHEN ")
	r.node(n.When)
	r.write(" THEN ")
	r.node(n.Then)
}

func (r *Renderer) VisitAlias(n *nodes.Alias) {
	r.node(n.Expr)
	r.write(" AS ", r.quote(n.Name))
}

func (r *Renderer) VisitScalarSubquery(n *nodes.ScalarSubquery) { r.subquery(n.Query) }

func (r *Renderer) VisitConditionExpr(n *nodes.ConditionExpr) {
	r.write("(")
	r.node(n.Cond)
	r.write(")")
}

func (r *Renderer) VisitTuple(n *nodes.Tuple) {
	r.write("(")
	renderList(r, n.Items)
	r.write(")")
}

func (r *Renderer) VisitRawExpr(n *nodes.RawExpr) {
	r.raw(n.SQL, n.Params)
}

func (r *Renderer) VisitOrdering(n *nodes.Ordering) {
	r.node(n.Expr)
	if n.Direction == nodes.Desc {
		r.write(" DESC")
	} else {
		r.write(" ASC")
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		r.write(" NULLS FIRST")
	case nodes.NullsLast:
		r.write(" NULLS LAST")
	}
}

func (r *Renderer) VisitDefault(*nodes.Default) { r.write("DEFAULT") }

// --- Conditions ---

func (r *Renderer) VisitTrue(*nodes.True)   { r.write("TRUE") }
func (r *Renderer) VisitFalse(*nodes.False) { r.write("FALSE") }

func (r *Renderer) VisitComparison(n *nodes.Comparison) {
	r.node(n.Left)
	r.write(" ", n.Op.String(), " ")
	r.node(n.Right)
}

func (r *Renderer) VisitAnd(n *nodes.And) {
	r.conjunct(n.Left)
	r.write(" AND ")
	r.conjunct(n.Right)
}

// conjunct writes one side of an AND, grouping an OR so that it keeps its
// meaning.
func (r *Renderer) conjunct(c nodes.Condition) {
	if _, ok := c.(*nodes.Or); ok {
		r.write("(")
		r.node(c)
		r.write(")")
		return
	}
	r.node(c)
}

func (r *Renderer) VisitOr(n *nodes.Or) {
	r.node(n.Left)
	r.write(" OR ")
	r.node(n.Right)
}

func (r *Renderer) VisitNot(n *nodes.Not) {
	r.write("NOT (")
	r.node(n.Cond)
	r.write(")")
}

func (r *Renderer) VisitIsNull(n *nodes.IsNull) {
	r.node(n.Expr)
	if n.Negated {
		r.write(" IS NOT NULL")
	} else {
		r.write(" IS NULL")
	}
}

func (r *Renderer) VisitIn(n *nodes.In) {
	// IN () is not valid SQL; an empty list matches nothing.
	if len(n.Values) == 0 {
		if n.Negated {
			r.write("TRUE")
		} else {
			r.write("FALSE")
		}
		return
	}
	r.node(n.Expr)
	if n.Negated {
		r.write(" NOT")
	}
	r.write(" IN (")
	renderList(r, n.Values)
	r.write(")")
}

func (r *Renderer) VisitInQuery(n *nodes.InQuery) {
	r.node(n.Expr)
	if n.Negated {
		r.write(" NOT")
	}
	r.write(" IN ")
	r.subquery(n.Query)
}

func (r *Renderer) VisitBetween(n *nodes.Between) {
	r.node(n.Expr)
	if n.Negated {
		r.write(" NOT")
	}
	r.write(" BETWEEN ")
	r.node(n.Low)
	r.write(" AND ")
	r.node(n.High)
}

func (r *Renderer) VisitLike(n *nodes.Like) {
	r.node(n.Expr)
	if n.Negated {
		r.write(" NOT")
	}
	if n.CaseInsensitive {
		r.write(" ILIKE ")
	} else {
		r.write(" LIKE ")
	}
	r.node(n.Pattern)
	if n.Escape != nil {
		r.write(" ESCAPE ")
		r.node(n.Escape)
	}
}

func (r *Renderer) VisitExists(n *nodes.Exists) {
	if n.Negated {
		r.write("NOT ")
	}
	r.write("EXISTS ")
	r.subquery(n.Query)
}

func (r *Renderer) VisitExprCondition(n *nodes.ExprCondition) { r.node(n.Expr) }

func (r *Renderer) VisitRawCondition(n *nodes.RawCondition) {
	r.raw(n.SQL, n.Params)
}

// validateSQLTypeName panics if the type name contains characters outside
// the set of letters, digits, spaces, parentheses, commas, and underscores.
// This prevents SQL injection through crafted type names.
func validateSQLTypeName(name string) {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != ' ' && c != '(' &&
			c != ')' && c != ',' && c != '_' {
			panic(fmt.Sprintf("sqltree: invalid SQL type name character %q in %q", string(c), name))
		}
	}
}

// validateSQLFunctionName panics if the function name contains characters
// outside the set of letters, digits, and underscores.
func validateSQLFunctionName(name string) {
	if name == "" {
		panic("sqltree: empty SQL function name")
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			panic(fmt.Sprintf("sqltree: invalid SQL function name character %q in %q", string(c), name))
		}
	}
}
