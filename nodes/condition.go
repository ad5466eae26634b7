package nodes

// True is the constant TRUE predicate.
type True struct{ isCondition }

func NewTrue() *True             { return &True{} }
func (n *True) Kind() Kind       { return KindTrue }
func (n *True) Accept(v Visitor) { v.VisitTrue(n) }

// False is the constant FALSE predicate.
type False struct{ isCondition }

func NewFalse() *False            { return &False{} }
func (n *False) Kind() Kind       { return KindFalse }
func (n *False) Accept(v Visitor) { v.VisitFalse(n) }

// ComparisonOp identifies a comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpDistinctFrom
	OpNotDistinctFrom
)

var comparisonOpSymbols = [...]string{
	OpEq:              "=",
	OpNotEq:           "<>",
	OpLt:              "<",
	OpLtEq:            "<=",
	OpGt:              ">",
	OpGtEq:            ">=",
	OpDistinctFrom:    "IS DISTINCT FROM",
	OpNotDistinctFrom: "IS NOT DISTINCT FROM",
}

// String returns the SQL spelling of the operator.
func (op ComparisonOp) String() string { return comparisonOpSymbols[op] }

// Comparison is Left Op Right.
type Comparison struct {
	isCondition
	Op          ComparisonOp
	Left, Right Expr
}

func NewComparison(op ComparisonOp, left, right Expr) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func Eq(l, r Expr) *Comparison    { return NewComparison(OpEq, l, r) }
func NotEq(l, r Expr) *Comparison { return NewComparison(OpNotEq, l, r) }
func Lt(l, r Expr) *Comparison    { return NewComparison(OpLt, l, r) }
func LtEq(l, r Expr) *Comparison  { return NewComparison(OpLtEq, l, r) }
func Gt(l, r Expr) *Comparison    { return NewComparison(OpGt, l, r) }
func GtEq(l, r Expr) *Comparison  { return NewComparison(OpGtEq, l, r) }

func (n *Comparison) Kind() Kind       { return KindComparison }
func (n *Comparison) Accept(v Visitor) { v.VisitComparison(n) }

// And is Left AND Right.
type And struct {
	isCondition
	Left, Right Condition
}

func NewAnd(l, r Condition) *And { return &And{Left: l, Right: r} }
func (n *And) Kind() Kind        { return KindAnd }
func (n *And) Accept(v Visitor)  { v.VisitAnd(n) }

// Or is Left OR Right.
type Or struct {
	isCondition
	Left, Right Condition
}

func NewOr(l, r Condition) *Or { return &Or{Left: l, Right: r} }
func (n *Or) Kind() Kind       { return KindOr }
func (n *Or) Accept(v Visitor) { v.VisitOr(n) }

// AllOf folds conds into a left-deep And chain. It returns TRUE when conds is
// empty and the single condition when there is only one.
func AllOf(conds ...Condition) Condition {
	if len(conds) == 0 {
		return NewTrue()
	}
	out := conds[0]
	for _, c := range conds[1:] {
		out = NewAnd(out, c)
	}
	return out
}

// AnyOf folds conds into a left-deep Or chain. It returns FALSE when conds is
// empty.
func AnyOf(conds ...Condition) Condition {
	if len(conds) == 0 {
		return NewFalse()
	}
	out := conds[0]
	for _, c := range conds[1:] {
		out = NewOr(out, c)
	}
	return out
}

// Not negates a condition.
type Not struct {
	isCondition
	Cond Condition
}

func NewNot(c Condition) *Not   { return &Not{Cond: c} }
func (n *Not) Kind() Kind       { return KindNot }
func (n *Not) Accept(v Visitor) { v.VisitNot(n) }

// IsNull is expr IS [NOT] NULL.
type IsNull struct {
	isCondition
	Expr    Expr
	Negated bool
}

func NewIsNull(e Expr) *IsNull     { return &IsNull{Expr: e} }
func NewIsNotNull(e Expr) *IsNull  { return &IsNull{Expr: e, Negated: true} }
func (n *IsNull) Kind() Kind       { return KindIsNull }
func (n *IsNull) Accept(v Visitor) { v.VisitIsNull(n) }

// In is expr [NOT] IN (values...). An empty value list renders as a constant
// predicate.
type In struct {
	isCondition
	Expr    Expr
	Values  []Expr
	Negated bool
}

func NewIn(e Expr, values ...Expr) *In    { return &In{Expr: e, Values: values} }
func NewNotIn(e Expr, values ...Expr) *In { return &In{Expr: e, Values: values, Negated: true} }
func (n *In) Kind() Kind                  { return KindIn }
func (n *In) Accept(v Visitor)            { v.VisitIn(n) }

// InQuery is expr [NOT] IN (subquery).
type InQuery struct {
	isCondition
	Expr    Expr
	Query   Query
	Negated bool
}

func NewInQuery(e Expr, q Query) *InQuery    { return &InQuery{Expr: e, Query: q} }
func NewNotInQuery(e Expr, q Query) *InQuery { return &InQuery{Expr: e, Query: q, Negated: true} }
func (n *InQuery) Kind() Kind                { return KindInQuery }
func (n *InQuery) Accept(v Visitor)          { v.VisitInQuery(n) }

// Between is expr [NOT] BETWEEN low AND high.
type Between struct {
	isCondition
	Expr      Expr
	Low, High Expr
	Negated   bool
}

func NewBetween(e, low, high Expr) *Between { return &Between{Expr: e, Low: low, High: high} }
func (n *Between) Kind() Kind               { return KindBetween }
func (n *Between) Accept(v Visitor)         { v.VisitBetween(n) }

// Like is expr [NOT] LIKE|ILIKE pattern [ESCAPE escape].
type Like struct {
	isCondition
	Expr            Expr
	Pattern         Expr
	Escape          Expr // nil when omitted
	Negated         bool
	CaseInsensitive bool
}

func NewLike(e, pattern Expr) *Like  { return &Like{Expr: e, Pattern: pattern} }
func NewILike(e, pattern Expr) *Like { return &Like{Expr: e, Pattern: pattern, CaseInsensitive: true} }
func (n *Like) Kind() Kind           { return KindLike }
func (n *Like) Accept(v Visitor)     { v.VisitLike(n) }

// Exists is [NOT] EXISTS (subquery).
type Exists struct {
	isCondition
	Query   Query
	Negated bool
}

func NewExists(q Query) *Exists    { return &Exists{Query: q} }
func NewNotExists(q Query) *Exists { return &Exists{Query: q, Negated: true} }
func (n *Exists) Kind() Kind       { return KindExists }
func (n *Exists) Accept(v Visitor) { v.VisitExists(n) }

// ExprCondition uses a boolean-valued expression as a predicate.
type ExprCondition struct {
	isCondition
	Expr Expr
}

func NewExprCondition(e Expr) *ExprCondition { return &ExprCondition{Expr: e} }
func (n *ExprCondition) Kind() Kind          { return KindExprCondition }
func (n *ExprCondition) Accept(v Visitor)    { v.VisitExprCondition(n) }
