package nodes

// Traits are ordered modifiers attached to data sources, queries, DML
// statements and aggregate or window functions. A host may carry several
// traits of the same kind; renderers combine them (Filter traits are ANDed,
// Sort items are concatenated, the last Limit wins).

// Filter restricts rows: WHERE on a data source, FILTER on an aggregate.
type Filter struct {
	isTrait
	Cond Condition
}

func NewFilter(c Condition) *Filter { return &Filter{Cond: c} }
func (n *Filter) Kind() Kind        { return KindFilter }
func (n *Filter) Accept(v Visitor)  { v.VisitFilter(n) }

// Sort is ORDER BY items.
type Sort struct {
	isTrait
	Items []*Ordering
}

func NewSort(items ...*Ordering) *Sort { return &Sort{Items: items} }
func (n *Sort) Kind() Kind             { return KindSort }
func (n *Sort) Accept(v Visitor)       { v.VisitSort(n) }

// Limit is LIMIT count.
type Limit struct {
	isTrait
	Count Expr
}

func NewLimit(count Expr) *Limit  { return &Limit{Count: count} }
func (n *Limit) Kind() Kind       { return KindLimit }
func (n *Limit) Accept(v Visitor) { v.VisitLimit(n) }

// Offset is OFFSET count.
type Offset struct {
	isTrait
	Count Expr
}

func NewOffset(count Expr) *Offset { return &Offset{Count: count} }
func (n *Offset) Kind() Kind       { return KindOffset }
func (n *Offset) Accept(v Visitor) { v.VisitOffset(n) }

// Distinct is DISTINCT, or DISTINCT ON (exprs) when On is non-empty.
type Distinct struct {
	isTrait
	On []Expr
}

func NewDistinct(on ...Expr) *Distinct { return &Distinct{On: on} }
func (n *Distinct) Kind() Kind         { return KindDistinct }
func (n *Distinct) Accept(v Visitor)   { v.VisitDistinct(n) }

// GroupingMode selects plain GROUP BY or a grouping-set shorthand.
type GroupingMode int

const (
	GroupPlain GroupingMode = iota
	GroupRollup
	GroupCube
)

// GroupBy is GROUP BY items.
type GroupBy struct {
	isTrait
	Items []Expr
	Mode  GroupingMode
}

func NewGroupBy(items ...Expr) *GroupBy { return &GroupBy{Items: items} }
func NewRollup(items ...Expr) *GroupBy  { return &GroupBy{Items: items, Mode: GroupRollup} }
func NewCube(items ...Expr) *GroupBy    { return &GroupBy{Items: items, Mode: GroupCube} }
func (n *GroupBy) Kind() Kind           { return KindGroupBy }
func (n *GroupBy) Accept(v Visitor)     { v.VisitGroupBy(n) }

// Having is HAVING cond.
type Having struct {
	isTrait
	Cond Condition
}

func NewHaving(c Condition) *Having { return &Having{Cond: c} }
func (n *Having) Kind() Kind        { return KindHaving }
func (n *Having) Accept(v Visitor)  { v.VisitHaving(n) }

// With attaches common table expressions to a statement.
type With struct {
	isTrait
	CTEs []*CommonTableExpr
}

func NewWith(ctes ...*CommonTableExpr) *With { return &With{CTEs: ctes} }
func (n *With) Kind() Kind                   { return KindWith }
func (n *With) Accept(v Visitor)             { v.VisitWith(n) }

// Window declares a named window: WINDOW name AS (spec).
type Window struct {
	isTrait
	Name string
	Spec []Trait // PartitionBy, Sort and Frame traits
}

func NewWindow(name string, spec ...Trait) *Window { return &Window{Name: name, Spec: spec} }
func (n *Window) Kind() Kind                       { return KindWindow }
func (n *Window) Accept(v Visitor)                 { v.VisitWindow(n) }

// PartitionBy is PARTITION BY items inside a window specification.
type PartitionBy struct {
	isTrait
	Items []Expr
}

func NewPartitionBy(items ...Expr) *PartitionBy { return &PartitionBy{Items: items} }
func (n *PartitionBy) Kind() Kind               { return KindPartitionBy }
func (n *PartitionBy) Accept(v Visitor)         { v.VisitPartitionBy(n) }

// FrameUnit is ROWS, RANGE or GROUPS.
type FrameUnit int

const (
	FrameRows FrameUnit = iota
	FrameRange
	FrameGroups
)

var frameUnitKeywords = [...]string{FrameRows: "ROWS", FrameRange: "RANGE", FrameGroups: "GROUPS"}

func (u FrameUnit) String() string { return frameUnitKeywords[u] }

// BoundType identifies a frame boundary.
type BoundType int

const (
	UnboundedPreceding BoundType = iota
	Preceding
	CurrentRow
	Following
	UnboundedFollowing
)

// FrameBound is one end of a window frame. Offset is set for Preceding and
// Following bounds only.
type FrameBound struct {
	Type   BoundType
	Offset Expr
}

// Frame is a window frame clause.
type Frame struct {
	isTrait
	Unit  FrameUnit
	Start FrameBound
	End   *FrameBound // nil for the single-bound form
}

// NewFrame creates a BETWEEN start AND end frame.
func NewFrame(unit FrameUnit, start, end FrameBound) *Frame {
	return &Frame{Unit: unit, Start: start, End: &end}
}

// NewFrameFrom creates a frame with only a start bound.
func NewFrameFrom(unit FrameUnit, start FrameBound) *Frame {
	return &Frame{Unit: unit, Start: start}
}

func (n *Frame) Kind() Kind       { return KindFrame }
func (n *Frame) Accept(v Visitor) { v.VisitFrame(n) }

// LockMode is the row-locking strength of FOR UPDATE and friends.
type LockMode int

const (
	ForUpdate LockMode = iota
	ForNoKeyUpdate
	ForShare
	ForKeyShare
)

var lockKeywords = [...]string{
	ForUpdate:      "FOR UPDATE",
	ForNoKeyUpdate: "FOR NO KEY UPDATE",
	ForShare:       "FOR SHARE",
	ForKeyShare:    "FOR KEY SHARE",
}

func (m LockMode) String() string { return lockKeywords[m] }

// Lock is a row-locking clause.
type Lock struct {
	isTrait
	Mode       LockMode
	SkipLocked bool
	NoWait     bool
}

func NewLock(mode LockMode) *Lock { return &Lock{Mode: mode} }
func (n *Lock) Kind() Kind        { return KindLock }
func (n *Lock) Accept(v Visitor)  { v.VisitLock(n) }

// Returning is RETURNING items on INSERT, UPDATE and DELETE.
type Returning struct {
	isTrait
	Items []Expr
}

func NewReturning(items ...Expr) *Returning { return &Returning{Items: items} }
func (n *Returning) Kind() Kind             { return KindReturning }
func (n *Returning) Accept(v Visitor)       { v.VisitReturning(n) }

// Comment is a leading /* text */ comment on a top-level statement.
type Comment struct {
	isTrait
	Text string
}

func NewComment(text string) *Comment { return &Comment{Text: text} }
func (n *Comment) Kind() Kind         { return KindComment }
func (n *Comment) Accept(v Visitor)   { v.VisitComment(n) }

// Hint is an optimizer hint rendered as /*+ text */ after the verb.
type Hint struct {
	isTrait
	Text string
}

func NewHint(text string) *Hint  { return &Hint{Text: text} }
func (n *Hint) Kind() Kind       { return KindHint }
func (n *Hint) Accept(v Visitor) { v.VisitHint(n) }
