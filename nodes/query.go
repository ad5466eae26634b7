package nodes

// Select is SELECT projection [FROM source] followed by its traits: DISTINCT,
// GROUP BY, HAVING, WINDOW, ORDER BY, LIMIT, OFFSET, locking, WITH, comments
// and hints. Filter traits live on the data source.
type Select struct {
	isQuery
	Source     *DataSource // nil for a FROM-less select
	Projection []Expr      // empty means *
	Traits     []Trait
}

// NewSelect creates a select over source.
func NewSelect(source *DataSource, projection ...Expr) *Select {
	return &Select{Source: source, Projection: projection}
}

// WithTraits returns a copy with traits appended.
func (n *Select) WithTraits(traits ...Trait) *Select {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

func (n *Select) Kind() Kind       { return KindSelect }
func (n *Select) Accept(v Visitor) { v.VisitSelect(n) }

// SetOpType identifies a set operation.
type SetOpType int

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

var setOpKeywords = [...]string{
	Union:        "UNION",
	UnionAll:     "UNION ALL",
	Intersect:    "INTERSECT",
	IntersectAll: "INTERSECT ALL",
	Except:       "EXCEPT",
	ExceptAll:    "EXCEPT ALL",
}

// String returns the SQL keyword for the operation.
func (op SetOpType) String() string { return setOpKeywords[op] }

// SetOperation combines two queries. Sort, Limit and Offset traits apply to
// the combined result.
type SetOperation struct {
	isQuery
	Op          SetOpType
	Left, Right Query
	Traits      []Trait
}

func NewSetOperation(op SetOpType, left, right Query) *SetOperation {
	return &SetOperation{Op: op, Left: left, Right: right}
}

// WithTraits returns a copy with traits appended.
func (n *SetOperation) WithTraits(traits ...Trait) *SetOperation {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

func (n *SetOperation) Kind() Kind       { return KindSetOperation }
func (n *SetOperation) Accept(v Visitor) { v.VisitSetOperation(n) }
