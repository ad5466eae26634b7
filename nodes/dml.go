package nodes

// Assignment is column = value in SET clauses.
type Assignment struct {
	Column *Column
	Value  Expr
}

func NewAssignment(col *Column, value Expr) *Assignment {
	return &Assignment{Column: col, Value: value}
}

func (n *Assignment) Kind() Kind       { return KindAssignment }
func (n *Assignment) Accept(v Visitor) { v.VisitAssignment(n) }

// OnConflict is ON CONFLICT [(columns)] DO NOTHING | DO UPDATE SET ... [WHERE ...].
type OnConflict struct {
	Columns   []*Column
	DoNothing bool
	Set       []*Assignment
	Where     Condition
}

// NewOnConflictDoNothing creates ON CONFLICT (columns) DO NOTHING.
func NewOnConflictDoNothing(columns ...*Column) *OnConflict {
	return &OnConflict{Columns: columns, DoNothing: true}
}

// NewOnConflictDoUpdate creates ON CONFLICT (columns) DO UPDATE SET set.
func NewOnConflictDoUpdate(columns []*Column, set ...*Assignment) *OnConflict {
	return &OnConflict{Columns: columns, Set: set}
}

func (n *OnConflict) Kind() Kind       { return KindOnConflict }
func (n *OnConflict) Accept(v Visitor) { v.VisitOnConflict(n) }

// Insert is INSERT INTO table [(columns)] followed by VALUES rows or a query.
// Supported traits: With, Returning, Comment, Hint.
type Insert struct {
	isStatement
	Into       *Table
	Columns    []*Column
	Rows       []*Tuple
	Query      Query // set instead of Rows for INSERT ... SELECT
	OnConflict *OnConflict
	Traits     []Trait
}

// NewInsert creates INSERT INTO table (columns) with no rows.
func NewInsert(into *Table, columns ...*Column) *Insert {
	return &Insert{Into: into, Columns: columns}
}

// WithTraits returns a copy with traits appended.
func (n *Insert) WithTraits(traits ...Trait) *Insert {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

func (n *Insert) Kind() Kind       { return KindInsert }
func (n *Insert) Accept(v Visitor) { v.VisitInsert(n) }

// Update is UPDATE table SET ... [FROM source]. Supported traits: Filter
// (WHERE), With, Returning, Comment, Hint.
type Update struct {
	isStatement
	Table  *Table
	Set    []*Assignment
	From   *DataSource
	Traits []Trait
}

func NewUpdate(table *Table, set ...*Assignment) *Update { return &Update{Table: table, Set: set} }

// WithTraits returns a copy with traits appended.
func (n *Update) WithTraits(traits ...Trait) *Update {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

func (n *Update) Kind() Kind       { return KindUpdate }
func (n *Update) Accept(v Visitor) { v.VisitUpdate(n) }

// Delete is DELETE FROM table [USING source]. Supported traits: Filter
// (WHERE), With, Returning, Comment, Hint.
type Delete struct {
	isStatement
	From   *Table
	Using  *DataSource
	Traits []Trait
}

func NewDelete(from *Table) *Delete { return &Delete{From: from} }

// WithTraits returns a copy with traits appended.
func (n *Delete) WithTraits(traits ...Trait) *Delete {
	c := *n
	c.Traits = appendTrait(n.Traits, traits...)
	return &c
}

func (n *Delete) Kind() Kind       { return KindDelete }
func (n *Delete) Accept(v Visitor) { v.VisitDelete(n) }
