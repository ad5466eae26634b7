package nodes

// IsolationLevel is the isolation requested by BEGIN.
type IsolationLevel int

const (
	IsolationDefault IsolationLevel = iota
	ReadUncommitted
	ReadCommitted
	RepeatableRead
	Serializable
)

var isolationKeywords = [...]string{
	IsolationDefault: "",
	ReadUncommitted:  "READ UNCOMMITTED",
	ReadCommitted:    "READ COMMITTED",
	RepeatableRead:   "REPEATABLE READ",
	Serializable:     "SERIALIZABLE",
}

func (l IsolationLevel) String() string { return isolationKeywords[l] }

// Begin starts a transaction.
type Begin struct {
	isStatement
	Isolation IsolationLevel
	ReadOnly  bool
}

func NewBegin() *Begin            { return &Begin{} }
func (n *Begin) Kind() Kind       { return KindBegin }
func (n *Begin) Accept(v Visitor) { v.VisitBegin(n) }

// Commit commits the current transaction.
type Commit struct{ isStatement }

func NewCommit() *Commit           { return &Commit{} }
func (n *Commit) Kind() Kind       { return KindCommit }
func (n *Commit) Accept(v Visitor) { v.VisitCommit(n) }

// Rollback aborts the transaction, or rolls back to Savepoint when set.
type Rollback struct {
	isStatement
	Savepoint string
}

func NewRollback() *Rollback                   { return &Rollback{} }
func NewRollbackTo(savepoint string) *Rollback { return &Rollback{Savepoint: savepoint} }
func (n *Rollback) Kind() Kind                 { return KindRollback }
func (n *Rollback) Accept(v Visitor)           { v.VisitRollback(n) }

// Savepoint is SAVEPOINT name.
type Savepoint struct {
	isStatement
	Name string
}

func NewSavepoint(name string) *Savepoint { return &Savepoint{Name: name} }
func (n *Savepoint) Kind() Kind           { return KindSavepoint }
func (n *Savepoint) Accept(v Visitor)     { v.VisitSavepoint(n) }

// ReleaseSavepoint is RELEASE SAVEPOINT name.
type ReleaseSavepoint struct {
	isStatement
	Name string
}

func NewReleaseSavepoint(name string) *ReleaseSavepoint { return &ReleaseSavepoint{Name: name} }
func (n *ReleaseSavepoint) Kind() Kind                  { return KindReleaseSavepoint }
func (n *ReleaseSavepoint) Accept(v Visitor)            { v.VisitReleaseSavepoint(n) }

// Batch is a sequence of statements rendered separated by semicolons.
type Batch struct {
	isStatement
	Statements []Statement
}

func NewBatch(stmts ...Statement) *Batch { return &Batch{Statements: stmts} }
func (n *Batch) Kind() Kind              { return KindBatch }
func (n *Batch) Accept(v Visitor)        { v.VisitBatch(n) }
