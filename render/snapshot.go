package render

import (
	"fmt"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/nodes"
)

// Parameter describes one named parameter referenced by rendered text.
// Type is unknown and Index is nodes.UnknownIndex when references disagree.
type Parameter struct {
	Name  string
	Type  exprtype.Type
	Index int
}

func (p Parameter) String() string {
	if p.Index == nodes.UnknownIndex {
		return fmt.Sprintf("%s %s", p.Name, p.Type)
	}
	return fmt.Sprintf("%s %s #%d", p.Name, p.Type, p.Index)
}

// Node returns a parameter node carrying the descriptor.
func (p Parameter) Node() *nodes.Parameter {
	return nodes.NewIndexedParameter(p.Name, p.Type, p.Index)
}

// Snapshot is an immutable capture of a Context's text and parameters.
type Snapshot struct {
	text   string
	params []Parameter
}

// NewSnapshot creates a snapshot from text and parameters.
func NewSnapshot(text string, params ...Parameter) Snapshot {
	return Snapshot{text: text, params: append([]Parameter(nil), params...)}
}

// Text returns the captured text.
func (s Snapshot) Text() string { return s.text }

func (s Snapshot) String() string { return s.text }

// Parameters returns a copy of the captured parameters.
func (s Snapshot) Parameters() []Parameter {
	out := make([]Parameter, len(s.params))
	copy(out, s.params)
	return out
}

func (s Snapshot) paramNodes() []*nodes.Parameter {
	out := make([]*nodes.Parameter, len(s.params))
	for i, p := range s.params {
		out[i] = p.Node()
	}
	return out
}

// AsExpr wraps the snapshot as a raw expression of type t.
func (s Snapshot) AsExpr(t exprtype.Type) *nodes.RawExpr {
	return nodes.NewRawExpr(s.text, t, s.paramNodes()...)
}

// AsCondition wraps the snapshot as a raw condition.
func (s Snapshot) AsCondition() *nodes.RawCondition {
	return nodes.NewRawCondition(s.text, s.paramNodes()...)
}

// AsStatement wraps the snapshot as a raw statement.
func (s Snapshot) AsStatement() *nodes.RawStatement {
	return nodes.NewRawStatement(s.text, s.paramNodes()...)
}

// AsQuery wraps the snapshot as a raw query.
func (s Snapshot) AsQuery() *nodes.RawQuery {
	return nodes.NewRawQuery(s.text, s.paramNodes()...)
}

// AsRecordSet wraps the snapshot as a raw record set with an alias.
func (s Snapshot) AsRecordSet(alias string) *nodes.RawRecordSet {
	return nodes.NewRawRecordSet(s.text, alias, s.paramNodes()...)
}
