package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/sqltree/nodes"
)

// Color constants for DOT node categories.
const (
	colorTable      = "#6CA6CD" // blue: tables, record sets
	colorAttribute  = "#B0D4E8" // light blue: columns, stars
	colorComparison = "#FFB347" // orange: predicates
	colorLogical    = "#FFEB80" // yellow: AND, OR, NOT
	colorLiteral    = "#D3D3D3" // grey: literals, parameters
	colorJoin       = "#77DD77" // green: joins
	colorOrdering   = "#CDA0E0" // purple: ordering
	colorAssignment = "#FF6961" // red: DML
	colorArithmetic = "#98FB98" // mint green: operators
	colorFunction   = "#87CEEB" // sky blue: functions, aggregates
	colorTrait      = "#F5DEB3" // wheat: traits
	colorStatement  = "#C0C0C0" // silver: queries, DDL, transactions
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
	src   nodes.Node
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from string
	to   string
}

// dotCluster groups the DOT nodes of some tree nodes into a subgraph.
type dotCluster struct {
	name    string
	color   string
	members []nodes.Node
}

// DotVisitor walks a tree and produces Graphviz DOT output. It is built on
// Base: the enter hook emits a node and an edge from its parent, the leave
// hook pops the parent stack.
type DotVisitor struct {
	*Base
	nextID   int
	nodes    []dotNode
	edges    []dotEdge
	stack    []string
	clusters []dotCluster
}

// NewDotVisitor creates a new DotVisitor ready to walk a tree.
func NewDotVisitor() *DotVisitor {
	dv := &DotVisitor{}
	dv.Base = NewBase(nil, WithEnter(dv.enter), WithLeave(dv.leave))
	return dv
}

// AddCluster draws every occurrence of members inside a dashed subgraph
// named name. Plugins use it to highlight the nodes they injected.
func (dv *DotVisitor) AddCluster(name, color string, members ...nodes.Node) {
	if len(members) > 0 {
		dv.clusters = append(dv.clusters, dotCluster{name: name, color: color, members: members})
	}
}

// NodeCount returns the number of nodes accumulated so far.
func (dv *DotVisitor) NodeCount() int {
	return len(dv.nodes)
}

func (dv *DotVisitor) enter(n nodes.Node) bool {
	id := fmt.Sprintf("n%d", dv.nextID)
	dv.nextID++
	dv.nodes = append(dv.nodes, dotNode{id: id, label: dotLabel(n), color: dotColor(n), src: n})
	if len(dv.stack) > 0 {
		dv.edges = append(dv.edges, dotEdge{from: dv.stack[len(dv.stack)-1], to: id})
	}
	dv.stack = append(dv.stack, id)
	return true
}

func (dv *DotVisitor) leave(nodes.Node) {
	dv.stack = dv.stack[:len(dv.stack)-1]
}

func (dv *DotVisitor) clusterOf(n nodes.Node) int {
	for i, c := range dv.clusters {
		for _, m := range c.members {
			if m == n {
				return i
			}
		}
	}
	return -1
}

// ToDot generates the complete DOT graph text.
func (dv *DotVisitor) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	grouped := make([][]dotNode, len(dv.clusters))
	for _, n := range dv.nodes {
		if i := dv.clusterOf(n.src); i >= 0 {
			grouped[i] = append(grouped[i], n)
			continue
		}
		fmt.Fprintf(&sb, "  %s [label=\"%s\", fillcolor=\"%s\"];\n", n.id, escapeLabel(n.label), n.color)
	}

	for i, c := range dv.clusters {
		fmt.Fprintf(&sb, "  subgraph cluster_%d_%s {\n", i, c.name)
		fmt.Fprintf(&sb, "    label=\"%s\";\n", escapeLabel(c.name))
		sb.WriteString("    style=dashed;\n")
		fmt.Fprintf(&sb, "    color=\"%s\";\n", c.color)
		sb.WriteString("    fontname=\"Helvetica\";\n")
		for _, n := range grouped[i] {
			fmt.Fprintf(&sb, "    %s [label=\"%s\", fillcolor=\"%s\"];\n", n.id, escapeLabel(n.label), n.color)
		}
		sb.WriteString("  }\n")
	}

	for _, e := range dv.edges {
		fmt.Fprintf(&sb, "  %s -> %s;\n", e.from, e.to)
	}

	sb.WriteString("}\n")
	return sb.String()
}

// ToDot renders the tree rooted at n as a DOT graph.
func ToDot(n nodes.Node) string {
	dv := NewDotVisitor()
	if n != nil {
		n.Accept(dv)
	}
	return dv.ToDot()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func qualified(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

// dotLabel is the kind name, plus the node's own data on a second line.
func dotLabel(n nodes.Node) string {
	var detail string
	switch n := n.(type) {
	case *nodes.Literal:
		detail = fmt.Sprint(n.Value)
	case *nodes.Parameter:
		detail = "@" + n.Name
	case *nodes.Column:
		detail = qualified(n.Qualifier, n.Name)
	case *nodes.Star:
		detail = qualified(n.Qualifier, "*")
	case *nodes.Unary:
		detail = n.Op.String()
	case *nodes.Binary:
		detail = n.Op.String()
	case *nodes.Function:
		detail = n.Name
	case *nodes.Aggregate:
		detail = n.Name
	case *nodes.WindowFunction:
		detail = n.Name
	case *nodes.Cast:
		detail = n.TypeName
		if detail == "" {
			detail = n.Target.String()
		}
	case *nodes.Alias:
		detail = n.Name
	case *nodes.Comparison:
		detail = n.Op.String()
	case *nodes.Table:
		detail = qualified(n.Schema, n.Name)
		if n.Alias != "" {
			detail += " AS " + n.Alias
		}
	case *nodes.TableFunction:
		detail = n.Name
	case *nodes.DerivedTable:
		detail = n.Alias
	case *nodes.ValuesTable:
		detail = n.Alias
	case *nodes.Join:
		detail = n.Type.String()
	case *nodes.CommonTableExpr:
		detail = n.Name
	case *nodes.SetOperation:
		detail = n.Op.String()
	case *nodes.RawExpr:
		detail = n.SQL
	case *nodes.RawCondition:
		detail = n.SQL
	case *nodes.RawRecordSet:
		detail = n.SQL
	case *nodes.RawQuery:
		detail = n.SQL
	case *nodes.RawStatement:
		detail = n.SQL
	case *nodes.Window:
		detail = n.Name
	case *nodes.Lock:
		detail = n.Mode.String()
	case *nodes.Comment:
		detail = n.Text
	case *nodes.Hint:
		detail = n.Text
	case *nodes.Assignment:
		detail = n.Column.Name
	case *nodes.ColumnDefinition:
		detail = n.Name
	case *nodes.CreateIndex:
		detail = n.Name
	case *nodes.DropIndex:
		detail = n.Name
	case *nodes.AlterTableDropColumn:
		detail = n.Column
	case *nodes.Savepoint:
		detail = n.Name
	case *nodes.ReleaseSavepoint:
		detail = n.Name
	}
	if detail == "" {
		return n.Kind().String()
	}
	return n.Kind().String() + "\\n" + detail
}

func dotColor(n nodes.Node) string {
	switch n.(type) {
	case *nodes.Column, *nodes.Star:
		return colorAttribute
	case *nodes.Literal, *nodes.Null, *nodes.Parameter, *nodes.Default, *nodes.True, *nodes.False:
		return colorLiteral
	case *nodes.Unary, *nodes.Binary:
		return colorArithmetic
	case *nodes.Function, *nodes.Aggregate, *nodes.WindowFunction, *nodes.Cast:
		return colorFunction
	case *nodes.And, *nodes.Or, *nodes.Not:
		return colorLogical
	case *nodes.Join:
		return colorJoin
	case *nodes.Ordering:
		return colorOrdering
	case *nodes.Insert, *nodes.Update, *nodes.Delete, *nodes.Assignment, *nodes.OnConflict:
		return colorAssignment
	}
	c := nodes.CategoryOf(n)
	switch {
	case c.Has(nodes.CategoryCondition):
		return colorComparison
	case c.Has(nodes.CategoryRecordSet), c.Has(nodes.CategoryDataSource):
		return colorTable
	case c.Has(nodes.CategoryTrait):
		return colorTrait
	case c.Has(nodes.CategoryStatement):
		return colorStatement
	}
	return colorLiteral
}
