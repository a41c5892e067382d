// Package ast provides tree-rewrite helpers for collapsing a parser.Match tree into
// a compact abstract syntax tree: Node exposes parent/children/name/text/value/type,
// and the functions in this package splice, rename, and reduce nodes in place.
package ast

import (
	"github.com/ava12/vema"
)

// Type is the closed set of node-type tags a Node can carry.
type Type int

const (
	INVALID Type = iota
	VALUE
	ASSIGNMENT
	EXPRESSION
	STRING_EXPRESSION
)

var typeNames = [...]string{"INVALID", "VALUE", "ASSIGNMENT", "EXPRESSION", "STRING_EXPRESSION"}

func (t Type) String () string {
	if t < 0 || int(t) >= len(typeNames) {
		return "INVALID"
	}
	return typeNames[t]
}

// ValueKind tags which field of Value holds live data.
type ValueKind int

const (
	NoValue ValueKind = iota
	UintValue
	FloatValue
	ScopeValue
	StringValue
)

// Value is a tagged union: a 64-bit unsigned integer, a double, an opaque
// scope handle, or a string. Only the field matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Uint  uint64
	Float float64
	Scope any
	Str   string
}

func UintVal (v uint64) Value  { return Value{Kind: UintValue, Uint: v} }
func FloatVal (v float64) Value { return Value{Kind: FloatValue, Float: v} }
func ScopeVal (v any) Value     { return Value{Kind: ScopeValue, Scope: v} }
func StringVal (v string) Value { return Value{Kind: StringValue, Str: v} }

// Node is an AST node: a weak parent back-reference, an ordered child list,
// a name, raw source text, a tagged value, and a type tag. Nodes form a DAG
// guaranteed acyclic by construction (every splice below either reparents
// existing children or discards a node outright, never introduces a second
// owner).
type Node struct {
	Name     string
	Text     string
	Value    Value
	Type     Type
	Parent   *Node
	Children []*Node
}

// New creates a detached Node with no parent and no children.
func New (name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// AddChild appends c to n's children and sets c's parent to n.
func (n *Node) AddChild (c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// indexInParent returns n's slot in n.Parent.Children, or -1 if n has no parent.
func (n *Node) indexInParent () int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// AstErrors is the error-code band for ast package diagnostics that are returned
// rather than panicked (Literal's unsupported-kind and invalid-number errors); it is
// also available to consumers that want to FormatError their own checks into the
// same numbering scheme.
const AstErrors = vema.AstErrors
