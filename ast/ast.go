package ast

import (
	"jfront/logging"
	"jfront/types"
)

// Node is the abstract interface for all AST nodes.  Every node produced by
// the parser carries a source location.
type Node interface {
	// Position returns the spanning position of the node.
	Position() *logging.TextPosition
}

// NodeBase is a utility base struct for all AST nodes.
type NodeBase struct {
	pos *logging.TextPosition
}

// NewNodeBase creates a new node base at the given position.
func NewNodeBase(pos *logging.TextPosition) NodeBase {
	return NodeBase{pos: pos}
}

func (nb *NodeBase) Position() *logging.TextPosition {
	return nb.pos
}

// -----------------------------------------------------------------------------

// TypeRef is a type as written in source code: a primitive keyword or a
// (possibly qualified) class name followed by array dimensions.
type TypeRef struct {
	NodeBase

	Name string
	Dims int

	// Resolved is the resolution slot of the reference.  During declaration
	// it may hold an OpaqueType placeholder that the dependency registry
	// patches in place.
	Resolved types.Type
}

// NewTypeRef creates a new type reference.
func NewTypeRef(pos *logging.TextPosition, name string, dims int) *TypeRef {
	return &TypeRef{NodeBase: NewNodeBase(pos), Name: name, Dims: dims}
}

// Repr returns the type reference as written in source.
func (tr *TypeRef) Repr() string {
	s := tr.Name
	for i := 0; i < tr.Dims; i++ {
		s += "[]"
	}

	return s
}

// -----------------------------------------------------------------------------

// LocalVar is a local variable, parameter or catch parameter.  It is shared by
// the declaring node and every name bound to it.
type LocalVar struct {
	Name    string
	Type    types.Type
	Final   bool
	IsParam bool

	// Initialized is set for locals declared with an initializer.
	Initialized bool

	// Constant is the value of a final local initialized with a constant
	// expression.
	Constant *types.Constant

	DeclPos *logging.TextPosition
}
