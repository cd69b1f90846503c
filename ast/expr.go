package ast

import (
	"jfront/logging"
	"jfront/types"
	"strings"
)

// Expr represents an expression.  All expression nodes implement the `Expr`
// interface; the set of implementations is closed by the unexported marker.
type Expr interface {
	Node

	// Type is the resolved type of the expression or nil if it has not been
	// checked yet.
	Type() types.Type

	// SetType fills the type slot of the expression.  A slot may only ever
	// be set to one type.
	SetType(types.Type)

	// Constant is the compile-time constant value of the expression, if any.
	Constant() *types.Constant

	// SetConstant records the constant value of the expression.
	SetConstant(*types.Constant)

	exprNode()
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	NodeBase

	typ      types.Type
	constant *types.Constant
}

// NewExprBase creates a new expression base at the given position.
func NewExprBase(pos *logging.TextPosition) ExprBase {
	return ExprBase{NodeBase: NewNodeBase(pos)}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	if eb.typ != nil && !types.Equals(eb.typ, typ) {
		logging.LogFatal("type slot of expression at %s set twice (%s, then %s)", eb.pos, eb.typ.Repr(), typ.Repr())
	}

	eb.typ = typ
}

func (eb *ExprBase) Constant() *types.Constant {
	return eb.constant
}

func (eb *ExprBase) SetConstant(c *types.Constant) {
	eb.constant = c
}

func (*ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitBool
	LitNull
)

// Literal is a literal value.  Value holds the literal as written, without
// suffixes or quotes.
type Literal struct {
	ExprBase

	Kind  int
	Value string
}

// -----------------------------------------------------------------------------

// NameKind is the classification of one segment of a qualified name.
type NameKind int

// Enumeration of name classifications.  Classification only moves forward:
// package -> type -> expression.
const (
	NameUnclassified NameKind = iota
	NamePackage
	NameType
	NameExpr
)

func (nk NameKind) String() string {
	switch nk {
	case NamePackage:
		return "package"
	case NameType:
		return "type"
	case NameExpr:
		return "expression"
	}

	return "unclassified"
}

// Name is a dotted identifier chain in expression position such as `a.b.c`.
// Its meaning is decided by the name resolver, segment by segment.
type Name struct {
	ExprBase

	Segments []string

	// Kinds is the classification of each segment.  It is empty until the
	// name has been resolved and then has one entry per segment.
	Kinds []NameKind

	// Local is set when the first segment is a local variable.
	Local *LocalVar

	// Fields holds the field bound at each segment (nil where a segment is
	// not a field access).
	Fields []*types.FieldEntry

	// Class is the class named by the last type segment, if any.
	Class *types.ClassEntry

	// Package is the package prefix named by the leading package segments.
	Package string

	// NeedsReceiver is set when the first field access is an instance field
	// of the enclosing class accessed through an implicit `this`.
	NeedsReceiver bool

	// StaticInit is set when the first field access is a static field of
	// another class (so the code generator must guard class initialization).
	StaticInit bool
}

// String returns the name as written.
func (n *Name) String() string {
	return strings.Join(n.Segments, ".")
}

// Resolved returns whether the name has been classified.
func (n *Name) Resolved() bool {
	return len(n.Kinds) == len(n.Segments)
}

// FinalKind returns the classification of the last segment.
func (n *Name) FinalKind() NameKind {
	if len(n.Kinds) == 0 {
		return NameUnclassified
	}

	return n.Kinds[len(n.Kinds)-1]
}

// Field returns the field bound by the last segment, if any.
func (n *Name) Field() *types.FieldEntry {
	if len(n.Fields) == 0 {
		return nil
	}

	return n.Fields[len(n.Fields)-1]
}

// This is the `this` expression.
type This struct {
	ExprBase
}

// MethodCall is a method invocation.  Receiver is nil for unqualified calls
// and for calls through `super`.
type MethodCall struct {
	ExprBase

	Receiver Expr
	Super    bool
	Name     string
	Args     []Expr

	// Method is the bound method.
	Method *types.MethodEntry
}

// New is a class instance creation expression.
type New struct {
	ExprBase

	Class *TypeRef
	Args  []Expr

	// Ctor is the bound constructor.
	Ctor *types.MethodEntry
}

// NewArray is an array creation expression: `new T[d1][d2][]...` or
// `new T[]{...}`.
type NewArray struct {
	ExprBase

	Elem      *TypeRef
	Dims      []Expr
	ExtraDims int
	Init      *ArrayInit
}

// ArrayInit is an array initializer `{a, b, c}`.
type ArrayInit struct {
	ExprBase

	Elems []Expr
}

// Index is an array access.
type Index struct {
	ExprBase

	Array Expr
	Index Expr
}

// FieldAccess is a field access on an arbitrary primary expression such as
// `f().x` or `super.x`.  Plain dotted names are represented by Name.
type FieldAccess struct {
	ExprBase

	Target Expr
	Super  bool
	Name   string

	// Field is the bound field (nil for `length` of an array).
	Field *types.FieldEntry
}

// Unary is a prefix or postfix unary operator application.
type Unary struct {
	ExprBase

	Op      string
	Operand Expr
	Postfix bool
}

// Binary is a binary operator application.
type Binary struct {
	ExprBase

	Op  string
	LHS Expr
	RHS Expr

	// Concat marks a `+` that was resolved to string concatenation.
	Concat bool
}

// Assign is an assignment; Op is `=` or a compound operator such as `+=`.
type Assign struct {
	ExprBase

	Op  string
	LHS Expr
	RHS Expr
}

// Conditional is the `c ? a : b` operator.
type Conditional struct {
	ExprBase

	Cond Expr
	Then Expr
	Else Expr
}

// Cast is a type cast.
type Cast struct {
	ExprBase

	Target  *TypeRef
	Operand Expr
}

// InstanceOf is the `instanceof` operator.
type InstanceOf struct {
	ExprBase

	Operand Expr
	Target  *TypeRef
}
