package ast

import (
	"jfront/logging"
	"jfront/types"
)

// CompilationUnit is a single source file of the batch.
type CompilationUnit struct {
	Path    string
	Package string
	Imports []*Import
	Classes []*ClassDecl
}

// Import is an import declaration: `a.b.C` (single-type) or `a.b.*`
// (on-demand, in which case Name is the package or class name).
type Import struct {
	NodeBase

	Name     string
	OnDemand bool
}

// ClassDecl is a class or interface declaration.
type ClassDecl struct {
	NodeBase

	Name      string
	Modifiers int
	Interface bool

	// Super is nil when the class has no extends clause.
	Super      *TypeRef
	Interfaces []*TypeRef

	Fields       []*FieldDecl
	Methods      []*MethodDecl
	Initializers []*Initializer
	Classes      []*ClassDecl

	// Entry is the class table entry created for the declaration.
	Entry *types.ClassEntry
}

// FieldDecl is a single field declaration.
type FieldDecl struct {
	NodeBase

	Modifiers int
	Type      *TypeRef
	Name      string
	Init      Expr

	Entry *types.FieldEntry
}

// MethodDecl is a method or constructor declaration.
type MethodDecl struct {
	NodeBase

	Name        string
	Modifiers   int
	Constructor bool

	// Return is nil for void methods and constructors.
	Return *TypeRef
	Params []*Param
	Throws []*TypeRef

	// Body is nil for abstract and native methods.
	Body *Block

	// Synthetic marks declarations created by the compiler.
	Synthetic bool

	Entry *types.MethodEntry
}

// Param is a formal parameter.
type Param struct {
	NodeBase

	Type  *TypeRef
	Name  string
	Final bool

	Var *LocalVar
}

// Initializer is an instance or static initializer block.
type Initializer struct {
	NodeBase

	Static bool
	Body   *Block
}

// NewBlock creates a new block statement.
func NewBlock(pos *logging.TextPosition, stmts []Stmt) *Block {
	return &Block{StmtBase: StmtBase{NodeBase: NewNodeBase(pos)}, Stmts: stmts}
}
