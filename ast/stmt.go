package ast

import "jfront/types"

// Stmt represents a statement.  The set of implementations is closed by the
// unexported marker.
type Stmt interface {
	Node

	stmtNode()
}

// StmtBase is the base struct for all statements.
type StmtBase struct {
	NodeBase
}

func (*StmtBase) stmtNode() {}

// Block is a braced sequence of statements.
type Block struct {
	StmtBase

	Stmts []Stmt
}

// LocalVarDecl declares one or more local variables sharing a type.
type LocalVarDecl struct {
	StmtBase

	Type  *TypeRef
	Final bool
	Vars  []*VarDeclarator
}

// VarDeclarator is a single variable in a local variable declaration.
type VarDeclarator struct {
	NodeBase

	Name string
	Init Expr

	// Var is the local variable introduced by the declarator.
	Var *LocalVar
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	StmtBase

	Expr Expr
}

// If is an if statement; Else may be nil.
type If struct {
	StmtBase

	Cond Expr
	Then Stmt
	Else Stmt
}

// While is a while loop.
type While struct {
	StmtBase

	Cond Expr
	Body Stmt
}

// DoWhile is a do-while loop.
type DoWhile struct {
	StmtBase

	Body Stmt
	Cond Expr
}

// For is a basic for loop; Cond may be nil.
type For struct {
	StmtBase

	Init   []Stmt
	Cond   Expr
	Update []Expr
	Body   Stmt
}

// Labeled is a labeled statement.
type Labeled struct {
	StmtBase

	Label string
	Body  Stmt
}

// Break is a break statement.  Label is empty for unlabeled breaks.
type Break struct {
	StmtBase

	Label string

	// Target is the statement the break exits.
	Target Stmt
}

// Continue is a continue statement.  Label is empty for unlabeled continues.
type Continue struct {
	StmtBase

	Label string

	// Target is the loop the continue resumes.
	Target Stmt
}

// Return is a return statement; Value is nil for `return;`.
type Return struct {
	StmtBase

	Value Expr
}

// Throw is a throw statement.
type Throw struct {
	StmtBase

	Value Expr
}

// Try is a try statement with optional catch clauses and finally block.
type Try struct {
	StmtBase

	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

// CatchClause is a single catch clause of a try statement.
type CatchClause struct {
	NodeBase

	Type *TypeRef
	Name string
	Body *Block

	Var *LocalVar
}

// Switch is a switch statement.
type Switch struct {
	StmtBase

	Selector Expr
	Cases    []*SwitchCase
}

// SwitchCase is a group of case labels (or default) followed by statements.
type SwitchCase struct {
	NodeBase

	Labels  []Expr
	Default bool
	Body    []Stmt
}

// Synchronized is a synchronized block.
type Synchronized struct {
	StmtBase

	Lock Expr
	Body *Block
}

// Empty is the empty statement `;`.
type Empty struct {
	StmtBase
}

// CtorCall is an explicit constructor invocation `this(...)` or `super(...)`.
// It may only appear as the first statement of a constructor.
type CtorCall struct {
	StmtBase

	Super bool
	Args  []Expr

	// Ctor is the bound constructor.
	Ctor *types.MethodEntry
}
