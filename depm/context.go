package depm

import (
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
)

// CompilationContext is the per-file resolution state: the package of the
// unit, its imports and the classes it declares.  A context is created when
// the unit is declared and stays live for the whole batch.
type CompilationContext struct {
	// Unit is the compilation unit the context belongs to.
	Unit *ast.CompilationUnit

	// LogContext is the context used for diagnostics in the unit.
	LogContext *logging.LogContext

	// Package is the package of the unit.
	Package string

	// SingleImports maps the simple names of single-type imports onto the
	// imported qualified names.
	SingleImports map[string]*ast.Import

	// OnDemandImports lists the packages (or classes) imported on demand.
	// The core package is always imported on demand.
	OnDemandImports []*ast.Import

	// Classes maps the simple names of the unit's top-level classes onto
	// their entries.
	Classes map[string]*types.ClassEntry

	// Table is the class table shared by all contexts of the batch.
	Table *ClassTable
}

// NewCompilationContext creates a new compilation context for a unit.
func NewCompilationContext(table *ClassTable, cu *ast.CompilationUnit) *CompilationContext {
	return &CompilationContext{
		Unit:          cu,
		LogContext:    &logging.LogContext{FilePath: cu.Path},
		Package:       cu.Package,
		SingleImports: make(map[string]*ast.Import),
		OnDemandImports: []*ast.Import{
			{Name: common.LangPackage, OnDemand: true},
		},
		Classes: make(map[string]*types.ClassEntry),
		Table:   table,
	}
}

// Error reports a compile error in the unit.
func (ctx *CompilationContext) Error(pos *logging.TextPosition, kind int, msg string, args ...interface{}) {
	logging.LogCompileError(ctx.LogContext, sprintf(msg, args...), kind, pos)
}
