package build

import (
	"context"
	"jfront/ast"
	"jfront/depm"
	"jfront/logging"
	"jfront/mods"
	"jfront/walk"

	"github.com/viant/afs"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of a batch compilation
type Compiler struct {
	// batch is the batch being compiled.  It is nil when units are analyzed
	// directly.
	batch *mods.Batch

	// table is the class table shared by every unit of the batch
	table *depm.ClassTable

	// reg is the dependency registry filled by the declaration pass
	reg *depm.Registry

	// contexts holds the compilation context of every declared unit in batch
	// order
	contexts []*depm.CompilationContext
}

// NewCompiler creates a new compiler for a batch whose classes outside the
// batch are served by loader
func NewCompiler(batch *mods.Batch, loader depm.Loader) *Compiler {
	table := depm.NewClassTable(loader)

	return &Compiler{
		batch: batch,
		table: table,
		reg:   depm.NewRegistry(table),
	}
}

// Table returns the class table of the batch.
func (c *Compiler) Table() *depm.ClassTable {
	return c.table
}

// Analyze loads every unit document of the batch and runs the analysis passes
// over them.  It returns a boolean indicating whether or not analysis was
// successful.
func (c *Compiler) Analyze(ctx context.Context, fs afs.Service) bool {
	logging.LogCompileHeader(c.batch.Name)
	defer logging.LogCompilationFinished()

	logging.LogBeginPhase("Loading")
	units, ok := loadUnits(ctx, fs, c.batch.Sources)
	logging.LogEndPhase()

	if !ok {
		return false
	}

	return c.AnalyzeUnits(units)
}

// AnalyzeUnits runs the three analysis passes over a batch of units.  Pass 1
// declares every unit and registers the types they name.  Pass 2 drains the
// registry, so every unit sees every class of the batch.  Pass 3 walks the
// method bodies and initializers; it only runs if pass 2 reported no errors.
func (c *Compiler) AnalyzeUnits(units []*ast.CompilationUnit) bool {
	// an internal compiler error still closes the current phase
	defer func() {
		if x := recover(); x != nil {
			logging.LogEndPhase()
			panic(x)
		}
	}()

	logging.LogBeginPhase("Declaring")
	for _, cu := range units {
		c.contexts = append(c.contexts, depm.DeclareUnit(c.table, c.reg, cu))
	}
	logging.LogEndPhase()

	if c.thresholdReached() {
		return false
	}

	logging.LogBeginPhase("Resolving")
	before := logging.ErrorCount()
	c.reg.ResolveAll()
	logging.LogEndPhase()

	if logging.ErrorCount() > before || c.thresholdReached() {
		return false
	}

	logging.LogBeginPhase("Checking")
	session := walk.NewSession(c.table)
	for _, ctx := range c.contexts {
		session.AddUnit(ctx)
	}
	session.Walk()
	logging.LogEndPhase()

	return logging.ShouldProceed()
}

// thresholdReached returns whether the error threshold of the batch has been
// reached.  Compilation halts between passes once it is.
func (c *Compiler) thresholdReached() bool {
	if c.batch == nil || c.batch.MaxErrors == 0 {
		return false
	}

	return logging.ErrorCount() >= c.batch.MaxErrors
}
