package build

import (
	"context"
	"jfront/ast"
	"jfront/depm"
	"jfront/logging"
	"jfront/mods"
	"jfront/syntax"

	"github.com/viant/afs"
)

// NewBatchLoader creates the class loader of a batch: the built-in core
// classes plus every stub document on the batch's classpath.
func NewBatchLoader(ctx context.Context, fs afs.Service, batch *mods.Batch) (*depm.StubLoader, error) {
	loader := depm.NewStubLoader()
	if err := loader.LoadClasspath(ctx, fs, batch.Classpath); err != nil {
		return nil, err
	}

	return loader, nil
}

// unitResult is the outcome of loading a single unit document.
type unitResult struct {
	index int
	unit  *ast.CompilationUnit
	err   error
}

// loadUnits loads and decodes the unit documents at the given URLs
// concurrently.  The units are returned in the order of the URLs so that
// diagnostics are reproducible.  Every document that fails to load is
// reported.
func loadUnits(ctx context.Context, fs afs.Service, URLs []string) ([]*ast.CompilationUnit, bool) {
	uchan := make(chan unitResult)
	for i, URL := range URLs {
		go func(i int, URL string) {
			cu, err := syntax.LoadUnit(ctx, fs, URL)
			uchan <- unitResult{index: i, unit: cu, err: err}
		}(i, URL)
	}

	units := make([]*ast.CompilationUnit, len(URLs))
	errs := make([]error, len(URLs))
	for range URLs {
		res := <-uchan
		units[res.index], errs[res.index] = res.unit, res.err
	}

	ok := true
	for _, err := range errs {
		if err != nil {
			logging.LogConfigError("Unit", err.Error())
			ok = false
		}
	}

	return units, ok
}
