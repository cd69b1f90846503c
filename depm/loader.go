package depm

import (
	"context"
	_ "embed"
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/syntax"
	"jfront/types"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
)

// Loader is the class loader collaborator.  It supplies classes that are not
// declared in the batch itself.
type Loader interface {
	// LoadClass returns a new entry for the class with the given qualified
	// name.  A nil entry with a nil error means the class was not found.
	// Named types inside the entry may be OpaqueType placeholders holding
	// qualified names: the class table resolves them when it lays the class
	// out.
	LoadClass(name string) (*types.ClassEntry, error)

	// HasPackage returns whether the loader knows of any class in the named
	// package.
	HasPackage(name string) bool
}

//go:embed universe.yaml
var universeDocument []byte

// StubLoader is a Loader serving class stubs: unit documents whose methods have
// no bodies.  The core classes of the language are always available.
type StubLoader struct {
	// stubs maps qualified class names onto their stub declarations.
	stubs map[string]*classStub

	// packages is the set of packages containing at least one stub.
	packages map[string]struct{}
}

// classStub is a stub declaration along with its location.
type classStub struct {
	decl  *ast.ClassDecl
	pkg   string
	outer string
	path  string
}

// NewStubLoader creates a new stub loader containing only the core classes.
func NewStubLoader() *StubLoader {
	sl := &StubLoader{
		stubs:    make(map[string]*classStub),
		packages: make(map[string]struct{}),
	}

	cu, err := syntax.ParseUnit("<universe>", universeDocument)
	if err != nil {
		logging.LogFatal("failed to load core classes: %s", err)
	}

	sl.AddUnit(cu)
	return sl
}

// LoadClasspath reads every stub document on the classpath.
func (sl *StubLoader) LoadClasspath(ctx context.Context, fs afs.Service, classpath []string) error {
	for _, URL := range classpath {
		cu, err := syntax.LoadUnit(ctx, fs, URL)
		if err != nil {
			return errors.Wrapf(err, "failed to load class stubs from %s", URL)
		}

		sl.AddUnit(cu)
	}

	return nil
}

// AddUnit adds every class of a stub unit to the loader.  Later stubs replace
// earlier ones of the same name.
func (sl *StubLoader) AddUnit(cu *ast.CompilationUnit) {
	// stub documents may hold classes of several packages: the package of a
	// class is given by the unit or by a qualified class name.
	for _, cd := range cu.Classes {
		pkg := cu.Package
		if strings.Contains(cd.Name, ".") {
			pkg, cd.Name = common.SplitQualified(cd.Name)
		}

		sl.addStub(cd, pkg, "", cu.Path)
	}
}

func (sl *StubLoader) addStub(cd *ast.ClassDecl, pkg, outer, path string) {
	var qualName string
	if outer != "" {
		qualName = outer + "." + cd.Name
	} else {
		qualName = common.JoinQualified(pkg, cd.Name)
	}

	sl.stubs[qualName] = &classStub{decl: cd, pkg: pkg, outer: outer, path: path}
	sl.packages[pkg] = struct{}{}

	for _, nested := range cd.Classes {
		sl.addStub(nested, pkg, qualName, path)
	}
}

// HasPackage implements Loader.
func (sl *StubLoader) HasPackage(name string) bool {
	_, ok := sl.packages[name]
	return ok
}

// LoadClass implements Loader.
func (sl *StubLoader) LoadClass(name string) (*types.ClassEntry, error) {
	stub, ok := sl.stubs[name]
	if !ok {
		return nil, nil
	}

	// member classes are built as part of their outermost class
	if stub.outer != "" {
		outer, err := sl.LoadClass(stub.outer)
		if err != nil || outer == nil {
			return nil, err
		}

		return findNested(outer, name), nil
	}

	return sl.buildEntry(name, stub)
}

// findNested finds the member class with the given qualified name in the tree
// of classes rooted at entry.
func findNested(entry *types.ClassEntry, name string) *types.ClassEntry {
	if entry.Name == name {
		return entry
	}

	for _, nested := range entry.Nested {
		if found := findNested(nested, name); found != nil {
			return found
		}
	}

	return nil
}

// buildEntry converts a stub declaration into a class entry.  Nested classes
// are built along with their outer class.
func (sl *StubLoader) buildEntry(name string, stub *classStub) (*types.ClassEntry, error) {
	cd := stub.decl

	entry := types.NewClassEntry(name)
	entry.Package = stub.pkg
	entry.SimpleName = cd.Name
	entry.Modifiers = cd.Modifiers
	entry.IsInterface = cd.Interface
	entry.Binary = true
	entry.Context = &logging.LogContext{FilePath: stub.path}
	entry.DeclPos = cd.Position()

	entry.BinaryName = sl.binaryName(name)

	if cd.Interface {
		entry.Modifiers |= types.ModAbstract
	}

	if cd.Super != nil {
		entry.Super = stubType(cd.Super)
	} else if !cd.Interface && name != common.ObjectClass {
		entry.Super = &types.OpaqueType{Name: common.ObjectClass}
	}

	for _, it := range cd.Interfaces {
		entry.Interfaces = append(entry.Interfaces, stubType(it))
	}

	for i, fd := range cd.Fields {
		mods := fd.Modifiers
		if cd.Interface {
			mods |= types.ModPublic | types.ModStatic | types.ModFinal
		}

		entry.Fields = append(entry.Fields, &types.FieldEntry{
			Name:      fd.Name,
			Type:      stubType(fd.Type),
			Modifiers: mods,
			Owner:     entry,
			Index:     i,
			DeclPos:   fd.Position(),
		})
	}

	for _, md := range cd.Methods {
		if md.Body != nil && len(md.Body.Stmts) > 0 {
			return nil, errors.Errorf("%s: stub method `%s` of `%s` has a body", stub.path, md.Name, name)
		}

		method := &types.MethodEntry{
			Name:          md.Name,
			Modifiers:     md.Modifiers,
			Owner:         entry,
			IsConstructor: md.Constructor,
			Return:        types.Void,
			DeclPos:       md.Position(),
		}

		if md.Constructor {
			method.Name = common.ConstructorName
		} else if md.Return != nil {
			method.Return = stubType(md.Return)
		}

		if cd.Interface {
			method.Modifiers |= types.ModPublic | types.ModAbstract
		}

		for _, param := range md.Params {
			method.Params = append(method.Params, stubType(param.Type))
			method.ParamNames = append(method.ParamNames, param.Name)
		}

		for _, tr := range md.Throws {
			method.Throws = append(method.Throws, stubType(tr))
		}

		entry.Methods = append(entry.Methods, method)
	}

	for _, nested := range cd.Classes {
		nestedName := name + "." + nested.Name
		nestedEntry, err := sl.buildEntry(nestedName, sl.stubs[nestedName])
		if err != nil {
			return nil, err
		}

		nestedEntry.Outer = entry
		entry.Nested[nested.Name] = nestedEntry
	}

	return entry, nil
}

// binaryName computes the binary name of a stub class: nested classes are
// joined to their outer class by `$`.
func (sl *StubLoader) binaryName(name string) string {
	stub, ok := sl.stubs[name]
	if !ok || stub.outer == "" {
		return name
	}

	return sl.binaryName(stub.outer) + "$" + stub.decl.Name
}

// stubType converts a stub type reference into a primitive type or an opaque
// placeholder naming the class.
func stubType(tr *ast.TypeRef) types.Type {
	if pt, ok := types.LookupPrimitive(tr.Name); ok {
		return types.MakeArray(pt, tr.Dims)
	}

	return &types.OpaqueType{Name: tr.Name, Dims: tr.Dims}
}
