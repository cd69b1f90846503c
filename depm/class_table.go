package depm

import (
	"fmt"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
	"strings"
)

// ClassTable is the process-wide table of classes keyed by qualified name.
// Entries are created on first reference, not on first declaration: every
// reference to a class shares the same entry, which is filled in once the
// declaration is seen (in the batch or through the loader).
type ClassTable struct {
	// classes maps qualified names onto entries, loaded or not.
	classes map[string]*types.ClassEntry

	// notFound is the set of names the loader failed to find so that the
	// loader is asked at most once per name.
	notFound map[string]struct{}

	// packages is the set of packages declared by units in the batch.
	packages map[string]struct{}

	// declared lists the classes declared in the batch in declaration order.
	declared []*types.ClassEntry

	loader Loader
}

// NewClassTable creates a new class table backed by the given loader.
func NewClassTable(loader Loader) *ClassTable {
	return &ClassTable{
		classes:  make(map[string]*types.ClassEntry),
		notFound: make(map[string]struct{}),
		packages: make(map[string]struct{}),
		loader:   loader,
	}
}

// Get returns the entry for the given qualified name, creating an unloaded
// placeholder if the name has never been referenced.
func (ct *ClassTable) Get(name string) *types.ClassEntry {
	if entry, ok := ct.classes[name]; ok {
		return entry
	}

	entry := types.NewClassEntry(name)
	ct.classes[name] = entry
	return entry
}

// Declare marks the entry for a class declared in the batch as loaded.  It
// returns false if the class was already declared.
func (ct *ClassTable) Declare(name string) (*types.ClassEntry, bool) {
	entry := ct.Get(name)
	if entry.Loaded {
		return entry, false
	}

	entry.Loaded = true
	ct.declared = append(ct.declared, entry)
	ct.packages[entry.Package] = struct{}{}
	return entry, true
}

// Declared returns the classes declared in the batch in declaration order.
func (ct *ClassTable) Declared() []*types.ClassEntry {
	return ct.declared
}

// AddPackage records a package declared by a unit in the batch.
func (ct *ClassTable) AddPackage(name string) {
	for name != "" {
		ct.packages[name] = struct{}{}
		name, _ = common.SplitQualified(name)
	}
}

// HasPackage returns whether a package of the given name exists.
func (ct *ClassTable) HasPackage(name string) bool {
	if _, ok := ct.packages[name]; ok {
		return true
	}

	if ct.loader.HasPackage(name) {
		return true
	}

	// a package also exists if it is a prefix of a known package
	prefix := name + "."
	for pkg := range ct.packages {
		if strings.HasPrefix(pkg, prefix) {
			return true
		}
	}

	return false
}

// Lookup returns the loaded entry for the class with the given qualified name
// or nil if no such class exists.  Classes not declared in the batch are
// requested from the loader and laid out eagerly: their supertypes and member
// types are loaded along with them.
func (ct *ClassTable) Lookup(name string) *types.ClassEntry {
	if entry, ok := ct.classes[name]; ok && entry.Loaded {
		return entry
	}

	if _, ok := ct.notFound[name]; ok {
		return nil
	}

	loaded, err := ct.loader.LoadClass(name)
	if err != nil {
		logging.LogConfigError("Class Loader", err.Error())
	}

	if loaded == nil {
		ct.notFound[name] = struct{}{}
		return nil
	}

	// member classes are always loaded along with their outermost class
	for loaded.Outer != nil {
		loaded = loaded.Outer
	}

	ct.layout(ct.adopt(loaded))

	if entry, ok := ct.classes[name]; ok && entry.Loaded {
		return entry
	}

	ct.notFound[name] = struct{}{}
	return nil
}

// adopt moves a loaded class into the table entry for its name so that every
// prior reference to the class sees the declaration.
func (ct *ClassTable) adopt(loaded *types.ClassEntry) *types.ClassEntry {
	entry := ct.Get(loaded.Name)
	nested := loaded.Nested

	*entry = *loaded
	entry.Loaded = true
	entry.Nested = make(map[string]*types.ClassEntry)

	for _, field := range entry.Fields {
		field.Owner = entry
	}

	for _, method := range entry.Methods {
		method.Owner = entry
	}

	for simple, ne := range nested {
		nestedEntry := ct.adopt(ne)
		nestedEntry.Outer = entry
		entry.Nested[simple] = nestedEntry
	}

	return entry
}

// layout resolves the placeholder types of a loaded class.  The class is
// marked complete before its member types are resolved so that cyclic
// references between loaded classes terminate.
func (ct *ClassTable) layout(entry *types.ClassEntry) {
	if entry.Complete {
		return
	}
	entry.Complete = true

	if entry.Super != nil {
		entry.Super = ct.resolveLoaded(entry, entry.Super)

		if _, ok := types.AsClass(entry.Super); !ok {
			entry.Super = ct.rootType(entry)
		}
	}

	for i, it := range entry.Interfaces {
		entry.Interfaces[i] = ct.resolveLoaded(entry, it)
	}

	for _, field := range entry.Fields {
		field.Type = ct.resolveLoaded(entry, field.Type)
	}

	for _, method := range entry.Methods {
		for i, param := range method.Params {
			method.Params[i] = ct.resolveLoaded(entry, param)
		}

		method.Return = ct.resolveLoaded(entry, method.Return)

		for i, exc := range method.Throws {
			method.Throws[i] = ct.resolveLoaded(entry, exc)
		}

		method.Refresh()
	}

	for _, nested := range entry.Nested {
		ct.layout(nested)
	}
}

// rootType returns the type of the universal root class or nil if entry is
// the root class itself.
func (ct *ClassTable) rootType(entry *types.ClassEntry) types.Type {
	if entry.Name == common.ObjectClass {
		return nil
	}

	if root := ct.Lookup(common.ObjectClass); root != nil {
		return root.Type()
	}

	logging.LogFatal("the universal root class `%s` is not available", common.ObjectClass)
	return nil
}

// resolveLoaded resolves a placeholder type inside a loaded class.  Names are
// tried as written, then in the package of the class, then in the core
// package.
func (ct *ClassTable) resolveLoaded(entry *types.ClassEntry, typ types.Type) types.Type {
	ot, ok := typ.(*types.OpaqueType)
	if !ok {
		return typ
	}

	candidates := []string{ot.Name}
	if !strings.Contains(ot.Name, ".") {
		candidates = append(candidates, common.JoinQualified(entry.Package, ot.Name), common.JoinQualified(common.LangPackage, ot.Name))
	}

	for _, name := range candidates {
		if found := ct.Lookup(name); found != nil {
			return types.MakeArray(found.Type(), ot.Dims)
		}
	}

	logging.LogBuildWarning(
		"Class Loader",
		fmt.Sprintf("class `%s` referenced by `%s` could not be loaded", ot.Name, entry.Name),
	)

	return types.Error
}
