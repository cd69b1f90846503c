package depm

import (
	"jfront/common"
	"jfront/types"
	"strings"
)

// LookupClass resolves a simple or qualified class name as seen from scope,
// the innermost enclosing class (which may be nil).  Simple names are looked
// up in order among the member classes of the enclosing classes, the classes
// of the unit, the single-type imports, the classes of the same package and
// finally the on-demand imports.  If the name is ambiguous, no entry is
// returned and the competing qualified names are.
func (ctx *CompilationContext) LookupClass(scope *types.ClassEntry, name string) (*types.ClassEntry, []string) {
	if !strings.Contains(name, ".") {
		return ctx.lookupSimple(scope, name)
	}

	segs := strings.Split(name, ".")

	// the first segment may name a class in scope whose member classes the
	// rest of the name selects
	if first, ambiguous := ctx.lookupSimple(scope, segs[0]); first != nil {
		return lookupMember(first, segs[1:]), nil
	} else if len(ambiguous) > 0 {
		return nil, ambiguous
	}

	return ctx.Table.Lookup(name), nil
}

// lookupSimple resolves a simple class name.
func (ctx *CompilationContext) lookupSimple(scope *types.ClassEntry, name string) (*types.ClassEntry, []string) {
	for c := scope; c != nil; c = c.Outer {
		if nested := c.LookupNested(name); nested != nil {
			return nested, nil
		}

		if c.SimpleName == name {
			return c, nil
		}
	}

	if entry, ok := ctx.Classes[name]; ok {
		return entry, nil
	}

	if imp, ok := ctx.SingleImports[name]; ok {
		return ctx.Table.Lookup(imp.Name), nil
	}

	if entry := ctx.Table.Lookup(common.JoinQualified(ctx.Package, name)); entry != nil {
		return entry, nil
	}

	var matches []*types.ClassEntry
	for _, imp := range ctx.OnDemandImports {
		var found *types.ClassEntry
		if owner := ctx.Table.Lookup(imp.Name); owner != nil {
			found = owner.LookupNested(name)
		} else {
			found = ctx.Table.Lookup(imp.Name + "." + name)
		}

		if found != nil && !containsClass(matches, found) {
			matches = append(matches, found)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	}

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Name
	}

	return nil, names
}

// lookupMember selects a chain of member classes starting at entry.
func lookupMember(entry *types.ClassEntry, segs []string) *types.ClassEntry {
	for _, seg := range segs {
		if entry = entry.LookupNested(seg); entry == nil {
			return nil
		}
	}

	return entry
}

func containsClass(entries []*types.ClassEntry, entry *types.ClassEntry) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}

	return false
}

// ResolveTypeName resolves a type as written into a type: either a primitive
// or a class, with array dimensions applied.  It returns nil (and the
// competing names, if any) if the class cannot be found.
func (ctx *CompilationContext) ResolveTypeName(scope *types.ClassEntry, name string, dims int) (types.Type, []string) {
	if pt, ok := types.LookupPrimitive(name); ok {
		return types.MakeArray(pt, dims), nil
	}

	entry, ambiguous := ctx.LookupClass(scope, name)
	if entry == nil {
		return nil, ambiguous
	}

	return types.MakeArray(entry.Type(), dims), nil
}
