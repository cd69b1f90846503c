package depm

import (
	"fmt"
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
	"strings"
)

// RefKind is the kind of an unresolved type reference.  The kind decides the
// diagnostic reported if the reference never resolves.
type RefKind int

// Enumeration of reference kinds.
const (
	RefSuper        RefKind = iota // superclass of a class
	RefInterface                   // superinterface of a class or interface
	RefField                       // type of a field
	RefMethod                      // argument type of a method or constructor
	RefMethodReturn                // return type of a method
	RefMethodEnd                   // end of a method signature
	RefParm                        // type of a formal parameter variable
	RefVariable                    // type named inside a method body
	RefException                   // type in a throws clause
)

// IncompleteTypeRef is one occurrence of a type name that is resolved once the
// whole batch has been declared.
type IncompleteTypeRef struct {
	Kind RefKind

	// Name and Dims give the type as written.
	Name string
	Dims int

	// Context and Pos locate the reference for lookup and diagnostics.
	Context *CompilationContext
	Pos     *logging.TextPosition

	// Class is the class the reference occurs in.  Method is the method or
	// constructor the reference belongs to, if any.
	Class  *types.ClassEntry
	Method *types.MethodEntry

	// Subject names the declaration that uses the type (field, parameter or
	// variable name) for diagnostics.
	Subject string

	// Slot is the patch slot: it holds the placeholder until the reference
	// is resolved.
	Slot *types.Type

	// TypeRef is the node the reference was written as.  Its resolution slot
	// is filled along with Slot.
	TypeRef *ast.TypeRef

	// placeholder is the value written into the slot at registration.
	placeholder *types.OpaqueType
}

// Registry is the dependency registry.  It records every occurrence of a type
// name during declaration and is drained once every unit of the batch has
// been declared so that forward and mutual references anywhere in the batch
// resolve.
type Registry struct {
	table   *ClassTable
	entries []*IncompleteTypeRef

	// units lists the contexts of all declared units in declaration order.
	units []*CompilationContext

	// owners maps declared classes onto the context of their unit.
	owners map[*types.ClassEntry]*CompilationContext

	// methodOpen tracks methods whose signature chain has been started but
	// not yet terminated.
	methodOpen map[*types.MethodEntry]struct{}
}

// NewRegistry creates a new dependency registry over a class table.
func NewRegistry(table *ClassTable) *Registry {
	return &Registry{
		table:      table,
		owners:     make(map[*types.ClassEntry]*CompilationContext),
		methodOpen: make(map[*types.MethodEntry]struct{}),
	}
}

// AddUnit records the context of a declared unit.
func (r *Registry) AddUnit(ctx *CompilationContext) {
	r.units = append(r.units, ctx)
}

// addClass records the unit a declared class belongs to.
func (r *Registry) addClass(ctx *CompilationContext, entry *types.ClassEntry) {
	r.owners[entry] = ctx
}

// Len returns the number of pending references.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Register records a reference and writes a placeholder into its slot.  The
// placeholder is returned.  Registration always succeeds.
func (r *Registry) Register(ref *IncompleteTypeRef) types.Type {
	switch ref.Kind {
	case RefMethod, RefMethodReturn, RefException:
		if ref.Method == nil {
			logging.LogFatal("method reference to `%s` registered without a method", ref.Name)
		}

		r.methodOpen[ref.Method] = struct{}{}
	case RefMethodEnd:
		logging.LogFatal("method end marker registered as a type reference")
	}

	ref.placeholder = &types.OpaqueType{Name: ref.Name, Dims: ref.Dims}
	if ref.Slot != nil {
		*ref.Slot = ref.placeholder
	}

	r.entries = append(r.entries, ref)
	return ref.placeholder
}

// EndMethod terminates the signature chain of a method.  Every method gets
// exactly one end marker: its descriptor is recomputed once all the parts of
// its signature are resolved.
func (r *Registry) EndMethod(ctx *CompilationContext, method *types.MethodEntry) {
	delete(r.methodOpen, method)

	r.entries = append(r.entries, &IncompleteTypeRef{
		Kind:    RefMethodEnd,
		Context: ctx,
		Pos:     method.DeclPos,
		Class:   method.Owner,
		Method:  method,
	})
}

// -----------------------------------------------------------------------------

// ResolveAll drains the registry.  References are resolved in declaration
// order, supertypes first so that member classes inherited through them are
// visible to the remaining references.  Every reference that cannot be
// resolved is reported and the walk continues: all missing classes of the
// batch are reported in one pass.
func (r *Registry) ResolveAll() {
	if len(r.methodOpen) > 0 {
		for method := range r.methodOpen {
			logging.LogFatal("signature of `%s` has no end marker", method.Repr())
		}
	}

	r.checkImports()

	var rest []*IncompleteTypeRef
	for _, ref := range r.entries {
		if ref.Kind == RefSuper || ref.Kind == RefInterface {
			r.resolve(ref)
		} else {
			rest = append(rest, ref)
		}
	}

	r.checkHierarchy()

	for _, ref := range rest {
		r.resolve(ref)
	}

	for _, entry := range r.table.Declared() {
		entry.Complete = true
	}

	r.entries = nil
}

// resolve resolves a single reference.
func (r *Registry) resolve(ref *IncompleteTypeRef) {
	if ref.Pos == nil {
		logging.LogFatal("registry entry for `%s` has no source location", ref.Name)
	}

	if ref.Kind == RefMethodEnd {
		r.endMethod(ref)
		return
	}

	// the slot may have been patched through another path; a slot is only
	// ever written once
	if ref.Slot != nil && *ref.Slot != types.Type(ref.placeholder) {
		logging.LogFatal("patch slot for `%s` at %s was overwritten", ref.Name, ref.Pos)
	}

	typ, ambiguous := ref.Context.ResolveTypeName(ref.scope(), ref.Name, ref.Dims)
	if typ == nil {
		if len(ambiguous) > 0 {
			ref.Context.Error(
				ref.Pos,
				logging.LMKImport,
				"reference to `%s` is ambiguous: `%s` all match",
				ref.Name,
				strings.Join(ambiguous, "`, `"),
			)
		} else {
			ref.Context.Error(ref.Pos, logging.LMKName, ref.notFoundMessage())
		}

		// an unresolved superclass degrades to the root class
		if ref.Kind == RefSuper {
			r.patch(ref, r.table.rootType(ref.Class))
		} else {
			r.patch(ref, types.Error)
		}

		return
	}

	r.patch(ref, typ)
}

// scope returns the class whose member classes are in scope for the reference:
// a class's supertypes are resolved from its enclosing class.
func (ref *IncompleteTypeRef) scope() *types.ClassEntry {
	if ref.Kind == RefSuper || ref.Kind == RefInterface {
		return ref.Class.Outer
	}

	return ref.Class
}

// patch writes the resolved type into the slot of the reference.
func (r *Registry) patch(ref *IncompleteTypeRef, typ types.Type) {
	if ref.Slot != nil {
		*ref.Slot = typ
	}

	if ref.TypeRef != nil && ref.Slot != &ref.TypeRef.Resolved {
		ref.TypeRef.Resolved = typ
	}
}

// notFoundMessage returns the kind-specific diagnostic for a reference that
// never resolves.
func (ref *IncompleteTypeRef) notFoundMessage() string {
	switch ref.Kind {
	case RefSuper:
		return fmt.Sprintf("superclass `%s` of class `%s` not found", ref.Name, ref.Class.Name)
	case RefInterface:
		return fmt.Sprintf("interface `%s` of `%s` not found", ref.Name, ref.Class.Name)
	case RefField:
		return fmt.Sprintf("type `%s` of field `%s` not found", ref.Name, ref.Subject)
	case RefMethod:
		return fmt.Sprintf("type `%s` of argument `%s` of `%s` not found", ref.Name, ref.Subject, ref.Method.Name)
	case RefMethodReturn:
		return fmt.Sprintf("return type `%s` of method `%s` not found", ref.Name, ref.Method.Name)
	case RefParm:
		return fmt.Sprintf("type `%s` of parameter `%s` not found", ref.Name, ref.Subject)
	case RefException:
		return fmt.Sprintf("class `%s` in throws clause of `%s` not found", ref.Name, ref.Method.Name)
	default:
		if ref.Subject != "" {
			return fmt.Sprintf("type `%s` of variable `%s` not found", ref.Name, ref.Subject)
		}

		return fmt.Sprintf("class `%s` not found", ref.Name)
	}
}

// endMethod completes the signature of a method: its descriptor is recomputed
// and checked against the other methods of its class.
func (r *Registry) endMethod(ref *IncompleteTypeRef) {
	method := ref.Method
	method.Refresh()

	for _, other := range method.Owner.Methods {
		if other == method {
			break
		}

		if other.Name == method.Name && other.ArgSignature() == method.ArgSignature() {
			what := "method"
			if method.IsConstructor {
				what = "constructor"
			}

			ref.Context.Error(
				ref.Pos,
				logging.LMKDef,
				"%s `%s` is already defined in class `%s`",
				what,
				method.Repr(),
				method.Owner.Name,
			)
			return
		}
	}

	for _, exc := range method.Throws {
		if ee, ok := types.AsClass(exc); ok && !ee.IsThrowable() {
			ref.Context.Error(ref.Pos, logging.LMKTyping, "class `%s` in throws clause is not throwable", ee.Name)
		}
	}
}

// -----------------------------------------------------------------------------

// checkImports validates the imports of every unit.  A single-type import
// must name a class; an on-demand import must name a package or a class.
func (r *Registry) checkImports() {
	for _, ctx := range r.units {
		for _, imp := range ctx.Unit.Imports {
			if imp.OnDemand {
				if !r.table.HasPackage(imp.Name) && r.table.Lookup(imp.Name) == nil {
					ctx.Error(imp.Position(), logging.LMKImport, "package `%s` not found", imp.Name)
				}
			} else if r.table.Lookup(imp.Name) == nil {
				ctx.Error(imp.Position(), logging.LMKImport, "imported class `%s` not found", imp.Name)
			}
		}
	}
}

// checkHierarchy checks the resolved supertypes of every declared class:
// classes extend classes, interfaces are implemented, final classes are not
// extended and the inheritance graph is acyclic.  Offending edges are
// replaced so that later lookups through them terminate.
func (r *Registry) checkHierarchy() {
	for _, entry := range r.table.Declared() {
		ctx := r.owners[entry]

		if sup, ok := types.AsClass(entry.Super); ok {
			switch {
			case sup.IsInterface:
				ctx.Error(entry.DeclPos, logging.LMKInherit, "class `%s` cannot extend interface `%s`", entry.Name, sup.Name)
				entry.Super = r.table.rootType(entry)
			case sup.IsFinal():
				ctx.Error(entry.DeclPos, logging.LMKInherit, "cannot inherit from final class `%s`", sup.Name)
			}
		}

		for i, it := range entry.Interfaces {
			if ie, ok := types.AsClass(it); ok && !ie.IsInterface {
				if entry.IsInterface {
					ctx.Error(entry.DeclPos, logging.LMKInherit, "interface `%s` cannot extend class `%s`", entry.Name, ie.Name)
				} else {
					ctx.Error(entry.DeclPos, logging.LMKInherit, "`%s` is not an interface and cannot be implemented", ie.Name)
				}

				entry.Interfaces[i] = types.Error
			}
		}
	}

	for _, entry := range r.table.Declared() {
		if r.inCycle(entry) {
			r.owners[entry].Error(entry.DeclPos, logging.LMKInherit, "cyclic inheritance involving `%s`", entry.Name)

			if entry.IsInterface {
				entry.Interfaces = nil
			} else {
				entry.Super = r.table.rootType(entry)
			}
		}
	}
}

// inCycle returns whether entry is its own (transitive) supertype.
func (r *Registry) inCycle(entry *types.ClassEntry) bool {
	visited := make(map[*types.ClassEntry]struct{})

	var visit func(c *types.ClassEntry) bool
	visit = func(c *types.ClassEntry) bool {
		supers := c.SuperInterfaces()
		if sup := c.SuperClass(); sup != nil {
			supers = append(supers, sup)
		}

		for _, sup := range supers {
			if sup == entry {
				return true
			}

			if _, ok := visited[sup]; ok {
				continue
			}
			visited[sup] = struct{}{}

			if visit(sup) {
				return true
			}
		}

		return false
	}

	return visit(entry)
}
