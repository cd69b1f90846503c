package types

import (
	"jfront/common"
	"jfront/logging"
	"strings"
)

// Enumeration of declaration modifiers.  These are bit flags.
const (
	ModPublic = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModNative
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
)

// modifierNames maps source keywords onto modifier flags.
var modifierNames = map[string]int{
	"public":       ModPublic,
	"private":      ModPrivate,
	"protected":    ModProtected,
	"static":       ModStatic,
	"final":        ModFinal,
	"abstract":     ModAbstract,
	"native":       ModNative,
	"synchronized": ModSynchronized,
	"transient":    ModTransient,
	"volatile":     ModVolatile,
	"strictfp":     ModStrictfp,
}

// LookupModifier returns the modifier flag named by a keyword.
func LookupModifier(name string) (int, bool) {
	mod, ok := modifierNames[name]
	return mod, ok
}

// VisibilityName returns the keyword for the access level in mods.
func VisibilityName(mods int) string {
	switch {
	case mods&ModPublic != 0:
		return "public"
	case mods&ModProtected != 0:
		return "protected"
	case mods&ModPrivate != 0:
		return "private"
	default:
		return "package-private"
	}
}

// -----------------------------------------------------------------------------

// ClassEntry is the single shared record of a class or interface.  Entries
// live in the class table keyed by qualified name and are created on first
// reference: an entry whose declaration has not been seen yet is not Loaded.
type ClassEntry struct {
	// Name is the fully qualified source name (eg. `p.Outer.Inner`).
	Name string

	// Package is the name of the enclosing package.
	Package string

	// SimpleName is the name of the class as written in its declaration.
	SimpleName string

	// BinaryName is the qualified name with nested classes joined by `$`.
	BinaryName string

	Modifiers   int
	IsInterface bool

	// Super is the superclass.  It is nil only for the universal root class
	// and for interfaces.  Until the registry is drained it may be an
	// OpaqueType placeholder.
	Super Type

	// Interfaces lists the direct superinterfaces.
	Interfaces []Type

	Fields  []*FieldEntry
	Methods []*MethodEntry

	// Nested maps simple names onto member classes.
	Nested map[string]*ClassEntry

	// Outer is the enclosing class of a member class.
	Outer *ClassEntry

	// Loaded indicates that the declaration (source or binary) was seen.
	Loaded bool

	// Complete indicates that all supertypes have been resolved and the class
	// has been laid out.
	Complete bool

	// Binary indicates the class came from the class loader rather than from
	// a unit in the batch.
	Binary bool

	// Context and DeclPos locate the declaration for diagnostics.
	Context *logging.LogContext
	DeclPos *logging.TextPosition
}

// NewClassEntry creates a new, unloaded class entry for the given qualified
// name.
func NewClassEntry(qualName string) *ClassEntry {
	pkg, simple := common.SplitQualified(qualName)
	return &ClassEntry{
		Name:       qualName,
		Package:    pkg,
		SimpleName: simple,
		BinaryName: qualName,
		Nested:     make(map[string]*ClassEntry),
	}
}

// Type returns the class type referring to this entry.
func (ce *ClassEntry) Type() *ClassType {
	return &ClassType{Entry: ce}
}

func (ce *ClassEntry) IsFinal() bool    { return ce.Modifiers&ModFinal != 0 }
func (ce *ClassEntry) IsAbstract() bool { return ce.Modifiers&ModAbstract != 0 || ce.IsInterface }
func (ce *ClassEntry) IsPublic() bool   { return ce.Modifiers&ModPublic != 0 }

// IsRoot returns whether this is the universal root class.
func (ce *ClassEntry) IsRoot() bool {
	return ce.Name == common.ObjectClass
}

// SuperClass returns the entry of the superclass or nil if there is none (or
// it is not resolved yet).
func (ce *ClassEntry) SuperClass() *ClassEntry {
	if ce.Super == nil {
		return nil
	}

	if sup, ok := AsClass(ce.Super); ok {
		return sup
	}

	return nil
}

// SuperInterfaces returns the resolved entries of the direct superinterfaces.
func (ce *ClassEntry) SuperInterfaces() []*ClassEntry {
	var ifaces []*ClassEntry
	for _, it := range ce.Interfaces {
		if ie, ok := AsClass(it); ok {
			ifaces = append(ifaces, ie)
		}
	}

	return ifaces
}

// TopLevel returns the outermost enclosing class.
func (ce *ClassEntry) TopLevel() *ClassEntry {
	top := ce
	for top.Outer != nil {
		top = top.Outer
	}

	return top
}

// IsSubclassOf returns whether ce is a proper subclass of other by walking the
// superclass chain.  The walk is bounded so that a malformed (cyclic) chain
// does not hang the resolver.
func (ce *ClassEntry) IsSubclassOf(other *ClassEntry) bool {
	seen := make(map[*ClassEntry]struct{})
	for sup := ce.SuperClass(); sup != nil; sup = sup.SuperClass() {
		if sup == other {
			return true
		}

		if _, ok := seen[sup]; ok {
			return false
		}
		seen[sup] = struct{}{}
	}

	return false
}

// Implements returns whether ce or one of its superclasses implements the
// interface iface, directly or through superinterfaces.
func (ce *ClassEntry) Implements(iface *ClassEntry) bool {
	found := false
	ce.WalkInterfaces(func(ie *ClassEntry) bool {
		if ie == iface {
			found = true
			return false
		}

		return true
	})

	return found
}

// WalkInterfaces visits every superinterface of ce (including those inherited
// from superclasses) breadth-first, each at most once.  The walk stops when
// visit returns false.
func (ce *ClassEntry) WalkInterfaces(visit func(*ClassEntry) bool) {
	seen := make(map[*ClassEntry]struct{})
	var queue []*ClassEntry

	classSeen := make(map[*ClassEntry]struct{})
	for c := ce; c != nil; c = c.SuperClass() {
		if _, ok := classSeen[c]; ok {
			break
		}
		classSeen[c] = struct{}{}

		queue = append(queue, c.SuperInterfaces()...)
	}

	for len(queue) > 0 {
		ie := queue[0]
		queue = queue[1:]

		if _, ok := seen[ie]; ok {
			continue
		}
		seen[ie] = struct{}{}

		if !visit(ie) {
			return
		}

		queue = append(queue, ie.SuperInterfaces()...)
	}
}

// IsSubtypeOf returns whether a value of class type ce may be used where other
// is expected: identity, subclassing, interface implementation, or other being
// the root class.
func (ce *ClassEntry) IsSubtypeOf(other *ClassEntry) bool {
	if ce == other || other.IsRoot() {
		return true
	}

	if other.IsInterface {
		return ce.Implements(other)
	}

	return !ce.IsInterface && ce.IsSubclassOf(other)
}

// IsThrowable returns whether ce is Throwable or one of its subclasses.
func (ce *ClassEntry) IsThrowable() bool {
	return ce.Name == common.ThrowableClass || ce.isSubclassNamed(common.ThrowableClass)
}

// IsUncheckedException returns whether ce is exempt from the catch-or-declare
// requirement: RuntimeException, Error, and their subclasses.
func (ce *ClassEntry) IsUncheckedException() bool {
	switch ce.Name {
	case common.RuntimeExceptionClass, common.ErrorClass:
		return true
	}

	return ce.isSubclassNamed(common.RuntimeExceptionClass) || ce.isSubclassNamed(common.ErrorClass)
}

func (ce *ClassEntry) isSubclassNamed(qualName string) bool {
	seen := make(map[*ClassEntry]struct{})
	for sup := ce.SuperClass(); sup != nil; sup = sup.SuperClass() {
		if sup.Name == qualName {
			return true
		}

		if _, ok := seen[sup]; ok {
			return false
		}
		seen[sup] = struct{}{}
	}

	return false
}

// -----------------------------------------------------------------------------

// LookupField finds a field by name in ce, its superinterfaces and its
// superclasses.  Fields declared in ce itself shadow inherited ones.
func (ce *ClassEntry) LookupField(name string) *FieldEntry {
	seen := make(map[*ClassEntry]struct{})
	return ce.lookupField(name, seen)
}

func (ce *ClassEntry) lookupField(name string, seen map[*ClassEntry]struct{}) *FieldEntry {
	if _, ok := seen[ce]; ok {
		return nil
	}
	seen[ce] = struct{}{}

	for _, field := range ce.Fields {
		if field.Name == name {
			return field
		}
	}

	for _, ie := range ce.SuperInterfaces() {
		if field := ie.lookupField(name, seen); field != nil {
			return field
		}
	}

	if sup := ce.SuperClass(); sup != nil {
		return sup.lookupField(name, seen)
	}

	return nil
}

// LookupNested finds a member class by simple name in ce or its supertypes.
func (ce *ClassEntry) LookupNested(name string) *ClassEntry {
	seen := make(map[*ClassEntry]struct{})
	for c := ce; c != nil; c = c.SuperClass() {
		if _, ok := seen[c]; ok {
			break
		}
		seen[c] = struct{}{}

		if nested, ok := c.Nested[name]; ok {
			return nested
		}
	}

	return nil
}

// Constructors returns the constructors declared by ce.
func (ce *ClassEntry) Constructors() []*MethodEntry {
	var ctors []*MethodEntry
	for _, method := range ce.Methods {
		if method.IsConstructor {
			ctors = append(ctors, method)
		}
	}

	return ctors
}

// FindMethodByArgs looks up a method declared directly in ce by name and
// argument descriptor.
func (ce *ClassEntry) FindMethodByArgs(name, argSig string) *MethodEntry {
	for _, method := range ce.Methods {
		if !method.IsConstructor && method.Name == name && method.ArgSignature() == argSig {
			return method
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// FieldEntry is a field of a class.
type FieldEntry struct {
	Name      string
	Type      Type
	Modifiers int
	Owner     *ClassEntry

	// Constant is the compile-time constant value of a final field whose
	// initializer is a constant expression.
	Constant *Constant

	// Index is the declaration order of the field within its class.
	Index int

	DeclPos *logging.TextPosition
}

func (fe *FieldEntry) IsStatic() bool { return fe.Modifiers&ModStatic != 0 }
func (fe *FieldEntry) IsFinal() bool  { return fe.Modifiers&ModFinal != 0 }

// MethodEntry is a method or constructor of a class.
type MethodEntry struct {
	Name       string
	Params     []Type
	ParamNames []string
	Return     Type
	Throws     []Type
	Modifiers  int
	Owner      *ClassEntry

	IsConstructor bool

	// Synthetic marks members generated by the compiler such as default
	// constructors.
	Synthetic bool

	DeclPos *logging.TextPosition

	// argSig and descriptor cache the method descriptor; they are recomputed
	// by Refresh once every part of the signature is resolved.
	argSig, descriptor string
}

func (me *MethodEntry) IsStatic() bool   { return me.Modifiers&ModStatic != 0 }
func (me *MethodEntry) IsAbstract() bool { return me.Modifiers&ModAbstract != 0 }

// Refresh recomputes the cached descriptor of the method.
func (me *MethodEntry) Refresh() {
	me.argSig = ArgumentDescriptor(me.Params)

	ret := me.Return
	if ret == nil {
		ret = Void
	}
	me.descriptor = "(" + me.argSig + ")" + Descriptor(ret)
}

// ArgSignature returns the descriptor of the argument list.
func (me *MethodEntry) ArgSignature() string {
	if me.descriptor == "" {
		me.Refresh()
	}

	return me.argSig
}

// Descriptor returns the full method descriptor.
func (me *MethodEntry) Descriptor() string {
	if me.descriptor == "" {
		me.Refresh()
	}

	return me.descriptor
}

// Repr returns the method as it appears in diagnostics: `name(int, p.C)`.
func (me *MethodEntry) Repr() string {
	b := strings.Builder{}
	if me.IsConstructor {
		b.WriteString(me.Owner.SimpleName)
	} else {
		b.WriteString(me.Name)
	}

	b.WriteRune('(')
	for i, param := range me.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Repr())
	}
	b.WriteRune(')')

	return b.String()
}
