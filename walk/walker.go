package walk

import (
	"jfront/ast"
	"jfront/common"
	"jfront/depm"
	"jfront/logging"
	"jfront/types"
	"sort"
)

// Session holds the state shared by all walkers of a batch: the class table
// and the field initializers, which may be walked on demand when another
// initializer needs their constant value.
type Session struct {
	table *depm.ClassTable

	// units lists the units of the batch in declaration order.
	units []*depm.CompilationContext

	// fields maps every declared field onto its declaration site.
	fields map[*types.FieldEntry]*fieldSite

	// ctors lists the synthesized constructors of the batch.
	ctors []*ctorSite
}

// Enumeration of field initializer states.
const (
	fieldPending = iota
	fieldWalking
	fieldDone
)

// fieldSite is the declaration of a field along with its unit.
type fieldSite struct {
	ctx   *depm.CompilationContext
	class *ast.ClassDecl
	decl  *ast.FieldDecl
	state int
}

// ctorSite is a synthesized constructor along with its unit.
type ctorSite struct {
	ctx   *depm.CompilationContext
	class *ast.ClassDecl
	decl  *ast.MethodDecl
}

// NewSession creates a new walking session over a class table.
func NewSession(table *depm.ClassTable) *Session {
	return &Session{
		table:  table,
		fields: make(map[*types.FieldEntry]*fieldSite),
	}
}

// AddUnit adds a declared unit to the session.
func (s *Session) AddUnit(ctx *depm.CompilationContext) {
	s.units = append(s.units, ctx)

	for _, cd := range ctx.Unit.Classes {
		s.indexClass(ctx, cd)
	}
}

func (s *Session) indexClass(ctx *depm.CompilationContext, cd *ast.ClassDecl) {
	if cd.Entry == nil {
		return
	}

	for _, fd := range cd.Fields {
		if fd.Entry != nil {
			s.fields[fd.Entry] = &fieldSite{ctx: ctx, class: cd, decl: fd}
		}
	}

	for _, md := range cd.Methods {
		if md.Synthetic && md.Entry != nil {
			s.ctors = append(s.ctors, &ctorSite{ctx: ctx, class: cd, decl: md})
		}
	}

	for _, nested := range cd.Classes {
		s.indexClass(ctx, nested)
	}
}

// Walk walks every unit of the session.  Synthesized constructors are walked
// first, superclasses before subclasses, since the exceptions they declare are
// inherited from the constructors they call.  Field initializers are walked
// next so that constant fields are known before any method body is checked.
func (s *Session) Walk() {
	sort.SliceStable(s.ctors, func(i, j int) bool {
		return depth(s.ctors[i].class.Entry) < depth(s.ctors[j].class.Entry)
	})

	for _, cs := range s.ctors {
		w := s.newWalker(cs.ctx, cs.class.Entry)
		w.walkMethod(cs.class, cs.decl)
	}

	for _, ctx := range s.units {
		for _, cd := range ctx.Unit.Classes {
			s.walkFields(cd)
		}
	}

	for _, ctx := range s.units {
		for _, cd := range ctx.Unit.Classes {
			s.walkClass(ctx, cd)
		}
	}
}

// depth returns the length of the superclass chain of a class.
func depth(entry *types.ClassEntry) int {
	n := 0
	seen := make(map[*types.ClassEntry]struct{})
	for c := entry.SuperClass(); c != nil; c = c.SuperClass() {
		if _, ok := seen[c]; ok {
			break
		}
		seen[c] = struct{}{}

		n++
	}

	return n
}

// walkFields walks the field initializers of a class and its member classes.
func (s *Session) walkFields(cd *ast.ClassDecl) {
	if cd.Entry == nil {
		return
	}

	for _, fd := range cd.Fields {
		if fd.Entry != nil {
			s.walkField(fd.Entry)
		}
	}

	for _, nested := range cd.Classes {
		s.walkFields(nested)
	}
}

// walkField walks the initializer of a field if it has not been walked yet.
// A field whose initializer is being walked is skipped: its value is then not
// a constant for the requesting initializer.
func (s *Session) walkField(fe *types.FieldEntry) {
	site, ok := s.fields[fe]
	if !ok || site.state != fieldPending {
		return
	}

	site.state = fieldWalking
	defer func() { site.state = fieldDone }()

	if site.decl.Init == nil {
		return
	}

	w := s.newWalker(site.ctx, fe.Owner)
	w.static = fe.IsStatic()
	w.initPos = fe.DeclPos
	w.pushFrame(nil)

	c := w.walkVarInit(site.decl.Init, fe.Type)
	if fe.IsFinal() && c != nil {
		fe.Constant = constantFor(c, fe.Type)
	}
}

// walkClass walks the methods and initializers of a class and its member
// classes.
func (s *Session) walkClass(ctx *depm.CompilationContext, cd *ast.ClassDecl) {
	if cd.Entry == nil {
		return
	}

	for _, init := range cd.Initializers {
		w := s.newWalker(ctx, cd.Entry)
		w.static = init.Static
		w.initPos = init.Position()
		w.pushFrame(nil)
		w.walkBlock(init.Body)
	}

	for _, md := range cd.Methods {
		if !md.Synthetic && md.Entry != nil {
			w := s.newWalker(ctx, cd.Entry)
			w.walkMethod(cd, md)
		}
	}

	for _, nested := range cd.Classes {
		s.walkClass(ctx, nested)
	}
}

// -----------------------------------------------------------------------------

// Walker is the construct responsible for performing semantic analysis on a
// single method body or initializer.
type Walker struct {
	session *Session
	ctx     *depm.CompilationContext
	table   *depm.ClassTable

	// class is the enclosing class.
	class *types.ClassEntry

	// method is the enclosing method or constructor (nil in initializers).
	method *types.MethodEntry

	// static indicates a static context: `this` is unavailable.
	static bool

	// initPos is the position of the enclosing field initializer or
	// initializer block, used to detect forward references.  It is nil inside
	// methods.
	initPos *logging.TextPosition

	// ctorCallPending is set while the arguments of an explicit constructor
	// call are walked: the object is not initialized yet.
	ctorCallPending bool

	// assignTarget is set while the target of a simple assignment is walked.
	assignTarget bool

	// scopes is the stack of local scopes used to lookup local variables.
	scopes []map[string]*ast.LocalVar

	// labels is the stack of open labeled statements.
	labels []*ast.Labeled

	// breakables is the stack of open loops and switches.
	breakables []ast.Stmt

	// breaks and continues record the statements targeted by a reachable
	// break or continue.
	breaks, continues map[ast.Stmt]bool

	// dead counts the enclosing statements that were found unreachable.  No
	// further reachability errors are reported and no jumps are recorded
	// inside unreachable code.
	dead int

	// frames is the stack of caught exception sets.
	frames []*excFrame

	// assigned holds the blank finals that may have been assigned so far.
	assigned assignedSet
}

// newWalker creates a new walker for code in the given class.
func (s *Session) newWalker(ctx *depm.CompilationContext, class *types.ClassEntry) *Walker {
	return &Walker{
		session:   s,
		ctx:       ctx,
		table:     s.table,
		class:     class,
		breaks:    make(map[ast.Stmt]bool),
		continues: make(map[ast.Stmt]bool),
		assigned:  make(assignedSet),
	}
}

// -----------------------------------------------------------------------------

// lookupLocal looks up a local variable by name in all visible scopes.
func (w *Walker) lookupLocal(name string) *ast.LocalVar {
	for i := len(w.scopes) - 1; i > -1; i-- {
		if lv, ok := w.scopes[i][name]; ok {
			return lv
		}
	}

	return nil
}

// defineLocal defines a local variable in the current scope.  Locals may not
// shadow other locals of the same method.
func (w *Walker) defineLocal(lv *ast.LocalVar) {
	if prev := w.lookupLocal(lv.Name); prev != nil {
		w.errorf(lv.DeclPos, logging.LMKDef, "variable `%s` is already defined in this method", lv.Name)
		return
	}

	w.scopes[len(w.scopes)-1][lv.Name] = lv
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]*ast.LocalVar))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// -----------------------------------------------------------------------------

// resolvedType returns the resolved type of a type reference.  Every type
// reference is resolved before bodies are walked.
func (w *Walker) resolvedType(tr *ast.TypeRef) types.Type {
	switch tr.Resolved.(type) {
	case nil, *types.OpaqueType:
		logging.LogFatal("type `%s` at %s was not resolved before walking", tr.Repr(), tr.Position())
	}

	return tr.Resolved
}

// classType returns the type of a core class.
func (w *Walker) classType(name string) types.Type {
	if entry := w.table.Lookup(name); entry != nil {
		return entry.Type()
	}

	logging.LogFatal("core class `%s` is not available", name)
	return nil
}

// stringType returns the string class type.
func (w *Walker) stringType() types.Type {
	return w.classType(common.StringClass)
}

// constantFor converts a constant to the type of the variable it initializes.
// Only primitive and string variables hold constants.
func constantFor(c *types.Constant, typ types.Type) *types.Constant {
	if pt, ok := types.AsPrim(typ); ok && !c.IsString {
		return c.Convert(pt)
	}

	if types.IsString(typ) && c.IsString {
		return c
	}

	return nil
}
