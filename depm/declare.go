package depm

import (
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
)

// declarer performs the declaration pass over a single unit: it creates the
// class entries and member entries of the unit and registers every named type
// with the dependency registry.
type declarer struct {
	ctx   *CompilationContext
	reg   *Registry
	table *ClassTable
}

// DeclareUnit runs the declaration pass over a unit and returns its
// compilation context.  Types named by the unit are only registered: they are
// resolved once every unit of the batch has been declared.
func DeclareUnit(table *ClassTable, reg *Registry, cu *ast.CompilationUnit) *CompilationContext {
	ctx := NewCompilationContext(table, cu)
	reg.AddUnit(ctx)
	table.AddPackage(cu.Package)

	d := &declarer{ctx: ctx, reg: reg, table: table}

	for _, cd := range cu.Classes {
		d.declareClass(cd, nil)
	}

	d.declareImports()

	for _, cd := range cu.Classes {
		d.declareMembers(cd)
	}

	return ctx
}

// -----------------------------------------------------------------------------

// declareClass creates the entry for a class and its member classes.
func (d *declarer) declareClass(cd *ast.ClassDecl, outer *types.ClassEntry) {
	var qualName string
	if outer == nil {
		qualName = common.JoinQualified(d.ctx.Package, cd.Name)
	} else {
		qualName = outer.Name + "." + cd.Name
	}

	entry, ok := d.table.Declare(qualName)
	if !ok {
		d.ctx.Error(cd.Position(), logging.LMKDef, "duplicate class `%s`", qualName)
		return
	}

	entry.SimpleName = cd.Name
	entry.Package = d.ctx.Package
	entry.Modifiers = cd.Modifiers
	entry.IsInterface = cd.Interface
	entry.Context = d.ctx.LogContext
	entry.DeclPos = cd.Position()

	if cd.Interface {
		entry.Modifiers |= types.ModAbstract
	}

	if outer == nil {
		entry.BinaryName = qualName
		d.ctx.Classes[cd.Name] = entry
	} else {
		entry.BinaryName = outer.BinaryName + "$" + cd.Name
		entry.Outer = outer
		outer.Nested[cd.Name] = entry
	}

	cd.Entry = entry
	d.reg.addClass(d.ctx, entry)

	if cd.Modifiers&types.ModAbstract != 0 && cd.Modifiers&types.ModFinal != 0 {
		d.ctx.Error(cd.Position(), logging.LMKUsage, "class `%s` cannot be both abstract and final", cd.Name)
	}

	for _, nested := range cd.Classes {
		d.declareClass(nested, entry)
	}
}

// declareImports records the imports of the unit.  Two single-type imports of
// different classes with the same simple name are ambiguous.
func (d *declarer) declareImports() {
	for _, imp := range d.ctx.Unit.Imports {
		if imp.OnDemand {
			d.ctx.OnDemandImports = append(d.ctx.OnDemandImports, imp)
			continue
		}

		_, simple := common.SplitQualified(imp.Name)
		if prev, ok := d.ctx.SingleImports[simple]; ok {
			if prev.Name != imp.Name {
				d.ctx.Error(
					imp.Position(),
					logging.LMKImport,
					"ambiguous import: `%s` is already imported as `%s`",
					simple,
					prev.Name,
				)
			}

			continue
		}

		if local, ok := d.ctx.Classes[simple]; ok && local.Name != imp.Name {
			d.ctx.Error(
				imp.Position(),
				logging.LMKImport,
				"import `%s` conflicts with class `%s` declared in this unit",
				imp.Name,
				local.Name,
			)
			continue
		}

		d.ctx.SingleImports[simple] = imp
	}
}

// -----------------------------------------------------------------------------

// declareMembers creates the member entries of a class and registers the
// types they name.
func (d *declarer) declareMembers(cd *ast.ClassDecl) {
	entry := cd.Entry
	if entry == nil {
		return
	}

	if cd.Super != nil {
		if cd.Interface {
			d.ctx.Error(cd.Super.Position(), logging.LMKInherit, "interface `%s` cannot have a superclass", cd.Name)
		} else {
			d.typeRef(&IncompleteTypeRef{Kind: RefSuper, Class: entry, Slot: &entry.Super}, cd.Super)
		}
	} else if !cd.Interface {
		entry.Super = d.table.rootType(entry)
	}

	entry.Interfaces = make([]types.Type, len(cd.Interfaces))
	for i, it := range cd.Interfaces {
		d.typeRef(&IncompleteTypeRef{Kind: RefInterface, Class: entry, Slot: &entry.Interfaces[i]}, it)
	}

	for _, fd := range cd.Fields {
		d.declareField(cd, fd)
	}

	if !cd.Interface && !hasConstructor(cd) && !entry.IsRoot() {
		cd.Methods = append(cd.Methods, defaultConstructor(cd))
	}

	for _, md := range cd.Methods {
		d.declareMethod(cd, md)
	}

	for _, init := range cd.Initializers {
		if cd.Interface {
			d.ctx.Error(init.Position(), logging.LMKUsage, "interfaces cannot have initializers")
		}

		d.declareBody(entry, init.Body)
	}

	for _, nested := range cd.Classes {
		d.declareMembers(nested)
	}
}

// hasConstructor returns whether a class declares a constructor.
func hasConstructor(cd *ast.ClassDecl) bool {
	for _, md := range cd.Methods {
		if md.Constructor {
			return true
		}
	}

	return false
}

// defaultConstructor synthesizes the constructor of a class declaring none:
// it has the access of the class and only calls the superclass constructor.
func defaultConstructor(cd *ast.ClassDecl) *ast.MethodDecl {
	pos := cd.Position()
	superCall := &ast.CtorCall{StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBase(pos)}, Super: true}

	return &ast.MethodDecl{
		NodeBase:    ast.NewNodeBase(pos),
		Name:        cd.Name,
		Modifiers:   cd.Modifiers & (types.ModPublic | types.ModProtected | types.ModPrivate),
		Constructor: true,
		Body:        ast.NewBlock(pos, []ast.Stmt{superCall}),
		Synthetic:   true,
	}
}

// declareField declares a single field.
func (d *declarer) declareField(cd *ast.ClassDecl, fd *ast.FieldDecl) {
	entry := cd.Entry

	if prev := findField(entry, fd.Name); prev != nil {
		d.ctx.Error(fd.Position(), logging.LMKDef, "field `%s` is already defined in class `%s`", fd.Name, entry.Name)
		return
	}

	mods := fd.Modifiers
	if cd.Interface {
		mods |= types.ModPublic | types.ModStatic | types.ModFinal
	}

	if mods&types.ModFinal != 0 && mods&types.ModVolatile != 0 {
		d.ctx.Error(fd.Position(), logging.LMKUsage, "field `%s` cannot be both final and volatile", fd.Name)
	}

	fe := &types.FieldEntry{
		Name:      fd.Name,
		Modifiers: mods,
		Owner:     entry,
		Index:     len(entry.Fields),
		DeclPos:   fd.Position(),
	}

	d.typeRef(&IncompleteTypeRef{Kind: RefField, Class: entry, Slot: &fe.Type, Subject: fd.Name}, fd.Type)

	entry.Fields = append(entry.Fields, fe)
	fd.Entry = fe

	if fd.Init != nil {
		d.declareBody(entry, fd.Init)
	}
}

func findField(entry *types.ClassEntry, name string) *types.FieldEntry {
	for _, field := range entry.Fields {
		if field.Name == name {
			return field
		}
	}

	return nil
}

// declareMethod declares a method or constructor.  The signature chain of the
// method is always terminated by an end marker.
func (d *declarer) declareMethod(cd *ast.ClassDecl, md *ast.MethodDecl) {
	entry := cd.Entry

	mods := md.Modifiers
	if cd.Interface {
		mods |= types.ModPublic | types.ModAbstract
	}

	method := &types.MethodEntry{
		Name:          md.Name,
		Modifiers:     mods,
		Owner:         entry,
		IsConstructor: md.Constructor,
		Synthetic:     md.Synthetic,
		Return:        types.Void,
		DeclPos:       md.Position(),
	}

	if md.Constructor {
		method.Name = common.ConstructorName
		if md.Name != cd.Name {
			d.ctx.Error(md.Position(), logging.LMKUsage, "constructor name `%s` does not match class `%s`", md.Name, cd.Name)
		}
	}

	d.checkMethodModifiers(cd, md, mods)

	if md.Return != nil {
		d.typeRef(&IncompleteTypeRef{Kind: RefMethodReturn, Class: entry, Method: method, Slot: &method.Return}, md.Return)
	}

	method.Params = make([]types.Type, len(md.Params))
	scope := make(map[string]struct{})
	for i, param := range md.Params {
		if _, ok := scope[param.Name]; ok {
			d.ctx.Error(param.Position(), logging.LMKDef, "parameter `%s` is already defined in `%s`", param.Name, md.Name)
		}
		scope[param.Name] = struct{}{}

		method.ParamNames = append(method.ParamNames, param.Name)
		d.typeRef(&IncompleteTypeRef{Kind: RefMethod, Class: entry, Method: method, Slot: &method.Params[i], Subject: param.Name}, param.Type)

		param.Var = &ast.LocalVar{
			Name:    param.Name,
			Final:   param.Final,
			IsParam: true,
			DeclPos: param.Position(),
		}

		d.typeRef(&IncompleteTypeRef{Kind: RefParm, Class: entry, Method: method, Slot: &param.Var.Type, Subject: param.Name}, param.Type)
	}

	method.Throws = make([]types.Type, len(md.Throws))
	for i, tr := range md.Throws {
		d.typeRef(&IncompleteTypeRef{Kind: RefException, Class: entry, Method: method, Slot: &method.Throws[i]}, tr)
	}

	d.reg.EndMethod(d.ctx, method)

	entry.Methods = append(entry.Methods, method)
	md.Entry = method

	if md.Body != nil {
		d.declareBody(entry, md.Body)
	}
}

// checkMethodModifiers checks the modifiers and body of a method against each
// other and against its class.
func (d *declarer) checkMethodModifiers(cd *ast.ClassDecl, md *ast.MethodDecl, mods int) {
	abstract := mods&types.ModAbstract != 0

	switch {
	case md.Constructor && mods&(types.ModAbstract|types.ModStatic|types.ModFinal|types.ModNative) != 0:
		d.ctx.Error(md.Position(), logging.LMKUsage, "constructor of `%s` has an illegal modifier", cd.Name)
	case abstract && mods&(types.ModPrivate|types.ModStatic|types.ModFinal|types.ModNative|types.ModSynchronized) != 0:
		d.ctx.Error(md.Position(), logging.LMKUsage, "illegal combination of modifiers for abstract method `%s`", md.Name)
	case cd.Interface && md.Body != nil:
		d.ctx.Error(md.Position(), logging.LMKUsage, "interface method `%s` cannot have a body", md.Name)
	case !cd.Interface && abstract && md.Body != nil:
		d.ctx.Error(md.Position(), logging.LMKUsage, "abstract method `%s` cannot have a body", md.Name)
	case mods&types.ModNative != 0 && md.Body != nil:
		d.ctx.Error(md.Position(), logging.LMKUsage, "native method `%s` cannot have a body", md.Name)
	case !abstract && mods&types.ModNative == 0 && md.Body == nil:
		d.ctx.Error(md.Position(), logging.LMKUsage, "method `%s` requires a body", md.Name)
	case abstract && !cd.Interface && cd.Modifiers&types.ModAbstract == 0:
		d.ctx.Error(
			md.Position(),
			logging.LMKUsage,
			"class `%s` must be declared abstract: it declares abstract method `%s`",
			cd.Name,
			md.Name,
		)
	}
}

// declareBody registers every type named inside a method body or initializer.
func (d *declarer) declareBody(entry *types.ClassEntry, body ast.Node) {
	ast.Inspect(body, func(node ast.Node) bool {
		switch v := node.(type) {
		case *ast.LocalVarDecl:
			if v.Type.Resolved == nil && len(v.Vars) > 0 {
				d.typeRef(&IncompleteTypeRef{Kind: RefVariable, Class: entry, Slot: &v.Type.Resolved, Subject: v.Vars[0].Name}, v.Type)
			}
		case *ast.Try:
			for _, cc := range v.Catches {
				if cc.Type.Resolved == nil {
					d.typeRef(&IncompleteTypeRef{Kind: RefVariable, Class: entry, Slot: &cc.Type.Resolved, Subject: cc.Name}, cc.Type)
				}
			}
		case *ast.TypeRef:
			if v.Resolved == nil {
				d.typeRef(&IncompleteTypeRef{Kind: RefVariable, Class: entry, Slot: &v.Resolved}, v)
			}
		}

		return true
	})
}

// typeRef resolves a primitive type immediately and registers every other
// type with the registry.
func (d *declarer) typeRef(ref *IncompleteTypeRef, tr *ast.TypeRef) {
	if pt, ok := types.LookupPrimitive(tr.Name); ok {
		typ := types.MakeArray(pt, tr.Dims)
		*ref.Slot = typ
		tr.Resolved = typ
		return
	}

	ref.Name = tr.Name
	ref.Dims = tr.Dims
	ref.Context = d.ctx
	ref.Pos = tr.Position()
	ref.TypeRef = tr

	d.reg.Register(ref)
}
