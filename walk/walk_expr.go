package walk

import (
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
)

// walkExpr walks an expression and returns its type.  An expression that has
// already been walked is not checked again: its type slot is returned as is.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	if t := expr.Type(); t != nil {
		return t
	}

	var typ types.Type
	switch v := expr.(type) {
	case *ast.Literal:
		typ = w.walkLiteral(v)
	case *ast.Name:
		return w.walkName(v, false)
	case *ast.This:
		typ = types.Error
		if w.checkThisUsable(v.Position(), "this") {
			typ = w.class.Type()
		}
	case *ast.MethodCall:
		typ = w.walkMethodCall(v)
	case *ast.New:
		typ = w.walkNew(v)
	case *ast.NewArray:
		typ = w.walkNewArray(v)
	case *ast.ArrayInit:
		w.errorf(v.Position(), logging.LMKTyping, "array initializer is not allowed here")
		typ = types.Error
	case *ast.Index:
		typ = w.walkIndex(v)
	case *ast.FieldAccess:
		typ = w.walkFieldAccess(v)
	case *ast.Unary:
		typ = w.walkUnary(v)
	case *ast.Binary:
		typ = w.walkBinary(v)
	case *ast.Assign:
		typ = w.walkAssign(v)
	case *ast.Conditional:
		typ = w.walkConditional(v)
	case *ast.Cast:
		typ = w.walkCast(v)
	case *ast.InstanceOf:
		typ = w.walkInstanceOf(v)
	default:
		logging.LogFatal("walking unsupported expression %T", expr)
	}

	expr.SetType(typ)
	return typ
}

// walkArgs walks the arguments of a call and returns their types.
func (w *Walker) walkArgs(args []ast.Expr) []types.Type {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = w.walkExpr(arg)

		if types.IsVoid(argTypes[i]) {
			w.errorf(arg.Position(), logging.LMKTyping, "`void` type not allowed here")
			argTypes[i] = types.Error
		}
	}

	return argTypes
}

// incompatible reports a failed assignment conversion.
func (w *Walker) incompatible(pos *logging.TextPosition, src, dest types.Type) {
	if types.IsError(src) || types.IsError(dest) {
		return
	}

	w.errorf(pos, logging.LMKTyping, "incompatible types: `%s` cannot be converted to `%s`", src.Repr(), dest.Repr())
}

// objectEntry returns the entry of the universal root class.
func (w *Walker) objectEntry() *types.ClassEntry {
	entry, _ := types.AsClass(w.classType(common.ObjectClass))
	return entry
}

// -----------------------------------------------------------------------------

// walkMethodCall walks a method invocation.  The method is searched for in the
// type of the receiver, the superclass for `super` calls, or the innermost
// enclosing class declaring a method of that name for unqualified calls.
func (w *Walker) walkMethodCall(mc *ast.MethodCall) types.Type {
	var root *types.ClassEntry
	staticOnly := false

	switch {
	case mc.Super:
		if w.checkThisUsable(mc.Position(), "super") {
			if root = w.class.SuperClass(); root == nil {
				w.errorf(mc.Position(), logging.LMKUsage, "class `%s` has no superclass", w.class.Name)
			}
		}
	case mc.Receiver == nil:
		root = w.class
		for c := w.class; c != nil; c = c.Outer {
			if len(w.collectMethods(c, mc.Name)) > 0 {
				root = c
				break
			}
		}
	default:
		var rt types.Type
		if n, ok := mc.Receiver.(*ast.Name); ok {
			rt = w.walkName(n, true)
			staticOnly = n.FinalKind() == ast.NameType
		} else {
			rt = w.walkExpr(mc.Receiver)
		}

		switch v := rt.(type) {
		case *types.ClassType:
			root = v.Entry
		case *types.ArrayType:
			root = w.objectEntry()
		default:
			if !types.IsError(rt) {
				w.errorf(mc.Receiver.Position(), logging.LMKTyping, "cannot invoke `%s` on a value of type `%s`", mc.Name, rt.Repr())
			}
		}
	}

	argTypes := w.walkArgs(mc.Args)
	if root == nil {
		return types.Error
	}

	method := w.resolveMethod(root, mc.Name, mc.Args, argTypes, mc.Position(), mc.Super)
	if method == nil {
		return types.Error
	}

	mc.Method = method

	if mc.Super && method.IsAbstract() {
		w.errorf(mc.Position(), logging.LMKUsage, "abstract method `%s` in `%s` cannot be accessed directly", method.Repr(), method.Owner.Name)
	}

	if !method.IsStatic() {
		switch {
		case staticOnly:
			w.errorf(mc.Position(), logging.LMKUsage, "non-static method `%s` cannot be referenced from a static context", method.Repr())
		case mc.Receiver == nil && !mc.Super:
			w.checkImplicitReceiver(root, method, mc.Position())
		}
	}

	w.recordThrows(method.Throws, mc.Position())
	return method.Return
}

// checkImplicitReceiver checks that an instance method called without a
// receiver has an enclosing instance of root available.
func (w *Walker) checkImplicitReceiver(root *types.ClassEntry, method *types.MethodEntry, pos *logging.TextPosition) {
	static := w.static
	for c := w.class; c != nil && c != root; c = c.Outer {
		if c.Modifiers&types.ModStatic != 0 || c.IsInterface {
			static = true
		}
	}

	if static {
		w.errorf(pos, logging.LMKUsage, "non-static method `%s` cannot be referenced from a static context", method.Repr())
	} else if w.ctorCallPending && root == w.class {
		w.errorf(pos, logging.LMKUsage, "cannot reference `%s` before supertype constructor has been called", method.Name)
	}
}

// walkNew walks a class instance creation expression.
func (w *Walker) walkNew(ne *ast.New) types.Type {
	typ := w.resolvedType(ne.Class)
	argTypes := w.walkArgs(ne.Args)

	if types.IsError(typ) {
		return types.Error
	}

	ce, ok := types.AsClass(typ)
	if !ok {
		w.errorf(ne.Class.Position(), logging.LMKTyping, "cannot instantiate type `%s`", typ.Repr())
		return types.Error
	}

	if !w.checkClassAccess(ce, ne.Class.Position()) {
		return types.Error
	}

	if ce.IsAbstract() {
		w.errorf(ne.Position(), logging.LMKUsage, "`%s` is abstract; cannot be instantiated", ce.Name)
		return types.Error
	}

	if ce.Outer != nil && ce.Modifiers&types.ModStatic == 0 && !ce.Outer.IsInterface {
		if !w.hasEnclosingInstance(ce.Outer) {
			w.errorf(ne.Position(), logging.LMKUsage, "an enclosing instance of `%s` is required to create `%s`", ce.Outer.Name, ce.Name)
			return types.Error
		}
	}

	ctor := w.resolveConstructorArgs(ce, ne.Args, argTypes, ne.Position(), false)
	if ctor == nil {
		return types.Error
	}

	ne.Ctor = ctor
	w.recordThrows(ctor.Throws, ne.Position())
	return typ
}

// hasEnclosingInstance returns whether an instance of outer is available as
// an enclosing `this`.
func (w *Walker) hasEnclosingInstance(outer *types.ClassEntry) bool {
	if w.static {
		return false
	}

	for c := w.class; c != nil; c = c.Outer {
		if c.IsSubclassOf(outer) || c == outer {
			return true
		}

		if c.Modifiers&types.ModStatic != 0 || c.IsInterface {
			return false
		}
	}

	return false
}

// walkNewArray walks an array creation expression.
func (w *Walker) walkNewArray(na *ast.NewArray) types.Type {
	elem := w.resolvedType(na.Elem)

	for _, dim := range na.Dims {
		dt := w.walkExpr(dim)
		if pt, ok := types.AsPrim(dt); !ok || types.UnaryPromote(pt) != types.PrimInt {
			w.incompatible(dim.Position(), dt, types.PrimInt)
		}
	}

	if types.IsError(elem) {
		return types.Error
	}

	typ := types.MakeArray(elem, len(na.Dims)+na.ExtraDims)
	if na.Init != nil {
		if na.ExtraDims == 0 {
			w.errorf(na.Position(), logging.LMKTyping, "array initializer requires an array type")
			return types.Error
		}

		w.walkArrayInit(na.Init, typ)
	}

	return typ
}

// walkArrayInit walks an array initializer for an array of type typ.  Nested
// initializers are checked against the element type.
func (w *Walker) walkArrayInit(ai *ast.ArrayInit, typ types.Type) {
	if ai.Type() != nil {
		return
	}

	at, ok := typ.(*types.ArrayType)
	if !ok {
		if !types.IsError(typ) {
			w.errorf(ai.Position(), logging.LMKTyping, "illegal initializer for `%s`", typ.Repr())
		}

		ai.SetType(types.Error)
		return
	}

	for _, elem := range ai.Elems {
		w.walkVarInit(elem, at.Elem)
	}

	ai.SetType(typ)
}

// walkIndex walks an array access.
func (w *Walker) walkIndex(ix *ast.Index) types.Type {
	at := w.walkExpr(ix.Array)
	it := w.walkExpr(ix.Index)

	if pt, ok := types.AsPrim(it); !ok || types.UnaryPromote(pt) != types.PrimInt {
		w.incompatible(ix.Index.Position(), it, types.PrimInt)
	}

	switch v := at.(type) {
	case *types.ArrayType:
		return v.Elem
	default:
		if !types.IsError(at) {
			w.errorf(ix.Position(), logging.LMKTyping, "array required, but `%s` found", at.Repr())
		}
	}

	return types.Error
}

// walkFieldAccess walks a field access on a primary expression or `super`.
func (w *Walker) walkFieldAccess(fa *ast.FieldAccess) types.Type {
	var typ types.Type
	if fa.Super {
		if !w.checkThisUsable(fa.Position(), "super") {
			return types.Error
		}

		sup := w.class.SuperClass()
		if sup == nil {
			w.errorf(fa.Position(), logging.LMKUsage, "class `%s` has no superclass", w.class.Name)
			return types.Error
		}

		typ = sup.Type()
	} else if n, ok := fa.Target.(*ast.Name); ok {
		typ = w.walkName(n, true)
		if n.FinalKind() == ast.NameType {
			return w.walkStaticFieldAccess(fa, n.Class)
		}
	} else {
		typ = w.walkExpr(fa.Target)
	}

	field, ftyp := w.selectField(typ, fa.Name, fa.Position())
	if ftyp == nil {
		return types.Error
	}

	fa.Field = field
	if field != nil && field.IsFinal() {
		fa.SetConstant(w.fieldConstant(field))
	}

	return ftyp
}

// walkStaticFieldAccess walks a field access whose target names a class.
func (w *Walker) walkStaticFieldAccess(fa *ast.FieldAccess, class *types.ClassEntry) types.Type {
	field := class.LookupField(fa.Name)
	if field == nil {
		w.errorf(fa.Position(), logging.LMKName, "field `%s` not found in class `%s`", fa.Name, class.Name)
		return types.Error
	}

	if !w.checkFieldAccess(field, fa.Position()) {
		return types.Error
	}

	if !field.IsStatic() {
		w.errorf(fa.Position(), logging.LMKUsage, "non-static field `%s` cannot be referenced from a static context", fa.Name)
		return types.Error
	}

	fa.Field = field
	fa.SetConstant(w.fieldConstant(field))
	return field.Type
}
