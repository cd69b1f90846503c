package walk

import (
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
)

// walkMethod walks the body of a method or constructor.
func (w *Walker) walkMethod(cd *ast.ClassDecl, md *ast.MethodDecl) {
	method := md.Entry
	w.method = method
	w.static = method.IsStatic()

	if md.Body == nil {
		return
	}

	// the outermost exception frame is the throws clause of the method
	if md.Synthetic {
		w.pushCollectingFrame(method)
	} else {
		w.pushFrame(method.Throws)
	}

	w.pushScope()
	for _, param := range md.Params {
		param.Var.Type = w.resolvedType(param.Type)
		w.defineLocal(param.Var)
	}

	var completes bool
	if method.IsConstructor {
		completes = w.walkCtorBody(cd, md.Body)
	} else {
		completes = w.walkBlock(md.Body)
	}

	w.popScope()

	if md.Synthetic {
		purgeUnchecked(method)
	}

	if completes && !method.IsConstructor && !types.IsVoid(method.Return) {
		w.errorf(md.Position(), logging.LMKReach, "missing return statement in method `%s`", method.Repr())
	}
}

// walkCtorBody walks the body of a constructor.  The body starts with an
// explicit constructor call or an implicit call to the no-argument constructor
// of the superclass.
func (w *Walker) walkCtorBody(cd *ast.ClassDecl, body *ast.Block) bool {
	stmts := body.Stmts

	if len(stmts) > 0 {
		if cc, ok := stmts[0].(*ast.CtorCall); ok {
			w.walkCtorCall(cc)
			stmts = stmts[1:]
		} else {
			w.implicitSuperCall(cd, body.Position())
		}
	} else {
		w.implicitSuperCall(cd, body.Position())
	}

	w.pushScope()
	defer w.popScope()

	return w.walkStmtList(stmts, true)
}

// implicitSuperCall checks the implicit `super()` call of a constructor.
func (w *Walker) implicitSuperCall(cd *ast.ClassDecl, pos *logging.TextPosition) {
	sup := w.class.SuperClass()
	if sup == nil {
		return
	}

	ctor := w.resolveConstructorArgs(sup, nil, nil, pos, true)
	if ctor != nil {
		w.recordThrows(ctor.Throws, pos)
	}
}

// walkCtorCall walks an explicit `this(...)` or `super(...)` call.  The
// arguments may not refer to the object under construction.
func (w *Walker) walkCtorCall(cc *ast.CtorCall) {
	if cc.Ctor != nil {
		return
	}

	target := w.class
	if cc.Super {
		target = w.class.SuperClass()
		if target == nil {
			w.errorf(cc.Position(), logging.LMKUsage, "class `%s` has no superclass to call", w.class.Name)
			return
		}
	}

	w.ctorCallPending = true
	argTypes := w.walkArgs(cc.Args)
	w.ctorCallPending = false

	ctor := w.resolveConstructorArgs(target, cc.Args, argTypes, cc.Position(), cc.Super)
	if ctor == nil {
		return
	}

	if ctor == w.method {
		w.errorf(cc.Position(), logging.LMKUsage, "recursive constructor invocation of `%s`", ctor.Repr())
	}

	cc.Ctor = ctor
	w.recordThrows(ctor.Throws, cc.Position())
}

// walkVarInit walks the initializer of a field or local variable of the given
// type and returns its constant value, if any.
func (w *Walker) walkVarInit(init ast.Expr, typ types.Type) *types.Constant {
	if ai, ok := init.(*ast.ArrayInit); ok {
		w.walkArrayInit(ai, typ)
		return nil
	}

	it := w.walkExpr(init)
	if !types.IsAssignable(it, typ, init.Constant()) {
		w.incompatible(init.Position(), it, typ)
		return nil
	}

	return init.Constant()
}
