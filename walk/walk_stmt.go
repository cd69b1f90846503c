package walk

import (
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
)

// walkBlock walks a block in a new scope and returns whether it can complete
// normally.
func (w *Walker) walkBlock(b *ast.Block) bool {
	w.pushScope()
	defer w.popScope()

	return w.walkStmtList(b.Stmts, true)
}

// walkStmtList walks a list of statements in the current scope.  The
// completes flag indicates whether the first statement is reachable.  Only
// the first unreachable statement of a list is reported.
func (w *Walker) walkStmtList(stmts []ast.Stmt, completes bool) bool {
	unreachable := false

	for _, stmt := range stmts {
		if !completes && !unreachable {
			if w.dead == 0 {
				w.errorf(stmt.Position(), logging.LMKReach, "unreachable statement")
			}

			unreachable = true
			w.dead++
		}

		completes = w.walkStmt(stmt)
	}

	if unreachable {
		w.dead--
		return false
	}

	return completes
}

// walkStmt walks a statement and returns whether it can complete normally.
func (w *Walker) walkStmt(stmt ast.Stmt) bool {
	switch v := stmt.(type) {
	case *ast.Block:
		return w.walkBlock(v)
	case *ast.LocalVarDecl:
		w.walkLocalVarDecl(v)
	case *ast.ExprStmt:
		w.walkExprStmt(v.Expr)
	case *ast.If:
		return w.walkIf(v)
	case *ast.While:
		return w.walkWhile(v)
	case *ast.DoWhile:
		return w.walkDoWhile(v)
	case *ast.For:
		return w.walkFor(v)
	case *ast.Labeled:
		return w.walkLabeled(v)
	case *ast.Break:
		w.walkBreak(v)
		return false
	case *ast.Continue:
		w.walkContinue(v)
		return false
	case *ast.Return:
		w.walkReturn(v)
		return false
	case *ast.Throw:
		w.walkThrow(v)
		return false
	case *ast.Try:
		return w.walkTry(v)
	case *ast.Switch:
		return w.walkSwitch(v)
	case *ast.Synchronized:
		return w.walkSynchronized(v)
	case *ast.Empty:
	case *ast.CtorCall:
		kw := "this"
		if v.Super {
			kw = "super"
		}

		w.errorf(v.Position(), logging.LMKUsage, "call to `%s` must be first statement in constructor", kw)
	default:
		logging.LogFatal("walking unsupported statement %T", stmt)
	}

	return true
}

// walkLocalVarDecl walks a local variable declaration.  A variable is in
// scope in its own initializer.
func (w *Walker) walkLocalVarDecl(d *ast.LocalVarDecl) {
	typ := w.resolvedType(d.Type)

	for _, vd := range d.Vars {
		lv := &ast.LocalVar{Name: vd.Name, Type: typ, Final: d.Final, DeclPos: vd.Position()}
		vd.Var = lv
		w.defineLocal(lv)

		if vd.Init == nil {
			continue
		}

		c := w.walkVarInit(vd.Init, typ)
		lv.Initialized = true

		if d.Final && c != nil {
			lv.Constant = constantFor(c, typ)
		}
	}
}

// walkExprStmt walks an expression statement.  Only assignments, increments,
// method calls and instance creations may be used as statements.
func (w *Walker) walkExprStmt(expr ast.Expr) {
	w.walkExpr(expr)

	switch v := expr.(type) {
	case *ast.Assign, *ast.MethodCall, *ast.New:
		return
	case *ast.Unary:
		if v.Op == "++" || v.Op == "--" {
			return
		}
	}

	w.errorf(expr.Position(), logging.LMKUsage, "not a statement")
}

// walkCond walks a boolean condition and returns its constant value, if any.
func (w *Walker) walkCond(cond ast.Expr) *types.Constant {
	typ := w.walkExpr(cond)
	if !types.IsBoolean(typ) {
		w.incompatible(cond.Position(), typ, types.PrimBoolean)
		return nil
	}

	return cond.Constant()
}

// walkIf walks an if statement.  Its condition never makes a branch
// unreachable.
func (w *Walker) walkIf(s *ast.If) bool {
	w.walkCond(s.Cond)

	before := w.assigned.clone()
	completes := w.walkStmt(s.Then)
	thenAssigned := w.assigned

	w.assigned = before
	elseCompletes := true
	if s.Else != nil {
		elseCompletes = w.walkStmt(s.Else)
	}

	w.assigned = joinAssigned(thenAssigned, completes, w.assigned, elseCompletes)

	if s.Else == nil {
		return true
	}

	return elseCompletes || completes
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(s *ast.Return) {
	if w.method == nil {
		w.errorf(s.Position(), logging.LMKUsage, "return outside method")
		if s.Value != nil {
			w.walkExpr(s.Value)
		}

		return
	}

	ret := w.method.Return
	if w.method.IsConstructor || types.IsVoid(ret) {
		if s.Value != nil {
			w.walkExpr(s.Value)
			w.errorf(s.Value.Position(), logging.LMKTyping, "incompatible types: unexpected return value")
		}

		return
	}

	if s.Value == nil {
		w.errorf(s.Position(), logging.LMKTyping, "missing return value")
		return
	}

	typ := w.walkExpr(s.Value)
	if !types.IsAssignable(typ, ret, s.Value.Constant()) {
		w.incompatible(s.Value.Position(), typ, ret)
	}
}

// walkSynchronized walks a synchronized statement.
func (w *Walker) walkSynchronized(s *ast.Synchronized) bool {
	typ := w.walkExpr(s.Lock)
	if !types.IsReference(typ) && !types.IsError(typ) {
		w.errorf(s.Lock.Position(), logging.LMKTyping, "unexpected type: required reference, found `%s`", typ.Repr())
	} else if types.IsNull(typ) {
		w.errorf(s.Lock.Position(), logging.LMKTyping, "unexpected type: required reference, found `null`")
	}

	return w.walkBlock(s.Body)
}
