package walk

import (
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
	"strings"
)

// badUnaryOperand reports an operand type not accepted by a unary operator.
func (w *Walker) badUnaryOperand(u *ast.Unary, typ types.Type) types.Type {
	w.errorf(u.Position(), logging.LMKTyping, "bad operand type `%s` for unary operator `%s`", typ.Repr(), u.Op)
	return types.Error
}

// badBinaryOperands reports operand types not accepted by a binary operator.
func (w *Walker) badBinaryOperands(pos *logging.TextPosition, op string, lt, rt types.Type) types.Type {
	w.errorf(pos, logging.LMKTyping, "bad operand types for binary operator `%s`: `%s` and `%s`", op, lt.Repr(), rt.Repr())
	return types.Error
}

// walkUnary walks a unary operator application.
func (w *Walker) walkUnary(u *ast.Unary) types.Type {
	if u.Op == "++" || u.Op == "--" {
		typ := w.walkVariable(u.Operand, false)
		if types.IsError(typ) {
			return typ
		}

		if !types.IsNumeric(typ) {
			return w.badUnaryOperand(u, typ)
		}

		return typ
	}

	typ := w.walkExpr(u.Operand)
	if types.IsError(typ) {
		return typ
	}

	pt, ok := types.AsPrim(typ)
	if !ok {
		return w.badUnaryOperand(u, typ)
	}

	switch u.Op {
	case "+", "-":
		if !pt.IsNumeric() {
			return w.badUnaryOperand(u, typ)
		}
		pt = types.UnaryPromote(pt)
	case "~":
		if !pt.IsIntegral() {
			return w.badUnaryOperand(u, typ)
		}
		pt = types.UnaryPromote(pt)
	case "!":
		if pt != types.PrimBoolean {
			return w.badUnaryOperand(u, typ)
		}
	default:
		logging.LogFatal("unknown unary operator `%s`", u.Op)
	}

	if c := u.Operand.Constant(); c != nil {
		u.SetConstant(foldUnary(u.Op, pt, c))
	}

	return pt
}

// walkBinary walks a binary operator application.
func (w *Walker) walkBinary(b *ast.Binary) types.Type {
	lt, rt := w.walkExpr(b.LHS), w.walkExpr(b.RHS)
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}

	if types.IsVoid(lt) || types.IsVoid(rt) {
		w.errorf(b.Position(), logging.LMKTyping, "`void` type not allowed here")
		return types.Error
	}

	lc, rc := b.LHS.Constant(), b.RHS.Constant()
	typ, c := w.checkBinary(b.Position(), b.Op, lt, rt, lc, rc)
	if typ == nil {
		return w.badBinaryOperands(b.Position(), b.Op, lt, rt)
	}

	if b.Op == "+" && types.IsString(typ) {
		b.Concat = true
	}

	if b.Op == "==" || b.Op == "!=" {
		w.checkStringIdentity(b, lt, rt)
	}

	b.SetConstant(c)
	return typ
}

// checkBinary computes the result type and folded constant of a binary
// operator.  A nil type means the operand types are not accepted.
func (w *Walker) checkBinary(pos *logging.TextPosition, op string, lt, rt types.Type, lc, rc *types.Constant) (types.Type, *types.Constant) {
	lp, lprim := types.AsPrim(lt)
	rp, rprim := types.AsPrim(rt)
	both := lc != nil && rc != nil

	switch op {
	case "+":
		if types.IsString(lt) || types.IsString(rt) {
			if both {
				return w.stringType(), foldConcat(lc, rc)
			}

			return w.stringType(), nil
		}

		fallthrough
	case "-", "*", "/", "%":
		if !lprim || !rprim || !lp.IsNumeric() || !rp.IsNumeric() {
			return nil, nil
		}

		pt := types.BinaryPromote(lp, rp)
		if !both {
			return pt, nil
		}

		c := foldArith(op, pt, lc, rc)
		if c == nil && pt.IsIntegral() {
			w.logWarning("division by zero", logging.LMKTyping, pos)
		}

		return pt, c
	case "<<", ">>", ">>>":
		if !lprim || !rprim || !lp.IsIntegral() || !rp.IsIntegral() {
			return nil, nil
		}

		pt := types.UnaryPromote(lp)
		if both {
			return pt, foldShift(op, pt, lc, rc)
		}

		return pt, nil
	case "<", ">", "<=", ">=":
		if !lprim || !rprim || !lp.IsNumeric() || !rp.IsNumeric() {
			return nil, nil
		}

		if both {
			return types.PrimBoolean, foldCompare(op, types.BinaryPromote(lp, rp), lc, rc)
		}

		return types.PrimBoolean, nil
	case "==", "!=":
		switch {
		case lprim && rprim && lp.IsNumeric() && rp.IsNumeric():
			if both {
				return types.PrimBoolean, foldCompare(op, types.BinaryPromote(lp, rp), lc, rc)
			}
		case lprim && rprim && lp == types.PrimBoolean && rp == types.PrimBoolean:
			if both {
				return types.PrimBoolean, foldCompare(op, types.PrimBoolean, lc, rc)
			}
		case types.IsReference(lt) && types.IsReference(rt):
			if !types.IsCastable(lt, rt) && !types.IsCastable(rt, lt) {
				w.errorf(pos, logging.LMKTyping, "incomparable types: `%s` and `%s`", lt.Repr(), rt.Repr())
				return types.Error, nil
			}
		default:
			return nil, nil
		}

		return types.PrimBoolean, nil
	case "&", "|", "^":
		switch {
		case lprim && rprim && lp == types.PrimBoolean && rp == types.PrimBoolean:
			if both {
				return types.PrimBoolean, foldArith(op, types.PrimBoolean, lc, rc)
			}

			return types.PrimBoolean, nil
		case lprim && rprim && lp.IsIntegral() && rp.IsIntegral():
			pt := types.BinaryPromote(lp, rp)
			if both {
				return pt, foldArith(op, pt, lc, rc)
			}

			return pt, nil
		}

		return nil, nil
	case "&&", "||":
		if !types.IsBoolean(lt) || !types.IsBoolean(rt) {
			return nil, nil
		}

		if both {
			return types.PrimBoolean, foldArith(op, types.PrimBoolean, lc, rc)
		}

		return types.PrimBoolean, nil
	}

	logging.LogFatal("unknown binary operator `%s`", op)
	return nil, nil
}

// checkStringIdentity warns about strings compared by reference.
func (w *Walker) checkStringIdentity(b *ast.Binary, lt, rt types.Type) {
	if !types.IsString(lt) || !types.IsString(rt) {
		return
	}

	if b.LHS.Constant() != nil && b.RHS.Constant() != nil {
		return
	}

	w.logWarning(
		"strings compared with `"+b.Op+"` are compared by reference; use `equals` to compare their contents",
		logging.LMKTyping,
		b.Position(),
	)
}

// -----------------------------------------------------------------------------

// walkAssign walks a simple or compound assignment.  Its type is the type of
// the variable.
func (w *Walker) walkAssign(a *ast.Assign) types.Type {
	lt := w.walkVariable(a.LHS, a.Op == "=")
	rt := w.walkExpr(a.RHS)

	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}

	if types.IsVoid(rt) {
		w.errorf(a.RHS.Position(), logging.LMKTyping, "`void` type not allowed here")
		return types.Error
	}

	if a.Op == "=" {
		if !types.IsAssignable(rt, lt, a.RHS.Constant()) {
			w.incompatible(a.RHS.Position(), rt, lt)
			return types.Error
		}

		return lt
	}

	// `a op= b` is `a = (T)(a op b)`: the operator must accept the operands
	// and its result must be castable back to the variable
	op := strings.TrimSuffix(a.Op, "=")
	if op == "+" && types.IsString(lt) {
		return lt
	}

	typ, _ := w.checkBinary(a.Position(), op, lt, rt, nil, nil)
	if typ == nil || types.IsError(typ) || !types.IsCastable(typ, lt) {
		w.badBinaryOperands(a.Position(), op, lt, rt)
		return types.Error
	}

	return lt
}

// walkVariable walks the target of an assignment or increment and returns the
// type of the variable.  The simple flag marks the target of a simple
// assignment, which may initialize a blank final variable.
func (w *Walker) walkVariable(target ast.Expr, simple bool) types.Type {
	switch v := target.(type) {
	case *ast.Name:
		w.assignTarget = simple
		typ := w.walkName(v, false)
		w.assignTarget = false

		if types.IsError(typ) {
			return typ
		}

		if v.Local != nil && len(v.Segments) == 1 {
			if !w.checkFinalLocal(v.Local, simple, v.Position()) {
				return types.Error
			}

			return typ
		}

		field := v.Field()
		direct := len(v.Segments) == 1 || (len(v.Segments) == 2 && v.Segments[0] == "this")
		if !w.checkFinalField(field, simple && direct, v.Position()) {
			return types.Error
		}

		return typ
	case *ast.FieldAccess:
		typ := w.walkExpr(v)
		if types.IsError(typ) {
			return typ
		}

		_, direct := v.Target.(*ast.This)
		if !w.checkFinalField(v.Field, simple && direct, v.Position()) {
			return types.Error
		}

		return typ
	case *ast.Index:
		return w.walkExpr(v)
	}

	if !types.IsError(w.walkExpr(target)) {
		w.errorf(target.Position(), logging.LMKTyping, "unexpected type: required variable, found value")
	}

	return types.Error
}

// checkFinalLocal checks an assignment to a local variable.  A final local may
// only be assigned once on any path, by a simple assignment.
func (w *Walker) checkFinalLocal(lv *ast.LocalVar, simple bool, pos *logging.TextPosition) bool {
	if !lv.Final {
		return true
	}

	if lv.IsParam || lv.Initialized || !simple || w.assigned.has(lv) {
		w.errorf(pos, logging.LMKUsage, "cannot assign a value to final variable `%s`", lv.Name)
		return false
	}

	w.assigned[lv] = struct{}{}
	return true
}

// checkFinalField checks an assignment to a field.  A blank final field may
// only be assigned once on any path, by a simple assignment through its simple
// name in a constructor or initializer of its class with the same staticness.
// A nil field is the length of an array.
func (w *Walker) checkFinalField(field *types.FieldEntry, direct bool, pos *logging.TextPosition) bool {
	if field == nil {
		w.errorf(pos, logging.LMKUsage, "cannot assign a value to final variable `length`")
		return false
	}

	if !field.IsFinal() {
		return true
	}

	if direct && field.Owner == w.class && !w.hasInitializer(field) && !w.assigned.has(field) {
		if field.IsStatic() {
			if w.method == nil && w.static {
				w.assigned[field] = struct{}{}
				return true
			}
		} else if (w.method == nil && !w.static) || (w.method != nil && w.method.IsConstructor) {
			w.assigned[field] = struct{}{}
			return true
		}
	}

	w.errorf(pos, logging.LMKUsage, "cannot assign a value to final variable `%s`", field.Name)
	return false
}

// hasInitializer returns whether a field of the batch is declared with an
// initializer.
func (w *Walker) hasInitializer(field *types.FieldEntry) bool {
	site, ok := w.session.fields[field]
	return !ok || site.decl.Init != nil
}

// -----------------------------------------------------------------------------

// walkConditional walks the `c ? a : b` operator.
func (w *Walker) walkConditional(ce *ast.Conditional) types.Type {
	ct := w.walkExpr(ce.Cond)
	tt, et := w.walkExpr(ce.Then), w.walkExpr(ce.Else)

	if !types.IsBoolean(ct) && !types.IsError(ct) {
		w.incompatible(ce.Cond.Position(), ct, types.PrimBoolean)
		return types.Error
	}

	if types.IsError(ct) || types.IsError(tt) || types.IsError(et) {
		return types.Error
	}

	typ := w.conditionalType(ce, tt, et)
	if typ == nil {
		w.errorf(
			ce.Position(),
			logging.LMKTyping,
			"incompatible types in conditional expression: `%s` and `%s`",
			tt.Repr(),
			et.Repr(),
		)
		return types.Error
	}

	cc, tc, ec := ce.Cond.Constant(), ce.Then.Constant(), ce.Else.Constant()
	if cc != nil && tc != nil && ec != nil {
		if cc.Bool() {
			ce.SetConstant(constantFor(tc, typ))
		} else {
			ce.SetConstant(constantFor(ec, typ))
		}
	}

	return typ
}

// conditionalType computes the type of a conditional expression from the
// types of its operands.  It returns nil if the operands are incompatible.
func (w *Walker) conditionalType(ce *ast.Conditional, tt, et types.Type) types.Type {
	if types.Equals(tt, et) {
		if types.IsVoid(tt) {
			return nil
		}

		return tt
	}

	tp, tprim := types.AsPrim(tt)
	ep, eprim := types.AsPrim(et)
	if tprim && eprim {
		if !tp.IsNumeric() || !ep.IsNumeric() {
			return nil
		}

		switch {
		case (tp == types.PrimByte && ep == types.PrimShort) || (tp == types.PrimShort && ep == types.PrimByte):
			return types.PrimShort
		case tp < types.PrimInt && ep == types.PrimInt && types.IsNarrowingConstant(ce.Else.Constant(), et, tt):
			return tp
		case ep < types.PrimInt && tp == types.PrimInt && types.IsNarrowingConstant(ce.Then.Constant(), tt, et):
			return ep
		}

		return types.BinaryPromote(tp, ep)
	}

	if !types.IsReference(tt) || !types.IsReference(et) {
		return nil
	}

	switch {
	case types.IsNull(tt):
		return et
	case types.IsNull(et):
		return tt
	case types.IsAssignable(tt, et, nil):
		return et
	case types.IsAssignable(et, tt, nil):
		return tt
	}

	return nil
}

// walkCast walks a type cast.
func (w *Walker) walkCast(ce *ast.Cast) types.Type {
	target := w.resolvedType(ce.Target)
	typ := w.walkExpr(ce.Operand)

	if types.IsError(target) || types.IsError(typ) {
		return types.Error
	}

	if !types.IsCastable(typ, target) {
		w.errorf(ce.Position(), logging.LMKTyping, "inconvertible types: `%s` cannot be cast to `%s`", typ.Repr(), target.Repr())
		return types.Error
	}

	if c := ce.Operand.Constant(); c != nil {
		ce.SetConstant(constantFor(c, target))
	}

	return target
}

// walkInstanceOf walks the `instanceof` operator.
func (w *Walker) walkInstanceOf(io *ast.InstanceOf) types.Type {
	typ := w.walkExpr(io.Operand)
	target := w.resolvedType(io.Target)

	if types.IsError(target) || types.IsError(typ) {
		return types.PrimBoolean
	}

	if !types.IsReference(typ) {
		w.errorf(io.Operand.Position(), logging.LMKTyping, "unexpected type: required reference, found `%s`", typ.Repr())
		return types.Error
	}

	if !types.IsReference(target) {
		w.errorf(io.Target.Position(), logging.LMKTyping, "unexpected type: required reference, found `%s`", target.Repr())
		return types.Error
	}

	if !types.IsCastable(typ, target) {
		w.errorf(io.Position(), logging.LMKTyping, "inconvertible types: `%s` cannot be cast to `%s`", typ.Repr(), target.Repr())
		return types.Error
	}

	return types.PrimBoolean
}
