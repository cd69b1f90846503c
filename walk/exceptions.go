package walk

import (
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
)

// excFrame is one set of caught exception types: the catch clauses of an
// enclosing try statement or the throws clause of the enclosing method.
type excFrame struct {
	// caught is the list of exception types handled by the frame.
	caught []types.Type

	// thrown records every exception type thrown while the frame was open
	// and reaching it.
	thrown []*types.ClassEntry

	// collect is the synthesized constructor whose throws clause absorbs
	// every exception reaching the frame.
	collect *types.MethodEntry
}

// catches returns whether the frame handles an exception of type exc.
func (f *excFrame) catches(exc *types.ClassEntry) bool {
	for _, ct := range f.caught {
		if types.IsError(ct) || types.IsAssignable(exc.Type(), ct, nil) {
			return true
		}
	}

	return false
}

// pushFrame pushes a frame catching the given types.
func (w *Walker) pushFrame(caught []types.Type) {
	w.frames = append(w.frames, &excFrame{caught: caught})
}

// pushCollectingFrame pushes the outermost frame of a synthesized constructor.
func (w *Walker) pushCollectingFrame(ctor *types.MethodEntry) {
	w.frames = append(w.frames, &excFrame{collect: ctor})
}

// popFrame removes the top frame from the frame stack and returns it.
func (w *Walker) popFrame() *excFrame {
	f := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]
	return f
}

// recordThrows records every exception of a throws clause.
func (w *Walker) recordThrows(throws []types.Type, pos *logging.TextPosition) {
	for _, exc := range throws {
		w.recordThrow(exc, pos)
	}
}

// recordThrow records an exception thrown at pos.  The exception travels
// outward through the frames until one catches it.  A checked exception that
// no frame catches is reported.
func (w *Walker) recordThrow(exc types.Type, pos *logging.TextPosition) {
	ee, ok := types.AsClass(exc)
	if !ok {
		return
	}

	for i := len(w.frames) - 1; i > -1; i-- {
		f := w.frames[i]

		if f.collect != nil {
			addThrows(f.collect, exc)
			return
		}

		f.thrown = append(f.thrown, ee)
		if f.catches(ee) {
			return
		}
	}

	if ee.IsUncheckedException() {
		return
	}

	if w.method == nil {
		w.errorf(pos, logging.LMKException, "initializer must be able to complete normally: unreported exception `%s`", ee.Name)
	} else {
		w.errorf(pos, logging.LMKException, "unreported exception `%s`; must be caught or declared to be thrown", ee.Name)
	}
}

// addThrows adds an exception to the throws clause of a synthesized
// constructor unless it is already there.
func addThrows(ctor *types.MethodEntry, exc types.Type) {
	for _, t := range ctor.Throws {
		if types.Equals(t, exc) {
			return
		}
	}

	ctor.Throws = append(ctor.Throws, exc)
}

// purgeUnchecked removes the unchecked exceptions from the throws clause of a
// synthesized constructor.
func purgeUnchecked(ctor *types.MethodEntry) {
	throws := ctor.Throws[:0]
	for _, exc := range ctor.Throws {
		if ee, ok := types.AsClass(exc); ok && ee.IsUncheckedException() {
			continue
		}

		throws = append(throws, exc)
	}

	ctor.Throws = throws
}

// -----------------------------------------------------------------------------

// walkTry walks a try statement and checks its catch clauses.  It returns
// whether the statement can complete normally.
func (w *Walker) walkTry(tryStmt *ast.Try) bool {
	caught := make([]types.Type, len(tryStmt.Catches))
	for i, cc := range tryStmt.Catches {
		caught[i] = w.checkCatchType(cc)
	}

	w.pushFrame(caught)
	completes := w.walkBlock(tryStmt.Body)
	frame := w.popFrame()

	for i, cc := range tryStmt.Catches {
		ce, ok := types.AsClass(caught[i])
		if !ok {
			continue
		}

		if prev := earlierCatch(caught[:i], ce); prev != nil {
			w.errorf(
				cc.Position(),
				logging.LMKException,
				"catch clause is unreachable: exception `%s` has already been caught by `%s`",
				ce.Name,
				prev.Name,
			)
		} else if !ce.IsUncheckedException() && !isCatchAll(ce) && !mayBeThrown(frame, ce) {
			w.errorf(
				cc.Position(),
				logging.LMKException,
				"exception `%s` is never thrown in the body of the corresponding try statement",
				ce.Name,
			)
		}
	}

	// a catch clause may be entered from any point of the try block
	tryAssigned := w.assigned
	after := tryAssigned.clone()

	for _, cc := range tryStmt.Catches {
		w.assigned = tryAssigned.clone()
		w.pushScope()
		cc.Var = &ast.LocalVar{Name: cc.Name, Type: w.resolvedType(cc.Type), Initialized: true, DeclPos: cc.Position()}
		w.defineLocal(cc.Var)

		if w.walkBlock(cc.Body) {
			completes = true
		}

		w.popScope()
		after.union(w.assigned)
	}

	w.assigned = after

	if tryStmt.Finally != nil && !w.walkBlock(tryStmt.Finally) {
		return false
	}

	return completes
}

// checkCatchType checks that the type of a catch parameter is throwable.
func (w *Walker) checkCatchType(cc *ast.CatchClause) types.Type {
	typ := w.resolvedType(cc.Type)
	if types.IsError(typ) {
		return typ
	}

	if ce, ok := types.AsClass(typ); ok && ce.IsThrowable() {
		return typ
	}

	w.errorf(cc.Type.Position(), logging.LMKTyping, "incompatible types: `%s` is not a subclass of `%s`", typ.Repr(), common.ThrowableClass)
	return types.Error
}

// earlierCatch returns the earlier catch type that is the same as or a
// supertype of ce, if any.
func earlierCatch(earlier []types.Type, ce *types.ClassEntry) *types.ClassEntry {
	for _, et := range earlier {
		if pe, ok := types.AsClass(et); ok && ce.IsSubtypeOf(pe) {
			return pe
		}
	}

	return nil
}

// isCatchAll returns whether catching ce may catch unchecked exceptions of
// unknown origin.
func isCatchAll(ce *types.ClassEntry) bool {
	return ce.Name == common.ThrowableClass || ce.Name == common.ExceptionClass
}

// mayBeThrown returns whether some exception thrown in the try body could be
// caught by ce: it is a subclass or a superclass of ce.
func mayBeThrown(frame *excFrame, ce *types.ClassEntry) bool {
	for _, te := range frame.thrown {
		if te.IsSubtypeOf(ce) || ce.IsSubtypeOf(te) {
			return true
		}
	}

	return false
}

// walkThrow walks a throw statement.
func (w *Walker) walkThrow(throwStmt *ast.Throw) {
	typ := w.walkExpr(throwStmt.Value)
	if types.IsError(typ) || types.IsNull(typ) {
		return
	}

	if !types.IsAssignable(typ, w.classType(common.ThrowableClass), nil) {
		w.incompatible(throwStmt.Value.Position(), typ, w.classType(common.ThrowableClass))
		return
	}

	w.recordThrow(typ, throwStmt.Position())
}
