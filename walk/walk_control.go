package walk

import (
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
)

// Completion and Jumps
// --------------------
// Every statement walker returns whether the statement can complete normally.
// A loop or labeled statement completes if it is the target of a reachable
// `break`; a do statement also continues if it is the target of a reachable
// `continue`.  Loops and switches are kept on the breakables stack, labeled
// statements on the label stack, so that jumps can be bound as they are walked.

// walkWhile walks a while loop.
func (w *Walker) walkWhile(s *ast.While) bool {
	c := w.walkCond(s.Cond)

	w.breakables = append(w.breakables, s)
	w.walkLoopBody(s.Body, c)
	w.breakables = w.breakables[:len(w.breakables)-1]

	return !isConstTrue(c) || w.breaks[s]
}

// walkDoWhile walks a do statement.
func (w *Walker) walkDoWhile(s *ast.DoWhile) bool {
	w.breakables = append(w.breakables, s)
	completes := w.walkStmt(s.Body)
	w.breakables = w.breakables[:len(w.breakables)-1]

	c := w.walkCond(s.Cond)

	return ((completes || w.continues[s]) && !isConstTrue(c)) || w.breaks[s]
}

// walkFor walks a for statement.  Its init statements are scoped to the
// statement; a missing condition is constant true.
func (w *Walker) walkFor(s *ast.For) bool {
	w.pushScope()
	defer w.popScope()

	for _, init := range s.Init {
		w.walkStmt(init)
	}

	c := types.BoolConst(true)
	if s.Cond != nil {
		c = w.walkCond(s.Cond)
	}

	w.breakables = append(w.breakables, s)
	w.walkLoopBody(s.Body, c)
	w.breakables = w.breakables[:len(w.breakables)-1]

	for _, update := range s.Update {
		w.walkExprStmt(update)
	}

	return !isConstTrue(c) || w.breaks[s]
}

// walkLoopBody walks the body of a while or for loop.  The body is
// unreachable if the condition is constant false.
func (w *Walker) walkLoopBody(body ast.Stmt, cond *types.Constant) {
	if cond != nil && !cond.Bool() {
		if w.dead == 0 {
			w.errorf(body.Position(), logging.LMKReach, "unreachable statement")
		}

		w.dead++
		defer func() { w.dead-- }()
	}

	w.walkStmt(body)
}

func isConstTrue(c *types.Constant) bool {
	return c != nil && c.Bool()
}

// walkLabeled walks a labeled statement.
func (w *Walker) walkLabeled(s *ast.Labeled) bool {
	if w.findLabel(s.Label) != nil {
		w.errorf(s.Position(), logging.LMKDef, "label `%s` is already in use", s.Label)
	}

	w.labels = append(w.labels, s)
	completes := w.walkStmt(s.Body)
	w.labels = w.labels[:len(w.labels)-1]

	return completes || w.breaks[s]
}

// findLabel returns the innermost open labeled statement with the given
// label.
func (w *Walker) findLabel(label string) *ast.Labeled {
	for i := len(w.labels) - 1; i > -1; i-- {
		if w.labels[i].Label == label {
			return w.labels[i]
		}
	}

	return nil
}

// walkBreak binds a break statement.  An unlabeled break exits the innermost
// loop or switch; a labeled break exits the labeled statement.
func (w *Walker) walkBreak(s *ast.Break) {
	if s.Label == "" {
		if len(w.breakables) == 0 {
			w.errorf(s.Position(), logging.LMKUsage, "break outside switch or loop")
			return
		}

		s.Target = w.breakables[len(w.breakables)-1]
	} else {
		labeled := w.findLabel(s.Label)
		if labeled == nil {
			w.errorf(s.Position(), logging.LMKUsage, "undefined label: `%s`", s.Label)
			return
		}

		s.Target = labeled
	}

	if w.dead == 0 {
		w.breaks[s.Target] = true
	}
}

// walkContinue binds a continue statement.  Its target is always a loop: a
// labeled continue must name a labeled loop.
func (w *Walker) walkContinue(s *ast.Continue) {
	if s.Label == "" {
		for i := len(w.breakables) - 1; i > -1; i-- {
			if isLoop(w.breakables[i]) {
				s.Target = w.breakables[i]
				break
			}
		}

		if s.Target == nil {
			w.errorf(s.Position(), logging.LMKUsage, "continue outside of loop")
			return
		}
	} else {
		labeled := w.findLabel(s.Label)
		if labeled == nil {
			w.errorf(s.Position(), logging.LMKUsage, "undefined label: `%s`", s.Label)
			return
		}

		body := labeled.Body
		for {
			if inner, ok := body.(*ast.Labeled); ok {
				body = inner.Body
			} else {
				break
			}
		}

		if !isLoop(body) {
			w.errorf(s.Position(), logging.LMKUsage, "not a loop label: `%s`", s.Label)
			return
		}

		s.Target = body
	}

	if w.dead == 0 {
		w.continues[s.Target] = true
	}
}

func isLoop(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case *ast.While, *ast.DoWhile, *ast.For:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// walkSwitch walks a switch statement.  The switch block is a single scope;
// every case group is reachable through its labels.
func (w *Walker) walkSwitch(s *ast.Switch) bool {
	st := w.walkExpr(s.Selector)

	switch pt, _ := types.AsPrim(st); {
	case types.IsError(st):
	case types.IsIntegral(st) && pt != types.PrimLong:
	default:
		w.errorf(s.Selector.Position(), logging.LMKTyping, "incompatible types: `%s` cannot be used as a switch selector", st.Repr())
		st = types.Error
	}

	seen := make(map[int64]struct{})
	hasDefault := false

	for _, sc := range s.Cases {
		if sc.Default {
			if hasDefault {
				w.errorf(sc.Position(), logging.LMKDef, "duplicate default label")
			}

			hasDefault = true
		}

		for _, label := range sc.Labels {
			w.walkCaseLabel(label, st, seen)
		}
	}

	w.pushScope()
	defer w.popScope()

	// each case group is entered from the selector or by falling through
	before := w.assigned
	after := before.clone()
	fallsThrough := false

	w.breakables = append(w.breakables, s)
	completes := true
	for _, sc := range s.Cases {
		start := before.clone()
		if fallsThrough {
			start.union(w.assigned)
		}

		w.assigned = start
		completes = w.walkStmtList(sc.Body, true)
		fallsThrough = completes
		after.union(w.assigned)
	}
	w.breakables = w.breakables[:len(w.breakables)-1]

	w.assigned = after

	return len(s.Cases) == 0 || completes || !hasDefault || w.breaks[s]
}

// walkCaseLabel checks a case label: it must be a constant assignable to the
// type of the selector and distinct from every other label.
func (w *Walker) walkCaseLabel(label ast.Expr, st types.Type, seen map[int64]struct{}) {
	lt := w.walkExpr(label)
	if types.IsError(lt) || types.IsError(st) {
		return
	}

	c := label.Constant()
	if c == nil {
		w.errorf(label.Position(), logging.LMKTyping, "constant expression required")
		return
	}

	if !types.IsAssignable(lt, st, c) {
		w.incompatible(label.Position(), lt, st)
		return
	}

	v := c.Convert(types.PrimInt).Int
	if _, ok := seen[v]; ok {
		w.errorf(label.Position(), logging.LMKDef, "duplicate case label")
		return
	}

	seen[v] = struct{}{}
}
