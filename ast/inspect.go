package ast

// Inspect traverses the statements and expressions rooted at node in source
// order.  It calls visit for each node; if visit returns false, the children
// of that node are skipped.  Nested class declarations are not entered.
func Inspect(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}

	switch v := node.(type) {
	case *Block:
		for _, stmt := range v.Stmts {
			Inspect(stmt, visit)
		}
	case *LocalVarDecl:
		Inspect(v.Type, visit)
		for _, vd := range v.Vars {
			if vd.Init != nil {
				Inspect(vd.Init, visit)
			}
		}
	case *ExprStmt:
		Inspect(v.Expr, visit)
	case *If:
		Inspect(v.Cond, visit)
		Inspect(v.Then, visit)
		if v.Else != nil {
			Inspect(v.Else, visit)
		}
	case *While:
		Inspect(v.Cond, visit)
		Inspect(v.Body, visit)
	case *DoWhile:
		Inspect(v.Body, visit)
		Inspect(v.Cond, visit)
	case *For:
		for _, init := range v.Init {
			Inspect(init, visit)
		}
		if v.Cond != nil {
			Inspect(v.Cond, visit)
		}
		for _, update := range v.Update {
			Inspect(update, visit)
		}
		Inspect(v.Body, visit)
	case *Labeled:
		Inspect(v.Body, visit)
	case *Return:
		if v.Value != nil {
			Inspect(v.Value, visit)
		}
	case *Throw:
		Inspect(v.Value, visit)
	case *Try:
		Inspect(v.Body, visit)
		for _, cc := range v.Catches {
			Inspect(cc.Type, visit)
			Inspect(cc.Body, visit)
		}
		if v.Finally != nil {
			Inspect(v.Finally, visit)
		}
	case *Switch:
		Inspect(v.Selector, visit)
		for _, sc := range v.Cases {
			for _, label := range sc.Labels {
				Inspect(label, visit)
			}
			for _, stmt := range sc.Body {
				Inspect(stmt, visit)
			}
		}
	case *Synchronized:
		Inspect(v.Lock, visit)
		Inspect(v.Body, visit)
	case *CtorCall:
		inspectExprs(v.Args, visit)
	case *MethodCall:
		if v.Receiver != nil {
			Inspect(v.Receiver, visit)
		}
		inspectExprs(v.Args, visit)
	case *New:
		Inspect(v.Class, visit)
		inspectExprs(v.Args, visit)
	case *NewArray:
		Inspect(v.Elem, visit)
		inspectExprs(v.Dims, visit)
		if v.Init != nil {
			Inspect(v.Init, visit)
		}
	case *ArrayInit:
		inspectExprs(v.Elems, visit)
	case *Index:
		Inspect(v.Array, visit)
		Inspect(v.Index, visit)
	case *FieldAccess:
		if v.Target != nil {
			Inspect(v.Target, visit)
		}
	case *Unary:
		Inspect(v.Operand, visit)
	case *Binary:
		Inspect(v.LHS, visit)
		Inspect(v.RHS, visit)
	case *Assign:
		Inspect(v.LHS, visit)
		Inspect(v.RHS, visit)
	case *Conditional:
		Inspect(v.Cond, visit)
		Inspect(v.Then, visit)
		Inspect(v.Else, visit)
	case *Cast:
		Inspect(v.Target, visit)
		Inspect(v.Operand, visit)
	case *InstanceOf:
		Inspect(v.Operand, visit)
		Inspect(v.Target, visit)
	}
}

func inspectExprs(exprs []Expr, visit func(Node) bool) {
	for _, expr := range exprs {
		Inspect(expr, visit)
	}
}
