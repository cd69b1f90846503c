package walk

import (
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
	"strings"
)

// Name Classification
// -------------------
// A dotted name in expression position is classified segment by segment, left
// to right.  Leading `this` and `super` segments switch the lookup to the
// enclosing class or its superclass.  The first real segment is a local
// variable, a field of the enclosing classes, a class or (failing all of
// those) the start of a package name.  After that:
//
//   - a package segment is followed by a package or a class,
//   - a class segment by a static field or a member class,
//   - an expression segment by a field of its type.
//
// The classification of every segment is stored on the name so that the name
// is only classified once.

// walkName classifies a name and returns its type.  If allowType is set, a
// name denoting a class is accepted (as the target of a static member access)
// and its type is returned; otherwise it is an error.
func (w *Walker) walkName(n *ast.Name, allowType bool) types.Type {
	if t := n.Type(); t != nil {
		return t
	}

	if !n.Resolved() {
		w.classifyName(n)
	}

	switch n.FinalKind() {
	case ast.NameExpr:
		if n.Type() == nil {
			n.SetType(types.Error)
		}

		return n.Type()
	case ast.NameType:
		if allowType {
			return n.Class.Type()
		}

		w.errorf(n.Position(), logging.LMKName, "class `%s` cannot be used as an expression", n.Class.Name)
	case ast.NamePackage:
		w.errorf(n.Position(), logging.LMKName, "undefined variable, class or package `%s`", w.unknownPrefix(n))
	}

	n.SetType(types.Error)
	return types.Error
}

// unknownPrefix returns the shortest prefix of a package-classified name that
// is not a known package: the part of the name that is actually undefined.
func (w *Walker) unknownPrefix(n *ast.Name) string {
	for i := 1; i <= len(n.Segments); i++ {
		prefix := strings.Join(n.Segments[:i], ".")
		if !w.table.HasPackage(prefix) {
			return prefix
		}
	}

	return n.String()
}

// classifyName classifies every segment of a name.  The type of an expression
// name is set on the node; class and package names leave it empty.
func (w *Walker) classifyName(n *ast.Name) {
	segs := n.Segments
	n.Kinds = make([]ast.NameKind, 0, len(segs))
	n.Fields = make([]*types.FieldEntry, len(segs))

	var typ types.Type
	var constant *types.Constant
	i := 0

	fail := func() {
		for len(n.Kinds) < len(segs) {
			n.Kinds = append(n.Kinds, ast.NameExpr)
		}

		n.SetType(types.Error)
	}

	// leading `this` and `super`
	if segs[0] == "this" || segs[0] == "super" {
		if !w.checkThisUsable(n.Position(), segs[0]) {
			fail()
			return
		}

		n.Kinds = append(n.Kinds, ast.NameExpr)
		typ = w.class.Type()

		if segs[0] == "super" {
			sup := w.class.SuperClass()
			if sup == nil || len(segs) == 1 {
				w.errorf(n.Position(), logging.LMKUsage, "`super` must be followed by a member access")
				fail()
				return
			}

			typ = sup.Type()
		}

		i = 1
	} else {
		var kind ast.NameKind
		if kind, typ, constant = w.classifyFirst(n); kind == ast.NameUnclassified {
			fail()
			return
		}

		i = 1
	}

	for ; i < len(segs); i++ {
		seg := segs[i]

		switch n.Kinds[i-1] {
		case ast.NamePackage:
			pkg := n.Package
			if entry := w.table.Lookup(pkg + "." + seg); entry != nil {
				if !w.checkClassAccess(entry, n.Position()) {
					fail()
					return
				}

				n.Class = entry
				n.Kinds = append(n.Kinds, ast.NameType)
			} else {
				n.Package = pkg + "." + seg
				n.Kinds = append(n.Kinds, ast.NamePackage)
			}
		case ast.NameType:
			class := n.Class

			if field := class.LookupField(seg); field != nil {
				if !w.checkFieldAccess(field, n.Position()) {
					fail()
					return
				}

				if !field.IsStatic() {
					w.errorf(n.Position(), logging.LMKUsage, "non-static field `%s` cannot be referenced from a static context", seg)
					fail()
					return
				}

				if i == 1 && field.Owner.TopLevel() != w.class.TopLevel() {
					n.StaticInit = true
				}

				n.Fields[i] = field
				n.Kinds = append(n.Kinds, ast.NameExpr)
				typ, constant = field.Type, w.fieldConstant(field)
			} else if nested := class.LookupNested(seg); nested != nil {
				if !w.checkClassAccess(nested, n.Position()) {
					fail()
					return
				}

				n.Class = nested
				n.Kinds = append(n.Kinds, ast.NameType)
			} else {
				w.errorf(n.Position(), logging.LMKName, "`%s` is not a member of class `%s`", seg, class.Name)
				fail()
				return
			}
		default:
			field, ftyp := w.selectField(typ, seg, n.Position())
			if ftyp == nil {
				fail()
				return
			}

			n.Fields[i] = field
			n.Kinds = append(n.Kinds, ast.NameExpr)
			typ, constant = ftyp, nil
		}
	}

	if n.FinalKind() == ast.NameExpr {
		n.SetType(typ)
		n.SetConstant(constant)
	}
}

// classifyFirst classifies the first segment of a name.  It returns the type
// and constant value of an expression segment, or NameUnclassified if an error
// was reported.
func (w *Walker) classifyFirst(n *ast.Name) (ast.NameKind, types.Type, *types.Constant) {
	name := n.Segments[0]

	if lv := w.lookupLocal(name); lv != nil {
		n.Local = lv
		n.Kinds = append(n.Kinds, ast.NameExpr)
		return ast.NameExpr, lv.Type, lv.Constant
	}

	// fields of the enclosing classes, innermost first
	static := w.static
	for c := w.class; c != nil; c = c.Outer {
		if field := c.LookupField(name); field != nil {
			if !w.checkFieldAccess(field, n.Position()) {
				return ast.NameUnclassified, nil, nil
			}

			if !field.IsStatic() {
				if static {
					w.errorf(n.Position(), logging.LMKUsage, "non-static field `%s` cannot be referenced from a static context", name)
					return ast.NameUnclassified, nil, nil
				}

				if w.ctorCallPending && c == w.class {
					w.errorf(n.Position(), logging.LMKUsage, "cannot reference `%s` before supertype constructor has been called", name)
					return ast.NameUnclassified, nil, nil
				}

				n.NeedsReceiver = true
			} else if field.Owner.TopLevel() != w.class.TopLevel() {
				n.StaticInit = true
			}

			if c == w.class && !w.checkForwardReference(field, n.Position()) {
				return ast.NameUnclassified, nil, nil
			}

			n.Fields[0] = field
			n.Kinds = append(n.Kinds, ast.NameExpr)
			return ast.NameExpr, field.Type, w.fieldConstant(field)
		}

		// a static member class has no enclosing instance
		if c.Modifiers&types.ModStatic != 0 || c.IsInterface {
			static = true
		}
	}

	entry, ambiguous := w.ctx.LookupClass(w.class, name)
	if len(ambiguous) > 0 {
		w.errorf(
			n.Position(),
			logging.LMKImport,
			"reference to `%s` is ambiguous: `%s` all match",
			name,
			strings.Join(ambiguous, "`, `"),
		)
		return ast.NameUnclassified, nil, nil
	}

	if entry != nil {
		if !w.checkClassAccess(entry, n.Position()) {
			return ast.NameUnclassified, nil, nil
		}

		n.Class = entry
		n.Kinds = append(n.Kinds, ast.NameType)
		return ast.NameType, nil, nil
	}

	if len(n.Segments) == 1 {
		w.errorf(n.Position(), logging.LMKName, "undefined variable `%s`", name)
		return ast.NameUnclassified, nil, nil
	}

	n.Package = name
	n.Kinds = append(n.Kinds, ast.NamePackage)
	return ast.NamePackage, nil, nil
}

// selectField selects the field named name of a value of type typ.  It
// returns a nil type if an error was reported.  The length of an array has no
// field entry.
func (w *Walker) selectField(typ types.Type, name string, pos *logging.TextPosition) (*types.FieldEntry, types.Type) {
	switch v := typ.(type) {
	case *types.ArrayType:
		if name == common.ArrayLength {
			return nil, types.PrimInt
		}
	case *types.ClassType:
		if field := v.Entry.LookupField(name); field != nil {
			if !w.checkFieldAccess(field, pos) {
				return nil, nil
			}

			return field, field.Type
		}

		w.errorf(pos, logging.LMKName, "field `%s` not found in class `%s`", name, v.Entry.Name)
		return nil, nil
	default:
		if types.IsError(typ) {
			return nil, nil
		}

		w.errorf(pos, logging.LMKTyping, "cannot dereference a value of type `%s`", typ.Repr())
		return nil, nil
	}

	w.errorf(pos, logging.LMKName, "field `%s` not found in type `%s`", name, typ.Repr())
	return nil, nil
}

// checkThisUsable checks that the current object may be referenced.
func (w *Walker) checkThisUsable(pos *logging.TextPosition, kw string) bool {
	if w.static {
		w.errorf(pos, logging.LMKUsage, "`%s` cannot be referenced from a static context", kw)
		return false
	}

	if w.ctorCallPending {
		w.errorf(pos, logging.LMKUsage, "cannot reference `%s` before supertype constructor has been called", kw)
		return false
	}

	return true
}

// checkForwardReference rejects the use of a field of the enclosing class,
// with the same staticness, inside an initializer that textually precedes the
// field's declaration.  The target of a simple assignment is exempt.
func (w *Walker) checkForwardReference(field *types.FieldEntry, pos *logging.TextPosition) bool {
	if w.initPos == nil || w.method != nil || w.assignTarget || field.IsStatic() != w.static {
		return true
	}

	if !positionBefore(w.initPos, field.DeclPos) && !samePosition(w.initPos, field.DeclPos) {
		return true
	}

	w.errorf(pos, logging.LMKUsage, "illegal forward reference to field `%s`", field.Name)
	return false
}

func positionBefore(a, b *logging.TextPosition) bool {
	return a.StartLn < b.StartLn || (a.StartLn == b.StartLn && a.StartCol < b.StartCol)
}

func samePosition(a, b *logging.TextPosition) bool {
	return a.StartLn == b.StartLn && a.StartCol == b.StartCol
}

// fieldConstant returns the constant value of a final field, walking its
// initializer first if it has not been walked yet.
func (w *Walker) fieldConstant(field *types.FieldEntry) *types.Constant {
	if !field.IsFinal() {
		return nil
	}

	if field.Constant == nil {
		w.session.walkField(field)
	}

	return field.Constant
}
