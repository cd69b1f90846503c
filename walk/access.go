package walk

import (
	"jfront/logging"
	"jfront/types"
)

// canAccess returns whether a member of owner with the given modifiers is
// accessible from the enclosing class.  The viaSuper flag marks accesses made
// on behalf of a subclass (inherited members, `super` calls), which may reach
// protected members in other packages.
func (w *Walker) canAccess(owner *types.ClassEntry, mods int, viaSuper bool) bool {
	switch {
	case mods&types.ModPublic != 0:
		return true
	case mods&types.ModPrivate != 0:
		return owner.TopLevel() == w.class.TopLevel()
	case owner.Package == w.class.Package:
		return true
	case mods&types.ModProtected != 0:
		if viaSuper {
			return true
		}

		for c := w.class; c != nil; c = c.Outer {
			if c.IsSubclassOf(owner) {
				return true
			}
		}
	}

	return false
}

// canAccessClass returns whether a class is accessible from the enclosing
// class.
func (w *Walker) canAccessClass(entry *types.ClassEntry) bool {
	if entry.Outer != nil {
		return w.canAccess(entry.Outer, entry.Modifiers, false)
	}

	return entry.IsPublic() || entry.Package == w.class.Package
}

// checkFieldAccess reports an inaccessible field.
func (w *Walker) checkFieldAccess(field *types.FieldEntry, pos *logging.TextPosition) bool {
	if w.canAccess(field.Owner, field.Modifiers, false) {
		return true
	}

	w.errorf(
		pos,
		logging.LMKAccess,
		"field `%s` has %s access in `%s`",
		field.Name,
		types.VisibilityName(field.Modifiers),
		field.Owner.Name,
	)
	return false
}

// checkClassAccess reports an inaccessible class.
func (w *Walker) checkClassAccess(entry *types.ClassEntry, pos *logging.TextPosition) bool {
	if w.canAccessClass(entry) {
		return true
	}

	if entry.Outer != nil {
		w.errorf(
			pos,
			logging.LMKAccess,
			"class `%s` has %s access in `%s`",
			entry.Name,
			types.VisibilityName(entry.Modifiers),
			entry.Outer.Name,
		)
	} else {
		w.errorf(
			pos,
			logging.LMKAccess,
			"class `%s` is not public in package `%s`; it cannot be accessed from outside the package",
			entry.Name,
			entry.Package,
		)
	}

	return false
}
