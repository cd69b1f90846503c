package walk

import (
	"fmt"
	"jfront/ast"
	"jfront/common"
	"jfront/logging"
	"jfront/types"
	"strings"
)

// Method Resolution
// -----------------
// Resolution happens in two stages.  The first stage collects every method of
// the given name visible from the search root (walking superclasses, then
// superinterfaces breadth-first) and keeps those applicable to the argument
// types, separating the accessible ones from the inaccessible ones.  The
// second stage counts, for every accessible applicable candidate, how many of
// the others it is more specific than: the candidate with the unique maximum
// count is selected.  No applicable candidate or a tie is an error.

// candidateSet is the set of methods considered by one resolution.
type candidateSet struct {
	// all is every method with the requested name in declaration order.
	all []*types.MethodEntry

	// applicable and inaccessible partition the applicable methods.
	applicable, inaccessible []*types.MethodEntry
}

// collectMethods collects every method named name visible from root.  A method
// overridden in a subclass (same name and argument descriptor) is visited
// only once: the most derived declaration wins.
func (w *Walker) collectMethods(root *types.ClassEntry, name string) []*types.MethodEntry {
	var methods []*types.MethodEntry
	seen := make(map[string]struct{})

	add := func(c *types.ClassEntry) {
		for _, method := range c.Methods {
			if method.IsConstructor || method.Name != name {
				continue
			}

			sig := method.ArgSignature()
			if _, ok := seen[sig]; ok {
				continue
			}
			seen[sig] = struct{}{}

			methods = append(methods, method)
		}
	}

	visited := make(map[*types.ClassEntry]struct{})
	for c := root; c != nil; c = c.SuperClass() {
		if _, ok := visited[c]; ok {
			break
		}
		visited[c] = struct{}{}

		add(c)
	}

	root.WalkInterfaces(func(ie *types.ClassEntry) bool {
		add(ie)
		return true
	})

	// interfaces implicitly declare the public methods of the root class
	if root.IsInterface {
		if obj := w.table.Lookup(common.ObjectClass); obj != nil {
			add(obj)
		}
	}

	return methods
}

// partition computes the applicable candidates of a set of methods for the
// given arguments.
func (w *Walker) partition(methods []*types.MethodEntry, args []ast.Expr, argTypes []types.Type, viaSuper bool) *candidateSet {
	cs := &candidateSet{all: methods}

	for _, method := range methods {
		if !isApplicable(method, args, argTypes) {
			continue
		}

		if w.canAccess(method.Owner, method.Modifiers, viaSuper) {
			cs.applicable = append(cs.applicable, method)
		} else {
			cs.inaccessible = append(cs.inaccessible, method)
		}
	}

	return cs
}

// isApplicable returns whether every argument is convertible to the matching
// formal parameter of the method without a cast.
func isApplicable(method *types.MethodEntry, args []ast.Expr, argTypes []types.Type) bool {
	if len(method.Params) != len(argTypes) {
		return false
	}

	for i, param := range method.Params {
		var c *types.Constant
		if args != nil {
			c = args[i].Constant()
		}

		if !types.IsInvocationConvertible(argTypes[i], param, c) {
			return false
		}
	}

	return true
}

// isMoreSpecific returns whether a is more specific than b: every parameter of
// a converts to the matching parameter of b and a is declared in the same
// class as b or in a subtype of it.
func isMoreSpecific(a, b *types.MethodEntry) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}

	if a.Owner != b.Owner && !a.Owner.IsSubtypeOf(b.Owner) {
		return false
	}

	for i, param := range a.Params {
		if !types.IsInvocationConvertible(param, b.Params[i], nil) {
			return false
		}
	}

	return true
}

// mostSpecific selects the most specific of the applicable candidates.  It
// returns nil and the tied candidates if there is no unique maximum.
func mostSpecific(applicable []*types.MethodEntry) (*types.MethodEntry, []*types.MethodEntry) {
	if len(applicable) == 1 {
		return applicable[0], nil
	}

	counts := make([]int, len(applicable))
	maxCount := 0
	for i, a := range applicable {
		for j, b := range applicable {
			if i != j && isMoreSpecific(a, b) {
				counts[i]++
			}
		}

		if counts[i] > maxCount {
			maxCount = counts[i]
		}
	}

	var tied []*types.MethodEntry
	for i, count := range counts {
		if count == maxCount {
			tied = append(tied, applicable[i])
		}
	}

	if len(tied) == 1 {
		return tied[0], nil
	}

	return nil, tied
}

// -----------------------------------------------------------------------------

// resolveMethod selects the method named name to call with the given
// arguments, searching from root.  Errors are reported at pos; nil is returned
// if no method could be bound.
func (w *Walker) resolveMethod(root *types.ClassEntry, name string, args []ast.Expr, argTypes []types.Type, pos *logging.TextPosition, viaSuper bool) *types.MethodEntry {
	if hasErrorType(argTypes) {
		return nil
	}

	cs := w.partition(w.collectMethods(root, name), args, argTypes, viaSuper)
	return w.selectCandidate(cs, root, "method", name, argTypes, pos)
}

// resolveConstructorArgs selects the constructor of class to call with the
// given (already walked) arguments.
func (w *Walker) resolveConstructorArgs(class *types.ClassEntry, args []ast.Expr, argTypes []types.Type, pos *logging.TextPosition, viaSuper bool) *types.MethodEntry {
	if hasErrorType(argTypes) {
		return nil
	}

	cs := w.partition(class.Constructors(), args, argTypes, viaSuper)
	return w.selectCandidate(cs, class, "constructor", class.SimpleName, argTypes, pos)
}

// selectCandidate runs the second stage of resolution and reports failures.
func (w *Walker) selectCandidate(cs *candidateSet, root *types.ClassEntry, what, name string, argTypes []types.Type, pos *logging.TextPosition) *types.MethodEntry {
	if len(cs.applicable) == 0 {
		if len(cs.inaccessible) > 0 {
			method := cs.inaccessible[0]
			w.errorf(
				pos,
				logging.LMKAccess,
				"%s `%s` has %s access in `%s`",
				memberKind(method),
				method.Repr(),
				types.VisibilityName(method.Modifiers),
				method.Owner.Name,
			)
			return nil
		}

		msg := fmt.Sprintf("no %s matching `%s(%s)` found in class `%s`", what, name, reprTypes(argTypes), root.Name)
		if candidates := w.accessibleCandidates(cs.all); candidates != "" {
			msg += "; candidates are: " + candidates
		}

		w.logError(msg, logging.LMKOverload, pos)
		return nil
	}

	method, tied := mostSpecific(cs.applicable)
	if method == nil {
		w.errorf(
			pos,
			logging.LMKOverload,
			"reference to `%s(%s)` is ambiguous; candidates are: %s",
			name,
			reprTypes(argTypes),
			w.accessibleCandidates(tied),
		)
		return nil
	}

	return method
}

// accessibleCandidates renders the signatures of the accessible methods.
func (w *Walker) accessibleCandidates(methods []*types.MethodEntry) string {
	var sigs []string
	for _, method := range methods {
		if w.canAccess(method.Owner, method.Modifiers, true) {
			sigs = append(sigs, fmt.Sprintf("`%s` in `%s`", method.Repr(), method.Owner.Name))
		}
	}

	return strings.Join(sigs, ", ")
}

func memberKind(method *types.MethodEntry) string {
	if method.IsConstructor {
		return "constructor"
	}

	return "method"
}

// reprTypes renders a list of argument types.
func reprTypes(ts []types.Type) string {
	reprs := make([]string, len(ts))
	for i, t := range ts {
		reprs[i] = t.Repr()
	}

	return strings.Join(reprs, ", ")
}

// hasErrorType returns whether any of the types is the error sentinel.
func hasErrorType(ts []types.Type) bool {
	for _, t := range ts {
		if types.IsError(t) {
			return true
		}
	}

	return false
}
