package types

import "jfront/common"

// Conversion Rules
// ----------------
// 1. Assignment and invocation conversion never need a cast: identity,
// widening primitive, widening reference, and (for a constant `int`
// expression whose value fits) narrowing to byte, short or char.
// 2. Casting conversion additionally permits every narrowing primitive
// conversion and every narrowing reference conversion that could succeed at
// run time.  A cast is rejected only when it is provably impossible.
// 3. The error sentinel converts to and from everything.

// wideningTable lists the primitive types each primitive widens to.
var wideningTable = map[PrimType][]PrimType{
	PrimByte:  {PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble},
	PrimShort: {PrimInt, PrimLong, PrimFloat, PrimDouble},
	PrimChar:  {PrimInt, PrimLong, PrimFloat, PrimDouble},
	PrimInt:   {PrimLong, PrimFloat, PrimDouble},
	PrimLong:  {PrimFloat, PrimDouble},
	PrimFloat: {PrimDouble},
}

// IsWideningPrimitive returns whether src widens to dest.  Identity is not a
// widening conversion.
func IsWideningPrimitive(src, dest PrimType) bool {
	for _, pt := range wideningTable[src] {
		if pt == dest {
			return true
		}
	}

	return false
}

// IsNarrowingConstant returns whether the constant c of type src may be
// implicitly narrowed to dest.
func IsNarrowingConstant(c *Constant, src, dest Type) bool {
	if c == nil || !c.IsIntLike() {
		return false
	}

	if _, ok := src.(PrimType); !ok {
		return false
	}

	dpt, ok := dest.(PrimType)
	if !ok {
		return false
	}

	switch dpt {
	case PrimByte, PrimShort, PrimChar:
		return c.FitsIn(dpt)
	}

	return false
}

// IsWideningReference returns whether a reference of type src may be used
// where dest is expected without a cast.
func IsWideningReference(src, dest Type) bool {
	if !IsReference(dest) || IsNull(dest) {
		return false
	}

	switch sv := src.(type) {
	case nullType:
		return true
	case *ClassType:
		if dce, ok := AsClass(dest); ok {
			return sv.Entry.IsSubtypeOf(dce)
		}
	case *ArrayType:
		switch dv := dest.(type) {
		case *ClassType:
			return isArraySuperName(dv.Entry.Name)
		case *ArrayType:
			if _, ok := sv.Elem.(PrimType); ok {
				return Equals(sv.Elem, dv.Elem)
			}

			if _, ok := dv.Elem.(PrimType); ok {
				return false
			}

			return Equals(sv.Elem, dv.Elem) || IsWideningReference(sv.Elem, dv.Elem)
		}
	}

	return false
}

// isArraySuperName returns whether the named class is a supertype of every
// array type.
func isArraySuperName(name string) bool {
	switch name {
	case common.ObjectClass, common.CloneableClass, common.SerializableClass:
		return true
	}

	return false
}

// IsAssignable returns whether a value of type src (with constant value c,
// which may be nil) can be assigned to a variable of type dest.  This is the
// `valid_assignment` predicate.
func IsAssignable(src, dest Type, c *Constant) bool {
	if IsError(src) || IsError(dest) || Equals(src, dest) {
		return true
	}

	if spt, ok := src.(PrimType); ok {
		if dpt, ok := dest.(PrimType); ok {
			return IsWideningPrimitive(spt, dpt) || IsNarrowingConstant(c, src, dest)
		}

		return false
	}

	return IsWideningReference(src, dest)
}

// IsInvocationConvertible returns whether an actual argument of type src may be
// passed for a formal parameter of type dest.  A constant `int` actual whose
// value fits a narrower formal is accepted as well.
func IsInvocationConvertible(src, dest Type, c *Constant) bool {
	return IsAssignable(src, dest, c)
}

// IsCastable returns whether a value of type src may be cast to dest.
func IsCastable(src, dest Type) bool {
	if IsError(src) || IsError(dest) || Equals(src, dest) {
		return true
	}

	spt, srcPrim := src.(PrimType)
	dpt, destPrim := dest.(PrimType)
	if srcPrim || destPrim {
		if srcPrim && destPrim {
			return spt.IsNumeric() && dpt.IsNumeric()
		}

		return false
	}

	if IsVoid(src) || IsVoid(dest) || IsNull(dest) {
		return false
	}

	if IsNull(src) || IsWideningReference(src, dest) {
		return true
	}

	return isNarrowingReference(src, dest)
}

// isNarrowingReference implements the narrowing reference conversions that
// are checked at run time.  It rejects only the conversions that can never
// succeed.
func isNarrowingReference(src, dest Type) bool {
	switch sv := src.(type) {
	case *ClassType:
		switch dv := dest.(type) {
		case *ClassType:
			return isNarrowingClass(sv.Entry, dv.Entry)
		case *ArrayType:
			return isArraySuperName(sv.Entry.Name)
		}
	case *ArrayType:
		if dv, ok := dest.(*ArrayType); ok {
			_, sp := sv.Elem.(PrimType)
			_, dp := dv.Elem.(PrimType)
			if sp || dp {
				return false
			}

			return IsCastable(sv.Elem, dv.Elem)
		}
	}

	return false
}

// isNarrowingClass checks a cast between two class or interface types that
// are not related by widening.
func isNarrowingClass(s, t *ClassEntry) bool {
	switch {
	case !s.IsInterface && !t.IsInterface:
		// unrelated classes can never share an instance
		return t.IsSubclassOf(s)
	case !s.IsInterface && t.IsInterface:
		if s.IsFinal() {
			return s.Implements(t)
		}

		return !hasConflictingMethods(s, t)
	case s.IsInterface && !t.IsInterface:
		if t.IsFinal() {
			return t.Implements(s)
		}

		return !hasConflictingMethods(s, t)
	default:
		return !hasConflictingMethods(s, t)
	}
}

// hasConflictingMethods returns whether a and b declare (or inherit) methods
// with the same name and argument signature but different return types.  No
// class can implement both.
func hasConflictingMethods(a, b *ClassEntry) bool {
	amethods := collectSignatures(a)
	for key, ret := range collectSignatures(b) {
		if aret, ok := amethods[key]; ok && !Equals(aret, ret) {
			return true
		}
	}

	return false
}

// collectSignatures maps `name(args)` onto the return type for every method
// visible in ce.
func collectSignatures(ce *ClassEntry) map[string]Type {
	sigs := make(map[string]Type)
	add := func(c *ClassEntry) {
		for _, method := range c.Methods {
			if method.IsConstructor {
				continue
			}

			key := method.Name + "(" + method.ArgSignature() + ")"
			if _, ok := sigs[key]; !ok {
				sigs[key] = method.Return
			}
		}
	}

	seen := make(map[*ClassEntry]struct{})
	for c := ce; c != nil; c = c.SuperClass() {
		if _, ok := seen[c]; ok {
			break
		}
		seen[c] = struct{}{}

		add(c)
	}

	ce.WalkInterfaces(func(ie *ClassEntry) bool {
		add(ie)
		return true
	})

	return sigs
}

// -----------------------------------------------------------------------------

// UnaryPromote applies unary numeric promotion: byte, short and char become
// int.
func UnaryPromote(pt PrimType) PrimType {
	switch pt {
	case PrimByte, PrimShort, PrimChar:
		return PrimInt
	}

	return pt
}

// BinaryPromote applies binary numeric promotion to two numeric operand
// types: double beats float beats long beats int.
func BinaryPromote(a, b PrimType) PrimType {
	switch {
	case a == PrimDouble || b == PrimDouble:
		return PrimDouble
	case a == PrimFloat || b == PrimFloat:
		return PrimFloat
	case a == PrimLong || b == PrimLong:
		return PrimLong
	}

	return PrimInt
}

// IsString returns whether t is the string class type.
func IsString(t Type) bool {
	return IsNamed(t, common.StringClass)
}
