package types

import "strings"

// Type is the interface for all types known to the resolver.
type Type interface {
	// Repr returns a string representing the type as it would be written in
	// source code.
	Repr() string

	// equals takes in another Type and returns if the two types are exactly
	// identical.  It is meant to only be called through Equals.
	equals(other Type) bool
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive type.  Its value must be one of the
// enumerated primitive kinds below.
type PrimType int

// Enumeration of primitive types.  The numeric kinds are ordered so that
// widening never goes "down" the list (char being the exception handled by the
// widening table).
const (
	PrimBoolean PrimType = iota
	PrimByte
	PrimShort
	PrimChar
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

func (pt PrimType) equals(other Type) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimType) Repr() string {
	switch pt {
	case PrimBoolean:
		return "boolean"
	case PrimByte:
		return "byte"
	case PrimShort:
		return "short"
	case PrimChar:
		return "char"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	default:
		return "double"
	}
}

// IsNumeric returns whether the primitive takes part in numeric promotion.
func (pt PrimType) IsNumeric() bool {
	return pt != PrimBoolean
}

// IsIntegral returns whether the primitive is an integral type.
func (pt PrimType) IsIntegral() bool {
	return PrimByte <= pt && pt <= PrimLong
}

// primNames maps source keywords onto primitive types.
var primNames = map[string]PrimType{
	"boolean": PrimBoolean,
	"byte":    PrimByte,
	"short":   PrimShort,
	"char":    PrimChar,
	"int":     PrimInt,
	"long":    PrimLong,
	"float":   PrimFloat,
	"double":  PrimDouble,
}

// LookupPrimitive returns the primitive type named by a keyword.
func LookupPrimitive(name string) (PrimType, bool) {
	pt, ok := primNames[name]
	return pt, ok
}

// -----------------------------------------------------------------------------

type voidType struct{}

func (voidType) Repr() string { return "void" }
func (voidType) equals(other Type) bool {
	_, ok := other.(voidType)
	return ok
}

type nullType struct{}

func (nullType) Repr() string { return "null" }
func (nullType) equals(other Type) bool {
	_, ok := other.(nullType)
	return ok
}

// errorType is the sentinel assigned to expressions that failed to check.  It
// converts to and from everything so that one failure does not cascade.
type errorType struct{}

func (errorType) Repr() string { return "<error>" }
func (errorType) equals(other Type) bool {
	_, ok := other.(errorType)
	return ok
}

// The singleton special types.
var (
	Void  Type = voidType{}
	Null  Type = nullType{}
	Error Type = errorType{}
)

// IsError returns whether the type is the error sentinel.
func IsError(t Type) bool {
	_, ok := t.(errorType)
	return ok
}

// IsVoid returns whether the type is void.
func IsVoid(t Type) bool {
	_, ok := t.(voidType)
	return ok
}

// IsNull returns whether the type is the null type.
func IsNull(t Type) bool {
	_, ok := t.(nullType)
	return ok
}

// -----------------------------------------------------------------------------

// ClassType is a reference to a class or interface.  Class types are shared
// through their entry: two class types are equal iff they point to the same
// entry.
type ClassType struct {
	Entry *ClassEntry
}

func (ct *ClassType) Repr() string {
	return ct.Entry.Name
}

func (ct *ClassType) equals(other Type) bool {
	if oct, ok := other.(*ClassType); ok {
		return ct.Entry == oct.Entry
	}

	return false
}

// ArrayType is an array of some element type.
type ArrayType struct {
	Elem Type
}

func (at *ArrayType) Repr() string {
	return at.Elem.Repr() + "[]"
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return Equals(at.Elem, oat.Elem)
	}

	return false
}

// MakeArray wraps a type in the given number of array dimensions.
func MakeArray(t Type, dims int) Type {
	for i := 0; i < dims; i++ {
		t = &ArrayType{Elem: t}
	}

	return t
}

// OpaqueType stands in for a named type that has not been resolved yet.  It is
// written into every patch slot registered with the dependency registry and
// replaced once the registry is drained.
type OpaqueType struct {
	Name string
	Dims int
}

func (ot *OpaqueType) Repr() string {
	return ot.Name + strings.Repeat("[]", ot.Dims)
}

func (ot *OpaqueType) equals(other Type) bool {
	if oot, ok := other.(*OpaqueType); ok {
		return ot == oot
	}

	return false
}

// -----------------------------------------------------------------------------

// Equals returns if two types are exactly identical.  This operation is
// commutative.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.equals(b)
}

// IsReference returns whether the type is a reference type (including null).
func IsReference(t Type) bool {
	switch t.(type) {
	case *ClassType, *ArrayType, nullType:
		return true
	}

	return false
}

// AsPrim extracts the primitive type if t is one.
func AsPrim(t Type) (PrimType, bool) {
	pt, ok := t.(PrimType)
	return pt, ok
}

// AsClass extracts the class entry if t is a class type.
func AsClass(t Type) (*ClassEntry, bool) {
	if ct, ok := t.(*ClassType); ok {
		return ct.Entry, true
	}

	return nil, false
}

// IsNumeric returns whether t is a numeric primitive.
func IsNumeric(t Type) bool {
	pt, ok := t.(PrimType)
	return ok && pt.IsNumeric()
}

// IsIntegral returns whether t is an integral primitive.
func IsIntegral(t Type) bool {
	pt, ok := t.(PrimType)
	return ok && pt.IsIntegral()
}

// IsBoolean returns whether t is boolean.
func IsBoolean(t Type) bool {
	pt, ok := t.(PrimType)
	return ok && pt == PrimBoolean
}

// IsNamed returns whether t is the class type with the given qualified name.
func IsNamed(t Type, qualName string) bool {
	if ct, ok := t.(*ClassType); ok {
		return ct.Entry.Name == qualName
	}

	return false
}
