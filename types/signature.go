package types

import "strings"

// Descriptor returns the JVM descriptor of a type: `I` for int,
// `Ljava/lang/String;` for a class, `[B` for a byte array and so on.  Types
// that have no descriptor (null, error, unresolved) produce a descriptor that
// can never match a real one.
func Descriptor(t Type) string {
	switch v := t.(type) {
	case PrimType:
		switch v {
		case PrimBoolean:
			return "Z"
		case PrimByte:
			return "B"
		case PrimShort:
			return "S"
		case PrimChar:
			return "C"
		case PrimInt:
			return "I"
		case PrimLong:
			return "J"
		case PrimFloat:
			return "F"
		default:
			return "D"
		}
	case voidType:
		return "V"
	case *ClassType:
		return "L" + strings.ReplaceAll(v.Entry.BinaryName, ".", "/") + ";"
	case *ArrayType:
		return "[" + Descriptor(v.Elem)
	case *OpaqueType:
		return "?" + v.Name + strings.Repeat("[", v.Dims) + ";"
	}

	return "!"
}

// ArgumentDescriptor returns the concatenated descriptors of a parameter list.
func ArgumentDescriptor(params []Type) string {
	b := strings.Builder{}
	for _, param := range params {
		b.WriteString(Descriptor(param))
	}

	return b.String()
}
