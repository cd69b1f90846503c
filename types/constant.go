package types

import (
	"math"
	"strconv"
	"strings"
)

// Constant is the value of a compile-time constant expression.  For string
// constants IsString is set and Prim is meaningless.
type Constant struct {
	Prim     PrimType
	IsString bool

	Int   int64 // boolean (0/1), integral and char values
	Float float64
	Str   string
}

// IntConst creates an integral constant of the given primitive type.
func IntConst(pt PrimType, v int64) *Constant {
	return &Constant{Prim: pt, Int: v}
}

// FloatConst creates a floating point constant of the given primitive type.
func FloatConst(pt PrimType, v float64) *Constant {
	if pt == PrimFloat {
		v = float64(float32(v))
	}

	return &Constant{Prim: pt, Float: v}
}

// BoolConst creates a boolean constant.
func BoolConst(v bool) *Constant {
	c := &Constant{Prim: PrimBoolean}
	if v {
		c.Int = 1
	}

	return c
}

// StringConst creates a string constant.
func StringConst(s string) *Constant {
	return &Constant{IsString: true, Str: s}
}

// Bool returns the value of a boolean constant.
func (c *Constant) Bool() bool {
	return c.Int != 0
}

// IsIntLike returns whether the constant is an int-sized integral constant
// (byte, short, char or int): the only constants eligible for narrowing.
func (c *Constant) IsIntLike() bool {
	if c.IsString {
		return false
	}

	switch c.Prim {
	case PrimByte, PrimShort, PrimChar, PrimInt:
		return true
	}

	return false
}

// FitsIn returns whether the integral value of the constant is representable
// in the primitive type pt.
func (c *Constant) FitsIn(pt PrimType) bool {
	switch pt {
	case PrimByte:
		return math.MinInt8 <= c.Int && c.Int <= math.MaxInt8
	case PrimShort:
		return math.MinInt16 <= c.Int && c.Int <= math.MaxInt16
	case PrimChar:
		return 0 <= c.Int && c.Int <= math.MaxUint16
	case PrimInt:
		return math.MinInt32 <= c.Int && c.Int <= math.MaxInt32
	}

	return true
}

// AsFloat returns the numeric value of the constant as a float64.
func (c *Constant) AsFloat() float64 {
	if c.Prim == PrimFloat || c.Prim == PrimDouble {
		return c.Float
	}

	return float64(c.Int)
}

// Convert returns the constant converted to the primitive type pt following
// the usual truncation rules.
func (c *Constant) Convert(pt PrimType) *Constant {
	if c.IsString {
		return c
	}

	switch pt {
	case PrimBoolean:
		return BoolConst(c.Bool())
	case PrimFloat, PrimDouble:
		return FloatConst(pt, c.AsFloat())
	}

	var v int64
	if c.Prim == PrimFloat || c.Prim == PrimDouble {
		v = truncateFloat(c.Float, pt)
	} else {
		v = c.Int
	}

	switch pt {
	case PrimByte:
		v = int64(int8(v))
	case PrimShort:
		v = int64(int16(v))
	case PrimChar:
		v = int64(uint16(v))
	case PrimInt:
		v = int64(int32(v))
	}

	return IntConst(pt, v)
}

// truncateFloat converts a floating value to an integral one, saturating at the
// bounds of int or long and mapping NaN to zero.
func truncateFloat(f float64, pt PrimType) int64 {
	if math.IsNaN(f) {
		return 0
	}

	lo, hi := float64(math.MinInt64), float64(math.MaxInt64)
	if pt != PrimLong {
		lo, hi = math.MinInt32, math.MaxInt32
	}

	switch {
	case f <= lo:
		return int64(lo)
	case f >= hi:
		if pt == PrimLong {
			return math.MaxInt64
		}
		return math.MaxInt32
	}

	return int64(f)
}

// String renders the constant the way string concatenation would.
func (c *Constant) String() string {
	if c.IsString {
		return c.Str
	}

	switch c.Prim {
	case PrimBoolean:
		return strconv.FormatBool(c.Bool())
	case PrimChar:
		return string(rune(c.Int))
	case PrimFloat:
		return formatFloat(c.Float, 32)
	case PrimDouble:
		return formatFloat(c.Float, 64)
	}

	return strconv.FormatInt(c.Int, 10)
}

// formatFloat renders a floating point value the way Java's `toString` does:
// plain decimal notation for magnitudes in [10^-3, 10^7) and `d.dddE<n>`
// otherwise, always with at least one fractional digit.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}

		return "0.0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// shortest digits that round trip, as `d.ddde±xx`
	s := strconv.FormatFloat(f, 'e', -1, bits)
	ePos := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[ePos+1:])
	digits := strings.Replace(s[:ePos], ".", "", 1)

	if 1e-3 <= f && f < 1e7 {
		return sign + plainDecimal(digits, exp)
	}

	frac := digits[1:]
	if frac == "" {
		frac = "0"
	}

	return sign + digits[:1] + "." + frac + "E" + strconv.Itoa(exp)
}

// plainDecimal places the decimal point in a digit string whose first digit
// has the decimal exponent exp.
func plainDecimal(digits string, exp int) string {
	switch {
	case exp < 0:
		return "0." + strings.Repeat("0", -exp-1) + digits
	case exp+1 >= len(digits):
		return digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	}

	return digits[:exp+1] + "." + digits[exp+1:]
}
