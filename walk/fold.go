package walk

import (
	"jfront/types"
	"math"
)

// Constant Folding
// ----------------
// Operators applied to constant operands are evaluated eagerly.  Operands are
// first converted to the promoted type of the operation; int results wrap to
// 32 bits.  Integer division by zero is never folded.

// foldUnary folds a unary operator whose result has type pt.
func foldUnary(op string, pt types.PrimType, c *types.Constant) *types.Constant {
	if c.IsString {
		return nil
	}

	c = c.Convert(pt)
	switch op {
	case "+":
		return c
	case "-":
		if pt == types.PrimFloat || pt == types.PrimDouble {
			return types.FloatConst(pt, -c.Float)
		}

		return types.IntConst(pt, -c.Int).Convert(pt)
	case "~":
		return types.IntConst(pt, ^c.Int).Convert(pt)
	case "!":
		return types.BoolConst(!c.Bool())
	}

	return nil
}

// foldArith folds an arithmetic or bitwise operator evaluated in type pt.
func foldArith(op string, pt types.PrimType, l, r *types.Constant) *types.Constant {
	if l.IsString || r.IsString {
		return nil
	}

	if pt == types.PrimBoolean {
		x, y := l.Bool(), r.Bool()
		switch op {
		case "&", "&&":
			return types.BoolConst(x && y)
		case "|", "||":
			return types.BoolConst(x || y)
		case "^":
			return types.BoolConst(x != y)
		}

		return nil
	}

	l, r = l.Convert(pt), r.Convert(pt)

	if pt == types.PrimFloat || pt == types.PrimDouble {
		x, y := l.Float, r.Float

		var v float64
		switch op {
		case "+":
			v = x + y
		case "-":
			v = x - y
		case "*":
			v = x * y
		case "/":
			v = x / y
		case "%":
			v = math.Mod(x, y)
		default:
			return nil
		}

		return types.FloatConst(pt, v)
	}

	x, y := l.Int, r.Int

	var v int64
	switch op {
	case "+":
		v = x + y
	case "-":
		v = x - y
	case "*":
		v = x * y
	case "/":
		if y == 0 {
			return nil
		}
		v = x / y
	case "%":
		if y == 0 {
			return nil
		}
		v = x % y
	case "&":
		v = x & y
	case "|":
		v = x | y
	case "^":
		v = x ^ y
	default:
		return nil
	}

	return types.IntConst(pt, v).Convert(pt)
}

// foldShift folds a shift of a value of type pt.  Only the low five (or six,
// for long) bits of the shift distance are used.
func foldShift(op string, pt types.PrimType, l, r *types.Constant) *types.Constant {
	if l.IsString || r.IsString {
		return nil
	}

	x := l.Convert(pt).Int

	mask := int64(31)
	if pt == types.PrimLong {
		mask = 63
	}
	s := uint(r.Int & mask)

	var v int64
	switch op {
	case "<<":
		v = x << s
	case ">>":
		v = x >> s
	case ">>>":
		if pt == types.PrimLong {
			v = int64(uint64(x) >> s)
		} else {
			v = int64(uint32(x) >> s)
		}
	default:
		return nil
	}

	return types.IntConst(pt, v).Convert(pt)
}

// foldCompare folds a comparison whose operands are compared in type pt.
func foldCompare(op string, pt types.PrimType, l, r *types.Constant) *types.Constant {
	if l.IsString || r.IsString {
		return nil
	}

	var cmp int
	switch {
	case pt == types.PrimBoolean:
		if op != "==" && op != "!=" {
			return nil
		}

		if l.Bool() != r.Bool() {
			cmp = 1
		}
	case pt == types.PrimFloat || pt == types.PrimDouble:
		x, y := l.Convert(pt).Float, r.Convert(pt).Float
		if math.IsNaN(x) || math.IsNaN(y) {
			// every comparison involving NaN is false except `!=`
			return types.BoolConst(op == "!=")
		}

		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	default:
		x, y := l.Convert(pt).Int, r.Convert(pt).Int
		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	}

	switch op {
	case "==":
		return types.BoolConst(cmp == 0)
	case "!=":
		return types.BoolConst(cmp != 0)
	case "<":
		return types.BoolConst(cmp < 0)
	case "<=":
		return types.BoolConst(cmp <= 0)
	case ">":
		return types.BoolConst(cmp > 0)
	case ">=":
		return types.BoolConst(cmp >= 0)
	}

	return nil
}

// foldConcat folds the concatenation of two constants.
func foldConcat(l, r *types.Constant) *types.Constant {
	return types.StringConst(l.String() + r.String())
}
