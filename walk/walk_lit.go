package walk

import (
	"jfront/ast"
	"jfront/logging"
	"jfront/types"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// walkLiteral walks a literal: its type is determined by its kind and its
// value becomes the constant value of the node.
func (w *Walker) walkLiteral(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.LitInt:
		return w.walkIntLit(lit, types.PrimInt)
	case ast.LitLong:
		return w.walkIntLit(lit, types.PrimLong)
	case ast.LitFloat:
		return w.walkFloatLit(lit, types.PrimFloat)
	case ast.LitDouble:
		return w.walkFloatLit(lit, types.PrimDouble)
	case ast.LitChar:
		return w.walkCharLit(lit)
	case ast.LitString:
		lit.SetConstant(types.StringConst(lit.Value))
		return w.stringType()
	case ast.LitBool:
		b, err := strconv.ParseBool(lit.Value)
		if err != nil {
			w.errorf(lit.Position(), logging.LMKTyping, "invalid boolean literal `%s`", lit.Value)
			return types.Error
		}

		lit.SetConstant(types.BoolConst(b))
		return types.PrimBoolean
	case ast.LitNull:
		return types.Null
	}

	logging.LogFatal("unknown literal kind %d", lit.Kind)
	return nil
}

// walkIntLit walks an integer literal.  Decimal literals must fit the signed
// range of their type; hexadecimal and octal literals may use every bit.
func (w *Walker) walkIntLit(lit *ast.Literal, pt types.PrimType) types.Type {
	text := strings.TrimRight(lit.Value, "lL")

	bits := 32
	if pt == types.PrimLong {
		bits = 64
	}

	var v int64
	if len(text) > 1 && text[0] == '0' {
		// hexadecimal and octal literals denote bit patterns
		x, err := strconv.ParseUint(text, 0, bits)
		if err != nil {
			return w.intLitError(lit, err)
		}

		if bits == 32 {
			v = int64(int32(uint32(x)))
		} else {
			v = int64(x)
		}
	} else {
		x, err := strconv.ParseInt(text, 10, bits)
		if err != nil {
			// the magnitude of the most negative value is allowed as the
			// operand of unary minus; the minus applies the wraparound
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange && isMinMagnitude(text, bits) {
				x = math.MinInt64
				if bits == 32 {
					x = math.MinInt32
				}
			} else {
				return w.intLitError(lit, err)
			}
		}

		v = x
	}

	lit.SetConstant(types.IntConst(pt, v))
	return pt
}

// isMinMagnitude returns whether text is the magnitude of the most negative
// value of a signed integer of the given size.
func isMinMagnitude(text string, bits int) bool {
	if bits == 32 {
		return text == "2147483648"
	}

	return text == "9223372036854775808"
}

func (w *Walker) intLitError(lit *ast.Literal, err error) types.Type {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		w.errorf(lit.Position(), logging.LMKTyping, "integer number too large: `%s`", lit.Value)
	} else {
		w.errorf(lit.Position(), logging.LMKTyping, "malformed integer literal `%s`", lit.Value)
	}

	return types.Error
}

// walkFloatLit walks a floating point literal.
func (w *Walker) walkFloatLit(lit *ast.Literal, pt types.PrimType) types.Type {
	text := strings.TrimRight(lit.Value, "fFdD")

	bits := 64
	if pt == types.PrimFloat {
		bits = 32
	}

	x, err := strconv.ParseFloat(text, bits)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			w.errorf(lit.Position(), logging.LMKTyping, "floating point number too large: `%s`", lit.Value)
		} else {
			w.errorf(lit.Position(), logging.LMKTyping, "malformed floating point literal `%s`", lit.Value)
		}

		return types.Error
	}

	if x == 0 && strings.ContainsAny(text, "123456789") {
		w.errorf(lit.Position(), logging.LMKTyping, "floating point number too small: `%s`", lit.Value)
		return types.Error
	}

	lit.SetConstant(types.FloatConst(pt, x))
	return pt
}

// walkCharLit walks a character literal.  The value is a single character or
// an escape sequence.
func (w *Walker) walkCharLit(lit *ast.Literal) types.Type {
	text := lit.Value

	var r rune
	if len(text) > 1 && text[0] == '\\' {
		switch text {
		case "\\n":
			r = '\n'
		case "\\t":
			r = '\t'
		case "\\r":
			r = '\r'
		case "\\b":
			r = '\b'
		case "\\f":
			r = '\f'
		case "\\0":
			r = 0
		case "\\\\":
			r = '\\'
		case "\\'":
			r = '\''
		case "\\\"":
			r = '"'
		default:
			if text[1] != 'u' {
				w.errorf(lit.Position(), logging.LMKTyping, "illegal escape character in character literal `%s`", text)
				return types.Error
			}

			x, err := strconv.ParseUint(strings.TrimLeft(text[1:], "u"), 16, 16)
			if err != nil {
				w.errorf(lit.Position(), logging.LMKTyping, "illegal unicode escape `%s`", text)
				return types.Error
			}

			r = rune(x)
		}
	} else {
		var size int
		r, size = utf8.DecodeRuneInString(text)
		if r == utf8.RuneError || size != len(text) || r > 0xFFFF {
			w.errorf(lit.Position(), logging.LMKTyping, "invalid character literal `%s`", text)
			return types.Error
		}
	}

	lit.SetConstant(types.IntConst(types.PrimChar, int64(r)))
	return types.PrimChar
}
