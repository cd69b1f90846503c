package types

import (
	"jfront/common"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testHierarchy builds a small class hierarchy rooted at Object:
//
//	Object <- Base <- Derived (implements Shape), Final (final), Shape (interface)
//
// Sized declares `size()` returning double; Measured (interface) and Box
// declare it returning int.
func testHierarchy() map[string]*ClassEntry {
	object := NewClassEntry(common.ObjectClass)
	object.Loaded = true

	shape := NewClassEntry("p.Shape")
	shape.IsInterface = true
	shape.Modifiers = ModAbstract | ModPublic

	base := NewClassEntry("p.Base")
	base.Super = object.Type()

	derived := NewClassEntry("p.Derived")
	derived.Super = base.Type()
	derived.Interfaces = []Type{shape.Type()}

	final := NewClassEntry("p.Final")
	final.Super = object.Type()
	final.Modifiers = ModFinal

	cloneable := NewClassEntry(common.CloneableClass)
	cloneable.IsInterface = true

	sized := NewClassEntry("p.Sized")
	sized.IsInterface = true
	sized.Modifiers = ModAbstract | ModPublic
	sized.Methods = []*MethodEntry{{Name: "size", Return: PrimDouble, Owner: sized, Modifiers: ModAbstract | ModPublic}}

	measured := NewClassEntry("p.Measured")
	measured.IsInterface = true
	measured.Modifiers = ModAbstract | ModPublic
	measured.Methods = []*MethodEntry{{Name: "size", Return: PrimInt, Owner: measured, Modifiers: ModAbstract | ModPublic}}

	box := NewClassEntry("p.Box")
	box.Super = object.Type()
	box.Methods = []*MethodEntry{{Name: "size", Return: PrimInt, Owner: box, Modifiers: ModPublic}}

	return map[string]*ClassEntry{
		"Object":    object,
		"Shape":     shape,
		"Base":      base,
		"Derived":   derived,
		"Final":     final,
		"Cloneable": cloneable,
		"Sized":     sized,
		"Measured":  measured,
		"Box":       box,
	}
}

func TestIsAssignable_primitives(t *testing.T) {
	testData := []struct {
		src, dest Type
		c         *Constant
		expect    bool
	}{
		{PrimInt, PrimInt, nil, true},
		{PrimByte, PrimInt, nil, true},
		{PrimChar, PrimInt, nil, true},
		{PrimChar, PrimShort, nil, false},
		{PrimShort, PrimChar, nil, false},
		{PrimInt, PrimLong, nil, true},
		{PrimLong, PrimFloat, nil, true},
		{PrimFloat, PrimDouble, nil, true},
		{PrimDouble, PrimFloat, nil, false},
		{PrimInt, PrimByte, nil, false},
		{PrimInt, PrimByte, IntConst(PrimInt, 100), true},
		{PrimInt, PrimByte, IntConst(PrimInt, 200), false},
		{PrimInt, PrimChar, IntConst(PrimInt, -1), false},
		{PrimInt, PrimChar, IntConst(PrimInt, 65535), true},
		{PrimInt, PrimShort, IntConst(PrimInt, -32768), true},
		{PrimLong, PrimInt, IntConst(PrimLong, 1), false},
		{PrimBoolean, PrimInt, nil, false},
		{PrimInt, PrimBoolean, nil, false},
		{PrimBoolean, PrimBoolean, BoolConst(true), true},
		{Error, PrimInt, nil, true},
		{PrimInt, Error, nil, true},
	}

	for _, item := range testData {
		assert.Equal(t, item.expect, IsAssignable(item.src, item.dest, item.c), "%s -> %s", item.src.Repr(), item.dest.Repr())
	}
}

func TestIsAssignable_references(t *testing.T) {
	h := testHierarchy()
	object, shape, base, derived, final := h["Object"].Type(), h["Shape"].Type(), h["Base"].Type(), h["Derived"].Type(), h["Final"].Type()

	testData := []struct {
		src, dest Type
		expect    bool
	}{
		{derived, base, true},
		{derived, object, true},
		{derived, shape, true},
		{base, derived, false},
		{base, shape, false},
		{shape, object, true},
		{final, base, false},
		{Null, base, true},
		{Null, shape, true},
		{Null, PrimInt, false},
		{base, Null, false},
		{MakeArray(PrimInt, 1), object, true},
		{MakeArray(PrimInt, 1), h["Cloneable"].Type(), true},
		{MakeArray(PrimInt, 1), MakeArray(PrimLong, 1), false},
		{MakeArray(derived, 1), MakeArray(base, 1), true},
		{MakeArray(base, 1), MakeArray(derived, 1), false},
		{MakeArray(derived, 2), MakeArray(object, 1), true},
		{MakeArray(PrimInt, 2), MakeArray(object, 1), true},
	}

	for _, item := range testData {
		assert.Equal(t, item.expect, IsAssignable(item.src, item.dest, nil), "%s -> %s", item.src.Repr(), item.dest.Repr())
	}
}

func TestIsAssignable_reflexive(t *testing.T) {
	h := testHierarchy()
	all := []Type{
		PrimBoolean, PrimByte, PrimShort, PrimChar, PrimInt, PrimLong, PrimFloat, PrimDouble,
		h["Object"].Type(), h["Shape"].Type(), h["Derived"].Type(),
		MakeArray(PrimInt, 1), MakeArray(h["Base"].Type(), 3),
	}

	for _, typ := range all {
		assert.True(t, IsAssignable(typ, typ, nil), typ.Repr())
		assert.True(t, IsCastable(typ, typ), typ.Repr())
	}
}

func TestIsCastable(t *testing.T) {
	h := testHierarchy()
	object, shape, base, derived, final := h["Object"].Type(), h["Shape"].Type(), h["Base"].Type(), h["Derived"].Type(), h["Final"].Type()

	testData := []struct {
		src, dest Type
		expect    bool
	}{
		{PrimDouble, PrimByte, true},
		{PrimChar, PrimShort, true},
		{PrimBoolean, PrimInt, false},
		{PrimInt, object, false},
		{base, derived, true},
		{object, MakeArray(PrimInt, 1), true},
		{base, final, false},
		{final, shape, false},
		{base, shape, true},
		{shape, final, false},
		{shape, base, true},
		{Null, derived, true},
		{MakeArray(base, 1), MakeArray(derived, 1), true},
		{MakeArray(PrimInt, 1), MakeArray(PrimLong, 1), false},
		{derived, Void, false},
		{h["Box"].Type(), h["Sized"].Type(), false},
		{h["Sized"].Type(), h["Box"].Type(), false},
		{h["Sized"].Type(), h["Measured"].Type(), false},
		{h["Box"].Type(), h["Measured"].Type(), true},
		{h["Measured"].Type(), h["Box"].Type(), true},
		{base, h["Sized"].Type(), true},
	}

	for _, item := range testData {
		assert.Equal(t, item.expect, IsCastable(item.src, item.dest), "(%s) %s", item.dest.Repr(), item.src.Repr())
	}
}

func TestPromotion(t *testing.T) {
	assert.Equal(t, PrimInt, UnaryPromote(PrimByte))
	assert.Equal(t, PrimInt, UnaryPromote(PrimChar))
	assert.Equal(t, PrimLong, UnaryPromote(PrimLong))

	assert.Equal(t, PrimInt, BinaryPromote(PrimShort, PrimChar))
	assert.Equal(t, PrimLong, BinaryPromote(PrimInt, PrimLong))
	assert.Equal(t, PrimFloat, BinaryPromote(PrimLong, PrimFloat))
	assert.Equal(t, PrimDouble, BinaryPromote(PrimFloat, PrimDouble))
}

func TestConstant_Convert(t *testing.T) {
	assert.Equal(t, int64(-56), IntConst(PrimInt, 200).Convert(PrimByte).Int)
	assert.Equal(t, int64(65535), IntConst(PrimInt, -1).Convert(PrimChar).Int)
	assert.Equal(t, int64(math.MaxInt32), FloatConst(PrimDouble, 1e20).Convert(PrimInt).Int)
	assert.Equal(t, int64(math.MinInt64), FloatConst(PrimDouble, -1e30).Convert(PrimLong).Int)
	assert.Equal(t, int64(0), FloatConst(PrimDouble, math.NaN()).Convert(PrimInt).Int)
	assert.Equal(t, int64(3), FloatConst(PrimDouble, 3.9).Convert(PrimInt).Int)
	assert.Equal(t, 2.0, IntConst(PrimInt, 2).Convert(PrimDouble).Float)
}

func TestConstant_String(t *testing.T) {
	assert.Equal(t, "42", IntConst(PrimInt, 42).String())
	assert.Equal(t, "A", IntConst(PrimChar, 65).String())
	assert.Equal(t, "true", BoolConst(true).String())
	assert.Equal(t, "1.0", FloatConst(PrimDouble, 1).String())
	assert.Equal(t, "Infinity", FloatConst(PrimDouble, math.Inf(1)).String())
	assert.Equal(t, "NaN", FloatConst(PrimFloat, math.NaN()).String())
	assert.Equal(t, "-Infinity", FloatConst(PrimDouble, math.Inf(-1)).String())
	assert.Equal(t, "0.0", FloatConst(PrimDouble, 0).String())
	assert.Equal(t, "-0.0", FloatConst(PrimDouble, math.Copysign(0, -1)).String())

	testData := []struct {
		prim   PrimType
		value  float64
		expect string
	}{
		{PrimDouble, 1e6, "1000000.0"},
		{PrimDouble, 1e7, "1.0E7"},
		{PrimDouble, 1e10, "1.0E10"},
		{PrimDouble, 1e-4, "1.0E-4"},
		{PrimDouble, 1e-3, "0.001"},
		{PrimDouble, 0.00125, "0.00125"},
		{PrimDouble, 123.456, "123.456"},
		{PrimDouble, 1234567.5, "1234567.5"},
		{PrimDouble, -2.5e-7, "-2.5E-7"},
		{PrimDouble, 6.02214076e23, "6.02214076E23"},
		{PrimDouble, math.MaxFloat64, "1.7976931348623157E308"},
		{PrimFloat, 1.5, "1.5"},
		{PrimFloat, float64(float32(0.1)), "0.1"},
		{PrimFloat, float64(float32(3e10)), "3.0E10"},
	}

	for _, item := range testData {
		assert.Equal(t, item.expect, FloatConst(item.prim, item.value).String(), "%g", item.value)
	}
	assert.Equal(t, "abc", StringConst("abc").String())
}

func TestMethodEntry_Descriptor(t *testing.T) {
	h := testHierarchy()
	method := &MethodEntry{
		Name:   "f",
		Params: []Type{PrimInt, MakeArray(h["Base"].Type(), 1)},
		Return: PrimBoolean,
		Owner:  h["Derived"],
	}

	assert.Equal(t, "I[Lp/Base;", method.ArgSignature())
	assert.Equal(t, "(I[Lp/Base;)Z", method.Descriptor())
	assert.Equal(t, "f(int, p.Base[])", method.Repr())
}
