package syntax

import (
	"jfront/ast"
	"jfront/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	doc := `
file: p/A.java
package: p
imports: [java.io.*, q.B]
classes:
  - class: A
    modifiers: [public, abstract]
    extends: Base
    implements: [Runnable]
    fields:
      - {type: "int[]", name: xs, modifiers: [static]}
      - {type: long, names: [a, b]}
    constructors:
      - params: [{type: int, name: n}]
        body:
          - super: []
    methods:
      - name: run
        modifiers: [public]
        body:
          - local: {type: int, name: i, init: {int: 0}}
          - while:
              cond: {binary: {op: <, lhs: {name: i}, rhs: {int: 10}}}
              body:
                - expr: {postfix: {op: ++, operand: {name: i}}}
          - return:
      - {name: size, modifiers: [abstract], returns: int}
`
	cu, err := ParseUnit("A.yaml", []byte(doc))
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "p/A.java", cu.Path)
	assert.Equal(t, "p", cu.Package)

	if assert.Len(t, cu.Imports, 2) {
		assert.True(t, cu.Imports[0].OnDemand)
		assert.Equal(t, "java.io", cu.Imports[0].Name)
		assert.False(t, cu.Imports[1].OnDemand)
		assert.Equal(t, "q.B", cu.Imports[1].Name)
	}

	if !assert.Len(t, cu.Classes, 1) {
		return
	}

	cd := cu.Classes[0]
	assert.Equal(t, "A", cd.Name)
	assert.Equal(t, types.ModPublic|types.ModAbstract, cd.Modifiers)
	assert.Equal(t, "Base", cd.Super.Name)
	assert.Len(t, cd.Interfaces, 1)

	if assert.Len(t, cd.Fields, 3) {
		assert.Equal(t, "xs", cd.Fields[0].Name)
		assert.Equal(t, 1, cd.Fields[0].Type.Dims)
		assert.Equal(t, "int", cd.Fields[0].Type.Name)
		assert.Equal(t, "b", cd.Fields[2].Name)
	}

	if assert.Len(t, cd.Methods, 3) {
		run := cd.Methods[0]
		assert.Equal(t, "run", run.Name)
		assert.Nil(t, run.Return)
		assert.Len(t, run.Body.Stmts, 3)

		loop, ok := run.Body.Stmts[1].(*ast.While)
		if assert.True(t, ok) {
			cond, ok := loop.Cond.(*ast.Binary)
			assert.True(t, ok)
			assert.Equal(t, "<", cond.Op)
		}

		size := cd.Methods[1]
		assert.Equal(t, "int", size.Return.Name)
		assert.Nil(t, size.Body)

		ctor := cd.Methods[2]
		assert.True(t, ctor.Constructor)
		assert.Equal(t, "A", ctor.Name)
		_, ok = ctor.Body.Stmts[0].(*ast.CtorCall)
		assert.True(t, ok)
	}
}

func TestParseUnit_positions(t *testing.T) {
	doc := "classes:\n  - class: A\n    fields:\n      - {type: int, name: x}\n"

	cu, err := ParseUnit("A.yaml", []byte(doc))
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "A.yaml", cu.Path)

	pos := cu.Classes[0].Fields[0].Type.Position()
	assert.Equal(t, 4, pos.StartLn)
	assert.Equal(t, 16, pos.StartCol)
}

func TestParseUnit_malformed(t *testing.T) {
	testData := []struct {
		doc         string
		expectError string
	}{
		{"", "expected a mapping"},
		{"classes: [{klass: A}]", "must have a `class` or `interface` key"},
		{"classes: [{class: A, modifiers: [public, public]}]", "repeated modifier `public`"},
		{"classes: [{class: A, modifiers: [shared]}]", "unknown modifier `shared`"},
		{"classes: [{class: A, fields: [{name: x}]}]", "missing type"},
		{"classes: [{class: A, methods: [{name: f, body: [{goto: x}]}]}]", "unknown statement kind `goto`"},
		{"classes: [{class: A, methods: [{name: f, body: [{expr: {binary: {op: '**', lhs: {int: 1}, rhs: {int: 2}}}}]}]}]", "unknown binary operator `**`"},
		{"classes: [{class: A, methods: [{name: f, body: [{try: {body: []}}]}]}]", "catch clause or a finally block"},
		{"classes: [{class: A, methods: [{name: f, body: [{expr: {newarray: {type: int}}}]}]}]", "requires a dimension or an initializer"},
		{"classes: [{class: A, methods: [{name: f, body: [{expr: {postfix: {op: '-', operand: {name: x}}}}]}]}]", "is not a postfix operator"},
		{"classes: [{class: A", "failed to decode unit document"},
	}

	for _, item := range testData {
		cu, err := ParseUnit("bad.yaml", []byte(item.doc))
		assert.Nil(t, cu, item.doc)
		if assert.NotNil(t, err, item.doc) {
			assert.Contains(t, err.Error(), item.expectError, item.doc)
		}
	}
}
