package depm

import (
	"fmt"
	"jfront/ast"
	"jfront/logging"
	"jfront/syntax"
	"jfront/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// declareAll declares and resolves the given unit documents and returns the
// class table along with the error messages reported.
func declareAll(t *testing.T, docs ...string) (*ClassTable, []string) {
	logging.Initialize("", "silent")

	table := NewClassTable(NewStubLoader())
	reg := NewRegistry(table)

	for i, doc := range docs {
		cu, err := syntax.ParseUnit(fmt.Sprintf("Unit%d.yaml", i), []byte(doc))
		if !assert.Nil(t, err, doc) {
			t.FailNow()
		}

		DeclareUnit(table, reg, cu)
	}

	reg.ResolveAll()
	assert.Equal(t, 0, reg.Len())

	var msgs []string
	for _, diag := range logging.Diagnostics() {
		msgs = append(msgs, diag.Message)
	}

	return table, msgs
}

func TestDeclare_mutualReferences(t *testing.T) {
	a := `
package: p
classes:
  - class: A
    fields:
      - {type: B, name: b}
    methods:
      - {name: make, returns: "B[]", params: [{type: A, name: other}], body: [{return: {null: ~}}]}
`
	b := `
package: p
classes:
  - class: B
    extends: A
    fields:
      - {type: A, name: a}
`
	table, msgs := declareAll(t, a, b)
	assert.Empty(t, msgs)

	ae, be := table.Lookup("p.A"), table.Lookup("p.B")
	if !assert.NotNil(t, ae) || !assert.NotNil(t, be) {
		return
	}

	assert.True(t, ae.Complete)
	assert.True(t, types.Equals(be.Type(), ae.Fields[0].Type))
	assert.True(t, types.Equals(ae.Type(), be.Fields[0].Type))
	assert.Same(t, ae, be.SuperClass())
	assert.True(t, types.Equals(types.MakeArray(be.Type(), 1), ae.Methods[0].Return))
	assert.Equal(t, "(Lp/A;)[Lp/B;", ae.Methods[0].Descriptor())
}

func TestDeclare_missingSuperclass(t *testing.T) {
	src := `
classes:
  - class: A
    extends: Missing
    fields:
      - {type: Gone, name: g}
`
	table, msgs := declareAll(t, src)

	if assert.Len(t, msgs, 2) {
		assert.Equal(t, "superclass `Missing` of class `A` not found", msgs[0])
		assert.Equal(t, "type `Gone` of field `g` not found", msgs[1])
	}

	entry := table.Lookup("A")
	if assert.NotNil(t, entry) {
		assert.True(t, entry.SuperClass().IsRoot())
		assert.True(t, types.IsError(entry.Fields[0].Type))
	}
}

func TestDeclare_imports(t *testing.T) {
	pa := "package: a\nclasses: [{class: X}, {class: Y}]\n"
	pb := "package: b\nclasses: [{class: X}]\n"

	testData := []struct {
		src    string
		expect []string
	}{
		{"package: c\nimports: [a.*, b.*]\nclasses: [{class: C, fields: [{type: Y, name: y}]}]", nil},
		{"package: c\nimports: [a.*, b.*]\nclasses: [{class: C, fields: [{type: X, name: x}]}]", []string{"reference to `X` is ambiguous"}},
		{"package: c\nimports: [a.X, b.*]\nclasses: [{class: C, fields: [{type: X, name: x}]}]", nil},
		{"package: c\nimports: [a.X, b.X]\nclasses: [{class: C}]", []string{"ambiguous import: `X` is already imported as `a.X`"}},
		{"package: c\nimports: [a.Z]\nclasses: [{class: C}]", []string{"imported class `a.Z` not found"}},
		{"package: c\nimports: [nowhere.*]\nclasses: [{class: C}]", []string{"package `nowhere` not found"}},
		{"package: c\nimports: [java.io.*]\nclasses: [{class: C, fields: [{type: IOException, name: e}]}]", nil},
	}

	for _, item := range testData {
		_, msgs := declareAll(t, pa, pb, item.src)
		if assert.Len(t, msgs, len(item.expect), "%s\n%s", item.src, strings.Join(msgs, "\n")) {
			for i, msg := range msgs {
				assert.Contains(t, msg, item.expect[i], item.src)
			}
		}
	}
}

func TestDeclare_hierarchy(t *testing.T) {
	testData := []struct {
		src    string
		expect []string
	}{
		{"classes: [{class: A, extends: B}, {class: B, extends: A}]", []string{"cyclic inheritance involving `A`"}},
		{"classes: [{class: A, extends: A}]", []string{"cyclic inheritance involving `A`"}},
		{"classes: [{interface: I, extends: [J]}, {interface: J, extends: [I]}]", []string{"cyclic inheritance involving `I`"}},
		{"classes: [{class: A, extends: Runnable}]", []string{"class `A` cannot extend interface `java.lang.Runnable`"}},
		{"classes: [{class: A, extends: String}]", []string{"cannot inherit from final class `java.lang.String`"}},
		{"classes: [{class: A, implements: [Object]}]", []string{"`java.lang.Object` is not an interface and cannot be implemented"}},
		{"classes: [{class: A}, {class: A}]", []string{"duplicate class `A`"}},
		{"classes: [{class: A, modifiers: [abstract, final]}]", []string{"cannot be both abstract and final"}},
	}

	for _, item := range testData {
		table, msgs := declareAll(t, item.src)
		if assert.Len(t, msgs, len(item.expect), "%s\n%s", item.src, strings.Join(msgs, "\n")) {
			for i, msg := range msgs {
				assert.Contains(t, msg, item.expect[i], item.src)
			}
		}

		// the hierarchy is always acyclic after resolution
		for _, entry := range table.Declared() {
			assert.False(t, entry.IsSubclassOf(entry), item.src)
		}
	}
}

func TestDeclare_members(t *testing.T) {
	testData := []struct {
		src    string
		expect []string
	}{
		{"classes: [{class: A, fields: [{type: int, name: x}, {type: long, name: x}]}]", []string{"field `x` is already defined in class `A`"}},
		{"classes: [{class: A, methods: [{name: f, params: [{type: int, name: a}], body: []}, {name: f, params: [{type: int, name: b}], returns: int, body: []}]}]", []string{"method `f(int)` is already defined in class `A`"}},
		{"classes: [{class: A, methods: [{name: f, params: [{type: int, name: a}, {type: int, name: a}], body: []}]}]", []string{"parameter `a` is already defined"}},
		{"classes: [{class: A, methods: [{name: f}]}]", []string{"method `f` requires a body"}},
		{"classes: [{class: A, methods: [{name: f, modifiers: [abstract]}]}]", []string{"class `A` must be declared abstract"}},
		{"classes: [{class: A, modifiers: [abstract], methods: [{name: f, modifiers: [abstract, private]}]}]", []string{"illegal combination of modifiers"}},
		{"classes: [{interface: I, methods: [{name: f, body: []}]}]", []string{"interface method `f` cannot have a body"}},
		{"classes: [{class: A, methods: [{name: f, throws: [String], body: []}]}]", []string{"class `java.lang.String` in throws clause is not throwable"}},
		{"classes: [{class: A, methods: [{name: f, params: [{type: Nope, name: n}], body: []}]}]", []string{
			"type `Nope` of argument `n` of `f` not found",
			"type `Nope` of parameter `n` not found",
		}},
	}

	for _, item := range testData {
		_, msgs := declareAll(t, item.src)
		if assert.Len(t, msgs, len(item.expect), "%s\n%s", item.src, strings.Join(msgs, "\n")) {
			for i, msg := range msgs {
				assert.Contains(t, msg, item.expect[i], item.src)
			}
		}
	}
}

func TestDeclare_nestedAndDefaults(t *testing.T) {
	src := `
package: p
classes:
  - class: Outer
    modifiers: [public]
    classes:
      - class: Inner
        modifiers: [static]
        fields:
          - {type: Inner, name: next}
  - interface: Shape
    fields:
      - {type: int, name: SIDES, init: {int: 4}}
    methods:
      - {name: area, returns: double}
`
	table, msgs := declareAll(t, src)
	assert.Empty(t, msgs)

	outer := table.Lookup("p.Outer")
	inner := table.Lookup("p.Outer.Inner")
	if !assert.NotNil(t, outer) || !assert.NotNil(t, inner) {
		return
	}

	assert.Equal(t, "p.Outer$Inner", inner.BinaryName)
	assert.Same(t, outer, inner.Outer)
	assert.Same(t, inner, outer.LookupNested("Inner"))
	assert.True(t, types.Equals(inner.Type(), inner.Fields[0].Type))

	// a class without constructors gets a public no-argument one
	ctors := outer.Constructors()
	if assert.Len(t, ctors, 1) {
		assert.True(t, ctors[0].Synthetic)
		assert.Empty(t, ctors[0].Params)
		assert.Equal(t, types.ModPublic, ctors[0].Modifiers)
	}

	shape := table.Lookup("p.Shape")
	if assert.NotNil(t, shape) {
		assert.Empty(t, shape.Constructors())
		assert.True(t, shape.Fields[0].IsStatic())
		assert.True(t, shape.Fields[0].IsFinal())
		assert.True(t, shape.Methods[0].IsAbstract())
		assert.Nil(t, shape.Super)
	}
}

func TestDeclare_bodyTypes(t *testing.T) {
	src := `
classes:
  - class: A
    methods:
      - name: f
        body:
          - {local: {type: "String[]", name: s, init: {newarray: {type: String, dims: [{int: 2}]}}}}
          - {local: {type: Object, name: o, init: {cast: {type: Runnable, expr: {null: ~}}}}}
          - {local: {type: Missing, name: m}}
`
	table, msgs := declareAll(t, src)
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, "type `Missing` of variable `m` not found", msgs[0])
	}

	// the synthesized constructor follows the declared methods
	entry := table.Lookup("A")
	if assert.NotNil(t, entry) && assert.Len(t, entry.Methods, 2) {
		assert.True(t, entry.Methods[1].IsConstructor)
	}
}

func TestStubLoader(t *testing.T) {
	loader := NewStubLoader()

	assert.True(t, loader.HasPackage("java.lang"))
	assert.True(t, loader.HasPackage("java.io"))
	assert.False(t, loader.HasPackage("javax"))

	str, err := loader.LoadClass("java.lang.String")
	assert.Nil(t, err)
	if assert.NotNil(t, str) {
		assert.True(t, str.IsFinal())
		assert.NotEmpty(t, str.Methods)
	}

	missing, err := loader.LoadClass("java.lang.Nothing")
	assert.Nil(t, err)
	assert.Nil(t, missing)

	stubs, err := syntax.ParseUnit("stubs.yaml", []byte("package: lib\nclasses: [{class: Widget, methods: [{name: size, returns: int}]}]"))
	if !assert.Nil(t, err) {
		return
	}
	loader.AddUnit(stubs)
	assert.True(t, loader.HasPackage("lib"))

	logging.Initialize("", "silent")
	table := NewClassTable(loader)
	widget := table.Lookup("lib.Widget")
	if assert.NotNil(t, widget) {
		assert.True(t, widget.Binary)
		assert.True(t, widget.SuperClass().IsRoot())
		if assert.Len(t, widget.Methods, 1) {
			assert.True(t, types.Equals(types.PrimInt, widget.Methods[0].Return))
		}
	}
}

// unitWithBody is used by the registry tests to wrap a single statement.
func unitWithBody(stmt string) *ast.CompilationUnit {
	cu, _ := syntax.ParseUnit("Body.yaml", []byte("classes: [{class: A, methods: [{name: f, body: ["+stmt+"]}]}]"))
	return cu
}

func TestRegistry_bodyRefsPatched(t *testing.T) {
	logging.Initialize("", "silent")

	table := NewClassTable(NewStubLoader())
	reg := NewRegistry(table)

	cu := unitWithBody("{expr: {new: {type: Thread}}}")
	DeclareUnit(table, reg, cu)
	assert.True(t, reg.Len() > 0)

	newExpr := cu.Classes[0].Methods[0].Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.New)
	_, placeholder := newExpr.Class.Resolved.(*types.OpaqueType)
	assert.True(t, placeholder)

	reg.ResolveAll()
	assert.True(t, logging.ShouldProceed())
	assert.True(t, types.IsNamed(newExpr.Class.Resolved, "java.lang.Thread"))
}
