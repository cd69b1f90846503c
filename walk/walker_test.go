package walk

import (
	"fmt"
	"jfront/ast"
	"jfront/depm"
	"jfront/logging"
	"jfront/syntax"
	"jfront/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// analyzeUnits runs the three passes over the given unit documents and returns
// the decoded units along with the diagnostic stream.
func analyzeUnits(t *testing.T, docs ...string) ([]*ast.CompilationUnit, []*depm.CompilationContext, *depm.ClassTable) {
	logging.Initialize("", "silent")

	table := depm.NewClassTable(depm.NewStubLoader())
	reg := depm.NewRegistry(table)

	var units []*ast.CompilationUnit
	var contexts []*depm.CompilationContext
	for i, doc := range docs {
		cu, err := syntax.ParseUnit(fmt.Sprintf("Unit%d.yaml", i), []byte(doc))
		if !assert.Nil(t, err, doc) {
			t.FailNow()
		}

		units = append(units, cu)
		contexts = append(contexts, depm.DeclareUnit(table, reg, cu))
	}

	reg.ResolveAll()
	if !logging.ShouldProceed() {
		return units, contexts, table
	}

	session := NewSession(table)
	for _, ctx := range contexts {
		session.AddUnit(ctx)
	}
	session.Walk()

	return units, contexts, table
}

// analyze runs the passes and returns the messages of the given severity.
func analyze(t *testing.T, severity string, docs ...string) []string {
	analyzeUnits(t, docs...)

	var msgs []string
	for _, diag := range logging.Diagnostics() {
		if diag.Severity == severity {
			msgs = append(msgs, diag.Message)
		}
	}

	return msgs
}

// methodUnit creates a unit with a class `T` declaring a method `f` with the
// given return type and body.  The body is a YAML flow sequence of
// statements.
func methodUnit(returns, body string) string {
	return fmt.Sprintf(`
package: p
classes:
  - class: T
    fields:
      - {type: int, name: count}
      - {type: int, name: LIMIT, modifiers: [static, final], init: {int: 10}}
    methods:
      - {name: f, returns: %s, body: %s}
`, returns, body)
}

func assertMessages(t *testing.T, expect []string, msgs []string, src string) {
	if !assert.Equal(t, len(expect), len(msgs), "%s\n%s", src, strings.Join(msgs, "\n")) {
		return
	}

	for i, msg := range msgs {
		assert.Contains(t, msg, expect[i], src)
	}
}

func TestWalker_assignment(t *testing.T) {
	testData := []struct {
		body   string
		expect []string
	}{
		{`[{local: {type: byte, name: b, init: {int: 100}}}]`, nil},
		{`[{local: {type: byte, name: b, init: {int: 200}}}]`, []string{"incompatible types: `int` cannot be converted to `byte`"}},
		{`[{local: {type: byte, name: b, init: {binary: {op: '*', lhs: {int: 10}, rhs: {int: 12}}}}}]`, nil},
		{`[{local: {type: byte, name: b, init: {binary: {op: '+', lhs: {int: 100}, rhs: {int: 100}}}}}]`, []string{"cannot be converted to `byte`"}},
		{`[{local: {type: char, name: c, init: {int: -1}}}]`, []string{"cannot be converted to `char`"}},
		{`[{local: {type: short, name: s, init: {name: LIMIT}}}]`, nil},
		{`[{local: {type: short, name: s, init: {name: count}}}]`, []string{"cannot be converted to `short`"}},
		{`[{local: {type: long, name: l, init: {int: 5}}}, {local: {type: int, name: i, init: {name: l}}}]`, []string{"cannot be converted to `int`"}},
		{`[{local: {type: String, name: s, init: {null: ~}}}]`, nil},
		{`[{local: {type: Object, name: o, init: {string: abc}}}]`, nil},
		{`[{local: {type: String, name: s, init: {new: {type: Object}}}}]`, []string{"`java.lang.Object` cannot be converted to `java.lang.String`"}},
		{`[{local: {type: boolean, name: b, init: {int: 1}}}]`, []string{"cannot be converted to `boolean`"}},
		{`[{local: {type: int, name: x, init: {int: 2147483648}}}]`, []string{"integer number too large"}},
		{`[{local: {type: int, name: x, init: {unary: {op: '-', operand: {int: 2147483648}}}}}]`, nil},
		{`[{local: {type: int, name: x, init: {int: '0xFFFFFFFF'}}}]`, nil},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_names(t *testing.T) {
	testData := []struct {
		body   string
		expect []string
	}{
		{`[{expr: {assign: {lhs: {name: missing}, rhs: {int: 1}}}}]`, []string{"undefined variable"}},
		{`[{local: {type: int, name: x}}, {local: {type: int, name: x}}]`, []string{"variable `x` is already defined in this method"}},
		{`[{block: [{local: {type: int, name: x}}]}, {local: {type: int, name: x}}]`, nil},
		{`[{expr: {assign: {lhs: {name: LIMIT}, rhs: {int: 1}}}}]`, []string{"cannot assign a value to final variable `LIMIT`"}},
		{`[{expr: {int: 1}}]`, []string{"not a statement"}},
		{`[{expr: {assign: {op: '+=', lhs: {name: count}, rhs: {double: 1.5}}}}]`, nil},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_finalAssignment(t *testing.T) {
	const (
		decl    = `{local: {type: int, name: x, final: true}}`
		assign1 = `{expr: {assign: {lhs: {name: x}, rhs: {int: 1}}}}`
		assign2 = `{expr: {assign: {lhs: {name: x}, rhs: {int: 2}}}}`
		cond    = `{binary: {op: '>', lhs: {name: count}, rhs: {int: 0}}}`
	)

	testData := []struct {
		body   string
		expect []string
	}{
		{`[` + decl + `, ` + assign1 + `]`, nil},
		{`[` + decl + `, ` + assign1 + `, ` + assign2 + `]`, []string{"cannot assign a value to final variable `x`"}},
		{`[` + decl + `, {if: {cond: ` + cond + `, then: ` + assign1 + `, else: ` + assign2 + `}}]`, nil},
		{`[` + decl + `, {if: {cond: ` + cond + `, then: ` + assign1 + `}}, ` + assign2 + `]`, []string{"cannot assign a value to final variable `x`"}},
		{`[` + decl + `, {if: {cond: ` + cond + `, then: {block: [` + assign1 + `, {return: null}]}}}, ` + assign2 + `]`, nil},
		{`[` + decl + `, {switch: {selector: {name: count}, cases: [{labels: [{int: 1}], body: [` + assign1 + `, {break: null}]}, {default: true, body: [` + assign2 + `]}]}}]`, nil},
		{`[` + decl + `, {switch: {selector: {name: count}, cases: [{labels: [{int: 1}], body: [` + assign1 + `]}, {default: true, body: [` + assign2 + `]}]}}]`, []string{"cannot assign a value to final variable `x`"}},
		{`[` + decl + `, {switch: {selector: {name: count}, cases: [{labels: [{int: 1}], body: [` + assign1 + `, {break: null}]}]}}, ` + assign2 + `]`, []string{"cannot assign a value to final variable `x`"}},
		{`[` + decl + `, {try: {body: [` + assign1 + `], catches: [{type: RuntimeException, name: e, body: [` + assign2 + `]}]}}]`, []string{"cannot assign a value to final variable `x`"}},
		{`[{local: {type: int, name: x, final: true, init: {int: 0}}}, ` + assign1 + `]`, []string{"cannot assign a value to final variable `x`"}},
		{`[` + decl + `, {expr: {assign: {op: '+=', lhs: {name: x}, rhs: {int: 1}}}}]`, []string{"cannot assign a value to final variable `x`"}},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_finalFieldAssignment(t *testing.T) {
	unit := func(body string) string {
		return fmt.Sprintf(`
classes:
  - class: T
    fields:
      - {type: int, name: v, modifiers: [final]}
    constructors:
      - {params: [{type: boolean, name: c}], body: %s}
`, body)
	}

	const (
		assign1 = `{expr: {assign: {lhs: {name: v}, rhs: {int: 1}}}}`
		assign2 = `{expr: {assign: {lhs: {field: {target: {this: ~}, name: v}}, rhs: {int: 2}}}}`
	)

	testData := []struct {
		body   string
		expect []string
	}{
		{`[` + assign1 + `]`, nil},
		{`[` + assign1 + `, ` + assign2 + `]`, []string{"cannot assign a value to final variable `v`"}},
		{`[{if: {cond: {name: c}, then: ` + assign1 + `, else: ` + assign2 + `}}]`, nil},
		{`[{if: {cond: {name: c}, then: ` + assign1 + `}}, ` + assign2 + `]`, []string{"cannot assign a value to final variable `v`"}},
	}

	for _, item := range testData {
		src := unit(item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), src)
	}
}

func TestWalker_reachability(t *testing.T) {
	testData := []struct {
		returns, body string
		expect        []string
	}{
		{"int", `[]`, []string{"missing return statement in method `f()`"}},
		{"int", `[{return: {int: 1}}]`, nil},
		{"int", `[{while: {cond: {bool: true}, body: []}}]`, nil},
		{"int", `[{while: {cond: {bool: true}, body: [{break: null}]}}]`, []string{"missing return statement"}},
		{"void", `[{return: null}, {expr: {assign: {lhs: {name: count}, rhs: {int: 1}}}}, {return: null}]`, []string{"unreachable statement"}},
		{"void", `[{while: {cond: {bool: false}, body: [{return: null}]}}]`, []string{"unreachable statement"}},
		{"int", `[{if: {cond: {bool: true}, then: {return: {int: 1}}, else: {return: {int: 2}}}}]`, nil},
		{"int", `[{if: {cond: {bool: true}, then: {return: {int: 1}}}}]`, []string{"missing return statement"}},
		{"void", `[{return: {int: 1}}]`, []string{"incompatible types: unexpected return value"}},
		{"int", `[{return: null}]`, []string{"missing return value"}},
	}

	for _, item := range testData {
		src := methodUnit(item.returns, item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_jumps(t *testing.T) {
	testData := []struct {
		body   string
		expect []string
	}{
		{`[{label: {name: outer, body: {while: {cond: {bool: true}, body: [{continue: outer}]}}}}]`, nil},
		{`[{while: {cond: {bool: true}, body: [{label: {name: outer, body: [{continue: outer}]}}]}}]`, []string{"not a loop label: `outer`"}},
		{`[{break: null}]`, []string{"break outside switch or loop"}},
		{`[{continue: null}]`, []string{"continue outside of loop"}},
		{`[{while: {cond: {bool: true}, body: [{break: inner}]}}]`, []string{"undefined label: `inner`"}},
		{`[{label: {name: a, body: {label: {name: a, body: {empty: null}}}}}]`, []string{"label `a` is already in use"}},
		{`[{label: {name: done, body: [{break: done}, {return: null}]}}]`, []string{"unreachable statement"}},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_breakInSwitchBindsToSwitch(t *testing.T) {
	body := `[{while: {cond: {bool: true}, body: [{switch: {selector: {name: count}, cases: [{labels: [{int: 1}], body: [{break: null}]}]}}]}}, {return: {int: 0}}]`

	units, _, _ := analyzeUnits(t, methodUnit("int", body))

	var msgs []string
	for _, diag := range logging.Diagnostics() {
		msgs = append(msgs, diag.Message)
	}
	assertMessages(t, []string{"unreachable statement"}, msgs, body)

	loop := units[0].Classes[0].Methods[0].Body.Stmts[0].(*ast.While)
	sw := loop.Body.(*ast.Block).Stmts[0].(*ast.Switch)
	brk := sw.Cases[0].Body[0].(*ast.Break)
	assert.Equal(t, ast.Stmt(sw), brk.Target)
}

func TestWalker_switch(t *testing.T) {
	testData := []struct {
		body   string
		expect []string
	}{
		{`[{switch: {selector: {name: count}, cases: [{labels: [{int: 1}, {char: a}]}, {default: true}]}}]`, nil},
		{`[{switch: {selector: {name: count}, cases: [{labels: [{int: 1}]}, {labels: [{int: 1}]}]}}]`, []string{"duplicate case label"}},
		{`[{switch: {selector: {name: count}, cases: [{default: true}, {default: true}]}}]`, []string{"duplicate default label"}},
		{`[{switch: {selector: {name: count}, cases: [{labels: [{name: count}]}]}}]`, []string{"constant expression required"}},
		{`[{switch: {selector: {long: 1}, cases: []}}]`, []string{"cannot be used as a switch selector"}},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_exceptions(t *testing.T) {
	testData := []struct {
		body   string
		expect []string
	}{
		{`[{throw: {new: {type: RuntimeException}}}]`, nil},
		{`[{throw: {new: {type: Exception}}}]`, []string{"unreported exception `java.lang.Exception`; must be caught or declared to be thrown"}},
		{`[{try: {body: [{throw: {new: {type: Exception}}}], catches: [{type: Exception, name: e, body: []}]}}]`, nil},
		{`[{try: {body: [{throw: {new: {type: Exception}}}], catches: [{type: RuntimeException, name: e, body: []}]}}]`, []string{"unreported exception `java.lang.Exception`"}},
		{`[{try: {body: [{throw: {new: {type: Exception}}}], finally: []}}]`, []string{"unreported exception"}},
		{`[{try: {body: [], catches: [{type: java.io.IOException, name: e, body: []}]}}]`, []string{"exception `java.io.IOException` is never thrown"}},
		{`[{try: {body: [{throw: {new: {type: Exception}}}], catches: [{type: Exception, name: e, body: []}, {type: RuntimeException, name: r, body: []}]}}]`, []string{"catch clause is unreachable"}},
		{`[{try: {body: [], catches: [{type: String, name: e, body: []}]}}]`, []string{"is not a subclass of `java.lang.Throwable`"}},
		{`[{throw: {string: oops}}]`, []string{"cannot be converted to `java.lang.Throwable`"}},
		{`[{try: {body: [{throw: {new: {type: Exception}}}], catches: [{type: Exception, name: e, body: [{throw: {name: e}}]}]}}]`, []string{"unreported exception"}},
	}

	for _, item := range testData {
		src := methodUnit("void", item.body)
		assertMessages(t, item.expect, analyze(t, "error", src), item.body)
	}
}

func TestWalker_declaredThrows(t *testing.T) {
	src := `
classes:
  - class: T
    methods:
      - {name: f, throws: [Exception], body: [{throw: {new: {type: Exception}}}]}
      - {name: g, body: [{expr: {call: {name: f}}}]}
      - {name: h, throws: [Throwable], body: [{expr: {call: {name: f}}}]}
`
	assertMessages(t, []string{"unreported exception `java.lang.Exception`"}, analyze(t, "error", src), src)
}

// callTarget returns the method bound by the expression statement at index i
// of the method at index m of the first class.
func callTarget(cu *ast.CompilationUnit, m, i int) *types.MethodEntry {
	stmt := cu.Classes[0].Methods[m].Body.Stmts[i].(*ast.ExprStmt)
	return stmt.Expr.(*ast.MethodCall).Method
}

func TestWalker_overloads(t *testing.T) {
	src := `
classes:
  - class: T
    methods:
      - {name: f, params: [{type: int, name: x}], body: []}
      - {name: f, params: [{type: long, name: x}], body: []}
      - {name: g, params: [{type: Object, name: x}], body: []}
      - {name: g, params: [{type: String, name: x}], body: []}
      - name: caller
        body:
          - {expr: {call: {name: f, args: [{int: 1}]}}}
          - {expr: {call: {name: f, args: [{long: 1}]}}}
          - {expr: {call: {name: f, args: [{char: a}]}}}
          - {expr: {call: {name: g, args: [{string: s}]}}}
          - {expr: {call: {name: g, args: [{null: ~}]}}}
          - {expr: {call: {name: g, args: [{new: {type: Object}}]}}}
`
	units, _, _ := analyzeUnits(t, src)
	assert.True(t, logging.ShouldProceed())

	cu := units[0]
	assert.True(t, types.Equals(types.PrimInt, callTarget(cu, 4, 0).Params[0]))
	assert.True(t, types.Equals(types.PrimLong, callTarget(cu, 4, 1).Params[0]))
	assert.True(t, types.Equals(types.PrimInt, callTarget(cu, 4, 2).Params[0]))
	assert.True(t, types.IsString(callTarget(cu, 4, 3).Params[0]))
	assert.True(t, types.IsString(callTarget(cu, 4, 4).Params[0]))
	assert.False(t, types.IsString(callTarget(cu, 4, 5).Params[0]))
}

func TestWalker_overloadErrors(t *testing.T) {
	src := `
classes:
  - class: T
    methods:
      - {name: f, params: [{type: int, name: a}, {type: long, name: b}], body: []}
      - {name: f, params: [{type: long, name: a}, {type: int, name: b}], body: []}
      - name: caller
        body:
          - {expr: {call: {name: f, args: [{int: 1}, {int: 1}]}}}
          - {expr: {call: {name: f, args: [{string: s}, {int: 1}]}}}
          - {expr: {call: {name: nothing}}}
`
	expect := []string{
		"reference to `f(int, int)` is ambiguous",
		"no method matching `f(java.lang.String, int)` found in class `T`",
		"no method matching `nothing()` found in class `T`",
	}
	assertMessages(t, expect, analyze(t, "error", src), src)
}

func TestWalker_staticContext(t *testing.T) {
	src := `
classes:
  - class: T
    fields:
      - {type: int, name: x}
    methods:
      - {name: m, body: []}
      - {name: s, modifiers: [static], body: [{expr: {assign: {lhs: {name: x}, rhs: {int: 1}}}}, {expr: {call: {name: m}}}]}
`
	expect := []string{
		"non-static field `x` cannot be referenced from a static context",
		"non-static method `m()` cannot be referenced from a static context",
	}
	assertMessages(t, expect, analyze(t, "error", src), src)
}

func TestWalker_access(t *testing.T) {
	src := `
package: p
classes:
  - class: A
    fields:
      - {type: int, name: secret, modifiers: [private]}
      - {type: int, name: open, modifiers: [public]}
    methods:
      - {name: hidden, modifiers: [private], body: []}
  - class: B
    methods:
      - name: f
        params: [{type: A, name: a}]
        body:
          - {expr: {assign: {lhs: {name: a.open}, rhs: {int: 1}}}}
          - {expr: {assign: {lhs: {name: a.secret}, rhs: {int: 1}}}}
          - {expr: {call: {target: {name: a}, name: hidden}}}
`
	expect := []string{
		"field `secret` has private access in `p.A`",
		"method `hidden()` has private access in `p.A`",
	}
	assertMessages(t, expect, analyze(t, "error", src), src)
}

func TestWalker_abstractInstantiation(t *testing.T) {
	src := `
classes:
  - class: Shape
    modifiers: [abstract]
    methods:
      - {name: area, modifiers: [abstract], returns: double}
  - class: Square
    extends: Shape
    methods:
      - {name: area, returns: double, body: [{return: {int: 1}}]}
      - name: f
        body:
          - {local: {type: Shape, name: a, init: {new: {type: Square}}}}
          - {local: {type: Shape, name: b, init: {new: {type: Shape}}}}
`
	assertMessages(t, []string{"`Shape` is abstract; cannot be instantiated"}, analyze(t, "error", src), src)
}

func TestWalker_forwardReference(t *testing.T) {
	src := `
classes:
  - class: T
    fields:
      - {type: int, name: a, init: {name: b}}
      - {type: int, name: b, init: {int: 1}}
      - {type: int, name: c, init: {name: a}}
`
	assertMessages(t, []string{"illegal forward reference to field `b`"}, analyze(t, "error", src), src)
}

func TestWalker_constantFolding(t *testing.T) {
	src := methodUnit("void", `[{local: {type: int, name: q, init: {binary: {op: '/', lhs: {int: 1}, rhs: {int: 0}}}}}, {local: {type: boolean, name: b, init: {binary: {op: '==', lhs: {new: {type: String}}, rhs: {string: a}}}}}]`)

	units, _, _ := analyzeUnits(t, src)
	assert.True(t, logging.ShouldProceed())

	var warnings []string
	for _, diag := range logging.Diagnostics() {
		assert.Equal(t, "warning", diag.Severity)
		warnings = append(warnings, diag.Message)
	}
	assert.Len(t, warnings, 2)

	decl := units[0].Classes[0].Methods[0].Body.Stmts[0].(*ast.LocalVarDecl)
	assert.Nil(t, decl.Vars[0].Init.Constant())
}

func TestWalker_concatenation(t *testing.T) {
	src := methodUnit("void", `[{local: {type: String, name: s, init: {binary: {op: '+', lhs: {string: 'n='}, rhs: {binary: {op: '+', lhs: {int: 1}, rhs: {int: 2}}}}}}}]`)

	units, _, _ := analyzeUnits(t, src)
	assert.True(t, logging.ShouldProceed())

	decl := units[0].Classes[0].Methods[0].Body.Stmts[0].(*ast.LocalVarDecl)
	init := decl.Vars[0].Init.(*ast.Binary)
	assert.True(t, init.Concat)
	assert.True(t, types.IsString(init.Type()))
	if assert.NotNil(t, init.Constant()) {
		assert.Equal(t, "n=3", init.Constant().Str)
	}

	floats := []struct {
		lit    string
		expect string
	}{
		{"{double: 1000000.0}", "x1000000.0"},
		{"{double: 1.0e7}", "x1.0E7"},
		{"{double: 1.0e10}", "x1.0E10"},
		{"{double: 0.0001}", "x1.0E-4"},
		{"{float: 1.5}", "x1.5"},
	}

	for _, item := range floats {
		src := methodUnit("void", fmt.Sprintf(`[{local: {type: String, name: s, init: {binary: {op: '+', lhs: {string: x}, rhs: %s}}}}]`, item.lit))

		units, _, _ := analyzeUnits(t, src)
		if !assert.True(t, logging.ShouldProceed(), item.lit) {
			continue
		}

		decl := units[0].Classes[0].Methods[0].Body.Stmts[0].(*ast.LocalVarDecl)
		if c := decl.Vars[0].Init.Constant(); assert.NotNil(t, c, item.lit) {
			assert.Equal(t, item.expect, c.Str, item.lit)
		}
	}
}

func TestWalker_idempotent(t *testing.T) {
	src := `
classes:
  - class: T
    fields:
      - {type: int, name: n, modifiers: [static, final], init: {binary: {op: '*', lhs: {int: 6}, rhs: {int: 7}}}}
    methods:
      - {name: f, params: [{type: long, name: x}], returns: long, body: [{return: {name: x}}]}
      - {name: f, params: [{type: int, name: x}], returns: int, body: [{return: {binary: {op: '+', lhs: {name: x}, rhs: {name: n}}}}]}
      - name: g
        returns: int
        body:
          - {local: {type: int, name: i, init: {call: {name: f, args: [{char: c}]}}}}
          - {return: {cond: {if: {binary: {op: '>', lhs: {name: i}, rhs: {int: 0}}}, then: {name: i}, else: {unary: {op: '-', operand: {name: i}}}}}}
`
	units, contexts, table := analyzeUnits(t, src)
	if !assert.True(t, logging.ShouldProceed()) {
		return
	}

	g := units[0].Classes[0].Methods[2]
	decl := g.Body.Stmts[0].(*ast.LocalVarDecl)
	call := decl.Vars[0].Init.(*ast.MethodCall)
	bound := call.Method
	ret := g.Body.Stmts[1].(*ast.Return).Value
	retType := ret.Type()

	count := len(logging.Diagnostics())

	// walking the same units again neither changes the annotations nor adds
	// diagnostics
	session := NewSession(table)
	for _, ctx := range contexts {
		session.AddUnit(ctx)
	}
	session.Walk()

	assert.Equal(t, count, len(logging.Diagnostics()))
	assert.Same(t, bound, call.Method)
	assert.True(t, types.Equals(retType, ret.Type()))
	assert.True(t, types.Equals(types.PrimInt, bound.Params[0]))
}

func TestWalker_constructors(t *testing.T) {
	testData := []struct {
		src    string
		expect []string
	}{
		{`
classes:
  - class: A
    constructors:
      - {params: [{type: int, name: x}], body: []}
  - class: B
    extends: A
`, []string{"no constructor matching `A()` found in class `A`"}},
		{`
classes:
  - class: A
    constructors:
      - {params: [{type: int, name: x}], body: []}
  - class: B
    extends: A
    constructors:
      - {body: [{super: [{int: 1}]}]}
`, nil},
		{`
classes:
  - class: A
    constructors:
      - {body: [{this: []}]}
`, []string{"recursive constructor invocation"}},
		{`
classes:
  - class: A
    constructors:
      - {throws: [Exception], body: []}
  - class: B
    extends: A
  - class: C
    methods:
      - {name: f, body: [{expr: {new: {type: B}}}]}
`, []string{"unreported exception `java.lang.Exception`"}},
		{`
classes:
  - class: A
    methods:
      - {name: f, body: [{expr: {assign: {lhs: {name: x}, rhs: {int: 1}}}}, {super: []}]}
    fields:
      - {type: int, name: x}
`, []string{"call to `super` must be first statement in constructor"}},
	}

	for _, item := range testData {
		assertMessages(t, item.expect, analyze(t, "error", item.src), item.src)
	}

	// the default constructor of B declares only the checked exceptions of
	// the constructor it calls
	units, _, _ := analyzeUnits(t, `
classes:
  - class: A
    constructors:
      - {throws: [RuntimeException, Exception], body: []}
  - class: B
    extends: A
`)
	if !assert.True(t, logging.ShouldProceed()) {
		return
	}

	ctors := units[0].Classes[1].Entry.Constructors()
	if assert.Len(t, ctors, 1) && assert.True(t, ctors[0].Synthetic) && assert.Len(t, ctors[0].Throws, 1) {
		assert.Equal(t, "java.lang.Exception", ctors[0].Throws[0].Repr())
	}
}
