package build

import (
	"fmt"
	"jfront/ast"
	"jfront/depm"
	"jfront/logging"
	"jfront/mods"
	"jfront/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseUnits(t *testing.T, docs ...string) []*ast.CompilationUnit {
	var units []*ast.CompilationUnit
	for i, doc := range docs {
		cu, err := syntax.ParseUnit(fmt.Sprintf("Unit%d.yaml", i), []byte(doc))
		if !assert.Nil(t, err, doc) {
			t.FailNow()
		}

		units = append(units, cu)
	}

	return units
}

func errorMessages() []string {
	var msgs []string
	for _, diag := range logging.Diagnostics() {
		if diag.Severity == "error" {
			msgs = append(msgs, diag.Message)
		}
	}

	return msgs
}

const badReturn = `
package: p
classes:
  - class: Bad
    methods:
      - {name: f, returns: int, body: [{return: {bool: true}}]}
`

func TestCompiler_AnalyzeUnits(t *testing.T) {
	testData := []struct {
		name      string
		maxErrors int
		docs      []string
		expectOk  bool
		expect    []string
	}{
		{
			"mutual references",
			0,
			[]string{
				"package: p\nclasses:\n  - class: A\n    fields: [{type: B, name: b}]\n",
				"package: p\nclasses:\n  - class: B\n    fields: [{type: A, name: a}]\n",
			},
			true,
			nil,
		},
		{
			"body errors",
			0,
			[]string{badReturn},
			false,
			[]string{"incompatible types: `boolean` cannot be converted to `int`"},
		},
		{
			"resolution errors skip body checks",
			0,
			[]string{
				badReturn,
				"package: p\nclasses:\n  - class: C\n    fields: [{type: Missing, name: m}]\n",
			},
			false,
			[]string{"type `Missing` of field `m` not found"},
		},
		{
			"threshold halts after declaration",
			1,
			[]string{
				badReturn,
				"package: p\nclasses: [{class: D}, {class: D}]\n",
			},
			false,
			[]string{"duplicate class `p.D`"},
		},
	}

	for _, item := range testData {
		t.Run(item.name, func(t *testing.T) {
			logging.Initialize("", "silent")

			c := NewCompiler(&mods.Batch{Name: "test", MaxErrors: item.maxErrors}, depm.NewStubLoader())
			ok := c.AnalyzeUnits(parseUnits(t, item.docs...))

			assert.Equal(t, item.expectOk, ok)
			assert.Equal(t, item.expect, errorMessages())
		})
	}
}

func TestCompiler_Table(t *testing.T) {
	logging.Initialize("", "silent")

	c := NewCompiler(nil, depm.NewStubLoader())
	if !assert.True(t, c.AnalyzeUnits(parseUnits(t, "package: q\nclasses: [{class: E}]\n"))) {
		return
	}

	entry := c.Table().Lookup("q.E")
	if assert.NotNil(t, entry) {
		assert.Equal(t, "q.E", entry.Name)
	}
}
