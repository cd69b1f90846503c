package cmd

import (
	"bytes"
	"jfront/logging"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteDiagnostics(t *testing.T) {
	testData := []struct {
		diags  []logging.Diagnostic
		expect string
	}{
		{nil, `[]`},
		{
			[]logging.Diagnostic{
				{File: "p/A.yaml", Line: 3, Column: 7, Severity: "error", Kind: logging.LMKName, Message: "variable `x` not found"},
				{File: "p/B.yaml", Line: 12, Column: 1, Severity: "warning", Kind: logging.LMKTyping, Message: "division by zero"},
			},
			`[
				{"file": "p/A.yaml", "line": 3, "column": 7, "severity": "error", "kind": "Name", "message": "variable ` + "`x`" + ` not found"},
				{"file": "p/B.yaml", "line": 12, "column": 1, "severity": "warning", "kind": "Type", "message": "division by zero"}
			]`,
		},
		{
			[]logging.Diagnostic{{File: "C.yaml", Severity: "error", Kind: -1, Message: "say \"hi\""}},
			`[{"file": "C.yaml", "line": 0, "column": 0, "severity": "error", "kind": "Compile", "message": "say \"hi\""}]`,
		},
	}

	for _, item := range testData {
		buff := &bytes.Buffer{}
		if !assert.Nil(t, writeDiagnostics(buff, item.diags)) {
			continue
		}

		assert.JSONEq(t, item.expect, buff.String())
		assert.Equal(t, byte('\n'), buff.Bytes()[buff.Len()-1])
	}
}
