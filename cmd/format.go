package cmd

import (
	"io"
	"jfront/logging"

	"github.com/francoispqt/gojay"
)

// diagnostic wraps a diagnostic for JSON encoding
type diagnostic logging.Diagnostic

func (d *diagnostic) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("file", d.File)
	enc.IntKey("line", d.Line)
	enc.IntKey("column", d.Column)
	enc.StringKey("severity", d.Severity)
	enc.StringKey("kind", logging.KindName(d.Kind))
	enc.StringKey("message", d.Message)
}

func (d *diagnostic) IsNil() bool {
	return d == nil
}

// diagnosticList is the diagnostic stream encoded as a JSON array
type diagnosticList []logging.Diagnostic

func (dl diagnosticList) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range dl {
		enc.Object((*diagnostic)(&dl[i]))
	}
}

func (dl diagnosticList) IsNil() bool {
	return dl == nil
}

// writeDiagnostics writes the diagnostic stream to w as a JSON array.  An
// empty stream is written as `[]`.
func writeDiagnostics(w io.Writer, diags []logging.Diagnostic) error {
	if diags == nil {
		diags = []logging.Diagnostic{}
	}

	enc := gojay.NewEncoder(w)
	defer enc.Release()

	if err := enc.EncodeArray(diagnosticList(diags)); err != nil {
		return err
	}

	_, err := w.Write([]byte("\n"))
	return err
}
