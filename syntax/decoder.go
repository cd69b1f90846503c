package syntax

import (
	"context"
	"fmt"
	"jfront/ast"
	"jfront/logging"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// NOTE: Unit documents are the YAML rendition of the syntax trees produced by
// the external parser.  Every mapping, sequence and scalar carries the line
// and column of the construct it represents, and these become the source
// positions of the AST.  Statements and expressions are one-key mappings whose
// key names the node kind (eg. `{binary: {op: +, lhs: ..., rhs: ...}}`).

// Decoder converts a single unit document into an AST.  Decoders are created
// once per document.
type Decoder struct {
	// path is the path used to name the unit in errors.
	path string
}

// decodeError is raised (as a panic) by decoding functions when the document
// is malformed.  It is recovered by the top-level decoding functions.
type decodeError struct {
	line, col int
	message   string
}

// ParseUnit decodes the unit document in data.  The path is used as the unit's
// path unless the document names its own `file`.
func ParseUnit(path string, data []byte) (cu *ast.CompilationUnit, err error) {
	d := &Decoder{path: path}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "failed to decode unit document %s", path)
	}

	defer func() {
		if x := recover(); x != nil {
			if de, ok := x.(*decodeError); ok {
				cu = nil
				err = fmt.Errorf("%s:%d:%d: %s", path, de.line, de.col, de.message)
				return
			}

			panic(x)
		}
	}()

	return d.decodeUnit(&root), nil
}

// LoadUnit reads and decodes the unit document at the given URL.
func LoadUnit(ctx context.Context, fs afs.Service, URL string) (*ast.CompilationUnit, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read unit document %s", URL)
	}

	return ParseUnit(URL, data)
}

// -----------------------------------------------------------------------------

// fail reports a malformed document at the given node.
func (d *Decoder) fail(n *yaml.Node, msg string, args ...interface{}) {
	de := &decodeError{message: fmt.Sprintf(msg, args...)}
	if n != nil {
		de.line, de.col = n.Line, n.Column
	}

	panic(de)
}

// pos converts the location of a node into a text position.
func (d *Decoder) pos(n *yaml.Node) *logging.TextPosition {
	endCol := n.Column + 1
	if n.Kind == yaml.ScalarNode && len(n.Value) > 0 {
		endCol = n.Column + len(n.Value)
	}

	return &logging.TextPosition{StartLn: n.Line, StartCol: n.Column, EndLn: n.Line, EndCol: endCol}
}

// mapping returns the key/value pairs of a mapping node.  It fails if the node
// is not a mapping.
func (d *Decoder) mapping(n *yaml.Node) map[string]*yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}

	if n.Kind != yaml.MappingNode {
		d.fail(n, "expected a mapping")
	}

	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}

	return m
}

// single returns the key and value of a one-key mapping: the form used for all
// statements and expressions.
func (d *Decoder) single(n *yaml.Node) (string, *yaml.Node) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		d.fail(n, "expected a single-key mapping naming the node kind")
	}

	return n.Content[0].Value, n.Content[1]
}

// sequence returns the items of a sequence node.  A missing or null node is an
// empty sequence.
func (d *Decoder) sequence(n *yaml.Node) []*yaml.Node {
	if isNull(n) {
		return nil
	}

	if n.Kind != yaml.SequenceNode {
		d.fail(n, "expected a sequence")
	}

	return n.Content
}

// str returns the value of a required scalar node.
func (d *Decoder) str(parent *yaml.Node, n *yaml.Node, what string) string {
	if isNull(n) {
		d.fail(parent, "missing %s", what)
	}

	if n.Kind != yaml.ScalarNode {
		d.fail(n, "expected a scalar for %s", what)
	}

	return strings.TrimSpace(n.Value)
}

// flag returns the value of an optional boolean scalar.
func (d *Decoder) flag(n *yaml.Node) bool {
	if isNull(n) {
		return false
	}

	var b bool
	if err := n.Decode(&b); err != nil {
		d.fail(n, "expected a boolean")
	}

	return b
}

// integer returns the value of an optional integer scalar.
func (d *Decoder) integer(n *yaml.Node) int {
	if isNull(n) {
		return 0
	}

	var i int
	if err := n.Decode(&i); err != nil {
		d.fail(n, "expected an integer")
	}

	return i
}

// isNull returns whether a node is missing or an explicit null.
func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
