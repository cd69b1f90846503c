package syntax

import (
	"jfront/ast"
	"strings"

	"gopkg.in/yaml.v3"
)

// literalKinds maps literal keys onto literal kinds.
var literalKinds = map[string]int{
	"int":    ast.LitInt,
	"long":   ast.LitLong,
	"float":  ast.LitFloat,
	"double": ast.LitDouble,
	"char":   ast.LitChar,
	"string": ast.LitString,
	"bool":   ast.LitBool,
	"null":   ast.LitNull,
}

// exprBase creates the expression base for the node n.
func (d *Decoder) exprBase(n *yaml.Node) ast.ExprBase {
	return ast.NewExprBase(d.pos(n))
}

// decodeExprList decodes a (possibly missing) sequence of expressions.
func (d *Decoder) decodeExprList(n *yaml.Node) []ast.Expr {
	var exprs []ast.Expr
	for _, en := range d.sequence(n) {
		exprs = append(exprs, d.decodeExpr(en))
	}

	return exprs
}

// decodeExpr decodes a single expression.
func (d *Decoder) decodeExpr(n *yaml.Node) ast.Expr {
	kind, v := d.single(n)

	if litKind, ok := literalKinds[kind]; ok {
		lit := &ast.Literal{ExprBase: d.exprBase(n), Kind: litKind}
		if litKind != ast.LitNull {
			if v.Kind != yaml.ScalarNode {
				d.fail(v, "expected a scalar literal value")
			}

			lit.Value = v.Value
		}

		return lit
	}

	switch kind {
	case "name":
		name := d.str(n, v, "name")
		segs := strings.Split(name, ".")
		for _, seg := range segs {
			if seg == "" {
				d.fail(v, "malformed name `%s`", name)
			}
		}

		return &ast.Name{ExprBase: d.exprBase(v), Segments: segs}
	case "this":
		return &ast.This{ExprBase: d.exprBase(n)}
	case "call":
		m := d.mapping(v)
		call := &ast.MethodCall{
			ExprBase: d.exprBase(n),
			Name:     d.str(v, m["name"], "method name"),
			Super:    d.flag(m["super"]),
			Args:     d.decodeExprList(m["args"]),
		}

		if tn, ok := m["target"]; ok && !isNull(tn) {
			call.Receiver = d.decodeExpr(tn)
		}

		return call
	case "new":
		m := d.mapping(v)
		return &ast.New{
			ExprBase: d.exprBase(n),
			Class:    d.decodeTypeRef(m["type"]),
			Args:     d.decodeExprList(m["args"]),
		}
	case "newarray":
		m := d.mapping(v)
		na := &ast.NewArray{
			ExprBase:  d.exprBase(n),
			Elem:      d.decodeTypeRef(m["type"]),
			Dims:      d.decodeExprList(m["dims"]),
			ExtraDims: d.integer(m["extra"]),
		}

		if in, ok := m["init"]; ok && !isNull(in) {
			na.Init = &ast.ArrayInit{ExprBase: d.exprBase(in), Elems: d.decodeExprList(in)}
		}

		if len(na.Dims) == 0 && na.Init == nil {
			d.fail(n, "array creation requires a dimension or an initializer")
		} else if len(na.Dims) > 0 && na.Init != nil {
			d.fail(n, "array creation cannot have both dimensions and an initializer")
		}

		return na
	case "array":
		return &ast.ArrayInit{ExprBase: d.exprBase(n), Elems: d.decodeExprList(v)}
	case "index":
		m := d.mapping(v)
		return &ast.Index{
			ExprBase: d.exprBase(n),
			Array:    d.decodeExpr(d.required(v, m, "array")),
			Index:    d.decodeExpr(d.required(v, m, "index")),
		}
	case "field":
		m := d.mapping(v)
		fa := &ast.FieldAccess{
			ExprBase: d.exprBase(n),
			Name:     d.str(v, m["name"], "field name"),
			Super:    d.flag(m["super"]),
		}

		if tn, ok := m["target"]; ok && !isNull(tn) {
			fa.Target = d.decodeExpr(tn)
		} else if !fa.Super {
			d.fail(v, "field access requires a target or `super`")
		}

		return fa
	case "unary", "postfix":
		m := d.mapping(v)
		op := d.str(v, m["op"], "operator")
		if _, ok := unaryOps[op]; !ok {
			d.fail(m["op"], "unknown unary operator `%s`", op)
		}

		if kind == "postfix" && op != "++" && op != "--" {
			d.fail(m["op"], "`%s` is not a postfix operator", op)
		}

		return &ast.Unary{
			ExprBase: d.exprBase(n),
			Op:       op,
			Operand:  d.decodeExpr(d.required(v, m, "operand")),
			Postfix:  kind == "postfix",
		}
	case "binary":
		m := d.mapping(v)
		op := d.str(v, m["op"], "operator")
		if _, ok := binaryOps[op]; !ok {
			d.fail(m["op"], "unknown binary operator `%s`", op)
		}

		return &ast.Binary{
			ExprBase: d.exprBase(n),
			Op:       op,
			LHS:      d.decodeExpr(d.required(v, m, "lhs")),
			RHS:      d.decodeExpr(d.required(v, m, "rhs")),
		}
	case "assign":
		m := d.mapping(v)
		op := "="
		if on, ok := m["op"]; ok {
			op = d.str(v, on, "operator")
			if _, ok := assignOps[op]; !ok {
				d.fail(on, "unknown assignment operator `%s`", op)
			}
		}

		return &ast.Assign{
			ExprBase: d.exprBase(n),
			Op:       op,
			LHS:      d.decodeExpr(d.required(v, m, "lhs")),
			RHS:      d.decodeExpr(d.required(v, m, "rhs")),
		}
	case "cond":
		m := d.mapping(v)
		return &ast.Conditional{
			ExprBase: d.exprBase(n),
			Cond:     d.decodeExpr(d.required(v, m, "if")),
			Then:     d.decodeExpr(d.required(v, m, "then")),
			Else:     d.decodeExpr(d.required(v, m, "else")),
		}
	case "cast":
		m := d.mapping(v)
		return &ast.Cast{
			ExprBase: d.exprBase(n),
			Target:   d.decodeTypeRef(m["type"]),
			Operand:  d.decodeExpr(d.required(v, m, "expr")),
		}
	case "instanceof":
		m := d.mapping(v)
		return &ast.InstanceOf{
			ExprBase: d.exprBase(n),
			Operand:  d.decodeExpr(d.required(v, m, "expr")),
			Target:   d.decodeTypeRef(m["type"]),
		}
	}

	d.fail(n, "unknown expression kind `%s`", kind)
	return nil
}

// unaryOps is the set of valid unary operators.
var unaryOps = map[string]struct{}{
	"+": {}, "-": {}, "~": {}, "!": {}, "++": {}, "--": {},
}

// binaryOps is the set of valid binary operators.  Compound assignment
// operators are formed by appending `=` to the arithmetic, bitwise and shift
// operators.
var binaryOps = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {},
	"<<": {}, ">>": {}, ">>>": {},
	"<": {}, ">": {}, "<=": {}, ">=": {}, "==": {}, "!=": {},
	"&": {}, "|": {}, "^": {}, "&&": {}, "||": {},
}

// assignOps is the set of valid assignment operators.
var assignOps = map[string]struct{}{
	"=": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"<<=": {}, ">>=": {}, ">>>=": {}, "&=": {}, "|=": {}, "^=": {},
}
