package syntax

import (
	"jfront/ast"

	"gopkg.in/yaml.v3"
)

// decodeBlock decodes a sequence of statements into a block positioned at its
// owner (the block itself need not be written as a node).
func (d *Decoder) decodeBlock(owner, n *yaml.Node) *ast.Block {
	pn := n
	if isNull(pn) {
		pn = owner
	}

	var stmts []ast.Stmt
	for _, sn := range d.sequence(n) {
		stmts = append(stmts, d.decodeStmt(sn))
	}

	return ast.NewBlock(d.pos(pn), stmts)
}

// stmtBase creates the statement base for the node n.
func (d *Decoder) stmtBase(n *yaml.Node) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NewNodeBase(d.pos(n))}
}

// decodeStmt decodes a single statement.
func (d *Decoder) decodeStmt(n *yaml.Node) ast.Stmt {
	kind, v := d.single(n)

	switch kind {
	case "block":
		return d.decodeBlock(n, v)
	case "local":
		return d.decodeLocal(n, v)
	case "expr":
		return &ast.ExprStmt{StmtBase: d.stmtBase(n), Expr: d.decodeExpr(v)}
	case "if":
		m := d.mapping(v)
		ifStmt := &ast.If{
			StmtBase: d.stmtBase(n),
			Cond:     d.decodeExpr(d.required(v, m, "cond")),
			Then:     d.decodeBody(v, m["then"]),
		}

		if en, ok := m["else"]; ok && !isNull(en) {
			ifStmt.Else = d.decodeBody(v, en)
		}

		return ifStmt
	case "while":
		m := d.mapping(v)
		return &ast.While{
			StmtBase: d.stmtBase(n),
			Cond:     d.decodeExpr(d.required(v, m, "cond")),
			Body:     d.decodeBody(v, m["body"]),
		}
	case "do":
		m := d.mapping(v)
		return &ast.DoWhile{
			StmtBase: d.stmtBase(n),
			Body:     d.decodeBody(v, m["body"]),
			Cond:     d.decodeExpr(d.required(v, m, "cond")),
		}
	case "for":
		m := d.mapping(v)
		forStmt := &ast.For{StmtBase: d.stmtBase(n), Body: d.decodeBody(v, m["body"])}

		for _, in := range d.sequence(m["init"]) {
			forStmt.Init = append(forStmt.Init, d.decodeStmt(in))
		}

		if cn, ok := m["cond"]; ok && !isNull(cn) {
			forStmt.Cond = d.decodeExpr(cn)
		}

		for _, un := range d.sequence(m["update"]) {
			forStmt.Update = append(forStmt.Update, d.decodeExpr(un))
		}

		return forStmt
	case "label":
		m := d.mapping(v)
		return &ast.Labeled{
			StmtBase: d.stmtBase(n),
			Label:    d.str(v, m["name"], "label name"),
			Body:     d.decodeBody(v, m["body"]),
		}
	case "break":
		brk := &ast.Break{StmtBase: d.stmtBase(n)}
		if !isNull(v) {
			brk.Label = d.str(v, v, "label")
		}

		return brk
	case "continue":
		cont := &ast.Continue{StmtBase: d.stmtBase(n)}
		if !isNull(v) {
			cont.Label = d.str(v, v, "label")
		}

		return cont
	case "return":
		ret := &ast.Return{StmtBase: d.stmtBase(n)}
		if !isNull(v) {
			ret.Value = d.decodeExpr(v)
		}

		return ret
	case "throw":
		return &ast.Throw{StmtBase: d.stmtBase(n), Value: d.decodeExpr(v)}
	case "try":
		return d.decodeTry(n, v)
	case "switch":
		return d.decodeSwitch(n, v)
	case "sync":
		m := d.mapping(v)
		return &ast.Synchronized{
			StmtBase: d.stmtBase(n),
			Lock:     d.decodeExpr(d.required(v, m, "lock")),
			Body:     d.decodeBlock(v, m["body"]),
		}
	case "empty":
		return &ast.Empty{StmtBase: d.stmtBase(n)}
	case "super", "this":
		return &ast.CtorCall{
			StmtBase: d.stmtBase(n),
			Super:    kind == "super",
			Args:     d.decodeExprList(v),
		}
	}

	d.fail(n, "unknown statement kind `%s`", kind)
	return nil
}

// decodeBody decodes the body of a compound statement: either a single
// statement mapping or a sequence of statements forming a block.
func (d *Decoder) decodeBody(owner, n *yaml.Node) ast.Stmt {
	if isNull(n) {
		d.fail(owner, "missing body")
	}

	if n.Kind == yaml.SequenceNode {
		return d.decodeBlock(owner, n)
	}

	return d.decodeStmt(n)
}

// decodeLocal decodes a local variable declaration.
//
// local := {type, final?, (name, init?) | vars: [{name, init?}]}
func (d *Decoder) decodeLocal(n, v *yaml.Node) *ast.LocalVarDecl {
	m := d.mapping(v)
	decl := &ast.LocalVarDecl{
		StmtBase: d.stmtBase(n),
		Type:     d.decodeTypeRef(m["type"]),
		Final:    d.flag(m["final"]),
	}

	if vn, ok := m["vars"]; ok {
		for _, dn := range d.sequence(vn) {
			decl.Vars = append(decl.Vars, d.decodeDeclarator(dn, d.mapping(dn)))
		}
	} else {
		decl.Vars = []*ast.VarDeclarator{d.decodeDeclarator(v, m)}
	}

	return decl
}

// decodeDeclarator decodes a single variable declarator.
func (d *Decoder) decodeDeclarator(n *yaml.Node, m map[string]*yaml.Node) *ast.VarDeclarator {
	vd := &ast.VarDeclarator{
		NodeBase: ast.NewNodeBase(d.pos(n)),
		Name:     d.str(n, m["name"], "variable name"),
	}

	if in, ok := m["init"]; ok && !isNull(in) {
		vd.Init = d.decodeExpr(in)
	}

	return vd
}

// decodeTry decodes a try statement.
//
// try := {body, catches?: [{type, name, body}], finally?}
func (d *Decoder) decodeTry(n, v *yaml.Node) *ast.Try {
	m := d.mapping(v)
	tryStmt := &ast.Try{StmtBase: d.stmtBase(n), Body: d.decodeBlock(v, m["body"])}

	for _, cn := range d.sequence(m["catches"]) {
		cm := d.mapping(cn)
		tryStmt.Catches = append(tryStmt.Catches, &ast.CatchClause{
			NodeBase: ast.NewNodeBase(d.pos(cn)),
			Type:     d.decodeTypeRef(cm["type"]),
			Name:     d.str(cn, cm["name"], "catch parameter name"),
			Body:     d.decodeBlock(cn, cm["body"]),
		})
	}

	if fn, ok := m["finally"]; ok {
		tryStmt.Finally = d.decodeBlock(v, fn)
	}

	if len(tryStmt.Catches) == 0 && tryStmt.Finally == nil {
		d.fail(n, "try statement must have a catch clause or a finally block")
	}

	return tryStmt
}

// decodeSwitch decodes a switch statement.
//
// switch := {selector, cases: [{labels?, default?, body?}]}
func (d *Decoder) decodeSwitch(n, v *yaml.Node) *ast.Switch {
	m := d.mapping(v)
	sw := &ast.Switch{StmtBase: d.stmtBase(n), Selector: d.decodeExpr(d.required(v, m, "selector"))}

	for _, cn := range d.sequence(m["cases"]) {
		cm := d.mapping(cn)
		sc := &ast.SwitchCase{
			NodeBase: ast.NewNodeBase(d.pos(cn)),
			Labels:   d.decodeExprList(cm["labels"]),
			Default:  d.flag(cm["default"]),
		}

		for _, sn := range d.sequence(cm["body"]) {
			sc.Body = append(sc.Body, d.decodeStmt(sn))
		}

		sw.Cases = append(sw.Cases, sc)
	}

	return sw
}

// required returns the value of a required key of a mapping.
func (d *Decoder) required(owner *yaml.Node, m map[string]*yaml.Node, key string) *yaml.Node {
	v, ok := m[key]
	if !ok || isNull(v) {
		d.fail(owner, "missing `%s`", key)
	}

	return v
}
