package syntax

import (
	"jfront/ast"
	"jfront/types"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeUnit decodes a whole unit document.
//
// unit := {file?, package?, imports?, classes}
func (d *Decoder) decodeUnit(root *yaml.Node) *ast.CompilationUnit {
	if root.Kind == yaml.DocumentNode && len(root.Content) == 0 {
		d.fail(root, "empty unit document")
	}

	m := d.mapping(root)
	cu := &ast.CompilationUnit{Path: d.path}

	if fn, ok := m["file"]; ok {
		cu.Path = d.str(fn, fn, "file")
	}

	if pn, ok := m["package"]; ok && !isNull(pn) {
		cu.Package = d.str(pn, pn, "package")
	}

	for _, in := range d.sequence(m["imports"]) {
		name := d.str(in, in, "import")

		imp := &ast.Import{NodeBase: ast.NewNodeBase(d.pos(in)), Name: name}
		if strings.HasSuffix(name, ".*") {
			imp.Name = strings.TrimSuffix(name, ".*")
			imp.OnDemand = true
		}

		cu.Imports = append(cu.Imports, imp)
	}

	for _, cn := range d.sequence(m["classes"]) {
		cu.Classes = append(cu.Classes, d.decodeClass(cn))
	}

	return cu
}

// decodeClass decodes a class or interface declaration.
//
// class := {(class | interface), modifiers?, extends?, implements?,
// fields?, methods?, constructors?, initializers?, classes?}
func (d *Decoder) decodeClass(n *yaml.Node) *ast.ClassDecl {
	m := d.mapping(n)
	cd := &ast.ClassDecl{NodeBase: ast.NewNodeBase(d.pos(n))}

	if nn, ok := m["class"]; ok {
		cd.Name = d.str(n, nn, "class name")
	} else if nn, ok := m["interface"]; ok {
		cd.Name = d.str(n, nn, "interface name")
		cd.Interface = true
	} else {
		d.fail(n, "class declaration must have a `class` or `interface` key")
	}

	cd.Modifiers = d.decodeModifiers(m["modifiers"])

	if en, ok := m["extends"]; ok && !isNull(en) {
		// interfaces list their superinterfaces under extends
		if cd.Interface {
			for _, tn := range d.typeList(en) {
				cd.Interfaces = append(cd.Interfaces, d.decodeTypeRef(tn))
			}
		} else {
			cd.Super = d.decodeTypeRef(en)
		}
	}

	for _, tn := range d.sequence(m["implements"]) {
		cd.Interfaces = append(cd.Interfaces, d.decodeTypeRef(tn))
	}

	for _, fn := range d.sequence(m["fields"]) {
		cd.Fields = append(cd.Fields, d.decodeFields(fn)...)
	}

	for _, mn := range d.sequence(m["methods"]) {
		cd.Methods = append(cd.Methods, d.decodeMethod(mn, cd.Name, false))
	}

	for _, mn := range d.sequence(m["constructors"]) {
		cd.Methods = append(cd.Methods, d.decodeMethod(mn, cd.Name, true))
	}

	for _, in := range d.sequence(m["initializers"]) {
		im := d.mapping(in)
		cd.Initializers = append(cd.Initializers, &ast.Initializer{
			NodeBase: ast.NewNodeBase(d.pos(in)),
			Static:   d.flag(im["static"]),
			Body:     d.decodeBlock(in, im["body"]),
		})
	}

	for _, nn := range d.sequence(m["classes"]) {
		cd.Classes = append(cd.Classes, d.decodeClass(nn))
	}

	return cd
}

// typeList accepts either a single type or a sequence of types.
func (d *Decoder) typeList(n *yaml.Node) []*yaml.Node {
	if n.Kind == yaml.SequenceNode {
		return n.Content
	}

	return []*yaml.Node{n}
}

// decodeModifiers decodes a list of modifier keywords into modifier flags.
func (d *Decoder) decodeModifiers(n *yaml.Node) int {
	mods := 0
	for _, mn := range d.sequence(n) {
		mod, ok := types.LookupModifier(d.str(mn, mn, "modifier"))
		if !ok {
			d.fail(mn, "unknown modifier `%s`", mn.Value)
		}

		if mods&mod != 0 {
			d.fail(mn, "repeated modifier `%s`", mn.Value)
		}

		mods |= mod
	}

	return mods
}

// decodeFields decodes a field declaration.  A declaration may name several
// variables through `names` sharing one type.
//
// field := {type, (name | names), modifiers?, init?}
func (d *Decoder) decodeFields(n *yaml.Node) []*ast.FieldDecl {
	m := d.mapping(n)
	mods := d.decodeModifiers(m["modifiers"])

	if nn, ok := m["names"]; ok {
		var fields []*ast.FieldDecl
		for _, name := range d.sequence(nn) {
			fields = append(fields, &ast.FieldDecl{
				NodeBase:  ast.NewNodeBase(d.pos(name)),
				Modifiers: mods,
				Type:      d.decodeTypeRef(m["type"]),
				Name:      d.str(name, name, "field name"),
			})
		}

		return fields
	}

	fd := &ast.FieldDecl{
		NodeBase:  ast.NewNodeBase(d.pos(n)),
		Modifiers: mods,
		Type:      d.decodeTypeRef(m["type"]),
		Name:      d.str(n, m["name"], "field name"),
	}

	if in, ok := m["init"]; ok {
		fd.Init = d.decodeExpr(in)
	}

	return []*ast.FieldDecl{fd}
}

// decodeMethod decodes a method or constructor.
//
// method := {name, modifiers?, returns?, params?, throws?, body?}
// constructor := {modifiers?, params?, throws?, body}
func (d *Decoder) decodeMethod(n *yaml.Node, className string, ctor bool) *ast.MethodDecl {
	m := d.mapping(n)
	md := &ast.MethodDecl{
		NodeBase:    ast.NewNodeBase(d.pos(n)),
		Modifiers:   d.decodeModifiers(m["modifiers"]),
		Constructor: ctor,
	}

	if ctor {
		md.Name = className
	} else {
		md.Name = d.str(n, m["name"], "method name")

		if rn, ok := m["returns"]; ok && !isNull(rn) && rn.Value != "void" {
			md.Return = d.decodeTypeRef(rn)
		}
	}

	for _, pn := range d.sequence(m["params"]) {
		pm := d.mapping(pn)
		md.Params = append(md.Params, &ast.Param{
			NodeBase: ast.NewNodeBase(d.pos(pn)),
			Type:     d.decodeTypeRef(pm["type"]),
			Name:     d.str(pn, pm["name"], "parameter name"),
			Final:    d.flag(pm["final"]),
		})
	}

	for _, tn := range d.sequence(m["throws"]) {
		md.Throws = append(md.Throws, d.decodeTypeRef(tn))
	}

	if bn, ok := m["body"]; ok {
		md.Body = d.decodeBlock(n, bn)
	}

	return md
}

// decodeTypeRef decodes a type as written: `int`, `p.C`, `String[][]`.
func (d *Decoder) decodeTypeRef(n *yaml.Node) *ast.TypeRef {
	if isNull(n) {
		d.fail(n, "missing type")
	}

	name := d.str(n, n, "type")

	dims := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		dims++
	}

	if name == "" {
		d.fail(n, "malformed type `%s`", n.Value)
	}

	return ast.NewTypeRef(d.pos(n), name, dims)
}
