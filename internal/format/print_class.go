package format

import (
	"deob/internal/ast"
)

// class prints a class declaration or expression with one member per line.
func (p *printer) class(id ast.ClassID) {
	cls := p.b.Classes.Get(id)
	if cls == nil {
		return
	}
	w := p.w
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	w.WriteString("class")
	if cls.Name != "" {
		w.WriteString(" " + cls.Name)
	}
	if cls.Super.IsValid() {
		w.WriteString(" extends ")
		p.expr(cls.Super, precCall)
	}
	if len(cls.Members) == 0 {
		w.WriteString(" {}")
		return
	}
	w.WriteString(" {")
	w.Newline()
	w.IndentPush()
	for _, m := range cls.Members {
		p.prop(m)
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) moduleDecl(id ast.StmtID, kind ast.StmtKind) {
	data, _ := p.b.Stmts.Module(id)
	w := p.w
	switch kind {
	case ast.StmtImport:
		w.WriteString("import ")
		if len(data.Specs) > 0 {
			p.importClause(data.Specs)
			w.WriteString(" from ")
		}
		p.expr(data.Source, precPrimary)
		w.WriteString(";")

	case ast.StmtExportAll:
		w.WriteString("export *")
		if data.Expr.IsValid() {
			w.WriteString(" as ")
			p.expr(data.Expr, precPrimary)
		}
		w.WriteString(" from ")
		p.expr(data.Source, precPrimary)
		w.WriteString(";")

	case ast.StmtExportDefault:
		w.WriteString("export default ")
		if data.Decl.IsValid() {
			p.stmt(data.Decl)
			return
		}
		// a leading function or class would be read as a declaration
		k := p.leftmost(data.Expr)
		p.exprParen(data.Expr, precAssign, k == ast.ExprFunc || k == ast.ExprClass)
		w.WriteString(";")

	case ast.StmtExportNamed:
		w.WriteString("export ")
		if data.Decl.IsValid() {
			p.stmt(data.Decl)
			return
		}
		w.WriteString("{")
		for i, s := range data.Specs {
			if i > 0 {
				w.WriteString(", ")
			}
			p.spec(s)
		}
		w.WriteString("}")
		if data.Source.IsValid() {
			w.WriteString(" from ")
			p.expr(data.Source, precPrimary)
		}
		w.WriteString(";")
	}
}

// importClause prints `d, * as ns` or `d, {a, b as c}`.
func (p *printer) importClause(specs []ast.SpecID) {
	w := p.w
	named := false
	for i, id := range specs {
		if i > 0 {
			w.WriteString(", ")
		}
		if p.b.Specs.Get(id).Kind == ast.SpecImport && !named {
			w.WriteString("{")
			named = true
		}
		p.spec(id)
	}
	if named {
		w.WriteString("}")
	}
}

func (p *printer) spec(id ast.SpecID) {
	s := p.b.Specs.Get(id)
	if s == nil {
		return
	}
	w := p.w
	switch s.Kind {
	case ast.SpecImportNamespace:
		w.WriteString("* as ")
		p.expr(s.Local, precPrimary)
	case ast.SpecExport:
		p.expr(s.Local, precPrimary)
		if s.Remote.IsValid() {
			w.WriteString(" as ")
			p.expr(s.Remote, precPrimary)
		}
	default:
		if s.Remote.IsValid() {
			p.expr(s.Remote, precPrimary)
			w.WriteString(" as ")
		}
		p.expr(s.Local, precPrimary)
	}
}
