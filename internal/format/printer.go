package format

import (
	"deob/internal/ast"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	b    *ast.Builder
	w    *Writer
	noIn bool // printing a for-header init: bare `in` must be parenthesized
}

func newPrinter(b *ast.Builder, opt Options) *printer {
	return &printer{b: b, w: NewWriter(opt)}
}

// Program prints a whole file, one top-level statement per line.
func Program(b *ast.Builder, fid ast.FileID, opt Options) []byte {
	file := b.Files.Get(fid)
	if file == nil {
		return nil
	}
	p := newPrinter(b, opt)
	for _, st := range file.Body {
		p.stmt(st)
		p.w.Newline()
	}
	return p.w.Bytes()
}

// Stmts prints a statement list as if it were a program body.
func Stmts(b *ast.Builder, stmts []ast.StmtID, opt Options) []byte {
	p := newPrinter(b, opt)
	for _, st := range stmts {
		p.stmt(st)
		p.w.Newline()
	}
	return p.w.Bytes()
}

// Stmt prints one statement without a trailing newline.
func Stmt(b *ast.Builder, id ast.StmtID, opt Options) string {
	p := newPrinter(b, opt)
	p.stmt(id)
	return string(p.w.Bytes())
}

// Expr prints one expression.
func Expr(b *ast.Builder, id ast.ExprID) string {
	p := newPrinter(b, Options{})
	p.expr(id, precSeq)
	return string(p.w.Bytes())
}

// Node prints any selectable node; used for match listings.
func Node(b *ast.Builder, s ast.Selectable) string {
	p := newPrinter(b, Options{})
	switch s.Kind {
	case ast.SelProgram:
		id, _ := s.Program()
		return string(Program(b, id, Options{}))
	case ast.SelStmt:
		id, _ := s.Stmt()
		p.stmt(id)
	case ast.SelExpr:
		id, _ := s.Expr()
		p.expr(id, precSeq)
	case ast.SelPat:
		id, _ := s.Pat()
		p.pat(id)
	case ast.SelProp:
		id, _ := s.Prop()
		p.prop(id)
	case ast.SelDecl:
		id, _ := s.Decl()
		p.decl(id)
	case ast.SelFunc:
		id, _ := s.Func()
		p.function(id)
	case ast.SelCase:
		id, _ := s.Case()
		p.switchCase(id)
	case ast.SelSpec:
		id, _ := s.Spec()
		p.spec(id)
	}
	return string(p.w.Bytes())
}
