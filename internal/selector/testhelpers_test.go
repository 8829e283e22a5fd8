package selector_test

import (
	"testing"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/parser"
	"deob/internal/selector"
	"deob/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.Selectable) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte(src))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: &diag.BagReporter{Bag: bag}, MaxErrors: 32})
	if bag.Len() > 0 {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("parse failed for:\n%s", src)
	}
	return b, ast.ProgramSel(res.File)
}

// label renders a match as its literal text, identifier name or type name.
func label(b *ast.Builder, s ast.Selectable) string {
	if id, ok := s.Expr(); ok {
		if lit, ok := b.Exprs.Lit(id); ok {
			return lit.Raw
		}
		if ident, ok := b.Exprs.Ident(id); ok {
			return ident.Name
		}
	}
	if id, ok := s.Pat(); ok {
		if ident, ok := b.Pats.Ident(id); ok {
			return ident.Name
		}
	}
	return b.TypeName(s)
}

func labels(b *ast.Builder, sels []ast.Selectable) []string {
	out := make([]string, 0, len(sels))
	for _, s := range sels {
		out = append(out, label(b, s))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// preorder walks the tree with Children, independent of the engine.
func preorder(b *ast.Builder, root ast.Selectable) []ast.Selectable {
	out := []ast.Selectable{root}
	for _, c := range selector.Children(b, root) {
		out = append(out, preorder(b, c)...)
	}
	return out
}
