package anf_test

import (
	"testing"

	"deob/internal/anf"
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/format"
	"deob/internal/lexer"
	"deob/internal/names"
	"deob/internal/parser"
	"deob/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID) {
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
	return b, res.File
}

// normalize runs src through the normalizer with an unbounded _t pool and
// prints the result.
func normalize(t *testing.T, src string) string {
	t.Helper()
	b, file := parse(t, src)
	n := anf.New(b, names.Sequence("_t", 0))
	out := n.Finalize(n.Program(file))
	return string(format.Program(b, out, format.Options{}))
}

// firstExpr returns the expression of the leading expression statement.
func firstExpr(t *testing.T, b *ast.Builder, file ast.FileID) ast.ExprID {
	t.Helper()
	body := b.Files.Get(file).Body
	if len(body) == 0 {
		t.Fatal("empty program")
	}
	data, ok := b.Stmts.Expr(body[0])
	if !ok {
		t.Fatal("first statement is not an expression statement")
	}
	return data.Expr
}
