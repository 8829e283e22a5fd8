package parser

import (
	"fmt"
	"strings"
	"testing"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseSource parses src as a script and returns the builder, file and diagnostics.
func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.js", []byte(src))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, lx, b, Options{Reporter: &diag.BagReporter{Bag: bag}, MaxErrors: 100})
	return b, res.File, bag
}

// mustParse fails the test when src produces any diagnostic.
func mustParse(t *testing.T, src string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	b, file, bag := parseSource(t, src)
	if bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return b, b.Files.Get(file).Body
}

// firstExpr returns the expression of the single expression statement in src.
func firstExpr(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, body := mustParse(t, src)
	if len(body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body))
	}
	data, ok := b.Stmts.Expr(body[0])
	if !ok {
		t.Fatalf("expected expression statement, got %s", b.Stmts.Get(body[0]).Kind)
	}
	return b, data.Expr
}
