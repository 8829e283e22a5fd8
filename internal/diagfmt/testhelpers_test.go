package diagfmt_test

import (
	"testing"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/parser"
	"deob/internal/source"
)

func parse(t *testing.T, src string) (*source.FileSet, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte(src))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: &diag.BagReporter{Bag: bag}, MaxErrors: 32})
	if bag.Len() > 0 {
		t.Fatalf("parse failed for %q: %d diagnostics", src, bag.Len())
	}
	return fs, b, res.File
}

// spanOf returns the span of the first occurrence of needle in the file.
func spanOf(t *testing.T, fs *source.FileSet, fid source.FileID, needle string) source.Span {
	t.Helper()
	content := string(fs.Get(fid).Content)
	for i := 0; i+len(needle) <= len(content); i++ {
		if content[i:i+len(needle)] == needle {
			return source.Span{File: fid, Start: uint32(i), End: uint32(i + len(needle))}
		}
	}
	t.Fatalf("%q not found", needle)
	return source.Span{}
}
