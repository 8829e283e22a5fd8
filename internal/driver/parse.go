package driver

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/parser"
	"deob/internal/source"
	"deob/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Lines is the number of source lines in the parsed file.
func (r *ParseResult) Lines() int {
	if r == nil || r.File == nil {
		return 0
	}
	return r.File.LineCount()
}

// Parse loads and parses the file at path. A result with diagnostics is
// returned together with an error wrapping ErrParse when any of them is
// an error.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tracedParse(ctx, fs, fileID, maxDiagnostics)
}

// ParseSource parses src registered under name, which need not exist on disk.
func ParseSource(ctx context.Context, name string, src []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return tracedParse(ctx, fs, fileID, maxDiagnostics)
}

func tracedParse(ctx context.Context, fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", trace.CurrentSpan(ctx))
	res, err := parseLoaded(fs, fileID, maxDiagnostics)
	if err != nil {
		if res != nil {
			span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len()))
		}
		span.End("error")
		return res, err
	}
	span.End(res.File.Path)
	return res, nil
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporterAdapter.Reporter()})
	builder := ast.NewBuilder(ast.Hints{})

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}
	result := parser.ParseFile(fs, lx, builder, opts)
	bag.Sort()

	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}
	if bag.HasErrors() {
		return res, fmt.Errorf("%s: %w", file.Path, ErrParse)
	}
	return res, nil
}
