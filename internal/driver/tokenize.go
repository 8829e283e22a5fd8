package driver

import (
	"context"
	"strconv"

	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
	"deob/internal/token"
	"deob/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path up to and including EOF. Lexical errors
// land in the Bag; only I/O failures are returned.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "tokenize", trace.CurrentSpan(ctx))
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporterAdapter.Reporter()})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End(path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
