package fuzztests

import (
	"context"
	"testing"
	"time"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/parser"
	"deob/internal/source"
	"deob/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseBytes(input []byte) (*source.File, *ast.Builder, ast.FileID, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.js", input))

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
	})
	return file, builder, res.File, bag
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file, b, fileID, bag := parseBytes(clampInput(input))
		if bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(b, fileID, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input,
// malformed or not, including error recovery paths.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("let x = 1\nlet y = 2"))          // ASI between declarations
	f.Add([]byte("a\n++b"))                        // restricted production
	f.Add([]byte("for (let i = 0 i < 10 i++) {}")) // for without semicolons
	f.Add([]byte("{ { { { } } } }"))               // nested blocks
	f.Add([]byte("(a, b) => { return"))            // unterminated arrow body
	f.Add([]byte("`${`${`"))                       // unterminated nested templates
	f.Add([]byte("switch (x) { case"))             // truncated switch

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			parseBytes(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
