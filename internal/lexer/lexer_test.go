package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
	"deob/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", reporter.ErrorMessages())
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("%q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("%q: expected text %q, got %q", input, expectedText, tok.Text)
	}
}

func TestStatements(t *testing.T) {
	expectTokens(t, "console.log(1, 2, 3); const a = 'x';", []token.Kind{
		token.Ident, token.Dot, token.Ident, token.LParen,
		token.Number, token.Comma, token.Number, token.Comma, token.Number,
		token.RParen, token.Semicolon,
		token.KwConst, token.Ident, token.Assign, token.String, token.Semicolon,
	})
}

func TestKeywordsAndContextualNames(t *testing.T) {
	expectTokens(t, "let async of get set await yield", []token.Kind{
		token.KwLet, token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.KwYield,
	})
}

func TestLongestPunctuator(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{">>>=", token.UShrAssign},
		{">>>", token.UShr},
		{"===", token.EqEqEq},
		{"!==", token.BangEqEq},
		{"??=", token.QuestionQuestionAssign},
		{"??", token.QuestionQuestion},
		{"?.", token.QuestionDot},
		{"...", token.Ellipsis},
		{"**=", token.StarStarAssign},
		{"=>", token.Arrow},
		{"&&=", token.AndAndAssign},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expectSingleToken(t, tt.in, tt.kind, tt.in)
		})
	}
}

func TestOptionalChainBeforeDigit(t *testing.T) {
	expectTokens(t, "a?.5:b", []token.Kind{
		token.Ident, token.Question, token.Number, token.Colon, token.Ident,
	})
}

func TestNumbers(t *testing.T) {
	for _, in := range []string{"0", "42", "3.14", ".5", "1e10", "1.5E-3", "0xFF", "0o17", "0b1010", "1_000_000", "10n", "0x1Fn"} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Number, in)
		})
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"0x", "1e", "3in"} {
		t.Run(in, func(t *testing.T) {
			lx, rep := makeTestLexer(in)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Fatalf("expected Invalid, got %v", tok.Kind)
			}
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
				t.Fatalf("expected one LexBadNumber, got %v", rep.ErrorMessages())
			}
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []string{`"abc"`, `'abc'`, `"a\"b"`, `'it\'s'`, `"A"`, "'line\\\ncontinued'"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.String, in)
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer("'abc\nx")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", rep.ErrorMessages())
	}
}

func TestCommentsAndNewlines(t *testing.T) {
	lx, rep := makeTestLexer("a // one\n/* two\nthree */ b /* same line */ c")
	a, b, c := lx.Next(), lx.Next(), lx.Next()
	if a.NewlineBefore {
		t.Error("first token should not have NewlineBefore")
	}
	if !b.NewlineBefore {
		t.Error("b should have NewlineBefore")
	}
	if c.NewlineBefore {
		t.Error("c should not have NewlineBefore")
	}
	if c.Text != "c" || lx.Next().Kind != token.EOF {
		t.Errorf("unexpected token stream")
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.ErrorMessages())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* never closed")
	lx.Next()
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", rep.ErrorMessages())
	}
}

func TestHashbang(t *testing.T) {
	expectTokens(t, "#!/usr/bin/env node\nx", []token.Kind{token.Ident})
}

func TestIdentifiers(t *testing.T) {
	for _, in := range []string{"$", "_x", "$jq", "café", "\\u0061b", "x\\u{62}"} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Ident, in)
		})
	}
	// escaped keywords stay identifiers
	expectSingleToken(t, "\\u0069f", token.Ident, "\\u0069f")
}

func TestPrivateNames(t *testing.T) {
	expectSingleToken(t, "#count", token.PrivateName, "#count")
	expectSingleToken(t, "#if", token.PrivateName, "#if")
	expectTokens(t, "this.#x = 1;", []token.Kind{
		token.KwThis, token.Dot, token.PrivateName, token.Assign, token.Number, token.Semicolon,
	})

	lx, rep := makeTestLexer("# x")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", rep.ErrorMessages())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: got %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek: got %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second: got %q", n.Text)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("  foo = 12")
	tok := lx.Next()
	if tok.Span.Start != 2 || tok.Span.End != 5 {
		t.Errorf("foo span = %v", tok.Span)
	}
	lx.Next()
	tok = lx.Next()
	if tok.Span.Start != 8 || tok.Span.End != 10 {
		t.Errorf("12 span = %v", tok.Span)
	}
}
