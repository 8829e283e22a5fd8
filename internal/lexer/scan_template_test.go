package lexer_test

import (
	"testing"

	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
	"deob/internal/token"
)

func TestTemplateToken(t *testing.T) {
	tests := []string{
		"`plain`",
		"`a${b}c`",
		"`${a}${b}`",
		"`x${ {a: 1}.a }y`",
		"`outer ${`inner ${x}`} done`",
		"`s ${'}'} e`",
		"`esc \\` still`",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Template, in)
		})
	}
}

func TestSplitTemplate(t *testing.T) {
	fs := source.NewFileSet()
	src := "`a${b + 1}c${ d }`"
	id := fs.AddVirtual("t.js", []byte(src))
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{})
	tok := lx.Next()
	if tok.Kind != token.Template {
		t.Fatalf("expected template, got %v", tok.Kind)
	}

	parts := lexer.SplitTemplate(file, tok)
	if len(parts.Quasis) != 3 || len(parts.Exprs) != 2 {
		t.Fatalf("got %d quasis, %d exprs", len(parts.Quasis), len(parts.Exprs))
	}
	wantQuasis := []string{"a", "c", ""}
	for i, q := range parts.Quasis {
		if got := file.Slice(q); got != wantQuasis[i] {
			t.Errorf("quasi %d = %q, want %q", i, got, wantQuasis[i])
		}
	}
	wantExprs := []string{"b + 1", " d "}
	for i, e := range parts.Exprs {
		if got := file.Slice(e); got != wantExprs[i] {
			t.Errorf("expr %d = %q, want %q", i, got, wantExprs[i])
		}
	}

	sub := lexer.NewRange(file, parts.Exprs[0].Start, parts.Exprs[0].End, lexer.Options{})
	var kinds []token.Kind
	for tok := sub.Next(); tok.Kind != token.EOF; tok = sub.Next() {
		kinds = append(kinds, tok.Kind)
	}
	if len(kinds) != 3 || kinds[0] != token.Ident || kinds[1] != token.Plus || kinds[2] != token.Number {
		t.Errorf("sub-lexer kinds = %v", kinds)
	}
}

func TestUnterminatedTemplate(t *testing.T) {
	lx, rep := makeTestLexer("`abc ${x")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedTemplate {
		t.Fatalf("expected LexUnterminatedTemplate, got %v", rep.ErrorMessages())
	}
}

func TestRescanRegex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/ab+c/gi;", "/ab+c/gi"},
		{"/[/]/.test(x)", "/[/]/"},
		{`/a\/b/`, `/a\/b/`},
		{"/=x/", "/=x/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.in)
			tok := lx.Next()
			if tok.Kind != token.Slash && tok.Kind != token.SlashAssign {
				t.Fatalf("expected slash, got %v", tok.Kind)
			}
			re := lx.RescanRegex(tok)
			if re.Kind != token.Regex || re.Text != tt.want {
				t.Fatalf("got %v %q, want %q (diags %v)", re.Kind, re.Text, tt.want, rep.ErrorMessages())
			}
		})
	}
}

func TestRescanRegexUnterminated(t *testing.T) {
	lx, rep := makeTestLexer("/abc\n/")
	re := lx.RescanRegex(lx.Next())
	if re.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", re.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedRegex {
		t.Fatalf("expected LexUnterminatedRegex, got %v", rep.ErrorMessages())
	}
}
