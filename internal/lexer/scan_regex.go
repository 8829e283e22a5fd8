package lexer

import (
	"deob/internal/diag"
	"deob/internal/token"
)

// RescanRegex re-reads tok, a '/' or '/=' the parser found where an
// expression starts, as a regular expression literal. Any buffered
// lookahead is discarded.
func (lx *Lexer) RescanRegex(tok token.Token) token.Token {
	lx.look = nil
	lx.cursor.Off = tok.Span.Start
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		if lx.cursor.EOF() {
			return lx.badRegex(start, tok)
		}
		b := lx.cursor.Bump()
		switch b {
		case '\n', '\r':
			return lx.badRegex(start, tok)
		case '\\':
			if c := lx.cursor.Peek(); c == '\n' || c == '\r' || lx.cursor.EOF() {
				return lx.badRegex(start, tok)
			}
			lx.cursor.Bump()
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for isIdentContinueByte(lx.cursor.Peek()) {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				return token.Token{
					Kind:          token.Regex,
					Span:          sp,
					Text:          lx.text(sp),
					NewlineBefore: tok.NewlineBefore,
				}
			}
		}
	}
}

func (lx *Lexer) badRegex(start Mark, tok token.Token) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regular expression")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp), NewlineBefore: tok.NewlineBefore}
}
