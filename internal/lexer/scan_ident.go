package lexer

import (
	"deob/internal/diag"
	"deob/internal/token"
)

// scanIdentOrKeyword reads an IdentifierName, \uXXXX escapes included.
// Escaped names never become keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	escaped := false
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			if !lx.scanUnicodeEscape() {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexUnknownChar, sp, "invalid escape in identifier")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			escaped = true
		case b < utf8RuneSelf:
			if first && !isIdentStartByte(b) || !first && !isIdentContinueByte(b) {
				return lx.identToken(start, escaped)
			}
			lx.cursor.Bump()
		default:
			r, _ := lx.peekRune()
			if first && !isIdentStartRune(r) || !first && !isIdentContinueRune(r) {
				if first {
					lx.bumpRune()
					sp := lx.cursor.SpanFrom(start)
					lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
					return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
				}
				return lx.identToken(start, escaped)
			}
			lx.bumpRune()
		}
		first = false
	}
	return lx.identToken(start, escaped)
}

// scanPrivateName reads `#name`. A '#' that starts no name is an error.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if next := lx.cursor.Peek(); !(isIdentStartByte(next) || next == '\\' || next >= utf8RuneSelf) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	name := lx.scanIdentOrKeyword()
	if name.Kind == token.Invalid {
		return name
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.PrivateName, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) identToken(start Mark, escaped bool) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !escaped {
		if kw, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: kw, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanUnicodeEscape consumes \uXXXX or \u{X...}.
func (lx *Lexer) scanUnicodeEscape() bool {
	if b0, b1, ok := lx.cursor.Peek2(); !ok || b0 != '\\' || b1 != 'u' {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		return n > 0 && lx.cursor.Eat('}')
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			return false
		}
		lx.cursor.Bump()
	}
	return true
}
