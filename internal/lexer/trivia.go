package lexer

import "deob/internal/diag"

// skipTrivia consumes whitespace and comments before the next token and
// records whether a line terminator was crossed.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case ' ', '\t', '\v', '\f':
			lx.cursor.Bump()
			continue
		case '\n', '\r':
			lx.nl = true
			lx.cursor.Bump()
			continue
		case '/':
			if lx.skipComment() {
				continue
			}
			return
		}
		if b >= utf8RuneSelf {
			r, _ := lx.peekRune()
			switch {
			case r == '\u2028' || r == '\u2029':
				lx.nl = true
				lx.bumpRune()
				continue
			case r == '\ufeff' || isUnicodeSpace(r):
				lx.bumpRune()
				continue
			}
		}
		return
	}
}

// skipComment consumes a // or /* */ comment. A block comment spanning
// lines counts as a line terminator.
func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' && lx.cursor.Peek() != '\r' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return true
			}
			if c := lx.cursor.Bump(); c == '\n' || c == '\r' {
				lx.nl = true
			}
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	}
	return false
}
