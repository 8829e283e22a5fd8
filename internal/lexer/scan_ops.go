package lexer

import (
	"deob/internal/diag"
	"deob/internal/token"
)

// scanOperatorOrPunct matches the longest punctuator at the cursor.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.limit() - lx.cursor.Off
	for n := min(rest, 4); n > 0; n-- {
		text := string(lx.file.Content[lx.cursor.Off : lx.cursor.Off+n])
		kind, ok := token.LookupPunct(text)
		if !ok {
			continue
		}
		// a?.5:b is a conditional, not optional chaining
		if kind == token.QuestionDot && isDec(lx.cursor.PeekAt(2)) {
			continue
		}
		lx.cursor.Off += n
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
