package lexer

import (
	"deob/internal/diag"
	"deob/internal/token"
)

// scanNumber reads 0x/0o/0b integers, decimals with fraction and exponent,
// numeric separators and the BigInt suffix n.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			return lx.scanRadix(start, isHex)
		case 'o', 'O':
			return lx.scanRadix(start, func(b byte) bool { return b >= '0' && b <= '7' })
		case 'b', 'B':
			return lx.scanRadix(start, func(b byte) bool { return b == '0' || b == '1' })
		}
	}

	lx.digits(isDec)
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		return lx.finishNumber(start)
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.digits(isDec) == 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "missing exponent digits")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) scanRadix(start Mark, ok func(byte) bool) token.Token {
	lx.cursor.Bump()
	lx.cursor.Bump()
	if lx.digits(ok) == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "missing digits after radix prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.Eat('n')
	return lx.finishNumber(start)
}

// digits consumes digits accepted by ok and '_' separators; it returns the digit count.
func (lx *Lexer) digits(ok func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		if ok(b) {
			n++
		} else if b != '_' || n == 0 {
			return n
		}
		lx.cursor.Bump()
	}
}

// finishNumber rejects an identifier glued to the literal, as in 3in.
func (lx *Lexer) finishNumber(start Mark) token.Token {
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
}
