package lexer

import (
	"deob/internal/diag"
	"deob/internal/source"
	"deob/internal/token"
)

// TemplateParts splits a Template token into its raw text chunks and the
// spans of its ${...} substitutions. len(Quasis) == len(Exprs)+1.
type TemplateParts struct {
	Quasis []source.Span // text between the backquotes and substitutions, raw
	Exprs  []source.Span // substitution bodies without "${" and "}"
}

// scanTemplate reads a whole `...` literal including nested substitutions.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	if !lx.walkTemplate(nil) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Template, Span: sp, Text: lx.text(sp)}
}

// SplitTemplate re-walks a Template token and returns its parts.
func SplitTemplate(file *source.File, tok token.Token) TemplateParts {
	lx := NewRange(file, tok.Span.Start, tok.Span.End, Options{})
	var parts TemplateParts
	lx.walkTemplate(&parts)
	return parts
}

// walkTemplate consumes a template starting at '`'. When parts is not nil
// the chunk and substitution spans are recorded.
func (lx *Lexer) walkTemplate(parts *TemplateParts) bool {
	lx.cursor.Bump() // '`'
	chunk := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == '`':
			if parts != nil {
				parts.Quasis = append(parts.Quasis, lx.cursor.SpanFrom(chunk))
			}
			lx.cursor.Bump()
			return true
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			if parts != nil {
				parts.Quasis = append(parts.Quasis, lx.cursor.SpanFrom(chunk))
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
			exprStart := lx.cursor.Mark()
			if !lx.skipSubstitution() {
				return false
			}
			if parts != nil {
				sp := lx.cursor.SpanFrom(exprStart)
				sp.End-- // closing '}'
				parts.Exprs = append(parts.Exprs, sp)
			}
			chunk = lx.cursor.Mark()
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipSubstitution consumes up to and including the '}' closing a ${.
// Braces are balanced; strings, nested templates and comments are skipped whole.
func (lx *Lexer) skipSubstitution() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if tok := lx.scanString(); tok.Kind == token.Invalid {
				return false
			}
		case '`':
			if !lx.walkTemplate(nil) {
				return false
			}
		case '/':
			if !lx.skipComment() {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
