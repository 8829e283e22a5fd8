package token

import (
	"deob/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// NewlineBefore is set when a line terminator separates this token from the previous one.
	// The parser needs it for automatic semicolon insertion and restricted productions.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, string, template or regex literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, Template, Regex, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token may appear as a property name after '.':
// identifiers and reserved words alike.
func (t Token) IsIdentName() bool {
	return t.Kind == Ident || t.Kind.IsKeyword()
}
