package lexer

import (
	"deob/internal/source"
	"deob/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
	nl     bool         // a line terminator was seen in the trivia before the next token
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.skipHashbang()
	return lx
}

// NewRange lexes only file.Content[start:end]; used for template substitutions.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	c := NewCursor(file)
	c.Off = start
	c.Limit = end
	return &Lexer{
		file:   file,
		cursor: c,
		opts:   opts,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.nl = false
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:          token.EOF,
			Span:          lx.emptySpan(),
			NewlineBefore: lx.nl,
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '`':
		tok = lx.scanTemplate()
	case ch == '#':
		tok = lx.scanPrivateName()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.NewlineBefore = lx.nl
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) skipHashbang() {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	}
}
