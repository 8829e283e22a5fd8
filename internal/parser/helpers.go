package parser

import (
	"slices"

	"deob/internal/diag"
	"deob/internal/source"
	"deob/internal/token"
)

func (p *Parser) fill(n int) {
	for len(p.ahead) < n {
		p.ahead = append(p.ahead, p.lx.Next())
	}
}

// peek returns the current token.
func (p *Parser) peek() token.Token {
	p.fill(1)
	return p.ahead[0]
}

// peekAt returns the token n positions after the current one.
func (p *Parser) peekAt(n int) token.Token {
	p.fill(n + 1)
	return p.ahead[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atIdent reports whether the current token is the identifier name.
func (p *Parser) atIdent(name string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && tok.Text == name
}

// advance consumes the current token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.ahead = p.ahead[1:]
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// rescanRegex turns the current '/' or '/=' into a regex token and consumes it.
func (p *Parser) rescanRegex() token.Token {
	tok := p.peek()
	p.ahead = p.ahead[:0]
	re := p.lx.RescanRegex(tok)
	p.lastSpan = re.Span
	return re
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// getDiagnosticSpan returns the best span to blame: the current token, or
// the end of the last consumed token at EOF.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// eat consumes the current token when it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// consumeSemicolon applies automatic semicolon insertion: a ';' is optional
// before '}', at EOF and after a line break.
func (p *Parser) consumeSemicolon() bool {
	if p.eat(token.Semicolon) {
		return true
	}
	tok := p.peek()
	if tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore {
		return true
	}
	p.err(diag.SynExpectSemicolon, "expected ';', got \""+tok.Text+"\"")
	return false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

// report emits through the reporter until MaxErrors errors were seen.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	return true
}

// resyncStatement skips to a plausible statement boundary after an error.
// It always makes progress so the statement loop terminates.
func (p *Parser) resyncStatement(before source.Span) {
	if p.peek().Span == before && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) {
		tok := p.peek()
		switch {
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case tok.Kind == token.RBrace:
			return
		case tok.NewlineBefore && isStatementStarter(tok.Kind):
			return
		}
		p.advance()
	}
}

func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwIf, token.KwFor,
		token.KwWhile, token.KwDo, token.KwReturn, token.KwTry, token.KwSwitch, token.KwThrow,
		token.KwBreak, token.KwContinue, token.LBrace, token.KwClass, token.KwImport, token.KwExport:
		return true
	default:
		return false
	}
}
