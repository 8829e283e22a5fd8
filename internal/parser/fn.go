package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/source"
	"deob/internal/token"
)

// parseFunction parses `function [*] [name] (params) { body }`. start is the
// span of the first token, `async` included.
func (p *Parser) parseFunction(start source.Span, async, isDecl bool) ast.FuncID {
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'"); !ok {
		return ast.NoFuncID
	}
	gen := p.eat(token.Star)
	name := ""
	if p.at(token.Ident) {
		name = p.advance().Text
	} else if isDecl {
		p.err(diag.SynExpectIdentifier, "expected function name, got \""+p.peek().Text+"\"")
		return ast.NoFuncID
	}

	saved := p.fn
	p.fn = fnCtx{async: async, generator: gen}
	defer func() { p.fn = saved }()

	params, ok := p.parseParams()
	if !ok {
		return ast.NoFuncID
	}
	body, ok := p.parseFunctionBody()
	if !ok {
		return ast.NoFuncID
	}
	return p.arenas.Funcs.New(ast.Func{
		Span:      p.spanFrom(start),
		Name:      name,
		Params:    params,
		Body:      body,
		Async:     async,
		Generator: gen,
	})
}

// parseMethod parses the `(params) { body }` part of an object method or accessor.
func (p *Parser) parseMethod(start source.Span, async, gen bool) ast.FuncID {
	saved := p.fn
	p.fn = fnCtx{async: async, generator: gen}
	defer func() { p.fn = saved }()

	params, ok := p.parseParams()
	if !ok {
		return ast.NoFuncID
	}
	body, ok := p.parseFunctionBody()
	if !ok {
		return ast.NoFuncID
	}
	return p.arenas.Funcs.New(ast.Func{
		Span:      p.spanFrom(start),
		Params:    params,
		Body:      body,
		Async:     async,
		Generator: gen,
	})
}

// parseParams parses a formal parameter list including a trailing rest element.
func (p *Parser) parseParams() ([]ast.PatID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"); !ok {
		return nil, false
	}
	var params []ast.PatID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			dots := p.advance()
			target := p.parseBindingTarget()
			if !target.IsValid() {
				return nil, false
			}
			params = append(params, p.arenas.Pats.NewRest(p.spanFrom(dots.Span), target))
			break
		}
		param := p.parseBindingElement()
		if !param.IsValid() {
			return nil, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseFunctionBody() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' before function body"); !ok {
		return nil, false
	}
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	body := p.parseStatementList(token.RBrace)
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close function body"); !ok {
		return nil, false
	}
	return body, true
}

// parseArrowBody is entered at `=>`; params were already converted.
func (p *Parser) parseArrowBody(start source.Span, params []ast.PatID, async bool) ast.ExprID {
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID
	}
	saved := p.fn
	p.fn = fnCtx{async: async}
	defer func() { p.fn = saved }()

	fn := ast.Func{Params: params, Arrow: true, Async: async}
	if p.at(token.LBrace) {
		body, ok := p.parseFunctionBody()
		if !ok {
			return ast.NoExprID
		}
		fn.Body = body
	} else {
		fn.ExprBody = p.parseAssign()
		if !fn.ExprBody.IsValid() {
			return ast.NoExprID
		}
	}
	fn.Span = p.spanFrom(start)
	id := p.arenas.Funcs.New(fn)
	return p.arenas.Exprs.NewFunc(fn.Span, true, id)
}

// toParams converts a parenthesized cover list into arrow parameters.
func (p *Parser) toParams(items []ast.ExprID, rest ast.PatID) ([]ast.PatID, bool) {
	params := make([]ast.PatID, 0, len(items)+1)
	for i, item := range items {
		if arg, ok := p.arenas.Exprs.Arg(item); ok && p.arenas.Exprs.Get(item).Kind == ast.ExprSpread {
			if i != len(items)-1 {
				p.report(diag.SynUnexpectedToken, diag.SevError, p.arenas.Exprs.Get(item).Span, "rest parameter must be last")
				return nil, false
			}
			target := p.toPattern(arg.Arg)
			if !target.IsValid() {
				return nil, false
			}
			params = append(params, p.arenas.Pats.NewRest(p.arenas.Exprs.Get(item).Span, target))
			continue
		}
		param := p.toBindingElement(item)
		if !param.IsValid() {
			return nil, false
		}
		params = append(params, param)
	}
	if rest.IsValid() {
		params = append(params, rest)
	}
	return params, true
}
