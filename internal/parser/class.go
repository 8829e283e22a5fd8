package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/token"
)

// parseClass parses `class [name] [extends LHS] { members }`. The name may
// be left out of class expressions and of `export default class`.
func (p *Parser) parseClass(requireName bool) ast.ClassID {
	kw := p.advance()
	name := ""
	if p.at(token.Ident) {
		name = p.advance().Text
	} else if requireName {
		p.err(diag.SynExpectIdentifier, "expected class name, got \""+p.peek().Text+"\"")
		return ast.NoClassID
	}

	super := ast.NoExprID
	if p.eat(token.KwExtends) {
		if super = p.parseLHS(); !super.IsValid() {
			return ast.NoClassID
		}
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' before class body"); !ok {
		return ast.NoClassID
	}
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	var members []ast.PropID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		m := p.parseClassMember()
		if !m.IsValid() {
			return ast.NoClassID
		}
		members = append(members, m)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body"); !ok {
		return ast.NoClassID
	}
	return p.arenas.Classes.New(ast.Class{
		Span:    p.spanFrom(kw.Span),
		Name:    name,
		Super:   super,
		Members: members,
	})
}

// isClassKeyEnd reports whether k may follow a member name; it tells a
// field or method called `get`, `static` or `async` apart from a modifier.
func isClassKeyEnd(k token.Kind) bool {
	switch k {
	case token.LParen, token.Assign, token.Semicolon, token.RBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) parseClassMember() ast.PropID {
	start := p.peek().Span
	static := false
	if p.atIdent("static") && !isClassKeyEnd(p.peekAt(1).Kind) {
		p.advance()
		static = true
		if p.at(token.LBrace) {
			p.err(diag.SynUnsupported, "static initialization blocks are not supported")
			return ast.NoPropID
		}
	}

	kind := ast.PropInit
	async, gen := false, false
	if tok := p.peek(); tok.Kind == token.Ident && !isClassKeyEnd(p.peekAt(1).Kind) {
		switch tok.Text {
		case "get":
			kind = ast.PropGet
			p.advance()
		case "set":
			kind = ast.PropSet
			p.advance()
		case "async":
			if !p.peekAt(1).NewlineBefore {
				async = true
				p.advance()
			}
		}
	}
	if kind == ast.PropInit && p.eat(token.Star) {
		gen = true
	}

	var key propKey
	if tok := p.peek(); tok.Kind == token.PrivateName {
		p.advance()
		key = propKey{tok: tok, start: tok.Span, expr: p.arenas.Exprs.NewPrivate(tok.Span, tok.Text[1:])}
	} else {
		var ok bool
		if key, ok = p.parsePropertyKey(); !ok {
			return ast.NoPropID
		}
	}

	if kind != ast.PropInit || async || gen || p.at(token.LParen) {
		fn := p.parseMethod(key.start, async, gen)
		if !fn.IsValid() {
			return ast.NoPropID
		}
		return p.arenas.Props.New(ast.Prop{
			Kind:        kind,
			Span:        p.spanFrom(start),
			Key:         key.expr,
			Computed:    key.computed,
			Method:      kind == ast.PropInit,
			Value:       p.arenas.Exprs.NewFunc(p.spanFrom(key.start), false, fn),
			ClassMember: true,
			Static:      static,
		})
	}

	value := ast.NoExprID
	if p.eat(token.Assign) {
		saved := p.fn
		p.fn = fnCtx{}
		value = p.parseAssign()
		p.fn = saved
		if !value.IsValid() {
			return ast.NoPropID
		}
	}
	if !p.consumeSemicolon() {
		return ast.NoPropID
	}
	return p.arenas.Props.New(ast.Prop{
		Kind:        ast.PropInit,
		Span:        p.spanFrom(start),
		Key:         key.expr,
		Computed:    key.computed,
		Value:       value,
		ClassMember: true,
		Static:      static,
	})
}

func (p *Parser) parseClassDecl() ast.StmtID {
	start := p.peek().Span
	cls := p.parseClass(true)
	if !cls.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewClass(p.spanFrom(start), cls)
}
