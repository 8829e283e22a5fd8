package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
	"deob/internal/token"
)

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentOrArrow()
	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(tok.Span)
	case token.Number:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitNumber, tok.Text)
	case token.String:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitString, tok.Text)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitBool, tok.Text)
	case token.KwNull:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitNull, tok.Text)
	case token.Template:
		return p.parseTemplate(ast.NoExprID, tok.Span)
	case token.Slash, token.SlashAssign:
		re := p.rescanRegex()
		if re.Kind != token.Regex {
			p.opts.CurrentErrors++
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewLit(re.Span, ast.LitRegex, re.Text)
	case token.LParen:
		return p.parseParenOrArrow()
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	case token.KwFunction:
		fn := p.parseFunction(tok.Span, false, false)
		if !fn.IsValid() {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewFunc(p.spanFrom(tok.Span), false, fn)
	case token.KwClass:
		cls := p.parseClass(false)
		if !cls.IsValid() {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewClass(p.spanFrom(tok.Span), cls)
	case token.KwSuper:
		p.advance()
		if !p.atOr(token.LParen, token.Dot, token.LBracket) {
			p.err(diag.SynUnexpectedToken, "expected '(', '.' or '[' after \"super\"")
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewSuper(tok.Span)
	case token.KwImport:
		return p.parseImportCall()
	case token.Invalid:
		// the lexer already reported it
		p.advance()
		p.opts.CurrentErrors++
		return ast.NoExprID
	}
	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return ast.NoExprID
}

// parseImportCall parses `import(specifier)`.
func (p *Parser) parseImportCall() ast.ExprID {
	kw := p.advance()
	if p.at(token.Dot) {
		p.err(diag.SynUnsupported, "import.meta is not supported")
		return ast.NoExprID
	}
	args, ok := p.parseArgs()
	if !ok {
		return ast.NoExprID
	}
	if len(args) != 1 || p.arenas.Exprs.Get(args[0]).Kind == ast.ExprSpread {
		p.report(diag.SynUnsupported, diag.SevError, p.spanFrom(kw.Span), "import() takes exactly one argument")
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewArg(p.spanFrom(kw.Span), ast.ExprImport, args[0], false)
}

// parseIdentOrArrow parses an identifier, `x => ...`, and the async forms
// `async function`, `async x => ...`, `async (...) => ...` and `async(...)`.
func (p *Parser) parseIdentOrArrow() ast.ExprID {
	tok := p.advance()
	next := p.peek()

	if tok.Text == "async" && !next.NewlineBefore {
		switch {
		case next.Kind == token.KwFunction:
			fn := p.parseFunction(tok.Span, true, false)
			if !fn.IsValid() {
				return ast.NoExprID
			}
			return p.arenas.Exprs.NewFunc(p.spanFrom(tok.Span), false, fn)
		case next.Kind == token.Ident && p.peekAt(1).Kind == token.Arrow:
			param := p.advance()
			params := []ast.PatID{p.arenas.Pats.NewIdent(param.Span, param.Text)}
			return p.parseArrowBody(tok.Span, params, true)
		case next.Kind == token.LParen:
			return p.parseAsyncCallOrArrow(tok)
		}
	}

	if next.Kind == token.Arrow && !next.NewlineBefore {
		params := []ast.PatID{p.arenas.Pats.NewIdent(tok.Span, tok.Text)}
		return p.parseArrowBody(tok.Span, params, false)
	}
	return p.arenas.Exprs.NewIdent(tok.Span, tok.Text)
}

func (p *Parser) parseAsyncCallOrArrow(asyncTok token.Token) ast.ExprID {
	args, ok := p.parseArgs()
	if !ok {
		return ast.NoExprID
	}
	if tok := p.peek(); tok.Kind == token.Arrow && !tok.NewlineBefore {
		params, ok := p.toParams(args, ast.NoPatID)
		if !ok {
			return ast.NoExprID
		}
		return p.parseArrowBody(asyncTok.Span, params, true)
	}
	callee := p.arenas.Exprs.NewIdent(asyncTok.Span, asyncTok.Text)
	return p.arenas.Exprs.NewCall(p.spanFrom(asyncTok.Span), false, callee, args, false)
}

// parseParenOrArrow parses a parenthesized expression or, when `=>`
// follows the ')', reinterprets the contents as arrow parameters.
func (p *Parser) parseParenOrArrow() ast.ExprID {
	open := p.advance()
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	if p.eat(token.RParen) {
		if !p.at(token.Arrow) {
			p.err(diag.SynUnexpectedToken, "expected '=>' after '()'")
			return ast.NoExprID
		}
		return p.parseArrowBody(open.Span, nil, false)
	}

	var items []ast.ExprID
	rest := ast.NoPatID
	trailingComma := false
	for {
		if p.at(token.Ellipsis) {
			dots := p.advance()
			target := p.parseBindingTarget()
			if !target.IsValid() {
				return ast.NoExprID
			}
			rest = p.arenas.Pats.NewRest(p.spanFrom(dots.Span), target)
			break
		}
		item := p.parseAssign()
		if !item.IsValid() {
			return ast.NoExprID
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
		if p.at(token.RParen) {
			trailingComma = true
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID
	}

	if tok := p.peek(); tok.Kind == token.Arrow && !tok.NewlineBefore {
		params, ok := p.toParams(items, rest)
		if !ok {
			return ast.NoExprID
		}
		return p.parseArrowBody(open.Span, params, false)
	}
	if rest.IsValid() || trailingComma {
		p.err(diag.SynUnexpectedToken, "expected '=>' after parameter list")
		return ast.NoExprID
	}
	if len(items) == 1 {
		return items[0]
	}
	return p.arenas.Exprs.NewSeq(p.spanFrom(open.Span), items)
}

func (p *Parser) parseArrayLit() ast.ExprID {
	open := p.advance()
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	elems := make([]ast.ExprID, 0, 4)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.NoExprID)
			continue
		}
		el := p.parseSpreadOrAssign()
		if !el.IsValid() {
			return ast.NoExprID
		}
		elems = append(elems, el)
		if !p.at(token.RBracket) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or ']' in array literal"); !ok {
				return ast.NoExprID
			}
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal"); !ok {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewArray(p.spanFrom(open.Span), elems)
}

func (p *Parser) parseObjectLit() ast.ExprID {
	open := p.advance()
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	var props []ast.PropID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop := p.parseObjectMember()
		if !prop.IsValid() {
			return ast.NoExprID
		}
		props = append(props, prop)
		if !p.at(token.RBrace) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or '}' in object literal"); !ok {
				return ast.NoExprID
			}
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal"); !ok {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewObject(p.spanFrom(open.Span), props)
}

// isPropKeyEnd reports whether k may follow a property key; it tells
// `get: 1` and `get() {}` apart from a getter.
func isPropKeyEnd(k token.Kind) bool {
	switch k {
	case token.Colon, token.LParen, token.Comma, token.RBrace, token.Assign:
		return true
	default:
		return false
	}
}

func (p *Parser) parseObjectMember() ast.PropID {
	start := p.peek().Span
	if p.eat(token.Ellipsis) {
		arg := p.parseAssign()
		if !arg.IsValid() {
			return ast.NoPropID
		}
		return p.arenas.Props.New(ast.Prop{Kind: ast.PropSpread, Span: p.spanFrom(start), Value: arg})
	}

	kind := ast.PropInit
	async, gen := false, false
	if tok := p.peek(); tok.Kind == token.Ident && !isPropKeyEnd(p.peekAt(1).Kind) {
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

	key, ok := p.parsePropertyKey()
	if !ok {
		return ast.NoPropID
	}

	if kind != ast.PropInit || async || gen || p.at(token.LParen) {
		fn := p.parseMethod(key.start, async, gen)
		if !fn.IsValid() {
			return ast.NoPropID
		}
		value := p.arenas.Exprs.NewFunc(p.spanFrom(key.start), false, fn)
		return p.arenas.Props.New(ast.Prop{
			Kind:     kind,
			Span:     p.spanFrom(start),
			Key:      key.expr,
			Computed: key.computed,
			Method:   kind == ast.PropInit,
			Value:    value,
		})
	}

	if p.eat(token.Colon) {
		value := p.parseAssign()
		if !value.IsValid() {
			return ast.NoPropID
		}
		return p.arenas.Props.New(ast.Prop{
			Kind:     ast.PropInit,
			Span:     p.spanFrom(start),
			Key:      key.expr,
			Computed: key.computed,
			Value:    value,
		})
	}

	// shorthand: the key identifier becomes the value
	if key.computed || key.tok.Kind != token.Ident {
		p.err(diag.SynUnexpectedToken, "expected ':' after property name")
		return ast.NoPropID
	}
	value := key.expr
	if p.eat(token.Assign) {
		def := p.parseAssign()
		if !def.IsValid() {
			return ast.NoPropID
		}
		target := p.arenas.Pats.NewIdent(key.tok.Span, key.tok.Text)
		value = p.arenas.Exprs.NewAssign(p.spanFrom(start), token.Assign, target, def)
		p.coverInits[value] = p.spanFrom(start)
	}
	return p.arenas.Props.New(ast.Prop{
		Kind:      ast.PropInit,
		Span:      p.spanFrom(start),
		Shorthand: true,
		Value:     value,
	})
}

type propKey struct {
	tok      token.Token
	start    source.Span
	expr     ast.ExprID
	computed bool
}

// parsePropertyKey parses an identifier name, string, number or [computed] key.
func (p *Parser) parsePropertyKey() (propKey, bool) {
	tok := p.peek()
	key := propKey{tok: tok, start: tok.Span}
	switch {
	case tok.Kind == token.LBracket:
		key.expr = p.parseComputedMember()
		key.computed = true
	case tok.Kind == token.String:
		p.advance()
		key.expr = p.arenas.Exprs.NewLit(tok.Span, ast.LitString, tok.Text)
	case tok.Kind == token.Number:
		p.advance()
		key.expr = p.arenas.Exprs.NewLit(tok.Span, ast.LitNumber, tok.Text)
	case tok.IsIdentName():
		p.advance()
		key.expr = p.arenas.Exprs.NewIdent(tok.Span, tok.Text)
	default:
		p.err(diag.SynExpectIdentifier, "expected property name, got \""+tok.Text+"\"")
		return key, false
	}
	return key, key.expr.IsValid()
}

// parseTemplate splits the current Template token and parses each
// substitution with a lexer bounded to its bytes. tag is NoExprID for an
// untagged literal.
func (p *Parser) parseTemplate(tag ast.ExprID, start source.Span) ast.ExprID {
	tok := p.advance()
	file := p.lx.File()
	parts := lexer.SplitTemplate(file, tok)

	quasis := make([]string, len(parts.Quasis))
	for i, q := range parts.Quasis {
		quasis[i] = file.Slice(q)
	}
	exprs := make([]ast.ExprID, 0, len(parts.Exprs))
	for _, sp := range parts.Exprs {
		e := p.parseSubExpr(sp)
		if !e.IsValid() {
			return ast.NoExprID
		}
		exprs = append(exprs, e)
	}
	return p.arenas.Exprs.NewTemplate(start.Cover(tok.Span), tag, quasis, exprs)
}

func (p *Parser) parseSubExpr(sp source.Span) ast.ExprID {
	sub := &Parser{
		lx:         lexer.NewRange(p.lx.File(), sp.Start, sp.End, lexer.Options{Reporter: p.opts.Reporter}),
		arenas:     p.arenas,
		fs:         p.fs,
		opts:       p.opts,
		lastSpan:   source.Span{File: sp.File, Start: sp.Start, End: sp.Start},
		fn:         p.fn,
		coverInits: p.coverInits,
	}
	expr := sub.parseExpression()
	if expr.IsValid() && !sub.at(token.EOF) {
		sub.err(diag.SynUnexpectedToken, "unexpected \""+sub.peek().Text+"\" in template substitution")
		expr = ast.NoExprID
	}
	if !expr.IsValid() && sub.opts.CurrentErrors == p.opts.CurrentErrors {
		sub.report(diag.SynExpectExpression, diag.SevError, sp, "expected expression in template substitution")
	}
	p.opts.CurrentErrors = sub.opts.CurrentErrors
	return expr
}
