package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/token"
)

// parseParenExpr parses `( Expression )`.
func (p *Parser) parseParenExpr() ast.ExprID {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return ast.NoExprID
	}
	saved := p.noIn
	p.noIn = false
	expr := p.parseExpression()
	p.noIn = saved
	if !expr.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID
	}
	return expr
}

func (p *Parser) parseIfStmt() ast.StmtID {
	kw := p.advance()
	test := p.parseParenExpr()
	if !test.IsValid() {
		return ast.NoStmtID
	}
	cons := p.parseStatement()
	if !cons.IsValid() {
		return ast.NoStmtID
	}
	alt := ast.NoStmtID
	if p.eat(token.KwElse) {
		alt = p.parseStatement()
		if !alt.IsValid() {
			return ast.NoStmtID
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(kw.Span), test, cons, alt)
}

func (p *Parser) parseWhileStmt() ast.StmtID {
	kw := p.advance()
	test := p.parseParenExpr()
	if !test.IsValid() {
		return ast.NoStmtID
	}
	body := p.parseStatement()
	if !body.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(kw.Span), false, test, body)
}

func (p *Parser) parseDoWhileStmt() ast.StmtID {
	kw := p.advance()
	body := p.parseStatement()
	if !body.IsValid() {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return ast.NoStmtID
	}
	test := p.parseParenExpr()
	if !test.IsValid() {
		return ast.NoStmtID
	}
	// the ';' after do-while is always optional
	p.eat(token.Semicolon)
	return p.arenas.Stmts.NewWhile(p.spanFrom(kw.Span), true, test, body)
}

// parseForStmt handles for(;;), for-in and for-of.
func (p *Parser) parseForStmt() ast.StmtID {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after for"); !ok {
		return ast.NoStmtID
	}

	init := ast.NoStmtID
	switch {
	case p.at(token.Semicolon):
	case p.atOr(token.KwVar, token.KwLet, token.KwConst):
		p.noIn = true
		decl := p.parseVarStmt()
		p.noIn = false
		if !decl.IsValid() {
			return ast.NoStmtID
		}
		if p.at(token.KwIn) || p.atIdent("of") {
			v, _ := p.arenas.Stmts.Var(decl)
			if len(v.Decls) != 1 || p.arenas.Decls.Get(v.Decls[0]).Init.IsValid() {
				p.err(diag.SynForBadHeader, "for-in/of takes a single declaration without initializer")
				return ast.NoStmtID
			}
			return p.parseForInRest(kw, ast.ForInStmtData{Decl: decl})
		}
		if !p.checkDeclInits(decl) {
			return ast.NoStmtID
		}
		init = decl
	default:
		start := p.peek().Span
		p.noIn = true
		expr := p.parseExpression()
		p.noIn = false
		if !expr.IsValid() {
			return ast.NoStmtID
		}
		if p.at(token.KwIn) || p.atIdent("of") {
			target := p.toPattern(expr)
			if !target.IsValid() {
				return ast.NoStmtID
			}
			return p.parseForInRest(kw, ast.ForInStmtData{Target: target})
		}
		init = p.arenas.Stmts.NewExpr(p.spanFrom(start), expr)
	}

	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return ast.NoStmtID
	}
	data := ast.ForStmtData{Init: init}
	if !p.at(token.Semicolon) {
		if data.Test = p.parseExpression(); !data.Test.IsValid() {
			return ast.NoStmtID
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return ast.NoStmtID
	}
	if !p.at(token.RParen) {
		if data.Update = p.parseExpression(); !data.Update.IsValid() {
			return ast.NoStmtID
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for header"); !ok {
		return ast.NoStmtID
	}
	if data.Body = p.parseStatement(); !data.Body.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(kw.Span), data)
}

// parseForInRest continues after the loop's left side, at `in` or `of`.
func (p *Parser) parseForInRest(kw token.Token, data ast.ForInStmtData) ast.StmtID {
	of := p.advance().Kind != token.KwIn
	if of {
		data.Right = p.parseAssign()
	} else {
		data.Right = p.parseExpression()
	}
	if !data.Right.IsValid() {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for header"); !ok {
		return ast.NoStmtID
	}
	if data.Body = p.parseStatement(); !data.Body.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewForIn(p.spanFrom(kw.Span), of, data)
}

func (p *Parser) parseTryStmt() ast.StmtID {
	kw := p.advance()
	data := ast.TryStmtData{Block: p.parseBlockStmt()}
	if !data.Block.IsValid() {
		return ast.NoStmtID
	}
	if p.eat(token.KwCatch) {
		if p.eat(token.LParen) {
			if data.Param = p.parseBindingTarget(); !data.Param.IsValid() {
				return ast.NoStmtID
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch parameter"); !ok {
				return ast.NoStmtID
			}
		}
		if data.Handler = p.parseBlockStmt(); !data.Handler.IsValid() {
			return ast.NoStmtID
		}
	}
	if p.eat(token.KwFinally) {
		if data.Finalizer = p.parseBlockStmt(); !data.Finalizer.IsValid() {
			return ast.NoStmtID
		}
	}
	if !data.Handler.IsValid() && !data.Finalizer.IsValid() {
		p.err(diag.SynTryWithoutHandler, "try requires catch or finally")
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseSwitchStmt() ast.StmtID {
	kw := p.advance()
	disc := p.parseParenExpr()
	if !disc.IsValid() {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch"); !ok {
		return ast.NoStmtID
	}
	var cases []ast.CaseID
	sawDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek().Span
		test := ast.NoExprID
		switch {
		case p.eat(token.KwCase):
			if test = p.parseExpression(); !test.IsValid() {
				return ast.NoStmtID
			}
		case p.at(token.KwDefault):
			if sawDefault {
				p.err(diag.SynDuplicateDefault, "more than one default clause in switch")
				return ast.NoStmtID
			}
			p.advance()
			sawDefault = true
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default', got \""+p.peek().Text+"\"")
			return ast.NoStmtID
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case"); !ok {
			return ast.NoStmtID
		}
		var body []ast.StmtID
		for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			before := p.peek().Span
			stmt := p.parseStatement()
			if !stmt.IsValid() {
				p.resyncStatement(before)
				continue
			}
			body = append(body, stmt)
		}
		cases = append(cases, p.arenas.Cases.New(p.spanFrom(start), test, body))
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch"); !ok {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewSwitch(p.spanFrom(kw.Span), disc, cases)
}
