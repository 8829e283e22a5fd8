package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/token"
)

// parseStatement picks the recognizer by the first token. NoStmtID means an
// error was reported.
func (p *Parser) parseStatement() ast.StmtID {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlockStmt()
	case token.KwVar, token.KwLet, token.KwConst:
		stmt := p.parseVarStmt()
		if !stmt.IsValid() || !p.checkDeclInits(stmt) || !p.consumeSemicolon() {
			return ast.NoStmtID
		}
		return stmt
	case token.KwFunction:
		return p.parseFuncDecl(false)
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwDo:
		return p.parseDoWhileStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwBreak, token.KwContinue:
		return p.parseJumpStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span)
	case token.KwDebugger:
		p.advance()
		if !p.consumeSemicolon() {
			return ast.NoStmtID
		}
		return p.arenas.Stmts.NewDebugger(p.spanFrom(tok.Span))
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwImport, token.KwExport:
		if p.atModuleDecl() {
			p.err(diag.SynUnsupported, "\""+tok.Text+"\" declarations may only appear at the top level")
			return ast.NoStmtID
		}
	case token.KwWith:
		p.err(diag.SynUnsupported, "\"with\" is not supported")
		return ast.NoStmtID
	case token.Ident:
		if tok.Text == "async" {
			next := p.peekAt(1)
			if next.Kind == token.KwFunction && !next.NewlineBefore {
				return p.parseFuncDecl(true)
			}
		}
		if p.peekAt(1).Kind == token.Colon {
			return p.parseLabeledStmt()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	expr := p.parseExpression()
	if !expr.IsValid() || !p.consumeSemicolon() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr)
}

func (p *Parser) parseBlockStmt() ast.StmtID {
	start, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID
	}
	stmts := p.parseStatementList(token.RBrace)
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewBlock(p.spanFrom(start.Span), stmts)
}

// parseVarStmt parses `var|let|const` declarators without the trailing ';'.
func (p *Parser) parseVarStmt() ast.StmtID {
	kw := p.advance()
	kind := ast.VarVar
	switch kw.Kind {
	case token.KwLet:
		kind = ast.VarLet
	case token.KwConst:
		kind = ast.VarConst
	}

	var decls []ast.DeclID
	for {
		start := p.peek().Span
		target := p.parseBindingTarget()
		if !target.IsValid() {
			return ast.NoStmtID
		}
		init := ast.NoExprID
		if p.eat(token.Assign) {
			init = p.parseAssign()
			if !init.IsValid() {
				return ast.NoStmtID
			}
		}
		decls = append(decls, p.arenas.Decls.New(p.spanFrom(start), target, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewVar(p.spanFrom(kw.Span), kind, decls)
}

// checkDeclInits reports const declarations and destructuring without an initializer.
func (p *Parser) checkDeclInits(stmt ast.StmtID) bool {
	v, _ := p.arenas.Stmts.Var(stmt)
	for _, id := range v.Decls {
		d := p.arenas.Decls.Get(id)
		if d.Init.IsValid() {
			continue
		}
		if v.Kind == ast.VarConst || p.arenas.Pats.Get(d.Target).Kind != ast.PatIdent {
			p.report(diag.SynMissingInitializer, diag.SevError, d.Span, "missing initializer in declaration")
			return false
		}
	}
	return true
}

func (p *Parser) parseReturnStmt() ast.StmtID {
	kw := p.advance()
	arg := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) && !p.peek().NewlineBefore {
		arg = p.parseExpression()
		if !arg.IsValid() {
			return ast.NoStmtID
		}
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), arg)
}

func (p *Parser) parseThrowStmt() ast.StmtID {
	kw := p.advance()
	if p.peek().NewlineBefore {
		p.err(diag.SynIllegalNewline, "illegal newline after throw")
		return ast.NoStmtID
	}
	arg := p.parseExpression()
	if !arg.IsValid() || !p.consumeSemicolon() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewThrow(p.spanFrom(kw.Span), arg)
}

func (p *Parser) parseJumpStmt() ast.StmtID {
	kw := p.advance()
	label := ""
	if tok := p.peek(); tok.Kind == token.Ident && !tok.NewlineBefore {
		label = p.advance().Text
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID
	}
	if kw.Kind == token.KwBreak {
		return p.arenas.Stmts.NewBreak(p.spanFrom(kw.Span), label)
	}
	return p.arenas.Stmts.NewContinue(p.spanFrom(kw.Span), label)
}

func (p *Parser) parseLabeledStmt() ast.StmtID {
	label := p.advance()
	p.advance() // ':'
	body := p.parseStatement()
	if !body.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewLabeled(p.spanFrom(label.Span), label.Text, body)
}

func (p *Parser) parseFuncDecl(async bool) ast.StmtID {
	start := p.peek().Span
	if async {
		p.advance()
	}
	fn := p.parseFunction(start, async, true)
	if !fn.IsValid() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewFunc(p.spanFrom(start), fn)
}
