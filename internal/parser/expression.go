package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/token"
)

// parseExpression parses a comma-separated Expression.
func (p *Parser) parseExpression() ast.ExprID {
	start := p.peek().Span
	first := p.parseAssign()
	if !first.IsValid() || !p.at(token.Comma) {
		return first
	}
	exprs := []ast.ExprID{first}
	for p.eat(token.Comma) {
		next := p.parseAssign()
		if !next.IsValid() {
			return ast.NoExprID
		}
		exprs = append(exprs, next)
	}
	return p.arenas.Exprs.NewSeq(p.spanFrom(start), exprs)
}

// parseAssign parses an AssignmentExpression: yield, arrows, conditionals
// and (compound) assignments.
func (p *Parser) parseAssign() ast.ExprID {
	if p.at(token.KwYield) && p.fn.generator {
		return p.parseYield()
	}

	start := p.peek().Span
	left := p.parseConditional()
	if !left.IsValid() {
		return ast.NoExprID
	}
	op := p.peek()
	if !op.Kind.IsAssign() {
		return left
	}

	var target ast.PatID
	if op.Kind == token.Assign {
		target = p.toPattern(left)
	} else {
		target = p.toSimpleTarget(left)
	}
	if !target.IsValid() {
		return ast.NoExprID
	}
	p.advance()
	right := p.parseAssign()
	if !right.IsValid() {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewAssign(p.spanFrom(start), op.Kind, target, right)
}

func (p *Parser) parseYield() ast.ExprID {
	kw := p.advance()
	next := p.peek()
	if next.NewlineBefore || p.atOr(token.RParen, token.RBracket, token.RBrace, token.Comma,
		token.Semicolon, token.Colon, token.EOF) {
		return p.arenas.Exprs.NewArg(kw.Span, ast.ExprYield, ast.NoExprID, false)
	}
	delegate := p.eat(token.Star)
	arg := p.parseAssign()
	if !arg.IsValid() {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewArg(p.spanFrom(kw.Span), ast.ExprYield, arg, delegate)
}

func (p *Parser) parseConditional() ast.ExprID {
	start := p.peek().Span
	test := p.parseBinary(precNullish)
	if !test.IsValid() || !p.eat(token.Question) {
		return test
	}
	saved := p.noIn
	p.noIn = false
	cons := p.parseAssign()
	p.noIn = saved
	if !cons.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID
	}
	alt := p.parseAssign()
	if !alt.IsValid() {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewCond(p.spanFrom(start), test, cons, alt)
}

// parseBinary is precedence climbing over the operator table.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	start := p.peek().Span
	left := p.parseUnary()
	if !left.IsValid() {
		return ast.NoExprID
	}
	for {
		prec, rightAssoc := p.binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return left
		}
		op := p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right := p.parseBinary(next)
		if !right.IsValid() {
			return ast.NoExprID
		}
		left = p.arenas.Exprs.NewBinary(p.spanFrom(start), op.Kind, left, right)
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.peek()
	switch {
	case isUnaryOp(tok.Kind):
		p.advance()
		arg := p.parseUnary()
		if !arg.IsValid() {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), tok.Kind, arg)

	case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
		p.advance()
		arg := p.parseUnary()
		if !arg.IsValid() || !p.checkSimpleTarget(arg) {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewUpdate(p.spanFrom(tok.Span), tok.Kind, true, arg)

	case tok.Kind == token.Ident && tok.Text == "await" && p.fn.async:
		p.advance()
		arg := p.parseUnary()
		if !arg.IsValid() {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewArg(p.spanFrom(tok.Span), ast.ExprAwait, arg, false)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.ExprID {
	start := p.peek().Span
	expr := p.parseLHS()
	if !expr.IsValid() {
		return ast.NoExprID
	}
	tok := p.peek()
	if (tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus) && !tok.NewlineBefore {
		if !p.checkSimpleTarget(expr) {
			return ast.NoExprID
		}
		p.advance()
		return p.arenas.Exprs.NewUpdate(p.spanFrom(start), tok.Kind, false, expr)
	}
	return expr
}

// checkSimpleTarget accepts identifiers and member expressions as ++/-- operands.
func (p *Parser) checkSimpleTarget(expr ast.ExprID) bool {
	e := p.arenas.Exprs.Get(expr)
	if e.Kind == ast.ExprIdent || e.Kind == ast.ExprMember {
		return true
	}
	p.report(diag.SynInvalidAssignTarget, diag.SevError, e.Span, "invalid update target")
	return false
}
