package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/source"
	"deob/internal/token"
)

// parseLHS parses new, member access, calls and tagged templates.
func (p *Parser) parseLHS() ast.ExprID {
	start := p.peek().Span
	var expr ast.ExprID
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	if !expr.IsValid() {
		return ast.NoExprID
	}
	return p.parseCallTail(start, expr, true)
}

// parseNew parses `new Callee[(args)]`; the callee takes no call suffix of its own.
func (p *Parser) parseNew() ast.ExprID {
	kw := p.advance()
	if p.at(token.Dot) {
		p.err(diag.SynUnsupported, "new.target is not supported")
		return ast.NoExprID
	}
	var callee ast.ExprID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	if !callee.IsValid() {
		return ast.NoExprID
	}
	callee = p.parseCallTail(p.peek().Span, callee, false)
	if !callee.IsValid() {
		return ast.NoExprID
	}
	var args []ast.ExprID
	if p.at(token.LParen) {
		var ok bool
		if args, ok = p.parseArgs(); !ok {
			return ast.NoExprID
		}
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(kw.Span), true, callee, args, false)
}

// parseCallTail applies member, call and tagged-template suffixes to expr.
func (p *Parser) parseCallTail(start source.Span, expr ast.ExprID, allowCall bool) ast.ExprID {
	start = start.Cover(p.arenas.Exprs.Get(expr).Span)
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name := p.parseMemberName()
			if !name.IsValid() {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{Object: expr, Property: name})

		case token.QuestionDot:
			if !allowCall {
				p.err(diag.SynUnexpectedToken, "optional chain is not allowed in new callee")
				return ast.NoExprID
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				args, ok := p.parseArgs()
				if !ok {
					return ast.NoExprID
				}
				expr = p.arenas.Exprs.NewCall(p.spanFrom(start), false, expr, args, true)
			case p.at(token.LBracket):
				prop := p.parseComputedMember()
				if !prop.IsValid() {
					return ast.NoExprID
				}
				expr = p.arenas.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{
					Object: expr, Property: prop, Computed: true, Optional: true,
				})
			default:
				name := p.parseMemberName()
				if !name.IsValid() {
					return ast.NoExprID
				}
				expr = p.arenas.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{
					Object: expr, Property: name, Optional: true,
				})
			}

		case token.LBracket:
			prop := p.parseComputedMember()
			if !prop.IsValid() {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{
				Object: expr, Property: prop, Computed: true,
			})

		case token.LParen:
			if !allowCall {
				return expr
			}
			args, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewCall(p.spanFrom(start), false, expr, args, false)

		case token.Template:
			expr = p.parseTemplate(expr, start)
			if !expr.IsValid() {
				return ast.NoExprID
			}

		default:
			return expr
		}
	}
}

// parseMemberName parses the identifier after '.'; reserved words and
// private names are allowed.
func (p *Parser) parseMemberName() ast.ExprID {
	tok := p.peek()
	if tok.Kind == token.PrivateName {
		p.advance()
		return p.arenas.Exprs.NewPrivate(tok.Span, tok.Text[1:])
	}
	if !tok.IsIdentName() {
		p.err(diag.SynExpectIdentifier, "expected property name, got \""+tok.Text+"\"")
		return ast.NoExprID
	}
	p.advance()
	return p.arenas.Exprs.NewIdent(tok.Span, tok.Text)
}

func (p *Parser) parseComputedMember() ast.ExprID {
	p.advance() // '['
	saved := p.noIn
	p.noIn = false
	prop := p.parseExpression()
	p.noIn = saved
	if !prop.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
		return ast.NoExprID
	}
	return prop
}

// parseArgs parses `( [...]arg, ... )`.
func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	args := make([]ast.ExprID, 0, 2)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseSpreadOrAssign()
		if !arg.IsValid() {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseSpreadOrAssign() ast.ExprID {
	if !p.at(token.Ellipsis) {
		return p.parseAssign()
	}
	dots := p.advance()
	arg := p.parseAssign()
	if !arg.IsValid() {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewArg(p.spanFrom(dots.Span), ast.ExprSpread, arg, false)
}
