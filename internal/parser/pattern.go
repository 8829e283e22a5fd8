package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/token"
)

// parseBindingTarget parses an identifier, array pattern or object pattern.
func (p *Parser) parseBindingTarget() ast.PatID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Pats.NewIdent(tok.Span, tok.Text)
	case token.LBracket:
		return p.parseArrayPattern()
	case token.LBrace:
		return p.parseObjectPattern()
	}
	p.err(diag.SynExpectIdentifier, "expected binding name, got \""+tok.Text+"\"")
	return ast.NoPatID
}

// parseBindingElement is a binding target with an optional default.
func (p *Parser) parseBindingElement() ast.PatID {
	start := p.peek().Span
	target := p.parseBindingTarget()
	if !target.IsValid() || !p.eat(token.Assign) {
		return target
	}
	saved := p.noIn
	p.noIn = false
	def := p.parseAssign()
	p.noIn = saved
	if !def.IsValid() {
		return ast.NoPatID
	}
	return p.arenas.Pats.NewAssign(p.spanFrom(start), target, def)
}

func (p *Parser) parseArrayPattern() ast.PatID {
	open := p.advance()
	var elems []ast.PatID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.NoPatID)
			continue
		}
		if p.at(token.Ellipsis) {
			dots := p.advance()
			target := p.parseBindingTarget()
			if !target.IsValid() {
				return ast.NoPatID
			}
			elems = append(elems, p.arenas.Pats.NewRest(p.spanFrom(dots.Span), target))
			break
		}
		el := p.parseBindingElement()
		if !el.IsValid() {
			return ast.NoPatID
		}
		elems = append(elems, el)
		if !p.at(token.RBracket) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or ']' in array pattern"); !ok {
				return ast.NoPatID
			}
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array pattern"); !ok {
		return ast.NoPatID
	}
	return p.arenas.Pats.NewArray(p.spanFrom(open.Span), elems)
}

func (p *Parser) parseObjectPattern() ast.PatID {
	open := p.advance()
	var props []ast.PatProp
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek().Span
		if p.eat(token.Ellipsis) {
			target := p.parseBindingTarget()
			if !target.IsValid() {
				return ast.NoPatID
			}
			rest := p.arenas.Pats.NewRest(p.spanFrom(start), target)
			props = append(props, ast.PatProp{Span: p.spanFrom(start), Value: rest})
			break
		}

		key, ok := p.parsePropertyKey()
		if !ok {
			return ast.NoPatID
		}
		if p.eat(token.Colon) {
			value := p.parseBindingElement()
			if !value.IsValid() {
				return ast.NoPatID
			}
			props = append(props, ast.PatProp{
				Span: p.spanFrom(start), Key: key.expr, Computed: key.computed, Value: value,
			})
		} else {
			if key.computed || key.tok.Kind != token.Ident {
				p.err(diag.SynUnexpectedToken, "expected ':' after property name in pattern")
				return ast.NoPatID
			}
			value := p.arenas.Pats.NewIdent(key.tok.Span, key.tok.Text)
			if p.eat(token.Assign) {
				def := p.parseAssign()
				if !def.IsValid() {
					return ast.NoPatID
				}
				value = p.arenas.Pats.NewAssign(p.spanFrom(start), value, def)
			}
			props = append(props, ast.PatProp{Span: p.spanFrom(start), Shorthand: true, Value: value})
		}
		if !p.at(token.RBrace) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or '}' in object pattern"); !ok {
				return ast.NoPatID
			}
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object pattern"); !ok {
		return ast.NoPatID
	}
	return p.arenas.Pats.NewObject(p.spanFrom(open.Span), props)
}

// toPattern reinterprets an already parsed expression as an assignment target.
func (p *Parser) toPattern(expr ast.ExprID) ast.PatID {
	exprs := p.arenas.Exprs
	e := exprs.Get(expr)
	switch e.Kind {
	case ast.ExprIdent:
		id, _ := exprs.Ident(expr)
		return p.arenas.Pats.NewIdent(e.Span, id.Name)

	case ast.ExprMember:
		return p.arenas.Pats.NewExpr(e.Span, expr)

	case ast.ExprArray:
		arr, _ := exprs.Array(expr)
		elems := make([]ast.PatID, 0, len(arr.Elems))
		for i, el := range arr.Elems {
			if !el.IsValid() {
				elems = append(elems, ast.NoPatID)
				continue
			}
			if exprs.Get(el).Kind == ast.ExprSpread {
				if i != len(arr.Elems)-1 {
					break
				}
				spread, _ := exprs.Arg(el)
				target := p.toPattern(spread.Arg)
				if !target.IsValid() {
					return ast.NoPatID
				}
				elems = append(elems, p.arenas.Pats.NewRest(exprs.Get(el).Span, target))
				continue
			}
			pat := p.toBindingElement(el)
			if !pat.IsValid() {
				return ast.NoPatID
			}
			elems = append(elems, pat)
		}
		if len(elems) != len(arr.Elems) {
			break
		}
		return p.arenas.Pats.NewArray(e.Span, elems)

	case ast.ExprObject:
		obj, _ := exprs.Object(expr)
		props := make([]ast.PatProp, 0, len(obj.Props))
		for _, id := range obj.Props {
			prop := p.arenas.Props.Get(id)
			switch {
			case prop.Kind == ast.PropSpread:
				target := p.toPattern(prop.Value)
				if !target.IsValid() {
					return ast.NoPatID
				}
				props = append(props, ast.PatProp{Span: prop.Span, Value: p.arenas.Pats.NewRest(prop.Span, target)})
			case prop.Kind == ast.PropInit && !prop.Method:
				value := p.toBindingElement(prop.Value)
				if !value.IsValid() {
					return ast.NoPatID
				}
				props = append(props, ast.PatProp{
					Span: prop.Span, Key: prop.Key, Computed: prop.Computed,
					Shorthand: prop.Shorthand, Value: value,
				})
			default:
				p.report(diag.SynInvalidAssignTarget, diag.SevError, prop.Span, "invalid destructuring target")
				return ast.NoPatID
			}
		}
		return p.arenas.Pats.NewObject(e.Span, props)
	}

	p.report(diag.SynInvalidAssignTarget, diag.SevError, e.Span, "invalid assignment target")
	return ast.NoPatID
}

// toBindingElement is toPattern that also accepts `target = default`.
func (p *Parser) toBindingElement(expr ast.ExprID) ast.PatID {
	if a, ok := p.arenas.Exprs.Assign(expr); ok && a.Op == token.Assign {
		delete(p.coverInits, expr)
		return p.arenas.Pats.NewAssign(p.arenas.Exprs.Get(expr).Span, a.Target, a.Value)
	}
	return p.toPattern(expr)
}

// toSimpleTarget accepts the targets of compound assignment.
func (p *Parser) toSimpleTarget(expr ast.ExprID) ast.PatID {
	e := p.arenas.Exprs.Get(expr)
	switch e.Kind {
	case ast.ExprIdent:
		id, _ := p.arenas.Exprs.Ident(expr)
		return p.arenas.Pats.NewIdent(e.Span, id.Name)
	case ast.ExprMember:
		return p.arenas.Pats.NewExpr(e.Span, expr)
	}
	p.report(diag.SynInvalidAssignTarget, diag.SevError, e.Span, "invalid compound assignment target")
	return ast.NoPatID
}
