package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/source"
	"deob/internal/token"
)

// atModuleDecl reports whether the current token starts an import or export
// declaration rather than an import() call or import.meta.
func (p *Parser) atModuleDecl() bool {
	switch p.peek().Kind {
	case token.KwExport:
		return true
	case token.KwImport:
		next := p.peekAt(1).Kind
		return next != token.LParen && next != token.Dot
	}
	return false
}

// parseModuleDecl parses an import or export declaration and marks the
// program as a module.
func (p *Parser) parseModuleDecl() ast.StmtID {
	p.module = true
	if p.at(token.KwImport) {
		return p.parseImportDecl()
	}
	return p.parseExportDecl()
}

// parseImportDecl parses
//
//	import 'm';
//	import d, {a, b as c, 'x' as e} from 'm';
//	import d, * as ns from 'm';
func (p *Parser) parseImportDecl() ast.StmtID {
	kw := p.advance()
	var data ast.ModuleStmtData
	if !p.at(token.String) {
		specs, ok := p.parseImportClause()
		if !ok || !p.expectFrom() {
			return ast.NoStmtID
		}
		data.Specs = specs
	}
	if data.Source = p.parseModuleSource(); !data.Source.IsValid() || !p.consumeSemicolon() {
		return ast.NoStmtID
	}
	return p.arenas.Stmts.NewModule(p.spanFrom(kw.Span), ast.StmtImport, data)
}

func (p *Parser) parseImportClause() ([]ast.SpecID, bool) {
	var specs []ast.SpecID
	if tok := p.peek(); tok.Kind == token.Ident {
		p.advance()
		specs = append(specs, p.arenas.Specs.New(ast.Spec{
			Kind:  ast.SpecImportDefault,
			Span:  tok.Span,
			Local: p.arenas.Exprs.NewIdent(tok.Span, tok.Text),
		}))
		if !p.eat(token.Comma) {
			return specs, true
		}
	}

	switch {
	case p.at(token.Star):
		star := p.advance()
		if !p.atIdent("as") {
			p.err(diag.SynUnexpectedToken, "expected 'as' after '*'")
			return nil, false
		}
		p.advance()
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected namespace name")
		if !ok {
			return nil, false
		}
		specs = append(specs, p.arenas.Specs.New(ast.Spec{
			Kind:  ast.SpecImportNamespace,
			Span:  p.spanFrom(star.Span),
			Local: p.arenas.Exprs.NewIdent(tok.Span, tok.Text),
		}))
	case p.at(token.LBrace):
		named, ok := p.parseNamedSpecs(ast.SpecImport)
		if !ok {
			return nil, false
		}
		specs = append(specs, named...)
	default:
		p.err(diag.SynUnexpectedToken, "expected import clause, got \""+p.peek().Text+"\"")
		return nil, false
	}
	return specs, true
}

// parseNamedSpecs parses `{a, b as c, 'x' as d}`. Imported bindings must be
// plain identifiers.
func (p *Parser) parseNamedSpecs(kind ast.SpecKind) ([]ast.SpecID, bool) {
	p.advance() // '{'
	var specs []ast.SpecID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek().Span
		first, firstTok, ok := p.parseModuleName()
		if !ok {
			return nil, false
		}
		spec := ast.Spec{Kind: kind, Local: first}
		bound := firstTok
		if p.atIdent("as") {
			p.advance()
			second, secondTok, ok := p.parseModuleName()
			if !ok {
				return nil, false
			}
			if kind == ast.SpecImport {
				spec.Remote, spec.Local, bound = first, second, secondTok
			} else {
				spec.Remote = second
			}
		}
		if kind == ast.SpecImport && bound.Kind != token.Ident {
			p.report(diag.SynExpectIdentifier, diag.SevError, bound.Span, "expected binding name, got \""+bound.Text+"\"")
			return nil, false
		}
		spec.Span = p.spanFrom(start)
		specs = append(specs, p.arenas.Specs.New(spec))
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close the name list"); !ok {
		return nil, false
	}
	return specs, true
}

// parseModuleName parses a name of an import or export clause: any
// identifier name or a string literal.
func (p *Parser) parseModuleName() (ast.ExprID, token.Token, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.String:
		p.advance()
		return p.arenas.Exprs.NewLit(tok.Span, ast.LitString, tok.Text), tok, true
	case tok.IsIdentName():
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, tok.Text), tok, true
	}
	p.err(diag.SynExpectIdentifier, "expected name, got \""+tok.Text+"\"")
	return ast.NoExprID, tok, false
}

func (p *Parser) expectFrom() bool {
	if p.atIdent("from") {
		p.advance()
		return true
	}
	p.err(diag.SynUnexpectedToken, "expected 'from', got \""+p.peek().Text+"\"")
	return false
}

func (p *Parser) parseModuleSource() ast.ExprID {
	tok, ok := p.expect(token.String, diag.SynUnexpectedToken, "expected module specifier string")
	if !ok {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewLit(tok.Span, ast.LitString, tok.Text)
}

// parseExportDecl parses
//
//	export var|let|const|function|async function|class ...
//	export default function|class|expression
//	export {a, b as c} [from 'm'];
//	export * [as ns] from 'm';
func (p *Parser) parseExportDecl() ast.StmtID {
	kw := p.advance()
	var data ast.ModuleStmtData
	switch p.peek().Kind {
	case token.KwDefault:
		p.advance()
		return p.parseExportDefault(kw.Span)

	case token.Star:
		p.advance()
		if p.atIdent("as") {
			p.advance()
			name, _, ok := p.parseModuleName()
			if !ok {
				return ast.NoStmtID
			}
			data.Expr = name
		}
		if !p.expectFrom() {
			return ast.NoStmtID
		}
		if data.Source = p.parseModuleSource(); !data.Source.IsValid() || !p.consumeSemicolon() {
			return ast.NoStmtID
		}
		return p.arenas.Stmts.NewModule(p.spanFrom(kw.Span), ast.StmtExportAll, data)

	case token.LBrace:
		specs, ok := p.parseNamedSpecs(ast.SpecExport)
		if !ok {
			return ast.NoStmtID
		}
		data.Specs = specs
		if p.atIdent("from") {
			p.advance()
			if data.Source = p.parseModuleSource(); !data.Source.IsValid() {
				return ast.NoStmtID
			}
		}
		if !p.consumeSemicolon() {
			return ast.NoStmtID
		}

	default:
		if data.Decl = p.parseExportedDecl(); !data.Decl.IsValid() {
			return ast.NoStmtID
		}
	}
	return p.arenas.Stmts.NewModule(p.spanFrom(kw.Span), ast.StmtExportNamed, data)
}

func (p *Parser) parseExportedDecl() ast.StmtID {
	tok := p.peek()
	switch tok.Kind {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass:
		return p.parseStatement()
	case token.Ident:
		if next := p.peekAt(1); tok.Text == "async" && next.Kind == token.KwFunction && !next.NewlineBefore {
			return p.parseFuncDecl(true)
		}
	}
	p.err(diag.SynUnexpectedToken, "expected declaration after 'export', got \""+tok.Text+"\"")
	return ast.NoStmtID
}

// parseExportDefault parses what follows `export default`. Function and
// class declarations may be anonymous there.
func (p *Parser) parseExportDefault(start source.Span) ast.StmtID {
	var data ast.ModuleStmtData
	tok := p.peek()
	switch {
	case tok.Kind == token.KwFunction:
		fn := p.parseFunction(tok.Span, false, false)
		if !fn.IsValid() {
			return ast.NoStmtID
		}
		data.Decl = p.arenas.Stmts.NewFunc(p.spanFrom(tok.Span), fn)
	case tok.Kind == token.Ident && tok.Text == "async" &&
		p.peekAt(1).Kind == token.KwFunction && !p.peekAt(1).NewlineBefore:
		p.advance()
		fn := p.parseFunction(tok.Span, true, false)
		if !fn.IsValid() {
			return ast.NoStmtID
		}
		data.Decl = p.arenas.Stmts.NewFunc(p.spanFrom(tok.Span), fn)
	case tok.Kind == token.KwClass:
		cls := p.parseClass(false)
		if !cls.IsValid() {
			return ast.NoStmtID
		}
		data.Decl = p.arenas.Stmts.NewClass(p.spanFrom(tok.Span), cls)
	default:
		if data.Expr = p.parseAssign(); !data.Expr.IsValid() || !p.consumeSemicolon() {
			return ast.NoStmtID
		}
	}
	return p.arenas.Stmts.NewModule(p.spanFrom(start), ast.StmtExportDefault, data)
}
