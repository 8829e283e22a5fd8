package parser

import (
	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/lexer"
	"deob/internal/source"
	"deob/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Module marks the resulting program as an ES module. A program with an
	// import or export declaration is a module either way.
	Module bool
}

// Enough reports whether the error limit is reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// fnCtx tracks what the enclosing function allows.
type fnCtx struct {
	async     bool
	generator bool
}

// Parser is the per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	ahead    []token.Token // buffered lookahead; ahead[0] is the current token
	arenas   *ast.Builder
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token
	noIn     bool        // inside a for-header init: `in` is not a binary operator
	fn       fnCtx
	module   bool // an import or export declaration was seen

	// coverInits are `{a = 1}` shorthand initializers seen in object
	// literals; each must be turned into a pattern before the file ends.
	coverInits map[ast.ExprID]source.Span
}

// ParseFile parses the whole file lx is bound to.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := newParser(fs, lx, arenas, opts)

	start := p.peek().Span
	body := p.parseStatementList(token.EOF)
	p.checkCoverInits()

	file := arenas.Files.New(start.Cover(p.peek().Span), body)
	arenas.Files.Get(file).Module = opts.Module || p.module

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: file,
		Bag:  bag,
	}
}

// ParseExpr parses a single expression spanning the whole input.
func ParseExpr(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) (ast.ExprID, bool) {
	p := newParser(fs, lx, arenas, opts)
	expr := p.parseExpression()
	if expr.IsValid() && !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected \""+p.peek().Text+"\" after expression")
	}
	p.checkCoverInits()
	return expr, expr.IsValid() && p.opts.CurrentErrors == 0
}

func newParser(fs *source.FileSet, lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{
		lx:         lx,
		arenas:     arenas,
		fs:         fs,
		opts:       opts,
		coverInits: make(map[ast.ExprID]source.Span),
	}
}

// parseStatementList parses statements until the terminator token, which is
// not consumed. The program body (end is EOF) also takes import and export
// declarations.
func (p *Parser) parseStatementList(end token.Kind) []ast.StmtID {
	var out []ast.StmtID
	for !p.at(end) && !p.at(token.EOF) {
		before := p.peek().Span
		var stmt ast.StmtID
		if end == token.EOF && p.atModuleDecl() {
			stmt = p.parseModuleDecl()
		} else {
			stmt = p.parseStatement()
		}
		if stmt.IsValid() {
			out = append(out, stmt)
			continue
		}
		p.resyncStatement(before)
	}
	return out
}

func (p *Parser) checkCoverInits() {
	for _, sp := range p.coverInits {
		p.report(diag.SynInvalidAssignTarget, diag.SevError, sp, "shorthand property initializer is only valid in a destructuring pattern")
	}
	clear(p.coverInits)
}

// IsError reports whether at least one error was emitted.
func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}
