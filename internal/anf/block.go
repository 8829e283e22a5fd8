package anf

import (
	"fmt"

	"deob/internal/ast"
	"deob/internal/source"
)

// Line is one hoisted step: either a finished statement or a binding of a
// fresh name.
type Line struct {
	Stmt ast.StmtID

	Name string
	// Init is NoExprID for a declaration without initializer.
	Init ast.ExprID
	// Mutable bindings are assigned again later and render with let.
	Mutable bool
}

func (l Line) IsBinding() bool { return l.Name != "" }

func stmtLine(id ast.StmtID) Line { return Line{Stmt: id} }

// Block is the result of normalizing one fragment. Value is NoExprID for
// fragments that are pure effects.
type Block struct {
	Lines []Line
	Value ast.ExprID
}

// NamePool supplies fresh identifiers. Names never repeat; ok is false once
// the pool is exhausted.
type NamePool interface {
	Next() (name string, ok bool)
}

// ExhaustedError is the panic value raised when the pool runs dry.
type ExhaustedError struct {
	Issued int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("anf: name pool exhausted after %d temporaries", e.Issued)
}

// Normalizer rewrites fragments of one Builder. It is not safe for
// concurrent use.
type Normalizer struct {
	b      *ast.Builder
	pool   NamePool
	issued int
	temps  map[string]bool
}

func New(b *ast.Builder, pool NamePool) *Normalizer {
	return &Normalizer{b: b, pool: pool, temps: make(map[string]bool)}
}

// Temps reports how many fresh names this normalizer has drawn.
func (n *Normalizer) Temps() int { return n.issued }

func (n *Normalizer) fresh() string {
	name, ok := n.pool.Next()
	if !ok {
		panic(&ExhaustedError{Issued: n.issued})
	}
	n.issued++
	n.temps[name] = true
	return name
}

func (n *Normalizer) ident(name string) ast.ExprID {
	return n.b.Exprs.NewIdent(source.Span{}, name)
}

func (n *Normalizer) null() ast.ExprID {
	return n.b.Exprs.NewLit(source.Span{}, ast.LitNull, "null")
}

// valueOr returns blk.Value, or a null literal when the block has none.
func (n *Normalizer) valueOr(blk Block) ast.ExprID {
	if blk.Value.IsValid() {
		return blk.Value
	}
	return n.null()
}

// Lines renders blk as statements: bindings become declarations and a
// residual value becomes a trailing expression statement. Expression
// statements made of a lone identifier have no effect and are dropped.
func (n *Normalizer) Lines(blk Block) []ast.StmtID {
	out := make([]ast.StmtID, 0, len(blk.Lines)+1)
	for _, line := range blk.Lines {
		out = n.appendLine(out, line)
	}
	if blk.Value.IsValid() {
		out = n.appendLine(out, stmtLine(n.exprStmt(blk.Value)))
	}
	return out
}

func (n *Normalizer) appendLine(out []ast.StmtID, line Line) []ast.StmtID {
	if line.IsBinding() {
		return append(out, n.declare(line))
	}
	if !line.Stmt.IsValid() || n.isBareIdent(line.Stmt) {
		return out
	}
	return append(out, line.Stmt)
}

func (n *Normalizer) declare(line Line) ast.StmtID {
	kind := ast.VarConst
	if line.Mutable {
		kind = ast.VarLet
	}
	target := n.b.Pats.NewIdent(source.Span{}, line.Name)
	decl := n.b.Decls.New(source.Span{}, target, line.Init)
	return n.b.Stmts.NewVar(source.Span{}, kind, []ast.DeclID{decl})
}

func (n *Normalizer) isBareIdent(id ast.StmtID) bool {
	data, ok := n.b.Stmts.Expr(id)
	if !ok {
		return false
	}
	e := n.b.Exprs.Get(data.Expr)
	return e != nil && e.Kind == ast.ExprIdent
}

// BlockStmt renders blk as a single block statement.
func (n *Normalizer) BlockStmt(blk Block) ast.StmtID {
	return n.b.Stmts.NewBlock(source.Span{}, n.Lines(blk))
}

// Finalize renders blk as a new program.
func (n *Normalizer) Finalize(blk Block) ast.FileID {
	return n.b.Files.New(source.Span{}, n.Lines(blk))
}

func (blk *Block) add(lines ...Line) {
	blk.Lines = append(blk.Lines, lines...)
}

func (blk *Block) addStmt(id ast.StmtID) {
	blk.Lines = append(blk.Lines, stmtLine(id))
}
