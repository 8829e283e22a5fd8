package anf

import (
	"deob/internal/ast"
)

// class rebuilds a class with normalized method bodies. The heritage
// expression, computed keys and field initializers run at other times than
// the surrounding code and stay as written.
func (n *Normalizer) class(id ast.ClassID) ast.ClassID {
	cls := *n.b.Classes.Get(id)
	members := make([]ast.PropID, 0, len(cls.Members))
	for _, pid := range cls.Members {
		members = append(members, n.classMember(pid))
	}
	cls.Members = members
	return n.b.Classes.New(cls)
}

func (n *Normalizer) classMember(id ast.PropID) ast.PropID {
	p := *n.b.Props.Get(id)
	if p.IsField() {
		return id
	}
	e := n.b.Exprs.Get(p.Value)
	if e == nil || e.Kind != ast.ExprFunc {
		return id
	}
	p.Value = n.funcExpr(p.Value, *e)
	return n.b.Props.New(p)
}

func (n *Normalizer) classStmt(id ast.StmtID, st ast.Stmt) Block {
	data, _ := n.b.Stmts.Class(id)
	return Block{Lines: []Line{stmtLine(n.b.Stmts.NewClass(st.Span, n.class(data.Class)))}}
}

func (n *Normalizer) classExpr(id ast.ExprID, e ast.Expr) Block {
	data, _ := n.b.Exprs.Class(id)
	return Block{Value: n.b.Exprs.NewClass(e.Span, n.class(data.Class))}
}

// moduleStmt keeps imports and re-exports as written. An exported
// declaration is normalized like any other and each declaration it splits
// into is exported on its own; `export default expr` hoists the lines of its
// value.
func (n *Normalizer) moduleStmt(id ast.StmtID, st ast.Stmt) Block {
	data := *must(n.b.Stmts.Module(id))
	switch {
	case st.Kind == ast.StmtImport, st.Kind == ast.StmtExportAll:
		return Block{Lines: []Line{stmtLine(id)}}

	case data.Decl.IsValid():
		sub := n.stmt(data.Decl, "")
		var blk Block
		for _, line := range sub.Lines {
			if line.IsBinding() || !n.isDecl(line.Stmt) {
				blk.add(line)
				continue
			}
			out := ast.ModuleStmtData{Decl: line.Stmt}
			blk.addStmt(n.b.Stmts.NewModule(st.Span, st.Kind, out))
		}
		return blk

	case st.Kind == ast.StmtExportDefault:
		v := n.expr(data.Expr)
		blk := Block{Lines: v.Lines}
		blk.addStmt(n.b.Stmts.NewModule(st.Span, st.Kind, ast.ModuleStmtData{Expr: n.valueOr(v)}))
		return blk
	}
	return Block{Lines: []Line{stmtLine(id)}}
}

func (n *Normalizer) isDecl(id ast.StmtID) bool {
	st := n.b.Stmts.Get(id)
	if st == nil {
		return false
	}
	switch st.Kind {
	case ast.StmtVar, ast.StmtFunc, ast.StmtClass:
		return true
	}
	return false
}
