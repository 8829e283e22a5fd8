package selector

import (
	"deob/internal/ast"
)

type (
	stmtChildFn func(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable
	exprChildFn func(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable
	patChildFn  func(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable
)

// Kinds missing from these tables are leaves.
var (
	stmtChildren = map[ast.StmtKind]stmtChildFn{
		ast.StmtExpr:    exprStmtChildren,
		ast.StmtVar:     varStmtChildren,
		ast.StmtFunc:    funcStmtChildren,
		ast.StmtReturn:  argStmtChildren,
		ast.StmtThrow:   argStmtChildren,
		ast.StmtIf:      ifStmtChildren,
		ast.StmtFor:     forStmtChildren,
		ast.StmtForIn:   forInStmtChildren,
		ast.StmtForOf:   forInStmtChildren,
		ast.StmtWhile:   whileStmtChildren,
		ast.StmtDoWhile: whileStmtChildren,
		ast.StmtBlock:   blockStmtChildren,
		ast.StmtTry:     tryStmtChildren,
		ast.StmtSwitch:  switchStmtChildren,
		ast.StmtLabeled: labeledStmtChildren,
		ast.StmtClass:   classStmtChildren,

		ast.StmtImport:        moduleStmtChildren,
		ast.StmtExportNamed:   moduleStmtChildren,
		ast.StmtExportDefault: moduleStmtChildren,
		ast.StmtExportAll:     moduleStmtChildren,
	}

	exprChildren = map[ast.ExprKind]exprChildFn{
		ast.ExprArray:    arrayChildren,
		ast.ExprObject:   objectChildren,
		ast.ExprFunc:     funcExprChildren,
		ast.ExprArrow:    funcExprChildren,
		ast.ExprUnary:    unaryChildren,
		ast.ExprUpdate:   updateChildren,
		ast.ExprBinary:   binaryChildren,
		ast.ExprLogical:  binaryChildren,
		ast.ExprAssign:   assignChildren,
		ast.ExprCond:     condChildren,
		ast.ExprCall:     callChildren,
		ast.ExprNew:      callChildren,
		ast.ExprMember:   memberChildren,
		ast.ExprSeq:      seqChildren,
		ast.ExprSpread:   argExprChildren,
		ast.ExprAwait:    argExprChildren,
		ast.ExprYield:    argExprChildren,
		ast.ExprTemplate: templateChildren,
		ast.ExprClass:    classExprChildren,
		ast.ExprImport:   argExprChildren,
	}

	patChildren = map[ast.PatKind]patChildFn{
		ast.PatArray:  arrayPatChildren,
		ast.PatObject: objectPatChildren,
		ast.PatAssign: assignPatChildren,
		ast.PatRest:   restPatChildren,
		ast.PatExpr:   exprPatChildren,
	}
)

// Children returns the traversable children of s in source order.
// Unknown or childless kinds yield nil.
func Children(b *ast.Builder, s ast.Selectable) []ast.Selectable {
	return AppendChildren(b, s, nil)
}

// AppendChildren appends the children of s to out.
func AppendChildren(b *ast.Builder, s ast.Selectable, out []ast.Selectable) []ast.Selectable {
	switch s.Kind {
	case ast.SelProgram:
		id, _ := s.Program()
		if f := b.Files.Get(id); f != nil {
			out = appendStmts(out, f.Body)
		}
	case ast.SelStmt:
		id, _ := s.Stmt()
		if st := b.Stmts.Get(id); st != nil {
			if fn := stmtChildren[st.Kind]; fn != nil {
				out = fn(b, id, out)
			}
		}
	case ast.SelExpr:
		id, _ := s.Expr()
		if e := b.Exprs.Get(id); e != nil {
			if fn := exprChildren[e.Kind]; fn != nil {
				out = fn(b, id, out)
			}
		}
	case ast.SelPat:
		id, _ := s.Pat()
		if p := b.Pats.Get(id); p != nil {
			if fn := patChildren[p.Kind]; fn != nil {
				out = fn(b, id, out)
			}
		}
	case ast.SelProp:
		id, _ := s.Prop()
		if p := b.Props.Get(id); p != nil {
			out = appendExpr(out, p.Key)
			out = appendExpr(out, p.Value)
		}
	case ast.SelDecl:
		id, _ := s.Decl()
		if d := b.Decls.Get(id); d != nil {
			out = appendPat(out, d.Target)
			out = appendExpr(out, d.Init)
		}
	case ast.SelFunc:
		id, _ := s.Func()
		if fn := b.Funcs.Get(id); fn != nil {
			for _, p := range fn.Params {
				out = appendPat(out, p)
			}
			out = appendStmts(out, fn.Body)
			out = appendExpr(out, fn.ExprBody)
		}
	case ast.SelCase:
		id, _ := s.Case()
		if c := b.Cases.Get(id); c != nil {
			out = appendExpr(out, c.Test)
			out = appendStmts(out, c.Body)
		}
	case ast.SelSpec:
		id, _ := s.Spec()
		if sp := b.Specs.Get(id); sp != nil {
			// source order: `import {remote as local}`, `export {local as remote}`
			if sp.Kind == ast.SpecExport {
				out = appendExpr(out, sp.Local)
				out = appendExpr(out, sp.Remote)
			} else {
				out = appendExpr(out, sp.Remote)
				out = appendExpr(out, sp.Local)
			}
		}
	}
	return out
}

func appendStmt(out []ast.Selectable, id ast.StmtID) []ast.Selectable {
	if id.IsValid() {
		out = append(out, ast.StmtSel(id))
	}
	return out
}

func appendStmts(out []ast.Selectable, ids []ast.StmtID) []ast.Selectable {
	for _, id := range ids {
		out = appendStmt(out, id)
	}
	return out
}

func appendExpr(out []ast.Selectable, id ast.ExprID) []ast.Selectable {
	if id.IsValid() {
		out = append(out, ast.ExprSel(id))
	}
	return out
}

func appendExprs(out []ast.Selectable, ids []ast.ExprID) []ast.Selectable {
	for _, id := range ids {
		out = appendExpr(out, id)
	}
	return out
}

func appendPat(out []ast.Selectable, id ast.PatID) []ast.Selectable {
	if id.IsValid() {
		out = append(out, ast.PatSel(id))
	}
	return out
}

// statements

func exprStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Expr(id)
	return appendExpr(out, data.Expr)
}

func varStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Var(id)
	for _, d := range data.Decls {
		if d.IsValid() {
			out = append(out, ast.DeclSel(d))
		}
	}
	return out
}

func funcStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Func(id)
	if data.Func.IsValid() {
		out = append(out, ast.FuncSel(data.Func))
	}
	return out
}

func argStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Arg(id)
	return appendExpr(out, data.Arg)
}

func ifStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.If(id)
	out = appendExpr(out, data.Test)
	out = appendStmt(out, data.Cons)
	return appendStmt(out, data.Alt)
}

func forStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.For(id)
	out = appendStmt(out, data.Init)
	out = appendExpr(out, data.Test)
	out = appendExpr(out, data.Update)
	return appendStmt(out, data.Body)
}

func forInStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.ForIn(id)
	out = appendStmt(out, data.Decl)
	out = appendPat(out, data.Target)
	out = appendExpr(out, data.Right)
	return appendStmt(out, data.Body)
}

func whileStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.While(id)
	if b.Stmts.Get(id).Kind == ast.StmtDoWhile {
		out = appendStmt(out, data.Body)
		return appendExpr(out, data.Test)
	}
	out = appendExpr(out, data.Test)
	return appendStmt(out, data.Body)
}

func blockStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Block(id)
	return appendStmts(out, data.Stmts)
}

func tryStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Try(id)
	out = appendStmt(out, data.Block)
	out = appendPat(out, data.Param)
	out = appendStmt(out, data.Handler)
	return appendStmt(out, data.Finalizer)
}

func switchStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Switch(id)
	out = appendExpr(out, data.Disc)
	for _, c := range data.Cases {
		if c.IsValid() {
			out = append(out, ast.CaseSel(c))
		}
	}
	return out
}

func labeledStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Labeled(id)
	return appendStmt(out, data.Body)
}

func classStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Class(id)
	return appendClass(b, data.Class, out)
}

func moduleStmtChildren(b *ast.Builder, id ast.StmtID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Stmts.Module(id)
	out = appendStmt(out, data.Decl)
	for _, sp := range data.Specs {
		if sp.IsValid() {
			out = append(out, ast.SpecSel(sp))
		}
	}
	out = appendExpr(out, data.Expr)
	return appendExpr(out, data.Source)
}

// appendClass lists the heritage expression and the members; the class
// name is an attribute, not a node.
func appendClass(b *ast.Builder, id ast.ClassID, out []ast.Selectable) []ast.Selectable {
	cls := b.Classes.Get(id)
	if cls == nil {
		return out
	}
	out = appendExpr(out, cls.Super)
	for _, m := range cls.Members {
		if m.IsValid() {
			out = append(out, ast.PropSel(m))
		}
	}
	return out
}

// expressions

func classExprChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Class(id)
	return appendClass(b, data.Class, out)
}

func arrayChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Array(id)
	return appendExprs(out, data.Elems)
}

func objectChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Object(id)
	for _, p := range data.Props {
		if p.IsValid() {
			out = append(out, ast.PropSel(p))
		}
	}
	return out
}

func funcExprChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Func(id)
	if data.Func.IsValid() {
		out = append(out, ast.FuncSel(data.Func))
	}
	return out
}

func unaryChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Unary(id)
	return appendExpr(out, data.Arg)
}

func updateChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Update(id)
	return appendExpr(out, data.Arg)
}

func binaryChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Binary(id)
	out = appendExpr(out, data.Left)
	return appendExpr(out, data.Right)
}

func assignChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Assign(id)
	out = appendPat(out, data.Target)
	return appendExpr(out, data.Value)
}

func condChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Cond(id)
	out = appendExpr(out, data.Test)
	out = appendExpr(out, data.Cons)
	return appendExpr(out, data.Alt)
}

func callChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Call(id)
	out = appendExpr(out, data.Callee)
	return appendExprs(out, data.Args)
}

func memberChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Member(id)
	out = appendExpr(out, data.Object)
	return appendExpr(out, data.Property)
}

func seqChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Seq(id)
	return appendExprs(out, data.Exprs)
}

func argExprChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Arg(id)
	return appendExpr(out, data.Arg)
}

func templateChildren(b *ast.Builder, id ast.ExprID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Exprs.Template(id)
	out = appendExpr(out, data.Tag)
	return appendExprs(out, data.Exprs)
}

// patterns

func arrayPatChildren(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Pats.Array(id)
	for _, el := range data.Elems {
		out = appendPat(out, el)
	}
	return out
}

func objectPatChildren(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Pats.Object(id)
	for _, prop := range data.Props {
		out = appendExpr(out, prop.Key)
		out = appendPat(out, prop.Value)
	}
	return out
}

func assignPatChildren(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Pats.Assign(id)
	out = appendPat(out, data.Target)
	return appendExpr(out, data.Default)
}

func restPatChildren(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Pats.Rest(id)
	return appendPat(out, data.Arg)
}

func exprPatChildren(b *ast.Builder, id ast.PatID, out []ast.Selectable) []ast.Selectable {
	data, _ := b.Pats.Expr(id)
	return appendExpr(out, data.Expr)
}
