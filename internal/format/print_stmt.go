package format

import (
	"deob/internal/ast"
)

func (p *printer) stmt(id ast.StmtID) {
	st := p.b.Stmts.Get(id)
	if st == nil {
		return
	}
	w := p.w
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := p.b.Stmts.Expr(id)
		if p.startsAmbiguous(data.Expr) {
			w.WriteString("(")
			p.expr(data.Expr, precSeq)
			w.WriteString(")")
		} else {
			p.expr(data.Expr, precSeq)
		}
		w.WriteString(";")

	case ast.StmtVar:
		p.varDecl(id)
		w.WriteString(";")

	case ast.StmtFunc:
		data, _ := p.b.Stmts.Func(id)
		p.function(data.Func)

	case ast.StmtClass:
		data, _ := p.b.Stmts.Class(id)
		p.class(data.Class)

	case ast.StmtImport, ast.StmtExportNamed, ast.StmtExportDefault, ast.StmtExportAll:
		p.moduleDecl(id, st.Kind)

	case ast.StmtReturn, ast.StmtThrow:
		data, _ := p.b.Stmts.Arg(id)
		if st.Kind == ast.StmtReturn {
			w.WriteString("return")
		} else {
			w.WriteString("throw")
		}
		if data.Arg.IsValid() {
			w.WriteString(" ")
			p.expr(data.Arg, precSeq)
		}
		w.WriteString(";")

	case ast.StmtIf:
		p.ifStmt(id)

	case ast.StmtFor:
		data, _ := p.b.Stmts.For(id)
		w.WriteString("for (")
		if data.Init.IsValid() {
			saved := p.noIn
			p.noIn = true
			if init := p.b.Stmts.Get(data.Init); init.Kind == ast.StmtVar {
				p.varDecl(data.Init)
			} else {
				e, _ := p.b.Stmts.Expr(data.Init)
				p.expr(e.Expr, precSeq)
			}
			p.noIn = saved
		}
		w.WriteString(";")
		if data.Test.IsValid() {
			w.WriteString(" ")
			p.expr(data.Test, precSeq)
		}
		w.WriteString(";")
		if data.Update.IsValid() {
			w.WriteString(" ")
			p.expr(data.Update, precSeq)
		}
		w.WriteString(")")
		p.body(data.Body)

	case ast.StmtForIn, ast.StmtForOf:
		data, _ := p.b.Stmts.ForIn(id)
		w.WriteString("for (")
		if data.Decl.IsValid() {
			p.varDecl(data.Decl)
		} else {
			p.pat(data.Target)
		}
		if st.Kind == ast.StmtForIn {
			w.WriteString(" in ")
			p.expr(data.Right, precSeq)
		} else {
			w.WriteString(" of ")
			p.expr(data.Right, precAssign)
		}
		w.WriteString(")")
		p.body(data.Body)

	case ast.StmtWhile:
		data, _ := p.b.Stmts.While(id)
		w.WriteString("while (")
		p.expr(data.Test, precSeq)
		w.WriteString(")")
		p.body(data.Body)

	case ast.StmtDoWhile:
		data, _ := p.b.Stmts.While(id)
		w.WriteString("do")
		p.body(data.Body)
		if p.b.Stmts.Get(data.Body).Kind == ast.StmtBlock {
			w.WriteString(" ")
		} else {
			w.Newline()
		}
		w.WriteString("while (")
		p.expr(data.Test, precSeq)
		w.WriteString(");")

	case ast.StmtBlock:
		data, _ := p.b.Stmts.Block(id)
		p.block(data.Stmts)

	case ast.StmtTry:
		data, _ := p.b.Stmts.Try(id)
		w.WriteString("try ")
		p.stmt(data.Block)
		if data.Handler.IsValid() {
			w.WriteString(" catch ")
			if data.Param.IsValid() {
				w.WriteString("(")
				p.pat(data.Param)
				w.WriteString(") ")
			}
			p.stmt(data.Handler)
		}
		if data.Finalizer.IsValid() {
			w.WriteString(" finally ")
			p.stmt(data.Finalizer)
		}

	case ast.StmtSwitch:
		data, _ := p.b.Stmts.Switch(id)
		w.WriteString("switch (")
		p.expr(data.Disc, precSeq)
		w.WriteString(") {")
		if len(data.Cases) > 0 {
			w.Newline()
			w.IndentPush()
			for _, c := range data.Cases {
				p.switchCase(c)
				w.Newline()
			}
			w.IndentPop()
		}
		w.WriteString("}")

	case ast.StmtBreak, ast.StmtContinue:
		data, _ := p.b.Stmts.Jump(id)
		if st.Kind == ast.StmtBreak {
			w.WriteString("break")
		} else {
			w.WriteString("continue")
		}
		if data.Label != "" {
			w.WriteString(" " + data.Label)
		}
		w.WriteString(";")

	case ast.StmtLabeled:
		data, _ := p.b.Stmts.Labeled(id)
		w.WriteString(data.Label + ": ")
		p.stmt(data.Body)

	case ast.StmtEmpty:
		w.WriteString(";")

	case ast.StmtDebugger:
		w.WriteString("debugger;")
	}
}

// varDecl prints `kind a = 1, b` without the terminating ';'.
func (p *printer) varDecl(id ast.StmtID) {
	data, _ := p.b.Stmts.Var(id)
	p.w.WriteString(data.Kind.String() + " ")
	for i, d := range data.Decls {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.decl(d)
	}
}

func (p *printer) decl(id ast.DeclID) {
	d := p.b.Decls.Get(id)
	p.pat(d.Target)
	if d.Init.IsValid() {
		p.w.WriteString(" = ")
		p.expr(d.Init, precAssign)
	}
}

func (p *printer) ifStmt(id ast.StmtID) {
	data, _ := p.b.Stmts.If(id)
	p.w.WriteString("if (")
	p.expr(data.Test, precSeq)
	p.w.WriteString(")")
	if data.Alt.IsValid() && p.danglingElse(data.Cons) {
		p.w.WriteString(" ")
		p.block([]ast.StmtID{data.Cons})
	} else {
		p.body(data.Cons)
	}
	if !data.Alt.IsValid() {
		return
	}
	if p.b.Stmts.Get(data.Cons).Kind == ast.StmtBlock || p.danglingElse(data.Cons) {
		p.w.WriteString(" else")
	} else {
		p.w.Newline()
		p.w.WriteString("else")
	}
	if p.b.Stmts.Get(data.Alt).Kind == ast.StmtIf {
		p.w.WriteString(" ")
		p.ifStmt(data.Alt)
		return
	}
	p.body(data.Alt)
}

// danglingElse reports whether an else printed after cons would attach to
// an if nested inside cons.
func (p *printer) danglingElse(cons ast.StmtID) bool {
	for {
		st := p.b.Stmts.Get(cons)
		switch st.Kind {
		case ast.StmtIf:
			data, _ := p.b.Stmts.If(cons)
			if !data.Alt.IsValid() {
				return true
			}
			cons = data.Alt
		case ast.StmtFor:
			data, _ := p.b.Stmts.For(cons)
			cons = data.Body
		case ast.StmtForIn, ast.StmtForOf:
			data, _ := p.b.Stmts.ForIn(cons)
			cons = data.Body
		case ast.StmtWhile:
			data, _ := p.b.Stmts.While(cons)
			cons = data.Body
		case ast.StmtLabeled:
			data, _ := p.b.Stmts.Labeled(cons)
			cons = data.Body
		default:
			return false
		}
	}
}

// body prints a loop or branch body: blocks inline, other statements indented on the next line.
func (p *printer) body(id ast.StmtID) {
	if p.b.Stmts.Get(id).Kind == ast.StmtBlock {
		p.w.WriteString(" ")
		p.stmt(id)
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	p.stmt(id)
	p.w.IndentPop()
}

func (p *printer) block(stmts []ast.StmtID) {
	if len(stmts) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.IndentPush()
	for _, st := range stmts {
		p.stmt(st)
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString("}")
}

func (p *printer) switchCase(id ast.CaseID) {
	c := p.b.Cases.Get(id)
	if c.Test.IsValid() {
		p.w.WriteString("case ")
		p.expr(c.Test, precSeq)
		p.w.WriteString(":")
	} else {
		p.w.WriteString("default:")
	}
	if len(c.Body) == 0 {
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	for i, st := range c.Body {
		if i > 0 {
			p.w.Newline()
		}
		p.stmt(st)
	}
	p.w.IndentPop()
}
