package anf

import (
	"deob/internal/ast"
	"deob/internal/source"
	"deob/internal/token"
)

// Program normalizes a whole program body. The result has no Value.
func (n *Normalizer) Program(f ast.FileID) Block {
	file := n.b.Files.Get(f)
	if file == nil {
		return Block{}
	}
	return n.stmts(file.Body)
}

// Stmt normalizes one statement. Only expression statements keep a Value.
func (n *Normalizer) Stmt(s ast.StmtID) Block {
	return n.stmt(s, "")
}

func (n *Normalizer) stmts(ids []ast.StmtID) Block {
	var blk Block
	for _, id := range ids {
		sub := n.stmt(id, "")
		blk.add(sub.Lines...)
		if sub.Value.IsValid() {
			blk.addStmt(n.exprStmt(sub.Value))
		}
	}
	return blk
}

// stmt normalizes id. label is non-empty when id is the body of a labeled
// statement and must stay attached to the loop it names.
func (n *Normalizer) stmt(id ast.StmtID, label string) Block {
	ptr := n.b.Stmts.Get(id)
	if ptr == nil {
		return Block{}
	}
	st := *ptr
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := n.b.Stmts.Expr(id)
		return n.expr(data.Expr)
	case ast.StmtVar:
		return n.varStmt(id, st)
	case ast.StmtFunc:
		data, _ := n.b.Stmts.Func(id)
		fn := data.Func
		return Block{Lines: []Line{stmtLine(n.b.Stmts.NewFunc(st.Span, n.function(fn)))}}
	case ast.StmtReturn, ast.StmtThrow:
		return n.argStmt(id, st)
	case ast.StmtIf:
		return n.ifStmt(id, st)
	case ast.StmtFor:
		return n.forStmt(id, st, label)
	case ast.StmtForIn, ast.StmtForOf:
		return n.forInStmt(id, st, label)
	case ast.StmtWhile:
		return n.whileStmt(id, st, label)
	case ast.StmtDoWhile:
		return n.doWhileStmt(id, st, label)
	case ast.StmtBlock:
		return Block{Lines: []Line{stmtLine(n.b.Stmts.NewBlock(st.Span, n.bodyLines(id)))}}
	case ast.StmtTry:
		return n.tryStmt(id, st)
	case ast.StmtSwitch:
		return n.switchStmt(id, st)
	case ast.StmtLabeled:
		return n.labeledStmt(id, st)
	case ast.StmtClass:
		return n.classStmt(id, st)
	case ast.StmtImport, ast.StmtExportNamed, ast.StmtExportDefault, ast.StmtExportAll:
		return n.moduleStmt(id, st)
	default:
		// break, continue, empty, debugger
		return Block{Lines: []Line{stmtLine(id)}}
	}
}

// varStmt splits declarations: every declarator becomes its own statement,
// preceded by the lines its initializer hoisted.
func (n *Normalizer) varStmt(id ast.StmtID, st ast.Stmt) Block {
	data, _ := n.b.Stmts.Var(id)
	kind := data.Kind
	decls := append([]ast.DeclID(nil), data.Decls...)
	var blk Block
	for _, did := range decls {
		d := *n.b.Decls.Get(did)
		if d.Init.IsValid() {
			init := n.expr(d.Init)
			blk.add(init.Lines...)
			did = n.b.Decls.New(d.Span, d.Target, n.valueOr(init))
		}
		blk.addStmt(n.b.Stmts.NewVar(st.Span, kind, []ast.DeclID{did}))
	}
	return blk
}

func (n *Normalizer) argStmt(id ast.StmtID, st ast.Stmt) Block {
	data, _ := n.b.Stmts.Arg(id)
	if !data.Arg.IsValid() {
		return Block{Lines: []Line{stmtLine(id)}}
	}
	arg := n.expr(data.Arg)
	blk := Block{Lines: arg.Lines}
	if st.Kind == ast.StmtThrow {
		blk.addStmt(n.b.Stmts.NewThrow(st.Span, n.valueOr(arg)))
	} else {
		blk.addStmt(n.b.Stmts.NewReturn(st.Span, n.valueOr(arg)))
	}
	return blk
}

func (n *Normalizer) ifStmt(id ast.StmtID, st ast.Stmt) Block {
	data := *must(n.b.Stmts.If(id))
	test := n.expr(data.Test)
	cons := n.wrap(data.Cons)
	alt := ast.NoStmtID
	if data.Alt.IsValid() {
		alt = n.wrapElse(data.Alt)
	}
	blk := Block{Lines: test.Lines}
	blk.addStmt(n.b.Stmts.NewIf(st.Span, n.valueOr(test), cons, alt))
	return blk
}

// wrap normalizes a nested statement into a block statement.
func (n *Normalizer) wrap(id ast.StmtID) ast.StmtID {
	return n.b.Stmts.NewBlock(n.spanOf(id), n.bodyLines(id))
}

// wrapElse keeps else-if chains flat when the nested if hoisted nothing.
func (n *Normalizer) wrapElse(id ast.StmtID) ast.StmtID {
	st := n.b.Stmts.Get(id)
	if st == nil || st.Kind != ast.StmtIf {
		return n.wrap(id)
	}
	span := st.Span
	lines := n.Lines(n.stmt(id, ""))
	if len(lines) == 1 {
		return lines[0]
	}
	return n.b.Stmts.NewBlock(span, lines)
}

// bodyLines normalizes a nested statement into the statements of a block,
// opening an existing block instead of nesting it.
func (n *Normalizer) bodyLines(id ast.StmtID) []ast.StmtID {
	if data, ok := n.b.Stmts.Block(id); ok {
		return n.Lines(n.stmts(data.Stmts))
	}
	return n.Lines(n.stmt(id, ""))
}

func (n *Normalizer) labeled(label string, loop ast.StmtID) ast.StmtID {
	if label == "" {
		return loop
	}
	return n.b.Stmts.NewLabeled(source.Span{}, label, loop)
}

func (n *Normalizer) labeledStmt(id ast.StmtID, st ast.Stmt) Block {
	data := *must(n.b.Stmts.Labeled(id))
	if body := n.b.Stmts.Get(data.Body); body != nil {
		switch body.Kind {
		case ast.StmtFor, ast.StmtForIn, ast.StmtForOf, ast.StmtWhile, ast.StmtDoWhile:
			return n.stmt(data.Body, data.Label)
		}
	}
	return Block{Lines: []Line{stmtLine(n.b.Stmts.NewLabeled(st.Span, data.Label, n.wrap(data.Body)))}}
}

// loopTest normalizes a loop condition. When the condition hoists lines they
// move to the top of the body followed by `if (!test) { break; }` and the loop
// condition itself is dropped.
func (n *Normalizer) loopTest(test ast.ExprID) (ast.ExprID, []ast.StmtID) {
	sub := n.expr(test)
	if len(sub.Lines) == 0 {
		return n.valueOr(sub), nil
	}
	pre := n.Lines(Block{Lines: sub.Lines})
	neg := n.b.Exprs.NewUnary(source.Span{}, token.Bang, n.valueOr(sub))
	brk := n.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{n.b.Stmts.NewBreak(source.Span{}, "")})
	exit := n.b.Stmts.NewIf(source.Span{}, neg, brk, ast.NoStmtID)
	return ast.NoExprID, append(pre, exit)
}

func (n *Normalizer) forStmt(id ast.StmtID, st ast.Stmt, label string) Block {
	data := *must(n.b.Stmts.For(id))
	init, hoisted := n.forInit(data.Init)
	scoped := false
	if v, ok := n.b.Stmts.Var(data.Init); ok && v.Kind != ast.VarVar {
		scoped = true
	}

	test := data.Test
	var pre []ast.StmtID
	if test.IsValid() {
		test, pre = n.loopTest(test)
	}

	update := data.Update
	if update.IsValid() {
		// an update with hoisted lines cannot be split without rewriting continue
		if sub := n.expr(update); len(sub.Lines) == 0 {
			update = n.valueOr(sub)
		}
	}

	body := n.b.Stmts.NewBlock(n.spanOf(data.Body), append(pre, n.bodyLines(data.Body)...))
	loop := n.labeled(label, n.b.Stmts.NewFor(st.Span, ast.ForStmtData{
		Init:   init,
		Test:   test,
		Update: update,
		Body:   body,
	}))

	if len(hoisted) == 0 {
		return Block{Lines: []Line{stmtLine(loop)}}
	}
	stmts := append(hoisted, loop)
	if scoped {
		// keep let/const declarations and their temporaries out of the enclosing scope
		return Block{Lines: []Line{stmtLine(n.b.Stmts.NewBlock(st.Span, stmts))}}
	}
	var blk Block
	for _, s := range stmts {
		blk.addStmt(s)
	}
	return blk
}

// forInit normalizes a for-loop head. The declarators stay together in the
// head so let and const keep one binding per iteration; only the lines of the
// first initializer move in front of the loop. A later initializer that would
// hoist lines leaves the head as written.
func (n *Normalizer) forInit(id ast.StmtID) (ast.StmtID, []ast.StmtID) {
	st := n.b.Stmts.Get(id)
	if st == nil {
		return ast.NoStmtID, nil
	}
	if data, ok := n.b.Stmts.Var(id); ok {
		var lines []Line
		decls := make([]ast.DeclID, 0, len(data.Decls))
		for i, did := range data.Decls {
			d := *n.b.Decls.Get(did)
			if d.Init.IsValid() {
				init := n.expr(d.Init)
				if i > 0 && len(init.Lines) > 0 {
					return id, nil
				}
				lines = append(lines, init.Lines...)
				did = n.b.Decls.New(d.Span, d.Target, n.valueOr(init))
			}
			decls = append(decls, did)
		}
		return n.b.Stmts.NewVar(st.Span, data.Kind, decls), n.Lines(Block{Lines: lines})
	}
	data, ok := n.b.Stmts.Expr(id)
	if !ok {
		return id, nil
	}
	sub := n.expr(data.Expr)
	return n.b.Stmts.NewExpr(st.Span, n.valueOr(sub)), n.Lines(Block{Lines: sub.Lines})
}

func (n *Normalizer) forInStmt(id ast.StmtID, st ast.Stmt, label string) Block {
	data := *must(n.b.Stmts.ForIn(id))
	right := n.expr(data.Right)
	blk := Block{Lines: right.Lines}
	data.Right = n.valueOr(right)
	data.Body = n.wrap(data.Body)
	loop := n.b.Stmts.NewForIn(st.Span, st.Kind == ast.StmtForOf, data)
	blk.addStmt(n.labeled(label, loop))
	return blk
}

func (n *Normalizer) whileStmt(id ast.StmtID, st ast.Stmt, label string) Block {
	data := *must(n.b.Stmts.While(id))
	test, pre := n.loopTest(data.Test)
	if !test.IsValid() {
		test = n.b.Exprs.NewLit(source.Span{}, ast.LitBool, "true")
	}
	body := n.b.Stmts.NewBlock(n.spanOf(data.Body), append(pre, n.bodyLines(data.Body)...))
	loop := n.b.Stmts.NewWhile(st.Span, false, test, body)
	return Block{Lines: []Line{stmtLine(n.labeled(label, loop))}}
}

// doWhileStmt keeps a condition that hoists lines as it was written: the
// lines would have to follow every continue.
func (n *Normalizer) doWhileStmt(id ast.StmtID, st ast.Stmt, label string) Block {
	data := *must(n.b.Stmts.While(id))
	body := n.wrap(data.Body)
	test := data.Test
	if sub := n.expr(test); len(sub.Lines) == 0 {
		test = n.valueOr(sub)
	}
	loop := n.b.Stmts.NewWhile(st.Span, true, test, body)
	return Block{Lines: []Line{stmtLine(n.labeled(label, loop))}}
}

func (n *Normalizer) tryStmt(id ast.StmtID, st ast.Stmt) Block {
	data := *must(n.b.Stmts.Try(id))
	data.Block = n.wrap(data.Block)
	if data.Handler.IsValid() {
		data.Handler = n.wrap(data.Handler)
	}
	if data.Finalizer.IsValid() {
		data.Finalizer = n.wrap(data.Finalizer)
	}
	return Block{Lines: []Line{stmtLine(n.b.Stmts.NewTry(st.Span, data))}}
}

// switchStmt hoists the discriminant and normalizes clause bodies. Clause
// tests are compared lazily and stay in place.
func (n *Normalizer) switchStmt(id ast.StmtID, st ast.Stmt) Block {
	data := *must(n.b.Stmts.Switch(id))
	disc := n.expr(data.Disc)
	cases := make([]ast.CaseID, 0, len(data.Cases))
	for _, cid := range data.Cases {
		c := *n.b.Cases.Get(cid)
		cases = append(cases, n.b.Cases.New(c.Span, c.Test, n.Lines(n.stmts(c.Body))))
	}
	blk := Block{Lines: disc.Lines}
	blk.addStmt(n.b.Stmts.NewSwitch(st.Span, n.valueOr(disc), cases))
	return blk
}

// function normalizes a function body as a program of its own. A concise
// arrow body that hoists lines becomes a block ending in return.
func (n *Normalizer) function(id ast.FuncID) ast.FuncID {
	fn := *n.b.Funcs.Get(id)
	if fn.ExprBody.IsValid() {
		body := n.expr(fn.ExprBody)
		if len(body.Lines) == 0 {
			fn.ExprBody = n.valueOr(body)
			return n.b.Funcs.New(fn)
		}
		stmts := n.Lines(Block{Lines: body.Lines})
		fn.Body = append(stmts, n.b.Stmts.NewReturn(source.Span{}, n.valueOr(body)))
		fn.ExprBody = ast.NoExprID
		return n.b.Funcs.New(fn)
	}
	fn.Body = n.Lines(n.stmts(fn.Body))
	return n.b.Funcs.New(fn)
}

func (n *Normalizer) spanOf(id ast.StmtID) source.Span {
	if st := n.b.Stmts.Get(id); st != nil {
		return st.Span
	}
	return source.Span{}
}
