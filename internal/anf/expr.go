package anf

import (
	"deob/internal/ast"
	"deob/internal/source"
	"deob/internal/token"
)

// Expr normalizes e in value position. The result always carries a Value.
func (n *Normalizer) Expr(e ast.ExprID) Block {
	blk := n.expr(e)
	blk.Value = n.valueOr(blk)
	return blk
}

func (n *Normalizer) expr(id ast.ExprID) Block {
	ptr := n.b.Exprs.Get(id)
	if ptr == nil {
		return Block{Value: n.null()}
	}
	e := *ptr
	switch e.Kind {
	case ast.ExprCall, ast.ExprNew:
		return n.call(id, e)
	case ast.ExprBinary:
		return n.binary(id, e)
	case ast.ExprLogical:
		return n.logical(id, e)
	case ast.ExprCond:
		return n.cond(id, e)
	case ast.ExprAssign:
		return n.assign(id, e)
	case ast.ExprMember:
		return n.member(id, e)
	case ast.ExprArray:
		return n.array(id, e)
	case ast.ExprObject:
		return n.object(id, e)
	case ast.ExprSeq:
		return n.sequence(id)
	case ast.ExprUnary:
		return n.unary(id, e)
	case ast.ExprSpread, ast.ExprAwait, ast.ExprYield, ast.ExprImport:
		return n.argExpr(id, e)
	case ast.ExprTemplate:
		return n.template(id, e)
	case ast.ExprFunc, ast.ExprArrow:
		return Block{Value: n.funcExpr(id, e)}
	case ast.ExprClass:
		return n.classExpr(id, e)
	default:
		// identifiers, literals, this, super; update arguments are targets and stay put
		return Block{Value: id}
	}
}

// operand normalizes id where its value feeds a larger expression. An
// effectful residual is always bound to a fresh constant. When pinned is set a
// later sibling has effects, so any residual that could read differently
// after them is bound as well.
func (n *Normalizer) operand(id ast.ExprID, pinned bool) ([]Line, ast.ExprID) {
	blk := n.expr(id)
	return n.bind(blk.Lines, n.valueOr(blk), pinned)
}

func (n *Normalizer) bind(lines []Line, v ast.ExprID, pinned bool) ([]Line, ast.ExprID) {
	if !n.hasEffects(v) && (!pinned || n.stable(v)) {
		return lines, v
	}
	name := n.fresh()
	lines = append(lines, Line{Name: name, Init: v})
	return lines, n.ident(name)
}

// effectsAfter reports for each operand whether a later one has effects.
// Invalid IDs (array holes) count as nothing.
func (n *Normalizer) effectsAfter(ids []ast.ExprID) []bool {
	out := make([]bool, len(ids))
	seen := false
	for i := len(ids) - 1; i >= 0; i-- {
		out[i] = seen
		if ids[i].IsValid() && n.hasEffects(ids[i]) {
			seen = true
		}
	}
	return out
}

// element is operand for call arguments and array elements, where a spread
// binds its argument and not the spread itself.
func (n *Normalizer) element(id ast.ExprID, pinned bool) ([]Line, ast.ExprID) {
	e := n.b.Exprs.Get(id)
	if e == nil || e.Kind != ast.ExprSpread {
		return n.operand(id, pinned)
	}
	data := *must(n.b.Exprs.Arg(id))
	lines, arg := n.operand(data.Arg, pinned)
	return lines, n.b.Exprs.NewArg(e.Span, ast.ExprSpread, arg, false)
}

func (n *Normalizer) call(id ast.ExprID, e ast.Expr) Block {
	if n.optionalChain(id) {
		return Block{Value: id}
	}
	data := *must(n.b.Exprs.Call(id))
	later := n.effectsAfter(append([]ast.ExprID{data.Callee}, data.Args...))
	var blk Block
	lines, callee := n.callee(data.Callee, later[0])
	blk.add(lines...)
	args := make([]ast.ExprID, 0, len(data.Args))
	for i, arg := range data.Args {
		lines, v := n.element(arg, later[i+1])
		blk.add(lines...)
		args = append(args, v)
	}
	blk.Value = n.b.Exprs.NewCall(e.Span, e.Kind == ast.ExprNew, callee, args, data.Optional)
	return blk
}

// callee keeps member callees as member accesses so the call still receives
// its this value; when pinned, only their object and key are bound. A
// sequence that yields a member is rebuilt as (0, obj.m) so it does not gain
// one, or bound whole when pinned.
func (n *Normalizer) callee(id ast.ExprID, pinned bool) ([]Line, ast.ExprID) {
	e := n.b.Exprs.Get(id)
	if e == nil {
		return n.operand(id, pinned)
	}
	switch e.Kind {
	case ast.ExprMember:
		blk := n.expr(id)
		v := n.valueOr(blk)
		if !pinned || n.optionalChain(v) {
			return blk.Lines, v
		}
		return n.pinMember(blk.Lines, v)
	case ast.ExprSeq:
		blk := n.expr(id)
		v := n.valueOr(blk)
		if r := n.b.Exprs.Get(v); r != nil && r.Kind == ast.ExprMember && !pinned {
			zero := n.b.Exprs.NewLit(source.Span{}, ast.LitNumber, "0")
			return blk.Lines, n.b.Exprs.NewSeq(e.Span, []ast.ExprID{zero, v})
		}
		return n.bind(blk.Lines, v, pinned)
	}
	return n.operand(id, pinned)
}

// pinMember binds the object and computed key of the member v and keeps the
// property access on them.
func (n *Normalizer) pinMember(lines []Line, v ast.ExprID) ([]Line, ast.ExprID) {
	e := n.b.Exprs.Get(v)
	data, ok := n.b.Exprs.Member(v)
	if !ok {
		return n.bind(lines, v, true)
	}
	m := *data
	lines, m.Object = n.bind(lines, m.Object, true)
	if m.Computed {
		lines, m.Property = n.bind(lines, m.Property, true)
	}
	return lines, n.b.Exprs.NewMember(e.Span, m)
}

// binary hoists the right operand before the left one.
func (n *Normalizer) binary(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Binary(id))
	var blk Block
	rlines, right := n.operand(data.Right, false)
	llines, left := n.operand(data.Left, false)
	blk.add(rlines...)
	blk.add(llines...)
	blk.Value = n.b.Exprs.NewBinary(e.Span, data.Op, left, right)
	return blk
}

// logical binds the left value to t and evaluates the right side only under
// the condition the operator would:
//
//	let t = a; if (t) { ...; t = b; }          a && b
//	let t = a; if (!t) { ...; t = b; }         a || b
//	let t = a; if (t == null) { ...; t = b; }  a ?? b
func (n *Normalizer) logical(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Binary(id))
	left := n.expr(data.Left)
	right := n.expr(data.Right)
	t := n.fresh()

	blk := Block{Lines: left.Lines}
	blk.add(Line{Name: t, Init: n.valueOr(left), Mutable: true})

	var test ast.ExprID
	switch data.Op {
	case token.AndAnd:
		test = n.ident(t)
	case token.OrOr:
		test = n.b.Exprs.NewUnary(source.Span{}, token.Bang, n.ident(t))
	default:
		test = n.b.Exprs.NewBinary(source.Span{}, token.EqEq, n.ident(t), n.null())
	}
	body := right.Lines
	body = append(body, stmtLine(n.assignStmt(t, n.valueOr(right))))
	blk.addStmt(n.b.Stmts.NewIf(e.Span, test, n.BlockStmt(Block{Lines: body}), ast.NoStmtID))
	blk.Value = n.ident(t)
	return blk
}

// cond keeps a ?: in place unless a branch hoists lines; then it becomes
// let t; if (c) { ...; t = a; } else { ...; t = b; }
func (n *Normalizer) cond(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Cond(id))
	test := n.expr(data.Test)
	cons := n.expr(data.Cons)
	alt := n.expr(data.Alt)
	if len(cons.Lines) == 0 && len(alt.Lines) == 0 {
		return Block{
			Lines: test.Lines,
			Value: n.b.Exprs.NewCond(e.Span, n.valueOr(test), n.valueOr(cons), n.valueOr(alt)),
		}
	}
	t := n.fresh()
	blk := Block{Lines: test.Lines}
	blk.add(Line{Name: t, Mutable: true})
	consLines := append(cons.Lines, stmtLine(n.assignStmt(t, n.valueOr(cons))))
	altLines := append(alt.Lines, stmtLine(n.assignStmt(t, n.valueOr(alt))))
	blk.addStmt(n.b.Stmts.NewIf(e.Span, n.valueOr(test),
		n.BlockStmt(Block{Lines: consLines}),
		n.BlockStmt(Block{Lines: altLines})))
	blk.Value = n.ident(t)
	return blk
}

// assign hoists the right-hand side, then the parts of a member target.
// Logical assignments are lazy and pass through untouched.
func (n *Normalizer) assign(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Assign(id))
	switch data.Op {
	case token.AndAndAssign, token.OrOrAssign, token.QuestionQuestionAssign:
		return Block{Value: id}
	}
	right := n.expr(data.Value)
	blk := Block{Lines: right.Lines}
	lines, target := n.target(data.Target)
	blk.add(lines...)
	blk.Value = n.b.Exprs.NewAssign(e.Span, data.Op, target, n.valueOr(right))
	return blk
}

// target hoists the object and computed key of a member target. Binding
// patterns are left as they are.
func (n *Normalizer) target(id ast.PatID) ([]Line, ast.PatID) {
	p := n.b.Pats.Get(id)
	if p == nil || p.Kind != ast.PatExpr {
		return nil, id
	}
	span := p.Span
	data, _ := n.b.Pats.Expr(id)
	expr := data.Expr
	if n.optionalChain(expr) {
		return nil, id
	}
	e := n.b.Exprs.Get(expr)
	if e == nil || e.Kind != ast.ExprMember {
		return nil, id
	}
	blk := n.member(expr, *e)
	return blk.Lines, n.b.Pats.NewExpr(span, blk.Value)
}

func (n *Normalizer) member(id ast.ExprID, e ast.Expr) Block {
	if n.optionalChain(id) {
		return Block{Value: id}
	}
	data := *must(n.b.Exprs.Member(id))
	var blk Block
	keyEffects := data.Computed && n.hasEffects(data.Property)
	lines, object := n.operand(data.Object, keyEffects)
	blk.add(lines...)
	prop := data.Property
	if data.Computed {
		lines, prop = n.operand(data.Property, false)
		blk.add(lines...)
	}
	data.Object, data.Property = object, prop
	blk.Value = n.b.Exprs.NewMember(e.Span, data)
	return blk
}

func (n *Normalizer) array(id ast.ExprID, e ast.Expr) Block {
	data, _ := n.b.Exprs.Array(id)
	elems := append([]ast.ExprID(nil), data.Elems...)
	later := n.effectsAfter(elems)
	var blk Block
	for i, el := range elems {
		if !el.IsValid() {
			continue
		}
		lines, v := n.element(el, later[i])
		blk.add(lines...)
		elems[i] = v
	}
	blk.Value = n.b.Exprs.NewArray(e.Span, elems)
	return blk
}

// object rebuilds the literal in place when no property hoists lines.
// Otherwise each property lands in its own step after its lines:
//
//	let t = {}; ...; t = {...t, a: v1}; ...; t = {...t, b: v2};
func (n *Normalizer) object(id ast.ExprID, e ast.Expr) Block {
	data, _ := n.b.Exprs.Object(id)
	if len(data.Props) == 0 {
		return Block{Value: id}
	}
	type part struct {
		lines []Line
		prop  ast.PropID
	}
	src := append([]ast.PropID(nil), data.Props...)
	parts := make([]part, 0, len(src))
	hoisted := false
	for _, pid := range src {
		lines, prop := n.prop(pid)
		hoisted = hoisted || len(lines) > 0
		parts = append(parts, part{lines: lines, prop: prop})
	}
	if !hoisted {
		props := make([]ast.PropID, 0, len(parts))
		for _, p := range parts {
			props = append(props, p.prop)
		}
		return Block{Value: n.b.Exprs.NewObject(e.Span, props)}
	}

	t := n.fresh()
	var blk Block
	blk.add(Line{Name: t, Init: n.b.Exprs.NewObject(source.Span{}, nil), Mutable: true})
	for _, p := range parts {
		blk.add(p.lines...)
		self := n.b.Props.New(ast.Prop{Kind: ast.PropSpread, Value: n.ident(t)})
		next := n.b.Exprs.NewObject(source.Span{}, []ast.PropID{self, p.prop})
		blk.addStmt(n.assignStmt(t, next))
	}
	blk.Value = n.ident(t)
	return blk
}

func (n *Normalizer) prop(id ast.PropID) ([]Line, ast.PropID) {
	p := *n.b.Props.Get(id)
	switch {
	case p.Shorthand:
		return nil, id
	case p.Kind == ast.PropGet, p.Kind == ast.PropSet, p.Method:
		var lines []Line
		if p.Computed {
			lines, p.Key = n.operand(p.Key, false)
		}
		if e := n.b.Exprs.Get(p.Value); e != nil && (e.Kind == ast.ExprFunc || e.Kind == ast.ExprArrow) {
			p.Value = n.funcExpr(p.Value, *e)
		}
		return lines, n.b.Props.New(p)
	}
	var lines []Line
	if p.Computed {
		lines, p.Key = n.operand(p.Key, n.hasEffects(p.Value))
	}
	v := n.expr(p.Value)
	lines = append(lines, v.Lines...)
	p.Value = n.valueOr(v)
	return lines, n.b.Props.New(p)
}

// sequence flushes every intermediate value as its own statement; inert
// values are simply dropped.
func (n *Normalizer) sequence(id ast.ExprID) Block {
	data, _ := n.b.Exprs.Seq(id)
	exprs := append([]ast.ExprID(nil), data.Exprs...)
	var (
		blk  Block
		prev ast.ExprID
	)
	for _, x := range exprs {
		sub := n.expr(x)
		if prev.IsValid() && !n.isInert(prev) {
			blk.addStmt(n.exprStmt(prev))
		}
		blk.add(sub.Lines...)
		prev = sub.Value
	}
	blk.Value = prev
	return blk
}

func (n *Normalizer) unary(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Unary(id))
	var (
		lines []Line
		arg   ast.ExprID
	)
	if data.Op == token.KwDelete {
		// delete needs the reference itself, not its value
		sub := n.expr(data.Arg)
		lines, arg = sub.Lines, n.valueOr(sub)
	} else {
		lines, arg = n.operand(data.Arg, false)
	}
	return Block{Lines: lines, Value: n.b.Exprs.NewUnary(e.Span, data.Op, arg)}
}

func (n *Normalizer) argExpr(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Arg(id))
	if !data.Arg.IsValid() {
		return Block{Value: id}
	}
	lines, arg := n.operand(data.Arg, false)
	return Block{Lines: lines, Value: n.b.Exprs.NewArg(e.Span, e.Kind, arg, data.Delegate)}
}

func (n *Normalizer) template(id ast.ExprID, e ast.Expr) Block {
	data := *must(n.b.Exprs.Template(id))
	var blk Block
	later := n.effectsAfter(append([]ast.ExprID{data.Tag}, data.Exprs...))
	tag := data.Tag
	if tag.IsValid() {
		var lines []Line
		lines, tag = n.callee(tag, later[0])
		blk.add(lines...)
	}
	exprs := make([]ast.ExprID, 0, len(data.Exprs))
	for i, x := range data.Exprs {
		lines, v := n.operand(x, later[i+1])
		blk.add(lines...)
		exprs = append(exprs, v)
	}
	blk.Value = n.b.Exprs.NewTemplate(e.Span, tag, data.Quasis, exprs)
	return blk
}

func (n *Normalizer) funcExpr(id ast.ExprID, e ast.Expr) ast.ExprID {
	data, _ := n.b.Exprs.Func(id)
	fn := data.Func
	return n.b.Exprs.NewFunc(e.Span, e.Kind == ast.ExprArrow, n.function(fn))
}

func (n *Normalizer) assignStmt(name string, v ast.ExprID) ast.StmtID {
	target := n.b.Pats.NewIdent(source.Span{}, name)
	return n.exprStmt(n.b.Exprs.NewAssign(source.Span{}, token.Assign, target, v))
}

func (n *Normalizer) exprStmt(v ast.ExprID) ast.StmtID {
	var span source.Span
	if e := n.b.Exprs.Get(v); e != nil {
		span = e.Span
	}
	return n.b.Stmts.NewExpr(span, v)
}
