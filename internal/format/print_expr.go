package format

import (
	"strings"

	"deob/internal/ast"
	"deob/internal/token"
)

// Expression precedence levels; higher binds tighter.
const (
	precSeq     = 1
	precAssign  = 2 // also arrows and yield
	precCond    = 3
	precUnary   = 16
	precPostfix = 17
	precCall    = 19
	precPrimary = 20
)

func binaryPrec(op token.Kind) int {
	switch op {
	case token.QuestionQuestion:
		return 4
	case token.OrOr:
		return 5
	case token.AndAnd:
		return 6
	case token.Pipe:
		return 7
	case token.Caret:
		return 8
	case token.Amp:
		return 9
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return 10
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof, token.KwIn:
		return 11
	case token.Shl, token.Shr, token.UShr:
		return 12
	case token.Plus, token.Minus:
		return 13
	case token.Star, token.Slash, token.Percent:
		return 14
	case token.StarStar:
		return 15
	default:
		return precPrimary
	}
}

func (p *printer) prec(id ast.ExprID) int {
	e := p.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprSeq:
		return precSeq
	case ast.ExprAssign, ast.ExprArrow, ast.ExprYield, ast.ExprSpread:
		return precAssign
	case ast.ExprCond:
		return precCond
	case ast.ExprBinary, ast.ExprLogical:
		data, _ := p.b.Exprs.Binary(id)
		return binaryPrec(data.Op)
	case ast.ExprUnary, ast.ExprAwait:
		return precUnary
	case ast.ExprUpdate:
		data, _ := p.b.Exprs.Update(id)
		if data.Prefix {
			return precUnary
		}
		return precPostfix
	case ast.ExprCall, ast.ExprNew, ast.ExprMember, ast.ExprImport:
		return precCall
	case ast.ExprTemplate:
		data, _ := p.b.Exprs.Template(id)
		if data.Tag.IsValid() {
			return precCall
		}
	}
	return precPrimary
}

// expr prints id, parenthesized when it binds looser than minPrec.
func (p *printer) expr(id ast.ExprID, minPrec int) {
	p.exprParen(id, minPrec, false)
}

func (p *printer) exprParen(id ast.ExprID, minPrec int, force bool) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return
	}
	wrap := force || p.prec(id) < minPrec
	if !wrap && p.noIn && e.Kind == ast.ExprBinary {
		data, _ := p.b.Exprs.Binary(id)
		wrap = data.Op == token.KwIn
	}
	if wrap {
		saved := p.noIn
		p.noIn = false
		p.w.WriteString("(")
		p.exprBare(id, e)
		p.w.WriteString(")")
		p.noIn = saved
		return
	}
	p.exprBare(id, e)
}

func (p *printer) exprBare(id ast.ExprID, e *ast.Expr) {
	w := p.w
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := p.b.Exprs.Ident(id)
		w.WriteString(data.Name)

	case ast.ExprLit:
		data, _ := p.b.Exprs.Lit(id)
		w.WriteString(data.Raw)

	case ast.ExprThis:
		w.WriteString("this")

	case ast.ExprSuper:
		w.WriteString("super")

	case ast.ExprPrivate:
		data, _ := p.b.Exprs.Private(id)
		w.WriteString("#" + data.Name)

	case ast.ExprClass:
		data, _ := p.b.Exprs.Class(id)
		p.class(data.Class)

	case ast.ExprImport:
		data, _ := p.b.Exprs.Arg(id)
		w.WriteString("import")
		p.args([]ast.ExprID{data.Arg})

	case ast.ExprArray:
		data, _ := p.b.Exprs.Array(id)
		w.WriteString("[")
		for i, el := range data.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			if el.IsValid() {
				p.expr(el, precAssign)
			}
		}
		if n := len(data.Elems); n > 0 && !data.Elems[n-1].IsValid() {
			w.WriteString(",")
		}
		w.WriteString("]")

	case ast.ExprObject:
		data, _ := p.b.Exprs.Object(id)
		w.WriteString("{")
		for i, prop := range data.Props {
			if i > 0 {
				w.WriteString(", ")
			}
			p.prop(prop)
		}
		w.WriteString("}")

	case ast.ExprFunc, ast.ExprArrow:
		data, _ := p.b.Exprs.Func(id)
		p.function(data.Func)

	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		w.WriteString(data.Op.String())
		if data.Op.IsKeyword() || p.samesign(data.Op, data.Arg) {
			w.WriteString(" ")
		}
		p.expr(data.Arg, precUnary)

	case ast.ExprUpdate:
		data, _ := p.b.Exprs.Update(id)
		if data.Prefix {
			w.WriteString(data.Op.String())
			p.expr(data.Arg, precUnary)
		} else {
			p.expr(data.Arg, precCall)
			w.WriteString(data.Op.String())
		}

	case ast.ExprBinary, ast.ExprLogical:
		p.binary(id)

	case ast.ExprAssign:
		data, _ := p.b.Exprs.Assign(id)
		p.pat(data.Target)
		w.WriteString(" " + data.Op.String() + " ")
		p.expr(data.Value, precAssign)

	case ast.ExprCond:
		data, _ := p.b.Exprs.Cond(id)
		p.expr(data.Test, precCond+1)
		w.WriteString(" ? ")
		saved := p.noIn
		p.noIn = false
		p.expr(data.Cons, precAssign)
		p.noIn = saved
		w.WriteString(" : ")
		p.expr(data.Alt, precAssign)

	case ast.ExprCall:
		data, _ := p.b.Exprs.Call(id)
		p.expr(data.Callee, precCall)
		if data.Optional {
			w.WriteString("?.")
		}
		p.args(data.Args)

	case ast.ExprNew:
		data, _ := p.b.Exprs.Call(id)
		w.WriteString("new ")
		p.exprParen(data.Callee, precCall, p.hasCall(data.Callee))
		p.args(data.Args)

	case ast.ExprMember:
		data, _ := p.b.Exprs.Member(id)
		p.exprParen(data.Object, precCall, p.isIntLit(data.Object))
		switch {
		case data.Computed && data.Optional:
			w.WriteString("?.[")
		case data.Computed:
			w.WriteString("[")
		case data.Optional:
			w.WriteString("?.")
		default:
			w.WriteString(".")
		}
		if data.Computed {
			p.expr(data.Property, precSeq)
			w.WriteString("]")
		} else {
			p.expr(data.Property, precPrimary)
		}

	case ast.ExprSeq:
		data, _ := p.b.Exprs.Seq(id)
		for i, x := range data.Exprs {
			if i > 0 {
				w.WriteString(", ")
			}
			p.expr(x, precAssign)
		}

	case ast.ExprSpread:
		data, _ := p.b.Exprs.Arg(id)
		w.WriteString("...")
		p.expr(data.Arg, precAssign)

	case ast.ExprAwait:
		data, _ := p.b.Exprs.Arg(id)
		w.WriteString("await ")
		p.expr(data.Arg, precUnary)

	case ast.ExprYield:
		data, _ := p.b.Exprs.Arg(id)
		w.WriteString("yield")
		if data.Delegate {
			w.WriteString("*")
		}
		if data.Arg.IsValid() {
			w.WriteString(" ")
			p.expr(data.Arg, precAssign)
		}

	case ast.ExprTemplate:
		data, _ := p.b.Exprs.Template(id)
		if data.Tag.IsValid() {
			p.expr(data.Tag, precCall)
		}
		w.WriteString("`")
		for i, q := range data.Quasis {
			w.WriteString(q)
			if i < len(data.Exprs) {
				w.WriteString("${")
				p.expr(data.Exprs[i], precSeq)
				w.WriteString("}")
			}
		}
		w.WriteString("`")
	}
}

func (p *printer) binary(id ast.ExprID) {
	data, _ := p.b.Exprs.Binary(id)
	prec := binaryPrec(data.Op)
	leftMin, rightMin := prec, prec+1
	if data.Op == token.StarStar {
		leftMin, rightMin = precPostfix, prec
	}
	p.exprParen(data.Left, leftMin, p.mixesNullish(data.Op, data.Left))
	p.w.WriteString(" " + data.Op.String() + " ")
	p.exprParen(data.Right, rightMin, p.mixesNullish(data.Op, data.Right))
}

// mixesNullish reports whether child is a logical expression that cannot
// share an unparenthesized chain with op.
func (p *printer) mixesNullish(op token.Kind, child ast.ExprID) bool {
	if p.b.Exprs.Get(child).Kind != ast.ExprLogical {
		return false
	}
	data, _ := p.b.Exprs.Binary(child)
	if op == token.QuestionQuestion {
		return data.Op != token.QuestionQuestion
	}
	return ast.IsLogicalOp(op) && data.Op == token.QuestionQuestion
}

func (p *printer) samesign(op token.Kind, arg ast.ExprID) bool {
	switch p.b.Exprs.Get(arg).Kind {
	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(arg)
		return (op == token.Plus || op == token.Minus) && data.Op == op
	case ast.ExprUpdate:
		data, _ := p.b.Exprs.Update(arg)
		return data.Prefix && (op == token.Plus && data.Op == token.PlusPlus || op == token.Minus && data.Op == token.MinusMinus)
	}
	return false
}

// hasCall reports whether a call appears in the member chain of a new callee.
func (p *printer) hasCall(id ast.ExprID) bool {
	for {
		switch p.b.Exprs.Get(id).Kind {
		case ast.ExprCall, ast.ExprImport:
			return true
		case ast.ExprMember:
			data, _ := p.b.Exprs.Member(id)
			id = data.Object
		case ast.ExprTemplate:
			data, _ := p.b.Exprs.Template(id)
			if !data.Tag.IsValid() {
				return false
			}
			id = data.Tag
		default:
			return false
		}
	}
}

func (p *printer) isIntLit(id ast.ExprID) bool {
	lit, ok := p.b.Exprs.Lit(id)
	if !ok || lit.Kind != ast.LitNumber || lit.Raw == "" {
		return false
	}
	return strings.Trim(lit.Raw, "0123456789") == ""
}

func (p *printer) args(args []ast.ExprID) {
	p.w.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.expr(a, precAssign)
	}
	p.w.WriteString(")")
}

// startsAmbiguous reports whether an expression statement would begin with
// `{`, `function` or `class` and so be read as a block or a declaration.
func (p *printer) startsAmbiguous(id ast.ExprID) bool {
	k := p.leftmost(id)
	return k == ast.ExprObject || k == ast.ExprFunc || k == ast.ExprClass
}

// leftmost returns the kind of the node whose text starts id's printed form.
// An object pattern assignment target reports ExprObject. Operands that end
// up parenthesized are still walked, which at worst adds a redundant pair.
func (p *printer) leftmost(id ast.ExprID) ast.ExprKind {
	for {
		e := p.b.Exprs.Get(id)
		switch e.Kind {
		case ast.ExprBinary, ast.ExprLogical:
			data, _ := p.b.Exprs.Binary(id)
			id = data.Left
		case ast.ExprCond:
			data, _ := p.b.Exprs.Cond(id)
			id = data.Test
		case ast.ExprSeq:
			data, _ := p.b.Exprs.Seq(id)
			id = data.Exprs[0]
		case ast.ExprCall:
			data, _ := p.b.Exprs.Call(id)
			id = data.Callee
		case ast.ExprMember:
			data, _ := p.b.Exprs.Member(id)
			id = data.Object
		case ast.ExprTemplate:
			data, _ := p.b.Exprs.Template(id)
			if !data.Tag.IsValid() {
				return e.Kind
			}
			id = data.Tag
		case ast.ExprUpdate:
			data, _ := p.b.Exprs.Update(id)
			if data.Prefix {
				return e.Kind
			}
			id = data.Arg
		case ast.ExprAssign:
			data, _ := p.b.Exprs.Assign(id)
			pat := p.b.Pats.Get(data.Target)
			switch pat.Kind {
			case ast.PatObject:
				return ast.ExprObject
			case ast.PatExpr:
				pe, _ := p.b.Pats.Expr(data.Target)
				id = pe.Expr
			default:
				return e.Kind
			}
		default:
			return e.Kind
		}
	}
}
