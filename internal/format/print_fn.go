package format

import (
	"deob/internal/ast"
)

// function prints a declaration, function expression or arrow.
func (p *printer) function(id ast.FuncID) {
	fn := p.b.Funcs.Get(id)
	if fn == nil {
		return
	}
	w := p.w
	if fn.Async {
		w.WriteString("async ")
	}
	if fn.Arrow {
		p.params(fn.Params)
		w.WriteString(" => ")
		if fn.ExprBody.IsValid() {
			saved := p.noIn
			p.noIn = false
			p.exprParen(fn.ExprBody, precAssign, p.leftmost(fn.ExprBody) == ast.ExprObject)
			p.noIn = saved
			return
		}
		p.funcBody(fn)
		return
	}
	w.WriteString("function")
	if fn.Generator {
		w.WriteString("*")
	}
	w.WriteString(" " + fn.Name)
	p.params(fn.Params)
	w.WriteString(" ")
	p.funcBody(fn)
}

func (p *printer) params(params []ast.PatID) {
	p.w.WriteString("(")
	for i, param := range params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.pat(param)
	}
	p.w.WriteString(")")
}

func (p *printer) funcBody(fn *ast.Func) {
	saved := p.noIn
	p.noIn = false
	p.block(fn.Body)
	p.noIn = saved
}

func (p *printer) prop(id ast.PropID) {
	prop := p.b.Props.Get(id)
	if prop == nil {
		return
	}
	w := p.w
	if prop.Static {
		w.WriteString("static ")
	}
	if prop.IsField() {
		p.propKey(prop.Key, prop.Computed)
		if prop.Value.IsValid() {
			w.WriteString(" = ")
			p.expr(prop.Value, precAssign)
		}
		w.WriteString(";")
		return
	}
	switch {
	case prop.Kind == ast.PropSpread:
		w.WriteString("...")
		p.expr(prop.Value, precAssign)
		return
	case prop.Shorthand:
		p.expr(prop.Value, precAssign)
		return
	}

	if prop.Kind == ast.PropInit && !prop.Method {
		p.propKey(prop.Key, prop.Computed)
		w.WriteString(": ")
		p.expr(prop.Value, precAssign)
		return
	}

	// getters, setters and methods share the function's params and body
	data, _ := p.b.Exprs.Func(prop.Value)
	fn := p.b.Funcs.Get(data.Func)
	switch prop.Kind {
	case ast.PropGet:
		w.WriteString("get ")
	case ast.PropSet:
		w.WriteString("set ")
	}
	if fn.Async {
		w.WriteString("async ")
	}
	if fn.Generator {
		w.WriteString("*")
	}
	p.propKey(prop.Key, prop.Computed)
	p.params(fn.Params)
	w.WriteString(" ")
	p.funcBody(fn)
}

func (p *printer) propKey(key ast.ExprID, computed bool) {
	if computed {
		p.w.WriteString("[")
		p.expr(key, precAssign)
		p.w.WriteString("]")
		return
	}
	p.expr(key, precPrimary)
}

func (p *printer) pat(id ast.PatID) {
	pat := p.b.Pats.Get(id)
	if pat == nil {
		return
	}
	w := p.w
	switch pat.Kind {
	case ast.PatIdent:
		data, _ := p.b.Pats.Ident(id)
		w.WriteString(data.Name)

	case ast.PatArray:
		data, _ := p.b.Pats.Array(id)
		w.WriteString("[")
		for i, el := range data.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			if el.IsValid() {
				p.pat(el)
			}
		}
		if n := len(data.Elems); n > 0 && !data.Elems[n-1].IsValid() {
			w.WriteString(",")
		}
		w.WriteString("]")

	case ast.PatObject:
		data, _ := p.b.Pats.Object(id)
		w.WriteString("{")
		for i, prop := range data.Props {
			if i > 0 {
				w.WriteString(", ")
			}
			if prop.Shorthand || !prop.Key.IsValid() {
				p.pat(prop.Value)
				continue
			}
			p.propKey(prop.Key, prop.Computed)
			w.WriteString(": ")
			p.pat(prop.Value)
		}
		w.WriteString("}")

	case ast.PatAssign:
		data, _ := p.b.Pats.Assign(id)
		p.pat(data.Target)
		w.WriteString(" = ")
		p.expr(data.Default, precAssign)

	case ast.PatRest:
		data, _ := p.b.Pats.Rest(id)
		w.WriteString("...")
		p.pat(data.Arg)

	case ast.PatExpr:
		data, _ := p.b.Pats.Expr(id)
		p.expr(data.Expr, precCall)
	}
}
