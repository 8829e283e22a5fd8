package anf

import (
	"deob/internal/ast"
	"deob/internal/selector"
	"deob/internal/token"
)

func must[T any](data *T, ok bool) *T {
	if !ok {
		panic("anf: node kind does not match its payload")
	}
	return data
}

// hasEffects reports whether evaluating id may run user code or write
// state. Function bodies are not entered. Property reads count as pure.
func (n *Normalizer) hasEffects(id ast.ExprID) bool {
	return n.effectful(ast.ExprSel(id))
}

func (n *Normalizer) effectful(s ast.Selectable) bool {
	switch s.Kind {
	case ast.SelFunc:
		return false
	case ast.SelExpr:
		id, _ := s.Expr()
		e := n.b.Exprs.Get(id)
		if e == nil {
			return false
		}
		switch e.Kind {
		case ast.ExprCall, ast.ExprNew, ast.ExprAssign, ast.ExprUpdate, ast.ExprAwait, ast.ExprYield, ast.ExprImport:
			return true
		case ast.ExprUnary:
			if d, _ := n.b.Exprs.Unary(id); d.Op == token.KwDelete {
				return true
			}
		case ast.ExprTemplate:
			if d, _ := n.b.Exprs.Template(id); d.Tag.IsValid() {
				return true
			}
		}
	}
	for _, child := range selector.Children(n.b, s) {
		if n.effectful(child) {
			return true
		}
	}
	return false
}

// isInert reports values whose evaluation can be skipped outright.
func (n *Normalizer) isInert(id ast.ExprID) bool {
	e := n.b.Exprs.Get(id)
	if e == nil {
		return true
	}
	switch e.Kind {
	case ast.ExprIdent, ast.ExprLit, ast.ExprThis, ast.ExprFunc, ast.ExprArrow:
		return true
	}
	return false
}

// stable reports values that read the same before and after any effect:
// literals, this, super, fresh functions and the normalizer's own
// temporaries, and operators and literals built only from those. Temporaries
// are assigned only by the lines that produce them.
func (n *Normalizer) stable(id ast.ExprID) bool {
	e := n.b.Exprs.Get(id)
	if e == nil {
		return true
	}
	switch e.Kind {
	case ast.ExprLit, ast.ExprThis, ast.ExprSuper, ast.ExprFunc, ast.ExprArrow:
		return true
	case ast.ExprIdent:
		d, _ := n.b.Exprs.Ident(id)
		return n.temps[d.Name]
	case ast.ExprUnary:
		d, _ := n.b.Exprs.Unary(id)
		return d.Op != token.KwDelete && n.stable(d.Arg)
	case ast.ExprArray:
		d, _ := n.b.Exprs.Array(id)
		for _, el := range d.Elems {
			if el.IsValid() && !n.stable(el) {
				return false
			}
		}
		return true
	case ast.ExprObject:
		d, _ := n.b.Exprs.Object(id)
		return len(d.Props) == 0
	case ast.ExprTemplate:
		d, _ := n.b.Exprs.Template(id)
		return !d.Tag.IsValid() && len(d.Exprs) == 0
	}
	return false
}

// optionalChain reports whether id sits in a chain guarded by ?. somewhere
// along its callee/object spine. Such chains evaluate lazily and are left
// alone.
func (n *Normalizer) optionalChain(id ast.ExprID) bool {
	for {
		e := n.b.Exprs.Get(id)
		if e == nil {
			return false
		}
		switch e.Kind {
		case ast.ExprMember:
			d, _ := n.b.Exprs.Member(id)
			if d.Optional {
				return true
			}
			id = d.Object
		case ast.ExprCall:
			d, _ := n.b.Exprs.Call(id)
			if d.Optional {
				return true
			}
			id = d.Callee
		default:
			return false
		}
	}
}
