package selector

import (
	"deob/internal/ast"
)

var attrReaders = map[string]func(b *ast.Builder, s ast.Selectable) (string, bool){
	"kind":  nodeKindAttr,
	"op":    nodeOpAttr,
	"name":  nodeNameAttr,
	"value": nodeValueAttr,
}

// Attr returns a predicate comparing one node attribute against value:
//
//	kind   literal kind (number, string, boolean, null, regex), declaration
//	       kind (var, let, const), property kind (init, get, set, spread)
//	       or method kind (constructor, method, get, set)
//	op     operator of unary, update, binary, logical and assignment nodes
//	name   identifier, private name, function, class and label names
//	value  literal text, with string quotes removed
//
// Nodes without the attribute never match. ok is false for unknown attrs.
func Attr(attr, value string) (pred Pred, ok bool) {
	read, ok := attrReaders[attr]
	if !ok {
		return nil, false
	}
	return Where(func(b *ast.Builder, s ast.Selectable) bool {
		got, has := read(b, s)
		return has && got == value
	}), true
}

func nodeKindAttr(b *ast.Builder, s ast.Selectable) (string, bool) {
	switch s.Kind {
	case ast.SelExpr:
		id, _ := s.Expr()
		if lit, ok := b.Exprs.Lit(id); ok {
			return lit.Kind.String(), true
		}
	case ast.SelStmt:
		id, _ := s.Stmt()
		if v, ok := b.Stmts.Var(id); ok {
			return v.Kind.String(), true
		}
	case ast.SelProp:
		id, _ := s.Prop()
		if p := b.Props.Get(id); p != nil {
			if p.ClassMember {
				return methodKind(b, p)
			}
			return propKindNames[p.Kind], true
		}
	}
	return "", false
}

var propKindNames = map[ast.PropKind]string{
	ast.PropInit:   "init",
	ast.PropGet:    "get",
	ast.PropSet:    "set",
	ast.PropSpread: "spread",
}

// methodKind names the kind of a class method; fields have none.
func methodKind(b *ast.Builder, p *ast.Prop) (string, bool) {
	switch {
	case p.IsField():
		return "", false
	case p.Kind != ast.PropInit:
		return propKindNames[p.Kind], true
	}
	if key, ok := b.Exprs.Ident(p.Key); ok && !p.Computed && !p.Static && key.Name == "constructor" {
		return "constructor", true
	}
	return "method", true
}

func nodeOpAttr(b *ast.Builder, s ast.Selectable) (string, bool) {
	id, ok := s.Expr()
	if !ok {
		return "", false
	}
	if d, ok := b.Exprs.Unary(id); ok {
		return d.Op.String(), true
	}
	if d, ok := b.Exprs.Update(id); ok {
		return d.Op.String(), true
	}
	if d, ok := b.Exprs.Binary(id); ok {
		return d.Op.String(), true
	}
	if d, ok := b.Exprs.Assign(id); ok {
		return d.Op.String(), true
	}
	return "", false
}

func nodeNameAttr(b *ast.Builder, s ast.Selectable) (string, bool) {
	switch s.Kind {
	case ast.SelExpr:
		id, _ := s.Expr()
		if d, ok := b.Exprs.Ident(id); ok {
			return d.Name, true
		}
		if d, ok := b.Exprs.Func(id); ok {
			return funcName(b, d.Func)
		}
		if d, ok := b.Exprs.Private(id); ok {
			return d.Name, true
		}
		if d, ok := b.Exprs.Class(id); ok {
			return className(b, d.Class)
		}
	case ast.SelPat:
		id, _ := s.Pat()
		if d, ok := b.Pats.Ident(id); ok {
			return d.Name, true
		}
	case ast.SelStmt:
		id, _ := s.Stmt()
		if d, ok := b.Stmts.Func(id); ok {
			return funcName(b, d.Func)
		}
		if d, ok := b.Stmts.Labeled(id); ok {
			return d.Label, true
		}
		if d, ok := b.Stmts.Class(id); ok {
			return className(b, d.Class)
		}
	case ast.SelFunc:
		id, _ := s.Func()
		return funcName(b, id)
	}
	return "", false
}

func funcName(b *ast.Builder, id ast.FuncID) (string, bool) {
	fn := b.Funcs.Get(id)
	if fn == nil || fn.Name == "" {
		return "", false
	}
	return fn.Name, true
}

func className(b *ast.Builder, id ast.ClassID) (string, bool) {
	cls := b.Classes.Get(id)
	if cls == nil || cls.Name == "" {
		return "", false
	}
	return cls.Name, true
}

func nodeValueAttr(b *ast.Builder, s ast.Selectable) (string, bool) {
	id, ok := s.Expr()
	if !ok {
		return "", false
	}
	lit, ok := b.Exprs.Lit(id)
	if !ok {
		return "", false
	}
	if lit.Kind == ast.LitString && len(lit.Raw) >= 2 {
		return lit.Raw[1 : len(lit.Raw)-1], true
	}
	return lit.Raw, true
}

// AttrValue is one attribute a node carries.
type AttrValue struct {
	Name  string
	Value string
}

// Attrs returns the attributes s carries, in the order kind, op, name, value.
func Attrs(b *ast.Builder, s ast.Selectable) []AttrValue {
	var out []AttrValue
	for _, name := range []string{"kind", "op", "name", "value"} {
		if v, ok := attrReaders[name](b, s); ok {
			out = append(out, AttrValue{Name: name, Value: v})
		}
	}
	return out
}
