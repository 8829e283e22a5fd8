package selector

import (
	"fmt"
	"slices"

	"deob/internal/ast"
)

// Pred tests the last element of path. path runs from the query root down to
// the node under test and is only valid for the duration of the call.
type Pred func(env *Env, path []ast.Selectable) bool

// Env is the read-only context predicates see during one FindMatches call.
type Env struct {
	B *ast.Builder

	siblings map[ast.Selectable][]ast.Selectable
}

func newEnv(b *ast.Builder) *Env {
	return &Env{B: b, siblings: make(map[ast.Selectable][]ast.Selectable)}
}

// InvariantError reports a node missing from its parent's child list. It is
// raised with panic because it means the tree and the children table disagree.
type InvariantError struct {
	Parent ast.Selectable
	Node   ast.Selectable
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("selector: %s is not a child of %s", e.Node, e.Parent)
}

// Children returns the cached child list of s.
func (env *Env) Children(s ast.Selectable) []ast.Selectable {
	if kids, ok := env.siblings[s]; ok {
		return kids
	}
	kids := Children(env.B, s)
	env.siblings[s] = kids
	return kids
}

// LeftSibling returns the node immediately before the last element of path
// in its parent's child list. The first child and the root have none.
func (env *Env) LeftSibling(path []ast.Selectable) (ast.Selectable, bool) {
	n := len(path)
	if n < 2 {
		return ast.Selectable{}, false
	}
	parent, node := path[n-2], path[n-1]
	kids := env.Children(parent)
	idx := slices.Index(kids, node)
	if idx < 0 {
		panic(&InvariantError{Parent: parent, Node: node})
	}
	if idx == 0 {
		return ast.Selectable{}, false
	}
	return kids[idx-1], true
}

func last(path []ast.Selectable) ast.Selectable {
	return path[len(path)-1]
}

// Is matches every node of the given arena kind.
func Is(kind ast.SelKind) Pred {
	return func(_ *Env, path []ast.Selectable) bool {
		return last(path).Kind == kind
	}
}

// Any matches every node.
func Any() Pred {
	return func(*Env, []ast.Selectable) bool { return true }
}

// IsStmt matches statements of any of the given kinds.
func IsStmt(kinds ...ast.StmtKind) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		id, ok := last(path).Stmt()
		if !ok {
			return false
		}
		st := env.B.Stmts.Get(id)
		return st != nil && slices.Contains(kinds, st.Kind)
	}
}

// IsExpr matches expressions of any of the given kinds.
func IsExpr(kinds ...ast.ExprKind) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		id, ok := last(path).Expr()
		if !ok {
			return false
		}
		e := env.B.Exprs.Get(id)
		return e != nil && slices.Contains(kinds, e.Kind)
	}
}

// IsPat matches patterns of any of the given kinds.
func IsPat(kinds ...ast.PatKind) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		id, ok := last(path).Pat()
		if !ok {
			return false
		}
		p := env.B.Pats.Get(id)
		return p != nil && slices.Contains(kinds, p.Kind)
	}
}

// IsLit matches literals of the given kind.
func IsLit(kind ast.LitKind) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		id, ok := last(path).Expr()
		if !ok {
			return false
		}
		lit, ok := env.B.Exprs.Lit(id)
		return ok && lit.Kind == kind
	}
}

// Type matches nodes whose ESTree type name is name.
func Type(name string) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		return env.B.TypeName(last(path)) == name
	}
}

// Where lifts a plain node test into a Pred.
func Where(fn func(b *ast.Builder, s ast.Selectable) bool) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		return fn(env.B, last(path))
	}
}

func And(preds ...Pred) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		for _, p := range preds {
			if !p(env, path) {
				return false
			}
		}
		return true
	}
}

func Or(preds ...Pred) Pred {
	return func(env *Env, path []ast.Selectable) bool {
		for _, p := range preds {
			if p(env, path) {
				return true
			}
		}
		return false
	}
}

func Not(p Pred) Pred {
	return func(env *Env, path []ast.Selectable) bool { return !p(env, path) }
}

// Adjacent matches a node satisfying the last predicate whose left siblings,
// read right to left, satisfy the remaining ones in reverse order. With one
// predicate it is that predicate.
func Adjacent(chain ...Pred) Pred {
	switch len(chain) {
	case 0:
		return Any()
	case 1:
		return chain[0]
	}
	self := chain[len(chain)-1]
	rest := Adjacent(chain[:len(chain)-1]...)
	return func(env *Env, path []ast.Selectable) bool {
		if !self(env, path) {
			return false
		}
		sib, ok := env.LeftSibling(path)
		if !ok {
			return false
		}
		n := len(path)
		// full slice expression: the append must not overwrite the caller's path
		shifted := append(path[:n-1:n-1], sib)
		return rest(env, shifted)
	}
}
