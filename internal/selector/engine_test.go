package selector_test

import (
	"errors"
	"testing"

	"deob/internal/ast"
	"deob/internal/selector"
)

var numLit = selector.IsLit(ast.LitNumber)

func TestLiteralsUnderProgram(t *testing.T) {
	b, root := parse(t, "console.log(1,2,3); const a = 'x'")
	q := selector.Compile(selector.Is(ast.SelProgram), selector.IsExpr(ast.ExprLit))
	got := labels(b, selector.NewEngine(b, selector.Options{}).FindMatches(q, root))
	want := []string{"1", "2", "3", "'x'"}
	if !equalStrings(got, want) {
		t.Fatalf("matches = %v, want %v", got, want)
	}
}

func TestAdjacentSiblings(t *testing.T) {
	q := selector.Compile(selector.Adjacent(numLit, numLit, numLit))
	tests := []struct {
		src  string
		want []string
	}{
		{"f(1,2,3,4,5)", []string{"3", "4", "5"}},
		{"f(1,2)", nil},
		{"f(1,'a',2,3)", nil},
		{"[1,2,3]", []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, root := parse(t, tt.src)
			got := labels(b, selector.NewEngine(b, selector.Options{}).FindMatches(q, root))
			if !equalStrings(got, tt.want) {
				t.Fatalf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescendantNeedsProperAncestor(t *testing.T) {
	call := selector.IsExpr(ast.ExprCall)
	q := selector.Compile(call, call)
	tests := []struct {
		src  string
		want int
	}{
		{"f()", 0},
		{"f(g())", 1},
		{"a(b(c()))", 2},
		{"a(); b()", 0},
		{"a(function () { b(); c(); })", 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, root := parse(t, tt.src)
			got := selector.NewEngine(b, selector.Options{}).FindMatches(q, root)
			if len(got) != tt.want {
				t.Fatalf("got %d matches, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPredicatesSatisfiedOutermostFirst(t *testing.T) {
	b, root := parse(t, "function f() { if (x) { g(1); } } h(2);")
	q := selector.Compile(
		selector.IsStmt(ast.StmtFunc),
		selector.IsStmt(ast.StmtIf),
		selector.IsExpr(ast.ExprLit),
	)
	got := labels(b, selector.NewEngine(b, selector.Options{}).FindMatches(q, root))
	if !equalStrings(got, []string{"1"}) {
		t.Fatalf("matches = %v", got)
	}

	// reversed order never matches: an if cannot sit above the function here
	q = selector.Compile(
		selector.IsStmt(ast.StmtIf),
		selector.IsStmt(ast.StmtFunc),
		selector.IsExpr(ast.ExprLit),
	)
	if got := selector.NewEngine(b, selector.Options{}).FindMatches(q, root); len(got) != 0 {
		t.Fatalf("reversed chain matched %v", labels(b, got))
	}
}

func TestMatchesArePreOrderAndDeterministic(t *testing.T) {
	src := "var a = [1, {b: 2}]; function f(x = 3) { return x ? y : z; } for (const k in o) { k++; }"
	b, root := parse(t, src)
	q := selector.Compile(selector.Any())
	eng := selector.NewEngine(b, selector.Options{})

	first := eng.FindMatches(q, root)
	want := preorder(b, root)
	if len(first) != len(want) {
		t.Fatalf("got %d nodes, walk has %d", len(first), len(want))
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("node %d = %s, want %s", i, first[i], want[i])
		}
	}
	if first[0] != root {
		t.Fatalf("root not first: %s", first[0])
	}
	if st := eng.Stats(); st.Visited != len(want) {
		t.Fatalf("Visited = %d, want %d", st.Visited, len(want))
	}

	again := eng.FindMatches(q, root)
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("second run differs at %d", i)
		}
	}
}

func TestMemoIsTransparent(t *testing.T) {
	sources := []string{
		"console.log(1,2,3); const a = 'x'",
		"f(1,2,3,4,5); g(h(6, 7), 8)",
		"function f(a, b) { return a + b * 2; } var o = {x: f(1, 2), y: [3, 4]};",
		"while (a) { if (b) { c(1); } else { d(2, 3); } }",
		"try { x(1) } catch (e) { y(e, 2) } finally { z(3) }",
	}
	queries := map[string]selector.Query{
		"program_lit":  selector.Compile(selector.Is(ast.SelProgram), numLit),
		"call_call":    selector.Compile(selector.IsExpr(ast.ExprCall), selector.IsExpr(ast.ExprCall)),
		"stmt_adj":     selector.Compile(selector.Is(ast.SelStmt), selector.Adjacent(numLit, numLit)),
		"three_levels": selector.Compile(selector.Is(ast.SelStmt), selector.IsExpr(ast.ExprCall), numLit),
		"func_ident":   selector.Compile(selector.Is(ast.SelFunc), selector.Type("Identifier")),
	}
	for _, src := range sources {
		b, root := parse(t, src)
		for name, q := range queries {
			memo := selector.NewEngine(b, selector.Options{})
			plain := selector.NewEngine(b, selector.Options{DisableMemo: true})
			got := memo.FindMatches(q, root)
			want := plain.FindMatches(q, root)
			if len(got) != len(want) {
				t.Fatalf("%s on %q: memo %d matches, plain %d", name, src, len(got), len(want))
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("%s on %q: match %d differs", name, src, i)
				}
			}
			if memo.Stats().Evals > plain.Stats().Evals {
				t.Fatalf("%s on %q: memo did more work (%d > %d)", name, src, memo.Stats().Evals, plain.Stats().Evals)
			}
		}
	}
}

func TestEachPredicateRunsOncePerNode(t *testing.T) {
	type key struct {
		pred int
		node ast.Selectable
	}
	counts := make(map[key]int)
	counting := func(i int, p selector.Pred) selector.Pred {
		return func(env *selector.Env, path []ast.Selectable) bool {
			counts[key{i, path[len(path)-1]}]++
			return p(env, path)
		}
	}
	b, root := parse(t, "a(b(c(1, 2)), d(3)); e(f(4))")
	q := selector.Compile(
		counting(0, selector.IsExpr(ast.ExprCall)),
		counting(1, selector.IsExpr(ast.ExprCall)),
		counting(2, numLit),
	)
	got := selector.NewEngine(b, selector.Options{}).FindMatches(q, root)
	if !equalStrings(labels(b, got), []string{"1", "2", "3", "4"}) {
		t.Fatalf("matches = %v", labels(b, got))
	}
	for k, n := range counts {
		if n > 1 {
			t.Errorf("pred %d ran %d times on %s", k.pred, n, k.node)
		}
	}
}

func TestEmptyQuerySelectsNothing(t *testing.T) {
	b, root := parse(t, "a; b; c;")
	if got := selector.NewEngine(b, selector.Options{}).FindMatches(selector.Compile(), root); got != nil {
		t.Fatalf("empty query matched %v", got)
	}
}

func TestMissingSiblingPanics(t *testing.T) {
	b, root := parse(t, "f(1)")
	bogus := func(env *selector.Env, path []ast.Selectable) bool {
		_, ok := env.LeftSibling([]ast.Selectable{path[0], ast.ExprSel(9999)})
		return ok
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var inv *selector.InvariantError
		if !errors.As(err, &inv) {
			t.Fatalf("recovered %T, want *InvariantError", err)
		}
		if inv.Parent != root {
			t.Fatalf("parent = %s, want %s", inv.Parent, root)
		}
	}()
	selector.NewEngine(b, selector.Options{}).FindMatches(selector.Compile(bogus), root)
	t.Fatal("expected panic")
}

func TestFirstChildHasNoLeftSibling(t *testing.T) {
	b, root := parse(t, "f(1)")
	q := selector.Compile(selector.Adjacent(selector.Any(), selector.Is(ast.SelStmt)))
	if got := selector.NewEngine(b, selector.Options{}).FindMatches(q, root); len(got) != 0 {
		t.Fatalf("first statement matched a sibling query: %v", got)
	}
}

func TestCombinators(t *testing.T) {
	b, root := parse(t, "x = 1 + y; z = 'q';")
	ident := selector.Type("Identifier")
	tests := []struct {
		name string
		pred selector.Pred
		want []string
	}{
		{"or", selector.Or(numLit, selector.IsLit(ast.LitString)), []string{"1", "'q'"}},
		{"and_not", selector.And(ident, selector.Not(selector.Is(ast.SelPat))), []string{"y"}},
		{"pattern_idents", selector.IsPat(ast.PatIdent), []string{"x", "z"}},
		{"where", selector.Where(func(b *ast.Builder, s ast.Selectable) bool {
			return b.TypeName(s) == "AssignmentExpression"
		}), []string{"AssignmentExpression", "AssignmentExpression"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(b, selector.NewEngine(b, selector.Options{}).FindMatches(selector.Compile(tt.pred), root))
			if !equalStrings(got, tt.want) {
				t.Fatalf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}
