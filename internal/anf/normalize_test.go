package anf_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"deob/internal/anf"
	"deob/internal/ast"
	"deob/internal/format"
	"deob/internal/names"
	"deob/internal/selector"
	"deob/internal/testkit"
)

func TestNormalizeExact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"call_args_in_order", "f(g(), h());", "const _t0 = f;\nconst _t1 = g();\nconst _t2 = h();\n_t0(_t1, _t2);\n"},
		{"read_before_later_update", "f(x, x++);", "const _t0 = f;\nconst _t1 = x;\nconst _t2 = x++;\n_t0(_t1, _t2);\n"},
		{"element_before_later_assign", "y = [a, a = g()];", "const _t0 = a;\nconst _t1 = a = g();\ny = [_t0, _t1];\n"},
		{"method_object_before_assign", "o.m(o = p);", "const _t0 = o;\nconst _t1 = o = p;\n_t0.m(_t1);\n"},
		{"stable_operands_inline", "f(1, this, -2, () => x, g());", "const _t0 = f;\nconst _t1 = g();\n_t0(1, this, -2, () => x, _t1);\n"},
		{"temp_operand_inline", "f(a && b, g());", "const _t0 = f;\nlet _t1 = a;\nif (_t1) {\n  _t1 = b;\n}\nconst _t2 = g();\n_t0(_t1, _t2);\n"},
		{"no_effects_no_binding", "f(x, y.z);", "f(x, y.z);\n"},
		{"and_statement", "a() && b();", "let _t0 = a();\nif (_t0) {\n  _t0 = b();\n}\n"},
		{"or_assign", "x = a || b;", "let _t0 = a;\nif (!_t0) {\n  _t0 = b;\n}\nx = _t0;\n"},
		{"nullish_assign", "x = a ?? b;", "let _t0 = a;\nif (_t0 == null) {\n  _t0 = b;\n}\nx = _t0;\n"},
		{"binary_right_first", "const a = f(1) + g(2);", "const _t0 = g(2);\nconst _t1 = f(1);\nconst a = _t1 + _t0;\n"},
		{
			"object_with_hoisting_property",
			"x = {a: 1, b: c && d};",
			"let _t1 = {};\n_t1 = {..._t1, a: 1};\nlet _t0 = c;\nif (_t0) {\n  _t0 = d;\n}\n_t1 = {..._t1, b: _t0};\nx = _t1;\n",
		},
		{"sequence_flush", "(a(), b, c());", "a();\nc();\n"},
		{
			"cond_with_lines",
			"x = c ? a && b : d;",
			"let _t1;\nif (c) {\n  let _t0 = a;\n  if (_t0) {\n    _t0 = b;\n  }\n  _t1 = _t0;\n} else {\n  _t1 = d;\n}\nx = _t1;\n",
		},
		{"member_parts", "x = g().y[h()];", "const _t0 = g();\nconst _t1 = _t0.y;\nconst _t2 = h();\nx = _t1[_t2];\n"},
		{"method_callee_keeps_this", "o.m(f());", "const _t0 = o;\nconst _t1 = f();\n_t0.m(_t1);\n"},
		{"computed_method_callee", "o[k](f());", "const _t0 = o;\nconst _t1 = k;\nconst _t2 = f();\n_t0[_t1](_t2);\n"},
		{"this_method_callee", "this.m(f());", "const _t0 = f();\nthis.m(_t0);\n"},
		{"sequence_callee", "(0, o.m)(f());", "const _t0 = o.m;\nconst _t1 = f();\n_t0(_t1);\n"},
		{"sequence_callee_no_effects", "(0, o.m)(x);", "(0, o.m)(x);\n"},
		{
			"function_body",
			"function f() { return a() + b(); }",
			"function f() {\n  const _t0 = b();\n  const _t1 = a();\n  return _t1 + _t0;\n}\n",
		},
		{
			"arrow_concise_body",
			"f = () => a() + b();",
			"f = () => {\n  const _t0 = b();\n  const _t1 = a();\n  return _t1 + _t0;\n};\n",
		},
		{
			"class_method_bodies",
			"class A extends B { constructor() { super(f(), g()); } m() { return this.x + h(); } }",
			"class A extends B {\n  constructor() {\n    const _t0 = f();\n    const _t1 = g();\n    super(_t0, _t1);\n  }\n  m() {\n    const _t2 = h();\n    return this.x + _t2;\n  }\n}\n",
		},
		{"class_fields_kept", "class A { [f()] = g(); static x = h(i()); }", "class A {\n  [f()] = g();\n  static x = h(i());\n}\n"},
		{
			"super_member_callee",
			"class A extends B { m() { super.m(f()); return super.x; } }",
			"class A extends B {\n  m() {\n    const _t0 = f();\n    super.m(_t0);\n    return super.x;\n  }\n}\n",
		},
		{
			"class_expr_operand",
			"f(class { m() { return g(h()); } }, k());",
			"const _t0 = f;\nconst _t3 = class {\n  m() {\n    const _t1 = g;\n    const _t2 = h();\n    return _t1(_t2);\n  }\n};\nconst _t4 = k();\n_t0(_t3, _t4);\n",
		},
		{"export_declarators_split", "export const a = f(g()), b = 1;", "const _t0 = f;\nconst _t1 = g();\nexport const a = _t0(_t1);\nexport const b = 1;\n"},
		{"export_default_value", "export default f(g());", "const _t0 = f;\nconst _t1 = g();\nexport default _t0(_t1);\n"},
		{
			"export_function_body",
			"export function f() { return g(h()); }",
			"export function f() {\n  const _t0 = g;\n  const _t1 = h();\n  return _t0(_t1);\n}\n",
		},
		{
			"module_lists_kept",
			"import a, {b as c} from 'm'; export {a, c as d}; export * from 'n';",
			"import a, {b as c} from 'm';\nexport {a, c as d};\nexport * from 'n';\n",
		},
		{"dynamic_import_arg", "x = import(f());", "const _t0 = f();\nx = import(_t0);\n"},
		{"dynamic_import_is_effect", "f(x, import('m'));", "const _t0 = f;\nconst _t1 = x;\nconst _t2 = import('m');\n_t0(_t1, _t2);\n"},
		{
			"while_test_lowered",
			"while (a() && b()) g();",
			"while (true) {\n  let _t0 = a();\n  if (_t0) {\n    _t0 = b();\n  }\n  if (!_t0) {\n    break;\n  }\n  g();\n}\n",
		},
		{
			"for_test_lowered",
			"for (let i = 0; i < f(); i++) g(i);",
			"for (let i = 0;; i++) {\n  const _t0 = f();\n  if (!(i < _t0)) {\n    break;\n  }\n  g(i);\n}\n",
		},
		{
			"for_declarators_stay_together",
			"for (let i = 0, n = 3; i < n; i++) fs.push(() => i);",
			"for (let i = 0, n = 3; i < n; i++) {\n  fs.push(() => i);\n}\n",
		},
		{
			"for_first_init_hoists",
			"for (let i = f(g()), n = 3; i < n; i++) h(i);",
			"{\n  const _t0 = f;\n  const _t1 = g();\n  for (let i = _t0(_t1), n = 3; i < n; i++) {\n    h(i);\n  }\n}\n",
		},
		{
			"for_later_init_kept",
			"for (let i = 0, n = f(g()); i < n; i++) h(i);",
			"for (let i = 0, n = f(g()); i < n; i++) {\n  h(i);\n}\n",
		},
		{
			"for_update_kept",
			"for (;; i = f(g())) h();",
			"for (;; i = f(g())) {\n  h();\n}\n",
		},
		{
			"do_while_test_kept",
			"do x(); while (f(g()));",
			"do {\n  x();\n} while (f(g()));\n",
		},
		{
			"labeled_loop",
			"l: while (a() && b()) continue l;",
			"l: while (true) {\n  let _t0 = a();\n  if (_t0) {\n    _t0 = b();\n  }\n  if (!_t0) {\n    break;\n  }\n  continue l;\n}\n",
		},
		{"var_split", "var a = 1, b = f(g());", "var a = 1;\nconst _t0 = f;\nconst _t1 = g();\nvar b = _t0(_t1);\n"},
		{"bare_ident_dropped", "a;\nf();", "f();\n"},
		{"return_hoists", "function f() { return g(h()); }", "function f() {\n  const _t0 = g;\n  const _t1 = h();\n  return _t0(_t1);\n}\n"},
		{"if_test_hoists", "if (f(g())) x();", "const _t0 = f;\nconst _t1 = g();\nif (_t0(_t1)) {\n  x();\n}\n"},
		{"else_if_flat", "if (a) b(); else if (c) d();", "if (a) {\n  b();\n} else if (c) {\n  d();\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(t, tt.in); got != tt.want {
				t.Errorf("normalize(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnchanged(t *testing.T) {
	inputs := []string{
		"x = {};\n",
		"x = {a: f()};\n",
		"x = c ? f() : g();\n",
		"x = f(1);\n",
		"a?.b(f());\n",
		"x ??= f();\n",
		"delete o[k];\n",
		"x = [1, , y];\n",
	}
	for _, in := range inputs {
		if got := normalize(t, in); got != in {
			t.Errorf("normalize(%q) = %q, want input unchanged", in, got)
		}
	}
}

// The right side of a logical operator may only run inside the guard.
func TestNormalizeShortCircuit(t *testing.T) {
	for _, src := range []string{
		"x = a() && b();",
		"x = a() || b() || c();",
		"x = a() ?? f(b());",
		"if (a() && b(c())) d();",
	} {
		out := normalize(t, src)
		b, file := parse(t, out)
		root := ast.ProgramSel(file)
		guarded := calleeNames(t, b, root, "IfStatement CallExpression")
		for _, name := range calleeNames(t, b, root, "CallExpression") {
			if name == "a" || name == "d" {
				continue
			}
			if !slices.Contains(guarded, name) {
				t.Errorf("%q: call to %s escapes its guard:\n%s", src, name, out)
			}
		}
	}
}

func TestNormalizeFixedPoint(t *testing.T) {
	corpus := []string{
		"f(g(), h());",
		"a() && b();",
		"x = a || b;",
		"const a = f(1) + g(2);",
		"x = {a: 1, b: c && d};",
		"(a(), b, c());",
		"x = c ? a && b : d;",
		"x = g().y[h()];",
		"(0, o.m)(f());",
		"f = () => a() + b();",
		"while (a() && b()) g();",
		"for (let i = 0; i < f(); i++) g(i);",
		"for (let i = f(g()), n = 3; i < n; i++) h(i);",
		"switch (f()) { case 1: g(h()); break; default: }",
		"try { f(g()); } catch (e) { h(e); } finally { k(); }",
		"for (const k of f(g())) h(k);",
		"class A extends B { constructor() { super(f(), g()); } }",
		"f(class { m() { return g(h()); } }, k());",
		"export const a = f(g()), b = 1;",
		"export default f(g());",
	}
	for _, src := range corpus {
		once := normalize(t, src)
		twice := normalize(t, once)
		if once != twice {
			t.Errorf("%q is not a fixed point:\nfirst:\n%s\nsecond:\n%s", src, once, twice)
		}
	}
}

func TestNormalizeEvaluationOrder(t *testing.T) {
	out := normalize(t, "x = f(a(), b()) + g(c());")
	want := []string{"c()", "a()", "b()"}
	last := -1
	for _, call := range want {
		i := strings.Index(out, call)
		if i < 0 {
			t.Fatalf("%s missing from:\n%s", call, out)
		}
		if i < last {
			t.Fatalf("%s hoisted out of order:\n%s", call, out)
		}
		last = i
	}
}

func TestNormalizePoolExhausted(t *testing.T) {
	b, file := parse(t, "f(g(), h());")
	n := anf.New(b, names.Sequence("_t", 1))
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var exhausted *anf.ExhaustedError
		if !errors.As(err, &exhausted) {
			t.Fatalf("recovered %T, want *anf.ExhaustedError", r)
		}
		if exhausted.Issued != 1 {
			t.Fatalf("Issued = %d, want 1", exhausted.Issued)
		}
	}()
	n.Program(file)
	t.Fatal("expected a panic")
}

func TestNormalizeReservedNames(t *testing.T) {
	b, file := parse(t, "_t0 = 1; f(g());")
	pool := names.Sequence("_t", 0)
	names.Reserve(pool, "_t0")
	n := anf.New(b, pool)
	out := string(format.Program(b, n.Finalize(n.Program(file)), format.Options{}))
	want := "_t0 = 1;\nconst _t1 = f;\nconst _t2 = g();\n_t1(_t2);\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
	if n.Temps() != 2 {
		t.Fatalf("Temps() = %d, want 2", n.Temps())
	}
}

func TestExprAlwaysHasValue(t *testing.T) {
	for _, src := range []string{"a", "a() && b()", "(f(), g())", "x = f()", "[...a]"} {
		b, file := parse(t, src)
		n := anf.New(b, names.Sequence("_t", 0))
		if blk := n.Expr(firstExpr(t, b, file)); !blk.Value.IsValid() {
			t.Errorf("Expr(%q) has no value", src)
		}
	}
}

func calleeNames(t *testing.T, b *ast.Builder, root ast.Selectable, query string) []string {
	t.Helper()
	q, err := selector.ParseQuery(query)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", query, err)
	}
	var out []string
	for _, s := range selector.NewEngine(b, selector.Options{}).FindMatches(q, root) {
		id, _ := s.Expr()
		call, ok := b.Exprs.Call(id)
		if !ok {
			continue
		}
		if ident, ok := b.Exprs.Ident(call.Callee); ok {
			out = append(out, ident.Name)
		}
	}
	return out
}

func TestNormalizedShape(t *testing.T) {
	for _, src := range []string{
		"f(g(), h(k()));",
		"x = f(a(), b()) + g(c());",
		"x = g().y[h()];",
		"x = [f(), ...g()];",
		"x = i++ + 1;",
		"if (a(b())) { c(d()); } else if (e()) { f(g()); }",
		"function f() { return [a(), b() && c(d())]; }",
		"while (f(g())) h(k());",
		"new A(f(), g());",
		"class A { [f()] = g(h()); m() { return f(g()); } }",
		"x = class extends B { static m() { return super.m(f(), g()); } };",
		"export default f(g(), import(h()));",
	} {
		out := normalize(t, src)
		b, file := parse(t, out)
		if err := testkit.CheckNormalized(b, file); err != nil {
			t.Errorf("%q: %v\n%s", src, err, out)
		}
	}
}
