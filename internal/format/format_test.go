package format_test

import (
	"testing"

	"deob/internal/ast"
	"deob/internal/diag"
	"deob/internal/format"
	"deob/internal/lexer"
	"deob/internal/parser"
	"deob/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte(src))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: &diag.BagReporter{Bag: bag}, MaxErrors: 32})
	if bag.Len() > 0 {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("parse failed for:\n%s", src)
	}
	return b, res.File
}

func printSource(t *testing.T, src string) string {
	t.Helper()
	b, file := parse(t, src)
	return string(format.Program(b, file, format.Options{}))
}

func TestPrintExact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"var", "var   a=1,b", "var a = 1, b;\n"},
		{"binary_parens_kept", "x=(a+b)*c", "x = (a + b) * c;\n"},
		{"redundant_parens_dropped", "x=(a*b)+c", "x = a * b + c;\n"},
		{"right_operand_same_prec", "x=a-(b-c)", "x = a - (b - c);\n"},
		{"exponent", "x=(-a)**b**c", "x = (-a) ** b ** c;\n"},
		{"nullish_mixing", "x=(a||b)??c", "x = (a || b) ?? c;\n"},
		{"unary_same_sign", "x=- -a, y=+ +b, z=-(-c)", "x = - -a, y = + +b, z = - -c;\n"},
		{"typeof", "typeof(a)", "typeof a;\n"},
		{"object_statement", "({a:1}).a", "({a: 1}.a);\n"},
		{"function_expr_statement", "(function(){})()", "(function () {}());\n"},
		{"object_pattern_assign", "({a,b}=o)", "({a, b} = o);\n"},
		{"arrow_object_body", "f=()=>({})", "f = () => ({});\n"},
		{"arrow_param_parens", "f=x=>x", "f = (x) => x;\n"},
		{"new_with_call_callee", "new (f())()", "new (f())();\n"},
		{"new_without_args", "new A", "new A();\n"},
		{"int_member", "(1).toString()", "(1).toString();\n"},
		{"array_holes", "x=[,a,,]", "x = [, a, ,];\n"},
		{"template", "x=`a${b}c`", "x = `a${b}c`;\n"},
		{"optional_chain", "a?.b?.[c]?.(d)", "a?.b?.[c]?.(d);\n"},
		{"seq_in_args", "f((a,b))", "f((a, b));\n"},
		{"cond", "x=a?b:c?d:e", "x = a ? b : c ? d : e;\n"},
		{"cond_test_assign", "x=(a=b)?c:d", "x = (a = b) ? c : d;\n"},
		{"for_init_in", "for(var i=(a in b);;);", "for (var i = (a in b);;)\n  ;\n"},
		{"if_else", "if(a)b();else{c()}", "if (a)\n  b();\nelse {\n  c();\n}\n"},
		{"dangling_else", "if(a){if(b)c()}else d()", "if (a) {\n  if (b)\n    c();\n} else\n  d();\n"},
		{"empty_block", "function f(){}", "function f() {}\n"},
		{"return_nested", "function f(a){return a+1}", "function f(a) {\n  return a + 1;\n}\n"},
		{"switch", "switch(x){case 1:a();break;default:}", "switch (x) {\n  case 1:\n    a();\n    break;\n  default:\n}\n"},
		{"try", "try{a()}catch(e){}finally{b()}", "try {\n  a();\n} catch (e) {} finally {\n  b();\n}\n"},
		{"do_while", "do x++;while(x<3)", "do\n  x++;\nwhile (x < 3);\n"},
		{"labeled", "l:for(;;)break l", "l: for (;;)\n  break l;\n"},
		{"methods", "o={get a(){return 1},b(){},async *c(){},...d}", "o = {get a() {\n  return 1;\n}, b() {}, async *c() {}, ...d};\n"},
		{"yield", "function*g(){yield;yield*h()}", "function* g() {\n  yield;\n  yield* h();\n}\n"},
		{"await", "async function f(){await(a+b)}", "async function f() {\n  await (a + b);\n}\n"},
		{"class", "class A extends B{constructor(){super()}static #n=1;get x(){return this.#n}y;[k]=v}",
			"class A extends B {\n  constructor() {\n    super();\n  }\n  static #n = 1;\n  get x() {\n    return this.#n;\n  }\n  y;\n  [k] = v;\n}\n"},
		{"class_expr_statement", "(class{})", "(class {});\n"},
		{"class_expr_named", "x=class A{}", "x = class A {};\n"},
		{"extends_parens", "class A extends(B,C){}", "class A extends (B, C) {}\n"},
		{"imports", "import d,{a,b as c}from'm';import*as ns from'n';import'p'",
			"import d, {a, b as c} from 'm';\nimport * as ns from 'n';\nimport 'p';\n"},
		{"exports", "export{a,b as c};export*from'm';export*as ns from'm';export const d=1",
			"export {a, b as c};\nexport * from 'm';\nexport * as ns from 'm';\nexport const d = 1;\n"},
		{"export_default_function_expr", "export default(function(){})", "export default (function () {});\n"},
		{"export_default_class", "export default class{}", "export default class {}\n"},
		{"export_default_object", "export default{a:1}", "export default {a: 1};\n"},
		{"dynamic_import", "x=import('m')", "x = import('m');\n"},
		{"new_dynamic_import", "new(import('m'))", "new (import('m'))();\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printSource(t, tt.in); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

// Printing a program and printing the reparsed output must agree.
func TestPrintIsStable(t *testing.T) {
	inputs := []string{
		"var a = 1; let {b, c: [d, , e = 2], ...f} = g; const h = (i, ...j) => i + j.length;",
		"for (const k in o) if (o[k]) delete o[k]; for (x of y) { continue; }",
		"label: while (true) { if (a) break label; else if (b) continue; else c(); }",
		"x = a ? b ? c : d : e; y = (a, b); z = a ?? (b || c);",
		"f(...args, `t${1 + 2}`, tag`x${y}`, /re[/]g/.test(s));",
		"new a.b.C(1); new (a().b)(); (async () => { await x; })();",
		"try { throw new Error('x'); } catch ({message}) { log(message); }",
		"o = {'a-b': 1, 2: 3, [k]: v, set x(v) { this._x = v; }};",
		"do { i--; } while (i > 0); ;debugger;",
		"a = b = c; a += b -= 1; a **= 2; a ??= b; a ||= c; a &&= d;",
		"x = -(-1); y = +(+a); z = !(!b); w = typeof typeof c; v = void 0;",
		"class A extends B { static async *m() { yield super.m(); } get; static = 1; #p; }",
		"import x, * as y from 'm'; export {x as default, y} from 'm'; export default async function () {}",
	}
	for _, src := range inputs {
		first := printSource(t, src)
		second := printSource(t, first)
		if first != second {
			t.Errorf("unstable output for %q:\nfirst:\n%s\nsecond:\n%s", src, first, second)
		}
	}
}

func TestIndentOptions(t *testing.T) {
	b, file := parse(t, "if (a) { b(); }")
	got := string(format.Program(b, file, format.Options{UseTabs: true}))
	if want := "if (a) {\n\tb();\n}\n"; got != want {
		t.Errorf("tabs: got %q, want %q", got, want)
	}
	got = string(format.Program(b, file, format.Options{IndentWidth: 4}))
	if want := "if (a) {\n    b();\n}\n"; got != want {
		t.Errorf("width 4: got %q, want %q", got, want)
	}
}

func TestNodeAndExpr(t *testing.T) {
	b, file := parse(t, "const a = f(1) + g(2);")
	st := b.Files.Get(file).Body[0]
	v, _ := b.Stmts.Var(st)
	decl := b.Decls.Get(v.Decls[0])

	if got := format.Expr(b, decl.Init); got != "f(1) + g(2)" {
		t.Errorf("Expr: got %q", got)
	}
	if got := format.Node(b, ast.DeclSel(v.Decls[0])); got != "a = f(1) + g(2)" {
		t.Errorf("Node(decl): got %q", got)
	}
	if got := format.Stmt(b, st, format.Options{}); got != "const a = f(1) + g(2);" {
		t.Errorf("Stmt: got %q", got)
	}
	if got := format.Node(b, ast.PatSel(decl.Target)); got != "a" {
		t.Errorf("Node(pat): got %q", got)
	}
}

func TestNodeSpec(t *testing.T) {
	b, file := parse(t, "import d, {a as b} from 'm'; export {b as 'c'};")
	body := b.Files.Get(file).Body
	imp, _ := b.Stmts.Module(body[0])
	exp, _ := b.Stmts.Module(body[1])

	tests := []struct {
		spec ast.SpecID
		want string
	}{
		{imp.Specs[0], "d"},
		{imp.Specs[1], "a as b"},
		{exp.Specs[0], "b as 'c'"},
	}
	for _, tt := range tests {
		if got := format.Node(b, ast.SpecSel(tt.spec)); got != tt.want {
			t.Errorf("Node(spec): got %q, want %q", got, tt.want)
		}
	}
}
