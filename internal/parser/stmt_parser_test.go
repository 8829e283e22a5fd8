package parser

import (
	"strings"
	"testing"

	"deob/internal/ast"
	"deob/internal/diag"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []ast.StmtKind
	}{
		{"var", "var a = 1, b;", []ast.StmtKind{ast.StmtVar}},
		{"let_const", "let a; const b = 2;", []ast.StmtKind{ast.StmtVar, ast.StmtVar}},
		{"function", "function f(a, b) { return a + b; }", []ast.StmtKind{ast.StmtFunc}},
		{"async_function", "async function f() { await g(); }", []ast.StmtKind{ast.StmtFunc}},
		{"if_else", "if (a) b(); else c();", []ast.StmtKind{ast.StmtIf}},
		{"for", "for (let i = 0; i < n; i++) {}", []ast.StmtKind{ast.StmtFor}},
		{"for_empty", "for (;;) break;", []ast.StmtKind{ast.StmtFor}},
		{"for_in", "for (const k in o) {}", []ast.StmtKind{ast.StmtForIn}},
		{"for_of", "for (x of xs) {}", []ast.StmtKind{ast.StmtForOf}},
		{"while", "while (a) a--;", []ast.StmtKind{ast.StmtWhile}},
		{"do_while", "do { a++; } while (a < 3)", []ast.StmtKind{ast.StmtDoWhile}},
		{"block", "{ a; b; }", []ast.StmtKind{ast.StmtBlock}},
		{"try", "try { a(); } catch (e) { b(e); } finally { c(); }", []ast.StmtKind{ast.StmtTry}},
		{"optional_catch", "try {} catch {}", []ast.StmtKind{ast.StmtTry}},
		{"switch", "switch (x) { case 1: a(); break; default: b(); }", []ast.StmtKind{ast.StmtSwitch}},
		{"throw", "throw new Error('x');", []ast.StmtKind{ast.StmtThrow}},
		{"labeled", "outer: for (;;) { continue outer; }", []ast.StmtKind{ast.StmtLabeled}},
		{"empty_debugger", "; debugger;", []ast.StmtKind{ast.StmtEmpty, ast.StmtDebugger}},
		{"asi", "a\nb\n", []ast.StmtKind{ast.StmtExpr, ast.StmtExpr}},
		{"class", "class A extends B { constructor() { super(); } }", []ast.StmtKind{ast.StmtClass}},
		{"import", "import d, {a, b as c} from 'm';", []ast.StmtKind{ast.StmtImport}},
		{"import_bare", "import 'side-effect';", []ast.StmtKind{ast.StmtImport}},
		{"export_decl", "export const x = 1;", []ast.StmtKind{ast.StmtExportNamed}},
		{"export_list", "export {x as y, z};", []ast.StmtKind{ast.StmtExportNamed}},
		{"export_default", "export default function () {}", []ast.StmtKind{ast.StmtExportDefault}},
		{"export_all", "export * as ns from 'm';", []ast.StmtKind{ast.StmtExportAll}},
		{"import_call", "import('m');", []ast.StmtKind{ast.StmtExpr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, body := mustParse(t, tt.input)
			if len(body) != len(tt.kinds) {
				t.Fatalf("got %d statements, want %d", len(body), len(tt.kinds))
			}
			for i, id := range body {
				if got := b.Stmts.Get(id).Kind; got != tt.kinds[i] {
					t.Errorf("statement %d: got %s, want %s", i, got, tt.kinds[i])
				}
			}
		})
	}
}

func TestReturnRestrictedProduction(t *testing.T) {
	b, body := mustParse(t, "function f() { return\n1; }")
	fnData, _ := b.Stmts.Func(body[0])
	fn := b.Funcs.Get(fnData.Func)
	if len(fn.Body) != 2 {
		t.Fatalf("expected return and expression statement, got %d statements", len(fn.Body))
	}
	ret, ok := b.Stmts.Arg(fn.Body[0])
	if !ok || b.Stmts.Get(fn.Body[0]).Kind != ast.StmtReturn {
		t.Fatal("expected return statement first")
	}
	if ret.Arg.IsValid() {
		t.Error("return followed by a newline must not take an argument")
	}
}

func TestDanglingElseBindsInnermost(t *testing.T) {
	b, body := mustParse(t, "if (a) if (b) x(); else y();")
	outer, _ := b.Stmts.If(body[0])
	if outer.Alt.IsValid() {
		t.Fatal("else attached to the outer if")
	}
	inner, ok := b.Stmts.If(outer.Cons)
	if !ok || !inner.Alt.IsValid() {
		t.Fatal("else should belong to the inner if")
	}
}

func TestForInitExpressionKeepsIn(t *testing.T) {
	b, body := mustParse(t, "for (var i = (a in b); i; ) {}")
	loop, ok := b.Stmts.For(body[0])
	if !ok {
		t.Fatal("expected for statement")
	}
	v, _ := b.Stmts.Var(loop.Init)
	init := b.Decls.Get(v.Decls[0]).Init
	bin, ok := b.Exprs.Binary(init)
	if !ok || bin.Op.String() != "in" {
		t.Fatalf("expected parenthesized `in` initializer, got %s", b.Exprs.Get(init).Kind)
	}
	if loop.Update.IsValid() {
		t.Error("update should be empty")
	}
}

func TestVariableDestructuring(t *testing.T) {
	b, body := mustParse(t, "const {a, b: [c, , d = 1], ...rest} = obj;")
	v, _ := b.Stmts.Var(body[0])
	if v.Kind != ast.VarConst || len(v.Decls) != 1 {
		t.Fatalf("unexpected declaration: kind %s, %d decls", v.Kind, len(v.Decls))
	}
	obj, ok := b.Pats.Object(b.Decls.Get(v.Decls[0]).Target)
	if !ok {
		t.Fatal("expected object pattern")
	}
	if len(obj.Props) != 3 {
		t.Fatalf("got %d pattern props, want 3", len(obj.Props))
	}
	if !obj.Props[0].Shorthand {
		t.Error("first prop should be shorthand")
	}
	arr, ok := b.Pats.Array(obj.Props[1].Value)
	if !ok || len(arr.Elems) != 3 || arr.Elems[1].IsValid() {
		t.Fatal("expected [c, , d = 1] with a hole")
	}
	if b.Pats.Get(arr.Elems[2]).Kind != ast.PatAssign {
		t.Error("expected default on d")
	}
	if b.Pats.Get(obj.Props[2].Value).Kind != ast.PatRest {
		t.Error("expected rest element last")
	}
}

func TestSwitchCases(t *testing.T) {
	b, body := mustParse(t, "switch (x) { case 1: case 2: a(); break; default: }")
	sw, _ := b.Stmts.Switch(body[0])
	if len(sw.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(sw.Cases))
	}
	if n := len(b.Cases.Get(sw.Cases[0]).Body); n != 0 {
		t.Errorf("fallthrough case has %d statements", n)
	}
	if n := len(b.Cases.Get(sw.Cases[1]).Body); n != 2 {
		t.Errorf("second case has %d statements, want 2", n)
	}
	if b.Cases.Get(sw.Cases[2]).Test.IsValid() {
		t.Error("default case must have no test")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"const_without_init", "const a;", diag.SynMissingInitializer},
		{"pattern_without_init", "let [a];", diag.SynMissingInitializer},
		{"cover_init_outside_pattern", "({a = 1});", diag.SynInvalidAssignTarget},
		{"literal_target", "1 = 2;", diag.SynInvalidAssignTarget},
		{"call_compound_target", "f() += 1;", diag.SynInvalidAssignTarget},
		{"class_without_name", "class {}", diag.SynExpectIdentifier},
		{"nested_import", "function f() { import x from 'y'; }", diag.SynUnsupported},
		{"nested_export", "{ export const a = 1; }", diag.SynUnsupported},
		{"import_keyword_binding", "import {a as if} from 'm';", diag.SynExpectIdentifier},
		{"import_without_from", "import {a} 'm';", diag.SynUnexpectedToken},
		{"static_block", "class A { static { init(); } }", diag.SynUnsupported},
		{"bare_super", "class A extends B { m() { return super; } }", diag.SynUnexpectedToken},
		{"import_meta", "import.meta.url;", diag.SynUnsupported},
		{"with", "with (o) {}", diag.SynUnsupported},
		{"try_alone", "try {}", diag.SynTryWithoutHandler},
		{"duplicate_default", "switch (x) { default: default: }", diag.SynDuplicateDefault},
		{"missing_operand", "a +;", diag.SynExpectExpression},
		{"throw_newline", "throw\nx;", diag.SynIllegalNewline},
		{"missing_semicolon", "a b", diag.SynExpectSemicolon},
		{"unclosed_block", "{ a;", diag.SynUnclosedBrace},
		{"bad_for_in", "for (let a = 1 of b) {}", diag.SynForBadHeader},
		{"unterminated_string", "'abc", diag.LexUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.input)
			if !bag.HasErrors() {
				t.Fatalf("expected an error for %q", tt.input)
			}
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					return
				}
			}
			t.Errorf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
		})
	}
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	b, file, bag := parseSource(t, "a +;\nlet ok = 1;\n")
	if !bag.HasErrors() {
		t.Fatal("expected an error")
	}
	body := b.Files.Get(file).Body
	if len(body) == 0 || b.Stmts.Get(body[len(body)-1]).Kind != ast.StmtVar {
		t.Fatal("expected the parser to recover and keep the declaration")
	}
}

func TestClassMembers(t *testing.T) {
	src := `class A extends mix(B) {
  static #count = 0;
  x;
  [k] = f();
  get size() { return this.#count; }
  set size(v) {}
  static async *gen() {}
  static() {}
  'quoted'() {}
}`
	b, body := mustParse(t, src)
	data, ok := b.Stmts.Class(body[0])
	if !ok {
		t.Fatalf("expected class declaration, got %s", b.Stmts.Get(body[0]).Kind)
	}
	cls := b.Classes.Get(data.Class)
	if cls.Name != "A" {
		t.Errorf("class name = %q", cls.Name)
	}
	if call, ok := b.Exprs.Call(cls.Super); !ok || len(call.Args) != 1 {
		t.Error("extends clause should be the call mix(B)")
	}

	type member struct {
		typ      string
		kind     ast.PropKind
		static   bool
		computed bool
	}
	want := []member{
		{"PropertyDefinition", ast.PropInit, true, false},
		{"PropertyDefinition", ast.PropInit, false, false},
		{"PropertyDefinition", ast.PropInit, false, true},
		{"MethodDefinition", ast.PropGet, false, false},
		{"MethodDefinition", ast.PropSet, false, false},
		{"MethodDefinition", ast.PropInit, true, false},
		{"MethodDefinition", ast.PropInit, false, false},
		{"MethodDefinition", ast.PropInit, false, false},
	}
	if len(cls.Members) != len(want) {
		t.Fatalf("got %d members, want %d", len(cls.Members), len(want))
	}
	for i, id := range cls.Members {
		m := b.Props.Get(id)
		got := member{b.TypeName(ast.PropSel(id)), m.Kind, m.Static, m.Computed}
		if got != want[i] {
			t.Errorf("member %d: got %+v, want %+v", i, got, want[i])
		}
	}

	first := b.Props.Get(cls.Members[0])
	if name, ok := b.Exprs.Private(first.Key); !ok || name.Name != "count" {
		t.Error("first member should have the private key #count")
	}
	if lit, ok := b.Exprs.Lit(first.Value); !ok || lit.Raw != "0" {
		t.Error("static field should keep its initializer")
	}
	if b.Props.Get(cls.Members[1]).Value.IsValid() {
		t.Error("field without initializer must have no value")
	}
	gen, _ := b.Exprs.Func(b.Props.Get(cls.Members[5]).Value)
	if fn := b.Funcs.Get(gen.Func); !fn.Async || !fn.Generator {
		t.Error("static async *gen() should be an async generator")
	}
	named, _ := b.Exprs.Ident(b.Props.Get(cls.Members[6]).Key)
	if named == nil || named.Name != "static" {
		t.Error("a method may be called static")
	}
}

func TestClassExpressionAndSuper(t *testing.T) {
	b, expr := firstExpr(t, "x = class extends B { m() { return super.m(1); } };")
	assign, _ := b.Exprs.Assign(expr)
	data, ok := b.Exprs.Class(assign.Value)
	if !ok {
		t.Fatalf("expected class expression, got %s", b.Exprs.Get(assign.Value).Kind)
	}
	cls := b.Classes.Get(data.Class)
	if cls.Name != "" {
		t.Errorf("anonymous class got name %q", cls.Name)
	}
	fnExpr, _ := b.Exprs.Func(b.Props.Get(cls.Members[0]).Value)
	ret, _ := b.Stmts.Arg(b.Funcs.Get(fnExpr.Func).Body[0])
	call, _ := b.Exprs.Call(ret.Arg)
	member, _ := b.Exprs.Member(call.Callee)
	if b.Exprs.Get(member.Object).Kind != ast.ExprSuper {
		t.Errorf("expected super as the member object, got %s", b.Exprs.Get(member.Object).Kind)
	}
}

func TestModuleDeclarations(t *testing.T) {
	b, file, bag := parseSource(t, `import def, * as ns from "m";
import {a, b as c, "x-y" as d} from 'n';
export {c as default, def};
export * from 'o';
export async function run() { await import('./lazy.js'); }
export default class {}
`)
	if bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	f := b.Files.Get(file)
	if !f.Module {
		t.Error("a program with imports should be marked as a module")
	}
	if len(f.Body) != 6 {
		t.Fatalf("got %d statements, want 6", len(f.Body))
	}

	first, _ := b.Stmts.Module(f.Body[0])
	kinds := make([]string, len(first.Specs))
	for i, s := range first.Specs {
		kinds[i] = b.TypeName(ast.SpecSel(s))
	}
	if strings.Join(kinds, " ") != "ImportDefaultSpecifier ImportNamespaceSpecifier" {
		t.Errorf("first import specifiers = %v", kinds)
	}

	second, _ := b.Stmts.Module(f.Body[1])
	if len(second.Specs) != 3 {
		t.Fatalf("second import has %d specifiers", len(second.Specs))
	}
	renamed := b.Specs.Get(second.Specs[1])
	remote, _ := b.Exprs.Ident(renamed.Remote)
	local, _ := b.Exprs.Ident(renamed.Local)
	if remote == nil || local == nil || remote.Name != "b" || local.Name != "c" {
		t.Error("`b as c` should import b into the local c")
	}
	if b.Specs.Get(second.Specs[0]).Remote.IsValid() {
		t.Error("a plain specifier has no separate remote name")
	}
	if _, ok := b.Exprs.Lit(b.Specs.Get(second.Specs[2]).Remote); !ok {
		t.Error("string import names are literals")
	}

	list, _ := b.Stmts.Module(f.Body[2])
	exported, _ := b.Exprs.Ident(b.Specs.Get(list.Specs[0]).Remote)
	if exported == nil || exported.Name != "default" || list.Source.IsValid() {
		t.Error("`export {c as default}` should export c under default")
	}

	run, _ := b.Stmts.Module(f.Body[4])
	if fn, ok := b.Stmts.Func(run.Decl); !ok || !b.Funcs.Get(fn.Func).Async {
		t.Error("export should wrap the async function declaration")
	}

	def, _ := b.Stmts.Module(f.Body[5])
	if cls, ok := b.Stmts.Class(def.Decl); !ok || b.Classes.Get(cls.Class).Name != "" {
		t.Error("export default should hold an anonymous class declaration")
	}
}

func TestScriptStaysScript(t *testing.T) {
	b, file, _ := parseSource(t, "import('m').then(f);")
	if b.Files.Get(file).Module {
		t.Error("a dynamic import alone does not make a module")
	}
}
