package selector_test

import (
	"testing"

	"deob/internal/ast"
	"deob/internal/selector"
)

// firstOf returns the first node of the given type name in pre-order.
func firstOf(t *testing.T, b *ast.Builder, root ast.Selectable, typeName string) ast.Selectable {
	t.Helper()
	for _, s := range preorder(b, root) {
		if b.TypeName(s) == typeName {
			return s
		}
	}
	t.Fatalf("no %s in tree", typeName)
	return ast.Selectable{}
}

func TestChildrenSourceOrder(t *testing.T) {
	tests := []struct {
		src    string
		parent string
		want   []string
	}{
		{"for (var i = 0; i < n; i++) x();", "ForStatement",
			[]string{"VariableDeclaration", "BinaryExpression", "UpdateExpression", "ExpressionStatement"}},
		{"for (k of o) ;", "ForOfStatement", []string{"k", "o", "EmptyStatement"}},
		{"do x(); while (y)", "DoWhileStatement", []string{"ExpressionStatement", "y"}},
		{"while (y) x();", "WhileStatement", []string{"y", "ExpressionStatement"}},
		{"try {} catch (e) {} finally {}", "TryStatement",
			[]string{"BlockStatement", "e", "BlockStatement", "BlockStatement"}},
		{"switch (d) { case 1: a; default: b; }", "SwitchStatement", []string{"d", "SwitchCase", "SwitchCase"}},
		{"x = [, a, , b];", "ArrayExpression", []string{"a", "b"}},
		{"x = {a: 1, [k]: 2, c};", "ObjectExpression", []string{"Property", "Property", "Property"}},
		{"x = {[k]: 2};", "Property", []string{"k", "2"}},
		{"var {a, b: [c = 1]} = o;", "ObjectPattern", []string{"a", "b", "ArrayPattern"}},
		{"f(a)(b);", "CallExpression", []string{"CallExpression", "b"}},
		{"a.b[c];", "MemberExpression", []string{"MemberExpression", "c"}},
		{"x = (a, b, c);", "SequenceExpression", []string{"a", "b", "c"}},
		{"x = c ? t : f;", "ConditionalExpression", []string{"c", "t", "f"}},
		{"function g(p, ...r) { return p; }", "Function", []string{"p", "RestElement", "ReturnStatement"}},
		{"h = (p) => p * 2;", "Function", []string{"p", "BinaryExpression"}},
		{"t = `a${b}c${d}`;", "TemplateLiteral", []string{"b", "d"}},
		{"l: for (;;) break l;", "LabeledStatement", []string{"ForStatement"}},
		{"var q = 1, r;", "VariableDeclaration", []string{"VariableDeclarator", "VariableDeclarator"}},
		{"if (a) b; else c;", "IfStatement", []string{"a", "ExpressionStatement", "ExpressionStatement"}},
		{"class A extends B { m() {} x = 1; }", "ClassDeclaration",
			[]string{"B", "MethodDefinition", "PropertyDefinition"}},
		{"class A { [k] = v; }", "PropertyDefinition", []string{"k", "v"}},
		{"x = class { #p; };", "ClassExpression", []string{"PropertyDefinition"}},
		{"import d, {a as b} from 'm';", "ImportDeclaration",
			[]string{"ImportDefaultSpecifier", "ImportSpecifier", "'m'"}},
		{"import {a as b} from 'm';", "ImportSpecifier", []string{"a", "b"}},
		{"export {a as b};", "ExportSpecifier", []string{"a", "b"}},
		{"export * as ns from 'm';", "ExportAllDeclaration", []string{"ns", "'m'"}},
		{"export const c = 1;", "ExportNamedDeclaration", []string{"VariableDeclaration"}},
		{"export default f;", "ExportDefaultDeclaration", []string{"f"}},
		{"x = import(y);", "ImportExpression", []string{"y"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, root := parse(t, tt.src)
			parent := firstOf(t, b, root, tt.parent)
			got := labels(b, selector.Children(b, parent))
			if !equalStrings(got, tt.want) {
				t.Fatalf("children of %s = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}
}

func TestLeavesHaveNoChildren(t *testing.T) {
	b, root := parse(t, "a; 1; this; debugger; ; for(;;) { break; continue; } class A extends B { m() { super.#x; } }")
	for _, s := range preorder(b, root) {
		switch b.TypeName(s) {
		case "Identifier", "Literal", "ThisExpression", "DebuggerStatement",
			"EmptyStatement", "BreakStatement", "ContinueStatement", "Super", "PrivateIdentifier":
			if kids := selector.Children(b, s); len(kids) != 0 {
				t.Errorf("%s has children %v", b.TypeName(s), kids)
			}
		}
	}
	if kids := selector.Children(b, ast.Selectable{}); kids != nil {
		t.Fatalf("invalid handle has children %v", kids)
	}
}
