package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// jsSeeds cover each statement and expression form the normalizer rewrites.
var jsSeeds = []string{
	"",
	"f(g(), h());",
	"x = a && b || c ?? d;",
	"let y = p ? q() : r();",
	"o.m(a[i++], ...rest);",
	"for (let i = 0; i < n(); i++) { if (i % 2) continue; g(i); }",
	"while (next()) { x += 1; }",
	"do { k--; } while (k > 0 && ok());",
	"outer: for (const k in obj) { for (const v of obj[k]) { if (v) break outer; } }",
	"switch (tag()) { case 1: a(); break; default: b(); }",
	"try { risky(); } catch (e) { log(e); } finally { done(); }",
	"const f = async (a, b = 1) => await g(a, b);",
	"function* gen() { yield* inner(); }",
	"var { a, b: [c, d = e()] } = src();",
	"x ||= y(); z ??= w(); q &&= r();",
	"a?.b(c()).d?.[e()];",
	"const s = `pre${f()}mid${g()}post`;",
	"new Foo(bar(), baz);",
	"delete o[k()], void 0, typeof x;",
	"({ [key()]: val(), m() { return this; }, get g() { return 1; } });",
	"if (a) b(); else if (c) d(); else e();",
	"class A extends B { #n = f(); static s; constructor() { super(g()); } get n() { return this.#n; } }",
	"x = class { [k()]() {} };",
	"import d, { a as b } from 'm'; export { b as c }; export * as ns from 'n';",
	"export default async function () { await import(f()); }",
	"export const e = f(g()), h = 1;",
	"class { }",
	"export default class extends",
	"label: { break label; }",
	"#!/usr/bin/env node\nmain();",
	"x = /re[/]g/.test(s) ? 1e3 : 0x1F;",
	"return;",
	"f(;",
	"let let = 1;",
	"{ a = 1 }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range jsSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every JavaScript file under the repository testdata
// directory, when there is one.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".mjs", ".cjs":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
