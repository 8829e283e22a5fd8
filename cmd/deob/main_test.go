package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	sess := &session{}
	root := newRootCmd(sess)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	sess.close()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// emptyConfig keeps the tests independent of any deob.toml above the
// working directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "deob.toml", "[normalize]\ncache = false\n")
}

func TestNormalizeStdin(t *testing.T) {
	out, _, err := run(t, "f(g(), h());", "--config", emptyConfig(t), "normalize", "-")
	if err != nil {
		t.Fatal(err)
	}
	if want := "const _t0 = f;\nconst _t1 = g();\nconst _t2 = h();\n_t0(_t1, _t2);\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestNormalizeFlagsOverrideConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "deob.toml", "[normalize]\nprefix = \"_a\"\ncache = false\n[format]\nindent = 4\n")
	out, _, err := run(t, "function f() { return g(h()); }", "--config", cfg, "normalize", "--prefix", "tmp", "-")
	if err != nil {
		t.Fatal(err)
	}
	if want := "function f() {\n    const tmp0 = g;\n    const tmp1 = h();\n    return tmp0(tmp1);\n}\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestNormalizeFileToOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.js", "x = a && b;")
	outPath := filepath.Join(dir, "out.js")
	if _, _, err := run(t, "", "--config", emptyConfig(t), "normalize", "-o", outPath, in); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if want := "let _t0 = a;\nif (_t0) {\n  _t0 = b;\n}\nx = _t0;\n"; string(data) != want {
		t.Fatalf("output = %q", data)
	}
}

func TestNormalizeParseErrorShowsDiagnostics(t *testing.T) {
	_, stderr, err := run(t, "f(;", "--config", emptyConfig(t), "normalize", "-")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(stderr, "<stdin>:1:") || !strings.Contains(stderr, "ERROR SYN") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestNormalizeDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "f(g());")
	writeFile(t, dir, "lib/b.js", "h(i());")
	out, stderr, err := run(t, "", "--config", emptyConfig(t), "normalize", "--ui", "off", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "a.js -> ") || !strings.Contains(stderr, "normalized 2 files: 0 cached, 0 failed") {
		t.Fatalf("stdout = %q\nstderr = %q", out, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "lib", "b.anf.js")); err != nil {
		t.Fatal(err)
	}
}

func TestQueryPretty(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "f(1, 2, 3, 4, 5);")
	out, stderr, err := run(t, "", "--config", emptyConfig(t), "query",
		"Literal[kind=number] + Literal[kind=number] + Literal[kind=number]", in)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[0], ":1:9: Literal 3") {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(stderr, "3 matches") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestQueryJSON(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "console.log(1, 2, 3); const a = 'x';")
	out, _, err := run(t, "", "--config", emptyConfig(t), "query", "--format", "json", "CallExpression Literal", in)
	if err != nil {
		t.Fatal(err)
	}
	var payload queryDirJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if payload.Count != 3 || len(payload.Files) != 1 || payload.Files[0].Matches[2].Text != "3" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestQueryBadSelector(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "f();")
	if _, _, err := run(t, "", "--config", emptyConfig(t), "query", "Literal[", in); err == nil {
		t.Fatal("expected a selector error")
	}
}

func TestParseFormats(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "let x = 1")
	out, _, err := run(t, "", "--config", emptyConfig(t), "parse", "--format", "js", in)
	if err != nil {
		t.Fatal(err)
	}
	if out != "let x = 1;\n" {
		t.Errorf("js = %q", out)
	}
	out, _, err = run(t, "", "--config", emptyConfig(t), "parse", in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Program ") || !strings.Contains(out, "\n  VariableDeclaration kind=let ") {
		t.Errorf("tree = %q", out)
	}
}

func TestTokenizeJSON(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "a + 1")
	out, _, err := run(t, "", "tokenize", "--format", "json", in)
	if err != nil {
		t.Fatal(err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens", len(toks))
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "deob ") {
		t.Fatalf("version = %q", out)
	}
}

func TestInvalidFlags(t *testing.T) {
	in := writeFile(t, t.TempDir(), "a.js", "f();")
	cases := [][]string{
		{"--trace-level", "loud", "tokenize", in},
		{"tokenize", "--format", "xml", in},
		{"--color", "sometimes", "tokenize", in},
		{"--config", emptyConfig(t), "normalize", "--ui", "maybe", filepath.Dir(in)},
		{"--config", emptyConfig(t), "normalize", "--prefix", "1x", in},
	}
	for _, args := range cases {
		if _, _, err := run(t, "", args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.js", "f(g());")
	tracePath := filepath.Join(dir, "trace.ndjson")
	if _, _, err := run(t, "", "--config", emptyConfig(t), "--trace", tracePath, "--trace-level", "detail", "normalize", in); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name":"normalize"`) {
		t.Fatalf("trace misses the normalize phase:\n%s", data)
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	_, _, err := run(t, "f(g());", "--config", emptyConfig(t), "--cpu-profile", cpu, "--mem-profile", mem, "normalize", "-")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{cpu, mem} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("%s not written: %v", filepath.Base(p), err)
		}
	}
}
