package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"deob/internal/diag"
	"deob/internal/diagfmt"
	"deob/internal/source"
)

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte("a();\nx = bad;\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, spanOf(t, fs, fid, "bad"), "unexpected identifier"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	want := "in.js:2:5: ERROR SYN2001: unexpected identifier\n" +
		"  2 | x = bad;\n" +
		"    |     ^~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("Pretty =\n%s\nwant\n%s", got, want)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte("let a = 1;\nlet a = 2;\n"))
	first := spanOf(t, fs, fid, "a = 1")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, spanOf(t, fs, fid, "a = 2"), "redeclared").
		WithNote(first, "first declared here"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 1, ShowNotes: true})
	got := buf.String()
	for _, want := range []string{
		"  1 | let a = 1;\n  2 | let a = 2;\n",
		"note: in.js:1:5: first declared here",
		"^~~~~",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte("s = \"日本\" + bad;\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, spanOf(t, fs, fid, "bad"), "x"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	caret := lines[len(lines)-1]
	// `s = "日本" + ` is 12 columns wide; each CJK rune takes two.
	if want := "    | " + strings.Repeat(" ", 12) + "^~~"; caret != want {
		t.Fatalf("caret line = %q, want %q", caret, want)
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("in.js", []byte("x = bad;\n"))
	bag := diag.NewBag(8)
	sp := spanOf(t, fs, fid, "bad")
	bag.Add(diag.NewError(diag.SynUnexpectedToken, sp, "one"))
	bag.Add(diag.New(diag.SevWarning, diag.SynExpectSemicolon, sp, "two"))

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("count=%d len=%d, want 2 and 1", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2001" || d.Message != "one" {
		t.Errorf("diagnostic = %+v", d)
	}
	loc := d.Location
	if loc.File != "in.js" || loc.StartByte != 4 || loc.EndByte != 7 || loc.StartLine != 1 || loc.StartCol != 5 || loc.EndCol != 8 {
		t.Errorf("location = %+v", loc)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	out := diagfmt.BuildDiagnosticsOutput(diag.NewBag(1), source.NewFileSet(), diagfmt.JSONOpts{})
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"diagnostics":[],"count":0}` {
		t.Fatalf("got %s", data)
	}
}
