package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel(loud) should fail")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	root := Begin(tr, ScopeCommand, "normalize", 0)
	phase := Begin(tr, ScopePhase, "parse", root.ID())
	Begin(tr, ScopeFile, "file:a.js", phase.ID()).End("")
	phase.WithExtra("files", "1").WithExtra("bytes", "10").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (file scope filtered):\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "parse {bytes=10, files=1}") {
		t.Errorf("extras not sorted: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "normalize (ok)") {
		t.Errorf("detail missing: %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeNode, "match", 0, "Literal")
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "node" || ev["detail"] != "Literal" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeFile, name, 0, "")
	}
	var got []string
	for _, ev := range r.Snapshot() {
		got = append(got, ev.Name)
	}
	if strings.Join(got, ",") != "c,d,e" {
		t.Fatalf("snapshot = %v, want c,d,e", got)
	}
}

func TestRingOfMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePhase, "query", 0).End("")
	ring, ok := RingOf(tr)
	if !ok {
		t.Fatal("RingOf should find the ring behind a multi tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if buf.Len() == 0 {
		t.Fatal("stream half wrote nothing")
	}
}

func TestDisabledIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatal("LevelOff should build Nop")
	}
	span := Begin(tr, ScopeCommand, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("span of a disabled tracer should be inert")
	}
	if StartHeartbeat(tr, 1) != nil {
		t.Fatal("heartbeat should not start when tracing is off")
	}
}

func TestContextPropagation(t *testing.T) {
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("FromContext lost the tracer")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should give Nop")
	}
	span := Begin(r, ScopeCommand, "cmd", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatal("CurrentSpan lost the span id")
	}
}
