package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"deob/internal/diag"
	"deob/internal/source"
)

type palette struct {
	path, err, warn, info, code, caret, note, kind *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:  color.New(color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgBlue, color.Bold),
		code:  color.New(color.Faint),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgCyan),
		kind:  color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.code, p.caret, p.note, p.kind} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints every diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined and, when enabled,
// the notes in the same shape. Call bag.Sort first for a stable order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(location(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		excerpt(w, fs, d.Primary, opts.Context, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
			excerpt(w, fs, n.Span, 0, p)
		}
	}
}

// location renders span as path:line:col; spans of unknown files print as
// "<unknown>".
func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, f, mode), start.Line, start.Col)
}

// excerpt prints the line holding span.Start, with context lines above,
// and a caret line under the covered columns.
func excerpt(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "  %*d | %s\n", gutter, ln, f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	lead := prefixWidth(line, int(start.Col)-1)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = prefixWidth(line, int(end.Col)-1) - lead
	} else if end.Line > start.Line {
		width = max(runewidth.StringWidth(line)-lead, 1)
	}
	marks := "^" + strings.Repeat("~", max(width-1, 0))
	fmt.Fprintf(w, "  %s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", lead), p.caret.Sprint(marks))
}

// prefixWidth is the display width of the first n bytes of line.
func prefixWidth(line string, n int) int {
	n = min(max(n, 0), len(line))
	return runewidth.StringWidth(line[:n])
}
