package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"deob/internal/ast"
	"deob/internal/source"
)

const snippetWidth = 60

type MatchJSON struct {
	Type     string       `json:"type"`
	Location LocationJSON `json:"location"`
	Text     string       `json:"text"`
}

type MatchesOutput struct {
	Matches []MatchJSON `json:"matches"`
	Count   int         `json:"count"`
}

// snippet is the first line of the node's source text, cut to snippetWidth
// display columns.
func snippet(fs *source.FileSet, span source.Span) string {
	text := fs.Text(span)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + "…"
	}
	return runewidth.Truncate(text, snippetWidth, "…")
}

// Matches prints one line per selected node:
//
//	<path>:<line>:<col>: <Type> <snippet>
func Matches(w io.Writer, fs *source.FileSet, b *ast.Builder, sels []ast.Selectable, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, s := range sels {
		span := b.Span(s)
		_, err := fmt.Fprintf(w, "%s: %s %s\n",
			p.path.Sprint(location(fs, span, opts.PathMode)),
			p.kind.Sprint(b.TypeName(s)),
			snippet(fs, span))
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildMatchesOutput converts sels into their JSON shape. Count is the
// number of matches even when Max trims the list.
func BuildMatchesOutput(fs *source.FileSet, b *ast.Builder, sels []ast.Selectable, opts JSONOpts) MatchesOutput {
	out := MatchesOutput{Matches: []MatchJSON{}, Count: len(sels)}
	if opts.Max > 0 && len(sels) > opts.Max {
		sels = sels[:opts.Max]
	}
	for _, s := range sels {
		span := b.Span(s)
		out.Matches = append(out.Matches, MatchJSON{
			Type:     b.TypeName(s),
			Location: makeLocation(span, fs, opts.PathMode, opts.IncludePositions),
			Text:     fs.Text(span),
		})
	}
	return out
}

func MatchesJSON(w io.Writer, fs *source.FileSet, b *ast.Builder, sels []ast.Selectable, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildMatchesOutput(fs, b, sels, opts))
}
