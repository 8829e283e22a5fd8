package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"deob/internal/ast"
	"deob/internal/selector"
	"deob/internal/source"
)

// TreeNode is one AST node in JSON tree output.
type TreeNode struct {
	Type     string            `json:"type"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Location LocationJSON      `json:"location"`
	Children []TreeNode        `json:"children,omitempty"`
}

// Tree prints the AST of file one node per line, indented by depth:
//
//	BinaryExpression op=+ 1:9-1:16
func Tree(w io.Writer, b *ast.Builder, file ast.FileID, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var walk func(s ast.Selectable, depth int) error
	walk = func(s ast.Selectable, depth int) error {
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(p.kind.Sprint(b.TypeName(s)))
		for _, a := range selector.Attrs(b, s) {
			fmt.Fprintf(&sb, " %s=%s", a.Name, a.Value)
		}
		start, end := fs.Resolve(b.Span(s))
		fmt.Fprintf(&sb, " %s\n", p.code.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col))
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		for _, c := range selector.Children(b, s) {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(ast.ProgramSel(file), 0)
}

// BuildTree converts the subtree rooted at s into its JSON shape.
func BuildTree(b *ast.Builder, s ast.Selectable, fs *source.FileSet, opts JSONOpts) TreeNode {
	node := TreeNode{
		Type:     b.TypeName(s),
		Location: makeLocation(b.Span(s), fs, opts.PathMode, opts.IncludePositions),
	}
	if attrs := selector.Attrs(b, s); len(attrs) > 0 {
		node.Attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			node.Attrs[a.Name] = a.Value
		}
	}
	for _, c := range selector.Children(b, s) {
		node.Children = append(node.Children, BuildTree(b, c, fs, opts))
	}
	return node
}

// TreeJSON writes the AST of file as an indented JSON document.
func TreeJSON(w io.Writer, b *ast.Builder, file ast.FileID, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTree(b, ast.ProgramSel(file), fs, opts))
}
