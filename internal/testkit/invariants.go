// Package testkit holds structural checks shared by tests of the parser,
// the normalizer and the driver.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"deob/internal/ast"
	"deob/internal/selector"
	"deob/internal/source"
	"deob/internal/token"
)

// CheckSpanInvariants verifies a freshly parsed file:
// the file span is non-empty and inside the content, and every node that
// carries a span lies inside the file span.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if len(f.Body) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var walk func(s ast.Selectable) error
	walk = func(s ast.Selectable) error {
		for _, c := range selector.Children(b, s) {
			sp := b.Span(c)
			if !sp.Empty() && !f.Span.Contains(sp) {
				return fmt.Errorf("%s span %v is outside file span %v", b.TypeName(c), sp, f.Span)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(ast.ProgramSel(fileID))
}

// CheckNormalized verifies that a normalized program keeps effects out of
// operand positions: call arguments, binary operands, member objects and
// keys, and array elements hold no call, assignment, update, await, yield,
// import() or delete. Function bodies are checked as programs of their own.
// Of a class only the method bodies are checked; its heritage, computed keys
// and field initializers are kept as written.
func CheckNormalized(b *ast.Builder, fileID ast.FileID) error {
	var check func(s ast.Selectable) error
	check = func(s ast.Selectable) error {
		if cls, ok := classOf(b, s); ok {
			for _, m := range b.Classes.Get(cls).Members {
				if p := b.Props.Get(m); !p.IsField() {
					if err := check(ast.ExprSel(p.Value)); err != nil {
						return err
					}
				}
			}
			return nil
		}
		if id, ok := s.Expr(); ok {
			for _, op := range operands(b, id) {
				if eff, bad := findEffect(b, ast.ExprSel(op)); bad {
					return fmt.Errorf("%s operand of %s at %v contains %s",
						b.TypeName(ast.ExprSel(op)), b.TypeName(s), b.Span(s), b.TypeName(eff))
				}
			}
		}
		for _, c := range selector.Children(b, s) {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(ast.ProgramSel(fileID))
}

func classOf(b *ast.Builder, s ast.Selectable) (ast.ClassID, bool) {
	if id, ok := s.Stmt(); ok {
		if data, ok := b.Stmts.Class(id); ok {
			return data.Class, true
		}
	}
	if id, ok := s.Expr(); ok {
		if data, ok := b.Exprs.Class(id); ok {
			return data.Class, true
		}
	}
	return ast.NoClassID, false
}

func operands(b *ast.Builder, id ast.ExprID) []ast.ExprID {
	e := b.Exprs.Get(id)
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.ExprCall, ast.ExprNew:
		data, _ := b.Exprs.Call(id)
		return data.Args
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return []ast.ExprID{data.Left, data.Right}
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		if data.Optional {
			return nil
		}
		if data.Computed {
			return []ast.ExprID{data.Object, data.Property}
		}
		return []ast.ExprID{data.Object}
	case ast.ExprArray:
		data, _ := b.Exprs.Array(id)
		out := make([]ast.ExprID, 0, len(data.Elems))
		for _, el := range data.Elems {
			if el.IsValid() {
				out = append(out, el)
			}
		}
		return out
	}
	return nil
}

// findEffect returns the first effectful node under s, not descending into
// functions.
func findEffect(b *ast.Builder, s ast.Selectable) (ast.Selectable, bool) {
	if id, ok := s.Expr(); ok {
		e := b.Exprs.Get(id)
		switch e.Kind {
		case ast.ExprFunc, ast.ExprArrow:
			return ast.Selectable{}, false
		case ast.ExprCall, ast.ExprNew, ast.ExprAssign, ast.ExprUpdate, ast.ExprAwait, ast.ExprYield, ast.ExprImport:
			return s, true
		case ast.ExprUnary:
			if data, _ := b.Exprs.Unary(id); data.Op == token.KwDelete {
				return s, true
			}
		}
	}
	for _, c := range selector.Children(b, s) {
		if eff, ok := findEffect(b, c); ok {
			return eff, true
		}
	}
	return ast.Selectable{}, false
}
