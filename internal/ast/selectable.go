package ast

import (
	"fmt"

	"deob/internal/source"
)

// SelKind names the arena a Selectable points into.
type SelKind uint8

const (
	SelNone SelKind = iota
	SelProgram
	SelStmt
	SelExpr
	SelPat
	SelProp
	SelDecl
	SelFunc
	SelCase
	SelSpec
)

// Selectable is a uniform handle to any node of a Builder. Two handles are
// equal exactly when they denote the same node.
type Selectable struct {
	Kind SelKind
	ID   uint32
}

func ProgramSel(id FileID) Selectable { return Selectable{Kind: SelProgram, ID: uint32(id)} }
func StmtSel(id StmtID) Selectable    { return Selectable{Kind: SelStmt, ID: uint32(id)} }
func ExprSel(id ExprID) Selectable    { return Selectable{Kind: SelExpr, ID: uint32(id)} }
func PatSel(id PatID) Selectable      { return Selectable{Kind: SelPat, ID: uint32(id)} }
func PropSel(id PropID) Selectable    { return Selectable{Kind: SelProp, ID: uint32(id)} }
func DeclSel(id DeclID) Selectable    { return Selectable{Kind: SelDecl, ID: uint32(id)} }
func FuncSel(id FuncID) Selectable    { return Selectable{Kind: SelFunc, ID: uint32(id)} }
func CaseSel(id CaseID) Selectable    { return Selectable{Kind: SelCase, ID: uint32(id)} }
func SpecSel(id SpecID) Selectable    { return Selectable{Kind: SelSpec, ID: uint32(id)} }

func (s Selectable) IsValid() bool { return s.Kind != SelNone && s.ID != 0 }

func (s Selectable) Program() (FileID, bool) { return FileID(s.ID), s.Kind == SelProgram }
func (s Selectable) Stmt() (StmtID, bool)    { return StmtID(s.ID), s.Kind == SelStmt }
func (s Selectable) Expr() (ExprID, bool)    { return ExprID(s.ID), s.Kind == SelExpr }
func (s Selectable) Pat() (PatID, bool)      { return PatID(s.ID), s.Kind == SelPat }
func (s Selectable) Prop() (PropID, bool)    { return PropID(s.ID), s.Kind == SelProp }
func (s Selectable) Decl() (DeclID, bool)    { return DeclID(s.ID), s.Kind == SelDecl }
func (s Selectable) Func() (FuncID, bool)    { return FuncID(s.ID), s.Kind == SelFunc }
func (s Selectable) Case() (CaseID, bool)    { return CaseID(s.ID), s.Kind == SelCase }
func (s Selectable) Spec() (SpecID, bool)    { return SpecID(s.ID), s.Kind == SelSpec }

func (s Selectable) String() string {
	switch s.Kind {
	case SelProgram:
		return fmt.Sprintf("program#%d", s.ID)
	case SelStmt:
		return fmt.Sprintf("stmt#%d", s.ID)
	case SelExpr:
		return fmt.Sprintf("expr#%d", s.ID)
	case SelPat:
		return fmt.Sprintf("pat#%d", s.ID)
	case SelProp:
		return fmt.Sprintf("prop#%d", s.ID)
	case SelDecl:
		return fmt.Sprintf("decl#%d", s.ID)
	case SelFunc:
		return fmt.Sprintf("func#%d", s.ID)
	case SelCase:
		return fmt.Sprintf("case#%d", s.ID)
	case SelSpec:
		return fmt.Sprintf("spec#%d", s.ID)
	default:
		return "none"
	}
}

// TypeName returns the ESTree-style type name of the node s denotes.
func (b *Builder) TypeName(s Selectable) string {
	switch s.Kind {
	case SelProgram:
		return "Program"
	case SelStmt:
		if st := b.Stmts.Get(StmtID(s.ID)); st != nil {
			return st.Kind.String()
		}
	case SelExpr:
		if e := b.Exprs.Get(ExprID(s.ID)); e != nil {
			return e.Kind.String()
		}
	case SelPat:
		if p := b.Pats.Get(PatID(s.ID)); p != nil {
			return p.Kind.String()
		}
	case SelProp:
		if p := b.Props.Get(PropID(s.ID)); p != nil && p.ClassMember {
			if p.IsField() {
				return "PropertyDefinition"
			}
			return "MethodDefinition"
		}
		return "Property"
	case SelDecl:
		return "VariableDeclarator"
	case SelFunc:
		return "Function"
	case SelCase:
		return "SwitchCase"
	case SelSpec:
		if sp := b.Specs.Get(SpecID(s.ID)); sp != nil {
			return sp.Kind.String()
		}
	}
	return ""
}

// Span returns the source range of the node s denotes. Synthesized nodes
// carry an empty span.
func (b *Builder) Span(s Selectable) source.Span {
	switch s.Kind {
	case SelProgram:
		if f := b.Files.Get(FileID(s.ID)); f != nil {
			return f.Span
		}
	case SelStmt:
		if st := b.Stmts.Get(StmtID(s.ID)); st != nil {
			return st.Span
		}
	case SelExpr:
		if e := b.Exprs.Get(ExprID(s.ID)); e != nil {
			return e.Span
		}
	case SelPat:
		if p := b.Pats.Get(PatID(s.ID)); p != nil {
			return p.Span
		}
	case SelProp:
		if p := b.Props.Get(PropID(s.ID)); p != nil {
			return p.Span
		}
	case SelDecl:
		if d := b.Decls.Get(DeclID(s.ID)); d != nil {
			return d.Span
		}
	case SelFunc:
		if f := b.Funcs.Get(FuncID(s.ID)); f != nil {
			return f.Span
		}
	case SelCase:
		if c := b.Cases.Get(CaseID(s.ID)); c != nil {
			return c.Span
		}
	case SelSpec:
		if sp := b.Specs.Get(SpecID(s.ID)); sp != nil {
			return sp.Span
		}
	}
	return source.Span{}
}
