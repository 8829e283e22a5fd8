package ast

import "deob/internal/source"

type PropKind uint8

const (
	PropInit PropKind = iota
	PropGet
	PropSet
	PropSpread
)

// Prop is an object literal or class body member. Spread members have no
// Key and keep their argument in Value; shorthand members have no Key and an
// identifier Value; methods, getters and setters hold a function expression
// in Value. A class field keeps its initializer in Value, NoExprID when it
// has none.
type Prop struct {
	Kind        PropKind
	Span        source.Span
	Key         ExprID
	Computed    bool
	Shorthand   bool
	Method      bool
	Value       ExprID
	ClassMember bool
	Static      bool
}

// IsField reports whether p is a class field rather than a method or accessor.
func (p *Prop) IsField() bool {
	return p.ClassMember && p.Kind == PropInit && !p.Method
}

type Props struct {
	Arena *Arena[Prop]
}

func NewProps(capHint uint) *Props {
	return &Props{Arena: NewArena[Prop](capHint)}
}

func (p *Props) New(prop Prop) PropID {
	return PropID(p.Arena.Allocate(prop))
}

func (p *Props) Get(id PropID) *Prop {
	return p.Arena.Get(uint32(id))
}

// Decl is one declarator of a variable statement.
type Decl struct {
	Span   source.Span
	Target PatID
	Init   ExprID // NoExprID when absent
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{Arena: NewArena[Decl](capHint)}
}

func (d *Decls) New(span source.Span, target PatID, init ExprID) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Span: span, Target: target, Init: init}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

// Case is one switch clause; Test is NoExprID for default.
type Case struct {
	Span source.Span
	Test ExprID
	Body []StmtID
}

type Cases struct {
	Arena *Arena[Case]
}

func NewCases(capHint uint) *Cases {
	return &Cases{Arena: NewArena[Case](capHint)}
}

func (c *Cases) New(span source.Span, test ExprID, body []StmtID) CaseID {
	return CaseID(c.Arena.Allocate(Case{Span: span, Test: test, Body: body}))
}

func (c *Cases) Get(id CaseID) *Case {
	return c.Arena.Get(uint32(id))
}
