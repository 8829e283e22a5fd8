package ast

import "deob/internal/source"

// PatKind classifies binding and assignment targets.
type PatKind uint8

const (
	PatIdent PatKind = iota
	PatArray
	PatObject
	PatAssign // target = default
	PatRest
	PatExpr // member expression used as an assignment target
)

var patKindNames = [...]string{
	PatIdent:  "Identifier",
	PatArray:  "ArrayPattern",
	PatObject: "ObjectPattern",
	PatAssign: "AssignmentPattern",
	PatRest:   "RestElement",
	PatExpr:   "MemberExpression",
}

func (k PatKind) String() string {
	if int(k) < len(patKindNames) {
		return patKindNames[k]
	}
	return "Pat(?)"
}

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

type PatIdentData struct {
	Name string
}

// PatArrayData elements may be NoPatID for elisions.
type PatArrayData struct {
	Elems []PatID
}

// PatProp is one entry of an object pattern. Shorthand and rest entries have
// no Key; the rest entry's Value is a PatRest.
type PatProp struct {
	Span      source.Span
	Key       ExprID
	Computed  bool
	Shorthand bool
	Value     PatID
}

type PatObjectData struct {
	Props []PatProp
}

type PatAssignData struct {
	Target  PatID
	Default ExprID
}

type PatRestData struct {
	Arg PatID
}

type PatExprData struct {
	Expr ExprID
}

type Pats struct {
	Arena   *Arena[Pat]
	Idents  *Arena[PatIdentData]
	Arrays  *Arena[PatArrayData]
	Objects *Arena[PatObjectData]
	Assigns *Arena[PatAssignData]
	Rests   *Arena[PatRestData]
	Exprs   *Arena[PatExprData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := max(capHint>>3, 4)
	return &Pats{
		Arena:   NewArena[Pat](capHint),
		Idents:  NewArena[PatIdentData](capHint),
		Arrays:  NewArena[PatArrayData](small),
		Objects: NewArena[PatObjectData](small),
		Assigns: NewArena[PatAssignData](small),
		Rests:   NewArena[PatRestData](small),
		Exprs:   NewArena[PatExprData](small),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload uint32) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) payload(id PatID, kind PatKind) (uint32, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != kind {
		return 0, false
	}
	return uint32(pat.Payload), true
}

func (p *Pats) NewIdent(span source.Span, name string) PatID {
	return p.new(PatIdent, span, p.Idents.Allocate(PatIdentData{Name: name}))
}

func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pl, ok := p.payload(id, PatIdent)
	if !ok {
		return nil, false
	}
	return p.Idents.Get(pl), true
}

func (p *Pats) NewArray(span source.Span, elems []PatID) PatID {
	return p.new(PatArray, span, p.Arrays.Allocate(PatArrayData{Elems: elems}))
}

func (p *Pats) Array(id PatID) (*PatArrayData, bool) {
	pl, ok := p.payload(id, PatArray)
	if !ok {
		return nil, false
	}
	return p.Arrays.Get(pl), true
}

func (p *Pats) NewObject(span source.Span, props []PatProp) PatID {
	return p.new(PatObject, span, p.Objects.Allocate(PatObjectData{Props: props}))
}

func (p *Pats) Object(id PatID) (*PatObjectData, bool) {
	pl, ok := p.payload(id, PatObject)
	if !ok {
		return nil, false
	}
	return p.Objects.Get(pl), true
}

func (p *Pats) NewAssign(span source.Span, target PatID, def ExprID) PatID {
	return p.new(PatAssign, span, p.Assigns.Allocate(PatAssignData{Target: target, Default: def}))
}

func (p *Pats) Assign(id PatID) (*PatAssignData, bool) {
	pl, ok := p.payload(id, PatAssign)
	if !ok {
		return nil, false
	}
	return p.Assigns.Get(pl), true
}

func (p *Pats) NewRest(span source.Span, arg PatID) PatID {
	return p.new(PatRest, span, p.Rests.Allocate(PatRestData{Arg: arg}))
}

func (p *Pats) Rest(id PatID) (*PatRestData, bool) {
	pl, ok := p.payload(id, PatRest)
	if !ok {
		return nil, false
	}
	return p.Rests.Get(pl), true
}

func (p *Pats) NewExpr(span source.Span, expr ExprID) PatID {
	return p.new(PatExpr, span, p.Exprs.Allocate(PatExprData{Expr: expr}))
}

func (p *Pats) Expr(id PatID) (*PatExprData, bool) {
	pl, ok := p.payload(id, PatExpr)
	if !ok {
		return nil, false
	}
	return p.Exprs.Get(pl), true
}
