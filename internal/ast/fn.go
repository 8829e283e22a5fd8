package ast

import "deob/internal/source"

// Func is the shared shape of declarations, expressions, arrows and methods.
// An arrow with a concise body has ExprBody set and Body empty.
type Func struct {
	Span      source.Span
	Name      string
	Params    []PatID
	Body      []StmtID
	ExprBody  ExprID
	Arrow     bool
	Async     bool
	Generator bool
}

type Funcs struct {
	Arena *Arena[Func]
}

func NewFuncs(capHint uint) *Funcs {
	return &Funcs{Arena: NewArena[Func](capHint)}
}

func (f *Funcs) New(fn Func) FuncID {
	return FuncID(f.Arena.Allocate(fn))
}

func (f *Funcs) Get(id FuncID) *Func {
	return f.Arena.Get(uint32(id))
}
