package ast

import "deob/internal/source"

// File is a parsed program: a Script or Module body.
type File struct {
	Span   source.Span
	Module bool
	Body   []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span, body []StmtID) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp, Body: body}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
