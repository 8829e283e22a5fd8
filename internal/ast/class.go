package ast

import "deob/internal/source"

// Class is the shared shape of class declarations and expressions. Members
// are props with ClassMember set.
type Class struct {
	Span    source.Span
	Name    string
	Super   ExprID // NoExprID without extends
	Members []PropID
}

type Classes struct {
	Arena *Arena[Class]
}

func NewClasses(capHint uint) *Classes {
	return &Classes{Arena: NewArena[Class](capHint)}
}

func (c *Classes) New(cls Class) ClassID {
	return ClassID(c.Arena.Allocate(cls))
}

func (c *Classes) Get(id ClassID) *Class {
	return c.Arena.Get(uint32(id))
}

type SpecKind uint8

const (
	SpecImport SpecKind = iota
	SpecImportDefault
	SpecImportNamespace
	SpecExport
)

var specKindNames = [...]string{
	SpecImport:          "ImportSpecifier",
	SpecImportDefault:   "ImportDefaultSpecifier",
	SpecImportNamespace: "ImportNamespaceSpecifier",
	SpecExport:          "ExportSpecifier",
}

// String returns the ESTree type name of the kind.
func (k SpecKind) String() string {
	if int(k) < len(specKindNames) {
		return specKindNames[k]
	}
	return "Spec(?)"
}

// Spec is one name of an import or export clause. Remote is the name on the
// other module's side: the imported name of `import {a as b}` or the exported
// name of `export {a as b}`; it is an identifier or a string literal, and
// NoExprID for default and namespace imports. Local is the binding in this
// module.
type Spec struct {
	Kind   SpecKind
	Span   source.Span
	Remote ExprID
	Local  ExprID
}

type Specs struct {
	Arena *Arena[Spec]
}

func NewSpecs(capHint uint) *Specs {
	return &Specs{Arena: NewArena[Spec](capHint)}
}

func (s *Specs) New(spec Spec) SpecID {
	return SpecID(s.Arena.Allocate(spec))
}

func (s *Specs) Get(id SpecID) *Spec {
	return s.Arena.Get(uint32(id))
}
