package ast

type Hints struct{ Files, Stmts, Exprs, Pats uint }

// Builder owns every arena of one syntax tree. IDs from one Builder are
// meaningless in another.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Pats    *Pats
	Props   *Props
	Decls   *Decls
	Funcs   *Funcs
	Cases   *Cases
	Classes *Classes
	Specs   *Specs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 6
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Pats:    NewPats(hints.Pats),
		Props:   NewProps(hints.Exprs >> 2),
		Decls:   NewDecls(hints.Stmts >> 1),
		Funcs:   NewFuncs(hints.Stmts >> 2),
		Cases:   NewCases(hints.Stmts >> 3),
		Classes: NewClasses(hints.Stmts >> 4),
		Specs:   NewSpecs(hints.Stmts >> 4),
	}
}
