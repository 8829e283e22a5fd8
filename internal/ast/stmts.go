package ast

import (
	"deob/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena    *Arena[Stmt]
	Exprs    *Arena[ExprStmtData]
	Vars     *Arena[VarStmtData]
	FuncDecl *Arena[FuncStmtData]
	Args     *Arena[ArgStmtData]
	Ifs      *Arena[IfStmtData]
	Fors     *Arena[ForStmtData]
	ForIns   *Arena[ForInStmtData]
	Whiles   *Arena[WhileStmtData]
	Blocks   *Arena[BlockStmtData]
	Tries    *Arena[TryStmtData]
	Switches *Arena[SwitchStmtData]
	Jumps    *Arena[JumpStmtData]
	Labels   *Arena[LabeledStmtData]
	Classes  *Arena[ClassStmtData]
	Modules  *Arena[ModuleStmtData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := max(capHint>>3, 4)
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Exprs:    NewArena[ExprStmtData](capHint),
		Vars:     NewArena[VarStmtData](capHint >> 1),
		FuncDecl: NewArena[FuncStmtData](small),
		Args:     NewArena[ArgStmtData](small),
		Ifs:      NewArena[IfStmtData](small),
		Fors:     NewArena[ForStmtData](small),
		ForIns:   NewArena[ForInStmtData](small),
		Whiles:   NewArena[WhileStmtData](small),
		Blocks:   NewArena[BlockStmtData](small),
		Tries:    NewArena[TryStmtData](small),
		Switches: NewArena[SwitchStmtData](small),
		Jumps:    NewArena[JumpStmtData](small),
		Labels:   NewArena[LabeledStmtData](small),
		Classes:  NewArena[ClassStmtData](small),
		Modules:  NewArena[ModuleStmtData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (PayloadID, bool) {
	st := s.Get(id)
	if st == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return st.Payload, true
		}
	}
	return NoPayloadID, false
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmtData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmtData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(uint32(p)), true
}

func (s *Stmts) NewVar(span source.Span, kind VarKind, decls []DeclID) StmtID {
	payload := s.Vars.Allocate(VarStmtData{Kind: kind, Decls: decls})
	return s.new(StmtVar, span, PayloadID(payload))
}

func (s *Stmts) Var(id StmtID) (*VarStmtData, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(uint32(p)), true
}

func (s *Stmts) NewFunc(span source.Span, fn FuncID) StmtID {
	payload := s.FuncDecl.Allocate(FuncStmtData{Func: fn})
	return s.new(StmtFunc, span, PayloadID(payload))
}

func (s *Stmts) Func(id StmtID) (*FuncStmtData, bool) {
	p, ok := s.payload(id, StmtFunc)
	if !ok {
		return nil, false
	}
	return s.FuncDecl.Get(uint32(p)), true
}

func (s *Stmts) NewReturn(span source.Span, arg ExprID) StmtID {
	payload := s.Args.Allocate(ArgStmtData{Arg: arg})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) NewThrow(span source.Span, arg ExprID) StmtID {
	payload := s.Args.Allocate(ArgStmtData{Arg: arg})
	return s.new(StmtThrow, span, PayloadID(payload))
}

// Arg returns the payload of a return or throw statement.
func (s *Stmts) Arg(id StmtID) (*ArgStmtData, bool) {
	p, ok := s.payload(id, StmtReturn, StmtThrow)
	if !ok {
		return nil, false
	}
	return s.Args.Get(uint32(p)), true
}

func (s *Stmts) NewIf(span source.Span, test ExprID, cons, alt StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmtData{Test: test, Cons: cons, Alt: alt})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*IfStmtData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(uint32(p)), true
}

func (s *Stmts) NewFor(span source.Span, data ForStmtData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) For(id StmtID) (*ForStmtData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(uint32(p)), true
}

// NewForIn allocates a for-in (of == false) or for-of loop.
func (s *Stmts) NewForIn(span source.Span, of bool, data ForInStmtData) StmtID {
	payload := s.ForIns.Allocate(data)
	kind := StmtForIn
	if of {
		kind = StmtForOf
	}
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) ForIn(id StmtID) (*ForInStmtData, bool) {
	p, ok := s.payload(id, StmtForIn, StmtForOf)
	if !ok {
		return nil, false
	}
	return s.ForIns.Get(uint32(p)), true
}

// NewWhile allocates a while (do == false) or do-while loop.
func (s *Stmts) NewWhile(span source.Span, do bool, test ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(WhileStmtData{Test: test, Body: body})
	kind := StmtWhile
	if do {
		kind = StmtDoWhile
	}
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) (*WhileStmtData, bool) {
	p, ok := s.payload(id, StmtWhile, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(uint32(p)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmtData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) (*BlockStmtData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(uint32(p)), true
}

func (s *Stmts) NewTry(span source.Span, data TryStmtData) StmtID {
	payload := s.Tries.Allocate(data)
	return s.new(StmtTry, span, PayloadID(payload))
}

func (s *Stmts) Try(id StmtID) (*TryStmtData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(uint32(p)), true
}

func (s *Stmts) NewSwitch(span source.Span, disc ExprID, cases []CaseID) StmtID {
	payload := s.Switches.Allocate(SwitchStmtData{Disc: disc, Cases: cases})
	return s.new(StmtSwitch, span, PayloadID(payload))
}

func (s *Stmts) Switch(id StmtID) (*SwitchStmtData, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(uint32(p)), true
}

func (s *Stmts) NewBreak(span source.Span, label string) StmtID {
	payload := s.Jumps.Allocate(JumpStmtData{Label: label})
	return s.new(StmtBreak, span, PayloadID(payload))
}

func (s *Stmts) NewContinue(span source.Span, label string) StmtID {
	payload := s.Jumps.Allocate(JumpStmtData{Label: label})
	return s.new(StmtContinue, span, PayloadID(payload))
}

// Jump returns the payload of a break or continue statement.
func (s *Stmts) Jump(id StmtID) (*JumpStmtData, bool) {
	p, ok := s.payload(id, StmtBreak, StmtContinue)
	if !ok {
		return nil, false
	}
	return s.Jumps.Get(uint32(p)), true
}

func (s *Stmts) NewLabeled(span source.Span, label string, body StmtID) StmtID {
	payload := s.Labels.Allocate(LabeledStmtData{Label: label, Body: body})
	return s.new(StmtLabeled, span, PayloadID(payload))
}

func (s *Stmts) Labeled(id StmtID) (*LabeledStmtData, bool) {
	p, ok := s.payload(id, StmtLabeled)
	if !ok {
		return nil, false
	}
	return s.Labels.Get(uint32(p)), true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}

func (s *Stmts) NewDebugger(span source.Span) StmtID {
	return s.new(StmtDebugger, span, NoPayloadID)
}

func (s *Stmts) NewClass(span source.Span, cls ClassID) StmtID {
	payload := s.Classes.Allocate(ClassStmtData{Class: cls})
	return s.new(StmtClass, span, PayloadID(payload))
}

func (s *Stmts) Class(id StmtID) (*ClassStmtData, bool) {
	p, ok := s.payload(id, StmtClass)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(uint32(p)), true
}

// NewModule allocates an import or export declaration of the given kind.
func (s *Stmts) NewModule(span source.Span, kind StmtKind, data ModuleStmtData) StmtID {
	payload := s.Modules.Allocate(data)
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) Module(id StmtID) (*ModuleStmtData, bool) {
	p, ok := s.payload(id, StmtImport, StmtExportNamed, StmtExportDefault, StmtExportAll)
	if !ok {
		return nil, false
	}
	return s.Modules.Get(uint32(p)), true
}

// IsModuleDecl reports whether k is an import or export declaration.
func (k StmtKind) IsModuleDecl() bool {
	return k >= StmtImport && k <= StmtExportAll
}
