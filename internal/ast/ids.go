package ast

type (
	// top-level entities
	FileID uint32
	StmtID uint32
	ExprID uint32
	PatID  uint32
	// sub-entities
	PayloadID uint32
	PropID    uint32
	DeclID    uint32
	FuncID    uint32
	CaseID    uint32
	ClassID   uint32
	SpecID    uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPatID     PatID     = 0
	NoPayloadID PayloadID = 0
	NoPropID    PropID    = 0
	NoDeclID    DeclID    = 0
	NoFuncID    FuncID    = 0
	NoCaseID    CaseID    = 0
	NoClassID   ClassID   = 0
	NoSpecID    SpecID    = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PatID) IsValid() bool     { return id != NoPatID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id PropID) IsValid() bool    { return id != NoPropID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id FuncID) IsValid() bool    { return id != NoFuncID }
func (id CaseID) IsValid() bool    { return id != NoCaseID }
func (id ClassID) IsValid() bool   { return id != NoClassID }
func (id SpecID) IsValid() bool    { return id != NoSpecID }
