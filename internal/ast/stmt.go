package ast

import (
	"deob/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtVar
	StmtFunc
	StmtReturn
	StmtIf
	StmtFor
	StmtForIn
	StmtForOf
	StmtWhile
	StmtDoWhile
	StmtBlock
	StmtTry
	StmtSwitch
	StmtThrow
	StmtBreak
	StmtContinue
	StmtEmpty
	StmtDebugger
	StmtLabeled
	StmtClass
	StmtImport
	StmtExportNamed
	StmtExportDefault
	StmtExportAll
)

var stmtKindNames = [...]string{
	StmtExpr:          "ExpressionStatement",
	StmtVar:           "VariableDeclaration",
	StmtFunc:          "FunctionDeclaration",
	StmtReturn:        "ReturnStatement",
	StmtIf:            "IfStatement",
	StmtFor:           "ForStatement",
	StmtForIn:         "ForInStatement",
	StmtForOf:         "ForOfStatement",
	StmtWhile:         "WhileStatement",
	StmtDoWhile:       "DoWhileStatement",
	StmtBlock:         "BlockStatement",
	StmtTry:           "TryStatement",
	StmtSwitch:        "SwitchStatement",
	StmtThrow:         "ThrowStatement",
	StmtBreak:         "BreakStatement",
	StmtContinue:      "ContinueStatement",
	StmtEmpty:         "EmptyStatement",
	StmtDebugger:      "DebuggerStatement",
	StmtLabeled:       "LabeledStatement",
	StmtClass:         "ClassDeclaration",
	StmtImport:        "ImportDeclaration",
	StmtExportNamed:   "ExportNamedDeclaration",
	StmtExportDefault: "ExportDefaultDeclaration",
	StmtExportAll:     "ExportAllDeclaration",
}

// String returns the ESTree type name of the kind.
func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

type ExprStmtData struct {
	Expr ExprID
}

type VarStmtData struct {
	Kind  VarKind
	Decls []DeclID
}

type FuncStmtData struct {
	Func FuncID
}

// ArgStmtData is shared by return (Arg may be NoExprID) and throw.
type ArgStmtData struct {
	Arg ExprID
}

type IfStmtData struct {
	Test ExprID
	Cons StmtID
	Alt  StmtID // NoStmtID when there is no else
}

type ForStmtData struct {
	Init   StmtID // NoStmtID, a StmtVar or a StmtExpr
	Test   ExprID
	Update ExprID
	Body   StmtID
}

// ForInStmtData serves for-in and for-of. Exactly one of Decl and Target is set:
// Decl is a StmtVar with a single declarator and no initializer.
type ForInStmtData struct {
	Decl   StmtID
	Target PatID
	Right  ExprID
	Body   StmtID
}

// WhileStmtData serves while and do-while.
type WhileStmtData struct {
	Test ExprID
	Body StmtID
}

type BlockStmtData struct {
	Stmts []StmtID
}

type TryStmtData struct {
	Block     StmtID
	Param     PatID  // NoPatID for `catch {` and for try/finally
	Handler   StmtID // NoStmtID when there is no catch clause
	Finalizer StmtID // NoStmtID when there is no finally clause
}

type SwitchStmtData struct {
	Disc  ExprID
	Cases []CaseID
}

// JumpStmtData serves break and continue.
type JumpStmtData struct {
	Label string
}

type LabeledStmtData struct {
	Label string
	Body  StmtID
}

type ClassStmtData struct {
	Class ClassID
}

// ModuleStmtData serves import and export declarations. Source is the module
// string literal, NoExprID for local exports. Decl is the declaration of
// `export var ...`, `export function ...`, `export class ...` and their
// default forms. Expr holds the value of `export default expr` and the name
// of `export * as name`.
type ModuleStmtData struct {
	Specs  []SpecID
	Source ExprID
	Decl   StmtID
	Expr   ExprID
}
