package ast

import (
	"deob/internal/source"
	"deob/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprThis
	ExprArray
	ExprObject
	ExprFunc
	ExprArrow
	ExprUnary
	ExprUpdate
	ExprBinary
	ExprLogical
	ExprAssign
	ExprCond
	ExprCall
	ExprNew
	ExprMember
	ExprSeq
	ExprSpread
	ExprTemplate
	ExprAwait
	ExprYield
	ExprClass
	ExprSuper
	ExprPrivate
	ExprImport
)

var exprKindNames = [...]string{
	ExprIdent:    "Identifier",
	ExprLit:      "Literal",
	ExprThis:     "ThisExpression",
	ExprArray:    "ArrayExpression",
	ExprObject:   "ObjectExpression",
	ExprFunc:     "FunctionExpression",
	ExprArrow:    "ArrowFunctionExpression",
	ExprUnary:    "UnaryExpression",
	ExprUpdate:   "UpdateExpression",
	ExprBinary:   "BinaryExpression",
	ExprLogical:  "LogicalExpression",
	ExprAssign:   "AssignmentExpression",
	ExprCond:     "ConditionalExpression",
	ExprCall:     "CallExpression",
	ExprNew:      "NewExpression",
	ExprMember:   "MemberExpression",
	ExprSeq:      "SequenceExpression",
	ExprSpread:   "SpreadElement",
	ExprTemplate: "TemplateLiteral",
	ExprAwait:    "AwaitExpression",
	ExprYield:    "YieldExpression",
	ExprClass:    "ClassExpression",
	ExprSuper:    "Super",
	ExprPrivate:  "PrivateIdentifier",
	ExprImport:   "ImportExpression",
}

// String returns the ESTree type name of the kind.
func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
	LitRegex
)

func (k LitKind) String() string {
	switch k {
	case LitNumber:
		return "number"
	case LitString:
		return "string"
	case LitBool:
		return "boolean"
	case LitNull:
		return "null"
	case LitRegex:
		return "regex"
	default:
		return "literal(?)"
	}
}

// ExprIdentData also serves private names; Name has no leading '#' there.
type ExprIdentData struct {
	Name string
}

// ExprLitData keeps the literal exactly as written (quotes, radix, flags).
type ExprLitData struct {
	Kind LitKind
	Raw  string
}

// ExprArrayData elements may be NoExprID for holes.
type ExprArrayData struct {
	Elems []ExprID
}

type ExprObjectData struct {
	Props []PropID
}

// ExprFuncData serves function and arrow expressions.
type ExprFuncData struct {
	Func FuncID
}

// ExprUnaryData: Op is one of + - ! ~ typeof void delete.
type ExprUnaryData struct {
	Op  token.Kind
	Arg ExprID
}

type ExprUpdateData struct {
	Op     token.Kind // ++ or --
	Prefix bool
	Arg    ExprID
}

// ExprBinaryData serves binary and logical (&&, ||, ??) expressions.
type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Op     token.Kind
	Target PatID
	Value  ExprID
}

type ExprCondData struct {
	Test ExprID
	Cons ExprID
	Alt  ExprID
}

// ExprCallData serves calls and new expressions.
type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool
}

// ExprMemberData: when Computed is false, Property is an identifier naming the field.
type ExprMemberData struct {
	Object   ExprID
	Property ExprID
	Computed bool
	Optional bool
}

type ExprSeqData struct {
	Exprs []ExprID
}

// ExprArgData serves spread, await, yield and import(). Arg is NoExprID for a bare yield.
type ExprArgData struct {
	Arg      ExprID
	Delegate bool
}

// ExprTemplateData: len(Quasis) == len(Exprs)+1, quasis are raw text.
type ExprTemplateData struct {
	Tag    ExprID
	Quasis []string
	Exprs  []ExprID
}

type ExprClassData struct {
	Class ClassID
}
