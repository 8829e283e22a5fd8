package ast

import (
	"deob/internal/source"
	"deob/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLitData]
	Arrays    *Arena[ExprArrayData]
	Objects   *Arena[ExprObjectData]
	Funcs     *Arena[ExprFuncData]
	Unaries   *Arena[ExprUnaryData]
	Updates   *Arena[ExprUpdateData]
	Binaries  *Arena[ExprBinaryData]
	Assigns   *Arena[ExprAssignData]
	Conds     *Arena[ExprCondData]
	Calls     *Arena[ExprCallData]
	Members   *Arena[ExprMemberData]
	Seqs      *Arena[ExprSeqData]
	Args      *Arena[ExprArgData]
	Templates *Arena[ExprTemplateData]
	Classes   *Arena[ExprClassData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := max(capHint>>3, 4)
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint >> 1),
		Literals:  NewArena[ExprLitData](capHint >> 1),
		Arrays:    NewArena[ExprArrayData](small),
		Objects:   NewArena[ExprObjectData](small),
		Funcs:     NewArena[ExprFuncData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		Updates:   NewArena[ExprUpdateData](small),
		Binaries:  NewArena[ExprBinaryData](capHint >> 2),
		Assigns:   NewArena[ExprAssignData](small),
		Conds:     NewArena[ExprCondData](small),
		Calls:     NewArena[ExprCallData](capHint >> 2),
		Members:   NewArena[ExprMemberData](capHint >> 2),
		Seqs:      NewArena[ExprSeqData](small),
		Args:      NewArena[ExprArgData](small),
		Templates: NewArena[ExprTemplateData](small),
		Classes:   NewArena[ExprClassData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (PayloadID, bool) {
	expr := e.Get(id)
	if expr == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return expr.Payload, true
		}
	}
	return NoPayloadID, false
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(uint32(p)), true
}

// NewLit creates a new literal expression.
func (e *Exprs) NewLit(span source.Span, kind LitKind, raw string) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Kind: kind, Raw: raw})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the literal data for the given expression ID.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(uint32(p)), true
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payload(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(uint32(p)), true
}

func (e *Exprs) NewObject(span source.Span, props []PropID) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Props: props})
	return e.new(ExprObject, span, PayloadID(payload))
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	p, ok := e.payload(id, ExprObject)
	if !ok {
		return nil, false
	}
	return e.Objects.Get(uint32(p)), true
}

// NewFunc creates a function expression, or an arrow function when arrow is set.
func (e *Exprs) NewFunc(span source.Span, arrow bool, fn FuncID) ExprID {
	payload := e.Funcs.Allocate(ExprFuncData{Func: fn})
	kind := ExprFunc
	if arrow {
		kind = ExprArrow
	}
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Func(id ExprID) (*ExprFuncData, bool) {
	p, ok := e.payload(id, ExprFunc, ExprArrow)
	if !ok {
		return nil, false
	}
	return e.Funcs.Get(uint32(p)), true
}

func (e *Exprs) NewUnary(span source.Span, op token.Kind, arg ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Arg: arg})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(uint32(p)), true
}

func (e *Exprs) NewUpdate(span source.Span, op token.Kind, prefix bool, arg ExprID) ExprID {
	payload := e.Updates.Allocate(ExprUpdateData{Op: op, Prefix: prefix, Arg: arg})
	return e.new(ExprUpdate, span, PayloadID(payload))
}

func (e *Exprs) Update(id ExprID) (*ExprUpdateData, bool) {
	p, ok := e.payload(id, ExprUpdate)
	if !ok {
		return nil, false
	}
	return e.Updates.Get(uint32(p)), true
}

// NewBinary creates a binary expression; &&, || and ?? produce ExprLogical.
func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	kind := ExprBinary
	if IsLogicalOp(op) {
		kind = ExprLogical
	}
	return e.new(kind, span, PayloadID(payload))
}

// Binary returns the operands of a binary or logical expression.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary, ExprLogical)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(uint32(p)), true
}

// IsLogicalOp reports whether op short-circuits.
func IsLogicalOp(op token.Kind) bool {
	return op == token.AndAnd || op == token.OrOr || op == token.QuestionQuestion
}

func (e *Exprs) NewAssign(span source.Span, op token.Kind, target PatID, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(uint32(p)), true
}

func (e *Exprs) NewCond(span source.Span, test, cons, alt ExprID) ExprID {
	payload := e.Conds.Allocate(ExprCondData{Test: test, Cons: cons, Alt: alt})
	return e.new(ExprCond, span, PayloadID(payload))
}

func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	p, ok := e.payload(id, ExprCond)
	if !ok {
		return nil, false
	}
	return e.Conds.Get(uint32(p)), true
}

// NewCall creates a call, or a new expression when isNew is set.
func (e *Exprs) NewCall(span source.Span, isNew bool, callee ExprID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Optional: optional})
	kind := ExprCall
	if isNew {
		kind = ExprNew
	}
	return e.new(kind, span, PayloadID(payload))
}

// Call returns the payload of a call or new expression.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall, ExprNew)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(uint32(p)), true
}

func (e *Exprs) NewMember(span source.Span, data ExprMemberData) ExprID {
	payload := e.Members.Allocate(data)
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(uint32(p)), true
}

func (e *Exprs) NewSeq(span source.Span, exprs []ExprID) ExprID {
	payload := e.Seqs.Allocate(ExprSeqData{Exprs: exprs})
	return e.new(ExprSeq, span, PayloadID(payload))
}

func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	p, ok := e.payload(id, ExprSeq)
	if !ok {
		return nil, false
	}
	return e.Seqs.Get(uint32(p)), true
}

// NewArg creates a spread, await or yield expression.
func (e *Exprs) NewArg(span source.Span, kind ExprKind, arg ExprID, delegate bool) ExprID {
	payload := e.Args.Allocate(ExprArgData{Arg: arg, Delegate: delegate})
	return e.new(kind, span, PayloadID(payload))
}

// Arg returns the payload of a spread, await or yield expression.
func (e *Exprs) Arg(id ExprID) (*ExprArgData, bool) {
	p, ok := e.payload(id, ExprSpread, ExprAwait, ExprYield, ExprImport)
	if !ok {
		return nil, false
	}
	return e.Args.Get(uint32(p)), true
}

func (e *Exprs) NewTemplate(span source.Span, tag ExprID, quasis []string, exprs []ExprID) ExprID {
	payload := e.Templates.Allocate(ExprTemplateData{Tag: tag, Quasis: quasis, Exprs: exprs})
	return e.new(ExprTemplate, span, PayloadID(payload))
}

func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	p, ok := e.payload(id, ExprTemplate)
	if !ok {
		return nil, false
	}
	return e.Templates.Get(uint32(p)), true
}

func (e *Exprs) NewClass(span source.Span, cls ClassID) ExprID {
	payload := e.Classes.Allocate(ExprClassData{Class: cls})
	return e.new(ExprClass, span, PayloadID(payload))
}

func (e *Exprs) Class(id ExprID) (*ExprClassData, bool) {
	p, ok := e.payload(id, ExprClass)
	if !ok {
		return nil, false
	}
	return e.Classes.Get(uint32(p)), true
}

func (e *Exprs) NewSuper(span source.Span) ExprID {
	return e.new(ExprSuper, span, NoPayloadID)
}

// NewPrivate creates a private name; name excludes the '#'.
func (e *Exprs) NewPrivate(span source.Span, name string) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprPrivate, span, PayloadID(payload))
}

func (e *Exprs) Private(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprPrivate)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(uint32(p)), true
}
