package parser

import (
	"deob/internal/token"
)

// Binary operator precedence; higher binds tighter.
const (
	precNullish        = 1  // ??
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == != === !==
	precRelational     = 8  // < > <= >= instanceof in
	precShift          = 9  // << >> >>>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
	precExponent       = 12 // **
)

// binaryPrec returns the precedence of kind as a binary operator and whether
// it is right-associative; -1 when kind is not a binary operator.
func (p *Parser) binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.QuestionQuestion:
		return precNullish, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality, false
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof:
		return precRelational, false
	case token.KwIn:
		if p.noIn {
			return -1, false
		}
		return precRelational, false
	case token.Shl, token.Shr, token.UShr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.StarStar:
		return precExponent, true
	default:
		return -1, false
	}
}

func isUnaryOp(kind token.Kind) bool {
	switch kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.KwTypeof, token.KwVoid, token.KwDelete:
		return true
	default:
		return false
	}
}
