package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynUnclosedParen       Code = 2003
	SynUnclosedBrace       Code = 2004
	SynUnclosedBracket     Code = 2005
	SynExpectIdentifier    Code = 2006
	SynExpectExpression    Code = 2007
	SynInvalidAssignTarget Code = 2008
	SynForBadHeader        Code = 2009
	SynMissingInitializer  Code = 2010
	SynTryWithoutHandler   Code = 2011
	SynUnsupported         Code = 2012
	SynDuplicateDefault    Code = 2013
	SynIllegalNewline      Code = 2014

	// Ввод-вывод
	IOLoadFileError Code = 4001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegex:        "Unterminated regular expression",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected semicolon",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynInvalidAssignTarget:      "Invalid assignment target",
	SynForBadHeader:             "Malformed for-statement header",
	SynMissingInitializer:       "Missing initializer in const declaration",
	SynTryWithoutHandler:        "Missing catch or finally after try",
	SynUnsupported:              "Unsupported syntax",
	SynDuplicateDefault:         "More than one default clause in switch",
	SynIllegalNewline:           "Illegal newline",
	IOLoadFileError:             "I/O load file error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
