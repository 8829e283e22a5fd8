package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including contextual keywords (async, of, get, set...).
	Ident
	// Number is a numeric literal, BigInt suffix included.
	Number
	// String is a single- or double-quoted string literal; Text keeps the quotes.
	String
	// Template is a whole template literal `...${...}...`; Text keeps the backquotes.
	Template
	// Regex is a regular expression literal; produced only by Lexer.RescanRegex.
	Regex
	// PrivateName is a class private name; Text keeps the '#'.
	PrivateName

	KwVar        // var
	KwLet        // let
	KwConst      // const
	KwFunction   // function
	KwReturn     // return
	KwIf         // if
	KwElse       // else
	KwFor        // for
	KwWhile      // while
	KwDo         // do
	KwBreak      // break
	KwContinue   // continue
	KwSwitch     // switch
	KwCase       // case
	KwDefault    // default
	KwThrow      // throw
	KwTry        // try
	KwCatch      // catch
	KwFinally    // finally
	KwNew        // new
	KwDelete     // delete
	KwTypeof     // typeof
	KwVoid       // void
	KwInstanceof // instanceof
	KwIn         // in
	KwThis       // this
	KwNull       // null
	KwTrue       // true
	KwFalse      // false
	KwDebugger   // debugger
	KwWith       // with
	KwClass      // class
	KwExtends    // extends
	KwSuper      // super
	KwImport     // import
	KwExport     // export
	KwYield      // yield

	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	Ellipsis    // ...
	Question    // ?
	QuestionDot // ?.
	Colon       // :
	Arrow       // =>

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	StarStar         // **
	PlusPlus         // ++
	MinusMinus       // --
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Bang             // !
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	Lt               // <
	Gt               // >
	LtEq             // <=
	GtEq             // >=
	EqEq             // ==
	BangEq           // !=
	EqEqEq           // ===
	BangEqEq         // !==

	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	Number:   "Number",
	String:   "String",
	Template: "Template",
	Regex:    "Regex",

	PrivateName: "PrivateName",
}

func init() {
	for text, k := range keywords {
		kindNames[k] = text
	}
	for text, k := range punctuators {
		kindNames[k] = text
	}
}

// String returns the canonical spelling of punctuators and keywords and a name for the rest.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwYield
}

// IsAssign reports whether k is "=" or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}
