package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"void":       KwVoid,
	"instanceof": KwInstanceof,
	"in":         KwIn,
	"this":       KwThis,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"debugger":   KwDebugger,
	"with":       KwWith,
	"class":      KwClass,
	"extends":    KwExtends,
	"super":      KwSuper,
	"import":     KwImport,
	"export":     KwExport,
	"yield":      KwYield,
}

// punctuators maps every operator spelling to its kind. The lexer matches longest first.
var punctuators = map[string]Kind{
	"(": LParen, ")": RParen, "{": LBrace, "}": RBrace, "[": LBracket, "]": RBracket,
	";": Semicolon, ",": Comma, ".": Dot, "...": Ellipsis, "?": Question, "?.": QuestionDot,
	":": Colon, "=>": Arrow,

	"+": Plus, "-": Minus, "*": Star, "/": Slash, "%": Percent, "**": StarStar,
	"++": PlusPlus, "--": MinusMinus, "<<": Shl, ">>": Shr, ">>>": UShr,
	"&": Amp, "|": Pipe, "^": Caret, "!": Bang, "~": Tilde,
	"&&": AndAnd, "||": OrOr, "??": QuestionQuestion,
	"<": Lt, ">": Gt, "<=": LtEq, ">=": GtEq, "==": EqEq, "!=": BangEq, "===": EqEqEq, "!==": BangEqEq,

	"=": Assign, "+=": PlusAssign, "-=": MinusAssign, "*=": StarAssign, "/=": SlashAssign,
	"%=": PercentAssign, "**=": StarStarAssign, "<<=": ShlAssign, ">>=": ShrAssign,
	">>>=": UShrAssign, "&=": AmpAssign, "|=": PipeAssign, "^=": CaretAssign,
	"&&=": AndAndAssign, "||=": OrOrAssign, "??=": QuestionQuestionAssign,
}

// LookupKeyword returns the keyword kind for text, if it is a reserved word.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// LookupPunct returns the operator kind spelled exactly as text.
func LookupPunct(text string) (Kind, bool) {
	k, ok := punctuators[text]
	return k, ok
}

// IsReserved reports whether name cannot be used as a binding identifier.
func IsReserved(name string) bool {
	if _, ok := keywords[name]; ok {
		return true
	}
	switch name {
	case "enum", "await", "implements", "interface", "package", "private", "protected", "public", "static":
		return true
	}
	return false
}
