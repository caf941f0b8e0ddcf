package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// IntLit is an integer literal with a uint64 payload.
	IntLit
	// FloatLit is a floating-point literal with a float64 payload.
	FloatLit
	// BoolLit is a 'true' or 'false' literal with a bool payload.
	BoolLit
	// StringLit is a string literal with an owned string payload.
	StringLit

	// Plus represents '+'.
	Plus // +
	// Minus represents '-'.
	Minus // -
	// Star represents '*'.
	Star // *
	// Slash represents '/'.
	Slash // /
	// Percent represents '%'.
	Percent // %
	// Assign represents '='.
	Assign // =
	// EqEq represents '=='.
	EqEq // ==
	// Bang represents '!'.
	Bang // !
	// BangEq represents '!='.
	BangEq // !=
	// Lt represents '<'.
	Lt // <
	// LtEq represents '<='.
	LtEq // <=
	// Gt represents '>'.
	Gt // >
	// GtEq represents '>='.
	GtEq // >=
	// AndAnd represents '&&'.
	AndAnd // &&
	// OrOr represents '||'.
	OrOr // ||
	// Arrow represents '->'.
	Arrow // ->

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;
	// Colon represents ':'.
	Colon // :
	// Dot represents '.'.
	Dot // .

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwLet:     "KwLet",
	KwFn:      "KwFn",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwWhile:   "KwWhile",
	KwReturn:  "KwReturn",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	BoolLit:   "BoolLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Comma:     "Comma",
	Semicolon: "Semicolon",
	Colon:     "Colon",
	Dot:       "Dot",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsLiteral reports whether the kind carries a literal payload.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the kind is a language keyword.
func (k Kind) IsKeyword() bool {
	switch k {
	case KwLet, KwFn, KwIf, KwElse, KwWhile, KwReturn:
		return true
	default:
		return false
	}
}
