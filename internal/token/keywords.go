package token

var keywords = map[string]Kind{
	"let":    KwLet,
	"fn":     KwFn,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
}

// LookupKeyword returns the keyword kind for ident, or Ident if it is not a
// keyword. The literals 'true' and 'false' are not keywords; the lexer turns
// them into BoolLit tokens directly.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
