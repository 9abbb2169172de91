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
	// IntLit represents a decimal integer literal.
	IntLit

	KwFn  // fn
	KwRet // ret
	KwI32 // i32

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Colon     // :
	Comma     // ,
	Semicolon // ;
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	KwFn:      "KwFn",
	KwRet:     "KwRet",
	KwI32:     "KwI32",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Colon:     "Colon",
	Comma:     "Comma",
	Semicolon: "Semicolon",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

var kindLexemes = [...]string{
	KwFn:      "fn",
	KwRet:     "ret",
	KwI32:     "i32",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Colon:     ":",
	Comma:     ",",
	Semicolon: ";",
	Arrow:     "->",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	kindCount: "",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Lexeme returns the fixed spelling of keyword and punctuation kinds,
// or "" for kinds whose text varies.
func (k Kind) Lexeme() string {
	if k < kindCount {
		return kindLexemes[k]
	}
	return ""
}
