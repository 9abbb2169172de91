package token

import (
	"fmt"

	"rill/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind    Kind
	Text    string
	Span    source.Span
	Pos     source.Position
	Leading []Trivia
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBrace
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == KwFn || t.Kind == KwRet || t.Kind == KwI32
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

func (t Token) IsEOF() bool { return t.Kind == EOF }

// String renders the token for diagnostics, e.g. Ident("main") or Semicolon.
func (t Token) String() string {
	switch t.Kind {
	case Ident, IntLit, Invalid:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
