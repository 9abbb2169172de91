package lexer

import (
	"rill/internal/token"
)

var singleByteKinds = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	':': token.Colon,
	',': token.Comma,
	';': token.Semicolon,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

// scanOperatorOrPunct is greedy: "->" wins over "-".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.try2('-', '>') {
		return emit(token.Arrow)
	}
	if k := singleByteKinds[lx.cursor.Peek()]; k != token.Invalid {
		lx.cursor.Bump()
		return emit(k)
	}
	return lx.scanUnknown()
}
