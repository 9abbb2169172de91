package parser

import (
	"rill/internal/source"
	"rill/internal/token"
)

// peek returns the current token without advancing; ok=false once the slice is exhausted.
func (p *Parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) at(k token.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == k
}

// consume returns the current token and advances. It refuses to step over
// the EOF marker, and reports a generic error when the stream has no marker.
func (p *Parser) consume() (token.Token, *Error) {
	tok, ok := p.peek()
	if !ok {
		return token.Token{}, p.exhausted()
	}
	if tok.Kind == token.EOF {
		return tok, p.errorAt(ErrUnexpectedToken, tok, "", "")
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok, nil
}

// eat consumes the current token if it has kind k.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if !p.at(k) {
		return token.Token{}, false
	}
	tok, _ := p.consume()
	return tok, true
}

// fail builds an error anchored at the current token.
func (p *Parser) fail(kind ErrorKind, expected, msg string) *Error {
	tok, ok := p.peek()
	if !ok {
		return p.exhausted()
	}
	return p.errorAt(kind, tok, expected, msg)
}

func (p *Parser) errorAt(kind ErrorKind, tok token.Token, expected, msg string) *Error {
	return &Error{
		Kind:     kind,
		File:     p.opts.File,
		Pos:      tok.Pos,
		Span:     tok.Span,
		Token:    tok,
		Expected: expected,
		Message:  msg,
	}
}

func (p *Parser) exhausted() *Error {
	var pos source.Position
	if n := len(p.toks); n > 0 {
		pos = p.toks[n-1].Pos
	}
	return &Error{
		Kind:    ErrGeneric,
		File:    p.opts.File,
		Pos:     pos,
		Span:    p.lastSpan.ZeroideToEnd(),
		Message: "token stream ended without an end-of-file marker",
	}
}

// intern интернирует текст токена.
func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.StringsInterner.Intern(tok.Text)
}
