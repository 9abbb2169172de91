package parser

import (
	"fmt"
	"strconv"

	"rill/internal/ast"
	"rill/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, *Error) {
	return p.parseBinaryExpr(precAdditive)
}

// parseBinaryExpr does precedence climbing. The right operand is parsed one
// level tighter, so equal-precedence chains fold to the left.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, *Error) {
	left, err := p.parseFactor()
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		opTok, ok := p.peek()
		if !ok {
			return left, nil
		}
		prec := binaryPrec(opTok.Kind)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		_, _ = p.consume()

		right, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOp(opTok.Kind), left, right)
	}
}

// parseFactor: NUMBER | IDENT | IDENT '(' args ')' | '(' expression ')'.
func (p *Parser) parseFactor() (ast.ExprID, *Error) {
	tok, ok := p.peek()
	if !ok {
		return ast.NoExprID, p.exhausted()
	}
	switch tok.Kind {
	case token.IntLit:
		_, _ = p.consume()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return ast.NoExprID, p.errorAt(ErrSyntax, tok, "", fmt.Sprintf("integer literal '%s' is out of range", tok.Text))
		}
		return p.arenas.Exprs.NewNumber(tok.Span, value), nil

	case token.Ident:
		_, _ = p.consume()
		if p.at(token.LParen) {
			return p.parseCall(tok)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok)), nil

	case token.LParen:
		lparen, _ := p.consume()
		inner, err := p.parseExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		rparen, ok := p.eat(token.RParen)
		if !ok {
			return ast.NoExprID, p.fail(ErrMissingToken, "')'", "").suggestInsert(p.lastSpan, ")")
		}
		// группы не создают узел; выражение получает span со скобками
		p.arenas.Exprs.Get(inner).Span = lparen.Span.Cover(rparen.Span)
		return inner, nil

	default:
		return ast.NoExprID, p.errorAt(ErrUnexpectedToken, tok, "", "expected expression")
	}
}

// parseCall parses the argument list after a callee identifier.
func (p *Parser) parseCall(callee token.Token) (ast.ExprID, *Error) {
	_, _ = p.consume() // (
	var args []ast.ExprID
	if rparen, ok := p.eat(token.RParen); ok {
		return p.arenas.Exprs.NewCall(callee.Span.Cover(rparen.Span), p.intern(callee), callee.Span, args), nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		args = append(args, arg)

		if _, ok := p.eat(token.Comma); ok {
			continue
		}
		if rparen, ok := p.eat(token.RParen); ok {
			return p.arenas.Exprs.NewCall(callee.Span.Cover(rparen.Span), p.intern(callee), callee.Span, args), nil
		}
		return ast.NoExprID, p.fail(ErrMissingToken, "',' or ')' in function call", "")
	}
}
