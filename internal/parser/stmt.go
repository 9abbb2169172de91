package parser

import (
	"rill/internal/ast"
	"rill/internal/token"
)

// parseBlock parses `{ statement* }`.
func (p *Parser) parseBlock() (ast.StmtID, *Error) {
	lbrace, err := p.consume()
	if err != nil {
		return ast.NoStmtID, err
	}
	var stmts []ast.StmtID
	for {
		tok, ok := p.peek()
		if !ok {
			return ast.NoStmtID, p.exhausted()
		}
		switch tok.Kind {
		case token.RBrace:
			rbrace, _ := p.consume()
			return p.arenas.Stmts.NewBlock(lbrace.Span.Cover(rbrace.Span), stmts), nil
		case token.KwRet:
			stmt, err := p.parseReturn()
			if err != nil {
				return ast.NoStmtID, err
			}
			stmts = append(stmts, stmt)
		default:
			return ast.NoStmtID, p.errorAt(ErrUnexpectedToken, tok, "", "expected 'ret' or '}'")
		}
	}
}

// parseReturn parses `ret expression ;`.
func (p *Parser) parseReturn() (ast.StmtID, *Error) {
	retTok, err := p.consume()
	if err != nil {
		return ast.NoStmtID, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, ok := p.eat(token.Semicolon); !ok {
		return ast.NoStmtID, p.fail(ErrSyntax, "", "expected ';' after return value").suggestInsert(p.lastSpan, ";")
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.lastSpan), value), nil
}
