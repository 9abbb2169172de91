package parser

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/token"
	"rill/internal/trace"
	"rill/internal/types"
)

// parseFnItem parses `fn name(params) [-> type] (body | ;)`.
// The parameter scope is pushed for the whole declaration and popped on every path.
func (p *Parser) parseFnItem() (ast.ItemID, *Error) {
	fnTok, err := p.consume()
	if err != nil {
		return ast.NoItemID, err
	}
	nameTok, ok := p.eat(token.Ident)
	if !ok {
		return ast.NoItemID, p.fail(ErrUnexpectedToken, "", "expected function name")
	}

	sp := trace.Begin(p.opts.Tracer, trace.ScopeNode, "fn", p.opts.TraceParent)
	sp.WithExtra("name", nameTok.Text)

	p.ctx.EnterScope()
	defer p.ctx.ExitScope()

	params, err := p.parseParams()
	if err != nil {
		sp.End("error")
		return ast.NoItemID, err
	}

	returnType, err := p.parseReturnType()
	if err != nil {
		sp.End("error")
		return ast.NoItemID, err
	}

	var body ast.StmtID
	switch {
	case p.at(token.LBrace):
		body, err = p.parseBlock()
		if err != nil {
			sp.End("error")
			return ast.NoItemID, err
		}
	case p.at(token.Semicolon):
		_, _ = p.consume()
	default:
		sp.End("error")
		return ast.NoItemID, p.fail(ErrMissingToken, "'{' or ';'", "")
	}

	span := fnTok.Span.Cover(p.lastSpan)
	id := p.arenas.Items.NewFn(p.intern(nameTok), nameTok.Span, params, returnType, body, span)
	sp.WithExtra("params", fmt.Sprint(len(params))).End("ok")
	return id, nil
}

// parseParams parses `( [param {, param}] )` and binds each name in the
// current scope.
func (p *Parser) parseParams() ([]ast.FnParam, *Error) {
	if _, ok := p.eat(token.LParen); !ok {
		return nil, p.fail(ErrMissingToken, "opening parenthesis '('", "")
	}
	if _, ok := p.eat(token.RParen); ok {
		return nil, nil
	}

	var params []ast.FnParam
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if _, ok := p.eat(token.Comma); ok {
			continue
		}
		if _, ok := p.eat(token.RParen); ok {
			return params, nil
		}
		return nil, p.fail(ErrMissingToken, "')'", "")
	}
}

func (p *Parser) parseParam() (ast.FnParam, *Error) {
	nameTok, ok := p.peek()
	if !ok {
		return ast.FnParam{}, p.exhausted()
	}
	if nameTok.Kind != token.Ident {
		return ast.FnParam{}, p.errorAt(ErrUnexpectedToken, nameTok, "", "expected parameter name")
	}
	_, _ = p.consume()

	if _, ok := p.eat(token.Colon); !ok {
		return ast.FnParam{}, p.fail(ErrSyntax, "", fmt.Sprintf("expected ':' after parameter name '%s'", nameTok.Text))
	}

	typeID, ty, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, p.fail(ErrMissingToken, "parameter type", "")
	}

	if !p.ctx.AddSymbol(nameTok.Text, ty) {
		return ast.FnParam{}, p.errorAt(ErrInvalidParameter, nameTok, "", fmt.Sprintf("duplicate parameter '%s'", nameTok.Text))
	}

	return ast.FnParam{
		Name: p.intern(nameTok),
		Type: typeID,
		Span: nameTok.Span.Cover(p.lastSpan),
	}, nil
}

// parseReturnType parses an optional `-> type`; without it the function returns void.
func (p *Parser) parseReturnType() (ast.TypeID, *Error) {
	if _, ok := p.eat(token.Arrow); !ok {
		return p.arenas.Types.New(p.lastSpan.ZeroideToEnd(), types.Void()), nil
	}
	typeID, _, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, p.fail(ErrMissingToken, "return type", "")
	}
	return typeID, nil
}

// parseType accepts `i32` or a user type name. It consumes nothing on failure.
func (p *Parser) parseType() (ast.TypeID, types.Type, bool) {
	tok, ok := p.peek()
	if !ok {
		return ast.NoTypeID, types.Type{}, false
	}
	var ty types.Type
	switch tok.Kind {
	case token.KwI32:
		ty = types.I32()
	case token.Ident:
		ty = types.Named(tok.Text)
	default:
		return ast.NoTypeID, types.Type{}, false
	}
	_, _ = p.consume()
	return p.arenas.Types.New(tok.Span, ty), ty, true
}
