package sema

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/symbols"
	"rill/internal/types"
)

// checkExpr types an expression; on failure the error is already reported.
func (a *Analyzer) checkExpr(id ast.ExprID) (types.Type, bool) {
	ty, ok := a.exprType(id)
	if ok {
		a.result.ExprTypes[id] = ty
	}
	return ty, ok
}

func (a *Analyzer) exprType(id ast.ExprID) (types.Type, bool) {
	expr := a.builder.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprNumber:
		return types.I32(), true

	case ast.ExprIdent:
		data, _ := a.builder.Exprs.Ident(id)
		name := a.builder.Name(data.Name)
		sym, ok := a.ctx.LookupSymbol(name)
		if !ok {
			a.errorf(diag.SemaUnresolvedSymbol, expr.Span, "unresolved symbol '%s'", name)
			return types.Type{}, false
		}
		if sym.Kind == symbols.SymbolFunction {
			a.errorf(diag.SemaUnresolvedSymbol, expr.Span, "'%s' is a function, call it as %s()", name, name)
			return types.Type{}, false
		}
		return sym.Type, true

	case ast.ExprBinary:
		data, _ := a.builder.Exprs.Binary(id)
		left, ok := a.checkExpr(data.Left)
		if !ok {
			return types.Type{}, false
		}
		right, ok := a.checkExpr(data.Right)
		if !ok {
			return types.Type{}, false
		}
		if !left.IsI32() || !right.IsI32() {
			a.errorf(diag.SemaTypeMismatch, expr.Span, "operator '%s' requires i32 operands, got %s and %s", data.Op, left, right)
			return types.Type{}, false
		}
		return types.I32(), true

	case ast.ExprCall:
		return a.checkCall(id, expr)

	default:
		panic("sema: unknown expression kind " + expr.Kind.String())
	}
}

func (a *Analyzer) checkCall(id ast.ExprID, expr *ast.Expr) (types.Type, bool) {
	data, _ := a.builder.Exprs.Call(id)
	name := a.builder.Name(data.Callee)
	sig, ok := a.ctx.Function(name)
	if !ok {
		a.errorf(diag.SemaUnresolvedSymbol, data.CalleeSpan, "unknown function '%s'", name)
		return types.Type{}, false
	}
	if len(data.Args) != len(sig.Params) {
		a.errorf(diag.SemaArgCount, expr.Span, "function '%s' expects %d argument(s), got %d", name, len(sig.Params), len(data.Args))
		return types.Type{}, false
	}
	for i, arg := range data.Args {
		got, ok := a.checkExpr(arg)
		if !ok {
			return types.Type{}, false
		}
		if !got.Equal(sig.Params[i]) {
			argSpan := a.builder.Exprs.Get(arg).Span
			a.errorf(diag.SemaTypeMismatch, argSpan, "argument %d of '%s': expected %s, got %s", i+1, name, sig.Params[i], got)
			return types.Type{}, false
		}
	}
	return sig.Result, true
}
