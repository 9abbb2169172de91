package sema

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/source"
	"rill/internal/symbols"
	"rill/internal/trace"
)

// checkItem reports false when the declaration failed.
func (a *Analyzer) checkItem(id ast.ItemID) bool {
	item := a.builder.Items.Get(id)
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := a.builder.Items.Fn(id)
		return a.checkFn(fn)
	default:
		panic("sema: unknown item kind " + item.Kind.String())
	}
}

func (a *Analyzer) checkFn(fn *ast.FnItem) bool {
	name := a.builder.Name(fn.Name)
	sp := trace.Begin(a.tracer, trace.ScopeNode, "check_fn", a.parent).WithExtra("name", name)

	a.ctx.EnterScopeKind(symbols.ScopeFunction, fn.Span)
	defer a.ctx.ExitScope()

	for _, pid := range a.builder.Items.GetFnParamIDs(fn) {
		param := a.builder.Items.FnParam(pid)
		pname := a.builder.Name(param.Name)
		if _, ok := a.ctx.Declare(pname, symbols.SymbolParam, a.builder.Types.Resolve(param.Type), param.Span); !ok {
			a.errorf(diag.SemaDuplicateSymbol, param.Span, "duplicate parameter '%s' in function '%s'", pname, name)
			sp.End("failed")
			return false
		}
	}

	ret := a.builder.Types.Resolve(fn.ReturnType)
	a.ctx.SetReturn(ret)
	defer a.ctx.ClearReturn()

	if !fn.HasBody() {
		sp.End("decl")
		return true
	}

	returns, ok := a.checkStmt(fn.Body)
	if !ok {
		sp.End("failed")
		return false
	}
	if returns == 0 && !ret.IsVoid() {
		diag.ReportWarning(a.reporter, diag.SemaMissingReturn, fn.NameSpan,
			fmt.Sprintf("function '%s' returns %s but has no 'ret' statement", name, ret)).Emit()
	}
	sp.End("ok")
	return true
}

func (a *Analyzer) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(a.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}
