package sema

import (
	"rill/internal/ast"
	"rill/internal/diag"
)

// checkStmt checks a statement and its children. It returns the number of
// return statements seen.
func (a *Analyzer) checkStmt(id ast.StmtID) (int, bool) {
	stmt := a.builder.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		returns := 0
		for _, child := range a.builder.Stmts.Block(id).Stmts {
			n, ok := a.checkStmt(child)
			if !ok {
				return returns, false
			}
			returns += n
		}
		return returns, true

	case ast.StmtReturn:
		ret := a.builder.Stmts.Return(id)
		got, ok := a.checkExpr(ret.Value)
		if !ok {
			return 0, false
		}
		want, _ := a.ctx.CurrentReturn()
		if !got.Equal(want) {
			a.errorf(diag.SemaReturnMismatch, stmt.Span, "return type mismatch: expected %s, got %s", want, got)
			return 0, false
		}
		return 1, true

	default:
		panic("sema: unknown statement kind " + stmt.Kind.String())
	}
}
