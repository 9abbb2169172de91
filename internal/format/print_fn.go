package format

import (
	"rill/internal/ast"
)

func (p *printer) printFnItem(fn *ast.FnItem) {
	w := p.writer
	w.WriteString("fn ")
	w.WriteString(p.builder.Name(fn.Name))
	w.WriteString("(")
	for i, pid := range p.builder.Items.GetFnParamIDs(fn) {
		param := p.builder.Items.FnParam(pid)
		if param == nil {
			continue
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(p.builder.Name(param.Name))
		w.WriteString(": ")
		p.printType(param.Type)
	}
	w.WriteString(")")

	// неявный void не печатаем
	if te := p.builder.Types.Get(fn.ReturnType); te != nil && !te.Span.Empty() {
		w.WriteString(" -> ")
		p.printType(fn.ReturnType)
	}

	if !fn.HasBody() {
		w.WriteString(";")
		return
	}
	w.WriteString(" ")
	p.printStmt(fn.Body)
}

func (p *printer) printType(id ast.TypeID) {
	p.writer.WriteString(p.builder.Types.Resolve(id).String())
}

func (p *printer) printStmt(id ast.StmtID) {
	stmt := p.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	w := p.writer
	switch stmt.Kind {
	case ast.StmtBlock:
		block := p.builder.Stmts.Block(id)
		if block == nil || len(block.Stmts) == 0 {
			w.WriteString("{}")
			return
		}
		w.WriteString("{")
		w.IndentPush()
		for _, child := range block.Stmts {
			w.Newline()
			p.printStmt(child)
		}
		w.IndentPop()
		w.Newline()
		w.WriteString("}")
	case ast.StmtReturn:
		ret := p.builder.Stmts.Return(id)
		w.WriteString("ret ")
		if ret != nil {
			p.printExpr(ret.Value, precLowest, false)
		}
		w.WriteString(";")
	default:
		w.CopySpan(stmt.Span)
	}
}
