package format

import (
	"strconv"

	"rill/internal/ast"
)

const (
	precLowest = iota
	precAdditive
	precMultiplicative
	precAtom
)

func binaryPrec(op ast.BinaryOp) int {
	switch op {
	case ast.BinaryAdd, ast.BinarySub:
		return precAdditive
	case ast.BinaryMul, ast.BinaryDiv, ast.BinaryMod:
		return precMultiplicative
	default:
		return precAtom
	}
}

func (p *printer) exprPrec(id ast.ExprID) int {
	if bin, ok := p.builder.Exprs.Binary(id); ok && bin != nil {
		return binaryPrec(bin.Op)
	}
	return precAtom
}

// printExpr prints id inside a context of precedence parent. Binary operators
// are left-associative, so a right operand of equal precedence keeps its
// parentheses: `a - (b - c)` must not become `a - b - c`.
func (p *printer) printExpr(id ast.ExprID, parent int, right bool) {
	expr := p.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	prec := p.exprPrec(id)
	wrap := prec < parent || (right && prec == parent && prec != precAtom)
	w := p.writer
	if wrap {
		w.WriteString("(")
	}
	switch expr.Kind {
	case ast.ExprNumber:
		if num, ok := p.builder.Exprs.Number(id); ok {
			w.WriteString(strconv.FormatInt(num.Value, 10))
		}
	case ast.ExprIdent:
		if ident, ok := p.builder.Exprs.Ident(id); ok {
			w.WriteString(p.builder.Name(ident.Name))
		}
	case ast.ExprBinary:
		if bin, ok := p.builder.Exprs.Binary(id); ok {
			p.printExpr(bin.Left, prec, false)
			w.WriteString(" " + bin.Op.String() + " ")
			p.printExpr(bin.Right, prec, true)
		}
	case ast.ExprCall:
		if call, ok := p.builder.Exprs.Call(id); ok {
			w.WriteString(p.builder.Name(call.Callee))
			w.WriteString("(")
			for i, arg := range call.Args {
				if i > 0 {
					w.WriteString(", ")
				}
				p.printExpr(arg, precLowest, false)
			}
			w.WriteString(")")
		}
	default:
		w.CopySpan(expr.Span)
	}
	if wrap {
		w.WriteString(")")
	}
}
