package lower

import (
	"iter"

	"rill/internal/ast"
	"rill/internal/ir"
)

type Lowerer struct {
	b   *ast.Builder
	ctx *ir.Context
}

// New returns a lowerer over b. A nil ctx gets a fresh one.
func New(b *ast.Builder, ctx *ir.Context) *Lowerer {
	if ctx == nil {
		ctx = ir.NewContext()
	}
	return &Lowerer{b: b, ctx: ctx}
}

func (l *Lowerer) Context() *ir.Context { return l.ctx }

// File lowers items in order.
func (l *Lowerer) File(items []ast.ItemID) iter.Seq[ir.Instr] {
	seqs := make([]iter.Seq[ir.Instr], 0, len(items))
	for _, id := range items {
		seqs = append(seqs, l.Item(id))
	}
	return l.concat(seqs...)
}

// Item lowers a function: header, body statements, end marker.
func (l *Lowerer) Item(id ast.ItemID) iter.Seq[ir.Instr] {
	item := l.b.Items.Get(id)
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := l.b.Items.Fn(id)
		return l.fn(fn)
	default:
		panic("lower: unknown item kind " + item.Kind.String())
	}
}

func (l *Lowerer) fn(fn *ast.FnItem) iter.Seq[ir.Instr] {
	name := l.b.Name(fn.Name)
	params := l.b.Items.GetFnParamIDs(fn)
	return func(yield func(ir.Instr) bool) {
		l.ctx.BeginFunc(name)
		defer l.ctx.EndFunc()

		head := ir.Instr{
			Op:   ir.OpFunc,
			Name: name,
			Argc: len(params),
			Type: l.b.Types.Resolve(fn.ReturnType),
			Decl: !fn.HasBody(),
			Span: fn.Span,
		}
		if !l.emit(yield, head) {
			return
		}
		for _, pid := range params {
			param := l.b.Items.FnParam(pid)
			pname := l.b.Name(param.Name)
			in := ir.Instr{
				Op:   ir.OpParam,
				Name: pname,
				Slot: l.ctx.Bind(pname),
				Type: l.b.Types.Resolve(param.Type),
				Span: param.Span,
			}
			if !l.emit(yield, in) {
				return
			}
		}
		if !fn.HasBody() {
			return
		}
		for in := range l.Stmt(fn.Body) {
			if !yield(in) {
				return
			}
		}
		l.emit(yield, ir.Instr{Op: ir.OpEnd, Name: name, Span: fn.Span.ZeroideToEnd()})
	}
}

func (l *Lowerer) Stmt(id ast.StmtID) iter.Seq[ir.Instr] {
	stmt := l.b.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		block := l.b.Stmts.Block(id)
		seqs := make([]iter.Seq[ir.Instr], 0, len(block.Stmts))
		for _, child := range block.Stmts {
			seqs = append(seqs, l.Stmt(child))
		}
		return l.concat(seqs...)
	case ast.StmtReturn:
		ret := l.b.Stmts.Return(id)
		return l.concat(l.Expr(ret.Value), l.one(ir.Instr{Op: ir.OpRet, Span: stmt.Span}))
	default:
		panic("lower: unknown statement kind " + stmt.Kind.String())
	}
}

func (l *Lowerer) Expr(id ast.ExprID) iter.Seq[ir.Instr] {
	expr := l.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprNumber:
		n, _ := l.b.Exprs.Number(id)
		return l.one(ir.Instr{Op: ir.OpConst, Value: n.Value, Span: expr.Span})

	case ast.ExprIdent:
		ident, _ := l.b.Exprs.Ident(id)
		name := l.b.Name(ident.Name)
		return func(yield func(ir.Instr) bool) {
			// slot lookup happens during iteration, after the params are bound
			slot, ok := l.ctx.Slot(name)
			if !ok {
				slot = -1
			}
			l.emit(yield, ir.Instr{Op: ir.OpLoad, Name: name, Slot: slot, Span: expr.Span})
		}

	case ast.ExprBinary:
		bin, _ := l.b.Exprs.Binary(id)
		return l.concat(l.Expr(bin.Left), l.Expr(bin.Right), l.one(ir.Instr{Op: binaryOp(bin.Op), Span: expr.Span}))

	case ast.ExprCall:
		call, _ := l.b.Exprs.Call(id)
		seqs := make([]iter.Seq[ir.Instr], 0, len(call.Args)+1)
		for _, arg := range call.Args {
			seqs = append(seqs, l.Expr(arg))
		}
		seqs = append(seqs, l.one(ir.Instr{Op: ir.OpCall, Name: l.b.Name(call.Callee), Argc: len(call.Args), Span: expr.Span}))
		return l.concat(seqs...)

	default:
		panic("lower: unknown expression kind " + expr.Kind.String())
	}
}

func binaryOp(op ast.BinaryOp) ir.Op {
	switch op {
	case ast.BinaryAdd:
		return ir.OpAdd
	case ast.BinarySub:
		return ir.OpSub
	case ast.BinaryMul:
		return ir.OpMul
	case ast.BinaryDiv:
		return ir.OpDiv
	case ast.BinaryMod:
		return ir.OpMod
	default:
		panic("lower: unknown binary operator " + op.String())
	}
}

func (l *Lowerer) emit(yield func(ir.Instr) bool, in ir.Instr) bool {
	l.ctx.Count()
	return yield(in)
}

func (l *Lowerer) one(in ir.Instr) iter.Seq[ir.Instr] {
	return func(yield func(ir.Instr) bool) {
		l.emit(yield, in)
	}
}

// concat yields each sequence in turn, stopping when the consumer does.
func (l *Lowerer) concat(seqs ...iter.Seq[ir.Instr]) iter.Seq[ir.Instr] {
	return func(yield func(ir.Instr) bool) {
		for _, seq := range seqs {
			for in := range seq {
				if !yield(in) {
					return
				}
			}
		}
	}
}
