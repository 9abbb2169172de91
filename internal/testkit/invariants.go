// Package testkit holds checks shared by the parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/ast"
	"rill/internal/source"
)

// CheckSpanInvariants walks a parsed file and verifies its spans:
//  1. the file span lies within the content and points at sf
//  2. every item, parameter, statement and expression span is non-empty
//     and nested in its parent's span
//  3. implicit types carry an empty span, written ones a non-empty span
//  4. a binary expression covers both operands
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Items) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty but holds %d items", len(f.Items))
	}

	c := checker{b: b, file: sf.ID}
	for _, id := range f.Items {
		if err := c.item(id, f.Span); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	b    *ast.Builder
	file source.FileID
}

func (c checker) within(what string, sp, parent source.Span) error {
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %v is outside %v", what, sp, parent)
	}
	return nil
}

func (c checker) item(id ast.ItemID, parent source.Span) error {
	item := c.b.Items.Get(id)
	if item == nil {
		return fmt.Errorf("nil item for id=%d", id)
	}
	if err := c.within("item", item.Span, parent); err != nil {
		return err
	}
	fn, ok := c.b.Items.Fn(id)
	if !ok {
		return fmt.Errorf("item %d is not a function", id)
	}
	if err := c.within("function name", fn.NameSpan, item.Span); err != nil {
		return err
	}
	for _, pid := range c.b.Items.GetFnParamIDs(fn) {
		param := c.b.Items.FnParam(pid)
		if err := c.within("parameter", param.Span, item.Span); err != nil {
			return err
		}
		if err := c.typeExpr(param.Type, param.Span, false); err != nil {
			return err
		}
	}
	if err := c.typeExpr(fn.ReturnType, item.Span, true); err != nil {
		return err
	}
	if fn.HasBody() {
		return c.stmt(fn.Body, item.Span)
	}
	return nil
}

func (c checker) typeExpr(id ast.TypeID, parent source.Span, mayBeImplicit bool) error {
	te := c.b.Types.Get(id)
	if te == nil {
		return fmt.Errorf("nil type for id=%d", id)
	}
	if te.Span.Empty() {
		if !mayBeImplicit || !te.Type.IsVoid() {
			return fmt.Errorf("type %s has an empty span", te.Type)
		}
		if te.Span.Start < parent.Start || te.Span.Start > parent.End {
			return fmt.Errorf("implicit type anchored at %d outside %v", te.Span.Start, parent)
		}
		return nil
	}
	return c.within("type", te.Span, parent)
}

func (c checker) stmt(id ast.StmtID, parent source.Span) error {
	st := c.b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("nil stmt for id=%d", id)
	}
	if err := c.within(st.Kind.String(), st.Span, parent); err != nil {
		return err
	}
	switch st.Kind {
	case ast.StmtBlock:
		for _, inner := range c.b.Stmts.Block(id).Stmts {
			if err := c.stmt(inner, st.Span); err != nil {
				return err
			}
		}
	case ast.StmtReturn:
		return c.expr(c.b.Stmts.Return(id).Value, st.Span)
	default:
		return fmt.Errorf("unknown stmt kind %v", st.Kind)
	}
	return nil
}

func (c checker) expr(id ast.ExprID, parent source.Span) error {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if err := c.within(e.Kind.String(), e.Span, parent); err != nil {
		return err
	}
	switch e.Kind {
	case ast.ExprNumber, ast.ExprIdent:
		return nil
	case ast.ExprBinary:
		bin, _ := c.b.Exprs.Binary(id)
		if err := c.expr(bin.Left, e.Span); err != nil {
			return err
		}
		if err := c.expr(bin.Right, e.Span); err != nil {
			return err
		}
		left, right := c.b.Exprs.Get(bin.Left).Span, c.b.Exprs.Get(bin.Right).Span
		if left.Cover(right).Start < e.Span.Start || left.Cover(right).End > e.Span.End {
			return fmt.Errorf("binary span %v does not cover its operands", e.Span)
		}
		return nil
	case ast.ExprCall:
		call, _ := c.b.Exprs.Call(id)
		if err := c.within("callee", call.CalleeSpan, e.Span); err != nil {
			return err
		}
		for _, arg := range call.Args {
			if err := c.expr(arg, e.Span); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown expr kind %v", e.Kind)
	}
}
