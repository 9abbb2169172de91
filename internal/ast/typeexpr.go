package ast

import (
	"rill/internal/source"
	"rill/internal/types"
)

// TypeExpr is a type written in source. Implicit types (the `void` of a
// function without `->`) carry an empty span.
type TypeExpr struct {
	Span source.Span
	Type types.Type
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) New(span source.Span, ty types.Type) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Span: span, Type: ty}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

// Resolve returns the declared type, or void for an invalid id.
func (t *TypeExprs) Resolve(id TypeID) types.Type {
	if te := t.Get(id); te != nil {
		return te.Type
	}
	return types.Void()
}
