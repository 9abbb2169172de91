package ast

import (
	"rill/internal/source"
)

// FnParam is one `name: type` entry of a parameter list.
type FnParam struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// FnItem is a function declaration. Body is NoStmtID for `fn f();`.
type FnItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart FnParamID
	ParamsCount uint32
	ReturnType  TypeID
	Body        StmtID
	Span        source.Span
}

// HasBody reports whether the declaration has a `{ ... }` body.
func (fn *FnItem) HasBody() bool {
	return fn.Body.IsValid()
}

func (i *Items) NewFn(
	name source.StringID,
	nameSpan source.Span,
	params []FnParam,
	returnType TypeID,
	body StmtID,
	span source.Span,
) ItemID {
	paramsStart, paramsCount := i.allocateParams(params)
	payload := i.Fns.Allocate(FnItem{
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: paramsStart,
		ParamsCount: paramsCount,
		ReturnType:  returnType,
		Body:        body,
		Span:        span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}

// Fn returns the payload of a function item.
func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// GetFnParamIDs lists the parameter ids of fn in declaration order.
func (i *Items) GetFnParamIDs(fn *FnItem) []FnParamID {
	if fn == nil || fn.ParamsCount == 0 || !fn.ParamsStart.IsValid() {
		return nil
	}
	out := make([]FnParamID, 0, fn.ParamsCount)
	base := uint32(fn.ParamsStart)
	for off := range fn.ParamsCount {
		out = append(out, FnParamID(base+off))
	}
	return out
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	if !id.IsValid() {
		return nil
	}
	return i.FnParams.Get(uint32(id))
}
