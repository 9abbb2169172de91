package ast

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	default:
		return fmt.Sprintf("ItemKind(%d)", k)
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint * 2),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// Name returns the declared name of an item or NoStringID.
func (i *Items) Name(id ItemID) source.StringID {
	item := i.Get(id)
	if item == nil {
		return source.NoStringID
	}
	switch item.Kind {
	case ItemFn:
		return i.Fns.Get(uint32(item.Payload)).Name
	default:
		panic(fmt.Sprintf("ast: unhandled item kind %v", item.Kind))
	}
}

func (i *Items) allocateParams(params []FnParam) (start FnParamID, count uint32) {
	if len(params) == 0 {
		return NoFnParamID, 0
	}
	for idx, param := range params {
		id := FnParamID(i.FnParams.Allocate(param))
		if idx == 0 {
			start = id
		}
	}
	count, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("fn params count overflow: %w", err))
	}
	return start, count
}
