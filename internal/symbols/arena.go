package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

type arena[T any] struct {
	data []T
}

func newArena[T any](capHint uint) *arena[T] {
	return &arena[T]{data: make([]T, 0, capHint)}
}

// allocate returns a 1-based index.
func (a *arena[T]) allocate(v T) uint32 {
	a.data = append(a.data, v)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	return n
}

func (a *arena[T]) get(id uint32) *T {
	if id == 0 || int(id) > len(a.data) {
		return nil
	}
	return &a.data[id-1]
}

func (a *arena[T]) len() int { return len(a.data) }
