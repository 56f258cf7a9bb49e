package parser

import (
	"fmt"

	"github.com/sandrolain/gocalc/pkg/types"
)

// bounded is a growable ordered sequence guarded by a maximum length.
// Each Parse call owns its own pair of sequences.
type bounded[T any] struct {
	items []T
	limit int
	what  string
}

func newBounded[T any](limit int, what string) *bounded[T] {
	hint := limit
	if hint > 16 {
		hint = 16
	}
	return &bounded[T]{
		items: make([]T, 0, hint),
		limit: limit,
		what:  what,
	}
}

// push appends v, failing with ErrCapacityExceeded once the sequence
// already holds limit items.
func (b *bounded[T]) push(v T, position int) error {
	if len(b.items) >= b.limit {
		return types.NewError(types.ErrCapacityExceeded,
			fmt.Sprintf("expression exceeds %d %s", b.limit, b.what), position)
	}
	b.items = append(b.items, v)
	return nil
}

func (b *bounded[T]) len() int {
	return len(b.items)
}
