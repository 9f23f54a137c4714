package cursor

import (
	"github.com/pkg/errors"
)

// Direction is the step used by directional search.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// ClosestAvailableItem returns the index of the nearest available item
// reachable from start while stepping in direction, or -1 if there is none.
//
// With CursorOperationsWrap set, start is first normalized into the
// collection and every position of the ring is visited once. Otherwise the
// search stops at either end of the collection.
func ClosestAvailableItem[T comparable](s State[T], start int, direction Direction) int {
	if direction != Forward && direction != Backward {
		panic(errors.Errorf("cursor: invalid search direction %d", direction))
	}

	count := len(s.Items)
	if count == 0 {
		return -1
	}

	step := int(direction)
	if s.CursorOperationsWrap {
		i := mod(start, count)
		for n := 0; n < count; n++ {
			if s.Available(i) {
				return i
			}
			i = mod(i+step, count)
		}
		return -1
	}

	for i := start; i >= 0 && i < count; i += step {
		if s.Available(i) {
			return i
		}
	}
	return -1
}

// mod is a modulus that stays non-negative for negative i.
func mod(i, n int) int {
	return ((i % n) + n) % n
}
