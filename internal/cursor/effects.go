package cursor

import (
	"slices"

	"github.com/pkg/errors"
)

// Effect derives new state from a state and the change-set that produced
// it. Effects must be pure: they return a modified copy and never keep
// references to the slices they were given.
type Effect[T comparable] func(s State[T], changed Changed) State[T]

// StateEffects keeps CurrentIndex, DesiredCurrentIndex and CurrentItem
// consistent with the collection. It only acts when Items,
// AvailableItemFlags, CurrentIndex or CurrentItemRequired changed.
func StateEffects[T comparable](s State[T], changed Changed) State[T] {
	if !changed.Items && !changed.AvailableItemFlags && !changed.CurrentIndex && !changed.CurrentItemRequired {
		return s
	}
	checkFlags(s)

	count := len(s.Items)
	atCursor, inRange := s.ItemAt(s.CurrentIndex)
	sameItem := inRange && s.HasCurrentItem && atCursor == s.CurrentItem

	desired := s.DesiredCurrentIndex
	switch {
	case changed.Items && !changed.CurrentIndex && count > 0 && !sameItem:
		// The collection was replaced under the cursor. Follow the old
		// item to its new position if it is still there.
		if s.HasCurrentItem {
			if i := slices.Index(s.Items, s.CurrentItem); i >= 0 {
				desired = i
			}
		}
	case changed.CurrentIndex && (!s.HasCurrentItem || (count > 0 && !sameItem)):
		// An explicit move beats any remembered desire.
		desired = s.CurrentIndex
	case s.CurrentItemRequired && s.CurrentIndex < 0:
		desired = 0
	}
	if s.CurrentItemRequired && desired < 0 {
		// A required cursor never settles on "no request", whichever rule
		// matched above.
		desired = 0
	}

	index := -1
	if desired < 0 {
		desired = -1
	} else if count > 0 {
		clamped := min(desired, count-1)
		index = ClosestAvailableItem(s, clamped, Forward)
		if index < 0 {
			index = ClosestAvailableItem(s, clamped-1, Backward)
		}
	}

	s.CurrentIndex = index
	s.DesiredCurrentIndex = desired
	s.CurrentItem, s.HasCurrentItem = s.ItemAt(index)
	return s
}

func checkFlags[T comparable](s State[T]) {
	if s.AvailableItemFlags != nil && len(s.AvailableItemFlags) != len(s.Items) {
		panic(errors.Errorf("cursor: %d availability flags for %d items",
			len(s.AvailableItemFlags), len(s.Items)))
	}
}
