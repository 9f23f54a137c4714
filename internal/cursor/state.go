package cursor

import "slices"

// State is the selection state a Cursor reconciles.
//
// Items and AvailableItemFlags are treated as immutable once handed to a
// Cursor: replace the slice to change the collection.
type State[T comparable] struct {
	// Items is the ordered collection. nil means no collection yet.
	Items []T

	// AvailableItemFlags marks which items may become current. nil means
	// every item is available. When set, it has the same length as Items.
	AvailableItemFlags []bool

	// CurrentIndex is the position of the current item, or -1 for none.
	CurrentIndex int

	// DesiredCurrentIndex is the position the caller asked for, which may
	// not be reachable yet. -1 means no request.
	DesiredCurrentIndex int

	// CurrentItem caches Items[CurrentIndex] so it can be found again by
	// identity after the collection is replaced.
	CurrentItem    T
	HasCurrentItem bool

	// CurrentItemRequired selects the first available item whenever
	// nothing is current.
	CurrentItemRequired bool

	// CursorOperationsWrap lets directional search continue past the ends
	// of the collection.
	CursorOperationsWrap bool
}

// DefaultState returns the state a new cursor starts from.
func DefaultState[T comparable]() State[T] {
	return State[T]{
		CurrentIndex:        -1,
		DesiredCurrentIndex: -1,
	}
}

// Count returns the number of items.
func (s State[T]) Count() int {
	return len(s.Items)
}

// Available reports whether the item at index may become current.
func (s State[T]) Available(index int) bool {
	if index < 0 || index >= len(s.Items) {
		return false
	}
	if s.AvailableItemFlags == nil {
		return true
	}
	return s.AvailableItemFlags[index]
}

// ItemAt returns the item at index and whether index is in range.
func (s State[T]) ItemAt(index int) (T, bool) {
	if index < 0 || index >= len(s.Items) {
		var zero T
		return zero, false
	}
	return s.Items[index], true
}

func (s State[T]) clone() State[T] {
	s.Items = cloneNilable(s.Items)
	s.AvailableItemFlags = cloneNilable(s.AvailableItemFlags)
	return s
}

func cloneNilable[E any](v []E) []E {
	if v == nil {
		return nil
	}
	return slices.Clone(v)
}

// Changed records which fields of a State differ from a previous State.
type Changed struct {
	Items                bool
	AvailableItemFlags   bool
	CurrentIndex         bool
	DesiredCurrentIndex  bool
	CurrentItem          bool
	CurrentItemRequired  bool
	CursorOperationsWrap bool
}

// AllChanged marks every field as changed. A freshly created cursor
// reconciles with this change-set.
func AllChanged() Changed {
	return Changed{
		Items:                true,
		AvailableItemFlags:   true,
		CurrentIndex:         true,
		DesiredCurrentIndex:  true,
		CurrentItem:          true,
		CurrentItemRequired:  true,
		CursorOperationsWrap: true,
	}
}

// Any reports whether at least one field changed.
func (c Changed) Any() bool {
	return c != Changed{}
}

// Union reports the fields changed in either c or other.
func (c Changed) Union(other Changed) Changed {
	return Changed{
		Items:                c.Items || other.Items,
		AvailableItemFlags:   c.AvailableItemFlags || other.AvailableItemFlags,
		CurrentIndex:         c.CurrentIndex || other.CurrentIndex,
		DesiredCurrentIndex:  c.DesiredCurrentIndex || other.DesiredCurrentIndex,
		CurrentItem:          c.CurrentItem || other.CurrentItem,
		CurrentItemRequired:  c.CurrentItemRequired || other.CurrentItemRequired,
		CursorOperationsWrap: c.CursorOperationsWrap || other.CursorOperationsWrap,
	}
}

// Diff computes the change-set between two states.
func Diff[T comparable](before, after State[T]) Changed {
	return Changed{
		Items:                !sameSlice(before.Items, after.Items),
		AvailableItemFlags:   !sameSlice(before.AvailableItemFlags, after.AvailableItemFlags),
		CurrentIndex:         before.CurrentIndex != after.CurrentIndex,
		DesiredCurrentIndex:  before.DesiredCurrentIndex != after.DesiredCurrentIndex,
		CurrentItem:          before.HasCurrentItem != after.HasCurrentItem || before.CurrentItem != after.CurrentItem,
		CurrentItemRequired:  before.CurrentItemRequired != after.CurrentItemRequired,
		CursorOperationsWrap: before.CursorOperationsWrap != after.CursorOperationsWrap,
	}
}

func sameSlice[E comparable](a, b []E) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}
