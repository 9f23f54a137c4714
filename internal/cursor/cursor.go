// Package cursor tracks a current item over a changing collection.
//
// A Cursor owns a State and reconciles it after every mutation: when the
// collection is replaced the current item is followed by identity, out of
// range requests are clamped and remembered, and unavailable items are
// skipped. Navigation methods report whether the cursor actually moved so
// callers can skip redundant work.
//
// A Cursor is not safe for concurrent use. It is meant to be driven by a
// single owner, typically a UI event loop.
package cursor

import (
	"log"
)

// maxPasses bounds the reconciliation loop. StateEffects settles in one
// pass; further passes only run while owner effects keep changing state.
const maxPasses = 16

// Options configures a new Cursor.
type Options struct {
	Wrap                bool
	CurrentItemRequired bool
}

// Cursor is the current-item pointer over a collection of T.
type Cursor[T comparable] struct {
	state State[T]
	// effects are the owner effects. StateEffects always runs before them.
	effects []Effect[T]
}

// New creates a cursor over items. Extra effects run after StateEffects,
// in order, on every reconciliation pass.
func New[T comparable](items []T, opts Options, effects ...Effect[T]) *Cursor[T] {
	c := &Cursor[T]{
		effects: effects,
	}
	initial := DefaultState[T]()
	initial.Items = cloneNilable(items)
	initial.CursorOperationsWrap = opts.Wrap
	c.reconcile(initial, AllChanged())
	// Applied as a separate change so the required rule sees an empty
	// cursor and picks the first available item.
	if opts.CurrentItemRequired {
		c.SetCurrentItemRequired(true)
	}
	return c
}

// AddEffect appends an effect to the reconciliation chain. It takes part
// in the next reconciliation.
func (c *Cursor[T]) AddEffect(effect Effect[T]) {
	c.effects = append(c.effects, effect)
}

// State returns a copy of the current state.
func (c *Cursor[T]) State() State[T] {
	return c.state.clone()
}

// CurrentIndex returns the current position, or -1.
func (c *Cursor[T]) CurrentIndex() int {
	return c.state.CurrentIndex
}

// CurrentItem returns the current item and whether there is one.
func (c *Cursor[T]) CurrentItem() (T, bool) {
	return c.state.CurrentItem, c.state.HasCurrentItem
}

// DesiredIndex returns the last requested position, or -1.
func (c *Cursor[T]) DesiredIndex() int {
	return c.state.DesiredCurrentIndex
}

// PendingIndex returns the requested position while it differs from the
// current one, or -1 once the request has been satisfied.
func (c *Cursor[T]) PendingIndex() int {
	d := c.state.DesiredCurrentIndex
	if d < 0 || d == c.state.CurrentIndex {
		return -1
	}
	return d
}

// Count returns the number of items.
func (c *Cursor[T]) Count() int {
	return len(c.state.Items)
}

// Items returns the collection. The slice must not be modified.
func (c *Cursor[T]) Items() []T {
	return c.state.Items
}

// Wraps reports whether navigation wraps around the ends.
func (c *Cursor[T]) Wraps() bool {
	return c.state.CursorOperationsWrap
}

// Required reports whether a current item is required.
func (c *Cursor[T]) Required() bool {
	return c.state.CurrentItemRequired
}

// Update applies fn to a copy of the state and reconciles the result. Use
// it to change several fields at once. fn receives a shallow copy: assign
// new slices rather than writing into Items or AvailableItemFlags.
//
// It returns the fields that differ between the state before the call and
// the reconciled state.
func (c *Cursor[T]) Update(fn func(s *State[T])) Changed {
	prev := c.state
	next := c.state
	fn(&next)
	c.reconcile(next, Diff(prev, next))
	return Diff(prev, c.state)
}

// SetItems replaces the collection. The cursor keeps items; the caller
// must not modify it afterwards.
func (c *Cursor[T]) SetItems(items []T) Changed {
	return c.Update(func(s *State[T]) { s.Items = items })
}

// SetAvailableItemFlags replaces the availability mask. nil makes every
// item available.
func (c *Cursor[T]) SetAvailableItemFlags(flags []bool) Changed {
	return c.Update(func(s *State[T]) { s.AvailableItemFlags = flags })
}

// SetCurrentIndex requests a position. Out of range values are clamped and
// remembered as the desired index.
func (c *Cursor[T]) SetCurrentIndex(index int) Changed {
	return c.Update(func(s *State[T]) { s.CurrentIndex = index })
}

// SetCurrentItemRequired toggles whether an item must always be current.
func (c *Cursor[T]) SetCurrentItemRequired(required bool) Changed {
	return c.Update(func(s *State[T]) { s.CurrentItemRequired = required })
}

// SetWrap toggles wrap-around navigation.
func (c *Cursor[T]) SetWrap(wrap bool) Changed {
	return c.Update(func(s *State[T]) { s.CursorOperationsWrap = wrap })
}

// Select makes index current and reports whether CurrentIndex changed.
func (c *Cursor[T]) Select(index int) bool {
	return c.SetCurrentIndex(index).CurrentIndex
}

// GoFirst moves to the first available item.
func (c *Cursor[T]) GoFirst() bool {
	return c.moveToIndex(0, Forward)
}

// GoLast moves to the last available item.
func (c *Cursor[T]) GoLast() bool {
	return c.moveToIndex(c.Count()-1, Backward)
}

// GoNext moves to the next available item, or to the first one when no
// item is current.
func (c *Cursor[T]) GoNext() bool {
	return c.moveToIndex(c.nextStart(), Forward)
}

// GoPrevious moves to the previous available item, or to the last one when
// no item is current.
func (c *Cursor[T]) GoPrevious() bool {
	return c.moveToIndex(c.previousStart(), Backward)
}

// CanGoNext reports whether GoNext would move the cursor.
func (c *Cursor[T]) CanGoNext() bool {
	return c.canMove(c.nextStart(), Forward)
}

// CanGoPrevious reports whether GoPrevious would move the cursor.
func (c *Cursor[T]) CanGoPrevious() bool {
	return c.canMove(c.previousStart(), Backward)
}

func (c *Cursor[T]) nextStart() int {
	if c.state.CurrentIndex < 0 && c.state.Items != nil {
		return 0
	}
	return c.state.CurrentIndex + 1
}

func (c *Cursor[T]) previousStart() int {
	if c.state.CurrentIndex < 0 && c.state.Items != nil {
		return len(c.state.Items) - 1
	}
	return c.state.CurrentIndex - 1
}

func (c *Cursor[T]) canMove(start int, direction Direction) bool {
	target := ClosestAvailableItem(c.state, start, direction)
	return target >= 0 && target != c.state.CurrentIndex
}

func (c *Cursor[T]) moveToIndex(start int, direction Direction) bool {
	target := ClosestAvailableItem(c.state, start, direction)
	if target < 0 || target == c.state.CurrentIndex {
		return false
	}
	c.SetCurrentIndex(target)
	return true
}

// reconcile runs the effect chain over next until it stops changing and
// stores the result.
//
// Each pass hands StateEffects the changes that came from the caller or from
// owner effects, never the fields StateEffects derived itself: its own
// CurrentIndex output must not read as an explicit move on the next pass.
// Owner effects see both.
func (c *Cursor[T]) reconcile(next State[T], changed Changed) {
	for pass := 0; changed.Any(); pass++ {
		if pass == maxPasses {
			log.Printf("[WARN] cursor: state effects did not settle after %d passes", maxPasses)
			break
		}
		before := next
		derived := StateEffects(next, changed)
		observed := changed.Union(Diff(before, derived))
		next = derived
		for _, effect := range c.effects {
			next = effect(next, observed)
		}
		changed = Diff(derived, next)
	}
	c.state = next
}
