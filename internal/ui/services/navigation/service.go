package navigation

import (
	"log"

	"itemcursor/internal/cursor"
	"itemcursor/internal/ui/services/events"
)

const defaultViewportHeight = 10

// Service drives a cursor from navigation requests and keeps a viewport
// over it. Every change of the current index is published as a
// CursorMovedEvent, whatever caused it.
type Service[T comparable] struct {
	cursor *cursor.Cursor[T]
	state  *State
	bus    events.EventBus
}

// NewService creates a new navigation service
func NewService[T comparable](bus events.EventBus, c *cursor.Cursor[T]) *Service[T] {
	if bus == nil {
		bus = &events.NullBus{}
	}
	s := &Service[T]{
		cursor: c,
		state: &State{
			ViewportHeight: defaultViewportHeight,
		},
		bus: bus,
	}
	s.ensureVisible()
	return s
}

// Cursor returns the underlying cursor
func (s *Service[T]) Cursor() *cursor.Cursor[T] {
	return s.cursor
}

// GetCursor returns current cursor position
func (s *Service[T]) GetCursor() int {
	return s.cursor.CurrentIndex()
}

// GetViewportOffset returns current viewport offset
func (s *Service[T]) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service[T]) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the number of visible rows
func (s *Service[T]) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate handles navigation in a direction and reports whether the
// cursor moved
func (s *Service[T]) Navigate(direction Direction) bool {
	return s.track(func() {
		switch direction {
		case DirectionUp:
			s.cursor.GoPrevious()
		case DirectionDown:
			s.cursor.GoNext()
		case DirectionPageUp:
			s.page(cursor.Backward)
		case DirectionPageDown:
			s.page(cursor.Forward)
		case DirectionHome:
			s.cursor.GoFirst()
		case DirectionEnd:
			s.cursor.GoLast()
		default:
			log.Printf("[WARN] navigation: unknown direction %q", direction)
		}
	})
}

// MoveToIndex requests a specific index. Out of range requests are clamped
// and remembered by the cursor.
func (s *Service[T]) MoveToIndex(index int) bool {
	return s.track(func() {
		s.cursor.Select(index)
	})
}

// SetItems replaces the collection together with its availability mask
func (s *Service[T]) SetItems(items []T, flags []bool) bool {
	return s.track(func() {
		s.cursor.Update(func(st *cursor.State[T]) {
			st.Items = items
			st.AvailableItemFlags = flags
		})
	})
}

// SetAvailability replaces the availability mask
func (s *Service[T]) SetAvailability(flags []bool) bool {
	return s.track(func() {
		s.cursor.SetAvailableItemFlags(flags)
	})
}

// SetWrap toggles wrap-around navigation
func (s *Service[T]) SetWrap(wrap bool) {
	s.track(func() {
		s.cursor.SetWrap(wrap)
	})
}

// SetRequired toggles whether an item must always be current
func (s *Service[T]) SetRequired(required bool) bool {
	return s.track(func() {
		s.cursor.SetCurrentItemRequired(required)
	})
}

// track runs op and publishes the resulting cursor movement, if any.
func (s *Service[T]) track(op func()) bool {
	oldCursor := s.cursor.CurrentIndex()
	op()
	newCursor := s.cursor.CurrentIndex()
	s.ensureVisible()

	if oldCursor == newCursor {
		return false
	}
	log.Printf("[DEBUG] navigation: cursor %d -> %d", oldCursor, newCursor)
	s.bus.Publish(CursorMovedEvent{
		OldIndex: oldCursor,
		NewIndex: newCursor,
	})
	return true
}

// page moves by one viewport, landing on the nearest available item. Paging
// never wraps.
func (s *Service[T]) page(direction cursor.Direction) {
	current := s.cursor.CurrentIndex()
	if current < 0 {
		if direction == cursor.Forward {
			s.cursor.GoFirst()
		} else {
			s.cursor.GoLast()
		}
		return
	}

	pageSize := s.state.ViewportHeight - 1
	if pageSize < 1 {
		pageSize = 1
	}
	target := s.clampIndex(current + int(direction)*pageSize)

	st := s.cursor.State()
	st.CursorOperationsWrap = false
	index := cursor.ClosestAvailableItem(st, target, direction)
	if index < 0 {
		index = cursor.ClosestAvailableItem(st, target, -direction)
	}
	if index >= 0 && index != current {
		s.cursor.Select(index)
	}
}

// Helper methods
func (s *Service[T]) clampIndex(index int) int {
	maxIndex := s.cursor.Count() - 1
	if index > maxIndex {
		index = maxIndex
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service[T]) ensureVisible() {
	offset := s.state.ViewportOffset
	height := s.state.ViewportHeight
	current := s.cursor.CurrentIndex()

	// Ensure cursor is visible within viewport
	if current >= 0 {
		if current < offset {
			offset = current
		} else if current >= offset+height {
			offset = current - height + 1
		}
	}

	// Don't leave blank rows below the last item
	maxOffset := s.cursor.Count() - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}

	if offset != s.state.ViewportOffset {
		s.state.ViewportOffset = offset
		s.bus.Publish(ViewportChangedEvent{
			Offset: offset,
			Height: height,
		})
	}
}
