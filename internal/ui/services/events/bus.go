package events

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

// Bus is a simple event bus for UI services.
//
// Handlers run synchronously on the publishing goroutine, in subscription
// order, so a handler always sees the state that produced the event.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	eventType := TypeOf(event)

	// Copy so handlers may subscribe without deadlocking.
	b.mu.RLock()
	handlers := append([]func(interface{}){}, b.listeners[eventType]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(eventType, handler, event)
	}
}

func dispatch(eventType string, handler func(interface{}), event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
		}
	}()
	handler(event)
}

// TypeOf returns the key an event is published under: its full type name.
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
