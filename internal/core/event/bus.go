package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during pipeline pass N
// are readable after SwapBuffers, which the scheduler calls at the end of the
// pass. Dispatch preserves emission order across all event types.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 16),
		back:     make([]any, 0, 16),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers
// and returns how many events were delivered to at least one handler.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, ev := range b.front {
		handlers := b.handlers[reflect.TypeOf(ev)]
		for _, h := range handlers {
			callHandler(h, ev)
		}
		if len(handlers) > 0 {
			n++
		}
	}
	b.front = b.front[:0]
	return n
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int { return len(b.back) }

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
