package events

import (
	"context"
	"sync"
	"time"
)

// Handler consumes a published event. Failures are the handler's to log; they
// never propagate back to the publishing request.
type Handler func(context.Context, Event)

// Dispatcher decouples state changes from their best-effort side effects.
type Dispatcher interface {
	Publish(event Event)
	Subscribe(eventType EventType, handler Handler)
}

type inMemoryDispatcher struct {
	mu       sync.RWMutex
	timeout  time.Duration
	handlers map[EventType][]Handler
}

// NewInMemoryDispatcher creates a dispatcher that runs each handler in a
// detached goroutine, deliberately decoupled from the request context so the
// response never waits on (or is failed by) a notification send.
func NewInMemoryDispatcher(timeout time.Duration) Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &inMemoryDispatcher{
		timeout:  timeout,
		handlers: make(map[EventType][]Handler),
	}
}

func (d *inMemoryDispatcher) Publish(event Event) {
	d.mu.RLock()
	handlers := append([]Handler{}, d.handlers[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			h(ctx, event)
		}(handler)
	}
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}
