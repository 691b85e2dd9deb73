package events

import (
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple Publisher/Subscriber implementation that keeps
// registered handlers in memory and dispatches events to them synchronously.
type InMemoryEmitter struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new InMemoryEmitter.
// If logger is nil, the default logger is used.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		handlers: make(map[int]Handler),
		logger:   logger.With(slog.String("component", "change_emitter")),
	}
}

var (
	_ Publisher  = (*InMemoryEmitter)(nil)
	_ Subscriber = (*InMemoryEmitter)(nil)
)

// Subscribe registers a handler and returns its removal function.
func (e *InMemoryEmitter) Subscribe(handler Handler) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = handler
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered change handler", slog.Int("handler_count", count))

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.handlers, id)
			e.mu.Unlock()
		})
	}
}

// Publish delivers the event to all handlers registered at publish time.
// Handlers registered or removed concurrently may or may not see the event;
// watchers always re-query on their next event, so a missed emission only
// delays a snapshot, it never loses data.
func (e *InMemoryEmitter) Publish(event ChangeEvent) {
	e.mu.RLock()
	handlers := make([]Handler, 0, len(e.handlers))
	for _, h := range e.handlers {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	e.logger.Debug("publishing change event",
		slog.String("event_id", event.ID.String()),
		slog.String("kind", string(event.Kind)),
		slog.Int64("set_id", event.SetID),
		slog.Int("handler_count", len(handlers)))

	for _, h := range handlers {
		h(event)
	}
}
