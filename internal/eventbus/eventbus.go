package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"pixgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchSubmitted = domain.EventSearchSubmitted
	EventPageRequested   = domain.EventPageRequested
	EventPageLoaded      = domain.EventPageLoaded
	EventSearchFailed    = domain.EventSearchFailed
	EventImageOpened     = domain.EventImageOpened
	EventModalClosed     = domain.EventModalClosed
)

// AllEventTypes lists every event the bus carries
var AllEventTypes = []EventType{
	EventSearchSubmitted,
	EventPageRequested,
	EventPageLoaded,
	EventSearchFailed,
	EventImageOpened,
	EventModalClosed,
}

// Re-export domain event types
type SearchSubmittedEvent = domain.SearchSubmittedEvent
type PageRequestedEvent = domain.PageRequestedEvent
type PageLoadedEvent = domain.PageLoadedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type ImageOpenedEvent = domain.ImageOpenedEvent
type ModalClosedEvent = domain.ModalClosedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		logger:    logger.Named("eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers; it never blocks the caller
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("channel full, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher; queued events are discarded
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without holding the lock
			subsCopy := make([]subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, s := range subsCopy {
				b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// call runs one handler, recovering from panics so one subscriber cannot stop dispatch
func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	h(event)
}
