// Package eventbus provides implementations of the EventBus interface.
// This package contains the synchronous event bus implementation.
package eventbus

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// SyncEventBus is a synchronous implementation of the EventBus interface.
// Events are delivered to handlers on the publishing goroutine, in the order the
// handlers subscribed. Type-specific handlers run before wildcard handlers.
//
// Thread-safety: This implementation is thread-safe. Multiple goroutines can
// publish events and subscribe/unsubscribe handlers concurrently.
type SyncEventBus struct {
	logger *slog.Logger

	// subscribers map event types to their subscriptions
	subscribers map[domain.EventType][]subscription

	// allSubscribers contains handlers that receive all events
	allSubscribers []subscription

	// mu protects everything below
	mu     sync.RWMutex
	nextID uint64
	closed bool
}

// a subscription represents a single event subscription.
type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	return &SyncEventBus{
		logger:      logger.With(slog.String("component", "eventbus")),
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers of that event type.
//
// If the event bus is closed, the event is dropped.
//
// Panics in handlers are recovered and logged, but do not stop other handlers
// from being called.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		bus.logger.Debug("event dropped after close", slog.String("event_type", string(event.Type())))
		return
	}
	handlers := make([]subscription, 0, len(bus.subscribers[event.Type()])+len(bus.allSubscribers))
	handlers = append(handlers, bus.subscribers[event.Type()]...)
	handlers = append(handlers, bus.allSubscribers...)
	bus.mu.RUnlock()

	for _, sub := range handlers {
		bus.callHandler(sub, event)
	}
}

// callHandler calls an event handler and recovers from panics.
func (bus *SyncEventBus) callHandler(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("subscription", string(sub.id)),
				slog.String("event_type", string(event.Type())))
		}
	}()

	sub.handler(event)
}

func (bus *SyncEventBus) add(eventType domain.EventType, wildcard bool, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	bus.nextID++
	if wildcard {
		sub := subscription{id: domain.SubscriptionID(fmt.Sprintf("sub-all-%d", bus.nextID)), handler: handler}
		bus.allSubscribers = append(bus.allSubscribers, sub)
		return sub.id
	}
	sub := subscription{id: domain.SubscriptionID(fmt.Sprintf("sub-%d", bus.nextID)), handler: handler}
	bus.subscribers[eventType] = append(bus.subscribers[eventType], sub)
	return sub.id
}

// Subscribe registers a handler for events of the specified type.
// The same handler can be registered multiple times with different IDs.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	return bus.add(eventType, false, handler)
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	return bus.add("", true, handler)
}

// Unsubscribe removes a previously registered event handler, keeping the order of the rest.
// If the subscription ID is invalid or already unsubscribed, this is a no-op.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	match := func(s subscription) bool { return s.id == id }

	for eventType, subs := range bus.subscribers {
		if i := slices.IndexFunc(subs, match); i >= 0 {
			bus.subscribers[eventType] = slices.Delete(subs, i, i+1)
			return
		}
	}
	if i := slices.IndexFunc(bus.allSubscribers, match); i >= 0 {
		bus.allSubscribers = slices.Delete(bus.allSubscribers, i, i+1)
	}
}

// HasSubscribers returns true if a published event of this type would reach any handler.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subscribers[eventType]) > 0 || len(bus.allSubscribers) > 0
}

// Close shuts down the event bus and clears all subscriptions.
//
// Returns an error if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil

	return nil
}

// SubscriberCount returns the number of active subscriptions for debugging.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.allSubscribers)
	for _, subs := range bus.subscribers {
		count += len(subs)
	}
	return count
}

// Verify that SyncEventBus implements the EventBus interface
var _ ports.EventBus = (*SyncEventBus)(nil)
