package ports

import (
	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// EventBus carries state changes from the services to whoever renders them.
// The presenter and the folder watcher are the subscribers; the playback
// controller, the poller and the theme renderer publish.
//
//	id := bus.Subscribe(domain.EventTrackProgress, func(event domain.Event) {
//	    e := event.(domain.TrackProgressEvent)
//	    view.SetProgress(e.PositionSeconds, e.DurationSeconds)
//	})
//	defer bus.Unsubscribe(id)
//
// Implementations must be safe for concurrent use.
type EventBus interface {
	// Publish hands event to every subscriber of its type, then to the
	// wildcard subscribers. Handlers run on the publishing goroutine.
	Publish(event domain.Event)

	// Subscribe registers handler for one event type.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown IDs are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers handler for every event type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether eventType has at least one handler.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions; later events are discarded.
	Close() error
}
