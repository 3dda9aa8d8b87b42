package events

import "time"

type EventType string

const (
	EventItemAdded       EventType = "ITEM_ADDED"
	EventItemRemoved     EventType = "ITEM_REMOVED"
	EventQuantityChanged EventType = "QUANTITY_CHANGED"
	EventCartCleared     EventType = "CART_CLEARED"
)

// CartEvent describes a single cart mutation. The presentation layer
// observes these instead of the store reaching into any rendering surface.
type CartEvent struct {
	Type        EventType `json:"type"`
	ProductID   int64     `json:"product_id,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	At          time.Time `json:"at"`
}

// Emitter fans cart events out to a list of subscribers. Subscribers run
// synchronously in mutation order; all mutations come from a single logical
// writer, so there is no internal locking here.
type Emitter struct {
	subscribers []func(CartEvent)
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe registers a callback for every future cart event.
// Subscriptions are expected to happen during wiring, before mutations start.
func (e *Emitter) Subscribe(fn func(CartEvent)) {
	e.subscribers = append(e.subscribers, fn)
}

// Notify delivers the event to every subscriber in registration order.
func (e *Emitter) Notify(ev CartEvent) {
	for _, fn := range e.subscribers {
		fn(ev)
	}
}
