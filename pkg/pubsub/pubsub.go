// Package pubsub is the fabric that replicates room events to every server
// process holding a connection for that room. Each process subscribes to the
// shared channel and re-emits events to its locally connected clients.
package pubsub

import "context"

// Event is a single room event
// An empty To means the event is a broadcast to the whole room, otherwise it
// is delivered only to the named connection
type Event struct {
	Room string      `json:"room"`
	Name string      `json:"name"`
	To   string      `json:"to,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// Bus provides fire-and-forget publish and a per-process subscription
type Bus interface {
	// Publish sends the event to every subscriber. Events published by one
	// process for one room arrive in publish order.
	Publish(ctx context.Context, event Event) error

	// Subscribe returns a channel of all events on the bus along with a
	// function to cancel the subscription
	Subscribe(ctx context.Context) (<-chan Event, func(), error)
}
