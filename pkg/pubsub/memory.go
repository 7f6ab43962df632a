package pubsub

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 256

// Memory is an in-process Bus. It is the default when no Redis URL is
// configured, which limits a room to a single server process.
type Memory struct {
	mu   sync.Mutex
	subs map[chan Event]bool
}

// NewMemory returns a new in-process bus
func NewMemory() *Memory {
	return &Memory{
		subs: make(map[chan Event]bool),
	}
}

// Publish sends the event to all current subscribers
func (m *Memory) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sub := range m.subs {
		select {
		case sub <- event:
		default:
			logrus.WithField("event", event.Name).Warn("dropping event for slow subscriber")
		}
	}

	return nil
}

// Subscribe registers a new subscriber
func (m *Memory) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	ch := make(chan Event, subscriberBuffer)

	m.mu.Lock()
	m.subs[ch] = true
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, ch)
			m.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel, nil
}
