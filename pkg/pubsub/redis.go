package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// channel is the Redis channel shared by all server processes
const channel = "callbreak:events"

// Redis is a Bus backed by Redis pub/sub, allowing one logical room to span
// multiple server processes
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Redis-backed bus for the given URL (redis://host:port)
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return &Redis{client: redis.NewClient(opts)}, nil
}

// Publish sends the event to the shared channel
func (r *Redis) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Subscribe listens on the shared channel and decodes events
func (r *Redis) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, nil, err
	}

	events := make(chan Event, subscriberBuffer)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logrus.WithError(err).Warn("could not decode event")
				continue
			}

			events <- event
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}

	return events, cancel, nil
}
