package infra_redis_notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/jukebox/internal/model"
)

// Driver publishes round events on a redis channel so that every instance
// serving observers hears about writes made by any other instance.
type Driver struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

type Option func(*Driver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func New(
	client *redis.Client,
	prefix string,
	opts ...Option,
) *Driver {
	d := &Driver{
		client:  client,
		channel: prefix + ":rounds",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Notify(ctx context.Context, e model.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return d.client.Publish(d.channel, string(payload)).Err()
}

// Subscribe delivers events until ctx is done. The returned channel is
// closed afterwards.
func (d *Driver) Subscribe(ctx context.Context) (<-chan model.Event, error) {
	pubsub := d.client.Subscribe(d.channel)
	if _, err := pubsub.Receive(); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", d.channel, err)
	}

	events := make(chan model.Event, 16)
	go func() {
		defer close(events)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var e model.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					d.logger.Warn("malformed event", slog.String("error", err.Error()))
					continue
				}
				select {
				case events <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
