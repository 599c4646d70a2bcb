package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

const channelPrefix = "space:"

var _ model.Broker = (*RedisBroker)(nil)

// RedisBroker relays events through Redis pub/sub so that every server
// instance sees every space event.
type RedisBroker struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisBroker connects to addr and verifies the server is reachable.
func NewRedisBroker(ctx context.Context, addr, password string, db int, logger *logger.Logger) (*RedisBroker, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	return &RedisBroker{
		client: client,
		logger: logger,
	}, nil
}

func channelFor(spaceID string) string {
	return channelPrefix + spaceID
}

func (b *RedisBroker) Publish(ctx context.Context, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := b.client.Publish(ctx, channelFor(event.SpaceID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, spaceID string) (<-chan model.Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, channelFor(spaceID))

	// Wait for the subscription to be confirmed so no event published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to space events: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	out := make(chan model.Event, subscriberBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event model.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("dropping malformed space event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- event:
				default:
					b.logger.Warn("subscriber lagging, dropping space event", "space_id", spaceID, "kind", event.Kind)
				}
			}
		}
	}()

	return out, cancel, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
