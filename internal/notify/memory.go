// Package notify fans space change events out to live subscribers.
package notify

import (
	"context"
	"sync"

	"github.com/amit-tzadok/LDR/internal/model"
)

// subscriberBuffer bounds how far a slow subscriber may lag before events are dropped.
const subscriberBuffer = 32

var _ model.Broker = (*MemoryBroker)(nil)

// MemoryBroker delivers events to subscribers of the same process.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[*subscription]struct{}
}

type subscription struct {
	ch   chan model.Event
	once sync.Once
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[string]map[*subscription]struct{}),
	}
}

func (b *MemoryBroker) Publish(_ context.Context, event model.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[event.SpaceID] {
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, spaceID string) (<-chan model.Event, func(), error) {
	sub := &subscription{ch: make(chan model.Event, subscriberBuffer)}

	b.mu.Lock()
	if b.subs[spaceID] == nil {
		b.subs[spaceID] = make(map[*subscription]struct{})
	}
	b.subs[spaceID][sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			b.mu.Lock()
			delete(b.subs[spaceID], sub)
			if len(b.subs[spaceID]) == 0 {
				delete(b.subs, spaceID)
			}
			b.mu.Unlock()
			close(sub.ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return sub.ch, cancel, nil
}

func (b *MemoryBroker) Close() error {
	return nil
}
