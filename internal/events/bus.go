package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Bus is an in-process publisher/subscriber pair used when no NATS URL is
// configured. Payloads are JSON-encoded so consumers see the same bytes they
// would receive over NATS.
type Bus struct {
	mu     sync.Mutex
	closed bool
	subs   map[string][]chan []byte
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan []byte)}
}

func (b *Bus) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("bus is closed")
	}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- data:
		default:
		}
	}
	return nil
}

func (b *Bus) Subscribe(topic string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 64)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return nil, nil, fmt.Errorf("bus is closed")
	}
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if b.closed {
				// Close already closed every channel.
				b.mu.Unlock()
				return
			}
			chans := b.subs[topic]
			for i, c := range chans {
				if c == ch {
					b.subs[topic] = append(chans[:i], chans[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel, nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for topic, chans := range b.subs {
		for _, ch := range chans {
			close(ch)
		}
		delete(b.subs, topic)
	}
	return nil
}
