package events

import (
	"context"

	"github.com/google/uuid"
)

// Topic for pricing mutations. Consumers that only care about one table can
// filter on the table_key field of the payload.
const TopicPricingChanged = "pricing.changed"

// Mutation operations carried by Changed events.
const (
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDeactivate = "deactivate"
	OpRestore    = "restore"
)

// Changed is published after every successful write to a pricing table. The
// pricing cache subscribes to it instead of being called directly, so editors
// carry no compile-time dependency on the cache.
type Changed struct {
	EventID  uuid.UUID `json:"event_id"`
	TableKey string    `json:"table_key"`
	Op       string    `json:"op"`
	RowID    int64     `json:"row_id,omitempty"`
}

// Publisher sends events to the bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives raw event payloads from the bus. Call the returned
// cancel function to unsubscribe and close the channel.
type Subscriber interface {
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}
