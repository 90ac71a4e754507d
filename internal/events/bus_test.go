package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel, err := bus.Subscribe(TopicPricingChanged)
	require.NoError(t, err)
	defer cancel()

	sent := Changed{
		EventID:  uuid.New(),
		TableKey: "product_types",
		Op:       OpCreate,
		RowID:    42,
	}
	require.NoError(t, bus.Publish(context.Background(), TopicPricingChanged, sent))

	select {
	case payload := <-ch:
		var got Changed
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, sent, got)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBusTopicIsolation(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel, err := bus.Subscribe("other.topic")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, bus.Publish(context.Background(), TopicPricingChanged, Changed{TableKey: "x"}))

	select {
	case <-ch:
		t.Fatal("received event from a different topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel, err := bus.Subscribe(TopicPricingChanged)
	require.NoError(t, err)

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	require.NoError(t, bus.Publish(context.Background(), TopicPricingChanged, Changed{TableKey: "x"}))
}

func TestBusCloseRejectsPublish(t *testing.T) {
	bus := NewBus()
	require.NoError(t, bus.Close())
	assert.Error(t, bus.Publish(context.Background(), TopicPricingChanged, Changed{}))
}
