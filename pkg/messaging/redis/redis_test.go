package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewClient(ctx, Config{URL: "redis://" + mr.Addr(), MaxRetries: 1, PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(ctx).Err())

	_, err = NewClient(ctx, Config{URL: "not a url"})
	assert.Error(t, err)

	addr := mr.Addr()
	mr.Close()
	_, err = NewClient(ctx, Config{URL: "redis://" + addr})
	assert.Error(t, err)
}

func TestBroker_PublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := NewClient(ctx, Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	broker := NewRedisBroker(client, zerolog.Nop())
	defer broker.Close()

	messages, err := broker.Subscribe(ctx, "spa.events")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, "spa.events", map[string]string{"type": "booking.created"}))

	select {
	case msg := <-messages:
		assert.JSONEq(t, `{"type":"booking.created"}`, string(msg))
	case <-ctx.Done():
		t.Fatal("no message received")
	}

	cancel()
	for range messages {
	}
}
