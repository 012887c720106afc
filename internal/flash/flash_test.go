package flash

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

// exerciseStore checks the read-once contract every Store must honor.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	got, err := s.Pop(ctx, "empty")
	require.NoError(t, err)
	assert.Nil(t, got)

	want := model.BookingConfirmedFlash()
	require.NoError(t, s.Put(ctx, "sid-1", want))

	got, err = s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	got, err = s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got, "a flash is delivered once")

	// Sessions do not see each other's flashes; a second Put replaces the first.
	require.NoError(t, s.Put(ctx, "sid-2", model.Flash{Type: model.FlashError, Title: "first"}))
	require.NoError(t, s.Put(ctx, "sid-2", model.Flash{Type: model.FlashError, Title: "second"}))

	got, err = s.Pop(ctx, "sid-3")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Pop(ctx, "sid-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Title)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Minute, time.Minute))
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t, time.Minute)
	exerciseStore(t, s)
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "sid", model.BookingConfirmedFlash()))
	assert.True(t, mr.Exists(keyPrefix+"sid"))

	mr.FastForward(2 * time.Minute)

	got, err := s.Pop(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	mr.Close()

	_, err := s.Pop(context.Background(), "sid")
	assert.Error(t, err)
}
