package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyMuloki/zen-spa/internal/model"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

func newEvent() *model.OutboxEvent {
	return &model.OutboxEvent{EventType: model.EventBookingCreated, Payload: json.RawMessage(`{"id":1}`)}
}

func held(r *outboxRepository) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestOutbox_FinishedEventsAreReleased(t *testing.T) {
	repo := NewOutboxRepository().(*outboxRepository)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, repo.Create(ctx, newEvent()))
	}
	pending, err := repo.GetPendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1000)

	for i, e := range pending {
		if i%2 == 0 {
			require.NoError(t, repo.MarkAsProcessed(ctx, e.ID))
		} else {
			require.NoError(t, repo.MarkAsFailed(ctx, e.ID, "smtp down"))
		}
	}

	assert.Equal(t, 0, held(repo))
	pending, err = repo.GetPendingEvents(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutbox_RecordAttemptKeepsEventPending(t *testing.T) {
	repo := NewOutboxRepository().(*outboxRepository)
	ctx := context.Background()
	event := newEvent()
	require.NoError(t, repo.Create(ctx, event))

	require.NoError(t, repo.RecordAttempt(ctx, event.ID, "timeout"))

	pending, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)
	require.NotNil(t, pending[0].ErrorMessage)
	assert.Equal(t, "timeout", *pending[0].ErrorMessage)
	assert.Equal(t, 1, held(repo))
}

func TestOutbox_UnknownEvent(t *testing.T) {
	repo := NewOutboxRepository()
	err := repo.MarkAsProcessed(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
