package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

type outboxRepository struct {
	mu     sync.Mutex
	events map[uuid.UUID]*model.OutboxEvent
}

func NewOutboxRepository() repository.OutboxRepository {
	return &outboxRepository{events: make(map[uuid.UUID]*model.OutboxEvent)}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.Status = model.OutboxStatusPending

	c := *event
	r.events[c.ID] = &c
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := []*model.OutboxEvent{}
	for _, e := range r.events {
		if e.Status == model.OutboxStatusPending {
			c := *e
			pending = append(pending, &c)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *outboxRepository) update(id uuid.UUID, fn func(*model.OutboxEvent)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return apperrors.NewNotFound("outbox event", nil)
	}
	fn(e)
	return nil
}

// remove drops a finished event. Nothing reads processed or failed events back
// from process memory, so keeping them would only grow the map.
func (r *outboxRepository) remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return apperrors.NewNotFound("outbox event", nil)
	}
	delete(r.events, id)
	return nil
}

func (r *outboxRepository) MarkAsProcessed(ctx context.Context, id uuid.UUID) error {
	return r.remove(id)
}

// MarkAsFailed drops the event; the processor has already logged errMsg and
// counted the failure.
func (r *outboxRepository) MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.remove(id)
}

func (r *outboxRepository) RecordAttempt(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.update(id, func(e *model.OutboxEvent) {
		e.ErrorMessage = &errMsg
		e.RetryCount++
	})
}
