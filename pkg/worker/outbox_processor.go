package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/messaging"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	MaxAttempts  int
}

// EventHandler reacts to one outbox event. Handlers must be safe to re-run:
// an event whose handler fails is retried as a whole.
type EventHandler func(ctx context.Context, event *model.OutboxEvent) error

type OutboxProcessor struct {
	repo     repository.OutboxRepository
	handlers []EventHandler
	config   OutboxProcessorConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	handlers ...EventHandler,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}

	return &OutboxProcessor{
		repo:     repo,
		handlers: handlers,
		config:   config,
		logger:   logger,
		metrics:  metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		}
	}
}

// ProcessBatch handles one batch of pending events.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.GetPendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending events: %w", err)
	}

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error(err, "Failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}
	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	for _, handle := range p.handlers {
		if err := handle(ctx, event); err != nil {
			return p.fail(ctx, event, err)
		}
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.MarkAsProcessed(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (p *OutboxProcessor) fail(ctx context.Context, event *model.OutboxEvent, cause error) error {
	msg := cause.Error()

	if event.RetryCount+1 >= p.config.MaxAttempts {
		p.metrics.OutboxEventsFailed.Inc()
		if err := p.repo.MarkAsFailed(ctx, event.ID, msg); err != nil {
			p.logger.Error(err, "Failed to update event status", "event_id", event.ID.String())
		}
		return cause
	}

	p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
	if err := p.repo.RecordAttempt(ctx, event.ID, msg); err != nil {
		p.logger.Error(err, "Failed to record event attempt", "event_id", event.ID.String())
	}
	return cause
}

// PublishHandler forwards every event to channel on broker.
func PublishHandler(broker messaging.Broker, channel string) EventHandler {
	return func(ctx context.Context, event *model.OutboxEvent) error {
		return broker.Publish(ctx, channel, messaging.Message{
			ID:      event.ID.String(),
			Type:    event.EventType,
			Payload: event.Payload,
		})
	}
}

// ConfirmationSender is the part of the mail service the worker needs.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
}

// ConfirmationHandler mails the client when a booking is created and ignores other events.
func ConfirmationHandler(sender ConfirmationSender) EventHandler {
	return func(ctx context.Context, event *model.OutboxEvent) error {
		if event.EventType != model.EventBookingCreated {
			return nil
		}
		var booking model.Booking
		if err := json.Unmarshal(event.Payload, &booking); err != nil {
			return fmt.Errorf("failed to decode booking payload: %w", err)
		}
		return sender.SendBookingConfirmation(ctx, &booking)
	}
}
