package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndyMuloki/zen-spa/internal/flash"
	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	"github.com/AndyMuloki/zen-spa/internal/service/availability"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
)

const (
	msgOfferingRequired  = "Either a service or package must be selected"
	msgOfferingExclusive = "Select either a service or a package, not both"
	msgUnknownSlot       = "Selected time is not an available slot"
	msgPhoneFormat       = "Invalid phone number"
)

// Rules are the tightenable business rules applied on top of field validation.
type Rules struct {
	// ExclusiveOffering rejects requests that set both serviceId and packageId.
	ExclusiveOffering bool
	// StrictPhone applies the phone number pattern on top of the minimum length.
	StrictPhone bool
}

type Service struct {
	bookings repository.BookingRepository
	outbox   repository.OutboxRepository
	flashes  flash.Store
	schedule availability.Schedule
	validate *validator.Validator
	rules    Rules
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	bookings repository.BookingRepository,
	outbox repository.OutboxRepository,
	flashes flash.Store,
	schedule availability.Schedule,
	validate *validator.Validator,
	rules Rules,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		outbox:   outbox,
		flashes:  flashes,
		schedule: schedule,
		validate: validate,
		rules:    rules,
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateBooking validates req, commits it and queues the confirmation side
// effects. sessionID scopes the confirmation flash; an empty id skips it.
func (s *Service) CreateBooking(ctx context.Context, sessionID string, req *model.CreateBookingRequest) (*model.Booking, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	booking := req.ToBooking()
	if err := s.bookings.Insert(ctx, booking); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.metrics.BookingConflicts.Inc()
			return nil, err
		}
		s.logger.Error(err, "Failed to persist booking", "date", booking.Date, "time", booking.Time)
		return nil, &apperrors.AppError{Code: apperrors.ErrInternal, Message: "Failed to create booking", Err: err}
	}
	s.metrics.BookingsCreated.Inc()

	s.emit(ctx, model.EventBookingCreated, booking)

	if sessionID != "" {
		if err := s.flashes.Put(ctx, sessionID, model.BookingConfirmedFlash()); err != nil {
			s.logger.Error(err, "Failed to store booking flash", "booking_id", booking.ID)
		}
	}

	s.logger.Info("Booking created",
		"booking_id", booking.ID,
		"date", booking.Date,
		"time", booking.Time)
	return booking, nil
}

// ConsumeFlash returns and clears the pending flash for sessionID.
func (s *Service) ConsumeFlash(ctx context.Context, sessionID string) (*model.Flash, error) {
	if sessionID == "" {
		return nil, nil
	}
	f, err := s.flashes.Pop(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if f != nil {
		s.metrics.FlashDelivered.Inc()
	}
	return f, nil
}

// validateRequest reports every failing field at once.
func (s *Service) validateRequest(req *model.CreateBookingRequest) error {
	fields, err := s.validate.Fields(req)
	if err != nil {
		return apperrors.NewBadRequest("invalid booking request", err)
	}
	failed := make(map[string]bool, len(fields))
	for _, f := range fields {
		failed[f.Field] = true
	}
	for _, f := range s.checkRules(req) {
		if !failed[f.Field] {
			fields = append(fields, f)
			failed[f.Field] = true
		}
	}

	if len(fields) == 0 {
		return nil
	}
	for _, f := range fields {
		s.metrics.BookingRejected.WithLabelValues(f.Field).Inc()
	}
	return apperrors.NewValidation(fields)
}

func (s *Service) checkRules(req *model.CreateBookingRequest) []apperrors.FieldError {
	var fields []apperrors.FieldError

	switch {
	case req.ServiceID == nil && req.PackageID == nil:
		fields = append(fields, apperrors.FieldError{Field: "serviceId", Message: msgOfferingRequired})
	case s.rules.ExclusiveOffering && req.ServiceID != nil && req.PackageID != nil:
		fields = append(fields, apperrors.FieldError{Field: "serviceId", Message: msgOfferingExclusive})
	}

	// Fields are stored verbatim, so surrounding whitespace must not count
	// towards a minimum length.
	for _, c := range []struct {
		field, value string
		min          int
	}{
		{"firstName", req.FirstName, 2},
		{"lastName", req.LastName, 2},
		{"phone", req.Phone, 10},
	} {
		if len(strings.TrimSpace(c.value)) < c.min {
			fields = append(fields, apperrors.FieldError{
				Field:   c.field,
				Message: fmt.Sprintf("Must contain at least %d character(s)", c.min),
			})
		}
	}

	if s.rules.StrictPhone && !validator.IsPhone(req.Phone) {
		fields = append(fields, apperrors.FieldError{Field: "phone", Message: msgPhoneFormat})
	}

	if req.Time != "" && !s.schedule.Contains(req.Date, req.Time) {
		fields = append(fields, apperrors.FieldError{Field: "time", Message: msgUnknownSlot})
	}
	return fields
}

// emit records an outbox event. Failure is logged and does not undo the booking.
func (s *Service) emit(ctx context.Context, eventType string, booking *model.Booking) {
	if s.outbox == nil {
		return
	}
	event, err := model.NewOutboxEvent(eventType, booking)
	if err != nil {
		s.logger.Error(err, "Failed to build outbox event", "event_type", eventType)
		return
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error(err, "Failed to create outbox event",
			"event_type", eventType,
			"booking_id", booking.ID)
	}
}
