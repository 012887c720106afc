package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

// All repository interfaces in one file.
//
// Get, Update and Delete return a NotFound AppError for unknown ids. Lists are
// ordered by id ascending and are empty, never nil, when there is nothing to return.
type (
	ServiceRepository interface {
		List(ctx context.Context) ([]*model.Service, error)
		Get(ctx context.Context, id int64) (*model.Service, error)
		Create(ctx context.Context, service *model.Service) error
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id int64) error
	}

	PackageRepository interface {
		List(ctx context.Context) ([]*model.Package, error)
		Get(ctx context.Context, id int64) (*model.Package, error)
		Create(ctx context.Context, pkg *model.Package) error
		Update(ctx context.Context, pkg *model.Package) error
		Delete(ctx context.Context, id int64) error
	}

	TherapistRepository interface {
		List(ctx context.Context) ([]*model.Therapist, error)
		Get(ctx context.Context, id int64) (*model.Therapist, error)
		Create(ctx context.Context, therapist *model.Therapist) error
		Update(ctx context.Context, therapist *model.Therapist) error
		Delete(ctx context.Context, id int64) error
	}

	TestimonialRepository interface {
		List(ctx context.Context) ([]*model.Testimonial, error)
		Get(ctx context.Context, id int64) (*model.Testimonial, error)
		Create(ctx context.Context, testimonial *model.Testimonial) error
		Update(ctx context.Context, testimonial *model.Testimonial) error
		Delete(ctx context.Context, id int64) error
	}

	// BookingRepository guarantees that no two bookings share (date, time, therapistId)
	// when therapistId is set. Insert reports a Conflict AppError in that case.
	BookingRepository interface {
		Insert(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id int64) (*model.Booking, error)
		List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
		FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
		FindByDateAndTherapist(ctx context.Context, date string, therapistID int64) ([]*model.Booking, error)
		Delete(ctx context.Context, id int64) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkAsProcessed(ctx context.Context, id uuid.UUID) error
		MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error
		RecordAttempt(ctx context.Context, id uuid.UUID, errMsg string) error
	}

	// Pinger is implemented by stores that can report readiness.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Store groups every repository behind one backing implementation.
type Store struct {
	Services     ServiceRepository
	Packages     PackageRepository
	Therapists   TherapistRepository
	Testimonials TestimonialRepository
	Bookings     BookingRepository
	Outbox       OutboxRepository
	Health       Pinger
}
