package memory

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/repository"
)

type alwaysReady struct{}

func (alwaysReady) Ping(context.Context) error { return nil }

// NewStore returns a process-local store. Its contents are lost on restart.
func NewStore() *repository.Store {
	return &repository.Store{
		Services:     NewServiceRepository(),
		Packages:     NewPackageRepository(),
		Therapists:   NewTherapistRepository(),
		Testimonials: NewTestimonialRepository(),
		Bookings:     NewBookingRepository(),
		Outbox:       NewOutboxRepository(),
		Health:       alwaysReady{},
	}
}
