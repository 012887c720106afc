package availability

import (
	"context"
	"fmt"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

// BookingFinder is the slice of the booking store the resolver reads.
type BookingFinder interface {
	FindByDateAndTherapist(ctx context.Context, date string, therapistID int64) ([]*model.Booking, error)
}

type Service struct {
	bookings BookingFinder
	schedule Schedule
}

func NewService(bookings BookingFinder, schedule Schedule) *Service {
	return &Service{
		bookings: bookings,
		schedule: schedule,
	}
}

// Schedule exposes the slot configuration for callers that validate labels.
func (s *Service) Schedule() Schedule {
	return s.schedule
}

// AvailableSlots returns the schedule for q.Date minus the times already booked
// for (q.Date, q.TherapistID), in schedule order. The offering ids do not
// narrow the result.
func (s *Service) AvailableSlots(ctx context.Context, q model.AvailabilityQuery) ([]string, error) {
	booked, err := s.bookings.FindByDateAndTherapist(ctx, q.Date, q.TherapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return FreeSlots(s.schedule.For(q.Date), booked), nil
}

// FreeSlots is the pure part of the lookup: slots not taken by any booking.
func FreeSlots(slots []string, bookings []*model.Booking) []string {
	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		taken[b.Time] = struct{}{}
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available
}
