package booking

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func (s *Service) ListBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	return s.bookings.List(ctx, filter)
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	return s.bookings.Get(ctx, id)
}

// CancelBooking hard-deletes the booking, which frees its slot.
func (s *Service) CancelBooking(ctx context.Context, id int64) error {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, model.EventBookingDeleted, booking)
	s.logger.Info("Booking cancelled", "booking_id", id)
	return nil
}
