package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

const bookingColumns = `
	id, first_name, last_name, email, phone,
	service_id, package_id, therapist_id,
	date, time, notes, created_at
`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

// Insert relies on bookings_slot_uniq to reject a second booking for the same
// (date, time, therapist_id), so two concurrent inserts cannot both succeed.
func (r *bookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			first_name, last_name, email, phone,
			service_id, package_id, therapist_id,
			date, time, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		booking.FirstName,
		booking.LastName,
		booking.Email,
		booking.Phone,
		booking.ServiceID,
		booking.PackageID,
		booking.TherapistID,
		booking.Date,
		booking.Time,
		booking.Notes,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflict("This time slot is no longer available", err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, getErr("booking", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.TherapistID != nil {
		args = append(args, *filter.TherapistID)
		conditions = append(conditions, fmt.Sprintf("therapist_id = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	bookings := []*model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return r.List(ctx, model.BookingFilter{Date: date})
}

func (r *bookingRepository) FindByDateAndTherapist(ctx context.Context, date string, therapistID int64) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE date = $1 AND therapist_id = $2 ORDER BY id ASC`

	bookings := []*model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, date, therapistID); err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return affected("booking", result)
}
