package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

type slotKey struct {
	date        string
	time        string
	therapistID int64
}

type bookingRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*model.Booking
	slots  map[slotKey]int64
	now    func() time.Time
}

func NewBookingRepository() repository.BookingRepository {
	return &bookingRepository{
		nextID: 1,
		rows:   make(map[int64]*model.Booking),
		slots:  make(map[slotKey]int64),
		now:    time.Now,
	}
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBooking(b *model.Booking) *model.Booking {
	c := *b
	c.ServiceID = copyInt64(b.ServiceID)
	c.PackageID = copyInt64(b.PackageID)
	c.TherapistID = copyInt64(b.TherapistID)
	if b.Notes != nil {
		n := *b.Notes
		c.Notes = &n
	}
	return &c
}

func keyOf(b *model.Booking) (slotKey, bool) {
	if b.TherapistID == nil {
		return slotKey{}, false
	}
	return slotKey{date: b.Date, time: b.Time, therapistID: *b.TherapistID}, true
}

// Insert checks and claims the slot under one lock, so concurrent inserts for
// the same (date, time, therapist) resolve to one success and one Conflict.
func (r *bookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, scoped := keyOf(booking)
	if scoped {
		if _, taken := r.slots[key]; taken {
			return apperrors.NewConflict("This time slot is no longer available", nil)
		}
	}

	booking.ID = r.nextID
	booking.CreatedAt = r.now().UTC()
	r.nextID++

	r.rows[booking.ID] = cloneBooking(booking)
	if scoped {
		r.slots[key] = booking.ID
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NewNotFound("booking", nil)
	}
	return cloneBooking(b), nil
}

func (r *bookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Booking{}
	for _, b := range r.rows {
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.TherapistID != nil && (b.TherapistID == nil || *b.TherapistID != *filter.TherapistID) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return r.List(ctx, model.BookingFilter{Date: date})
}

func (r *bookingRepository) FindByDateAndTherapist(ctx context.Context, date string, therapistID int64) ([]*model.Booking, error) {
	return r.List(ctx, model.BookingFilter{Date: date, TherapistID: &therapistID})
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.rows[id]
	if !ok {
		return apperrors.NewNotFound("booking", nil)
	}
	if key, scoped := keyOf(b); scoped && r.slots[key] == id {
		delete(r.slots, key)
	}
	delete(r.rows, id)
	return nil
}
