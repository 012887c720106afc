package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyMuloki/zen-spa/internal/config"
	"github.com/AndyMuloki/zen-spa/internal/flash"
	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	"github.com/AndyMuloki/zen-spa/internal/repository/memory"
	"github.com/AndyMuloki/zen-spa/internal/service/availability"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
)

type fixture struct {
	svc     *Service
	store   *repository.Store
	flashes *flash.MemoryStore
}

func newFixture(t *testing.T, rules Rules) fixture {
	t.Helper()
	store := memory.NewStore()
	flashes := flash.NewMemoryStore(0, 0)
	svc := NewService(
		store.Bookings,
		store.Outbox,
		flashes,
		availability.NewSchedule(config.DefaultSlots, nil),
		validator.New(),
		rules,
		metrics.NewNop(),
		logger.Nop(),
	)
	return fixture{svc: svc, store: store, flashes: flashes}
}

func ptr(v int64) *int64 { return &v }

func validRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "+1 555 123 4567",
		ServiceID:   ptr(1),
		TherapistID: ptr(2),
		Date:        "2024-06-01",
		Time:        "9:00 AM",
	}
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.ErrValidation, appErr.Code)

	out := make(map[string]string, len(appErr.Fields))
	for _, f := range appErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t, Rules{})
	ctx := context.Background()

	booking, err := f.svc.CreateBooking(ctx, "sid", validRequest())
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.False(t, booking.CreatedAt.IsZero())

	stored, err := f.store.Bookings.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking, stored)

	events, err := f.store.Outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventBookingCreated, events[0].EventType)

	flashMsg, err := f.svc.ConsumeFlash(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, flashMsg)
	assert.Equal(t, "Booking Successful", flashMsg.Title)
	assert.Equal(t, "Your appointment has been booked!", flashMsg.Description)

	again, err := f.svc.ConsumeFlash(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestCreateBooking_PaddingDoesNotCountTowardsLength(t *testing.T) {
	tests := []struct {
		field string
		edit  func(*model.CreateBookingRequest)
	}{
		{"firstName", func(r *model.CreateBookingRequest) { r.FirstName = "A " }},
		{"lastName", func(r *model.CreateBookingRequest) { r.LastName = " B" }},
		{"phone", func(r *model.CreateBookingRequest) { r.Phone = " 123456789 " }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := newFixture(t, Rules{})
			req := validRequest()
			tt.edit(req)

			_, err := f.svc.CreateBooking(context.Background(), "", req)
			got := fieldMessages(t, err)
			assert.Contains(t, got[tt.field], "Must contain at least")
			assert.Len(t, got, 1)

			all, _ := f.store.Bookings.List(context.Background(), model.BookingFilter{})
			assert.Empty(t, all)
		})
	}
}

func TestCreateBooking_StoresFieldsAsSubmitted(t *testing.T) {
	f := newFixture(t, Rules{})
	ctx := context.Background()
	notes := "  quiet room please "
	req := validRequest()
	req.FirstName = " Li"
	req.LastName = "Doe "
	req.Phone = " +1 555 123 4567"
	req.Notes = &notes

	created, err := f.svc.CreateBooking(ctx, "", req)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := f.store.Bookings.Get(ctx, created.ID)
	require.NoError(t, err)
	byDate, err := f.store.Bookings.FindByDate(ctx, req.Date)
	require.NoError(t, err)
	require.Len(t, byDate, 1)

	for _, got := range []*model.Booking{byID, byDate[0]} {
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, req.FirstName, got.FirstName)
		assert.Equal(t, req.LastName, got.LastName)
		assert.Equal(t, req.Email, got.Email)
		assert.Equal(t, req.Phone, got.Phone)
		assert.Equal(t, req.ServiceID, got.ServiceID)
		assert.Equal(t, req.PackageID, got.PackageID)
		assert.Equal(t, req.TherapistID, got.TherapistID)
		assert.Equal(t, req.Date, got.Date)
		assert.Equal(t, req.Time, got.Time)
		require.NotNil(t, got.Notes)
		assert.Equal(t, notes, *got.Notes)
	}
}

func TestCreateBooking_PhoneFormat(t *testing.T) {
	req := validRequest()
	req.Phone = "phone: 5551234567"

	_, err := newFixture(t, Rules{}).svc.CreateBooking(context.Background(), "", req)
	assert.NoError(t, err, "only the minimum length applies by default")

	req.TherapistID = ptr(9)
	_, err = newFixture(t, Rules{StrictPhone: true}).svc.CreateBooking(context.Background(), "", req)
	assert.Equal(t, "Invalid phone number", fieldMessages(t, err)["phone"])
}

func TestCreateBooking_ValidationCollectsEveryField(t *testing.T) {
	f := newFixture(t, Rules{})
	req := validRequest()
	req.FirstName = "A"
	req.Email = "not-an-email"
	req.Phone = "123"
	req.ServiceID = nil

	_, err := f.svc.CreateBooking(context.Background(), "sid", req)
	got := fieldMessages(t, err)

	assert.Equal(t, "Must contain at least 2 character(s)", got["firstName"])
	assert.Equal(t, "Invalid email address", got["email"])
	assert.Contains(t, got, "phone")
	assert.Equal(t, "Either a service or package must be selected", got["serviceId"])

	all, _ := f.store.Bookings.List(context.Background(), model.BookingFilter{})
	assert.Empty(t, all, "nothing is persisted on validation failure")

	flashMsg, _ := f.svc.ConsumeFlash(context.Background(), "sid")
	assert.Nil(t, flashMsg)
}

func TestCreateBooking_Offering(t *testing.T) {
	tests := []struct {
		name      string
		rules     Rules
		serviceID *int64
		packageID *int64
		wantErr   string
	}{
		{name: "service only", serviceID: ptr(1)},
		{name: "package only", packageID: ptr(1)},
		{name: "both allowed by default", serviceID: ptr(1), packageID: ptr(2)},
		{name: "neither", wantErr: "Either a service or package must be selected"},
		{
			name:      "both rejected when exclusive",
			rules:     Rules{ExclusiveOffering: true},
			serviceID: ptr(1),
			packageID: ptr(2),
			wantErr:   "Select either a service or a package, not both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.rules)
			req := validRequest()
			req.ServiceID = tt.serviceID
			req.PackageID = tt.packageID

			_, err := f.svc.CreateBooking(context.Background(), "", req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, fieldMessages(t, err)["serviceId"])
		})
	}
}

func TestCreateBooking_UnknownSlot(t *testing.T) {
	f := newFixture(t, Rules{})
	req := validRequest()
	req.Time = "11:15 PM"

	_, err := f.svc.CreateBooking(context.Background(), "", req)
	assert.Equal(t, "Selected time is not an available slot", fieldMessages(t, err)["time"])
}

func TestCreateBooking_Conflict(t *testing.T) {
	f := newFixture(t, Rules{})
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, "first", validRequest())
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, "second", validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	flashMsg, _ := f.svc.ConsumeFlash(ctx, "second")
	assert.Nil(t, flashMsg, "no confirmation for a rejected booking")

	other := validRequest()
	other.TherapistID = ptr(3)
	_, err = f.svc.CreateBooking(ctx, "third", other)
	assert.NoError(t, err, "same slot with another therapist is free")
}

func TestCreateBooking_FreesSlotAfterCancel(t *testing.T) {
	f := newFixture(t, Rules{})
	ctx := context.Background()

	booking, err := f.svc.CreateBooking(ctx, "", validRequest())
	require.NoError(t, err)
	require.NoError(t, f.svc.CancelBooking(ctx, booking.ID))

	_, err = f.svc.CreateBooking(ctx, "", validRequest())
	assert.NoError(t, err)

	assert.True(t, apperrors.Is(f.svc.CancelBooking(ctx, booking.ID), apperrors.ErrNotFound))
}

type failingBookings struct {
	repository.BookingRepository
}

func (failingBookings) Insert(context.Context, *model.Booking) error {
	return errors.New("disk full")
}

func TestCreateBooking_PersistenceFailure(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(
		failingBookings{store.Bookings},
		store.Outbox,
		flash.NewMemoryStore(0, 0),
		availability.NewSchedule(config.DefaultSlots, nil),
		validator.New(),
		Rules{},
		metrics.NewNop(),
		logger.Nop(),
	)

	_, err := svc.CreateBooking(context.Background(), "sid", validRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
	assert.Equal(t, "Failed to create booking", appErr.Message)

	events, _ := store.Outbox.GetPendingEvents(context.Background(), 10)
	assert.Empty(t, events)
}

func TestCreateBooking_WithoutOutbox(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(
		store.Bookings,
		nil,
		flash.NewMemoryStore(0, 0),
		availability.NewSchedule(config.DefaultSlots, nil),
		validator.New(),
		Rules{},
		metrics.NewNop(),
		logger.Nop(),
	)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, "sid", validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, booking.ID))

	events, _ := store.Outbox.GetPendingEvents(ctx, 10)
	assert.Empty(t, events)
}
