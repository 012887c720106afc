package model

import "time"

// Booking is a reserved slot. It has no status: it exists until an admin deletes it.
type Booking struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	ServiceID   *int64    `db:"service_id" json:"serviceId"`
	PackageID   *int64    `db:"package_id" json:"packageId"`
	TherapistID *int64    `db:"therapist_id" json:"therapistId"`
	Date        string    `db:"date" json:"date"` // YYYY-MM-DD, stored verbatim
	Time        string    `db:"time" json:"time"` // slot label, e.g. "9:00 AM"
	Notes       *string   `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CreateBookingRequest is the client payload. id and createdAt are never accepted from the client.
type CreateBookingRequest struct {
	FirstName   string  `json:"firstName" validate:"required,min=2,max=100"`
	LastName    string  `json:"lastName" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required,min=10"`
	ServiceID   *int64  `json:"serviceId" validate:"omitempty,gt=0"`
	PackageID   *int64  `json:"packageId" validate:"omitempty,gt=0"`
	TherapistID *int64  `json:"therapistId" validate:"omitempty,gt=0"`
	Date        string  `json:"date" validate:"required"`
	Time        string  `json:"time" validate:"required"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// ToBooking copies the fields exactly as submitted, so the stored booking is
// the one that passed validation.
func (r *CreateBookingRequest) ToBooking() *Booking {
	return &Booking{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		ServiceID:   r.ServiceID,
		PackageID:   r.PackageID,
		TherapistID: r.TherapistID,
		Date:        r.Date,
		Time:        r.Time,
		Notes:       r.Notes,
	}
}

// BookingFilter narrows admin booking listings. Zero values match everything.
type BookingFilter struct {
	Date        string
	TherapistID *int64
}

// AvailabilityQuery is the input of a free-slot lookup. The offering ids are
// accepted but do not influence the result.
type AvailabilityQuery struct {
	Date        string
	TherapistID int64
	ServiceID   *int64
	PackageID   *int64
}
