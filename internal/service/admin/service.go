// Package admin is the back-office facade over the catalog and booking stores.
// Every method checks the admin claim on ctx before touching state.
package admin

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/access"
	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/service/booking"
	"github.com/AndyMuloki/zen-spa/internal/service/catalog"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

const forbiddenMessage = "Forbidden: Admins only"

type Gateway struct {
	catalog  *catalog.Service
	bookings *booking.Service
}

func NewGateway(catalog *catalog.Service, bookings *booking.Service) *Gateway {
	return &Gateway{catalog: catalog, bookings: bookings}
}

func authorize(ctx context.Context) error {
	if !access.IsAdmin(ctx) {
		return apperrors.NewForbidden(forbiddenMessage)
	}
	return nil
}

// Services

func (g *Gateway) ListServices(ctx context.Context) ([]*model.Service, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.ListServices(ctx)
}

func (g *Gateway) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.CreateService(ctx, req)
}

func (g *Gateway) UpdateService(ctx context.Context, id int64, patch *model.ServicePatch) (*model.Service, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.UpdateService(ctx, id, patch)
}

func (g *Gateway) DeleteService(ctx context.Context, id int64) error {
	if err := authorize(ctx); err != nil {
		return err
	}
	return g.catalog.DeleteService(ctx, id)
}

// Packages

func (g *Gateway) ListPackages(ctx context.Context) ([]*model.Package, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.ListPackages(ctx)
}

func (g *Gateway) CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.CreatePackage(ctx, req)
}

func (g *Gateway) UpdatePackage(ctx context.Context, id int64, patch *model.PackagePatch) (*model.Package, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.UpdatePackage(ctx, id, patch)
}

func (g *Gateway) DeletePackage(ctx context.Context, id int64) error {
	if err := authorize(ctx); err != nil {
		return err
	}
	return g.catalog.DeletePackage(ctx, id)
}

// Therapists

func (g *Gateway) ListTherapists(ctx context.Context) ([]*model.Therapist, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.ListTherapists(ctx)
}

func (g *Gateway) CreateTherapist(ctx context.Context, req *model.CreateTherapistRequest) (*model.Therapist, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.CreateTherapist(ctx, req)
}

func (g *Gateway) UpdateTherapist(ctx context.Context, id int64, patch *model.TherapistPatch) (*model.Therapist, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.UpdateTherapist(ctx, id, patch)
}

func (g *Gateway) DeleteTherapist(ctx context.Context, id int64) error {
	if err := authorize(ctx); err != nil {
		return err
	}
	return g.catalog.DeleteTherapist(ctx, id)
}

// Testimonials

func (g *Gateway) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.ListTestimonials(ctx)
}

func (g *Gateway) CreateTestimonial(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.CreateTestimonial(ctx, req)
}

func (g *Gateway) UpdateTestimonial(ctx context.Context, id int64, patch *model.TestimonialPatch) (*model.Testimonial, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.catalog.UpdateTestimonial(ctx, id, patch)
}

func (g *Gateway) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := authorize(ctx); err != nil {
		return err
	}
	return g.catalog.DeleteTestimonial(ctx, id)
}

// Bookings

func (g *Gateway) ListBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.bookings.ListBookings(ctx, filter)
}

func (g *Gateway) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	if err := authorize(ctx); err != nil {
		return nil, err
	}
	return g.bookings.GetBooking(ctx, id)
}

func (g *Gateway) DeleteBooking(ctx context.Context, id int64) error {
	if err := authorize(ctx); err != nil {
		return err
	}
	return g.bookings.CancelBooking(ctx, id)
}
