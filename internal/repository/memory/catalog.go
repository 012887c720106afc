package memory

import (
	"context"

	"github.com/lib/pq"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

func cloneStrings(s pq.StringArray) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return append(pq.StringArray{}, s...)
}

type serviceRepository struct {
	t *table[model.Service]
}

func NewServiceRepository() repository.ServiceRepository {
	return &serviceRepository{t: newTable("service",
		func(s *model.Service) *int64 { return &s.ID },
		func(s *model.Service) *model.Service { c := *s; return &c },
	)}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	return r.t.list(), nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	return r.t.get(id)
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	r.t.create(service)
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.t.update(service)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}

type packageRepository struct {
	t *table[model.Package]
}

func NewPackageRepository() repository.PackageRepository {
	return &packageRepository{t: newTable("package",
		func(p *model.Package) *int64 { return &p.ID },
		func(p *model.Package) *model.Package {
			c := *p
			c.Features = cloneStrings(p.Features)
			return &c
		},
	)}
}

func (r *packageRepository) List(ctx context.Context) ([]*model.Package, error) {
	return r.t.list(), nil
}

func (r *packageRepository) Get(ctx context.Context, id int64) (*model.Package, error) {
	return r.t.get(id)
}

func (r *packageRepository) Create(ctx context.Context, pkg *model.Package) error {
	r.t.create(pkg)
	return nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *model.Package) error {
	return r.t.update(pkg)
}

func (r *packageRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}

type therapistRepository struct {
	t *table[model.Therapist]
}

func NewTherapistRepository() repository.TherapistRepository {
	return &therapistRepository{t: newTable("therapist",
		func(t *model.Therapist) *int64 { return &t.ID },
		func(t *model.Therapist) *model.Therapist {
			c := *t
			c.Specialties = cloneStrings(t.Specialties)
			return &c
		},
	)}
}

func (r *therapistRepository) List(ctx context.Context) ([]*model.Therapist, error) {
	return r.t.list(), nil
}

func (r *therapistRepository) Get(ctx context.Context, id int64) (*model.Therapist, error) {
	return r.t.get(id)
}

func (r *therapistRepository) Create(ctx context.Context, therapist *model.Therapist) error {
	r.t.create(therapist)
	return nil
}

func (r *therapistRepository) Update(ctx context.Context, therapist *model.Therapist) error {
	return r.t.update(therapist)
}

func (r *therapistRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}

type testimonialRepository struct {
	t *table[model.Testimonial]
}

func NewTestimonialRepository() repository.TestimonialRepository {
	return &testimonialRepository{t: newTable("testimonial",
		func(t *model.Testimonial) *int64 { return &t.ID },
		func(t *model.Testimonial) *model.Testimonial { c := *t; return &c },
	)}
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	return r.t.list(), nil
}

func (r *testimonialRepository) Get(ctx context.Context, id int64) (*model.Testimonial, error) {
	return r.t.get(id)
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	r.t.create(testimonial)
	return nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *model.Testimonial) error {
	return r.t.update(testimonial)
}

func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}
