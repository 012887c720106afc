package catalog

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func (s *Service) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	return cachedList(s, testimonialsKey, func() ([]*model.Testimonial, error) {
		return s.testimonials.List(ctx)
	})
}

func (s *Service) CreateTestimonial(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	testimonial := req.ToTestimonial()
	if err := s.testimonials.Create(ctx, testimonial); err != nil {
		return nil, err
	}
	s.invalidate(testimonialsKey)
	return testimonial, nil
}

func (s *Service) UpdateTestimonial(ctx context.Context, id int64, patch *model.TestimonialPatch) (*model.Testimonial, error) {
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	testimonial, err := s.testimonials.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(testimonial)

	if err := s.testimonials.Update(ctx, testimonial); err != nil {
		return nil, err
	}
	s.invalidate(testimonialsKey)
	return testimonial, nil
}

func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(testimonialsKey)
	return nil
}
