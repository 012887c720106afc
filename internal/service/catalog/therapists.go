package catalog

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func (s *Service) ListTherapists(ctx context.Context) ([]*model.Therapist, error) {
	return cachedList(s, therapistsKey, func() ([]*model.Therapist, error) {
		return s.therapists.List(ctx)
	})
}

func (s *Service) GetTherapist(ctx context.Context, id int64) (*model.Therapist, error) {
	return s.therapists.Get(ctx, id)
}

func (s *Service) CreateTherapist(ctx context.Context, req *model.CreateTherapistRequest) (*model.Therapist, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	therapist := req.ToTherapist()
	if err := s.therapists.Create(ctx, therapist); err != nil {
		return nil, err
	}
	s.invalidate(therapistsKey)
	return therapist, nil
}

func (s *Service) UpdateTherapist(ctx context.Context, id int64, patch *model.TherapistPatch) (*model.Therapist, error) {
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(therapist)

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, err
	}
	s.invalidate(therapistsKey)
	return therapist, nil
}

// DeleteTherapist leaves the therapist's bookings in place; their slots stay taken.
func (s *Service) DeleteTherapist(ctx context.Context, id int64) error {
	if err := s.therapists.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(therapistsKey)
	return nil
}
