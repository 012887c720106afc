package catalog

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	return cachedList(s, servicesKey, func() ([]*model.Service, error) {
		return s.services.List(ctx)
	})
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	service := req.ToService()
	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}
	s.invalidate(servicesKey)
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, patch *model.ServicePatch) (*model.Service, error) {
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	service, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(service)

	if err := s.services.Update(ctx, service); err != nil {
		return nil, err
	}
	s.invalidate(servicesKey)
	return service, nil
}

// DeleteService leaves bookings that reference id untouched.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(servicesKey)
	return nil
}
