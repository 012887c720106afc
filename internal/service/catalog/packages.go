package catalog

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func (s *Service) ListPackages(ctx context.Context) ([]*model.Package, error) {
	return cachedList(s, packagesKey, func() ([]*model.Package, error) {
		return s.packages.List(ctx)
	})
}

func (s *Service) GetPackage(ctx context.Context, id int64) (*model.Package, error) {
	return s.packages.Get(ctx, id)
}

func (s *Service) CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	pkg := req.ToPackage()
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	s.invalidate(packagesKey)
	return pkg, nil
}

func (s *Service) UpdatePackage(ctx context.Context, id int64, patch *model.PackagePatch) (*model.Package, error) {
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	pkg, err := s.packages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(pkg)

	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	s.invalidate(packagesKey)
	return pkg, nil
}

func (s *Service) DeletePackage(ctx context.Context, id int64) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(packagesKey)
	return nil
}
