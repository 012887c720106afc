package postgres

import (
	"context"
	"fmt"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, price, duration, image
		FROM services
		ORDER BY id ASC
	`
	services := []*model.Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, description, price, duration, image
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, getErr("service", err)
	}
	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (name, description, price, duration, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.Image,
	).Scan(&service.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, price = $3, duration = $4, image = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.Image,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return affected("service", result)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return affected("service", result)
}
