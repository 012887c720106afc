package postgres

import (
	"context"
	"fmt"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

type packageRepository struct {
	BaseRepository
}

func NewPackageRepository(base BaseRepository) repository.PackageRepository {
	return &packageRepository{base}
}

func (r *packageRepository) List(ctx context.Context) ([]*model.Package, error) {
	query := `
		SELECT id, name, description, price, features, popular
		FROM packages
		ORDER BY id ASC
	`
	packages := []*model.Package{}
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) Get(ctx context.Context, id int64) (*model.Package, error) {
	query := `
		SELECT id, name, description, price, features, popular
		FROM packages
		WHERE id = $1
	`
	var pkg model.Package
	if err := r.db.GetContext(ctx, &pkg, query, id); err != nil {
		return nil, getErr("package", err)
	}
	return &pkg, nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *model.Package) error {
	query := `
		INSERT INTO packages (name, description, price, features, popular)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Features,
		pkg.Popular,
	).Scan(&pkg.ID)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *model.Package) error {
	query := `
		UPDATE packages
		SET name = $1, description = $2, price = $3, features = $4, popular = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Features,
		pkg.Popular,
		pkg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	return affected("package", result)
}

func (r *packageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return affected("package", result)
}
