package postgres

import (
	"context"
	"fmt"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

type testimonialRepository struct {
	BaseRepository
}

func NewTestimonialRepository(base BaseRepository) repository.TestimonialRepository {
	return &testimonialRepository{base}
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	query := `
		SELECT id, name, title, testimonial, rating, image
		FROM testimonials
		ORDER BY id ASC
	`
	testimonials := []*model.Testimonial{}
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) Get(ctx context.Context, id int64) (*model.Testimonial, error) {
	query := `
		SELECT id, name, title, testimonial, rating, image
		FROM testimonials
		WHERE id = $1
	`
	var testimonial model.Testimonial
	if err := r.db.GetContext(ctx, &testimonial, query, id); err != nil {
		return nil, getErr("testimonial", err)
	}
	return &testimonial, nil
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	query := `
		INSERT INTO testimonials (name, title, testimonial, rating, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		testimonial.Name,
		testimonial.Title,
		testimonial.Testimonial,
		testimonial.Rating,
		testimonial.Image,
	).Scan(&testimonial.ID)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *model.Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $1, title = $2, testimonial = $3, rating = $4, image = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		testimonial.Name,
		testimonial.Title,
		testimonial.Testimonial,
		testimonial.Rating,
		testimonial.Image,
		testimonial.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	return affected("testimonial", result)
}

func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return affected("testimonial", result)
}
