package postgres

import (
	"context"
	"fmt"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

type therapistRepository struct {
	BaseRepository
}

func NewTherapistRepository(base BaseRepository) repository.TherapistRepository {
	return &therapistRepository{base}
}

func (r *therapistRepository) List(ctx context.Context) ([]*model.Therapist, error) {
	query := `
		SELECT id, name, title, bio, image, specialties
		FROM therapists
		ORDER BY id ASC
	`
	therapists := []*model.Therapist{}
	if err := r.db.SelectContext(ctx, &therapists, query); err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return therapists, nil
}

func (r *therapistRepository) Get(ctx context.Context, id int64) (*model.Therapist, error) {
	query := `
		SELECT id, name, title, bio, image, specialties
		FROM therapists
		WHERE id = $1
	`
	var therapist model.Therapist
	if err := r.db.GetContext(ctx, &therapist, query, id); err != nil {
		return nil, getErr("therapist", err)
	}
	return &therapist, nil
}

func (r *therapistRepository) Create(ctx context.Context, therapist *model.Therapist) error {
	query := `
		INSERT INTO therapists (name, title, bio, image, specialties)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		therapist.Name,
		therapist.Title,
		therapist.Bio,
		therapist.Image,
		therapist.Specialties,
	).Scan(&therapist.ID)
	if err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

func (r *therapistRepository) Update(ctx context.Context, therapist *model.Therapist) error {
	query := `
		UPDATE therapists
		SET name = $1, title = $2, bio = $3, image = $4, specialties = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		therapist.Name,
		therapist.Title,
		therapist.Bio,
		therapist.Image,
		therapist.Specialties,
		therapist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update therapist: %w", err)
	}
	return affected("therapist", result)
}

func (r *therapistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete therapist: %w", err)
	}
	return affected("therapist", result)
}
