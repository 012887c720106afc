package model

import "github.com/lib/pq"

type Therapist struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Title       string         `db:"title" json:"title"`
	Bio         string         `db:"bio" json:"bio"`
	Image       string         `db:"image" json:"image"`
	Specialties pq.StringArray `db:"specialties" json:"specialties"`
}

type CreateTherapistRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Title       string   `json:"title" validate:"required"`
	Bio         string   `json:"bio" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Specialties []string `json:"specialties" validate:"dive,required"`
}

func (r *CreateTherapistRequest) ToTherapist() *Therapist {
	return &Therapist{
		Name:        r.Name,
		Title:       r.Title,
		Bio:         r.Bio,
		Image:       r.Image,
		Specialties: pq.StringArray(append([]string{}, r.Specialties...)),
	}
}

type TherapistPatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=200"`
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Bio         *string   `json:"bio" validate:"omitempty,min=1"`
	Image       *string   `json:"image" validate:"omitempty,min=1"`
	Specialties *[]string `json:"specialties" validate:"omitempty,dive,required"`
}

func (p *TherapistPatch) Apply(t *Therapist) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Bio != nil {
		t.Bio = *p.Bio
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Specialties != nil {
		t.Specialties = pq.StringArray(append([]string{}, (*p.Specialties)...))
	}
}
