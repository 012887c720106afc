package model

// Service is a single bookable treatment.
type Service struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Price       int    `db:"price" json:"price"`
	Duration    int    `db:"duration" json:"duration"` // in minutes
	Image       string `db:"image" json:"image"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required"`
	Price       int    `json:"price" validate:"gte=0"`
	Duration    int    `json:"duration" validate:"gt=0"`
	Image       string `json:"image" validate:"required"`
}

func (r *CreateServiceRequest) ToService() *Service {
	return &Service{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Image:       r.Image,
	}
}

// ServicePatch carries a partial update; nil fields are left untouched.
type ServicePatch struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0"`
	Image       *string `json:"image" validate:"omitempty,min=1"`
}

func (p *ServicePatch) Apply(s *Service) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
}
