package model

type Testimonial struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Title       string `db:"title" json:"title"`
	Testimonial string `db:"testimonial" json:"testimonial"`
	Rating      int    `db:"rating" json:"rating"`
	Image       string `db:"image" json:"image"`
}

type CreateTestimonialRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Title       string `json:"title" validate:"required"`
	Testimonial string `json:"testimonial" validate:"required"`
	Rating      int    `json:"rating" validate:"min=1,max=5"`
	Image       string `json:"image" validate:"required"`
}

func (r *CreateTestimonialRequest) ToTestimonial() *Testimonial {
	return &Testimonial{
		Name:        r.Name,
		Title:       r.Title,
		Testimonial: r.Testimonial,
		Rating:      r.Rating,
		Image:       r.Image,
	}
}

type TestimonialPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Testimonial *string `json:"testimonial" validate:"omitempty,min=1"`
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Image       *string `json:"image" validate:"omitempty,min=1"`
}

func (p *TestimonialPatch) Apply(t *Testimonial) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Testimonial != nil {
		t.Testimonial = *p.Testimonial
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
}
