package model

import "github.com/lib/pq"

// Package bundles several treatments under one price.
type Package struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Price       int            `db:"price" json:"price"`
	Features    pq.StringArray `db:"features" json:"features"`
	Popular     bool           `db:"popular" json:"popular"`
}

type CreatePackageRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       int      `json:"price" validate:"gte=0"`
	Features    []string `json:"features" validate:"dive,required"`
	Popular     *bool    `json:"popular"`
}

func (r *CreatePackageRequest) ToPackage() *Package {
	pkg := &Package{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Features:    pq.StringArray(append([]string{}, r.Features...)),
	}
	if r.Popular != nil {
		pkg.Popular = *r.Popular
	}
	return pkg
}

type PackagePatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Price       *int      `json:"price" validate:"omitempty,gte=0"`
	Features    *[]string `json:"features" validate:"omitempty,dive,required"`
	Popular     *bool     `json:"popular"`
}

func (p *PackagePatch) Apply(pkg *Package) {
	if p.Name != nil {
		pkg.Name = *p.Name
	}
	if p.Description != nil {
		pkg.Description = *p.Description
	}
	if p.Price != nil {
		pkg.Price = *p.Price
	}
	if p.Features != nil {
		pkg.Features = pq.StringArray(append([]string{}, (*p.Features)...))
	}
	if p.Popular != nil {
		pkg.Popular = *p.Popular
	}
}
