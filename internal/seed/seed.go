// Package seed loads the demo catalog into an empty store.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/repository"
)

//go:embed catalog.yml
var catalogYAML []byte

type Document struct {
	Services     []model.CreateServiceRequest     `yaml:"services"`
	Therapists   []model.CreateTherapistRequest   `yaml:"therapists"`
	Packages     []model.CreatePackageRequest     `yaml:"packages"`
	Testimonials []model.CreateTestimonialRequest `yaml:"testimonials"`
}

// Catalog parses the embedded demo catalog.
func Catalog() (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return &doc, nil
}

// Run inserts each entity type whose table is empty. It reports whether anything was written.
func Run(ctx context.Context, store *repository.Store) (bool, error) {
	doc, err := Catalog()
	if err != nil {
		return false, err
	}
	seeded := false

	services, err := store.Services.List(ctx)
	if err != nil {
		return false, err
	}
	if len(services) == 0 {
		for i := range doc.Services {
			if err := store.Services.Create(ctx, doc.Services[i].ToService()); err != nil {
				return seeded, fmt.Errorf("failed to seed services: %w", err)
			}
		}
		seeded = true
	}

	therapists, err := store.Therapists.List(ctx)
	if err != nil {
		return seeded, err
	}
	if len(therapists) == 0 {
		for i := range doc.Therapists {
			if err := store.Therapists.Create(ctx, doc.Therapists[i].ToTherapist()); err != nil {
				return seeded, fmt.Errorf("failed to seed therapists: %w", err)
			}
		}
		seeded = true
	}

	packages, err := store.Packages.List(ctx)
	if err != nil {
		return seeded, err
	}
	if len(packages) == 0 {
		for i := range doc.Packages {
			if err := store.Packages.Create(ctx, doc.Packages[i].ToPackage()); err != nil {
				return seeded, fmt.Errorf("failed to seed packages: %w", err)
			}
		}
		seeded = true
	}

	testimonials, err := store.Testimonials.List(ctx)
	if err != nil {
		return seeded, err
	}
	if len(testimonials) == 0 {
		for i := range doc.Testimonials {
			if err := store.Testimonials.Create(ctx, doc.Testimonials[i].ToTestimonial()); err != nil {
				return seeded, fmt.Errorf("failed to seed testimonials: %w", err)
			}
		}
		seeded = true
	}

	return seeded, nil
}
