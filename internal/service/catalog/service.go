package catalog

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AndyMuloki/zen-spa/internal/repository"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
)

const (
	servicesKey     = "services"
	packagesKey     = "packages"
	therapistsKey   = "therapists"
	testimonialsKey = "testimonials"
)

// Service reads and writes the reference catalog. Lists are cached until the
// next write to the same entity type.
type Service struct {
	services     repository.ServiceRepository
	packages     repository.PackageRepository
	therapists   repository.TherapistRepository
	testimonials repository.TestimonialRepository
	validate     *validator.Validator
	cache        *cache.Cache
	logger       *logger.Logger

	// versions counts writes per cache key; guarded by mu together with cache fills.
	mu       sync.Mutex
	versions map[string]uint64
}

type Config struct {
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

func NewService(store *repository.Store, validate *validator.Validator, cfg Config, logger *logger.Logger) *Service {
	return &Service{
		services:     store.Services,
		packages:     store.Packages,
		therapists:   store.Therapists,
		testimonials: store.Testimonials,
		validate:     validate,
		cache:        cache.New(cfg.CacheTTL, cfg.CleanupInterval),
		logger:       logger,
		versions:     make(map[string]uint64),
	}
}

// cachedList serves key from the cache or loads it. A load that overlapped a
// write to the same key is returned but not cached, since it may predate the write.
func cachedList[T any](s *Service, key string, load func() ([]*T, error)) ([]*T, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]*T), nil
	}

	s.mu.Lock()
	version := s.versions[key]
	s.mu.Unlock()

	items, err := load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.versions[key] == version {
		s.cache.SetDefault(key, items)
	}
	s.mu.Unlock()
	return items, nil
}

func (s *Service) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[key]++
	s.cache.Delete(key)
}
