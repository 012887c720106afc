package flash

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, cleanupInterval)}
}

func (s *MemoryStore) Put(ctx context.Context, sessionID string, f model.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.SetDefault(sessionID, f)
	return nil
}

func (s *MemoryStore) Pop(ctx context.Context, sessionID string) (*model.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, nil
	}
	s.cache.Delete(sessionID)

	f := v.(model.Flash)
	return &f, nil
}
