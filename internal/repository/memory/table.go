package memory

import (
	"sort"
	"sync"

	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

// table is a mutex-guarded id -> row map. Rows are copied on the way in and out
// so callers never share memory with the store.
type table[T any] struct {
	mu       sync.RWMutex
	resource string
	nextID   int64
	rows     map[int64]*T
	idOf     func(*T) *int64
	clone    func(*T) *T
}

func newTable[T any](resource string, idOf func(*T) *int64, clone func(*T) *T) *table[T] {
	return &table[T]{
		resource: resource,
		nextID:   1,
		rows:     make(map[int64]*T),
		idOf:     idOf,
		clone:    clone,
	}
}

func (t *table[T]) list() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, apperrors.NewNotFound(t.resource, nil)
	}
	return t.clone(row), nil
}

func (t *table[T]) create(v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	*t.idOf(v) = t.nextID
	t.nextID++
	t.rows[*t.idOf(v)] = t.clone(v)
}

func (t *table[T]) update(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := *t.idOf(v)
	if _, ok := t.rows[id]; !ok {
		return apperrors.NewNotFound(t.resource, nil)
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return apperrors.NewNotFound(t.resource, nil)
	}
	delete(t.rows, id)
	return nil
}
