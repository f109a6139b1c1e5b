package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"academy-backend/internal/domains/category"
)

// MemoryRepository keeps categories in a map. Used by tests and local runs without PostgreSQL.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]category.Category
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]category.Category)}
}

func (r *MemoryRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	created := *entity
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.items[created.ID] = created
	return &created, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}
