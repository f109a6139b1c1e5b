package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"academy-backend/internal/domains/notification/model"
)

// MemoryRepository is the in-process inbox used by tests
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.Notification
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[uuid.UUID]model.Notification),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		n.ID = uuid.New()
		n.CreatedAt = r.now()
		r.items[n.ID] = n
	}
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Notification, 0)
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return nil, model.ErrNotificationNotFound
	}
	if n.ReadAt == nil {
		now := r.now()
		n.ReadAt = &now
		r.items[id] = n
	}
	return &n, nil
}

func (r *MemoryRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, n := range r.items {
		if n.ReadAt != nil && n.ReadAt.Before(cutoff) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

// All returns every stored notification
func (r *MemoryRepository) All() []model.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Notification, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n)
	}
	return out
}
