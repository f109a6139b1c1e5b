package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"academy-backend/internal/domains/user"
	"academy-backend/internal/shared/authz"
)

// MemoryRepository is the in-process user store used by tests
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.New()
	u.CreatedAt = now.Add(time.Duration(len(r.users)) * time.Microsecond)
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *MemoryRepository) ListByRoles(ctx context.Context, roles ...authz.Role) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0)
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
