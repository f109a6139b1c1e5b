package repository

import (
	"context"
	"sync"

	"academy-backend/internal/domains/cart/model"
)

type memoryCart struct {
	order []int64
	items map[int64]model.CartEntry
}

// MemoryStore is the in-process cart store. It does not expire sessions.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*memoryCart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*memoryCart)}
}

func (s *MemoryStore) Add(ctx context.Context, sessionID string, entry model.CartEntry) (model.CartEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &memoryCart{items: make(map[int64]model.CartEntry)}
		s.carts[sessionID] = cart
	}

	if existing, exists := cart.items[entry.CourseID]; exists {
		return existing, false, nil
	}
	cart.items[entry.CourseID] = entry
	cart.order = append(cart.order, entry.CourseID)
	return entry, true, nil
}

func (s *MemoryStore) Remove(ctx context.Context, sessionID string, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil
	}
	if _, exists := cart.items[courseID]; !exists {
		return nil
	}

	delete(cart.items, courseID)
	for i, id := range cart.order {
		if id == courseID {
			cart.order = append(cart.order[:i], cart.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]model.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return []model.CartEntry{}, nil
	}

	out := make([]model.CartEntry, 0, len(cart.order))
	for _, id := range cart.order {
		out = append(out, cart.items[id])
	}
	return out, nil
}
