package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryItem struct {
	data      []byte
	expiresAt time.Time // zero = never
}

// MemoryCache is a process-local Cache. Values are stored JSON encoded so
// reads behave exactly like the Redis implementation (decoded copies, no aliasing).
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, fmt.Errorf("decode cached value %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

// DeletePattern removes every key matching a Redis style glob. As with
// Redis SCAN MATCH, '*' also matches ':' and '/'.
func (m *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if globMatch(pattern, k) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Len reports the number of stored (possibly expired) keys.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
