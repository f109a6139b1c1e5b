package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"academy-backend/internal/domains/course/model"
)

// MemoryRepository is an in-process course store. It applies the same
// predicate as the SQL filter through ListFilter.Matches.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	courses    map[int64]model.Course
	categories map[int64]string
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		courses:    make(map[int64]model.Course),
		categories: make(map[int64]string),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetCategoryName registers a category so reads can fill CategoryName
func (r *MemoryRepository) SetCategoryName(id int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[id] = name
}

func (r *MemoryRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Course, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter = filter.Normalize()
	matched := make([]model.Course, 0)
	for _, c := range r.sortedLocked() {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}

	total := int64(len(matched))
	start := filter.Offset()
	if start >= len(matched) {
		return []model.Course{}, total, nil
	}
	end := start + model.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	return r.withCategoryLocked(c), nil
}

func (r *MemoryRepository) Create(ctx context.Context, course *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	course.ID = r.nextID
	course.CreatedAt = now
	course.UpdatedAt = now
	course.CategoryName = r.withCategoryLocked(*course).CategoryName

	r.courses[course.ID] = *course
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, course *model.Course) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.courses[course.ID]
	if !ok {
		return nil, model.ErrCourseNotFound
	}

	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = r.now()
	course.CategoryName = r.withCategoryLocked(*course).CategoryName
	r.courses[course.ID] = *course

	return existing.Photo, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.courses[id]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	delete(r.courses, id)
	return r.withCategoryLocked(existing), nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.courses)), nil
}

func (r *MemoryRepository) sortedLocked() []model.Course {
	out := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *r.withCategoryLocked(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *MemoryRepository) withCategoryLocked(c model.Course) *model.Course {
	c.CategoryName = nil
	if c.CategoryID != nil {
		if name, ok := r.categories[*c.CategoryID]; ok {
			c.CategoryName = &name
		}
	}
	return &c
}
