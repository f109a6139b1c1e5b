package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"academy-backend/internal/domains/cart/model"
	"academy-backend/internal/domains/cart/repository"
	courseModel "academy-backend/internal/domains/course/model"
)

// ServiceInterface is the session cart. Every call names its session explicitly.
type ServiceInterface interface {
	Add(ctx context.Context, sessionID string, courseID int64) (*model.AddResult, error)
	Remove(ctx context.Context, sessionID string, courseID int64) error
	Clear(ctx context.Context, sessionID string) error
	List(ctx context.Context, sessionID string) (*model.Cart, error)
}

// CourseReader loads the course being added
type CourseReader interface {
	Get(ctx context.Context, id int64) (*courseModel.Course, error)
}

type CartService struct {
	store   repository.Store
	courses CourseReader
	now     func() time.Time
}

func NewCartService(store repository.Store, courses CourseReader) *CartService {
	return &CartService{
		store:   store,
		courses: courses,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ ServiceInterface = (*CartService)(nil)

func (s *CartService) Add(ctx context.Context, sessionID string, courseID int64) (*model.AddResult, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	// 1. The course must exist (courseModel.ErrCourseNotFound otherwise)
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// 2. Snapshot
	entry := model.CartEntry{
		CourseID: course.ID,
		Name:     course.Name,
		Price:    course.Price,
		Photo:    course.Photo,
		AddedAt:  s.now(),
	}

	// 3. A duplicate add reports the snapshot taken the first time
	stored, added, err := s.store.Add(ctx, sessionID, entry)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	return &model.AddResult{Entry: stored, AlreadyInCart: !added}, nil
}

func (s *CartService) Remove(ctx context.Context, sessionID string, courseID int64) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, sessionID, courseID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *CartService) List(ctx context.Context, sessionID string) (*model.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	entries, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return model.NewCart(entries), nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return model.ErrEmptySession
	}
	return nil
}
