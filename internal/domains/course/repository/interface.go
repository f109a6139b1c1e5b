package repository

import (
	"context"

	"academy-backend/internal/domains/course/model"
)

// RepositoryInterface is the course entity store
type RepositoryInterface interface {
	// List returns one page of courses matching filter, newest first, and the total match count
	List(ctx context.Context, filter model.ListFilter) ([]model.Course, int64, error)
	// ListAll returns every course, newest first (exports)
	ListAll(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	// Create inserts course and fills in ID and timestamps
	Create(ctx context.Context, course *model.Course) error
	// Update overwrites the course row and returns the photo key it replaced
	Update(ctx context.Context, course *model.Course) (previousPhoto *string, err error)
	// Delete removes the course and returns the deleted row
	Delete(ctx context.Context, id int64) (*model.Course, error)
	Count(ctx context.Context) (int64, error)
}
