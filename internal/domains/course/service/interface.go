package service

import (
	"context"

	"academy-backend/internal/domains/category"
	"academy-backend/internal/domains/course/model"
	notification "academy-backend/internal/domains/notification/model"
	"academy-backend/internal/shared/authz"
)

// ServiceInterface is the course business logic behind the /courses routes
type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) (*model.CoursePage, error)
	Get(ctx context.Context, id int64) (*model.Course, error)

	// CreateForm and EditForm back the admin form pages
	CreateForm(ctx context.Context, actor *authz.Actor) ([]category.Category, error)
	EditForm(ctx context.Context, actor *authz.Actor, id int64) (*model.Course, []category.Category, error)

	Create(ctx context.Context, actor *authz.Actor, form model.CourseForm, photo *model.PhotoUpload) (*model.Course, error)
	Update(ctx context.Context, actor *authz.Actor, id int64, form model.CourseForm, photo *model.PhotoUpload) (*model.Course, error)
	Delete(ctx context.Context, actor *authz.Actor, id int64) (*model.Course, error)

	ExportExcel(ctx context.Context, actor *authz.Actor) (*ExportFile, error)
	ExportPDF(ctx context.Context, actor *authz.Actor) (*ExportFile, error)

	PhotoURL(key string) string
}

// CategoryLookup is what the course service needs from the category domain
type CategoryLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) (*category.CategoryListResp, error)
}

// EventPublisher receives CourseCreated after a successful create.
// Dispatch must not block on the subscribers.
type EventPublisher interface {
	Dispatch(ctx context.Context, event notification.CourseCreated)
}

// ExportFile is a rendered download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
