package category

import "context"

type CategoryService interface {
	Create(ctx context.Context, name string, description *string) (*Category, error)

	GetByID(ctx context.Context, id int64) (*Category, error)

	// List is served from the result cache
	List(ctx context.Context) (*CategoryListResp, error)

	Exists(ctx context.Context, id int64) (bool, error)
}
