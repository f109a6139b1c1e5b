package category

import "context"

// CategoryRepository is the category entity store
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)

	GetByID(ctx context.Context, id int64) (*Category, error)

	// List returns every category ordered by name
	List(ctx context.Context) ([]Category, error)

	Exists(ctx context.Context, id int64) (bool, error)
}
