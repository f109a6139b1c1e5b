package category

import "time"

// Category groups courses. One category has many courses.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResp is the body of GET /categories
type CategoryListResp struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

const listCacheKey = "categories:all"

// ListCacheKey is the cache entry holding every category
func ListCacheKey() string {
	return listCacheKey
}
