package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and form format of start_date / end_date
const DateLayout = "2006-01-02"

// Course is a published course. ID is assigned by the store.
type Course struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Capacity     int             `json:"capacity"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Photo        *string         `json:"photo,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CoursePage is one page of a filtered listing. It is the value stored in the list cache.
type CoursePage struct {
	Items      []Course `json:"items"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	Total      int64    `json:"total"`
	TotalPages int      `json:"total_pages"`
}

// NewCoursePage computes page metadata for a result slice
func NewCoursePage(items []Course, page int, total int64) *CoursePage {
	if items == nil {
		items = []Course{}
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	return &CoursePage{
		Items:      items,
		Page:       page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// DescriptionOrPlaceholder is used by the exports
func (c Course) DescriptionOrPlaceholder() string {
	if c.Description == nil || *c.Description == "" {
		return "No description"
	}
	return *c.Description
}
