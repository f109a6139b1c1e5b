package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SessionTTL matches the session cookie lifetime
const SessionTTL = 30 * 24 * time.Hour

const AlreadyInCartMessage = "This course is already in your cart."

var (
	ErrEmptySession  = errors.New("session id is required")
	ErrInvalidCourse = errors.New("invalid course id")
)

// CartEntry is the snapshot of a course taken when it was added.
// Later edits to the course do not change it.
type CartEntry struct {
	CourseID int64           `json:"course_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Photo    *string         `json:"photo,omitempty"`
	AddedAt  time.Time       `json:"added_at"`
}

// Cart is the body of GET /cart
type Cart struct {
	Items []CartEntry     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// NewCart sums the snapshot prices of entries
func NewCart(entries []CartEntry) *Cart {
	if entries == nil {
		entries = []CartEntry{}
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	return &Cart{
		Items: entries,
		Total: total,
		Count: len(entries),
	}
}

// AddResult reports the outcome of an add. A duplicate is informational, not an error.
type AddResult struct {
	Entry         CartEntry `json:"entry"`
	AlreadyInCart bool      `json:"already_in_cart"`
}
