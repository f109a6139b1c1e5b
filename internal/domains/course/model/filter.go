package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// PageSize is the fixed number of courses per listing page
	PageSize = 10

	// LowCapacityThreshold is the exclusive upper bound of the stock_bajo filter
	LowCapacityThreshold = 10

	// ListCachePrefix namespaces every cached listing page
	ListCachePrefix = "courses:list:"

	// MaxPage keeps Offset() and Offset()+PageSize inside int.
	// Larger pages are past any real catalog and read as an empty page.
	MaxPage = math.MaxInt / PageSize
)

// ListFilter is the normalized GET /courses query
type ListFilter struct {
	Search      string `json:"busqueda,omitempty"`
	CategoryID  *int64 `json:"categoria_id,omitempty"`
	LowCapacity bool   `json:"stock_bajo"`
	Page        int    `json:"page"`
}

// ParseListFilter builds a filter from raw query values.
// Unparsable values fall back to "no filter" (page 1 for page).
func ParseListFilter(page, search, categoryID, lowCapacity string) ListFilter {
	f := ListFilter{
		Search:      search,
		LowCapacity: isTruthy(lowCapacity),
	}

	p, err := strconv.Atoi(strings.TrimSpace(page))
	var numErr *strconv.NumError
	switch {
	case err == nil:
		f.Page = p
	case errors.As(err, &numErr) && numErr.Err == strconv.ErrRange && !strings.HasPrefix(strings.TrimSpace(page), "-"):
		// too large for int: still a valid, empty page
		f.Page = MaxPage
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(categoryID), 10, 64); err == nil && id > 0 {
		f.CategoryID = &id
	}

	return f.Normalize()
}

// Normalize trims the search text and clamps the page
func (f ListFilter) Normalize() ListFilter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	return f
}

// CacheKey is a pure function of the normalized filter.
// Search is lowercased because matching is case-insensitive.
func (f ListFilter) CacheKey() string {
	f = f.Normalize()

	cat := "*"
	if f.CategoryID != nil {
		cat = strconv.FormatInt(*f.CategoryID, 10)
	}
	low := "0"
	if f.LowCapacity {
		low = "1"
	}

	return fmt.Sprintf("%spage=%d:q=%s:cat=%s:low=%s",
		ListCachePrefix, f.Page, strings.ToLower(f.Search), cat, low)
}

// Offset is the row offset of the page, never negative
func (f ListFilter) Offset() int {
	return (f.Normalize().Page - 1) * PageSize
}

// Matches applies the filter predicate in process
func (f ListFilter) Matches(c Course) bool {
	f = f.Normalize()

	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *f.CategoryID) {
		return false
	}
	if f.LowCapacity && c.Capacity >= LowCapacityThreshold {
		return false
	}
	return true
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
