package category

import (
	"errors"
	"net/http"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("category name is required")
)

// GetHTTPStatusCode maps category errors to HTTP status codes
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
