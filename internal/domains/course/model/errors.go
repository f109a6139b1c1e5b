package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/shared/authz"
	"academy-backend/internal/shared/response"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidCourse  = errors.New("invalid course id")
)

// PhotoUploadError means the photo could not be accepted or stored.
// It is reported on the photo field; the rest of the submitted form is echoed back.
type PhotoUploadError struct {
	Reason string
	Err    error
}

func (e *PhotoUploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("photo upload failed: %s: %v", e.Reason, e.Err)
	}
	return "photo upload failed: " + e.Reason
}

func (e *PhotoUploadError) Unwrap() error {
	return e.Err
}

var courseErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrCourseNotFound: {
		Status:  http.StatusNotFound,
		Title:   "NOT_FOUND",
		Message: "The requested course does not exist",
	},
	ErrInvalidCourse: {
		Status:  http.StatusNotFound,
		Title:   "NOT_FOUND",
		Message: "The requested course does not exist",
	},
	authz.ErrForbidden: {
		Status:  http.StatusForbidden,
		Title:   "FORBIDDEN",
		Message: "You are not allowed to perform this action",
	},
}

// HandleCourseError writes the response for err and reports whether it did.
// input is echoed back on 422 responses.
func HandleCourseError(c *gin.Context, err error, input interface{}) bool {
	if err == nil {
		return false
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationError(c, FieldMessages(fieldErrs), input)
		return true
	}

	var photoErr *PhotoUploadError
	if errors.As(err, &photoErr) {
		log.Warn().Err(err).Msg("Course photo rejected")
		response.ValidationError(c, map[string]string{"photo": photoErr.Reason}, input)
		return true
	}

	for sentinel, cfg := range courseErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Title, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[Handler] Course request failed")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	return true
}
