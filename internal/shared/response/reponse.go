package response

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody is the "error" member of a failed envelope
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	// Input echoes the submitted form back on validation failures
	Input interface{} `json:"input,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Error writes an error envelope. details may be a string, an error or a field map.
func Error(c *gin.Context, statusCode int, code string, details interface{}) {
	if err, ok := details.(error); ok {
		details = err.Error()
	}
	message := code
	if s, ok := details.(string); ok {
		message = s
		details = nil
	}
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ValidationError answers 422 with per-field messages and the submitted input
func ValidationError(c *gin.Context, fields map[string]string, input interface{}) {
	c.JSON(422, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    "VALIDATION_ERROR",
			Message: "The given data was invalid",
			Details: fields,
			Input:   input,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 403, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 404, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 409, "CONFLICT", message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, 503, "SERVICE_UNAVAILABLE", message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, 500, "INTERNAL_SERVER_ERROR", message)
}
