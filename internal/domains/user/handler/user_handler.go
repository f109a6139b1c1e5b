package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"academy-backend/internal/domains/user"
	"academy-backend/internal/shared/middleware"
	"academy-backend/internal/shared/response"
	"academy-backend/pkg/logger"
)

// UserHandler serves the /auth routes
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: CREATE ACCOUNT (validation happens in the service)
	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		req.Password = ""
		h.handleError(c, err, req)
		return
	}

	// STEP 3: SUCCESS
	response.Success(c, http.StatusCreated, "Registration successful", created)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	// STEP 1: PARSE REQUEST
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: AUTHENTICATE
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		req.Password = ""
		h.handleError(c, err, req)
		return
	}

	// STEP 3: SUCCESS
	response.Success(c, http.StatusOK, "Login successful", res)
}

// Me handles GET /auth/me
func (h *UserHandler) Me(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.IsAuthenticated() {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(actor.UserID)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *UserHandler) handleError(c *gin.Context, err error, input interface{}) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for k, v := range fieldErrs {
			fields[k] = v.Error()
		}
		response.ValidationError(c, fields, input)
		return
	}

	status := user.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("Auth request failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.Error(c, status, http.StatusText(status), err.Error())
}
