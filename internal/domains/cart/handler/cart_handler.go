package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academy-backend/internal/domains/cart/model"
	"academy-backend/internal/domains/cart/service"
	courseModel "academy-backend/internal/domains/course/model"
	"academy-backend/internal/shared/middleware"
	"academy-backend/internal/shared/response"
	"academy-backend/pkg/logger"
)

// Handler handles HTTP requests for the session cart
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// ===================================
// POST /cart/add/:courseId
// ===================================
func (h *Handler) Add(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}

	result, err := h.service.Add(c.Request.Context(), middleware.GetSessionID(c), courseID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.AlreadyInCart {
		response.Success(c, http.StatusOK, model.AlreadyInCartMessage, result)
		return
	}
	response.Success(c, http.StatusOK, "Course added to cart: "+result.Entry.Name, result)
}

// ===================================
// GET /cart
// ===================================
func (h *Handler) View(c *gin.Context) {
	cart, err := h.service.List(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cart retrieved successfully", cart)
}

// ===================================
// DELETE /cart/remove/:id
// ===================================
func (h *Handler) Remove(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.GetSessionID(c), courseID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Course removed from cart", nil)
}

// ===================================
// POST /cart/clear
// ===================================
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cart cleared", nil)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, courseModel.ErrCourseNotFound):
		response.NotFound(c, "The requested course does not exist")
	case errors.Is(err, model.ErrEmptySession):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Cart request failed", err)
		response.InternalServerError(c, "Failed to update cart")
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, model.ErrInvalidCourse.Error())
		return 0, false
	}
	return id, true
}
