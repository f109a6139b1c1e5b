package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"academy-backend/internal/domains/category"
	"academy-backend/internal/shared/response"
	"academy-backend/pkg/logger"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

// ========== LIST: GET /categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("List categories failed", err)
		response.Error(c, category.GetHTTPStatusCode(err), "Internal Server Error", "Failed to load categories")
		return
	}

	response.Success(c, http.StatusOK, "Get categories successfully", resp)
}
