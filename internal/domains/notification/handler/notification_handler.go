package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"academy-backend/internal/domains/notification/model"
	"academy-backend/internal/domains/notification/service"
	"academy-backend/internal/shared/middleware"
	"academy-backend/internal/shared/response"
	"academy-backend/pkg/logger"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := h.service.Inbox(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Load inbox failed", err)
		response.InternalServerError(c, "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, "Get notifications successfully", page)
}

// MarkRead handles PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, model.ErrInvalidNotification.Error())
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Mark notification read failed", err)
		response.InternalServerError(c, "Failed to update notification")
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", n)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	actor := middleware.ActorFrom(c)
	if !actor.IsAuthenticated() {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(actor.UserID)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}
