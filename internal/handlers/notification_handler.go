package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// NotificationHandler handles notification ledger endpoints
type NotificationHandler struct {
	notificationService services.NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
	})
}

// MarkRead handles POST /api/notifications/:id/read
// Users can only mark their own notifications; anything else is a 404.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || notificationID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid notification ID", err)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID, session.UserID); err != nil {
		respondServiceError(c, err, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
