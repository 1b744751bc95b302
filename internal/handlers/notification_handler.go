package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/notifications", h.MarkNotificationsRead, auth)
}

// MarkNotificationsRead marks the posted list of notification ids as read in
// one batch
func (h *NotificationHandler) MarkNotificationsRead(c echo.Context) error {
	var ids []string
	if err := c.Bind(&ids); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Invalid request payload"})
	}

	if err := h.notificationRepository.MarkNotificationsRead(c.Request().Context(), ids); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked read!"})
}
