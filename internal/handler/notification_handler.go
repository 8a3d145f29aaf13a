package handler

import (
	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/middleware"
	"versora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification queueing and preferences.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler instance.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// SendNotification godoc
// @Summary Queue a notification
// @Description Queues a notification; delivery is acknowledged but not dispatched
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.SendNotificationRequest true "Notification"
// @Success 200 {object} dto.SendNotificationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /notifications [post]
func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	response, err := h.notifications.Send(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetPreferences godoc
// @Summary Get my notification preferences
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.NotificationPreferencesResponse
// @Security ApiKeyAuth
// @Router /notifications/preferences [get]
func (h *NotificationHandler) GetPreferences(c *fiber.Ctx) error {
	response, err := h.notifications.GetPreferences(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
