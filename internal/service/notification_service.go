package service

import (
	"context"

	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/logger"
	"versora/internal/util"

	"go.uber.org/zap"
)

// NotificationService queues user-facing notifications. Delivery is not
// wired to a mail provider: queued notifications are logged and acknowledged
// only, matching the current product behavior.
type NotificationService interface {
	Send(ctx context.Context, req *dto.SendNotificationRequest) (*dto.SendNotificationResponse, error)
	GetPreferences(ctx context.Context, userID string) (*dto.NotificationPreferencesResponse, error)
}

type notificationServiceImpl struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() NotificationService {
	return &notificationServiceImpl{}
}

func (s *notificationServiceImpl) Send(ctx context.Context, req *dto.SendNotificationRequest) (*dto.SendNotificationResponse, error) {
	if req.To == "" || req.Subject == "" {
		return nil, domain.NewInvalidInputError("notification recipient and subject are required")
	}

	notificationID := "notif_" + util.NewULID()
	logger.Get().Info("Notification queued",
		zap.String("notification_id", notificationID),
		zap.String("to", req.To),
		zap.String("subject", req.Subject),
		zap.String("type", req.Type),
	)

	return &dto.SendNotificationResponse{
		Success:        true,
		Message:        "Notification queued successfully",
		NotificationID: notificationID,
	}, nil
}

func (s *notificationServiceImpl) GetPreferences(ctx context.Context, userID string) (*dto.NotificationPreferencesResponse, error) {
	prefs := domain.DefaultNotificationPreferences()
	return &dto.NotificationPreferencesResponse{
		Preferences: dto.NotificationPreferences{
			EmailNotifications: prefs.EmailNotifications,
			CourseReminders:    prefs.CourseReminders,
			AchievementAlerts:  prefs.AchievementAlerts,
			WeeklyProgress:     prefs.WeeklyProgress,
		},
	}, nil
}
