package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"versora/internal/domain"
	"versora/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Send(t *testing.T) {
	svc := NewNotificationService()

	response, err := svc.Send(context.Background(), &dto.SendNotificationRequest{
		To:      "user1",
		Subject: "Great Quiz Performance!",
		Message: "You scored 5/5.",
		Type:    "achievement",
	})

	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.True(t, strings.HasPrefix(response.NotificationID, "notif_"))
}

func TestNotificationService_Send_RequiresRecipientAndSubject(t *testing.T) {
	svc := NewNotificationService()

	_, err := svc.Send(context.Background(), &dto.SendNotificationRequest{Message: "hello"})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestNotificationService_GetPreferences_Defaults(t *testing.T) {
	svc := NewNotificationService()

	response, err := svc.GetPreferences(context.Background(), "user1")

	require.NoError(t, err)
	assert.True(t, response.Preferences.EmailNotifications)
	assert.True(t, response.Preferences.CourseReminders)
	assert.True(t, response.Preferences.AchievementAlerts)
	assert.True(t, response.Preferences.WeeklyProgress)
}
