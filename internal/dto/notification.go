package dto

// SendNotificationRequest queues a notification for a user.
type SendNotificationRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SendNotificationResponse acknowledges a queued notification.
type SendNotificationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
}

// NotificationPreferencesResponse wraps the settings toggles.
type NotificationPreferencesResponse struct {
	Preferences NotificationPreferences `json:"preferences"`
}

// NotificationPreferences mirrors the settings page toggles.
type NotificationPreferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	CourseReminders    bool `json:"courseReminders"`
	AchievementAlerts  bool `json:"achievementAlerts"`
	WeeklyProgress     bool `json:"weeklyProgress"`
}
