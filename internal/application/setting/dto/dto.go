package dto

import "shelfwatch/internal/domain/inventory"

type NotificationSettingsResponse struct {
	DailyAlertsEnabled  bool `json:"daily_alerts_enabled"`
	AlertThresholdDays  int  `json:"alert_threshold_days"`
	WeeklyReportEnabled bool `json:"weekly_report_enabled"`
	// IsDefault is true until the tenant saves settings for the first time.
	IsDefault bool `json:"is_default"`
}

// UpdateNotificationSettingsRequest replaces the whole preference.
type UpdateNotificationSettingsRequest struct {
	DailyAlertsEnabled  *bool `json:"daily_alerts_enabled" binding:"required"`
	AlertThresholdDays  *int  `json:"alert_threshold_days" binding:"required,gte=0,lte=365"`
	WeeklyReportEnabled *bool `json:"weekly_report_enabled" binding:"required"`
}

func ToNotificationSettingsResponse(pref inventory.NotificationPreference, isDefault bool) *NotificationSettingsResponse {
	return &NotificationSettingsResponse{
		DailyAlertsEnabled:  pref.DailyAlertsEnabled,
		AlertThresholdDays:  pref.AlertThresholdDays,
		WeeklyReportEnabled: pref.WeeklyReportEnabled,
		IsDefault:           isDefault,
	}
}
