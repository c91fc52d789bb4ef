package models

import (
	"time"

	"shelfwatch/internal/shared/constants"
)

// NotificationPreferenceModel has no column defaults: GORM would skip
// false and zero on insert and let the default win.
type NotificationPreferenceModel struct {
	TenantID            string `gorm:"primarykey;size:64"`
	DailyAlertsEnabled  bool   `gorm:"not null"`
	AlertThresholdDays  int    `gorm:"not null"`
	WeeklyReportEnabled bool   `gorm:"not null"`
	UpdatedAt           time.Time
}

func (NotificationPreferenceModel) TableName() string {
	return constants.TableNotificationPreferences
}
