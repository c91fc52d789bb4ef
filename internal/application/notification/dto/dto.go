// Package dto holds the notification payloads handed to the dispatch
// collaborator; they are its whole contract.
package dto

import (
	"time"

	"shelfwatch/internal/domain/expiry"
)

// BatchAlert is one batch with its product context.
type BatchAlert struct {
	ItemID      string        `json:"item_id"`
	ItemName    string        `json:"item_name"`
	Category    string        `json:"category"`
	BatchID     string        `json:"batch_id"`
	BatchNumber string        `json:"batch_number,omitempty"`
	Quantity    int           `json:"quantity"`
	ExpiryDate  time.Time     `json:"expiry_date"`
	DaysUntil   int           `json:"days_until"`
	Status      expiry.Status `json:"status"`
}

// Recipient identifies the tenant a notification is for.
type Recipient struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// DailyAlert lists every batch within the tenant's threshold, most urgent first.
type DailyAlert struct {
	Recipient     Recipient    `json:"recipient"`
	Date          time.Time    `json:"date"`
	ThresholdDays int          `json:"threshold_days"`
	Alerts        []BatchAlert `json:"alerts"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// WeeklyStats counts batches, except TotalProducts which counts items.
type WeeklyStats struct {
	TotalProducts     int             `json:"total_products"`
	ExpiredCount      int             `json:"expired_count"`
	ExpiringSoonCount int             `json:"expiring_soon_count"`
	Categories        []CategoryCount `json:"categories"`
}

// WeeklyReport carries capped display lists and uncapped statistics.
type WeeklyReport struct {
	Recipient       Recipient    `json:"recipient"`
	Date            time.Time    `json:"date"`
	RecentlyExpired []BatchAlert `json:"recently_expired"`
	ExpiringSoon    []BatchAlert `json:"expiring_soon"`
	Stats           WeeklyStats  `json:"stats"`
}
