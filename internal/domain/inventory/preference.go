package inventory

import (
	"context"
	"fmt"

	"shelfwatch/internal/shared/constants"
)

// NotificationPreference is mutated only by its tenant.
type NotificationPreference struct {
	TenantID            string
	DailyAlertsEnabled  bool
	AlertThresholdDays  int
	WeeklyReportEnabled bool
}

// DefaultPreference applies to tenants that never saved their settings.
func DefaultPreference(tenantID string) NotificationPreference {
	return NotificationPreference{
		TenantID:            tenantID,
		DailyAlertsEnabled:  true,
		AlertThresholdDays:  constants.DefaultAlertThresholdDays,
		WeeklyReportEnabled: true,
	}
}

func (p NotificationPreference) Validate() error {
	if p.AlertThresholdDays < 0 {
		return fmt.Errorf("%w: alert threshold %d is negative", ErrInvalidPreference, p.AlertThresholdDays)
	}
	return nil
}

type PreferenceRepository interface {
	// GetByTenant returns nil, nil when the tenant has no stored preference.
	GetByTenant(ctx context.Context, tenantID string) (*NotificationPreference, error)
	Save(ctx context.Context, pref *NotificationPreference) error
}
