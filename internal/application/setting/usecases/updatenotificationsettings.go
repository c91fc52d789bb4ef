package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/application/setting/dto"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// UpdateNotificationSettingsUseCase upserts the caller's preference.
type UpdateNotificationSettingsUseCase struct {
	prefRepo inventory.PreferenceRepository
	logger   logger.Interface
}

func NewUpdateNotificationSettingsUseCase(prefRepo inventory.PreferenceRepository, logger logger.Interface) *UpdateNotificationSettingsUseCase {
	return &UpdateNotificationSettingsUseCase{prefRepo: prefRepo, logger: logger}
}

func (uc *UpdateNotificationSettingsUseCase) Execute(
	ctx context.Context,
	tenantID string,
	request dto.UpdateNotificationSettingsRequest,
) (*dto.NotificationSettingsResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	pref := inventory.NotificationPreference{
		TenantID:            tenantID,
		DailyAlertsEnabled:  *request.DailyAlertsEnabled,
		AlertThresholdDays:  *request.AlertThresholdDays,
		WeeklyReportEnabled: *request.WeeklyReportEnabled,
	}
	if err := pref.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid notification settings", err.Error())
	}

	if err := uc.prefRepo.Save(ctx, &pref); err != nil {
		uc.logger.Errorw("failed to save notification preference", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to save notification settings: %w", err)
	}

	uc.logger.Infow("notification settings updated",
		"tenant_id", tenantID,
		"daily", pref.DailyAlertsEnabled,
		"threshold_days", pref.AlertThresholdDays,
		"weekly", pref.WeeklyReportEnabled,
	)
	return dto.ToNotificationSettingsResponse(pref, false), nil
}
