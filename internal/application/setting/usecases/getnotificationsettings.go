package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/application/setting/dto"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/shared/logger"
)

// GetNotificationSettingsUseCase returns the stored preference or the defaults.
type GetNotificationSettingsUseCase struct {
	prefRepo inventory.PreferenceRepository
	logger   logger.Interface
}

func NewGetNotificationSettingsUseCase(prefRepo inventory.PreferenceRepository, logger logger.Interface) *GetNotificationSettingsUseCase {
	return &GetNotificationSettingsUseCase{prefRepo: prefRepo, logger: logger}
}

func (uc *GetNotificationSettingsUseCase) Execute(ctx context.Context, tenantID string) (*dto.NotificationSettingsResponse, error) {
	pref, err := uc.prefRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to load notification preference", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	if pref == nil {
		return dto.ToNotificationSettingsResponse(inventory.DefaultPreference(tenantID), true), nil
	}
	return dto.ToNotificationSettingsResponse(*pref, false), nil
}
