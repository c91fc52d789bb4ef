package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/application/notification"
	notificationdto "shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/logger"
)

// GetDashboardUseCase shows the tenant the same figures the weekly report
// would carry right now.
type GetDashboardUseCase struct {
	itemRepo inventory.Repository
	selector *notification.Selector
	logger   logger.Interface
}

func NewGetDashboardUseCase(itemRepo inventory.Repository, selector *notification.Selector, logger logger.Interface) *GetDashboardUseCase {
	return &GetDashboardUseCase{itemRepo: itemRepo, selector: selector, logger: logger}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, tenant *subject.Subject) (*notificationdto.WeeklyReport, error) {
	items, err := uc.itemRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard inventory", "tenant_id", tenant.ID, "error", err)
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return uc.selector.BuildWeeklyReport(tenant, items, uc.selector.Today()), nil
}
