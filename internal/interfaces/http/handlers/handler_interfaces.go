package handlers

import (
	"context"

	"shelfwatch/internal/application/access"
	inventorydto "shelfwatch/internal/application/inventory/dto"
	notificationdto "shelfwatch/internal/application/notification/dto"
	settingdto "shelfwatch/internal/application/setting/dto"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/authorization"
)

// Use case interfaces for handlers - enables unit testing with mocks.

type listProductsUseCase interface {
	Execute(ctx context.Context, tenantID string) ([]*inventorydto.ProductResponse, error)
}

type createProductUseCase interface {
	Execute(ctx context.Context, tenantID string, request inventorydto.CreateProductRequest) (*inventorydto.ProductResponse, error)
}

type deleteProductUseCase interface {
	Execute(ctx context.Context, tenantID, productID string) error
}

type getDashboardUseCase interface {
	Execute(ctx context.Context, tenant *subject.Subject) (*notificationdto.WeeklyReport, error)
}

type getNotificationSettingsUseCase interface {
	Execute(ctx context.Context, tenantID string) (*settingdto.NotificationSettingsResponse, error)
}

type updateNotificationSettingsUseCase interface {
	Execute(ctx context.Context, tenantID string, request settingdto.UpdateNotificationSettingsRequest) (*settingdto.NotificationSettingsResponse, error)
}

// sessionTerminator is the subset of auth.CookieSessionStore used by AuthHandler.
type sessionTerminator interface {
	SignOut(jar access.CookieJar, subjectID string)
}

// roleReader is the subset of access.RoleResolver used by PageHandler.
type roleReader interface {
	RoleOf(ctx context.Context, subjectID string) authorization.UserRole
}
