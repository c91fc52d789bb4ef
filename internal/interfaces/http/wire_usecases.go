package http

import (
	adminUsecases "shelfwatch/internal/application/admin/usecases"
	inventoryUsecases "shelfwatch/internal/application/inventory/usecases"
	settingUsecases "shelfwatch/internal/application/setting/usecases"
)

// allUseCases holds every use case instance, grouped by area.
type allUseCases struct {
	// Inventory
	listProducts  *inventoryUsecases.ListProductsUseCase
	createProduct *inventoryUsecases.CreateProductUseCase
	deleteProduct *inventoryUsecases.DeleteProductUseCase
	getDashboard  *inventoryUsecases.GetDashboardUseCase

	// Settings
	getNotificationSettings    *settingUsecases.GetNotificationSettingsUseCase
	updateNotificationSettings *settingUsecases.UpdateNotificationSettingsUseCase

	// Admin
	grantRole  *adminUsecases.GrantRoleUseCase
	revokeRole *adminUsecases.RevokeRoleUseCase
	listRoles  *adminUsecases.ListRolesUseCase
}

func (c *Container) initUseCases() {
	r, s := c.repos, c.svcs
	c.ucs = &allUseCases{
		listProducts:  inventoryUsecases.NewListProductsUseCase(r.productRepo, s.expiryEngine, c.log),
		createProduct: inventoryUsecases.NewCreateProductUseCase(r.productRepo, s.expiryEngine, c.log),
		deleteProduct: inventoryUsecases.NewDeleteProductUseCase(r.productRepo, c.log),
		getDashboard:  inventoryUsecases.NewGetDashboardUseCase(r.productRepo, s.selector, c.log),

		getNotificationSettings:    settingUsecases.NewGetNotificationSettingsUseCase(r.preferenceRepo, c.log),
		updateNotificationSettings: settingUsecases.NewUpdateNotificationSettingsUseCase(r.preferenceRepo, c.log),

		grantRole:  adminUsecases.NewGrantRoleUseCase(r.roleRepo, r.subjectRepo, c.log),
		revokeRole: adminUsecases.NewRevokeRoleUseCase(r.roleRepo, c.log),
		listRoles:  adminUsecases.NewListRolesUseCase(r.roleRepo, r.subjectRepo, c.log),
	}
}
