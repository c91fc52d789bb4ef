package http

import (
	"context"

	"shelfwatch/internal/interfaces/http/handlers"
	adminHandlers "shelfwatch/internal/interfaces/http/handlers/admin"
)

// allHandlers holds every HTTP handler instance.
type allHandlers struct {
	productHandler   *handlers.ProductHandler
	dashboardHandler *handlers.DashboardHandler
	settingHandler   *handlers.SettingHandler
	authHandler      *handlers.AuthHandler
	pageHandler      *handlers.PageHandler
	healthHandler    *handlers.HealthHandler
	roleHandler      *adminHandlers.RoleHandler
}

func (c *Container) initHandlers() {
	checks := map[string]handlers.Pinger{
		"database": handlers.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}

	c.hdlrs = &allHandlers{
		productHandler:   handlers.NewProductHandler(c.ucs.listProducts, c.ucs.createProduct, c.ucs.deleteProduct, c.log),
		dashboardHandler: handlers.NewDashboardHandler(c.ucs.getDashboard, c.log),
		settingHandler:   handlers.NewSettingHandler(c.ucs.getNotificationSettings, c.ucs.updateNotificationSettings, c.log),
		authHandler:      handlers.NewAuthHandler(c.svcs.sessionStore, c.log),
		pageHandler:      handlers.NewPageHandler(c.svcs.roleResolver),
		healthHandler:    handlers.NewHealthHandler(checks, c.log),
		roleHandler:      adminHandlers.NewRoleHandler(c.ucs.grantRole, c.ucs.revokeRole, c.ucs.listRoles, c.log),
	}
}
