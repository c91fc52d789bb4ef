package http

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes. The gateway runs on every
// request, ahead of routing.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.AccessGateway(c.svcs.gateway, c.log))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupPageRoutes(c.engine, &routes.PageRouteConfig{
		PageHandler: c.hdlrs.pageHandler,
	})

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler: c.hdlrs.authHandler,
	})

	api := c.engine.Group("/api")
	api.Use(c.rateLimiter.Limit(), c.authMiddleware.RequireSubject())

	routes.SetupInventoryRoutes(api, &routes.InventoryRouteConfig{
		ProductHandler:   c.hdlrs.productHandler,
		DashboardHandler: c.hdlrs.dashboardHandler,
	})

	routes.SetupSettingRoutes(api, &routes.SettingRouteConfig{
		Handler: c.hdlrs.settingHandler,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		RoleHandler:    c.hdlrs.roleHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

// GetEngine returns the configured gin engine.
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Shutdown releases container-owned resources. The database and Redis
// clients belong to the caller.
func (c *Container) Shutdown() {
	if c.unsubscribeSessionLog != nil {
		c.unsubscribeSessionLog()
	}
	c.svcs.tracker.Dispose()
	c.log.Infow("http container shut down")
}
