package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "shelfwatch/internal/interfaces/http/handlers/admin"
	"shelfwatch/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin-only API routes.
type AdminRouteConfig struct {
	RoleHandler    *adminHandlers.RoleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdminRoutes configures role management under api. The /api tree is
// not classified by the gateway, so admin is enforced here.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	roles := api.Group("/admin/roles")
	roles.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		roles.POST("", cfg.RoleHandler.GrantRole)
		roles.GET("/:subjectId", cfg.RoleHandler.ListRoles)
		roles.DELETE("/:subjectId", cfg.RoleHandler.RevokeRole)
	}
}
