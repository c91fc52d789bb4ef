package routes

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/handlers"
)

// SettingRouteConfig holds the configuration for setting routes
type SettingRouteConfig struct {
	Handler *handlers.SettingHandler
}

// SetupSettingRoutes configures the tenant's notification preferences.
func SetupSettingRoutes(api *gin.RouterGroup, config *SettingRouteConfig) {
	settings := api.Group("/settings")
	{
		settings.GET("/notifications", config.Handler.GetNotificationSettings)
		settings.PUT("/notifications", config.Handler.UpdateNotificationSettings)
	}
}
