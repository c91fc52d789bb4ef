package routes

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/handlers"
)

// AuthRouteConfig holds dependencies for session routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
}

// SetupAuthRoutes configures session routes. Sign-in happens at the
// identity provider; only sign-out is served here.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/logout", cfg.AuthHandler.Logout)
	}
}
