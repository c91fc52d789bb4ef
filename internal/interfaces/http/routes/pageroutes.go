package routes

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/handlers"
	"shelfwatch/internal/shared/constants"
)

// PageRouteConfig holds dependencies for gateway-guarded page shells.
type PageRouteConfig struct {
	PageHandler *handlers.PageHandler
}

// SetupPageRoutes registers the page shells. Access rules are applied by
// the gateway middleware before any of these run.
func SetupPageRoutes(engine *gin.Engine, cfg *PageRouteConfig) {
	h := cfg.PageHandler

	engine.GET(constants.PathLogin, h.Render("login"))
	engine.GET(constants.PathSignup, h.Render("signup"))
	engine.GET(constants.PathDashboard, h.Render("dashboard"))
	engine.GET(constants.PathSettings, h.Render("settings"))
	engine.GET(constants.PathSettings+"/*section", h.Render("settings"))
	engine.GET(constants.PathProducts, h.Render("products"))
	engine.GET(constants.PathProducts+"/*product", h.Render("product"))
	engine.GET(constants.PathAdmin, h.Render("admin"))
	engine.GET(constants.PathAdmin+"/*section", h.Render("admin"))
}
