package routes

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/handlers"
)

// InventoryRouteConfig holds dependencies for the tenant inventory API.
type InventoryRouteConfig struct {
	ProductHandler   *handlers.ProductHandler
	DashboardHandler *handlers.DashboardHandler
}

// SetupInventoryRoutes configures products and the dashboard summary.
func SetupInventoryRoutes(api *gin.RouterGroup, cfg *InventoryRouteConfig) {
	products := api.Group("/products")
	{
		products.GET("", cfg.ProductHandler.ListProducts)
		products.POST("", cfg.ProductHandler.CreateProduct)
		products.DELETE("/:id", cfg.ProductHandler.DeleteProduct)
	}

	api.GET("/dashboard/summary", cfg.DashboardHandler.GetSummary)
}
