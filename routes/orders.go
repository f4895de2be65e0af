package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderControllers "github.com/ResonanceSE/Resonance/controllers/order"
	"github.com/ResonanceSE/Resonance/middleware"
)

// SetupOrderRoutes registers the "/api/orders/*" endpoints. All require auth.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, logger *zap.Logger) {
	orders := api.Group("/orders")
	orders.Use(middleware.RequireAuth(db))
	{
		orders.POST("/create", orderControllers.CreateOrder(db, logger))
		orders.GET("", orderControllers.GetUserOrders(db))
		orders.GET("/:order_id", orderControllers.GetOrderDetails(db))
		orders.POST("/:order_id/payment", orderControllers.ProcessPayment(db))
	}
}
