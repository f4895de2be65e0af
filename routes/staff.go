package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/ResonanceSE/Resonance/controllers/order"
	staffControllers "github.com/ResonanceSE/Resonance/controllers/staff"
	"github.com/ResonanceSE/Resonance/middleware"
)

// SetupStaffRoutes registers the store-management endpoints. Everything
// here requires an authenticated staff or superuser account.
func SetupStaffRoutes(api *gin.RouterGroup, db *gorm.DB) {
	staff := api.Group("/staff")
	staff.Use(middleware.RequireAuth(db), middleware.RequireStoreManager())
	{
		staff.GET("/stats", staffControllers.GetStats(db))

		products := staff.Group("/products")
		{
			products.GET("", staffControllers.ListProducts(db))
			products.POST("", staffControllers.CreateProduct(db))
			products.GET("/export-excel", staffControllers.ExportProductsToExcel(db))
			products.POST("/import-excel", staffControllers.ImportProductsFromExcel(db))
			products.GET("/:id", staffControllers.GetProduct(db))
			products.PUT("/:id", staffControllers.UpdateProduct(db))
			products.DELETE("/:id", staffControllers.DeleteProduct(db))
		}

		orders := staff.Group("/orders")
		{
			orders.GET("", staffControllers.ListOrders(db))
			orders.GET("/ws", orderControllers.OrderFeedHandler)
			orders.GET("/:order_id", staffControllers.GetOrder(db))
			orders.PUT("/:order_id/status", staffControllers.UpdateOrderStatus(db))
		}

		categories := staff.Group("/categories")
		{
			categories.POST("", staffControllers.CreateCategory(db))
			categories.PUT("/:id", staffControllers.UpdateCategory(db))
			categories.DELETE("/:id", staffControllers.DeleteCategory(db))
		}
	}

	admin := api.Group("/admin/staff")
	admin.Use(middleware.RequireAuth(db), middleware.RequireStoreManager())
	{
		admin.GET("", staffControllers.ListStaff(db))
		admin.POST("", staffControllers.CreateStaff(db))
		admin.PUT("/:staff_id", staffControllers.UpdateStaff(db))
		admin.DELETE("/:staff_id", staffControllers.DeleteStaff(db))
	}
}
