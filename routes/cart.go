package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/ResonanceSE/Resonance/controllers/cart"
	"github.com/ResonanceSE/Resonance/middleware"
)

// SetupCartRoutes registers the "/api/cart/*" endpoints. All require auth.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.RequireAuth(db))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PUT("/update/:item_id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/remove/:item_id", cartControllers.RemoveFromCart(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
		cart.POST("/sync", cartControllers.SyncCart(db))
	}
}
