package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/ResonanceSE/Resonance/controllers/product"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/filters", productControllers.GetFilters(db))
		products.GET("/recommendations", productControllers.GetRecommended(db))
		products.GET("/check-stock/:id", productControllers.CheckStock(db))

		// A numeric :param is a product id, anything else a category slug.
		products.GET("/:param", productControllers.GetProductOrCategory(db))
		products.GET("/:param/:id", productControllers.GetProductDetail(db))
	}

	api.GET("/categories", productControllers.GetCategories(db))
}
