package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

// GetProducts lists active products with optional catalog filters.
// Query params: search, brand, category_id, min_price, max_price, sort_by, order.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		brand := c.Query("brand")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "price", "name":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{}).Preload("Category").Where("is_active = ?", true)

		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern)
		}
		if brand != "" {
			query = query.Where("brand = ?", brand)
		}
		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.Where("category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid category_id"})
				return
			}
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid max_price"})
				return
			}
		}

		var products []models.Product
		if err := query.Order(sortBy + " " + sortOrder).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": products})
	}
}

// GetProductOrCategory serves /api/products/:param. A numeric param is a
// product id; anything else is treated as a category slug and lists that
// category's active products.
func GetProductOrCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := c.Param("param")

		if id, err := strconv.Atoi(param); err == nil {
			respondProductByID(c, db, id)
			return
		}

		var category models.Category
		if err := db.Where("slug = ?", param).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch category"})
			}
			return
		}

		var products []models.Product
		if err := db.Preload("Category").
			Where("category_id = ? AND is_active = ?", category.ID, true).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": products})
	}
}

// GetProductDetail serves /api/products/:param/:id. The category segment is
// only cosmetic; lookup goes by id, as the original routes did.
func GetProductDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
			return
		}
		respondProductByID(c, db, id)
	}
}

func respondProductByID(c *gin.Context, db *gorm.DB, id int) {
	var product models.Product
	if err := db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": product})
}

// CheckStock reports live availability for one product.
func CheckStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"product_id": product.ID,
				"stock":      product.Stock,
				"in_stock":   product.Stock > 0,
			},
		})
	}
}

// GetRecommended returns featured and new arrivals for the storefront.
func GetRecommended(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		err := db.Preload("Category").
			Where("is_active = ? AND (is_featured = ? OR is_new = ?)", true, true, true).
			Order("created_at DESC").
			Limit(8).
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": products})
	}
}

// GetCategories is the public category listing.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": categories})
	}
}
