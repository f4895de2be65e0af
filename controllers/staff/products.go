package staffControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

// -------- Request Structs --------

type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       int      `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
	IsNew       *bool    `json:"is_new"`
	ImageURL    string   `json:"image_url"`
}

type ProductUpdateRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Brand       *string       `json:"brand"`
	Price       *float64      `json:"price"`
	SalePrice   OptionalPrice `json:"sale_price"`
	Stock       *int          `json:"stock"`
	CategoryID  *uint         `json:"category_id"`
	IsActive    *bool         `json:"is_active"`
	IsFeatured  *bool         `json:"is_featured"`
	IsNew       *bool         `json:"is_new"`
	ImageURL    *string       `json:"image_url"`
}

// OptionalPrice tells an absent sale_price apart from an explicit null.
// A plain pointer cannot: both decode to nil, and the discount could be
// set but never removed.
type OptionalPrice struct {
	Set   bool
	Value *float64
}

func (p *OptionalPrice) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		p.Value = nil
		return nil
	}
	return json.Unmarshal(data, &p.Value)
}

// -------- Slug helpers --------

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends -1, -2, ... until the slug is free. excludeID lets an
// update keep its own slug.
func uniqueSlug(db *gorm.DB, base string, excludeID uint) string {
	slug := base
	counter := 1
	for {
		var count int64
		db.Model(&models.Product{}).
			Where("slug = ? AND id <> ?", slug, excludeID).
			Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func validateProductFields(price float64, salePrice *float64, stock int) string {
	if price <= 0 {
		return "Price must be greater than zero"
	}
	if salePrice != nil && *salePrice >= price {
		return "Sale price must be less than regular price"
	}
	if stock < 0 {
		return "Stock cannot be negative"
	}
	return ""
}

// -------- Handlers --------

// ListProducts returns every product, inactive ones included.
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": products})
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
			return
		}

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
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name is required"})
			return
		}
		if msg := validateProductFields(req.Price, req.SalePrice, req.Stock); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}

		product := models.Product{
			Name:        req.Name,
			Slug:        uniqueSlug(db, slugify(req.Name), 0),
			Description: req.Description,
			Brand:       req.Brand,
			Price:       req.Price,
			SalePrice:   req.SalePrice,
			Stock:       req.Stock,
			CategoryID:  req.CategoryID,
			IsActive:    true,
			ImageURL:    req.ImageURL,
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}
		if req.IsFeatured != nil {
			product.IsFeatured = *req.IsFeatured
		}
		if req.IsNew != nil {
			product.IsNew = *req.IsNew
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "success", "data": product})
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}

		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		salePrice := product.SalePrice
		if req.SalePrice.Set {
			salePrice = req.SalePrice.Value
		}
		stock := product.Stock
		if req.Stock != nil {
			stock = *req.Stock
		}
		if msg := validateProductFields(price, salePrice, stock); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil && *req.Name != product.Name {
			updates["name"] = *req.Name
			updates["slug"] = uniqueSlug(db, slugify(*req.Name), product.ID)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Brand != nil {
			updates["brand"] = *req.Brand
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.SalePrice.Set {
			updates["sale_price"] = req.SalePrice.Value
		}
		if req.Stock != nil {
			updates["stock"] = *req.Stock
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if req.IsFeatured != nil {
			updates["is_featured"] = *req.IsFeatured
		}
		if req.IsNew != nil {
			updates["is_new"] = *req.IsNew
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": product})
	}
}

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product deleted"})
	}
}
