package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// getOrCreateCart keys the cart strictly to the authenticated user.
func getOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

// itemView joins a cart item with live product data for the response.
func itemView(item models.CartItem, product models.Product) gin.H {
	return gin.H{
		"id":         item.ID,
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.CurrentPrice(),
		"quantity":   item.Quantity,
		"image_url":  product.ImageURL,
		"category":   product.CategoryName(),
		"stock":      product.Stock,
	}
}

func cartItemViews(db *gorm.DB, cartID uint) ([]gin.H, error) {
	var items []models.CartItem
	err := db.Preload("Product").Preload("Product.Category").
		Where("cart_id = ?", cartID).
		Order("added_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item, item.Product))
	}
	return views, nil
}

// GetCart returns the cart items with live price and stock.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart"})
			return
		}

		views, err := cartItemViews(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": views})
	}
}

// AddToCart creates the item or increments an existing one, rejecting any
// write that would push the quantity past current stock.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product ID is required"})
			return
		}
		if req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Quantity must be greater than 0"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to validate product"})
			}
			return
		}

		if product.Stock < req.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Not enough stock. Only %d available.", product.Stock),
			})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add item to cart"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart item"})
			return
		default:
			if item.Quantity+req.Quantity > product.Stock {
				c.JSON(http.StatusBadRequest, gin.H{
					"status": "error",
					"message": fmt.Sprintf(
						"Cannot add more items. You already have %d in your cart, and only %d are available.",
						item.Quantity, product.Stock),
				})
				return
			}
			item.Quantity += req.Quantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update cart item"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Item added to cart",
			"data":    itemView(item, product),
		})
	}
}

// UpdateCartItem sets a new quantity; anything at or below zero removes
// the item.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid item ID"})
			return
		}

		var req struct {
			Quantity *int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Quantity is required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Cart not found"})
			return
		}

		var item models.CartItem
		if err := db.Preload("Product").
			Where("id = ? AND cart_id = ?", itemID, cart.CartID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Cart item not found"})
			return
		}

		if *req.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove cart item"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Item removed from cart"})
			return
		}

		if *req.Quantity > item.Product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Not enough stock. Only %d available.", item.Product.Stock),
			})
			return
		}

		item.Quantity = *req.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Cart item updated",
			"data": gin.H{
				"id":         item.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			},
		})
	}
}

// RemoveFromCart deletes one item.
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid item ID"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Cart not found"})
			return
		}

		result := db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Item removed from cart"})
	}
}

// ClearCart removes every item.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Cart not found"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Cart cleared"})
	}
}
