package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

type SyncItemInput struct {
	ID        uint `json:"id"` // clients send either "id" or "product_id"
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type SyncRequest struct {
	Items   []SyncItemInput `json:"items"`
	Replace bool            `json:"replace"`
}

func (i SyncItemInput) productID() uint {
	if i.ProductID != 0 {
		return i.ProductID
	}
	return i.ID
}

// SyncCart folds a client-side cart into the server cart in one
// transaction. Unknown products are skipped, quantities are clamped to
// current stock, and Replace drops the server cart first instead of
// merging into it.
func SyncCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Cart items array is required"})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if req.Replace {
				if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			}

			for _, input := range req.Items {
				productID := input.productID()
				if productID == 0 || input.Quantity <= 0 {
					continue
				}

				var product models.Product
				if err := tx.First(&product, productID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}

				var existing models.CartItem
				err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).
					First(&existing).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					quantity := min(input.Quantity, product.Stock)
					if quantity <= 0 {
						continue
					}
					item := models.CartItem{
						CartID:    cart.CartID,
						ProductID: product.ID,
						Quantity:  quantity,
						AddedAt:   time.Now(),
					}
					if err := tx.Create(&item).Error; err != nil {
						return err
					}
				case err != nil:
					return err
				default:
					existing.Quantity = min(existing.Quantity+input.Quantity, product.Stock)
					if err := tx.Save(&existing).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to synchronize cart"})
			return
		}

		views, err := cartItemViews(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Cart synchronized successfully",
			"data":    views,
		})
	}
}
