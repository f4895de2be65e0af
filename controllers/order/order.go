package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/metrics"
	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"` // optional; live catalog price when absent
}

type CreateOrderRequest struct {
	ShippingAddress string           `json:"shipping_address"`
	Items           []OrderItemInput `json:"items"`
	SaveAddress     bool             `json:"save_address"`
}

type PaymentRequest struct {
	PaymentStatus bool   `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
}

// errOrderRejected marks business-rule failures that map to 400 rather
// than 500.
type errOrderRejected struct{ msg string }

func (e errOrderRejected) Error() string { return e.msg }

// generateOrderNumber builds the human-facing order id: ORD- plus the
// first 8 hex chars of a random UUID, uppercased. Not guarded for
// uniqueness; a collision is astronomically unlikely.
func generateOrderNumber() string {
	u := uuid.New()
	return "ORD-" + strings.ToUpper(fmt.Sprintf("%x", u[:4]))
}

// CreateOrder turns a shipping address plus line items into a persisted
// order inside one transaction. Items default to the server cart when the
// request carries none, and the cart is cleared after a cart-sourced
// checkout succeeds.
func CreateOrder(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}
		if req.ShippingAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Shipping address is required"})
			return
		}

		items := req.Items
		fromCart := false
		var cart models.Cart
		if len(items) == 0 {
			if err := db.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error; err == nil {
				for _, ci := range cart.Items {
					items = append(items, OrderItemInput{ProductID: ci.ProductID, Quantity: ci.Quantity})
				}
				fromCart = true
			}
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No cart found and no cart items provided"})
			return
		}

		if req.SaveAddress {
			// Best effort only: a malformed address never blocks checkout.
			if err := saveShippingAddress(db, user, req.ShippingAddress); err != nil {
				logger.Warn("failed to save shipping address",
					zap.Uint("user_id", user.ID),
					zap.Error(err))
			}
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			order = models.Order{
				OrderNumber:     generateOrderNumber(),
				UserID:          user.ID,
				ShippingAddress: req.ShippingAddress,
				TotalAmount:     0,
				Status:          models.OrderStatusPending,
				PaymentStatus:   false,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			var total float64
			for _, input := range items {
				if input.Quantity <= 0 {
					return errOrderRejected{"Quantity must be greater than 0"}
				}

				var product models.Product
				if err := tx.First(&product, input.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errOrderRejected{fmt.Sprintf("Product with ID %d not found", input.ProductID)}
					}
					return err
				}

				// The conditional decrement is the authoritative stock
				// guard: two concurrent checkouts against the last unit
				// cannot both pass it.
				res := tx.Model(&models.Product{}).
					Where("id = ? AND stock >= ?", product.ID, input.Quantity).
					Update("stock", gorm.Expr("stock - ?", input.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errOrderRejected{fmt.Sprintf(
						"Not enough stock for %s. Only %d available.", product.Name, product.Stock)}
				}

				price := product.CurrentPrice()
				if input.Price != nil {
					// Request-supplied prices are recorded as sent; see the
					// trust-boundary note in DESIGN.md.
					price = *input.Price
				}

				item := models.OrderItem{
					OrderID:     order.ID,
					ProductID:   product.ID,
					ProductName: product.Name,
					Quantity:    input.Quantity,
					Price:       price,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				order.Items = append(order.Items, item)

				total += price * float64(input.Quantity)
			}

			if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
				return err
			}
			order.TotalAmount = total

			if fromCart {
				if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			var rejected errOrderRejected
			if errors.As(err, &rejected) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": rejected.msg})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to create order: " + err.Error(),
			})
			return
		}

		metrics.OrdersPlaced.Inc()
		BroadcastOrder(order)

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Order created successfully",
			"data": gin.H{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"total_amount": order.TotalAmount,
			},
		})
	}
}

func orderView(order models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"product":  item.ProductName,
			"quantity": item.Quantity,
			"price":    item.Price,
			"subtotal": item.Subtotal(),
		})
	}
	return gin.H{
		"id":               order.ID,
		"order_number":     order.OrderNumber,
		"status":           order.Status,
		"total_amount":     order.TotalAmount,
		"shipping_address": order.ShippingAddress,
		"payment_status":   order.PaymentStatus,
		"created_at":       order.CreatedAt,
		"items":            items,
	}
}

// GetUserOrders lists the authenticated user's orders, newest first.
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch orders"})
			return
		}

		views := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			views = append(views, orderView(order))
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": views})
	}
}

// GetOrderDetails returns one order, only to its owner.
func GetOrderDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, user.ID).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": orderView(order)})
	}
}

// ProcessPayment flips the payment fields and moves the order to
// processing. There is no gateway behind this; it is a status change.
func ProcessPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
			return
		}

		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
			return
		}

		updates := map[string]interface{}{
			"payment_status": req.PaymentStatus,
			"payment_method": req.PaymentMethod,
			"status":         models.OrderStatusProcessing,
			"payment_date":   gorm.Expr("CURRENT_TIMESTAMP"),
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to process payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Payment processed",
			"data": gin.H{
				"order_id":       order.ID,
				"order_number":   order.OrderNumber,
				"payment_status": req.PaymentStatus,
				"payment_method": req.PaymentMethod,
				"order_status":   models.OrderStatusProcessing,
			},
		})
	}
}
