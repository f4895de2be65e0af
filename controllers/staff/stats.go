package staffControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

const lowStockThreshold = 10

// GetStats aggregates the dashboard numbers over a trailing window
// (?days=N, default 30). Nothing here is persisted; it is read-side only.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid days parameter"})
			return
		}
		startDate := time.Now().AddDate(0, 0, -days)

		var totalSales float64
		db.Model(&models.Order{}).
			Where("created_at >= ? AND status = ?", startDate, models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSales)

		var totalOrders, pendingOrders, lowStock int64
		db.Model(&models.Order{}).Where("created_at >= ?", startDate).Count(&totalOrders)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
		db.Model(&models.Product{}).Where("stock < ?", lowStockThreshold).Count(&lowStock)

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"total_sales":        totalSales,
				"total_orders":       totalOrders,
				"pending_orders":     pendingOrders,
				"low_stock_products": lowStock,
			},
		})
	}
}
