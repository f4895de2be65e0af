package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

type brandCount struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

type priceRange struct {
	Name  string   `json:"name"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max"`
	Count int64    `json:"count"`
}

// GetFilters returns the distinct filter options the storefront renders:
// brands with product counts, price buckets computed from live data, and
// the active categories.
func GetFilters(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []brandCount
		if err := db.Model(&models.Product{}).
			Where("is_active = ?", true).
			Select("brand, COUNT(*) as count").
			Group("brand").
			Order("brand").
			Scan(&brands).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch filters"})
			return
		}

		countBetween := func(min float64, max *float64) int64 {
			q := db.Model(&models.Product{}).Where("is_active = ? AND price >= ?", true, min)
			if max != nil {
				q = q.Where("price < ?", *max)
			}
			var n int64
			q.Count(&n)
			return n
		}

		f := func(v float64) *float64 { return &v }
		ranges := []priceRange{
			{Name: "Under $100", Min: 0, Max: f(100)},
			{Name: "$100 - $300", Min: 100, Max: f(300)},
			{Name: "$300 - $500", Min: 300, Max: f(500)},
			{Name: "Over $500", Min: 500, Max: nil},
		}
		for i := range ranges {
			ranges[i].Count = countBetween(ranges[i].Min, ranges[i].Max)
		}

		var categories []models.Category
		db.Where("is_active = ?", true).Order("name").Find(&categories)

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"brands":       brands,
				"price_ranges": ranges,
				"categories":   categories,
			},
		})
	}
}
