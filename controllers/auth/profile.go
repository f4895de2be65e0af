package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

// UpdateUsername renames the account, re-checking uniqueness.
func UpdateUsername(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
			return
		}

		var req struct {
			Username string `json:"username"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username is required"})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("username = ? AND id <> ?", req.Username, user.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists"})
			return
		}

		if err := db.Model(user).Update("username", req.Username).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update username"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"username": req.Username},
		})
	}
}

type UpdateAddressRequest struct {
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// UpdateAddress patches the shipping address; absent fields are left alone.
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
			return
		}

		var req UpdateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}

		updates := make(map[string]interface{})
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.City != nil {
			updates["city"] = *req.City
		}
		if req.State != nil {
			updates["state"] = *req.State
		}
		if req.PostalCode != nil {
			updates["postal_code"] = *req.PostalCode
		}
		if req.Country != nil {
			updates["country"] = *req.Country
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update address"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Address updated"})
	}
}
