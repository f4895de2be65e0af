package staffControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryUpdateRequest patches field by field; absent fields are left
// alone, so an empty description is a real clear, not a no-op.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

func uniqueCategorySlug(db *gorm.DB, base string, excludeID uint) string {
	slug := base
	counter := 1
	for {
		var count int64
		db.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", slug, excludeID).
			Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name is required"})
			return
		}

		category := models.Category{
			Name:        req.Name,
			Slug:        uniqueCategorySlug(db, slugify(req.Name), 0),
			Description: req.Description,
			ParentID:    req.ParentID,
			IsActive:    true,
		}
		if req.IsActive != nil {
			category.IsActive = *req.IsActive
		}

		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "success", "data": category})
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch category"})
			}
			return
		}

		var req CategoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			if *req.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name is required"})
				return
			}
			if *req.Name != category.Name {
				updates["name"] = *req.Name
				updates["slug"] = uniqueCategorySlug(db, slugify(*req.Name), category.ID)
			}
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ParentID != nil {
			updates["parent_id"] = *req.ParentID
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(&category).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update category"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": category})
	}
}

func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid category ID"})
			return
		}

		result := db.Delete(&models.Category{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete category"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Category not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Category deleted"})
	}
}
