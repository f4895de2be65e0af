package staffControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authControllers "github.com/ResonanceSE/Resonance/controllers/auth"
	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

func staffView(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}

// ListStaff returns the staff and superuser accounts.
func ListStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var staff []models.User
		err := db.Where("role IN ?", []models.Role{models.RoleStaff, models.RoleSuperuser}).
			Order("created_at DESC").
			Find(&staff).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch staff"})
			return
		}

		views := make([]gin.H, 0, len(staff))
		for _, user := range staff {
			views = append(views, staffView(user))
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": views})
	}
}

type StaffCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func CreateStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StaffCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username, email and password are required"})
			return
		}
		if problems := authControllers.CheckPasswordStrength(req.Password); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": problems[0]})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("username = ? OR email = ?", req.Username, req.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username or email already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         models.RoleStaff,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create staff account"})
			return
		}
		if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create cart"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "success", "data": staffView(user)})
	}
}

type StaffUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateStaff patches a staff account, re-checking username/email
// uniqueness against everyone else.
func UpdateStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("staff_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid staff ID"})
			return
		}

		var user models.User
		err = db.Where("id = ? AND role IN ?", id, []models.Role{models.RoleStaff, models.RoleSuperuser}).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Staff account not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch staff account"})
			}
			return
		}

		var req StaffUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}

		updates := make(map[string]interface{})
		if req.Username != nil {
			var count int64
			db.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, user.ID).Count(&count)
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists"})
				return
			}
			updates["username"] = *req.Username
		}
		if req.Email != nil {
			var count int64
			db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, user.ID).Count(&count)
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email already exists"})
				return
			}
			updates["email"] = *req.Email
		}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update staff account"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "data": staffView(user)})
	}
}

// DeleteStaff removes a staff account. Deleting yourself is blocked.
func DeleteStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := middleware.CurrentUser(c)

		id, err := strconv.Atoi(c.Param("staff_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid staff ID"})
			return
		}
		if uint(id) == current.ID {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "You cannot delete your own account"})
			return
		}

		result := db.Where("id = ? AND role IN ?", id, []models.Role{models.RoleStaff, models.RoleSuperuser}).
			Delete(&models.User{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete staff account"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Staff account not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Staff account deleted"})
	}
}
