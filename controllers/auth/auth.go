package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

// -------- Request Structs --------

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username"` // accepts username OR email
	Password string `json:"password"`
}

// -------- Handlers --------

// Register creates a user with a hashed password and issues a token.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}
		if req.Username == "" || req.Password == "" || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username, password and email are required"})
			return
		}

		if problems := CheckPasswordStrength(req.Password); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": problems[0]})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists"})
			return
		}
		db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email already exists"})
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
			Role:         models.RoleCustomer,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create user"})
			return
		}

		// The empty cart row must be created explicitly; GORM does not save
		// a zero-value association.
		if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create cart"})
			return
		}

		token := models.NewToken(user.ID)
		if err := db.Create(&token).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"data": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"token":    token.Key,
			},
		})
	}
}

// Login authenticates by username or email and reuses an existing token
// when the user already holds one.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
			return
		}
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username and password are required"})
			return
		}

		var user models.User
		err := db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
			return
		}

		var token models.Token
		if err := db.Where("user_id = ?", user.ID).First(&token).Error; err != nil {
			token = models.NewToken(user.ID)
			if err := db.Create(&token).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to issue token"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"token":    token.Key,
			},
		})
	}
}

// Logout drops every token the user holds, invalidating all sessions.
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
			return
		}
		if err := db.Where("user_id = ?", user.ID).Delete(&models.Token{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to log out"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// GetUser returns the authenticated user's profile.
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"id":          user.ID,
				"username":    user.Username,
				"email":       user.Email,
				"first_name":  user.FirstName,
				"last_name":   user.LastName,
				"address":     user.Address,
				"city":        user.City,
				"state":       user.State,
				"postal_code": user.PostalCode,
				"country":     user.Country,
				"role":        user.Role,
			},
		})
	}
}
