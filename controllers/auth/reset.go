package authControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/mailer"
	"github.com/ResonanceSE/Resonance/models"
)

const resetTokenTTL = 24 * time.Hour

// ForgotPassword issues a reset token and mails the reset link. The
// response is the same whether or not the email exists, so the endpoint
// cannot be used to probe for accounts.
func ForgotPassword(db *gorm.DB, m *mailer.Mailer, frontendBaseURL string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email is required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
			token := models.GenerateKey()
			expiry := time.Now().Add(resetTokenTTL)
			err := db.Model(&user).Updates(map[string]interface{}{
				"reset_token":        token,
				"reset_token_expiry": expiry,
			}).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create reset token"})
				return
			}

			resetURL := fmt.Sprintf("%s/reset-password?token=%s", frontendBaseURL, token)
			if err := m.SendPasswordReset(user.Email, resetURL); err != nil {
				// Delivery problems must not reveal anything to the caller.
				logger.Warn("password reset mail failed",
					zap.Uint("user_id", user.ID),
					zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "If that email is registered, a reset link has been sent",
		})
	}
}

// ResetPassword consumes a reset token within its 24-hour window.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token    string `json:"token"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Token and password are required"})
			return
		}

		var user models.User
		if err := db.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid reset token"})
			return
		}

		if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Reset token has expired"})
			return
		}

		if problems := CheckPasswordStrength(req.Password); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": problems[0]})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to hash password"})
			return
		}

		err = db.Model(&user).Updates(map[string]interface{}{
			"password_hash":      string(hash),
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Password has been reset"})
	}
}
