package authControllers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

// CheckPasswordStrength returns every policy violation found, in order.
func CheckPasswordStrength(password string) []string {
	var problems []string

	if len(password) < 8 {
		problems = append(problems, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		problems = append(problems, "Password must contain at least one digit")
	}
	if isCommonPassword(password) {
		problems = append(problems, "Password is too common")
	}

	return problems
}

func isCommonPassword(password string) bool {
	common := []string{"password", "12345678", "qwerty123", "letmein123", "password1"}
	lower := strings.ToLower(password)
	for _, c := range common {
		if lower == c {
			return true
		}
	}
	return false
}

// ValidatePassword lets the frontend run the same policy the server
// enforces on registration and reset.
func ValidatePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Password is required"})
			return
		}

		problems := CheckPasswordStrength(req.Password)
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"valid":  len(problems) == 0,
				"errors": problems,
			},
		})
	}
}
