package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/config"
	authControllers "github.com/ResonanceSE/Resonance/controllers/auth"
	"github.com/ResonanceSE/Resonance/mailer"
	"github.com/ResonanceSE/Resonance/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config, m *mailer.Mailer, logger *zap.Logger) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.POST("/validate-password", authControllers.ValidatePassword())
		authGroup.POST("/forgot-password", authControllers.ForgotPassword(db, m, cfg.FrontendBaseURL, logger))
		authGroup.POST("/reset-password", authControllers.ResetPassword(db))

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(db))
		{
			protected.POST("/logout", authControllers.Logout(db))
			protected.GET("/user", authControllers.GetUser(db))
			protected.PUT("/update-username", authControllers.UpdateUsername(db))
			protected.PUT("/update-address", authControllers.UpdateAddress(db))
		}
	}
}
