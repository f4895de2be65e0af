package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/config"
	"github.com/ResonanceSE/Resonance/mailer"
	"github.com/ResonanceSE/Resonance/metrics"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, m *mailer.Mailer, logger *zap.Logger) {
	// Liveness endpoints, used by the frontend and uptime monitors.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Resonance API is running"})
	})
	r.GET("/keepalive", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "alive"})
	})

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg, m, logger)
	SetupProductRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, logger)
	SetupStaffRoutes(api, db)
}
