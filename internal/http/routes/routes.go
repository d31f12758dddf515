package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/auth"
	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/features/progress"
	"github.com/learnloop/learnloop-server-go/internal/features/resource"
	"github.com/learnloop/learnloop-server-go/internal/features/user"
	"github.com/learnloop/learnloop-server-go/internal/middleware"
	"github.com/learnloop/learnloop-server-go/pkg/bunny"
	"github.com/learnloop/learnloop-server-go/pkg/cache"
	"github.com/learnloop/learnloop-server-go/pkg/config"
	"github.com/learnloop/learnloop-server-go/pkg/health"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, storageClient *bunny.StorageClient, cacheClient *cache.RedisClient) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.VersionInfo)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !cfg.IsProduction() {
		engine.GET("/debug/db-stats", healthHandler.DBStats)
	}

	api := engine.Group("/api")

	authMiddleware := middleware.NewAuthMiddleware(db, cfg.JWTSecret, logger)

	// SuperAdmin automatically has access to everything (handled in AuthorizeRoles)
	adminOnly := authMiddleware.RequireRoles(types.UserTypeAdmin)
	allUsers := authMiddleware.RequireRoles(types.UserTypeAll)

	authHandler := auth.NewHandler(db, logger, cfg)
	auth.RegisterRoutes(api, authHandler)

	userHandler := user.NewHandler(db, logger)
	user.RegisterRoutes(api, userHandler, adminOnly)

	courseHandler := course.NewHandler(db, logger)
	course.RegisterRoutes(api, courseHandler, allUsers, adminOnly)

	lessonHandler := lesson.NewHandler(db, logger)
	lesson.RegisterRoutes(api, lessonHandler, allUsers, adminOnly)

	progressHandler := progress.NewHandler(db, logger, cacheClient)
	progress.RegisterRoutes(api, progressHandler, allUsers)

	resourceHandler := resource.NewHandler(db, logger, storageClient)
	resource.RegisterRoutes(api, resourceHandler, allUsers, adminOnly)
}
