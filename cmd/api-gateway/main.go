package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/j1progress/progress-api/api/swagger"
	"github.com/j1progress/progress-api/internal/handler"
	"github.com/j1progress/progress-api/internal/middleware"
	"github.com/j1progress/progress-api/internal/models"
	"github.com/j1progress/progress-api/internal/repository"
	"github.com/j1progress/progress-api/internal/service"
	"github.com/j1progress/progress-api/internal/store"
	"github.com/j1progress/progress-api/pkg/cache"
	"github.com/j1progress/progress-api/pkg/config"
	"github.com/j1progress/progress-api/pkg/database"
	"github.com/j1progress/progress-api/pkg/logger"
	corsmiddleware "github.com/j1progress/progress-api/pkg/middleware/cors"
	reqidmiddleware "github.com/j1progress/progress-api/pkg/middleware/requestid"
	"github.com/j1progress/progress-api/pkg/storage"
)

// @title Unit Progress API
// @version 3.0
// @description Progress-reporting dashboard API for unit project tracking
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	}

	dataStore := store.New(
		repository.NewUnitRepository(db),
		repository.NewProjectRepository(db),
		repository.NewGroupRepository(db),
		repository.NewReportRepository(db),
		logr,
	)

	validate := validator.New()

	authSvc := service.NewAuthService(dataStore, validate, logr, service.AuthConfig{
		Secret:              cfg.JWT.Secret,
		TokenExpiry:         cfg.JWT.Expiration,
		Issuer:              cfg.JWT.Issuer,
		AdminPassword:       cfg.Auth.AdminPassword,
		DefaultUnitPassword: cfg.Auth.DefaultUnitPassword,
	})
	unitSvc := service.NewUnitService(dataStore, cacheSvc, validate, logr)
	groupSvc := service.NewGroupService(dataStore, validate, logr)
	projectSvc := service.NewProjectService(dataStore, cacheSvc, validate, logr)
	reportSvc := service.NewReportService(dataStore, cacheSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(dataStore, cacheSvc, metrics, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(dataStore, logr)
	summarySvc := service.NewSummaryService(dataStore, service.SummaryConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, logr)

	var backupFiles *storage.LocalStorage
	var backupSigner *storage.SignedURLSigner
	if files, err := storage.NewLocalStorage(cfg.Backup.StorageDir); err != nil {
		logr.Warn("backup storage unavailable, archiving disabled", zap.Error(err))
	} else {
		backupFiles = files
		backupSigner = storage.NewSignedURLSigner(cfg.Backup.SignedURLSecret, cfg.Backup.SignedURLTTL)
	}
	backupSvc := service.NewBackupService(dataStore, backupFiles, backupSigner, logr)

	ctx := context.Background()
	if cfg.Seed.Enabled {
		seeded, err := service.NewSeedService(dataStore, logr).Run(ctx)
		if err != nil {
			logr.Warn("seeding defaults failed", zap.Error(err))
		} else if seeded {
			logr.Info("seeded default units and projects")
		}
	}
	if cfg.Retention.SweepOnStart {
		retention := service.NewRetentionService(dataStore, cfg.Retention.TrashWindow, logr)
		if removed, err := retention.Sweep(ctx); err != nil {
			logr.Warn("retention sweep failed", zap.Error(err))
		} else if removed > 0 {
			logr.Info("retention sweep removed expired projects", zap.Int("removed", removed))
		}
		// Archived snapshots follow the same retention window as trashed projects.
		if backupFiles != nil {
			if removed, err := backupFiles.CleanupOlderThan(cfg.Retention.TrashWindow); err != nil {
				logr.Warn("backup cleanup failed", zap.Error(err))
			} else if len(removed) > 0 {
				logr.Info("removed expired backup snapshots", zap.Int("removed", len(removed)))
			}
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewUnitHandler(unitSvc),
		handler.NewGroupHandler(groupSvc),
		handler.NewProjectHandler(projectSvc),
		handler.NewReportHandler(reportSvc),
		handler.NewDashboardHandler(dashboardSvc),
		handler.NewExportHandler(exportSvc),
		handler.NewBackupHandler(backupSvc),
		handler.NewSummaryHandler(summarySvc),
		handler.NewEventsHandler(dataStore, logr),
		metricsHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	authSvc *service.AuthService,
	auth *handler.AuthHandler,
	units *handler.UnitHandler,
	groups *handler.GroupHandler,
	projects *handler.ProjectHandler,
	reports *handler.ReportHandler,
	dashboard *handler.DashboardHandler,
	export *handler.ExportHandler,
	backup *handler.BackupHandler,
	summary *handler.SummaryHandler,
	events *handler.EventsHandler,
	system *handler.MetricsHandler,
) {
	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", auth.Login)

	authed := api.Group("", middleware.JWT(authSvc))
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	authed.GET("/units", units.List)
	authed.POST("/units", adminOnly, units.Create)
	authed.PUT("/units/:id", adminOnly, units.Update)
	authed.DELETE("/units/:id", adminOnly, units.Delete)

	authed.GET("/groups", groups.List)
	authed.POST("/groups", adminOnly, groups.Create)
	authed.PUT("/groups/:id", adminOnly, groups.Update)
	authed.DELETE("/groups/:id", adminOnly, groups.Delete)

	authed.GET("/projects", projects.List)
	authed.GET("/projects/trash", adminOnly, projects.ListTrash)
	authed.POST("/projects", adminOnly, projects.Create)
	authed.PUT("/projects/:id", adminOnly, projects.Update)
	authed.DELETE("/projects/:id", adminOnly, projects.Delete)
	authed.POST("/projects/:id/trash", adminOnly, projects.Trash)
	authed.POST("/projects/:id/restore", adminOnly, projects.Restore)

	authed.GET("/reports", reports.List)
	authed.GET("/reports/prefill", reports.Prefill)
	authed.POST("/reports", reports.Create)
	authed.DELETE("/reports/:id", reports.Delete)

	authed.GET("/dashboard", dashboard.View)
	authed.GET("/export/reports", export.Reports)
	authed.POST("/summary", summary.Generate)

	authed.GET("/backup/export", adminOnly, backup.Export)
	authed.POST("/backup/import", adminOnly, backup.Import)
	authed.POST("/backup/archive", adminOnly, backup.Archive)
	authed.GET("/backup/download/:token", adminOnly, backup.Download)

	authed.GET("/system/metrics", adminOnly, system.Snapshot)

	authed.GET("/events/:collection", events.Stream)
}
