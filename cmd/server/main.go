package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skanderbz/batitrack/internal/config"
	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/internal/services"
	"github.com/skanderbz/batitrack/internal/utils"
	"github.com/skanderbz/batitrack/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	// Process-wide signing secret, set once and never rotated
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}

	db := models.GetDB()

	services.InitAuditLogger(db)
	services.StartCleanupScheduler(db, cfg.Log.RetentionDays)

	storage, err := services.NewFileStorage(&cfg.Upload)
	if err != nil {
		logger.Fatalf("failed to init file storage: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	r := setupRouter(db, cfg, storage)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
