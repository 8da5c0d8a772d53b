package main

import (
	"github.com/gin-gonic/gin"
	"github.com/skanderbz/batitrack/internal/config"
	"github.com/skanderbz/batitrack/internal/handlers"
	"github.com/skanderbz/batitrack/internal/middleware"
	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/internal/services"
	"github.com/skanderbz/batitrack/pkg/logger"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, cfg *config.Config, storage *services.FileStorage) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health)

	authHandler := handlers.NewAuthHandler(db, cfg)
	projectHandler := handlers.NewProjectHandler(db)
	memberHandler := handlers.NewMemberHandler(db)
	documentHandler := handlers.NewDocumentHandler(db, storage)

	api := r.Group("/api")
	{
		// Auth routes (public, rate-limited)
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(5, 10))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		protected.Use(middleware.AuditLog())
		{
			protected.GET("/auth/me", authHandler.GetCurrentUser)

			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.PUT("/projects/:id", projectHandler.Update)

			protected.GET("/projects/:id/members", memberHandler.List)
			protected.POST("/projects/:id/members", memberHandler.Invite)

			protected.GET("/projects/:id/documents", documentHandler.List)
			protected.POST("/projects/:id/documents",
				middleware.RoleRequired(models.RoleArchitecte, models.RoleMOA),
				documentHandler.Upload)
			protected.POST("/projects/:id/documents/:documentID/sign", documentHandler.Sign)
		}
	}

	return r
}
