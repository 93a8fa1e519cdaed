// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/handlers"
	"github.com/conapesca/repa-backend/internal/middleware"
	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	captchaService := services.NewCaptchaService(cfg)
	notificationService := services.NewNotificationService(cfg)
	authService := services.NewAuthService(db, cfg, captchaService, notificationService)
	solicitanteService := services.NewSolicitanteService(db)
	integranteService := services.NewIntegranteService(db)
	embarcacionService := services.NewEmbarcacionService(db)
	pescaService := services.NewPescaService(db, notificationService)
	acuaculturaService := services.NewAcuaculturaService(db, notificationService)
	reportService := services.NewReportService(db)
	adminService := services.NewAdminService(db, cfg)
	backupService, err := services.NewBackupService(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	solicitanteHandler := handlers.NewSolicitanteHandler(solicitanteService)
	integranteHandler := handlers.NewIntegranteHandler(integranteService)
	embarcacionHandler := handlers.NewEmbarcacionHandler(embarcacionService)
	pescaHandler := handlers.NewPescaHandler(pescaService)
	acuaculturaHandler := handlers.NewAcuaculturaHandler(acuaculturaService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, pescaService, acuaculturaService, backupService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Static portal pages
	r.Static("/portal", "./web")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/portal/")
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(db), authHandler.Me)
		}

		// Applicant routes (Anexos 1-5 plus the registration report)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired(db))
		{
			protected.GET("/perfil", solicitanteHandler.GetPerfil)
			protected.PUT("/perfil", solicitanteHandler.UpdatePerfil)
			protected.GET("/perfil/anexos", solicitanteHandler.EstadoAnexos)

			protected.GET("/integrantes", integranteHandler.List)
			protected.POST("/integrantes", integranteHandler.Create)
			protected.PUT("/integrantes/:id", integranteHandler.Update)
			protected.DELETE("/integrantes/:id", integranteHandler.Delete)

			protected.GET("/anexos/pesca", pescaHandler.Get)
			protected.PUT("/anexos/pesca", pescaHandler.Save)
			protected.GET("/anexos/acuacultura", acuaculturaHandler.Get)
			protected.PUT("/anexos/acuacultura", acuaculturaHandler.Save)

			protected.GET("/embarcaciones", embarcacionHandler.List)
			protected.POST("/embarcaciones", embarcacionHandler.Create)
			protected.PUT("/embarcaciones/:id", embarcacionHandler.Update)
			protected.DELETE("/embarcaciones/:id", embarcacionHandler.Delete)

			protected.GET("/reportes/registro", reportHandler.Registro)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(db), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/solicitantes", adminHandler.ListSolicitantes)
			admin.GET("/solicitantes/:id", adminHandler.GetSolicitante)
			admin.PUT("/solicitantes/:id", adminHandler.UpdateSolicitante)
			admin.DELETE("/solicitantes/:id", adminHandler.DeleteSolicitante)
			admin.GET("/solicitantes/:id/reporte", reportHandler.RegistroAdmin)
			admin.GET("/embarcaciones", embarcacionHandler.Search)

			// Destructive operations stay behind the superadmin role
			super := admin.Group("")
			super.Use(middleware.SuperadminRequired())
			{
				super.POST("/reset", adminHandler.ResetSystem)
				super.GET("/respaldo", adminHandler.DownloadBackup)
				super.POST("/respaldo/archivar", adminHandler.ArchiveBackup)
			}
		}
	}

	return r, nil
}
