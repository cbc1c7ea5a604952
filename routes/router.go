package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/config"
	"github.com/andresouza/portfolio/controllers"
	"github.com/andresouza/portfolio/middleware"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/utils"
)

// SetupRouter wires middlewares, controllers and routes.
func SetupRouter(svc *service.Service) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	al, err := utils.NewRollingFileLogger(cfg.AccessLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(al, true))
		r.Use(utils.RecoveryWithZap(al, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.BodyLimit())
	r.Use(middleware.Session())

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(svc)
	portfolioController := controllers.NewPortfolioController(svc)
	adminController := controllers.NewAdminController(svc)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/forgot-password", authController.ForgotPassword)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	api.GET("/home", portfolioController.Home)
	api.GET("/projects", portfolioController.ListProjects)
	api.GET("/projects/:id", portfolioController.GetProject)
	api.POST("/projects/:id/like", middleware.AuthRequired(), portfolioController.LikeProject)
	api.POST("/projects/:id/comments", middleware.AuthRequired(), portfolioController.CommentProject)
	api.GET("/about", portfolioController.About)
	api.POST("/contact", portfolioController.Contact)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminRequired())
	adminGroup.GET("/dashboard", adminController.Dashboard)
	adminGroup.GET("/projects", adminController.ListProjects)
	adminGroup.GET("/projects/:id", adminController.GetProject)
	adminGroup.POST("/projects", adminController.CreateProject)
	adminGroup.PUT("/projects/:id", adminController.UpdateProject)
	adminGroup.DELETE("/projects/:id", adminController.DeleteProject)
	adminGroup.GET("/achievements", adminController.ListAchievements)
	adminGroup.POST("/achievements", adminController.CreateAchievement)
	adminGroup.PUT("/achievements/:id", adminController.UpdateAchievement)
	adminGroup.DELETE("/achievements/:id", adminController.DeleteAchievement)
	adminGroup.GET("/profile", adminController.Profile)
	adminGroup.PUT("/profile", adminController.UpdateProfile)

	return r
}
