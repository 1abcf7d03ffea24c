package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"loadshed-console-go/internal/auth"
	"loadshed-console-go/internal/dashboard"
	"loadshed-console-go/internal/entry"
	"loadshed-console-go/internal/handler"
	"loadshed-console-go/internal/metrics"
	"loadshed-console-go/internal/middleware"
	"loadshed-console-go/internal/news"
	"loadshed-console-go/internal/notification"
	"loadshed-console-go/internal/registry"
	"loadshed-console-go/internal/schedule"
	"loadshed-console-go/internal/settings"
	"loadshed-console-go/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize services
	emailService := notification.NewEmailService(notification.EmailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		FromEmail:    cfg.FromEmail,
		FromName:     cfg.FromName,
	}, db)
	authService := auth.NewAuthService(db, cfg.JWTSecret, cfg.EncryptionKey)
	registryService := registry.NewRegistryService(db)
	scheduleService := schedule.NewScheduleService(db, emailService)
	workflowService := entry.NewWorkflowService(registryService, scheduleService)
	dashboardService := dashboard.NewDashboardService(db, scheduleService)
	newsService := news.NewNewsService(db)
	settingsService := settings.NewSettingsService(db)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	entryHandler := handler.NewEntryHandler(workflowService, registryService, scheduleService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	newsHandler := handler.NewNewsHandler(newsService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	subscriptionHandler := handler.NewSubscriptionHandler(emailService)

	// Start the periodic metrics snapshots in a goroutine
	collector := metrics.NewCollector(db, scheduleService)
	go func() {
		collector.RunScheduledSnapshots()
	}()

	// Set up Gin router
	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // Console frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}
	router.Use(cors.New(corsConfig))

	// Public routes
	router.POST("/api/login", authHandler.Login)
	router.POST("/api/register", authHandler.Register)
	router.GET("/api/news", newsHandler.ListArticles)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// 2FA routes
		protected.POST("/2fa/setup", authHandler.SetupTwoFactor)
		protected.POST("/2fa/verify", authHandler.VerifyTwoFactor)
		protected.POST("/2fa/disable", authHandler.DisableTwoFactor)

		// User profile
		protected.GET("/user/profile", authHandler.GetUserProfile)
		protected.PUT("/user/password", authHandler.UpdatePassword)

		// Data-entry wizard
		protected.GET("/entry", entryHandler.GetSession)
		protected.POST("/entry/mode", entryHandler.SetMode)
		protected.GET("/entry/regions", entryHandler.ListRegions)
		protected.POST("/entry/regions", entryHandler.AddRegion)
		protected.DELETE("/entry/regions/:id", entryHandler.DeleteRegion)
		protected.POST("/entry/region-select", entryHandler.SelectRegion)
		protected.POST("/entry/suburbs/stage", entryHandler.StageSuburb)
		protected.DELETE("/entry/suburbs/stage/:index", entryHandler.UnstageSuburb)
		protected.POST("/entry/suburbs/commit", entryHandler.CommitSuburbs)
		protected.POST("/entry/suburb-select", entryHandler.ToggleSuburb)
		protected.POST("/entry/sessions", entryHandler.AddSession)
		protected.DELETE("/entry/sessions/:index", entryHandler.RemoveSession)
		protected.POST("/entry/schedule/submit", entryHandler.SubmitSchedule)

		// Read views
		protected.GET("/regions/:id/suburbs", entryHandler.ListSuburbs)
		protected.GET("/suburbs/:id/schedules", entryHandler.GetSuburbSchedules)
		protected.DELETE("/schedules/:id", entryHandler.DeleteSchedule)

		// Dashboard
		protected.GET("/dashboard/stats", dashboardHandler.GetStats)
		protected.GET("/dashboard/activity", dashboardHandler.GetWeeklyActivity)
		protected.GET("/dashboard/activities", dashboardHandler.GetRecentActivities)
		protected.GET("/dashboard/metrics", dashboardHandler.GetSystemMetrics)

		// News management
		protected.POST("/news", newsHandler.CreateArticle)
		protected.DELETE("/news/:id", newsHandler.DeleteArticle)

		// Settings
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)

		// Alert subscriptions
		protected.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
		protected.POST("/subscriptions", subscriptionHandler.AddSubscription)
		protected.PUT("/subscriptions/:id/active", subscriptionHandler.SetSubscriptionActive)
		protected.DELETE("/subscriptions/:id", subscriptionHandler.DeleteSubscription)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
