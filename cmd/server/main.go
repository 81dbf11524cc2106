package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/shirokane/esports-hub-api/internal/config"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/shirokane/esports-hub-api/internal/database"
	"github.com/shirokane/esports-hub-api/internal/handlers"
	"github.com/shirokane/esports-hub-api/internal/logger"
	"github.com/shirokane/esports-hub-api/internal/middleware"
	"github.com/shirokane/esports-hub-api/internal/oauth"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"github.com/shirokane/esports-hub-api/internal/services"
	"github.com/shirokane/esports-hub-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.GinMode)
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Object storage for team logos (optional)
	var logoStore storage.LogoStore
	if cfg.MinioAccessKey != "" {
		ms, err := storage.NewMinioLogoStore(cfg)
		if err != nil {
			log.Fatalf("Failed to create logo store: %v", err)
		}
		logoStore = ms
	} else {
		logger.L().Warn("Object storage not configured; logo uploads disabled")
	}

	// Discord OAuth provider
	discord := oauth.NewDiscordProvider(
		cfg.DiscordClientID,
		cfg.DiscordClientSecret,
		cfg.AppURL+"/api/auth/callback",
	)

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, discord)
	teamService := services.NewTeamService(teamRepo, logoStore)
	eventService := services.NewEventService(eventRepo, teamRepo)
	adminService := services.NewAdminService(userRepo, teamRepo, eventRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.AppURL)
	teamHandler := handlers.NewTeamHandler(teamService)
	eventHandler := handlers.NewEventHandler(eventService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Esports Hub API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/discord", authHandler.SignIn)
			auth.GET("/callback", authHandler.Callback)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Team routes (reads public, mutations protected)
		teams := api.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.GET("/mine", middleware.RequireAuth(), teamHandler.ListMyTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.POST("", middleware.RequireAuth(), teamHandler.CreateTeam)
			teams.POST("/join", middleware.RequireAuth(), teamHandler.JoinTeam)
			teams.PUT("/:id", middleware.RequireAuth(), teamHandler.UpdateTeam)
			teams.DELETE("/:id", middleware.RequireAuth(), teamHandler.DeleteTeam)
			teams.POST("/:id/logo", middleware.RequireAuth(), teamHandler.UploadLogo)
			teams.POST("/:id/invitations", middleware.RequireAuth(), teamHandler.CreateInvitation)
			teams.PATCH("/:id/members/:user_id", middleware.RequireAuth(), teamHandler.UpdateMemberRole)
			teams.DELETE("/:id/members/:user_id", middleware.RequireAuth(), teamHandler.RemoveMember)
		}

		// Event routes (reads public, mutations protected)
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/mine", middleware.RequireAuth(), eventHandler.ListMyEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", middleware.RequireAuth(), eventHandler.CreateEvent)
			events.PUT("/:id", middleware.RequireAuth(), eventHandler.UpdateEvent)
			events.DELETE("/:id", middleware.RequireAuth(), eventHandler.DeleteEvent)
			events.POST("/:id/register", middleware.RequireAuth(), eventHandler.Register)
			events.DELETE("/:id/register", middleware.RequireAuth(), eventHandler.Unregister)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:user_id/admin", adminHandler.SetUserAdmin)
			admin.GET("/teams", adminHandler.ListTeams)
			admin.GET("/events", adminHandler.ListEvents)
		}
	}

	// Start server
	logger.L().Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
