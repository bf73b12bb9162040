package main

import (
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/orgspace/orgspace-api/internal/config"
	"github.com/orgspace/orgspace-api/internal/database"
	"github.com/orgspace/orgspace-api/internal/handlers"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/registry"
	"github.com/orgspace/orgspace-api/internal/repository"
	"github.com/orgspace/orgspace-api/internal/services"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// The grant table is validated once at startup; a typo in an ability or
	// role name is a deployment error, not a runtime condition.
	if _, err := registry.New(); err != nil {
		logger.Fatal("ability registry", zap.Error(err))
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal("indexes", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

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
		logger.Fatal("redis session store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("orgspace_session", store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	dir := repository.NewAccessRepository(db)

	// Policy gate and slot rules
	gate := policy.NewGate(dir)
	rules := policy.SlotRules{
		SlotSize:    time.Duration(cfg.SlotSizeMinutes) * time.Minute,
		MinSlots:    cfg.MinSlotsPerBooking,
		MaxSlots:    cfg.MaxSlotsPerBooking,
		MinGapSlots: cfg.MinGapSlots,
		AdvanceDays: cfg.AdvanceBookingDays,
	}

	// Services
	authService := services.NewAuthService(userRepo, cfg.TelegramBotToken)
	userService := services.NewUserService(userRepo, orgRepo)
	orgService := services.NewOrganisationService(orgRepo)
	venueService := services.NewVenueService(venueRepo)
	bookingService := services.NewBookingService(bookingRepo, venueRepo, orgRepo, dir, rules)
	submissionService := services.NewSubmissionService(submissionRepo, orgRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, gate)
	orgHandler := handlers.NewOrganisationHandler(orgService, gate)
	venueHandler := handlers.NewVenueHandler(venueService, gate)
	bookingHandler := handlers.NewBookingHandler(bookingService, gate, dir)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, gate, dir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Orgspace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/telegram", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", middleware.RequireAuth(), userHandler.CreateUser)
			users.PATCH("/:id", middleware.RequireAuth(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.DeleteUser)
		}

		// Organisation routes
		orgs := api.Group("/organisations")
		{
			orgs.GET("", orgHandler.ListOrganisations)
			orgs.GET("/:id", orgHandler.GetOrganisation)
			orgs.POST("", middleware.RequireAuth(), orgHandler.CreateOrganisation)
			orgs.PUT("/:id", middleware.RequireAuth(), orgHandler.UpdateOrganisation)
			orgs.DELETE("/:id", middleware.RequireAuth(), orgHandler.DeleteOrganisation)
			orgs.POST("/:id/members", middleware.RequireAuth(), orgHandler.AddMember)
			orgs.DELETE("/:id/members/:user_id", middleware.RequireAuth(), orgHandler.RemoveMember)
		}

		// Venue routes
		venues := api.Group("/venues")
		{
			venues.GET("", venueHandler.ListVenues)
			venues.GET("/:id", venueHandler.GetVenue)
			venues.GET("/:id/bookings", bookingHandler.ListBookings)
			venues.POST("", middleware.RequireAuth(), venueHandler.CreateVenue)
			venues.PUT("/:id", middleware.RequireAuth(), venueHandler.UpdateVenue)
			venues.DELETE("/:id", middleware.RequireAuth(), venueHandler.DeleteVenue)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.POST("", middleware.RequireAuth(), bookingHandler.CreateBooking)
			bookings.PATCH("/:id", middleware.RequireAuth(), bookingHandler.UpdateBooking)
			bookings.DELETE("/:id", middleware.RequireAuth(), bookingHandler.DeleteBooking)
		}

		// Submission routes
		submissions := api.Group("/submissions")
		{
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.GET("/:id", submissionHandler.GetSubmission)
			submissions.POST("", middleware.RequireAuth(), submissionHandler.CreateSubmission)
			submissions.PATCH("/:id", middleware.RequireAuth(), submissionHandler.UpdateSubmission)
			submissions.POST("/:id/publish", middleware.RequireAuth(), submissionHandler.PublishSubmission)
			submissions.DELETE("/:id", middleware.RequireAuth(), submissionHandler.DeleteSubmission)
		}
	}

	// Start server
	logger.Info("server listening", zap.String("addr", ":8080"))
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
