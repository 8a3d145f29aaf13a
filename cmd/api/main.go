// @title Versora API
// @version 1.0
// @description Course browsing, AI-generated quizzes, and progress tracking for the Versora learning app.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"versora/internal/adapter"
	"versora/internal/adapter/gemini"
	"versora/internal/adapter/youtube"
	"versora/internal/cache"
	"versora/internal/config"
	"versora/internal/database"
	"versora/internal/handler"
	"versora/internal/logger"
	"versora/internal/middleware"
	"versora/internal/repository"
	"versora/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// External adapters
	questionGenerator, err := gemini.NewQuestionGenerator(ctx, cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini question generator", zap.Error(err))
	}
	courseSource, err := youtube.NewCourseSource(ctx, cfg.YouTube, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create YouTube course source", zap.Error(err))
	}

	// Database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Connected to Postgres")

	// Redis cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Connected to Redis")

	// Repositories
	courseRepository := repository.NewSQLXCourseRepository(db)
	userCourseRepository := repository.NewSQLXUserCourseRepository(db)
	quizRecordRepository := repository.NewSQLXQuizRecordRepository(db)
	streakRepository := repository.NewSQLXStreakRepository(db)
	achievementRepository := repository.NewSQLXAchievementRepository(db)
	personalizationRepository := repository.NewSQLXPersonalizationRepository(db)

	// Services
	quizGenerationService := service.NewQuizGenerationService(questionGenerator, courseRepository)
	notificationService := service.NewNotificationService()
	userService := service.NewUserService(
		quizRecordRepository,
		userCourseRepository,
		streakRepository,
		achievementRepository,
		personalizationRepository,
		notificationService,
	)
	courseService := service.NewCourseService(
		courseSource,
		courseRepository,
		userCourseRepository,
		personalizationRepository,
		cacheAdapter,
		cfg,
	)

	// Handlers
	quizHandler := handler.NewQuizHandler(quizGenerationService, userService)
	courseHandler := handler.NewCourseHandler(courseService)
	userHandler := handler.NewUserHandler(userService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	protected := middleware.Protected(cfg.Auth)

	apiGroup := app.Group("/api")

	// Course routes
	apiGroup.Get("/courses", courseHandler.ListCourses)
	apiGroup.Get("/courses/search", courseHandler.SearchCourses)

	// Quiz routes
	apiGroup.Post("/quizzes/generate", quizHandler.GenerateQuiz)
	apiGroup.Post("/quizzes", protected, quizHandler.SubmitQuiz)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users/me", protected)
	userGroup.Get("/quizzes", quizHandler.GetQuizHistory)
	userGroup.Get("/recommendations", courseHandler.GetRecommendations)
	userGroup.Get("/courses", userHandler.GetStartedCourses)
	userGroup.Post("/courses", userHandler.StartCourse)
	userGroup.Put("/courses/:courseId/progress", userHandler.UpdateCourseProgress)
	userGroup.Put("/courses/:courseId/bookmark", userHandler.BookmarkCourse)
	userGroup.Get("/streak", userHandler.GetStreak)
	userGroup.Get("/achievements", userHandler.GetAchievements)
	userGroup.Get("/personalization", userHandler.GetPersonalization)
	userGroup.Put("/personalization", userHandler.SavePersonalization)
	userGroup.Get("/dashboard", userHandler.GetDashboard)

	// Notification routes
	notificationGroup := apiGroup.Group("/notifications", protected)
	notificationGroup.Post("/", notificationHandler.SendNotification)
	notificationGroup.Get("/preferences", notificationHandler.GetPreferences)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
