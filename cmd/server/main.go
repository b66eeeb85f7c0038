package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/moodscribe/moodscribe/internal/classifier"
	"github.com/moodscribe/moodscribe/internal/config"
	"github.com/moodscribe/moodscribe/internal/database"
	"github.com/moodscribe/moodscribe/internal/handlers"
	"github.com/moodscribe/moodscribe/internal/middleware"
	"github.com/moodscribe/moodscribe/internal/types"
	"github.com/moodscribe/moodscribe/internal/utils"

	_ "github.com/moodscribe/moodscribe/docs/api" // Swagger docs
)

// @title MoodScribe API
// @version 1.0.0
// @description Journaling service with AI sentiment analysis
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/moodscribe/moodscribe

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database (process-wide pool)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Classifier client, shared across requests
	clf := classifier.NewClient(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("moodscribe")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	journalHandler := &handlers.JournalHandler{DB: db, Classifier: clf}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	api.Get("/health", healthHandler.Health)

	// Journal routes (all require user authentication)
	authUser := middleware.AuthUser(cfg, db)
	api.Post("/journal", authUser, journalHandler.CreateEntry)
	api.Get("/journal", authUser, journalHandler.ListEntries)
	api.Get("/journal/:id", authUser, journalHandler.GetEntry)
	api.Patch("/journal/:id", authUser, journalHandler.UpdateEntry)
	api.Delete("/journal/:id", authUser, journalHandler.DeleteEntry)
	api.Get("/history", authUser, journalHandler.History)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.EnvelopeErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, types.ErrTypeRequest)
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := types.ErrTypeInternal

	// Check if it's a Fiber error
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		errorType = types.ErrTypeRequest
	}

	// Check for typed middleware errors
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return utils.EnvelopeErrorResponse(c, message, code, errorType)
}
