package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"internmatch/internal/config"
	"internmatch/internal/handlers"
	"internmatch/internal/models"
	"internmatch/internal/repositories"
	"internmatch/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	internshipRepo := repositories.NewInternshipRepository(db)
	allocationRepo := repositories.NewAllocationRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	runRepo := repositories.NewMatchRunRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize the embedding backend. Absent or broken credentials are not
	// fatal: the matcher falls back to ratio-based scoring.
	var embeddingService services.EmbeddingService
	if cfg.Gemini.APIKey != "" {
		embeddingService, err = services.NewGeminiEmbeddingService(cfg.Gemini.APIKey)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini, continuing without embeddings: %v\n", err)
			embeddingService = nil
		} else {
			log.Println("✅ Gemini embeddings initialized successfully")
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, matching will use the fallback formula")
	}

	similarityProvider := services.NewSimilarityProvider(embeddingService, services.NewEmbeddingCache())

	// Initialize the qdrant skill index. Optional as well: suggestions fall
	// back to substring filtering.
	var skillIndex services.SkillIndexService
	skillIndex, err = services.NewSkillIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant, skill suggestions degrade to substring match: %v\n", err)
		skillIndex = nil
	} else if err := skillIndex.InitCollection(); err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant collection: %v\n", err)
		skillIndex = nil
	} else {
		log.Println("✅ Qdrant skill index initialized successfully")
	}

	// Initialize matcher and allocator
	matcherService := services.NewMatcherService(similarityProvider)
	allocatorService := services.NewAllocatorService(
		studentRepo,
		internshipRepo,
		allocationRepo,
		matcherService,
	)
	statsService := services.NewStatsService(studentRepo, internshipRepo, allocationRepo)
	log.Println("✅ Matching services initialized")

	// Initialize worker
	worker := services.NewWorker(
		runRepo,
		allocatorService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(
		userRepo,
		studentRepo,
		companyRepo,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
	)
	studentHandler := handlers.NewStudentHandler(
		studentRepo,
		feedbackRepo,
		storageService,
		resumeParser,
		cfg.Storage.MaxFileSize,
	)
	companyHandler := handlers.NewCompanyHandler(
		companyRepo,
		internshipRepo,
		studentRepo,
		matcherService,
	)
	matchHandler := handlers.NewMatchHandler(
		studentRepo,
		internshipRepo,
		allocationRepo,
		companyRepo,
		matcherService,
	)
	adminHandler := handlers.NewAdminHandler(
		statsService,
		allocatorService,
		allocationRepo,
		runRepo,
		worker,
	)
	skillHandler := handlers.NewSkillHandler(similarityProvider, skillIndex)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Internship Match API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public endpoints
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Get("/skills/suggestions", skillHandler.HandleSuggestions)

	auth := handlers.RequireAuth(cfg.Auth.JWTSecret)

	// Student endpoints
	students := api.Group("/students", auth, handlers.RequireRole(models.RoleStudent))
	students.Get("/profile", studentHandler.HandleGetProfile)
	students.Put("/profile", studentHandler.HandleUpdateProfile)
	students.Post("/resume", studentHandler.HandleUploadResume)
	students.Post("/feedback", studentHandler.HandleSubmitFeedback)
	students.Get("/matches", matchHandler.HandleStudentMatches)

	// Match preview
	api.Get("/match/preview", auth, handlers.RequireRole(models.RoleStudent), matchHandler.HandleMatchPreview)

	// Allocation status transitions
	api.Patch("/allocations/:id/status", auth, matchHandler.HandleUpdateAllocationStatus)

	// Company endpoints
	companies := api.Group("/companies", auth, handlers.RequireRole(models.RoleCompany))
	companies.Get("/profile", companyHandler.HandleGetProfile)
	companies.Put("/profile", companyHandler.HandleUpdateProfile)

	internships := api.Group("/internships", auth, handlers.RequireRole(models.RoleCompany))
	internships.Post("/", companyHandler.HandleCreateInternship)
	internships.Get("/", companyHandler.HandleListInternships)
	internships.Put("/:id", companyHandler.HandleUpdateInternship)
	internships.Delete("/:id", companyHandler.HandleDeleteInternship)

	api.Get("/candidates/:internshipId", auth, handlers.RequireRole(models.RoleCompany), companyHandler.HandleCandidates)

	// Admin endpoints
	admin := api.Group("/admin", auth, handlers.RequireRole(models.RoleAdmin))
	admin.Get("/stats", adminHandler.HandleStats)
	admin.Get("/fairness", adminHandler.HandleFairness)
	admin.Get("/audit", adminHandler.HandleAudit)
	admin.Post("/match/run", adminHandler.HandleRunMatching)
	admin.Post("/match/bulk", adminHandler.HandleEnqueueRun)
	admin.Get("/match/runs/:id", adminHandler.HandleGetRun)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Internship Match API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"GET /api/v1/students/matches",
				"GET /api/v1/match/preview",
				"GET /api/v1/candidates/:internshipId",
				"POST /api/v1/admin/match/run",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
