package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"prepdeck/internal/adapter"
	"prepdeck/internal/adapter/evaluator"
	"prepdeck/internal/adapter/questiongen"
	"prepdeck/internal/cache"
	"prepdeck/internal/config"
	"prepdeck/internal/database"
	"prepdeck/internal/domain"
	"prepdeck/internal/handler"
	"prepdeck/internal/logger"
	"prepdeck/internal/middleware"
	"prepdeck/internal/repository"
	"prepdeck/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// requestLogger logs every request with method, path, status and latency.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Get().Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Initialize(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Get()

	var questionGenerator domain.QuestionGenerator
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.LLM.ServerURL),
		ollama.WithModel(cfg.LLM.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}),
	)
	if err != nil {
		// Question generation falls back to templates when the LLM is unavailable.
		log.Warn("failed to initialize LLM client, using template fallback", zap.Error(err))
		questionGenerator = questiongen.NewLLMGenerator(nil, cfg.LLM.Timeout)
	} else {
		questionGenerator = questiongen.NewLLMGenerator(llm, cfg.LLM.Timeout)
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	userRepo := repository.NewSQLXUserRepository(db)
	sessionRepo := repository.NewSQLXSessionRepository(db)
	statsRepo := repository.NewSQLXStatsRepository(db)
	bankRepo := repository.NewSQLXBankRepository(db)
	resourceRepo := repository.NewSQLXResourceRepository(db)

	answerEvaluator := evaluator.NewHeuristicEvaluator()

	// Services
	authService, err := service.NewAuthService(userRepo, cfg)
	if err != nil {
		log.Fatal("failed to create auth service", zap.Error(err))
	}
	statsService := service.NewStatsService(statsRepo, cacheAdapter)
	sessionService := service.NewSessionService(sessionRepo, questionGenerator, answerEvaluator, statsService, cfg.Session)
	analyticsService := service.NewAnalyticsService(sessionRepo, statsRepo, cacheAdapter, cfg.Cache)
	bankService := service.NewBankService(bankRepo)
	resourceService := service.NewResourceService(resourceRepo)
	userService := service.NewUserService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	interviewHandler := handler.NewInterviewHandler(sessionService, analyticsService, resourceService)
	bankHandler := handler.NewBankHandler(bankService)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Get("/google/login", authHandler.GoogleLogin)
	auth.Get("/google/callback", authHandler.GoogleCallback)

	users := api.Group("/users", middleware.Protected(authService))
	users.Get("/me", userHandler.GetMyProfile)

	// The resource catalog needs no login. Registered before the protected
	// interview group so it is matched ahead of the auth middleware.
	api.Get("/interviews/resources", interviewHandler.GetResources)

	interviews := api.Group("/interviews", middleware.Protected(authService))
	interviews.Post("/", interviewHandler.CreateSession)
	interviews.Post("/evaluate", interviewHandler.SubmitAnswer)
	interviews.Get("/my-sessions", interviewHandler.GetMySessions)
	interviews.Get("/analytics", interviewHandler.GetAnalytics)
	interviews.Get("/predictions", interviewHandler.GetPredictions)
	interviews.Get("/leaderboards", interviewHandler.GetLeaderboard)
	// Registered last so the static routes above win.
	interviews.Get("/:id", interviewHandler.GetSessionByID)

	banks := api.Group("/banks", middleware.Protected(authService))
	banks.Post("/", bankHandler.Create)
	banks.Get("/my", bankHandler.GetMine)
	banks.Get("/public", bankHandler.GetPublic)
	banks.Post("/quick-save", bankHandler.QuickSave)
	banks.Get("/:bankId", bankHandler.GetByID)
	banks.Patch("/:bankId/visibility", bankHandler.UpdateVisibility)
	banks.Post("/:bankId/questions", bankHandler.AddQuestion)
	banks.Delete("/:bankId", bankHandler.Delete)

	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		log.Info("starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("server exited")
}
