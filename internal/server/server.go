// Package server exposes evaluators over the HTTP API the evaluation client talks to.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/ai"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/validation"
)

const (
	DefaultListen            = ":8080"
	DefaultRateLimitInterval = 5 * time.Second

	appName        = "Interview Evaluation API"
	defaultTimeout = 2 * time.Minute
)

type Config struct {
	Listen string
	// RateLimitInterval is the minimal time between two evaluations. Zero disables the limit.
	RateLimitInterval time.Duration
	Version           string
}

type Server struct {
	app       *fiber.App
	evaluator ai.Evaluator
	logger    *zap.Logger
	limiter   *rateLimiter
	rules     []validation.Rule
	listen    string
	version   string
}

func New(evaluator ai.Evaluator, cfg Config, logger *zap.Logger) (*Server, error) {
	if evaluator == nil {
		return nil, errors.New("evaluator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	s := &Server{
		evaluator: evaluator,
		logger:    logger,
		limiter:   newRateLimiter(cfg.RateLimitInterval),
		rules:     validation.APIRules(),
		listen:    cfg.Listen,
		version:   cfg.Version,
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		ReadTimeout:           defaultTimeout,
		WriteTimeout:          defaultTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(s.requestLogger)

	app.Get(evaluation.HealthPath, s.handleHealth)

	api := app.Group("/api/v1")
	api.Post("/evaluate", s.handleEvaluateCandidate)
	api.Post("/evaluate/full", s.handleEvaluateFull)

	s.app = app

	return s, nil
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API until Shutdown is called.
func (s *Server) Listen() error {
	s.logger.Info("starting evaluation api",
		zap.String("listen", s.listen),
		zap.String("provider", s.evaluator.Provider()),
		zap.String("model", s.evaluator.Model()),
	)
	return s.app.Listen(s.listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down evaluation api")
	return s.app.ShutdownWithContext(ctx)
}
