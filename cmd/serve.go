package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/ai"
	"github.com/spigell/interview-evaluator/internal/ai/gemini"
	"github.com/spigell/interview-evaluator/internal/ai/mock"
	"github.com/spigell/interview-evaluator/internal/secrets"
	"github.com/spigell/interview-evaluator/internal/server"
)

const (
	providerMock   = "mock"
	providerGemini = "gemini"

	geminiKeyEnv    = "GEMINI_API_KEY"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation api locally",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	evaluator, err := newEvaluator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating an evaluator", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or ai.gemini.api-key-file, or use ai.provider: mock"),
		)
	}

	srv, err := server.New(evaluator, server.Config{
		Listen:            config.Server.Listen,
		RateLimitInterval: config.Server.RateLimitInterval,
		Version:           version,
	}, logger)
	if err != nil {
		logger.Fatal("creating a server", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("serving the evaluation api", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			os.Exit(1)
		}
	}
}

func newEvaluator(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Evaluator, error) {
	switch provider := strings.ToLower(strings.TrimSpace(config.Provider)); provider {
	case "", providerMock:
		return mock.New(logger, mock.DefaultLatency), nil
	case providerGemini:
		gc := config.Gemini
		if gc == nil {
			gc = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gc.APIKey,
			File:  gc.APIKeyFile,
			Env:   geminiKeyEnv,
		})
		if err != nil {
			return nil, err
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, gc.Model)
		if err != nil {
			return nil, err
		}

		return gemini.NewEvaluator(generator, logger, gc.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q: use %q or %q", provider, providerMock, providerGemini)
	}
}
