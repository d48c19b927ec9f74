package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	requestID := c.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDHeader, requestID)

	log := logger.WithFields(s.logger, logger.RequestFields(requestID, c.Path())...)
	c.Locals(loggerKey, log)

	start := time.Now()
	if err := c.Next(); err != nil {
		// Write the error response here so the logged status is final.
		if herr := s.handleError(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	log.Info("request served",
		zap.String("method", c.Method()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)

	return nil
}

func (s *Server) log(c *fiber.Ctx) *zap.Logger {
	if log, ok := c.Locals(loggerKey).(*zap.Logger); ok {
		return log
	}
	return s.logger
}
