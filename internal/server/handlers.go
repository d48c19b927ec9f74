package server

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/ai"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/validation"
)

const (
	statusError = "error"

	msgRateLimited = "Rate limit exceeded. Please wait a few seconds between evaluations."
	msgInvalidJSON = "Invalid JSON format or missing required fields"
	msgInternal    = "Internal server error: "
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleEvaluateFull(c *fiber.Ctx) error {
	s.log(c).Info("received full evaluation request")

	req, err := s.parseRequest(c)
	if err != nil {
		return err
	}

	report, err := ai.EvaluateFull(c.UserContext(), s.evaluator, *req, s.log(c))
	if err != nil {
		return internalError(err)
	}

	return c.JSON(report)
}

func (s *Server) handleEvaluateCandidate(c *fiber.Ctx) error {
	s.log(c).Info("received candidate evaluation request")

	req, err := s.parseRequest(c)
	if err != nil {
		return err
	}
	// The candidate endpoint never evaluates the interviewer.
	req.EvaluateInterviewer = false

	report, err := ai.EvaluateCandidate(c.UserContext(), s.evaluator, *req, s.log(c))
	if err != nil {
		return internalError(err)
	}

	return c.JSON(report)
}

// parseRequest applies the rate limit, decodes and validates the body.
func (s *Server) parseRequest(c *fiber.Ctx) (*evaluation.Request, error) {
	if !s.limiter.Allow() {
		return nil, fiber.NewError(fiber.StatusTooManyRequests, msgRateLimited)
	}

	var req evaluation.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.log(c).Debug("invalid request body", zap.Error(err))
		return nil, fiber.NewError(fiber.StatusBadRequest, msgInvalidJSON)
	}

	if err := validation.Run(s.rules, &req, s.log(c)); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	req.Seniority = evaluation.Seniority(strings.ToLower(strings.TrimSpace(string(req.Seniority))))

	s.log(c).Debug("request validated",
		zap.String("seniority", string(req.Seniority)),
		zap.Bool("evaluate_interviewer", req.EvaluateInterviewer),
	)

	return &req, nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "UP",
		"components": fiber.Map{
			"api": fiber.Map{
				"status": "UP",
				"details": fiber.Map{
					"service": appName,
					"version": s.version,
				},
			},
			"ai": fiber.Map{
				"status": "UP",
				"details": fiber.Map{
					"service":  "AI/LLM",
					"provider": s.evaluator.Provider(),
					"model":    s.evaluator.Model(),
				},
			},
		},
	})
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgInternal + err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	fields := []zap.Field{zap.Int("status", code), zap.String("message", message)}
	if code >= fiber.StatusInternalServerError {
		s.log(c).Error("error in evaluation endpoint", append(fields, zap.Error(err))...)
	} else {
		s.log(c).Warn("request rejected", fields...)
	}

	return c.Status(code).JSON(ErrorResponse{
		Status:    statusError,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func internalError(err error) error {
	return fiber.NewError(fiber.StatusInternalServerError, msgInternal+err.Error())
}
