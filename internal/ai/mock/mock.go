// Package mock is a deterministic evaluator that never calls a model.
package mock

import (
	"context"
	"time"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/ai"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/logger"
)

const (
	Provider = "mock"

	// DefaultLatency imitates a model round trip.
	DefaultLatency = 100 * time.Millisecond
)

//go:embed candidate.json
var candidateResponse string

//go:embed interviewer.json
var interviewerResponse string

type Evaluator struct {
	logger  *zap.Logger
	latency time.Duration
}

func New(log *zap.Logger, latency time.Duration) *Evaluator {
	return &Evaluator{
		logger:  logger.WithEvaluator(log, Provider, Provider),
		latency: latency,
	}
}

func (e *Evaluator) EvaluateCandidate(ctx context.Context, _ evaluation.Request) (*ai.CandidateAssessment, error) {
	e.logger.Info("evaluating candidate", zap.String("mode", "mock"))

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	return ai.ParseCandidate(candidateResponse)
}

func (e *Evaluator) EvaluateInterviewer(ctx context.Context, _ evaluation.Request) (*ai.InterviewerAssessment, error) {
	e.logger.Info("evaluating interviewer", zap.String("mode", "mock"))

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	return ai.ParseInterviewer(interviewerResponse)
}

func (e *Evaluator) Provider() string { return Provider }

func (e *Evaluator) Model() string { return Provider }

func (e *Evaluator) wait(ctx context.Context) error {
	if e.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(e.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
