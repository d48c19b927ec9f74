// Package ai runs interview evaluations against a language model backend.
package ai

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

// Evaluator produces the candidate and interviewer assessments of an interview.
type Evaluator interface {
	EvaluateCandidate(ctx context.Context, req evaluation.Request) (*CandidateAssessment, error)
	EvaluateInterviewer(ctx context.Context, req evaluation.Request) (*InterviewerAssessment, error)
	Provider() string
	Model() string
}

type CandidateAssessment struct {
	Candidate *evaluation.Candidate
	Meta      *evaluation.Meta
	Raw       string
}

type InterviewerAssessment struct {
	Interviewer *evaluation.Interviewer
	Raw         string
}

// CandidateReportType is the type of a candidate-only report.
const CandidateReportType = "candidate"

var now = time.Now

// EvaluateFull evaluates the candidate and, when req.EvaluateInterviewer is set,
// the interviewer. Both evaluations run concurrently; the first failure cancels
// the other one. When both fail the candidate error is returned.
func EvaluateFull(ctx context.Context, evaluator Evaluator, req evaluation.Request, logger *zap.Logger) (*evaluation.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("evaluating interview",
		zap.String("seniority", string(req.Seniority)),
		zap.Bool("evaluate_interviewer", req.EvaluateInterviewer),
	)

	var (
		candidate      *CandidateAssessment
		interviewer    *InterviewerAssessment
		candidateErr   error
		interviewerErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		candidate, candidateErr = evaluator.EvaluateCandidate(gctx, req)
		return candidateErr
	})

	if req.EvaluateInterviewer {
		g.Go(func() error {
			interviewer, interviewerErr = evaluator.EvaluateInterviewer(gctx, req)
			return interviewerErr
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fullError(ctx, candidateErr, interviewerErr)
	}

	report := &evaluation.Report{
		Status:      evaluation.StatusSuccess,
		EvaluatedAt: timestamp(),
	}

	if candidate != nil {
		report.CandidateEvaluation = candidate.Candidate
		report.Meta = candidate.Meta
	}
	if interviewer != nil {
		report.InterviewerEvaluation = interviewer.Interviewer
	}

	logger.Info("interview evaluated", zap.Bool("has_interviewer", report.InterviewerEvaluation != nil))

	return report, nil
}

// EvaluateCandidate evaluates only the candidate.
func EvaluateCandidate(ctx context.Context, evaluator Evaluator, req evaluation.Request, logger *zap.Logger) (*evaluation.CandidateReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("evaluating candidate", zap.String("seniority", string(req.Seniority)))

	assessment, err := evaluator.EvaluateCandidate(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate candidate")
	}

	return &evaluation.CandidateReport{
		Status:      evaluation.StatusSuccess,
		Type:        CandidateReportType,
		Candidate:   assessment.Candidate,
		EvaluatedAt: timestamp(),
	}, nil
}

// fullError reports the candidate failure first. A candidate evaluation that
// was only cancelled because the interviewer evaluation failed yields the
// interviewer error instead.
func fullError(ctx context.Context, candidateErr, interviewerErr error) error {
	cancelledBySibling := interviewerErr != nil && ctx.Err() == nil && errors.Is(candidateErr, context.Canceled)
	if candidateErr != nil && !cancelledBySibling {
		return errors.Wrap(candidateErr, "evaluate candidate")
	}
	return errors.Wrap(interviewerErr, "evaluate interviewer")
}

func timestamp() string {
	return now().UTC().Format(time.RFC3339)
}
