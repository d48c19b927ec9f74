package gemini

import (
	"context"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/ai"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed candidate_prompt.md
var candidatePromptTemplate string

//go:embed interviewer_prompt.md
var interviewerPromptTemplate string

const defaultMaxLogLength = 200

// Evaluator asks Gemini to assess the candidate and the interviewer.
type Evaluator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewEvaluator(generator contentGenerator, log *zap.Logger, maxLogLength int) *Evaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		generator: generator,
		logger:    logger.WithEvaluator(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (e *Evaluator) EvaluateCandidate(ctx context.Context, req evaluation.Request) (*ai.CandidateAssessment, error) {
	prompt := buildPrompt(candidatePromptTemplate, req)

	raw, err := e.generate(ctx, "candidate", prompt)
	if err != nil {
		return nil, err
	}

	assessment, err := ai.ParseCandidate(raw)
	if err != nil {
		e.logger.Error("failed to parse candidate evaluation", zap.String("response_preview", logger.Preview(raw, e.maxLogLen)))
		return nil, errors.Wrap(err, "failed to parse candidate evaluation report")
	}

	return assessment, nil
}

func (e *Evaluator) EvaluateInterviewer(ctx context.Context, req evaluation.Request) (*ai.InterviewerAssessment, error) {
	prompt := buildPrompt(interviewerPromptTemplate, req)

	raw, err := e.generate(ctx, "interviewer", prompt)
	if err != nil {
		return nil, err
	}

	assessment, err := ai.ParseInterviewer(raw)
	if err != nil {
		e.logger.Error("failed to parse interviewer evaluation", zap.String("response_preview", logger.Preview(raw, e.maxLogLen)))
		return nil, errors.Wrap(err, "failed to parse interviewer evaluation report")
	}

	return assessment, nil
}

func (e *Evaluator) Provider() string { return Provider }

func (e *Evaluator) Model() string { return e.generator.Model() }

func (e *Evaluator) generate(ctx context.Context, subject, prompt string) (string, error) {
	e.logger.Debug("gemini generate content request",
		zap.String("subject", subject),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Preview(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", errors.Wrapf(err, "gemini %s evaluation", subject)
	}

	e.logger.Debug("gemini generate content response",
		zap.String("subject", subject),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Preview(raw, e.maxLogLen)),
	)

	return raw, nil
}

func buildPrompt(template string, req evaluation.Request) string {
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{JOB_DESCRIPTION}}\n\nSeniority: {{SENIORITY_LEVEL}}\n\nTranscript:\n{{INTERVIEW_TRANSCRIPT}}\n\nJSON Response:"
	}

	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(req.JobDescription),
		"{{SENIORITY_LEVEL}}", strings.ToLower(strings.TrimSpace(string(req.Seniority))),
		"{{INTERVIEW_TRANSCRIPT}}", ai.SanitizeTranscript(req.InterviewTranscript),
	).Replace(template)
}
