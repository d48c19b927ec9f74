// Package validation holds the ordered rule sets applied to evaluation requests
// before they are evaluated.
package validation

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

// Rule is a single check applied to a request.
type Rule interface {
	Name() string
	Check(req *evaluation.Request) error
}

// Error is returned by Run. Its text is the user-facing message of the failing rule.
type Error struct {
	Rule    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Run applies rules in order and stops at the first failure.
func Run(rules []Rule, req *evaluation.Request, logger *zap.Logger) error {
	for _, rule := range rules {
		err := rule.Check(req)
		if err == nil {
			continue
		}

		if logger != nil {
			logger.Debug("validation rule failed",
				zap.String("rule", rule.Name()),
				zap.String("message", err.Error()),
			)
		}

		return &Error{Rule: rule.Name(), Message: err.Error()}
	}

	return nil
}

// Names lists the rule names in evaluation order.
func Names(rules []Rule) []string {
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name())
	}
	return names
}

// FormRules are the checks the interactive form runs before submitting.
func FormRules() []Rule {
	return []Rule{
		NewRequiredText("job_description", jobDescription, "Please enter a job description"),
		NewRequiredText("interview_transcript", transcript, "Please enter an interview transcript"),
		NewSeniorityRequired("Please select a seniority level"),
	}
}

// APIRules are the checks the evaluation API runs on incoming requests.
func APIRules() []Rule {
	return []Rule{
		NewRequiredText("job_description", jobDescription, "jobDescription is required"),
		NewRequiredText("interview_transcript", transcript, "interviewTranscript is required"),
		NewSeniorityRequired("seniority is required"),
		NewSeniorityKnown("seniority must be 'junior', 'mid', or 'senior'"),
	}
}

func jobDescription(req *evaluation.Request) string { return req.JobDescription }

func transcript(req *evaluation.Request) string { return req.InterviewTranscript }

func blank(s string) bool { return strings.TrimSpace(s) == "" }
