package validation

import (
	"errors"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

type requiredTextRule struct {
	name    string
	field   func(*evaluation.Request) string
	message string
}

// NewRequiredText creates a rule that fails when the selected field is blank.
func NewRequiredText(name string, field func(*evaluation.Request) string, message string) Rule {
	return &requiredTextRule{name: name, field: field, message: message}
}

func (r *requiredTextRule) Name() string { return r.name }

func (r *requiredTextRule) Check(req *evaluation.Request) error {
	if req == nil || blank(r.field(req)) {
		return errors.New(r.message)
	}
	return nil
}

type seniorityRequiredRule struct {
	message string
}

// NewSeniorityRequired creates a rule that fails when no seniority is selected.
func NewSeniorityRequired(message string) Rule {
	return &seniorityRequiredRule{message: message}
}

func (r *seniorityRequiredRule) Name() string { return "seniority_required" }

func (r *seniorityRequiredRule) Check(req *evaluation.Request) error {
	if req == nil || blank(string(req.Seniority)) {
		return errors.New(r.message)
	}
	return nil
}

type seniorityKnownRule struct {
	message string
}

// NewSeniorityKnown creates a rule that fails on levels other than junior, mid and senior.
func NewSeniorityKnown(message string) Rule {
	return &seniorityKnownRule{message: message}
}

func (r *seniorityKnownRule) Name() string { return "seniority_known" }

func (r *seniorityKnownRule) Check(req *evaluation.Request) error {
	if req == nil || !req.Seniority.Valid() {
		return errors.New(r.message)
	}
	return nil
}
