// Package form implements the evaluation form: field state, validation and the
// submit lifecycle against the evaluation API.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/validation"
)

const defaultFailureMessage = "Failed to evaluate interview. Please try again."

var (
	// ErrSubmitInFlight is returned by Submit while a previous submission is pending.
	ErrSubmitInFlight = errors.New("evaluation already in progress")
	// ErrInputsDisabled is returned by the setters while a submission is pending.
	ErrInputsDisabled = errors.New("form inputs are disabled while evaluating")
	// ErrResultShown is returned by Submit when a result replaced the form. Call Reset first.
	ErrResultShown = errors.New("evaluation result is shown, start a new evaluation first")
	// ErrEmptyResult is returned when the evaluator succeeded without a result.
	ErrEmptyResult = errors.New("evaluation returned no result")
	// ErrNoEvaluator is returned by Submit when the form was built without an evaluator.
	ErrNoEvaluator = errors.New("form has no evaluator")
)

// State is the user visible state of the form.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Evaluator submits a request to the evaluation API.
type Evaluator interface {
	EvaluateInterview(ctx context.Context, payload evaluation.Request) (*evaluation.Result, error)
}

// UIState is a snapshot of what the form shows.
type UIState struct {
	Loading bool
	Error   string
	Result  *evaluation.Result
}

// Form holds the fields of a pending evaluation. It is safe for concurrent use;
// at most one submission is in flight at a time.
type Form struct {
	evaluator Evaluator
	logger    *zap.Logger
	rules     []validation.Rule

	mu     sync.Mutex
	fields evaluation.Request
	state  State
	err    string
	result *evaluation.Result
}

// New builds an empty form. Submit fails with ErrNoEvaluator when evaluator is nil.
func New(evaluator Evaluator, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Form{
		evaluator: evaluator,
		logger:    logger,
		rules:     validation.FormRules(),
		fields:    evaluation.Request{EvaluateInterviewer: true},
	}
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() evaluation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) SetJobDescription(v string) error {
	return f.update(func(r *evaluation.Request) { r.JobDescription = v })
}

func (f *Form) SetTranscript(v string) error {
	return f.update(func(r *evaluation.Request) { r.InterviewTranscript = v })
}

func (f *Form) SetSeniority(v evaluation.Seniority) error {
	return f.update(func(r *evaluation.Request) { r.Seniority = v })
}

func (f *Form) SetEvaluateInterviewer(v bool) error {
	return f.update(func(r *evaluation.Request) { r.EvaluateInterviewer = v })
}

// SetFields replaces all fields at once.
func (f *Form) SetFields(req evaluation.Request) error {
	return f.update(func(r *evaluation.Request) { *r = req })
}

func (f *Form) update(apply func(*evaluation.Request)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrInputsDisabled
	}
	apply(&f.fields)
	return nil
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// InputsDisabled reports whether the inputs and the submit control are locked.
func (f *Form) InputsDisabled() bool {
	return f.State() == StateSubmitting
}

// ErrorMessage is the error text currently shown, or an empty string.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Result is the evaluation shown in place of the form, or nil.
func (f *Form) Result() *evaluation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

func (f *Form) Snapshot() UIState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return UIState{
		Loading: f.state == StateSubmitting,
		Error:   f.err,
		Result:  f.result,
	}
}

// Submit validates the fields and, when they pass, sends them to the evaluator.
// Validation failures never reach the evaluator. On failure the error text is
// kept for display and the form returns to editing with its fields untouched.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case StateDone:
		f.mu.Unlock()
		return ErrResultShown
	}

	payload := f.fields
	if err := validation.Run(f.rules, &payload, f.logger); err != nil {
		f.err = err.Error()
		f.mu.Unlock()
		return err
	}

	if f.evaluator == nil {
		f.err = defaultFailureMessage
		f.mu.Unlock()
		f.logger.Error("submitting evaluation", zap.Error(ErrNoEvaluator))
		return ErrNoEvaluator
	}

	f.state = StateSubmitting
	f.err = ""
	f.mu.Unlock()

	f.logger.Debug("submitting evaluation",
		zap.String("seniority", string(payload.Seniority)),
		zap.Bool("evaluate_interviewer", payload.EvaluateInterviewer),
	)

	result, err := f.evaluator.EvaluateInterview(ctx, payload)
	if err == nil && result == nil {
		err = ErrEmptyResult
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.err = failureMessage(err)
		f.state = StateEditing
		f.logger.Warn("evaluation failed", zap.Error(err))
		return err
	}

	f.result = result
	f.state = StateDone
	f.logger.Info("evaluation completed", zap.String("status", result.Status))
	return nil
}

// Reset discards the result and the error and returns to editing. Fields are kept.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return
	}
	f.state = StateEditing
	f.err = ""
	f.result = nil
}

func failureMessage(err error) string {
	if errors.Is(err, ErrEmptyResult) {
		return defaultFailureMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return defaultFailureMessage
}
