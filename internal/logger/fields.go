package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the evaluator backend name.
	FieldProvider = "evaluator_provider"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "evaluator_model"
	// FieldRequestID is the structured log field key carrying the X-Request-ID header value.
	FieldRequestID = "request_id"
	// FieldEndpoint is the structured log field key for the called API endpoint.
	FieldEndpoint = "endpoint"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields. Entries with an empty
// key or value are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// EvaluatorFields describes the backend that produces evaluations.
func EvaluatorFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// RequestFields describes a single outgoing or incoming API call.
func RequestFields(requestID, endpoint string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRequestID, Value: requestID},
		StringField{Key: FieldEndpoint, Value: endpoint},
	)
}

// WithEvaluator attaches the evaluator fields to the logger.
func WithEvaluator(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, EvaluatorFields(provider, model)...)
}
