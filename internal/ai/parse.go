package ai

import (
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

// ErrEmptyResponse is returned when the model answered with nothing to parse.
var ErrEmptyResponse = errors.New("evaluator returned empty response")

// ParseCandidate decodes a model answer into a candidate assessment. The
// assessment may be the top-level object or nested under one of
// evaluation.CandidatePaths; a top-level "meta" object is returned alongside it.
// Alternative field names are resolved with the precedence the client uses.
func ParseCandidate(raw string) (*CandidateAssessment, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse candidate evaluation")
	}

	body := nestedBlock(data, evaluation.CandidatePaths)
	canonicalize(body, evaluation.RecommendationPaths)
	canonicalize(body, evaluation.GapsPaths)
	canonicalize(body, evaluation.SkillsPaths)
	if skills, ok := body[evaluation.SkillsPaths[0]].([]any); ok {
		for _, item := range skills {
			if skill, ok := item.(map[string]any); ok {
				canonicalize(skill, evaluation.SkillNamePaths)
				canonicalize(skill, evaluation.SkillScorePaths)
				canonicalize(skill, evaluation.SkillEvidencePaths)
			}
		}
	}

	candidate := &evaluation.Candidate{}
	if err := decode(body, candidate); err != nil {
		return nil, errors.Wrap(err, "decode candidate evaluation")
	}

	var meta *evaluation.Meta
	if m, ok := data["meta"].(map[string]any); ok {
		meta = &evaluation.Meta{}
		if err := decode(m, meta); err != nil {
			return nil, errors.Wrap(err, "decode evaluation meta")
		}
	}

	return &CandidateAssessment{Candidate: candidate, Meta: meta, Raw: raw}, nil
}

// ParseInterviewer decodes a model answer into an interviewer assessment.
func ParseInterviewer(raw string) (*InterviewerAssessment, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse interviewer evaluation")
	}

	body := nestedBlock(data, evaluation.InterviewerPaths)
	canonicalize(body, evaluation.EffectivenessPaths)
	canonicalize(body, evaluation.ImprovementsPaths)

	interviewer := &evaluation.Interviewer{}
	if err := decode(body, interviewer); err != nil {
		return nil, errors.Wrap(err, "decode interviewer evaluation")
	}

	return &InterviewerAssessment{Interviewer: interviewer, Raw: raw}, nil
}

func decodeObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrEmptyResponse
	}

	return data, nil
}

func decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// nestedBlock returns the first object found under keys, or data itself when
// the assessment is not nested.
func nestedBlock(data map[string]any, keys []string) map[string]any {
	for _, key := range keys {
		if nested, ok := data[key].(map[string]any); ok {
			return nested
		}
	}
	return data
}

// canonicalize stores the first present value of paths under paths[0] and
// drops the alternative names.
func canonicalize(data map[string]any, paths []string) {
	if len(paths) == 0 {
		return
	}

	for _, path := range paths {
		if value, ok := data[path]; ok && present(value) {
			data[paths[0]] = value
			break
		}
	}

	for _, path := range paths[1:] {
		delete(data, path)
	}
}

// present treats null, blank strings, zero numbers, false and empty lists as absent.
func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	case bool:
		return v
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// extractJSON strips markdown code fences models wrap their answers in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
