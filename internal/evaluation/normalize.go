package evaluation

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// The evaluation API has shipped several field names for the same attribute.
// Each list below is tried in order and the first present, non-empty value wins;
// the first entry is the canonical name. Evaluator output is canonicalized with
// the same lists.
var (
	CandidatePaths   = []string{"candidateEvaluation", "candidate"}
	InterviewerPaths = []string{"interviewerEvaluation", "interviewer"}

	RecommendationPaths = []string{"verdict", "hiringRecommendation", "recommendation"}
	SkillsPaths         = []string{"skills", "skillsEvaluation"}
	GapsPaths           = []string{"gaps", "weaknesses", "areasOfImprovement"}

	SkillNamePaths     = []string{"name", "skill", "skillName"}
	SkillScorePaths    = []string{"score", "proficiency"}
	SkillEvidencePaths = []string{"evidence", "comment", "description"}

	EffectivenessPaths = []string{"effectiveness", "performanceRating"}
	ImprovementsPaths  = []string{"improvements", "areasForImprovement", "recommendations"}
)

// Normalize maps a raw evaluation response body onto the canonical Result.
// It is the only place that knows about alternative field names.
func Normalize(data []byte) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedResponse
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedResponse, root.Type)
	}

	meta := root.Get("meta")
	result := &Result{
		Status:      root.Get("status").String(),
		EvaluatedAt: root.Get("evaluatedAt").String(),
		Meta:        normalizeMeta(meta),
	}

	if block := first(root, CandidatePaths...); block.IsObject() {
		result.Candidate = normalizeCandidate(block, meta)
	}

	if block := first(root, InterviewerPaths...); block.IsObject() {
		result.Interviewer = normalizeInterviewer(block)
	}

	return result, nil
}

func normalizeCandidate(block, meta gjson.Result) *Candidate {
	candidate := &Candidate{
		Name:                text(block.Get("name")),
		OverallScore:        block.Get("overallScore").Float(),
		TechnicalScore:      block.Get("technicalScore").Float(),
		CommunicationScore:  block.Get("communicationScore").Float(),
		ProblemSolvingScore: block.Get("problemSolvingScore").Float(),
		Recommendation:      text(first(block, RecommendationPaths...)),
		Summary:             text(block.Get("summary")),
		SeniorityAlignment:  text(block.Get("seniorityAlignment")),
		JDFit:               text(block.Get("jdFit")),
		Strengths:           list(block.Get("strengths")),
		Gaps:                list(first(block, GapsPaths...)),
		RiskAreas:           list(block.Get("riskAreas")),
	}

	if candidate.Summary == "" {
		candidate.Summary = text(meta.Get("overallSummary"))
	}
	if candidate.SeniorityAlignment == "" {
		candidate.SeniorityAlignment = text(meta.Get("seniorityMatch"))
	}

	for _, item := range first(block, SkillsPaths...).Array() {
		if !item.IsObject() {
			continue
		}
		candidate.Skills = append(candidate.Skills, Skill{
			Name:     text(first(item, SkillNamePaths...)),
			Score:    first(item, SkillScorePaths...).Float(),
			Evidence: text(first(item, SkillEvidencePaths...)),
		})
	}

	return candidate
}

func normalizeInterviewer(block gjson.Result) *Interviewer {
	return &Interviewer{
		OverallScore:         block.Get("overallScore").Float(),
		QuestionQuality:      block.Get("questionQuality").Float(),
		CommunicationClarity: block.Get("communicationClarity").Float(),
		Effectiveness:        text(first(block, EffectivenessPaths...)),
		BiasRisk:             text(block.Get("biasRisk")),
		Summary:              text(block.Get("summary")),
		CoreJDCoverage:       text(block.Get("coreJdCoverage")),
		Strengths:            list(block.Get("strengths")),
		Improvements:         list(first(block, ImprovementsPaths...)),
		FollowUpNeeded:       block.Get("followUpNeeded").Bool(),
		FollowUpQuestions:    list(block.Get("followUpQuestions")),
	}
}

func normalizeMeta(meta gjson.Result) *Meta {
	if !meta.IsObject() {
		return nil
	}

	m := &Meta{
		OverallSummary:  text(meta.Get("overallSummary")),
		SeniorityMatch:  text(meta.Get("seniorityMatch")),
		ConfidenceLevel: text(meta.Get("confidenceLevel")),
	}
	if *m == (Meta{}) {
		return nil
	}
	return m
}

// first returns the first of paths holding a present value. Empty strings,
// zero numbers, false, null and empty arrays count as absent.
func first(obj gjson.Result, paths ...string) gjson.Result {
	for _, path := range paths {
		if value := obj.Get(path); present(value) {
			return value
		}
	}
	return gjson.Result{}
}

func present(value gjson.Result) bool {
	switch value.Type {
	case gjson.String:
		return strings.TrimSpace(value.Str) != ""
	case gjson.Number:
		return value.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		if value.IsArray() {
			return len(value.Array()) > 0
		}
		return true
	default:
		return false
	}
}

func text(value gjson.Result) string {
	if value.Type != gjson.String && value.Type != gjson.Number {
		return ""
	}
	return strings.TrimSpace(value.String())
}

func list(value gjson.Result) []string {
	if !value.IsArray() {
		return nil
	}

	var items []string
	for _, item := range value.Array() {
		s := strings.TrimSpace(item.String())
		if s == "" {
			continue
		}
		items = append(items, s)
	}
	return items
}
