package evaluation

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizePrefersEvaluationFieldNames(t *testing.T) {
	body := []byte(`{
		"status": "success",
		"evaluatedAt": "2026-01-02T03:04:05Z",
		"candidateEvaluation": {"overallScore": 75},
		"candidate": {"overallScore": 10},
		"interviewerEvaluation": {"overallScore": 60, "biasRisk": "low"},
		"interviewer": {"overallScore": 1}
	}`)

	result, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Candidate.OverallScore != 75 {
		t.Fatalf("expected candidateEvaluation to win, got %v", result.Candidate.OverallScore)
	}
	if result.Interviewer.OverallScore != 60 || result.Interviewer.BiasRisk != "low" {
		t.Fatalf("expected interviewerEvaluation to win, got %+v", result.Interviewer)
	}
	if result.EvaluatedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected evaluatedAt %q", result.EvaluatedAt)
	}
}

func TestNormalizeFallsBackToShortNames(t *testing.T) {
	result, err := Normalize([]byte(`{"candidate": {"overallScore": 8}, "interviewer": {"summary": "ok"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Candidate == nil || result.Candidate.OverallScore != 8 {
		t.Fatalf("unexpected candidate %+v", result.Candidate)
	}
	if result.Interviewer == nil || result.Interviewer.Summary != "ok" {
		t.Fatalf("unexpected interviewer %+v", result.Interviewer)
	}
}

func TestNormalizeOmitsMissingBlocks(t *testing.T) {
	result, err := Normalize([]byte(`{"status": "success"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Candidate != nil || result.Interviewer != nil || result.Meta != nil {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestNormalizeCandidateFallbacks(t *testing.T) {
	body := []byte(`{"candidate": {
		"hiringRecommendation": "strong_hire",
		"skillsEvaluation": [
			{"skill": "Go", "proficiency": 85, "comment": "built a scheduler"},
			{"skillName": "SQL", "score": "7", "description": "joins"},
			{"name": "Kubernetes"},
			"not an object"
		],
		"skills": [],
		"weaknesses": ["distributed systems", " "],
		"areasOfImprovement": ["ignored"],
		"strengths": ["communication"],
		"riskAreas": ["devops"]
	},
	"meta": {"overallSummary": "Solid engineer", "seniorityMatch": "Aligns", "confidenceLevel": "High"}}`)

	result, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := result.Candidate
	if c.Recommendation != "strong_hire" {
		t.Fatalf("unexpected recommendation %q", c.Recommendation)
	}

	wantSkills := []Skill{
		{Name: "Go", Score: 85, Evidence: "built a scheduler"},
		{Name: "SQL", Score: 7, Evidence: "joins"},
		{Name: "Kubernetes"},
	}
	if !reflect.DeepEqual(c.Skills, wantSkills) {
		t.Fatalf("unexpected skills:\n got %+v\nwant %+v", c.Skills, wantSkills)
	}

	if !reflect.DeepEqual(c.Gaps, []string{"distributed systems"}) {
		t.Fatalf("unexpected gaps %+v", c.Gaps)
	}

	if c.Summary != "Solid engineer" || c.SeniorityAlignment != "Aligns" {
		t.Fatalf("expected meta fallbacks, got summary=%q alignment=%q", c.Summary, c.SeniorityAlignment)
	}

	if result.Meta == nil || result.Meta.ConfidenceLevel != "High" {
		t.Fatalf("unexpected meta %+v", result.Meta)
	}
}

func TestNormalizeVerdictBeatsHiringRecommendation(t *testing.T) {
	result, err := Normalize([]byte(`{"candidate": {"verdict": "Hire", "hiringRecommendation": "Reject", "summary": "own"}, "meta": {"overallSummary": "meta"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Candidate.Recommendation != "Hire" {
		t.Fatalf("unexpected recommendation %q", result.Candidate.Recommendation)
	}
	if result.Candidate.Summary != "own" {
		t.Fatalf("candidate summary must win over meta, got %q", result.Candidate.Summary)
	}
}

func TestNormalizeRecommendationFallback(t *testing.T) {
	result, err := Normalize([]byte(`{"candidate": {"hiringRecommendation": "", "recommendation": "Borderline"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Candidate.Recommendation != "Borderline" {
		t.Fatalf("unexpected recommendation %q", result.Candidate.Recommendation)
	}
}

func TestNormalizeInterviewerFallbacks(t *testing.T) {
	body := []byte(`{"interviewerEvaluation": {
		"overallScore": 70,
		"questionQuality": 80,
		"communicationClarity": "9",
		"performanceRating": "Effective",
		"areasForImprovement": ["dig deeper"],
		"recommendations": ["ignored"],
		"coreJdCoverage": "Most JD topics covered",
		"followUpNeeded": true,
		"followUpQuestions": ["How would you shard it?"]
	}}`)

	result, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i := result.Interviewer
	if i.Effectiveness != "Effective" {
		t.Fatalf("unexpected effectiveness %q", i.Effectiveness)
	}
	if !reflect.DeepEqual(i.Improvements, []string{"dig deeper"}) {
		t.Fatalf("unexpected improvements %+v", i.Improvements)
	}
	if i.CommunicationClarity != 9 || i.QuestionQuality != 80 {
		t.Fatalf("unexpected scores %+v", i)
	}
	if !i.FollowUpNeeded || len(i.FollowUpQuestions) != 1 {
		t.Fatalf("unexpected follow-up fields %+v", i)
	}
}

func TestNormalizeRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`not json`, `[]`, `"text"`, ``} {
		if _, err := Normalize([]byte(body)); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected malformed error for %q, got %v", body, err)
		}
	}
}
