package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidateTopLevel(t *testing.T) {
	raw := "```json\n" + `{
		"overallScore": 82,
		"technicalScore": "78",
		"communicationScore": 90,
		"problemSolvingScore": 75,
		"skills": [{"name": "Go", "score": 85, "evidence": "explained channels"}],
		"strengths": ["clear"],
		"weaknesses": ["no k8s"],
		"riskAreas": "short tenure",
		"seniorityAlignment": "matches mid",
		"verdict": "Hire"
	}` + "\n```"

	got, err := ParseCandidate(raw)
	require.NoError(t, err)

	c := got.Candidate
	assert.Equal(t, 82.0, c.OverallScore)
	assert.Equal(t, 78.0, c.TechnicalScore)
	assert.Equal(t, "Hire", c.Recommendation)
	assert.Equal(t, []string{"no k8s"}, c.Gaps)
	assert.Equal(t, []string{"short tenure"}, c.RiskAreas)
	require.Len(t, c.Skills, 1)
	assert.Equal(t, "explained channels", c.Skills[0].Evidence)
	assert.Nil(t, got.Meta)
	assert.Equal(t, raw, got.Raw)
}

func TestParseCandidateNestedWithMeta(t *testing.T) {
	raw := `{
		"candidate": {"name": null, "overallScore": 75, "hiringRecommendation": "Hire", "gaps": ["kept"], "weaknesses": ["dropped"]},
		"meta": {"overallSummary": "solid", "confidenceLevel": "High"}
	}`

	got, err := ParseCandidate(raw)
	require.NoError(t, err)

	assert.Empty(t, got.Candidate.Name)
	assert.Equal(t, 75.0, got.Candidate.OverallScore)
	assert.Equal(t, "Hire", got.Candidate.Recommendation)
	assert.Equal(t, []string{"kept"}, got.Candidate.Gaps)
	require.NotNil(t, got.Meta)
	assert.Equal(t, "solid", got.Meta.OverallSummary)
	assert.Equal(t, "High", got.Meta.ConfidenceLevel)
}

func TestParseCandidateErrors(t *testing.T) {
	_, err := ParseCandidate("   ")
	assert.True(t, errors.Is(err, ErrEmptyResponse))

	_, err = ParseCandidate("null")
	assert.True(t, errors.Is(err, ErrEmptyResponse))

	_, err = ParseCandidate("I cannot evaluate this")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse candidate evaluation")

	_, err = ParseCandidate(`{"overallScore": "high"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode candidate evaluation")
}

func TestParseInterviewer(t *testing.T) {
	raw := `{
		"overallScore": 70,
		"questionQuality": 65,
		"communicationClarity": 80,
		"biasRisk": "low",
		"strengths": ["friendly"],
		"areasForImprovement": ["few follow-ups"],
		"recommendations": ["ignored"],
		"performanceRating": "Good",
		"summary": "decent"
	}`

	got, err := ParseInterviewer(raw)
	require.NoError(t, err)

	i := got.Interviewer
	assert.Equal(t, 70.0, i.OverallScore)
	assert.Equal(t, "low", i.BiasRisk)
	assert.Equal(t, []string{"few follow-ups"}, i.Improvements)
	assert.Equal(t, "Good", i.Effectiveness)
	assert.Equal(t, "decent", i.Summary)
}

func TestParseInterviewerNestedPrecedence(t *testing.T) {
	raw := `{"interviewer": {"overallScore": 10}, "interviewerEvaluation": {"overallScore": 70}}`

	got, err := ParseInterviewer(raw)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Interviewer.OverallScore)
}

func TestParseCandidateRecommendationPrecedence(t *testing.T) {
	raw := `{"hiringRecommendation": "Hire", "recommendation": "Reject"}`

	for i := 0; i < 100; i++ {
		got, err := ParseCandidate(raw)
		require.NoError(t, err)
		require.Equal(t, "Hire", got.Candidate.Recommendation)
	}

	got, err := ParseCandidate(`{"verdict": "", "hiringRecommendation": "Borderline", "recommendation": "Reject"}`)
	require.NoError(t, err)
	assert.Equal(t, "Borderline", got.Candidate.Recommendation)
}

func TestParseCandidateNestedPrecedence(t *testing.T) {
	raw := `{"candidate": {"overallScore": 10}, "candidateEvaluation": {"overallScore": 80}}`

	got, err := ParseCandidate(raw)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Candidate.OverallScore)
}

func TestParseCandidateSkillAliases(t *testing.T) {
	raw := `{
		"skills": [],
		"skillsEvaluation": [
			{"skill": "Go", "proficiency": 90, "comment": "wrote a worker pool"},
			{"skillName": "SQL", "score": 70, "description": "indexes"}
		],
		"areasOfImprovement": ["testing"]
	}`

	got, err := ParseCandidate(raw)
	require.NoError(t, err)

	require.Len(t, got.Candidate.Skills, 2)
	assert.Equal(t, "Go", got.Candidate.Skills[0].Name)
	assert.Equal(t, 90.0, got.Candidate.Skills[0].Score)
	assert.Equal(t, "wrote a worker pool", got.Candidate.Skills[0].Evidence)
	assert.Equal(t, "SQL", got.Candidate.Skills[1].Name)
	assert.Equal(t, "indexes", got.Candidate.Skills[1].Evidence)
	assert.Equal(t, []string{"testing"}, got.Candidate.Gaps)
}

func TestExtractJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"`{\"a\":1}`":             `{"a":1}`,
	}

	for in, want := range tests {
		assert.Equal(t, want, extractJSON(in), "input %q", in)
	}
}
