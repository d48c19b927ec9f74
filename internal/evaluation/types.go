package evaluation

import "strings"

// Seniority is the experience level the candidate is evaluated against.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Seniorities returns the supported levels from least to most experienced.
func Seniorities() []Seniority {
	return []Seniority{SeniorityJunior, SeniorityMid, SenioritySenior}
}

// Valid reports whether s is one of the supported levels, ignoring case.
func (s Seniority) Valid() bool {
	switch Seniority(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	default:
		return false
	}
}

// Label is the human readable name shown in selectors.
func (s Seniority) Label() string {
	switch s {
	case SeniorityJunior:
		return "Junior (0–2 years)"
	case SeniorityMid:
		return "Mid (2–5 years)"
	case SenioritySenior:
		return "Senior (5–10 years)"
	default:
		return string(s)
	}
}

// Request is the payload of POST /api/v1/evaluate/full.
type Request struct {
	JobDescription      string    `json:"jobDescription"`
	InterviewTranscript string    `json:"interviewTranscript"`
	Seniority           Seniority `json:"seniority"`
	EvaluateInterviewer bool      `json:"evaluateInterviewer"`
}

// Result is the canonical shape of an evaluation response.
// It is produced by Normalize regardless of which field names the server used.
type Result struct {
	Candidate   *Candidate   `json:"candidate,omitempty"`
	Interviewer *Interviewer `json:"interviewer,omitempty"`
	Meta        *Meta        `json:"meta,omitempty"`
	Status      string       `json:"status,omitempty"`
	EvaluatedAt string       `json:"evaluatedAt,omitempty"`
}

// Candidate is the assessment of the interviewee. Scores are on either a 0-10
// or a 0-100 scale; zero means the score is absent.
type Candidate struct {
	Name                string   `json:"name,omitempty"`
	OverallScore        float64  `json:"overallScore,omitempty"`
	TechnicalScore      float64  `json:"technicalScore,omitempty"`
	CommunicationScore  float64  `json:"communicationScore,omitempty"`
	ProblemSolvingScore float64  `json:"problemSolvingScore,omitempty"`
	Recommendation      string   `json:"verdict,omitempty"`
	Summary             string   `json:"summary,omitempty"`
	SeniorityAlignment  string   `json:"seniorityAlignment,omitempty"`
	JDFit               string   `json:"jdFit,omitempty"`
	Skills              []Skill  `json:"skills,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	Gaps                []string `json:"gaps,omitempty"`
	RiskAreas           []string `json:"riskAreas,omitempty"`
}

// Skill is a single row of the skills breakdown.
type Skill struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Evidence string  `json:"evidence,omitempty"`
}

// Interviewer is the assessment of how the interview was conducted.
type Interviewer struct {
	OverallScore         float64  `json:"overallScore,omitempty"`
	QuestionQuality      float64  `json:"questionQuality,omitempty"`
	CommunicationClarity float64  `json:"communicationClarity,omitempty"`
	Effectiveness        string   `json:"effectiveness,omitempty"`
	BiasRisk             string   `json:"biasRisk,omitempty"`
	Summary              string   `json:"summary,omitempty"`
	CoreJDCoverage       string   `json:"coreJdCoverage,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	Improvements         []string `json:"improvements,omitempty"`
	FollowUpNeeded       bool     `json:"followUpNeeded,omitempty"`
	FollowUpQuestions    []string `json:"followUpQuestions,omitempty"`
}

// Meta carries the evaluator's overall remarks.
type Meta struct {
	OverallSummary  string `json:"overallSummary,omitempty"`
	SeniorityMatch  string `json:"seniorityMatch,omitempty"`
	ConfidenceLevel string `json:"confidenceLevel,omitempty"`
}

// Report is the body the evaluation API returns for a full evaluation.
type Report struct {
	Status                string       `json:"status"`
	CandidateEvaluation   *Candidate   `json:"candidateEvaluation,omitempty"`
	InterviewerEvaluation *Interviewer `json:"interviewerEvaluation,omitempty"`
	Meta                  *Meta        `json:"meta,omitempty"`
	EvaluatedAt           string       `json:"evaluatedAt"`
}

// CandidateReport is the body the evaluation API returns for a candidate-only evaluation.
type CandidateReport struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	*Candidate
	EvaluatedAt string `json:"evaluatedAt"`
}

// StatusSuccess is the status value of a successful evaluation.
const StatusSuccess = "success"
