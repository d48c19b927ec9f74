// Package render prints evaluation results to a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

// ViewType selects which assessments are shown.
type ViewType string

const (
	ViewCandidate ViewType = "candidate"
	ViewFull      ViewType = "full"
)

// ParseViewType accepts "candidate" or "full", case-insensitively.
func ParseViewType(s string) (ViewType, error) {
	switch ViewType(strings.ToLower(strings.TrimSpace(s))) {
	case ViewCandidate:
		return ViewCandidate, nil
	case ViewFull:
		return ViewFull, nil
	default:
		return "", fmt.Errorf("unknown view %q: use %q or %q", s, ViewCandidate, ViewFull)
	}
}

// Title is the label of the view in selectors.
func (v ViewType) Title() string {
	switch v {
	case ViewCandidate:
		return "Candidate Only"
	case ViewFull:
		return "Full Evaluation"
	default:
		return string(v)
	}
}

var (
	headerStyle  = color.New(color.FgHiCyan, color.Bold)
	subtleStyle  = color.New(color.FgHiBlack)
	successStyle = color.New(color.FgHiGreen)
	warningStyle = color.New(color.FgHiYellow)
	dangerStyle  = color.New(color.FgHiRed)
)

// Renderer writes evaluation views to Out.
type Renderer struct {
	Out io.Writer
}

func New(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{Out: out}
}

// Result renders the candidate view and, for the full view, the interviewer
// view when the response contains one.
func (r *Renderer) Result(result *evaluation.Result, view ViewType) error {
	if result == nil {
		return nil
	}

	if err := r.Candidate(result.Candidate); err != nil {
		return err
	}

	if view == ViewFull && result.Interviewer != nil {
		return r.Interviewer(result.Interviewer)
	}

	return nil
}

func (r *Renderer) Candidate(c *evaluation.Candidate) error {
	if c == nil {
		return nil
	}

	r.header("Candidate Evaluation", "Performance assessment and skill breakdown")

	r.line("Overall Score: %s", FormatScore(c.OverallScore))
	r.line("Technical: %s", FormatScore(c.TechnicalScore))
	r.line("Recommendation: %s", Recommendation(c.Recommendation))

	if c.Name != "" {
		r.line("Candidate: %s", c.Name)
	}

	r.box("Summary", c.Summary)
	r.box("Seniority Alignment", c.SeniorityAlignment)
	r.box("Job Description Fit", c.JDFit)

	if len(c.Skills) > 0 {
		if err := r.skills(c.Skills); err != nil {
			return err
		}
	}

	r.metric("Communication Score", c.CommunicationScore, "How well the candidate articulated ideas and explained their approach.")
	r.metric("Problem Solving Score", c.ProblemSolvingScore, "Ability to analyze problems and find effective solutions.")

	r.list("Strengths", "✓", successStyle, c.Strengths)
	r.list("Areas for Improvement", "⚠", warningStyle, c.Gaps)
	r.list("Risk Areas", "✕", dangerStyle, c.RiskAreas)

	return nil
}

func (r *Renderer) Interviewer(i *evaluation.Interviewer) error {
	if i == nil {
		return nil
	}

	r.header("Interviewer Evaluation", "Interview conduct and effectiveness assessment")

	effectiveness := i.Effectiveness
	if effectiveness == "" {
		effectiveness = "Pending"
	}

	r.line("Overall Score: %s", FormatScore(i.OverallScore))
	r.line("Effectiveness: %s", effectiveness)

	r.box("Summary", i.Summary)
	r.box("Core JD Coverage", i.CoreJDCoverage)

	r.metric("Question Quality", i.QuestionQuality, "Quality and relevance of questions asked")
	r.metric("Communication Clarity", i.CommunicationClarity, "How clearly the interviewer communicated")

	if i.BiasRisk != "" {
		r.line("")
		r.line("%s", headerStyle.Sprint("Bias Risk Assessment"))
		r.line("  %s", BiasRiskColor(i.BiasRisk).Sprint(strings.ToUpper(i.BiasRisk)))
		r.line("  %s", subtleStyle.Sprint("Potential bias risks identified"))
	}

	r.list("Strengths", "✓", successStyle, i.Strengths)
	r.list("Areas for Improvement", "↗", warningStyle, i.Improvements)
	if i.FollowUpNeeded || len(i.FollowUpQuestions) > 0 {
		r.list("Follow-up Questions", "?", warningStyle, i.FollowUpQuestions)
	}

	return nil
}

// Recommendation formats a hiring verdict for display, e.g. "strong_hire" -> "STRONG HIRE".
func Recommendation(verdict string) string {
	verdict = strings.TrimSpace(verdict)
	if verdict == "" {
		verdict = "Pending"
	}
	return strings.ReplaceAll(strings.ToUpper(verdict), "_", " ")
}

// BiasRiskColor maps a bias risk level to its display colour.
func BiasRiskColor(risk string) *color.Color {
	switch strings.ToLower(strings.TrimSpace(risk)) {
	case "low":
		return successStyle
	case "medium":
		return warningStyle
	case "high":
		return dangerStyle
	default:
		return subtleStyle
	}
}

func (r *Renderer) header(title, subtitle string) {
	r.line("")
	r.line("%s", headerStyle.Sprint(title))
	r.line("%s", subtleStyle.Sprint(subtitle))
	r.line("")
}

func (r *Renderer) line(format string, a ...any) {
	fmt.Fprintf(r.Out, format+"\n", a...)
}

func (r *Renderer) box(title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	r.line("")
	r.line("%s", headerStyle.Sprint(title))
	r.line("  %s", body)
}

func (r *Renderer) metric(title string, score float64, description string) {
	if score == 0 {
		return
	}
	r.line("")
	r.line("%s", headerStyle.Sprint(title))
	r.line("  %s/10", FormatScore(score))
	r.line("  %s", subtleStyle.Sprint(description))
}

func (r *Renderer) list(title, marker string, style *color.Color, items []string) {
	if len(items) == 0 {
		return
	}
	r.line("")
	r.line("%s %s", style.Sprint(marker), headerStyle.Sprint(title))
	for _, item := range items {
		r.line("  - %s", item)
	}
}

func (r *Renderer) skills(skills []evaluation.Skill) error {
	r.line("")
	r.line("%s", headerStyle.Sprint("Skills Evaluation"))

	table := tablewriter.NewTable(r.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "  ", Right: "  "}),
	)
	table.Header([]string{"Skill", "Score", "Evidence"})

	for _, skill := range skills {
		evidence := skill.Evidence
		if evidence == "" {
			evidence = "N/A"
		}
		if err := table.Append([]string{skill.Name, FormatScore(skill.Score) + "/10", evidence}); err != nil {
			return fmt.Errorf("add skill row: %w", err)
		}
	}

	return table.Render()
}
