package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/manifoldco/promptui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/form"
	"github.com/spigell/interview-evaluator/internal/render"
)

const (
	PromptRetry         = "Edit and retry"
	PromptSwitchView    = "Switch view"
	PromptNewEvaluation = "Evaluate another interview"
	PromptExit          = "Exit"

	evaluatingMessage = "Evaluating interview... This may take a moment."
)

var errExit = errors.New("exit requested")

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate an interview transcript",
	Long: `Evaluate an interview transcript against a job description.

Without --job-description-file and --transcript-file an interactive form is shown.`,
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("job-description-file", "", "file with the job description (use - for stdin)")
	evaluateCmd.Flags().String("transcript-file", "", "file with the interview transcript (use - for stdin)")
	evaluateCmd.Flags().String("seniority", "", "expected seniority: junior, mid or senior")
	evaluateCmd.Flags().Bool("evaluate-interviewer", true, "also evaluate how the interview was conducted")
	evaluateCmd.Flags().String("view", "", "result view: candidate or full (asked interactively when unset)")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	client := newClient(config, logger)
	f := form.New(client, logger)

	flags := cmd.Flags()
	jdFile, _ := flags.GetString("job-description-file")
	transcriptFile, _ := flags.GetString("transcript-file")
	seniority, _ := flags.GetString("seniority")
	evaluateInterviewer, _ := flags.GetBool("evaluate-interviewer")
	viewFlag, _ := flags.GetString("view")

	var view render.ViewType
	if viewFlag != "" {
		var err error
		if view, err = render.ParseViewType(viewFlag); err != nil {
			logger.Fatal("parsing view", zap.Error(err))
		}
	}

	renderer := render.New(os.Stdout)

	if jdFile == "" && transcriptFile == "" {
		req := evaluation.Request{
			Seniority:           evaluation.Seniority(strings.ToLower(seniority)),
			EvaluateInterviewer: evaluateInterviewer,
		}
		if err := interactive(ctx, f, req, view, renderer, client.BaseURL, logger); err != nil && !errors.Is(err, errExit) {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	req, err := readRequest(os.Stdin, jdFile, transcriptFile)
	if err != nil {
		logger.Fatal("reading evaluation input", zap.Error(err))
	}
	req.Seniority = evaluation.Seniority(strings.ToLower(seniority))
	req.EvaluateInterviewer = evaluateInterviewer

	if view == "" {
		view = render.ViewFull
	}

	if err := evaluateOnce(ctx, f, req, view, renderer); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// evaluateOnce submits req and renders the result in the given view.
// The returned error carries the text the user should see.
func evaluateOnce(ctx context.Context, f *form.Form, req evaluation.Request, view render.ViewType, renderer *render.Renderer) error {
	if err := f.SetFields(req); err != nil {
		return err
	}

	if err := f.Submit(ctx); err != nil {
		return errors.New(f.ErrorMessage())
	}

	return renderer.Result(f.Result(), view)
}

func interactive(ctx context.Context, f *form.Form, req evaluation.Request, view render.ViewType, renderer *render.Renderer, baseURL string, logger *zap.Logger) error {
	printWelcome(baseURL)

	if err := f.SetFields(req); err != nil {
		return err
	}

	for {
		fields := f.Fields()
		if err := editFields(&fields); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return errExit
			}
			return fmt.Errorf("reading evaluation form: %w", err)
		}
		if err := f.SetFields(fields); err != nil {
			return err
		}

		if err := submit(ctx, f); err != nil {
			logger.Debug("submission failed", zap.Error(err))
			pterm.Error.Println(f.ErrorMessage())

			if _, action, err := afterErrorPrompt.Run(); err != nil || action == PromptExit {
				return errExit
			}
			continue
		}

		next, err := showResult(f.Result(), view, renderer)
		if err != nil {
			return err
		}
		if next != PromptNewEvaluation {
			return errExit
		}

		f.Reset()
	}
}

func submit(ctx context.Context, f *form.Form) error {
	spinner, _ := pterm.DefaultSpinner.Start(evaluatingMessage)

	err := f.Submit(ctx)

	if spinner != nil {
		if err != nil {
			spinner.Fail("Evaluation failed")
		} else {
			spinner.Success("Evaluation complete")
		}
	}

	return err
}

// showResult renders the result until the user leaves it and returns the chosen action.
func showResult(result *evaluation.Result, view render.ViewType, renderer *render.Renderer) (string, error) {
	for {
		if view == "" {
			var err error
			if view, err = selectView(); err != nil {
				return PromptExit, nil
			}
		}

		if err := renderer.Result(result, view); err != nil {
			return "", fmt.Errorf("rendering result: %w", err)
		}
		pterm.Println()

		_, action, err := afterResultPrompt.Run()
		if err != nil {
			return PromptExit, nil
		}
		if action != PromptSwitchView {
			return action, nil
		}
		view = ""
	}
}

var afterErrorPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptRetry, PromptExit},
}

var afterResultPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSwitchView, PromptNewEvaluation, PromptExit},
}

func selectView() (render.ViewType, error) {
	views := []render.ViewType{render.ViewCandidate, render.ViewFull}
	titles := make([]string, 0, len(views))
	for _, v := range views {
		titles = append(titles, v.Title())
	}

	prompt := promptui.Select{
		Label: "Select view",
		Items: titles,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return views[idx], nil
}

func editFields(req *evaluation.Request) error {
	seniority := string(req.Seniority)

	options := []huh.Option[string]{huh.NewOption("Select seniority...", "")}
	for _, s := range evaluation.Seniorities() {
		options = append(options, huh.NewOption(s.Label(), string(s)))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Job Description").
				Placeholder("Paste the job description here...").
				Value(&req.JobDescription),
			huh.NewText().
				Title("Interview Transcript").
				Placeholder("Paste the interview transcript here...").
				Value(&req.InterviewTranscript),
			huh.NewSelect[string]().
				Title("Seniority Level").
				Options(options...).
				Value(&seniority),
			huh.NewConfirm().
				Title("Evaluate the interviewer too?").
				Value(&req.EvaluateInterviewer),
		),
	).Run()
	if err != nil {
		return err
	}

	req.Seniority = evaluation.Seniority(seniority)
	return nil
}

func printWelcome(baseURL string) {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Println("Interview Evaluation")
	pterm.Println(pterm.Gray("Evaluation API: " + baseURL))
	pterm.Println()
}

// readRequest loads the job description and transcript. A "-" path reads stdin,
// which can back only one of them.
func readRequest(stdin io.Reader, jdFile, transcriptFile string) (evaluation.Request, error) {
	var req evaluation.Request

	if jdFile == "-" && transcriptFile == "-" {
		return req, errors.New("only one of --job-description-file and --transcript-file can read stdin")
	}

	jd, err := readInput(stdin, jdFile)
	if err != nil {
		return req, fmt.Errorf("reading job description: %w", err)
	}

	transcript, err := readInput(stdin, transcriptFile)
	if err != nil {
		return req, fmt.Errorf("reading transcript: %w", err)
	}

	req.JobDescription = jd
	req.InterviewTranscript = transcript

	return req, nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(path)
		return string(data), err
	}
}
