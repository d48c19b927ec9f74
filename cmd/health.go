package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spigell/interview-evaluator/internal/evaluation"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the evaluation api is reachable",
	Run: func(_ *cobra.Command, _ []string) {
		logger, config := setup()

		if err := printHealth(context.Background(), newClient(config, logger), os.Stdout); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func printHealth(ctx context.Context, client *evaluation.Client, out io.Writer) error {
	health, err := client.CheckHealth(ctx)
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(health, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(pretty))
	return err
}
