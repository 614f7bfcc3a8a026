package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Log a batch of matches from a JSON or YAML file",
	Long: `Validate and store every match in the file. Nothing is stored if any
match fails validation; the error names the first offending match.

The file holds either an array of matches or {"matches": [...]}:

  [{"map": "Ilios", "result": "win", "groupSize": 2,
    "playedAt": "2026-03-01T20:15:00Z",
    "heroes": [{"hero": "Ana", "percentage": 60}, {"hero": "Kiriko", "percentage": 40}]}]`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	inputs, err := ingest.Decode(f, args[0])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stdout, "No matches in file.")
		return nil
	}
	return storeInputs(cmd, inputs)
}
