package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/report"
)

var listLast int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged matches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLast, "last", 0, "only show the N most recent matches")
	addRoleFlag(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	matches := v.matches
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches logged yet. Run 'owstats add' to log one.")
		return nil
	}
	if listLast > 0 && listLast < len(matches) {
		matches = matches[len(matches)-listLast:]
	}
	report.PrintMatchList(os.Stdout, matches)
	fmt.Fprintf(os.Stdout, "\n(%d matches)\n", len(matches))
	return nil
}
