package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(id, user_id, map, map_type, result, group_size, played_at, created_at)
  match_heroes(match_id, position, hero, role, percentage)

played_at and created_at are unix milliseconds. In SQLite:
  SELECT map, datetime(played_at / 1000, 'unixepoch') FROM matches`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(ctx, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
