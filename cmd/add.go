package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/ingest"
)

var (
	addMap    string
	addResult string
	addGroup  int
	addHeroes string
	addAt     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log one match",
	Example: `  owstats add --map Ilios --result win --heroes "Ana:60,Kiriko:40"
  owstats add --map "King's Row" --result loss --group 3 --heroes Reinhardt --at "2026-03-01 21:15"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addMap, "map", "", "map name (required)")
	addCmd.Flags().StringVar(&addResult, "result", "", "win, loss or draw (required)")
	addCmd.Flags().IntVar(&addGroup, "group", 1, "group size, 1-5")
	addCmd.Flags().StringVar(&addHeroes, "heroes", "", `hero shares, e.g. "Ana:60,Kiriko:40" (required)`)
	addCmd.Flags().StringVar(&addAt, "at", "", `when the match was played (RFC 3339 or "2006-01-02 15:04"); default now`)
	addCmd.MarkFlagRequired("map")
	addCmd.MarkFlagRequired("result")
	addCmd.MarkFlagRequired("heroes")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	heroes, err := ingest.ParseHeroes(addHeroes, cat)
	if err != nil {
		return err
	}
	input := ingest.MatchInput{
		Map:       addMap,
		Result:    addResult,
		GroupSize: addGroup,
		PlayedAt:  addAt,
		Heroes:    heroes,
	}
	return storeInputs(cmd, []ingest.MatchInput{input})
}

// storeInputs validates a batch and stores it in one transaction.
func storeInputs(cmd *cobra.Command, inputs []ingest.MatchInput) error {
	ctx := cmd.Context()
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	records, err := ingest.Validate(inputs, cat, loc, now())
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			log.Debug().Int("index", verr.Index).Str("reason", verr.Reason).Msg("batch rejected")
		}
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := db.InsertMatches(ctx, cfg.UserID, records)
	if err != nil {
		return fmt.Errorf("store matches: %w", err)
	}
	if len(ids) == 1 {
		r := records[0]
		fmt.Fprintf(os.Stdout, "Logged %s on %s (%s)  id=%s\n", r.Result, r.Map, r.PlayedAt.Format("2006-01-02 15:04"), ids[0])
		return nil
	}
	fmt.Fprintf(os.Stdout, "Logged %d matches.\n", len(ids))
	return nil
}
