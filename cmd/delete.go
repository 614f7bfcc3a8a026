package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <match-id>",
	Short: "Delete one of your logged matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteMatch(ctx, cfg.UserID, args[0]); err != nil {
		if errors.Is(err, storage.ErrMatchNotFound) {
			return fmt.Errorf("match %s not found", args[0])
		}
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", args[0])
	return nil
}
