package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/session"
)

func newDeleteCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <set-id>",
		Short: "Delete a set and all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSetID(args[0])
			if err != nil {
				return err
			}

			set, err := repo.GetSet(cmd.Context(), id)
			if err != nil {
				return err
			}

			lib := session.NewLibrary(repo, log)
			lib.Select(set)
			if err := lib.DeleteSelected(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted set %d %q\n", set.ID, set.Title)
			return nil
		},
	}
}
