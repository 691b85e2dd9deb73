package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/session"
)

const dateFormat = "2006-01-02 15:04"

func newSetsCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List all flashcard sets",
		Long:  "List every set, most recently studied first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := session.NewLibrary(repo, log)
			lib.Start(cmd.Context())
			defer lib.Stop()

			state, ok := <-lib.Updates()
			if !ok {
				// The watch ended before delivering a snapshot; a direct
				// read surfaces the underlying error.
				sets, err := repo.GetAllSets(cmd.Context())
				if err != nil {
					return err
				}
				state = session.LibraryState{Sets: sets}
			}
			if len(state.Sets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sets yet; create one with 'cardfold import' or 'cardfold edit add'")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tLAST VIEWED\tLAST MODIFIED")
			for _, set := range state.Sets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					set.ID,
					set.Title,
					set.LastViewedDate.Format(dateFormat),
					set.LastModifiedDate.Format(dateFormat))
			}
			return w.Flush()
		},
	}
}
