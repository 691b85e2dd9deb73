package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/repository"
)

func parseSetID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid set id %q", arg)
	}
	return id, nil
}

func newShowCmd(repo *repository.SetWithCardsRepository) *cobra.Command {
	return &cobra.Command{
		Use:   "show <set-id>",
		Short: "Show a set and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSetID(args[0])
			if err != nil {
				return err
			}

			swc, err := repo.GetSetWithCards(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d cards)\n", swc.Set.Title, len(swc.Cards))
			fmt.Fprintf(cmd.OutOrStdout(), "created %s, viewed %s, modified %s\n\n",
				swc.Set.CreationDate.Format(dateFormat),
				swc.Set.LastViewedDate.Format(dateFormat),
				swc.Set.LastModifiedDate.Format(dateFormat))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tFRONT\tBACK\tSTARRED")
			for _, card := range swc.Cards {
				star := ""
				if card.Starred {
					star = "*"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", card.Position, card.FrontText, card.BackText, star)
			}
			return w.Flush()
		},
	}
}
