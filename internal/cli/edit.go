package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/session"
)

func newEditCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a set's title and cards",
		Long:  "Add, remove, rewrite and swap cards in a set, or rename the set.",
	}

	cmd.AddCommand(newEditAddCmd(repo, log))
	cmd.AddCommand(newEditRemoveCmd(repo, log))
	cmd.AddCommand(newEditSwapCmd(repo, log))
	cmd.AddCommand(newEditRenameCmd(repo, log))

	return cmd
}

// editSet loads a draft for setID, applies fn, and saves the result.
func editSet(cmd *cobra.Command, repo *repository.SetWithCardsRepository, log *slog.Logger, setID int64, fn func(*session.Editor)) error {
	editor, err := session.NewEditor(cmd.Context(), repo, setID, log)
	if err != nil {
		return err
	}
	fn(editor)
	return editor.Save(cmd.Context())
}

func newEditAddCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	var front, back string

	cmd := &cobra.Command{
		Use:   "add [set-id]",
		Short: "Add a card; without a set id a new set is created",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if front == "" && back == "" {
				return fmt.Errorf("at least one of --front and --back is required")
			}

			setID := domain.UnsetID
			if len(args) == 1 {
				id, err := parseSetID(args[0])
				if err != nil {
					return err
				}
				setID = id
			}

			editor, err := session.NewEditor(cmd.Context(), repo, setID, log)
			if err != nil {
				return err
			}
			state := editor.State()
			editor.InsertCard()
			editor.UpdateCard(len(state.Cards), domain.Card{FrontText: front, BackText: back})
			if err := editor.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "card added to set %d\n", editor.State().Set.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "front text of the card")
	cmd.Flags().StringVar(&back, "back", "", "back text of the card")
	return cmd
}

func newEditRemoveCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <set-id> <position>",
		Short: "Remove the card at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseSetID(args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 0 {
				return fmt.Errorf("invalid position %q", args[1])
			}

			return editSet(cmd, repo, log, setID, func(e *session.Editor) {
				e.UpdateSelected(pos)
				e.RemoveCard()
			})
		},
	}
}

func newEditSwapCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <set-id> <pos-a> <pos-b>",
		Short: "Exchange the cards at two positions",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseSetID(args[0])
			if err != nil {
				return err
			}
			a, errA := strconv.Atoi(args[1])
			b, errB := strconv.Atoi(args[2])
			if errA != nil || errB != nil {
				return fmt.Errorf("positions must be integers")
			}

			return editSet(cmd, repo, log, setID, func(e *session.Editor) {
				e.MoveCard(a, b)
			})
		},
	}
}

func newEditRenameCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <set-id> <title>",
		Short: "Rename a set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseSetID(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")

			return editSet(cmd, repo, log, setID, func(e *session.Editor) {
				e.UpdateTitle(title)
			})
		},
	}
}
