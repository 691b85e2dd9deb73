// Package cli wires the session layer to a cobra command tree. Commands are
// thin: they translate arguments into session operations and print results;
// all behavior lives in internal/session.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/repository"
)

// NewRootCmd creates the root command for cardfold.
func NewRootCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "cardfold",
		Short: "Create and study flashcard sets",
		Long: `cardfold manages sets of front/back flashcards stored locally.

Create sets by importing CSV files or editing them card by card, then run
study sessions with optional shuffling and starred-only filtering.`,
		SilenceUsage: true,
	}

	root.AddCommand(newSetsCmd(repo, log))
	root.AddCommand(newShowCmd(repo))
	root.AddCommand(newImportCmd(repo, log))
	root.AddCommand(newDeleteCmd(repo, log))
	root.AddCommand(newEditCmd(repo, log))
	root.AddCommand(newStudyCmd(repo, log))

	return root
}
