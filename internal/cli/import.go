package cli

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/session"
)

func newImportCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a set from a CSV file",
		Long: `Import a CSV file as a new flashcard set.

Each row holds the front text and, optionally, the back text of one card.
Rows with more than two columns abort the import. The set title defaults to
the file name with its extension stripped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer func() { _ = f.Close() }()

			reader := csv.NewReader(f)
			// Rows legitimately vary between one and two fields; column
			// count validation is the import's job.
			reader.FieldsPerRecord = -1
			rows, err := reader.ReadAll()
			if err != nil {
				return fmt.Errorf("parse csv: %w", err)
			}

			name := title
			if name == "" {
				base := filepath.Base(path)
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			lib := session.NewLibrary(repo, log)
			id, err := lib.ImportSet(cmd.Context(), name, rows)
			if err != nil {
				return err
			}
			if id == domain.UnsetID {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %q as set %d (%d rows)\n", name, id, len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "set title (default: file name without extension)")
	return cmd
}
