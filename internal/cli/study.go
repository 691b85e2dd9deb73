package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/session"
)

func newStudyCmd(repo *repository.SetWithCardsRepository, log *slog.Logger) *cobra.Command {
	var shuffle, starred bool

	cmd := &cobra.Command{
		Use:   "study <set-id>",
		Short: "Run a study session over a set",
		Long: `Run an interactive study session.

Each card shows its front; commands:
  f           flip the card
  c, i, s     mark correct / incorrect / skipped and advance
  *           toggle the card's star
  r           restart the session
  q           stop and show the summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSetID(args[0])
			if err != nil {
				return err
			}

			study := session.NewStudy(repo, id, shuffle, starred, log)
			if err := study.Start(cmd.Context()); err != nil {
				return err
			}

			return runStudyLoop(cmd, study)
		},
	}

	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "present cards in random order")
	cmd.Flags().BoolVar(&starred, "starred", false, "study only starred cards")
	return cmd
}

func runStudyLoop(cmd *cobra.Command, study *session.Study) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	state := study.State()
	if len(state.Cards) == 0 {
		fmt.Fprintln(out, "no cards match the session filters")
		printSummary(cmd, study.Summary())
		return nil
	}

	fmt.Fprintf(out, "studying %q, %d cards\n", state.Set.Title, len(state.Cards))

	cursor := 0
	for cursor < len(study.State().Cards) {
		state = study.State()
		card := state.Cards[cursor]

		side := card.FrontText
		if state.Flipped[cursor] {
			side = card.BackText
		}
		star := " "
		if card.Starred {
			star = "*"
		}
		fmt.Fprintf(out, "[%d/%d]%s %s\n> ", cursor+1, len(state.Cards), star, side)

		if !scanner.Scan() {
			break
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "f":
			study.Flip(cursor)
		case "c":
			study.SetMark(cursor, domain.MarkCorrect)
			cursor++
		case "i":
			study.SetMark(cursor, domain.MarkIncorrect)
			cursor++
		case "s", "":
			study.SetMark(cursor, domain.MarkSkipped)
			cursor++
		case "*":
			if err := study.ToggleStarred(cmd.Context(), card); err != nil {
				return err
			}
		case "r":
			if err := study.Restart(cmd.Context()); err != nil {
				return err
			}
			cursor = 0
		case "q":
			printSummary(cmd, study.Summary())
			return nil
		default:
			fmt.Fprintln(out, "commands: f flip, c correct, i incorrect, s skip, * star, r restart, q quit")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	printSummary(cmd, study.Summary())
	return nil
}

func printSummary(cmd *cobra.Command, sum session.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "correct:   %d/%d\n", sum.Correct, sum.Total)
	fmt.Fprintf(out, "incorrect: %d/%d\n", sum.Incorrect, sum.Total)
	fmt.Fprintf(out, "skipped:   %d/%d\n", sum.Skipped, sum.Total)
}
