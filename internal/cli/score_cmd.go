package cli

import (
	"fmt"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	var date, explain string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank open tasks by the XP they are worth",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, app.today())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if explain != "" {
				u, err := app.Users.Get(cmd.Context(), app.Username)
				if err != nil {
					return err
				}
				taskID, err := resolveTaskID(u, explain)
				if err != nil {
					return err
				}
				e, err := app.Scores.Explain(cmd.Context(), app.Username, taskID, day)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatExplanation(e))
				return nil
			}

			ranked, err := app.Scores.Rank(cmd.Context(), app.Username, day)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRanking(ranked, day))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Score as of this day (default today)")
	cmd.Flags().StringVar(&explain, "explain", "", "Show the score breakdown of one task")
	return cmd
}
