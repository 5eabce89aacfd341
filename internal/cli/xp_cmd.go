package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errWithdrawCancelled = errors.New("withdrawal cancelled")

func newXPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Inspect and spend XP",
	}
	cmd.AddCommand(newXPHistoryCmd(app), newXPWithdrawCmd(app))
	return cmd
}

func newXPHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the XP balance and recent ledger rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Get(cmd.Context(), app.Username)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(u, limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Rows to show (0 for all)")
	return cmd
}

func newXPWithdrawCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "withdraw <points>",
		Short: "Spend XP on a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.Atoi(args[0])
			if err != nil || points <= 0 {
				return fmt.Errorf("invalid points %q: must be a positive integer", args[0])
			}

			if !yes && app.interactive() {
				confirmed := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Spend %d XP?", points)).
					Affirmative("Spend").
					Negative("Keep").
					Value(&confirmed).
					Run()
				if err != nil {
					return err
				}
				if !confirmed {
					return errWithdrawCancelled
				}
			}

			ok, err := app.Progress.Withdraw(cmd.Context(), app.Username, points)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("Not enough XP to withdraw %d.", points)))
				return nil
			}
			fmt.Fprintf(out, "Withdrew %s\n", formatter.SignedXP(-points))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
