package cli

import (
	"fmt"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAdvanceCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Apply overdue penalties for every day not yet processed",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(to, app.today())
			if err != nil {
				return err
			}
			res, err := app.Progress.AdvanceTo(cmd.Context(), app.Username, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAdvance(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Last day to process (default today)")
	return cmd
}
