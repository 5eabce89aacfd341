package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVacationCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "vacation on|off",
		Short:     "Pause or resume overdue penalties",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on := args[0] == "on"
			if err := app.Users.SetVacation(cmd.Context(), app.Username, on); err != nil {
				return err
			}
			if on {
				fmt.Fprintln(cmd.OutOrStdout(), "Vacation mode on: no penalties until you turn it off.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Vacation mode off.")
			}
			return nil
		},
	}
}
