package cli

import (
	"fmt"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBadgesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show earned and locked badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Get(cmd.Context(), app.Username)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBadges(u, app.Rules.Badges))
			return nil
		},
	}
}
