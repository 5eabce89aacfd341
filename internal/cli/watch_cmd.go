package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var at string
	var now bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay running and advance every user once a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Runner == nil {
				return errors.New("daily runner not configured")
			}
			if _, err := app.Runner.Schedule(at); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if now {
				if err := app.Runner.RunOnce(ctx); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Advancing all users daily at %s UTC. Ctrl-C to stop.\n", at)
			app.Runner.Run(ctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "00:05", "Time of day to run (HH:MM, UTC)")
	cmd.Flags().BoolVar(&now, "now", false, "Also run immediately on start")
	return cmd
}
