package cli

import (
	"fmt"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/alexanderramin/xpledger/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect scoring rules",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective scoring rules",
			RunE: func(cmd *cobra.Command, args []string) error {
				source := app.RulesPath
				if source == "" {
					source = "built-in defaults"
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Rules: "+source))
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScoringConfig(app.Rules.Config))
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Check a YAML or JSON rules file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := config.LoadRules(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s valid: %d components, %d badges\n",
					args[0], len(r.ComponentWeights), len(r.Badges))
				return nil
			},
		},
		&cobra.Command{
			Use:   "init <file>",
			Short: "Write the default rules to a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.SaveRules(args[0], config.DefaultRules()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default rules to %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
