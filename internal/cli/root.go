package cli

import (
	"time"

	"github.com/alexanderramin/xpledger/internal/config"
	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Users    service.UserService
	Scores   service.ScoreService
	Progress service.ProgressService
	Runner   *service.DailyRunner

	Rules     config.Rules
	RulesPath string
	Username  string

	// Now is the wall clock; commands default their --date to its day.
	Now func() time.Time
	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) today() time.Time {
	return domain.DayOf(a.now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "xpledger" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "xpledger",
		Short:         "Score tasks, earn XP, lose it to overdue work",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.Username, "user", "u", app.Username, "User to act as")

	root.AddCommand(
		newTaskCmd(app),
		newScoreCmd(app),
		newAdvanceCmd(app),
		newXPCmd(app),
		newBadgesCmd(app),
		newVacationCmd(app),
		newConfigCmd(app),
		newWatchCmd(app),
	)
	return root
}
