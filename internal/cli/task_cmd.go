package cli

import (
	"fmt"

	"github.com/alexanderramin/xpledger/internal/cli/formatter"
	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks and habits",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		id, priority, difficulty, duration string
		due, start, project                string
		tags, deps                         []string
		habit                              bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			dueDate, err := parseOptionalDay(due, today)
			if err != nil {
				return err
			}
			startDate, err := parseOptionalDay(start, today)
			if err != nil {
				return err
			}

			u, err := app.Users.Get(cmd.Context(), app.Username)
			if err != nil {
				return err
			}
			resolved := make([]string, 0, len(deps))
			for _, d := range deps {
				depID, err := resolveTaskID(u, d)
				if err != nil {
					return err
				}
				resolved = append(resolved, depID)
			}

			created := app.now()
			t := &domain.Task{
				ID:           id,
				Title:        args[0],
				Priority:     domain.Priority(priority),
				Difficulty:   domain.Difficulty(difficulty),
				Duration:     domain.Duration(duration),
				IsHabit:      habit,
				DueDate:      dueDate,
				StartDate:    startDate,
				Dependencies: resolved,
				Tags:         tags,
				Project:      domain.StrPtr(project),
				CreationDate: &created,
			}
			if err := app.Users.AddTask(cmd.Context(), app.Username, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatter.TruncID(t.ID), formatter.Bold(t.Title))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&id, "id", "", "Task id (default: random)")
	f.StringVarP(&priority, "priority", "p", string(domain.PriorityMedium), "low, medium, high or critical")
	f.StringVarP(&difficulty, "difficulty", "d", string(domain.DifficultyMedium), "trivial, easy, medium, hard or epic")
	f.StringVar(&duration, "duration", string(domain.DurationHour), "minutes, hour, hours, day or days")
	f.StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	f.StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&project, "project", "", "Project name")
	f.StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable)")
	f.StringSliceVar(&deps, "depends-on", nil, "Id of a task this one depends on (repeatable)")
	f.BoolVar(&habit, "habit", false, "Recurring habit")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Get(cmd.Context(), app.Username)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(u.Tasks, app.today()))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task and collect its XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, app.today())
			if err != nil {
				return err
			}
			u, err := app.Users.Get(cmd.Context(), app.Username)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(u, args[0])
			if err != nil {
				return err
			}
			res, err := app.Progress.CompleteTask(cmd.Context(), app.Username, taskID, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCompletion(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day the completion counts for (default today)")
	return cmd
}
