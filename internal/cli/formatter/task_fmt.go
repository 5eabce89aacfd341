package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/scheduler"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"github.com/alexanderramin/xpledger/internal/service"
)

func taskKind(t *domain.Task) string {
	if !t.IsHabit {
		return ""
	}
	return StylePurple.Render(fmt.Sprintf("↻%d", t.StreakCurrent))
}

func taskState(t *domain.Task) string {
	if t.IsComplete {
		return StyleDim.Render("✔")
	}
	return StyleBlue.Render("○")
}

// FormatTaskList renders every task of a user, open ones first.
func FormatTaskList(tasks []*domain.Task, today time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Add one with `xpledger task add`.") + "\n"
	}
	var open, done [][]string
	for _, t := range tasks {
		row := []string{
			taskState(t),
			TruncID(t.ID),
			t.Title,
			PriorityLabel(t.Priority),
			DueLabel(t.DueDate, today),
			taskKind(t),
			strings.Join(t.Tags, ","),
		}
		if t.IsComplete {
			done = append(done, row)
		} else {
			open = append(open, row)
		}
	}
	return RenderTable([]string{"", "ID", "TITLE", "PRIORITY", "DUE", "HABIT", "TAGS"}, append(open, done...))
}

// FormatRanking renders scored tasks in rank order.
func FormatRanking(ranked []scheduler.RankedTask, today time.Time) string {
	if len(ranked) == 0 {
		return Dim("Nothing to do. Enjoy the day.") + "\n"
	}
	rows := make([][]string, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			StyleGreen.Render(fmt.Sprintf("%d", r.Score())),
			r.Task.Title,
			PriorityLabel(r.Task.Priority),
			DueLabel(r.Task.DueDate, today),
			TruncID(r.Task.ID),
		})
	}
	return RenderTable([]string{"#", "XP", "TITLE", "PRIORITY", "DUE", "ID"}, rows, 0, 1)
}

// FormatExplanation breaks a task's score and potential penalty down by
// component.
func FormatExplanation(e *service.TaskExplanation) string {
	var b strings.Builder
	s := e.Score

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(e.Task.Title), TruncID(e.Task.ID)))
	b.WriteString(Header("Score"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  base              %6.2f\n", s.BaseScore))
	if s.StartDateBonus != 0 {
		b.WriteString(fmt.Sprintf("  start-date aging  %6.2f\n", s.StartDateBonus))
	}
	if s.StreakBonus != 0 {
		b.WriteString(fmt.Sprintf("  habit streak      %6.2f\n", s.StreakBonus))
	}
	writeContributions(&b, s.Components)
	if s.DependencyBonus != 0 {
		b.WriteString(fmt.Sprintf("  dependents        %6.2f\n", s.DependencyBonus))
	}
	b.WriteString(fmt.Sprintf("  %s %s\n\n", StyleBold.Render("total            "), StyleGreen.Render(fmt.Sprintf("%6d", s.Total))))

	p := e.Penalty
	b.WriteString(Header("Penalty if overdue"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  base              %6.2f\n", p.Base))
	writeContributions(&b, p.Components)
	b.WriteString(fmt.Sprintf("  %s %s\n", StyleBold.Render("total            "), StyleRed.Render(fmt.Sprintf("%6.2f", p.Total))))

	return RenderBox("Explain", b.String())
}

func writeContributions(b *strings.Builder, parts []scoring.Contribution) {
	for _, c := range parts {
		if c.Value == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-17s %6.2f %s\n", string(c.Component), c.Value,
			Dim(fmt.Sprintf("×%.2f w%.2f", c.Multiplier, c.Weight))))
	}
}
