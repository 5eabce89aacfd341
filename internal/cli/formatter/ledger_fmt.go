package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/service"
)

// FormatHistory renders the newest limit ledger rows, newest first. A
// non-positive limit shows everything.
func FormatHistory(u *domain.User, limit int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", Bold("Balance:"), SignedXP(u.TotalXP)))

	txs := u.XPTransactions
	if len(txs) == 0 {
		b.WriteString(Dim("No XP movements yet.") + "\n")
		return b.String()
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}

	rows := make([][]string, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		day := tx.Timestamp.Format(domain.DateLayout)
		if tx.GameDate != nil {
			day = tx.GameDate.Format(domain.DateLayout)
		}
		rows = append(rows, []string{day, SignedXP(tx.Amount), Dim(string(tx.Source)), tx.Description})
	}
	b.WriteString(RenderTable([]string{"DAY", "XP", "SOURCE", "DESCRIPTION"}, rows, 1))
	return b.String()
}

// FormatCompletion summarises what completing a task earned.
func FormatCompletion(res *service.CompletionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n", StyleGreen.Render("✔"), Bold(res.Task.Title), SignedXP(res.XP)))
	if res.Task.IsHabit {
		b.WriteString(fmt.Sprintf("  %s\n", StylePurple.Render(fmt.Sprintf("streak %d (best %d)", res.Task.StreakCurrent, res.Task.StreakBest))))
	}
	if res.Next != nil && res.Next.DueDate != nil {
		b.WriteString(Dim(fmt.Sprintf("  next due %s\n", res.Next.DueDate.Format(domain.DateLayout))))
	}
	for _, badge := range res.Badges {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleYellow.Render("★ Badge earned:"), badge.Glyph, Bold(badge.Name)))
	}
	return b.String()
}

// FormatAdvance lists the penalties charged per processed day.
func FormatAdvance(res *service.AdvanceResult) string {
	if len(res.Days) == 0 {
		return Dim("Already up to date.") + "\n"
	}
	var b strings.Builder
	for _, d := range res.Days {
		day := d.Date.Format(domain.DateLayout)
		switch {
		case d.Vacation:
			b.WriteString(fmt.Sprintf("%s  %s\n", day, StyleBlue.Render("on vacation, no penalties")))
		case len(d.Penalties) == 0:
			b.WriteString(fmt.Sprintf("%s  %s\n", day, StyleGreen.Render("nothing overdue")))
		default:
			b.WriteString(fmt.Sprintf("%s  %s\n", day, SignedXP(-d.Total())))
			for _, p := range d.Penalties {
				b.WriteString(fmt.Sprintf("    %s %s\n", SignedXP(-p.Amount), domain.CoalesceStr(p.Title, p.TaskID)))
			}
		}
	}
	b.WriteString(fmt.Sprintf("\n%s %s over %d day(s)\n", Bold("Lost"), SignedXP(-res.XPLost()), len(res.Days)))
	return b.String()
}
