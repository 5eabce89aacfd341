package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/xpledger/internal/badges"
	"github.com/alexanderramin/xpledger/internal/domain"
)

// FormatBadges lists earned badges followed by the locked ones with a
// progress bar toward each.
func FormatBadges(u *domain.User, defs []badges.Definition) string {
	var b strings.Builder
	stats := badges.ComputeStats(u)

	b.WriteString(Header("Earned"))
	b.WriteString("\n")
	if len(u.Badges) == 0 {
		b.WriteString(Dim("  none yet") + "\n")
	}
	for _, badge := range u.Badges {
		earned := ""
		if badge.EarnedDate != nil {
			earned = Dim(badge.EarnedDate.Format(domain.DateLayout))
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s %s\n", badge.Glyph, Bold(badge.Name), Dim(badge.Description), earned))
	}

	var locked [][]string
	for _, d := range defs {
		if d.ID == "" || u.HasBadge(d.ID) {
			continue
		}
		locked = append(locked, []string{d.Glyph, d.Name, RenderProgress(d.Progress(stats), 12), Dim(d.Description)})
	}
	if len(locked) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Locked"))
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"", "BADGE", "PROGRESS", ""}, locked))
	}
	return b.String()
}
