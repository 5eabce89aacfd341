package formatter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/xpledger/internal/scoring"
)

// FormatScoringConfig summarises the effective scoring rules.
func FormatScoringConfig(cfg scoring.Config) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %.2f\n\n", Bold("Base score:"), cfg.BaseScore))

	rows := make([][]string, 0, len(cfg.ComponentWeights))
	for _, c := range slices.Sorted(maps.Keys(cfg.ComponentWeights)) {
		inverted := ""
		if cfg.PenaltyInvertWeights[c] {
			inverted = StyleYellow.Render("inverted")
		}
		rows = append(rows, []string{string(c), fmt.Sprintf("%.2f", cfg.ComponentWeights[c]), inverted})
	}
	b.WriteString(RenderTable([]string{"COMPONENT", "WEIGHT", "PENALTY"}, rows, 1))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Age factor:"), timeFactor(cfg.AgeFactor)))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Due date proximity:"), timeFactor(cfg.DueDateProximity)))
	if cfg.DependencyChain.Enabled {
		b.WriteString(fmt.Sprintf("%s %.0f%% of each dependent's score\n", Bold("Dependency chain:"), cfg.DependencyChain.DependentScorePercentage*100))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("Dependency chain:"), Dim("off")))
	}
	if s := cfg.HabitStreakBonus; s.Enabled {
		b.WriteString(fmt.Sprintf("%s %.2f per day, up to %.2f\n", Bold("Habit streak bonus:"), s.BonusPerStreakDay, s.MaxBonus))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("Habit streak bonus:"), Dim("off")))
	}
	return b.String()
}

func timeFactor(f scoring.TimeFactor) string {
	if !f.Enabled {
		return Dim("off")
	}
	return fmt.Sprintf("×%.2f per %s, capped at ×%.2f", f.MultiplierPerUnit, strings.TrimSuffix(string(f.Unit), "s"), f.MaxMultiplier)
}
