package badges

// DefaultDefinitions returns the built-in badge set.
func DefaultDefinitions() []Definition {
	return []Definition{
		// Task completion milestones
		taskCount("first_task", "First Quest", "Complete 1 task", "✓", 1),
		taskCount("productive", "Productive", "Complete 10 tasks", "📋", 10),
		taskCount("achiever", "Achiever", "Complete 50 tasks", "🏅", 50),
		taskCount("powerhouse", "Powerhouse", "Complete 100 tasks", "🏆", 100),

		// Habits
		{
			ID: "habit_former", Name: "Habit Former", Description: "Complete a habit 10 times or hold a 7-day streak", Glyph: "🔁",
			Criteria: map[Criterion]int{CriterionHabitsCompleted: 10, CriterionStreak: 7},
		},
		{
			ID: "unbroken", Name: "Unbroken", Description: "Hold a 30-day habit streak", Glyph: "🔥",
			Criteria: map[Criterion]int{CriterionStreak: 30},
		},

		// XP milestones
		xpTotal("apprentice", "Apprentice", "Reach 100 XP", "🌱", 100),
		xpTotal("journeyman", "Journeyman", "Reach 1,000 XP", "🌳", 1000),
		xpTotal("master", "Master", "Reach 10,000 XP", "💫", 10000),
	}
}

func taskCount(id, name, desc, glyph string, n int) Definition {
	return Definition{ID: id, Name: name, Description: desc, Glyph: glyph,
		Criteria: map[Criterion]int{CriterionTasksCompleted: n}}
}

func xpTotal(id, name, desc, glyph string, xp int) Definition {
	return Definition{ID: id, Name: name, Description: desc, Glyph: glyph,
		Criteria: map[Criterion]int{CriterionTotalXP: xp}}
}
