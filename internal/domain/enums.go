package domain

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type Difficulty string

const (
	DifficultyTrivial Difficulty = "trivial"
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyEpic    Difficulty = "epic"
)

type Duration string

const (
	DurationMinutes Duration = "minutes"
	DurationHour    Duration = "hour"
	DurationHours   Duration = "hours"
	DurationDay     Duration = "day"
	DurationDays    Duration = "days"
)

type XPSource string

const (
	SourceTaskCompletion    XPSource = "task_completion"
	SourcePenalty           XPSource = "penalty"
	SourceWithdrawal        XPSource = "withdrawal"
	SourceDailyEarned       XPSource = "daily_earned"
	SourceDailyLost         XPSource = "daily_lost"
	SourceSubtaskCompletion XPSource = "subtask_completion"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true, PriorityCritical: true,
}

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[Difficulty]bool{
	DifficultyTrivial: true, DifficultyEasy: true, DifficultyMedium: true,
	DifficultyHard: true, DifficultyEpic: true,
}

// ValidDurations is the canonical set of accepted duration strings.
var ValidDurations = map[Duration]bool{
	DurationMinutes: true, DurationHour: true, DurationHours: true,
	DurationDay: true, DurationDays: true,
}

// IsAggregate reports whether rows with this source fold several movements.
func (s XPSource) IsAggregate() bool {
	return s == SourceDailyEarned || s == SourceDailyLost
}
