package domain

import "time"

type XPTransaction struct {
	ID          string    `json:"id"`
	Amount      int       `json:"amount"`
	Source      XPSource  `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
	TaskID      *string   `json:"task_id,omitempty"`
	Description string    `json:"description"`
	// GameDate is the simulated day the movement applies to, which may lag
	// the wall-clock Timestamp when past days are processed in bulk.
	GameDate *time.Time `json:"game_date,omitempty"`
	// EntryCount is how many movements were folded into an aggregated row.
	EntryCount int `json:"entry_count,omitempty"`
}

type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Glyph       string     `json:"glyph,omitempty"`
	EarnedDate  *time.Time `json:"earned_date,omitempty"`
}
