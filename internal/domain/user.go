package domain

import "time"

type User struct {
	Username          string           `json:"username"`
	Tasks             []*Task          `json:"tasks"`
	XPTransactions    []*XPTransaction `json:"xp_transactions"`
	Badges            []*Badge         `json:"badges"`
	TotalXP           int              `json:"total_xp"`
	VacationMode      bool             `json:"vacation_mode"`
	LastProcessedDate *time.Time       `json:"last_processed_date,omitempty"`
}

// FindTask returns the task with the given id, or nil.
func (u *User) FindTask(id string) *Task {
	for _, t := range u.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// HasBadge reports whether a badge with the given id has been earned.
func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// LedgerSum returns the sum of all transaction amounts. It equals TotalXP
// for any user whose ledger has only been touched through the ledger package.
func (u *User) LedgerSum() int {
	sum := 0
	for _, tx := range u.XPTransactions {
		sum += tx.Amount
	}
	return sum
}
