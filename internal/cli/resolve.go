package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/service"
)

// resolveTaskID matches input against task ids: an exact id wins, otherwise
// a unique prefix (as shown in listings) is accepted.
func resolveTaskID(u *domain.User, input string) (string, error) {
	if t := u.FindTask(input); t != nil {
		return t.ID, nil
	}
	var matches []string
	for _, t := range u.Tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %q: %w", input, service.ErrTaskNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseDay parses a YYYY-MM-DD flag value; empty means fallback.
func parseDay(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	switch strings.ToLower(value) {
	case "today":
		return fallback, nil
	case "tomorrow":
		return fallback.AddDate(0, 0, 1), nil
	case "yesterday":
		return fallback.AddDate(0, 0, -1), nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func parseOptionalDay(value string, today time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDay(value, today)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
