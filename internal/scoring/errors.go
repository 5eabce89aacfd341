package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularDependency is matched by every CycleError.
var ErrCircularDependency = errors.New("circular dependency")

// CycleError reports a task reached again on its own dependency path.
type CycleError struct {
	TaskID string
	// Path lists the task ids from the root of the walk to the repeat.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: task %q is reachable from itself (%s)",
		ErrCircularDependency, e.TaskID, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}
