package runner

import "fmt"

// ErrAllRunsFailed is returned when no run produced a score.
var ErrAllRunsFailed error = allRunsFailedError{}

type allRunsFailedError struct{}

func (allRunsFailedError) Error() string       { return "all runs failed" }
func (allRunsFailedError) Unprocessable() bool { return true }

// NoRunsFoundError is returned when there is nothing to evaluate.
type NoRunsFoundError struct {
	Location string
}

func (e *NoRunsFoundError) Error() string {
	if e.Location == "" {
		return "no prediction runs found"
	}
	return fmt.Sprintf("no prediction runs found in %s", e.Location)
}

func (e *NoRunsFoundError) Unprocessable() bool { return true }
