package runner

import (
	"time"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
)

// RunOutcome is what happened to one run. Exactly one of Result and Error is set.
type RunOutcome struct {
	Name     string
	Recovery align.Recovery
	Result   *evaluator.RunResult
	Duration time.Duration
	Error    error
}

func (o RunOutcome) Failed() bool {
	return o.Error != nil
}

// Result collects every run outcome, in discovery order, and the averages
// over the successful ones.
type Result struct {
	Config    Config
	Runs      []RunOutcome
	Succeeded int
	Failed    int
	Mean      evaluator.Composite
	Stddev    evaluator.Composite
	Elapsed   time.Duration
}

// Successful returns the outcomes that produced a score.
func (r *Result) Successful() []RunOutcome {
	out := make([]RunOutcome, 0, r.Succeeded)
	for _, o := range r.Runs {
		if !o.Failed() {
			out = append(out, o)
		}
	}
	return out
}
