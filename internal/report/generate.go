// Package report renders runner results as text, JSON and CSV.
package report

import (
	"time"

	"github.com/DjordjeVuckovic/labeleval/internal/runner"
	"github.com/google/uuid"
)

type Options struct {
	Version   string
	Reference string
}

func Generate(res *runner.Result, opts Options) *Report {
	r := &Report{
		Meta: Meta{
			ID:          uuid.New(),
			Version:     opts.Version,
			Timestamp:   time.Now().UTC(),
			Reference:   opts.Reference,
			Environment: NewEnvironmentInfo(),
		},
		Config: Config{
			Workers:          res.Config.Workers,
			FailFast:         res.Config.FailFast,
			IgnoreUnresolved: res.Config.IgnoreUnresolved,
			Scoring:          res.Config.Scoring,
		},
		Runs: make([]RunReport, 0, len(res.Runs)),
		Summary: Summary{
			Runs:      len(res.Runs),
			Succeeded: res.Succeeded,
			Failed:    res.Failed,
			Mean:      res.Mean,
			Stddev:    res.Stddev,
		},
	}

	for _, o := range res.Runs {
		r.Runs = append(r.Runs, runReport(o))
	}

	return r
}

func runReport(o runner.RunOutcome) RunReport {
	rr := RunReport{
		Run:        o.Name,
		Status:     StatusOK,
		Recovery:   o.Recovery,
		DurationMS: o.Duration.Milliseconds(),
	}
	if o.Failed() {
		rr.Status = StatusFailed
		rr.Error = o.Error.Error()
		return rr
	}

	composite := o.Result.Composite
	rr.Studies = o.Result.Studies
	rr.Mentions = o.Result.Mentions
	rr.Schemes = o.Result.Schemes
	rr.Weights = o.Result.Weights
	rr.Flat = o.Result.Flat
	rr.Composite = &composite
	return rr
}
