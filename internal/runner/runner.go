// Package runner evaluates every prediction run against one reference and
// averages the composite scores.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/metrics"
	"github.com/DjordjeVuckovic/labeleval/internal/source"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config    Config
	evaluator *evaluator.Evaluator
}

func New(cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Scoring == "" {
		cfg.Scoring = evaluator.ScoringComposite
	}

	var opts []metrics.Option
	if cfg.IgnoreUnresolved {
		opts = append(opts, metrics.IgnoreUnresolved())
	}

	return &Runner{config: cfg, evaluator: evaluator.New(opts...)}
}

// RunAll evaluates runs against reference. Failed runs are recorded and
// skipped unless FailFast is set.
func (r *Runner) RunAll(ctx context.Context, reference *label.Matrix, runs []source.Run) (*Result, error) {
	if len(runs) == 0 {
		return nil, &NoRunsFoundError{}
	}

	start := time.Now()
	outcomes := make([]RunOutcome, len(runs))

	if r.config.Workers > 1 {
		if err := r.runParallel(ctx, reference, runs, outcomes); err != nil {
			return nil, err
		}
	} else {
		for i, run := range runs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = r.RunOne(ctx, reference, run)
			if r.config.FailFast && outcomes[i].Failed() {
				return nil, fmt.Errorf("run %q: %w", run.Name(), outcomes[i].Error)
			}
		}
	}

	res := &Result{Config: r.config, Runs: outcomes}

	var composites []evaluator.Composite
	var errs []error
	for _, o := range outcomes {
		if o.Failed() {
			res.Failed++
			errs = append(errs, fmt.Errorf("run %q: %w", o.Name, o.Error))
			continue
		}
		res.Succeeded++
		composites = append(composites, o.Result.Composite)
	}

	if res.Succeeded == 0 {
		return nil, errors.Join(append([]error{ErrAllRunsFailed}, errs...)...)
	}

	res.Mean, res.Stddev = average(composites)
	res.Elapsed = time.Since(start)

	slog.Info("runs evaluated",
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"micro_f1", res.Mean.Micro,
		"macro_f1", res.Mean.Macro,
		"weighted_f1", res.Mean.Weighted,
	)

	return res, nil
}

func (r *Runner) runParallel(ctx context.Context, reference *label.Matrix, runs []source.Run, outcomes []RunOutcome) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, run := range runs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = r.RunOne(gctx, reference, run)
			if r.config.FailFast && outcomes[i].Failed() {
				return fmt.Errorf("run %q: %w", run.Name(), outcomes[i].Error)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// RunOne loads and scores a single run. Errors are carried on the outcome.
func (r *Runner) RunOne(ctx context.Context, reference *label.Matrix, run source.Run) RunOutcome {
	start := time.Now()
	out := RunOutcome{Name: run.Name()}

	m, rec, err := run.Load(ctx)
	out.Recovery = rec
	if err != nil {
		out.Error = fmt.Errorf("load run: %w", err)
		out.Duration = time.Since(start)
		slog.Warn("run failed", "run", out.Name, "error", out.Error)
		return out
	}

	res, err := r.evaluator.Evaluate(r.config.Scoring, out.Name, reference, m)
	out.Duration = time.Since(start)
	if err != nil {
		out.Error = err
		slog.Warn("run failed", "run", out.Name, "error", err)
		return out
	}

	out.Result = res
	slog.Info("run evaluated",
		"run", out.Name,
		"studies", res.Studies,
		"dropped", rec.Dropped,
		"micro_f1", res.Composite.Micro,
		"duration", out.Duration,
	)
	return out
}
