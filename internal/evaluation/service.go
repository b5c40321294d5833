// Package evaluation executes an evaluation spec end to end.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/report"
	"github.com/DjordjeVuckovic/labeleval/internal/runner"
	"github.com/DjordjeVuckovic/labeleval/internal/source"
	"github.com/DjordjeVuckovic/labeleval/internal/source/pg"
	"github.com/DjordjeVuckovic/labeleval/internal/spec"
)

type Service struct {
	version string
}

func NewService(version string) *Service {
	return &Service{version: version}
}

// Evaluate loads the reference once, discovers and scores every run and
// builds the report. Output files are left to the caller.
func (s *Service) Evaluate(ctx context.Context, sp *spec.EvalSpec) (*report.Report, error) {
	ref, closeRef, err := OpenReference(ctx, sp.Reference)
	if err != nil {
		return nil, err
	}
	defer closeRef()

	runs, err := Runs(sp)
	if err != nil {
		return nil, err
	}

	reference, err := ref.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}
	slog.Info("reference loaded", "source", ref.Name(), "studies", reference.Len(), "runs", len(runs))

	res, err := runner.New(runner.Config{
		Workers:          sp.Evaluation.Workers,
		FailFast:         sp.Evaluation.FailFast,
		IgnoreUnresolved: sp.Evaluation.IgnoreUnresolved,
		Scoring:          evaluator.Scoring(sp.Evaluation.Scoring),
	}).RunAll(ctx, reference, runs)
	if err != nil {
		return nil, err
	}

	return report.Generate(res, report.Options{Version: s.version, Reference: ref.Name()}), nil
}

// OpenReference builds the reference source. The returned func releases any
// connection it holds.
func OpenReference(ctx context.Context, r spec.Reference) (source.Reference, func(), error) {
	switch r.Type {
	case spec.ReferencePostgres:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: r.Connection})
		if err != nil {
			return nil, nil, fmt.Errorf("connect reference database: %w", err)
		}
		return pg.NewReference(pool, r.Table), pool.Close, nil
	default:
		return source.CSVReference{Path: r.Path}, func() {}, nil
	}
}

// Runs discovers the run files and attaches the configured id recovery.
func Runs(sp *spec.EvalSpec) ([]source.Run, error) {
	paths, err := source.DiscoverRuns(sp.Runs.Dir, sp.Runs.Prefix, sp.Runs.Suffix)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &runner.NoRunsFoundError{Location: sp.Runs.Dir}
	}

	switch sp.Recovery.Mode {
	case spec.RecoveryPosition:
		ids, err := source.LoadOrderedIDs(sp.Recovery.OrderedIDs)
		if err != nil {
			return nil, err
		}
		return source.PositionalRuns(paths, ids), nil
	default:
		mapping, err := source.LoadMapping(sp.Recovery.Mapping)
		if err != nil {
			return nil, err
		}
		return source.TextRuns(paths, mapping), nil
	}
}

// WriteOutputs writes the optional JSON report and composite CSV.
func WriteOutputs(r *report.Report, out spec.Output) error {
	if out.JSON != "" {
		if err := report.WriteJSON(r, out.JSON); err != nil {
			return err
		}
		slog.Info("report written", "path", out.JSON)
	}
	if out.CSV != "" {
		if err := report.WriteCSVFile(r, out.CSV); err != nil {
			return err
		}
		slog.Info("composites written", "path", out.CSV)
	}
	return nil
}
