package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/labeleval/internal/spec"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// appEnv holds settings that only come from the environment.
type appEnv struct {
	PgConn string `envconfig:"LABELEVAL_PG_CONN"`
}

func loadAppEnv() (appEnv, error) {
	var e appEnv
	if err := envconfig.Process("", &e); err != nil {
		return e, fmt.Errorf("process env config: %w", err)
	}
	return e, nil
}

// specFlags build a spec from the command line when no spec file is given.
type specFlags struct {
	specPath         string
	reference        string
	pgTable          string
	usePg            bool
	runsDir          string
	prefix           string
	mapping          string
	orderedIDs       string
	workers          int
	failFast         bool
	ignoreUnresolved bool
	scoring          string
	jsonOut          string
	csvOut           string
}

func (f *specFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.specPath, "spec", "s", "", "evaluation spec YAML")
	fl.StringVar(&f.reference, "reference", "", "reference label CSV")
	fl.BoolVar(&f.usePg, "pg", false, "read the reference from PostgreSQL (LABELEVAL_PG_CONN)")
	fl.StringVar(&f.pgTable, "pg-table", "", "reference table name")
	fl.StringVar(&f.runsDir, "runs", "", "directory holding labeler runs")
	fl.StringVar(&f.prefix, "prefix", "", "run file prefix")
	fl.StringVar(&f.mapping, "mapping", "", "id,text file given to the labeler (text recovery)")
	fl.StringVar(&f.orderedIDs, "ordered-ids", "", "study_id list in labeler input order (position recovery)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "runs evaluated concurrently")
	fl.BoolVar(&f.failFast, "fail-fast", false, "stop at the first failed run")
	fl.BoolVar(&f.ignoreUnresolved, "ignore-unresolved", false, "skip unresolved cells when counting")
	fl.StringVar(&f.scoring, "scoring", "", "run scores: composite (mention-weighted) or flat (raw label codes)")
	fl.StringVarP(&f.jsonOut, "output", "o", "", "write the JSON report here")
	fl.StringVar(&f.csvOut, "csv", "", "write per-run composites CSV here")
}

// build loads the spec file when given, otherwise assembles one from the
// flags. Explicit flags override the file.
func (f *specFlags) build(cmd *cobra.Command, e appEnv) (*spec.EvalSpec, error) {
	var sp *spec.EvalSpec
	if f.specPath != "" {
		loaded, err := spec.LoadFromFile(f.specPath)
		if err != nil {
			return nil, fmt.Errorf("read spec: %w", err)
		}
		sp = loaded
	} else {
		sp = &spec.EvalSpec{}
	}

	changed := cmd.Flags().Changed
	if f.reference != "" {
		sp.Reference = spec.Reference{Type: spec.ReferenceCSV, Path: f.reference}
	}
	if f.usePg {
		sp.Reference = spec.Reference{Type: spec.ReferencePostgres, Table: f.pgTable}
	}
	sp.UseConnection(e.PgConn)
	if f.runsDir != "" {
		sp.Runs.Dir = f.runsDir
	}
	if f.prefix != "" {
		sp.Runs.Prefix = f.prefix
	}
	if f.mapping != "" {
		sp.Recovery = spec.Recovery{Mode: spec.RecoveryText, Mapping: f.mapping}
	}
	if f.orderedIDs != "" {
		sp.Recovery = spec.Recovery{Mode: spec.RecoveryPosition, OrderedIDs: f.orderedIDs}
	}
	if changed("workers") {
		sp.Evaluation.Workers = f.workers
	}
	if changed("fail-fast") {
		sp.Evaluation.FailFast = f.failFast
	}
	if changed("ignore-unresolved") {
		sp.Evaluation.IgnoreUnresolved = f.ignoreUnresolved
	}
	if f.scoring != "" {
		sp.Evaluation.Scoring = f.scoring
	}
	if f.jsonOut != "" {
		sp.Output.JSON = f.jsonOut
	}
	if f.csvOut != "" {
		sp.Output.CSV = f.csvOut
	}

	if err := spec.Validate(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// loadSpec reads a spec file, fills the connection from the environment and
// validates it.
func loadSpec(path string, e appEnv) (*spec.EvalSpec, error) {
	sp, err := spec.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	sp.UseConnection(e.PgConn)
	if err := spec.Validate(sp); err != nil {
		return nil, err
	}
	return sp, nil
}
