// Package evaluator scores one prediction run against the reference under all
// schemes and combines the schemes into a composite score.
package evaluator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/metrics"
	"github.com/DjordjeVuckovic/labeleval/internal/scheme"
)

// ErrNoMentions is returned when the aligned reference holds no judgment at
// all, which leaves the composite weights undefined.
var ErrNoMentions = errors.New("reference has no mentions in the aligned studies")

// Composite is the mention-weighted combination of the Presence, Absence and
// Uncertain aggregate F1 scores.
type Composite struct {
	Micro    float64 `json:"micro_f1" csv:"micro_f1"`
	Macro    float64 `json:"macro_f1" csv:"macro_f1"`
	Weighted float64 `json:"weighted_f1" csv:"weighted_f1"`
}

// Weight is one scheme's share of the total mentions.
type Weight struct {
	Scheme    scheme.Scheme `json:"scheme"`
	Positives int           `json:"positives"`
	Share     float64       `json:"share"`
}

// RunResult is the full evaluation of one run. Flat is set only when the run
// was scored with ScoringFlat, in which case Schemes and Weights are empty.
type RunResult struct {
	Run       string                    `json:"run"`
	Scoring   Scoring                   `json:"scoring"`
	Studies   int                       `json:"studies"`
	Mentions  int                       `json:"mentions"`
	Schemes   []metrics.SchemeAggregate `json:"schemes,omitempty"`
	Weights   []Weight                  `json:"weights,omitempty"`
	Flat      *metrics.MulticlassScore  `json:"flat,omitempty"`
	Composite Composite                 `json:"composite"`
}

// Scheme returns the aggregate for s.
func (r *RunResult) Scheme(s scheme.Scheme) (metrics.SchemeAggregate, bool) {
	for _, agg := range r.Schemes {
		if agg.Scheme == s {
			return agg, true
		}
	}
	return metrics.SchemeAggregate{}, false
}

// Evaluator runs the alignment and scheme scoring for a run.
type Evaluator struct {
	opts []metrics.Option
}

func New(opts ...metrics.Option) *Evaluator {
	return &Evaluator{opts: opts}
}

// Evaluate scores run with the given scoring mode.
func (e *Evaluator) Evaluate(mode Scoring, name string, reference, run *label.Matrix) (*RunResult, error) {
	switch mode {
	case ScoringComposite, "":
		return e.EvaluateRun(name, reference, run)
	case ScoringFlat:
		return e.EvaluateFlat(name, reference, run)
	default:
		return nil, fmt.Errorf("unknown scoring %q", mode)
	}
}

// EvaluateRun aligns run to reference once and scores all four schemes.
func (e *Evaluator) EvaluateRun(name string, reference, run *label.Matrix) (*RunResult, error) {
	aligned, err := align.Align(name, reference, run)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		Run:     name,
		Scoring: ScoringComposite,
		Studies: len(aligned.IDs),
		Schemes: make([]metrics.SchemeAggregate, 0, len(scheme.All)),
	}

	aggs := make(map[scheme.Scheme]metrics.SchemeAggregate, len(scheme.All))
	for _, s := range scheme.All {
		target := scheme.Encode(s, aligned.Reference)
		pred := scheme.Encode(s, aligned.Run)

		agg, err := metrics.Aggregate(target, pred, e.opts...)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", s, err)
		}
		aggs[s] = agg
		res.Schemes = append(res.Schemes, agg)

		slog.Debug("scheme scored",
			"run", name,
			"scheme", s.String(),
			"positives", agg.Positives,
			"micro_f1", agg.Micro,
		)
	}

	composite, weights, err := Combine(aggs)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", name, err)
	}
	res.Mentions = aggs[scheme.Mention].Positives
	res.Weights = weights
	res.Composite = composite

	return res, nil
}

// Combine weights each of Presence, Absence and Uncertain by its positives
// over the Mention positives and sums the weighted F1 scores.
func Combine(aggs map[scheme.Scheme]metrics.SchemeAggregate) (Composite, []Weight, error) {
	mention, ok := aggs[scheme.Mention]
	if !ok {
		return Composite{}, nil, fmt.Errorf("missing %s aggregate", scheme.Mention)
	}
	if mention.Positives == 0 {
		return Composite{}, nil, ErrNoMentions
	}
	total := float64(mention.Positives)

	var c Composite
	weights := make([]Weight, 0, len(scheme.Weighted))
	for _, s := range scheme.Weighted {
		agg, ok := aggs[s]
		if !ok {
			return Composite{}, nil, fmt.Errorf("missing %s aggregate", s)
		}
		w := float64(agg.Positives) / total
		c.Micro += agg.Micro * w
		c.Macro += agg.Macro * w
		c.Weighted += agg.Weighted * w
		weights = append(weights, Weight{Scheme: s, Positives: agg.Positives, Share: w})
	}

	return c, weights, nil
}
