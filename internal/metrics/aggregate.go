package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/labeleval/internal/scheme"
	"gonum.org/v1/gonum/stat"
)

// SchemeAggregate summarizes one scheme over all categories and studies.
type SchemeAggregate struct {
	Scheme     scheme.Scheme   `json:"scheme"`
	Micro      float64         `json:"micro_f1"`
	Macro      float64         `json:"macro_f1"`
	Weighted   float64         `json:"weighted_f1"`
	Positives  int             `json:"positives"`
	Categories []CategoryScore `json:"categories"`
}

// Aggregate scores every category of the pair and pools them into micro,
// macro and positive-weighted F1. Categories without positives are left out
// of the macro and weighted means.
func Aggregate(target, pred *scheme.Binary, opts ...Option) (SchemeAggregate, error) {
	if err := sameShape(target, pred); err != nil {
		return SchemeAggregate{}, err
	}

	agg := SchemeAggregate{
		Scheme:     target.Scheme,
		Categories: make([]CategoryScore, len(target.Categories)),
	}

	var pooled Confusion
	var f1s, weights []float64

	for j, cat := range target.Categories {
		s := EvaluateLabel(target.Column(j), pred.Column(j), opts...)
		s.Category = cat
		agg.Categories[j] = s
		agg.Positives += s.Positives
		pooled = pooled.add(s.Confusion)

		if s.Defined() {
			f1s = append(f1s, s.F1.Float64)
			weights = append(weights, float64(s.Positives))
		}
	}

	agg.Micro = microF1(pooled)
	if len(f1s) > 0 {
		agg.Macro = stat.Mean(f1s, nil)
		agg.Weighted = stat.Mean(f1s, weights)
	}

	return agg, nil
}

func microF1(cm Confusion) float64 {
	denom := 2*cm.TP + cm.FP + cm.FN
	if denom == 0 {
		return 0
	}
	return float64(2*cm.TP) / float64(denom)
}

func sameShape(target, pred *scheme.Binary) error {
	if target.Scheme != pred.Scheme {
		return fmt.Errorf("scheme mismatch: target %s, prediction %s", target.Scheme, pred.Scheme)
	}
	if len(target.Rows) != len(pred.Rows) {
		return fmt.Errorf("row count mismatch: target %d, prediction %d", len(target.Rows), len(pred.Rows))
	}
	if len(target.Categories) != len(pred.Categories) {
		return fmt.Errorf("category count mismatch: target %d, prediction %d", len(target.Categories), len(pred.Categories))
	}
	for j := range target.Categories {
		if target.Categories[j] != pred.Categories[j] {
			return fmt.Errorf("category %d mismatch: target %q, prediction %q", j, target.Categories[j], pred.Categories[j])
		}
	}
	return nil
}
