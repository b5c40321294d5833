// Package metrics scores binary label columns and whole binary matrices.
package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/labeleval/internal/scheme"
	"gopkg.in/guregu/null.v3"
)

// Confusion holds the 2x2 counts for one category.
type Confusion struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TN int `json:"tn"`
}

func (c Confusion) add(o Confusion) Confusion {
	return Confusion{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN, TN: c.TN + o.TN}
}

// CategoryScore is the result for a single category. Precision, Recall and F1
// are null when the category has no positive targets.
type CategoryScore struct {
	Category  string     `json:"category"`
	Precision null.Float `json:"precision"`
	Recall    null.Float `json:"recall"`
	F1        null.Float `json:"f1"`
	Positives int        `json:"positives"`
	Confusion Confusion  `json:"confusion"`
}

// Defined reports whether precision, recall and F1 were computed.
func (s CategoryScore) Defined() bool {
	return s.F1.Valid
}

type options struct {
	ignoreUnresolved bool
}

type Option func(*options)

// IgnoreUnresolved drops pairs where either side is scheme.Unresolved before scoring.
func IgnoreUnresolved() Option {
	return func(o *options) {
		o.ignoreUnresolved = true
	}
}

// EvaluateLabel computes precision, recall, F1 and the positive count for one category.
func EvaluateLabel(target, pred []scheme.Bit, opts ...Option) CategoryScore {
	if len(target) != len(pred) {
		panic(fmt.Sprintf("metrics: target has %d cells, prediction has %d", len(target), len(pred)))
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cm := confusion(target, pred, o.ignoreUnresolved)
	score := CategoryScore{
		Positives: cm.TP + cm.FN,
		Confusion: cm,
	}
	if score.Positives == 0 {
		return score
	}

	p := precision(cm)
	r := float64(cm.TP) / float64(score.Positives)
	score.Precision = null.FloatFrom(p)
	score.Recall = null.FloatFrom(r)
	score.F1 = null.FloatFrom(harmonic(p, r))

	return score
}

func confusion(target, pred []scheme.Bit, ignoreUnresolved bool) Confusion {
	var cm Confusion
	for i := range target {
		t, p := target[i], pred[i]
		if ignoreUnresolved && (t == scheme.Unresolved || p == scheme.Unresolved) {
			continue
		}
		switch {
		case t == scheme.One && p == scheme.One:
			cm.TP++
		case t == scheme.One:
			cm.FN++
		case p == scheme.One:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm
}

func precision(cm Confusion) float64 {
	if cm.TP+cm.FP == 0 {
		return 0
	}
	return float64(cm.TP) / float64(cm.TP+cm.FP)
}

func harmonic(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
