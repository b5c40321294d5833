package metrics

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// ClassScore is the one-vs-rest F1 of a single label code.
type ClassScore struct {
	Class   int     `json:"class"`
	Support int     `json:"support"`
	F1      float64 `json:"f1"`
}

// MulticlassScore scores flattened label codes without any scheme mapping.
type MulticlassScore struct {
	Micro    float64      `json:"micro_f1"`
	Macro    float64      `json:"macro_f1"`
	Weighted float64      `json:"weighted_f1"`
	Classes  []ClassScore `json:"classes"`
}

// Multiclass scores pred against target as a multiclass problem over every
// code seen on either side. Micro F1 equals accuracy. Macro is the plain mean
// of per-class F1 and weighted uses the target support as weights. A class
// with no true positives scores 0.
func Multiclass(target, pred []int) (MulticlassScore, error) {
	if len(target) != len(pred) {
		return MulticlassScore{}, fmt.Errorf("length mismatch: target %d, prediction %d", len(target), len(pred))
	}
	if len(target) == 0 {
		return MulticlassScore{}, nil
	}

	counts := make(map[int]*Confusion)
	at := func(c int) *Confusion {
		cm, ok := counts[c]
		if !ok {
			cm = &Confusion{}
			counts[c] = cm
		}
		return cm
	}

	correct := 0
	for i := range target {
		t, p := target[i], pred[i]
		if t == p {
			correct++
			at(t).TP++
			continue
		}
		at(t).FN++
		at(p).FP++
	}

	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	score := MulticlassScore{
		Micro:   float64(correct) / float64(len(target)),
		Classes: make([]ClassScore, 0, len(classes)),
	}

	f1s := make([]float64, 0, len(classes))
	supports := make([]float64, 0, len(classes))
	for _, c := range classes {
		cm := counts[c]
		cs := ClassScore{Class: c, Support: cm.TP + cm.FN, F1: microF1(*cm)}
		score.Classes = append(score.Classes, cs)
		f1s = append(f1s, cs.F1)
		supports = append(supports, float64(cs.Support))
	}

	score.Macro = stat.Mean(f1s, nil)
	score.Weighted = stat.Mean(f1s, supports)
	return score, nil
}
