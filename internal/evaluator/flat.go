package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/metrics"
)

// Scoring selects how a run is turned into its run-level scores.
type Scoring string

const (
	// ScoringComposite weights the scheme F1 scores by mentions.
	ScoringComposite Scoring = "composite"
	// ScoringFlat scores the raw label codes of every cell as one multiclass
	// problem, with missing cells counted as 0.
	ScoringFlat Scoring = "flat"
)

// ParseScoring accepts "composite" or "flat". Empty means composite.
func ParseScoring(s string) (Scoring, error) {
	switch Scoring(s) {
	case "", ScoringComposite:
		return ScoringComposite, nil
	case ScoringFlat:
		return ScoringFlat, nil
	default:
		return "", fmt.Errorf("unknown scoring %q", s)
	}
}

// EvaluateFlat aligns run to reference and scores the flattened label codes.
// The composite of the result carries the flat micro, macro and weighted F1.
func (e *Evaluator) EvaluateFlat(name string, reference, run *label.Matrix) (*RunResult, error) {
	aligned, err := align.Align(name, reference, run)
	if err != nil {
		return nil, err
	}

	target, mentions := flatten(aligned.Reference)
	pred, _ := flatten(aligned.Run)

	score, err := metrics.Multiclass(target, pred)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", name, err)
	}

	slog.Debug("flat scored",
		"run", name,
		"cells", len(target),
		"micro_f1", score.Micro,
	)

	return &RunResult{
		Run:      name,
		Scoring:  ScoringFlat,
		Studies:  len(aligned.IDs),
		Mentions: mentions,
		Flat:     &score,
		Composite: Composite{
			Micro:    score.Micro,
			Macro:    score.Macro,
			Weighted: score.Weighted,
		},
	}, nil
}

// flatten returns the row-major label codes of m and the number of
// mentioned cells. Missing cells become 0.
func flatten(m *label.Matrix) ([]int, int) {
	codes := make([]int, 0, m.Len()*len(m.Categories))
	mentions := 0
	for _, row := range m.Values {
		for _, v := range row {
			code, ok := v.Code()
			if ok {
				mentions++
			}
			codes = append(codes, code)
		}
	}
	return codes, mentions
}
