package runner

import "github.com/DjordjeVuckovic/labeleval/internal/evaluator"

const (
	DefaultWorkers = 1
)

type Config struct {
	// Workers bounds how many runs are evaluated at once.
	Workers int
	// FailFast aborts on the first failed run instead of recording it.
	FailFast bool
	// IgnoreUnresolved masks unresolved cells before counting.
	IgnoreUnresolved bool
	// Scoring picks composite or flat run scores. Empty means composite.
	Scoring evaluator.Scoring
}

func DefaultConfig() Config {
	return Config{
		Workers: DefaultWorkers,
		Scoring: evaluator.ScoringComposite,
	}
}
