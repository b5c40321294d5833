package runner

import (
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/montanaflynn/stats"
)

// average returns the component-wise mean and sample standard deviation.
// The deviation is zero for fewer than two composites.
func average(composites []evaluator.Composite) (mean, stddev evaluator.Composite) {
	if len(composites) == 0 {
		return evaluator.Composite{}, evaluator.Composite{}
	}

	micro := make(stats.Float64Data, len(composites))
	macro := make(stats.Float64Data, len(composites))
	weighted := make(stats.Float64Data, len(composites))
	for i, c := range composites {
		micro[i] = c.Micro
		macro[i] = c.Macro
		weighted[i] = c.Weighted
	}

	mean = evaluator.Composite{
		Micro:    meanOf(micro),
		Macro:    meanOf(macro),
		Weighted: meanOf(weighted),
	}
	if len(composites) < 2 {
		return mean, evaluator.Composite{}
	}

	stddev = evaluator.Composite{
		Micro:    sampleStddev(micro),
		Macro:    sampleStddev(macro),
		Weighted: sampleStddev(weighted),
	}
	return mean, stddev
}

func meanOf(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}

func sampleStddev(data stats.Float64Data) float64 {
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0
	}
	return sd
}
