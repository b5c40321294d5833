package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/metrics"
	"github.com/google/uuid"
)

type Report struct {
	Meta    Meta        `json:"meta"`
	Config  Config      `json:"config"`
	Runs    []RunReport `json:"runs"`
	Summary Summary     `json:"summary"`
}

type Meta struct {
	ID          uuid.UUID       `json:"id"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Reference   string          `json:"reference"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type Config struct {
	Workers          int               `json:"workers"`
	FailFast         bool              `json:"fail_fast"`
	IgnoreUnresolved bool              `json:"ignore_unresolved"`
	Scoring          evaluator.Scoring `json:"scoring"`
}

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

type RunReport struct {
	Run        string                    `json:"run"`
	Status     string                    `json:"status"`
	Error      string                    `json:"error,omitempty"`
	Recovery   align.Recovery            `json:"recovery"`
	Studies    int                       `json:"studies"`
	Mentions   int                       `json:"mentions"`
	Schemes    []metrics.SchemeAggregate `json:"schemes,omitempty"`
	Weights    []evaluator.Weight        `json:"weights,omitempty"`
	Flat       *metrics.MulticlassScore  `json:"flat,omitempty"`
	Composite  *evaluator.Composite      `json:"composite,omitempty"`
	DurationMS int64                     `json:"duration_ms"`
}

type Summary struct {
	Runs      int                 `json:"runs"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Mean      evaluator.Composite `json:"mean"`
	Stddev    evaluator.Composite `json:"stddev"`
}
