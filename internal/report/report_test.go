package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/runner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	values := make([][]label.Value, 2)
	for i := range values {
		values[i] = make([]label.Value, len(label.Categories))
	}
	values[0][5] = label.Positive
	values[1][5] = label.ExplicitNegative

	ref, err := label.NewMatrix([]string{"1", "2"}, label.Categories, values)
	require.NoError(t, err)

	res, err := evaluator.New().EvaluateRun("chexbert_labeled_1.csv", ref, ref)
	require.NoError(t, err)

	return &runner.Result{
		Config: runner.Config{Workers: 2},
		Runs: []runner.RunOutcome{
			{
				Name:     "chexbert_labeled_1.csv",
				Recovery: align.Recovery{Rows: 3, Matched: 2, Dropped: 1},
				Result:   res,
				Duration: 1500 * time.Millisecond,
			},
			{
				Name:  "chexbert_labeled_2.csv",
				Error: errors.New("malformed input"),
			},
		},
		Succeeded: 1,
		Failed:    1,
		Mean:      res.Composite,
	}
}

func TestGenerate(t *testing.T) {
	r := Generate(sampleResult(t), Options{Version: "v0.1.0", Reference: "ref.csv"})

	assert.NotEqual(t, uuid.Nil, r.Meta.ID)
	assert.Equal(t, "v0.1.0", r.Meta.Version)
	assert.Equal(t, "ref.csv", r.Meta.Reference)
	assert.Equal(t, 2, r.Config.Workers)

	require.Len(t, r.Runs, 2)
	ok := r.Runs[0]
	assert.Equal(t, StatusOK, ok.Status)
	assert.Equal(t, 2, ok.Studies)
	assert.Equal(t, 2, ok.Mentions)
	assert.Equal(t, int64(1500), ok.DurationMS)
	require.NotNil(t, ok.Composite)
	assert.InDelta(t, 1.0, ok.Composite.Micro, 1e-12)
	assert.Len(t, ok.Schemes, 4)

	failed := r.Runs[1]
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "malformed input", failed.Error)
	assert.Nil(t, failed.Composite)

	assert.Equal(t, 2, r.Summary.Runs)
	assert.Equal(t, 1, r.Summary.Succeeded)
	assert.Equal(t, 1, r.Summary.Failed)
	assert.InDelta(t, 1.0, r.Summary.Mean.Micro, 1e-12)
}

func TestWriteTable(t *testing.T) {
	r := Generate(sampleResult(t), Options{Reference: "ref.csv"})

	var buf bytes.Buffer
	require.NoError(t, WriteTable(r, &buf))
	out := buf.String()

	assert.Contains(t, out, "=== Label Scheme Evaluation ===")
	assert.Contains(t, out, "--- Run: chexbert_labeled_1.csv ---")
	assert.Contains(t, out, "dropped rows: 1")
	for _, s := range []string{"Scheme: mention", "Scheme: presence", "Scheme: absence", "Scheme: uncertain"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "1.000")
	assert.NotContains(t, out, "1.0000")
	assert.Contains(t, out, "FAILED: malformed input")
	assert.Contains(t, out, "=== Summary (mean across 1 of 2 runs) ===")
}

func TestWriteJSON(t *testing.T) {
	r := Generate(sampleResult(t), Options{Reference: "ref.csv"})
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Runs []struct {
			Status  string `json:"status"`
			Schemes []struct {
				Scheme     string `json:"scheme"`
				Categories []struct {
					Category string   `json:"category"`
					F1       *float64 `json:"f1"`
				} `json:"categories"`
			} `json:"schemes"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Runs, 2)
	require.Len(t, decoded.Runs[0].Schemes, 4)
	assert.Equal(t, "mention", decoded.Runs[0].Schemes[0].Scheme)

	cats := decoded.Runs[0].Schemes[0].Categories
	require.Len(t, cats, len(label.Categories))
	assert.Nil(t, cats[0].F1)
	require.NotNil(t, cats[5].F1)
	assert.InDelta(t, 1.0, *cats[5].F1, 1e-12)
	assert.Empty(t, decoded.Runs[1].Schemes)
}

func TestEncodeJSON(t *testing.T) {
	r := Generate(sampleResult(t), Options{})

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(r, &buf))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestWriteCSV(t *testing.T) {
	r := Generate(sampleResult(t), Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(r, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "run,status,studies,mentions,dropped_rows,micro_f1,macro_f1,weighted_f1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "chexbert_labeled_1.csv,ok,2,2,1,"))
	assert.True(t, strings.HasPrefix(lines[2], "chexbert_labeled_2.csv,failed,"))
	assert.True(t, strings.HasPrefix(lines[3], "mean,1/2,"))
}

func TestWriteCSVFile(t *testing.T) {
	r := Generate(sampleResult(t), Options{})
	path := filepath.Join(t.TempDir(), "composites.csv")
	require.NoError(t, WriteCSVFile(r, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteTable_FlatRun(t *testing.T) {
	values := make([][]label.Value, 2)
	for i := range values {
		values[i] = make([]label.Value, len(label.Categories))
	}
	values[0][5] = label.Positive
	values[1][5] = label.Uncertain

	ref, err := label.NewMatrix([]string{"1", "2"}, label.Categories, values)
	require.NoError(t, err)
	res, err := evaluator.New().EvaluateFlat("visualchexbert_labeled_0.csv", ref, ref)
	require.NoError(t, err)

	r := Generate(&runner.Result{
		Config:    runner.Config{Workers: 1, Scoring: evaluator.ScoringFlat},
		Runs:      []runner.RunOutcome{{Name: "visualchexbert_labeled_0.csv", Result: res}},
		Succeeded: 1,
		Mean:      res.Composite,
	}, Options{Reference: "ref.csv"})

	assert.Equal(t, evaluator.ScoringFlat, r.Config.Scoring)
	require.NotNil(t, r.Runs[0].Flat)
	assert.Len(t, r.Runs[0].Flat.Classes, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(r, &buf))
	out := buf.String()

	assert.Contains(t, out, "Flat label codes")
	assert.Contains(t, out, "Flat: micro 1.000  macro 1.000  weighted 1.000")
	assert.NotContains(t, out, "Scheme: mention")
	assert.Contains(t, out, "=== Summary (mean across 1 of 1 runs) ===")
}
