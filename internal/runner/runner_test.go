package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRun struct {
	name string
	err  error
}

func (r failingRun) Name() string { return r.name }

func (r failingRun) Load(_ context.Context) (*label.Matrix, align.Recovery, error) {
	return nil, align.Recovery{}, r.err
}

type countingRun struct {
	source.MatrixRun
	loads *atomic.Int32
}

func (r countingRun) Load(ctx context.Context) (*label.Matrix, align.Recovery, error) {
	r.loads.Add(1)
	return r.MatrixRun.Load(ctx)
}

func matrix(t *testing.T, ids []string, edema ...label.Value) *label.Matrix {
	t.Helper()
	require.Len(t, edema, len(ids))

	col := 5
	values := make([][]label.Value, len(ids))
	for i := range ids {
		row := make([]label.Value, len(label.Categories))
		row[col] = edema[i]
		values[i] = row
	}
	m, err := label.NewMatrix(ids, label.Categories, values)
	require.NoError(t, err)
	require.Equal(t, label.Edema, m.Categories[col])
	return m
}

func reference(t *testing.T) *label.Matrix {
	return matrix(t, []string{"s1", "s2", "s3"}, label.Positive, label.ExplicitNegative, label.Uncertain)
}

func TestAverage(t *testing.T) {
	mean, stddev := average([]evaluator.Composite{
		{Micro: 0.8, Macro: 0.5, Weighted: 0.7},
		{Micro: 0.6, Macro: 0.5, Weighted: 0.7},
		{Micro: 1.0, Macro: 0.5, Weighted: 0.7},
	})

	assert.InDelta(t, 0.8, mean.Micro, 1e-12)
	assert.InDelta(t, 0.5, mean.Macro, 1e-12)
	assert.InDelta(t, 0.7, mean.Weighted, 1e-12)
	assert.InDelta(t, 0.2, stddev.Micro, 1e-12)
	assert.InDelta(t, 0.0, stddev.Macro, 1e-12)
}

func TestAverage_SingleRun(t *testing.T) {
	mean, stddev := average([]evaluator.Composite{{Micro: 0.4}})
	assert.InDelta(t, 0.4, mean.Micro, 1e-12)
	assert.Zero(t, stddev.Micro)
}

func TestRunAll_NoRuns(t *testing.T) {
	_, err := New(DefaultConfig()).RunAll(context.Background(), reference(t), nil)

	var noRuns *NoRunsFoundError
	require.True(t, errors.As(err, &noRuns))
}

func TestRunAll_PerfectRun(t *testing.T) {
	ref := reference(t)
	runs := []source.Run{source.MatrixRun{RunName: "perfect", Matrix: ref}}

	res, err := New(DefaultConfig()).RunAll(context.Background(), ref, runs)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.InDelta(t, 1.0, res.Mean.Micro, 1e-12)
	assert.InDelta(t, 1.0, res.Mean.Macro, 1e-12)
	assert.InDelta(t, 1.0, res.Mean.Weighted, 1e-12)
}

func TestRunAll_FailuresAreTolerated(t *testing.T) {
	ref := reference(t)
	disjoint := matrix(t, []string{"s9"}, label.Positive)
	runs := []source.Run{
		failingRun{name: "broken", err: errors.New("malformed")},
		source.MatrixRun{RunName: "good", Matrix: ref},
		source.MatrixRun{RunName: "disjoint", Matrix: disjoint},
	}

	res, err := New(DefaultConfig()).RunAll(context.Background(), ref, runs)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Runs, 3)
	assert.Equal(t, "broken", res.Runs[0].Name)
	assert.Equal(t, "good", res.Runs[1].Name)

	var empty *align.EmptyIntersectionError
	assert.True(t, errors.As(res.Runs[2].Error, &empty))
	assert.Len(t, res.Successful(), 1)
	assert.InDelta(t, 1.0, res.Mean.Micro, 1e-12)
}

func TestRunAll_AllFailed(t *testing.T) {
	ref := reference(t)
	runs := []source.Run{
		failingRun{name: "a", err: errors.New("boom")},
		failingRun{name: "b", err: errors.New("bang")},
	}

	_, err := New(DefaultConfig()).RunAll(context.Background(), ref, runs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllRunsFailed)
	assert.Contains(t, err.Error(), "bang")
}

func TestRunAll_FailFast(t *testing.T) {
	ref := reference(t)
	loads := &atomic.Int32{}
	runs := []source.Run{
		failingRun{name: "a", err: errors.New("boom")},
		countingRun{MatrixRun: source.MatrixRun{RunName: "b", Matrix: ref}, loads: loads},
	}

	_, err := New(Config{FailFast: true}).RunAll(context.Background(), ref, runs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `run "a"`)
	assert.Zero(t, loads.Load())
}

func TestRunAll_NoMentionsIsPerRunFailure(t *testing.T) {
	ref := matrix(t, []string{"s1"}, label.Missing)
	runs := []source.Run{source.MatrixRun{RunName: "r", Matrix: ref}}

	_, err := New(DefaultConfig()).RunAll(context.Background(), ref, runs)
	assert.ErrorIs(t, err, evaluator.ErrNoMentions)
	assert.ErrorIs(t, err, ErrAllRunsFailed)
}

func TestRunAll_WorkersMatchSequential(t *testing.T) {
	ref := reference(t)
	runs := []source.Run{
		source.MatrixRun{RunName: "r1", Matrix: ref},
		source.MatrixRun{RunName: "r2", Matrix: matrix(t, []string{"s1", "s2", "s3"}, label.Positive, label.Positive, label.Missing)},
		source.MatrixRun{RunName: "r3", Matrix: matrix(t, []string{"s1", "s2"}, label.Uncertain, label.ExplicitNegative)},
		failingRun{name: "r4", err: errors.New("boom")},
	}

	seq, err := New(DefaultConfig()).RunAll(context.Background(), ref, runs)
	require.NoError(t, err)
	par, err := New(Config{Workers: 3}).RunAll(context.Background(), ref, runs)
	require.NoError(t, err)

	assert.Equal(t, seq.Mean, par.Mean)
	assert.Equal(t, seq.Stddev, par.Stddev)
	require.Len(t, par.Runs, len(seq.Runs))
	for i := range seq.Runs {
		assert.Equal(t, seq.Runs[i].Name, par.Runs[i].Name)
		assert.Equal(t, seq.Runs[i].Failed(), par.Runs[i].Failed())
	}
}

func TestRunAll_CanceledContext(t *testing.T) {
	ref := reference(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := []source.Run{source.MatrixRun{RunName: "r", Matrix: ref}}
	_, err := New(DefaultConfig()).RunAll(ctx, ref, runs)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(Config{Workers: 2}).RunAll(ctx, ref, runs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAll_FlatScoring(t *testing.T) {
	ref := reference(t)
	runs := []source.Run{
		source.MatrixRun{RunName: "perfect", Matrix: ref},
		// 42 cells: s2 predicted 1 for a 0, s3 predicted missing (0) for -1
		source.MatrixRun{RunName: "two-off", Matrix: matrix(t, []string{"s1", "s2", "s3"}, label.Positive, label.Positive, label.Missing)},
	}

	res, err := New(Config{Scoring: evaluator.ScoringFlat}).RunAll(context.Background(), ref, runs)
	require.NoError(t, err)
	require.Equal(t, 2, res.Succeeded)

	twoOff := res.Runs[1].Result
	assert.Equal(t, evaluator.ScoringFlat, twoOff.Scoring)
	require.NotNil(t, twoOff.Flat)
	assert.InDelta(t, 40.0/42.0, twoOff.Composite.Micro, 1e-12)

	assert.InDelta(t, (1+40.0/42.0)/2, res.Mean.Micro, 1e-12)
	assert.Equal(t, evaluator.ScoringFlat, res.Config.Scoring)
}
