// Package source locates and loads the label matrices that feed an evaluation.
package source

import (
	"context"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

// Run is one labeler output whose study ids may need recovering.
type Run interface {
	Name() string
	Load(ctx context.Context) (*label.Matrix, align.Recovery, error)
}

// Reference supplies the curated ground truth.
type Reference interface {
	Name() string
	Load(ctx context.Context) (*label.Matrix, error)
}

// MatrixRun is a Run over an already built matrix.
type MatrixRun struct {
	RunName string
	Matrix  *label.Matrix
}

func (r MatrixRun) Name() string { return r.RunName }

func (r MatrixRun) Load(_ context.Context) (*label.Matrix, align.Recovery, error) {
	n := r.Matrix.Len()
	return r.Matrix, align.Recovery{Rows: n, Matched: n}, nil
}
