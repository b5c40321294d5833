package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/DjordjeVuckovic/labeleval/internal/reader"
)

// CSVReference reads the reference from a wide label CSV.
type CSVReference struct {
	Path string
}

func (r CSVReference) Name() string { return filepath.Base(r.Path) }

func (r CSVReference) Load(_ context.Context) (*label.Matrix, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open reference: %w", err)
	}
	defer f.Close()

	return reader.LoadReference(r.Path, f)
}

// TextRun recovers study ids by matching report text against a mapping.
type TextRun struct {
	Path    string
	Mapping []align.ReportText
}

func (r TextRun) Name() string { return filepath.Base(r.Path) }

func (r TextRun) Load(_ context.Context) (*label.Matrix, align.Recovery, error) {
	rows, err := loadRows(r.Path)
	if err != nil {
		return nil, align.Recovery{}, err
	}
	return align.RecoverByText(rows, r.Mapping)
}

// PositionalRun pairs rows with an ordered study id list.
type PositionalRun struct {
	Path string
	IDs  []string
}

func (r PositionalRun) Name() string { return filepath.Base(r.Path) }

func (r PositionalRun) Load(_ context.Context) (*label.Matrix, align.Recovery, error) {
	rows, err := loadRows(r.Path)
	if err != nil {
		return nil, align.Recovery{}, err
	}
	return align.RecoverByPosition(rows, r.IDs)
}

func loadRows(path string) (*align.RunRows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run: %w", err)
	}
	defer f.Close()

	return reader.LoadRunRows(path, f)
}

// LoadMapping reads the headerless id,text file given to the labelers.
func LoadMapping(path string) ([]align.ReportText, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text mapping: %w", err)
	}
	defer f.Close()

	return reader.LoadReportTexts(path, f)
}

// LoadOrderedIDs reads a study_id list in labeler input order.
func LoadOrderedIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ordered ids: %w", err)
	}
	defer f.Close()

	return reader.LoadOrderedIDs(path, f)
}

// TextRuns builds a TextRun for every path.
func TextRuns(paths []string, mapping []align.ReportText) []Run {
	runs := make([]Run, len(paths))
	for i, p := range paths {
		runs[i] = TextRun{Path: p, Mapping: mapping}
	}
	return runs
}

// PositionalRuns builds a PositionalRun for every path.
func PositionalRuns(paths []string, ids []string) []Run {
	runs := make([]Run, len(paths))
	for i, p := range paths {
		runs[i] = PositionalRun{Path: p, IDs: ids}
	}
	return runs
}
