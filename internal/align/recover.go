package align

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

// ReportText pairs a reference study id with the exact text given to labelers.
type ReportText struct {
	ID   string `csv:"id"`
	Text string `csv:"text"`
}

// RunRows is a labeler output before study ids are known.
type RunRows struct {
	Texts      []string
	Categories []string
	Values     [][]label.Value
}

// Recovery describes how many run rows survived id recovery.
type Recovery struct {
	Rows       int `json:"rows"`
	Matched    int `json:"matched"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
	Conflicts  int `json:"conflicts"`
}

// RecoverByText assigns study ids to run rows by exact text match against the
// reference texts. Unmatched rows are dropped; identical (id, labels) rows are
// collapsed; when one id receives differing labels the first row wins.
func RecoverByText(rows *RunRows, mapping []ReportText) (*label.Matrix, Recovery, error) {
	byText := make(map[string][]string, len(mapping))
	for _, rt := range mapping {
		byText[rt.Text] = append(byText[rt.Text], rt.ID)
	}

	rec := Recovery{Rows: len(rows.Values)}
	var ids []string
	var values [][]label.Value
	kept := make(map[string][]label.Value)

	for i, text := range rows.Texts {
		matches, ok := byText[text]
		if !ok {
			rec.Dropped++
			continue
		}
		rec.Matched++

		for _, id := range matches {
			prev, seen := kept[id]
			if seen {
				if slices.Equal(prev, rows.Values[i]) {
					rec.Duplicates++
				} else {
					rec.Conflicts++
					slog.Warn("conflicting labels for recovered study, keeping first", "id", id, "row", i)
				}
				continue
			}
			kept[id] = rows.Values[i]
			ids = append(ids, id)
			values = append(values, rows.Values[i])
		}
	}

	if rec.Dropped > 0 {
		slog.Info("dropped run rows without a matching reference text", "dropped", rec.Dropped, "rows", rec.Rows)
	}

	m, err := label.NewMatrix(ids, rows.Categories, values)
	if err != nil {
		return nil, rec, fmt.Errorf("build recovered matrix: %w", err)
	}
	return m, rec, nil
}

// RecoverByPosition pairs run rows with an ordered list of study ids.
func RecoverByPosition(rows *RunRows, ids []string) (*label.Matrix, Recovery, error) {
	if len(ids) != len(rows.Values) {
		return nil, Recovery{}, fmt.Errorf("ordered id list has %d entries but run has %d rows", len(ids), len(rows.Values))
	}

	m, err := label.NewMatrix(slices.Clone(ids), rows.Categories, rows.Values)
	if err != nil {
		return nil, Recovery{}, fmt.Errorf("build positional matrix: %w", err)
	}
	return m, Recovery{Rows: len(ids), Matched: len(ids)}, nil
}
