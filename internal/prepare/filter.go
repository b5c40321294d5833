package prepare

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/labeleval/internal/reader"
)

// FilterStudyList copies the rows of list whose study_id appears in the
// labeled reference, keeping every column of list.
func FilterStudyList(labeled, list io.Reader, out io.Writer) (int, error) {
	ref, err := reader.NewCSVReader(labeled).ReadTable()
	if err != nil {
		return 0, fmt.Errorf("read labeled set: %w", err)
	}
	refCol := ref.Column("study_id")
	if refCol < 0 {
		return 0, fmt.Errorf("labeled set has no study_id column")
	}
	keep := make(map[string]bool, len(ref.Rows))
	for _, row := range ref.Rows {
		keep[row[refCol]] = true
	}

	studies, err := reader.NewCSVReader(list).ReadTable()
	if err != nil {
		return 0, fmt.Errorf("read study list: %w", err)
	}
	col := studies.Column("study_id")
	if col < 0 {
		return 0, fmt.Errorf("study list has no study_id column")
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(studies.Headers); err != nil {
		return 0, err
	}
	n := 0
	for _, row := range studies.Rows {
		if !keep[row[col]] {
			continue
		}
		if err := cw.Write(row); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}
