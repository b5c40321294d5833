package reader

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

// ReportColumn holds the free text in labeler output files.
const ReportColumn = "Report Impression"

// ReferenceSchema is the expected header of a reference label file.
func ReferenceSchema() []string {
	return append([]string{"study_id"}, label.Categories...)
}

// RunSchema is the expected header of a labeler output file.
func RunSchema() []string {
	return append([]string{ReportColumn}, label.Categories...)
}

// LoadReference parses a reference label file. The first column holds the
// study id whatever its header; every other column must be a category.
func LoadReference(name string, r io.Reader) (*label.Matrix, error) {
	t, err := NewCSVReader(r, WithDetectedDelimiter()).ReadTable()
	if err != nil {
		return nil, apperr.NewSchema(name, ReferenceSchema(), err)
	}
	if len(t.Headers) < 2 {
		return nil, apperr.NewSchema(name, ReferenceSchema(), fmt.Errorf("found %d columns", len(t.Headers)))
	}

	cats := t.Headers[1:]
	if err := checkCategories(cats); err != nil {
		return nil, apperr.NewSchema(name, ReferenceSchema(), err)
	}

	ids := make([]string, len(t.Rows))
	values := make([][]label.Value, len(t.Rows))
	for i, row := range t.Rows {
		ids[i] = row[0]
		vals, err := parseRow(row[1:], i)
		if err != nil {
			return nil, apperr.NewSchema(name, ReferenceSchema(), err)
		}
		values[i] = vals
	}

	m, err := label.NewMatrix(ids, cats, values)
	if err != nil {
		return nil, apperr.NewSchema(name, ReferenceSchema(), err)
	}
	if err := m.RequireTaxonomy(name); err != nil {
		return nil, apperr.NewSchema(name, ReferenceSchema(), err)
	}
	return m, nil
}

// LoadRunRows parses a labeler output file into rows keyed by report text.
func LoadRunRows(name string, r io.Reader) (*align.RunRows, error) {
	t, err := NewCSVReader(r, WithDetectedDelimiter()).ReadTable()
	if err != nil {
		return nil, apperr.NewSchema(name, RunSchema(), err)
	}

	textCol := t.Column(ReportColumn)
	if textCol < 0 {
		return nil, apperr.NewSchema(name, RunSchema(), fmt.Errorf("no %q column", ReportColumn))
	}

	var cats []string
	var catCols []int
	for i, h := range t.Headers {
		if i == textCol {
			continue
		}
		cats = append(cats, h)
		catCols = append(catCols, i)
	}
	if err := checkCategories(cats); err != nil {
		return nil, apperr.NewSchema(name, RunSchema(), err)
	}

	rows := &align.RunRows{
		Texts:      make([]string, len(t.Rows)),
		Categories: cats,
		Values:     make([][]label.Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		rows.Texts[i] = row[textCol]
		cells := make([]string, len(catCols))
		for j, c := range catCols {
			cells[j] = row[c]
		}
		vals, err := parseRow(cells, i)
		if err != nil {
			return nil, apperr.NewSchema(name, RunSchema(), err)
		}
		rows.Values[i] = vals
	}

	header := &label.Matrix{Categories: canonical(cats)}
	if err := header.RequireTaxonomy(name); err != nil {
		return nil, apperr.NewSchema(name, RunSchema(), err)
	}

	return rows, nil
}

func checkCategories(headers []string) error {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if !label.IsCategory(h) {
			return fmt.Errorf("unknown column %q", h)
		}
		c := label.Canonical(h)
		if seen[c] {
			return fmt.Errorf("category %q appears twice", c)
		}
		seen[c] = true
	}
	return nil
}

func canonical(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = label.Canonical(h)
	}
	return out
}

func parseRow(cells []string, rowIdx int) ([]label.Value, error) {
	vals := make([]label.Value, len(cells))
	for j, cell := range cells {
		v, err := label.ParseValue(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d column %d: %w", rowIdx+1, j+2, err)
		}
		vals[j] = v
	}
	return vals, nil
}
