package label

import (
	"fmt"
	"strings"
)

// Matrix holds the judgments of one source: one row per study, one column per category.
// A Matrix is treated as immutable once built; selections return new matrices.
type Matrix struct {
	IDs        []string
	Categories []string
	Values     [][]Value
}

// MissingCategoriesError is returned when a source lacks taxonomy categories
// after synonym unification.
type MissingCategoriesError struct {
	Source  string
	Missing []string
}

func (e *MissingCategoriesError) Error() string {
	return fmt.Sprintf("%s: missing categories after synonym unification: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

// NewMatrix validates the shape of the given rows and unifies category synonyms.
func NewMatrix(ids, categories []string, values [][]Value) (*Matrix, error) {
	if len(ids) != len(values) {
		return nil, fmt.Errorf("matrix has %d ids but %d rows", len(ids), len(values))
	}

	cats := make([]string, len(categories))
	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		cats[i] = Canonical(c)
		if seen[cats[i]] {
			return nil, fmt.Errorf("duplicate category %q", cats[i])
		}
		seen[cats[i]] = true
	}

	for i, row := range values {
		if len(row) != len(cats) {
			return nil, fmt.Errorf("row %q has %d values, expected %d", ids[i], len(row), len(cats))
		}
	}

	return &Matrix{IDs: ids, Categories: cats, Values: values}, nil
}

func (m *Matrix) Len() int {
	return len(m.IDs)
}

// Column returns the index of category, or -1.
func (m *Matrix) Column(category string) int {
	category = Canonical(category)
	for i, c := range m.Categories {
		if c == category {
			return i
		}
	}
	return -1
}

// RequireTaxonomy checks that every taxonomy category is present.
func (m *Matrix) RequireTaxonomy(source string) error {
	var missing []string
	for _, c := range Categories {
		if m.Column(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingCategoriesError{Source: source, Missing: missing}
	}
	return nil
}

// Index maps each id to its row.
func (m *Matrix) Index() map[string]int {
	idx := make(map[string]int, len(m.IDs))
	for i, id := range m.IDs {
		idx[id] = i
	}
	return idx
}

// Select returns a new matrix with the given rows, in the given order, and
// the taxonomy columns in taxonomy order. Every id must be present.
func (m *Matrix) Select(ids []string) (*Matrix, error) {
	if err := m.RequireTaxonomy("matrix"); err != nil {
		return nil, err
	}

	cols := make([]int, len(Categories))
	for j, c := range Categories {
		cols[j] = m.Column(c)
	}

	rowIdx := m.Index()
	values := make([][]Value, len(ids))
	for i, id := range ids {
		r, ok := rowIdx[id]
		if !ok {
			return nil, fmt.Errorf("id %q not in matrix", id)
		}
		row := make([]Value, len(cols))
		for j, c := range cols {
			row[j] = m.Values[r][c]
		}
		values[i] = row
	}

	out := make([]string, len(ids))
	copy(out, ids)
	cats := make([]string, len(Categories))
	copy(cats, Categories)

	return &Matrix{IDs: out, Categories: cats, Values: values}, nil
}

// WithIDs returns a shallow copy of m whose ids are mapped through fn.
func (m *Matrix) WithIDs(fn func(string) string) *Matrix {
	ids := make([]string, len(m.IDs))
	for i, id := range m.IDs {
		ids[i] = fn(id)
	}
	return &Matrix{IDs: ids, Categories: m.Categories, Values: m.Values}
}
