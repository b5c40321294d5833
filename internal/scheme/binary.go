package scheme

import (
	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

// Binary is a label matrix encoded under one scheme.
type Binary struct {
	Scheme     Scheme
	IDs        []string
	Categories []string
	Rows       [][]Bit
}

// Encode builds a fresh binary matrix from m. The source matrix is not modified.
func Encode(s Scheme, m *label.Matrix) *Binary {
	rows := make([][]Bit, len(m.Values))
	for i, src := range m.Values {
		row := make([]Bit, len(src))
		for j, v := range src {
			row[j] = s.Apply(v)
		}
		rows[i] = row
	}

	return &Binary{
		Scheme:     s,
		IDs:        m.IDs,
		Categories: m.Categories,
		Rows:       rows,
	}
}

// Lift maps a binary matrix back into the label domain: set bits become the
// scheme's positive value and clear bits become Missing.
func Lift(b *Binary) *label.Matrix {
	pos := b.Scheme.positiveValue()
	values := make([][]label.Value, len(b.Rows))
	for i, src := range b.Rows {
		row := make([]label.Value, len(src))
		for j, bit := range src {
			if bit == One {
				row[j] = pos
			}
		}
		values[i] = row
	}
	return &label.Matrix{IDs: b.IDs, Categories: b.Categories, Values: values}
}

// Reencode encodes b again under its own scheme. The result equals b.
func Reencode(b *Binary) *Binary {
	return Encode(b.Scheme, Lift(b))
}

// Column copies category j into a new slice.
func (b *Binary) Column(j int) []Bit {
	col := make([]Bit, len(b.Rows))
	for i, row := range b.Rows {
		col[i] = row[j]
	}
	return col
}

// Flatten returns all cells in row-major order.
func (b *Binary) Flatten() []Bit {
	if len(b.Rows) == 0 {
		return nil
	}
	out := make([]Bit, 0, len(b.Rows)*len(b.Rows[0]))
	for _, row := range b.Rows {
		out = append(out, row...)
	}
	return out
}

// Positives counts set bits per category.
func (b *Binary) Positives() []int {
	counts := make([]int, len(b.Categories))
	for _, row := range b.Rows {
		for j, bit := range row {
			if bit == One {
				counts[j]++
			}
		}
	}
	return counts
}

// Total counts set bits over the whole matrix.
func (b *Binary) Total() int {
	var n int
	for _, c := range b.Positives() {
		n += c
	}
	return n
}
