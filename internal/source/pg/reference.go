// Package pg reads reference labels stored in PostgreSQL.
package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/jackc/pgx/v5"
)

const DefaultTable = "reference_labels"

var referenceColumns = []string{"study_id", "category", "value"}

type referenceRow struct {
	StudyID  string
	Category string
	Value    *int16
}

// Reference loads a long-format reference table. Absent rows and NULL values
// are Missing.
type Reference struct {
	pool  *ConnectionPool
	table string
}

func NewReference(pool *ConnectionPool, table string) *Reference {
	if table == "" {
		table = DefaultTable
	}
	return &Reference{pool: pool, table: table}
}

func (r *Reference) Name() string {
	return "postgres:" + r.table
}

func (r *Reference) Load(ctx context.Context) (*label.Matrix, error) {
	q := fmt.Sprintf(
		"SELECT study_id, category, value FROM %s ORDER BY study_id, category",
		pgx.Identifier{r.table}.Sanitize(),
	)

	rows, err := r.pool.GetConn().Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query reference labels: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[referenceRow])
	if err != nil {
		return nil, fmt.Errorf("collect reference labels: %w", err)
	}

	m, err := buildMatrix(records)
	if err != nil {
		return nil, apperr.NewSchema(r.Name(), referenceColumns, err)
	}

	slog.Info("loaded reference from postgres", "table", r.table, "studies", m.Len(), "cells", len(records))
	return m, nil
}

func buildMatrix(records []referenceRow) (*label.Matrix, error) {
	cols := make(map[string]int, len(label.Categories))
	for j, c := range label.Categories {
		cols[c] = j
	}

	var ids []string
	var values [][]label.Value
	rowOf := make(map[string]int)
	seen := make(map[[2]int]string)

	for _, rec := range records {
		cat := label.Canonical(rec.Category)
		j, ok := cols[cat]
		if !ok {
			return nil, fmt.Errorf("unknown category %q for study %q", rec.Category, rec.StudyID)
		}

		i, ok := rowOf[rec.StudyID]
		if !ok {
			i = len(ids)
			rowOf[rec.StudyID] = i
			ids = append(ids, rec.StudyID)
			values = append(values, make([]label.Value, len(label.Categories)))
		}

		if prev, dup := seen[[2]int{i, j}]; dup {
			return nil, fmt.Errorf("study %q has both %q and %q, which name the same category %q",
				rec.StudyID, prev, rec.Category, cat)
		}
		seen[[2]int{i, j}] = rec.Category

		if rec.Value == nil {
			continue
		}
		v, err := label.FromCode(int(*rec.Value))
		if err != nil {
			return nil, fmt.Errorf("study %q category %q: %w", rec.StudyID, rec.Category, err)
		}
		values[i][j] = v
	}

	return label.NewMatrix(ids, label.Categories, values)
}
