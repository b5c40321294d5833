// Package align joins a prediction run to the reference by study identifier.
package align

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

// EmptyIntersectionError means a run shares no study with the reference.
type EmptyIntersectionError struct {
	Run           string
	ReferenceSize int
	RunSize       int
}

func (e *EmptyIntersectionError) Error() string {
	return fmt.Sprintf("run %q shares no study identifiers with the reference (reference: %d studies, run: %d studies)",
		e.Run, e.ReferenceSize, e.RunSize)
}

func (e *EmptyIntersectionError) Unprocessable() bool { return true }

// Aligned holds the reference and run restricted to their common studies,
// co-indexed by ascending identifier and by taxonomy order.
type Aligned struct {
	IDs       []string
	Reference *label.Matrix
	Run       *label.Matrix
}

// NormalizeID strips the non-numeric prefix of a report id ("s50414267" -> "50414267").
// Ids with no digit after the prefix are returned trimmed but otherwise unchanged.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	rest := strings.TrimLeftFunc(id, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if rest == "" {
		return id
	}
	return rest
}

// Align restricts both matrices to the studies they share.
func Align(name string, reference, run *label.Matrix) (*Aligned, error) {
	if err := reference.RequireTaxonomy("reference"); err != nil {
		return nil, err
	}
	if err := run.RequireTaxonomy(name); err != nil {
		return nil, err
	}

	ref, err := normalized("reference", reference)
	if err != nil {
		return nil, err
	}
	pred, err := normalized(name, run)
	if err != nil {
		return nil, err
	}

	predIdx := pred.Index()
	var common []string
	for _, id := range ref.IDs {
		if _, ok := predIdx[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return nil, &EmptyIntersectionError{Run: name, ReferenceSize: ref.Len(), RunSize: pred.Len()}
	}
	SortIDs(common)

	slog.Debug("aligned run to reference",
		"run", name,
		"reference", ref.Len(),
		"predicted", pred.Len(),
		"common", len(common),
	)

	refSel, err := ref.Select(common)
	if err != nil {
		return nil, fmt.Errorf("select reference rows: %w", err)
	}
	predSel, err := pred.Select(common)
	if err != nil {
		return nil, fmt.Errorf("select run rows: %w", err)
	}

	return &Aligned{IDs: refSel.IDs, Reference: refSel, Run: predSel}, nil
}

func normalized(source string, m *label.Matrix) (*label.Matrix, error) {
	out := m.WithIDs(NormalizeID)
	seen := make(map[string]bool, out.Len())
	for _, id := range out.IDs {
		if id == "" {
			return nil, fmt.Errorf("%s: empty study identifier", source)
		}
		if seen[id] {
			return nil, fmt.Errorf("%s: duplicate study identifier %q", source, id)
		}
		seen[id] = true
	}
	return out, nil
}

// SortIDs orders ids ascending: numerically when every id is an integer,
// lexicographically otherwise.
func SortIDs(ids []string) {
	nums := make(map[string]int64, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slices.Sort(ids)
			return
		}
		nums[id] = n
	}
	slices.SortFunc(ids, func(a, b string) int {
		switch {
		case nums[a] < nums[b]:
			return -1
		case nums[a] > nums[b]:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}
