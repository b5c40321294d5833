package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func header(first string) string {
	return first + "," + strings.Join(label.Categories, ",") + "\n"
}

func line(first string, fill string) string {
	cells := make([]string, len(label.Categories))
	for i := range cells {
		cells[i] = fill
	}
	return first + "," + strings.Join(cells, ",") + "\n"
}

func TestDiscoverRuns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chexbert_labeled_2.csv", "")
	writeFile(t, dir, "chexbert_labeled_1.csv", "")
	writeFile(t, dir, "visualchexbert_labeled_1.csv", "")
	writeFile(t, dir, "chexbert_labeled_notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "chexbert_labeled_dir.csv"), 0o755))

	paths, err := DiscoverRuns(dir, DefaultPrefix, DefaultSuffix)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "chexbert_labeled_1.csv"),
		filepath.Join(dir, "chexbert_labeled_2.csv"),
	}, paths)

	visual, err := DiscoverRuns(dir, VisualPrefix, DefaultSuffix)
	require.NoError(t, err)
	assert.Len(t, visual, 1)
}

func TestDiscoverRuns_Empty(t *testing.T) {
	paths, err := DiscoverRuns(t.TempDir(), DefaultPrefix, DefaultSuffix)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDiscoverRuns_MissingDir(t *testing.T) {
	_, err := DiscoverRuns(filepath.Join(t.TempDir(), "nope"), DefaultPrefix, DefaultSuffix)
	require.Error(t, err)
}

func TestCSVReference(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "ref.csv", header("study_id")+line("s1", "1")+line("s2", ""))

	ref := CSVReference{Path: p}
	assert.Equal(t, "ref.csv", ref.Name())

	m, err := ref.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, m.IDs)
	assert.Equal(t, label.Positive, m.Values[0][3])
	assert.Equal(t, label.Missing, m.Values[1][3])
}

func TestTextRun(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "chexbert_labeled_1.csv",
		header("Report Impression")+line("clear lungs", "0")+line("unknown text", "1"))

	run := TextRun{Path: p, Mapping: []align.ReportText{{ID: "s7", Text: "clear lungs"}}}
	m, rec, err := run.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"s7"}, m.IDs)
	assert.Equal(t, 2, rec.Rows)
	assert.Equal(t, 1, rec.Dropped)
}

func TestPositionalRun(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "visualchexbert_labeled_1.csv",
		header("Report Impression")+line("a", "0")+line("b", "-1"))

	m, _, err := PositionalRun{Path: p, IDs: []string{"s2", "s1"}}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"s2", "s1"}, m.IDs)
	assert.Equal(t, label.Uncertain, m.Values[1][0])

	_, _, err = PositionalRun{Path: p, IDs: []string{"s1"}}.Load(context.Background())
	require.Error(t, err)
}

func TestLoadMappingAndOrderedIDs(t *testing.T) {
	dir := t.TempDir()
	mp := writeFile(t, dir, "mapping.csv", "s1,clear lungs\ns2,edema\n")
	ip := writeFile(t, dir, "ids.csv", "study_id\ns2\ns1\n")

	mapping, err := LoadMapping(mp)
	require.NoError(t, err)
	assert.Len(t, mapping, 2)

	ids, err := LoadOrderedIDs(ip)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2", "s1"}, ids)

	runs := PositionalRuns([]string{"a.csv", "b.csv"}, ids)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.csv", runs[1].Name())
	assert.Len(t, TextRuns([]string{"a.csv"}, mapping), 1)
}
