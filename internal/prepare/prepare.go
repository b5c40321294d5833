// Package prepare turns free-text reports into labeler input files.
package prepare

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

const (
	DefaultBatchSize = 10000

	LabelerCheXbert       = "chexbert"
	LabelerVisualCheXbert = "visualchexbert"

	SectionedFile  = "test_set_reports.csv"
	OrderedIDsFile = "ordered_test_ids.csv"
)

type Config struct {
	ReportsDir string
	StudyList  string
	OutputDir  string
	Labeler    string
	// NoSplit writes one input file instead of batches.
	NoSplit   bool
	BatchSize int
	Sectioner Sectioner
	Overrides Overrides
}

// StudyEntry is one row of the study list. Path is relative to the reports dir.
type StudyEntry struct {
	Path    string `csv:"path"`
	StudyID string `csv:"study_id"`
}

type Result struct {
	Studies int
	Empty   int
	Files   []string
}

type inputRow struct {
	Study string `csv:"study"`
	Text  string `csv:"text"`
}

type impressionRow struct {
	Text string `csv:"Report Impression"`
}

type orderedIDRow struct {
	StudyID string `csv:"study_id"`
}

type sectionedRow struct {
	Study         string `csv:"study"`
	Impression    string `csv:"impression"`
	Findings      string `csv:"findings"`
	LastParagraph string `csv:"last_paragraph"`
	Comparison    string `csv:"comparison"`
}

// Run reads every report in the study list, selects its labeler input and
// writes the input files, the sectioned table and, for VisualCheXbert, the
// ordered id list.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Sectioner == nil {
		cfg.Sectioner = HeadingSectioner{}
	}
	if cfg.Labeler == "" {
		cfg.Labeler = LabelerCheXbert
	}
	if cfg.Labeler != LabelerCheXbert && cfg.Labeler != LabelerVisualCheXbert {
		return nil, fmt.Errorf("unknown labeler %q", cfg.Labeler)
	}

	entries, err := LoadStudyList(cfg.StudyList)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{}
	selected := make([]Selected, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := filepath.Join(cfg.ReportsDir, e.Path)
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))

		sel := Select(stem, string(data), cfg.Sectioner, cfg.Overrides)
		if sel.Text == "" {
			res.Empty++
		}
		selected = append(selected, sel)

		if (i+1)%1000 == 0 {
			slog.Info("reports processed", "done", i+1, "total", len(entries))
		}
	}
	res.Studies = len(selected)

	if len(selected) == 0 {
		slog.Warn("study list is empty, nothing written", "path", cfg.StudyList)
		return res, nil
	}

	w := writer{dir: cfg.OutputDir, res: res}
	if cfg.Labeler == LabelerVisualCheXbert {
		w.visualInputs(selected, cfg.NoSplit, cfg.BatchSize)
	} else {
		w.chexbertInputs(selected, cfg.NoSplit, cfg.BatchSize)
	}
	w.sectioned(selected)
	if w.err != nil {
		return nil, w.err
	}

	slog.Info("labeler input prepared", "studies", res.Studies, "empty", res.Empty, "files", len(res.Files))
	return res, nil
}

// LoadStudyList reads the study list, keeping the first row for a repeated path.
func LoadStudyList(path string) ([]StudyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open study list: %w", err)
	}
	defer f.Close()

	var rows []*StudyEntry
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("parse study list %s: %w", path, err)
	}

	seen := make(map[string]bool, len(rows))
	out := make([]StudyEntry, 0, len(rows))
	for _, r := range rows {
		if r.Path == "" || seen[r.Path] {
			continue
		}
		seen[r.Path] = true
		out = append(out, *r)
	}
	return out, nil
}

type writer struct {
	dir string
	res *Result
	err error
}

func (w *writer) chexbertInputs(sel []Selected, noSplit bool, batch int) {
	rows := make([]*inputRow, len(sel))
	for i, s := range sel {
		rows[i] = &inputRow{Study: s.Study, Text: s.Text}
	}

	if noSplit {
		w.write("input_chexpert.csv", func(out io.Writer) error {
			return gocsv.MarshalWithoutHeaders(rows, out)
		})
		return
	}
	for n := 0; n < len(rows); n += batch {
		part := rows[n:min(n+batch, len(rows))]
		w.write(fmt.Sprintf("mimic_cxr_%02d.csv", n/batch), func(out io.Writer) error {
			return gocsv.MarshalWithoutHeaders(part, out)
		})
	}
}

func (w *writer) visualInputs(sel []Selected, noSplit bool, batch int) {
	texts := make([]*impressionRow, len(sel))
	ids := make([]*orderedIDRow, len(sel))
	for i, s := range sel {
		texts[i] = &impressionRow{Text: s.Text}
		ids[i] = &orderedIDRow{StudyID: StudyID(s.Study)}
	}

	if noSplit {
		w.write("input_visualchexbert.csv", func(out io.Writer) error {
			return gocsv.Marshal(texts, out)
		})
		w.write(OrderedIDsFile, func(out io.Writer) error {
			return gocsv.Marshal(ids, out)
		})
		return
	}
	for n := 0; n < len(texts); n += batch {
		end := min(n+batch, len(texts))
		textPart, idPart := texts[n:end], ids[n:end]
		w.write(fmt.Sprintf("mimic_cxr_%02d.csv", n/batch), func(out io.Writer) error {
			return gocsv.Marshal(textPart, out)
		})
		w.write(fmt.Sprintf("ordered_test_ids_%02d.csv", n/batch), func(out io.Writer) error {
			return gocsv.Marshal(idPart, out)
		})
	}
}

func (w *writer) sectioned(sel []Selected) {
	var rows []*sectionedRow
	for _, s := range sel {
		if s.Sectioned == nil {
			continue
		}
		rows = append(rows, &sectionedRow{
			Study:         s.Study,
			Impression:    deref(s.Sectioned[Impression]),
			Findings:      deref(s.Sectioned[Findings]),
			LastParagraph: deref(s.Sectioned[LastParagraph]),
			Comparison:    deref(s.Sectioned[Comparison]),
		})
	}
	w.write(SectionedFile, func(out io.Writer) error {
		return gocsv.Marshal(rows, out)
	})
}

func (w *writer) write(name string, fn func(io.Writer) error) {
	if w.err != nil {
		return
	}
	p := filepath.Join(w.dir, name)
	f, err := os.Create(p)
	if err != nil {
		w.err = fmt.Errorf("create %s: %w", name, err)
		return
	}
	if err := fn(f); err != nil {
		f.Close()
		w.err = fmt.Errorf("write %s: %w", name, err)
		return
	}
	if err := f.Close(); err != nil {
		w.err = fmt.Errorf("close %s: %w", name, err)
		return
	}
	w.res.Files = append(w.res.Files, p)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
