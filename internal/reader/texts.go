package reader

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/labeleval/internal/align"
	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"github.com/gocarina/gocsv"
)

// LoadReportTexts parses the headerless id,text file that was fed to the labelers.
func LoadReportTexts(name string, r io.Reader) ([]align.ReportText, error) {
	var records []*align.ReportText
	if err := gocsv.UnmarshalWithoutHeaders(r, &records); err != nil {
		return nil, apperr.NewSchema(name, []string{"id", "text"}, err)
	}

	out := make([]align.ReportText, 0, len(records))
	for _, rec := range records {
		out = append(out, *rec)
	}
	return out, nil
}

type orderedID struct {
	StudyID string `csv:"study_id"`
}

// LoadOrderedIDs parses a study_id list whose order matches a labeler's input order.
func LoadOrderedIDs(name string, r io.Reader) ([]string, error) {
	var records []*orderedID
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, apperr.NewSchema(name, []string{"study_id"}, err)
	}

	ids := make([]string, 0, len(records))
	for i, rec := range records {
		if rec.StudyID == "" {
			return nil, apperr.NewSchema(name, []string{"study_id"}, fmt.Errorf("row %d has no study_id", i+1))
		}
		ids = append(ids, rec.StudyID)
	}
	return ids, nil
}
