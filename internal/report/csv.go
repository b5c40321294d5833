package report

import (
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/labeleval/pkg/utils"
	"github.com/gocarina/gocsv"
)

type compositeRow struct {
	Run      string  `csv:"run"`
	Status   string  `csv:"status"`
	Studies  int     `csv:"studies"`
	Mentions int     `csv:"mentions"`
	Dropped  int     `csv:"dropped_rows"`
	Micro    float64 `csv:"micro_f1"`
	Macro    float64 `csv:"macro_f1"`
	Weighted float64 `csv:"weighted_f1"`
}

const csvDecimals = 4

// WriteCSV writes one row per run with its composite rounded to four
// decimals, followed by a mean row.
func WriteCSV(r *Report, w io.Writer) error {
	rows := make([]*compositeRow, 0, len(r.Runs)+1)
	for _, rr := range r.Runs {
		row := &compositeRow{
			Run:      rr.Run,
			Status:   rr.Status,
			Studies:  rr.Studies,
			Mentions: rr.Mentions,
			Dropped:  rr.Recovery.Dropped,
		}
		if rr.Composite != nil {
			row.Micro = utils.RoundDecimal(rr.Composite.Micro, csvDecimals)
			row.Macro = utils.RoundDecimal(rr.Composite.Macro, csvDecimals)
			row.Weighted = utils.RoundDecimal(rr.Composite.Weighted, csvDecimals)
		}
		rows = append(rows, row)
	}
	rows = append(rows, &compositeRow{
		Run:      "mean",
		Status:   fmt.Sprintf("%d/%d", r.Summary.Succeeded, r.Summary.Runs),
		Micro:    utils.RoundDecimal(r.Summary.Mean.Micro, csvDecimals),
		Macro:    utils.RoundDecimal(r.Summary.Mean.Macro, csvDecimals),
		Weighted: utils.RoundDecimal(r.Summary.Mean.Weighted, csvDecimals),
	})

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal composites: %w", err)
	}
	return nil
}

func WriteCSVFile(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create composites file: %w", err)
	}
	if err := WriteCSV(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
