package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/labeleval/internal/metrics"
	"gopkg.in/guregu/null.v3"
)

func WriteTable(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Label Scheme Evaluation ===\n")
	fmt.Fprintf(tw, "reference: %s\n", r.Meta.Reference)

	for _, rr := range r.Runs {
		fmt.Fprintf(tw, "\n--- Run: %s ---\n\n", rr.Run)
		if rr.Status == StatusFailed {
			fmt.Fprintf(tw, "FAILED: %s\n", rr.Error)
			continue
		}
		fmt.Fprintf(tw, "studies: %d  mentions: %d  dropped rows: %d\n\n",
			rr.Studies, rr.Mentions, rr.Recovery.Dropped)

		if rr.Flat != nil {
			writeFlat(tw, rr)
			continue
		}
		for _, agg := range rr.Schemes {
			writeSchemeTable(tw, agg)
		}
		writeComposite(tw, rr)
	}

	writeSummary(tw, r)

	return tw.Flush()
}

func writeSchemeTable(tw *tabwriter.Writer, agg metrics.SchemeAggregate) {
	fmt.Fprintf(tw, "Scheme: %s\n\n", agg.Scheme)

	header := []string{"Category", "Precision", "Recall", "F1", "Positives"}
	writeHeader(tw, header)

	for _, c := range agg.Categories {
		row := []string{
			c.Category,
			fmtNull(c.Precision),
			fmtNull(c.Recall),
			fmtNull(c.F1),
			fmt.Sprintf("%d", c.Positives),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintf(tw, "micro\t\t\t%s\t%d\n", fmtScore(agg.Micro), agg.Positives)
	fmt.Fprintf(tw, "macro\t\t\t%s\t\n", fmtScore(agg.Macro))
	fmt.Fprintf(tw, "weighted\t\t\t%s\t\n", fmtScore(agg.Weighted))
	fmt.Fprintln(tw)
}

func writeComposite(tw *tabwriter.Writer, rr RunReport) {
	writeHeader(tw, []string{"Weight", "Positives", "Share"})
	for _, w := range rr.Weights {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", w.Scheme, w.Positives, fmtScore(w.Share))
	}
	fmt.Fprintln(tw)

	c := rr.Composite
	fmt.Fprintf(tw, "Composite: micro %s  macro %s  weighted %s\n",
		fmtScore(c.Micro), fmtScore(c.Macro), fmtScore(c.Weighted))
}

func writeFlat(tw *tabwriter.Writer, rr RunReport) {
	fmt.Fprintf(tw, "Flat label codes\n\n")
	writeHeader(tw, []string{"Class", "F1", "Support"})
	for _, c := range rr.Flat.Classes {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", c.Class, fmtScore(c.F1), c.Support)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Flat: micro %s  macro %s  weighted %s\n",
		fmtScore(rr.Flat.Micro), fmtScore(rr.Flat.Macro), fmtScore(rr.Flat.Weighted))
}

func writeSummary(tw *tabwriter.Writer, r *Report) {
	s := r.Summary
	fmt.Fprintf(tw, "\n=== Summary (mean across %d of %d runs) ===\n\n", s.Succeeded, s.Runs)

	writeHeader(tw, []string{"Run", "Micro F1", "Macro F1", "Weighted F1", "Status"})
	for _, rr := range r.Runs {
		if rr.Composite == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%s\n", rr.Run, strings.ToUpper(rr.Status))
			continue
		}
		c := rr.Composite
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rr.Run, fmtScore(c.Micro), fmtScore(c.Macro), fmtScore(c.Weighted), strings.ToUpper(rr.Status))
	}
	fmt.Fprintf(tw, "mean\t%s\t%s\t%s\t\n", fmtScore(s.Mean.Micro), fmtScore(s.Mean.Macro), fmtScore(s.Mean.Weighted))
	fmt.Fprintf(tw, "stddev\t%s\t%s\t%s\t\n", fmtScore(s.Stddev.Micro), fmtScore(s.Stddev.Macro), fmtScore(s.Stddev.Weighted))
	fmt.Fprintln(tw)
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func fmtScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func fmtNull(v null.Float) string {
	if !v.Valid {
		return "N/A"
	}
	return fmtScore(v.Float64)
}
