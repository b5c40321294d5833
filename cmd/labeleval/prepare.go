package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/labeleval/internal/prepare"
	"github.com/spf13/cobra"
)

func prepareCmd() *cobra.Command {
	var cfg prepare.Config
	var overrides string

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Write labeler input CSVs from free-text reports",
		Long: `Select the impression (else findings, last paragraph or comparison) of every
report in the study list and write it in the labeler's input format, either as
one file or in batches of 10000 reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overrides != "" {
				ov, err := prepare.LoadOverrides(overrides)
				if err != nil {
					return err
				}
				cfg.Overrides = ov
			}

			res, err := prepare.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "prepared %d studies (%d without usable text)\n", res.Studies, res.Empty)
			for _, f := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&cfg.ReportsDir, "reports", "", "root of the free-text reports")
	fl.StringVar(&cfg.StudyList, "study-list", "", "CSV with a path column relative to --reports")
	fl.StringVar(&cfg.OutputDir, "output", "", "output directory")
	fl.StringVar(&cfg.Labeler, "labeler", prepare.LabelerCheXbert, "input format (chexbert, visualchexbert)")
	fl.BoolVar(&cfg.NoSplit, "no-split", false, "write a single input file instead of batches")
	fl.IntVar(&cfg.BatchSize, "batch-size", prepare.DefaultBatchSize, "reports per batch file")
	fl.StringVar(&overrides, "overrides", "", "YAML of per-report span and section overrides")
	for _, name := range []string{"reports", "study-list", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func filterCmd() *cobra.Command {
	var labeled, list, output string

	cmd := &cobra.Command{
		Use:   "filter-studies",
		Short: "Keep the study list rows whose study_id is in the labeled reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := os.Open(labeled)
			if err != nil {
				return fmt.Errorf("open labeled set: %w", err)
			}
			defer lf.Close()

			sf, err := os.Open(list)
			if err != nil {
				return fmt.Errorf("open study list: %w", err)
			}
			defer sf.Close()

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}

			n, err := prepare.FilterStudyList(lf, sf, out)
			if err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kept %d studies in %s\n", n, output)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&labeled, "labeled", "", "reference label CSV with a study_id column")
	fl.StringVar(&list, "study-list", "", "study list CSV with a study_id column")
	fl.StringVar(&output, "output", "", "filtered study list")
	for _, name := range []string{"labeled", "study-list", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
