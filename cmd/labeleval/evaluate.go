package main

import (
	"github.com/DjordjeVuckovic/labeleval/internal/evaluation"
	"github.com/DjordjeVuckovic/labeleval/internal/report"
	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	var flags specFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate every labeler run in a directory against the reference",
		Example: `  labeleval evaluate --spec configs/eval.yaml
  labeleval evaluate --reference gt.csv --runs out/ --mapping input_chexpert.csv -o report.json
  labeleval evaluate --pg --runs out/ --ordered-ids ordered_test_ids.csv --prefix visualchexbert_labeled_`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadAppEnv()
			if err != nil {
				return err
			}
			sp, err := flags.build(cmd, e)
			if err != nil {
				return err
			}

			rep, err := evaluation.NewService(version).Evaluate(cmd.Context(), sp)
			if err != nil {
				return err
			}
			if err := report.WriteTable(rep, cmd.OutOrStdout()); err != nil {
				return err
			}
			return evaluation.WriteOutputs(rep, sp.Output)
		},
	}

	flags.register(cmd)
	return cmd
}
