package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/nsb/internal/batch"
	"github.com/jackzampolin/nsb/internal/document"
	"github.com/jackzampolin/nsb/internal/output"
)

var checkStrict bool

// checkReport is the structured result printed by check.
type checkReport struct {
	Input         string `json:"input" yaml:"input"`
	batch.Outcome `yaml:",inline"`
}

var checkCmd = &cobra.Command{
	Use:   "check <input>",
	Short: "Report question defects without writing",
	Long: `Run the same analysis as format but leave the document untouched.

The report lists every defect, its highlight, and every automatic fix that
format would apply.

Examples:
  nsb check questions.yaml
  nsb check questions.json -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.Parse(outputFormat)
		if err != nil {
			return err
		}

		cm, _, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := document.Load(args[0])
		if err != nil {
			return err
		}

		outcome, err := batch.Run(cmd.Context(), table, batchOptions(cm.Get(), newLogger(cmd)))
		if err != nil {
			return err
		}

		report := checkReport{Input: args[0], Outcome: *outcome}
		if err := output.Write(cmd.OutOrStdout(), format, report); err != nil {
			return err
		}
		return defectsError(outcome, checkStrict)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "also fail on format mismatches")

	rootCmd.AddCommand(checkCmd)
}
