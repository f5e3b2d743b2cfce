package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/nsb/internal/batch"
	"github.com/jackzampolin/nsb/internal/config"
	"github.com/jackzampolin/nsb/internal/document"
	"github.com/jackzampolin/nsb/internal/watch"
)

var (
	formatOut    string
	formatStrict bool
	formatWatch  bool
)

var formatCmd = &cobra.Command{
	Use:   "format <input>",
	Short: "Rewrite question cells in canonical form",
	Long: `Format every question cell in a question table and write the result.

Clean cells are rewritten in canonical form. Cells that cannot be parsed keep
their text and are highlighted red; cells whose declared format disagrees with
their choices are rewritten and highlighted yellow. One line per defect is
printed as "Question <n>: <message>".

The command exits non-zero when any cell could not be parsed, or with --strict
when any cell has a defect at all.

Examples:
  nsb format questions.yaml                   # Format in place
  nsb format raw.json -O clean.json           # Write to a new file
  nsb format raw.yaml -O clean.yaml --watch   # Re-run on every save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger(cmd)

		cm, _, err := loadConfig()
		if err != nil {
			return err
		}

		input := args[0]
		out := formatOut
		if out == "" {
			out = input
		}

		if !formatWatch {
			return formatOnce(ctx, cmd, cm.Get(), input, out, logger)
		}

		if same, err := samePath(input, out); err != nil {
			return err
		} else if same {
			return fmt.Errorf("--watch needs -O pointing at a file other than the input")
		}

		run := func() {
			err := formatOnce(ctx, cmd, cm.Get(), input, out, logger)
			if err != nil && !errors.Is(err, errDefects) {
				logger.Error("format failed", "error", err)
			}
		}

		if cm.File() != "" {
			cm.OnChange(func(*config.Config) {
				logger.Info("config reloaded", "file", cm.File())
			})
			cm.WatchConfig()
		}

		w, err := watch.New(input, watch.DefaultDebounce, logger)
		if err != nil {
			return err
		}
		defer w.Close()

		run()
		logger.Info("watching for changes", "input", input, "output", out)
		return w.Run(ctx, run)
	},
}

// formatOnce runs one batch pass from input to out.
func formatOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, input, out string, logger *slog.Logger) error {
	table, err := document.Load(input)
	if err != nil {
		return err
	}

	outcome, err := batch.Run(ctx, table, batchOptions(cfg, logger))
	if err != nil {
		return err
	}

	if err := document.Save(ctx, out, outcome.Table); err != nil {
		return err
	}

	for _, line := range outcome.Report.Lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	logger.Info("document written", "output", out, "run", outcome.RunID)

	return defectsError(outcome, formatStrict)
}

func defectsError(outcome *batch.Outcome, strict bool) error {
	if outcome.HasParseDefects() || (strict && outcome.Stats.Structure > 0) {
		return fmt.Errorf("%w: %d parse, %d structure", errDefects, outcome.Stats.Parse, outcome.Stats.Structure)
	}
	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

func init() {
	formatCmd.Flags().StringVarP(&formatOut, "out", "O", "", "output file (default: overwrite the input)")
	formatCmd.Flags().BoolVar(&formatStrict, "strict", false, "also fail on format mismatches")
	formatCmd.Flags().BoolVar(&formatWatch, "watch", false, "re-run whenever the input changes")

	rootCmd.AddCommand(formatCmd)
}
